package httpapi

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appSale "github.com/estate-hub/estate-hub/internal/application/sale"
	"github.com/estate-hub/estate-hub/internal/domain/estate"
	"github.com/estate-hub/estate-hub/internal/domain/sale"
)

type saleCreateRequest struct {
	PropertyID string          `json:"property_id"`
	BuyerName  string          `json:"buyer_name"`
	AgentID    string          `json:"agent_id"`
	SaleDate   string          `json:"sale_date,omitempty"`
	SalePrice  decimal.Decimal `json:"sale_price"`
}

type saleCancelRequest struct {
	Reason string `json:"reason"`
}

func (s *Server) createSale(w http.ResponseWriter, r *http.Request) {
	var req saleCreateRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	propertyID, err := uuid.Parse(req.PropertyID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid property_id")
		return
	}
	agentID, err := uuid.Parse(req.AgentID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid agent_id")
		return
	}

	in := appSale.CreateInput{
		PropertyID: propertyID,
		BuyerName:  req.BuyerName,
		AgentID:    agentID,
		SalePrice:  req.SalePrice,
		Actor:      s.actorFromRequest(r),
	}
	if req.SaleDate != "" {
		d, err := estate.ParseDate(req.SaleDate)
		if err != nil {
			respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid sale_date")
			return
		}
		in.SaleDate = d
	}

	created, err := s.saleSvc.Create(r.Context(), in)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (s *Server) getSale(w http.ResponseWriter, r *http.Request) {
	saleID, err := parseUUIDParam(r, "saleId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid sale id")
		return
	}
	sl, err := s.saleSvc.Get(r.Context(), saleID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	if sl == nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "sale not found")
		return
	}
	respondJSON(w, http.StatusOK, sl)
}

func (s *Server) listSales(w http.ResponseWriter, r *http.Request) {
	limit, offset := parseLimitOffset(r, 50, 200)
	filter := sale.ListFilter{Limit: limit, Offset: offset}
	if v := r.URL.Query().Get("status"); v != "" {
		st := sale.Status(v)
		if st != sale.StatusCompleted && st != sale.StatusCancelled {
			respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid status")
			return
		}
		filter.Status = &st
	}
	if v := r.URL.Query().Get("property_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid property_id")
			return
		}
		filter.PropertyID = &id
	}
	if v := r.URL.Query().Get("agent_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid agent_id")
			return
		}
		filter.AgentID = &id
	}

	sales, err := s.saleSvc.List(r.Context(), filter)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"sales": sales})
}

func (s *Server) cancelSale(w http.ResponseWriter, r *http.Request) {
	saleID, err := parseUUIDParam(r, "saleId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid sale id")
		return
	}
	var req saleCancelRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	if req.Reason == "" {
		respondError(w, http.StatusBadRequest, "VALIDATION_FAILED", "reason is required")
		return
	}

	sl, err := s.saleSvc.Cancel(r.Context(), saleID, req.Reason, s.actorFromRequest(r))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sl)
}
