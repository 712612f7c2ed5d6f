package httpapi

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appLease "github.com/estate-hub/estate-hub/internal/application/lease"
	"github.com/estate-hub/estate-hub/internal/domain/estate"
	"github.com/estate-hub/estate-hub/internal/domain/lease"
)

type leaseCreateRequest struct {
	PropertyID string          `json:"property_id"`
	TenantID   string          `json:"tenant_id"`
	StartDate  string          `json:"start_date"`
	EndDate    string          `json:"end_date"`
	RentAmount decimal.Decimal `json:"rent_amount"`
	Status     string          `json:"status,omitempty"`
}

type leaseUpdateRequest struct {
	StartDate  *string          `json:"start_date,omitempty"`
	EndDate    *string          `json:"end_date,omitempty"`
	RentAmount *decimal.Decimal `json:"rent_amount,omitempty"`
	Status     *string          `json:"status,omitempty"`
	Reactivate bool             `json:"reactivate,omitempty"`
}

type leaseRenewRequest struct {
	NewEndDate string           `json:"new_end_date"`
	NewRent    *decimal.Decimal `json:"new_rent,omitempty"`
	Reason     *string          `json:"reason,omitempty"`
}

type leaseTerminateRequest struct {
	TerminationDate string           `json:"termination_date"`
	Reason          string           `json:"reason"`
	Penalty         *decimal.Decimal `json:"penalty,omitempty"`
}

func (s *Server) createLease(w http.ResponseWriter, r *http.Request) {
	var req leaseCreateRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	propertyID, err := uuid.Parse(req.PropertyID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid property_id")
		return
	}
	tenantID, err := uuid.Parse(req.TenantID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid tenant_id")
		return
	}
	startDate, err := estate.ParseDate(req.StartDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid start_date")
		return
	}
	endDate, err := estate.ParseDate(req.EndDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid end_date")
		return
	}

	l, err := s.leaseSvc.Create(r.Context(), appLease.CreateInput{
		PropertyID: propertyID,
		TenantID:   tenantID,
		StartDate:  startDate,
		EndDate:    endDate,
		RentAmount: req.RentAmount,
		Status:     lease.Status(req.Status),
		Actor:      s.actorFromRequest(r),
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, l)
}

func (s *Server) getLease(w http.ResponseWriter, r *http.Request) {
	leaseID, err := parseUUIDParam(r, "leaseId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid lease id")
		return
	}
	l, err := s.leaseSvc.Get(r.Context(), leaseID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	if l == nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "lease not found")
		return
	}
	respondJSON(w, http.StatusOK, l)
}

func (s *Server) listLeases(w http.ResponseWriter, r *http.Request) {
	limit, offset := parseLimitOffset(r, 50, 200)
	filter := lease.ListFilter{Limit: limit, Offset: offset}
	if v := r.URL.Query().Get("status"); v != "" {
		st := lease.Status(v)
		if !lease.ValidStatus(st) {
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
	if v := r.URL.Query().Get("tenant_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid tenant_id")
			return
		}
		filter.TenantID = &id
	}

	leases, err := s.leaseSvc.List(r.Context(), filter)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"leases": leases})
}

func (s *Server) updateLease(w http.ResponseWriter, r *http.Request) {
	leaseID, err := parseUUIDParam(r, "leaseId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid lease id")
		return
	}
	var req leaseUpdateRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}

	in := appLease.UpdateInput{Reactivate: req.Reactivate, Actor: s.actorFromRequest(r)}
	if req.StartDate != nil {
		d, err := estate.ParseDate(*req.StartDate)
		if err != nil {
			respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid start_date")
			return
		}
		in.StartDate = &d
	}
	if req.EndDate != nil {
		d, err := estate.ParseDate(*req.EndDate)
		if err != nil {
			respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid end_date")
			return
		}
		in.EndDate = &d
	}
	in.RentAmount = req.RentAmount
	if req.Status != nil {
		st := lease.Status(*req.Status)
		if !lease.ValidStatus(st) {
			respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid status")
			return
		}
		in.Status = &st
	}

	l, err := s.leaseSvc.Update(r.Context(), leaseID, in)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, l)
}

func (s *Server) archiveLease(w http.ResponseWriter, r *http.Request) {
	leaseID, err := parseUUIDParam(r, "leaseId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid lease id")
		return
	}
	if err := s.leaseSvc.Archive(r.Context(), leaseID, s.actorFromRequest(r)); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"status": "ARCHIVED"})
}

func (s *Server) renewLease(w http.ResponseWriter, r *http.Request) {
	leaseID, err := parseUUIDParam(r, "leaseId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid lease id")
		return
	}
	var req leaseRenewRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	newEndDate, err := estate.ParseDate(req.NewEndDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid new_end_date")
		return
	}

	l, err := s.leaseSvc.Renew(r.Context(), leaseID, newEndDate, req.NewRent, req.Reason, s.actorFromRequest(r))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, l)
}

func (s *Server) terminateLease(w http.ResponseWriter, r *http.Request) {
	leaseID, err := parseUUIDParam(r, "leaseId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid lease id")
		return
	}
	var req leaseTerminateRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	terminationDate := time.Now().UTC()
	if req.TerminationDate != "" {
		terminationDate, err = estate.ParseDate(req.TerminationDate)
		if err != nil {
			respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid termination_date")
			return
		}
	}

	l, err := s.leaseSvc.Terminate(r.Context(), leaseID, terminationDate, req.Reason, req.Penalty, s.actorFromRequest(r))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, l)
}

func (s *Server) listLeaseRenewals(w http.ResponseWriter, r *http.Request) {
	leaseID, err := parseUUIDParam(r, "leaseId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid lease id")
		return
	}
	renewals, err := s.leaseSvc.ListRenewals(r.Context(), leaseID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"renewals": renewals})
}
