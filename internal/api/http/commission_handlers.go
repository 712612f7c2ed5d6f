package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appCommission "github.com/estate-hub/estate-hub/internal/application/commission"
	"github.com/estate-hub/estate-hub/internal/domain/commission"
	"github.com/estate-hub/estate-hub/internal/domain/estate"
)

type ruleCreateRequest struct {
	AgentID         string           `json:"agent_id"`
	TransactionType string           `json:"transaction_type"`
	Structure       string           `json:"structure"`
	Percentage      *decimal.Decimal `json:"percentage,omitempty"`
	FixedAmount     *decimal.Decimal `json:"fixed_amount,omitempty"`
	MinValue        *decimal.Decimal `json:"min_value,omitempty"`
	MaxValue        *decimal.Decimal `json:"max_value,omitempty"`
	ValidFrom       string           `json:"valid_from"`
	ValidUntil      *string          `json:"valid_until,omitempty"`
}

type ruleValidityRequest struct {
	ValidUntil *string `json:"valid_until"`
}

type recordRequest struct {
	AgentID         string          `json:"agent_id"`
	TransactionType string          `json:"transaction_type"`
	Amount          decimal.Decimal `json:"amount"`
	Date            *string         `json:"date,omitempty"`
	ReferenceID     string          `json:"reference_id"`
}

type bulkRecordRequest struct {
	Entries []recordRequest `json:"entries"`
}

type payRequest struct {
	PaymentDate *string `json:"payment_date,omitempty"`
}

type cancelTransactionRequest struct {
	Reason string `json:"reason"`
}

func (s *Server) createCommissionRule(w http.ResponseWriter, r *http.Request) {
	var req ruleCreateRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	agentID, err := uuid.Parse(req.AgentID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid agent_id")
		return
	}
	validFrom, err := estate.ParseDate(req.ValidFrom)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid valid_from")
		return
	}
	var validUntil *time.Time
	if req.ValidUntil != nil {
		d, err := estate.ParseDate(*req.ValidUntil)
		if err != nil {
			respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid valid_until")
			return
		}
		validUntil = &d
	}

	rule, err := s.commissionSvc.CreateRule(r.Context(), appCommission.RuleInput{
		AgentID:         agentID,
		TransactionType: commission.TransactionType(req.TransactionType),
		Structure:       commission.Structure(req.Structure),
		Percentage:      req.Percentage,
		FixedAmount:     req.FixedAmount,
		MinValue:        req.MinValue,
		MaxValue:        req.MaxValue,
		ValidFrom:       validFrom,
		ValidUntil:      validUntil,
		Actor:           s.actorFromRequest(r),
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, rule)
}

func (s *Server) getCommissionRule(w http.ResponseWriter, r *http.Request) {
	ruleID, err := parseUUIDParam(r, "ruleId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid rule id")
		return
	}
	rule, err := s.commissionSvc.GetRule(r.Context(), ruleID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	if rule == nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "commission rule not found")
		return
	}
	respondJSON(w, http.StatusOK, rule)
}

func (s *Server) listCommissionRules(w http.ResponseWriter, r *http.Request) {
	limit, offset := parseLimitOffset(r, 50, 200)
	filter := commission.RuleFilter{Limit: limit, Offset: offset}
	if v := r.URL.Query().Get("agent_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid agent_id")
			return
		}
		filter.AgentID = &id
	}
	if v := r.URL.Query().Get("transaction_type"); v != "" {
		tt := commission.TransactionType(v)
		if tt != commission.TypeLease && tt != commission.TypeSale && tt != commission.TypeBoth {
			respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid transaction_type")
			return
		}
		filter.TransactionType = &tt
	}
	if r.URL.Query().Get("active") == "true" {
		filter.ActiveOnly = true
	}

	rules, err := s.commissionSvc.ListRules(r.Context(), filter)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"rules": rules})
}

func (s *Server) updateCommissionRuleValidity(w http.ResponseWriter, r *http.Request) {
	ruleID, err := parseUUIDParam(r, "ruleId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid rule id")
		return
	}
	var req ruleValidityRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	var validUntil *time.Time
	if req.ValidUntil != nil {
		d, err := estate.ParseDate(*req.ValidUntil)
		if err != nil {
			respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid valid_until")
			return
		}
		validUntil = &d
	}

	rule, err := s.commissionSvc.UpdateRuleValidity(r.Context(), ruleID, validUntil, s.actorFromRequest(r))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rule)
}

func (s *Server) deactivateCommissionRule(w http.ResponseWriter, r *http.Request) {
	ruleID, err := parseUUIDParam(r, "ruleId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid rule id")
		return
	}
	rule, err := s.commissionSvc.DeactivateRule(r.Context(), ruleID, s.actorFromRequest(r))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rule)
}

func (s *Server) recordInputFromRequest(r *http.Request, req recordRequest) (appCommission.RecordInput, string) {
	in := appCommission.RecordInput{
		TransactionType: commission.TransactionType(req.TransactionType),
		Amount:          req.Amount,
		Actor:           s.actorFromRequest(r),
	}
	agentID, err := uuid.Parse(req.AgentID)
	if err != nil {
		return in, "invalid agent_id"
	}
	in.AgentID = agentID
	referenceID, err := uuid.Parse(req.ReferenceID)
	if err != nil {
		return in, "invalid reference_id"
	}
	in.ReferenceID = referenceID
	if req.Date != nil {
		d, err := estate.ParseDate(*req.Date)
		if err != nil {
			return in, "invalid date"
		}
		in.Date = &d
	}
	return in, ""
}

func (s *Server) recordCommission(w http.ResponseWriter, r *http.Request) {
	var req recordRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	in, problem := s.recordInputFromRequest(r, req)
	if problem != "" {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", problem)
		return
	}

	t, err := s.commissionSvc.Record(r.Context(), in)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, t)
}

func (s *Server) bulkRecordCommission(w http.ResponseWriter, r *http.Request) {
	var req bulkRecordRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	if len(req.Entries) == 0 {
		respondError(w, http.StatusBadRequest, "VALIDATION_FAILED", "entries must not be empty")
		return
	}

	inputs := make([]appCommission.RecordInput, 0, len(req.Entries))
	for i, entry := range req.Entries {
		in, problem := s.recordInputFromRequest(r, entry)
		if problem != "" {
			respondError(w, http.StatusBadRequest, "INVALID_PARAM", problem+" at index "+strconv.Itoa(i))
			return
		}
		inputs = append(inputs, in)
	}

	results := s.commissionSvc.BulkRecord(r.Context(), inputs)
	respondJSON(w, http.StatusOK, map[string]interface{}{"results": results})
}

func (s *Server) getCommissionTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID, err := parseUUIDParam(r, "transactionId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid transaction id")
		return
	}
	t, err := s.commissionSvc.GetTransaction(r.Context(), transactionID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	if t == nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "commission transaction not found")
		return
	}
	respondJSON(w, http.StatusOK, t)
}

func (s *Server) listCommissionTransactions(w http.ResponseWriter, r *http.Request) {
	limit, offset := parseLimitOffset(r, 50, 200)
	filter := commission.TransactionFilter{Limit: limit, Offset: offset}
	if v := r.URL.Query().Get("agent_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid agent_id")
			return
		}
		filter.AgentID = &id
	}
	if v := r.URL.Query().Get("transaction_type"); v != "" {
		tt := commission.TransactionType(v)
		if tt != commission.TypeLease && tt != commission.TypeSale {
			respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid transaction_type")
			return
		}
		filter.TransactionType = &tt
	}
	if v := r.URL.Query().Get("payment_status"); v != "" {
		ps := commission.PaymentStatus(v)
		if ps != commission.PaymentPending && ps != commission.PaymentPaid && ps != commission.PaymentCancelled {
			respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid payment_status")
			return
		}
		filter.PaymentStatus = &ps
	}
	if v := r.URL.Query().Get("from"); v != "" {
		d, err := estate.ParseDate(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid from date")
			return
		}
		filter.From = &d
	}
	if v := r.URL.Query().Get("to"); v != "" {
		d, err := estate.ParseDate(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid to date")
			return
		}
		filter.To = &d
	}

	transactions, err := s.commissionSvc.ListTransactions(r.Context(), filter)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"transactions": transactions})
}

func (s *Server) payCommission(w http.ResponseWriter, r *http.Request) {
	transactionID, err := parseUUIDParam(r, "transactionId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid transaction id")
		return
	}
	var req payRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	var paymentDate *time.Time
	if req.PaymentDate != nil {
		d, err := estate.ParseDate(*req.PaymentDate)
		if err != nil {
			respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid payment_date")
			return
		}
		paymentDate = &d
	}

	t, err := s.commissionSvc.MarkPaid(r.Context(), transactionID, paymentDate, s.actorFromRequest(r))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, t)
}

func (s *Server) cancelCommission(w http.ResponseWriter, r *http.Request) {
	transactionID, err := parseUUIDParam(r, "transactionId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid transaction id")
		return
	}
	var req cancelTransactionRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}

	t, err := s.commissionSvc.CancelTransaction(r.Context(), transactionID, req.Reason, s.actorFromRequest(r))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, t)
}

func (s *Server) agentPerformance(w http.ResponseWriter, r *http.Request) {
	agentID, err := parseUUIDParam(r, "agentId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid agent id")
		return
	}
	var from, to *time.Time
	if v := r.URL.Query().Get("from"); v != "" {
		d, err := estate.ParseDate(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid from date")
			return
		}
		from = &d
	}
	if v := r.URL.Query().Get("to"); v != "" {
		d, err := estate.ParseDate(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid to date")
			return
		}
		to = &d
	}

	summary, err := s.commissionSvc.Summarize(r.Context(), agentID, from, to)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}
