package httpapi

import (
	"net/http"
	"time"

	"github.com/estate-hub/estate-hub/internal/domain/audit"
)

type auditLogResponse struct {
	*audit.AuditLog
	SignatureValid *bool `json:"signatureValid,omitempty"`
}

func (s *Server) queryAudit(w http.ResponseWriter, r *http.Request) {
	limit, offset := parseLimitOffset(r, 100, 500)
	filter := audit.Filter{Limit: limit, Offset: offset}
	q := r.URL.Query()
	if v := q.Get("entity_type"); v != "" {
		et := audit.EntityType(v)
		filter.EntityType = &et
	}
	if v := q.Get("entity_id"); v != "" {
		filter.EntityID = &v
	}
	if v := q.Get("action"); v != "" {
		a := audit.Action(v)
		filter.Action = &a
	}
	if v := q.Get("actor"); v != "" {
		filter.Actor = &v
	}
	if v := q.Get("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid from timestamp")
			return
		}
		filter.From = &t
	}
	if v := q.Get("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid to timestamp")
			return
		}
		filter.To = &t
	}

	logs, err := s.auditSvc.List(r.Context(), filter)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	verify := q.Get("verify") == "true"
	resp := make([]auditLogResponse, 0, len(logs))
	for _, l := range logs {
		entry := auditLogResponse{AuditLog: l}
		if verify {
			ok, verr := s.auditSvc.Verify(l)
			valid := verr == nil && ok
			entry.SignatureValid = &valid
		}
		resp = append(resp, entry)
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"logs": resp})
}
