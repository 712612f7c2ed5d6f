package httpapi

import (
	"net/http"

	"github.com/google/uuid"

	appAgent "github.com/estate-hub/estate-hub/internal/application/agent"
	appProperty "github.com/estate-hub/estate-hub/internal/application/property"
	appTenant "github.com/estate-hub/estate-hub/internal/application/tenant"
	"github.com/estate-hub/estate-hub/internal/domain/property"
)

type propertyCreateRequest struct {
	ReferenceCode string  `json:"reference_code"`
	Name          string  `json:"name"`
	Address       string  `json:"address"`
	AgentID       *string `json:"agent_id,omitempty"`
	Status        string  `json:"status,omitempty"`
}

type propertyUpdateRequest struct {
	Name    *string `json:"name,omitempty"`
	Address *string `json:"address,omitempty"`
	AgentID *string `json:"agent_id,omitempty"`
	Status  *string `json:"status,omitempty"`
}

type agentCreateRequest struct {
	Name        string `json:"name"`
	LicenseCode string `json:"license_code"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
}

type agentUpdateRequest struct {
	Name   *string `json:"name,omitempty"`
	Email  *string `json:"email,omitempty"`
	Phone  *string `json:"phone,omitempty"`
	Active *bool   `json:"active,omitempty"`
}

type tenantCreateRequest struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

type tenantUpdateRequest struct {
	Name   *string `json:"name,omitempty"`
	Email  *string `json:"email,omitempty"`
	Phone  *string `json:"phone,omitempty"`
	Active *bool   `json:"active,omitempty"`
}

func (s *Server) createProperty(w http.ResponseWriter, r *http.Request) {
	var req propertyCreateRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	in := appProperty.CreateInput{
		ReferenceCode: req.ReferenceCode,
		Name:          req.Name,
		Address:       req.Address,
		Status:        property.Status(req.Status),
		Actor:         s.actorFromRequest(r),
	}
	if req.AgentID != nil {
		id, err := uuid.Parse(*req.AgentID)
		if err != nil {
			respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid agent_id")
			return
		}
		in.AgentID = &id
	}

	p, err := s.propertySvc.Create(r.Context(), in)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, p)
}

func (s *Server) getProperty(w http.ResponseWriter, r *http.Request) {
	propertyID, err := parseUUIDParam(r, "propertyId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid property id")
		return
	}
	p, err := s.propertySvc.Get(r.Context(), propertyID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	if p == nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "property not found")
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (s *Server) listProperties(w http.ResponseWriter, r *http.Request) {
	limit, offset := parseLimitOffset(r, 50, 200)
	var status *property.Status
	if v := r.URL.Query().Get("status"); v != "" {
		st := property.Status(v)
		if !property.ValidStatus(st) {
			respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid status")
			return
		}
		status = &st
	}

	properties, err := s.propertySvc.List(r.Context(), status, limit, offset)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"properties": properties})
}

func (s *Server) updateProperty(w http.ResponseWriter, r *http.Request) {
	propertyID, err := parseUUIDParam(r, "propertyId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid property id")
		return
	}
	var req propertyUpdateRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	in := appProperty.UpdateInput{
		Name:    req.Name,
		Address: req.Address,
		Actor:   s.actorFromRequest(r),
	}
	if req.AgentID != nil {
		id, err := uuid.Parse(*req.AgentID)
		if err != nil {
			respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid agent_id")
			return
		}
		in.AgentID = &id
	}
	if req.Status != nil {
		st := property.Status(*req.Status)
		if !property.ValidStatus(st) {
			respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid status")
			return
		}
		in.Status = &st
	}

	p, err := s.propertySvc.Update(r.Context(), propertyID, in)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (s *Server) createAgent(w http.ResponseWriter, r *http.Request) {
	var req agentCreateRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}

	a, err := s.agentSvc.Create(r.Context(), appAgent.CreateInput{
		Name:        req.Name,
		LicenseCode: req.LicenseCode,
		Email:       req.Email,
		Phone:       req.Phone,
		Actor:       s.actorFromRequest(r),
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, a)
}

func (s *Server) getAgent(w http.ResponseWriter, r *http.Request) {
	agentID, err := parseUUIDParam(r, "agentId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid agent id")
		return
	}
	a, err := s.agentSvc.Get(r.Context(), agentID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	if a == nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "agent not found")
		return
	}
	respondJSON(w, http.StatusOK, a)
}

func (s *Server) listAgents(w http.ResponseWriter, r *http.Request) {
	limit, offset := parseLimitOffset(r, 50, 200)
	includeInactive := r.URL.Query().Get("include_inactive") == "true"

	agents, err := s.agentSvc.List(r.Context(), includeInactive, limit, offset)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"agents": agents})
}

func (s *Server) updateAgent(w http.ResponseWriter, r *http.Request) {
	agentID, err := parseUUIDParam(r, "agentId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid agent id")
		return
	}
	var req agentUpdateRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}

	a, err := s.agentSvc.Update(r.Context(), agentID, appAgent.UpdateInput{
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
		Active: req.Active,
		Actor:  s.actorFromRequest(r),
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, a)
}

func (s *Server) createTenant(w http.ResponseWriter, r *http.Request) {
	var req tenantCreateRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}

	t, err := s.tenantSvc.Create(r.Context(), appTenant.CreateInput{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		Actor: s.actorFromRequest(r),
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, t)
}

func (s *Server) getTenant(w http.ResponseWriter, r *http.Request) {
	tenantID, err := parseUUIDParam(r, "tenantId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid tenant id")
		return
	}
	t, err := s.tenantSvc.Get(r.Context(), tenantID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	if t == nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "tenant not found")
		return
	}
	respondJSON(w, http.StatusOK, t)
}

func (s *Server) listTenants(w http.ResponseWriter, r *http.Request) {
	limit, offset := parseLimitOffset(r, 50, 200)
	includeInactive := r.URL.Query().Get("include_inactive") == "true"

	tenants, err := s.tenantSvc.List(r.Context(), includeInactive, limit, offset)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"tenants": tenants})
}

func (s *Server) updateTenant(w http.ResponseWriter, r *http.Request) {
	tenantID, err := parseUUIDParam(r, "tenantId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid tenant id")
		return
	}
	var req tenantUpdateRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}

	t, err := s.tenantSvc.Update(r.Context(), tenantID, appTenant.UpdateInput{
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
		Active: req.Active,
		Actor:  s.actorFromRequest(r),
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, t)
}
