package httpapi

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	appUser "github.com/estate-hub/estate-hub/internal/application/user"
	domainUser "github.com/estate-hub/estate-hub/internal/domain/user"
)

type userCreateRequest struct {
	Username string  `json:"username"`
	Password string  `json:"password"`
	Role     string  `json:"role"`
	AgentID  *string `json:"agent_id,omitempty"`
	Status   string  `json:"status,omitempty"`
}

type userUpdateRequest struct {
	Username *string `json:"username,omitempty"`
	Role     *string `json:"role,omitempty"`
	Status   *string `json:"status,omitempty"`
	AgentID  *string `json:"agent_id,omitempty"`
}

type userResponse struct {
	UserID    string  `json:"userId"`
	Username  string  `json:"username"`
	Role      string  `json:"role"`
	AgentID   *string `json:"agentId,omitempty"`
	Status    string  `json:"status"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
}

func toUserResponse(u *domainUser.User) userResponse {
	resp := userResponse{
		UserID:    u.UserID.String(),
		Username:  u.Username,
		Role:      string(u.Role),
		Status:    string(u.Status),
		CreatedAt: u.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: u.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if u.AgentID != nil {
		agentID := u.AgentID.String()
		resp.AgentID = &agentID
	}
	return resp
}

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	var req userCreateRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	in := appUser.CreateInput{
		Username: req.Username,
		Password: req.Password,
		Role:     domainUser.Role(req.Role),
		Status:   domainUser.Status(req.Status),
	}
	if req.AgentID != nil {
		id, err := uuid.Parse(*req.AgentID)
		if err != nil {
			respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid agent_id")
			return
		}
		in.AgentID = &id
	}

	u, err := s.userSvc.CreateUser(r.Context(), in)
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, toUserResponse(u))
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	userID, err := parseUUIDParam(r, "userId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid user id")
		return
	}
	auth := authUserFromContext(r.Context())
	if auth == nil {
		respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return
	}
	// Non-admins can only read their own account.
	if auth.Role != domainUser.RoleAdmin && auth.UserID != userID {
		respondError(w, http.StatusForbidden, "FORBIDDEN", "insufficient role")
		return
	}

	u, err := s.userSvc.GetUser(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	if u == nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "user not found")
		return
	}
	respondJSON(w, http.StatusOK, toUserResponse(u))
}

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	limit, offset := parseLimitOffset(r, 50, 200)
	filter := domainUser.Filter{}
	if v := r.URL.Query().Get("role"); v != "" {
		role := domainUser.Role(v)
		if err := domainUser.ValidateRole(role); err != nil {
			respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid role")
			return
		}
		filter.Role = &role
	}
	if v := r.URL.Query().Get("status"); v != "" {
		status := domainUser.Status(v)
		if err := domainUser.ValidateStatus(status); err != nil {
			respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid status")
			return
		}
		filter.Status = &status
	}
	if v := r.URL.Query().Get("username"); v != "" {
		filter.Username = &v
	}

	users, err := s.userSvc.ListUsers(r.Context(), filter, limit, offset)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	resp := make([]userResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, toUserResponse(u))
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"users": resp})
}

func (s *Server) updateUser(w http.ResponseWriter, r *http.Request) {
	userID, err := parseUUIDParam(r, "userId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid user id")
		return
	}
	var req userUpdateRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}

	in := appUser.UpdateInput{Username: req.Username}
	if req.Role != nil {
		role := domainUser.Role(*req.Role)
		in.Role = &role
	}
	if req.Status != nil {
		status := domainUser.Status(*req.Status)
		in.Status = &status
	}
	if req.AgentID != nil {
		id, err := uuid.Parse(*req.AgentID)
		if err != nil {
			respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid agent_id")
			return
		}
		in.AgentID = &id
	}

	u, err := s.userSvc.UpdateUser(r.Context(), userID, in)
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, toUserResponse(u))
}
