package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	appAgent "github.com/estate-hub/estate-hub/internal/application/agent"
	appAudit "github.com/estate-hub/estate-hub/internal/application/audit"
	appAuth "github.com/estate-hub/estate-hub/internal/application/auth"
	appCommission "github.com/estate-hub/estate-hub/internal/application/commission"
	appLease "github.com/estate-hub/estate-hub/internal/application/lease"
	appProperty "github.com/estate-hub/estate-hub/internal/application/property"
	appSale "github.com/estate-hub/estate-hub/internal/application/sale"
	appTenant "github.com/estate-hub/estate-hub/internal/application/tenant"
	appUser "github.com/estate-hub/estate-hub/internal/application/user"
	domainUser "github.com/estate-hub/estate-hub/internal/domain/user"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	propertySvc         *appProperty.Service
	agentSvc            *appAgent.Service
	tenantSvc           *appTenant.Service
	leaseSvc            *appLease.Service
	saleSvc             *appSale.Service
	commissionSvc       *appCommission.Service
	auditSvc            *appAudit.Service
	authSvc             *appAuth.Service
	userSvc             *appUser.Service
	sessionCookieName   string
	sessionCookieSecure bool
}

func NewServer(
	propertySvc *appProperty.Service,
	agentSvc *appAgent.Service,
	tenantSvc *appTenant.Service,
	leaseSvc *appLease.Service,
	saleSvc *appSale.Service,
	commissionSvc *appCommission.Service,
	auditSvc *appAudit.Service,
	authSvc *appAuth.Service,
	userSvc *appUser.Service,
	sessionCookieName string,
	sessionCookieSecure bool,
) *Server {
	return &Server{
		propertySvc:         propertySvc,
		agentSvc:            agentSvc,
		tenantSvc:           tenantSvc,
		leaseSvc:            leaseSvc,
		saleSvc:             saleSvc,
		commissionSvc:       commissionSvc,
		auditSvc:            auditSvc,
		authSvc:             authSvc,
		userSvc:             userSvc,
		sessionCookieName:   sessionCookieName,
		sessionCookieSecure: sessionCookieSecure,
	}
}

// Router builds the HTTP router.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	admin := string(domainUser.RoleAdmin)
	manager := string(domainUser.RoleManager)
	finance := string(domainUser.RoleFinance)

	r.Route("/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", s.login)
			r.Post("/bootstrap", s.bootstrapAdmin)
			r.Group(func(r chi.Router) {
				r.Use(s.requireAuth)
				r.Post("/logout", s.logout)
				r.Get("/me", s.me)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)

			r.Route("/properties", func(r chi.Router) {
				r.With(s.requireRole(admin, manager)).Post("/", s.createProperty)
				r.Get("/", s.listProperties)
				r.Get("/{propertyId}", s.getProperty)
				r.With(s.requireRole(admin, manager)).Patch("/{propertyId}", s.updateProperty)
			})

			r.Route("/agents", func(r chi.Router) {
				r.With(s.requireRole(admin, manager)).Post("/", s.createAgent)
				r.Get("/", s.listAgents)
				r.Get("/{agentId}", s.getAgent)
				r.With(s.requireRole(admin, manager)).Patch("/{agentId}", s.updateAgent)
				r.Get("/{agentId}/performance", s.agentPerformance)
			})

			r.Route("/tenants", func(r chi.Router) {
				r.With(s.requireRole(admin, manager)).Post("/", s.createTenant)
				r.Get("/", s.listTenants)
				r.Get("/{tenantId}", s.getTenant)
				r.With(s.requireRole(admin, manager)).Patch("/{tenantId}", s.updateTenant)
			})

			r.Route("/leases", func(r chi.Router) {
				r.Post("/", s.createLease)
				r.Get("/", s.listLeases)
				r.Get("/{leaseId}", s.getLease)
				r.Put("/{leaseId}", s.updateLease)
				r.With(s.requireRole(admin, manager)).Delete("/{leaseId}", s.archiveLease)
				r.Post("/{leaseId}/renew", s.renewLease)
				r.Post("/{leaseId}/terminate", s.terminateLease)
				r.Get("/{leaseId}/renewals", s.listLeaseRenewals)
			})

			r.Route("/sales", func(r chi.Router) {
				r.Post("/", s.createSale)
				r.Get("/", s.listSales)
				r.Get("/{saleId}", s.getSale)
				r.Post("/{saleId}/cancel", s.cancelSale)
			})

			r.Route("/commission-rules", func(r chi.Router) {
				r.With(s.requireRole(admin, manager)).Post("/", s.createCommissionRule)
				r.Get("/", s.listCommissionRules)
				r.Get("/{ruleId}", s.getCommissionRule)
				r.With(s.requireRole(admin, manager)).Patch("/{ruleId}/validity", s.updateCommissionRuleValidity)
				r.With(s.requireRole(admin, manager)).Post("/{ruleId}/deactivate", s.deactivateCommissionRule)
			})

			r.Route("/commission-transactions", func(r chi.Router) {
				r.Post("/", s.recordCommission)
				r.Post("/bulk", s.bulkRecordCommission)
				r.Get("/", s.listCommissionTransactions)
				r.Get("/{transactionId}", s.getCommissionTransaction)
				r.With(s.requireRole(admin, finance)).Post("/{transactionId}/pay", s.payCommission)
				r.With(s.requireRole(admin, finance)).Post("/{transactionId}/cancel", s.cancelCommission)
			})

			r.Route("/users", func(r chi.Router) {
				r.With(s.requireRole(admin)).Post("/", s.createUser)
				r.With(s.requireRole(admin)).Get("/", s.listUsers)
				r.Get("/{userId}", s.getUser)
				r.With(s.requireRole(admin)).Patch("/{userId}", s.updateUser)
			})

			r.Route("/admin", func(r chi.Router) {
				r.With(s.requireRole(admin)).Get("/audit", s.queryAudit)
			})
		})
	})

	return r
}

// Helpers
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, map[string]interface{}{
		"error":   code,
		"message": message,
	})
}

func parseUUIDParam(r *http.Request, key string) (uuid.UUID, error) {
	val := chi.URLParam(r, key)
	return uuid.Parse(val)
}

func decodeBody(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func (s *Server) actorFromRequest(r *http.Request) string {
	if u := authUserFromContext(r.Context()); u != nil {
		return u.ActorString()
	}
	return "system"
}

func parseLimitOffset(r *http.Request, defaultLimit, maxLimit int) (int, int) {
	limit := defaultLimit
	offset := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if l, err := strconv.Atoi(v); err == nil {
			limit = l
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if o, err := strconv.Atoi(v); err == nil {
			offset = o
		}
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
