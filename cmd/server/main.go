package main

import (
	"context"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	httpapi "github.com/estate-hub/estate-hub/internal/api/http"
	"github.com/estate-hub/estate-hub/internal/application/agent"
	"github.com/estate-hub/estate-hub/internal/application/audit"
	"github.com/estate-hub/estate-hub/internal/application/auth"
	"github.com/estate-hub/estate-hub/internal/application/commission"
	"github.com/estate-hub/estate-hub/internal/application/lease"
	"github.com/estate-hub/estate-hub/internal/application/property"
	"github.com/estate-hub/estate-hub/internal/application/sale"
	"github.com/estate-hub/estate-hub/internal/application/scheduler"
	"github.com/estate-hub/estate-hub/internal/application/tenant"
	"github.com/estate-hub/estate-hub/internal/application/user"
	"github.com/estate-hub/estate-hub/internal/config"
	"github.com/estate-hub/estate-hub/internal/infrastructure/postgres"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db error: %v", err)
	}
	defer pool.Close()

	if err := postgres.RunMigrations(ctx, pool, cfg.MigrationsDir); err != nil {
		log.Fatalf("migration error: %v", err)
	}

	// repositories
	propertyRepo := postgres.NewPropertyRepository(pool)
	agentRepo := postgres.NewAgentRepository(pool)
	tenantRepo := postgres.NewTenantRepository(pool)
	leaseRepo := postgres.NewLeaseRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	ruleRepo := postgres.NewCommissionRuleRepository(pool)
	txRepo := postgres.NewCommissionTransactionRepository(pool)
	auditRepo := postgres.NewAuditRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	sessionRepo := postgres.NewSessionRepository(pool)

	// services
	auditKey := loadHexKey(cfg.AuditSigningKey)
	auditSvc := audit.NewService(auditRepo, logger, auditKey)
	propertySvc := property.NewService(propertyRepo, auditSvc, logger)
	agentSvc := agent.NewService(agentRepo, auditSvc, logger)
	tenantSvc := tenant.NewService(tenantRepo, auditSvc, logger)
	leaseSvc := lease.NewService(leaseRepo, tenantRepo, auditSvc, logger)
	saleSvc := sale.NewService(saleRepo, auditSvc, logger)
	commissionSvc := commission.NewService(ruleRepo, txRepo, agentRepo, auditSvc, logger)
	userSvc := user.NewService(userRepo, logger)
	authSvc := auth.NewService(userRepo, sessionRepo, cfg.SessionTTL, auditSvc, logger)

	// API server
	apiServer := httpapi.NewServer(
		propertySvc,
		agentSvc,
		tenantSvc,
		leaseSvc,
		saleSvc,
		commissionSvc,
		auditSvc,
		authSvc,
		userSvc,
		cfg.SessionCookieName,
		cfg.SessionCookieSecure,
	)

	httpServer := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      apiServer.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// background loops
	sweeperCtx, stopSweeper := context.WithCancel(ctx)
	defer stopSweeper()
	sweeper := scheduler.NewExpirySweeper(leaseSvc, cfg.ExpirySweepInterval, cfg.ExpirySweepBatch, logger)
	go sweeper.Run(sweeperCtx)

	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			_, _ = authSvc.CleanupExpiredSessions(context.Background())
		}
	}()

	// start server
	go func() {
		logger.Info().Str("addr", cfg.ServerAddr).Msg("http server started")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	stopSweeper()
	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(ctxShutdown)
}

func loadHexKey(hexStr string) []byte {
	if hexStr == "" {
		return nil
	}
	b, err := hex.DecodeString(hexStr)
	if err != nil {
		return nil
	}
	return b
}
