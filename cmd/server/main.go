package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	certificationapp "github.com/Augusto-pmd/pmd-backend-sub000/internal/application/certification"
	financeapp "github.com/Augusto-pmd/pmd-backend-sub000/internal/application/finance"
	"github.com/Augusto-pmd/pmd-backend-sub000/internal/application/followup"
	payrollapp "github.com/Augusto-pmd/pmd-backend-sub000/internal/application/payroll"
	"github.com/Augusto-pmd/pmd-backend-sub000/internal/infrastructure/config"
	"github.com/Augusto-pmd/pmd-backend-sub000/internal/infrastructure/logger"
	"github.com/Augusto-pmd/pmd-backend-sub000/internal/infrastructure/persistence"
	"github.com/Augusto-pmd/pmd-backend-sub000/internal/infrastructure/scheduler"
	"github.com/Augusto-pmd/pmd-backend-sub000/internal/interfaces/http/handler"
	"github.com/Augusto-pmd/pmd-backend-sub000/internal/interfaces/http/middleware"
	"github.com/Augusto-pmd/pmd-backend-sub000/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting reconciliation backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
	)

	gormLogger := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh),
	)
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLogger)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", zap.Error(err))
		}
	}()

	tracingCfg := persistence.TracingConfig{
		Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
		DBSystem:        "postgresql",
	}
	if err := persistence.RegisterTracing(db.DB, tracingCfg, log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}

	// Wiring: one transaction scope shared by all services, alerts
	// emitted outside it.
	scope := persistence.NewGormTransactionScope(db.DB)
	emitter := persistence.NewGormAlertEmitter(db.DB, log)
	rollup := persistence.NewGormWorkTotalsRecomputer(db.DB, log)
	executor := followup.NewExecutor(log)

	accountingService := financeapp.NewAccountingService()
	autoCreator := financeapp.NewExpenseAutoCreator()
	validationService := financeapp.NewExpenseValidationService(
		scope, accountingService, emitter, rollup, executor, log)
	payrollService := payrollapp.NewPayrollService(scope, autoCreator, log)
	certificationService := certificationapp.NewCertificationService(
		scope, validationService, autoCreator, emitter, executor, log)

	payrollScheduler := scheduler.NewPayrollScheduler(
		payrollService,
		persistence.NewGormOrganizationSource(db.DB),
		log,
		scheduler.PayrollSchedulerConfig{
			Enabled:        cfg.Payroll.SchedulerEnabled,
			CheckInterval:  cfg.Payroll.CheckInterval,
			RunWeekday:     cfg.Payroll.RunWeekday,
			CreateExpenses: cfg.Payroll.CreateExpenses,
			JobTimeout:     cfg.Payroll.JobTimeout,
		},
	)
	if err := payrollScheduler.Start(context.Background()); err != nil {
		log.Fatal("Failed to start payroll scheduler", zap.Error(err))
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())

	engine.GET("/health", healthHandler(db, log))
	engine.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	router.NewRouter(engine).
		Register(handler.NewExpenseHandler(validationService)).
		Register(handler.NewPayrollHandler(payrollService)).
		Register(handler.NewCertificationHandler(certificationService)).
		Setup()

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := payrollScheduler.Stop(ctx); err != nil {
		log.Error("Payroll scheduler shutdown error", zap.Error(err))
	}
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			log.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
