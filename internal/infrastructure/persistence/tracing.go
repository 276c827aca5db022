package persistence

import (
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TracingConfig holds configuration for database query tracing
type TracingConfig struct {
	Enabled         bool
	SlowQueryThresh time.Duration
	DBSystem        string
}

// DefaultTracingConfig returns the default tracing configuration
func DefaultTracingConfig() TracingConfig {
	return TracingConfig{
		Enabled:         false,
		SlowQueryThresh: 200 * time.Millisecond,
		DBSystem:        "postgresql",
	}
}

// RegisterTracing registers the otelgorm plugin plus a slow-query marker on
// the given GORM DB instance. A no-op when tracing is disabled.
func RegisterTracing(db *gorm.DB, cfg TracingConfig, logger *zap.Logger) error {
	if !cfg.Enabled {
		logger.Debug("database tracing disabled, skipping otelgorm registration")
		return nil
	}

	// Query variables stay out of spans; parameter values may carry
	// financial data.
	plugin := otelgorm.NewPlugin(
		otelgorm.WithDBName(cfg.DBSystem),
		otelgorm.WithoutQueryVariables(),
	)
	if err := db.Use(plugin); err != nil {
		return err
	}

	if err := registerSlowQueryCallback(db, cfg.SlowQueryThresh); err != nil {
		return err
	}

	logger.Info("database tracing enabled",
		zap.Duration("slow_query_threshold", cfg.SlowQueryThresh),
		zap.String("db_system", cfg.DBSystem),
	)
	return nil
}

func registerSlowQueryCallback(db *gorm.DB, threshold time.Duration) error {
	before := func(tx *gorm.DB) {
		tx.InstanceSet("pmd:query_start", time.Now())
	}
	after := func(tx *gorm.DB) {
		v, ok := tx.InstanceGet("pmd:query_start")
		if !ok {
			return
		}
		start, ok := v.(time.Time)
		if !ok {
			return
		}
		elapsed := time.Since(start)
		if elapsed < threshold {
			return
		}
		span := trace.SpanFromContext(tx.Statement.Context)
		if span == nil || !span.SpanContext().IsValid() {
			return
		}
		span.SetAttributes(
			attribute.Bool("db.slow_query", true),
			attribute.Int64("db.elapsed_ms", elapsed.Milliseconds()),
		)
	}

	if err := db.Callback().Query().Before("gorm:query").Register("pmd:before_query", before); err != nil {
		return err
	}
	if err := db.Callback().Query().After("gorm:query").Register("pmd:after_query", after); err != nil {
		return err
	}
	if err := db.Callback().Create().Before("gorm:create").Register("pmd:before_create", before); err != nil {
		return err
	}
	if err := db.Callback().Create().After("gorm:create").Register("pmd:after_create", after); err != nil {
		return err
	}
	if err := db.Callback().Update().Before("gorm:update").Register("pmd:before_update", before); err != nil {
		return err
	}
	if err := db.Callback().Update().After("gorm:update").Register("pmd:after_update", after); err != nil {
		return err
	}
	if err := db.Callback().Delete().Before("gorm:delete").Register("pmd:before_delete", before); err != nil {
		return err
	}
	if err := db.Callback().Delete().After("gorm:delete").Register("pmd:after_delete", after); err != nil {
		return err
	}
	return nil
}
