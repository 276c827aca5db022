package persistence

import (
	"context"

	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/alert"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GormAlertRepository implements alert.Repository using GORM
type GormAlertRepository struct {
	db *gorm.DB
}

// NewGormAlertRepository creates a new GormAlertRepository
func NewGormAlertRepository(db *gorm.DB) *GormAlertRepository {
	return &GormAlertRepository{db: db}
}

// Create inserts a new alert
func (r *GormAlertRepository) Create(ctx context.Context, a *alert.Alert) error {
	return r.db.WithContext(ctx).Create(a).Error
}

// HasOpen reports whether an open alert of the given type already exists
// for a supplier
func (r *GormAlertRepository) HasOpen(ctx context.Context, alertType alert.Type, supplierID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&alert.Alert{}).
		Where("type = ? AND supplier_id = ? AND status = ?", alertType, supplierID, alert.StatusOpen).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

var _ alert.Repository = (*GormAlertRepository)(nil)

// GormAlertEmitter is the fire-and-forget alert sink. Persistence failures
// are logged and swallowed so an alert can never abort the operation that
// raised it.
type GormAlertEmitter struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewGormAlertEmitter creates a new GormAlertEmitter
func NewGormAlertEmitter(db *gorm.DB, logger *zap.Logger) *GormAlertEmitter {
	return &GormAlertEmitter{
		db:     db,
		logger: logger.Named("alerts"),
	}
}

// Emit persists the alert best-effort. Writes go through the root DB
// handle, never a caller's transaction, so an emitted alert survives a
// rollback of the operation that raised it.
func (e *GormAlertEmitter) Emit(ctx context.Context, a *alert.Alert) {
	if err := e.db.WithContext(ctx).Create(a).Error; err != nil {
		e.logger.Warn("failed to persist alert",
			zap.String("type", string(a.Type)),
			zap.String("severity", string(a.Severity)),
			zap.String("message", a.Message),
			zap.Error(err),
		)
		return
	}
	e.logger.Info("alert emitted",
		zap.String("type", string(a.Type)),
		zap.String("severity", string(a.Severity)),
		zap.String("message", a.Message),
	)
}

var _ alert.Emitter = (*GormAlertEmitter)(nil)
