package persistence

import (
	"context"
	"errors"

	"github.com/Augusto-pmd/pmd-backend-sub000/internal/application/finance"
	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GormWorkTotalsRecomputer maintains the per-work validated-expense rollup.
// It runs as a follow-up after a VALIDATED transition commits; the total is
// recomputed from the stored expenses in a fresh transaction, never
// incremented.
type GormWorkTotalsRecomputer struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewGormWorkTotalsRecomputer creates a new GormWorkTotalsRecomputer
func NewGormWorkTotalsRecomputer(db *gorm.DB, logger *zap.Logger) *GormWorkTotalsRecomputer {
	return &GormWorkTotalsRecomputer{
		db:     db,
		logger: logger.Named("work-totals"),
	}
}

// RecomputeTotals re-aggregates the validated expense total for a work
func (r *GormWorkTotalsRecomputer) RecomputeTotals(ctx context.Context, workID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		works := NewGormWorkRepository(tx)
		w, err := works.FindByID(ctx, workID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				r.logger.Warn("work not found for totals recompute",
					zap.String("work_id", workID.String()))
				return nil
			}
			return err
		}

		total, err := NewGormExpenseRepository(tx).SumValidatedByWork(ctx, workID)
		if err != nil {
			return err
		}

		w.RefreshTotals(total)
		return works.Save(ctx, w)
	})
}

var _ finance.WorkTotalsRecomputer = (*GormWorkTotalsRecomputer)(nil)
