package persistence

import (
	"context"
	"errors"

	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/shared"
	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/work"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormWorkRepository implements work.Repository using GORM
type GormWorkRepository struct {
	db *gorm.DB
}

// NewGormWorkRepository creates a new GormWorkRepository
func NewGormWorkRepository(db *gorm.DB) *GormWorkRepository {
	return &GormWorkRepository{db: db}
}

// FindByID finds a work by its ID
func (r *GormWorkRepository) FindByID(ctx context.Context, id uuid.UUID) (*work.Work, error) {
	var w work.Work
	if err := r.db.WithContext(ctx).First(&w, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &w, nil
}

// Save persists a work
func (r *GormWorkRepository) Save(ctx context.Context, w *work.Work) error {
	return r.db.WithContext(ctx).Save(w).Error
}

var _ work.Repository = (*GormWorkRepository)(nil)
