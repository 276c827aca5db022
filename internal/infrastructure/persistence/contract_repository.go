package persistence

import (
	"context"
	"errors"

	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/contract"
	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormContractRepository implements contract.Repository using GORM
type GormContractRepository struct {
	db *gorm.DB
}

// NewGormContractRepository creates a new GormContractRepository
func NewGormContractRepository(db *gorm.DB) *GormContractRepository {
	return &GormContractRepository{db: db}
}

// FindByID finds a contract by its ID
func (r *GormContractRepository) FindByID(ctx context.Context, id uuid.UUID) (*contract.Contract, error) {
	var c contract.Contract
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// FindByIDForUpdate loads the contract with a row-level lock held until the
// enclosing transaction ends. Concurrent validations against the same
// contract serialize here, so no sufficiency check runs against a stale
// balance.
func (r *GormContractRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*contract.Contract, error) {
	var c contract.Contract
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// FindEligibleForUpdate returns the unblocked, unfinished contracts for a
// (supplier, work) pair with their rows locked, newest first.
func (r *GormContractRepository) FindEligibleForUpdate(ctx context.Context, supplierID, workID uuid.UUID) ([]*contract.Contract, error) {
	var contracts []*contract.Contract
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("supplier_id = ? AND work_id = ? AND is_blocked = ? AND status <> ?",
			supplierID, workID, false, contract.StatusFinished).
		Order("created_at DESC").
		Find(&contracts).Error
	if err != nil {
		return nil, err
	}
	return contracts, nil
}

// FindBySupplier returns all contracts for a supplier, newest first
func (r *GormContractRepository) FindBySupplier(ctx context.Context, supplierID uuid.UUID) ([]*contract.Contract, error) {
	var contracts []*contract.Contract
	err := r.db.WithContext(ctx).
		Where("supplier_id = ?", supplierID).
		Order("created_at DESC").
		Find(&contracts).Error
	if err != nil {
		return nil, err
	}
	return contracts, nil
}

// Save persists a contract
func (r *GormContractRepository) Save(ctx context.Context, c *contract.Contract) error {
	return r.db.WithContext(ctx).Save(c).Error
}

var _ contract.Repository = (*GormContractRepository)(nil)
