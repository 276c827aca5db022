package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/certification"
	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormCertificationRepository implements certification.Repository using GORM
type GormCertificationRepository struct {
	db *gorm.DB
}

// NewGormCertificationRepository creates a new GormCertificationRepository
func NewGormCertificationRepository(db *gorm.DB) *GormCertificationRepository {
	return &GormCertificationRepository{db: db}
}

// FindByID finds a certification by its ID
func (r *GormCertificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*certification.Certification, error) {
	var cert certification.Certification
	if err := r.db.WithContext(ctx).First(&cert, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &cert, nil
}

// FindBySupplierWeek returns the certification for the composite natural
// key, or nil when the week is uncertified
func (r *GormCertificationRepository) FindBySupplierWeek(ctx context.Context, supplierID uuid.UUID, weekStartDate time.Time) (*certification.Certification, error) {
	var cert certification.Certification
	err := r.db.WithContext(ctx).
		Where("supplier_id = ? AND week_start_date = ?", supplierID, weekStartDate).
		First(&cert).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cert, nil
}

// SumBySupplier totals all certified amounts for a supplier
func (r *GormCertificationRepository) SumBySupplier(ctx context.Context, supplierID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.WithContext(ctx).
		Model(&certification.Certification{}).
		Select("SUM(amount)").
		Where("supplier_id = ?", supplierID).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

// Save persists a certification
func (r *GormCertificationRepository) Save(ctx context.Context, cert *certification.Certification) error {
	return r.db.WithContext(ctx).Save(cert).Error
}

// Delete removes a certification
func (r *GormCertificationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&certification.Certification{}, "id = ?", id).Error
}

var _ certification.Repository = (*GormCertificationRepository)(nil)
