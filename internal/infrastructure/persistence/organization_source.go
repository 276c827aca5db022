package persistence

import (
	"context"

	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/payroll"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOrganizationSource lists the organizations that currently have active
// employees. Used by the payroll scheduler to decide which organizations a
// weekly run covers.
type GormOrganizationSource struct {
	db *gorm.DB
}

// NewGormOrganizationSource creates a new GormOrganizationSource
func NewGormOrganizationSource(db *gorm.DB) *GormOrganizationSource {
	return &GormOrganizationSource{db: db}
}

// ActiveOrganizationIDs returns the distinct organization ids with at least
// one active employee
func (s *GormOrganizationSource) ActiveOrganizationIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := s.db.WithContext(ctx).
		Model(&payroll.Employee{}).
		Distinct("organization_id").
		Where("is_active = ?", true).
		Pluck("organization_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
