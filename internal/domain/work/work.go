package work

import (
	"context"
	"time"

	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Work is a construction site/project. The reconciliation core only reads
// its identity and maintains the validated-expense rollup total.
type Work struct {
	shared.OrgAggregateRoot
	Name               string          `gorm:"type:varchar(200);not null"`
	Address            string          `gorm:"type:varchar(300)"`
	TotalExpenses      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	TotalsRefreshedAt  *time.Time
	IsActive           bool `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (Work) TableName() string {
	return "works"
}

// RefreshTotals overwrites the rollup with a freshly aggregated figure
func (w *Work) RefreshTotals(totalExpenses decimal.Decimal) {
	now := time.Now()
	w.TotalExpenses = totalExpenses
	w.TotalsRefreshedAt = &now
	w.UpdatedAt = now
}

// Repository defines persistence operations for works
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Work, error)
	Save(ctx context.Context, w *Work) error
}
