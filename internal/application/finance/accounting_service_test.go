package finance

import (
	"context"
	"testing"
	"time"

	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/accounting"
	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/expense"
	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/shared"
	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newRecordableExpense(t *testing.T) *expense.Expense {
	t.Helper()
	supplierID := uuid.New()
	e, err := expense.NewExpense(uuid.New(), uuid.New(), &supplierID,
		decimal.NewFromInt(12100), valueobject.ARS, expense.DocumentTypeInvoiceA, "Sand", time.Now())
	require.NoError(t, err)
	e.TaxAmount = decimal.NewFromInt(2100)
	return e
}

func TestRecordIfAbsent_CreatesSnapshot(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAccountingRepository)
	service := NewAccountingService()
	e := newRecordableExpense(t)

	repo.On("FindByExpenseID", ctx, e.ID).Return(nil, nil)
	repo.On("Create", ctx, mock.AnythingOfType("*accounting.Record")).Return(nil)

	record, created, err := service.RecordIfAbsent(ctx, repo, e)

	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, e.ID, record.ExpenseID)
	assert.Equal(t, "12100", record.Amount.String())
	assert.Equal(t, "2100", record.TaxAmount.String())
	assert.Equal(t, "10000", record.NetAmount.String())
	repo.AssertExpectations(t)
}

func TestRecordIfAbsent_ReturnsExistingUnchanged(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAccountingRepository)
	service := NewAccountingService()
	e := newRecordableExpense(t)
	existing := accounting.NewRecordFromExpense(e)

	repo.On("FindByExpenseID", ctx, e.ID).Return(existing, nil)

	record, created, err := service.RecordIfAbsent(ctx, repo, e)

	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, existing.ID, record.ID)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRecordIfAbsent_ToleratesNotFoundError(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAccountingRepository)
	service := NewAccountingService()
	e := newRecordableExpense(t)

	repo.On("FindByExpenseID", ctx, e.ID).Return(nil, shared.ErrNotFound)
	repo.On("Create", ctx, mock.AnythingOfType("*accounting.Record")).Return(nil)

	_, created, err := service.RecordIfAbsent(ctx, repo, e)

	require.NoError(t, err)
	assert.True(t, created)
}

func TestRecordIfAbsent_SnapshotSurvivesLaterEdits(t *testing.T) {
	e := newRecordableExpense(t)
	record := accounting.NewRecordFromExpense(e)

	e.Amount = decimal.NewFromInt(99999)

	assert.Equal(t, "12100", record.Amount.String())
	assert.Equal(t, "10000", record.NetAmount.String())
}
