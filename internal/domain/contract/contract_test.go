package contract

import (
	"testing"
	"time"

	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/shared"
	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContract(t *testing.T, total float64) *Contract {
	t.Helper()
	c, err := NewContract(uuid.New(), uuid.New(), uuid.New(), decimal.NewFromFloat(total), valueobject.ARS)
	require.NoError(t, err)
	return c
}

func TestNewContract_RejectsNonPositiveTotal(t *testing.T) {
	_, err := NewContract(uuid.New(), uuid.New(), uuid.New(), decimal.Zero, valueobject.ARS)
	assert.Error(t, err)
	assert.True(t, shared.IsDomainError(err, "INVALID_AMOUNT"))

	_, err = NewContract(uuid.New(), uuid.New(), uuid.New(), decimal.NewFromFloat(-10), valueobject.ARS)
	assert.Error(t, err)
}

func TestNewContract_DefaultsCurrency(t *testing.T) {
	c, err := NewContract(uuid.New(), uuid.New(), uuid.New(), decimal.NewFromInt(1000), "")
	require.NoError(t, err)
	assert.Equal(t, valueobject.ARS, c.Currency)
	assert.Equal(t, StatusPending, c.Status)
	assert.True(t, c.AmountExecuted.IsZero())
}

func TestContract_Available(t *testing.T) {
	c := newTestContract(t, 100000)
	c.AmountExecuted = decimal.NewFromInt(30000)

	assert.Equal(t, "70000", c.Available().String())
}

func TestContract_CheckSufficiency_ReportsNumbers(t *testing.T) {
	c := newTestContract(t, 100000)
	c.AmountExecuted = decimal.NewFromInt(50000)

	available, err := c.CheckSufficiency(decimal.NewFromInt(60000))
	assert.Error(t, err)
	assert.True(t, shared.IsDomainError(err, "INSUFFICIENT_BALANCE"))
	assert.Equal(t, "Contract has insufficient balance. Available: 50000.00, Required: 60000.00", err.Error())
	assert.Equal(t, "50000", available.String())
}

func TestContract_CheckSufficiency_ExactFit(t *testing.T) {
	c := newTestContract(t, 100000)
	c.AmountExecuted = decimal.NewFromInt(50000)

	_, err := c.CheckSufficiency(decimal.NewFromInt(50000))
	assert.NoError(t, err)
}

func TestContract_Apply_AutoBlocksAtZero(t *testing.T) {
	c := newTestContract(t, 100000)

	becameBlocked := c.Apply(decimal.NewFromInt(40000))
	assert.False(t, becameBlocked)
	assert.False(t, c.IsBlocked)

	becameBlocked = c.Apply(decimal.NewFromInt(60000))
	assert.True(t, becameBlocked)
	assert.True(t, c.IsBlocked)
	assert.True(t, c.Available().IsZero())

	// Already blocked, a further apply does not report a new block
	becameBlocked = c.Apply(decimal.NewFromInt(1))
	assert.False(t, becameBlocked)
	assert.True(t, c.IsBlocked)
}

func TestContract_Reverse_ClampsAtZero(t *testing.T) {
	c := newTestContract(t, 100000)
	c.AmountExecuted = decimal.NewFromInt(5000)

	c.Reverse(decimal.NewFromInt(8000))
	assert.True(t, c.AmountExecuted.IsZero())
}

func TestContract_Reverse_NeverUnblocks(t *testing.T) {
	c := newTestContract(t, 100000)
	c.Apply(decimal.NewFromInt(100000))
	require.True(t, c.IsBlocked)

	c.Reverse(decimal.NewFromInt(100000))
	assert.True(t, c.IsBlocked)
	assert.Equal(t, "100000", c.Available().String())
}

func TestContract_Override(t *testing.T) {
	c := newTestContract(t, 100000)
	c.Apply(decimal.NewFromInt(100000))
	require.True(t, c.IsBlocked)

	c.Override(false)
	assert.False(t, c.IsBlocked)

	c.Override(true)
	assert.True(t, c.IsBlocked)
}

func TestContract_IsEligible(t *testing.T) {
	c := newTestContract(t, 100000)
	assert.True(t, c.IsEligible())

	c.IsBlocked = true
	assert.False(t, c.IsEligible())

	c.IsBlocked = false
	c.Status = StatusFinished
	assert.False(t, c.IsEligible())
}

func TestSelectEligible_PrefersActiveStatus(t *testing.T) {
	pending := newTestContract(t, 1000)
	pending.Status = StatusPending
	approved := newTestContract(t, 1000)
	approved.Status = StatusApproved
	active := newTestContract(t, 1000)
	active.Status = StatusActive

	selected := SelectEligible([]*Contract{pending, approved, active})
	require.NotNil(t, selected)
	assert.Equal(t, active.ID, selected.ID)

	selected = SelectEligible([]*Contract{pending, approved})
	require.NotNil(t, selected)
	assert.Equal(t, approved.ID, selected.ID)
}

func TestSelectEligible_TieBreaksOnMostRecent(t *testing.T) {
	older := newTestContract(t, 1000)
	older.Status = StatusActive
	older.CreatedAt = time.Now().Add(-48 * time.Hour)
	newer := newTestContract(t, 1000)
	newer.Status = StatusActive
	newer.CreatedAt = time.Now()

	selected := SelectEligible([]*Contract{older, newer})
	require.NotNil(t, selected)
	assert.Equal(t, newer.ID, selected.ID)
}

func TestSelectEligible_SkipsBlockedAndFinished(t *testing.T) {
	blocked := newTestContract(t, 1000)
	blocked.Status = StatusActive
	blocked.IsBlocked = true
	finished := newTestContract(t, 1000)
	finished.Status = StatusFinished

	assert.Nil(t, SelectEligible([]*Contract{blocked, finished}))
	assert.Nil(t, SelectEligible(nil))
}
