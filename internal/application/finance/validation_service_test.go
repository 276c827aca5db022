package finance

import (
	"context"
	"testing"
	"time"

	"github.com/Augusto-pmd/pmd-backend-sub000/internal/application/followup"
	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/accounting"
	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/alert"
	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/certification"
	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/contract"
	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/expense"
	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/identity"
	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/partner"
	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/payroll"
	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/shared"
	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// =============================================================================
// Mock repositories shared by the finance application tests
// =============================================================================

type MockContractRepository struct {
	mock.Mock
}

func (m *MockContractRepository) FindByID(ctx context.Context, id uuid.UUID) (*contract.Contract, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*contract.Contract), args.Error(1)
}

func (m *MockContractRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*contract.Contract, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*contract.Contract), args.Error(1)
}

func (m *MockContractRepository) FindEligibleForUpdate(ctx context.Context, supplierID, workID uuid.UUID) ([]*contract.Contract, error) {
	args := m.Called(ctx, supplierID, workID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*contract.Contract), args.Error(1)
}

func (m *MockContractRepository) FindBySupplier(ctx context.Context, supplierID uuid.UUID) ([]*contract.Contract, error) {
	args := m.Called(ctx, supplierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*contract.Contract), args.Error(1)
}

func (m *MockContractRepository) Save(ctx context.Context, c *contract.Contract) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*expense.Expense, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*expense.Expense), args.Error(1)
}

func (m *MockExpenseRepository) FindByWork(ctx context.Context, workID uuid.UUID, filter shared.Filter) ([]expense.Expense, error) {
	args := m.Called(ctx, workID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]expense.Expense), args.Error(1)
}

func (m *MockExpenseRepository) Save(ctx context.Context, e *expense.Expense) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockExpenseRepository) SumValidatedByContract(ctx context.Context, contractID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, contractID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockExpenseRepository) SumValidatedByWork(ctx context.Context, workID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, workID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type MockAccountingRepository struct {
	mock.Mock
}

func (m *MockAccountingRepository) FindByExpenseID(ctx context.Context, expenseID uuid.UUID) (*accounting.Record, error) {
	args := m.Called(ctx, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounting.Record), args.Error(1)
}

func (m *MockAccountingRepository) Create(ctx context.Context, record *accounting.Record) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

type MockSupplierRepository struct {
	mock.Mock
}

func (m *MockSupplierRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Supplier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) Save(ctx context.Context, s *partner.Supplier) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

type MockCertificationRepository struct {
	mock.Mock
}

func (m *MockCertificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*certification.Certification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*certification.Certification), args.Error(1)
}

func (m *MockCertificationRepository) FindBySupplierWeek(ctx context.Context, supplierID uuid.UUID, weekStartDate time.Time) (*certification.Certification, error) {
	args := m.Called(ctx, supplierID, weekStartDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*certification.Certification), args.Error(1)
}

func (m *MockCertificationRepository) SumBySupplier(ctx context.Context, supplierID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, supplierID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockCertificationRepository) Save(ctx context.Context, c *certification.Certification) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCertificationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*payroll.EmployeePayment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payroll.EmployeePayment), args.Error(1)
}

func (m *MockPaymentRepository) FindByEmployeeWeek(ctx context.Context, employeeID uuid.UUID, weekStartDate time.Time) (*payroll.EmployeePayment, error) {
	args := m.Called(ctx, employeeID, weekStartDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payroll.EmployeePayment), args.Error(1)
}

func (m *MockPaymentRepository) FindByWeek(ctx context.Context, organizationID uuid.UUID, weekStartDate time.Time) ([]payroll.EmployeePayment, error) {
	args := m.Called(ctx, organizationID, weekStartDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]payroll.EmployeePayment), args.Error(1)
}

func (m *MockPaymentRepository) Save(ctx context.Context, p *payroll.EmployeePayment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

type MockAlertRepository struct {
	mock.Mock
}

func (m *MockAlertRepository) Create(ctx context.Context, a *alert.Alert) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAlertRepository) HasOpen(ctx context.Context, alertType alert.Type, supplierID uuid.UUID) (bool, error) {
	args := m.Called(ctx, alertType, supplierID)
	return args.Bool(0), args.Error(1)
}

// MockAlertEmitter records emitted alerts for assertions
type MockAlertEmitter struct {
	Alerts []*alert.Alert
}

func (m *MockAlertEmitter) Emit(_ context.Context, a *alert.Alert) {
	m.Alerts = append(m.Alerts, a)
}

func (m *MockAlertEmitter) ByType(alertType alert.Type) []*alert.Alert {
	var out []*alert.Alert
	for _, a := range m.Alerts {
		if a.Type == alertType {
			out = append(out, a)
		}
	}
	return out
}

type MockWorkTotalsRecomputer struct {
	mock.Mock
}

func (m *MockWorkTotalsRecomputer) RecomputeTotals(ctx context.Context, workID uuid.UUID) error {
	args := m.Called(ctx, workID)
	return args.Error(0)
}

// testRepos satisfies TransactionalRepositories over the mock set
type testRepos struct {
	contracts      *MockContractRepository
	expenses       *MockExpenseRepository
	accountings    *MockAccountingRepository
	suppliers      *MockSupplierRepository
	certifications *MockCertificationRepository
	payments       *MockPaymentRepository
	alerts         *MockAlertRepository
}

func newTestRepos() *testRepos {
	return &testRepos{
		contracts:      new(MockContractRepository),
		expenses:       new(MockExpenseRepository),
		accountings:    new(MockAccountingRepository),
		suppliers:      new(MockSupplierRepository),
		certifications: new(MockCertificationRepository),
		payments:       new(MockPaymentRepository),
		alerts:         new(MockAlertRepository),
	}
}

func (r *testRepos) ContractRepo() contract.Repository            { return r.contracts }
func (r *testRepos) ExpenseRepo() expense.Repository              { return r.expenses }
func (r *testRepos) AccountingRepo() accounting.Repository        { return r.accountings }
func (r *testRepos) SupplierRepo() partner.SupplierRepository     { return r.suppliers }
func (r *testRepos) CertificationRepo() certification.Repository  { return r.certifications }
func (r *testRepos) EmployeeRepo() payroll.EmployeeRepository     { return nil }
func (r *testRepos) AttendanceRepo() payroll.AttendanceRepository { return nil }
func (r *testRepos) AdvanceRepo() payroll.AdvanceRepository       { return nil }
func (r *testRepos) PaymentRepo() payroll.PaymentRepository       { return r.payments }
func (r *testRepos) AlertRepo() alert.Repository                  { return r.alerts }

// =============================================================================
// Fixtures
// =============================================================================

func adminActor() identity.Actor {
	return identity.Actor{ID: uuid.New(), Role: identity.RoleAdministracion, OrganizationID: uuid.New()}
}

func newValidationFixture() (*ExpenseValidationService, *testRepos, *MockAlertEmitter, *MockWorkTotalsRecomputer) {
	repos := newTestRepos()
	emitter := &MockAlertEmitter{}
	rollup := new(MockWorkTotalsRecomputer)
	service := NewExpenseValidationService(
		&NoOpTransactionScope{Repos: repos},
		NewAccountingService(),
		emitter,
		rollup,
		followup.NewExecutor(zap.NewNop()),
		zap.NewNop(),
	)
	return service, repos, emitter, rollup
}

func newLinkedExpense(t *testing.T, c *contract.Contract, amount float64) *expense.Expense {
	t.Helper()
	supplierID := c.SupplierID
	e, err := expense.NewExpense(
		c.OrganizationID, c.WorkID, &supplierID,
		decimal.NewFromFloat(amount), valueobject.ARS,
		expense.DocumentTypeInvoiceA, "Materials", time.Now(),
	)
	require.NoError(t, err)
	e.AssignContract(c.ID)
	return e
}

// =============================================================================
// Validate
// =============================================================================

func TestValidate_ForbiddenRole(t *testing.T) {
	service, _, _, _ := newValidationFixture()

	_, err := service.Validate(context.Background(), ValidateExpenseRequest{
		ExpenseID:   uuid.New(),
		TargetState: expense.StateValidated,
		Actor:       identity.Actor{ID: uuid.New(), Role: identity.RoleOperador},
	})

	assert.ErrorIs(t, err, shared.ErrForbidden)
}

func TestValidate_RejectsPendingTarget(t *testing.T) {
	service, _, _, _ := newValidationFixture()

	_, err := service.Validate(context.Background(), ValidateExpenseRequest{
		ExpenseID:   uuid.New(),
		TargetState: expense.StatePending,
		Actor:       adminActor(),
	})

	assert.True(t, shared.IsDomainError(err, "INVALID_INPUT"))
}

func TestValidate_Success_AppliesToContract(t *testing.T) {
	ctx := context.Background()
	service, repos, _, rollup := newValidationFixture()

	c, err := contract.NewContract(uuid.New(), uuid.New(), uuid.New(), decimal.NewFromInt(100000), valueobject.ARS)
	require.NoError(t, err)
	c.Status = contract.StatusActive
	e := newLinkedExpense(t, c, 15000)

	repos.expenses.On("FindByID", ctx, e.ID).Return(e, nil)
	repos.contracts.On("FindByIDForUpdate", ctx, c.ID).Return(c, nil)
	repos.contracts.On("Save", ctx, c).Return(nil)
	repos.accountings.On("FindByExpenseID", ctx, e.ID).Return(nil, nil)
	repos.accountings.On("Create", ctx, mock.AnythingOfType("*accounting.Record")).Return(nil)
	repos.expenses.On("Save", ctx, e).Return(nil)
	rollup.On("RecomputeTotals", mock.Anything, e.WorkID).Return(nil)

	resp, err := service.Validate(ctx, ValidateExpenseRequest{
		ExpenseID:   e.ID,
		TargetState: expense.StateValidated,
		Actor:       adminActor(),
	})

	require.NoError(t, err)
	assert.Equal(t, "VALIDATED", resp.State)
	assert.Equal(t, "15000", c.AmountExecuted.String())
	assert.False(t, c.IsBlocked)
	repos.contracts.AssertExpectations(t)
	repos.accountings.AssertExpectations(t)
	repos.expenses.AssertExpectations(t)
	rollup.AssertExpectations(t)
}

func TestValidate_LazyContractBinding(t *testing.T) {
	ctx := context.Background()
	service, repos, _, rollup := newValidationFixture()

	c, err := contract.NewContract(uuid.New(), uuid.New(), uuid.New(), decimal.NewFromInt(100000), valueobject.ARS)
	require.NoError(t, err)
	c.Status = contract.StatusActive

	supplierID := c.SupplierID
	e, err := expense.NewExpense(c.OrganizationID, c.WorkID, &supplierID,
		decimal.NewFromInt(20000), valueobject.ARS, expense.DocumentTypeInvoiceB, "Steel", time.Now())
	require.NoError(t, err)
	require.Nil(t, e.ContractID)

	repos.expenses.On("FindByID", ctx, e.ID).Return(e, nil)
	repos.contracts.On("FindEligibleForUpdate", ctx, supplierID, c.WorkID).Return([]*contract.Contract{c}, nil)
	repos.contracts.On("FindByIDForUpdate", ctx, c.ID).Return(c, nil)
	repos.contracts.On("Save", ctx, c).Return(nil)
	repos.accountings.On("FindByExpenseID", ctx, e.ID).Return(nil, nil)
	repos.accountings.On("Create", ctx, mock.AnythingOfType("*accounting.Record")).Return(nil)
	repos.expenses.On("Save", ctx, e).Return(nil)
	rollup.On("RecomputeTotals", mock.Anything, e.WorkID).Return(nil)

	resp, err := service.Validate(ctx, ValidateExpenseRequest{
		ExpenseID:   e.ID,
		TargetState: expense.StateValidated,
		Actor:       adminActor(),
	})

	require.NoError(t, err)
	require.NotNil(t, resp.ContractID)
	assert.Equal(t, c.ID, *resp.ContractID)
	assert.Equal(t, "20000", c.AmountExecuted.String())
}

func TestValidate_NoEligibleContract_ProceedsUnlinked(t *testing.T) {
	ctx := context.Background()
	service, repos, _, rollup := newValidationFixture()

	supplierID := uuid.New()
	e, err := expense.NewExpense(uuid.New(), uuid.New(), &supplierID,
		decimal.NewFromInt(5000), valueobject.ARS, expense.DocumentTypeTicket, "Fuel", time.Now())
	require.NoError(t, err)

	repos.expenses.On("FindByID", ctx, e.ID).Return(e, nil)
	repos.contracts.On("FindEligibleForUpdate", ctx, supplierID, e.WorkID).Return([]*contract.Contract{}, nil)
	repos.accountings.On("FindByExpenseID", ctx, e.ID).Return(nil, nil)
	repos.accountings.On("Create", ctx, mock.AnythingOfType("*accounting.Record")).Return(nil)
	repos.expenses.On("Save", ctx, e).Return(nil)
	rollup.On("RecomputeTotals", mock.Anything, e.WorkID).Return(nil)

	resp, err := service.Validate(ctx, ValidateExpenseRequest{
		ExpenseID:   e.ID,
		TargetState: expense.StateValidated,
		Actor:       adminActor(),
	})

	require.NoError(t, err)
	assert.Nil(t, resp.ContractID)
	repos.contracts.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	repos.accountings.AssertExpectations(t)
}

func TestValidate_InsufficientBalance_RejectsAndAlerts(t *testing.T) {
	ctx := context.Background()
	service, repos, emitter, _ := newValidationFixture()

	c, err := contract.NewContract(uuid.New(), uuid.New(), uuid.New(), decimal.NewFromInt(100000), valueobject.ARS)
	require.NoError(t, err)
	c.AmountExecuted = decimal.NewFromInt(50000)
	e := newLinkedExpense(t, c, 60000)

	repos.expenses.On("FindByID", ctx, e.ID).Return(e, nil)
	repos.contracts.On("FindByIDForUpdate", ctx, c.ID).Return(c, nil)

	_, err = service.Validate(ctx, ValidateExpenseRequest{
		ExpenseID:   e.ID,
		TargetState: expense.StateValidated,
		Actor:       adminActor(),
	})

	require.Error(t, err)
	assert.True(t, shared.IsDomainError(err, "INSUFFICIENT_BALANCE"))
	assert.Equal(t, expense.StatePending, e.State)
	assert.Equal(t, "50000", c.AmountExecuted.String())
	repos.expenses.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)

	// The rejection alert outlives the rolled-back transaction
	require.Len(t, emitter.ByType(alert.TypeInsufficientBalance), 1)
	assert.Equal(t, alert.SeverityCritical, emitter.Alerts[0].Severity)
}

func TestValidate_ExactBalance_BlocksAndAlerts(t *testing.T) {
	ctx := context.Background()
	service, repos, emitter, rollup := newValidationFixture()

	c, err := contract.NewContract(uuid.New(), uuid.New(), uuid.New(), decimal.NewFromInt(30000), valueobject.ARS)
	require.NoError(t, err)
	c.Status = contract.StatusActive
	e := newLinkedExpense(t, c, 30000)

	repos.expenses.On("FindByID", ctx, e.ID).Return(e, nil)
	repos.contracts.On("FindByIDForUpdate", ctx, c.ID).Return(c, nil)
	repos.contracts.On("Save", ctx, c).Return(nil)
	repos.accountings.On("FindByExpenseID", ctx, e.ID).Return(nil, nil)
	repos.accountings.On("Create", ctx, mock.AnythingOfType("*accounting.Record")).Return(nil)
	repos.expenses.On("Save", ctx, e).Return(nil)
	rollup.On("RecomputeTotals", mock.Anything, e.WorkID).Return(nil)

	_, err = service.Validate(ctx, ValidateExpenseRequest{
		ExpenseID:   e.ID,
		TargetState: expense.StateValidated,
		Actor:       adminActor(),
	})

	require.NoError(t, err)
	assert.True(t, c.IsBlocked)
	assert.True(t, c.Available().IsZero())
	require.Len(t, emitter.ByType(alert.TypeZeroBalance), 1)
}

func TestValidate_ObservedReversesContract(t *testing.T) {
	ctx := context.Background()
	service, repos, emitter, _ := newValidationFixture()

	c, err := contract.NewContract(uuid.New(), uuid.New(), uuid.New(), decimal.NewFromInt(100000), valueobject.ARS)
	require.NoError(t, err)
	c.Status = contract.StatusActive
	e := newLinkedExpense(t, c, 15000)

	// Already validated and applied
	require.NoError(t, e.Transition(expense.StateValidated, uuid.New()))
	c.Apply(e.Amount)
	require.Equal(t, "15000", c.AmountExecuted.String())

	repos.expenses.On("FindByID", ctx, e.ID).Return(e, nil)
	repos.contracts.On("FindByIDForUpdate", ctx, c.ID).Return(c, nil)
	repos.contracts.On("Save", ctx, c).Return(nil)
	repos.expenses.On("Save", ctx, e).Return(nil)

	resp, err := service.Validate(ctx, ValidateExpenseRequest{
		ExpenseID:   e.ID,
		TargetState: expense.StateObserved,
		Actor:       adminActor(),
	})

	require.NoError(t, err)
	assert.Equal(t, "OBSERVED", resp.State)
	assert.True(t, c.AmountExecuted.IsZero())
	require.Len(t, emitter.ByType(alert.TypeExpenseObserved), 1)
	// Leaving VALIDATED must not touch the accounting ledger
	repos.accountings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestValidate_AnnulledExpenseRejected(t *testing.T) {
	ctx := context.Background()
	service, repos, _, _ := newValidationFixture()

	supplierID := uuid.New()
	e, err := expense.NewExpense(uuid.New(), uuid.New(), &supplierID,
		decimal.NewFromInt(5000), valueobject.ARS, expense.DocumentTypeTicket, "", time.Now())
	require.NoError(t, err)
	require.NoError(t, e.Transition(expense.StateAnnulled, uuid.New()))

	repos.expenses.On("FindByID", ctx, e.ID).Return(e, nil)

	_, err = service.Validate(ctx, ValidateExpenseRequest{
		ExpenseID:   e.ID,
		TargetState: expense.StateValidated,
		Actor:       adminActor(),
	})

	assert.True(t, shared.IsDomainError(err, "EXPENSE_ANNULLED"))
}

func TestValidate_ReValidationOfObservedKeepsSingleRecord(t *testing.T) {
	ctx := context.Background()
	service, repos, _, rollup := newValidationFixture()

	c, err := contract.NewContract(uuid.New(), uuid.New(), uuid.New(), decimal.NewFromInt(100000), valueobject.ARS)
	require.NoError(t, err)
	c.Status = contract.StatusActive
	e := newLinkedExpense(t, c, 15000)
	require.NoError(t, e.Transition(expense.StateValidated, uuid.New()))
	require.NoError(t, e.Transition(expense.StateObserved, uuid.New()))

	existing := accounting.NewRecordFromExpense(e)

	repos.expenses.On("FindByID", ctx, e.ID).Return(e, nil)
	repos.contracts.On("FindByIDForUpdate", ctx, c.ID).Return(c, nil)
	repos.contracts.On("Save", ctx, c).Return(nil)
	repos.accountings.On("FindByExpenseID", ctx, e.ID).Return(existing, nil)
	repos.expenses.On("Save", ctx, e).Return(nil)
	rollup.On("RecomputeTotals", mock.Anything, e.WorkID).Return(nil)

	_, err = service.Validate(ctx, ValidateExpenseRequest{
		ExpenseID:   e.ID,
		TargetState: expense.StateValidated,
		Actor:       adminActor(),
	})

	require.NoError(t, err)
	assert.Equal(t, "15000", c.AmountExecuted.String())
	repos.accountings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// =============================================================================
// OverrideContractBlock
// =============================================================================

func TestOverrideContractBlock_RequiresTopTier(t *testing.T) {
	service, _, _, _ := newValidationFixture()

	err := service.OverrideContractBlock(context.Background(), uuid.New(), false, adminActor())
	assert.ErrorIs(t, err, shared.ErrForbidden)
}

func TestOverrideContractBlock_Unblocks(t *testing.T) {
	ctx := context.Background()
	service, repos, _, _ := newValidationFixture()

	c, err := contract.NewContract(uuid.New(), uuid.New(), uuid.New(), decimal.NewFromInt(10000), valueobject.ARS)
	require.NoError(t, err)
	c.Apply(decimal.NewFromInt(10000))
	require.True(t, c.IsBlocked)

	repos.contracts.On("FindByIDForUpdate", ctx, c.ID).Return(c, nil)
	repos.contracts.On("Save", ctx, c).Return(nil)

	director := identity.Actor{ID: uuid.New(), Role: identity.RoleDireccion, OrganizationID: uuid.New()}
	require.NoError(t, service.OverrideContractBlock(ctx, c.ID, false, director))
	assert.False(t, c.IsBlocked)
}
