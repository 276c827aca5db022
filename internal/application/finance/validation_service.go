package finance

import (
	"context"
	"errors"
	"time"

	"github.com/Augusto-pmd/pmd-backend-sub000/internal/application/followup"
	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/alert"
	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/contract"
	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/expense"
	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/identity"
	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// WorkTotalsRecomputer is the narrow interface to the external aggregator
// that maintains per-work expense totals. Invoked as a follow-up after a
// VALIDATED transition.
type WorkTotalsRecomputer interface {
	RecomputeTotals(ctx context.Context, workID uuid.UUID) error
}

// ExpenseValidationService orchestrates expense state transitions, keeping
// contract balances, accounting records and alerts mutually consistent.
// Every call runs as one transaction with the contract row locked; the
// fire-and-continue tail (alerts, rollup) runs after commit.
type ExpenseValidationService struct {
	scope      TransactionScope
	accounting *AccountingService
	emitter    alert.Emitter
	rollup     WorkTotalsRecomputer
	executor   *followup.Executor
	logger     *zap.Logger
}

// NewExpenseValidationService creates a new ExpenseValidationService
func NewExpenseValidationService(
	scope TransactionScope,
	accountingService *AccountingService,
	emitter alert.Emitter,
	rollup WorkTotalsRecomputer,
	executor *followup.Executor,
	logger *zap.Logger,
) *ExpenseValidationService {
	return &ExpenseValidationService{
		scope:      scope,
		accounting: accountingService,
		emitter:    emitter,
		rollup:     rollup,
		executor:   executor,
		logger:     logger.Named("expense-validation"),
	}
}

// ValidateExpenseRequest asks for a state transition on an expense
type ValidateExpenseRequest struct {
	ExpenseID   uuid.UUID
	TargetState expense.State
	Actor       identity.Actor
}

// ExpenseResponse represents an expense after a transition
type ExpenseResponse struct {
	ID          uuid.UUID       `json:"id"`
	WorkID      uuid.UUID       `json:"work_id"`
	SupplierID  *uuid.UUID      `json:"supplier_id,omitempty"`
	ContractID  *uuid.UUID      `json:"contract_id,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	State       string          `json:"state"`
	ValidatedAt *time.Time      `json:"validated_at,omitempty"`
	ValidatedBy *uuid.UUID      `json:"validated_by,omitempty"`
}

// Validate transitions an expense to VALIDATED, OBSERVED or ANNULLED.
//
// Inside one transaction, in fixed order: resolve and lock the contract,
// check sufficiency, reverse a previous VALIDATED contribution when leaving
// that state, commit the new state, apply the amount and create the
// accounting record when entering VALIDATED. Any failure rolls back
// everything, leaving the expense untouched. Re-validation of an OBSERVED
// expense re-checks sufficiency against the current balance.
func (s *ExpenseValidationService) Validate(ctx context.Context, req ValidateExpenseRequest) (*ExpenseResponse, error) {
	if !req.Actor.CanValidateExpenses() {
		return nil, shared.ErrForbidden
	}
	switch req.TargetState {
	case expense.StateValidated, expense.StateObserved, expense.StateAnnulled:
	default:
		return nil, shared.NewDomainError("INVALID_INPUT", "Target state must be VALIDATED, OBSERVED or ANNULLED")
	}

	var (
		resp      *ExpenseResponse
		followups []followup.Action
	)
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		e, err := repos.ExpenseRepo().FindByID(ctx, req.ExpenseID)
		if err != nil {
			return err
		}

		actions, err := s.transition(ctx, repos, e, req.TargetState, req.Actor)
		if err != nil {
			return err
		}
		followups = actions
		resp = toExpenseResponse(e)
		return nil
	})
	if err != nil {
		// The insufficiency alert survives the rollback: it is emitted
		// after the transaction is gone, fire-and-continue.
		var de *shared.DomainError
		if errors.As(err, &de) && de.Code == "INSUFFICIENT_BALANCE" {
			s.emitInsufficiencyAlert(ctx, req, de.Message)
		}
		return nil, err
	}

	s.executor.RunAll(ctx, followups)
	return resp, nil
}

// transition runs the state-machine core against transaction-scoped
// repositories. It is shared with the certification manager, which annuls
// linked expenses inside its own transaction.
func (s *ExpenseValidationService) transition(ctx context.Context, repos TransactionalRepositories, e *expense.Expense, target expense.State, actor identity.Actor) ([]followup.Action, error) {
	if e.IsAnnulled() {
		return nil, shared.NewDomainError("EXPENSE_ANNULLED", "Cannot validate an annulled expense")
	}

	var followups []followup.Action

	// Lazily bind the expense to an eligible contract for its
	// (supplier, work) pair. Ordinary expenses proceed unlinked when no
	// contract matches.
	if e.ContractID == nil && e.SupplierID != nil {
		candidates, err := repos.ContractRepo().FindEligibleForUpdate(ctx, *e.SupplierID, e.WorkID)
		if err != nil {
			return nil, err
		}
		if selected := contract.SelectEligible(candidates); selected != nil {
			if _, err := selected.CheckSufficiency(e.Amount); err != nil {
				return nil, err
			}
			e.AssignContract(selected.ID)
		}
	}

	var linked *contract.Contract
	if e.ContractID != nil {
		var err error
		linked, err = repos.ContractRepo().FindByIDForUpdate(ctx, *e.ContractID)
		if err != nil {
			return nil, err
		}
	}

	// Leaving VALIDATED undoes the earlier apply, exactly once: the state
	// commit below is part of the same transaction, so a retried call sees
	// the new state and takes no balance action.
	if linked != nil && e.LeavesValidated(target) {
		linked.Reverse(e.Amount)
	}

	// Re-validation re-checks sufficiency against the current balance.
	if linked != nil && target == expense.StateValidated {
		if _, err := linked.CheckSufficiency(e.Amount); err != nil {
			return nil, err
		}
	}

	if err := e.Transition(target, actor.ID); err != nil {
		return nil, err
	}

	if linked != nil && target == expense.StateValidated {
		becameBlocked := linked.Apply(e.Amount)
		if becameBlocked {
			followups = append(followups, s.zeroBalanceAlert(e, linked))
		}
	}
	if linked != nil {
		if err := repos.ContractRepo().Save(ctx, linked); err != nil {
			return nil, err
		}
	}

	if target == expense.StateValidated {
		if _, _, err := s.accounting.RecordIfAbsent(ctx, repos.AccountingRepo(), e); err != nil {
			return nil, err
		}
		workID := e.WorkID
		followups = append(followups, followup.Action{
			Name: "recompute-work-totals",
			Run: func(ctx context.Context) error {
				return s.rollup.RecomputeTotals(ctx, workID)
			},
		})
	}

	if target == expense.StateObserved {
		followups = append(followups, s.observedAlert(e))
	}

	if err := repos.ExpenseRepo().Save(ctx, e); err != nil {
		return nil, err
	}
	return followups, nil
}

// AnnulInTransaction annuls an expense using the caller's transaction-scoped
// repositories, so the contract reversal commits or rolls back with the
// caller's own mutation. Used by the certification manager when removing a
// certification with a linked expense. Returns the follow-up actions for the
// caller to run after its transaction commits.
func (s *ExpenseValidationService) AnnulInTransaction(ctx context.Context, repos TransactionalRepositories, expenseID uuid.UUID, actor identity.Actor) ([]followup.Action, error) {
	e, err := repos.ExpenseRepo().FindByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, repos, e, expense.StateAnnulled, actor)
}

// OverrideContractBlock clears or forces a contract's blocked flag,
// bypassing the auto-block rules. Highest tier only.
func (s *ExpenseValidationService) OverrideContractBlock(ctx context.Context, contractID uuid.UUID, isBlocked bool, actor identity.Actor) error {
	if !actor.CanOverrideContractBlock() {
		return shared.ErrForbidden
	}
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		c, err := repos.ContractRepo().FindByIDForUpdate(ctx, contractID)
		if err != nil {
			return err
		}
		c.Override(isBlocked)
		return repos.ContractRepo().Save(ctx, c)
	})
}

func (s *ExpenseValidationService) zeroBalanceAlert(e *expense.Expense, c *contract.Contract) followup.Action {
	a := alert.New(e.OrganizationID, alert.TypeZeroBalance, alert.SeverityWarning,
		"Contract balance reached zero and was blocked").
		WithContract(c.ID).WithExpense(e.ID).WithWork(e.WorkID)
	return followup.Action{
		Name: "zero-balance-alert",
		Run: func(ctx context.Context) error {
			s.emitter.Emit(ctx, a)
			return nil
		},
	}
}

func (s *ExpenseValidationService) observedAlert(e *expense.Expense) followup.Action {
	a := alert.New(e.OrganizationID, alert.TypeExpenseObserved, alert.SeverityWarning,
		"Expense was marked as observed").
		WithExpense(e.ID).WithWork(e.WorkID)
	return followup.Action{
		Name: "expense-observed-alert",
		Run: func(ctx context.Context) error {
			s.emitter.Emit(ctx, a)
			return nil
		},
	}
}

func (s *ExpenseValidationService) emitInsufficiencyAlert(ctx context.Context, req ValidateExpenseRequest, message string) {
	a := alert.New(req.Actor.OrganizationID, alert.TypeInsufficientBalance, alert.SeverityCritical, message).
		WithExpense(req.ExpenseID)
	s.emitter.Emit(ctx, a)
	s.logger.Warn("expense validation rejected for insufficient balance",
		zap.String("expense_id", req.ExpenseID.String()),
		zap.String("detail", message),
	)
}

func toExpenseResponse(e *expense.Expense) *ExpenseResponse {
	return &ExpenseResponse{
		ID:          e.ID,
		WorkID:      e.WorkID,
		SupplierID:  e.SupplierID,
		ContractID:  e.ContractID,
		Amount:      e.Amount,
		State:       e.State.String(),
		ValidatedAt: e.ValidatedAt,
		ValidatedBy: e.ValidatedBy,
	}
}
