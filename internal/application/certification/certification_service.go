package certification

import (
	"context"
	"fmt"
	"time"

	"github.com/Augusto-pmd/pmd-backend-sub000/internal/application/finance"
	"github.com/Augusto-pmd/pmd-backend-sub000/internal/application/followup"
	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/alert"
	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/certification"
	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/contract"
	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/identity"
	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/shared"
	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CertificationService registers and removes weekly contractor
// certifications. Creation and the supplier total recompute share one
// transaction; the backing expense and the low-balance alert are
// post-commit tails that never undo a committed certification.
type CertificationService struct {
	scope       finance.TransactionScope
	validation  *finance.ExpenseValidationService
	autoCreator *finance.ExpenseAutoCreator
	emitter     alert.Emitter
	executor    *followup.Executor
	logger      *zap.Logger
}

// NewCertificationService creates a new CertificationService
func NewCertificationService(
	scope finance.TransactionScope,
	validation *finance.ExpenseValidationService,
	autoCreator *finance.ExpenseAutoCreator,
	emitter alert.Emitter,
	executor *followup.Executor,
	logger *zap.Logger,
) *CertificationService {
	return &CertificationService{
		scope:       scope,
		validation:  validation,
		autoCreator: autoCreator,
		emitter:     emitter,
		executor:    executor,
		logger:      logger.Named("certification"),
	}
}

// CreateRequest registers one contractor-week
type CreateRequest struct {
	SupplierID uuid.UUID
	WorkID     uuid.UUID
	// Date is any day of the certified week; it is normalized to its Monday.
	Date   time.Time
	Amount decimal.Decimal
	Notes  string
	Actor  identity.Actor
}

// CertificationResponse is the API view of a certification
type CertificationResponse struct {
	ID            uuid.UUID        `json:"id"`
	SupplierID    uuid.UUID        `json:"supplier_id"`
	WeekStartDate time.Time        `json:"week_start_date"`
	ContractID    uuid.UUID        `json:"contract_id"`
	WorkID        uuid.UUID        `json:"work_id"`
	Amount        decimal.Decimal  `json:"amount"`
	ExpenseID     *uuid.UUID       `json:"expense_id,omitempty"`
	Notes         string           `json:"notes,omitempty"`
	TotalPaid     decimal.Decimal  `json:"contractor_total_paid"`
	Remaining     *decimal.Decimal `json:"contractor_remaining,omitempty"`
}

// Create registers a certification for a contractor-week. The supplier must
// be of contractor type and the week must not be certified yet. An eligible
// contract is selected the same way expense validation does it and the
// supplier's certified total is recomputed from the stored rows. The VAL
// expense is created after commit: its failure keeps the certification, the
// expense can be created again later.
func (s *CertificationService) Create(ctx context.Context, req CreateRequest) (*CertificationResponse, error) {
	if !req.Actor.CanManageCertifications() {
		return nil, shared.ErrForbidden
	}
	if req.Date.IsZero() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Certification date is required")
	}
	week := valueobject.NormalizeWeekStart(req.Date)

	var (
		cert      *certification.Certification
		totalPaid decimal.Decimal
		remaining *decimal.Decimal
		followups []followup.Action
	)
	err := s.scope.Execute(ctx, func(repos finance.TransactionalRepositories) error {
		followups = followups[:0]

		supplier, err := repos.SupplierRepo().FindByID(ctx, req.SupplierID)
		if err != nil {
			return err
		}
		if !supplier.IsContractor() {
			return shared.NewDomainError("NOT_A_CONTRACTOR", "Only contractor suppliers can be certified")
		}

		existing, err := repos.CertificationRepo().FindBySupplierWeek(ctx, req.SupplierID, week.Date())
		if err != nil {
			return err
		}
		if existing != nil {
			return shared.NewDomainError("DUPLICATE_CERTIFICATION",
				fmt.Sprintf("A certification already exists for the week of %s", week.String()))
		}

		candidates, err := repos.ContractRepo().FindEligibleForUpdate(ctx, req.SupplierID, req.WorkID)
		if err != nil {
			return err
		}
		selected := contract.SelectEligible(candidates)
		if selected == nil {
			return shared.NewDomainError("NO_ELIGIBLE_CONTRACT",
				"No eligible contract found for this contractor on this work")
		}
		if _, err := selected.CheckSufficiency(req.Amount); err != nil {
			return err
		}

		cert, err = certification.NewCertification(
			req.Actor.OrganizationID, req.SupplierID, selected.ID, req.WorkID, week, req.Amount, req.Notes)
		if err != nil {
			return err
		}
		cert.SetCreatedBy(req.Actor.ID)
		if err := repos.CertificationRepo().Save(ctx, cert); err != nil {
			return err
		}

		totalPaid, err = repos.CertificationRepo().SumBySupplier(ctx, req.SupplierID)
		if err != nil {
			return err
		}
		remaining = supplier.SetContractorTotalPaid(totalPaid)
		if err := repos.SupplierRepo().Save(ctx, supplier); err != nil {
			return err
		}

		if supplier.IsBudgetRunningLow() {
			open, err := repos.AlertRepo().HasOpen(ctx, alert.TypeLowContractorBalance, supplier.ID)
			if err != nil {
				return err
			}
			if !open {
				followups = append(followups, s.lowBalanceAlert(supplier.OrganizationID, supplier.ID, supplier.Name))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.executor.RunAll(ctx, followups)

	if err := s.createCertificationExpense(ctx, cert); err != nil {
		s.logger.Warn("certification expense creation failed, certification kept",
			zap.String("certification_id", cert.ID.String()),
			zap.String("supplier_id", cert.SupplierID.String()),
			zap.Error(err),
		)
	}

	return toCertificationResponse(cert, totalPaid, remaining), nil
}

// createCertificationExpense is the non-critical tail: a separate transaction
// that creates the VAL expense and links it onto the certification.
func (s *CertificationService) createCertificationExpense(ctx context.Context, cert *certification.Certification) error {
	return s.scope.Execute(ctx, func(repos finance.TransactionalRepositories) error {
		_, err := s.autoCreator.FromCertification(ctx, repos, cert)
		return err
	})
}

// Remove deletes a certification. A linked auto-created expense that is not
// already annulled is annulled first, inside the same transaction, which
// releases the contract balance it consumed; the supplier's certified total
// is then recomputed without the deleted row.
func (s *CertificationService) Remove(ctx context.Context, certificationID uuid.UUID, actor identity.Actor) error {
	if !actor.CanManageCertifications() {
		return shared.ErrForbidden
	}

	var followups []followup.Action
	err := s.scope.Execute(ctx, func(repos finance.TransactionalRepositories) error {
		followups = followups[:0]

		cert, err := repos.CertificationRepo().FindByID(ctx, certificationID)
		if err != nil {
			return err
		}

		if cert.ExpenseID != nil {
			e, err := repos.ExpenseRepo().FindByID(ctx, *cert.ExpenseID)
			if err != nil {
				return err
			}
			// An already annulled expense holds no contract balance; there
			// is nothing left to release.
			if !e.IsAnnulled() {
				actions, err := s.validation.AnnulInTransaction(ctx, repos, *cert.ExpenseID, actor)
				if err != nil {
					return err
				}
				followups = append(followups, actions...)
			}
		}

		if err := repos.CertificationRepo().Delete(ctx, cert.ID); err != nil {
			return err
		}

		supplier, err := repos.SupplierRepo().FindByID(ctx, cert.SupplierID)
		if err != nil {
			return err
		}
		totalPaid, err := repos.CertificationRepo().SumBySupplier(ctx, cert.SupplierID)
		if err != nil {
			return err
		}
		supplier.SetContractorTotalPaid(totalPaid)
		return repos.SupplierRepo().Save(ctx, supplier)
	})
	if err != nil {
		return err
	}

	s.executor.RunAll(ctx, followups)
	return nil
}

func (s *CertificationService) lowBalanceAlert(organizationID, supplierID uuid.UUID, name string) followup.Action {
	return followup.Action{
		Name: "alert.low_contractor_balance",
		Run: func(ctx context.Context) error {
			a := alert.New(organizationID, alert.TypeLowContractorBalance, alert.SeverityWarning,
				fmt.Sprintf("Contractor %s has less than 20%% of budget remaining", name)).
				WithSupplier(supplierID)
			s.emitter.Emit(ctx, a)
			return nil
		},
	}
}

func toCertificationResponse(c *certification.Certification, totalPaid decimal.Decimal, remaining *decimal.Decimal) *CertificationResponse {
	return &CertificationResponse{
		ID:            c.ID,
		SupplierID:    c.SupplierID,
		WeekStartDate: c.WeekStartDate,
		ContractID:    c.ContractID,
		WorkID:        c.WorkID,
		Amount:        c.Amount,
		ExpenseID:     c.ExpenseID,
		Notes:         c.Notes,
		TotalPaid:     totalPaid,
		Remaining:     remaining,
	}
}
