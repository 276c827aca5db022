package scheduler

import (
	"context"
	"sync"
	"time"

	apppayroll "github.com/Augusto-pmd/pmd-backend-sub000/internal/application/payroll"
	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/identity"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrganizationSource lists the organizations a scheduled payroll run covers
type OrganizationSource interface {
	ActiveOrganizationIDs(ctx context.Context) ([]uuid.UUID, error)
}

// PayrollScheduler triggers the weekly payroll calculation. It wakes on a
// ticker, and fires once per week when the configured weekday is reached;
// the calculation itself is idempotent, so an extra trigger after a restart
// recomputes the same week without side effects.
type PayrollScheduler struct {
	service   *apppayroll.PayrollService
	orgs      OrganizationSource
	logger    *zap.Logger
	config    PayrollSchedulerConfig
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
	lastRun   time.Time
}

// PayrollSchedulerConfig holds configuration for the payroll scheduler
type PayrollSchedulerConfig struct {
	Enabled        bool
	CheckInterval  time.Duration
	RunWeekday     time.Weekday
	CreateExpenses bool
	JobTimeout     time.Duration
}

// DefaultPayrollSchedulerConfig returns default configuration
func DefaultPayrollSchedulerConfig() PayrollSchedulerConfig {
	return PayrollSchedulerConfig{
		Enabled:        false,
		CheckInterval:  time.Hour,
		RunWeekday:     time.Friday,
		CreateExpenses: true,
		JobTimeout:     10 * time.Minute,
	}
}

// NewPayrollScheduler creates a new payroll scheduler
func NewPayrollScheduler(
	service *apppayroll.PayrollService,
	orgs OrganizationSource,
	logger *zap.Logger,
	config PayrollSchedulerConfig,
) *PayrollScheduler {
	return &PayrollScheduler{
		service: service,
		orgs:    orgs,
		logger:  logger.Named("payroll-scheduler"),
		config:  config,
	}
}

// Start starts the scheduler loop
func (s *PayrollScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	if !s.config.Enabled {
		s.mu.Unlock()
		s.logger.Info("Payroll scheduler is disabled")
		return nil
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.run(ctx)

	s.logger.Info("Payroll scheduler started",
		zap.Duration("check_interval", s.config.CheckInterval),
		zap.String("run_weekday", s.config.RunWeekday.String()),
		zap.Bool("create_expenses", s.config.CreateExpenses),
	)

	return nil
}

// Stop gracefully stops the scheduler
func (s *PayrollScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Payroll scheduler stopped gracefully")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Payroll scheduler stop timed out")
		return ctx.Err()
	}
}

func (s *PayrollScheduler) run(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("Payroll scheduler loop stopping")
			return
		case now := <-ticker.C:
			if s.shouldRun(now) {
				s.execute(ctx, now)
			}
		}
	}
}

// shouldRun fires on the configured weekday, at most once per week
func (s *PayrollScheduler) shouldRun(now time.Time) bool {
	if now.Weekday() != s.config.RunWeekday {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.lastRun.IsZero() && now.Sub(s.lastRun) < 6*24*time.Hour {
		return false
	}
	s.lastRun = now
	return true
}

func (s *PayrollScheduler) execute(ctx context.Context, now time.Time) {
	jobCtx, cancel := context.WithTimeout(ctx, s.config.JobTimeout)
	defer cancel()

	orgIDs, err := s.orgs.ActiveOrganizationIDs(jobCtx)
	if err != nil {
		s.logger.Error("Failed to list organizations for payroll run", zap.Error(err))
		return
	}

	started := time.Now()
	for _, orgID := range orgIDs {
		result, err := s.service.CalculateWeek(jobCtx, apppayroll.CalculateWeekRequest{
			Date:           now,
			OrganizationID: orgID,
			CreateExpenses: s.config.CreateExpenses,
			Actor: identity.Actor{
				Role:           identity.RoleAdministracion,
				OrganizationID: orgID,
			},
		})
		if err != nil {
			s.logger.Error("Scheduled payroll run failed",
				zap.String("organization_id", orgID.String()),
				zap.Error(err),
			)
			continue
		}
		s.logger.Info("Scheduled payroll run completed",
			zap.String("organization_id", orgID.String()),
			zap.Time("week_start_date", result.WeekStartDate),
			zap.Int("payments", len(result.Payments)),
			zap.Int("failed", result.Failed),
		)
	}

	s.logger.Info("Weekly payroll run finished",
		zap.Int("organizations", len(orgIDs)),
		zap.Duration("duration", time.Since(started)),
	)
}
