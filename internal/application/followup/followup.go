package followup

import (
	"context"

	"go.uber.org/zap"
)

// Action is a deferred side effect produced by a transactional core
// operation: alert emission, rollup recomputation, optional record creation.
// Actions run after the owning transaction commits and their failures are
// logged, never propagated.
type Action struct {
	Name string
	Run  func(ctx context.Context) error
}

// Executor drains follow-up actions, fire-and-continue.
type Executor struct {
	logger *zap.Logger
}

// NewExecutor creates an Executor
func NewExecutor(logger *zap.Logger) *Executor {
	return &Executor{logger: logger}
}

// RunAll executes every action in order. A failing action is logged and the
// remaining actions still run.
func (e *Executor) RunAll(ctx context.Context, actions []Action) {
	for _, a := range actions {
		if a.Run == nil {
			continue
		}
		if err := a.Run(ctx); err != nil {
			e.logger.Warn("follow-up action failed",
				zap.String("action", a.Name),
				zap.Error(err),
			)
		}
	}
}
