package handler

import (
	financeapp "github.com/Augusto-pmd/pmd-backend-sub000/internal/application/finance"
	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/expense"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ExpenseHandler handles expense validation API endpoints
type ExpenseHandler struct {
	BaseHandler
	validationService *financeapp.ExpenseValidationService
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(validationService *financeapp.ExpenseValidationService) *ExpenseHandler {
	return &ExpenseHandler{validationService: validationService}
}

// OverrideBlockRequest represents a request to override a contract block
type OverrideBlockRequest struct {
	IsBlocked bool `json:"is_blocked"`
}

// Validate transitions an expense to VALIDATED
func (h *ExpenseHandler) Validate(c *gin.Context) {
	h.transition(c, expense.StateValidated)
}

// Observe transitions an expense to OBSERVED
func (h *ExpenseHandler) Observe(c *gin.Context) {
	h.transition(c, expense.StateObserved)
}

// Annul transitions an expense to ANNULLED
func (h *ExpenseHandler) Annul(c *gin.Context) {
	h.transition(c, expense.StateAnnulled)
}

func (h *ExpenseHandler) transition(c *gin.Context, target expense.State) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, err.Error())
		return
	}

	expenseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid expense ID format")
		return
	}

	resp, err := h.validationService.Validate(c.Request.Context(), financeapp.ValidateExpenseRequest{
		ExpenseID:   expenseID,
		TargetState: target,
		Actor:       actor,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// OverrideBlock sets or clears the manual block on a contract
func (h *ExpenseHandler) OverrideBlock(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, err.Error())
		return
	}

	contractID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid contract ID format")
		return
	}

	var req OverrideBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.validationService.OverrideContractBlock(c.Request.Context(), contractID, req.IsBlocked, actor); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers expense validation routes
func (h *ExpenseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	expenses := rg.Group("/expenses")
	{
		expenses.POST("/:id/validate", h.Validate)
		expenses.POST("/:id/observe", h.Observe)
		expenses.POST("/:id/annul", h.Annul)
	}

	contracts := rg.Group("/contracts")
	{
		contracts.PUT("/:id/block", h.OverrideBlock)
	}
}
