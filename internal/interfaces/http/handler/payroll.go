package handler

import (
	"time"

	payrollapp "github.com/Augusto-pmd/pmd-backend-sub000/internal/application/payroll"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PayrollHandler handles payroll calculation API endpoints
type PayrollHandler struct {
	BaseHandler
	payrollService *payrollapp.PayrollService
}

// NewPayrollHandler creates a new PayrollHandler
func NewPayrollHandler(payrollService *payrollapp.PayrollService) *PayrollHandler {
	return &PayrollHandler{payrollService: payrollService}
}

// CalculateWeekRequest represents a request to run a weekly payroll batch
type CalculateWeekRequest struct {
	// Date is any day inside the target week, formatted 2006-01-02.
	Date           string  `json:"date" binding:"required"`
	WorkID         *string `json:"work_id,omitempty"`
	CreateExpenses bool    `json:"create_expenses"`
}

// CalculateWeek runs the payroll batch for one week
func (h *PayrollHandler) CalculateWeek(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, err.Error())
		return
	}

	var req CalculateWeekRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		h.BadRequest(c, "Invalid date format, expected YYYY-MM-DD")
		return
	}

	var workID *uuid.UUID
	if req.WorkID != nil {
		id, err := uuid.Parse(*req.WorkID)
		if err != nil {
			h.BadRequest(c, "Invalid work ID format")
			return
		}
		workID = &id
	}

	result, err := h.payrollService.CalculateWeek(c.Request.Context(), payrollapp.CalculateWeekRequest{
		Date:           date,
		OrganizationID: actor.OrganizationID,
		WorkID:         workID,
		CreateExpenses: req.CreateExpenses,
		Actor:          actor,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// RegisterRoutes registers payroll routes
func (h *PayrollHandler) RegisterRoutes(rg *gin.RouterGroup) {
	payrolls := rg.Group("/payroll")
	{
		payrolls.POST("/weeks", h.CalculateWeek)
	}
}
