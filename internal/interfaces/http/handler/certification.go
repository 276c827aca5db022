package handler

import (
	"time"

	certificationapp "github.com/Augusto-pmd/pmd-backend-sub000/internal/application/certification"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CertificationHandler handles contractor certification API endpoints
type CertificationHandler struct {
	BaseHandler
	certificationService *certificationapp.CertificationService
}

// NewCertificationHandler creates a new CertificationHandler
func NewCertificationHandler(certificationService *certificationapp.CertificationService) *CertificationHandler {
	return &CertificationHandler{certificationService: certificationService}
}

// CreateCertificationRequest represents a request to certify a contractor-week
type CreateCertificationRequest struct {
	SupplierID string  `json:"supplier_id" binding:"required,uuid"`
	WorkID     string  `json:"work_id" binding:"required,uuid"`
	Date       string  `json:"date" binding:"required"`
	Amount     float64 `json:"amount" binding:"required,gt=0"`
	Notes      string  `json:"notes" binding:"max=500"`
}

// Create registers a certification for a contractor-week
func (h *CertificationHandler) Create(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, err.Error())
		return
	}

	var req CreateCertificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	supplierID, err := uuid.Parse(req.SupplierID)
	if err != nil {
		h.BadRequest(c, "Invalid supplier ID format")
		return
	}
	workID, err := uuid.Parse(req.WorkID)
	if err != nil {
		h.BadRequest(c, "Invalid work ID format")
		return
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		h.BadRequest(c, "Invalid date format, expected YYYY-MM-DD")
		return
	}

	resp, err := h.certificationService.Create(c.Request.Context(), certificationapp.CreateRequest{
		SupplierID: supplierID,
		WorkID:     workID,
		Date:       date,
		Amount:     decimal.NewFromFloat(req.Amount),
		Notes:      req.Notes,
		Actor:      actor,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Remove deletes a certification and annuls its linked expense
func (h *CertificationHandler) Remove(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, err.Error())
		return
	}

	certificationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid certification ID format")
		return
	}

	if err := h.certificationService.Remove(c.Request.Context(), certificationID, actor); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers certification routes
func (h *CertificationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	certifications := rg.Group("/certifications")
	{
		certifications.POST("", h.Create)
		certifications.DELETE("/:id", h.Remove)
	}
}
