package handler

import (
	"errors"
	"net/http"

	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/identity"
	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/shared"
	"github.com/Augusto-pmd/pmd-backend-sub000/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getActor builds the caller identity from the headers set by the identity
// gateway in front of this service. Token verification happens there, not
// here.
func getActor(c *gin.Context) (identity.Actor, error) {
	userID, err := uuid.Parse(c.GetHeader("X-User-ID"))
	if err != nil {
		return identity.Actor{}, errors.New("missing or invalid X-User-ID header")
	}
	orgID, err := uuid.Parse(c.GetHeader("X-Organization-ID"))
	if err != nil {
		return identity.Actor{}, errors.New("missing or invalid X-Organization-ID header")
	}
	role := identity.Role(c.GetHeader("X-User-Role"))
	if !role.IsValid() {
		return identity.Actor{}, errors.New("missing or invalid X-User-Role header")
	}
	return identity.Actor{ID: userID, Role: role, OrganizationID: orgID}, nil
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrCodeBadRequest, message))
}

// Unauthorized sends a 401 unauthorized response
func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, dto.NewErrorResponse("UNAUTHORIZED", message))
}

// HandleError converts domain errors to HTTP responses
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		statusCode := dto.GetHTTPStatus(domainErr.Code)
		c.JSON(statusCode, dto.NewErrorResponse(domainErr.Code, domainErr.Message))
		return
	}

	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
		dto.ErrCodeInternal,
		"An unexpected error occurred",
	))
}
