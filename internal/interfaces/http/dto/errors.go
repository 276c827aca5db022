package dto

import "net/http"

// General error codes returned by the API itself rather than the domain
const (
	ErrCodeInternal   = "INTERNAL_ERROR"
	ErrCodeBadRequest = "BAD_REQUEST"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes
var errorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeBadRequest: http.StatusBadRequest,

	"NOT_FOUND":      http.StatusNotFound,
	"ALREADY_EXISTS": http.StatusConflict,
	"INVALID_INPUT":  http.StatusBadRequest,
	"INVALID_AMOUNT": http.StatusBadRequest,

	"FORBIDDEN":            http.StatusForbidden,
	"CONCURRENCY_CONFLICT": http.StatusConflict,

	// Business rule violations -> 422 Unprocessable Entity
	"INVALID_STATE":           http.StatusUnprocessableEntity,
	"INSUFFICIENT_BALANCE":    http.StatusUnprocessableEntity,
	"EXPENSE_ANNULLED":        http.StatusUnprocessableEntity,
	"NO_ELIGIBLE_CONTRACT":    http.StatusUnprocessableEntity,
	"NOT_A_CONTRACTOR":        http.StatusUnprocessableEntity,
	"DUPLICATE_CERTIFICATION": http.StatusConflict,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Returns 500 Internal Server Error if the error code is not known.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
