package dto

import (
	"net/http"
	"time"
)

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	// ErrCodeValidation is the base code for validation errors
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeValidationRequired is used when a required field is missing
	ErrCodeValidationRequired = "ERR_VALIDATION_REQUIRED"
	// ErrCodeValidationFormat is used when a field has invalid format
	ErrCodeValidationFormat = "ERR_VALIDATION_FORMAT"
	// ErrCodeValidationRange is used when a value is out of range
	ErrCodeValidationRange = "ERR_VALIDATION_RANGE"
)

// Authentication error codes
const (
	// ErrCodeUnauthorized is used when authentication is required but missing/invalid
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	// ErrCodeForbidden is used when the user may not act on the resource
	ErrCodeForbidden = "ERR_FORBIDDEN"
	// ErrCodeTokenExpired is used when the auth token has expired
	ErrCodeTokenExpired = "ERR_TOKEN_EXPIRED"
	// ErrCodeTokenInvalid is used when the auth token is invalid
	ErrCodeTokenInvalid = "ERR_TOKEN_INVALID"
	// ErrCodeTokenRevoked is used when the auth token has been revoked
	ErrCodeTokenRevoked = "ERR_TOKEN_REVOKED"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeAlreadyExists is used when trying to create a duplicate resource
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	// ErrCodeConflict is used for general resource conflicts
	ErrCodeConflict = "ERR_CONFLICT"
)

// Business rule error codes
const (
	// ErrCodeBusinessRule is used for business rule violations
	ErrCodeBusinessRule = "ERR_BUSINESS_RULE"
)

// Input error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
)

// Rate limiting error codes
const (
	// ErrCodeRateLimited is used when rate limit is exceeded
	ErrCodeRateLimited = "ERR_RATE_LIMITED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// General errors
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	// Validation errors -> 400 Bad Request
	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeValidationRequired: http.StatusBadRequest,
	ErrCodeValidationFormat:   http.StatusBadRequest,
	ErrCodeValidationRange:    http.StatusBadRequest,

	// Auth errors
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeTokenExpired: http.StatusUnauthorized,
	ErrCodeTokenInvalid: http.StatusUnauthorized,
	ErrCodeTokenRevoked: http.StatusUnauthorized,

	// Resource errors
	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeAlreadyExists: http.StatusConflict,
	ErrCodeConflict:      http.StatusConflict,

	// Business rule errors surface as 400 in this API
	ErrCodeBusinessRule: http.StatusBadRequest,

	// Input errors -> 400 Bad Request
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeInvalidJSON:  http.StatusBadRequest,

	// Rate limiting -> 429 Too Many Requests
	ErrCodeRateLimited: http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to the standardized codes
// the API responds with
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":            ErrCodeNotFound,
	"USER_NOT_FOUND":       ErrCodeNotFound,
	"RECIPE_NOT_FOUND":     ErrCodeNotFound,
	"TAG_NOT_FOUND":        ErrCodeNotFound,
	"INGREDIENT_NOT_FOUND": ErrCodeNotFound,
	"LINK_NOT_FOUND":       ErrCodeNotFound,

	"ALREADY_EXISTS":  ErrCodeAlreadyExists,
	"EMAIL_EXISTS":    ErrCodeAlreadyExists,
	"USERNAME_EXISTS": ErrCodeAlreadyExists,

	"UNAUTHORIZED":        ErrCodeUnauthorized,
	"INVALID_CREDENTIALS": ErrCodeUnauthorized,

	"TOKEN_EXPIRED": ErrCodeTokenExpired,
	"TOKEN_INVALID": ErrCodeTokenInvalid,
	"TOKEN_ERROR":   ErrCodeTokenInvalid,
	"TOKEN_REVOKED": ErrCodeTokenRevoked,

	"FORBIDDEN":           ErrCodeForbidden,
	"ACCOUNT_LOCKED":      ErrCodeForbidden,
	"ACCOUNT_DEACTIVATED": ErrCodeForbidden,
	"ACCOUNT_INACTIVE":    ErrCodeForbidden,

	"VALIDATION_ERROR":        ErrCodeValidation,
	"INVALID_INPUT":           ErrCodeInvalidInput,
	"BAD_REQUEST":             ErrCodeBadRequest,
	"INVALID_PASSWORD":        ErrCodeInvalidInput,
	"INVALID_AVATAR":          ErrCodeInvalidInput,
	"INVALID_FORMAT":          ErrCodeInvalidInput,
	"INVALID_EMAIL":           ErrCodeInvalidInput,
	"INVALID_USERNAME":        ErrCodeInvalidInput,
	"INVALID_NAME":            ErrCodeInvalidInput,
	"INVALID_USER":            ErrCodeInvalidInput,
	"INVALID_AUTHOR":          ErrCodeInvalidInput,
	"INVALID_RECIPE_NAME":     ErrCodeInvalidInput,
	"INVALID_COOKING_TIME":    ErrCodeInvalidInput,
	"INVALID_IMAGE":           ErrCodeInvalidInput,
	"NOT_AN_IMAGE":            ErrCodeInvalidInput,
	"INVALID_INGREDIENT":      ErrCodeInvalidInput,
	"INVALID_INGREDIENT_NAME": ErrCodeInvalidInput,
	"INVALID_QUANTITY":        ErrCodeInvalidInput,
	"INVALID_AMOUNT":          ErrCodeInvalidInput,
	"INVALID_UNIT":            ErrCodeInvalidInput,
	"INVALID_TAG":             ErrCodeInvalidInput,
	"INVALID_TAG_NAME":        ErrCodeInvalidInput,
	"INVALID_TAG_SLUG":        ErrCodeInvalidInput,
	"INVALID_CODE":            ErrCodeInvalidInput,

	"EMPTY_CART":           ErrCodeBusinessRule,
	"INVALID_RECIPE":       ErrCodeBusinessRule,
	"SELF_SUBSCRIPTION":    ErrCodeBusinessRule,
	"NO_INGREDIENTS":       ErrCodeBusinessRule,
	"NO_TAGS":              ErrCodeBusinessRule,
	"TOO_MANY_TAGS":        ErrCodeBusinessRule,
	"DUPLICATE_INGREDIENT": ErrCodeBusinessRule,

	"USER_DEACTIVATED": ErrCodeForbidden,

	"PASSWORD_HASH_ERROR": ErrCodeInternal,

	"INTERNAL_ERROR": ErrCodeInternal,
	"STORAGE_ERROR":  ErrCodeInternal,
	"RENDER_ERROR":   ErrCodeInternal,
}

// NormalizeErrorCode converts a domain error code to the standardized format
// If the code is already in the new format or unknown, returns it as-is
func NormalizeErrorCode(code string) string {
	if newCode, ok := DomainErrorCodeMapping[code]; ok {
		return newCode
	}
	return code
}

// ValidationDetail describes a single failed field in a validation error
type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// NewErrorResponseWithRequestID creates an error response carrying the request ID
func NewErrorResponseWithRequestID(code, message, requestID string) Response {
	return Response{
		Success: false,
		Error: &ErrorInfo{
			Code:      code,
			Message:   message,
			RequestID: requestID,
			Timestamp: time.Now(),
		},
	}
}

// NewValidationErrorResponse creates a 400-style error response with
// per-field validation details
func NewValidationErrorResponse(message, requestID string, details []ValidationDetail) Response {
	return Response{
		Success: false,
		Error: &ErrorInfo{
			Code:      ErrCodeValidation,
			Message:   message,
			RequestID: requestID,
			Details:   details,
			Timestamp: time.Now(),
		},
	}
}
