package errors

import "net/http"

// ErrorCode represents the type of error. Codes double as sentinels, so
// errors.Is(err, ErrNotFound) matches any *APIError carrying that code.
type ErrorCode string

const (
	ErrNotFound       ErrorCode = "NOT_FOUND"
	ErrInvalidInput   ErrorCode = "INVALID_INPUT"
	ErrConflict       ErrorCode = "CONFLICT"
	ErrBackendFailure ErrorCode = "BACKEND_FAILURE"
	ErrUnauthorized   ErrorCode = "UNAUTHORIZED"
	ErrForbidden      ErrorCode = "FORBIDDEN"
	ErrRateLimited    ErrorCode = "RATE_LIMITED"
	ErrServiceUnavail ErrorCode = "SERVICE_UNAVAILABLE"
)

// StatusCodeMap maps ErrorCode to HTTP status code
var StatusCodeMap = map[ErrorCode]int{
	ErrNotFound:       http.StatusNotFound,
	ErrInvalidInput:   http.StatusBadRequest,
	ErrConflict:       http.StatusConflict,
	ErrBackendFailure: http.StatusInternalServerError,
	ErrUnauthorized:   http.StatusUnauthorized,
	ErrForbidden:      http.StatusForbidden,
	ErrRateLimited:    http.StatusTooManyRequests,
	ErrServiceUnavail: http.StatusServiceUnavailable,
}

// StatusCode returns the HTTP status code for this error code
func (e ErrorCode) StatusCode() int {
	if code, ok := StatusCodeMap[e]; ok {
		return code
	}
	return http.StatusInternalServerError
}

func (e ErrorCode) Error() string {
	return string(e)
}
