package apierror

import (
	"net/http"
	"strings"
)

const (
	KindMissingField      = "missing_field"
	KindInvalidField      = "invalid_field"
	KindMalformedBody     = "malformed_body"
	KindInvalidRange      = "invalid_range"
	KindOwnershipMismatch = "ownership_mismatch"
	KindUnknownReference  = "unknown_reference"
	KindNotFound          = "not_found"
	KindConflict          = "conflict"
	KindUnauthorized      = "unauthorized"
	KindForbidden         = "forbidden"
	KindTooManyRequests   = "too_many_requests"
	KindStoreUnavailable  = "store_unavailable"
	KindInternal          = "internal"
)

// ErrorResponse is what services hand back to routes. It is also an error so
// it can travel through a transaction callback unchanged.
type ErrorResponse interface {
	error
	Code() int
	Kind() string
}

type SimpleError struct {
	OK      bool     `json:"ok"`
	Message string   `json:"error"`
	Type    string   `json:"kind"`
	Fields  []string `json:"fields,omitempty"`
	code    int
}

func (e *SimpleError) Error() string { return e.Message }
func (e *SimpleError) Code() int     { return e.code }
func (e *SimpleError) Kind() string  { return e.Type }

func New(code int, kind, message string) *SimpleError {
	return &SimpleError{Message: message, Type: kind, code: code}
}

// NewSimple builds an error whose kind follows from the status code.
func NewSimple(code int, message string) *SimpleError {
	return New(code, kindForStatus(code), message)
}

func NewMissingFieldError(fields ...string) *SimpleError {
	msg := strings.Join(fields, ", ") + " is required"
	if len(fields) > 1 {
		msg = strings.Join(fields, ", ") + " are required"
	}
	e := New(http.StatusBadRequest, KindMissingField, msg)
	e.Fields = fields
	return e
}

func NewInvalidFieldError(field, reason string) *SimpleError {
	e := New(http.StatusBadRequest, KindInvalidField, field+" "+reason)
	e.Fields = []string{field}
	return e
}

func NewInvalidParamTypeError(param, typ string) *SimpleError {
	return NewInvalidFieldError(param, "must be a "+typ)
}

var (
	MalformedBodyError     = New(http.StatusBadRequest, KindMalformedBody, "request body is not valid JSON")
	InvalidRangeError      = New(http.StatusBadRequest, KindInvalidRange, "end_at must be after start_at")
	OwnershipMismatchError = New(http.StatusBadRequest, KindOwnershipMismatch, "client does not belong to user")
	UnknownReferenceError  = New(http.StatusBadRequest, KindUnknownReference, "referenced record does not exist")
	NotFoundError          = New(http.StatusNotFound, KindNotFound, "not found")
	UserAlreadyExistsError = New(http.StatusConflict, KindConflict, "a user with this email already exists")
	InvalidAuthTokenError  = New(http.StatusUnauthorized, KindUnauthorized, "unauthorized")
	ForbiddenError         = New(http.StatusForbidden, KindForbidden, "token does not grant access to this user")
	APIKeyNotSetError      = New(http.StatusInternalServerError, KindInternal, "api key not configured")
	TooManyRequestsError   = New(http.StatusTooManyRequests, KindTooManyRequests, "too many requests")
	StoreUnavailableError  = New(http.StatusInternalServerError, KindStoreUnavailable, "store unavailable")
	InternalServerError    = New(http.StatusInternalServerError, KindInternal, "internal server error")
)

func kindForStatus(code int) string {
	switch code {
	case http.StatusBadRequest:
		return KindInvalidField
	case http.StatusUnauthorized:
		return KindUnauthorized
	case http.StatusForbidden:
		return KindForbidden
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusConflict:
		return KindConflict
	case http.StatusTooManyRequests:
		return KindTooManyRequests
	default:
		return KindInternal
	}
}
