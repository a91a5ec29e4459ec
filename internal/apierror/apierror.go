// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

import (
	"errors"
	"fmt"
)

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "validation failed", Fields: fields}
}

// Sentinel errors for the service layer. Handlers map them to status codes
// with errors.Is, so services are free to wrap them with fmt.Errorf("%w").
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
	ErrInvalid  = errors.New("invalid input")
)

func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrNotFound}, args...)...)
}

func Conflictf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrConflict}, args...)...)
}

func Invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...)
}

// Machine-readable per-line order rejection reasons.
const (
	ReasonNotFound         = "not_found"
	ReasonWrongPublication = "wrong_publication"
	ReasonMissingClass     = "missing_class"
	ReasonInvalidPrice     = "invalid_price"
	ReasonPriceMismatch    = "price_mismatch"
)

// LineRejection identifies why one submitted order line was refused.
type LineRejection struct {
	BookID string `json:"book_id"`
	Reason string `json:"reason"`
	Detail string `json:"detail,omitempty"`
}

// OrderRejection aborts an entire order submission. No partial persistence:
// one bad line rejects every line.
type OrderRejection struct {
	Rejections []LineRejection `json:"rejections"`
}

func (r *OrderRejection) Error() string {
	return fmt.Sprintf("order rejected: %d line(s) failed validation", len(r.Rejections))
}

// AsOrderRejection unwraps err into an *OrderRejection when it is one.
func AsOrderRejection(err error) (*OrderRejection, bool) {
	var rej *OrderRejection
	if errors.As(err, &rej) {
		return rej, true
	}
	return nil, false
}
