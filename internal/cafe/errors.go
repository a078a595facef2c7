package cafe

import (
	"errors"
	"fmt"
)

// OpError represents a failed store operation.
//
// Operation failures are domain outcomes, not faults: an unknown cart
// line, an order that cannot move to the requested status, a checkout
// against an empty cart. OpError carries a structured code so callers
// can branch without string matching.
type OpError struct {
	// Code identifies the failure category.
	Code OpErrorCode

	// Message is a human-readable description.
	Message string

	// Op names the operation that failed (e.g. "remove_from_cart").
	Op string

	// ID identifies the affected cart line or order, when applicable.
	ID string
}

// OpErrorCode categorizes operation failures.
type OpErrorCode string

const (
	// ErrCodeNotFound indicates the targeted cart line, order, category,
	// or menu item does not exist.
	ErrCodeNotFound OpErrorCode = "NOT_FOUND"

	// ErrCodeEmptyCart indicates a checkout was attempted with no lines
	// in the cart.
	ErrCodeEmptyCart OpErrorCode = "EMPTY_CART"

	// ErrCodeInvalidTransition indicates the requested status is not a
	// legal successor of the order's current status.
	ErrCodeInvalidTransition OpErrorCode = "INVALID_TRANSITION"

	// ErrCodeBadStatus indicates a status string outside the known set.
	ErrCodeBadStatus OpErrorCode = "BAD_STATUS"

	// ErrCodeInvalidItem indicates a menu item that fails validation.
	ErrCodeInvalidItem OpErrorCode = "INVALID_ITEM"
)

// Error implements the error interface.
func (e *OpError) Error() string {
	if e.Op != "" && e.ID != "" {
		return fmt.Sprintf("%s: %s (op=%s, id=%s)", e.Code, e.Message, e.Op, e.ID)
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s (op=%s)", e.Code, e.Message, e.Op)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// HasCode reports whether err is an OpError with the given code.
// Uses errors.As to handle wrapped errors.
func HasCode(err error, code OpErrorCode) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Code == code
	}
	return false
}

// IsNotFound reports whether err is a not-found operation failure.
func IsNotFound(err error) bool { return HasCode(err, ErrCodeNotFound) }

// IsEmptyCart reports whether err is an empty-cart checkout failure.
func IsEmptyCart(err error) bool { return HasCode(err, ErrCodeEmptyCart) }

// IsInvalidTransition reports whether err is an illegal status change.
func IsInvalidTransition(err error) bool { return HasCode(err, ErrCodeInvalidTransition) }

// newNotFoundError creates an OpError for a missing operation target.
func newNotFoundError(op, kind, id string) *OpError {
	return &OpError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s %q not found", kind, id),
		Op:      op,
		ID:      id,
	}
}

// newEmptyCartError creates an OpError for checkout against an empty cart.
func newEmptyCartError() *OpError {
	return &OpError{
		Code:    ErrCodeEmptyCart,
		Message: "cart is empty",
		Op:      "place_order",
	}
}
