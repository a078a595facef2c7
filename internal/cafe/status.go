package cafe

import "fmt"

// Status is an order's position in the preparation lifecycle.
type Status string

const (
	// StatusPending is the initial status, set when an order is placed.
	StatusPending Status = "pending"

	// StatusPreparing means the kitchen has started the order.
	StatusPreparing Status = "preparing"

	// StatusReady means the order is ready to serve.
	StatusReady Status = "ready"

	// StatusCompleted is terminal: the order was served.
	StatusCompleted Status = "completed"

	// StatusCancelled is terminal: the order was abandoned before
	// completion.
	StatusCancelled Status = "cancelled"
)

// forward maps each status to its single legal forward successor.
// Terminal statuses have no entry.
var forward = map[Status]Status{
	StatusPending:   StatusPreparing,
	StatusPreparing: StatusReady,
	StatusReady:     StatusCompleted,
}

// ParseStatus converts a string to a Status, rejecting unknown values.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.Valid() {
		return "", &OpError{
			Code:    ErrCodeBadStatus,
			Message: fmt.Sprintf("unknown status %q", s),
		}
	}
	return status, nil
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusPreparing, StatusReady, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether s admits no further transitions.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Active reports whether an order in this status belongs on the kitchen
// board (anything not completed and not cancelled).
func (s Status) Active() bool {
	return s.Valid() && !s.Terminal()
}

// Next returns the single legal forward successor of s.
// ok is false for terminal statuses.
func (s Status) Next() (next Status, ok bool) {
	next, ok = forward[s]
	return next, ok
}

// NextStatus validates a requested transition from current.
//
// Legal transitions are the forward chain
// pending -> preparing -> ready -> completed, plus cancellation from any
// non-terminal status. Everything else - skips, reversals, moves out of
// a terminal status - returns an INVALID_TRANSITION error.
func NextStatus(current, requested Status) error {
	if !current.Valid() {
		return &OpError{Code: ErrCodeBadStatus, Message: fmt.Sprintf("unknown status %q", current)}
	}
	if !requested.Valid() {
		return &OpError{Code: ErrCodeBadStatus, Message: fmt.Sprintf("unknown status %q", requested)}
	}

	if requested == StatusCancelled {
		if current.Terminal() {
			return invalidTransition(current, requested)
		}
		return nil
	}

	if next, ok := current.Next(); ok && next == requested {
		return nil
	}
	return invalidTransition(current, requested)
}

func invalidTransition(current, requested Status) *OpError {
	return &OpError{
		Code:    ErrCodeInvalidTransition,
		Message: fmt.Sprintf("cannot move order from %q to %q", current, requested),
	}
}
