package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sentinel error kinds. Every domain failure is terminal and non-retryable;
// the typed wrappers below attach the offending ids, dates and amounts while
// staying comparable with errors.Is against these sentinels.
var (
	ErrNotFound                  = errors.New("object not found")
	ErrInsufficientBalance       = errors.New("account balance not available")
	ErrInsufficientQuantity      = errors.New("asset quantity not available")
	ErrMovementNotAllowed        = errors.New("movement not allowed")
	ErrIssueDateNotBeforeDueDate = errors.New("issue date must be before due date")
	ErrUnauthorized              = errors.New("access denied")
)

// NotFoundError reports an unknown aggregate id or name.
type NotFoundError struct {
	Entity string
	Ref    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.Ref)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// InsufficientBalanceError is returned when an outbound launch exceeds the
// account's base balance.
type InsufficientBalanceError struct {
	AccountID uuid.UUID
	Balance   decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("account %s: balance %s cannot cover outbound launch of %s",
		e.AccountID, e.Balance, e.Requested)
}

func (e *InsufficientBalanceError) Unwrap() error { return ErrInsufficientBalance }

// InsufficientQuantityError is returned when a sell movement exceeds the
// quantity held as of today.
type InsufficientQuantityError struct {
	AssetID   uuid.UUID
	Held      decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientQuantityError) Error() string {
	return fmt.Sprintf("asset %s: held quantity %s cannot cover sell of %s",
		e.AssetID, e.Held, e.Requested)
}

func (e *InsufficientQuantityError) Unwrap() error { return ErrInsufficientQuantity }

// MovementNotAllowedReason distinguishes the two trading-calendar violations.
// Both collapse to ErrMovementNotAllowed but carry distinct message keys at
// the HTTP boundary.
type MovementNotAllowedReason string

const (
	MovementOutsideWindow MovementNotAllowedReason = "outside issue/due window"
	MovementOnWeekend     MovementNotAllowedReason = "weekend"
)

// MovementNotAllowedError is returned when a movement date violates the
// trading calendar.
type MovementNotAllowedError struct {
	AssetID uuid.UUID
	Date    time.Time
	Reason  MovementNotAllowedReason
}

func (e *MovementNotAllowedError) Error() string {
	return fmt.Sprintf("asset %s: movement on %s not allowed (%s)",
		e.AssetID, e.Date.Format("2006-01-02"), e.Reason)
}

func (e *MovementNotAllowedError) Unwrap() error { return ErrMovementNotAllowed }

// IssueDateError is returned when an asset is created with an issue date not
// strictly before its due date.
type IssueDateError struct {
	IssueDate time.Time
	DueDate   time.Time
}

func (e *IssueDateError) Error() string {
	return fmt.Sprintf("issue date %s must be strictly before due date %s",
		e.IssueDate.Format("2006-01-02"), e.DueDate.Format("2006-01-02"))
}

func (e *IssueDateError) Unwrap() error { return ErrIssueDateNotBeforeDueDate }
