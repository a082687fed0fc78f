package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LaunchType represents the direction of a cash ledger entry.
type LaunchType string

const (
	LaunchTypeInbound  LaunchType = "INBOUND"
	LaunchTypeOutbound LaunchType = "OUTBOUND"
)

// Launch is a single credit or debit entry in the cash account. It is
// immutable once created; only the back-reference to its owning account is
// set, exactly once, at insertion.
type Launch struct {
	ID          uuid.UUID
	AccountID   uuid.UUID
	Type        LaunchType
	Description string
	Value       decimal.Decimal
	Date        time.Time
}

// Account is the cash ledger aggregate. Balance holds the opening base
// balance set at creation; it is never incremented or decremented by
// launches; every balance figure is recomputed from the launch history.
// Launches are kept in insertion order.
type Account struct {
	ID       uuid.UUID
	Balance  decimal.Decimal
	Launches []Launch
}

// IncludeLaunch validates and appends a launch to the account. A nil launch
// is a documented caller contract (movements that map to no cash entry) and
// leaves the account unchanged. Outbound launches are checked against the
// base balance, not a running total, so the guard holds regardless of prior
// launches.
func (a *Account) IncludeLaunch(l *Launch) error {
	if l == nil {
		return nil
	}
	if l.Type == LaunchTypeOutbound && l.Value.GreaterThan(a.Balance) {
		return &InsufficientBalanceError{AccountID: a.ID, Balance: a.Balance, Requested: l.Value}
	}
	l.AccountID = a.ID
	a.Launches = append(a.Launches, *l)
	return nil
}

// BalanceOn returns the balance as of the given date: base balance plus
// inbound launches dated on or before it, minus outbound launches dated on
// or before it. Each directional sum is truncated to the amount scale before
// combining, and the result is truncated again.
func (a *Account) BalanceOn(date time.Time) decimal.Decimal {
	inbound := a.totalValue(LaunchTypeInbound, date)
	outbound := a.totalValue(LaunchTypeOutbound, date)
	return TruncateAmount(a.Balance.Add(inbound).Sub(outbound))
}

// LaunchesBetween returns the launches dated within [begin, end], both ends
// inclusive, preserving insertion order.
func (a *Account) LaunchesBetween(begin, end time.Time) []Launch {
	launches := make([]Launch, 0)
	for _, l := range a.Launches {
		if !l.Date.Before(begin) && !l.Date.After(end) {
			launches = append(launches, l)
		}
	}
	return launches
}

func (a *Account) totalValue(t LaunchType, date time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, l := range a.Launches {
		if l.Type == t && !l.Date.After(date) {
			total = total.Add(l.Value)
		}
	}
	return TruncateAmount(total)
}
