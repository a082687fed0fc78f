package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AssetType represents the class of a tradable asset.
type AssetType string

const (
	AssetTypeRV    AssetType = "RV"
	AssetTypeRF    AssetType = "RF"
	AssetTypeFundo AssetType = "FUNDO"
)

// MovementType represents the kind of an asset movement. Consult is a
// pseudo-type used by callers to query without mutating; consult movements
// are never persisted and never generate a cash launch.
type MovementType string

const (
	MovementTypeBuy     MovementType = "BUY"
	MovementTypeSell    MovementType = "SELL"
	MovementTypeConsult MovementType = "CONSULT"
)

// AssetMovement is a single buy or sell entry against an asset.
type AssetMovement struct {
	ID       uuid.UUID
	AssetID  uuid.UUID
	Type     MovementType
	Quantity decimal.Decimal
	Value    decimal.Decimal
	Date     time.Time
}

// MarketPrice is one (date, price) point of an asset's price series. Prices
// carry the 8-decimal scale. Multiple points may exist for the same date.
type MarketPrice struct {
	ID      uuid.UUID
	AssetID uuid.UUID
	Price   decimal.Decimal
	Date    time.Time
}

// Asset is the portfolio aggregate: it owns its movements and its market
// price series, both kept in insertion order. Movements are permitted only
// within [IssueDate, DueDate) and on weekdays.
type Asset struct {
	ID           uuid.UUID
	Name         string
	Type         AssetType
	IssueDate    time.Time
	DueDate      time.Time
	Movements    []AssetMovement
	MarketPrices []MarketPrice
}

// NewAsset creates an asset, enforcing that the issue date is strictly
// before the due date.
func NewAsset(name string, typ AssetType, issueDate, dueDate time.Time) (*Asset, error) {
	if issueDate.IsZero() || dueDate.IsZero() || !issueDate.Before(dueDate) {
		return nil, &IssueDateError{IssueDate: issueDate, DueDate: dueDate}
	}
	return &Asset{
		ID:        uuid.New(),
		Name:      name,
		Type:      typ,
		IssueDate: issueDate,
		DueDate:   dueDate,
	}, nil
}

// IncludeMovement runs the validation guard chain and appends the movement.
// The guards run in order and the first failure aborts before any mutation:
//
//  1. a sell may not exceed the quantity held as of today (today, not the
//     movement's own date, so back-dated sells are still checked against
//     current holdings);
//  2. the movement date must fall inside [IssueDate, DueDate), inclusive
//     start, exclusive end;
//  3. the movement date must not be a Saturday or Sunday.
//
// Consult movements are read probes: they skip the chain entirely and are
// never appended.
func (a *Asset) IncludeMovement(m *AssetMovement, today time.Time) error {
	if m == nil || m.Type == MovementTypeConsult {
		return nil
	}
	if m.Type == MovementTypeSell && m.Quantity.GreaterThan(a.TotalQuantity(today)) {
		return &InsufficientQuantityError{AssetID: a.ID, Held: a.TotalQuantity(today), Requested: m.Quantity}
	}
	if m.Date.Before(a.IssueDate) || !m.Date.Before(a.DueDate) {
		return &MovementNotAllowedError{AssetID: a.ID, Date: m.Date, Reason: MovementOutsideWindow}
	}
	if wd := m.Date.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return &MovementNotAllowedError{AssetID: a.ID, Date: m.Date, Reason: MovementOnWeekend}
	}
	m.AssetID = a.ID
	a.Movements = append(a.Movements, *m)
	return nil
}

// TotalQuantity returns the quantity held as of the given date: bought
// quantity minus sold quantity, each sum truncated to the amount scale
// before subtracting.
func (a *Asset) TotalQuantity(date time.Time) decimal.Decimal {
	bought := a.totalQuantity(MovementTypeBuy, date)
	sold := a.totalQuantity(MovementTypeSell, date)
	return TruncateAmount(bought.Sub(sold))
}

// TotalMarketValue returns the held quantity multiplied by the latest market
// price as of the given date, truncated to the amount scale.
func (a *Asset) TotalMarketValue(date time.Time) decimal.Decimal {
	return TruncateAmount(a.TotalQuantity(date).Mul(a.LatestMarketPrice(date)))
}

// AverageBuyPrice returns the total buy value divided by the total buy
// quantity as of the given date, truncated to the amount scale. Returns zero
// when nothing was bought.
func (a *Asset) AverageBuyPrice(date time.Time) decimal.Decimal {
	quantity := a.totalQuantity(MovementTypeBuy, date)
	if quantity.IsZero() {
		return ZeroAmount()
	}
	return TruncateAmount(a.totalValue(MovementTypeBuy, date).Div(quantity))
}

// Income returns the latest market price divided by the average buy price as
// of the given date, truncated to the amount scale. Returns zero when the
// average buy price is zero.
func (a *Asset) Income(date time.Time) decimal.Decimal {
	average := a.AverageBuyPrice(date)
	if average.IsZero() {
		return ZeroAmount()
	}
	return TruncateAmount(a.LatestMarketPrice(date).Div(average))
}

// Profit returns the total sell value minus the total buy value as of the
// given date, each sum truncated before subtracting.
func (a *Asset) Profit(date time.Time) decimal.Decimal {
	sold := a.totalValue(MovementTypeSell, date)
	bought := a.totalValue(MovementTypeBuy, date)
	return TruncateAmount(sold.Sub(bought))
}

// IncludeMarketPrice appends a price point to the series, truncating the
// price to the price scale. A nil price or date is a no-op.
func (a *Asset) IncludeMarketPrice(price *decimal.Decimal, date *time.Time) {
	if price == nil || date == nil {
		return
	}
	a.MarketPrices = append(a.MarketPrices, MarketPrice{
		ID:      uuid.New(),
		AssetID: a.ID,
		Price:   TruncatePrice(*price),
		Date:    *date,
	})
}

// ExcludeMarketPrice removes every price point dated exactly on the given
// date, not just one.
func (a *Asset) ExcludeMarketPrice(date time.Time) {
	kept := a.MarketPrices[:0]
	for _, p := range a.MarketPrices {
		if !p.Date.Equal(date) {
			kept = append(kept, p)
		}
	}
	a.MarketPrices = kept
}

// LatestMarketPrice returns the price of the maximum-dated point with date
// on or before the given date. When several points share that maximum date,
// the last inserted wins. Returns zero when no point qualifies.
func (a *Asset) LatestMarketPrice(date time.Time) decimal.Decimal {
	var latest *MarketPrice
	for i := range a.MarketPrices {
		p := &a.MarketPrices[i]
		if p.Date.After(date) {
			continue
		}
		if latest == nil || !p.Date.Before(latest.Date) {
			latest = p
		}
	}
	if latest == nil {
		return ZeroAmount()
	}
	return latest.Price
}

// MovementsBetween returns the movements dated within [begin, end], both
// ends inclusive, preserving insertion order.
func (a *Asset) MovementsBetween(begin, end time.Time) []AssetMovement {
	movements := make([]AssetMovement, 0)
	for _, m := range a.Movements {
		if !m.Date.Before(begin) && !m.Date.After(end) {
			movements = append(movements, m)
		}
	}
	return movements
}

func (a *Asset) totalQuantity(t MovementType, date time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, m := range a.Movements {
		if m.Type == t && !m.Date.After(date) {
			total = total.Add(m.Quantity)
		}
	}
	return TruncateAmount(total)
}

func (a *Asset) totalValue(t MovementType, date time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, m := range a.Movements {
		if m.Type == t && !m.Date.After(date) {
			total = total.Add(m.Value)
		}
	}
	return TruncateAmount(total)
}
