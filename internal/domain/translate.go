package domain

import "github.com/google/uuid"

// Descriptions carried by the launches generated for asset trades. Kept
// verbatim for compatibility with the existing account history.
const (
	DescriptionLaunchForBuy  = "LAUNCH FOR A BUY"
	DescriptionLaunchForSell = "LAUNCH FOR A SELL"
)

// LaunchForMovement maps an asset movement to the cash launch it must
// generate so the two ledgers stay consistent: a buy debits the account, a
// sell credits it. Any other movement type maps to no launch (nil). The
// function is pure and idempotent; the caller must invoke it at most once
// per movement to avoid double-booking cash.
func LaunchForMovement(m *AssetMovement) *Launch {
	if m == nil {
		return nil
	}
	switch m.Type {
	case MovementTypeBuy:
		return &Launch{
			ID:          uuid.New(),
			Type:        LaunchTypeOutbound,
			Description: DescriptionLaunchForBuy,
			Value:       TruncateAmount(m.Value),
			Date:        m.Date,
		}
	case MovementTypeSell:
		return &Launch{
			ID:          uuid.New(),
			Type:        LaunchTypeInbound,
			Description: DescriptionLaunchForSell,
			Value:       TruncateAmount(m.Value),
			Date:        m.Date,
		}
	default:
		return nil
	}
}
