package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testAsset returns an asset whose trading window covers July 2020, the
// period used by most scenarios below.
func testAsset(t *testing.T) *Asset {
	t.Helper()
	asset, err := NewAsset("PETR4", AssetTypeRV, day(2020, time.June, 10), day(2020, time.August, 10))
	require.NoError(t, err)
	return asset
}

func newMovement(typ MovementType, quantity, value string, date time.Time) *AssetMovement {
	return &AssetMovement{
		ID:       uuid.New(),
		Type:     typ,
		Quantity: amount(quantity),
		Value:    amount(value),
		Date:     date,
	}
}

// include appends a movement using a "today" far past the window so the
// sell-availability check sees the full history.
func include(t *testing.T, asset *Asset, m *AssetMovement) {
	t.Helper()
	require.NoError(t, asset.IncludeMovement(m, day(2030, time.January, 1)))
}

func TestNewAsset_IssueDateMustPrecedeDueDate(t *testing.T) {
	tests := []struct {
		name    string
		issue   time.Time
		due     time.Time
		wantErr bool
	}{
		{name: "issue before due", issue: day(2020, time.June, 10), due: day(2020, time.August, 10), wantErr: false},
		{name: "issue equals due", issue: day(2020, time.June, 10), due: day(2020, time.June, 10), wantErr: true},
		{name: "issue after due", issue: day(2020, time.August, 10), due: day(2020, time.June, 10), wantErr: true},
		{name: "zero issue date", issue: time.Time{}, due: day(2020, time.August, 10), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAsset("RFIX", AssetTypeRF, tt.issue, tt.due)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrIssueDateNotBeforeDueDate)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAsset_TotalQuantity_TruncateThenCombine(t *testing.T) {
	// Buys 4.50 + 5.20, sells 1.75 + 3.15. Each directional sum is
	// truncated to two decimals before subtracting: 9.70 - 4.90 = 4.80.
	asset := testAsset(t)
	include(t, asset, newMovement(MovementTypeBuy, "4.50", "4.20", day(2020, time.July, 7)))
	include(t, asset, newMovement(MovementTypeBuy, "5.20", "5.15", day(2020, time.July, 8)))
	include(t, asset, newMovement(MovementTypeSell, "1.75", "10.65", day(2020, time.July, 9)))
	include(t, asset, newMovement(MovementTypeSell, "3.15", "3.60", day(2020, time.July, 10)))

	equalDecimal(t, "4.80", asset.TotalQuantity(day(2020, time.July, 10)))

	// As of 07-09 the 07-10 sell is excluded: 9.70 - 1.75 = 7.95.
	equalDecimal(t, "7.95", asset.TotalQuantity(day(2020, time.July, 9)))
}

func TestAsset_IncludeMovement_SellCheckedAgainstToday(t *testing.T) {
	// The availability check uses today's holdings, not the movement's own
	// date: a back-dated sell is rejected when current holdings are short,
	// even if the quantity was held as of the movement's date.
	asset := testAsset(t)
	today := day(2020, time.July, 10)

	require.NoError(t, asset.IncludeMovement(newMovement(MovementTypeBuy, "10.00", "42.00", day(2020, time.July, 6)), today))
	require.NoError(t, asset.IncludeMovement(newMovement(MovementTypeSell, "8.00", "40.00", day(2020, time.July, 7)), today))

	// 2.00 held as of today; selling 5.00 back-dated to 07-07 (when 10.00
	// was held) still fails.
	err := asset.IncludeMovement(newMovement(MovementTypeSell, "5.00", "25.00", day(2020, time.July, 7)), today)
	assert.ErrorIs(t, err, ErrInsufficientQuantity)
	assert.Len(t, asset.Movements, 2)
}

func TestAsset_IncludeMovement_WindowIsInclusiveExclusive(t *testing.T) {
	asset := testAsset(t)
	today := day(2020, time.July, 10)

	// 2020-06-10 is the issue date, a Wednesday: allowed.
	assert.NoError(t, asset.IncludeMovement(newMovement(MovementTypeBuy, "1.00", "1.00", day(2020, time.June, 10)), today))

	// 2020-08-10 is the due date, a Monday: the window excludes its end.
	err := asset.IncludeMovement(newMovement(MovementTypeBuy, "1.00", "1.00", day(2020, time.August, 10)), today)
	assert.ErrorIs(t, err, ErrMovementNotAllowed)

	// Before the issue date.
	err = asset.IncludeMovement(newMovement(MovementTypeBuy, "1.00", "1.00", day(2020, time.June, 9)), today)
	assert.ErrorIs(t, err, ErrMovementNotAllowed)
}

func TestAsset_IncludeMovement_WeekendRejected(t *testing.T) {
	asset := testAsset(t)
	today := day(2020, time.July, 13)

	// 2020-07-11 is a Saturday, 2020-07-12 a Sunday; both inside the window.
	for _, date := range []time.Time{day(2020, time.July, 11), day(2020, time.July, 12)} {
		err := asset.IncludeMovement(newMovement(MovementTypeBuy, "1.00", "1.00", date), today)
		assert.ErrorIs(t, err, ErrMovementNotAllowed)

		var notAllowed *MovementNotAllowedError
		require.ErrorAs(t, err, &notAllowed)
		assert.Equal(t, MovementOnWeekend, notAllowed.Reason)
	}
	assert.Empty(t, asset.Movements)
}

func TestAsset_IncludeMovement_ConsultIsNeverStored(t *testing.T) {
	asset := testAsset(t)

	// A consult probe is a no-op even when dated on a weekend outside the
	// window: it runs no guard and stores nothing.
	err := asset.IncludeMovement(newMovement(MovementTypeConsult, "1.00", "1.00", day(2020, time.May, 3)), day(2020, time.July, 10))

	assert.NoError(t, err)
	assert.Empty(t, asset.Movements)
}

func TestAsset_IncludeMarketPrice_NilArgumentsAreNoOps(t *testing.T) {
	asset := testAsset(t)
	price := amount("10.50")
	date := day(2020, time.July, 9)

	asset.IncludeMarketPrice(nil, &date)
	asset.IncludeMarketPrice(&price, nil)

	assert.Empty(t, asset.MarketPrices)
}

func TestAsset_IncludeMarketPrice_TruncatesToPriceScale(t *testing.T) {
	asset := testAsset(t)
	price := decimal.RequireFromString("10.123456789")
	date := day(2020, time.July, 9)

	asset.IncludeMarketPrice(&price, &date)

	require.Len(t, asset.MarketPrices, 1)
	equalDecimal(t, "10.12345678", asset.MarketPrices[0].Price)
	assert.Equal(t, asset.ID, asset.MarketPrices[0].AssetID)
}

func TestAsset_ExcludeMarketPrice_RemovesEveryPointOfDate(t *testing.T) {
	asset := testAsset(t)
	first := amount("10.00")
	second := amount("11.00")
	other := amount("12.00")
	target := day(2020, time.July, 9)
	keep := day(2020, time.July, 10)

	asset.IncludeMarketPrice(&first, &target)
	asset.IncludeMarketPrice(&second, &target)
	asset.IncludeMarketPrice(&other, &keep)

	asset.ExcludeMarketPrice(target)

	require.Len(t, asset.MarketPrices, 1)
	assert.True(t, asset.MarketPrices[0].Date.Equal(keep))
}

func TestAsset_LatestMarketPrice(t *testing.T) {
	asset := testAsset(t)
	old := amount("9.00")
	recent := amount("10.00")
	future := amount("99.00")
	oldDate := day(2020, time.July, 6)
	recentDate := day(2020, time.July, 8)
	futureDate := day(2020, time.July, 20)

	asset.IncludeMarketPrice(&old, &oldDate)
	asset.IncludeMarketPrice(&recent, &recentDate)
	asset.IncludeMarketPrice(&future, &futureDate)

	// Points after the reference date are ignored.
	equalDecimal(t, "10.00", asset.LatestMarketPrice(day(2020, time.July, 10)))
	equalDecimal(t, "9.00", asset.LatestMarketPrice(day(2020, time.July, 6)))

	// No point on or before the date: zero.
	assert.True(t, asset.LatestMarketPrice(day(2020, time.July, 1)).IsZero())
}

func TestAsset_LatestMarketPrice_TieBrokenByInsertionOrder(t *testing.T) {
	// Several points may share the maximum date; the last one inserted wins.
	asset := testAsset(t)
	first := amount("10.00")
	second := amount("10.50")
	date := day(2020, time.July, 9)

	asset.IncludeMarketPrice(&first, &date)
	asset.IncludeMarketPrice(&second, &date)

	equalDecimal(t, "10.50", asset.LatestMarketPrice(date))
}

func TestAsset_TotalMarketValue(t *testing.T) {
	asset := testAsset(t)
	include(t, asset, newMovement(MovementTypeBuy, "4.50", "4.20", day(2020, time.July, 7)))
	price := amount("10.50")
	priceDate := day(2020, time.July, 8)
	asset.IncludeMarketPrice(&price, &priceDate)

	// 4.50 * 10.50 = 47.25
	equalDecimal(t, "47.25", asset.TotalMarketValue(day(2020, time.July, 9)))

	// Without a price as of the date, the value is zero.
	assert.True(t, asset.TotalMarketValue(day(2020, time.July, 7)).IsZero())
}

func TestAsset_AverageBuyPriceAndIncome(t *testing.T) {
	asset := testAsset(t)
	refDate := day(2020, time.July, 10)

	// No buys yet: average and income are both zero (no division by zero).
	assert.True(t, asset.AverageBuyPrice(refDate).IsZero())
	assert.True(t, asset.Income(refDate).IsZero())

	// Buys: 10.00 units for 42.00 and 5.00 units for 21.00.
	// Average = 63.00 / 15.00 = 4.20.
	include(t, asset, newMovement(MovementTypeBuy, "10.00", "42.00", day(2020, time.July, 7)))
	include(t, asset, newMovement(MovementTypeBuy, "5.00", "21.00", day(2020, time.July, 8)))
	equalDecimal(t, "4.20", asset.AverageBuyPrice(refDate))

	// Income = latest price / average buy price = 10.50 / 4.20 = 2.50.
	price := amount("10.50")
	priceDate := day(2020, time.July, 9)
	asset.IncludeMarketPrice(&price, &priceDate)
	equalDecimal(t, "2.50", asset.Income(refDate))
}

func TestAsset_Profit(t *testing.T) {
	asset := testAsset(t)
	include(t, asset, newMovement(MovementTypeBuy, "4.50", "4.20", day(2020, time.July, 7)))
	include(t, asset, newMovement(MovementTypeBuy, "5.20", "5.15", day(2020, time.July, 8)))
	include(t, asset, newMovement(MovementTypeSell, "1.75", "10.65", day(2020, time.July, 9)))
	include(t, asset, newMovement(MovementTypeSell, "3.15", "3.60", day(2020, time.July, 10)))

	// Sells 14.25 - buys 9.35 = 4.90 as of 07-10.
	equalDecimal(t, "4.90", asset.Profit(day(2020, time.July, 10)))

	// As of 07-08 nothing was sold yet: profit is negative.
	equalDecimal(t, "-9.35", asset.Profit(day(2020, time.July, 8)))
}

func TestAsset_QuantityConservation(t *testing.T) {
	// totalQuantity(d) must equal bought(d) - sold(d) for every date.
	asset := testAsset(t)
	include(t, asset, newMovement(MovementTypeBuy, "4.50", "4.20", day(2020, time.July, 7)))
	include(t, asset, newMovement(MovementTypeBuy, "5.20", "5.15", day(2020, time.July, 8)))
	include(t, asset, newMovement(MovementTypeSell, "1.75", "10.65", day(2020, time.July, 9)))

	for _, d := range []time.Time{
		day(2020, time.July, 6),
		day(2020, time.July, 7),
		day(2020, time.July, 8),
		day(2020, time.July, 9),
		day(2020, time.July, 31),
	} {
		bought := asset.totalQuantity(MovementTypeBuy, d)
		sold := asset.totalQuantity(MovementTypeSell, d)
		assert.True(t, asset.TotalQuantity(d).Equal(TruncateAmount(bought.Sub(sold))), "date %s", d.Format("2006-01-02"))
	}
}

func TestAsset_MovementsBetween_InclusiveBounds(t *testing.T) {
	asset := testAsset(t)
	include(t, asset, newMovement(MovementTypeBuy, "1.00", "1.00", day(2020, time.July, 7)))
	include(t, asset, newMovement(MovementTypeBuy, "2.00", "2.00", day(2020, time.July, 8)))
	include(t, asset, newMovement(MovementTypeBuy, "3.00", "3.00", day(2020, time.July, 9)))

	movements := asset.MovementsBetween(day(2020, time.July, 8), day(2020, time.July, 9))
	require.Len(t, movements, 2)
	assert.True(t, movements[0].Date.Equal(day(2020, time.July, 8)))
	assert.True(t, movements[1].Date.Equal(day(2020, time.July, 9)))
}
