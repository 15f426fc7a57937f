package binance

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tradewire/binance-adapter/errs"
	"github.com/tradewire/binance-adapter/internal/schema"
)

func TestNewEnumParserSelectsSurface(t *testing.T) {
	require.IsType(t, &SpotEnumParser{}, NewEnumParser(AccountTypeSpot))
	require.IsType(t, &SpotEnumParser{}, NewEnumParser(AccountTypeIsolatedMargin))
	require.IsType(t, &FuturesEnumParser{}, NewEnumParser(AccountTypeUSDTFuture))
	require.IsType(t, &FuturesEnumParser{}, NewEnumParser(AccountTypePortfolioMargin))
}

func TestOrderSideRoundTrip(t *testing.T) {
	parser := NewEnumParser(AccountTypeSpot)
	for _, side := range []schema.OrderSide{schema.OrderSideBuy, schema.OrderSideSell} {
		venue, err := parser.OrderSideToVenue(side)
		require.NoError(t, err)
		back, err := parser.OrderSideToInternal(venue)
		require.NoError(t, err)
		require.Equal(t, side, back)
	}
}

func TestOrderTypeRoundTrip(t *testing.T) {
	for _, accountType := range []AccountType{AccountTypeSpot, AccountTypeUSDTFuture} {
		parser := NewEnumParser(accountType)
		table := spotOrderTypeToVenue
		if accountType.IsDerivatives() {
			table = futuresOrderTypeToVenue
		}
		for internal := range table {
			venue, err := parser.OrderTypeToVenue(internal)
			require.NoError(t, err)
			back, err := parser.OrderTypeToInternal(venue)
			require.NoError(t, err)
			require.Equal(t, internal, back, "%s / %s", accountType, internal)
		}
	}
}

func TestTimeInForceRoundTrip(t *testing.T) {
	for _, accountType := range []AccountType{AccountTypeSpot, AccountTypeUSDTFuture} {
		parser := NewEnumParser(accountType)
		table := spotTimeInForceToVenue
		if accountType.IsDerivatives() {
			table = futuresTimeInForceToVenue
		}
		for internal := range table {
			venue, err := parser.TimeInForceToVenue(internal)
			require.NoError(t, err)
			back, err := parser.TimeInForceToInternal(venue)
			require.NoError(t, err)
			require.Equal(t, internal, back, "%s / %s", accountType, internal)
		}
	}
}

func TestTimeInForceAliasesCollapseToGTC(t *testing.T) {
	parser := NewEnumParser(AccountTypeUSDTFuture)
	for _, alias := range []TimeInForce{TimeInForceGTX, TimeInForceGTEGTC} {
		internal, err := parser.TimeInForceToInternal(alias)
		require.NoError(t, err)
		require.Equal(t, schema.TimeInForceGTC, internal)

		venue, err := parser.TimeInForceToVenue(internal)
		require.NoError(t, err)
		require.Equal(t, TimeInForceGTC, venue, "aliases re-expand to canonical GTC")
	}
}

func TestSpotRejectsGTD(t *testing.T) {
	parser := NewEnumParser(AccountTypeSpot)
	_, err := parser.TimeInForceToVenue(schema.TimeInForceGTD)
	require.True(t, errs.IsUnsupportedValue(err))
	require.NotEmpty(t, errs.SupportedOf(err))
}

func TestSpotRejectsStopMarketSubmission(t *testing.T) {
	parser := NewEnumParser(AccountTypeSpot)

	// Legacy stop-loss reports still translate inbound.
	internal, err := parser.OrderTypeToInternal(OrderTypeStopLoss)
	require.NoError(t, err)
	require.Equal(t, schema.OrderTypeStopMarket, internal)

	// New submissions cannot express the type.
	_, err = parser.OrderTypeToVenue(schema.OrderTypeStopMarket)
	require.True(t, errs.IsUnsupportedValue(err))
	require.NotEmpty(t, errs.SupportedOf(err))
}

func TestExpiredInMatchMapsToCanceled(t *testing.T) {
	for _, accountType := range []AccountType{AccountTypeSpot, AccountTypeUSDTFuture} {
		parser := NewEnumParser(accountType)
		status, err := parser.OrderStatusToInternal(OrderStatusExpiredInMatch)
		require.NoError(t, err)
		require.Equal(t, schema.OrderStatusCanceled, status, accountType)
	}
}

func TestRejectedStatusRecognizedOnBothSurfaces(t *testing.T) {
	for _, accountType := range []AccountType{AccountTypeSpot, AccountTypeUSDTFuture, AccountTypeCoinFuture} {
		parser := NewEnumParser(accountType)
		status, err := parser.OrderStatusToInternal(OrderStatusRejected)
		require.NoError(t, err, accountType)
		require.Equal(t, schema.OrderStatusRejected, status, accountType)
	}
}

func TestLiquidationStatusesMapToFilled(t *testing.T) {
	parser := NewEnumParser(AccountTypeUSDTFuture)
	for _, status := range []OrderStatus{OrderStatusNewInsurance, OrderStatusNewADL} {
		internal, err := parser.OrderStatusToInternal(status)
		require.NoError(t, err)
		require.Equal(t, schema.OrderStatusFilled, internal, status)
	}
}

func TestUnrecognizedEnumCarriesRawValue(t *testing.T) {
	parser := NewEnumParser(AccountTypeSpot)
	_, err := parser.OrderStatusToInternal("SOMETHING_NEW")
	require.True(t, errs.IsUnrecognizedEnum(err))

	var envelope *errs.E
	require.ErrorAs(t, err, &envelope)
	require.Equal(t, "SOMETHING_NEW", envelope.RawValue)
	require.Equal(t, venueName, envelope.Venue)
}

func TestTriggerTypeBySurface(t *testing.T) {
	spot := NewEnumParser(AccountTypeSpot)
	_, err := spot.TriggerTypeToVenue(schema.TriggerTypeLastPrice)
	require.True(t, errs.IsUnsupportedValue(err))
	_, err = spot.TriggerTypeToInternal(WorkingTypeMarkPrice)
	require.True(t, errs.IsUnsupportedValue(err))

	futures := NewEnumParser(AccountTypeUSDTFuture)
	for internal, want := range map[schema.TriggerType]WorkingType{
		schema.TriggerTypeDefault:   WorkingTypeContractPrice,
		schema.TriggerTypeLastPrice: WorkingTypeContractPrice,
		schema.TriggerTypeMarkPrice: WorkingTypeMarkPrice,
	} {
		venue, err := futures.TriggerTypeToVenue(internal)
		require.NoError(t, err)
		require.Equal(t, want, venue, internal)
	}

	internal, err := futures.TriggerTypeToInternal(WorkingTypeContractPrice)
	require.NoError(t, err)
	require.Equal(t, schema.TriggerTypeLastPrice, internal)
}

func TestKlineIntervalRoundTrip(t *testing.T) {
	parser := NewEnumParser(AccountTypeSpot)
	for interval := range klineIntervalToBar {
		aggregation, step, err := parser.KlineIntervalToBar(interval)
		require.NoError(t, err)
		back, err := parser.BarToKlineInterval(aggregation, step)
		require.NoError(t, err)
		require.Equal(t, interval, back)
	}

	_, _, err := parser.KlineIntervalToBar("7h")
	require.True(t, errs.IsUnrecognizedEnum(err))
	_, err = parser.BarToKlineInterval(schema.BarAggregationHour, 7)
	require.True(t, errs.IsUnsupportedValue(err))
}
