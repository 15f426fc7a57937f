package binance

import (
	"github.com/tradewire/binance-adapter/errs"
	"github.com/tradewire/binance-adapter/internal/schema"
)

// venueName tags error envelopes produced by this adapter.
const venueName = "binance"

// OrderSide is the venue spelling of an order direction.
type OrderSide string

const (
	// OrderSideBuy is the venue buy side.
	OrderSideBuy OrderSide = "BUY"
	// OrderSideSell is the venue sell side.
	OrderSideSell OrderSide = "SELL"
)

// TimeInForce is the venue spelling of an order lifetime policy.
type TimeInForce string

const (
	// TimeInForceGTC is good-till-cancel.
	TimeInForceGTC TimeInForce = "GTC"
	// TimeInForceIOC is immediate-or-cancel.
	TimeInForceIOC TimeInForce = "IOC"
	// TimeInForceFOK is fill-or-kill.
	TimeInForceFOK TimeInForce = "FOK"
	// TimeInForceGTD is good-till-date (futures only).
	TimeInForceGTD TimeInForce = "GTD"
	// TimeInForceGTX is the post-only GTC variant used by futures.
	TimeInForceGTX TimeInForce = "GTX"
	// TimeInForceGTEGTC is an undocumented GTC alias observed on the
	// user data stream. Translating back always emits GTC.
	TimeInForceGTEGTC TimeInForce = "GTE_GTC"
)

// OrderType is the venue spelling of an order execution style.
type OrderType string

const (
	// OrderTypeLimit is a resting limit order.
	OrderTypeLimit OrderType = "LIMIT"
	// OrderTypeMarket is an immediate market order.
	OrderTypeMarket OrderType = "MARKET"
	// OrderTypeLimitMaker is the spot maker-only limit order.
	OrderTypeLimitMaker OrderType = "LIMIT_MAKER"
	// OrderTypeStopLoss is the spot stop-market order.
	OrderTypeStopLoss OrderType = "STOP_LOSS"
	// OrderTypeStopLossLimit is the spot stop-limit order.
	OrderTypeStopLossLimit OrderType = "STOP_LOSS_LIMIT"
	// OrderTypeTakeProfit is the spot take-profit market order. On futures
	// the same spelling denotes a take-profit limit order.
	OrderTypeTakeProfit OrderType = "TAKE_PROFIT"
	// OrderTypeTakeProfitLimit is the spot take-profit limit order.
	OrderTypeTakeProfitLimit OrderType = "TAKE_PROFIT_LIMIT"
	// OrderTypeStop is the futures stop-limit order.
	OrderTypeStop OrderType = "STOP"
	// OrderTypeStopMarket is the futures stop-market order.
	OrderTypeStopMarket OrderType = "STOP_MARKET"
	// OrderTypeTakeProfitMarket is the futures take-profit market order.
	OrderTypeTakeProfitMarket OrderType = "TAKE_PROFIT_MARKET"
	// OrderTypeTrailingStopMarket is the futures trailing stop order.
	OrderTypeTrailingStopMarket OrderType = "TRAILING_STOP_MARKET"
)

// OrderStatus is the venue spelling of an order lifecycle state.
type OrderStatus string

const (
	// OrderStatusNew marks an order accepted onto the book.
	OrderStatusNew OrderStatus = "NEW"
	// OrderStatusPartiallyFilled marks partial execution.
	OrderStatusPartiallyFilled OrderStatus = "PARTIALLY_FILLED"
	// OrderStatusFilled marks complete execution.
	OrderStatusFilled OrderStatus = "FILLED"
	// OrderStatusCanceled marks a canceled order.
	OrderStatusCanceled OrderStatus = "CANCELED"
	// OrderStatusPendingCancel marks a cancel in flight.
	OrderStatusPendingCancel OrderStatus = "PENDING_CANCEL"
	// OrderStatusRejected marks a refused order.
	OrderStatusRejected OrderStatus = "REJECTED"
	// OrderStatusExpired marks an order removed by timeout.
	OrderStatusExpired OrderStatus = "EXPIRED"
	// OrderStatusExpiredInMatch marks an order expired by self-trade
	// prevention. Downstream accounting treats this as a cancel reason, so
	// it maps to the internal canceled state, never expired.
	OrderStatusExpiredInMatch OrderStatus = "EXPIRED_IN_MATCH"
	// OrderStatusNewInsurance marks liquidation via the insurance fund.
	OrderStatusNewInsurance OrderStatus = "NEW_INSURANCE"
	// OrderStatusNewADL marks liquidation via auto-deleveraging.
	OrderStatusNewADL OrderStatus = "NEW_ADL"
)

// WorkingType is the venue spelling of a conditional-order trigger series.
type WorkingType string

const (
	// WorkingTypeContractPrice arms on the last traded contract price.
	WorkingTypeContractPrice WorkingType = "CONTRACT_PRICE"
	// WorkingTypeMarkPrice arms on the venue mark price.
	WorkingTypeMarkPrice WorkingType = "MARK_PRICE"
)

// PositionSide is the venue spelling of the position leg an order targets.
type PositionSide string

const (
	// PositionSideBoth is the one-way position mode leg.
	PositionSideBoth PositionSide = "BOTH"
	// PositionSideLong is the hedge-mode long leg.
	PositionSideLong PositionSide = "LONG"
	// PositionSideShort is the hedge-mode short leg.
	PositionSideShort PositionSide = "SHORT"
)

// EnumParser translates venue enumerations to and from the internal model
// for one product surface. Every method is total over its registered table
// and fails with a structured envelope otherwise: unrecognized venue values
// carry the raw spelling, unsupported internal values carry the supported
// alternatives.
type EnumParser interface {
	AccountType() AccountType

	OrderSideToInternal(side OrderSide) (schema.OrderSide, error)
	OrderSideToVenue(side schema.OrderSide) (OrderSide, error)
	TimeInForceToInternal(tif TimeInForce) (schema.TimeInForce, error)
	TimeInForceToVenue(tif schema.TimeInForce) (TimeInForce, error)
	OrderTypeToInternal(orderType OrderType) (schema.OrderType, error)
	OrderTypeToVenue(orderType schema.OrderType) (OrderType, error)
	OrderStatusToInternal(status OrderStatus) (schema.OrderStatus, error)
	TriggerTypeToInternal(workingType WorkingType) (schema.TriggerType, error)
	TriggerTypeToVenue(triggerType schema.TriggerType) (WorkingType, error)
	KlineIntervalToBar(interval string) (schema.BarAggregation, int, error)
	BarToKlineInterval(aggregation schema.BarAggregation, step int) (string, error)
}

// Shared translation tables, constructed once per process and referenced by
// every parser instance. Venue-to-internal tables may be many-to-one for
// documented aliases; internal-to-venue tables always emit the canonical
// venue spelling.

var orderSideToInternal = map[OrderSide]schema.OrderSide{
	OrderSideBuy:  schema.OrderSideBuy,
	OrderSideSell: schema.OrderSideSell,
}

var orderSideToVenue = map[schema.OrderSide]OrderSide{
	schema.OrderSideBuy:  OrderSideBuy,
	schema.OrderSideSell: OrderSideSell,
}

var timeInForceToInternal = map[TimeInForce]schema.TimeInForce{
	TimeInForceGTC: schema.TimeInForceGTC,
	TimeInForceIOC: schema.TimeInForceIOC,
	TimeInForceFOK: schema.TimeInForceFOK,
	TimeInForceGTD: schema.TimeInForceGTD,
	// Post-only GTC variant and the undocumented stream alias both collapse
	// to plain GTC; re-expansion always emits GTC.
	TimeInForceGTX:    schema.TimeInForceGTC,
	TimeInForceGTEGTC: schema.TimeInForceGTC,
}

var spotTimeInForceToVenue = map[schema.TimeInForce]TimeInForce{
	schema.TimeInForceGTC: TimeInForceGTC,
	schema.TimeInForceIOC: TimeInForceIOC,
	schema.TimeInForceFOK: TimeInForceFOK,
}

var futuresTimeInForceToVenue = map[schema.TimeInForce]TimeInForce{
	schema.TimeInForceGTC: TimeInForceGTC,
	schema.TimeInForceIOC: TimeInForceIOC,
	schema.TimeInForceFOK: TimeInForceFOK,
	schema.TimeInForceGTD: TimeInForceGTD,
}

var spotOrderTypeToInternal = map[OrderType]schema.OrderType{
	OrderTypeLimit:           schema.OrderTypeLimit,
	OrderTypeMarket:          schema.OrderTypeMarket,
	OrderTypeLimitMaker:      schema.OrderTypeLimit,
	OrderTypeStopLoss:        schema.OrderTypeStopMarket,
	OrderTypeStopLossLimit:   schema.OrderTypeStopLimit,
	OrderTypeTakeProfit:      schema.OrderTypeMarketIfTouched,
	OrderTypeTakeProfitLimit: schema.OrderTypeLimitIfTouched,
}

// Spot order submission supports only the limit-style conditional types.
// STOP_LOSS and TAKE_PROFIT appear in reports for legacy orders, so the
// to-internal table keeps them, but new orders cannot use them.
var spotOrderTypeToVenue = map[schema.OrderType]OrderType{
	schema.OrderTypeLimit:          OrderTypeLimit,
	schema.OrderTypeMarket:         OrderTypeMarket,
	schema.OrderTypeStopLimit:      OrderTypeStopLossLimit,
	schema.OrderTypeLimitIfTouched: OrderTypeTakeProfitLimit,
}

var futuresOrderTypeToInternal = map[OrderType]schema.OrderType{
	OrderTypeLimit:              schema.OrderTypeLimit,
	OrderTypeMarket:             schema.OrderTypeMarket,
	OrderTypeStop:               schema.OrderTypeStopLimit,
	OrderTypeStopMarket:         schema.OrderTypeStopMarket,
	OrderTypeTakeProfit:         schema.OrderTypeLimitIfTouched,
	OrderTypeTakeProfitMarket:   schema.OrderTypeMarketIfTouched,
	OrderTypeTrailingStopMarket: schema.OrderTypeTrailingStopMarket,
}

var futuresOrderTypeToVenue = map[schema.OrderType]OrderType{
	schema.OrderTypeLimit:              OrderTypeLimit,
	schema.OrderTypeMarket:             OrderTypeMarket,
	schema.OrderTypeStopLimit:          OrderTypeStop,
	schema.OrderTypeStopMarket:         OrderTypeStopMarket,
	schema.OrderTypeLimitIfTouched:     OrderTypeTakeProfit,
	schema.OrderTypeMarketIfTouched:    OrderTypeTakeProfitMarket,
	schema.OrderTypeTrailingStopMarket: OrderTypeTrailingStopMarket,
}

var spotOrderStatusToInternal = map[OrderStatus]schema.OrderStatus{
	OrderStatusNew:             schema.OrderStatusAccepted,
	OrderStatusPartiallyFilled: schema.OrderStatusPartiallyFilled,
	OrderStatusFilled:          schema.OrderStatusFilled,
	OrderStatusCanceled:        schema.OrderStatusCanceled,
	OrderStatusPendingCancel:   schema.OrderStatusPendingCancel,
	OrderStatusRejected:        schema.OrderStatusRejected,
	OrderStatusExpired:         schema.OrderStatusExpired,
	OrderStatusExpiredInMatch:  schema.OrderStatusCanceled,
}

var futuresOrderStatusToInternal = map[OrderStatus]schema.OrderStatus{
	OrderStatusNew:             schema.OrderStatusAccepted,
	OrderStatusPartiallyFilled: schema.OrderStatusPartiallyFilled,
	OrderStatusFilled:          schema.OrderStatusFilled,
	OrderStatusCanceled:        schema.OrderStatusCanceled,
	OrderStatusRejected:        schema.OrderStatusRejected,
	OrderStatusExpired:         schema.OrderStatusExpired,
	OrderStatusExpiredInMatch:  schema.OrderStatusCanceled,
	// Forced liquidation variants are fully executed from the account's
	// point of view.
	OrderStatusNewInsurance: schema.OrderStatusFilled,
	OrderStatusNewADL:       schema.OrderStatusFilled,
}

var workingTypeToInternal = map[WorkingType]schema.TriggerType{
	WorkingTypeContractPrice: schema.TriggerTypeLastPrice,
	WorkingTypeMarkPrice:     schema.TriggerTypeMarkPrice,
}

var triggerTypeToVenue = map[schema.TriggerType]WorkingType{
	schema.TriggerTypeDefault:   WorkingTypeContractPrice,
	schema.TriggerTypeLastPrice: WorkingTypeContractPrice,
	schema.TriggerTypeMarkPrice: WorkingTypeMarkPrice,
}

type klineKey struct {
	aggregation schema.BarAggregation
	step        int
}

var klineIntervalToBar = map[string]klineKey{
	"1s":  {schema.BarAggregationSecond, 1},
	"1m":  {schema.BarAggregationMinute, 1},
	"3m":  {schema.BarAggregationMinute, 3},
	"5m":  {schema.BarAggregationMinute, 5},
	"15m": {schema.BarAggregationMinute, 15},
	"30m": {schema.BarAggregationMinute, 30},
	"1h":  {schema.BarAggregationHour, 1},
	"2h":  {schema.BarAggregationHour, 2},
	"4h":  {schema.BarAggregationHour, 4},
	"6h":  {schema.BarAggregationHour, 6},
	"8h":  {schema.BarAggregationHour, 8},
	"12h": {schema.BarAggregationHour, 12},
	"1d":  {schema.BarAggregationDay, 1},
	"3d":  {schema.BarAggregationDay, 3},
	"1w":  {schema.BarAggregationWeek, 1},
	"1M":  {schema.BarAggregationMonth, 1},
}

var barToKlineInterval = func() map[klineKey]string {
	out := make(map[klineKey]string, len(klineIntervalToBar))
	for interval, key := range klineIntervalToBar {
		out[key] = interval
	}
	return out
}()

func unrecognized(kind, raw string) error {
	return errs.New(venueName, errs.CodeUnrecognizedEnum,
		errs.WithMessage("unrecognized venue "+kind),
		errs.WithRawValue(raw))
}

func unsupported(kind, value string, supported []string) error {
	return errs.New(venueName, errs.CodeUnsupportedValue,
		errs.WithMessage(kind+" has no venue equivalent for this product type"),
		errs.WithRawValue(value),
		errs.WithSupported(supported...))
}

// baseEnumParser carries the product-independent translations shared by both
// surfaces. It is embedded, never used on its own.
type baseEnumParser struct{}

func (baseEnumParser) OrderSideToInternal(side OrderSide) (schema.OrderSide, error) {
	internal, ok := orderSideToInternal[side]
	if !ok {
		return "", unrecognized("order side", string(side))
	}
	return internal, nil
}

func (baseEnumParser) OrderSideToVenue(side schema.OrderSide) (OrderSide, error) {
	venue, ok := orderSideToVenue[side]
	if !ok {
		return "", unsupported("order side", string(side), keysOf(orderSideToVenue))
	}
	return venue, nil
}

func (baseEnumParser) TimeInForceToInternal(tif TimeInForce) (schema.TimeInForce, error) {
	internal, ok := timeInForceToInternal[tif]
	if !ok {
		return "", unrecognized("time in force", string(tif))
	}
	return internal, nil
}

func (baseEnumParser) KlineIntervalToBar(interval string) (schema.BarAggregation, int, error) {
	key, ok := klineIntervalToBar[interval]
	if !ok {
		return "", 0, unrecognized("kline interval", interval)
	}
	return key.aggregation, key.step, nil
}

func (baseEnumParser) BarToKlineInterval(aggregation schema.BarAggregation, step int) (string, error) {
	interval, ok := barToKlineInterval[klineKey{aggregation: aggregation, step: step}]
	if !ok {
		return "", unsupported("bar interval", string(aggregation), keysVals(barToKlineInterval))
	}
	return interval, nil
}

// SpotEnumParser translates enums for the spot and margin surfaces.
type SpotEnumParser struct {
	baseEnumParser
	accountType AccountType
}

// NewSpotEnumParser builds the enum parser for a spot-style account type.
func NewSpotEnumParser(accountType AccountType) *SpotEnumParser {
	return &SpotEnumParser{accountType: accountType}
}

// AccountType returns the surface this parser serves.
func (p *SpotEnumParser) AccountType() AccountType { return p.accountType }

// TimeInForceToVenue re-expands an internal TIF to the canonical spot spelling.
func (p *SpotEnumParser) TimeInForceToVenue(tif schema.TimeInForce) (TimeInForce, error) {
	venue, ok := spotTimeInForceToVenue[tif]
	if !ok {
		return "", unsupported("time in force", string(tif), keysOf(spotTimeInForceToVenue))
	}
	return venue, nil
}

// OrderTypeToInternal translates a spot venue order type.
func (p *SpotEnumParser) OrderTypeToInternal(orderType OrderType) (schema.OrderType, error) {
	internal, ok := spotOrderTypeToInternal[orderType]
	if !ok {
		return "", unrecognized("order type", string(orderType))
	}
	return internal, nil
}

// OrderTypeToVenue translates an internal order type to the spot spelling.
func (p *SpotEnumParser) OrderTypeToVenue(orderType schema.OrderType) (OrderType, error) {
	venue, ok := spotOrderTypeToVenue[orderType]
	if !ok {
		return "", unsupported("order type", string(orderType), keysOf(spotOrderTypeToVenue))
	}
	return venue, nil
}

// OrderStatusToInternal translates a spot venue order status.
func (p *SpotEnumParser) OrderStatusToInternal(status OrderStatus) (schema.OrderStatus, error) {
	internal, ok := spotOrderStatusToInternal[status]
	if !ok {
		return "", unrecognized("order status", string(status))
	}
	return internal, nil
}

// TriggerTypeToInternal reports that spot has no trigger price series.
func (p *SpotEnumParser) TriggerTypeToInternal(workingType WorkingType) (schema.TriggerType, error) {
	return "", unsupported("trigger type", string(workingType), nil)
}

// TriggerTypeToVenue reports that spot has no trigger price series.
func (p *SpotEnumParser) TriggerTypeToVenue(triggerType schema.TriggerType) (WorkingType, error) {
	return "", unsupported("trigger type", string(triggerType), nil)
}

// FuturesEnumParser translates enums for the derivatives surfaces.
type FuturesEnumParser struct {
	baseEnumParser
	accountType AccountType
}

// NewFuturesEnumParser builds the enum parser for a derivatives account type.
func NewFuturesEnumParser(accountType AccountType) *FuturesEnumParser {
	return &FuturesEnumParser{accountType: accountType}
}

// AccountType returns the surface this parser serves.
func (p *FuturesEnumParser) AccountType() AccountType { return p.accountType }

// TimeInForceToVenue re-expands an internal TIF to the canonical futures spelling.
func (p *FuturesEnumParser) TimeInForceToVenue(tif schema.TimeInForce) (TimeInForce, error) {
	venue, ok := futuresTimeInForceToVenue[tif]
	if !ok {
		return "", unsupported("time in force", string(tif), keysOf(futuresTimeInForceToVenue))
	}
	return venue, nil
}

// OrderTypeToInternal translates a futures venue order type.
func (p *FuturesEnumParser) OrderTypeToInternal(orderType OrderType) (schema.OrderType, error) {
	internal, ok := futuresOrderTypeToInternal[orderType]
	if !ok {
		return "", unrecognized("order type", string(orderType))
	}
	return internal, nil
}

// OrderTypeToVenue translates an internal order type to the futures spelling.
func (p *FuturesEnumParser) OrderTypeToVenue(orderType schema.OrderType) (OrderType, error) {
	venue, ok := futuresOrderTypeToVenue[orderType]
	if !ok {
		return "", unsupported("order type", string(orderType), keysOf(futuresOrderTypeToVenue))
	}
	return venue, nil
}

// OrderStatusToInternal translates a futures venue order status.
func (p *FuturesEnumParser) OrderStatusToInternal(status OrderStatus) (schema.OrderStatus, error) {
	internal, ok := futuresOrderStatusToInternal[status]
	if !ok {
		return "", unrecognized("order status", string(status))
	}
	return internal, nil
}

// TriggerTypeToInternal translates a futures working type.
func (p *FuturesEnumParser) TriggerTypeToInternal(workingType WorkingType) (schema.TriggerType, error) {
	internal, ok := workingTypeToInternal[workingType]
	if !ok {
		return "", unrecognized("working type", string(workingType))
	}
	return internal, nil
}

// TriggerTypeToVenue translates an internal trigger type to a working type.
func (p *FuturesEnumParser) TriggerTypeToVenue(triggerType schema.TriggerType) (WorkingType, error) {
	venue, ok := triggerTypeToVenue[triggerType]
	if !ok {
		return "", unsupported("trigger type", string(triggerType), keysOf(triggerTypeToVenue))
	}
	return venue, nil
}

// NewEnumParser selects the parser variant for the account type.
func NewEnumParser(accountType AccountType) EnumParser {
	if accountType.IsDerivatives() {
		return NewFuturesEnumParser(accountType)
	}
	return NewSpotEnumParser(accountType)
}

func keysOf[K ~string, V any](table map[K]V) []string {
	out := make([]string, 0, len(table))
	for k := range table {
		out = append(out, string(k))
	}
	return out
}

func keysVals[K comparable](table map[K]string) []string {
	out := make([]string, 0, len(table))
	for _, v := range table {
		out = append(out, v)
	}
	return out
}
