// Package schema defines the venue-agnostic trading model the adapter
// normalizes venue payloads into.
package schema

// OrderSide identifies the direction of an order.
type OrderSide string

const (
	// OrderSideBuy represents a buy order.
	OrderSideBuy OrderSide = "BUY"
	// OrderSideSell represents a sell order.
	OrderSideSell OrderSide = "SELL"
)

// Valid reports whether the order side is recognised.
func (s OrderSide) Valid() bool {
	switch s {
	case OrderSideBuy, OrderSideSell:
		return true
	default:
		return false
	}
}

// OrderType identifies the execution style of an order.
type OrderType string

const (
	// OrderTypeMarket executes immediately at the best available price.
	OrderTypeMarket OrderType = "MARKET"
	// OrderTypeLimit rests at a limit price.
	OrderTypeLimit OrderType = "LIMIT"
	// OrderTypeStopMarket triggers a market order at a stop price.
	OrderTypeStopMarket OrderType = "STOP_MARKET"
	// OrderTypeStopLimit triggers a limit order at a stop price.
	OrderTypeStopLimit OrderType = "STOP_LIMIT"
	// OrderTypeMarketIfTouched triggers a market order at a take-profit price.
	OrderTypeMarketIfTouched OrderType = "MARKET_IF_TOUCHED"
	// OrderTypeLimitIfTouched triggers a limit order at a take-profit price.
	OrderTypeLimitIfTouched OrderType = "LIMIT_IF_TOUCHED"
	// OrderTypeTrailingStopMarket trails the market by a callback offset.
	OrderTypeTrailingStopMarket OrderType = "TRAILING_STOP_MARKET"
)

// Valid reports whether the order type is recognised.
func (t OrderType) Valid() bool {
	switch t {
	case OrderTypeMarket,
		OrderTypeLimit,
		OrderTypeStopMarket,
		OrderTypeStopLimit,
		OrderTypeMarketIfTouched,
		OrderTypeLimitIfTouched,
		OrderTypeTrailingStopMarket:
		return true
	default:
		return false
	}
}

// TimeInForce identifies how long an order remains active.
type TimeInForce string

const (
	// TimeInForceGTC keeps the order active until canceled.
	TimeInForceGTC TimeInForce = "GTC"
	// TimeInForceIOC fills what it can immediately and cancels the rest.
	TimeInForceIOC TimeInForce = "IOC"
	// TimeInForceFOK fills completely immediately or cancels entirely.
	TimeInForceFOK TimeInForce = "FOK"
	// TimeInForceGTD keeps the order active until a given date.
	TimeInForceGTD TimeInForce = "GTD"
)

// Valid reports whether the time in force is recognised.
func (t TimeInForce) Valid() bool {
	switch t {
	case TimeInForceGTC, TimeInForceIOC, TimeInForceFOK, TimeInForceGTD:
		return true
	default:
		return false
	}
}

// OrderStatus identifies the lifecycle state of an order.
type OrderStatus string

const (
	// OrderStatusAccepted marks an order resting on the venue book.
	OrderStatusAccepted OrderStatus = "ACCEPTED"
	// OrderStatusPendingCancel marks a cancel in flight.
	OrderStatusPendingCancel OrderStatus = "PENDING_CANCEL"
	// OrderStatusPartiallyFilled marks an order with partial executions.
	OrderStatusPartiallyFilled OrderStatus = "PARTIALLY_FILLED"
	// OrderStatusFilled marks a completely executed order.
	OrderStatusFilled OrderStatus = "FILLED"
	// OrderStatusCanceled marks an order removed by request or venue policy.
	OrderStatusCanceled OrderStatus = "CANCELED"
	// OrderStatusExpired marks an order removed by timeout.
	OrderStatusExpired OrderStatus = "EXPIRED"
	// OrderStatusRejected marks an order refused by the venue.
	OrderStatusRejected OrderStatus = "REJECTED"
)

// Valid reports whether the order status is recognised.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusAccepted,
		OrderStatusPendingCancel,
		OrderStatusPartiallyFilled,
		OrderStatusFilled,
		OrderStatusCanceled,
		OrderStatusExpired,
		OrderStatusRejected:
		return true
	default:
		return false
	}
}

// Terminal reports whether the status ends the order lifecycle. Once an order
// reaches a terminal status, further venue updates must not regress it; the
// downstream order aggregate enforces that using this classification.
func (s OrderStatus) Terminal() bool {
	switch s {
	case OrderStatusFilled, OrderStatusCanceled, OrderStatusExpired, OrderStatusRejected:
		return true
	default:
		return false
	}
}

// TriggerType identifies which price series arms a conditional order.
type TriggerType string

const (
	// TriggerTypeDefault defers to the venue default trigger price series.
	TriggerTypeDefault TriggerType = "DEFAULT"
	// TriggerTypeLastPrice arms on the last traded price.
	TriggerTypeLastPrice TriggerType = "LAST_PRICE"
	// TriggerTypeMarkPrice arms on the venue mark price.
	TriggerTypeMarkPrice TriggerType = "MARK_PRICE"
)

// Valid reports whether the trigger type is recognised.
func (t TriggerType) Valid() bool {
	switch t {
	case TriggerTypeDefault, TriggerTypeLastPrice, TriggerTypeMarkPrice:
		return true
	default:
		return false
	}
}

// BarAggregation identifies the unit a bar interval is expressed in.
type BarAggregation string

const (
	// BarAggregationSecond aggregates by seconds.
	BarAggregationSecond BarAggregation = "SECOND"
	// BarAggregationMinute aggregates by minutes.
	BarAggregationMinute BarAggregation = "MINUTE"
	// BarAggregationHour aggregates by hours.
	BarAggregationHour BarAggregation = "HOUR"
	// BarAggregationDay aggregates by days.
	BarAggregationDay BarAggregation = "DAY"
	// BarAggregationWeek aggregates by weeks.
	BarAggregationWeek BarAggregation = "WEEK"
	// BarAggregationMonth aggregates by months.
	BarAggregationMonth BarAggregation = "MONTH"
)

// Valid reports whether the bar aggregation is recognised.
func (b BarAggregation) Valid() bool {
	switch b {
	case BarAggregationSecond,
		BarAggregationMinute,
		BarAggregationHour,
		BarAggregationDay,
		BarAggregationWeek,
		BarAggregationMonth:
		return true
	default:
		return false
	}
}

// InstrumentType identifies the market structure for an instrument.
type InstrumentType string

const (
	// InstrumentTypeSpot represents spot markets.
	InstrumentTypeSpot InstrumentType = "spot"
	// InstrumentTypePerp represents perpetual swap markets.
	InstrumentTypePerp InstrumentType = "perp"
	// InstrumentTypeFutures represents dated futures markets.
	InstrumentTypeFutures InstrumentType = "futures"
)

// Valid reports whether the instrument type is recognised.
func (it InstrumentType) Valid() bool {
	switch it {
	case InstrumentTypeSpot, InstrumentTypePerp, InstrumentTypeFutures:
		return true
	default:
		return false
	}
}
