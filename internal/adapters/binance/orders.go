package binance

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tradewire/binance-adapter/errs"
	"github.com/tradewire/binance-adapter/internal/numeric"
	"github.com/tradewire/binance-adapter/internal/observability"
	"github.com/tradewire/binance-adapter/internal/schema"
)

// Trailing-stop callback rate accepted by the venue, percent.
var (
	callbackRateMin = decimal.RequireFromString("0.1")
	callbackRateMax = decimal.RequireFromString("10.0")
)

// WireOrderFields is the venue parameter set for one new-order request.
// Empty string and zero fields are omitted from the signed query.
type WireOrderFields struct {
	Symbol           string
	Side             OrderSide
	Type             OrderType
	TimeInForce      TimeInForce
	Quantity         string
	Price            string
	StopPrice        string
	CallbackRate     string
	WorkingType      WorkingType
	PositionSide     PositionSide
	ReduceOnly       bool
	IcebergQty       string
	NewClientOrderID string
	GoodTillDateMS   int64
	RecvWindowMS     int64
}

// Rejection explains why a well-formed intent cannot be expressed on the
// configured product surface. A rejection is a business outcome for the
// caller to report upstream, distinct from a translation error.
type Rejection struct {
	Reason    string
	Supported []string
}

func reject(reason string) *Rejection { return &Rejection{Reason: reason} }

func rejectUnsupported(reason string, err error) *Rejection {
	return &Rejection{Reason: reason, Supported: errs.SupportedOf(err)}
}

// OrderTranslator converts internal order intents into venue request fields
// and venue execution updates back into internal reports, for one configured
// session.
type OrderTranslator struct {
	opts    Options
	parser  EnumParser
	clock   schema.Clock
	metrics *adapterMetrics
}

// NewOrderTranslator validates the session configuration and builds a
// translator bound to it.
func NewOrderTranslator(opts Options, clock schema.Clock) (*OrderTranslator, error) {
	opts = withDefaults(opts)
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &OrderTranslator{
		opts:    opts,
		parser:  NewEnumParser(opts.AccountType),
		clock:   clock,
		metrics: newAdapterMetrics(opts.AccountType),
	}, nil
}

// ToWire translates an internal order intent into venue request fields.
//
// The three outcomes are disjoint: fields with a nil rejection on success, a
// non-nil rejection when the intent is valid but inexpressible on this
// surface, and an error when the intent itself is malformed or conflicts
// with the session configuration.
func (t *OrderTranslator) ToWire(intent schema.OrderIntent) (WireOrderFields, *Rejection, error) {
	if !intent.Side.Valid() {
		return WireOrderFields{}, nil, errs.New(venueName, errs.CodeInvalid,
			errs.WithMessage("order side is required"),
			errs.WithRawValue(string(intent.Side)))
	}
	if !intent.Type.Valid() {
		return WireOrderFields{}, nil, errs.New(venueName, errs.CodeInvalid,
			errs.WithMessage("order type is required"),
			errs.WithRawValue(string(intent.Type)))
	}
	if !numeric.StrictlyPositive(intent.Quantity) {
		return WireOrderFields{}, nil, errs.New(venueName, errs.CodeInvalid,
			errs.WithSymbol(intent.Symbol),
			errs.WithMessage("order quantity must be strictly positive"),
			errs.WithRawValue(intent.Quantity))
	}
	if intent.ReduceOnly && t.opts.HedgeMode {
		return WireOrderFields{}, nil, errs.New(venueName, errs.CodeConfigConflict,
			errs.WithSymbol(intent.Symbol),
			errs.WithMessage("reduce-only order on a hedge-mode session"))
	}

	if rejection := t.checkSurface(intent); rejection != nil {
		t.metrics.orderRejected()
		return WireOrderFields{}, rejection, nil
	}

	symbol, err := NewSymbol(intent.Symbol)
	if err != nil {
		return WireOrderFields{}, nil, err
	}

	fields := WireOrderFields{
		Symbol:           string(symbol),
		Quantity:         intent.Quantity,
		Price:            intent.Price,
		NewClientOrderID: intent.ClientOrderID,
		RecvWindowMS:     t.opts.RecvWindow.Milliseconds(),
	}

	fields.Side, err = t.parser.OrderSideToVenue(intent.Side)
	if err != nil {
		t.metrics.enumMiss()
		return WireOrderFields{}, nil, err
	}

	orderType, tif, rejection, err := t.resolveTypeAndTIF(intent)
	if rejection != nil {
		t.metrics.orderRejected()
		return WireOrderFields{}, rejection, nil
	}
	if err != nil {
		t.metrics.enumMiss()
		return WireOrderFields{}, nil, err
	}
	fields.Type = orderType
	fields.TimeInForce = tif

	if rejection, err := t.applyConditional(intent, &fields); rejection != nil || err != nil {
		if rejection != nil {
			t.metrics.orderRejected()
		}
		return WireOrderFields{}, rejection, err
	}

	if t.opts.AccountType.IsDerivatives() {
		if intent.ReduceOnly && t.opts.UseReduceOnly {
			fields.ReduceOnly = true
		}
		if t.opts.HedgeMode {
			// Hedge-mode leg selection is one-way from the order side:
			// buys open or grow the long leg, sells the short leg.
			fields.PositionSide = PositionSideLong
			if intent.Side == schema.OrderSideSell {
				fields.PositionSide = PositionSideShort
			}
		} else {
			fields.PositionSide = PositionSideBoth
		}
		if fields.TimeInForce == TimeInForceGTD {
			if intent.ExpireTimeNS <= 0 {
				return WireOrderFields{}, nil, errs.New(venueName, errs.CodeInvalid,
					errs.WithSymbol(intent.Symbol),
					errs.WithMessage("good-till-date order requires an expiration time"))
			}
			fields.GoodTillDateMS = intent.ExpireTimeNS / int64(time.Millisecond)
		}
	} else if intent.DisplayQuantity != "" {
		fields.IcebergQty = intent.DisplayQuantity
	}

	t.metrics.orderTranslated()
	return fields, nil, nil
}

// checkSurface rejects intents whose flags are inexpressible on the
// configured product surface before any enum translation is attempted.
func (t *OrderTranslator) checkSurface(intent schema.OrderIntent) *Rejection {
	derivatives := t.opts.AccountType.IsDerivatives()
	if !derivatives {
		if intent.ReduceOnly {
			return reject("reduce-only orders are not supported on spot markets")
		}
		if intent.TimeInForce == schema.TimeInForceGTD && t.opts.UseGTD {
			return reject("good-till-date orders are not supported on spot markets")
		}
		return nil
	}
	if intent.DisplayQuantity != "" {
		return reject("iceberg display quantity is not supported on futures markets")
	}
	return nil
}

// resolveTypeAndTIF translates the order type and time in force together,
// because the post-only encoding couples the two per surface.
func (t *OrderTranslator) resolveTypeAndTIF(intent schema.OrderIntent) (OrderType, TimeInForce, *Rejection, error) {
	if intent.PostOnly && intent.Type != schema.OrderTypeLimit {
		return "", "", reject("post-only applies to limit orders only"), nil
	}
	if intent.PostOnly && intent.TimeInForce != "" && intent.TimeInForce != schema.TimeInForceGTC {
		return "", "", reject("post-only orders carry an implicit GTC time in force"), nil
	}

	internalTIF := intent.TimeInForce
	if internalTIF == schema.TimeInForceGTD && !t.opts.UseGTD {
		observability.Log().Info("converting GTD time in force to GTC",
			observability.String("symbol", intent.Symbol),
			observability.String("client_order_id", intent.ClientOrderID))
		internalTIF = schema.TimeInForceGTC
	}

	orderType, err := t.parser.OrderTypeToVenue(intent.Type)
	if err != nil {
		if errs.CodeOf(err) == errs.CodeUnsupportedValue {
			return "", "", rejectUnsupported("order type "+string(intent.Type)+" is not supported on this product type", err), nil
		}
		return "", "", nil, err
	}

	if intent.PostOnly {
		if t.opts.AccountType.IsDerivatives() {
			// Futures encode post-only as the GTX time in force on a
			// plain limit order.
			return orderType, TimeInForceGTX, nil, nil
		}
		// Spot encodes post-only as the LIMIT_MAKER order type, which
		// forbids an explicit time in force.
		return OrderTypeLimitMaker, "", nil, nil
	}

	if orderType == OrderTypeMarket {
		// Market orders carry no time in force on the wire.
		return orderType, "", nil, nil
	}

	venueTIF, err := t.parser.TimeInForceToVenue(internalTIF)
	if err != nil {
		if errs.CodeOf(err) == errs.CodeUnsupportedValue {
			return "", "", rejectUnsupported("time in force "+string(internalTIF)+" is not supported on this product type", err), nil
		}
		return "", "", nil, err
	}
	return orderType, venueTIF, nil, nil
}

// applyConditional fills trigger fields for conditional order types and
// validates the trailing callback rate.
func (t *OrderTranslator) applyConditional(intent schema.OrderIntent, fields *WireOrderFields) (*Rejection, error) {
	switch intent.Type {
	case schema.OrderTypeStopMarket, schema.OrderTypeStopLimit,
		schema.OrderTypeMarketIfTouched, schema.OrderTypeLimitIfTouched:
		if !numeric.StrictlyPositive(intent.TriggerPrice) {
			return nil, errs.New(venueName, errs.CodeInvalid,
				errs.WithSymbol(intent.Symbol),
				errs.WithMessage("conditional order requires a positive trigger price"),
				errs.WithRawValue(intent.TriggerPrice))
		}
		fields.StopPrice = intent.TriggerPrice
	case schema.OrderTypeTrailingStopMarket:
		rate, ok := numeric.ParseDecimal(intent.CallbackRate)
		if !ok || !numeric.WithinBounds(rate, callbackRateMin, callbackRateMax) {
			return reject("trailing stop callback rate must be between 0.1 and 10.0 percent"), nil
		}
		if !numeric.StrictlyPositive(intent.TriggerPrice) {
			return reject("trailing stop orders require an activation trigger price"), nil
		}
		fields.CallbackRate = intent.CallbackRate
		fields.StopPrice = intent.TriggerPrice
	default:
		return nil, nil
	}

	if t.opts.AccountType.IsDerivatives() {
		triggerType := intent.TriggerType
		if triggerType == "" {
			triggerType = schema.TriggerTypeDefault
		}
		workingType, err := t.parser.TriggerTypeToVenue(triggerType)
		if err != nil {
			t.metrics.enumMiss()
			return nil, err
		}
		fields.WorkingType = workingType
	}
	return nil, nil
}

// FromWire translates a decoded venue execution update into an internal
// report. Reports are append-only facts, so each translation mints a fresh
// report ID.
func (t *OrderTranslator) FromWire(wire WireExecutionReport) (schema.ExecutionReport, error) {
	side, err := t.parser.OrderSideToInternal(wire.Side)
	if err != nil {
		t.metrics.enumMiss()
		return schema.ExecutionReport{}, err
	}
	orderType, err := t.parser.OrderTypeToInternal(wire.Type)
	if err != nil {
		t.metrics.enumMiss()
		return schema.ExecutionReport{}, err
	}
	status, err := t.parser.OrderStatusToInternal(wire.Status)
	if err != nil {
		t.metrics.enumMiss()
		return schema.ExecutionReport{}, err
	}
	tif := schema.TimeInForce("")
	if wire.TimeInForce != "" {
		tif, err = t.parser.TimeInForceToInternal(wire.TimeInForce)
		if err != nil {
			t.metrics.enumMiss()
			return schema.ExecutionReport{}, err
		}
	}

	raw := strings.ToUpper(strings.TrimSpace(wire.Symbol))
	report := schema.ExecutionReport{
		ReportID:        uuid.NewString(),
		ClientOrderID:   wire.ClientOrderID,
		VenueOrderID:    venueOrderID(wire.OrderID),
		Symbol:          Symbol(raw).Decode(t.opts.AccountType),
		Side:            side,
		Type:            orderType,
		TimeInForce:     tif,
		Status:          status,
		Price:           wire.Price,
		TriggerPrice:    wire.StopPrice,
		Quantity:        wire.OrigQty,
		FilledQuantity:  wire.ExecutedQty,
		AvgPrice:        avgPrice(wire),
		LastPrice:       wire.LastPrice,
		LastQuantity:    wire.LastQty,
		CommissionPaid:  wire.Commission,
		CommissionAsset: wire.CommissionAsset,
		ReduceOnly:      wire.ReduceOnly,
		PostOnly:        wire.Type == OrderTypeLimitMaker || wire.TimeInForce == TimeInForceGTX,
		TsEvent:         wire.UpdateTime * int64(time.Millisecond),
		TsInit:          t.clock.TimestampNS(),
	}
	t.metrics.reportTranslated()
	return report, nil
}

func venueOrderID(id int64) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}

// avgPrice prefers the venue-computed average and falls back to deriving it
// from the cumulative quote volume, which is all spot reports carry.
func avgPrice(wire WireExecutionReport) string {
	if avg, ok := numeric.ParseDecimal(wire.AvgPrice); ok && !avg.IsZero() {
		return wire.AvgPrice
	}
	executed, ok := numeric.ParseDecimal(wire.ExecutedQty)
	if !ok || executed.IsZero() {
		return ""
	}
	quote, ok := numeric.ParseDecimal(wire.CumQuote)
	if !ok || quote.IsZero() {
		return ""
	}
	return quote.Div(executed).String()
}
