package binance

import (
	"github.com/shopspring/decimal"

	"github.com/tradewire/binance-adapter/errs"
	"github.com/tradewire/binance-adapter/internal/numeric"
)

// FilterType discriminates the raw trading-rule filters a symbol carries.
type FilterType string

const (
	// FilterTypePrice bounds prices and fixes the tick size.
	FilterTypePrice FilterType = "PRICE_FILTER"
	// FilterTypeLotSize bounds quantities and fixes the step size.
	FilterTypeLotSize FilterType = "LOT_SIZE"
	// FilterTypeMinNotional is the legacy minimum notional filter.
	FilterTypeMinNotional FilterType = "MIN_NOTIONAL"
	// FilterTypeNotional is the combined notional filter carrying both
	// bounds plus market-order applicability percentages.
	FilterTypeNotional FilterType = "NOTIONAL"
	// FilterTypeMarketLotSize bounds market order quantities.
	FilterTypeMarketLotSize FilterType = "MARKET_LOT_SIZE"
	// FilterTypeMaxNumOrders caps resting orders per symbol.
	FilterTypeMaxNumOrders FilterType = "MAX_NUM_ORDERS"
	// FilterTypeMaxNumAlgoOrders caps resting conditional orders per symbol.
	FilterTypeMaxNumAlgoOrders FilterType = "MAX_NUM_ALGO_ORDERS"
	// FilterTypeIcebergParts caps the parts an iceberg order may split into.
	FilterTypeIcebergParts FilterType = "ICEBERG_PARTS"
	// FilterTypePercentPrice bounds prices relative to the average price.
	FilterTypePercentPrice FilterType = "PERCENT_PRICE"
	// FilterTypePercentPriceBySide bounds prices per side relative to the
	// average price.
	FilterTypePercentPriceBySide FilterType = "PERCENT_PRICE_BY_SIDE"
	// FilterTypeTrailingDelta bounds trailing stop callback deltas.
	FilterTypeTrailingDelta FilterType = "TRAILING_DELTA"
	// FilterTypeMaxPosition caps the position for the symbol.
	FilterTypeMaxPosition FilterType = "MAX_POSITION"
)

// Bounds are the process-wide sane magnitudes venue tick and step sizes must
// fall within. They guard against venue data corruption silently producing a
// zero or absurd increment.
type Bounds struct {
	MinTickSize decimal.Decimal
	MaxTickSize decimal.Decimal
	MinStepSize decimal.Decimal
	MaxStepSize decimal.Decimal
}

// DefaultBounds returns the bounds used unless overridden in options.
func DefaultBounds() Bounds {
	return Bounds{
		MinTickSize: decimal.New(1, -9),
		MaxTickSize: decimal.New(1, 9),
		MinStepSize: decimal.New(1, -9),
		MaxStepSize: decimal.New(1, 12),
	}
}

// ParsedFilters is the validated, precision-correct form of a symbol's raw
// trading-rule filters. Empty string bounds mean the venue imposes no
// constraint; they are never defaulted to zero.
type ParsedFilters struct {
	PricePrecision    int
	QuantityPrecision int
	TickSize          string
	StepSize          string
	MinPrice          string
	MaxPrice          string
	MinQuantity       string
	MaxQuantity       string
	MinNotional       string
	MaxNotional       string
	MaxNumOrders      int
	MaxNumAlgoOrders  int
	IcebergParts      int
	MinTrailingDelta  string
	MaxTrailingDelta  string
}

// FilterParser converts raw venue filters into validated precision and
// increment values. Safe for concurrent use; it holds only the bounds.
type FilterParser struct {
	bounds Bounds
}

// NewFilterParser builds a parser enforcing the given sane bounds.
func NewFilterParser(bounds Bounds) *FilterParser {
	return &FilterParser{bounds: bounds}
}

func missingFilter(symbol string, filterType FilterType) error {
	return errs.New(venueName, errs.CodeMissingFilter,
		errs.WithSymbol(symbol),
		errs.WithMessage("required filter absent"),
		errs.WithRawValue(string(filterType)))
}

func outOfRange(symbol, field, value string) error {
	return errs.New(venueName, errs.CodeOutOfRange,
		errs.WithSymbol(symbol),
		errs.WithMessage(field+" outside sane bounds"),
		errs.WithRawValue(value))
}

// Parse validates the raw filters of one symbol for the given product
// surface. Price tick and quantity step are required; optional filters are
// parsed when present and ignored when absent or inapplicable.
func (p *FilterParser) Parse(symbol string, filters []SymbolFilter, accountType AccountType) (ParsedFilters, error) {
	byType := make(map[FilterType]SymbolFilter, len(filters))
	for _, filter := range filters {
		byType[filter.FilterType] = filter
	}

	priceFilter, ok := byType[FilterTypePrice]
	if !ok || priceFilter.TickSize == "" {
		return ParsedFilters{}, missingFilter(symbol, FilterTypePrice)
	}
	lotFilter, ok := byType[FilterTypeLotSize]
	if !ok || lotFilter.StepSize == "" {
		return ParsedFilters{}, missingFilter(symbol, FilterTypeLotSize)
	}

	tick, ok := numeric.ParseDecimal(priceFilter.TickSize)
	if !ok || !numeric.WithinBounds(tick, p.bounds.MinTickSize, p.bounds.MaxTickSize) {
		return ParsedFilters{}, outOfRange(symbol, "tick size", priceFilter.TickSize)
	}
	step, ok := numeric.ParseDecimal(lotFilter.StepSize)
	if !ok || !numeric.WithinBounds(step, p.bounds.MinStepSize, p.bounds.MaxStepSize) {
		return ParsedFilters{}, outOfRange(symbol, "step size", lotFilter.StepSize)
	}

	parsed := ParsedFilters{
		// The decimal string is authoritative for precision; float parsing
		// would round 0.0000001-style ticks.
		PricePrecision:    numeric.ScaleFromStep(priceFilter.TickSize),
		QuantityPrecision: numeric.ScaleFromStep(lotFilter.StepSize),
	}
	parsed.TickSize = atScale(priceFilter.TickSize, parsed.PricePrecision)
	parsed.StepSize = atScale(lotFilter.StepSize, parsed.QuantityPrecision)

	var err error
	if parsed.MinPrice, err = optionalBound(symbol, "min price", priceFilter.MinPrice, parsed.PricePrecision); err != nil {
		return ParsedFilters{}, err
	}
	if parsed.MaxPrice, err = optionalBound(symbol, "max price", priceFilter.MaxPrice, parsed.PricePrecision); err != nil {
		return ParsedFilters{}, err
	}
	if parsed.MinQuantity, err = optionalBound(symbol, "min quantity", lotFilter.MinQty, parsed.QuantityPrecision); err != nil {
		return ParsedFilters{}, err
	}
	if parsed.MaxQuantity, err = optionalBound(symbol, "max quantity", lotFilter.MaxQty, parsed.QuantityPrecision); err != nil {
		return ParsedFilters{}, err
	}

	parsed.MinNotional, parsed.MaxNotional = notionalBounds(byType)

	if orderCap, ok := byType[FilterTypeMaxNumOrders]; ok {
		parsed.MaxNumOrders = maxInt(orderCap.MaxNumOrders, orderCap.Limit)
	}
	if algoCap, ok := byType[FilterTypeMaxNumAlgoOrders]; ok {
		parsed.MaxNumAlgoOrders = maxInt(algoCap.MaxNumAlgoOrders, algoCap.Limit)
	}
	if iceberg, ok := byType[FilterTypeIcebergParts]; ok && accountType.IsSpotOrMargin() {
		parsed.IcebergParts = iceberg.Limit
	}
	if trailing, ok := byType[FilterTypeTrailingDelta]; ok {
		parsed.MinTrailingDelta = trailing.MinTrailingBelow
		parsed.MaxTrailingDelta = trailing.MaxTrailingAbove
	}

	return parsed, nil
}

// atScale rewrites a venue decimal string at the derived precision, dropping
// the venue's 8-digit zero padding. Unparseable input passes through; the
// required increments were already validated.
func atScale(value string, scale int) string {
	r, ok := numeric.Parse(value)
	if !ok {
		return value
	}
	return numeric.Format(r, scale)
}

// optionalBound validates a bound string when present and rewrites it at the
// derived precision. Zero values mean the venue imposes no constraint on that
// edge and are normalized to unset.
func optionalBound(symbol, field, value string, scale int) (string, error) {
	if value == "" {
		return "", nil
	}
	d, ok := numeric.ParseDecimal(value)
	if !ok || d.Sign() < 0 {
		return "", outOfRange(symbol, field, value)
	}
	if d.Sign() == 0 {
		return "", nil
	}
	return atScale(value, scale), nil
}

// notionalBounds prefers the explicit legacy minimum-notional filter, falls
// back to the combined notional filter, and otherwise leaves both bounds
// unset. Unset means "no venue-side constraint", not "zero allowed".
func notionalBounds(byType map[FilterType]SymbolFilter) (string, string) {
	if legacy, ok := byType[FilterTypeMinNotional]; ok {
		minNotional := legacy.MinNotional
		if minNotional == "" {
			minNotional = legacy.Notional
		}
		if numeric.StrictlyPositive(minNotional) {
			return minNotional, ""
		}
	}
	if combined, ok := byType[FilterTypeNotional]; ok {
		minNotional := ""
		if numeric.StrictlyPositive(combined.MinNotional) {
			minNotional = combined.MinNotional
		}
		maxNotional := ""
		if numeric.StrictlyPositive(combined.MaxNotional) {
			maxNotional = combined.MaxNotional
		}
		return minNotional, maxNotional
	}
	return "", ""
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
