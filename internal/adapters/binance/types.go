package binance

import (
	json "github.com/goccy/go-json"

	"github.com/go-playground/validator/v10"
)

// The raw record types below mirror the documented Binance REST and user
// stream payloads this layer consumes. Transport decodes bytes into these
// records; everything downstream works on the typed form.

// ExchangeInfo is the decoded exchangeInfo response common to all surfaces.
type ExchangeInfo struct {
	ServerTime int64        `json:"serverTime"`
	Symbols    []SymbolInfo `json:"symbols" validate:"required"`
}

// SymbolInfo is the decoded per-symbol record of an exchangeInfo response.
// Spot and futures surfaces share the shape; surface-specific fields are
// simply absent on the other surface.
type SymbolInfo struct {
	Symbol              string         `json:"symbol" validate:"required"`
	Pair                string         `json:"pair,omitempty"`
	Status              string         `json:"status"`
	ContractStatus      string         `json:"contractStatus,omitempty"`
	BaseAsset           string         `json:"baseAsset" validate:"required"`
	BaseAssetPrecision  int            `json:"baseAssetPrecision" validate:"gte=0,lte=18"`
	QuoteAsset          string         `json:"quoteAsset" validate:"required"`
	QuotePrecision      int            `json:"quotePrecision" validate:"gte=0,lte=18"`
	QuoteAssetPrecision int            `json:"quoteAssetPrecision,omitempty"`
	MarginAsset         string         `json:"marginAsset,omitempty"`
	ContractType        string         `json:"contractType,omitempty"`
	DeliveryDate        int64          `json:"deliveryDate,omitempty"`
	OnboardDate         int64          `json:"onboardDate,omitempty"`
	UnderlyingType      string         `json:"underlyingType,omitempty"`
	ContractSize        float64        `json:"contractSize,omitempty"`
	RequiredMarginPct   string         `json:"requiredMarginPercent,omitempty"`
	MaintMarginPct      string         `json:"maintMarginPercent,omitempty"`
	LiquidationFee      string         `json:"liquidationFee,omitempty"`
	OrderTypes          []string       `json:"orderTypes,omitempty"`
	TimeInForce         []string       `json:"timeInForce,omitempty"`
	Filters             []SymbolFilter `json:"filters"`
	Permissions         []string       `json:"permissions,omitempty"`
}

// SymbolFilter is one raw trading-rule filter attached to a symbol. Which
// numeric fields are populated depends on FilterType; absent fields decode
// to the empty string so the parser can distinguish unset from zero.
type SymbolFilter struct {
	FilterType        FilterType `json:"filterType" validate:"required"`
	MinPrice          string     `json:"minPrice,omitempty"`
	MaxPrice          string     `json:"maxPrice,omitempty"`
	TickSize          string     `json:"tickSize,omitempty"`
	MinQty            string     `json:"minQty,omitempty"`
	MaxQty            string     `json:"maxQty,omitempty"`
	StepSize          string     `json:"stepSize,omitempty"`
	MinNotional       string     `json:"minNotional,omitempty"`
	MaxNotional       string     `json:"maxNotional,omitempty"`
	Notional          string     `json:"notional,omitempty"`
	ApplyToMarket     bool       `json:"applyToMarket,omitempty"`
	ApplyMinToMarket  bool       `json:"applyMinToMarket,omitempty"`
	AvgPriceMins      int        `json:"avgPriceMins,omitempty"`
	MultiplierUp      string     `json:"multiplierUp,omitempty"`
	MultiplierDown    string     `json:"multiplierDown,omitempty"`
	MultiplierDecimal string     `json:"multiplierDecimal,omitempty"`
	Limit             int        `json:"limit,omitempty"`
	MaxNumOrders      int        `json:"maxNumOrders,omitempty"`
	MaxNumAlgoOrders  int        `json:"maxNumAlgoOrders,omitempty"`
	MinTrailingAbove  string     `json:"minTrailingAboveDelta,omitempty"`
	MaxTrailingAbove  string     `json:"maxTrailingAboveDelta,omitempty"`
	MinTrailingBelow  string     `json:"minTrailingBelowDelta,omitempty"`
	MaxTrailingBelow  string     `json:"maxTrailingBelowDelta,omitempty"`
}

// TradeFee is the decoded maker/taker commission record for one symbol.
type TradeFee struct {
	Symbol          string `json:"symbol" validate:"required"`
	MakerCommission string `json:"makerCommission"`
	TakerCommission string `json:"takerCommission"`
}

// WireExecutionReport is the decoded order/execution update delivered by the
// venue over REST responses and the user data stream.
type WireExecutionReport struct {
	Symbol          string      `json:"symbol" validate:"required"`
	OrderID         int64       `json:"orderId"`
	ClientOrderID   string      `json:"clientOrderId"`
	Side            OrderSide   `json:"side" validate:"required"`
	Type            OrderType   `json:"type" validate:"required"`
	TimeInForce     TimeInForce `json:"timeInForce,omitempty"`
	Status          OrderStatus `json:"status" validate:"required"`
	Price           string      `json:"price,omitempty"`
	StopPrice       string      `json:"stopPrice,omitempty"`
	OrigQty         string      `json:"origQty"`
	ExecutedQty     string      `json:"executedQty"`
	AvgPrice        string      `json:"avgPrice,omitempty"`
	CumQuote        string      `json:"cummulativeQuoteQty,omitempty"`
	LastPrice       string      `json:"lastPrice,omitempty"`
	LastQty         string      `json:"lastQty,omitempty"`
	Commission      string      `json:"commission,omitempty"`
	CommissionAsset string      `json:"commissionAsset,omitempty"`
	ReduceOnly      bool        `json:"reduceOnly,omitempty"`
	IsMaker         bool        `json:"isMaker,omitempty"`
	UpdateTime      int64       `json:"updateTime"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// DecodeExchangeInfo decodes and validates a raw exchangeInfo payload.
func DecodeExchangeInfo(data []byte) (ExchangeInfo, error) {
	var info ExchangeInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return ExchangeInfo{}, err
	}
	if err := validate.Struct(info); err != nil {
		return ExchangeInfo{}, err
	}
	return info, nil
}

// DecodeExecutionReport decodes and validates a raw order update payload.
func DecodeExecutionReport(data []byte) (WireExecutionReport, error) {
	var report WireExecutionReport
	if err := json.Unmarshal(data, &report); err != nil {
		return WireExecutionReport{}, err
	}
	if err := validate.Struct(report); err != nil {
		return WireExecutionReport{}, err
	}
	return report, nil
}
