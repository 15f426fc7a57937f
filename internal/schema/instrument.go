package schema

// Instrument is the normalized, immutable definition of a tradable venue
// symbol. A reload produces a new value that replaces the old one atomically
// in the external instrument cache; instances are never mutated in place.
//
// Decimal fields are exchange-precision strings. Bound fields left empty mean
// "no venue-side constraint", never "zero allowed".
type Instrument struct {
	ID                 string         `json:"id"`
	Venue              string         `json:"venue"`
	RawSymbol          string         `json:"raw_symbol"`
	Type               InstrumentType `json:"type"`
	BaseCurrency       string         `json:"base_currency"`
	QuoteCurrency      string         `json:"quote_currency"`
	SettlementCurrency string         `json:"settlement_currency"`
	IsInverse          bool           `json:"is_inverse"`
	PricePrecision     int            `json:"price_precision"`
	QuantityPrecision  int            `json:"quantity_precision"`
	PriceIncrement     string         `json:"price_increment"`
	QuantityIncrement  string         `json:"quantity_increment"`
	ContractMultiplier string         `json:"contract_multiplier,omitempty"`
	MinPrice           string         `json:"min_price,omitempty"`
	MaxPrice           string         `json:"max_price,omitempty"`
	MinQuantity        string         `json:"min_quantity,omitempty"`
	MaxQuantity        string         `json:"max_quantity,omitempty"`
	MinNotional        string         `json:"min_notional,omitempty"`
	MaxNotional        string         `json:"max_notional,omitempty"`
	MakerFee           string         `json:"maker_fee"`
	TakerFee           string         `json:"taker_fee"`
	MarginInit         string         `json:"margin_init,omitempty"`
	MarginMaint        string         `json:"margin_maint,omitempty"`
	ActivationNS       int64          `json:"activation_ns,omitempty"`
	ExpirationNS       int64          `json:"expiration_ns,omitempty"`
	TsEvent            int64          `json:"ts_event"`
	TsInit             int64          `json:"ts_init"`
}

// EqualDefinition reports whether two instruments describe the same tradable
// definition, ignoring the two initialization timestamps. Normalizing the
// same raw venue input twice yields definitions equal under this comparison.
func (i Instrument) EqualDefinition(other Instrument) bool {
	a, b := i, other
	a.TsEvent, a.TsInit = 0, 0
	b.TsEvent, b.TsInit = 0, 0
	return a == b
}

// InstrumentCache is the externally owned instrument store the adapter
// publishes normalized definitions and derived currencies into.
type InstrumentCache interface {
	Add(instrument Instrument)
	AddCurrency(currency Currency)
}
