package binance

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/tradewire/binance-adapter/errs"
	"github.com/tradewire/binance-adapter/internal/observability"
	"github.com/tradewire/binance-adapter/internal/schema"
)

// Venue symbol statuses that mark a listing as not yet tradable. Skipping
// them is a normal occurrence on every load, never a failure.
const statusPendingTrading = "PENDING_TRADING"

const contractTypePerpetual = "PERPETUAL"

// Datasource yields decoded venue records. Transport, signing and retries
// live behind this interface and are not this layer's concern.
type Datasource interface {
	ExchangeInfo(ctx context.Context) (ExchangeInfo, error)
	TradeFees(ctx context.Context) ([]TradeFee, error)
}

// Normalizer converts one decoded venue symbol record into an immutable
// internal instrument definition. It holds only read-only configuration and
// the externally owned currency registry, so concurrent use needs no
// additional synchronization.
type Normalizer struct {
	accountType AccountType
	venue       string
	filters     *FilterParser
	registry    *schema.CurrencyRegistry
	clock       schema.Clock
}

// NewNormalizer builds a normalizer for the configured product surface.
func NewNormalizer(opts Options, registry *schema.CurrencyRegistry, clock schema.Clock) *Normalizer {
	opts = withDefaults(opts)
	return &Normalizer{
		accountType: opts.AccountType,
		venue:       opts.Venue,
		filters:     NewFilterParser(opts.Bounds),
		registry:    registry,
		clock:       clock,
	}
}

// Normalize produces the instrument definition for one venue symbol record.
// The second return is false when the symbol is skipped as not yet tradable;
// that is an expected outcome, not an error. Errors are recoverable per
// symbol: the caller warns and continues with the next record.
func (n *Normalizer) Normalize(info SymbolInfo, fee *TradeFee, serverTimeNS int64) (schema.Instrument, bool, error) {
	if n.shouldSkip(info) {
		return schema.Instrument{}, false, nil
	}

	rawSymbol := strings.ToUpper(strings.TrimSpace(info.Symbol))
	canonical := Symbol(rawSymbol).Decode(n.accountType)

	base := schema.Currency{
		Code:      schema.NormalizeCurrencyCode(info.BaseAsset),
		Precision: info.BaseAssetPrecision,
	}
	quote := schema.Currency{
		Code:      schema.NormalizeCurrencyCode(info.QuoteAsset),
		Precision: quotePrecision(info),
	}
	if base.Code == "" || quote.Code == "" {
		return schema.Instrument{}, false, errs.New(venueName, errs.CodeExchange,
			errs.WithSymbol(rawSymbol),
			errs.WithMessage("symbol carries an invalid asset code"))
	}
	n.registry.Register(base)
	n.registry.Register(quote)

	settlement := quote.Code
	inverse := false
	if n.accountType.IsDerivatives() {
		margin := schema.NormalizeCurrencyCode(info.MarginAsset)
		switch margin {
		case quote.Code:
			settlement = quote.Code
		case base.Code:
			settlement = base.Code
			inverse = true
		default:
			return schema.Instrument{}, false, errs.New(venueName, errs.CodeExchange,
				errs.WithSymbol(rawSymbol),
				errs.WithMessage("margin asset matches neither base nor quote asset"),
				errs.WithRawValue(info.MarginAsset))
		}
	}

	parsed, err := n.filters.Parse(rawSymbol, info.Filters, n.accountType)
	if err != nil {
		return schema.Instrument{}, false, err
	}

	instrument := schema.Instrument{
		ID:                 canonical,
		Venue:              n.venue,
		RawSymbol:          rawSymbol,
		Type:               n.instrumentType(info),
		BaseCurrency:       base.Code,
		QuoteCurrency:      quote.Code,
		SettlementCurrency: settlement,
		IsInverse:          inverse,
		PricePrecision:     parsed.PricePrecision,
		QuantityPrecision:  parsed.QuantityPrecision,
		PriceIncrement:     parsed.TickSize,
		QuantityIncrement:  parsed.StepSize,
		MinPrice:           parsed.MinPrice,
		MaxPrice:           parsed.MaxPrice,
		MinQuantity:        parsed.MinQuantity,
		MaxQuantity:        parsed.MaxQuantity,
		MinNotional:        parsed.MinNotional,
		MaxNotional:        parsed.MaxNotional,
		MakerFee:           feeOrZero(fee, func(f TradeFee) string { return f.MakerCommission }),
		TakerFee:           feeOrZero(fee, func(f TradeFee) string { return f.TakerCommission }),
		MarginInit:         strings.TrimSpace(info.RequiredMarginPct),
		MarginMaint:        strings.TrimSpace(info.MaintMarginPct),
		TsEvent:            serverTimeNS,
		TsInit:             n.clock.TimestampNS(),
	}
	if info.ContractSize > 0 {
		instrument.ContractMultiplier = strconv.FormatFloat(info.ContractSize, 'f', -1, 64)
	}
	if info.OnboardDate > 0 {
		instrument.ActivationNS = info.OnboardDate * int64(time.Millisecond)
	}
	if instrument.Type == schema.InstrumentTypeFutures && info.DeliveryDate > 0 {
		instrument.ExpirationNS = info.DeliveryDate * int64(time.Millisecond)
	}

	return instrument, true, nil
}

// Currencies returns the registered currencies referenced by the instrument.
func (n *Normalizer) Currencies(instrument schema.Instrument) []schema.Currency {
	codes := []string{instrument.BaseCurrency, instrument.QuoteCurrency, instrument.SettlementCurrency}
	out := make([]schema.Currency, 0, len(codes))
	seen := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		if currency, ok := n.registry.Get(code); ok {
			out = append(out, currency)
		}
	}
	return out
}

func (n *Normalizer) shouldSkip(info SymbolInfo) bool {
	if n.accountType.IsDerivatives() && strings.TrimSpace(info.ContractType) == "" {
		// Pending-listing placeholder: the venue publishes the symbol
		// before assigning it a contract type.
		return true
	}
	status := strings.ToUpper(strings.TrimSpace(info.Status))
	if status == "" {
		status = strings.ToUpper(strings.TrimSpace(info.ContractStatus))
	}
	return status == statusPendingTrading
}

func (n *Normalizer) instrumentType(info SymbolInfo) schema.InstrumentType {
	if !n.accountType.IsDerivatives() {
		return schema.InstrumentTypeSpot
	}
	if strings.ToUpper(strings.TrimSpace(info.ContractType)) == contractTypePerpetual {
		return schema.InstrumentTypePerp
	}
	return schema.InstrumentTypeFutures
}

func quotePrecision(info SymbolInfo) int {
	if info.QuoteAssetPrecision > 0 {
		return info.QuoteAssetPrecision
	}
	return info.QuotePrecision
}

func feeOrZero(fee *TradeFee, pick func(TradeFee) string) string {
	if fee == nil {
		return "0"
	}
	value := strings.TrimSpace(pick(*fee))
	if value == "" {
		return "0"
	}
	return value
}

// InstrumentProvider loads venue symbols through a Datasource, normalizes
// them and publishes the results into the external instrument cache.
type InstrumentProvider struct {
	accountType      AccountType
	datasource       Datasource
	normalizer       *Normalizer
	cache            schema.InstrumentCache
	metrics          *adapterMetrics
	suppressWarnings bool

	mu                  sync.Mutex
	publishedCurrencies map[string]struct{}
}

// NewInstrumentProvider wires a provider for the configured surface.
func NewInstrumentProvider(opts Options, datasource Datasource, cache schema.InstrumentCache, registry *schema.CurrencyRegistry, clock schema.Clock) *InstrumentProvider {
	opts = withDefaults(opts)
	return &InstrumentProvider{
		accountType:         opts.AccountType,
		datasource:          datasource,
		normalizer:          NewNormalizer(opts, registry, clock),
		cache:               cache,
		metrics:             newAdapterMetrics(opts.AccountType),
		suppressWarnings:    opts.SuppressLoadWarnings,
		publishedCurrencies: make(map[string]struct{}),
	}
}

// LoadAll normalizes the venue's full symbol catalog. A single malformed
// symbol never aborts the load: it is skipped with a warning and the cycle
// continues.
func (p *InstrumentProvider) LoadAll(ctx context.Context) error {
	return p.load(ctx, nil)
}

// LoadIDs normalizes only the canonical instrument IDs given. The list must
// not be empty.
func (p *InstrumentProvider) LoadIDs(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return errs.New(venueName, errs.CodeInvalid,
			errs.WithMessage("instrument id list must not be empty"))
	}
	permitted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		symbol, err := NewSymbol(id)
		if err != nil {
			return err
		}
		permitted[symbol.Decode(p.accountType)] = struct{}{}
	}
	return p.load(ctx, permitted)
}

// LoadOne normalizes a single canonical instrument ID and returns the
// definition in addition to publishing it.
func (p *InstrumentProvider) LoadOne(ctx context.Context, id string) (schema.Instrument, error) {
	symbol, err := NewSymbol(id)
	if err != nil {
		return schema.Instrument{}, err
	}
	canonical := symbol.Decode(p.accountType)

	info, err := p.datasource.ExchangeInfo(ctx)
	if err != nil {
		return schema.Instrument{}, err
	}
	fees := p.fetchFees(ctx)
	serverTimeNS := info.ServerTime * int64(time.Millisecond)

	for _, record := range info.Symbols {
		raw := strings.ToUpper(strings.TrimSpace(record.Symbol))
		if Symbol(raw).Decode(p.accountType) != canonical {
			continue
		}
		instrument, ok, err := p.normalizer.Normalize(record, fees[raw], serverTimeNS)
		if err != nil {
			return schema.Instrument{}, err
		}
		if !ok {
			return schema.Instrument{}, errs.New(venueName, errs.CodeExchange,
				errs.WithSymbol(raw),
				errs.WithMessage("symbol is not yet tradable"))
		}
		p.publish(instrument)
		return instrument, nil
	}
	return schema.Instrument{}, errs.New(venueName, errs.CodeExchange,
		errs.WithSymbol(canonical),
		errs.WithMessage("symbol not present in venue exchange info"))
}

func (p *InstrumentProvider) load(ctx context.Context, permitted map[string]struct{}) error {
	info, err := p.datasource.ExchangeInfo(ctx)
	if err != nil {
		return err
	}
	fees := p.fetchFees(ctx)
	serverTimeNS := info.ServerTime * int64(time.Millisecond)

	for _, record := range info.Symbols {
		raw := strings.ToUpper(strings.TrimSpace(record.Symbol))
		if permitted != nil {
			if _, ok := permitted[Symbol(raw).Decode(p.accountType)]; !ok {
				continue
			}
		}
		instrument, ok, err := p.normalizer.Normalize(record, fees[raw], serverTimeNS)
		if err != nil {
			p.metrics.instrumentFailed()
			if !p.suppressWarnings {
				observability.Log().Warn("skipping symbol after parse failure",
					observability.String("symbol", raw),
					observability.Err(err))
			}
			continue
		}
		if !ok {
			p.metrics.instrumentSkipped()
			observability.Log().Debug("skipping symbol not yet tradable",
				observability.String("symbol", raw))
			continue
		}
		p.publish(instrument)
	}
	return nil
}

func (p *InstrumentProvider) publish(instrument schema.Instrument) {
	for _, currency := range p.normalizer.Currencies(instrument) {
		if p.markPublished(currency.Code) {
			p.cache.AddCurrency(currency)
		}
	}
	p.cache.Add(instrument)
	p.metrics.instrumentNormalized()
}

// markPublished records the currency code and reports whether this call was
// the first to publish it. Loads may run concurrently.
func (p *InstrumentProvider) markPublished(code string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, done := p.publishedCurrencies[code]; done {
		return false
	}
	p.publishedCurrencies[code] = struct{}{}
	return true
}

func (p *InstrumentProvider) fetchFees(ctx context.Context) map[string]*TradeFee {
	fees, err := p.datasource.TradeFees(ctx)
	if err != nil {
		// Fee data is unavailable on some surfaces (testnet in
		// particular); instruments then carry zero fees.
		observability.Log().Debug("trade fees unavailable, defaulting to zero",
			observability.Err(err))
		return nil
	}
	out := make(map[string]*TradeFee, len(fees))
	for i := range fees {
		fee := fees[i]
		out[strings.ToUpper(strings.TrimSpace(fee.Symbol))] = &fee
	}
	return out
}
