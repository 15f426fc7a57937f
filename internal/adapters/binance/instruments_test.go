package binance

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tradewire/binance-adapter/errs"
	"github.com/tradewire/binance-adapter/internal/observability"
	"github.com/tradewire/binance-adapter/internal/schema"
)

type fixedClock struct{ ns int64 }

func (c fixedClock) TimestampNS() int64 { return c.ns }

type fakeDatasource struct {
	info    ExchangeInfo
	infoErr error
	fees    []TradeFee
	feesErr error
}

func (d *fakeDatasource) ExchangeInfo(context.Context) (ExchangeInfo, error) {
	return d.info, d.infoErr
}

func (d *fakeDatasource) TradeFees(context.Context) ([]TradeFee, error) {
	return d.fees, d.feesErr
}

type fakeCache struct {
	mu          sync.Mutex
	instruments []schema.Instrument
	currencies  []schema.Currency
}

func (c *fakeCache) Add(instrument schema.Instrument) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.instruments = append(c.instruments, instrument)
}

func (c *fakeCache) AddCurrency(currency schema.Currency) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.currencies = append(c.currencies, currency)
}

func (c *fakeCache) instrument(id string) (schema.Instrument, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, instrument := range c.instruments {
		if instrument.ID == id {
			return instrument, true
		}
	}
	return schema.Instrument{}, false
}

func spotSymbolInfo(symbol, base, quote string) SymbolInfo {
	return SymbolInfo{
		Symbol:              symbol,
		Status:              "TRADING",
		BaseAsset:           base,
		BaseAssetPrecision:  8,
		QuoteAsset:          quote,
		QuotePrecision:      8,
		QuoteAssetPrecision: 8,
		Filters:             defaultFilters(),
	}
}

func futuresSymbolInfo(symbol, base, quote, margin string) SymbolInfo {
	info := spotSymbolInfo(symbol, base, quote)
	info.MarginAsset = margin
	info.ContractType = contractTypePerpetual
	info.OnboardDate = 1_569_398_400_000
	info.RequiredMarginPct = "5.0000"
	info.MaintMarginPct = "2.5000"
	return info
}

func newSpotProvider(datasource Datasource, cache schema.InstrumentCache) *InstrumentProvider {
	return NewInstrumentProvider(Options{AccountType: AccountTypeSpot}, datasource, cache,
		schema.NewCurrencyRegistry(), fixedClock{ns: 42})
}

func TestLoadAllNormalizesCatalog(t *testing.T) {
	datasource := &fakeDatasource{
		info: ExchangeInfo{
			ServerTime: 1_700_000_000_000,
			Symbols: []SymbolInfo{
				spotSymbolInfo("BTCUSDT", "BTC", "USDT"),
				spotSymbolInfo("ETHUSDT", "ETH", "USDT"),
			},
		},
		fees: []TradeFee{{Symbol: "BTCUSDT", MakerCommission: "0.001", TakerCommission: "0.002"}},
	}
	cache := &fakeCache{}
	provider := newSpotProvider(datasource, cache)

	require.NoError(t, provider.LoadAll(context.Background()))
	require.Len(t, cache.instruments, 2)

	btc, ok := cache.instrument("BTCUSDT")
	require.True(t, ok)
	require.Equal(t, "BINANCE", btc.Venue)
	require.Equal(t, schema.InstrumentTypeSpot, btc.Type)
	require.Equal(t, "BTC", btc.BaseCurrency)
	require.Equal(t, "USDT", btc.QuoteCurrency)
	require.Equal(t, "USDT", btc.SettlementCurrency)
	require.Equal(t, 2, btc.PricePrecision)
	require.Equal(t, 3, btc.QuantityPrecision)
	require.Equal(t, "10", btc.MinNotional)
	require.Equal(t, "0.001", btc.MakerFee)
	require.Equal(t, "0.002", btc.TakerFee)
	require.Equal(t, int64(1_700_000_000_000_000_000), btc.TsEvent)
	require.Equal(t, int64(42), btc.TsInit)

	// No fee record for ETHUSDT: fees default to zero, never fail the load.
	eth, ok := cache.instrument("ETHUSDT")
	require.True(t, ok)
	require.Equal(t, "0", eth.MakerFee)
	require.Equal(t, "0", eth.TakerFee)

	// Shared quote currency registers once.
	codes := make(map[string]int)
	for _, currency := range cache.currencies {
		codes[currency.Code]++
	}
	require.Equal(t, map[string]int{"BTC": 1, "ETH": 1, "USDT": 1}, codes)
}

func TestLoadAllSkipsPendingSymbols(t *testing.T) {
	pending := spotSymbolInfo("NEWUSDT", "NEW", "USDT")
	pending.Status = statusPendingTrading
	datasource := &fakeDatasource{
		info: ExchangeInfo{Symbols: []SymbolInfo{
			spotSymbolInfo("BTCUSDT", "BTC", "USDT"),
			pending,
		}},
	}
	cache := &fakeCache{}
	provider := newSpotProvider(datasource, cache)

	require.NoError(t, provider.LoadAll(context.Background()))
	require.Len(t, cache.instruments, 1)
	_, ok := cache.instrument("NEWUSDT")
	require.False(t, ok)
}

func TestLoadAllSkipsContractlessDerivative(t *testing.T) {
	placeholder := futuresSymbolInfo("NEWUSDT", "NEW", "USDT", "USDT")
	placeholder.ContractType = ""
	datasource := &fakeDatasource{
		info: ExchangeInfo{Symbols: []SymbolInfo{
			futuresSymbolInfo("BTCUSDT", "BTC", "USDT", "USDT"),
			placeholder,
		}},
	}
	cache := &fakeCache{}
	provider := NewInstrumentProvider(Options{AccountType: AccountTypeUSDTFuture}, datasource, cache,
		schema.NewCurrencyRegistry(), fixedClock{ns: 42})

	require.NoError(t, provider.LoadAll(context.Background()))
	require.Len(t, cache.instruments, 1)
	require.Equal(t, "BTCUSDT-PERP", cache.instruments[0].ID)
}

func TestLoadAllContinuesPastBrokenSymbol(t *testing.T) {
	capture := observability.NewCaptureLogger()
	observability.SetLogger(capture)
	defer observability.SetLogger(nil)

	broken := spotSymbolInfo("BADUSDT", "BAD", "USDT")
	broken.Filters = nil
	datasource := &fakeDatasource{
		info: ExchangeInfo{Symbols: []SymbolInfo{
			broken,
			spotSymbolInfo("BTCUSDT", "BTC", "USDT"),
		}},
	}
	cache := &fakeCache{}
	provider := newSpotProvider(datasource, cache)

	require.NoError(t, provider.LoadAll(context.Background()))
	require.Len(t, cache.instruments, 1)
	require.Equal(t, 1, capture.CountLevel("warn"))
}

func TestLoadAllSuppressesWarnings(t *testing.T) {
	capture := observability.NewCaptureLogger()
	observability.SetLogger(capture)
	defer observability.SetLogger(nil)

	broken := spotSymbolInfo("BADUSDT", "BAD", "USDT")
	broken.Filters = nil
	datasource := &fakeDatasource{info: ExchangeInfo{Symbols: []SymbolInfo{broken}}}
	cache := &fakeCache{}
	provider := NewInstrumentProvider(Options{AccountType: AccountTypeSpot, SuppressLoadWarnings: true},
		datasource, cache, schema.NewCurrencyRegistry(), fixedClock{ns: 42})

	require.NoError(t, provider.LoadAll(context.Background()))
	require.Zero(t, capture.CountLevel("warn"))
}

func TestLoadAllPropagatesDatasourceError(t *testing.T) {
	datasource := &fakeDatasource{infoErr: errors.New("boom")}
	provider := newSpotProvider(datasource, &fakeCache{})
	require.Error(t, provider.LoadAll(context.Background()))
}

func TestLoadIDsFiltersCatalog(t *testing.T) {
	datasource := &fakeDatasource{
		info: ExchangeInfo{Symbols: []SymbolInfo{
			spotSymbolInfo("BTCUSDT", "BTC", "USDT"),
			spotSymbolInfo("ETHUSDT", "ETH", "USDT"),
			spotSymbolInfo("SOLUSDT", "SOL", "USDT"),
		}},
	}
	cache := &fakeCache{}
	provider := newSpotProvider(datasource, cache)

	require.NoError(t, provider.LoadIDs(context.Background(), []string{"btcusdt", "ETH/USDT"}))
	require.Len(t, cache.instruments, 2)
	_, ok := cache.instrument("SOLUSDT")
	require.False(t, ok)
}

func TestLoadIDsRejectsEmptyList(t *testing.T) {
	provider := newSpotProvider(&fakeDatasource{}, &fakeCache{})
	err := provider.LoadIDs(context.Background(), nil)
	require.True(t, errs.IsInvalid(err))
}

func TestLoadOne(t *testing.T) {
	datasource := &fakeDatasource{
		info: ExchangeInfo{Symbols: []SymbolInfo{
			futuresSymbolInfo("BTCUSDT", "BTC", "USDT", "USDT"),
		}},
	}
	cache := &fakeCache{}
	provider := NewInstrumentProvider(Options{AccountType: AccountTypeUSDTFuture}, datasource, cache,
		schema.NewCurrencyRegistry(), fixedClock{ns: 42})

	instrument, err := provider.LoadOne(context.Background(), "BTCUSDT-PERP")
	require.NoError(t, err)
	require.Equal(t, "BTCUSDT-PERP", instrument.ID)
	require.Equal(t, schema.InstrumentTypePerp, instrument.Type)
	require.Equal(t, "5.0000", instrument.MarginInit)
	require.Equal(t, "2.5000", instrument.MarginMaint)
	require.False(t, instrument.IsInverse)
	require.Len(t, cache.instruments, 1)

	_, err = provider.LoadOne(context.Background(), "DOGEUSDT")
	require.ErrorIs(t, err, errs.New(venueName, errs.CodeExchange))
}

func TestLoadOneConcurrentPublishesCurrenciesOnce(t *testing.T) {
	datasource := &fakeDatasource{
		info: ExchangeInfo{Symbols: []SymbolInfo{
			spotSymbolInfo("BTCUSDT", "BTC", "USDT"),
		}},
	}
	cache := &fakeCache{}
	provider := newSpotProvider(datasource, cache)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := provider.LoadOne(context.Background(), "BTCUSDT")
			require.NoError(t, err)
		}()
	}
	wg.Wait()

	codes := make(map[string]int)
	for _, currency := range cache.currencies {
		codes[currency.Code]++
	}
	require.Equal(t, map[string]int{"BTC": 1, "USDT": 1}, codes)
}

func TestNormalizeInverseContract(t *testing.T) {
	registry := schema.NewCurrencyRegistry()
	normalizer := NewNormalizer(Options{AccountType: AccountTypeCoinFuture}, registry, fixedClock{ns: 1})

	info := futuresSymbolInfo("BTCUSD_PERP", "BTC", "USD", "BTC")
	instrument, ok, err := normalizer.Normalize(info, nil, 0)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "BTCUSD-PERP", instrument.ID)
	require.True(t, instrument.IsInverse)
	require.Equal(t, "BTC", instrument.SettlementCurrency)
}

func TestNormalizeRejectsForeignMarginAsset(t *testing.T) {
	registry := schema.NewCurrencyRegistry()
	normalizer := NewNormalizer(Options{AccountType: AccountTypeUSDTFuture}, registry, fixedClock{ns: 1})

	info := futuresSymbolInfo("BTCUSDT", "BTC", "USDT", "BNB")
	_, _, err := normalizer.Normalize(info, nil, 0)
	require.Error(t, err)
	require.True(t, errs.Recoverable(err), "a single odd contract must not abort the load")
}

func TestNormalizeDeterministic(t *testing.T) {
	registry := schema.NewCurrencyRegistry()
	normalizer := NewNormalizer(Options{AccountType: AccountTypeSpot}, registry, schema.SystemClock{})

	info := spotSymbolInfo("BTCUSDT", "BTC", "USDT")
	first, ok, err := normalizer.Normalize(info, nil, 7)
	require.NoError(t, err)
	require.True(t, ok)
	second, ok, err := normalizer.Normalize(info, nil, 9)
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, first.EqualDefinition(second))
}
