package schema

import (
	"sync"
	"testing"
)

func TestOrderStatusTerminal(t *testing.T) {
	terminal := []OrderStatus{OrderStatusFilled, OrderStatusCanceled, OrderStatusExpired, OrderStatusRejected}
	for _, status := range terminal {
		if !status.Terminal() {
			t.Errorf("expected %s to be terminal", status)
		}
	}
	live := []OrderStatus{OrderStatusAccepted, OrderStatusPartiallyFilled, OrderStatusPendingCancel}
	for _, status := range live {
		if status.Terminal() {
			t.Errorf("expected %s to be non-terminal", status)
		}
	}
}

func TestEnumValidity(t *testing.T) {
	if OrderSide("LONG").Valid() {
		t.Error("unknown order side should be invalid")
	}
	if !OrderTypeTrailingStopMarket.Valid() {
		t.Error("trailing stop market should be valid")
	}
	if TimeInForce("GTX").Valid() {
		t.Error("venue-specific TIF spelling must not be a valid internal value")
	}
	if !BarAggregationMonth.Valid() {
		t.Error("month aggregation should be valid")
	}
}

func TestNormalizeCurrencyCode(t *testing.T) {
	if got := NormalizeCurrencyCode("  usdt "); got != "USDT" {
		t.Fatalf("expected USDT, got %q", got)
	}
	if got := NormalizeCurrencyCode("a"); got != "" {
		t.Fatalf("expected single-char code rejected, got %q", got)
	}
	if got := NormalizeCurrencyCode("US-DT"); got != "" {
		t.Fatalf("expected punctuation rejected, got %q", got)
	}
}

func TestCurrencyRegistryIdempotentRegistration(t *testing.T) {
	registry := NewCurrencyRegistry()
	registry.Register(Currency{Code: "btc", Precision: 8})
	registry.Register(Currency{Code: "BTC", Precision: 8})

	if registry.Len() != 1 {
		t.Fatalf("expected one registered currency, got %d", registry.Len())
	}
	c, ok := registry.Get("btc")
	if !ok {
		t.Fatal("expected BTC to be registered")
	}
	if c.Code != "BTC" || c.Precision != 8 {
		t.Fatalf("unexpected registered currency %+v", c)
	}
}

func TestCurrencyRegistryConcurrentFirstRegistration(t *testing.T) {
	registry := NewCurrencyRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			registry.Register(Currency{Code: "ETH", Precision: 8})
		}()
	}
	wg.Wait()
	if registry.Len() != 1 {
		t.Fatalf("expected one currency after concurrent registration, got %d", registry.Len())
	}
}

func TestCurrencyRegistryRejectsInvalid(t *testing.T) {
	registry := NewCurrencyRegistry()
	registry.Register(Currency{Code: "", Precision: 8})
	registry.Register(Currency{Code: "BTC", Precision: 40})
	if registry.Len() != 0 {
		t.Fatalf("expected invalid currencies dropped, got %d registered", registry.Len())
	}
}

func TestInstrumentEqualDefinitionIgnoresInitTimestamps(t *testing.T) {
	a := Instrument{
		ID:                 "BTCUSDT-PERP",
		Venue:              "BINANCE",
		RawSymbol:          "BTCUSDT",
		Type:               InstrumentTypePerp,
		BaseCurrency:       "BTC",
		QuoteCurrency:      "USDT",
		SettlementCurrency: "USDT",
		PricePrecision:     2,
		QuantityPrecision:  3,
		PriceIncrement:     "0.01",
		QuantityIncrement:  "0.001",
		MinNotional:        "10",
		MakerFee:           "0.0002",
		TakerFee:           "0.0004",
		TsEvent:            1,
		TsInit:             2,
	}
	b := a
	b.TsEvent = 100
	b.TsInit = 200

	if !a.EqualDefinition(b) {
		t.Fatal("definitions differing only in init timestamps must compare equal")
	}

	c := b
	c.PricePrecision = 3
	if a.EqualDefinition(c) {
		t.Fatal("differing precision must not compare equal")
	}
}
