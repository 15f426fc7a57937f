package schema

import (
	"strings"
	"sync"
)

const maxCurrencyPrecision = 18

// Currency describes a settlement or trading asset derived from venue data.
type Currency struct {
	Code      string `json:"code"`
	Precision int    `json:"precision"`
	Name      string `json:"name,omitempty"`
}

// NormalizeCurrencyCode normalizes a currency identifier to uppercase and
// validates its format, returning the empty string when invalid.
func NormalizeCurrencyCode(code string) string {
	trimmed := strings.ToUpper(strings.TrimSpace(code))
	if trimmed == "" {
		return ""
	}
	if len(trimmed) < 2 || len(trimmed) > 10 {
		return ""
	}
	for _, r := range trimmed {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return trimmed
}

// CurrencyRegistry is an append-only registry of currencies keyed by code.
// Registration is idempotent: re-registering a code overwrites with an
// identically derived value, so last-writer-wins is safe under concurrency.
type CurrencyRegistry struct {
	mu         sync.RWMutex
	currencies map[string]Currency
}

// NewCurrencyRegistry returns an empty registry.
func NewCurrencyRegistry() *CurrencyRegistry {
	return &CurrencyRegistry{currencies: make(map[string]Currency)}
}

// Register stores the currency under its normalized code. Invalid codes and
// out-of-range precisions are dropped silently; the caller derived them from
// venue data already validated upstream.
func (r *CurrencyRegistry) Register(c Currency) {
	code := NormalizeCurrencyCode(c.Code)
	if code == "" {
		return
	}
	if c.Precision < 0 || c.Precision > maxCurrencyPrecision {
		return
	}
	c.Code = code
	r.mu.Lock()
	r.currencies[code] = c
	r.mu.Unlock()
}

// Get returns the currency registered under code, if any.
func (r *CurrencyRegistry) Get(code string) (Currency, bool) {
	normalized := NormalizeCurrencyCode(code)
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.currencies[normalized]
	return c, ok
}

// Len returns the number of registered currencies.
func (r *CurrencyRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.currencies)
}
