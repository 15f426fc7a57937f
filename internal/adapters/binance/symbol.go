package binance

import (
	"strings"

	"github.com/tradewire/binance-adapter/errs"
)

const perpSuffix = "-PERP"

// Symbol is a venue wire symbol. Values exist only in normalized form:
// construct them through NewSymbol, which uppercases, trims whitespace and
// strips the separators and perpetual markers of free-form input.
type Symbol string

// NewSymbol normalizes a free-form instrument symbol into the venue wire
// format. Empty or all-whitespace input is rejected.
func NewSymbol(raw string) (Symbol, error) {
	trimmed := strings.ToUpper(strings.TrimSpace(raw))
	if trimmed == "" {
		return "", errs.New(venueName, errs.CodeInvalid,
			errs.WithMessage("symbol must not be empty"))
	}
	trimmed = strings.ReplaceAll(trimmed, " ", "")
	trimmed = strings.ReplaceAll(trimmed, "/", "")
	trimmed = strings.TrimSuffix(trimmed, perpSuffix)
	if trimmed == "" {
		return "", errs.New(venueName, errs.CodeInvalid,
			errs.WithMessage("symbol must not be empty"),
			errs.WithRawValue(raw))
	}
	return Symbol(trimmed), nil
}

// NewSymbols normalizes a batch of free-form symbols. An empty input list is
// rejected outright rather than silently producing an empty result.
func NewSymbols(raw []string) ([]Symbol, error) {
	if len(raw) == 0 {
		return nil, errs.New(venueName, errs.CodeInvalid,
			errs.WithMessage("symbol list must not be empty"))
	}
	out := make([]Symbol, 0, len(raw))
	for _, r := range raw {
		symbol, err := NewSymbol(r)
		if err != nil {
			return nil, err
		}
		out = append(out, symbol)
	}
	return out, nil
}

// Decode converts the venue symbol into its canonical internal form for the
// given product surface.
//
// Spot and margin symbols are already canonical. For derivatives the rule is
// deliberately asymmetric: a trailing digit denotes a dated contract and the
// symbol passes through unchanged; an underscore perpetual marker is
// rewritten to the canonical dash form; anything else is a perpetual and
// gains the dash suffix.
func (s Symbol) Decode(accountType AccountType) string {
	value := string(s)
	if value == "" {
		return ""
	}
	if accountType.IsSpotOrMargin() {
		return value
	}
	last := value[len(value)-1]
	if last >= '0' && last <= '9' {
		return value
	}
	if strings.HasSuffix(value, "_PERP") {
		return strings.TrimSuffix(value, "_PERP") + perpSuffix
	}
	return value + perpSuffix
}

// DecodeAll converts a batch of venue symbols into canonical form. An empty
// input list is rejected, matching NewSymbols.
func DecodeAll(symbols []Symbol, accountType AccountType) ([]string, error) {
	if len(symbols) == 0 {
		return nil, errs.New(venueName, errs.CodeInvalid,
			errs.WithMessage("symbol list must not be empty"))
	}
	out := make([]string, 0, len(symbols))
	for _, symbol := range symbols {
		out = append(out, symbol.Decode(accountType))
	}
	return out, nil
}

// String returns the venue wire spelling.
func (s Symbol) String() string { return string(s) }
