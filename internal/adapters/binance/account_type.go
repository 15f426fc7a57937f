// Package binance maps Binance wire formats to and from the internal
// trading model: enum tables, symbol codec, trading-rule filter parsing,
// instrument normalization and order translation.
package binance

import "strings"

// AccountType selects the Binance product surface the adapter talks to. It
// determines which enum tables, filter kinds and order capabilities apply.
type AccountType string

const (
	// AccountTypeSpot is the spot trading surface.
	AccountTypeSpot AccountType = "SPOT"
	// AccountTypeMargin is the cross-margin trading surface.
	AccountTypeMargin AccountType = "MARGIN"
	// AccountTypeIsolatedMargin is the isolated-margin trading surface.
	AccountTypeIsolatedMargin AccountType = "ISOLATED_MARGIN"
	// AccountTypeUSDTFuture is the USD-margined futures surface.
	AccountTypeUSDTFuture AccountType = "USDT_FUTURE"
	// AccountTypeCoinFuture is the coin-margined futures surface.
	AccountTypeCoinFuture AccountType = "COIN_FUTURE"
	// AccountTypePortfolioMargin is the unified portfolio-margin surface.
	AccountTypePortfolioMargin AccountType = "PORTFOLIO_MARGIN"
)

// ParseAccountType normalizes a configured account type string.
func ParseAccountType(raw string) (AccountType, bool) {
	normalized := AccountType(strings.ToUpper(strings.TrimSpace(raw)))
	switch normalized {
	case AccountTypeSpot,
		AccountTypeMargin,
		AccountTypeIsolatedMargin,
		AccountTypeUSDTFuture,
		AccountTypeCoinFuture,
		AccountTypePortfolioMargin:
		return normalized, true
	default:
		return "", false
	}
}

// IsSpot reports whether the account type is plain spot.
func (a AccountType) IsSpot() bool {
	return a == AccountTypeSpot
}

// IsSpotOrMargin reports whether the account type trades spot-style symbols.
func (a AccountType) IsSpotOrMargin() bool {
	switch a {
	case AccountTypeSpot, AccountTypeMargin, AccountTypeIsolatedMargin:
		return true
	default:
		return false
	}
}

// IsFutures reports whether the account type is a dedicated futures surface.
func (a AccountType) IsFutures() bool {
	return a == AccountTypeUSDTFuture || a == AccountTypeCoinFuture
}

// IsDerivatives reports whether derivative symbol and enum conventions apply.
// Portfolio margin routes derivative symbols alongside the futures surfaces.
func (a AccountType) IsDerivatives() bool {
	return a.IsFutures() || a == AccountTypePortfolioMargin
}

// IsInverse reports whether contracts settle in the base asset.
func (a AccountType) IsInverse() bool {
	return a == AccountTypeCoinFuture
}
