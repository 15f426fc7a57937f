package binance

import (
	"strings"
	"time"

	"github.com/tradewire/binance-adapter/errs"
)

const (
	defaultVenue      = "BINANCE"
	defaultRecvWindow = 5 * time.Second
)

// Options configure the Binance normalization layer for one session.
//
// HedgeMode and UseReduceOnly are validated as jointly exclusive at session
// construction: hedge mode tracks long and short legs separately, and a
// reduce-only instruction is ambiguous across legs. An order carrying both
// indicates a configuration bug upstream and fails loudly.
type Options struct {
	AccountType AccountType
	Venue       string

	// SuppressLoadWarnings silences the per-symbol parse-failure warnings
	// emitted during instrument loads. Corresponds to log_warnings=false.
	SuppressLoadWarnings bool

	// UseGTD keeps good-till-date orders as GTD instead of converting them
	// to GTC. Only honoured on derivatives surfaces.
	UseGTD bool

	// UseReduceOnly forwards reduce-only flags to the venue.
	UseReduceOnly bool

	// HedgeMode marks the account as running dual position sides.
	HedgeMode bool

	RecvWindow time.Duration
	Bounds     Bounds

	boundsSet bool
}

// WithBounds overrides the sane tick/step bounds enforced during filter
// parsing.
func (o Options) WithBounds(bounds Bounds) Options {
	o.Bounds = bounds
	o.boundsSet = true
	return o
}

func withDefaults(in Options) Options {
	if strings.TrimSpace(in.Venue) == "" {
		in.Venue = defaultVenue
	}
	if in.AccountType == "" {
		in.AccountType = AccountTypeSpot
	}
	if in.RecvWindow <= 0 {
		in.RecvWindow = defaultRecvWindow
	}
	if !in.boundsSet {
		in.Bounds = DefaultBounds()
	}
	return in
}

// Validate rejects contradictory session configuration.
func (o Options) Validate() error {
	if _, ok := ParseAccountType(string(o.AccountType)); !ok && o.AccountType != "" {
		return errs.New(venueName, errs.CodeInvalid,
			errs.WithMessage("unknown account type"),
			errs.WithRawValue(string(o.AccountType)))
	}
	if o.HedgeMode && o.UseReduceOnly {
		return errs.New(venueName, errs.CodeConfigConflict,
			errs.WithMessage("reduce-only cannot be combined with hedge mode"))
	}
	return nil
}
