// Package errs provides structured error envelopes for the venue adapter.
package errs

import (
	"errors"
	"sort"
	"strconv"
	"strings"
)

// Code identifies an adapter error category.
type Code string

const (
	// CodeUnrecognizedEnum indicates a venue enum value with no registered mapping.
	CodeUnrecognizedEnum Code = "unrecognized_enum"
	// CodeUnsupportedValue indicates an internal value the venue cannot express.
	CodeUnsupportedValue Code = "unsupported_value"
	// CodeMissingFilter indicates a required trading-rule filter is absent.
	CodeMissingFilter Code = "missing_filter"
	// CodeOutOfRange indicates venue data outside configured sane bounds.
	CodeOutOfRange Code = "out_of_range"
	// CodeInvalid indicates malformed caller input.
	CodeInvalid Code = "invalid_request"
	// CodeConfigConflict indicates contradictory session configuration.
	CodeConfigConflict Code = "config_conflict"
	// CodeExchange indicates a venue-side data failure.
	CodeExchange Code = "exchange_error"
)

// E captures structured error information produced by the adapter.
type E struct {
	Venue     string
	Code      Code
	Symbol    string
	RawValue  string
	Message   string
	Supported []string

	cause error
}

// Option configures an error envelope.
type Option func(*E)

// New constructs an error envelope for the venue and error code.
func New(venue string, code Code, opts ...Option) *E {
	e := &E{
		Venue:     strings.TrimSpace(venue),
		Code:      code,
		Symbol:    "",
		RawValue:  "",
		Message:   "",
		Supported: nil,
		cause:     nil,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// WithMessage attaches a human-readable message to the error.
func WithMessage(message string) Option {
	trimmed := strings.TrimSpace(message)
	return func(e *E) {
		e.Message = trimmed
	}
}

// WithSymbol records the venue symbol the failure relates to.
func WithSymbol(symbol string) Option {
	trimmed := strings.TrimSpace(symbol)
	return func(e *E) {
		e.Symbol = trimmed
	}
}

// WithRawValue captures the raw venue value that failed to translate.
func WithRawValue(value string) Option {
	return func(e *E) {
		e.RawValue = strings.TrimSpace(value)
	}
}

// WithSupported records the set of values the venue does support, for diagnostics.
func WithSupported(values ...string) Option {
	return func(e *E) {
		if len(values) == 0 {
			return
		}
		e.Supported = append(e.Supported, values...)
		sort.Strings(e.Supported)
	}
}

// WithCause sets the underlying cause error.
func WithCause(err error) Option {
	return func(e *E) {
		e.cause = err
	}
}

func (e *E) Error() string {
	if e == nil {
		return "<nil>"
	}
	var parts []string

	venue := strings.TrimSpace(e.Venue)
	if venue == "" {
		venue = "unknown"
	}
	parts = append(parts, "venue="+venue)

	code := strings.TrimSpace(string(e.Code))
	if code == "" {
		code = "unknown"
	}
	parts = append(parts, "code="+code)

	if e.Symbol != "" {
		parts = append(parts, "symbol="+e.Symbol)
	}
	if e.RawValue != "" {
		parts = append(parts, "raw="+strconv.Quote(e.RawValue))
	}
	if e.Message != "" {
		parts = append(parts, "message="+strconv.Quote(e.Message))
	}
	if len(e.Supported) > 0 {
		parts = append(parts, "supported="+strings.Join(e.Supported, ","))
	}
	if e.cause != nil {
		parts = append(parts, "cause="+strconv.Quote(e.cause.Error()))
	}

	return strings.Join(parts, " ")
}

func (e *E) Unwrap() error { return e.cause }

// Is reports envelope equality by venue and code, allowing errors.Is matching
// against sentinel envelopes constructed with the same code.
func (e *E) Is(target error) bool {
	var other *E
	if !errors.As(target, &other) {
		return false
	}
	if other.Code != "" && other.Code != e.Code {
		return false
	}
	if other.Venue != "" && other.Venue != e.Venue {
		return false
	}
	return true
}

// CodeOf extracts the adapter error code from err, or the empty code when err
// does not carry an envelope.
func CodeOf(err error) Code {
	var e *E
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// SupportedOf extracts the supported-alternatives list from err, or nil when
// err does not carry an envelope.
func SupportedOf(err error) []string {
	var e *E
	if errors.As(err, &e) {
		return e.Supported
	}
	return nil
}

// IsUnrecognizedEnum reports whether err represents an unmapped venue value.
func IsUnrecognizedEnum(err error) bool { return CodeOf(err) == CodeUnrecognizedEnum }

// IsUnsupportedValue reports whether err represents an internal value the
// venue has no spelling for.
func IsUnsupportedValue(err error) bool { return CodeOf(err) == CodeUnsupportedValue }

// IsMissingFilter reports whether err represents an absent required filter.
func IsMissingFilter(err error) bool { return CodeOf(err) == CodeMissingFilter }

// IsOutOfRange reports whether err represents venue data outside sane bounds.
func IsOutOfRange(err error) bool { return CodeOf(err) == CodeOutOfRange }

// IsInvalid reports whether err represents malformed caller input.
func IsInvalid(err error) bool { return CodeOf(err) == CodeInvalid }

// IsConfigConflict reports whether err represents a session configuration bug.
func IsConfigConflict(err error) bool { return CodeOf(err) == CodeConfigConflict }

// Recoverable reports whether the error may be skipped for a single symbol
// while the rest of a load cycle continues.
func Recoverable(err error) bool {
	switch CodeOf(err) {
	case CodeMissingFilter, CodeOutOfRange, CodeExchange:
		return true
	default:
		return false
	}
}
