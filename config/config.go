// Package config centralises runtime configuration for the Binance adapter.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tradewire/binance-adapter/internal/adapters/binance"
)

// Environment identifies the runtime environment the adapter operates in.
type Environment string

const (
	// EnvDev marks the development environment.
	EnvDev Environment = "dev"
	// EnvStaging marks the staging environment.
	EnvStaging Environment = "staging"
	// EnvProd marks the production environment.
	EnvProd Environment = "prod"
)

const (
	// SurfaceSpot identifies the spot REST surface.
	SurfaceSpot string = "spot"
	// SurfaceLinear identifies the USD-margined futures REST surface.
	SurfaceLinear string = "linear"
	// SurfaceInverse identifies the coin-margined futures REST surface.
	SurfaceInverse string = "inverse"
)

// Credentials captures API credentials passed through to the transport layer.
// The adapter itself never signs requests.
type Credentials struct {
	APIKey    string `yaml:"api_key"`
	APISecret string `yaml:"api_secret"`
}

// Settings is the adapter configuration tree loaded from defaults, an
// optional YAML file and environment overrides, in that order.
type Settings struct {
	Environment Environment       `yaml:"environment"`
	AccountType string            `yaml:"account_type"`
	REST        map[string]string `yaml:"rest"`
	Credentials Credentials       `yaml:"credentials"`

	// LogWarnings controls the per-symbol warnings emitted when an
	// instrument load skips a symbol after a parse failure.
	LogWarnings *bool `yaml:"log_warnings"`

	UseGTD        bool     `yaml:"use_gtd"`
	UseReduceOnly bool     `yaml:"use_reduce_only"`
	HedgeMode     bool     `yaml:"hedge_mode"`
	RecvWindow    Duration `yaml:"recv_window"`
	HTTPTimeout   Duration `yaml:"http_timeout"`
}

// Duration is a time.Duration that unmarshals from Go duration strings in
// YAML documents.
type Duration time.Duration

// UnmarshalYAML decodes "5s"-style duration strings.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("config: invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the standard library representation.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Default returns the default adapter configuration.
func Default() Settings {
	return Settings{
		Environment: EnvProd,
		AccountType: string(binance.AccountTypeSpot),
		REST: map[string]string{
			SurfaceSpot:    "https://api.binance.com",
			SurfaceLinear:  "https://fapi.binance.com",
			SurfaceInverse: "https://dapi.binance.com",
		},
		RecvWindow:  Duration(5 * time.Second),
		HTTPTimeout: Duration(10 * time.Second),
	}
}

// LoadFile reads a YAML settings file over the defaults. Unknown keys are an
// error so a typoed option never silently reverts to its default.
func LoadFile(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return parse(data, path)
}

func parse(data []byte, source string) (Settings, error) {
	cfg := Default()
	decoder := yaml.NewDecoder(strings.NewReader(string(data)))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return Settings{}, fmt.Errorf("config: parse %s: %w", source, err)
	}
	return cfg, nil
}

// FromEnv applies environment variable overrides to the given settings.
func FromEnv(cfg Settings) Settings {
	if v := strings.TrimSpace(os.Getenv("BINANCE_ADAPTER_ENV")); v != "" {
		cfg.Environment = Environment(strings.ToLower(v))
	}
	if v := strings.TrimSpace(os.Getenv("BINANCE_ACCOUNT_TYPE")); v != "" {
		cfg.AccountType = v
	}
	if cfg.REST == nil {
		cfg.REST = make(map[string]string)
	}
	if v := strings.TrimSpace(os.Getenv("BINANCE_SPOT_BASE_URL")); v != "" {
		cfg.REST[SurfaceSpot] = v
	}
	if v := strings.TrimSpace(os.Getenv("BINANCE_LINEAR_BASE_URL")); v != "" {
		cfg.REST[SurfaceLinear] = v
	}
	if v := strings.TrimSpace(os.Getenv("BINANCE_INVERSE_BASE_URL")); v != "" {
		cfg.REST[SurfaceInverse] = v
	}
	if v := strings.TrimSpace(os.Getenv("BINANCE_API_KEY")); v != "" {
		cfg.Credentials.APIKey = v
	}
	if v := strings.TrimSpace(os.Getenv("BINANCE_API_SECRET")); v != "" {
		cfg.Credentials.APISecret = v
	}
	if v := strings.TrimSpace(os.Getenv("BINANCE_LOG_WARNINGS")); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			cfg.LogWarnings = &parsed
		}
	}
	if v := strings.TrimSpace(os.Getenv("BINANCE_USE_GTD")); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			cfg.UseGTD = parsed
		}
	}
	if v := strings.TrimSpace(os.Getenv("BINANCE_USE_REDUCE_ONLY")); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			cfg.UseReduceOnly = parsed
		}
	}
	if v := strings.TrimSpace(os.Getenv("BINANCE_HEDGE_MODE")); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			cfg.HedgeMode = parsed
		}
	}
	if v := strings.TrimSpace(os.Getenv("BINANCE_RECV_WINDOW")); v != "" {
		if dur, err := time.ParseDuration(v); err == nil {
			cfg.RecvWindow = Duration(dur)
		}
	}
	if v := strings.TrimSpace(os.Getenv("BINANCE_HTTP_TIMEOUT")); v != "" {
		if dur, err := time.ParseDuration(v); err == nil {
			cfg.HTTPTimeout = Duration(dur)
		}
	}
	return cfg
}

// Load combines Default, an optional YAML file and environment overrides.
// An empty path skips the file layer.
func Load(path string) (Settings, error) {
	cfg := Default()
	if path != "" {
		loaded, err := LoadFile(path)
		if err != nil {
			return Settings{}, err
		}
		cfg = loaded
	}
	return FromEnv(cfg), nil
}

// BaseURL returns the REST base URL for the configured account type.
func (s Settings) BaseURL() string {
	accountType, ok := binance.ParseAccountType(s.AccountType)
	if !ok {
		return s.REST[SurfaceSpot]
	}
	switch {
	case accountType.IsInverse():
		return s.REST[SurfaceInverse]
	case accountType.IsDerivatives():
		return s.REST[SurfaceLinear]
	default:
		return s.REST[SurfaceSpot]
	}
}

// AdapterOptions converts the settings into validated adapter options.
func (s Settings) AdapterOptions() (binance.Options, error) {
	accountType, ok := binance.ParseAccountType(s.AccountType)
	if !ok {
		return binance.Options{}, fmt.Errorf("config: unknown account type %q", s.AccountType)
	}
	opts := binance.Options{
		AccountType:   accountType,
		UseGTD:        s.UseGTD,
		UseReduceOnly: s.UseReduceOnly,
		HedgeMode:     s.HedgeMode,
		RecvWindow:    s.RecvWindow.Std(),
	}
	if s.LogWarnings != nil && !*s.LogWarnings {
		opts.SuppressLoadWarnings = true
	}
	if err := opts.Validate(); err != nil {
		return binance.Options{}, err
	}
	return opts, nil
}
