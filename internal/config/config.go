package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"battery-arbitrage/internal/logging"
	"battery-arbitrage/internal/model"
)

// EnvPrefix prefixes every environment override, e.g. ARBITRAGE_API_PORT.
const EnvPrefix = "ARBITRAGE"

// Config materialises application configuration.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Logging  logging.Config `mapstructure:"logging"`
	Data     DataConfig     `mapstructure:"data"`
	Feed     FeedConfig     `mapstructure:"feed"`
	Engine   EngineConfig   `mapstructure:"engine"`
	API      APIConfig      `mapstructure:"api"`
	Report   ReportConfig   `mapstructure:"report"`
	Database DatabaseConfig `mapstructure:"database"`

	// Optional: load battery parameters from a separate YAML (e.g. examples/batteries/*.yaml).
	// Non-zero fields in Battery override the file; a present max_gap_hours always does.
	BatteryFile string        `mapstructure:"battery_file"`
	Battery     BatteryConfig `mapstructure:"battery"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
}

// DataConfig locates the hourly price files.
type DataConfig struct {
	Dir         string        `mapstructure:"dir"`
	Patterns    []string      `mapstructure:"patterns"`
	Timezone    string        `mapstructure:"timezone"`
	CacheTTL    time.Duration `mapstructure:"cache_ttl"`
	RefreshCron string        `mapstructure:"refresh_cron"`
}

// FeedConfig points at the remote spot price feed used by `fetch`.
type FeedConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Area    string `mapstructure:"area"`
}

type EngineConfig struct {
	Workers int `mapstructure:"workers"`
}

type APIConfig struct {
	Port        int      `mapstructure:"port"`
	CORSOrigins []string `mapstructure:"cors_origins"`
	RateLimit   float64  `mapstructure:"rate_limit"` // requests per second per client, 0 disables
	RateBurst   int      `mapstructure:"rate_burst"`
	BatteryDir  string   `mapstructure:"battery_dir"`
	StaticDir   string   `mapstructure:"static_dir"`
}

// ReportConfig lists output paths; empty paths are skipped.
type ReportConfig struct {
	TextPath      string `mapstructure:"text_path"`
	CSVPath       string `mapstructure:"csv_path"`
	HourlyCSVPath string `mapstructure:"hourly_csv_path"`
	ChartPath     string `mapstructure:"chart_path"`
	DetailRows    int    `mapstructure:"detail_rows"`
	Currency      string `mapstructure:"currency"`
}

type DatabaseConfig struct {
	SQLitePath string `mapstructure:"sqlite_path"`
}

// BatteryConfig is the on-disk battery shape shared by config files and presets.
// MaxGapHours is a pointer because 0 is a valid gap; nil means "not set".
type BatteryConfig struct {
	Name        string  `mapstructure:"name" yaml:"name" json:"name,omitempty"`
	CapacityMWh float64 `mapstructure:"capacity_mwh" yaml:"capacity_mwh" json:"capacity_mwh"`
	PowerMW     float64 `mapstructure:"power_mw" yaml:"power_mw" json:"power_mw"`
	Efficiency  float64 `mapstructure:"efficiency" yaml:"efficiency" json:"efficiency"`
	MaxGapHours *int    `mapstructure:"max_gap_hours" yaml:"max_gap_hours" json:"max_gap_hours,omitempty"`
}

const defaultMaxGapHours = 8

// DefaultBattery is a 100 MWh / 50 MW unit with 87% round trip and an 8 hour window.
func DefaultBattery() BatteryConfig {
	return BatteryConfig{
		CapacityMWh: 100,
		PowerMW:     50,
		Efficiency:  0.87,
		MaxGapHours: Hours(defaultMaxGapHours),
	}
}

// Hours returns a pointer to h for MaxGapHours literals.
func Hours(h int) *int { return &h }

// Gap returns the configured gap, or the default gap when unset.
func (b BatteryConfig) Gap() int {
	if b.MaxGapHours == nil {
		return defaultMaxGapHours
	}
	return *b.MaxGapHours
}

func (b BatteryConfig) ToModel() (model.BatteryConfig, error) {
	return model.NewBatteryConfig(b.CapacityMWh, b.PowerMW, b.Efficiency, b.Gap())
}

// Load builds configuration from file, environment, and defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	// Battery keys have no viper defaults (the overlay below needs to see
	// which fields were given), so bind them for env lookups explicitly.
	for _, key := range []string{"battery_file", "battery.name", "battery.capacity_mwh", "battery.power_mw", "battery.efficiency", "battery.max_gap_hours"} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, decodeHook()); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	base := DefaultBattery()
	if cfg.BatteryFile != "" {
		loaded, err := LoadBatteryFile(resolveRelative(cfg.BatteryFile, v.ConfigFileUsed()))
		if err != nil {
			return nil, err
		}
		base = MergeBattery(base, loaded)
	}
	cfg.Battery = MergeBattery(base, cfg.Battery)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "battery-arbitrage")
	v.SetDefault("app.environment", "development")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("data.dir", ".")
	v.SetDefault("data.patterns", []string{"*.csv", "*.json"})
	v.SetDefault("data.timezone", "Local")
	v.SetDefault("data.cache_ttl", "10m")
	v.SetDefault("data.refresh_cron", "0 */15 * * * *")

	v.SetDefault("feed.base_url", "https://dashboard.elering.ee/api/nps/price")
	v.SetDefault("feed.area", "ee")

	v.SetDefault("engine.workers", 0)

	v.SetDefault("api.port", 8080)
	v.SetDefault("api.cors_origins", []string{"*"})
	v.SetDefault("api.rate_limit", 10.0)
	v.SetDefault("api.rate_burst", 20)
	v.SetDefault("api.battery_dir", "examples/batteries")
	v.SetDefault("api.static_dir", "./web/dist")

	v.SetDefault("report.detail_rows", 50)
	v.SetDefault("report.currency", "EUR")

	v.SetDefault("database.sqlite_path", "")
}

func decodeHook() viper.DecoderConfigOption {
	return func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}
}

// Validate performs basic sanity checks on the configuration values.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if _, err := c.Battery.ToModel(); err != nil {
		return fmt.Errorf("battery config invalid: %w", err)
	}
	if c.Data.Dir == "" {
		return errors.New("data.dir is required")
	}
	if len(c.Data.Patterns) == 0 {
		return errors.New("data.patterns must list at least one glob")
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("data.timezone invalid: %w", err)
	}
	if c.Data.CacheTTL < 0 {
		return errors.New("data.cache_ttl cannot be negative")
	}
	if c.Engine.Workers < 0 {
		return errors.New("engine.workers cannot be negative")
	}
	if c.API.Port <= 0 || c.API.Port > 65535 {
		return fmt.Errorf("api.port must be in 1..65535, got %d", c.API.Port)
	}
	if c.API.RateLimit < 0 {
		return errors.New("api.rate_limit cannot be negative")
	}
	if c.API.RateLimit > 0 && c.API.RateBurst <= 0 {
		return errors.New("api.rate_burst must be > 0 when rate limiting is enabled")
	}
	if c.Report.DetailRows < 0 {
		return errors.New("report.detail_rows cannot be negative")
	}
	return nil
}

// Location resolves data.timezone; price timestamps are interpreted in it.
func (c *Config) Location() (*time.Location, error) {
	if c.Data.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Data.Timezone)
}

type batteryFileWrapper struct {
	Battery BatteryConfig `yaml:"battery"`
}

// LoadBatteryFile reads a YAML preset of the form `battery: {...}`.
func LoadBatteryFile(path string) (BatteryConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return BatteryConfig{}, err
	}
	var w batteryFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return BatteryConfig{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return w.Battery, nil
}

// MergeBattery overlays non-zero fields from override onto base. MaxGapHours
// is overlaid whenever it is set, including an explicit 0.
// This is used when loading a battery file and then applying overrides from the request.
func MergeBattery(base, override BatteryConfig) BatteryConfig {
	out := base
	if override.Name != "" {
		out.Name = override.Name
	}
	if override.CapacityMWh != 0 {
		out.CapacityMWh = override.CapacityMWh
	}
	if override.PowerMW != 0 {
		out.PowerMW = override.PowerMW
	}
	if override.Efficiency != 0 {
		out.Efficiency = override.Efficiency
	}
	if override.MaxGapHours != nil {
		out.MaxGapHours = Hours(*override.MaxGapHours)
	}
	return out
}

// resolveRelative interprets a relative path against the config file's
// directory when that file exists, else relative to the working directory.
func resolveRelative(path, configFile string) string {
	if filepath.IsAbs(path) || configFile == "" {
		return path
	}
	cand := filepath.Join(filepath.Dir(configFile), path)
	if _, err := os.Stat(cand); err == nil {
		return cand
	}
	return path
}
