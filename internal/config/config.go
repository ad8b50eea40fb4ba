// Package config loads application configuration with viper and sets up the
// global zap logger.
package config

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Data     DataConfig     `yaml:"data" mapstructure:"data"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Scenario ScenarioConfig `yaml:"scenario" mapstructure:"scenario"`
	Export   ExportConfig   `yaml:"export" mapstructure:"export"`
	Store    StoreConfig    `yaml:"store" mapstructure:"store"`
}

// DataConfig selects the deposit table. An empty File means the bundled
// baseline.
type DataConfig struct {
	File string `yaml:"file" mapstructure:"file"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	RateLimitRPS   float64  `yaml:"rate_limit_rps" mapstructure:"rate_limit_rps"`
	RateLimitBurst int      `yaml:"rate_limit_burst" mapstructure:"rate_limit_burst"`
	CORSOrigins    []string `yaml:"cors_origins" mapstructure:"cors_origins"`
	CacheTTLSecs   int      `yaml:"cache_ttl_secs" mapstructure:"cache_ttl_secs"`
}

// ScenarioConfig bounds scenario inputs and points at optional presets.
type ScenarioConfig struct {
	InvestmentCap float64 `yaml:"investment_cap" mapstructure:"investment_cap"`
	TopMovers     int     `yaml:"top_movers" mapstructure:"top_movers"`
	PresetsFile   string  `yaml:"presets_file" mapstructure:"presets_file"`
}

// ExportConfig configures file exports.
type ExportConfig struct {
	Dir        string `yaml:"dir" mapstructure:"dir"`
	FilePrefix string `yaml:"file_prefix" mapstructure:"file_prefix"`
}

// StoreConfig configures the snapshot sink.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("REE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("data.file", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.rate_limit_rps", 20.0)
	v.SetDefault("server.rate_limit_burst", 40)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("server.cache_ttl_secs", 300)
	v.SetDefault("scenario.investment_cap", 10.0)
	v.SetDefault("scenario.top_movers", 5)
	v.SetDefault("scenario.presets_file", "")
	v.SetDefault("export.dir", ".")
	v.SetDefault("export.file_prefix", "greenland_ree")
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "greenland_ree.db")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the settings a command mode depends on. Mode is one of
// "serve", "export" or "" (common checks only).
func (c *Config) Validate(mode string) error {
	var errs []string

	if c.Scenario.InvestmentCap <= 0 {
		errs = append(errs, fmt.Sprintf("scenario.investment_cap must be positive (got %g)", c.Scenario.InvestmentCap))
	}
	if c.Scenario.TopMovers < 0 {
		errs = append(errs, fmt.Sprintf("scenario.top_movers must be >= 0 (got %d)", c.Scenario.TopMovers))
	}

	switch mode {
	case "":
	case "serve":
		if c.Server.Port <= 0 || c.Server.Port > 65535 {
			errs = append(errs, fmt.Sprintf("server.port must be between 1 and 65535 (got %d)", c.Server.Port))
		}
		if c.Server.RateLimitRPS < 0 {
			errs = append(errs, "server.rate_limit_rps must be >= 0")
		}
		if c.Server.RateLimitRPS > 0 && c.Server.RateLimitBurst < 1 {
			errs = append(errs, "server.rate_limit_burst must be >= 1 when rate limiting is enabled")
		}
		if c.Server.CacheTTLSecs < 0 {
			errs = append(errs, "server.cache_ttl_secs must be >= 0")
		}
	case "export":
		switch strings.ToLower(c.Store.Driver) {
		case "sqlite", "postgres", "postgresql":
		default:
			errs = append(errs, fmt.Sprintf("store.driver must be sqlite or postgres (got %q)", c.Store.Driver))
		}
	default:
		errs = append(errs, fmt.Sprintf("unknown validation mode %q", mode))
	}

	if len(errs) > 0 {
		return eris.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
