package config

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	DataDir   string       `mapstructure:"data_dir"`
	Recursive bool         `mapstructure:"recursive"`
	Log       LogConfig    `mapstructure:"log"`
	Load      LoadConfig   `mapstructure:"load"`
	Cache     CacheConfig  `mapstructure:"cache"`
	Target    TargetConfig `mapstructure:"target"`
	Gaps      GapsConfig   `mapstructure:"gaps"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type LoadConfig struct {
	Workers  int  `mapstructure:"workers"`
	Parallel bool `mapstructure:"parallel"`
}

// CacheConfig enables the SQLite label cache when Path is set.
type CacheConfig struct {
	Path string `mapstructure:"path"`
}

// TargetConfig is the location checked by the locate command.
type TargetConfig struct {
	Name string  `mapstructure:"name"`
	Lat  float64 `mapstructure:"lat"`
	Lon  float64 `mapstructure:"lon"`
}

type GapsConfig struct {
	Tolerance float64 `mapstructure:"tolerance"`
}

// Load reads configuration from file and environment variables.
//
// configFile may be empty, in which case megdr.yaml is looked up in the
// working directory and ./configs; a missing file is not an error.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("data_dir", "assets/mars_data")
	v.SetDefault("recursive", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("load.workers", runtime.NumCPU())
	v.SetDefault("load.parallel", true)
	v.SetDefault("cache.path", "")
	v.SetDefault("target.name", "Jezero Crater")
	v.SetDefault("target.lat", 18.4446)
	v.SetDefault("target.lon", 77.4509)
	v.SetDefault("gaps.tolerance", 1.0)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName("megdr")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		_ = v.ReadInConfig() // OK if missing
	}

	// Environment variables: MEGDR_LOG_LEVEL → log.level
	v.SetEnvPrefix("MEGDR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that configuration fields are present and sane.
func (c *Config) Validate() error {
	var errs []string

	if c.DataDir == "" {
		errs = append(errs, "data_dir is required")
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Sprintf("log.level must be debug, info, warn or error, got %q", c.Log.Level))
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Sprintf("log.format must be text or json, got %q", c.Log.Format))
	}
	if c.Load.Workers < 0 {
		errs = append(errs, fmt.Sprintf("load.workers must not be negative, got %d", c.Load.Workers))
	}
	if c.Target.Lat < -90 || c.Target.Lat > 90 {
		errs = append(errs, fmt.Sprintf("target.lat must be -90..90, got %g", c.Target.Lat))
	}
	if c.Target.Lon < -180 || c.Target.Lon > 360 {
		errs = append(errs, fmt.Sprintf("target.lon must be -180..360, got %g", c.Target.Lon))
	}
	if c.Gaps.Tolerance < 0 {
		errs = append(errs, fmt.Sprintf("gaps.tolerance must not be negative, got %g", c.Gaps.Tolerance))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
