package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds the run parameters for one dataset synthesis.
type Config struct {
	Env          string `mapstructure:"ENV"`
	Seed         int64  `mapstructure:"SEED"`
	RowCount     int    `mapstructure:"ROW_COUNT"`
	StartDate    string `mapstructure:"START_DATE"`
	DaysSpan     int    `mapstructure:"DAYS_SPAN"`
	OutputPath   string `mapstructure:"OUTPUT_PATH"`
	OutputFormat string `mapstructure:"OUTPUT_FORMAT"`
	Scenarios    string `mapstructure:"SCENARIOS"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("ENV", "development")
	v.SetDefault("SEED", 42)
	v.SetDefault("ROW_COUNT", 5000)
	v.SetDefault("START_DATE", "2025-06-01")
	v.SetDefault("DAYS_SPAN", 30)
	v.SetDefault("OUTPUT_PATH", "privacy_risk_monitoring_dataset.csv")
	v.SetDefault("OUTPUT_FORMAT", "csv")
	v.SetDefault("SCENARIOS", "all")

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("ENV")
	v.BindEnv("SEED")
	v.BindEnv("ROW_COUNT")
	v.BindEnv("START_DATE")
	v.BindEnv("DAYS_SPAN")
	v.BindEnv("OUTPUT_PATH")
	v.BindEnv("OUTPUT_FORMAT")
	v.BindEnv("SCENARIOS")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the run parameters before generation begins, so a bad
// configuration never produces partial output.
func (c *Config) Validate() error {
	if c.RowCount < 0 {
		return fmt.Errorf("ROW_COUNT must be non-negative, got %d", c.RowCount)
	}
	if c.DaysSpan <= 0 {
		return fmt.Errorf("DAYS_SPAN must be positive, got %d", c.DaysSpan)
	}
	if _, err := c.Start(); err != nil {
		return err
	}
	if c.OutputPath == "" {
		return fmt.Errorf("OUTPUT_PATH is required")
	}
	return nil
}

// Start parses the configured window start date.
func (c *Config) Start() (time.Time, error) {
	t, err := time.Parse(time.DateOnly, c.StartDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("START_DATE %q is not a valid date (want YYYY-MM-DD)", c.StartDate)
	}
	return t, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}
