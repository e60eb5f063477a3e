package store

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// StrategyConfig holds the tuning parameters of the swing-reversion engine.
// Validate rejects malformed values up front so the decision logic never has
// to fall back silently.
type StrategyConfig struct {
	Name                   string  `yaml:"name"`
	MAPeriod               int     `yaml:"ma_period"`
	GridStepFrac           float64 `yaml:"grid_step_frac"`
	MaxGridLevels          int     `yaml:"max_grid_levels"`
	PositionSizeFrac       float64 `yaml:"position_size_frac"`
	StopLossFrac           float64 `yaml:"stop_loss_frac"`
	TakeProfitFrac         float64 `yaml:"take_profit_frac"`
	TrailingActivationFrac float64 `yaml:"trailing_activation_frac"`
	TrailingCallbackFrac   float64 `yaml:"trailing_callback_frac"`
}

type Config struct {
	Symbol      string  `yaml:"symbol"`
	DataSource  string  `yaml:"data_source"` // CSV, KITE, ALPACA or STATIC
	CSVPath     string  `yaml:"csv_path"`
	Interval    string  `yaml:"interval"`
	StartDate   string  `yaml:"start_date"` // YYYY-MM-DD
	EndDate     string  `yaml:"end_date"`   // YYYY-MM-DD
	InitialCash float64 `yaml:"initial_cash"`
	WindowSize  int     `yaml:"window_size"`
	StateDB     string  `yaml:"state_db"`
	Resume      bool    `yaml:"resume"`
	Kite        struct {
		InstrumentToken int `yaml:"instrument_token"`
	} `yaml:"kite"`
	Strategy StrategyConfig `yaml:"strategy"`
}

func (c *Config) Validate() error {
	if c.Symbol == "" {
		return fmt.Errorf("symbol cannot be empty")
	}
	switch c.DataSource {
	case "CSV", "KITE", "ALPACA", "STATIC":
	default:
		return fmt.Errorf("invalid data_source '%s': must be 'CSV', 'KITE', 'ALPACA' or 'STATIC'", c.DataSource)
	}
	if c.DataSource == "CSV" && c.CSVPath == "" {
		return fmt.Errorf("csv_path is required when data_source is CSV")
	}
	if c.InitialCash < 0 {
		return fmt.Errorf("initial_cash must be >= 0, got %.2f", c.InitialCash)
	}
	if c.Strategy.MAPeriod <= 0 {
		return fmt.Errorf("strategy.ma_period must be > 0, got %d", c.Strategy.MAPeriod)
	}
	if c.WindowSize < c.Strategy.MAPeriod {
		return fmt.Errorf("window_size (%d) must be >= strategy.ma_period (%d)", c.WindowSize, c.Strategy.MAPeriod)
	}
	if c.Strategy.GridStepFrac <= 0 {
		return fmt.Errorf("strategy.grid_step_frac must be > 0, got %v", c.Strategy.GridStepFrac)
	}
	if c.Strategy.MaxGridLevels < 1 {
		return fmt.Errorf("strategy.max_grid_levels must be >= 1, got %d", c.Strategy.MaxGridLevels)
	}
	if c.Strategy.PositionSizeFrac <= 0 || c.Strategy.PositionSizeFrac > 1 {
		return fmt.Errorf("strategy.position_size_frac must be in (0, 1], got %v", c.Strategy.PositionSizeFrac)
	}
	if c.Strategy.StopLossFrac < 0 || c.Strategy.StopLossFrac >= 1 {
		return fmt.Errorf("strategy.stop_loss_frac must be in [0, 1), got %v", c.Strategy.StopLossFrac)
	}
	if c.Strategy.TakeProfitFrac <= 0 {
		return fmt.Errorf("strategy.take_profit_frac must be > 0, got %v", c.Strategy.TakeProfitFrac)
	}
	if c.Strategy.TrailingActivationFrac <= 0 || c.Strategy.TrailingCallbackFrac <= 0 {
		return fmt.Errorf("strategy trailing fractions must be > 0")
	}
	return nil
}

// LoadConfig reads and validates the YAML config at path. Unknown keys are
// rejected so typos surface at startup instead of defaulting deep inside the
// decision logic.
func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseConfig(b)
}

func ParseConfig(b []byte) (*Config, error) {
	c := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && err != io.EOF {
		return nil, fmt.Errorf("config parse failed: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return c, nil
}

// DefaultConfig returns a Config pre-filled with the documented defaults.
func DefaultConfig() *Config {
	c := &Config{
		Symbol:      "BTC-USD",
		DataSource:  "STATIC",
		Interval:    "1h",
		InitialCash: 10000,
		WindowSize:  100,
		Strategy: StrategyConfig{
			Name:                   "swing_reversion",
			MAPeriod:               24,
			GridStepFrac:           0.01,
			MaxGridLevels:          2,
			PositionSizeFrac:       0.275,
			StopLossFrac:           0.15,
			TakeProfitFrac:         0.50,
			TrailingActivationFrac: 0.025,
			TrailingCallbackFrac:   0.035,
		},
	}
	return c
}
