// Package config provides configuration management for the size checker.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	yaml "gopkg.in/yaml.v3"
)

// Config represents the complete application configuration.
type Config struct {
	Environment EnvironmentConfig `yaml:"environment"`
	Sizing      SizingConfig      `yaml:"sizing"`
	Guidance    GuidanceConfig    `yaml:"guidance"`
	Server      ServerConfig      `yaml:"server"`
}

// EnvironmentConfig defines the environment settings.
type EnvironmentConfig struct {
	LogLevel string `yaml:"log_level"` // debug | info | warn | error
}

// Tier pairs a ceiling with the percentage applying at or below it.
// Omitting the ceiling (or zero) on the final tier means unbounded.
type Tier struct {
	Ceiling float64 `yaml:"ceiling,omitempty"`
	Percent float64 `yaml:"percent"`
}

// SizingConfig defines the sizing policy: tier tables, stop-loss rules,
// and the optional take-profit cap.
type SizingConfig struct {
	Multiplier float64 `yaml:"multiplier"`
	Tick       float64 `yaml:"tick"`

	DeployTiers []Tier `yaml:"deploy_tiers"`
	RiskTiers   []Tier `yaml:"risk_tiers"`

	PrimaryStopPct       float64 `yaml:"primary_stop_pct"`
	SecondaryStopBasePct float64 `yaml:"secondary_stop_base_pct"`
	SecondaryTightening  []Tier  `yaml:"secondary_tightening_rules"`
	SecondaryStopMinPct  float64 `yaml:"secondary_stop_min_pct"`
	SecondaryStopMaxPct  float64 `yaml:"secondary_stop_max_pct"`

	// SecondaryRiskFloor sizes the secondary slot's risk budget with the
	// primary stop percent so a tighter stop cannot admit more contracts.
	SecondaryRiskFloor bool `yaml:"secondary_risk_floor"`

	// TPCapPct excludes search candidates whose effective take-profit
	// percent on premium exceeds it; 0 disables the cap.
	TPCapPct float64 `yaml:"tp_cap_pct"`
}

// GuidanceConfig defines the advisory thresholds consumed by the
// presentation layer. These never alter the sizing decision.
type GuidanceConfig struct {
	MinGoalPct          float64 `yaml:"min_goal_pct"`
	MaxGoalPct          float64 `yaml:"max_goal_pct"`
	PrimaryLossCapPct   float64 `yaml:"primary_loss_cap_pct"`
	SecondaryLossCapPct float64 `yaml:"secondary_loss_cap_pct"`
}

// ServerConfig defines HTTP API settings for serve mode.
type ServerConfig struct {
	Port      int    `yaml:"port"`
	AuthToken string `yaml:"auth_token"`
}

// Default returns the built-in configuration: the SPY weekly-options
// policy the tool shipped with.
func Default() *Config {
	return &Config{
		Environment: EnvironmentConfig{LogLevel: "info"},
		Sizing: SizingConfig{
			Multiplier: 100,
			Tick:       0.01,
			// Percent deployed per trade shrinks as the account grows.
			DeployTiers: []Tier{
				{Ceiling: 25000, Percent: 35.0},
				{Ceiling: 100000, Percent: 25.0},
				{Ceiling: 300000, Percent: 15.0},
				{Percent: 8.0},
			},
			// Account risk per trade capped around 1-2%.
			RiskTiers: []Tier{
				{Ceiling: 25000, Percent: 2.0},
				{Ceiling: 100000, Percent: 1.8},
				{Ceiling: 300000, Percent: 1.5},
				{Percent: 1.2},
			},
			PrimaryStopPct:       30.0,
			SecondaryStopBasePct: 24.0,
			SecondaryTightening: []Tier{
				{Ceiling: 0.25, Percent: 4.0},
				{Ceiling: 0.35, Percent: 3.0},
				{Ceiling: 0.50, Percent: 2.0},
				{Percent: 0.0},
			},
			SecondaryStopMinPct: 15.0,
			SecondaryStopMaxPct: 26.0,
			SecondaryRiskFloor:  true,
			TPCapPct:            0,
		},
		Guidance: GuidanceConfig{
			MinGoalPct:          0.20,
			MaxGoalPct:          1.00,
			PrimaryLossCapPct:   1.2,
			SecondaryLossCapPct: 0.9,
		},
		Server: ServerConfig{Port: 8080},
	}
}

// Load reads the configuration file at path, layering it over the
// built-in defaults. An empty path loads "config.yaml".
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config.yaml"
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- configPath is a user-provided config file path
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	config := Default()
	dec := yaml.NewDecoder(strings.NewReader(expanded))
	dec.KnownFields(true)
	if err := dec.Decode(config); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

// Validate checks that all configuration values are valid and consistent.
func (c *Config) Validate() error {
	switch c.Environment.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("environment.log_level must be debug, info, warn, or error")
	}

	if c.Sizing.Multiplier <= 0 {
		return fmt.Errorf("sizing.multiplier must be > 0")
	}
	if c.Sizing.Tick <= 0 {
		return fmt.Errorf("sizing.tick must be > 0")
	}

	if err := validateTiers("sizing.deploy_tiers", c.Sizing.DeployTiers, true); err != nil {
		return err
	}
	if err := validateTiers("sizing.risk_tiers", c.Sizing.RiskTiers, true); err != nil {
		return err
	}
	if err := validateTiers("sizing.secondary_tightening_rules", c.Sizing.SecondaryTightening, false); err != nil {
		return err
	}

	if c.Sizing.PrimaryStopPct <= 0 || c.Sizing.PrimaryStopPct >= 100 {
		return fmt.Errorf("sizing.primary_stop_pct must be in (0,100)")
	}
	if c.Sizing.SecondaryStopBasePct <= 0 || c.Sizing.SecondaryStopBasePct >= 100 {
		return fmt.Errorf("sizing.secondary_stop_base_pct must be in (0,100)")
	}
	if c.Sizing.SecondaryStopMinPct <= 0 {
		return fmt.Errorf("sizing.secondary_stop_min_pct must be > 0")
	}
	if c.Sizing.SecondaryStopMaxPct >= 100 {
		return fmt.Errorf("sizing.secondary_stop_max_pct must be < 100")
	}
	if c.Sizing.SecondaryStopMinPct > c.Sizing.SecondaryStopMaxPct {
		return fmt.Errorf("sizing.secondary_stop_min_pct (%.2f) must be <= sizing.secondary_stop_max_pct (%.2f)",
			c.Sizing.SecondaryStopMinPct, c.Sizing.SecondaryStopMaxPct)
	}
	if c.Sizing.TPCapPct < 0 {
		return fmt.Errorf("sizing.tp_cap_pct must be >= 0")
	}

	if c.Guidance.MinGoalPct <= 0 {
		return fmt.Errorf("guidance.min_goal_pct must be > 0")
	}
	if c.Guidance.MaxGoalPct <= c.Guidance.MinGoalPct {
		return fmt.Errorf("guidance.max_goal_pct must be > guidance.min_goal_pct")
	}
	if c.Guidance.PrimaryLossCapPct <= 0 {
		return fmt.Errorf("guidance.primary_loss_cap_pct must be > 0")
	}
	if c.Guidance.SecondaryLossCapPct <= 0 {
		return fmt.Errorf("guidance.secondary_loss_cap_pct must be > 0")
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in (0,65535]")
	}

	return nil
}

// validateTiers checks ordering and bounds for one tier table. Only the
// final tier may omit its ceiling (unbounded). Tightening tables allow
// zero percents since a zero subtraction is meaningful.
func validateTiers(name string, tiers []Tier, positivePct bool) error {
	if len(tiers) == 0 {
		return fmt.Errorf("%s must have at least one tier", name)
	}
	prev := 0.0
	for i, t := range tiers {
		if t.Ceiling <= 0 && i != len(tiers)-1 {
			return fmt.Errorf("%s: only the final tier may omit its ceiling", name)
		}
		if t.Ceiling > 0 && t.Ceiling <= prev {
			return fmt.Errorf("%s: ceilings must be strictly increasing", name)
		}
		if t.Ceiling > 0 {
			prev = t.Ceiling
		}
		if positivePct && t.Percent <= 0 {
			return fmt.Errorf("%s: percents must be > 0", name)
		}
		if !positivePct && t.Percent < 0 {
			return fmt.Errorf("%s: percents must be >= 0", name)
		}
	}
	return nil
}
