// Package config loads trainer configuration from HCL: the table
// settings, the opponent personality profiles and the optional advisor
// block. A missing file yields the defaults.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config is the complete trainer configuration
type Config struct {
	Table     TableConfig      `hcl:"table,block"`
	Opponents []OpponentConfig `hcl:"opponent,block"`
	Advisor   *AdvisorConfig   `hcl:"advisor,block"`
}

// TableConfig defines the single table the trainer runs
type TableConfig struct {
	Seats         int `hcl:"seats,optional"`
	SmallBlind    int `hcl:"small_blind"`
	BigBlind      int `hcl:"big_blind"`
	StartingChips int `hcl:"starting_chips,optional"`
	Hands         int `hcl:"hands,optional"`
}

// OpponentConfig defines one bot seat's personality profile. The fields
// are pointers so an explicit 0 (a never-plays nit) is distinguishable
// from an omitted attribute, which takes the default.
type OpponentConfig struct {
	Name       string   `hcl:"name,label"`
	VPIP       *float64 `hcl:"vpip,optional"`
	Aggression *float64 `hcl:"aggression,optional"`
	Bluff      *float64 `hcl:"bluff,optional"`
}

// AdvisorConfig configures the LLM coaching service. The API key is
// read from the named environment variable, never from the file.
type AdvisorConfig struct {
	Model     string `hcl:"model,optional"`
	APIKeyEnv string `hcl:"api_key_env,optional"`
}

// Default returns the configuration used when no file is present
func Default() *Config {
	return &Config{
		Table: TableConfig{
			Seats:         4,
			SmallBlind:    10,
			BigBlind:      20,
			StartingChips: 1000,
			Hands:         20,
		},
		Opponents: []OpponentConfig{
			{Name: "Rock", VPIP: f64(0.2), Aggression: f64(0.3), Bluff: f64(0.05)},
			{Name: "Station", VPIP: f64(0.8), Aggression: f64(0.2), Bluff: f64(0.05)},
			{Name: "Maniac", VPIP: f64(0.9), Aggression: f64(0.9), Bluff: f64(0.3)},
		},
	}
}

// Load reads a trainer configuration from an HCL file. A missing file
// returns the defaults; a malformed one returns an error.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	applyDefaults(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Table.Seats == 0 {
		cfg.Table.Seats = len(cfg.Opponents) + 1
	}
	if cfg.Table.StartingChips == 0 {
		cfg.Table.StartingChips = cfg.Table.BigBlind * 50
	}
	if cfg.Table.Hands == 0 {
		cfg.Table.Hands = 20
	}
	for i := range cfg.Opponents {
		o := &cfg.Opponents[i]
		if o.VPIP == nil {
			o.VPIP = f64(0.5)
		}
		if o.Aggression == nil {
			o.Aggression = f64(0.5)
		}
		if o.Bluff == nil {
			o.Bluff = f64(0.1)
		}
	}
	if cfg.Advisor != nil {
		if cfg.Advisor.Model == "" {
			cfg.Advisor.Model = "gpt-4o-mini"
		}
		if cfg.Advisor.APIKeyEnv == "" {
			cfg.Advisor.APIKeyEnv = "OPENAI_API_KEY"
		}
	}
}

func validate(cfg *Config) error {
	if cfg.Table.SmallBlind <= 0 || cfg.Table.BigBlind <= 0 {
		return fmt.Errorf("blinds must be positive (small=%d big=%d)", cfg.Table.SmallBlind, cfg.Table.BigBlind)
	}
	if cfg.Table.BigBlind < cfg.Table.SmallBlind {
		return fmt.Errorf("big blind %d smaller than small blind %d", cfg.Table.BigBlind, cfg.Table.SmallBlind)
	}
	if cfg.Table.Seats < 2 || cfg.Table.Seats > 9 {
		return fmt.Errorf("seats must be between 2 and 9, got %d", cfg.Table.Seats)
	}
	for _, o := range cfg.Opponents {
		for name, v := range map[string]float64{"vpip": *o.VPIP, "aggression": *o.Aggression, "bluff": *o.Bluff} {
			if v < 0 || v > 1 {
				return fmt.Errorf("opponent %q: %s must be in [0,1], got %v", o.Name, name, v)
			}
		}
	}
	return nil
}

func f64(v float64) *float64 { return &v }
