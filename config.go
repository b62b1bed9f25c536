package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"

	"github.com/BurntSushi/toml"
)

// defaultConfigPath is read when BASELAYER_CONFIG is unset. A missing file
// just means defaults.
const defaultConfigPath = "baselayer.toml"

// Config is the server configuration. Policy lives in the TOML file; secrets
// and connection strings come from the environment (.env via godotenv).
type Config struct {
	Server ServerConfig `toml:"server"`
	Plan   PlanConfig   `toml:"plan"`
	Coach  CoachConfig  `toml:"coach"`

	DBURL         string `toml:"-"`
	GeminiAPIKey  string `toml:"-"`
	GeminiBaseURL string `toml:"-"`
}

type ServerConfig struct {
	Addr           string   `toml:"addr"`
	AllowedOrigins []string `toml:"allowed_origins"`
}

// PlanConfig is the cycle-generation policy.
type PlanConfig struct {
	ApplyDeload      bool  `toml:"apply_deload"`
	DeloadDays       int   `toml:"deload_days"`
	DefaultDuration  int   `toml:"default_duration"`
	AllowedDurations []int `toml:"allowed_durations"`
}

type CoachConfig struct {
	Model string `toml:"model"`
}

func defaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Addr:           "localhost:3000",
			AllowedOrigins: []string{"http://localhost:5173"},
		},
		Plan: PlanConfig{
			ApplyDeload:      false,
			DeloadDays:       7,
			DefaultDuration:  30,
			AllowedDurations: []int{30, 90, 180},
		},
	}
}

// loadConfig decodes path over the defaults, then applies env overrides.
// An empty path means defaultConfigPath.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	explicit := path != ""
	if !explicit {
		path = defaultConfigPath
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if !errors.Is(err, fs.ErrNotExist) || explicit {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Addr = ":" + port
	}
	cfg.DBURL = os.Getenv("DB_URL")
	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	cfg.GeminiBaseURL = os.Getenv("GEMINI_BASE_URL")

	if err := cfg.Plan.validate(); err != nil {
		return Config{}, fmt.Errorf("invalid [plan] config: %w", err)
	}
	return cfg, nil
}

func (p PlanConfig) validate() error {
	if p.DeloadDays < 1 {
		return fmt.Errorf("deload_days must be at least 1, got %d", p.DeloadDays)
	}
	if len(p.AllowedDurations) == 0 {
		return errors.New("allowed_durations must not be empty")
	}
	for _, d := range p.AllowedDurations {
		if d < 1 {
			return fmt.Errorf("allowed_durations contains %d", d)
		}
	}
	if !p.durationAllowed(p.DefaultDuration) {
		return fmt.Errorf("default_duration %d is not in allowed_durations", p.DefaultDuration)
	}
	return nil
}

func (p PlanConfig) durationAllowed(days int) bool {
	return slices.Contains(p.AllowedDurations, days)
}
