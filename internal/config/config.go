package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	jlconfig "github.com/JeremyLoy/config"
	"gopkg.in/yaml.v3"

	"queuesim/internal/models"
)

// Config represents configuration data for the simulator.
type Config struct {
	Addr          string           `yaml:"addr" config:"QUEUESIM_ADDR"`
	DataDirectory string           `yaml:"data_directory" config:"QUEUESIM_DATA_DIR"`
	HistoryLimit  int              `yaml:"history_limit" config:"QUEUESIM_HISTORY_LIMIT"`
	LogLevel      string           `yaml:"log_level" config:"QUEUESIM_LOG_LEVEL"`
	LogPretty     bool             `yaml:"log_pretty" config:"QUEUESIM_LOG_PRETTY"`
	Single        models.RunParams `yaml:"single"`
	Dual          models.RunParams `yaml:"dual"`
}

// DefaultConfig returns sensible defaults in case no configuration file is provided.
func DefaultConfig() Config {
	return Config{
		Addr:          ":8080",
		DataDirectory: filepath.Join(".dist", "data"),
		HistoryLimit:  200,
		LogLevel:      "info",
		LogPretty:     true,
		Single: models.RunParams{
			Customers:       20,
			MaxInterArrival: 8,
			MaxServiceTime:  6,
		},
		Dual: models.RunParams{
			Customers:           20,
			MaxInterArrival:     5,
			MaxServiceTimeAble:  5,
			MaxServiceTimeBaker: 7,
		},
	}
}

// HistoryPath is the file runs are persisted to.
func (c Config) HistoryPath() string {
	return filepath.Join(c.DataDirectory, "run_history.json")
}

// Load reads configuration from yaml file and applies QUEUESIM_* environment
// overrides. Missing files fall back to defaults.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		content, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(content, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config: %w", err)
			}
		}
	}
	if err := jlconfig.FromEnv().To(&cfg); err != nil {
		return Config{}, fmt.Errorf("read environment: %w", err)
	}
	return normalize(cfg)
}

func normalize(cfg Config) (Config, error) {
	defaults := DefaultConfig()
	if cfg.Addr == "" {
		cfg.Addr = defaults.Addr
	}
	if cfg.DataDirectory == "" {
		cfg.DataDirectory = defaults.DataDirectory
	}
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = defaults.HistoryLimit
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaults.LogLevel
	}
	if cfg.Single.Customers <= 0 || cfg.Single.MaxInterArrival <= 0 || cfg.Single.MaxServiceTime <= 0 {
		return Config{}, errors.New("single defaults must set customers, max_interarrival and max_service_time above zero")
	}
	if cfg.Dual.Customers <= 0 || cfg.Dual.MaxInterArrival <= 0 ||
		cfg.Dual.MaxServiceTimeAble <= 0 || cfg.Dual.MaxServiceTimeBaker <= 0 {
		return Config{}, errors.New("dual defaults must set customers, max_interarrival and both service bounds above zero")
	}
	return cfg, nil
}
