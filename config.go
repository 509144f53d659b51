// config.go - Layered configuration: defaults, YAML file, env, flags

package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// ==================== CONFIGURATION STRUCTURES ====================

type SearchConfig struct {
	X      uint32 `yaml:"x"`
	Y      uint32 `yaml:"y"`
	Z      uint32 `yaml:"z"`
	AStart uint64 `yaml:"a_start"`
	AMax   uint64 `yaml:"a_max"`
	BStart uint64 `yaml:"b_start"`
	BMax   uint64 `yaml:"b_max"`
	CMax   uint64 `yaml:"c_max"`
}

type OutputConfig struct {
	LogPath         string `yaml:"log_path"`
	LogLevel        string `yaml:"log_level"`
	Verbose         bool   `yaml:"verbose"`
	RealTimeDisplay bool   `yaml:"real_time_display"`
}

type PerformanceConfig struct {
	Threads          int `yaml:"threads"`
	ProgressInterval int `yaml:"progress_interval"`
}

type Config struct {
	Search      SearchConfig      `yaml:"search"`
	Output      OutputConfig      `yaml:"output"`
	Performance PerformanceConfig `yaml:"performance"`
}

// ==================== DEFAULTS & LOADING ====================

func setDefaults() {
	viper.SetDefault("search.x", 0)
	viper.SetDefault("search.y", 0)
	viper.SetDefault("search.z", 0)
	viper.SetDefault("search.a_start", 1)
	viper.SetDefault("search.a_max", 1000)
	viper.SetDefault("search.b_start", 1)
	viper.SetDefault("search.b_max", 1000)
	viper.SetDefault("search.c_max", 10000000)

	viper.SetDefault("output.log_path", "")
	viper.SetDefault("output.log_level", "info")
	viper.SetDefault("output.verbose", false)
	viper.SetDefault("output.real_time_display", true)

	viper.SetDefault("performance.threads", 0)
	viper.SetDefault("performance.progress_interval", 0)
}

// loadConfig resolves the layered configuration. Precedence, lowest to
// highest: defaults, YAML config file (if present), BEAL_* environment,
// command-line flags (bound in main.go).
func loadConfig(configPath string) (*Config, error) {
	setDefaults()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			viper.SetConfigFile(configPath)
			viper.SetConfigType("yaml")
			if err := viper.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	// Numeric fields are read explicitly: uint64 bounds survive this where
	// a blanket Unmarshal would round-trip them through float64.
	var cfg Config
	cfg.Search.X = viper.GetUint32("search.x")
	cfg.Search.Y = viper.GetUint32("search.y")
	cfg.Search.Z = viper.GetUint32("search.z")
	cfg.Search.AStart = viper.GetUint64("search.a_start")
	cfg.Search.AMax = viper.GetUint64("search.a_max")
	cfg.Search.BStart = viper.GetUint64("search.b_start")
	cfg.Search.BMax = viper.GetUint64("search.b_max")
	cfg.Search.CMax = viper.GetUint64("search.c_max")

	cfg.Output.LogPath = viper.GetString("output.log_path")
	cfg.Output.LogLevel = viper.GetString("output.log_level")
	cfg.Output.Verbose = viper.GetBool("output.verbose")
	cfg.Output.RealTimeDisplay = viper.GetBool("output.real_time_display")

	cfg.Performance.Threads = viper.GetInt("performance.threads")
	cfg.Performance.ProgressInterval = viper.GetInt("performance.progress_interval")

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validateConfig(cfg *Config) error {
	s := &cfg.Search

	if s.X < 3 || s.Y < 3 || s.Z < 3 {
		return fmt.Errorf("exponents x, y, z must all be >= 3 (got %d, %d, %d)", s.X, s.Y, s.Z)
	}
	if s.AStart < 1 || s.BStart < 1 {
		return fmt.Errorf("Astart and Bstart must be >= 1")
	}
	if s.AMax < s.AStart || s.BMax < s.BStart {
		return fmt.Errorf("max values must be >= start values (A: %d..%d, B: %d..%d)",
			s.AStart, s.AMax, s.BStart, s.BMax)
	}
	if s.CMax < 1 {
		return fmt.Errorf("Cmax must be >= 1")
	}
	if cfg.Performance.Threads < 0 {
		return fmt.Errorf("threads cannot be negative")
	}
	return nil
}

// searchParams materializes the run input from the resolved config.
func (cfg *Config) searchParams() *SearchParams {
	logPath := cfg.Output.LogPath
	if logPath == "" {
		logPath = fmt.Sprintf("search_%d_%d_%d_%d.jsonl",
			cfg.Search.X, cfg.Search.Y, cfg.Search.Z, time.Now().Unix())
	}

	return &SearchParams{
		X:                cfg.Search.X,
		Y:                cfg.Search.Y,
		Z:                cfg.Search.Z,
		AStart:           cfg.Search.AStart,
		AMax:             cfg.Search.AMax,
		BStart:           cfg.Search.BStart,
		BMax:             cfg.Search.BMax,
		CMax:             cfg.Search.CMax,
		Threads:          cfg.Performance.Threads,
		ProgressInterval: cfg.Performance.ProgressInterval,
		LogPath:          logPath,
		Display:          cfg.Output.RealTimeDisplay,
	}
}

// saveDefaultConfig writes a commented default beal.yaml.
func saveDefaultConfig(path string) error {
	cfg := Config{
		Search: SearchConfig{
			AStart: 1,
			AMax:   1000,
			BStart: 1,
			BMax:   1000,
			CMax:   10000000,
		},
		Output: OutputConfig{
			LogLevel:        "info",
			RealTimeDisplay: true,
		},
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return err
	}

	header := "# Beal Hunter configuration v" + Version + "\n" +
		"# Values here are overridden by BEAL_* environment variables and flags.\n\n"

	return os.WriteFile(path, []byte(header+string(data)), 0o644)
}

// ==================== LOGGER SETUP ====================

func setupLogger(cfg OutputConfig) *logrus.Logger {
	logger := logrus.New()

	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		logger.SetLevel(logrus.DebugLevel)
	case "info":
		logger.SetLevel(logrus.InfoLevel)
	case "warn":
		logger.SetLevel(logrus.WarnLevel)
	case "error":
		logger.SetLevel(logrus.ErrorLevel)
	default:
		logger.SetLevel(logrus.InfoLevel)
	}

	if cfg.Verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	return logger
}
