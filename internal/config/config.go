package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vancomm/minesweeper/internal/mines"
)

type Journal struct {
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

type Config struct {
	Development bool    `yaml:"development"`
	LogLevel    string  `yaml:"log_level"`
	Level       string  `yaml:"level"`
	Height      int     `yaml:"height"`
	Width       int     `yaml:"width"`
	MineCount   int     `yaml:"mine_count"`
	Seed        uint64  `yaml:"seed"`
	Journal     Journal `yaml:"journal"`
}

func Default() Config {
	return Config{
		LogLevel: "info",
		Level:    mines.Beginner.String(),
		Journal: Journal{
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// Load reads path, if it is not empty, over the defaults and then applies
// environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("unable to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("unable to parse config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func lookupInt(key string, dst *int) error {
	s, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("%s env variable is not a number: %w", key, err)
	}
	*dst = v
	return nil
}

func (c *Config) applyEnv() error {
	c.Development = c.Development || Development()

	if s, ok := os.LookupEnv("MINES_LOG_LEVEL"); ok {
		c.LogLevel = s
	}
	if s, ok := os.LookupEnv("MINES_LEVEL"); ok {
		c.Level = s
	}
	if s, ok := os.LookupEnv("MINES_JOURNAL_FILE"); ok {
		c.Journal.File = s
	}
	if s, ok := os.LookupEnv("MINES_SEED"); ok {
		seed, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return fmt.Errorf("MINES_SEED env variable is not a number: %w", err)
		}
		c.Seed = seed
	}

	if key, ok := os.LookupEnv("MINES_FIELD"); ok {
		info, err := mines.ParseKey(key)
		if err != nil {
			return fmt.Errorf("MINES_FIELD env variable: %w", err)
		}
		c.Height, c.Width, c.MineCount = info.Unpack()
	}
	return errors.Join(
		lookupInt("MINES_HEIGHT", &c.Height),
		lookupInt("MINES_WIDTH", &c.Width),
		lookupInt("MINES_MINE_COUNT", &c.MineCount),
	)
}

// Field resolves the board to play. An explicit size wins over the level.
func (c Config) Field() (mines.FieldInfo, error) {
	if c.Height != 0 || c.Width != 0 {
		return mines.NewFieldInfo(c.Height, c.Width, c.MineCount)
	}
	level, err := mines.ParseLevel(c.Level)
	if err != nil {
		return mines.FieldInfo{}, err
	}
	return level.FieldInfo(), nil
}

func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}
