package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Width   int     `env:"TETRIS_WIDTH" envDefault:"10"`
	Height  int     `env:"TETRIS_HEIGHT" envDefault:"18"`
	Seed    int64   `env:"TETRIS_SEED" envDefault:"0"`
	FPS     float64 `env:"TETRIS_FPS" envDefault:"30"`
	LogFile string  `env:"TETRIS_LOG_FILE"`
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Width < 4 || c.Height < 4 {
		return fmt.Errorf("board must be at least 4x4, got %dx%d", c.Width, c.Height)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %v", c.FPS)
	}
	return nil
}

// OpenLogger returns a logger writing to the configured file. The terminal
// belongs to termbox while the game runs, so without a file logs are dropped.
func (c Config) OpenLogger() (*log.Logger, io.Closer, error) {
	if c.LogFile == "" {
		return log.New(io.Discard, "", 0), io.NopCloser(nil), nil
	}
	f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return log.New(f, "playtetris ", log.LstdFlags), f, nil
}
