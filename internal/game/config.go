package game

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config controls the dashboard host. Every field has an env override.
type Config struct {
	AssetDir  string  `env:"SKYLINE_ASSET_DIR"  envDefault:"assets/textures"`
	WindowW   int     `env:"SKYLINE_WINDOW_W"   envDefault:"1600"`
	WindowH   int     `env:"SKYLINE_WINDOW_H"   envDefault:"900"`
	PollTicks int     `env:"SKYLINE_POLL_TICKS" envDefault:"120"`
	Seed      int64   `env:"SKYLINE_SEED"       envDefault:"42"`
	TileW     float64 `env:"SKYLINE_TILE_W"     envDefault:"64"`
	TileH     float64 `env:"SKYLINE_TILE_H"     envDefault:"32"`
	Verbose   bool    `env:"SKYLINE_VERBOSE"`
}

// DefaultConfig matches the envDefault tags.
func DefaultConfig() Config {
	return Config{
		AssetDir:  "assets/textures",
		WindowW:   1600,
		WindowH:   900,
		PollTicks: 120,
		Seed:      42,
		TileW:     64,
		TileH:     32,
	}
}

// LoadConfig reads the environment. On a parse error it returns the
// defaults together with the error so callers can log and continue.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parse env: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	d := DefaultConfig()
	if c.WindowW <= logPanelWidth {
		c.WindowW = d.WindowW
	}
	if c.WindowH <= 0 {
		c.WindowH = d.WindowH
	}
	if c.TileW <= 0 {
		c.TileW = d.TileW
	}
	if c.TileH <= 0 {
		c.TileH = d.TileH
	}
}
