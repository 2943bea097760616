package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults give a 4x4 grid in a 1200x800 window.
const (
	DefaultImageDir    = "images"
	DefaultWidth       = 1200
	DefaultHeight      = 800
	DefaultTitle       = "Last Image Standing"
	DefaultCols        = 4
	DefaultRows        = 4
	DefaultEdgePadding = 24.0 // grid to window border
	DefaultCellPadding = 8.0  // between cells
	DefaultMoveRate    = 0.12
	DefaultScaleRate   = 0.08
	DefaultFadeStep    = 12
	DefaultFadeFloor   = 255 / 10 // 10% opacity for losers
	DefaultWinnerScale = 4.0
	DefaultDelayMillis = 200
	DefaultTPS         = 60
)

// Window describes the initial window.
type Window struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// Grid describes the participant grid.
type Grid struct {
	Cols        int     `yaml:"cols"`
	Rows        int     `yaml:"rows"`
	EdgePadding float64 `yaml:"edge_padding"`
	CellPadding float64 `yaml:"cell_padding"`
}

// Animation holds the easing and elimination tuning.
type Animation struct {
	MoveRate    float64 `yaml:"move_rate"`
	ScaleRate   float64 `yaml:"scale_rate"`
	FadeStep    int     `yaml:"fade_step"`
	FadeFloor   int     `yaml:"fade_floor"`
	WinnerScale float64 `yaml:"winner_scale"`
	DelayMillis int     `yaml:"elimination_delay_ms"`
	TimeBased   bool    `yaml:"time_based"`
}

// Render toggles optional graphics.
type Render struct {
	TPS         int  `yaml:"tps"`
	WinnerFrame bool `yaml:"winner_frame"`
	Debug       bool `yaml:"debug"`
}

// Config is the full runtime configuration.
type Config struct {
	ImageDir  string    `yaml:"image_dir"`
	Window    Window    `yaml:"window"`
	Grid      Grid      `yaml:"grid"`
	Animation Animation `yaml:"animation"`
	Render    Render    `yaml:"render"`
	Sound     bool      `yaml:"sound"`
	Seed      uint64    `yaml:"seed"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ImageDir: DefaultImageDir,
		Window: Window{
			Width:  DefaultWidth,
			Height: DefaultHeight,
			Title:  DefaultTitle,
		},
		Grid: Grid{
			Cols:        DefaultCols,
			Rows:        DefaultRows,
			EdgePadding: DefaultEdgePadding,
			CellPadding: DefaultCellPadding,
		},
		Animation: Animation{
			MoveRate:    DefaultMoveRate,
			ScaleRate:   DefaultScaleRate,
			FadeStep:    DefaultFadeStep,
			FadeFloor:   DefaultFadeFloor,
			WinnerScale: DefaultWinnerScale,
			DelayMillis: DefaultDelayMillis,
		},
		Render: Render{
			TPS: DefaultTPS,
		},
	}
}

// Load reads a YAML file on top of Default. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("invalid config")

// Validate rejects values the controller cannot run with.
func (c Config) Validate() error {
	switch {
	case c.ImageDir == "":
		return fmt.Errorf("%w: image_dir is empty", ErrInvalid)
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	case c.Grid.Cols <= 0 || c.Grid.Rows <= 0:
		return fmt.Errorf("%w: grid %dx%d", ErrInvalid, c.Grid.Cols, c.Grid.Rows)
	case c.Grid.EdgePadding < 0 || c.Grid.CellPadding < 0:
		return fmt.Errorf("%w: negative padding", ErrInvalid)
	case !validRate(c.Animation.MoveRate) || !validRate(c.Animation.ScaleRate):
		return fmt.Errorf("%w: rates must be in (0, 1]", ErrInvalid)
	case c.Animation.FadeStep <= 0:
		return fmt.Errorf("%w: fade_step must be positive", ErrInvalid)
	case c.Animation.FadeFloor < 0 || c.Animation.FadeFloor > 255:
		return fmt.Errorf("%w: fade_floor %d outside 0..255", ErrInvalid, c.Animation.FadeFloor)
	case c.Animation.WinnerScale <= 0:
		return fmt.Errorf("%w: winner_scale must be positive", ErrInvalid)
	case c.Animation.DelayMillis <= 0:
		return fmt.Errorf("%w: elimination_delay_ms must be positive", ErrInvalid)
	case c.Render.TPS <= 0:
		return fmt.Errorf("%w: tps must be positive", ErrInvalid)
	}
	return nil
}

// EliminationDelay is the time between two elimination steps.
func (c Config) EliminationDelay() time.Duration {
	return time.Duration(c.Animation.DelayMillis) * time.Millisecond
}

func validRate(r float64) bool {
	return r > 0 && r <= 1
}
