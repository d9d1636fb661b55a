package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kelseyhightower/envconfig"

	"github.com/inamate/vecedit/internal/clip"
	"github.com/inamate/vecedit/internal/engine"
	"github.com/inamate/vecedit/internal/geom"
	"github.com/inamate/vecedit/internal/scene"
)

type Config struct {
	Port           int    `envconfig:"PORT" default:"5000"`
	ControlSecret  string `envconfig:"CONTROL_SECRET"`
	AllowedOrigins string `envconfig:"ALLOWED_ORIGINS" default:"localhost:5000,localhost:5173,localhost:3000"`
	LogLevel       string `envconfig:"LOG_LEVEL" default:"info"`

	ViewportWidth  int `envconfig:"VIEWPORT_WIDTH" default:"800"`
	ViewportHeight int `envconfig:"VIEWPORT_HEIGHT" default:"600"`

	HitRadius           float64   `envconfig:"HIT_RADIUS" default:"0.03"`
	EllipseHitTolerance float64   `envconfig:"ELLIPSE_HIT_TOLERANCE" default:"1.05"`
	MinEllipseRadius    float64   `envconfig:"MIN_ELLIPSE_RADIUS" default:"0.01"`
	EllipseSegments     int       `envconfig:"ELLIPSE_SEGMENTS" default:"100"`
	DefaultColor        string    `envconfig:"DEFAULT_COLOR" default:"#FF0000"`
	DefaultStrokeWidth  float64   `envconfig:"DEFAULT_STROKE_WIDTH" default:"1.0"`
	ClipWindow          []float64 `envconfig:"CLIP_WINDOW" default:"-0.7,-0.7,0.7,0.7"`
	SampleScene         bool      `envconfig:"SAMPLE_SCENE" default:"false"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values the editor cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT out of range: %d", c.Port))
	}
	if c.ViewportWidth <= 0 || c.ViewportHeight <= 0 {
		errs = append(errs, fmt.Errorf("viewport must be positive, got %dx%d", c.ViewportWidth, c.ViewportHeight))
	}
	if c.HitRadius <= 0 {
		errs = append(errs, fmt.Errorf("HIT_RADIUS must be positive, got %v", c.HitRadius))
	}
	if c.EllipseHitTolerance < 1 {
		errs = append(errs, fmt.Errorf("ELLIPSE_HIT_TOLERANCE must be at least 1, got %v", c.EllipseHitTolerance))
	}
	if c.MinEllipseRadius <= 0 {
		errs = append(errs, fmt.Errorf("MIN_ELLIPSE_RADIUS must be positive, got %v", c.MinEllipseRadius))
	}
	if c.EllipseSegments < 3 {
		errs = append(errs, fmt.Errorf("ELLIPSE_SEGMENTS must be at least 3, got %d", c.EllipseSegments))
	}
	if _, err := scene.ParseHexColor(c.DefaultColor); err != nil {
		errs = append(errs, fmt.Errorf("DEFAULT_COLOR: %w", err))
	}
	if c.DefaultStrokeWidth <= 0 {
		errs = append(errs, fmt.Errorf("DEFAULT_STROKE_WIDTH must be positive, got %v", c.DefaultStrokeWidth))
	}
	if len(c.ClipWindow) != 4 {
		errs = append(errs, fmt.Errorf("CLIP_WINDOW needs 4 values (xmin,ymin,xmax,ymax), got %d", len(c.ClipWindow)))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Level parses LOG_LEVEL.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return slog.LevelInfo, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return level, nil
}

// Origins splits ALLOWED_ORIGINS into websocket origin patterns.
func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func (c *Config) Viewport() geom.Viewport {
	return geom.Viewport{Width: c.ViewportWidth, Height: c.ViewportHeight}
}

// EngineOptions builds engine options from the config. Call Validate first.
func (c *Config) EngineOptions() engine.Options {
	opts := engine.DefaultOptions()
	opts.HitRadius = c.HitRadius
	opts.EllipseTolerance = c.EllipseHitTolerance
	opts.MinEllipseRadius = c.MinEllipseRadius
	opts.EllipseSegments = c.EllipseSegments
	opts.DefaultStrokeWidth = c.DefaultStrokeWidth
	if color, err := scene.ParseHexColor(c.DefaultColor); err == nil {
		opts.DefaultColor = color
	}
	if len(c.ClipWindow) == 4 {
		opts.ClipWindow = clip.NewWindow(
			geom.Pt(c.ClipWindow[0], c.ClipWindow[1]),
			geom.Pt(c.ClipWindow[2], c.ClipWindow[3]),
		)
	}
	return opts
}
