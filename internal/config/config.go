// Package config loads particle field settings from TOML files.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/Garsondee/particle-field/internal/field"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Field mirrors field.Options with file-friendly types.
type Field struct {
	Quantity     int     `toml:"quantity"`
	Size         float64 `toml:"size"`
	Color        string  `toml:"color"`
	SizePolicy   string  `toml:"size_policy"`
	Sides        int     `toml:"sides"`
	Staticity    float64 `toml:"staticity"`
	Ease         float64 `toml:"ease"`
	VX           float64 `toml:"vx"`
	VY           float64 `toml:"vy"`
	LinkDistance float64 `toml:"link_distance"`
	LinkWidth    float64 `toml:"link_width"`
	LinkOpacity  float64 `toml:"link_opacity"`
	Seed         int64   `toml:"seed"`
}

// Window configures the desktop host.
type Window struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
	HUD    bool   `toml:"hud"`
}

// Term configures the terminal host.
type Term struct {
	FPS int `toml:"fps"`
}

// Config is the whole settings file.
type Config struct {
	Field  Field  `toml:"field"`
	Window Window `toml:"window"`
	Term   Term   `toml:"term"`
}

// Default returns the settings used by the bundled hosts.
func Default() Config {
	return Config{
		Field: Field{
			Quantity:     80,
			Size:         field.DefaultSize,
			Color:        "#ffffff",
			SizePolicy:   field.SizeFixed.String(),
			Sides:        field.DefaultSides,
			LinkDistance: field.DefaultLinkDistance,
			LinkWidth:    field.DefaultLinkWidth,
			LinkOpacity:  field.DefaultLinkOpacity,
		},
		Window: Window{
			Width:  1280,
			Height: 720,
			Title:  "Particle Field",
			HUD:    true,
		},
		Term: Term{FPS: 30},
	}
}

// Load reads path over the defaults. Keys missing from the file keep their
// default values. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := Decode(string(data), &cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode parses TOML text into cfg, leaving absent keys untouched, and
// checks the values that have to parse.
func Decode(text string, cfg *Config) error {
	md, err := toml.Decode(text, cfg)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown key %q", undecoded[0].String())
	}
	_, err = cfg.Options()
	return err
}

// Options converts the [field] section to field.Options.
func (c Config) Options() (field.Options, error) {
	col, err := ParseColor(c.Field.Color)
	if err != nil {
		return field.Options{}, err
	}
	policy, err := field.ParseSizePolicy(c.Field.SizePolicy)
	if err != nil {
		return field.Options{}, err
	}
	return field.Options{
		Quantity:     c.Field.Quantity,
		Size:         c.Field.Size,
		Color:        col,
		Staticity:    c.Field.Staticity,
		Ease:         c.Field.Ease,
		VX:           c.Field.VX,
		VY:           c.Field.VY,
		SizePolicy:   policy,
		Sides:        c.Field.Sides,
		LinkDistance: c.Field.LinkDistance,
		LinkWidth:    c.Field.LinkWidth,
		LinkOpacity:  c.Field.LinkOpacity,
		Seed:         c.Field.Seed,
	}.Normalize(), nil
}

// ErrEmptyColor is returned for a blank colour string.
var ErrEmptyColor = errors.New("empty colour")

// ParseColor parses "#rgb" or "#rrggbb" into an opaque colour.
func ParseColor(s string) (color.NRGBA, error) {
	if s == "" {
		return color.NRGBA{}, ErrEmptyColor
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("colour %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

// FormatColor renders c as "#rrggbb".
func FormatColor(c color.NRGBA) string {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hex()
}
