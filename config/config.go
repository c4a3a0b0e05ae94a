// Package config loads the window manager's settings. Missing files and
// invalid values never abort start-up: every field falls back to its default
// and the problem is logged.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/BobdaProgrammer/doTile/binding"
	"github.com/BobdaProgrammer/doTile/layout"
)

const (
	dirName         = "dotile"
	configFile      = "config.yaml"
	autostartScript = "autostart"
)

// Placement decides where a floating client appears when it is first mapped.
type Placement int

const (
	Centered Placement = iota
	Pointer
	Wherever
)

func (p Placement) String() string {
	switch p {
	case Pointer:
		return "pointer"
	case Wherever:
		return "wherever"
	}
	return "centered"
}

func ParsePlacement(name string) (Placement, error) {
	switch name {
	case "centered":
		return Centered, nil
	case "pointer":
		return Pointer, nil
	case "wherever":
		return Wherever, nil
	}
	return 0, fmt.Errorf("unknown placement %q", name)
}

// FrameWidth is the decoration around a client window, per side.
type FrameWidth struct {
	Top, Right, Bottom, Left uint
}

type Theme struct {
	ActiveColor   uint32
	InactiveColor uint32
	BorderColor   uint32
	BorderWidth   uint
	FrameWidth    FrameWidth
}

type Layout struct {
	Default layout.Type
	Params  layout.Params
}

type Config struct {
	PrimaryWorkspaces   int
	SecondaryWorkspaces int
	// OnStartup is run once through the shell after the window manager is up.
	OnStartup string
	Placement Placement
	Layout    Layout
	Theme     Theme
	Bindings  binding.Table
}

func Default() Config {
	return Config{
		PrimaryWorkspaces:   9,
		SecondaryWorkspaces: 9,
		Placement:           Centered,
		Layout: Layout{
			Default: layout.Dynamic,
			Params: layout.Params{
				Gap:           5,
				MainRatio:     0.55,
				NMain:         1,
				StackMode:     layout.Split,
				StackPosition: layout.Right,
			},
		},
		Theme: Theme{
			ActiveColor:   0x30d6ff,
			InactiveColor: 0x141414,
			BorderColor:   0x141414,
			FrameWidth:    FrameWidth{Top: 10, Right: 1, Bottom: 1, Left: 1},
		},
		Bindings: binding.DefaultTable(9),
	}
}

// Dir returns the directory holding every configuration file,
// $XDG_CONFIG_HOME/dotile.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("couldn't locate config directory: %w", err)
	}
	return filepath.Join(base, dirName), nil
}

// DefaultPath is the location of config.yaml.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFile), nil
}

// Load reads path and the binding files next to it. A missing file yields the
// defaults; the returned error is only set for files that exist but cannot be
// parsed, and even then the returned Config is usable.
func Load(path string) (Config, error) {
	cfg := Default()

	k := koanf.New(".")
	err := k.Load(file.Provider(path), yaml.Parser())
	switch {
	case errors.Is(err, fs.ErrNotExist):
		slog.Info("no configuration file, using defaults", "path", path)
		err = nil
	case err != nil:
		err = fmt.Errorf("couldn't read %s: %w", path, err)
	default:
		var r raw
		if err = k.Unmarshal("", &r); err != nil {
			err = fmt.Errorf("couldn't decode %s: %w", path, err)
		} else {
			r.apply(&cfg)
		}
	}

	dir := filepath.Dir(path)
	if cfg.OnStartup == "" {
		cfg.OnStartup = findAutostart(dir)
	}
	cfg.Bindings = LoadBindings(dir, cfg.PrimaryWorkspaces)

	return cfg, err
}

func findAutostart(dir string) string {
	path := filepath.Join(dir, autostartScript)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() || info.Mode().Perm()&0o111 == 0 {
		return ""
	}
	return path
}

// raw mirrors config.yaml with every leaf kept as text, so one bad value
// only costs that value.
type raw struct {
	PrimaryWorkspaces   string `koanf:"primary_workspaces"`
	SecondaryWorkspaces string `koanf:"secondary_workspaces"`
	OnStartup           string `koanf:"on_startup"`
	InitialPlacement    string `koanf:"initial_placement"`

	Layout struct {
		Default       string `koanf:"default"`
		GapWidth      string `koanf:"gap_width"`
		MainRatio     string `koanf:"main_ratio"`
		NMain         string `koanf:"nmain"`
		StackPosition string `koanf:"stack_position"`
		StackMode     string `koanf:"stack_mode"`
	} `koanf:"layout"`

	Theme struct {
		ActiveColor   string   `koanf:"active_color"`
		InactiveColor string   `koanf:"inactive_color"`
		BorderColor   string   `koanf:"border_color"`
		BorderWidth   string   `koanf:"border_width"`
		FrameWidth    []string `koanf:"frame_width"`
	} `koanf:"theming"`
}

func (r *raw) apply(cfg *Config) {
	field("primary_workspaces", r.PrimaryWorkspaces, parseCount, &cfg.PrimaryWorkspaces)
	field("secondary_workspaces", r.SecondaryWorkspaces, parseCount, &cfg.SecondaryWorkspaces)
	if r.OnStartup != "" {
		cfg.OnStartup = r.OnStartup
	}
	field("initial_placement", r.InitialPlacement, ParsePlacement, &cfg.Placement)

	l := &cfg.Layout
	field("layout.default", r.Layout.Default, layout.ParseType, &l.Default)
	field("layout.gap_width", r.Layout.GapWidth, parseUint, &l.Params.Gap)
	field("layout.main_ratio", r.Layout.MainRatio, parseRatio, &l.Params.MainRatio)
	field("layout.nmain", r.Layout.NMain, parseUint, &l.Params.NMain)
	field("layout.stack_position", r.Layout.StackPosition, layout.ParseStackPosition, &l.Params.StackPosition)
	field("layout.stack_mode", r.Layout.StackMode, layout.ParseStackMode, &l.Params.StackMode)

	th := &cfg.Theme
	field("theming.active_color", r.Theme.ActiveColor, parseColor, &th.ActiveColor)
	field("theming.inactive_color", r.Theme.InactiveColor, parseColor, &th.InactiveColor)
	field("theming.border_color", r.Theme.BorderColor, parseColor, &th.BorderColor)
	field("theming.border_width", r.Theme.BorderWidth, parseUint, &th.BorderWidth)
	if r.Theme.FrameWidth != nil {
		field("theming.frame_width", strings.Join(r.Theme.FrameWidth, ","), parseFrameWidth, &th.FrameWidth)
	}
}

// field parses text into dst, leaving dst untouched when text is empty or
// invalid.
func field[T any](key, text string, parse func(string) (T, error), dst *T) {
	if text == "" {
		return
	}
	v, err := parse(text)
	if err != nil {
		slog.Warn("invalid configuration value, keeping default", "key", key, "value", text, "error", err)
		return
	}
	*dst = v
}

func parseCount(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, fmt.Errorf("must be at least 1")
	}
	return n, nil
}

func parseUint(s string) (uint, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	return uint(n), err
}

func parseRatio(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f < 0.1 || f > 0.9 {
		return 0, fmt.Errorf("must be between 0.1 and 0.9")
	}
	return f, nil
}

// parseColor accepts decimal, 0x-prefixed and #-prefixed hexadecimal RGB values.
func parseColor(s string) (uint32, error) {
	if hex, ok := strings.CutPrefix(s, "#"); ok {
		s = "0x" + hex
	}
	n, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, err
	}
	if n > 0xffffff {
		return 0, fmt.Errorf("color out of range")
	}
	return uint32(n), nil
}

// parseFrameWidth takes top,right,bottom,left.
func parseFrameWidth(s string) (FrameWidth, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return FrameWidth{}, fmt.Errorf("want 4 widths (top, right, bottom, left), got %d", len(parts))
	}
	var w [4]uint
	for i, p := range parts {
		n, err := parseUint(strings.TrimSpace(p))
		if err != nil {
			return FrameWidth{}, err
		}
		w[i] = n
	}
	return FrameWidth{Top: w[0], Right: w[1], Bottom: w[2], Left: w[3]}, nil
}
