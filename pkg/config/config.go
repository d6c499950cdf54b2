package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/ritzau/vt-designer/pkg/editor"
	"github.com/ritzau/vt-designer/pkg/model"
	"github.com/ritzau/vt-designer/pkg/render"
	"github.com/spf13/pflag"
)

// FileName is the optional config file read from the working directory.
const FileName = "vt-designer.toml"

// EnvPrefix prefixes environment overrides. A double underscore separates
// sections: VT_DESIGNER_HISTORY__UNDO_LIMIT sets history.undo_limit.
const EnvPrefix = "VT_DESIGNER_"

// Config holds all configuration for the application
type Config struct {
	Project   string          `koanf:"project"`
	Port      int             `koanf:"port"`
	Watch     bool            `koanf:"watch"`
	Verbosity string          `koanf:"verbosity"`
	JSONLogs  bool            `koanf:"json_logs"`
	VtVersion model.VtVersion `koanf:"vt_version"`
	History   History         `koanf:"history"`
	Naming    Naming          `koanf:"naming"`
	Design    Design          `koanf:"design"`
}

// History bounds the undo and selection stacks of a project.
type History struct {
	UndoLimit      int `koanf:"undo_limit"`
	SelectionLimit int `koanf:"selection_limit"`
}

// Design sets the display the pool is designed for, in pixels. Zero sizes are
// fitted to the opened pool.
type Design struct {
	MaskSize      int `koanf:"mask_size"`
	SoftKeyWidth  int `koanf:"soft_key_width"`
	SoftKeyHeight int `koanf:"soft_key_height"`
}

// Naming controls automatic object names.
type Naming struct {
	Smart bool `koanf:"smart"`
}

// EditorOptions returns the project options the config asks for.
func (c *Config) EditorOptions() editor.Options {
	return editor.Options{
		UndoLimit:      c.History.UndoLimit,
		SelectionLimit: c.History.SelectionLimit,
		SmartNaming:    c.Naming.Smart,
		MaskSize:       c.Design.MaskSize,
		SoftKeyWidth:   c.Design.SoftKeyWidth,
		SoftKeyHeight:  c.Design.SoftKeyHeight,
	}
}

// flagKeys maps command line flags to config keys where the two differ.
var flagKeys = map[string]string{
	"json-logs":       "json_logs",
	"vt-version":      "vt_version",
	"undo-limit":      "history.undo_limit",
	"selection-limit": "history.selection_limit",
	"smart-naming":    "naming.smart",
	"mask-size":       "design.mask_size",
	"soft-key-width":  "design.soft_key_width",
	"soft-key-height": "design.soft_key_height",
}

// RegisterFlags adds the flags Load understands to f.
func RegisterFlags(f *pflag.FlagSet) {
	f.String("project", "", "Path to the project file")
	f.Int("port", 8080, "Port for the web server")
	f.Bool("watch", false, "Reload the project when the file changes on disk")
	f.StringP("verbosity", "v", "", "Log level: trace, debug, info, warn or error")
	f.Bool("json-logs", false, "Write logs as JSON")
	f.Int("vt-version", int(model.DefaultVersion), "VT version of new projects (3-6)")
	f.Int("undo-limit", editor.DefaultUndoLimit, "Number of edits that can be undone")
	f.Int("selection-limit", editor.DefaultSelectionLimit, "Length of the selection history")
	f.Bool("smart-naming", true, "Name new objects automatically")
	f.Int("mask-size", 0, "Mask size in pixels (100-2000), 0 to fit the pool")
	f.Int("soft-key-width", 0, "Soft key width in pixels, 0 to fit the pool")
	f.Int("soft-key-height", 0, "Soft key height in pixels, 0 to fit the pool")
}

// Load loads configuration from defaults, config file, environment variables, and flags.
// Priority: Flags > Env > Config File > Defaults
func Load(f *pflag.FlagSet) (*Config, error) {
	return load(f, FileName)
}

func load(f *pflag.FlagSet, path string) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	defaults := map[string]interface{}{
		"project":                 "",
		"port":                    8080,
		"watch":                   false,
		"verbosity":               "",
		"json_logs":               false,
		"vt_version":              int(model.DefaultVersion),
		"history.undo_limit":      editor.DefaultUndoLimit,
		"history.selection_limit": editor.DefaultSelectionLimit,
		"naming.smart":            true,
		"design.mask_size":        0,
		"design.soft_key_width":   0,
		"design.soft_key_height":  0,
	}
	if err := k.Load(makeMapProvider(defaults), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config File (optional)
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	// 3. Environment Variables
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(
			strings.TrimPrefix(s, EnvPrefix)), "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags
	if f != nil {
		provider := posflag.ProviderWithFlag(f, ".", k, func(fl *pflag.Flag) (string, interface{}) {
			key := fl.Name
			if mapped, ok := flagKeys[fl.Name]; ok {
				key = mapped
			}
			return key, posflag.FlagVal(f, fl)
		})
		if err := k.Load(provider, nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	// Unmarshal into struct
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if !c.VtVersion.Valid() {
		return fmt.Errorf("vt_version must be between 3 and 6, got %d", c.VtVersion)
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port %d is out of range", c.Port)
	}
	if c.History.UndoLimit < 1 || c.History.SelectionLimit < 1 {
		return fmt.Errorf("history limits must be at least 1")
	}
	if m := c.Design.MaskSize; m != 0 && (m < render.MinMaskSize || m > render.MaxMaskSize) {
		return fmt.Errorf("design.mask_size must be 0 or between %d and %d, got %d", render.MinMaskSize, render.MaxMaskSize, m)
	}
	if c.Design.SoftKeyWidth < 0 || c.Design.SoftKeyHeight < 0 {
		return fmt.Errorf("soft key sizes cannot be negative")
	}
	return nil
}

// Helper to use map as a provider
type mapProvider struct {
	m map[string]interface{}
}

func makeMapProvider(m map[string]interface{}) *mapProvider {
	return &mapProvider{m: m}
}

// Read returns the map unflattened, so dotted keys become nested sections.
func (p *mapProvider) Read() (map[string]interface{}, error) {
	out := make(map[string]interface{})
	for key, v := range p.m {
		section, name, nested := strings.Cut(key, ".")
		if !nested {
			out[key] = v
			continue
		}
		inner, _ := out[section].(map[string]interface{})
		if inner == nil {
			inner = make(map[string]interface{})
			out[section] = inner
		}
		inner[name] = v
	}
	return out, nil
}

func (p *mapProvider) ReadBytes() ([]byte, error) {
	return nil, fmt.Errorf("not implemented")
}
