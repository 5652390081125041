// Package config provides configuration types, defaults and loading for tide.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/zjrosen/tide/internal/flags"
	"github.com/zjrosen/tide/internal/log"
)

// LocalPath is the project-level config file, relative to the working directory.
const LocalPath = ".tide/config.yaml"

// Config holds all configuration options for tide.
type Config struct {
	ShowLineNumbers bool            `mapstructure:"show_line_numbers" yaml:"show_line_numbers"`
	DefaultFilename string          `mapstructure:"default_filename" yaml:"default_filename"`
	WatchFile       bool            `mapstructure:"watch_file" yaml:"watch_file"`
	Theme           ThemeConfig     `mapstructure:"theme" yaml:"theme"`
	Flags           map[string]bool `mapstructure:"flags" yaml:"flags"`
}

// ThemeConfig holds hex foreground colors for each syntax category and the
// line-number gutter. Empty values use the terminal's default foreground.
type ThemeConfig struct {
	Normal       string `mapstructure:"normal" yaml:"normal"`
	Keyword      string `mapstructure:"keyword" yaml:"keyword"`
	String       string `mapstructure:"string" yaml:"string"`
	Comment      string `mapstructure:"comment" yaml:"comment"`
	Preprocessor string `mapstructure:"preprocessor" yaml:"preprocessor"`
	Number       string `mapstructure:"number" yaml:"number"`
	LineNumber   string `mapstructure:"line_number" yaml:"line_number"`
}

// Colors returns the theme's colors keyed by their config name.
func (t ThemeConfig) Colors() map[string]string {
	return map[string]string{
		"normal":       t.Normal,
		"keyword":      t.Keyword,
		"string":       t.String,
		"comment":      t.Comment,
		"preprocessor": t.Preprocessor,
		"number":       t.Number,
		"line_number":  t.LineNumber,
	}
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		ShowLineNumbers: true,
		DefaultFilename: "untitled.txt",
		WatchFile:       true,
		Theme: ThemeConfig{
			Keyword:      "#5F87FF",
			String:       "#5FAF5F",
			Comment:      "#808080",
			Preprocessor: "#D75FD7",
			Number:       "#D7AF5F",
			LineNumber:   "#626262",
		},
		Flags: flags.Defaults(),
	}
}

// SetDefaults registers every default value with v so that partial config
// files only override what they name.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("show_line_numbers", d.ShowLineNumbers)
	v.SetDefault("default_filename", d.DefaultFilename)
	v.SetDefault("watch_file", d.WatchFile)
	for name, color := range d.Theme.Colors() {
		v.SetDefault("theme."+name, color)
	}
	v.SetDefault("flags", d.Flags)
}

// FindConfigFile resolves which config file to read: explicit when set,
// then LocalPath under cwd, then ~/.config/tide/config.yaml. It returns ""
// when no candidate exists.
func FindConfigFile(fsys afero.Fs, explicit, cwd, home string) string {
	if explicit != "" {
		return explicit
	}
	candidates := []string{filepath.Join(cwd, LocalPath)}
	if home != "" {
		candidates = append(candidates, filepath.Join(home, ".config", "tide", "config.yaml"))
	}
	for _, path := range candidates {
		if ok, _ := afero.Exists(fsys, path); ok {
			return path
		}
	}
	return ""
}

// Load reads path (if any) into v over the defaults and returns the
// validated configuration.
func Load(v *viper.Viper, path string) (Config, error) {
	SetDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
		log.Info(log.CatConfig, "config loaded", "path", path)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := ValidateTheme(cfg.Theme); err != nil {
		return Config{}, fmt.Errorf("invalid theme: %w", err)
	}
	if strings.TrimSpace(cfg.DefaultFilename) == "" {
		return Config{}, errors.New("default_filename must not be empty")
	}
	return cfg, nil
}

// ValidateTheme checks that every non-empty theme color is a hex color.
func ValidateTheme(t ThemeConfig) error {
	var errs []error
	for _, name := range []string{"normal", "keyword", "string", "comment", "preprocessor", "number", "line_number"} {
		value := t.Colors()[name]
		if value != "" && !IsValidHexColor(value) {
			errs = append(errs, fmt.Errorf("invalid hex color for %s: %s", name, value))
		}
	}
	return errors.Join(errs...)
}

// IsValidHexColor reports whether s is "#RGB" or "#RRGGBB".
func IsValidHexColor(s string) bool {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || (len(hex) != 3 && len(hex) != 6) {
		return false
	}
	_, err := strconv.ParseUint(hex, 16, 64)
	return err == nil
}
