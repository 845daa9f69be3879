// Package config provides configuration loading and management for maimp.
package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
)

// ErrInvalid is returned when a decoded config fails semantic checks.
var ErrInvalid = errors.New("invalid config")

// Config is the root configuration.
type Config struct {
	Repository Repository      `json:"repository" mapstructure:"repository"`
	Session    Session         `json:"session"    mapstructure:"session"`
	Icons      Icons           `json:"icons"      mapstructure:"icons"`
	Retention  RetentionPolicy `json:"retention"  mapstructure:"retention"`
	UI         UI              `json:"ui"         mapstructure:"ui"`
}

// Repository describes the analysis target.
type Repository struct {
	URL       string `json:"url"       mapstructure:"url"`
	Branch    string `json:"branch"    mapstructure:"branch"`
	Workspace string `json:"workspace" mapstructure:"workspace"`
}

// Session controls session pacing and state location.
type Session struct {
	StepDelay time.Duration `json:"step_delay" mapstructure:"step_delay"`
	StateDir  string        `json:"state_dir"  mapstructure:"state_dir"`
}

// Icons configures placeholder icon rendering.
type Icons struct {
	Letter     string `json:"letter"     mapstructure:"letter"`
	Background string `json:"background" mapstructure:"background"`
	Foreground string `json:"foreground" mapstructure:"foreground"`
	FontPath   string `json:"font_path"  mapstructure:"font_path"`
	Sizes      []int  `json:"sizes"      mapstructure:"sizes"`
	OutputDir  string `json:"output_dir" mapstructure:"output_dir"`
}

// RetentionPolicy defines how many old sessions to keep.
type RetentionPolicy struct {
	KeepLast int `json:"keep_last,omitempty" mapstructure:"keep_last"`
	KeepDays int `json:"keep_days,omitempty" mapstructure:"keep_days"`
}

// UI configures the web UI.
type UI struct {
	Addr string `json:"addr" mapstructure:"addr"`
}

// Decode converts raw settings (as produced by viper.AllSettings) into a Config.
func Decode(settings map[string]any) (Config, error) {
	var cfg Config
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
		Result:           &cfg,
	})
	if err != nil {
		return Config{}, fmt.Errorf("create config decoder: %w", err)
	}
	if err := dec.Decode(settings); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// Validate performs checks the schema cannot express.
func (c Config) Validate() error {
	var problems []string
	if strings.TrimSpace(c.Repository.URL) == "" {
		problems = append(problems, "repository.url is empty")
	}
	if strings.TrimSpace(c.Repository.Workspace) == "" {
		problems = append(problems, "repository.workspace is empty")
	}
	if c.Session.StepDelay < 0 {
		problems = append(problems, "session.step_delay must be >= 0")
	}
	if len([]rune(c.Icons.Letter)) != 1 {
		problems = append(problems, "icons.letter must be a single character")
	}
	seen := make(map[int]bool, len(c.Icons.Sizes))
	for _, size := range c.Icons.Sizes {
		if seen[size] {
			problems = append(problems, fmt.Sprintf("icons.sizes has duplicate %d", size))
		}
		seen[size] = true
	}
	if len(problems) == 0 {
		return nil
	}
	sort.Strings(problems)
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
}
