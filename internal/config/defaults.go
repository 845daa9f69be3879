package config

import (
	"path/filepath"
	"sort"
)

const (
	// DefaultRepoURL is the repository analyzed when none is configured.
	DefaultRepoURL = "https://github.com/davidkarpay/Docket_Manager.git"
	// DefaultWorkspace receives reports and the clone target.
	DefaultWorkspace = "./docket_manager_workspace"
	// DefaultFontPath is the preferred glyph font for icons.
	DefaultFontPath = "/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf"
)

// DefaultStateDir holds the config file, session database and locks.
var DefaultStateDir = ".maimp"

// DefaultConfigPath is the config file location relative to the working directory.
var DefaultConfigPath = filepath.Join(DefaultStateDir, "config.yaml")

// DefaultSettings returns the default settings tree, keyed like the config file.
func DefaultSettings() map[string]any {
	return map[string]any{
		"repository": map[string]any{
			"url":       DefaultRepoURL,
			"branch":    "main",
			"workspace": DefaultWorkspace,
		},
		"session": map[string]any{
			"step_delay": "100ms",
			"state_dir":  DefaultStateDir,
		},
		"icons": map[string]any{
			"letter":     "D",
			"background": "#667eea",
			"foreground": "white",
			"font_path":  DefaultFontPath,
			"sizes":      []int{16, 48, 128},
			"output_dir": "icons",
		},
		"retention": map[string]any{
			"keep_last": 50,
			"keep_days": 30,
		},
		"ui": map[string]any{
			"addr": ":8080",
		},
	}
}

// Default returns the decoded default configuration.
func Default() Config {
	cfg, err := Decode(DefaultSettings())
	if err != nil {
		panic(err)
	}
	return cfg
}

// Setter is satisfied by *viper.Viper.
type Setter interface {
	SetDefault(key string, value any)
}

// SetDefaults registers every default under its dotted key.
func SetDefaults(v Setter) {
	flat := make(map[string]any)
	flatten("", DefaultSettings(), flat)
	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v.SetDefault(k, flat[k])
	}
}

func flatten(prefix string, in map[string]any, out map[string]any) {
	for k, v := range in {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if nested, ok := v.(map[string]any); ok {
			flatten(key, nested, out)
			continue
		}
		out[key] = v
	}
}
