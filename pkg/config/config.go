// Package config loads manifestgen configuration from defaults, an optional
// config file, environment variables, and command-line overrides.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Well-known filenames the downstream consumer hard-codes. These are not
// configurable: renaming them would break every published content tree.
const (
	// DescriptorName is the per-directory metadata descriptor.
	DescriptorName = ".meta.json"
	// SidecarSuffix is appended to a file name to form its encryption sidecar.
	SidecarSuffix = ".keys"
)

// Config holds the full pipeline configuration.
type Config struct {
	// Root is the content directory to scan.
	Root string `mapstructure:"root"`
	// Output is the manifest path written by generate.
	Output string `mapstructure:"output"`
	// Extensions lists the file extensions eligible for manifest entries
	// (lowercase, leading dot).
	Extensions []string `mapstructure:"extensions"`
	// Exclude holds doublestar glob patterns matched against slash-separated
	// paths relative to Root.
	Exclude []string `mapstructure:"exclude"`
	VCS     VCS      `mapstructure:"vcs"`
}

// VCS controls version-control timestamp lookup.
type VCS struct {
	Enabled bool `mapstructure:"enabled"`
}

// DefaultExtensions mirrors the extension set the content site recognizes.
func DefaultExtensions() []string {
	return []string{".md", ".pdf", ".png", ".jpg", ".jpeg", ".gif", ".webp", ".svg", ".link", ".enc"}
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Root:       "content",
		Output:     "manifest.json",
		Extensions: DefaultExtensions(),
		Exclude:    nil,
		VCS:        VCS{Enabled: true},
	}
}

// Load reads configuration from defaults, an optional .manifestgen.yaml
// (explicit path wins; otherwise searched in the current directory and
// $HOME), and MANIFESTGEN_* environment variables.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	def := Default()
	v.SetDefault("root", def.Root)
	v.SetDefault("output", def.Output)
	v.SetDefault("extensions", def.Extensions)
	v.SetDefault("exclude", def.Exclude)
	v.SetDefault("vcs.enabled", def.VCS.Enabled)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName(".manifestgen")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
		// Optional; fall back to defaults when absent
		_ = v.ReadInConfig()
	}

	v.SetEnvPrefix("MANIFESTGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %v", err)
	}
	cfg.normalize()

	return &cfg, nil
}

// normalize lowercases extensions and guarantees leading dots so lookup is
// a straight map hit against filepath.Ext output.
func (c *Config) normalize() {
	for i, ext := range c.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		c.Extensions[i] = ext
	}
}

// ExtensionSet returns the eligible extensions as a lookup set.
func (c *Config) ExtensionSet() map[string]struct{} {
	set := make(map[string]struct{}, len(c.Extensions))
	for _, ext := range c.Extensions {
		if ext != "" {
			set[ext] = struct{}{}
		}
	}
	return set
}
