// Package config loads docstamp's TOML configuration.
//
// Every setting has a default, so an absent file and an empty file behave
// the same. Unknown keys are rejected to catch typos early.
//
//	[assets]
//	slab = { primary = "/srv/fonts/RobotoSlab.ttf", fallback = "/srv/fonts/RobotoSlab-Subset.ttf" }
//	logo = { primary = "/srv/branding/logo.png" }
//
//	[render]
//	producer = "docstamp"
//	compress = true
//
//	[server]
//	addr = ":8080"
//	read_timeout = "10s"
//
//	[log]
//	level = "info"
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the complete configuration.
type Config struct {
	Assets Assets `toml:"assets"`
	Render Render `toml:"render"`
	Server Server `toml:"server"`
	Log    Log    `toml:"log"`
}

// Path names an asset file and an optional fallback tried when the primary
// cannot be read. An empty Path selects the embedded default.
type Path struct {
	Primary  string `toml:"primary"`
	Fallback string `toml:"fallback"`
}

// IsZero reports whether no file is configured.
func (p Path) IsZero() bool { return p.Primary == "" && p.Fallback == "" }

// Candidates returns the configured paths in the order they are tried.
func (p Path) Candidates() []string {
	var out []string
	for _, s := range []string{p.Primary, p.Fallback} {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Assets locates the fonts, logo and invoice layout.
type Assets struct {
	Slab     Path `toml:"slab"`
	SlabBold Path `toml:"slab_bold"`
	Mono     Path `toml:"mono"`
	Logo     Path `toml:"logo"`
	Template Path `toml:"template"`
}

// Render holds serializer settings.
type Render struct {
	Producer string `toml:"producer"`
	Compress bool   `toml:"compress"`
}

// Server holds HTTP settings.
type Server struct {
	Addr            string   `toml:"addr"`
	ReadTimeout     Duration `toml:"read_timeout"`
	WriteTimeout    Duration `toml:"write_timeout"`
	ShutdownTimeout Duration `toml:"shutdown_timeout"`
	MaxBodyBytes    int64    `toml:"max_body_bytes"`
}

// Log holds logging settings.
type Log struct {
	Level string `toml:"level"`
}

// Duration is a time.Duration written as a string such as "10s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Render: Render{
			Producer: "docstamp",
			Compress: true,
		},
		Server: Server{
			Addr:            ":8080",
			ReadTimeout:     Duration{10 * time.Second},
			WriteTimeout:    Duration{30 * time.Second},
			ShutdownTimeout: Duration{10 * time.Second},
			MaxBodyBytes:    1 << 20,
		},
		Log: Log{Level: "info"},
	}
}

// Load reads the file at path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return Parse(data)
}

// Parse decodes TOML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("config: unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("config: server.max_body_bytes must be positive")
	}
	for _, d := range []struct {
		name string
		v    Duration
	}{
		{"server.read_timeout", c.Server.ReadTimeout},
		{"server.write_timeout", c.Server.WriteTimeout},
		{"server.shutdown_timeout", c.Server.ShutdownTimeout},
	} {
		if d.v.Duration < 0 {
			return fmt.Errorf("config: %s must not be negative", d.name)
		}
	}
	return nil
}
