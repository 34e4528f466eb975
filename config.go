package asciiart

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration for an interactive
// session.
type Config struct {
	// Charset is the initial character set, one code point per element of
	// the string.
	Charset string `yaml:"charset"`

	// Resolution is the initial number of character blocks per row. Must be
	// a power of two.
	Resolution int `yaml:"resolution"`

	// Output selects the initial output method: "console" or "html".
	Output string `yaml:"output"`

	// HTMLPath is the file the HTML writer targets.
	HTMLPath string `yaml:"html_path"`

	// HTMLFont is the font family used by the HTML writer.
	HTMLFont string `yaml:"html_font"`

	// FontPath optionally points at a TrueType font used to rasterize glyph
	// masks. When empty the embedded 7x13 face is used.
	FontPath string `yaml:"font_path"`

	// FontSize is the point size used when rasterizing a TrueType font.
	FontSize float64 `yaml:"font_size"`
}

// Default values for optional configuration fields.
const (
	DefaultCharset    = "0123456789"
	DefaultResolution = 2
	DefaultOutput     = OutputConsole
	DefaultHTMLPath   = "out.html"
	DefaultHTMLFont   = "Courier New"
	DefaultFontSize   = 8
)

// Recognized output methods.
const (
	OutputConsole = "console"
	OutputHTML    = "html"
)

// LoadConfig reads and parses the configuration from the specified file
// path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DefaultConfig returns a configuration with every field at its default.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults sets default values for optional configuration fields.
func (c *Config) applyDefaults() {
	if c.Charset == "" {
		c.Charset = DefaultCharset
	}
	if c.Resolution == 0 {
		c.Resolution = DefaultResolution
	}
	if c.Output == "" {
		c.Output = DefaultOutput
	}
	if c.HTMLPath == "" {
		c.HTMLPath = DefaultHTMLPath
	}
	if c.HTMLFont == "" {
		c.HTMLFont = DefaultHTMLFont
	}
	if c.FontSize == 0 {
		c.FontSize = DefaultFontSize
	}
}

// validate checks that all configuration fields are usable.
func (c *Config) validate() error {
	if !isPowerOfTwo(c.Resolution) {
		return fmt.Errorf("resolution must be a power of two, got %d", c.Resolution)
	}
	if c.Output != OutputConsole && c.Output != OutputHTML {
		return fmt.Errorf("output must be %q or %q, got %q", OutputConsole, OutputHTML, c.Output)
	}
	if c.FontSize < 0 {
		return fmt.Errorf("font_size must be positive, got %v", c.FontSize)
	}
	return nil
}
