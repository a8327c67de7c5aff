package term

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config tunes the event reader.
type Config struct {
	// How long to wait for the rest of a partially received escape sequence
	// in one wait. Modern terminal emulators send escape sequences very fast,
	// so 10ms is more than sufficient. SSH connections on a slow link might
	// need more.
	EscapeTimeout time.Duration `yaml:"escape-timeout"`
	// Number of consecutive timed-out waits after which a partial escape
	// sequence is resolved to its best single-key interpretation.
	MaxIncompletePolls int `yaml:"max-incomplete-polls"`
	// Size of the buffer used for each read from the terminal.
	ReadBufferSize int `yaml:"read-buffer-size"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		EscapeTimeout:      10 * time.Millisecond,
		MaxIncompletePolls: 3,
		ReadBufferSize:     1024,
	}
}

// LoadConfig reads a YAML document from r and overlays it on the default
// configuration. An empty document yields the default configuration. Unknown
// keys are rejected.
func LoadConfig(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfigFile is like LoadConfig, but reads the named file.
func LoadConfigFile(name string) (*Config, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadConfig(f)
}

// Validate checks that all fields have usable values.
func (cfg *Config) Validate() error {
	switch {
	case cfg.EscapeTimeout <= 0:
		return fmt.Errorf("escape-timeout must be positive, got %v", cfg.EscapeTimeout)
	case cfg.MaxIncompletePolls < 1:
		return fmt.Errorf("max-incomplete-polls must be at least 1, got %d", cfg.MaxIncompletePolls)
	case cfg.ReadBufferSize < 1:
		return fmt.Errorf("read-buffer-size must be at least 1, got %d", cfg.ReadBufferSize)
	}
	return nil
}
