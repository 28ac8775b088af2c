package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateReader(); err != nil {
		return err
	}
	return c.validateCatalog()
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (want console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

func (c *Config) validateReader() error {
	switch c.Reader.NamespacePolicy {
	case "per_track", "last_track":
	default:
		return fmt.Errorf("reader.namespace_policy: unsupported value %q (want per_track or last_track)", c.Reader.NamespacePolicy)
	}
	if c.Reader.MediaWidth == 0 || c.Reader.MediaHeight == 0 {
		return errors.New("reader.media_width and reader.media_height must be positive")
	}
	return nil
}

func (c *Config) validateCatalog() error {
	if c.Catalog.Enabled && strings.TrimSpace(c.Catalog.Path) == "" {
		return errors.New("catalog.path must be set when the catalog is enabled")
	}
	return nil
}
