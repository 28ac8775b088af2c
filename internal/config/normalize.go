package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeLogging()
	c.normalizeReader()
	return c.normalizeCatalog()
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		if value, ok := os.LookupEnv(LogLevelEnv); ok {
			c.Logging.Level = strings.ToLower(strings.TrimSpace(value))
		}
	}
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.File = strings.TrimSpace(c.Logging.File)
	if c.Logging.File != "" {
		if expanded, err := expandPath(c.Logging.File); err == nil {
			c.Logging.File = expanded
		}
	}
}

func (c *Config) normalizeReader() {
	c.Reader.NamespacePolicy = strings.ToLower(strings.TrimSpace(c.Reader.NamespacePolicy))
	if c.Reader.NamespacePolicy == "" {
		c.Reader.NamespacePolicy = defaultNamespacePolicy
	}
	if c.Reader.MediaWidth == 0 {
		c.Reader.MediaWidth = defaultMediaWidth
	}
	if c.Reader.MediaHeight == 0 {
		c.Reader.MediaHeight = defaultMediaHeight
	}
}

func (c *Config) normalizeCatalog() error {
	if strings.TrimSpace(c.Catalog.Path) == "" {
		c.Catalog.Path = defaultCatalogPath
	}
	var err error
	if c.Catalog.Path, err = expandPath(strings.TrimSpace(c.Catalog.Path)); err != nil {
		return fmt.Errorf("catalog.path: %w", err)
	}
	return nil
}
