package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"prproj/internal/config"
	"prproj/internal/fileutil"
	"prproj/internal/logging"
	"prproj/internal/media"
	"prproj/internal/premiere"
)

type globalFlags struct {
	config    string
	logLevel  string
	logFormat string
}

type commandContext struct {
	flags *globalFlags

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(flags *globalFlags) *commandContext {
	return &commandContext{flags: flags}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(strings.TrimSpace(c.flags.config))
		if err != nil {
			c.configErr = err
			return
		}
		if level := strings.TrimSpace(c.flags.logLevel); level != "" {
			cfg.Logging.Level = strings.ToLower(level)
		}
		if format := strings.TrimSpace(c.flags.logFormat); format != "" {
			cfg.Logging.Format = strings.ToLower(format)
		}
		if err := cfg.Validate(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

func (c *commandContext) readerOptions() ([]premiere.Option, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	policy, err := premiere.ParseNamespacePolicy(cfg.Reader.NamespacePolicy)
	if err != nil {
		return nil, err
	}
	return []premiere.Option{
		premiere.WithLogger(logger),
		premiere.WithNamespacePolicy(policy),
		premiere.WithMediaSize(media.Size{Width: cfg.Reader.MediaWidth, Height: cfg.Reader.MediaHeight}),
	}, nil
}

// loadedProject is a resolved project together with the file facts the
// catalog records.
type loadedProject struct {
	path    string
	digest  string
	size    int64
	project *premiere.Project
}

func (c *commandContext) loadProject(path string) (*loadedProject, error) {
	opts, err := c.readerOptions()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read project: %w", err)
	}
	project, err := premiere.Decode(data, opts...)
	if err != nil {
		logging.ErrorWithContext(c.logger, "project read failed", "project_read_failed",
			logging.String(logging.FieldPath, path),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "the file may be truncated or not a Premiere project"),
		)
		return nil, fmt.Errorf("read project %s: %w", path, err)
	}
	return &loadedProject{
		path:    path,
		digest:  fileutil.DigestBytes(data),
		size:    int64(len(data)),
		project: project,
	}, nil
}

func (l *loadedProject) sequence(id uint32) (*premiere.Sequence, error) {
	seq, ok := l.project.Sequence(id)
	if !ok {
		return nil, fmt.Errorf("sequence %d not found in %s", id, l.path)
	}
	return seq, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
