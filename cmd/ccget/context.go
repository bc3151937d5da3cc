package main

import (
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"ccget/internal/config"
	"ccget/internal/logging"
)

// annotationSkipConfig marks commands that must run without a loaded
// configuration, such as "config init".
const annotationSkipConfig = "skipConfigLoad"

// commandContext carries state shared by every subcommand. Configuration is
// loaded once, on first use, regardless of how many commands ask for it.
type commandContext struct {
	configFlag   string
	logLevelFlag string

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext() *commandContext {
	return &commandContext{}
}

func (c *commandContext) ensureConfig() error {
	c.configOnce.Do(func() {
		cfg, path, _, err := config.Load(c.configFlag)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		if level := strings.TrimSpace(c.logLevelFlag); level != "" {
			cfg.Logging.Level = level
		}
		c.config = cfg
		c.configPath = path
	})
	return c.configErr
}

func (c *commandContext) configValue() (*config.Config, error) {
	if err := c.ensureConfig(); err != nil {
		return nil, err
	}
	return c.config, nil
}

func (c *commandContext) configPathValue() string {
	return c.configPath
}

// commandLogger returns the shared CLI logger. Log records go to the log
// file only; stdout and stderr are reserved for command output.
func (c *commandContext) commandLogger() (*slog.Logger, error) {
	cfg, err := c.configValue()
	if err != nil {
		return nil, err
	}
	c.loggerOnce.Do(func() {
		if cfg.Paths.LogDir == "" {
			c.logger = logging.NewNop()
			return
		}
		logPath := filepath.Join(cfg.Paths.LogDir, "ccget.log")
		logger, err := logging.New(logging.Options{
			Level:            cfg.Logging.Level,
			Format:           cfg.Logging.Format,
			OutputPaths:      []string{logPath},
			ErrorOutputPaths: []string{logPath},
		})
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger = logger
	})
	if c.loggerErr != nil {
		return nil, c.loggerErr
	}
	return c.logger, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for current := cmd; current != nil; current = current.Parent() {
		if current.Annotations[annotationSkipConfig] == "true" {
			return true
		}
	}
	return false
}
