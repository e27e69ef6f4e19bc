package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"dvdenrich/internal/config"
	"dvdenrich/internal/logging"
)

type commandContext struct {
	configFlag    *string
	logLevelFlag  *string
	logFormatFlag *string
	logFileFlag   *string

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error
}

func newCommandContext(configFlag, logLevelFlag, logFormatFlag, logFileFlag *string) *commandContext {
	return &commandContext{
		configFlag:    configFlag,
		logLevelFlag:  logLevelFlag,
		logFormatFlag: logFormatFlag,
		logFileFlag:   logFileFlag,
	}
}

// ensureConfig loads the configuration once and applies the logging flag
// overrides on top of it.
func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, err := config.Load(path)
		c.configPath = resolved
		if err != nil {
			c.configErr = err
			return
		}
		if c.logLevelFlag != nil && strings.TrimSpace(*c.logLevelFlag) != "" {
			cfg.Logging.Level = strings.ToLower(strings.TrimSpace(*c.logLevelFlag))
		}
		if c.logFormatFlag != nil && strings.TrimSpace(*c.logFormatFlag) != "" {
			format := strings.ToLower(strings.TrimSpace(*c.logFormatFlag))
			if format != "console" && format != "json" {
				c.configErr = usageError(fmt.Sprintf("--log-format: unsupported value %q", *c.logFormatFlag), nil)
				return
			}
			cfg.Logging.Format = format
		}
		if c.logFileFlag != nil && strings.TrimSpace(*c.logFileFlag) != "" {
			path, err := config.ExpandPath(strings.TrimSpace(*c.logFileFlag))
			if err != nil {
				c.configErr = usageError("--log-file", err)
				return
			}
			cfg.Logging.File = path
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// logger builds the run logger writing to the command's output streams.
func (c *commandContext) logger(cmd *cobra.Command) (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return logging.NewFromConfig(cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

func (c *commandContext) consoleOutput() bool {
	cfg, err := c.ensureConfig()
	return err == nil && cfg.Logging.Format != "json"
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func writeLine(w io.Writer, line string) {
	_, _ = io.WriteString(w, line+"\n")
}
