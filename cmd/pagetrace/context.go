package main

import (
	"log/slog"
	"os"
	"strings"
	"sync"

	"pagetrace/internal/config"
	"pagetrace/internal/logging"
	"pagetrace/internal/store"
)

// defaultConfigPath is used when --config is not given.
const defaultConfigPath = "pagetrace.yaml"

type commandContext struct {
	configFlag *string

	once    sync.Once
	cfg     *config.Config
	logger  *slog.Logger
	loadErr error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) configPath() string {
	if c.configFlag != nil {
		if path := strings.TrimSpace(*c.configFlag); path != "" {
			return path
		}
	}
	return defaultConfigPath
}

func (c *commandContext) ensure() (*config.Config, *slog.Logger, error) {
	c.once.Do(func() {
		cfg, err := config.Load(c.configPath())
		if err != nil {
			c.loadErr = err
			return
		}
		logger, err := logging.New(logging.Options{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
			Writer: os.Stderr,
		})
		if err != nil {
			c.loadErr = err
			return
		}
		c.cfg = cfg
		c.logger = logger
	})
	return c.cfg, c.logger, c.loadErr
}

// withStore loads config, opens the database and hands both to fn.
func (c *commandContext) withStore(fn func(*config.Config, *slog.Logger, *store.Store) error) error {
	cfg, logger, err := c.ensure()
	if err != nil {
		return err
	}
	st, err := store.Open(cfg.Paths.DBPath)
	if err != nil {
		return err
	}
	defer st.Close()
	return fn(cfg, logger, st)
}
