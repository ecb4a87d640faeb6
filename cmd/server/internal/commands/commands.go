package commands

import (
	"log/slog"

	"moncomptepro/internal/platform/config"
	"moncomptepro/internal/platform/logger"
)

type Globals struct {
	ConfigPath string
	Debug      bool
	Version    string
}

func (g *Globals) load() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(g.ConfigPath)
	if err != nil {
		return nil, nil, err
	}
	if g.Debug {
		cfg.Log.Level = "debug"
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(log)
	return cfg, log, nil
}
