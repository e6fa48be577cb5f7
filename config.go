package main

import (
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

const appID = "sales"

const (
	storageMemory = "memory"
	storageSQLite = "sqlite"
)

type config struct {
	ServeAddress string `envconfig:"SERVE_ADDRESS" default:":8080"`
	Storage      string `envconfig:"STORAGE" default:"memory"`
	SeedFile     string `envconfig:"SEED_FILE"`
	LogFormat    string `envconfig:"LOG_FORMAT" default:"text"`
	LogLevel     string `envconfig:"LOG_LEVEL" default:"info"`
}

// parseConfig reads SALES_* variables; flags given on the command line win.
func parseConfig(c *cli.Context) (*config, error) {
	var cfg config
	if err := envconfig.Process(appID, &cfg); err != nil {
		return nil, errors.Wrap(err, "parse environment")
	}

	if c.IsSet("storage") {
		cfg.Storage = c.String("storage")
	}
	if c.IsSet("seed") {
		cfg.SeedFile = c.String("seed")
	}
	if c.IsSet("address") {
		cfg.ServeAddress = c.String("address")
	}

	switch cfg.Storage {
	case storageMemory, storageSQLite:
	default:
		return nil, errors.Errorf("unknown storage %q", cfg.Storage)
	}
	return &cfg, nil
}

func setupLogging(cfg *config) error {
	if cfg.LogFormat == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return errors.Wrap(err, "parse log level")
	}
	log.SetLevel(level)
	return nil
}
