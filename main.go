package main

import (
	"context"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"sales/pkg/domain/service"
	"sales/pkg/infrastructure/console"
	"sales/pkg/infrastructure/event"
	"sales/pkg/infrastructure/memory"
	"sales/pkg/infrastructure/sqlite"
	"sales/seed"
	"sales/transport"
)

const shutdownTimeout = 10 * time.Second

func main() {
	app := &cli.App{
		Name:  appID,
		Usage: "in-memory sales management",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "storage", Usage: "repository backend: memory or sqlite"},
			&cli.StringFlag{Name: "seed", Usage: "JSON file with customers and products to register at startup"},
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "run the HTTP API",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "address", Usage: "listen address"},
				},
				Action: serve,
			},
			{
				Name:   "demo",
				Usage:  "record the reference sales and print their outcome",
				Action: demo,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Fatal("sales failed")
	}
}

func serve(c *cli.Context) error {
	cfg, err := parseConfig(c)
	if err != nil {
		return err
	}
	if err := setupLogging(cfg); err != nil {
		return err
	}

	return runServer(c.Context, cfg, os.Stdout)
}

// runServer registers the seed file, if any, before the API starts listening.
func runServer(ctx context.Context, cfg *config, out io.Writer) error {
	salesService, closeFn, err := newSalesService(cfg, out)
	if err != nil {
		return err
	}
	defer closeFn()

	if cfg.SeedFile != "" {
		if err := applySeedFile(cfg.SeedFile, salesService); err != nil {
			return err
		}
	}

	log.WithFields(log.Fields{"address": cfg.ServeAddress, "storage": cfg.Storage}).Info("Starting server")
	return listenAndServe(ctx, cfg.ServeAddress, transport.Router(salesService))
}

// listenAndServe blocks until ctx is done or a kill signal arrives, then shuts
// the server down. It returns nil on a clean shutdown.
func listenAndServe(ctx context.Context, address string, handler http.Handler) error {
	srv := &http.Server{Addr: address, Handler: handler}
	killSignalChan := getKillSignalChan()
	defer signal.Stop(killSignalChan)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return errors.Wrap(err, "listen")
		}
		return nil
	})
	g.Go(func() error {
		waitForKillSignalChan(ctx, killSignalChan)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func demo(c *cli.Context) error {
	cfg, err := parseConfig(c)
	if err != nil {
		return err
	}
	if err := setupLogging(cfg); err != nil {
		return err
	}

	salesService, closeFn, err := newSalesService(cfg, c.App.Writer)
	if err != nil {
		return err
	}
	defer closeFn()

	if cfg.SeedFile != "" {
		if err := applySeedFile(cfg.SeedFile, salesService); err != nil {
			return err
		}
	} else {
		seed.Demo().Apply(salesService)
	}

	runDemo(salesService)
	return nil
}

// runDemo records one sale with a missing product and one for an unknown
// customer. Both outcomes are printed by the reporter.
func runDemo(salesService service.SalesService) {
	_, _ = salesService.RecordSale(1, []int{1, 2, 99})
	_, _ = salesService.RecordSale(42, []int{1})
}

func newSalesService(cfg *config, out io.Writer) (service.SalesService, func(), error) {
	dispatcher := event.NewDispatcher(console.NewReporter(out))

	switch cfg.Storage {
	case storageSQLite:
		db, err := sqlite.Open()
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if err := db.Close(); err != nil {
				log.WithError(err).Error("failed to close database")
			}
		}
		return service.NewSalesService(
			sqlite.NewCustomerRepository(db),
			sqlite.NewProductRepository(db),
			sqlite.NewSaleRepository(db),
			dispatcher,
		), closeFn, nil
	default:
		return service.NewSalesService(
			memory.NewCustomerRepository(),
			memory.NewProductRepository(),
			memory.NewSaleRepository(),
			dispatcher,
		), func() {}, nil
	}
}

func applySeedFile(path string, salesService service.SalesService) error {
	data, err := seed.Load(path)
	if os.IsNotExist(err) {
		log.WithField("file", path).Warn("Seed file not found, starting with empty store.")
		return nil
	}
	if err != nil {
		return err
	}
	data.Apply(salesService)
	log.WithFields(log.Fields{
		"customers": len(data.Customers),
		"products":  len(data.Products),
	}).Info("Seed applied")
	return nil
}

func getKillSignalChan() chan os.Signal {
	osKillSignalChan := make(chan os.Signal, 1)
	signal.Notify(osKillSignalChan, os.Interrupt, syscall.SIGTERM)
	return osKillSignalChan
}

func waitForKillSignalChan(ctx context.Context, killSignalChan <-chan os.Signal) {
	select {
	case killSignal := <-killSignalChan:
		switch killSignal {
		case os.Interrupt:
			log.Info("Got SIGINT...")
		case syscall.SIGTERM:
			log.Info("Got SIGTERM...")
		}
	case <-ctx.Done():
	}
}
