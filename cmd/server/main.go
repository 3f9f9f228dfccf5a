package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/go-repo-pulse/internal/app"
	"github.com/MKhiriev/go-repo-pulse/internal/config"
	"github.com/MKhiriev/go-repo-pulse/internal/handler"
	"github.com/MKhiriev/go-repo-pulse/internal/logger"
	"github.com/MKhiriev/go-repo-pulse/internal/metrics"
	"github.com/MKhiriev/go-repo-pulse/internal/server"
	"github.com/MKhiriev/go-repo-pulse/internal/service"
	"github.com/MKhiriev/go-repo-pulse/internal/store"
	"github.com/MKhiriev/go-repo-pulse/internal/workers"
	"github.com/MKhiriev/go-repo-pulse/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	build := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	app.PrintBuildInfo(os.Stdout, build)

	if err := run(build); err != nil {
		fmt.Fprintf(os.Stderr, "go-repo-pulse-server: %v\n", err)
		os.Exit(1)
	}
}

func run(build models.AppBuildInfo) error {
	rt, err := app.Init("go-repo-pulse-server", os.Args[1:], build)
	if err != nil {
		return err
	}
	log := rt.Logger
	cfg := rt.Config()

	log.Info().
		Str("environment", cfg.App.Environment).
		Str("http_address", cfg.Server.HTTPAddress).
		Str("grpc_address", cfg.Server.GRPCAddress).
		Dur("flow_interval", cfg.Flow.Interval).
		Msg("received configs")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("error creating storages: %w", err)
	}
	defer storages.Close()

	github, err := rt.NewGitHubAdapter()
	if err != nil {
		return err
	}
	defer github.Close()

	services, err := service.NewServices(github, storages, cfg, build, rt.Recorder, log)
	if err != nil {
		return fmt.Errorf("error creating services: %w", err)
	}

	job := service.NewFlowJob(services.FlowService, rt.Provider, log)

	handlers, err := handler.NewHandlers(services, job, metrics.HTTPHandler(rt.Registry), cfg.Server, log)
	if err != nil {
		return fmt.Errorf("error creating handlers: %w", err)
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		return fmt.Errorf("error creating server: %w", err)
	}

	rt.Provider.OnReload(func(c *config.StructuredConfig) {
		targets, _ := c.Flow.Targets()
		log.Info().
			Dur("flow_interval", c.Flow.Interval).
			Int("targets", len(targets)).
			Msg("configuration reloaded")
	})

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.RunServer(gCtx) })
	g.Go(func() error { return workers.NewWorkers(job).Run(gCtx) })
	g.Go(func() error {
		reloadOnHangup(gCtx, rt.Provider, log)
		return nil
	})

	return g.Wait()
}

// reloadOnHangup reloads the configuration on every SIGHUP until ctx is done.
// Listen addresses and the storage DSN keep their startup values; the flow
// job picks up new targets and interval on its next tick.
func reloadOnHangup(ctx context.Context, provider *config.Provider, log *logger.Logger) {
	hangup := make(chan os.Signal, 1)
	signal.Notify(hangup, syscall.SIGHUP)
	defer signal.Stop(hangup)

	for {
		select {
		case <-ctx.Done():
			return
		case <-hangup:
			if err := provider.Reload(); err != nil {
				log.Err(err).Msg("keeping the previous configuration")
			}
		}
	}
}
