// Command flow collects the statistics of the configured repositories once:
// stargazers and the number of contributors of every target.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-repo-pulse/internal/app"
	"github.com/MKhiriev/go-repo-pulse/internal/service"
	"github.com/MKhiriev/go-repo-pulse/internal/store"
	"github.com/MKhiriev/go-repo-pulse/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	build := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)

	if err := run(build); err != nil {
		fmt.Fprintf(os.Stderr, "go-repo-pulse-flow: %v\n", err)
		os.Exit(1)
	}
}

func run(build models.AppBuildInfo) error {
	rt, err := app.Init("go-repo-pulse-flow", os.Args[1:], build)
	if err != nil {
		return err
	}
	log := rt.Logger
	cfg := rt.Config()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	targets, err := cfg.Flow.Targets()
	if err != nil {
		return err
	}

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

	runs, err := services.FlowService.RunAll(ctx, targets)
	for _, r := range runs {
		log.Info().
			Str("run_id", r.ID).
			Str("repository", r.Target().String()).
			Str("status", string(r.Status)).
			Int("stargazers", r.Stargazers).
			Int("contributors", r.Contributors).
			Dur("duration", r.Duration()).
			Msg("flow run finished")
	}
	return err
}
