// Command secrets upserts GitHub Actions secrets of the configured target
// repository.
//
// Usage:
//
//	secrets [flags]             run every registered action
//	secrets [flags] list        print the registered actions
//	secrets [flags] action...   run the named actions
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-repo-pulse/internal/app"
	"github.com/MKhiriev/go-repo-pulse/internal/service"
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
		fmt.Fprintf(os.Stderr, "go-repo-pulse-secrets: %v\n", err)
		os.Exit(1)
	}
}

func run(build models.AppBuildInfo) error {
	rt, err := app.Init("go-repo-pulse-secrets", os.Args[1:], build)
	if err != nil {
		return err
	}
	log := rt.Logger
	cfg := rt.Config()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	github, err := rt.NewGitHubAdapter()
	if err != nil {
		return err
	}
	defer github.Close()

	services, err := service.NewServices(github, nil, cfg, build, rt.Recorder, log)
	if err != nil {
		return fmt.Errorf("error creating services: %w", err)
	}
	return dispatch(ctx, services.SecretsService, cfg.Args, os.Stdout)
}

// dispatch lists the actions, runs all of them or runs the named ones,
// depending on args, and reports every result to w.
func dispatch(ctx context.Context, secrets service.SecretsService, args []string, w io.Writer) error {
	switch {
	case len(args) == 1 && args[0] == "list":
		for _, name := range secrets.Names() {
			fmt.Fprintln(w, name)
		}
		return nil
	case len(args) == 0:
		results, err := secrets.RunAll(ctx)
		report(w, results)
		return err
	}

	var errs []error
	for _, name := range args {
		res, err := secrets.Run(ctx, name)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		report(w, []models.SecretActionResult{res})
	}
	return errors.Join(errs...)
}

func report(w io.Writer, results []models.SecretActionResult) {
	for _, r := range results {
		state := "upserted"
		if r.Skipped {
			state = "skipped"
		}
		fmt.Fprintf(w, "%-28s %-22s %s\n", r.Action, r.Secret, state)
	}
}
