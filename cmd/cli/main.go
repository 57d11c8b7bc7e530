package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/embario/jukeclient/internal/buildinfo"
	"github.com/embario/jukeclient/internal/client/appmeta"
	"github.com/embario/jukeclient/internal/client/cli"
	"github.com/embario/jukeclient/internal/client/client"
	"github.com/embario/jukeclient/internal/client/config"
	"github.com/embario/jukeclient/internal/client/credentials"
	"github.com/embario/jukeclient/internal/client/services"
	"github.com/embario/jukeclient/internal/filex"
	"github.com/embario/jukeclient/internal/logging"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, config.LoadConfig()); err != nil {
		log.Fatalf("%v", err)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(os.Stderr, logging.Options{
		Backend: cfg.LogBackend,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})
	if err != nil {
		return err
	}
	logger = logger.With("app", cfg.App)

	if err := filex.EnsureParentDir(cfg.DatabasePath); err != nil {
		return err
	}
	db, err := client.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	exec, err := client.NewHTTPClient(cfg.APIBaseURL, cfg.RequestTimeout,
		client.WithUserAgent(buildinfo.UserAgent(cfg.App)),
		client.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	creds := credentials.NewStore(db, cfg.App, logger)
	meta := appmeta.NewStore(db, cfg.App)

	auth := services.NewAuthService(exec, creds, services.AuthOptions{
		RegistrationDisabled: cfg.RegistrationDisabled,
		Scoped:               []services.IdentityScoped{meta},
		Logger:               logger,
	})

	app := cli.NewApp(cli.Deps{
		Auth:           auth,
		Catalog:        services.NewCatalogService(exec, auth, logger),
		Profiles:       services.NewProfileService(exec, creds, meta, logger),
		Logger:         logger,
		SearchDebounce: cfg.SearchDebounce,
	})

	logger.Info(ctx, "starting", "api", exec.BaseURL(), "database", cfg.DatabasePath)
	return app.Run(ctx)
}
