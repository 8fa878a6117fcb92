package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mileusna/crontab"
	"github.com/spf13/cobra"
	"vowboard.io/planner-gateway/app/domain/cron"
	"vowboard.io/planner-gateway/app/domain/healthcheck"
	"vowboard.io/planner-gateway/app/domain/preference"
	"vowboard.io/planner-gateway/app/domain/schema"
	"vowboard.io/planner-gateway/app/infrastructure/cache"
	"vowboard.io/planner-gateway/app/infrastructure/database"
	_ "vowboard.io/planner-gateway/app/infrastructure/database/dbschema"
	"vowboard.io/planner-gateway/app/interfaces/http"
	"vowboard.io/planner-gateway/app/utils/logger"
	"vowboard.io/planner-gateway/config"
	"vowboard.io/planner-gateway/config/environment_variables"
)

type Application struct {
	HttpServer   *http.HttpServer
	CronService  *cron.CronService
	Healthcheck  *healthcheck.HealthcheckCrontabService
	NoteSaver    *preference.NoteSaver
	Capabilities *schema.CapabilityService
	Cache        cache.CacheService
}

// Start runs the schedulers and the HTTP server until ctx is cancelled, then
// writes out debounced notes before returning.
func (application *Application) Start(ctx context.Context) error {
	ctab := crontab.New()
	application.CronService.Start(ctx, ctab)
	application.Healthcheck.Start(ctx, ctab)
	defer func() {
		ctab.Shutdown()
		application.NoteSaver.Flush()
		if err := application.Cache.Close(); err != nil {
			logger.GetLogger().WithError(err).Warn("cache close failed")
		}
	}()
	return application.HttpServer.Run(ctx)
}

func init() {
	environment_variables.EnvironmentVariables.LoadFromEnv()
	logger.SetLevel(environment_variables.EnvironmentVariables.LOG_LEVEL)
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "planner-gateway",
		Short:         "Wedding planning dashboard gateway",
		Version:       config.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and background jobs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			application, err := CreateApplication()
			if err != nil {
				return err
			}
			return application.Start(ctx)
		},
	}
	root.AddCommand(serve)
	root.AddCommand(&cobra.Command{
		Use:   "check-schema",
		Short: "Report which collections can store a manual order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			application, err := CreateApplication()
			if err != nil {
				return err
			}
			application.Capabilities.Refresh(cmd.Context())
			out, err := json.MarshalIndent(application.Capabilities.Snapshot(), "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Apply local preference store migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := database.NewDB()
			if err != nil {
				return err
			}
			version, err := database.NewDBMigrator(db).CurrentVersion(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "preference store at version %d\n", version)
			return nil
		},
	})
	// plain invocation serves
	root.RunE = serve.RunE
	return root
}

//go:generate swag init --dir ../../ --generalInfo cmd/server/server.go --output ../../docs --parseDependency

// @title Planner Gateway API
// @version 1.0
// @description Wedding planning dashboard gateway.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		logger.GetLogger().WithError(err).Error("planner-gateway exited")
		os.Exit(1)
	}
}
