package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/DRSN-tech/solar-store/internal/app"
	config "github.com/DRSN-tech/solar-store/internal/cfg"
	"github.com/DRSN-tech/solar-store/pkg/logger"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run HTTP and gRPC servers",
		Long:  `Loads the catalog seed, starts the storefront and serves the HTTP API, metrics and gRPC health until SIGINT/SIGTERM.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.NewSlogLogger()

			cfg, err := config.Load(log)
			if err != nil {
				log.Errorf(err, "failed to load config")
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			application, err := app.NewApp(ctx, cfg, log)
			if err != nil {
				log.Errorf(err, "failed to initialize app")
				return err
			}

			return application.Run(ctx)
		},
	}
}
