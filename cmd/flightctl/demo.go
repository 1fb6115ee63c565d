package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"flightdesk-service/internal/infrastructure/config"
	"flightdesk-service/internal/infrastructure/sinks"
	"flightdesk-service/internal/usecase"
	"flightdesk-service/pkg/logger"
	"flightdesk-service/templates"
)

var demoLogFile string

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Replay the flight management demonstration",
	Long: `Demo inserts, updates and deletes flights in the primary and secondary
registries, then prints the union and symmetric difference.

Every change is appended to the action log and to any other sink enabled
in the environment (MONGODB_DSN, POSTGRES_DSN, REDIS_ADDR, AMQP_URL).

Examples:
  # Write actions to ./logfile.txt
  flightctl demo

  # Write actions somewhere else
  flightctl demo --log-file /tmp/flights.log`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("log-file") {
			cfg.ActionLogFile = demoLogFile
		}

		log := logger.NewLoggerWithLevel(cfg.LogLevel)
		defer log.Sync()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		dispatcher := usecase.NewEventDispatcher(cfg.SinkTimeout, log, nil)
		closeSinks := sinks.Register(ctx, cfg, dispatcher, log)
		defer closeSinks(context.Background())

		desk := usecase.NewFlightDesk(
			[]string{usecase.PrimaryRegistry, usecase.SecondaryRegistry},
			dispatcher,
			log,
			nil,
		)

		renderer := templates.NewFlightTableRenderer(cmd.OutOrStdout(), dispatcher)
		return usecase.NewDemoScenario(desk, renderer, log).Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
	demoCmd.Flags().StringVar(&demoLogFile, "log-file", "logfile.txt", "Append-only action log (empty disables)")
}
