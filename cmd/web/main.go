package main

import (
	"fmt"
	"os"

	"github.com/de-tools/action-center/pkg/server"
	"github.com/de-tools/action-center/pkg/services/actioncenter"
	"github.com/de-tools/action-center/pkg/services/config"
	"github.com/de-tools/action-center/pkg/services/signals"
	"github.com/de-tools/action-center/pkg/store/duckdb"
	signalstore "github.com/de-tools/action-center/pkg/store/duckdb/signals"
	trackerstore "github.com/de-tools/action-center/pkg/store/duckdb/tracker"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the Action Center web server",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "action-center.yaml",
		"Path to the service config file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(_ *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := duckdb.NewDB(duckdb.Settings{
		DbPath: cfg.DBPath,
	})
	if err != nil {
		return fmt.Errorf("failed to create DuckDB instance: %w", err)
	}

	trackerStore, err := trackerstore.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create tracker store: %w", err)
	}
	snapshotStore, err := signalstore.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create signal snapshot store: %w", err)
	}

	logger.Info().Msgf("Configuration found at `%s` successfully loaded.", cfgPath)

	api := server.NewWebAPI(logger, server.Config{
		Addr:            cfg.Addr,
		ShutdownTimeout: cfg.ShutdownTimeout,
		Dependencies: server.Dependencies{
			Engine:   actioncenter.NewEngine(actioncenter.DefaultTables()),
			Provider: signals.NewStoreProvider(snapshotStore, trackerStore),
			Tracker:  trackerStore,
		},
	})

	return api.Start()
}
