package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/de-tools/tzlab/pkg/server"
	"github.com/de-tools/tzlab/pkg/services/config"
	"github.com/de-tools/tzlab/pkg/services/tasks"
	"github.com/de-tools/tzlab/pkg/zones"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the time zone inspector web server",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "", "Path to the settings file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn().Err(err).Msg("failed to load .env file")
	}

	settings, err := config.LoadSettings(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	level, err := zerolog.ParseLevel(settings.Log.Level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	logger = logger.Level(level)

	catalog, err := zones.DefaultCatalog()
	if settings.Zones.Catalog != "" {
		catalog, err = zones.LoadCatalog(settings.Zones.Catalog)
	}
	if err != nil {
		return fmt.Errorf("failed to load zone catalog: %w", err)
	}

	resolver := zones.NewResolver(zones.ResolverConfig{
		Catalog:     catalog,
		ZoneinfoDir: settings.Zones.ZoneinfoDir,
		CacheSize:   settings.Zones.CacheSize,
		Year:        settings.Adjustments.Year,
	})
	runner := tasks.NewRunner(tasks.Config{
		Settings: settings,
		Resolver: resolver,
	})

	if cfgPath != "" {
		logger.Info().Msgf("Configuration found at `%s` successfully loaded.", cfgPath)
	}

	webAPI := server.NewWebAPI(logger, server.Config{
		Addr:            settings.Server.Addr(),
		ShutdownTimeout: settings.Server.ShutdownTimeout,
		Dependencies: server.Dependencies{
			Reports:  runner,
			Resolver: resolver,
		},
	})

	return webAPI.Start()
}
