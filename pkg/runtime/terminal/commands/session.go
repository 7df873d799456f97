package commands

import (
	"fmt"
	"io"

	"github.com/de-tools/tzlab/pkg/services/config"
	"github.com/de-tools/tzlab/pkg/services/tasks"
	"github.com/de-tools/tzlab/pkg/zones"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Globals holds the values of the persistent root flags.
type Globals struct {
	ConfigPath string
	LogLevel   string
	Format     string
}

// Session is what every command needs once flags are parsed.
type Session struct {
	Settings *config.Settings
	Logger   zerolog.Logger
	Resolver *zones.Resolver
	Format   tasks.OutputFormat
}

// Open loads settings and builds the logger and the zone resolver.
func (g *Globals) Open(cmd *cobra.Command) (*Session, error) {
	format, err := tasks.ParseOutputFormat(g.Format)
	if err != nil {
		return nil, err
	}

	settings, err := config.LoadSettings(g.ConfigPath)
	if err != nil {
		return nil, err
	}

	levelName := settings.Log.Level
	if g.LogLevel != "" {
		levelName = g.LogLevel
	}
	logger, err := NewLogger(cmd.ErrOrStderr(), levelName)
	if err != nil {
		return nil, err
	}

	catalog, err := loadCatalog(settings.Zones.Catalog)
	if err != nil {
		return nil, err
	}

	return &Session{
		Settings: settings,
		Logger:   logger,
		Resolver: zones.NewResolver(zones.ResolverConfig{
			Catalog:     catalog,
			ZoneinfoDir: settings.Zones.ZoneinfoDir,
			CacheSize:   settings.Zones.CacheSize,
			Year:        settings.Adjustments.Year,
		}),
		Format: format,
	}, nil
}

// NewLogger builds a console logger writing to w at the named level.
func NewLogger(w io.Writer, levelName string) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(levelName)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", levelName, err)
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w}).
		Level(level).
		With().
		Timestamp().
		Logger(), nil
}

func loadCatalog(path string) (zones.Catalog, error) {
	if path == "" {
		return zones.DefaultCatalog()
	}
	catalog, err := zones.LoadCatalog(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load zone catalog %s: %w", path, err)
	}
	return catalog, nil
}
