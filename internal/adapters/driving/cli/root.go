// Package cli provides the geofind command line interface.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/geofind/internal/core/domain"
	"github.com/custodia-labs/geofind/internal/core/ports/driving"
	"github.com/custodia-labs/geofind/internal/logger"
)

// version is set at build time.
var version = "dev"

// Global flags.
var (
	verbose    bool
	configDir  string
	backendURL string
)

// ErrServicesNotConfigured is returned when a command runs without services.
var ErrServicesNotConfigured = errors.New("services not configured")

// Options carries the global flags to the service builder.
type Options struct {
	ConfigDir  string
	BackendURL string
	Verbose    bool
}

// ReloadFunc receives the settings after the config file changed on disk.
type ReloadFunc func(settings *domain.AppSettings, err error)

// Services are the driving ports the commands operate on.
type Services struct {
	// NewCoordinator creates a search coordinator bound to the backend.
	NewCoordinator func() driving.SearchCoordinator

	// NewViewSync creates the map follow policy for an interactive session.
	NewViewSync func() driving.ViewSync

	// Settings reads and writes the configuration.
	Settings driving.SettingsService

	// Watch starts live config reload. Optional.
	Watch func(ctx context.Context, onReload ReloadFunc) (stop func() error, err error)

	// ConfigDir is where the config and debug log live.
	ConfigDir string
}

// ServiceBuilder constructs services once the global flags are parsed.
type ServiceBuilder func(opts Options) (*Services, error)

var (
	appServices    *Services
	serviceBuilder ServiceBuilder
)

// SetServiceBuilder registers the function that wires services for each run.
func SetServiceBuilder(b ServiceBuilder) {
	serviceBuilder = b
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

var rootCmd = &cobra.Command{
	Use:   "geofind",
	Short: "Look up German locations from the terminal",
	Long: `geofind searches a location backend by postal code, city or state and shows
the matches on a list and a terminal map.

Run 'geofind tui' for the interactive interface or 'geofind search' for a
one-shot lookup.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)

		if serviceBuilder == nil {
			return nil
		}
		s, err := serviceBuilder(Options{
			ConfigDir:  configDir,
			BackendURL: backendURL,
			Verbose:    verbose,
		})
		if err != nil {
			return fmt.Errorf("init services: %w", err)
		}
		appServices = s
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "config directory (default ~/.geofind)")
	rootCmd.PersistentFlags().StringVar(&backendURL, "backend", "", "backend base URL for this run")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with ctx.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func requireServices() (*Services, error) {
	if appServices == nil {
		return nil, ErrServicesNotConfigured
	}
	return appServices, nil
}
