// Command geofind looks up German locations by postal code, city or state.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/geofind/internal/adapters/driven/backend/httpapi"
	"github.com/custodia-labs/geofind/internal/adapters/driven/config/file"
	"github.com/custodia-labs/geofind/internal/adapters/driving/cli"
	"github.com/custodia-labs/geofind/internal/core/domain"
	"github.com/custodia-labs/geofind/internal/core/ports/driving"
	"github.com/custodia-labs/geofind/internal/core/services"
	"github.com/custodia-labs/geofind/internal/logger"
)

// version is set with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetVersion(version)
	cli.SetServiceBuilder(buildServices)

	if err := cli.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// buildServices wires the config store, backend client and core services.
func buildServices(opts cli.Options) (*cli.Services, error) {
	dir := opts.ConfigDir
	if dir == "" {
		d, err := file.DefaultConfigDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}

	store, err := file.NewConfigStore(dir)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	settingsService := services.NewSettingsService(store)

	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	backendSettings := withOverride(settings.Backend, opts.BackendURL)
	client, err := httpapi.NewClient(httpapi.ConfigFromSettings(backendSettings))
	if err != nil {
		return nil, fmt.Errorf("backend: %w", err)
	}
	logger.Debug("Config %s, backend %s", store.Path(), client.BaseURL())

	return &cli.Services{
		NewCoordinator: func() driving.SearchCoordinator {
			return services.NewSearchCoordinator(client)
		},
		NewViewSync: func() driving.ViewSync {
			return services.NewViewSync(nil)
		},
		Settings:  settingsService,
		ConfigDir: dir,
		Watch: func(ctx context.Context, onReload cli.ReloadFunc) (func() error, error) {
			watcher := file.NewWatcher(store, func(loadErr error) {
				reloaded, err := applyReload(settingsService, client, opts.BackendURL, loadErr)
				onReload(reloaded, err)
			})
			if err := watcher.Start(ctx); err != nil {
				return nil, err
			}
			return watcher.Close, nil
		},
	}, nil
}

// applyReload re-reads settings after the config file changed and pushes
// the backend section into the live client.
func applyReload(
	settingsService driving.SettingsService,
	client *httpapi.Client,
	override string,
	loadErr error,
) (*domain.AppSettings, error) {
	if loadErr != nil {
		return nil, loadErr
	}

	settings, err := settingsService.Get()
	if err != nil {
		return nil, err
	}
	if err := client.Reconfigure(withOverride(settings.Backend, override)); err != nil {
		return settings, fmt.Errorf("apply backend settings: %w", err)
	}
	return settings, nil
}

func withOverride(b domain.BackendSettings, baseURL string) domain.BackendSettings {
	if baseURL != "" {
		b.BaseURL = baseURL
	}
	return b
}
