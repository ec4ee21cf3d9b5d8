package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/geofind/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/geofind/internal/core/ports/driven"
	"github.com/custodia-labs/geofind/internal/core/ports/driving"
	"github.com/custodia-labs/geofind/internal/core/services"
)

// mockBackend implements driven.LocationBackend for CLI tests.
type mockBackend struct {
	SearchFunc func(ctx context.Context, req driven.SearchRequest) (*driven.SearchPayload, error)
	requests   []driven.SearchRequest
}

func (m *mockBackend) Search(ctx context.Context, req driven.SearchRequest) (*driven.SearchPayload, error) {
	m.requests = append(m.requests, req)
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, req)
	}
	return &driven.SearchPayload{
		Markers: []any{
			map[string]any{"id": "sg", "lat": 51.17, "lon": 7.08, "name": "Solingen", "postalCode": "42119", "state": "NRW"},
			map[string]any{"id": "w", "lat": 51.26, "lon": 7.15, "name": "Wuppertal", "postalCode": "42103", "state": "NRW"},
		},
		Info: map[string]any{
			"title":     "42119",
			"summary":   "Postal code in Solingen.",
			"thumbnail": "https://img.example/sg.png",
			"url":       "https://de.wikipedia.org/wiki/Solingen",
		},
		Count: 2,
	}, nil
}

// setupTestServices installs services backed by in-memory adapters.
// It returns the backend and a cleanup function restoring previous state.
func setupTestServices() (*mockBackend, func()) {
	prevServices, prevBuilder := appServices, serviceBuilder
	prevJSON := searchJSON

	backend := &mockBackend{}
	appServices = &Services{
		NewCoordinator: func() driving.SearchCoordinator { return services.NewSearchCoordinator(backend) },
		NewViewSync:    func() driving.ViewSync { return services.NewViewSync(nil) },
		Settings:       services.NewSettingsService(memory.NewConfigStore()),
		ConfigDir:      "/tmp/geofind-test",
	}
	serviceBuilder = nil
	searchJSON = false

	return backend, func() {
		appServices, serviceBuilder = prevServices, prevBuilder
		searchJSON = prevJSON
	}
}

// execute runs rootCmd with args and returns the combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "geofind", rootCmd.Use)
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	tests := []struct {
		name      string
		shorthand string
		defValue  string
	}{
		{name: "verbose", shorthand: "v", defValue: "false"},
		{name: "config-dir", defValue: ""},
		{name: "backend", defValue: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag := rootCmd.PersistentFlags().Lookup(tt.name)
			require.NotNil(t, flag)
			assert.Equal(t, tt.shorthand, flag.Shorthand)
			assert.Equal(t, tt.defValue, flag.DefValue)
		})
	}
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{"tui", "search", "settings", "mcp", "version"} {
		assert.True(t, names[want], "missing %s command", want)
	}
}

func TestRootCmd_BuilderReceivesFlags(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	prevDir, prevBackend := configDir, backendURL
	defer func() { configDir, backendURL = prevDir, prevBackend }()

	var got Options
	SetServiceBuilder(func(opts Options) (*Services, error) {
		got = opts
		return appServices, nil
	})

	_, err := execute(t, "--config-dir", "/tmp/gf", "--backend", "http://geo.local:9000", "version")

	require.NoError(t, err)
	assert.Equal(t, "/tmp/gf", got.ConfigDir)
	assert.Equal(t, "http://geo.local:9000", got.BackendURL)
}

func TestRootCmd_BuilderErrorFailsCommand(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	SetServiceBuilder(func(Options) (*Services, error) {
		return nil, errors.New("config unreadable")
	})

	_, err := execute(t, "version")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "init services")
	assert.Contains(t, err.Error(), "config unreadable")
}

func TestRequireServices_NotConfigured(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	appServices = nil

	_, err := execute(t, "search", "city", "Berlin")

	assert.ErrorIs(t, err, ErrServicesNotConfigured)
}
