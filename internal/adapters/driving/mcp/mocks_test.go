package mcp

import (
	"context"

	"github.com/custodia-labs/geofind/internal/core/domain"
	"github.com/custodia-labs/geofind/internal/core/ports/driven"
	"github.com/custodia-labs/geofind/internal/core/ports/driving"
	"github.com/custodia-labs/geofind/internal/core/services"
)

// mockBackend is a mock implementation of driven.LocationBackend.
type mockBackend struct {
	payload  *driven.SearchPayload
	err      error
	requests []driven.SearchRequest
}

func (m *mockBackend) Search(_ context.Context, req driven.SearchRequest) (*driven.SearchPayload, error) {
	m.requests = append(m.requests, req)
	return m.payload, m.err
}

// factoryFor returns a coordinator factory over backend that counts its calls.
func factoryFor(backend driven.LocationBackend, calls *int) CoordinatorFactory {
	return func() driving.SearchCoordinator {
		if calls != nil {
			*calls++
		}
		return services.NewSearchCoordinator(backend)
	}
}

func twoTowns() *driven.SearchPayload {
	return &driven.SearchPayload{
		Markers: []any{
			map[string]any{"id": "sg", "lat": 51.17, "lon": 7.08, "name": "Solingen", "postalCode": "42119", "state": "NRW"},
			map[string]any{"id": "w", "lat": 51.26, "lon": 7.15, "name": "Wuppertal", "postalCode": "42103", "state": "NRW"},
		},
		Info:  map[string]any{"title": "42119", "summary": "Postal code in Solingen."},
		Count: 2,
	}
}

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	settings *domain.AppSettings
	err      error
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.settings == nil {
		defaults := domain.DefaultAppSettings()
		return &defaults, nil
	}
	return m.settings, nil
}

func (m *mockSettingsService) Save(_ *domain.AppSettings) error { return m.err }

func (m *mockSettingsService) Set(_, _ string) error { return m.err }

func (m *mockSettingsService) Keys() []string { return domain.SettingKeys() }

func (m *mockSettingsService) GetDefaults() domain.AppSettings { return domain.DefaultAppSettings() }
