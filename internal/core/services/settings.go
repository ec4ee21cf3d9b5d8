package services

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/geofind/internal/core/domain"
	"github.com/custodia-labs/geofind/internal/core/ports/driven"
	"github.com/custodia-labs/geofind/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyBackendBaseURL       = domain.SettingBackendBaseURL
	KeyBackendRateLimit     = domain.SettingBackendRateLimit
	KeyBackendTimeout       = domain.SettingBackendTimeout
	KeyBackendPostalSegment = domain.SettingBackendPostalSegment
	KeyMapCenterLat         = domain.SettingMapCenterLat
	KeyMapCenterLon         = domain.SettingMapCenterLon
	KeyMapZoom              = domain.SettingMapZoom
	KeySearchType           = domain.SettingSearchType
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
// Missing or invalid stored values fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Backend: domain.BackendSettings{
			BaseURL:           s.getBaseURL(defaults.Backend.BaseURL),
			RateLimit:         s.getFloat(KeyBackendRateLimit, defaults.Backend.RateLimit, 0, -1),
			Timeout:           s.getTimeout(defaults.Backend.Timeout),
			PostalCodeSegment: s.getPostalSegment(defaults.Backend.PostalCodeSegment),
		},
		Map: domain.MapSettings{
			CenterLat: s.getFloat(KeyMapCenterLat, defaults.Map.CenterLat, -90, 90),
			CenterLon: s.getFloat(KeyMapCenterLon, defaults.Map.CenterLon, -180, 180),
			Zoom:      s.getZoom(defaults.Map.Zoom),
		},
		Search: domain.SearchSettings{
			DefaultType: s.getSearchType(defaults.Search.DefaultType),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if settings == nil {
		return fmt.Errorf("%w: nil settings", domain.ErrInvalidInput)
	}

	values := map[string]any{
		KeyBackendBaseURL:       strings.TrimRight(settings.Backend.BaseURL, "/"),
		KeyBackendRateLimit:     settings.Backend.RateLimit,
		KeyBackendTimeout:       int64(settings.Backend.Timeout / time.Second),
		KeyBackendPostalSegment: settings.Backend.PostalCodeSegment,
		KeyMapCenterLat:         settings.Map.CenterLat,
		KeyMapCenterLon:         settings.Map.CenterLon,
		KeyMapZoom:              int64(domain.ClampZoom(settings.Map.Zoom)),
		KeySearchType:           settings.Search.DefaultType.String(),
	}

	for _, key := range domain.SettingKeys() {
		if err := s.configStore.Set(key, values[key]); err != nil {
			return fmt.Errorf("save %s: %w", key, err)
		}
	}

	if err := s.configStore.Save(); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	return nil
}

// Set validates a textual value for key, stores it and persists the config.
func (s *SettingsService) Set(key, value string) error {
	parsed, err := parseSetting(key, strings.TrimSpace(value))
	if err != nil {
		return err
	}
	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	if err := s.configStore.Save(); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	return nil
}

// Keys returns the recognised setting keys in display order.
func (s *SettingsService) Keys() []string {
	return domain.SettingKeys()
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func parseSetting(key, value string) (any, error) {
	invalid := func(reason string) error {
		return fmt.Errorf("%w: %s: %s", domain.ErrInvalidInput, key, reason)
	}

	switch key {
	case KeyBackendBaseURL:
		u, err := url.Parse(value)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return nil, invalid("expected an http(s) URL")
		}
		return strings.TrimRight(value, "/"), nil

	case KeyBackendRateLimit:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < 0 {
			return nil, invalid("expected a non-negative number")
		}
		return f, nil

	case KeyBackendTimeout:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil || n < 0 {
			return nil, invalid("expected a non-negative number of seconds")
		}
		return n, nil

	case KeyBackendPostalSegment:
		if !validPathSegment(value) {
			return nil, invalid("expected a single URL path segment such as postal-code or plz")
		}
		return value, nil

	case KeyMapCenterLat:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < -90 || f > 90 {
			return nil, invalid("expected a latitude between -90 and 90")
		}
		return f, nil

	case KeyMapCenterLon:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < -180 || f > 180 {
			return nil, invalid("expected a longitude between -180 and 180")
		}
		return f, nil

	case KeyMapZoom:
		n, err := strconv.Atoi(value)
		if err != nil || n < domain.MinZoom || n > domain.MaxZoom {
			return nil, invalid(fmt.Sprintf("expected a zoom between %d and %d", domain.MinZoom, domain.MaxZoom))
		}
		return int64(n), nil

	case KeySearchType:
		t, ok := domain.ParseSearchType(value)
		if !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnknownSearchType, value)
		}
		return t.String(), nil
	}

	return nil, fmt.Errorf("%w: %s", domain.ErrUnknownSetting, key)
}

func (s *SettingsService) getBaseURL(defaultVal string) string {
	val := strings.TrimSpace(s.configStore.GetString(KeyBackendBaseURL))
	if val == "" {
		return defaultVal
	}
	return strings.TrimRight(val, "/")
}

// getFloat reads a float within [lo, hi]. hi < lo means no upper bound.
func (s *SettingsService) getFloat(key string, defaultVal, lo, hi float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	val := s.configStore.GetFloat(key)
	if val < lo || (hi >= lo && val > hi) {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getTimeout(defaultVal time.Duration) time.Duration {
	if _, exists := s.configStore.Get(KeyBackendTimeout); !exists {
		return defaultVal
	}
	seconds := s.configStore.GetInt(KeyBackendTimeout)
	if seconds < 0 {
		return defaultVal
	}
	return time.Duration(seconds) * time.Second
}

func (s *SettingsService) getPostalSegment(defaultVal string) string {
	val := strings.TrimSpace(s.configStore.GetString(KeyBackendPostalSegment))
	if !validPathSegment(val) {
		return defaultVal
	}
	return val
}

// validPathSegment accepts non-empty segments that need no escaping.
func validPathSegment(s string) bool {
	return s != "" && s != "." && s != ".." && url.PathEscape(s) == s && !strings.Contains(s, "/")
}

func (s *SettingsService) getZoom(defaultVal int) int {
	if _, exists := s.configStore.Get(KeyMapZoom); !exists {
		return defaultVal
	}
	return domain.ClampZoom(s.configStore.GetInt(KeyMapZoom))
}

func (s *SettingsService) getSearchType(defaultVal domain.SearchType) domain.SearchType {
	val := s.configStore.GetString(KeySearchType)
	if val == "" {
		return defaultVal
	}
	t, ok := domain.ParseSearchType(val)
	if !ok {
		return defaultVal
	}
	return t
}
