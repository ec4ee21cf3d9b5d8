package domain

import (
	"strconv"
	"time"
)

const unknownDescription = "Unknown"

// Default settings values.
const (
	// DefaultBackendURL is the local development backend.
	DefaultBackendURL = "http://127.0.0.1:8000"

	// DefaultRateLimit is the proactive request budget in requests per second.
	DefaultRateLimit = 4.0

	// DefaultPostalCodeSegment is the backend path segment for postal codes.
	DefaultPostalCodeSegment = "postal-code"

	// DefaultCenterLat and DefaultCenterLon are the centre of Germany.
	DefaultCenterLat = 51.1657
	DefaultCenterLon = 10.4515

	// DefaultZoom is the initial map zoom level.
	DefaultZoom = 6

	// MinZoom and MaxZoom bound the map zoom level.
	MinZoom = 1
	MaxZoom = 18
)

// Setting keys, as stored in the config file.
const (
	SettingBackendBaseURL       = "backend.base_url"
	SettingBackendRateLimit     = "backend.rate_limit"
	SettingBackendTimeout       = "backend.timeout_seconds"
	SettingBackendPostalSegment = "backend.postal_code_segment"
	SettingMapCenterLat         = "map.center_lat"
	SettingMapCenterLon         = "map.center_lon"
	SettingMapZoom              = "map.zoom"
	SettingSearchType           = "search.default_type"
)

// SettingKeys returns every setting key in display order.
func SettingKeys() []string {
	return []string{
		SettingBackendBaseURL,
		SettingBackendRateLimit,
		SettingBackendTimeout,
		SettingBackendPostalSegment,
		SettingMapCenterLat,
		SettingMapCenterLon,
		SettingMapZoom,
		SettingSearchType,
	}
}

// BackendSettings configures the search backend client.
type BackendSettings struct {
	// BaseURL is prefixed to /api/search/... paths.
	BaseURL string

	// RateLimit is the maximum request rate per second. Zero or less disables throttling.
	RateLimit float64

	// Timeout bounds a single request. Zero means no timeout.
	Timeout time.Duration

	// PostalCodeSegment is the URL segment used for postal-code searches.
	PostalCodeSegment string
}

// MapSettings configures the initial map view.
type MapSettings struct {
	CenterLat float64
	CenterLon float64
	Zoom      int
}

// SearchSettings configures the search form.
type SearchSettings struct {
	// DefaultType is preselected in the search form.
	DefaultType SearchType
}

// AppSettings aggregates all application settings.
type AppSettings struct {
	Backend BackendSettings
	Map     MapSettings
	Search  SearchSettings
}

// DefaultAppSettings returns the settings used when nothing is configured.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Backend: BackendSettings{
			BaseURL:           DefaultBackendURL,
			RateLimit:         DefaultRateLimit,
			PostalCodeSegment: DefaultPostalCodeSegment,
		},
		Map: MapSettings{
			CenterLat: DefaultCenterLat,
			CenterLon: DefaultCenterLon,
			Zoom:      DefaultZoom,
		},
		Search: SearchSettings{
			DefaultType: SearchTypePostalCode,
		},
	}
}

// ClampZoom bounds a zoom level to [MinZoom, MaxZoom].
func ClampZoom(zoom int) int {
	if zoom < MinZoom {
		return MinZoom
	}
	if zoom > MaxZoom {
		return MaxZoom
	}
	return zoom
}

// Value renders the setting stored under key as text.
// Returns false for unknown keys.
func (s AppSettings) Value(key string) (string, bool) {
	switch key {
	case SettingBackendBaseURL:
		return s.Backend.BaseURL, true
	case SettingBackendRateLimit:
		return strconv.FormatFloat(s.Backend.RateLimit, 'f', -1, 64), true
	case SettingBackendPostalSegment:
		return s.Backend.PostalCodeSegment, true
	case SettingBackendTimeout:
		return strconv.FormatInt(int64(s.Backend.Timeout/time.Second), 10), true
	case SettingMapCenterLat:
		return strconv.FormatFloat(s.Map.CenterLat, 'f', -1, 64), true
	case SettingMapCenterLon:
		return strconv.FormatFloat(s.Map.CenterLon, 'f', -1, 64), true
	case SettingMapZoom:
		return strconv.Itoa(s.Map.Zoom), true
	case SettingSearchType:
		return s.Search.DefaultType.String(), true
	}
	return "", false
}
