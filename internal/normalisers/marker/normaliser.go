// Package marker normalises search payloads into markers, info and counts.
package marker

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/custodia-labs/geofind/internal/core/domain"
)

// Record keys with dedicated Marker fields.
const (
	keyID         = "id"
	keyLat        = "lat"
	keyLon        = "lon"
	keyName       = "name"
	keyPostalCode = "postalCode"
	keyState      = "state"
)

// Markers converts a decoded markers value into valid markers, in input order.
// Anything that is not a list yields no markers. Records that are not objects,
// or whose lat/lon are missing or not finite numbers, are dropped.
func Markers(raw any) []domain.Marker {
	list, ok := raw.([]any)
	if !ok {
		return []domain.Marker{}
	}

	markers := make([]domain.Marker, 0, len(list))
	for _, item := range list {
		if m, ok := toMarker(item); ok {
			markers = append(markers, m)
		}
	}
	return markers
}

// toMarker converts a single record.
func toMarker(item any) (domain.Marker, bool) {
	rec, ok := item.(map[string]any)
	if !ok || rec == nil {
		return domain.Marker{}, false
	}

	lat, ok := Coordinate(rec[keyLat])
	if !ok {
		return domain.Marker{}, false
	}
	lon, ok := Coordinate(rec[keyLon])
	if !ok {
		return domain.Marker{}, false
	}

	m := domain.Marker{Lat: lat, Lon: lon}
	for key, value := range rec {
		switch key {
		case keyLat, keyLon:
			continue
		case keyID:
			if s, ok := text(value); ok {
				m.ID = domain.MarkerID(s)
				continue
			}
		case keyName:
			if s, ok := text(value); ok {
				m.Name = s
				continue
			}
		case keyPostalCode:
			if s, ok := text(value); ok {
				m.PostalCode = s
				continue
			}
		case keyState:
			if s, ok := text(value); ok {
				m.State = s
				continue
			}
		}
		if value == nil {
			continue
		}
		if m.Extra == nil {
			m.Extra = make(map[string]any)
		}
		m.Extra[key] = value
	}
	return m, true
}

// Coordinate coerces a lat/lon value to a finite float64.
// Numbers and numeric strings are accepted; nil, blank strings, booleans
// and non-finite values are not.
func Coordinate(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Info converts a decoded info value. Returns nil unless it is an object.
func Info(raw any) *domain.Info {
	rec, ok := raw.(map[string]any)
	if !ok || rec == nil {
		return nil
	}

	info := &domain.Info{}
	info.Title, _ = text(rec["title"])
	info.Summary, _ = text(rec["summary"])
	info.Thumbnail, _ = text(rec["thumbnail"])
	info.URL, _ = text(rec["url"])
	return info
}

// Count returns the backend's count when it is a non-negative whole number,
// otherwise fallback.
func Count(raw any, fallback int) int {
	var f float64
	switch n := raw.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			f = float64(i)
		} else if parsed, err := n.Float64(); err == nil {
			f = parsed
		} else {
			return fallback
		}
	case float64:
		f = n
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	default:
		return fallback
	}

	if f < 0 || f != math.Trunc(f) || f > math.MaxInt32 {
		return fallback
	}
	return int(f)
}

// text renders scalar ids and labels as strings.
func text(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case json.Number:
		return s.String(), true
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), true
	case int:
		return strconv.Itoa(s), true
	case int64:
		return strconv.FormatInt(s, 10), true
	default:
		return "", false
	}
}
