package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/geofind/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for geofind resources.
	uriScheme = "geofind://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "search-types",
		Name:        "search-types",
		Description: "Search types accepted by search_locations",
		MIMEType:    "application/json",
	}, s.handleSearchTypesResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "settings",
		Name:        "settings",
		Description: "Current geofind settings",
		MIMEType:    "application/json",
	}, s.handleSettingsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "settings/{key}",
		Name:        "setting",
		Description: "Value of a single setting",
		MIMEType:    "text/plain",
	}, s.handleSettingResource)
}

// handleSearchTypesResource lists the search types with their labels.
func (s *Server) handleSearchTypesResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	type typeInfo struct {
		Type  string `json:"type"`
		Label string `json:"label"`
	}

	types := domain.AllSearchTypes()
	infos := make([]typeInfo, len(types))
	for i, t := range types {
		infos[i] = typeInfo{Type: t.String(), Label: t.Label()}
	}

	return jsonResource(req.Params.URI, infos)
}

// handleSettingsResource returns every setting as key/value pairs.
func (s *Server) handleSettingsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Settings == nil {
		return jsonResource(req.Params.URI, map[string]string{})
	}

	settings, err := s.ports.Settings.Get()
	if err != nil {
		return nil, fmt.Errorf("getting settings: %w", err)
	}

	values := make(map[string]string)
	for _, key := range s.ports.Settings.Keys() {
		if v, ok := settings.Value(key); ok {
			values[key] = v
		}
	}

	return jsonResource(req.Params.URI, values)
}

// handleSettingResource returns one setting value.
func (s *Server) handleSettingResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Settings == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	key := extractSettingKey(req.Params.URI)
	if key == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	settings, err := s.ports.Settings.Get()
	if err != nil {
		return nil, fmt.Errorf("getting settings: %w", err)
	}

	value, ok := settings.Value(key)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     value,
		}},
	}, nil
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractSettingKey extracts the key from a URI like geofind://settings/{key}.
func extractSettingKey(uri string) string {
	const prefix = uriScheme + "settings/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	return strings.TrimPrefix(uri, prefix)
}
