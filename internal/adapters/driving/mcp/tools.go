package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/geofind/internal/core/domain"
)

// SearchInput is the input schema for the search_locations tool.
type SearchInput struct {
	Type  string `json:"type" jsonschema:"search type: postal-code, city or state"`
	Value string `json:"value" jsonschema:"postal code, city name or state name to look up"`
}

// SearchOutput is the final search state returned by search_locations.
type SearchOutput struct {
	Type         string         `json:"type"`
	Value        string         `json:"value"`
	Count        int            `json:"count"`
	ErrorKind    string         `json:"error_kind"`
	ErrorMessage string         `json:"error_message,omitempty"`
	Markers      []MarkerOutput `json:"markers"`
	SelectedID   string         `json:"selected_id,omitempty"`
	Info         *InfoOutput    `json:"info,omitempty"`
	Pan          *PanOutput     `json:"pan,omitempty"`
}

// MarkerOutput is a single location in the result set.
type MarkerOutput struct {
	ID         string  `json:"id"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	Name       string  `json:"name,omitempty"`
	PostalCode string  `json:"postal_code,omitempty"`
	State      string  `json:"state,omitempty"`
	Selected   bool    `json:"selected"`
}

// InfoOutput is the descriptive block for the query.
type InfoOutput struct {
	Title     string `json:"title"`
	Summary   string `json:"summary"`
	Thumbnail string `json:"thumbnail,omitempty"`
	URL       string `json:"url,omitempty"`
}

// PanOutput is where a map would centre for the current selection.
type PanOutput struct {
	MarkerID string  `json:"marker_id"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_locations",
		Description: "Look up German locations by postal code, city or state",
	}, s.handleSearch)
}

// handleSearch runs one search on a fresh coordinator and reports its final state.
// Backend failures are part of the output; only invalid input is a tool error.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	searchType, ok := domain.ParseSearchType(input.Type)
	if !ok {
		return nil, SearchOutput{}, fmt.Errorf("%w: %q", domain.ErrUnknownSearchType, input.Type)
	}
	query := domain.SearchQuery{Type: searchType, Value: input.Value}
	if query.IsEmpty() {
		return nil, SearchOutput{}, domain.ErrEmptyQuery
	}

	coordinator := s.ports.NewCoordinator()
	if coordinator == nil {
		return nil, SearchOutput{}, ErrMissingCoordinatorFactory
	}

	state := coordinator.Search(ctx, query)
	return nil, toOutput(state), nil
}

func toOutput(state domain.SearchUIState) SearchOutput {
	out := SearchOutput{
		Type:         state.Meta.Type.String(),
		Value:        state.Meta.Value,
		Count:        state.Meta.Count,
		ErrorKind:    state.ErrorKind.String(),
		ErrorMessage: state.ErrorMessage,
		Markers:      make([]MarkerOutput, len(state.Markers)),
	}

	for i := range state.Markers {
		m := state.Markers[i]
		out.Markers[i] = MarkerOutput{
			ID:         m.ID.String(),
			Lat:        m.Lat,
			Lon:        m.Lon,
			Name:       m.Name,
			PostalCode: m.PostalCode,
			State:      m.State,
			Selected:   state.Selection.Is(m.ID),
		}
	}
	if id, ok := state.Selection.ID(); ok {
		out.SelectedID = id.String()
	}

	if state.Info != nil && !state.HasError() {
		out.Info = &InfoOutput{
			Title:     state.Info.DisplayTitle(),
			Summary:   state.Info.DisplaySummary(),
			Thumbnail: state.Info.Thumbnail,
			URL:       state.Info.URL,
		}
	}

	if pan, ok := domain.DecidePan(state.Selection, state.Markers); ok {
		out.Pan = &PanOutput{MarkerID: pan.MarkerID.String(), Lat: pan.Lat, Lon: pan.Lon}
	}

	return out
}
