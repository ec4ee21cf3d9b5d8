package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/geofind/internal/core/domain"
)

var searchJSON bool

var searchCmd = &cobra.Command{
	Use:   "search [type] [value]",
	Short: "Look up locations",
	Long: `Runs one search against the backend and prints the final state.

Types:
  postal-code (or plz)  - e.g. 42119
  city                  - e.g. Berlin
  state                 - e.g. Bayern

The command fails on backend or network errors. A search without matches
is not an error.`,
	Args: cobra.ExactArgs(2),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output the final state as JSON")
	rootCmd.AddCommand(searchCmd)
}

// searchReport is the JSON form of a finished search.
type searchReport struct {
	State domain.SearchUIState `json:"state"`
	Pan   *panReport           `json:"pan"`
}

type panReport struct {
	MarkerID string  `json:"markerId"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
}

func runSearch(cmd *cobra.Command, args []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}
	if s.NewCoordinator == nil {
		return fmt.Errorf("search: %w", ErrServicesNotConfigured)
	}

	searchType, ok := domain.ParseSearchType(args[0])
	if !ok {
		return fmt.Errorf("%w: %q (want postal-code, city or state)", domain.ErrUnknownSearchType, args[0])
	}
	query := domain.SearchQuery{Type: searchType, Value: args[1]}
	if query.IsEmpty() {
		return domain.ErrEmptyQuery
	}

	state := s.NewCoordinator().Search(cmd.Context(), query)

	if searchJSON {
		if err := outputSearchJSON(cmd, state); err != nil {
			return err
		}
	} else {
		outputSearchText(cmd, state)
	}

	if state.ErrorKind == domain.ErrorKindHard {
		return fmt.Errorf("search failed: %s", state.ErrorMessage)
	}
	return nil
}

func outputSearchJSON(cmd *cobra.Command, state domain.SearchUIState) error {
	report := searchReport{State: state}
	if pan, ok := domain.DecidePan(state.Selection, state.Markers); ok {
		report.Pan = &panReport{MarkerID: pan.MarkerID.String(), Lat: pan.Lat, Lon: pan.Lon}
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchText(cmd *cobra.Command, state domain.SearchUIState) {
	cmd.Printf("%s — %s\n", state.Meta.Type.Label(), state.Meta.Value)

	if state.HasError() {
		if state.ErrorKind == domain.ErrorKindSoftEmpty {
			cmd.Println("No results found.")
		} else {
			cmd.Printf("Error: %s\n", state.ErrorMessage)
		}
		return
	}

	cmd.Printf("Results: %d\n", state.Meta.Count)
	cmd.Println()
	for i := range state.Markers {
		m := state.Markers[i]
		prefix := "  "
		if state.Selection.Is(m.ID) {
			prefix = "> "
		}
		cmd.Printf("%s%s (%.4f, %.4f)\n", prefix, m.DisplayName(), m.Lat, m.Lon)
		cmd.Printf("    Postal code: %s • %s\n", m.DisplayPostalCode(), m.DisplayState())
	}

	if state.Info != nil {
		cmd.Println()
		cmd.Println(state.Info.DisplayTitle())
		cmd.Printf("  %s\n", strings.TrimSpace(state.Info.DisplaySummary()))
		if state.Info.Thumbnail != "" {
			cmd.Printf("  Image: %s\n", state.Info.Thumbnail)
		}
		if state.Info.URL != "" {
			cmd.Printf("  More on Wikipedia: %s\n", state.Info.URL)
		}
	}

	if pan, ok := domain.DecidePan(state.Selection, state.Markers); ok {
		cmd.Println()
		cmd.Printf("Map centre: %.4f, %.4f (%s)\n", pan.Lat, pan.Lon, pan.MarkerID)
	}
}
