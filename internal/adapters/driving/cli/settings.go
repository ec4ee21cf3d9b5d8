package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change the backend, map and search defaults.

Settings live in config.toml inside the config directory. A running TUI
picks up changes to that file automatically.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Long: `Validate and store a single setting.

Keys:
  backend.base_url         - backend URL, http or https
  backend.rate_limit       - requests per second, 0 disables limiting
  backend.timeout_seconds  - request timeout, 0 waits indefinitely
  backend.postal_code_segment
                           - URL segment for postal codes, e.g. plz
  map.center_lat           - default map centre latitude
  map.center_lon           - default map centre longitude
  map.zoom                 - default map zoom (1-18)
  search.default_type      - postal-code, city or state`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}
	if s.Settings == nil {
		return fmt.Errorf("settings: %w", ErrServicesNotConfigured)
	}

	settings, err := s.Settings.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	width := 0
	keys := s.Settings.Keys()
	for _, key := range keys {
		width = max(width, len(key))
	}
	for _, key := range keys {
		value, ok := settings.Value(key)
		if !ok {
			continue
		}
		if value == "" {
			value = "(not set)"
		}
		cmd.Printf("  %-*s  %s\n", width, key, value)
	}

	if s.ConfigDir != "" {
		cmd.Println()
		cmd.Printf("Config directory: %s\n", s.ConfigDir)
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}
	if s.Settings == nil {
		return fmt.Errorf("settings: %w", ErrServicesNotConfigured)
	}

	key, value := args[0], args[1]
	if err := s.Settings.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	cmd.Printf("Set %s = %s\n", key, value)
	return nil
}
