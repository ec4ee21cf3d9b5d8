package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/geofind/internal/adapters/driving/tui"
	"github.com/custodia-labs/geofind/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/geofind/internal/core/domain"
	"github.com/custodia-labs/geofind/internal/logger"
)

// DebugLogFile receives log output while the TUI owns the terminal.
const DebugLogFile = "debug.log"

// ErrNotTerminal is returned when the TUI is started without a terminal.
var ErrNotTerminal = errors.New("tui requires an interactive terminal")

// isTerminal reports whether stdin and stdout are attached to a terminal.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for geofind.

Controls:
  Enter      - Search
  Ctrl+T     - Switch search type
  Tab        - Cycle focus: form, results, map
  ↑/k, ↓/j   - Select result (results)
  ←↓↑→/hjkl  - Pan (map)
  +/-        - Zoom (map)
  [ / ]      - Previous / next pin (map)
  Ctrl+O     - Settings
  Esc        - Back to the search form
  ?          - Toggle help
  q          - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("tui panic: %v", r)
		}
	}()

	s, err := requireServices()
	if err != nil {
		return err
	}
	if s.NewCoordinator == nil || s.NewViewSync == nil {
		return fmt.Errorf("tui: %w", ErrServicesNotConfigured)
	}
	if !isTerminal() {
		return ErrNotTerminal
	}

	restore := redirectLogs(s.ConfigDir)
	defer restore()

	ports := tui.NewPorts(s.NewCoordinator(), s.NewViewSync(), s.Settings)
	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	p := app.NewProgram()

	if s.Watch != nil {
		stop, werr := s.Watch(cmd.Context(), func(settings *domain.AppSettings, err error) {
			p.Send(messages.SettingsReloaded{Settings: settings, Err: err})
		})
		if werr != nil {
			logger.Warn("Config live reload disabled: %v", werr)
		} else {
			defer func() {
				if cerr := stop(); cerr != nil {
					logger.Warn("Stopping config watcher: %v", cerr)
				}
			}()
		}
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// redirectLogs sends logger output to the debug log so it does not draw
// over the alternate screen. The returned function restores the previous output.
func redirectLogs(dir string) func() {
	previous := logger.Output()
	if dir == "" {
		logger.SetOutput(io.Discard)
		return func() { logger.SetOutput(previous) }
	}

	f, err := os.OpenFile(filepath.Join(dir, DebugLogFile), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		logger.SetOutput(io.Discard)
		return func() { logger.SetOutput(previous) }
	}
	logger.SetOutput(f)
	return func() {
		logger.SetOutput(previous)
		_ = f.Close()
	}
}
