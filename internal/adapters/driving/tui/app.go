package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/geofind/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/geofind/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/geofind/internal/adapters/driving/tui/views/search"
	"github.com/custodia-labs/geofind/internal/adapters/driving/tui/views/settings"
	"github.com/custodia-labs/geofind/internal/core/domain"
	"github.com/custodia-labs/geofind/internal/logger"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for backend requests.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// searchView is the search form, info panel, marker list and map.
	searchView *search.View

	// settingsView edits the config file.
	settingsView *settings.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
// Map defaults and the preselected search type come from the settings
// service when one is configured.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	appSettings := domain.DefaultAppSettings()
	if ports.Settings != nil {
		loaded, err := ports.Settings.Get()
		if err != nil {
			logger.Warn("Failed to load settings, using defaults: %v", err)
		} else if loaded != nil {
			appSettings = *loaded
		}
	}

	s := styles.DefaultStyles()
	return &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		searchView:   search.NewView(s, nil, ports.Search, ports.ViewSync, appSettings),
		settingsView: settings.NewView(s, ports.Settings),
		currentView:  messages.ViewSearch,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.searchView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("geofind - Location Search"),
		a.searchView.Init(),
	)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocyclo // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		switch a.currentView {
		case messages.ViewSearch:
			a.searchView, cmd = a.searchView.Update(msg)
			return a, cmd

		case messages.ViewHelp:
			switch msg.String() {
			case "esc", "?", "q":
				a.currentView = messages.ViewSearch
			}
			return a, nil

		case messages.ViewSettings:
			a.settingsView, cmd = a.settingsView.Update(msg)
			return a, cmd
		}
		return a, nil

	case tea.MouseMsg:
		if a.currentView == messages.ViewSearch {
			a.searchView, cmd = a.searchView.Update(msg)
		}
		return a, cmd

	// Search results and selection always reach the search view, even
	// while another view is shown, so the loading state is released.
	case messages.SearchCompleted, messages.MarkerSelected, messages.MapFrame:
		a.searchView, cmd = a.searchView.Update(msg)
		return a, cmd

	case messages.ViewChanged:
		a.currentView = msg.View
		switch msg.View {
		case messages.ViewSettings:
			return a, a.settingsView.Init()
		case messages.ViewSearch, messages.ViewHelp:
			// Search state lives in the coordinator; nothing to reset.
		}
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		logger.Error("%v", msg.Err)
		a.searchView, cmd = a.searchView.Update(msg)
		return a, cmd

	case messages.Quit:
		return a, tea.Quit

	case messages.SettingsLoaded:
		if msg.Err == nil && msg.Settings != nil {
			a.searchView.ApplySettings(*msg.Settings)
		}
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case messages.SettingsSaved:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case messages.SettingsReloaded:
		if msg.Err != nil {
			a.err = msg.Err
		} else if msg.Settings != nil {
			a.searchView.ApplySettings(*msg.Settings)
		}
		a.settingsView, _ = a.settingsView.Update(msg)
		a.searchView, cmd = a.searchView.Update(msg)
		return a, cmd
	}

	// Forward other messages to active view
	switch a.currentView {
	case messages.ViewSearch:
		a.searchView, cmd = a.searchView.Update(msg)
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	case messages.ViewHelp:
		// Help view doesn't need to handle other messages
	}

	return a, cmd
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewSettings:
		return a.settingsView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	case messages.ViewSearch:
		return a.searchView.View()
	default:
		return a.searchView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Search form:
  (type)      Enter a postal code, city or state
  ctrl+t      Cycle search type
  enter       Search
  tab         Focus results list

Results list:
  j/k, ↑/↓    Select previous/next location
  click       Select location
  tab         Focus map

Map:
  ←↑↓→, hjkl  Pan
  +/-, wheel  Zoom
  [ / ]       Select previous/next pin
  click       Select pin
  tab         Focus search form

General:
  esc         Back to search form
  ctrl+o      Settings
  ?           Help
  q, ctrl+c   Quit

[esc] back to search`
}

// NewProgram wraps the app in a Bubbletea program using the alternate
// screen and mouse reporting. Callers may Send messages to it, e.g. when
// the config file changes.
func (a *App) NewProgram(opts ...tea.ProgramOption) *tea.Program {
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseCellMotion()}, opts...)
	return tea.NewProgram(a, opts...)
}

// Run starts the TUI application.
func (a *App) Run() error {
	_, err := a.NewProgram().Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// SearchView returns the search view.
func (a *App) SearchView() *search.View {
	return a.searchView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.searchView.SetDimensions(width, height)
	a.settingsView.SetDimensions(width, height)
}
