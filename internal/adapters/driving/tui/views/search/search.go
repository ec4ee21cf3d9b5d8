// Package search provides the main search view for the TUI: the search
// form, the info panel, and the marker list and map side by side.
package search

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/geofind/internal/adapters/driving/tui/components/infopanel"
	"github.com/custodia-labs/geofind/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/geofind/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/geofind/internal/adapters/driving/tui/components/mapview"
	"github.com/custodia-labs/geofind/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/geofind/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/geofind/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/geofind/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/geofind/internal/core/domain"
	"github.com/custodia-labs/geofind/internal/core/ports/driving"
)

// Focus aliases the status bar focus so callers need one import.
type Focus = status.Focus

const (
	FocusForm = status.FocusForm
	FocusList = status.FocusList
	FocusMap  = status.FocusMap
)

// View is the search screen.
//
// All coordinator calls except Fetch happen inside Update, so state only
// changes on the Bubbletea event loop. Fetch runs in a tea.Cmd and its
// outcome comes back as messages.SearchCompleted.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	form      *input.SearchForm
	info      *infopanel.Panel
	list      *list.MarkerList
	mapv      *mapview.Map
	statusbar *status.Bar

	coordinator driving.SearchCoordinator
	viewSync    driving.ViewSync
	ctx         context.Context

	state  domain.SearchUIState
	focus  Focus
	width  int
	height int
	ready  bool
}

// NewView creates a new search view. settings seeds the map centre, zoom
// and the preselected search type.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	coordinator driving.SearchCoordinator,
	viewSync driving.ViewSync,
	settings domain.AppSettings,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	var initial []domain.Marker
	if coordinator != nil {
		initial = coordinator.State().Markers
	}

	return &View{
		styles:      s,
		keymap:      km,
		form:        input.NewSearchForm(s, settings.Search.DefaultType),
		info:        infopanel.New(s),
		list:        list.NewMarkerList(s),
		mapv:        mapview.New(s, settings.Map, initial),
		statusbar:   status.NewBar(s, km),
		coordinator: coordinator,
		viewSync:    viewSync,
		ctx:         context.Background(),
		focus:       FocusForm,
		width:       80,
		height:      24,
	}
}

// WithContext sets the context used for backend requests.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view and renders the coordinator's current state.
func (v *View) Init() tea.Cmd {
	return tea.Batch(v.form.Init(), v.refresh())
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case tea.MouseMsg:
		return v, v.handleMouseMsg(msg)

	case messages.SearchCompleted:
		if v.coordinator == nil {
			return v, nil
		}
		v.coordinator.Complete(msg.Outcome)
		return v, v.refresh()

	case messages.MarkerSelected:
		if v.coordinator == nil {
			return v, nil
		}
		v.coordinator.Select(msg.ID)
		return v, v.refresh()

	case messages.MapFrame:
		var cmd tea.Cmd
		v.mapv, cmd = v.mapv.Update(msg)
		return v, cmd

	case messages.SettingsReloaded:
		if msg.Err != nil {
			v.statusbar.SetMessage("Config reload failed: " + msg.Err.Error())
		} else {
			v.statusbar.SetMessage("Config reloaded")
		}
		return v, nil

	case messages.ErrorOccurred:
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	if v.focus == FocusForm {
		var cmd tea.Cmd
		v.form, cmd = v.form.Update(msg)
		return v, cmd
	}
	return v, nil
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()

	switch {
	case keymap.Matches(key, v.keymap.Settings):
		return v, viewChanged(messages.ViewSettings)
	case keymap.Matches(key, v.keymap.NextFocus):
		return v, v.SetFocus((v.focus + 1) % 3)
	}

	if v.focus == FocusForm {
		return v.handleFormKey(msg)
	}

	switch {
	case keymap.Matches(key, v.keymap.Back):
		return v, v.SetFocus(FocusForm)
	case keymap.Matches(key, v.keymap.Help):
		return v, viewChanged(messages.ViewHelp)
	case key == "q":
		return v, func() tea.Msg { return messages.Quit{} }
	}

	if v.focus == FocusList {
		return v, v.handleListKey(key)
	}
	return v, v.handleMapKey(key)
}

func (v *View) handleFormKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()
	switch {
	case keymap.Matches(key, v.keymap.Search):
		return v, v.submit()
	case keymap.Matches(key, v.keymap.CycleType):
		v.form.CycleType()
		return v, nil
	case keymap.Matches(key, v.keymap.Back):
		return v, nil
	}

	var cmd tea.Cmd
	v.form, cmd = v.form.Update(msg)
	return v, cmd
}

func (v *View) handleListKey(key string) tea.Cmd {
	var (
		id domain.MarkerID
		ok bool
	)
	switch {
	case keymap.Matches(key, v.keymap.Up):
		id, ok = v.list.Prev()
	case keymap.Matches(key, v.keymap.Down):
		id, ok = v.list.Next()
	}
	if !ok {
		return nil
	}
	return markerSelected(id, messages.OriginList)
}

func (v *View) handleMapKey(key string) tea.Cmd {
	cols, rows := v.mapv.PanStep()

	switch {
	case keymap.Matches(key, v.keymap.PanUp):
		v.mapv.PanBy(0, -rows)
	case keymap.Matches(key, v.keymap.PanDown):
		v.mapv.PanBy(0, rows)
	case keymap.Matches(key, v.keymap.PanLeft):
		v.mapv.PanBy(-cols, 0)
	case keymap.Matches(key, v.keymap.PanRight):
		v.mapv.PanBy(cols, 0)
	case keymap.Matches(key, v.keymap.ZoomIn):
		v.mapv.ZoomIn()
	case keymap.Matches(key, v.keymap.ZoomOut):
		v.mapv.ZoomOut()
	case keymap.Matches(key, v.keymap.NextPin):
		if id, ok := v.mapv.NextPin(); ok {
			return markerSelected(id, messages.OriginMap)
		}
	case keymap.Matches(key, v.keymap.PrevPin):
		if id, ok := v.mapv.PrevPin(); ok {
			return markerSelected(id, messages.OriginMap)
		}
	}
	return nil
}

// handleMouseMsg selects list rows and map pins on left click, and zooms
// the map with the wheel.
func (v *View) handleMouseMsg(msg tea.MouseMsg) tea.Cmd {
	l := v.layout()

	if x, y, ok := l.inMap(msg.X, msg.Y); ok {
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			v.mapv.ZoomIn()
			return nil
		case tea.MouseButtonWheelDown:
			v.mapv.ZoomOut()
			return nil
		case tea.MouseButtonLeft:
			if msg.Action != tea.MouseActionPress {
				return nil
			}
			if id, found := v.mapv.PinAt(x, y); found {
				return markerSelected(id, messages.OriginMap)
			}
		}
		return nil
	}

	if msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionPress {
		return nil
	}
	if _, y, ok := l.inList(msg.X, msg.Y); ok {
		if id, found := v.list.RowAt(y); found {
			return markerSelected(id, messages.OriginList)
		}
	}
	return nil
}

// submit starts a search for the form content.
func (v *View) submit() tea.Cmd {
	if v.coordinator == nil {
		return func() tea.Msg { return messages.ErrorOccurred{Err: ErrNoSearchCoordinator} }
	}

	ticket, ok := v.coordinator.Begin(v.form.Query())
	if !ok {
		return nil
	}

	coordinator, ctx := v.coordinator, v.ctx
	fetch := func() tea.Msg {
		return messages.SearchCompleted{Outcome: coordinator.Fetch(ctx, ticket)}
	}
	return tea.Batch(fetch, v.refresh())
}

// refresh pushes the coordinator state into the components and lets view
// sync decide whether the map follows the selection.
func (v *View) refresh() tea.Cmd {
	if v.coordinator == nil {
		return nil
	}

	st := v.coordinator.State()
	v.state = st

	v.form.SetLoading(st.Loading)
	v.info.SetState(st)
	v.list.SetMarkers(st.Markers, st.Revision)
	v.list.SetSelection(st.Selection)
	v.mapv.SetMarkers(st.Markers)
	v.mapv.SetSelection(st.Selection)
	v.statusbar.SetState(status.StateFromPhase(st.Phase()))
	v.statusbar.SetResultCount(len(st.Markers))
	if st.Loading {
		v.statusbar.SetMessage("")
	}

	if v.viewSync == nil {
		return nil
	}
	pan, ok := v.viewSync.Observe(st)
	if !ok {
		return nil
	}
	v.mapv.PanTo(pan)
	return v.mapv.Tick()
}

func markerSelected(id domain.MarkerID, origin messages.SelectionOrigin) tea.Cmd {
	return func() tea.Msg {
		return messages.MarkerSelected{ID: id, Origin: origin}
	}
}

func viewChanged(view messages.ViewType) tea.Cmd {
	return func() tea.Msg {
		return messages.ViewChanged{View: view}
	}
}

// View renders the search view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	l := v.layout()
	listPanel := v.panel(FocusList).Width(l.listWidth).Height(l.bodyHeight).Render(v.list.View())
	mapPanel := v.panel(FocusMap).Width(l.mapWidth).Height(l.bodyHeight).Render(v.mapv.View())
	body := lipgloss.JoinHorizontal(lipgloss.Top, listPanel, " ", mapPanel)

	return lipgloss.JoinVertical(lipgloss.Left, v.top(), "", body, "", v.statusbar.View())
}

func (v *View) panel(focus Focus) lipgloss.Style {
	if v.focus == focus {
		return v.styles.PanelFocused
	}
	return v.styles.Panel
}

// top renders everything above the list and map.
func (v *View) top() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		v.styles.Title.Render("geofind"),
		"",
		v.form.View(),
		"",
		v.info.View(),
	)
}

// layout describes where the list and map content is drawn.
type layout struct {
	bodyTop    int
	bodyHeight int
	listWidth  int
	mapWidth   int
}

func (v *View) layout() layout {
	// Body sits below the top sections and a blank line. Two more lines
	// hold the blank line and status bar below it, two the panel borders.
	bodyTop := lipgloss.Height(v.top()) + 1
	bodyHeight := v.height - bodyTop - 4
	if bodyHeight < 4 {
		bodyHeight = 4
	}

	listWidth := v.width / 3
	if listWidth < 20 {
		listWidth = 20
	}
	// Two borders per panel and one separating column.
	mapWidth := v.width - listWidth - 5
	if mapWidth < 10 {
		mapWidth = 10
	}

	return layout{bodyTop: bodyTop, bodyHeight: bodyHeight, listWidth: listWidth, mapWidth: mapWidth}
}

// inList translates screen coordinates into list content coordinates.
func (l layout) inList(x, y int) (int, int, bool) {
	cx, cy := x-1, y-l.bodyTop-1
	if cx < 0 || cx >= l.listWidth || cy < 0 || cy >= l.bodyHeight {
		return 0, 0, false
	}
	return cx, cy, true
}

// inMap translates screen coordinates into map grid coordinates.
func (l layout) inMap(x, y int) (int, int, bool) {
	cx, cy := x-(l.listWidth+2)-1-1, y-l.bodyTop-1
	if cx < 0 || cx >= l.mapWidth || cy < 0 || cy >= l.bodyHeight {
		return 0, 0, false
	}
	return cx, cy, true
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.form.SetWidth(width)
	v.info.SetWidth(width)
	v.statusbar.SetWidth(width)

	l := v.layout()
	v.list.SetDimensions(l.listWidth, l.bodyHeight)
	v.mapv.SetDimensions(l.mapWidth, l.bodyHeight)
}

// SetFocus moves keyboard focus between the form, list and map.
func (v *View) SetFocus(focus Focus) tea.Cmd {
	v.focus = focus
	v.list.SetFocused(focus == FocusList)
	v.mapv.SetFocused(focus == FocusMap)
	v.statusbar.SetFocus(focus)

	if focus == FocusForm {
		return v.form.Focus()
	}
	v.form.Blur()
	return nil
}

// Focus returns the focused pane.
func (v *View) Focus() Focus {
	return v.focus
}

// ApplySettings updates the preselected search type after a settings change.
func (v *View) ApplySettings(settings domain.AppSettings) {
	v.form.SetSearchType(settings.Search.DefaultType)
}

// State returns the last rendered coordinator state.
func (v *View) State() domain.SearchUIState {
	return v.state
}

// Map returns the map component.
func (v *View) Map() *mapview.Map {
	return v.mapv
}

// List returns the marker list component.
func (v *View) List() *list.MarkerList {
	return v.list
}

// Form returns the search form component.
func (v *View) Form() *input.SearchForm {
	return v.form
}

// Width returns the current width.
func (v *View) Width() int {
	return v.width
}

// Height returns the current height.
func (v *View) Height() int {
	return v.height
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}
