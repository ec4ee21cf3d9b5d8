// Package input provides the search form component for the TUI.
package input

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/geofind/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/geofind/internal/core/domain"
)

// Placeholder is shown while the query field is empty.
const Placeholder = "e.g. 42119, Berlin or Bayern"

// SearchForm combines a search type selector, a query field and a submit button.
type SearchForm struct {
	textinput  textinput.Model
	styles     *styles.Styles
	searchType domain.SearchType
	loading    bool
	width      int
}

// NewSearchForm creates a search form preselecting searchType.
func NewSearchForm(s *styles.Styles, searchType domain.SearchType) *SearchForm {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if !searchType.IsValid() {
		searchType = domain.SearchTypePostalCode
	}

	ti := textinput.New()
	ti.Placeholder = Placeholder
	ti.Focus()
	ti.CharLimit = 128
	ti.Width = 40

	return &SearchForm{
		textinput:  ti,
		styles:     s,
		searchType: searchType,
		width:      80,
	}
}

// Init initialises the form.
func (f *SearchForm) Init() tea.Cmd {
	return textinput.Blink
}

// Update forwards messages to the query field.
func (f *SearchForm) Update(msg tea.Msg) (*SearchForm, tea.Cmd) {
	var cmd tea.Cmd
	f.textinput, cmd = f.textinput.Update(msg)
	return f, cmd
}

// View renders the form on one row.
func (f *SearchForm) View() string {
	chip := f.styles.Chip.Render(f.searchType.Label() + " ▾")
	field := f.styles.InputField.Render(f.textinput.View())

	button := f.styles.Button.Render("Search")
	if f.loading {
		button = f.styles.ButtonDisabled.Render("Searching...")
	}

	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, chip, " ", field, " ", button)
}

// Query returns the form content as a search query. The value is not trimmed.
func (f *SearchForm) Query() domain.SearchQuery {
	return domain.SearchQuery{Type: f.searchType, Value: f.textinput.Value()}
}

// Submittable reports whether the form holds a non-blank value.
func (f *SearchForm) Submittable() bool {
	return strings.TrimSpace(f.textinput.Value()) != ""
}

// Value returns the raw query text.
func (f *SearchForm) Value() string {
	return f.textinput.Value()
}

// SetValue sets the query text.
func (f *SearchForm) SetValue(value string) {
	f.textinput.SetValue(value)
}

// SearchType returns the selected search type.
func (f *SearchForm) SearchType() domain.SearchType {
	return f.searchType
}

// SetSearchType selects a search type. Invalid types are ignored.
func (f *SearchForm) SetSearchType(t domain.SearchType) {
	if t.IsValid() {
		f.searchType = t
	}
}

// CycleType selects the next search type.
func (f *SearchForm) CycleType() domain.SearchType {
	f.searchType = f.searchType.Next()
	return f.searchType
}

// SetLoading toggles the busy state of the submit button.
func (f *SearchForm) SetLoading(loading bool) {
	f.loading = loading
}

// Loading reports whether a search is in flight.
func (f *SearchForm) Loading() bool {
	return f.loading
}

// Focus sets focus on the query field.
func (f *SearchForm) Focus() tea.Cmd {
	return f.textinput.Focus()
}

// Blur removes focus from the query field.
func (f *SearchForm) Blur() {
	f.textinput.Blur()
}

// Focused returns whether the query field is focused.
func (f *SearchForm) Focused() bool {
	return f.textinput.Focused()
}

// SetWidth sets the width available to the form.
func (f *SearchForm) SetWidth(width int) {
	f.width = width
	// Room for the type chip, the button and borders.
	fieldWidth := width - 44
	if fieldWidth < 16 {
		fieldWidth = 16
	}
	f.textinput.Width = fieldWidth
}

// Width returns the current width.
func (f *SearchForm) Width() int {
	return f.width
}

// Reset clears the query text.
func (f *SearchForm) Reset() {
	f.textinput.Reset()
}
