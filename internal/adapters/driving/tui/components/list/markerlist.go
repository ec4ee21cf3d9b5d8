// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/geofind/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/geofind/internal/core/domain"
)

const (
	// headerLines is the header row plus a blank separator.
	headerLines = 2
	// rowLines is the height of one marker row.
	rowLines = 2
)

// MarkerList displays the markers of the current result set.
// It never changes the selection itself: Next, Prev and RowAt return the id
// the caller should hand to the coordinator.
type MarkerList struct {
	markers   []domain.Marker
	selection domain.Selection
	revision  uint64
	offset    int
	focused   bool
	styles    *styles.Styles
	width     int
	height    int
}

// NewMarkerList creates a new marker list component.
func NewMarkerList(s *styles.Styles) *MarkerList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &MarkerList{
		styles: s,
		width:  40,
		height: 10,
	}
}

// Init initialises the marker list.
func (l *MarkerList) Init() tea.Cmd {
	return nil
}

// View renders the marker list.
func (l *MarkerList) View() string {
	if len(l.markers) == 0 {
		return l.styles.Muted.Render("No results.")
	}

	lines := make([]string, 0, headerLines+len(l.markers)*rowLines)
	lines = append(lines, l.styles.Subtitle.Render(fmt.Sprintf("Results (%d)", len(l.markers))), "")

	start, end := l.visibleRange()
	for i := start; i < end; i++ {
		lines = append(lines, l.renderRow(i))
	}

	return strings.Join(lines, "\n")
}

func (l *MarkerList) renderRow(index int) string {
	m := l.markers[index]
	selected := l.selection.Is(m.ID)

	indicator := "  "
	if selected {
		indicator = "> "
	}

	name := truncate(m.DisplayName(), l.width-4)
	detail := truncate(fmt.Sprintf("Postal code: %s • %s", m.DisplayPostalCode(), m.DisplayState()), l.width-6)

	if selected {
		return l.styles.Selected.Render(indicator+name) + "\n" +
			l.styles.Muted.Render("    "+detail)
	}
	return l.styles.Normal.Render(indicator+name) + "\n" +
		l.styles.Muted.Render("    "+detail)
}

// visibleRange returns the marker indices that fit in the current height.
func (l *MarkerList) visibleRange() (start, end int) {
	start = l.offset
	end = start + l.visibleCount()
	if end > len(l.markers) {
		end = len(l.markers)
	}
	return start, end
}

func (l *MarkerList) visibleCount() int {
	n := (l.height - headerLines) / rowLines
	if n < 1 {
		n = 1
	}
	return n
}

// SetMarkers replaces the displayed markers. The scroll position is reset
// only when the revision changes.
func (l *MarkerList) SetMarkers(markers []domain.Marker, revision uint64) {
	l.markers = markers
	if revision != l.revision {
		l.revision = revision
		l.offset = 0
	}
	l.scrollToSelection()
}

// Markers returns the displayed markers.
func (l *MarkerList) Markers() []domain.Marker {
	return l.markers
}

// SetSelection highlights the selected marker and scrolls it into view.
func (l *MarkerList) SetSelection(selection domain.Selection) {
	l.selection = selection
	l.scrollToSelection()
}

// SelectedIndex returns the position of the highlighted marker, or -1.
func (l *MarkerList) SelectedIndex() int {
	id, ok := l.selection.ID()
	if !ok {
		return -1
	}
	return domain.IndexOfMarker(l.markers, id)
}

func (l *MarkerList) scrollToSelection() {
	i := l.SelectedIndex()
	if i < 0 {
		return
	}
	visible := l.visibleCount()
	if i < l.offset {
		l.offset = i
	} else if i >= l.offset+visible {
		l.offset = i - visible + 1
	}
}

// Next returns the id of the marker after the selected one.
// With nothing selected it returns the first marker.
func (l *MarkerList) Next() (domain.MarkerID, bool) {
	if len(l.markers) == 0 {
		return "", false
	}
	i := l.SelectedIndex()
	if i < len(l.markers)-1 {
		i++
	}
	return l.markers[i].ID, true
}

// Prev returns the id of the marker before the selected one.
func (l *MarkerList) Prev() (domain.MarkerID, bool) {
	if len(l.markers) == 0 {
		return "", false
	}
	i := l.SelectedIndex()
	if i > 0 {
		i--
	}
	if i < 0 {
		i = 0
	}
	return l.markers[i].ID, true
}

// RowAt returns the marker rendered at line y of the list view.
func (l *MarkerList) RowAt(y int) (domain.MarkerID, bool) {
	if y < headerLines || len(l.markers) == 0 {
		return "", false
	}
	i := l.offset + (y-headerLines)/rowLines
	start, end := l.visibleRange()
	if i < start || i >= end {
		return "", false
	}
	return l.markers[i].ID, true
}

// SetDimensions sets the available width and height.
func (l *MarkerList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
	l.scrollToSelection()
}

// SetFocused marks the list as having keyboard focus.
func (l *MarkerList) SetFocused(focused bool) {
	l.focused = focused
}

// Focused reports whether the list has keyboard focus.
func (l *MarkerList) Focused() bool {
	return l.focused
}

func truncate(s string, width int) string {
	if width < 4 {
		width = 4
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}
