// Package mapview renders markers on a terminal map.
//
// The map uses an equirectangular projection on a character grid. A
// terminal cell is roughly twice as tall as it is wide, so one row spans
// twice the degrees of one column. Zoom level z shows 16*2^z columns per
// 360 degrees of longitude.
package mapview

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/twpayne/go-geom"

	"github.com/custodia-labs/geofind/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/geofind/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/geofind/internal/core/domain"
	"github.com/custodia-labs/geofind/internal/core/ports/driven"
)

// Verify interface compliance.
var _ driven.MapViewport = (*Map)(nil)

const (
	// PinRune and SelectedPinRune mark marker positions.
	PinRune         = '●'
	SelectedPinRune = '◉'

	// AnimationFrames is the number of frames an animated pan takes.
	AnimationFrames = 8

	// FrameInterval is the delay between animation frames.
	FrameInterval = 30 * time.Millisecond

	// footerLines is the centre/extent line plus the popup line.
	footerLines = 2

	maxLat = 85.0
)

// Map is the map component. Its centre moves on PanTo, user panning and
// animation frames; its zoom only changes on explicit user input.
type Map struct {
	styles *styles.Styles

	centerLat float64
	centerLon float64
	zoom      int

	markers   []domain.Marker
	selection domain.Selection

	width   int
	height  int
	focused bool

	// Pan animation. seq identifies the current animation so frames
	// scheduled for an older one can be dropped.
	animating bool
	seq       int
	frame     int
	fromLat   float64
	fromLon   float64
	toLat     float64
	toLon     float64
}

// New creates a map. It centres on the first marker when markers is
// non-empty, otherwise on the configured default centre.
func New(s *styles.Styles, settings domain.MapSettings, markers []domain.Marker) *Map {
	if s == nil {
		s = styles.DefaultStyles()
	}

	m := &Map{
		styles:    s,
		centerLat: settings.CenterLat,
		centerLon: settings.CenterLon,
		zoom:      domain.ClampZoom(settings.Zoom),
		width:     60,
		height:    20,
	}
	if len(markers) > 0 {
		m.markers = markers
		m.centerLat = clampLat(markers[0].Lat)
		m.centerLon = wrapLon(markers[0].Lon)
	}
	return m
}

// Init initialises the map.
func (m *Map) Init() tea.Cmd {
	return nil
}

// Update advances the pan animation.
func (m *Map) Update(msg tea.Msg) (*Map, tea.Cmd) {
	frame, ok := msg.(messages.MapFrame)
	if !ok || !m.animating || frame.Seq != m.seq {
		return m, nil
	}

	m.frame++
	if m.frame >= AnimationFrames {
		m.centerLat, m.centerLon = m.toLat, m.toLon
		m.animating = false
		return m, nil
	}

	t := easeOut(float64(m.frame) / AnimationFrames)
	m.centerLat = m.fromLat + (m.toLat-m.fromLat)*t
	m.centerLon = m.fromLon + (m.toLon-m.fromLon)*t
	return m, m.Tick()
}

// easeOut decelerates towards the end of the animation.
func easeOut(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// PanTo re-centres the map on cmd, animated when requested. Zoom is kept.
func (m *Map) PanTo(cmd domain.PanCommand) {
	m.seq++
	if !cmd.Animate {
		m.animating = false
		m.centerLat, m.centerLon = clampLat(cmd.Lat), wrapLon(cmd.Lon)
		return
	}
	m.animating = true
	m.frame = 0
	m.fromLat, m.fromLon = m.centerLat, m.centerLon
	m.toLat, m.toLon = clampLat(cmd.Lat), wrapLon(cmd.Lon)
}

// Tick schedules the next animation frame, or returns nil when idle.
func (m *Map) Tick() tea.Cmd {
	if !m.animating {
		return nil
	}
	seq := m.seq
	return tea.Tick(FrameInterval, func(time.Time) tea.Msg {
		return messages.MapFrame{Seq: seq}
	})
}

// Animating reports whether a pan animation is running.
func (m *Map) Animating() bool {
	return m.animating
}

// Seq returns the id of the latest pan.
func (m *Map) Seq() int {
	return m.seq
}

// PanBy moves the centre by a number of cells and stops any animation.
func (m *Map) PanBy(cols, rows int) {
	m.seq++
	m.animating = false
	lonStep, latStep := m.degreesPerCell()
	m.centerLon = wrapLon(m.centerLon + float64(cols)*lonStep)
	m.centerLat = clampLat(m.centerLat - float64(rows)*latStep)
}

// PanStep returns the number of columns and rows moved by one pan key press.
func (m *Map) PanStep() (cols, rows int) {
	cols = m.width / 4
	rows = m.gridHeight() / 4
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return cols, rows
}

// ZoomIn increases the zoom level, up to domain.MaxZoom.
func (m *Map) ZoomIn() {
	m.zoom = domain.ClampZoom(m.zoom + 1)
}

// ZoomOut decreases the zoom level, down to domain.MinZoom.
func (m *Map) ZoomOut() {
	m.zoom = domain.ClampZoom(m.zoom - 1)
}

// Zoom returns the zoom level.
func (m *Map) Zoom() int {
	return m.zoom
}

// Center returns the current centre.
func (m *Map) Center() (lat, lon float64) {
	return m.centerLat, m.centerLon
}

// SetMarkers replaces the markers drawn on the map. The centre is left alone.
func (m *Map) SetMarkers(markers []domain.Marker) {
	m.markers = markers
}

// SetSelection marks the selected pin.
func (m *Map) SetSelection(selection domain.Selection) {
	m.selection = selection
}

// SetDimensions sets the size of the map including its footer.
func (m *Map) SetDimensions(width, height int) {
	m.width = width
	m.height = height
}

// SetFocused marks the map as having keyboard focus.
func (m *Map) SetFocused(focused bool) {
	m.focused = focused
}

// Focused reports whether the map has keyboard focus.
func (m *Map) Focused() bool {
	return m.focused
}

func (m *Map) gridHeight() int {
	h := m.height - footerLines
	if h < 3 {
		h = 3
	}
	return h
}

func (m *Map) gridWidth() int {
	if m.width < 3 {
		return 3
	}
	return m.width
}

// degreesPerCell returns the longitude span of a column and the latitude
// span of a row at the current zoom.
func (m *Map) degreesPerCell() (lon, lat float64) {
	lon = 360 / (16 * math.Pow(2, float64(m.zoom)))
	return lon, 2 * lon
}

// Project returns the grid cell of a coordinate. ok is false when the
// coordinate falls outside the visible grid.
func (m *Map) Project(lat, lon float64) (col, row int, ok bool) {
	if !m.Bounds().OverlapsPoint(geom.XY, geom.Coord{lon, lat}) {
		return 0, 0, false
	}
	lonStep, latStep := m.degreesPerCell()
	col = int(math.Floor((lon-m.centerLon)/lonStep + float64(m.gridWidth())/2))
	row = int(math.Floor((m.centerLat-lat)/latStep + float64(m.gridHeight())/2))
	if col < 0 || col >= m.gridWidth() || row < 0 || row >= m.gridHeight() {
		return 0, 0, false
	}
	return col, row, true
}

// Unproject returns the coordinate at the centre of a grid cell.
func (m *Map) Unproject(col, row int) (lat, lon float64) {
	lonStep, latStep := m.degreesPerCell()
	lon = m.centerLon + (float64(col)+0.5-float64(m.gridWidth())/2)*lonStep
	lat = m.centerLat - (float64(row)+0.5-float64(m.gridHeight())/2)*latStep
	return lat, lon
}

// Bounds returns the visible area as lon/lat bounds.
func (m *Map) Bounds() *geom.Bounds {
	lonStep, latStep := m.degreesPerCell()
	halfW := float64(m.gridWidth()) / 2 * lonStep
	halfH := float64(m.gridHeight()) / 2 * latStep
	return geom.NewBounds(geom.XY).Set(
		m.centerLon-halfW, m.centerLat-halfH,
		m.centerLon+halfW, m.centerLat+halfH,
	)
}

// ResultExtent returns the bounds of all markers. ok is false without markers.
func (m *Map) ResultExtent() (*geom.Bounds, bool) {
	if len(m.markers) == 0 {
		return nil, false
	}
	flat := make([]float64, 0, 2*len(m.markers))
	for _, mk := range m.markers {
		flat = append(flat, mk.Lon, mk.Lat)
	}
	return geom.NewMultiPointFlat(geom.XY, flat).Bounds(), true
}

// PinAt returns the marker drawn at a grid cell. The selected marker wins
// when several share the cell, otherwise the first in list order.
func (m *Map) PinAt(col, row int) (domain.MarkerID, bool) {
	var (
		found domain.MarkerID
		ok    bool
	)
	for _, mk := range m.markers {
		c, r, visible := m.Project(mk.Lat, mk.Lon)
		if !visible || c != col || r != row {
			continue
		}
		if m.selection.Is(mk.ID) {
			return mk.ID, true
		}
		if !ok {
			found, ok = mk.ID, true
		}
	}
	return found, ok
}

// NextPin returns the marker after the selected one, wrapping around.
func (m *Map) NextPin() (domain.MarkerID, bool) {
	return m.cycle(1)
}

// PrevPin returns the marker before the selected one, wrapping around.
func (m *Map) PrevPin() (domain.MarkerID, bool) {
	return m.cycle(-1)
}

func (m *Map) cycle(step int) (domain.MarkerID, bool) {
	n := len(m.markers)
	if n == 0 {
		return "", false
	}
	i := -1
	if id, ok := m.selection.ID(); ok {
		i = domain.IndexOfMarker(m.markers, id)
	}
	if i < 0 {
		return m.markers[0].ID, true
	}
	return m.markers[((i+step)%n+n)%n].ID, true
}

// View renders the grid and the footer.
func (m *Map) View() string {
	w, h := m.gridWidth(), m.gridHeight()

	cells := make([][]string, h)
	for r := range cells {
		cells[r] = make([]string, w)
		for c := range cells[r] {
			cells[r][c] = " "
		}
	}

	m.drawGraticule(cells)

	// Selected pin last so it is never hidden by a neighbour.
	var selected *domain.Marker
	for i := range m.markers {
		mk := &m.markers[i]
		if m.selection.Is(mk.ID) {
			selected = mk
			continue
		}
		if c, r, ok := m.Project(mk.Lat, mk.Lon); ok {
			cells[r][c] = m.styles.Pin.Render(string(PinRune))
		}
	}
	if selected != nil {
		if c, r, ok := m.Project(selected.Lat, selected.Lon); ok {
			cells[r][c] = m.styles.PinSelected.Render(string(SelectedPinRune))
		}
	}

	lines := make([]string, 0, h+footerLines)
	for _, row := range cells {
		lines = append(lines, strings.Join(row, ""))
	}
	lines = append(lines, m.styles.Muted.Render(m.footer()), m.popup(selected))
	return strings.Join(lines, "\n")
}

func (m *Map) drawGraticule(cells [][]string) {
	lonStep, latStep := m.degreesPerCell()
	step := niceStep(float64(m.gridWidth()) * lonStep / 4)

	var vertical, horizontal []bool
	vertical = make([]bool, m.gridWidth())
	horizontal = make([]bool, m.gridHeight())

	for c := range vertical {
		lon := m.centerLon + (float64(c)-float64(m.gridWidth())/2)*lonStep
		vertical[c] = crossesMultiple(lon, lon+lonStep, step)
	}
	for r := range horizontal {
		lat := m.centerLat - (float64(r)-float64(m.gridHeight())/2)*latStep
		horizontal[r] = crossesMultiple(lat-latStep, lat, step)
	}

	for r := range cells {
		for c := range cells[r] {
			var ch string
			switch {
			case vertical[c] && horizontal[r]:
				ch = "┼"
			case vertical[c]:
				ch = "│"
			case horizontal[r]:
				ch = "─"
			default:
				continue
			}
			cells[r][c] = m.styles.Graticule.Render(ch)
		}
	}
}

// crossesMultiple reports whether [lo, hi) contains a multiple of step.
func crossesMultiple(lo, hi, step float64) bool {
	return math.Ceil(lo/step)*step < hi
}

// niceStep rounds a span in degrees to a readable grid spacing.
func niceStep(span float64) float64 {
	for _, s := range []float64{0.01, 0.02, 0.05, 0.1, 0.2, 0.5, 1, 2, 5, 10, 15, 30, 45} {
		if s >= span {
			return s
		}
	}
	return 90
}

func (m *Map) footer() string {
	out := fmt.Sprintf("Centre %.4f, %.4f  Zoom %d", m.centerLat, m.centerLon, m.zoom)
	if b, ok := m.ResultExtent(); ok {
		out += fmt.Sprintf("  Extent %.2f,%.2f to %.2f,%.2f", b.Min(1), b.Min(0), b.Max(1), b.Max(0))
	}
	return out
}

func (m *Map) popup(selected *domain.Marker) string {
	if selected == nil {
		return ""
	}
	text := fmt.Sprintf("%c %s • %s • %s", SelectedPinRune,
		selected.DisplayName(), selected.DisplayPostalCode(), selected.DisplayState())
	return m.styles.PinSelected.Render(text) + " " + m.styles.Muted.Render("Selected")
}

func clampLat(lat float64) float64 {
	return math.Max(-maxLat, math.Min(maxLat, lat))
}

func wrapLon(lon float64) float64 {
	for lon > 180 {
		lon -= 360
	}
	for lon < -180 {
		lon += 360
	}
	return lon
}
