// Package infopanel renders the search status and the descriptive
// information that accompanies a result set.
package infopanel

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/geofind/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/geofind/internal/core/domain"
)

// StatusText returns the one-word status for a state.
func StatusText(state domain.SearchUIState) string {
	switch {
	case state.Loading:
		return "Loading..."
	case state.HasError():
		return "Error"
	case state.Meta.Type != "":
		return "Ready"
	default:
		return "Waiting for search"
	}
}

// Panel shows status, search label, result count, errors and info.
type Panel struct {
	styles *styles.Styles
	state  domain.SearchUIState
	width  int
}

// New creates an info panel.
func New(s *styles.Styles) *Panel {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &Panel{styles: s, width: 80}
}

// SetState replaces the rendered state.
func (p *Panel) SetState(state domain.SearchUIState) {
	p.state = state
}

// SetWidth sets the width used to wrap the summary.
func (p *Panel) SetWidth(width int) {
	p.width = width
}

// View renders the panel.
func (p *Panel) View() string {
	st := p.state
	settled := !st.Loading && !st.HasError()

	header := []string{p.field("Status", StatusText(st))}
	if st.Meta.Type != "" {
		header = append(header, p.field("Search", fmt.Sprintf("%s — %s", st.Meta.Type.Label(), st.Meta.Value)))
		if settled {
			header = append(header, p.field("Results", fmt.Sprintf("%d", st.Meta.Count)))
		}
	}
	lines := []string{strings.Join(header, "   ")}

	if st.HasError() {
		style := p.styles.Error
		if st.ErrorKind == domain.ErrorKindSoftEmpty {
			style = p.styles.Warning
		}
		lines = append(lines, style.Render(st.ErrorMessage))
	}

	if settled && st.Info != nil {
		lines = append(lines, "", p.renderInfo(st.Info))
	}

	return strings.Join(lines, "\n")
}

func (p *Panel) field(label, value string) string {
	return p.styles.Label.Render(label+":") + " " + p.styles.Normal.Render(value)
}

func (p *Panel) renderInfo(info *domain.Info) string {
	width := p.width
	if width < 20 {
		width = 20
	}

	lines := []string{
		p.styles.Title.Render(info.DisplayTitle()),
		lipgloss.NewStyle().Width(width).Render(info.DisplaySummary()),
	}
	if info.Thumbnail != "" {
		lines = append(lines, p.styles.Muted.Render("Image: ")+p.styles.Link.Render(info.Thumbnail))
	}
	if info.URL != "" {
		lines = append(lines, p.styles.Muted.Render("More on Wikipedia: ")+p.styles.Link.Render(info.URL))
	}
	return strings.Join(lines, "\n")
}
