package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTheme(t *testing.T) {
	theme := DefaultTheme()

	require.NotNil(t, theme)
	for name, c := range map[string]lipgloss.Color{
		"primary":   theme.Primary,
		"secondary": theme.Secondary,
		"muted":     theme.Muted,
		"warning":   theme.Warning,
		"error":     theme.Error,
		"border":    theme.Border,
		"highlight": theme.Highlight,
	} {
		assert.NotEmpty(t, string(c), name)
	}
}

func TestDefaultTheme_SoftAndHardErrorsDiffer(t *testing.T) {
	theme := DefaultTheme()

	assert.NotEqual(t, theme.Warning, theme.Error)
	assert.NotEqual(t, theme.Primary, theme.Secondary)
}

func TestNewStyles_WithTheme(t *testing.T) {
	theme := DefaultTheme()
	s := NewStyles(theme)

	require.NotNil(t, s)
	assert.Equal(t, theme, s.Theme())
}

func TestNewStyles_NilTheme(t *testing.T) {
	s := NewStyles(nil)

	require.NotNil(t, s)
	assert.NotNil(t, s.Theme())
}

func TestStyles_RenderKeepsText(t *testing.T) {
	s := DefaultStyles()

	assert.Contains(t, s.PinSelected.Render("◉"), "◉")
	assert.Contains(t, s.Warning.Render("no results found"), "no results found")
	assert.Contains(t, s.PanelFocused.Render("map"), "map")
}
