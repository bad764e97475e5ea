package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// DisableColor strips every predefined style, for piped or non-TTY
// output. Must be called before any rendering.
func DisableColor() {
	plain := lipgloss.NewStyle()
	StyleGreen = plain
	StyleYellow = plain
	StyleRed = plain
	StyleBlue = plain
	StylePurple = plain
	StyleDim = plain
	StyleFg = plain
	StyleHeader = plain
	StyleBold = plain
}

// LoadColor returns the style for an allocated/capacity ratio:
// green under 80%, yellow between 80% and 100%, red above capacity.
func LoadColor(allocated, capacity int) lipgloss.Style {
	if capacity <= 0 {
		if allocated > 0 {
			return StyleRed
		}
		return StyleDim
	}
	switch {
	case allocated > capacity:
		return StyleRed
	case allocated*10 >= capacity*8:
		return StyleYellow
	default:
		return StyleGreen
	}
}

// LoadIndicator renders "alloc/cap" with the load color, e.g. "18/20".
func LoadIndicator(allocated, capacity int) string {
	return LoadColor(allocated, capacity).Render(fmt.Sprintf("%d/%d", allocated, capacity))
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
