package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/pika-runner/internal/core"
)

// Theme maps core.Color to lipgloss styles.
type Theme struct {
	Name   string
	styles map[core.Color]lipgloss.Style
	help   lipgloss.Style
}

// DarkTheme suits terminals with a dark background.
func DarkTheme() Theme {
	return Theme{
		Name: "dark",
		styles: map[core.Color]lipgloss.Style{
			core.ColorDefault:     lipgloss.NewStyle(),
			core.ColorPlayer:      lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
			core.ColorObstacle:    lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
			core.ColorPlaceholder: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			core.ColorGround:      lipgloss.NewStyle().Foreground(lipgloss.Color("94")),
			core.ColorHUD:         lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
			core.ColorAlert:       lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			core.ColorMuted:       lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		},
		help: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// LightTheme suits terminals with a light background.
func LightTheme() Theme {
	return Theme{
		Name: "light",
		styles: map[core.Color]lipgloss.Style{
			core.ColorDefault:     lipgloss.NewStyle(),
			core.ColorPlayer:      lipgloss.NewStyle().Foreground(lipgloss.Color("172")).Bold(true),
			core.ColorObstacle:    lipgloss.NewStyle().Foreground(lipgloss.Color("22")),
			core.ColorPlaceholder: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
			core.ColorGround:      lipgloss.NewStyle().Foreground(lipgloss.Color("130")),
			core.ColorHUD:         lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Bold(true),
			core.ColorAlert:       lipgloss.NewStyle().Foreground(lipgloss.Color("160")).Bold(true),
			core.ColorMuted:       lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
		},
		help: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

// Style returns the style for c, falling back to the default style.
func (t Theme) Style(c core.Color) lipgloss.Style {
	if style, ok := t.styles[c]; ok {
		return style
	}
	return t.styles[core.ColorDefault]
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen, theme Theme) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := 0; y < s.Height(); y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			sb.WriteString(theme.Style(startColor).Render(run.String()))
		}
	}
	return sb.String()
}
