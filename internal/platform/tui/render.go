package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/commotion/internal/core"
)

// palette holds one style per cell role, indexed by core.Color.
type palette []lipgloss.Style

// scenePalette is the terminal rendition of the scene roles.
var scenePalette = palette{
	core.ColorDefault: lipgloss.NewStyle(),
	core.ColorWall:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorGoal:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorPlayer:  lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
	core.ColorBottle:  lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorHUD:     lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorNotice:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorAlert:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
}

func (p palette) style(c core.Color) lipgloss.Style {
	if int(c) < len(p) {
		return p[c]
	}
	return p[core.ColorDefault]
}

// RenderScreen turns a cell buffer into styled terminal text. Runs of
// same-role cells share one escape sequence.
func RenderScreen(s *core.Screen) string {
	return scenePalette.render(s)
}

func (p palette) render(s *core.Screen) string {
	w, h := s.Width(), s.Height()
	var sb strings.Builder
	sb.Grow(w*h*2 + h)

	var run strings.Builder
	for y := range h {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < w; {
			role := s.GetCell(x, y).Color
			run.Reset()
			for ; x < w; x++ {
				c := s.GetCell(x, y)
				if c.Color != role {
					break
				}
				run.WriteRune(c.Rune)
			}
			sb.WriteString(p.style(role).Render(run.String()))
		}
	}
	return sb.String()
}
