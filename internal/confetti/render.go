package confetti

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

var palette = []lipgloss.Style{
	lipgloss.NewStyle().Foreground(lipgloss.Color("#A78BFA")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#F472B6")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#FBBF24")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#34D399")),
}

type cell struct {
	s    string
	cont bool
}

// Render draws the particles on a width x height canvas and returns one
// string per row. Each row is exactly width cells wide.
func (e *Effect) Render(width, height int) []string {
	if width <= 0 || height <= 0 {
		return nil
	}
	grid := make([][]cell, height)
	for y := range grid {
		grid[y] = make([]cell, width)
	}

	for _, p := range e.particles {
		x, y := int(p.X), int(p.Y)
		if p.X < 0 || p.Y < 0 || y >= height {
			continue
		}
		w := runewidth.StringWidth(p.Glyph)
		if w == 0 || x+w > width {
			continue
		}
		row := grid[y]
		if row[x].s != "" || row[x].cont || (w == 2 && (row[x+1].s != "" || row[x+1].cont)) {
			continue
		}
		row[x] = cell{s: palette[p.Color%len(palette)].Render(p.Glyph)}
		for i := 1; i < w; i++ {
			row[x+i] = cell{cont: true}
		}
	}

	lines := make([]string, height)
	var b strings.Builder
	for y, row := range grid {
		b.Reset()
		for _, c := range row {
			switch {
			case c.cont:
			case c.s != "":
				b.WriteString(c.s)
			default:
				b.WriteByte(' ')
			}
		}
		lines[y] = b.String()
	}
	return lines
}
