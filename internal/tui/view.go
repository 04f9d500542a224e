package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/quicktime/internal/sequence"
)

const defaultBarWidth = 40

type styles struct {
	title     lipgloss.Style
	status    map[sequence.Status]lipgloss.Style
	indicator map[sequence.KeyState]lipgloss.Style
	timer     lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	badge := r.NewStyle().Bold(true).Padding(0, 1).Border(lipgloss.RoundedBorder(), true)
	key := r.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder(), true).
		BorderForeground(lipgloss.Color("#BFDBFE"))
	return styles{
		title: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#F0F0F0")),
		status: map[sequence.Status]lipgloss.Style{
			sequence.Playing: badge.Foreground(lipgloss.Color("#94A3B8")),
			sequence.Pass:    badge.Foreground(lipgloss.Color("#22C55E")),
			sequence.Fail:    badge.Foreground(lipgloss.Color("#F43F5E")),
		},
		indicator: map[sequence.KeyState]lipgloss.Style{
			sequence.KeyTarget:   key.Bold(true).Foreground(lipgloss.Color("#3B82F6")),
			sequence.KeyCorrect:  key.Foreground(lipgloss.Color("#22C55E")),
			sequence.KeyFailed:   key.Foreground(lipgloss.Color("#EF4444")),
			sequence.KeyUpcoming: key.Foreground(lipgloss.Color("#64748B")),
		},
		timer: r.NewStyle().Foreground(lipgloss.Color("#6E6E6E")),
	}
}

var arrowGlyphs = map[sequence.Symbol]string{
	sequence.Up:    "↑",
	sequence.Down:  "↓",
	sequence.Left:  "←",
	sequence.Right: "→",
}

func keyGlyph(s sequence.Symbol) string {
	if g, ok := arrowGlyphs[s]; ok {
		return g
	}
	return string(s)
}

// View implements tea.Model.
func (m *Model) View() string {
	content := m.renderContent()
	if m.width == 0 || m.height == 0 {
		return content
	}
	placed := lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	if !m.confetti.Active() {
		return placed
	}
	return overlayRows(placed, m.confetti.Render(m.width, m.height))
}

func (m *Model) renderContent() string {
	snap := m.game.Snapshot()
	status := m.styles.status[snap.State.Status].Render(snap.State.Status.Label())

	percent := 0.0
	if snap.Duration > 0 {
		percent = float64(snap.TimeLeft) / float64(snap.Duration)
	}
	timer := lipgloss.JoinHorizontal(lipgloss.Center,
		m.progress.ViewAs(percent),
		m.styles.timer.Render(fmt.Sprintf(" %.1fs", snap.TimeLeft.Seconds())),
	)

	return lipgloss.JoinVertical(lipgloss.Center,
		m.styles.title.Render("Quick Time Game"),
		status,
		m.renderIndicators(snap.State),
		"",
		timer,
		"",
		m.help.View(m.keys),
	)
}

func (m *Model) renderIndicators(state sequence.State) string {
	indicators := sequence.Indicators(state)
	boxes := make([]string, 0, len(indicators))
	for _, ind := range indicators {
		boxes = append(boxes, m.styles.indicator[ind.State].Render(keyGlyph(ind.Key)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}

// overlayRows replaces blank rows of base with the matching layer rows, so
// the layer only shows around the content.
func overlayRows(base string, layer []string) string {
	rows := strings.Split(base, "\n")
	for i, row := range rows {
		if i >= len(layer) {
			break
		}
		if strings.TrimSpace(row) == "" {
			rows[i] = layer[i]
		}
	}
	return strings.Join(rows, "\n")
}
