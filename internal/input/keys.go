package input

import tea "github.com/charmbracelet/bubbletea"

// Key identifiers shared with the game.
const (
	KeyUp    = "ArrowUp"
	KeyDown  = "ArrowDown"
	KeyLeft  = "ArrowLeft"
	KeyRight = "ArrowRight"
	KeyEnter = "Enter"
)

// KeyName maps a terminal key message to a key identifier. Arrow keys and
// enter get their browser-style names; everything else keeps tea's name.
func KeyName(msg tea.KeyMsg) string {
	switch msg.Type {
	case tea.KeyUp:
		return KeyUp
	case tea.KeyDown:
		return KeyDown
	case tea.KeyLeft:
		return KeyLeft
	case tea.KeyRight:
		return KeyRight
	case tea.KeyEnter:
		return KeyEnter
	default:
		return msg.String()
	}
}
