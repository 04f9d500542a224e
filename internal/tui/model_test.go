package tui

import (
	"reflect"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/verte-zerg/quicktime/internal/game"
	"github.com/verte-zerg/quicktime/internal/model"
	"github.com/verte-zerg/quicktime/internal/sequence"
)

type fixedSeed int

func (s fixedSeed) Seed() int { return int(s) }

var testStart = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func newTestModel(confetti bool) *Model {
	cfg := model.Config{
		Duration: game.DefaultDuration,
		Sequence: []string{"ArrowDown", "ArrowUp", "ArrowRight", "ArrowLeft"},
		Confetti: confetti,
	}
	return NewModel(cfg, zerolog.Nop(),
		WithNow(func() time.Time { return testStart }),
		WithSeeds(fixedSeed(42)),
	)
}

func press(m *Model, types ...tea.KeyType) {
	for _, kt := range types {
		m.Update(tea.KeyMsg{Type: kt})
	}
}

func TestModelMatchesSequence(t *testing.T) {
	m := newTestModel(false)
	press(m, tea.KeyDown, tea.KeyUp, tea.KeyRight, tea.KeyLeft)

	if got := m.game.Snapshot().State.Status; got != sequence.Pass {
		t.Fatalf("expected PASS, got %s", got)
	}
	if view := m.View(); !strings.Contains(view, "You Win") {
		t.Fatalf("expected win label in view:\n%s", view)
	}
}

func TestModelWrongKeyFails(t *testing.T) {
	m := newTestModel(false)
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	if got := m.game.Snapshot().State.Status; got != sequence.Fail {
		t.Fatalf("expected FAIL, got %s", got)
	}
	if view := m.View(); !strings.Contains(view, "Game Over") {
		t.Fatalf("expected game over label in view:\n%s", view)
	}
}

func TestModelFramesDriveTimer(t *testing.T) {
	m := newTestModel(false)
	for i := 1; i <= 20; i++ {
		_, cmd := m.Update(frameMsg(testStart.Add(time.Duration(i) * 100 * time.Millisecond)))
		if cmd == nil {
			t.Fatalf("expected next frame to be scheduled")
		}
	}
	snap := m.game.Snapshot()
	if snap.TimeLeft != time.Second || snap.State.Status != sequence.Playing {
		t.Fatalf("expected PLAYING with 1s left, got %s with %v", snap.State.Status, snap.TimeLeft)
	}

	for i := 21; i <= 30; i++ {
		m.Update(frameMsg(testStart.Add(time.Duration(i) * 100 * time.Millisecond)))
	}
	snap = m.game.Snapshot()
	if snap.TimeLeft != 0 || snap.State.Status != sequence.Fail {
		t.Fatalf("expected FAIL with 0 left, got %s with %v", snap.State.Status, snap.TimeLeft)
	}
}

func TestModelEnterRestarts(t *testing.T) {
	m := newTestModel(false)
	press(m, tea.KeyDown, tea.KeyEnter)

	snap := m.game.Snapshot()
	want := []sequence.Symbol{sequence.Up, sequence.Right, sequence.Down, sequence.Left}
	if !reflect.DeepEqual(snap.State.SequenceToMatch, want) {
		t.Fatalf("expected %v, got %v", want, snap.State.SequenceToMatch)
	}
	if len(snap.State.InputSequence) != 0 || snap.TimeLeft != game.DefaultDuration {
		t.Fatalf("expected a fresh round, got %+v", snap)
	}
}

func TestModelConfettiOnWin(t *testing.T) {
	m := newTestModel(true)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	press(m, tea.KeyDown, tea.KeyUp, tea.KeyRight, tea.KeyLeft)
	if !m.confetti.Active() {
		t.Fatalf("expected confetti to start on win")
	}

	quiet := newTestModel(false)
	press(quiet, tea.KeyDown, tea.KeyUp, tea.KeyRight, tea.KeyLeft)
	if quiet.confetti.Active() {
		t.Fatalf("expected confetti to stay idle when disabled")
	}
}

func TestModelQuitClosesGame(t *testing.T) {
	m := newTestModel(true)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if m.queue.Pending() != 0 {
		t.Fatalf("expected no pending frames after quit, got %d", m.queue.Pending())
	}
	if m.bus.Subscribers() != 0 {
		t.Fatalf("expected controller unsubscribed after quit")
	}
	if _, cmd := m.Update(frameMsg(testStart.Add(time.Second))); cmd != nil {
		t.Fatalf("expected no further frames after quit")
	}
}

func TestViewFitsWindow(t *testing.T) {
	m := newTestModel(true)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	press(m, tea.KeyDown, tea.KeyUp, tea.KeyRight, tea.KeyLeft)
	m.Update(frameMsg(testStart.Add(50 * time.Millisecond)))

	rows := strings.Split(m.View(), "\n")
	if len(rows) != 24 {
		t.Fatalf("expected 24 rows, got %d", len(rows))
	}
}

func TestOverlayRows(t *testing.T) {
	base := "   \n abc \n   "
	got := overlayRows(base, []string{"*  ", "xxxxx", "  *"})
	want := "*  \n abc \n  *"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestKeyGlyph(t *testing.T) {
	if keyGlyph(sequence.Up) != "↑" || keyGlyph(sequence.Symbol("w")) != "w" {
		t.Fatalf("unexpected glyphs")
	}
}
