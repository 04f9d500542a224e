// Package tui provides the Bubble Tea quick time interface.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/verte-zerg/quicktime/internal/confetti"
	"github.com/verte-zerg/quicktime/internal/frame"
	"github.com/verte-zerg/quicktime/internal/game"
	"github.com/verte-zerg/quicktime/internal/input"
	"github.com/verte-zerg/quicktime/internal/model"
	"github.com/verte-zerg/quicktime/internal/sequence"
)

const frameInterval = time.Second / 60

type frameMsg time.Time

// Model implements the Bubble Tea game UI. All game state is mutated from
// Update, so the frame queue, key bus and controller never see concurrent calls.
type Model struct {
	config model.Config
	log    zerolog.Logger
	now    func() time.Time
	origin time.Time

	queue    *frame.Queue
	bus      *input.Bus
	seeds    game.SeedSource
	game     *game.Controller
	confetti *confetti.Effect

	styles   styles
	keys     keyMap
	help     help.Model
	progress progress.Model

	width  int
	height int
	closed bool
}

// Option customizes a Model.
type Option func(*Model)

// WithRenderer builds styles from r, e.g. a per-session SSH renderer.
func WithRenderer(r *lipgloss.Renderer) Option {
	return func(m *Model) { m.styles = newStyles(r) }
}

// WithNow overrides the wall clock.
func WithNow(now func() time.Time) Option {
	return func(m *Model) { m.now = now }
}

// WithSeeds overrides the shuffle seed source.
func WithSeeds(seeds game.SeedSource) Option {
	return func(m *Model) { m.seeds = seeds }
}

// NewModel constructs a game TUI model. The round and its timer start
// immediately.
func NewModel(cfg model.Config, logger zerolog.Logger, opts ...Option) *Model {
	m := &Model{
		config: cfg,
		log:    logger,
		now:    time.Now,
		queue:  frame.NewQueue(),
		bus:    input.NewBus(),
		styles: newStyles(lipgloss.DefaultRenderer()),
		keys:   newKeyMap(),
		help:   help.New(),
		progress: progress.New(
			progress.WithSolidFill("#A78BFA"),
			progress.WithoutPercentage(),
			progress.WithWidth(defaultBarWidth),
		),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.origin = m.now()
	m.confetti = confetti.New(m.queue, confetti.Options{})

	symbols := make([]sequence.Symbol, len(cfg.Sequence))
	for i, s := range cfg.Sequence {
		symbols[i] = sequence.Symbol(s)
	}
	m.game = game.New(m.queue, game.Options{
		Duration: cfg.Duration,
		Sequence: symbols,
		Seeds:    m.seeds,
		OnWin:    m.handleWin,
		Logger:   &m.log,
	})
	m.game.Start(m.bus)
	m.log.Info().Dur("duration", m.game.Snapshot().Duration).Msg("round started")
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nextFrame()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.confetti.Resize(msg.Width, msg.Height)
		m.progress.Width = min(defaultBarWidth, max(msg.Width-4, 1))
		m.help.Width = msg.Width
		return m, nil
	case frameMsg:
		if m.closed {
			return m, nil
		}
		m.queue.Advance(time.Time(msg).Sub(m.origin))
		return m, nextFrame()
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.Close()
			return m, tea.Quit
		}
		m.queue.Sync(m.now().Sub(m.origin))
		m.bus.Publish(input.KeyName(msg))
		return m, nil
	default:
		return m, nil
	}
}

// Close stops the round, the win effect and all pending frames.
func (m *Model) Close() {
	if m.closed {
		return
	}
	m.closed = true
	m.game.Close()
	m.confetti.Close()
	snap := m.game.Snapshot()
	m.log.Info().Str("status", string(snap.State.Status)).Msg("game closed")
}

func (m *Model) handleWin() {
	snap := m.game.Snapshot()
	m.log.Info().Int64("time_left_ms", snap.TimeLeft.Milliseconds()).Msg("sequence matched")
	if m.config.Confetti {
		m.confetti.Fire()
	}
}

func nextFrame() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}
