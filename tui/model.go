// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tui

import (
	"context"
	"math"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/danielhkuo/purpose-swipe/deck"
	"github.com/danielhkuo/purpose-swipe/models"
)

// loadTimeout bounds the initial catalog fetch.
const loadTimeout = 10 * time.Second

// defaultWidth is used until the terminal reports its size.
const defaultWidth = 80

type phase int

const (
	phaseLoading phase = iota
	phasePlaying
	phaseResults
	phaseFailed
)

// DeckFactory builds the controller once the catalog is loaded. onChange must
// be passed through to deck.Config.OnChange.
type DeckFactory func(cards []models.PurposeCard, viewportWidth float64, onChange func()) *deck.Controller

// Config wires the player to its data.
type Config struct {
	LoadCards func(ctx context.Context) ([]models.PurposeCard, error)
	NewDeck   DeckFactory
	Logger    *zap.Logger
}

type cardsLoadedMsg struct {
	cards []models.PurposeCard
	err   error
}

type frameMsg struct{}

// changedMsg reports that background deck work changed its state.
type changedMsg struct{}

// Model is the player's Bubble Tea model.
type Model struct {
	cfg     Config
	log     *zap.Logger
	ctl     *deck.Controller
	changes chan struct{}

	phase    phase
	err      error
	keys     keyMap
	help     help.Model
	showHelp bool
	spinner  spinner.Model

	shown     int // card being drawn
	motion    *deck.Motion
	animating bool
	flying    bool
	drag      drag
	now       func() time.Time

	width  int
	height int
}

func New(cfg Config) Model {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = hotStyle

	return Model{
		cfg:     cfg,
		log:     log,
		changes: make(chan struct{}, 1),
		phase:   phaseLoading,
		keys:    defaultKeys(),
		help:    help.New(),
		spinner: sp,
		motion:  deck.NewMotion(deck.RestTransform()),
		now:     time.Now,
	}
}

// Deck returns the controller, or nil while cards are loading.
func (m Model) Deck() *deck.Controller {
	return m.ctl
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCardsCmd(), m.waitForChange())
}

func (m Model) loadCardsCmd() tea.Cmd {
	load := m.cfg.LoadCards
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		cards, err := load(ctx)
		return cardsLoadedMsg{cards: cards, err: err}
	}
}

func (m Model) waitForChange() tea.Cmd {
	ch := m.changes
	return func() tea.Msg {
		<-ch
		return changedMsg{}
	}
}

// notifier coalesces change notifications into the buffered channel.
func (m Model) notifier() func() {
	ch := m.changes
	return func() {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func frame() tea.Cmd {
	return tea.Tick(time.Second/deck.FPS, func(time.Time) tea.Msg {
		return frameMsg{}
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case cardsLoadedMsg:
		if msg.err != nil {
			m.log.Error("load cards failed", zap.Error(msg.err))
			m.phase = phaseFailed
			m.err = msg.err
			return m, nil
		}
		m.ctl = m.cfg.NewDeck(msg.cards, m.viewportWidth(), m.notifier())
		m.ctl.Start()
		m.phase = phasePlaying
		m.shown = 0
		m.motion = deck.NewMotion(deck.RestTransform())
		m.log.Info("cards loaded", zap.Int("count", len(msg.cards)))

	case changedMsg:
		return m, m.waitForChange()

	case frameMsg:
		return m.stepFrame()

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		if key.Matches(msg, m.keys.Help) || msg.String() == "esc" {
			m.showHelp = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		m.help.ShowAll = true
		return m, nil
	}

	switch m.phase {
	case phasePlaying:
		switch {
		case key.Matches(msg, m.keys.Left):
			return m.swipe(models.DirectionLeft)
		case key.Matches(msg, m.keys.Right):
			return m.swipe(models.DirectionRight)
		}
	case phaseResults:
		if key.Matches(msg, m.keys.Again) {
			m.ctl.Reset()
			m.phase = phasePlaying
			m.shown = 0
			m.flying = false
			m.motion = deck.NewMotion(deck.RestTransform())
			m.log.Info("exploring again")
		}
	}
	return m, nil
}

func (m Model) swipe(direction string) (tea.Model, tea.Cmd) {
	if m.flying {
		m.advance()
		if m.phase != phasePlaying {
			return m, nil
		}
	}
	t, ok := m.ctl.Swipe(direction)
	if !ok {
		return m, nil
	}
	m.motion.SetTarget(t)
	m.flying = true
	cmd := m.animate()
	return m, cmd
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.phase != phasePlaying || m.ctl == nil {
		return m, nil
	}
	now := m.now()

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if m.flying {
			m.advance()
			if m.phase != phasePlaying {
				return m, nil
			}
		}
		m.drag.press(msg.X, now)
	case tea.MouseActionMotion:
		if !m.drag.active {
			return m, nil
		}
		m.drag.move(msg.X, now)
	case tea.MouseActionRelease:
		if !m.drag.active {
			return m, nil
		}
		m.drag.release(msg.X, now)
	default:
		return m, nil
	}

	t := m.ctl.Drag(m.drag.gesture(m.shown))
	m.motion.SetTarget(t)
	if t.Gone {
		m.flying = true
	}
	cmd := m.animate()
	return m, cmd
}

func (m *Model) animate() tea.Cmd {
	if m.animating {
		return nil
	}
	m.animating = true
	return frame()
}

func (m Model) stepFrame() (tea.Model, tea.Cmd) {
	m.motion.Step()
	if m.flying && m.offscreen() {
		m.advance()
	}
	if !m.motion.Settled() {
		return m, frame()
	}
	m.animating = false
	return m, nil
}

// advance moves past a card that left the deck.
func (m *Model) advance() {
	m.flying = false
	st := m.ctl.State()
	if st.Current() < 0 {
		m.phase = phaseResults
		m.motion = deck.NewMotion(deck.RestTransform())
		return
	}
	m.shown = st.Current()
	m.motion = deck.NewMotion(deck.RestTransform())
}

// offscreen reports whether the drawn card has fully left the terminal.
func (m Model) offscreen() bool {
	cols := math.Abs(m.motion.X.Pos) / cellWidth
	return cols >= float64(m.termWidth()+cardWidth)/2
}

func (m Model) termWidth() int {
	if m.width <= 0 {
		return defaultWidth
	}
	return m.width
}

func (m Model) viewportWidth() float64 {
	return float64(m.termWidth()) * cellWidth
}
