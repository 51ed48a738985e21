// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/danielhkuo/purpose-swipe/deck"
	"github.com/danielhkuo/purpose-swipe/models"
	"github.com/danielhkuo/purpose-swipe/tally"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeBackend struct {
	mu       sync.Mutex
	sessions int
	swipes   int
}

func (f *fakeBackend) CreateSession(_ context.Context, data json.RawMessage) (models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions++
	return models.Session{ID: fmt.Sprintf("session-%d", f.sessions), SessionData: data}, nil
}

func (f *fakeBackend) RecordSwipe(_ context.Context, sessionID, cardID, direction string) (models.Swipe, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.swipes++
	return models.Swipe{SessionID: sessionID, CardID: cardID, Direction: direction}, nil
}

func (f *fakeBackend) CompleteSession(_ context.Context, sessionID string) (models.Session, error) {
	return models.Session{ID: sessionID}, nil
}

func (f *fakeBackend) Results(context.Context, string) (tally.Results, error) {
	return tally.Results{}, nil
}

var testCards = []models.PurposeCard{
	{ID: "A", Title: "Alpha", Description: "First card", Category: "X"},
	{ID: "B", Title: "Bravo", Description: "Second card", Category: "X"},
	{ID: "C", Title: "Charlie", Description: "Third card", Category: "Y"},
}

func testConfig(cards []models.PurposeCard, loadErr error) Config {
	be := &fakeBackend{}
	return Config{
		LoadCards: func(context.Context) ([]models.PurposeCard, error) {
			return cards, loadErr
		},
		NewDeck: func(cards []models.PurposeCard, width float64, onChange func()) *deck.Controller {
			return deck.New(be, deck.Config{
				Cards:         cards,
				SessionData:   json.RawMessage(`{"userSession":"tui-test"}`),
				ViewportWidth: width,
				OnChange:      onChange,
			})
		},
	}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

// loaded returns a model with cards loaded and its session assigned.
func loaded(t *testing.T, cards []models.PurposeCard) Model {
	t.Helper()
	m := New(testConfig(cards, nil))
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	m, _ = update(t, m, m.loadCardsCmd()())
	require.NotNil(t, m.Deck())

	ctl := m.Deck()
	t.Cleanup(ctl.Wait)
	ctl.Wait()
	return m
}

// settle runs animation frames until the deck is at rest.
func settle(t *testing.T, m Model) Model {
	t.Helper()
	for i := 0; i < 10*deck.FPS && m.animating; i++ {
		m, _ = update(t, m, frameMsg{})
	}
	require.False(t, m.animating, "animation did not settle")
	return m
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_Loading(t *testing.T) {
	m := New(testConfig(testCards, nil))
	assert.Equal(t, phaseLoading, m.phase)
	assert.Contains(t, m.View(), "Loading purpose cards")
	assert.Nil(t, m.Deck())

	// Keys do nothing before the deck exists
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Nil(t, cmd)
	assert.Equal(t, phaseLoading, m.phase)
}

func TestModel_LoadFailure(t *testing.T) {
	m := New(testConfig(nil, errors.New("connection refused")))
	m, _ = update(t, m, m.loadCardsCmd()())

	assert.Equal(t, phaseFailed, m.phase)
	assert.Nil(t, m.Deck())
	assert.Contains(t, m.View(), "connection refused")
}

func TestModel_ShowsFirstCard(t *testing.T) {
	m := loaded(t, testCards)

	assert.Equal(t, phasePlaying, m.phase)
	view := m.View()
	assert.Contains(t, view, "Alpha")
	assert.Contains(t, view, "1 of 3")
	assert.Contains(t, view, "session session-")
}

func TestModel_KeySwipesAdvance(t *testing.T) {
	m := loaded(t, testCards)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	require.NotNil(t, cmd)
	assert.True(t, m.flying)
	assert.Equal(t, 0, m.shown, "card stays drawn while it flies out")

	m = settle(t, m)
	assert.Equal(t, 1, m.shown)
	assert.Contains(t, m.View(), "Bravo")
	assert.Contains(t, m.View(), "2 of 3")

	m, _ = update(t, m, keyRunes("h"))
	m = settle(t, m)
	assert.Equal(t, 2, m.shown)

	st := m.Deck().State()
	assert.Equal(t, 1, st.Results.Get("X"))
}

func TestModel_KeyDuringFlyOut(t *testing.T) {
	m := loaded(t, testCards)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 1, m.shown, "second swipe finishes the first fly-out")
	assert.Equal(t, 2, m.Deck().State().Index)
}

func TestModel_Results(t *testing.T) {
	m := loaded(t, testCards)

	for _, k := range []tea.KeyType{tea.KeyRight, tea.KeyRight, tea.KeyLeft} {
		m, _ = update(t, m, tea.KeyMsg{Type: k})
		m = settle(t, m)
	}
	m.Deck().Wait()

	require.Equal(t, phaseResults, m.phase)
	view := m.View()
	assert.Contains(t, view, "Your Purpose Discovered")
	assert.Contains(t, view, "Based on your 2 selections")
	assert.Contains(t, view, "#1 X")
	assert.NotContains(t, view, "#2")

	// Swipe keys are inert on the results panel
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Nil(t, cmd)
	assert.Equal(t, phaseResults, m.phase)
}

func TestModel_NoSelections(t *testing.T) {
	m := loaded(t, testCards[:1])

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m = settle(t, m)
	m.Deck().Wait()

	require.Equal(t, phaseResults, m.phase)
	assert.Contains(t, m.View(), "Try exploring again")
}

func TestModel_ExploreAgain(t *testing.T) {
	m := loaded(t, testCards[:1])

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = settle(t, m)
	m.Deck().Wait()
	require.Equal(t, phaseResults, m.phase)

	m, _ = update(t, m, keyRunes("r"))
	m.Deck().Wait()

	assert.Equal(t, phasePlaying, m.phase)
	assert.Equal(t, 0, m.shown)
	st := m.Deck().State()
	assert.Equal(t, 0, st.Index)
	assert.Empty(t, st.Results)
	assert.Equal(t, "session-2", st.SessionID)
	assert.Contains(t, m.View(), "Alpha")
}

func TestModel_MouseFlingCommits(t *testing.T) {
	m := loaded(t, testCards)
	clock := time.Unix(0, 0)
	m.now = func() time.Time { return clock }

	m, _ = update(t, m, tea.MouseMsg{X: 50, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	clock = clock.Add(10 * time.Millisecond)
	m, _ = update(t, m, tea.MouseMsg{X: 55, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	assert.False(t, m.flying, "held card never commits")
	assert.Equal(t, 0, m.Deck().State().Index)

	clock = clock.Add(5 * time.Millisecond)
	m, _ = update(t, m, tea.MouseMsg{X: 56, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	assert.True(t, m.flying)
	assert.Equal(t, 1, m.Deck().State().Index)
	assert.Equal(t, 1, m.Deck().State().Results.Get("X"))

	m = settle(t, m)
	assert.Equal(t, 1, m.shown)
}

func TestModel_MouseSlowReleaseSpringsBack(t *testing.T) {
	m := loaded(t, testCards)
	clock := time.Unix(0, 0)
	m.now = func() time.Time { return clock }

	m, _ = update(t, m, tea.MouseMsg{X: 50, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	clock = clock.Add(500 * time.Millisecond)
	m, _ = update(t, m, tea.MouseMsg{X: 55, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	assert.Equal(t, 5*cellWidth, m.motion.X.Target)

	clock = clock.Add(20 * time.Millisecond)
	m, _ = update(t, m, tea.MouseMsg{X: 55, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	assert.False(t, m.flying)
	assert.Zero(t, m.motion.X.Target)

	m = settle(t, m)
	assert.Equal(t, 0, m.shown)
	assert.InDelta(t, 0, m.motion.X.Pos, 0.01)
	assert.Equal(t, 0, m.Deck().State().Index)
}

func TestModel_RightButtonIgnored(t *testing.T) {
	m := loaded(t, testCards)

	m, cmd := update(t, m, tea.MouseMsg{X: 50, Action: tea.MouseActionPress, Button: tea.MouseButtonRight})
	assert.Nil(t, cmd)
	assert.False(t, m.drag.active)
}

func TestModel_EmptyDeck(t *testing.T) {
	m := loaded(t, nil)

	assert.Contains(t, m.View(), "No purpose cards available")
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Nil(t, cmd)
	assert.Equal(t, phasePlaying, m.phase)
}

func TestModel_ChangeNotification(t *testing.T) {
	m := loaded(t, testCards)

	// The session arriving notified the model
	msg := m.waitForChange()()
	assert.IsType(t, changedMsg{}, msg)

	_, cmd := update(t, m, msg)
	assert.NotNil(t, cmd, "keeps listening for changes")
}

func TestModel_Help(t *testing.T) {
	m := loaded(t, testCards)

	m, _ = update(t, m, keyRunes("?"))
	assert.True(t, m.showHelp)
	assert.Contains(t, m.View(), "explore again")

	// Swipes are blocked while help is open
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 0, m.Deck().State().Index)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.showHelp)
}

func TestModel_Quit(t *testing.T) {
	m := loaded(t, testCards)

	_, cmd := update(t, m, keyRunes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}
