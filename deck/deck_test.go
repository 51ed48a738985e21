// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package deck

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/danielhkuo/purpose-swipe/models"
	"github.com/danielhkuo/purpose-swipe/tally"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type recordedSwipe struct {
	SessionID string
	CardID    string
	Direction string
}

// fakeBackend records calls. Errors are injected per operation.
type fakeBackend struct {
	mu        sync.Mutex
	sessions  int
	swipes    []recordedSwipe
	completed []string
	results   tally.Results

	createErr   error
	swipeErr    error
	completeErr error

	// gate blocks CreateSession until closed when non-nil
	gate chan struct{}
}

func (f *fakeBackend) CreateSession(ctx context.Context, data json.RawMessage) (models.Session, error) {
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return models.Session{}, ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return models.Session{}, f.createErr
	}
	f.sessions++
	return models.Session{ID: fmt.Sprintf("session-%d", f.sessions), SessionData: data}, nil
}

func (f *fakeBackend) RecordSwipe(_ context.Context, sessionID, cardID, direction string) (models.Swipe, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.swipeErr != nil {
		return models.Swipe{}, f.swipeErr
	}
	f.swipes = append(f.swipes, recordedSwipe{sessionID, cardID, direction})
	return models.Swipe{ID: "w", SessionID: sessionID, CardID: cardID, Direction: direction}, nil
}

func (f *fakeBackend) CompleteSession(_ context.Context, sessionID string) (models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.completeErr != nil {
		return models.Session{}, f.completeErr
	}
	f.completed = append(f.completed, sessionID)
	return models.Session{ID: sessionID}, nil
}

func (f *fakeBackend) Results(_ context.Context, _ string) (tally.Results, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.results, nil
}

func (f *fakeBackend) swipeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.swipes)
}

func testCards() []models.PurposeCard {
	return []models.PurposeCard{
		{ID: "A", Category: "X"},
		{ID: "B", Category: "X"},
		{ID: "C", Category: "Y"},
	}
}

func startedController(t *testing.T, backend *fakeBackend) *Controller {
	t.Helper()
	c := New(backend, Config{
		Cards:         testCards(),
		SessionData:   json.RawMessage(`{"userSession":"test"}`),
		ViewportWidth: 800,
	})
	c.Start()
	c.Wait()
	require.Equal(t, "session-1", c.State().SessionID)
	return c
}

func TestController_FullDeck(t *testing.T) {
	backend := &fakeBackend{results: tally.Results{{Category: "X", Count: 2}}}
	c := startedController(t, backend)

	for _, dir := range []string{"right", "right", "left"} {
		_, ok := c.Swipe(dir)
		require.True(t, ok)
	}
	c.Wait()

	st := c.State()
	assert.True(t, st.Done)
	assert.Equal(t, -1, st.Current())
	assert.Equal(t, tally.Results{{Category: "X", Count: 2}}, st.Results)
	assert.Equal(t, tally.Results{{Category: "X", Count: 2}}, st.ServerResults)
	assert.Equal(t, []bool{true, true, true}, st.Gone)

	assert.ElementsMatch(t, []recordedSwipe{
		{"session-1", "A", "right"},
		{"session-1", "B", "right"},
		{"session-1", "C", "left"},
	}, backend.swipes)
	assert.Equal(t, []string{"session-1"}, backend.completed)
}

func TestController_CompletionRequestedOnce(t *testing.T) {
	backend := &fakeBackend{}
	c := startedController(t, backend)

	for i := 0; i < 3; i++ {
		c.Swipe(models.DirectionRight)
	}
	// No cards left; further input is ignored
	_, ok := c.Swipe(models.DirectionRight)
	assert.False(t, ok)
	c.Drag(Gesture{Index: 2, DX: 400, VX: 1})
	c.Wait()

	assert.Len(t, backend.completed, 1)
	assert.Equal(t, 3, backend.swipeCount())
}

func TestController_NotCompletedBeforeLastCard(t *testing.T) {
	backend := &fakeBackend{}
	c := startedController(t, backend)

	c.Swipe(models.DirectionRight)
	c.Swipe(models.DirectionLeft)
	c.Wait()

	assert.False(t, c.State().Done)
	assert.Empty(t, backend.completed)
}

func TestController_LocalTallyIsAuthoritative(t *testing.T) {
	backend := &fakeBackend{
		swipeErr: errors.New("server down"),
		results:  tally.Results{},
	}
	c := startedController(t, backend)

	for i := 0; i < 3; i++ {
		c.Swipe(models.DirectionRight)
	}
	c.Wait()

	st := c.State()
	assert.Equal(t, 3, st.Results.Total(), "local tally keeps every swipe")
	assert.Equal(t, 0, st.ServerResults.Total(), "server view is kept separately")
}

func TestController_SwipesBeforeSessionAreNotPersisted(t *testing.T) {
	backend := &fakeBackend{gate: make(chan struct{})}
	c := New(backend, Config{Cards: testCards(), ViewportWidth: 800})
	c.Start()

	c.Swipe(models.DirectionRight)
	close(backend.gate)
	c.Wait()

	c.Swipe(models.DirectionRight)
	c.Wait()

	assert.Equal(t, 1, backend.swipeCount())
	assert.Equal(t, 2, c.State().Results.Get("X"))
}

func TestController_CreateSessionFailureIsSwallowed(t *testing.T) {
	backend := &fakeBackend{createErr: errors.New("boom")}
	c := New(backend, Config{Cards: testCards()})
	c.Start()

	for i := 0; i < 3; i++ {
		_, ok := c.Swipe(models.DirectionRight)
		assert.True(t, ok)
	}
	c.Wait()

	st := c.State()
	assert.True(t, st.Done)
	assert.Empty(t, st.SessionID)
	assert.Equal(t, 0, backend.swipeCount())
	assert.Empty(t, backend.completed)
	assert.Nil(t, st.ServerResults)
}

func TestController_Reset(t *testing.T) {
	backend := &fakeBackend{}
	c := startedController(t, backend)

	for i := 0; i < 3; i++ {
		c.Swipe(models.DirectionRight)
	}
	c.Wait()

	c.Reset()
	c.Wait()

	st := c.State()
	assert.Equal(t, 0, st.Index)
	assert.Equal(t, 0, st.Results.Total())
	assert.False(t, st.Done)
	assert.Nil(t, st.ServerResults)
	assert.Equal(t, []bool{false, false, false}, st.Gone)
	assert.Equal(t, "session-2", st.SessionID)

	_, ok := c.Swipe(models.DirectionLeft)
	assert.True(t, ok)
}

func TestController_StaleSessionDiscardedAfterReset(t *testing.T) {
	backend := &fakeBackend{gate: make(chan struct{})}
	c := New(backend, Config{Cards: testCards()})
	c.Start()
	c.Reset()
	close(backend.gate)
	c.Wait()

	// Only the request made after Reset may set the session
	st := c.State()
	assert.NotEmpty(t, st.SessionID)
	backend.mu.Lock()
	assert.Equal(t, 2, backend.sessions)
	backend.mu.Unlock()
}

func TestController_DragCommit(t *testing.T) {
	backend := &fakeBackend{}
	c := startedController(t, backend)

	// Held drag follows the pointer
	tr := c.Drag(Gesture{Index: 0, DX: 120, VX: 0.5, Active: true})
	assert.False(t, tr.Gone)
	assert.Equal(t, 120.0, tr.X)
	assert.Equal(t, 0, c.State().Index)

	// Slow release springs back
	tr = c.Drag(Gesture{Index: 0, DX: 120, VX: 0.1})
	assert.False(t, tr.Gone)
	assert.Equal(t, 0.0, tr.X)
	assert.Equal(t, 0, c.State().Index)

	// Fast release to the left commits
	tr = c.Drag(Gesture{Index: 0, DX: -150, VX: -0.6})
	assert.True(t, tr.Gone)
	assert.Equal(t, models.DirectionLeft, tr.Direction())
	assert.Equal(t, 1, c.State().Index)

	// Dragging the consumed card again does nothing
	tr = c.Drag(Gesture{Index: 0, DX: 300, VX: 2})
	assert.True(t, tr.Gone)
	assert.Equal(t, -1, tr.Dir)
	assert.Equal(t, 1, c.State().Index)

	// A card behind the current one cannot be flung
	tr = c.Drag(Gesture{Index: 2, DX: 300, VX: 2})
	assert.False(t, tr.Gone)
	assert.Equal(t, 1, c.State().Index)

	c.Wait()
	assert.Equal(t, 1, backend.swipeCount())
}

func TestController_OnChange(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	backend := &fakeBackend{}
	c := New(backend, Config{
		Cards: testCards(),
		OnChange: func() {
			mu.Lock()
			calls++
			mu.Unlock()
		},
	})
	c.Start()
	c.Wait()

	for i := 0; i < 3; i++ {
		c.Swipe(models.DirectionRight)
	}
	c.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 2, calls, "session assigned and server results fetched")
}

func TestController_EmptyDeck(t *testing.T) {
	c := New(&fakeBackend{}, Config{})
	_, ok := c.Swipe(models.DirectionRight)
	assert.False(t, ok)
	assert.Equal(t, -1, c.State().Current())
	assert.Equal(t, RestTransform(), c.Drag(Gesture{Index: 0}))
}
