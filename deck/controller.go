// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package deck

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/danielhkuo/purpose-swipe/models"
	"github.com/danielhkuo/purpose-swipe/tally"
)

// DefaultTimeout bounds each background persistence call.
const DefaultTimeout = 5 * time.Second

// Backend persists sessions and swipes. apiclient.Client implements it.
type Backend interface {
	CreateSession(ctx context.Context, sessionData json.RawMessage) (models.Session, error)
	RecordSwipe(ctx context.Context, sessionID, cardID, direction string) (models.Swipe, error)
	CompleteSession(ctx context.Context, sessionID string) (models.Session, error)
	Results(ctx context.Context, sessionID string) (tally.Results, error)
}

// Config configures a Controller.
type Config struct {
	Cards         []models.PurposeCard
	SessionData   json.RawMessage
	ViewportWidth float64
	Timeout       time.Duration
	Logger        *zap.Logger
	// OnChange runs on a background goroutine after its work changed the
	// state, such as a session ID arriving. The Controller's lock is not held.
	OnChange func()
}

// State is a snapshot of the deck.
type State struct {
	Index         int
	Total         int
	Gone          []bool
	Done          bool
	SessionID     string
	Results       tally.Results
	ServerResults tally.Results
}

// Current returns the card index in play, or -1 when the deck is exhausted.
func (s State) Current() int {
	if s.Done || s.Index >= s.Total {
		return -1
	}
	return s.Index
}

// Controller drives one player's pass through the deck. Persistence runs in
// detached goroutines; the interaction path never waits on it and failures
// are only logged.
type Controller struct {
	backend  Backend
	cards    []models.PurposeCard
	data     json.RawMessage
	width    float64
	timeout  time.Duration
	log      *zap.Logger
	onChange func()

	mu            sync.Mutex
	index         int
	gone          []int // 0 in deck, otherwise the exit direction
	tally         tally.Tally
	done          bool
	completing    bool
	sessionID     string
	generation    int
	serverResults tally.Results

	wg sync.WaitGroup
}

// New builds a controller. Call Start to request the first session.
func New(backend Backend, cfg Config) *Controller {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Controller{
		backend:  backend,
		cards:    cfg.Cards,
		data:     cfg.SessionData,
		width:    cfg.ViewportWidth,
		timeout:  timeout,
		log:      log,
		onChange: cfg.OnChange,
		gone:     make([]int, len(cfg.Cards)),
	}
}

// Cards returns the deck in play order.
func (c *Controller) Cards() []models.PurposeCard {
	return c.cards
}

// Start requests a session for the current generation.
func (c *Controller) Start() {
	c.mu.Lock()
	gen := c.generation
	c.mu.Unlock()
	c.requestSession(gen)
}

// State returns a snapshot.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	gone := make([]bool, len(c.gone))
	for i, d := range c.gone {
		gone[i] = d != 0
	}

	var server tally.Results
	if c.serverResults != nil {
		server = append(tally.Results{}, c.serverResults...)
	}

	return State{
		Index:         c.index,
		Total:         len(c.cards),
		Gone:          gone,
		Done:          c.done,
		SessionID:     c.sessionID,
		Results:       c.tally.Results(),
		ServerResults: server,
	}
}

// Drag maps a gesture to the dragged card's transform and commits the card
// when the release is fast enough. Gestures on consumed cards or on cards
// other than the current one never commit.
func (c *Controller) Drag(g Gesture) Transform {
	c.mu.Lock()
	if g.Index < 0 || g.Index >= len(c.cards) {
		c.mu.Unlock()
		return RestTransform()
	}
	if dir := c.gone[g.Index]; dir != 0 {
		c.mu.Unlock()
		return GoneTransform(dir, c.width)
	}
	allow := !c.done && g.Index == c.index
	c.mu.Unlock()

	t := Compute(g, c.width, allow)
	if t.Gone {
		c.commit(g.Index, t.Dir)
	}
	return t
}

// Swipe commits the current card in direction, as the buttons do.
// Returns false when there is no card left or the direction is unknown.
func (c *Controller) Swipe(direction string) (Transform, bool) {
	if !models.ValidDirection(direction) {
		return Transform{}, false
	}
	c.mu.Lock()
	index, done := c.index, c.done
	c.mu.Unlock()
	if done || index >= len(c.cards) {
		return Transform{}, false
	}

	dir := 1
	if direction == models.DirectionLeft {
		dir = -1
	}
	if !c.commit(index, dir) {
		return Transform{}, false
	}
	return GoneTransform(dir, c.width), true
}

func (c *Controller) commit(index, dir int) bool {
	direction := models.DirectionRight
	if dir < 0 {
		direction = models.DirectionLeft
	}

	c.mu.Lock()
	if index != c.index || c.gone[index] != 0 || c.done {
		c.mu.Unlock()
		return false
	}

	card := c.cards[index]
	c.gone[index] = dir
	c.tally.Add(card.Category, direction)
	c.index++
	sessionID := c.sessionID

	complete := false
	if c.index >= len(c.cards) && !c.completing {
		c.completing = true
		c.done = true
		complete = true
	}
	gen := c.generation
	c.mu.Unlock()

	if sessionID != "" {
		c.recordSwipe(sessionID, card.ID, direction)
	} else {
		c.log.Debug("swipe not persisted, no session yet", zap.String("card_id", card.ID))
	}

	if complete {
		c.completeSession(gen, sessionID)
	}
	return true
}

// Reset clears the deck for another play-through and requests a new session.
func (c *Controller) Reset() {
	c.mu.Lock()
	c.index = 0
	c.gone = make([]int, len(c.cards))
	c.tally.Reset()
	c.done = false
	c.completing = false
	c.sessionID = ""
	c.serverResults = nil
	c.generation++
	gen := c.generation
	c.mu.Unlock()

	c.requestSession(gen)
}

// Wait blocks until every detached task has finished. The interaction path
// never calls it; it is for shutdown and tests.
func (c *Controller) Wait() {
	c.wg.Wait()
}

func (c *Controller) notify() {
	if c.onChange != nil {
		c.onChange()
	}
}

func (c *Controller) detach(fn func(ctx context.Context)) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
		defer cancel()
		fn(ctx)
	}()
}

func (c *Controller) requestSession(gen int) {
	c.detach(func(ctx context.Context) {
		sess, err := c.backend.CreateSession(ctx, c.data)
		if err != nil {
			c.log.Warn("create session failed", zap.Error(err))
			return
		}

		c.mu.Lock()
		if gen != c.generation {
			c.mu.Unlock()
			c.log.Debug("discarding session from previous play-through", zap.String("session_id", sess.ID))
			return
		}
		c.sessionID = sess.ID
		c.mu.Unlock()

		c.log.Info("session started", zap.String("session_id", sess.ID))
		c.notify()
	})
}

func (c *Controller) recordSwipe(sessionID, cardID, direction string) {
	c.detach(func(ctx context.Context) {
		if _, err := c.backend.RecordSwipe(ctx, sessionID, cardID, direction); err != nil {
			c.log.Warn("record swipe failed",
				zap.String("session_id", sessionID),
				zap.String("card_id", cardID),
				zap.Error(err),
			)
		}
	})
}

// completeSession marks the session complete and then fetches the server's
// tally. The local tally stays the displayed result either way; the fetched
// one is only kept in ServerResults, since the server may not have every
// swipe yet.
func (c *Controller) completeSession(gen int, sessionID string) {
	if sessionID == "" {
		c.log.Warn("deck finished before a session was created; completion skipped")
		return
	}
	c.detach(func(ctx context.Context) {
		if _, err := c.backend.CompleteSession(ctx, sessionID); err != nil {
			c.log.Warn("complete session failed", zap.String("session_id", sessionID), zap.Error(err))
			return
		}

		results, err := c.backend.Results(ctx, sessionID)
		if err != nil {
			c.log.Warn("fetch results failed", zap.String("session_id", sessionID), zap.Error(err))
			return
		}

		c.mu.Lock()
		if gen != c.generation {
			c.mu.Unlock()
			return
		}
		c.serverResults = results
		local := c.tally.Results()
		c.mu.Unlock()

		if results.Total() != local.Total() {
			c.log.Warn("server results differ from local tally",
				zap.String("session_id", sessionID),
				zap.Int("local_total", local.Total()),
				zap.Int("server_total", results.Total()),
			)
		}
		c.notify()
	})
}
