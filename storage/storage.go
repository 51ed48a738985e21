// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package storage

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/danielhkuo/purpose-swipe/auth"
	"github.com/danielhkuo/purpose-swipe/models"
	"github.com/danielhkuo/purpose-swipe/tally"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidReference = errors.New("invalid reference")
	ErrInvalidData      = errors.New("invalid data")
	ErrConflict         = errors.New("conflict")
)

// Store is the persistence boundary for cards, sessions, swipes, and users
type Store struct {
	db  *sql.DB
	now func() time.Time
}

func New(db *sql.DB) *Store {
	return &Store{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// CanonicalSessionData normalizes an opaque session payload so equal JSON
// values compare equal as text. Empty input and JSON null are rejected.
func CanonicalSessionData(raw json.RawMessage) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, fmt.Errorf("%w: sessionData is required", ErrInvalidData)
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: sessionData: %v", ErrInvalidData, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: sessionData has trailing data", ErrInvalidData)
	}

	canonical, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: sessionData: %v", ErrInvalidData, err)
	}
	return canonical, nil
}

// Purpose cards

// ListCards returns the catalog in seed order
func (s *Store) ListCards(ctx context.Context) ([]models.PurposeCard, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, description, image, category, created_at
		FROM purpose_cards
		ORDER BY sort_order, id
	`)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	defer rows.Close()

	cards := []models.PurposeCard{}
	for rows.Next() {
		var c models.PurposeCard
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.Image, &c.Category, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("list cards: scan: %w", err)
		}
		cards = append(cards, c)
	}

	return cards, rows.Err()
}

// SeedCards inserts the catalog if the table is empty.
// Returns the number of cards inserted (0 when already seeded).
func (s *Store) SeedCards(ctx context.Context, cards []models.PurposeCard) (int, error) {
	var existing int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM purpose_cards`).Scan(&existing); err != nil {
		return 0, fmt.Errorf("seed cards: count: %w", err)
	}
	if existing > 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("seed cards: begin: %w", err)
	}
	defer tx.Rollback()

	now := s.now()
	for i, c := range cards {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO purpose_cards (id, sort_order, title, description, image, category, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, c.ID, i, c.Title, c.Description, c.Image, c.Category, now)
		if err != nil {
			return 0, fmt.Errorf("seed cards: insert %s: %w", c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("seed cards: commit: %w", err)
	}
	return len(cards), nil
}

// Sessions

const sessionColumns = `id, user_id, session_data, created_at, completed_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSession(row rowScanner) (models.Session, error) {
	var (
		sess        models.Session
		userID      sql.NullString
		data        string
		completedAt sql.NullTime
	)
	if err := row.Scan(&sess.ID, &userID, &data, &sess.CreatedAt, &completedAt); err != nil {
		return models.Session{}, err
	}
	if userID.Valid {
		sess.UserID = &userID.String
	}
	if completedAt.Valid {
		t := completedAt.Time
		sess.CompletedAt = &t
	}
	sess.SessionData = json.RawMessage(data)
	return sess, nil
}

// CreateSession starts a new open play-through
func (s *Store) CreateSession(ctx context.Context, userID *string, sessionData json.RawMessage) (models.Session, error) {
	data, err := CanonicalSessionData(sessionData)
	if err != nil {
		return models.Session{}, err
	}

	sess := models.Session{
		ID:          auth.GenerateID(),
		UserID:      userID,
		SessionData: data,
		CreatedAt:   s.now(),
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, user_id, session_data, created_at)
		VALUES ($1, $2, $3, $4)
	`, sess.ID, userID, string(data), sess.CreatedAt)
	if err != nil {
		return models.Session{}, fmt.Errorf("create session: %w", err)
	}

	return sess, nil
}

// GetSession returns ErrNotFound for unknown IDs
func (s *Store) GetSession(ctx context.Context, id string) (models.Session, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+sessionColumns+` FROM sessions WHERE id = $1`, id)
	sess, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Session{}, fmt.Errorf("session %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return models.Session{}, fmt.Errorf("get session: %w", err)
	}
	return sess, nil
}

// CompleteSession sets completed_at if it is not already set and returns the
// session. Repeated calls keep the first completion time.
func (s *Store) CompleteSession(ctx context.Context, id string) (models.Session, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE sessions
		SET completed_at = COALESCE(completed_at, $1)
		WHERE id = $2
	`, s.now(), id)
	if err != nil {
		return models.Session{}, fmt.Errorf("complete session: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return models.Session{}, fmt.Errorf("complete session: %w", err)
	}
	if n == 0 {
		return models.Session{}, fmt.Errorf("session %s: %w", id, ErrNotFound)
	}

	return s.GetSession(ctx, id)
}

// SessionsByData returns sessions whose payload equals sessionData, newest first
func (s *Store) SessionsByData(ctx context.Context, sessionData json.RawMessage) ([]models.Session, error) {
	data, err := CanonicalSessionData(sessionData)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+sessionColumns+`
		FROM sessions
		WHERE session_data = $1
		ORDER BY created_at DESC, id
	`, string(data))
	if err != nil {
		return nil, fmt.Errorf("sessions by data: %w", err)
	}
	defer rows.Close()

	sessions := []models.Session{}
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("sessions by data: scan: %w", err)
		}
		sessions = append(sessions, sess)
	}

	return sessions, rows.Err()
}

// Swipes

func (s *Store) exists(ctx context.Context, query, id string) (bool, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, query, id).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// RecordSwipe appends a swipe. The session and card must exist.
func (s *Store) RecordSwipe(ctx context.Context, sessionID, cardID, direction string) (models.Swipe, error) {
	if !models.ValidDirection(direction) {
		return models.Swipe{}, fmt.Errorf("%w: direction must be left or right", ErrInvalidData)
	}

	ok, err := s.exists(ctx, `SELECT COUNT(*) FROM sessions WHERE id = $1`, sessionID)
	if err != nil {
		return models.Swipe{}, fmt.Errorf("record swipe: %w", err)
	}
	if !ok {
		return models.Swipe{}, fmt.Errorf("%w: session %s does not exist", ErrInvalidReference, sessionID)
	}

	ok, err = s.exists(ctx, `SELECT COUNT(*) FROM purpose_cards WHERE id = $1`, cardID)
	if err != nil {
		return models.Swipe{}, fmt.Errorf("record swipe: %w", err)
	}
	if !ok {
		return models.Swipe{}, fmt.Errorf("%w: card %s does not exist", ErrInvalidReference, cardID)
	}

	swipe := models.Swipe{
		ID:        auth.GenerateID(),
		SessionID: sessionID,
		CardID:    cardID,
		Direction: direction,
		Timestamp: s.now(),
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO swipes (id, session_id, card_id, direction, swiped_at)
		VALUES ($1, $2, $3, $4, $5)
	`, swipe.ID, swipe.SessionID, swipe.CardID, swipe.Direction, swipe.Timestamp)
	if err != nil {
		return models.Swipe{}, fmt.Errorf("record swipe: %w", err)
	}

	return swipe, nil
}

// SessionSwipes returns a session's swipes in the order they were made
func (s *Store) SessionSwipes(ctx context.Context, sessionID string) ([]models.Swipe, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_id, card_id, direction, swiped_at
		FROM swipes
		WHERE session_id = $1
		ORDER BY swiped_at, id
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("session swipes: %w", err)
	}
	defer rows.Close()

	swipes := []models.Swipe{}
	for rows.Next() {
		var sw models.Swipe
		if err := rows.Scan(&sw.ID, &sw.SessionID, &sw.CardID, &sw.Direction, &sw.Timestamp); err != nil {
			return nil, fmt.Errorf("session swipes: scan: %w", err)
		}
		swipes = append(swipes, sw)
	}

	return swipes, rows.Err()
}

// SwipeResults counts right swipes per card category for a session.
// Unknown sessions yield empty results.
func (s *Store) SwipeResults(ctx context.Context, sessionID string) (tally.Results, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.category, s.direction
		FROM swipes s
		JOIN purpose_cards c ON s.card_id = c.id
		WHERE s.session_id = $1
		ORDER BY s.swiped_at, s.id
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("swipe results: %w", err)
	}
	defer rows.Close()

	var picks []tally.Pick
	for rows.Next() {
		var p tally.Pick
		if err := rows.Scan(&p.Category, &p.Direction); err != nil {
			return nil, fmt.Errorf("swipe results: scan: %w", err)
		}
		picks = append(picks, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("swipe results: %w", err)
	}

	return tally.Count(picks), nil
}

// Users

// CreateUser stores a new account. Returns ErrConflict if the username is taken.
func (s *Store) CreateUser(ctx context.Context, username, passwordHash string) (models.User, error) {
	_, err := s.GetUserByUsername(ctx, username)
	if err == nil {
		return models.User{}, fmt.Errorf("username %s: %w", username, ErrConflict)
	}
	if !errors.Is(err, ErrNotFound) {
		return models.User{}, err
	}

	user := models.User{
		ID:           auth.GenerateID(),
		Username:     username,
		PasswordHash: passwordHash,
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO users (id, username, password)
		VALUES ($1, $2, $3)
	`, user.ID, user.Username, user.PasswordHash)
	if err != nil {
		return models.User{}, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

func (s *Store) getUserBy(ctx context.Context, column, value string) (models.User, error) {
	var u models.User
	err := s.db.QueryRowContext(ctx, `SELECT id, username, password FROM users WHERE `+column+` = $1`, value).
		Scan(&u.ID, &u.Username, &u.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, fmt.Errorf("user %s: %w", value, ErrNotFound)
	}
	if err != nil {
		return models.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (s *Store) GetUser(ctx context.Context, id string) (models.User, error) {
	return s.getUserBy(ctx, "id", id)
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	return s.getUserBy(ctx, "username", username)
}
