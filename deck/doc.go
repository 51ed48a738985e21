// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package deck drives a player through the purpose card deck.

# Gestures

A drag sample is a Gesture. Compute maps it to a Transform:

  - a release faster than CommitVelocity (px/ms) sends the card away
  - a held card follows the pointer, bounded to ±DragBound with rubber-banding
  - any other release springs back to center

Each Transform carries the spring constants to animate with. Spring and
Motion step those animations frame by frame.

# Controller

Controller owns the current index, the consumed cards, and the local tally:

	c := deck.New(client, deck.Config{Cards: cards, SessionData: data})
	c.Start()                   // request a session in the background
	c.Swipe(models.DirectionRight)
	st := c.State()

Every persistence call (create session, record swipe, complete, fetch
results) runs in its own goroutine with a timeout. Failures are logged and
ignored. Swipes made before the session ID arrives are not sent. Completion
is requested once, when the last card is consumed.

The local tally is what the player sees. The server's tally is fetched after
completion and kept in State.ServerResults; the two can differ when swipes
failed to record.
*/
package deck
