// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Command purpose-play is the terminal player for Purpose Swipe.

	purpose-play play                      swipe through the deck
	purpose-play history                   completed sessions and top purposes
	purpose-play identity                  print the local session identifier
	purpose-play register alice --password ...
	purpose-play login alice --password ...   print a token for --token

Global flags:

  - --server: API base URL (PURPOSE_SERVER_URL, default http://localhost:3318)
  - --identity-file: where the session identifier is kept (PURPOSE_IDENTITY_PATH)
  - --log-file: zap JSON log destination; logs are dropped when unset
  - --token: bearer token so new sessions belong to an account (PURPOSE_TOKEN)

In play, drag a card with the mouse and release it quickly to send it away,
or use ←/→ (h/l). Press r on the results panel to explore again.
*/
package main
