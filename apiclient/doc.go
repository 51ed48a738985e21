// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package apiclient is an HTTP client for the purpose-swipe API.

	client := apiclient.New("http://localhost:3318", apiclient.WithLogger(log))
	cards, err := client.ListCards(ctx)

Every call is bounded by a timeout (DefaultTimeout unless WithTimeout is
given). Non-2xx responses come back as *StatusError carrying the decoded
error body:

	var se *apiclient.StatusError
	if errors.As(err, &se) && se.StatusCode == http.StatusNotFound {
		...
	}

Client satisfies deck.Backend, so a deck controller can persist through it
directly.
*/
package apiclient
