package client

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/codtech/libraryd/pkg/store"
)

// Watch streams store events from the server to fn until ctx is done, the
// server closes the stream, or fn returns an error. A non-empty resource
// limits the stream to one kind. Cancelling ctx returns nil.
func (c *Client) Watch(ctx context.Context, resource string, fn func(store.Event) error) error {
	target := c.baseURL + "/api/events"
	if resource != "" {
		target += "?resource=" + url.QueryEscape(resource)
	}

	// The stream is long-lived; only ctx bounds it.
	hc := *c.httpClient
	hc.Timeout = 0

	conn, resp, err := websocket.Dial(ctx, target, &websocket.DialOptions{HTTPClient: &hc})
	if err != nil {
		if resp != nil && resp.StatusCode >= 400 {
			return parseError(resp)
		}
		if ctx.Err() != nil {
			return nil
		}
		return &APIError{
			ErrorCode: "connection_error",
			Message:   fmt.Sprintf("cannot open event stream at %s: %v", c.baseURL, err),
		}
	}
	defer func() { _ = conn.CloseNow() }()

	for {
		var ev store.Event
		if err := wsjson.Read(ctx, conn, &ev); err != nil {
			if ctx.Err() != nil || websocket.CloseStatus(err) == websocket.StatusNormalClosure {
				return nil
			}
			return fmt.Errorf("event stream: %w", err)
		}
		if err := fn(ev); err != nil {
			_ = conn.Close(websocket.StatusNormalClosure, "")
			if errors.Is(err, ErrStopWatching) {
				return nil
			}
			return err
		}
	}
}

// ErrStopWatching may be returned by a Watch callback to end the stream without error.
var ErrStopWatching = errors.New("stop watching")
