package api

import (
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/codtech/libraryd/pkg/httputil"
	"github.com/codtech/libraryd/pkg/library"
)

// handleEvents upgrades to a WebSocket and streams store events as JSON text
// messages until the client goes away. ?resource= limits the stream to one kind.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	if s.hub == nil {
		httputil.WriteError(w, http.StatusServiceUnavailable, "events_disabled", "Event streaming is not enabled")
		return
	}

	resource := r.URL.Query().Get("resource")
	if resource != "" {
		if _, ok := library.ParseKind(resource); !ok {
			httputil.WriteBadRequest(w, "invalid_resource", "Unknown resource "+resource)
			return
		}
	}

	// Subscribe before the upgrade so nothing published after the
	// handshake completes is missed.
	sub, unsubscribe := s.hub.Subscribe()
	defer unsubscribe()

	// Event streams outlive the server's write timeout.
	rc := http.NewResponseController(w)
	_ = rc.SetWriteDeadline(time.Time{})
	_ = rc.SetReadDeadline(time.Time{})

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer func() { _ = conn.CloseNow() }()

	s.logger.Debug("event subscriber connected", "remote", r.RemoteAddr, "resource", resource)
	ctx := conn.CloseRead(r.Context())

	for {
		select {
		case <-ctx.Done():
			_ = conn.Close(websocket.StatusNormalClosure, "")
			s.logger.Debug("event subscriber disconnected", "remote", r.RemoteAddr)
			return
		case ev, ok := <-sub:
			if !ok {
				return
			}
			if resource != "" && ev.Resource != resource {
				continue
			}
			if err := wsjson.Write(ctx, conn, ev); err != nil {
				s.logger.Debug("event write failed", "error", err)
				return
			}
		}
	}
}
