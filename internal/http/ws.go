// README: Websocket stream of trip progress ticks.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Single-user simulator; cross-origin clients are fine.
	CheckOrigin: func(*http.Request) bool { return true },
}

// handleProgressStream pushes each progress tick to the client as JSON
// until the trip finishes or the client goes away.
func (s *Server) handleProgressStream(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	updates, cancel := s.session.Subscribe()
	defer cancel()

	// Drain client reads so close frames are processed.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case u, ok := <-updates:
			if !ok {
				// Trip was dropped or the session logged out.
				return
			}
			msg := progressDTO{Percent: u.Percent, TimeLeftMin: u.TimeLeftMin}
			if err := conn.WriteJSON(msg); err != nil {
				s.logger.Debug("websocket write failed", "error", err)
				return
			}
			if u.Percent >= 100 {
				return
			}
		}
	}
}
