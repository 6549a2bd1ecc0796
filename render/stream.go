package render

import (
	"fmt"
	"time"

	"github.com/gorilla/websocket"

	"github.com/A5-Website/atom-5-nexus/animation"
)

// DefaultWriteTimeout bounds one frame write to a websocket peer.
const DefaultWriteTimeout = 2 * time.Second

// Stream sends frames as JSON text messages over a websocket connection.
type Stream struct {
	conn    *websocket.Conn
	timeout time.Duration
}

// NewStream wraps an upgraded connection.
func NewStream(conn *websocket.Conn, timeout time.Duration) *Stream {
	if timeout <= 0 {
		timeout = DefaultWriteTimeout
	}
	return &Stream{conn: conn, timeout: timeout}
}

// Render writes f. A closed or broken peer reports ErrSurfaceUnavailable.
func (s *Stream) Render(f animation.Frame) error {
	if s.conn == nil {
		return ErrSurfaceUnavailable
	}
	if err := s.conn.SetWriteDeadline(time.Now().Add(s.timeout)); err != nil {
		return fmt.Errorf("%w: %v", ErrSurfaceUnavailable, err)
	}
	// gorilla connections are unusable after any write error
	if err := s.conn.WriteJSON(f); err != nil {
		return fmt.Errorf("%w: %v", ErrSurfaceUnavailable, err)
	}
	return nil
}

// Close sends a normal closure and closes the connection.
func (s *Stream) Close() error {
	if s.conn == nil {
		return nil
	}
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = s.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	return s.conn.Close()
}
