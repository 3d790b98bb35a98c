// internal/realtime/websocket.go
package realtime

import "github.com/gofiber/websocket/v2"

// WebSocketConn wraps websocket.Conn (keeps hub.go free of the websocket import)
type WebSocketConn struct {
	Conn *websocket.Conn
}

func NewWebSocketConn(c *websocket.Conn) *WebSocketConn {
	return &WebSocketConn{Conn: c}
}

func (w *WebSocketConn) WriteText(data []byte) error {
	return w.Conn.WriteMessage(websocket.TextMessage, data)
}

func (w *WebSocketConn) WriteJSON(v interface{}) error {
	return w.Conn.WriteJSON(v)
}
