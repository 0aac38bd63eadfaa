package session

import "github.com/gorilla/websocket"

// Conn is the minimal bidirectional message transport a Session needs. The
// gorilla/websocket connection used in production implements it directly;
// tests substitute a fake to exercise the pumps without a real socket.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// TextMessage and BinaryMessage mirror the RFC 6455 opcodes gorilla's
// websocket.Conn uses, so callers can pass those constants straight
// through without importing gorilla from outside this package.
const (
	TextMessage   = websocket.TextMessage
	BinaryMessage = websocket.BinaryMessage
)
