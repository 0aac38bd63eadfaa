package session

import (
	"errors"
	"sync"
)

// fakeConn is an in-memory Conn for exercising the pumps without a real
// socket. Tests push inbound frames onto in and read what the session
// wrote back off out.
type fakeConn struct {
	in  chan fakeMessage
	out chan fakeMessage

	mu     sync.Mutex
	closed bool
}

type fakeMessage struct {
	messageType int
	data        []byte
}

func newFakeConn() *fakeConn {
	return &fakeConn{
		in:  make(chan fakeMessage, 16),
		out: make(chan fakeMessage, 16),
	}
}

var errFakeConnClosed = errors.New("fakeConn: closed")

func (f *fakeConn) ReadMessage() (int, []byte, error) {
	msg, ok := <-f.in
	if !ok {
		return 0, nil, errFakeConnClosed
	}
	return msg.messageType, msg.data, nil
}

func (f *fakeConn) WriteMessage(messageType int, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return errFakeConnClosed
	}
	f.out <- fakeMessage{messageType: messageType, data: data}
	return nil
}

func (f *fakeConn) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

// sendText pushes a client->server text frame.
func (f *fakeConn) sendText(s string) {
	f.in <- fakeMessage{messageType: TextMessage, data: []byte(s)}
}

// sendBinary pushes a client->server binary frame.
func (f *fakeConn) sendBinary(b []byte) {
	f.in <- fakeMessage{messageType: BinaryMessage, data: b}
}

// endClient simulates the client disconnecting.
func (f *fakeConn) endClient() {
	close(f.in)
}
