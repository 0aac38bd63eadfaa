package session

import "github.com/sammy99jsp/devtools-bridge/internal/jsonrpc"

// egressCapacity bounds the outgoing-frame channel (component C). Reply,
// error, and event traffic all fan into the same channel; capacity is
// shared across all three roles.
const egressCapacity = 16

// Senders are three logically distinct handles onto the one egress
// channel: callers use the role that matches their intent (reply / error /
// event), but all three feed the same single-writer queue, which is what
// guarantees fan-in without extra synchronization.
type Senders struct {
	Reply  chan<- *jsonrpc.Response
	Errors chan<- *jsonrpc.Response
	Events chan<- *jsonrpc.Response
}

// newEgress creates the shared channel and wraps it under three roles.
// close must be called on the returned closer exactly once, when every
// producer is done sending.
func newEgress() (Senders, <-chan *jsonrpc.Response, func()) {
	ch := make(chan *jsonrpc.Response, egressCapacity)
	senders := Senders{Reply: ch, Errors: ch, Events: ch}
	return senders, ch, func() { close(ch) }
}

// runEgress is the single writer task: it drains in, encoding and writing
// each Response. A transport write failure terminates the session, so the
// pump closes conn itself before returning - that is what makes runIngress's
// next ReadMessage observe EOF and unwind the dispatch loop in turn. The
// same close happens on a clean shutdown (in closed), which is a harmless
// no-op on a connection the client has already hung up.
func runEgress(conn Conn, in <-chan *jsonrpc.Response) {
	defer conn.Close()

	for res := range in {
		data, err := jsonrpc.Encode(res)
		if err != nil {
			continue
		}
		if err := conn.WriteMessage(TextMessage, data); err != nil {
			return
		}
	}
}
