package registry

import (
	"encoding/json"

	"github.com/sammy99jsp/devtools-bridge/internal/jsonrpc"
)

// EventSink lets a handler push unsolicited events into the session's
// egress channel while it is still computing its reply. It wraps a plain
// send channel so callers get a typed Emit instead of building Response
// frames by hand.
type EventSink struct {
	out chan<- *jsonrpc.Response
}

// NewEventSink wraps a channel as an EventSink.
func NewEventSink(out chan<- *jsonrpc.Response) EventSink {
	return EventSink{out: out}
}

// Emit serializes params and sends an event frame for method onto the
// egress channel, blocking if it is full. The send is synchronous rather
// than backgrounded in a goroutine: the egress channel is closed once the
// session winds down, and a send from an unsynchronized goroutine could
// still be in flight when that close happens, panicking on a closed
// channel. Blocking here is exactly the back-pressure §4.3 already
// documents for egress traffic.
func (s EventSink) Emit(method string, params any) {
	data, err := json.Marshal(params)
	if err != nil {
		return
	}
	s.out <- jsonrpc.NewEvent(method, data)
}
