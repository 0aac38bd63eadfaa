// Package registry implements the typed listener registry (component E):
// it maps a lower-cased method id to a type-erased handler that knows how
// to deserialize that method's params, invoke the typed function the
// caller registered, and frame the result (or domain error) back into a
// wire Response.
package registry

import (
	"encoding/json"
	"strings"
	"sync"

	"github.com/sammy99jsp/devtools-bridge/internal/jsonrpc"
)

// Listener is the typed shape a caller registers: deserialized params in,
// typed return (or domain error) out. The EventSink lets the handler emit
// events while computing its reply.
type Listener[P any, R any] func(params P, events EventSink) (R, error)

// RawListener is the type-erased form stored in the registry, produced by
// Register from a typed Listener.
type RawListener func(req *jsonrpc.Request, events EventSink) *jsonrpc.Response

// Registry is a method-id -> RawListener map. It is built once per
// connection (see session.Config.Registry) and is immutable for that
// session's lifetime after construction finishes.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]RawListener
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{handlers: make(map[string]RawListener)}
}

// Register adapts a typed Listener for cmd into a RawListener and stores it
// under cmd's lower-cased method id. Registering the same id twice
// overwrites the prior entry.
func Register[P any, R any](reg *Registry, cmd Command[P, R], fn Listener[P, R]) {
	id := strings.ToLower(cmd.ID())
	raw := func(req *jsonrpc.Request, events EventSink) *jsonrpc.Response {
		var params P
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return jsonrpc.InvalidRequest(req.Method, req.ID)
		}

		result, err := fn(params, events)
		if err != nil {
			return jsonrpc.InvalidRequestData(req.Method, req.ID, marshalDomainError(err))
		}

		encoded, err := json.Marshal(result)
		if err != nil {
			return jsonrpc.InvalidRequestData(req.Method, req.ID, marshalDomainError(err))
		}
		return jsonrpc.NewReply(req.Method, req.ID, encoded)
	}

	reg.mu.Lock()
	reg.handlers[id] = raw
	reg.mu.Unlock()
}

// marshalDomainError turns a handler error into error.data. Errors that
// marshal to JSON on their own (a struct domain error, say) are embedded
// directly; anything else falls back to {"message": err.Error()}.
func marshalDomainError(err error) json.RawMessage {
	if data, merr := json.Marshal(err); merr == nil && string(data) != "{}" {
		return data
	}
	data, _ := json.Marshal(struct {
		Message string `json:"message"`
	}{Message: err.Error()})
	return data
}

// Lookup returns the handler registered for method, if any. Method
// comparison is case-insensitive per §3 invariant 4.
func (reg *Registry) Lookup(method string) (RawListener, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	h, ok := reg.handlers[strings.ToLower(method)]
	return h, ok
}
