// Package dispatch implements the per-request router (component F): given
// a decoded Request, it tries registered forwarders first (in registration
// order), then the typed listener registry, and finally answers Method Not
// Found.
package dispatch

import (
	"github.com/sammy99jsp/devtools-bridge/internal/forwarder"
	"github.com/sammy99jsp/devtools-bridge/internal/jsonrpc"
	"github.com/sammy99jsp/devtools-bridge/internal/registry"
)

// Handler routes a single session's requests. It is built once per
// connection by session.Run and is immutable thereafter.
type Handler struct {
	forwarders []*forwarder.Inbound
	registry   *registry.Registry
	events     registry.EventSink
}

// New builds a Handler over forwarders (tried in order, first match wins)
// and reg. events is the sink typed listeners and forwarded requests use
// to emit asynchronous notifications.
func New(forwarders []*forwarder.Inbound, reg *registry.Registry, events registry.EventSink) *Handler {
	return &Handler{forwarders: forwarders, registry: reg, events: events}
}

// Handle routes req and returns its reply. Callers decide whether to
// discard the reply for notifications (requests with no id); Handle itself
// always computes one, since it cannot tell from the Response alone
// whether a reply was wanted.
func (h *Handler) Handle(req *jsonrpc.Request) *jsonrpc.Response {
	for _, f := range h.forwarders {
		if f.Matches(req.Method) {
			return f.Forward(req, h.events)
		}
	}

	if raw, ok := h.registry.Lookup(req.Method); ok {
		return raw(req, h.events)
	}

	return jsonrpc.MethodNotFound(req.Method, req.ID)
}
