// Package session assembles the per-connection state machine (component
// G): the ingress pump, the egress pump, and the dispatch loop that ties a
// socket to a Handler built fresh for that connection.
package session

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sammy99jsp/devtools-bridge/internal/dispatch"
	"github.com/sammy99jsp/devtools-bridge/internal/forwarder"
	"github.com/sammy99jsp/devtools-bridge/internal/jsonrpc"
	"github.com/sammy99jsp/devtools-bridge/internal/registry"
)

// Config wires a Session to its connection and its per-connection
// dispatch dependencies. Registry and Forwarders are expected to be fresh
// per connection, per the handler-builder-factory contract in §6.
type Config struct {
	Conn       Conn
	Registry   *registry.Registry
	Forwarders []*forwarder.Inbound
	Log        *zerolog.Logger
}

// Run drives one session to completion: it starts the egress and ingress
// pumps, builds the dispatcher over the event sender, and loops dispatching
// requests in arrival order until the ingress side closes (socket EOF or
// transport error). It blocks until the session ends, so callers run it in
// its own goroutine per accepted connection.
func Run(cfg Config) {
	logger := cfg.Log
	if logger == nil {
		stderr := log.Logger
		logger = &stderr
	}

	senders, egressIn, closeEgress := newEgress()
	go runEgress(cfg.Conn, egressIn)

	requests := make(chan *jsonrpc.Request, queueCapacity)
	go runIngress(cfg.Conn, senders.Errors, requests)

	events := registry.NewEventSink(senders.Events)
	handler := dispatch.New(cfg.Forwarders, cfg.Registry, events)

	for req := range requests {
		logger.Debug().Str("method", req.Method).Msg("dispatching request")
		res := handler.Handle(req)
		if req.IsNotification() {
			continue
		}
		senders.Reply <- res
	}

	closeEgress()
	logger.Debug().Msg("session ended")
}
