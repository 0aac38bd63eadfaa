// Package forwarder implements the forwarder pair (component D): a
// prefix-matching bridge that ships matching requests to an external
// worker (conceptually a JavaScript runtime inspector thread) and awaits
// exactly one reply per request, while letting the worker push events into
// the session independently.
package forwarder

import (
	"strings"
	"sync"

	"github.com/sammy99jsp/devtools-bridge/internal/jsonrpc"
	"github.com/sammy99jsp/devtools-bridge/internal/registry"
)

// inboundCap is the capacity of the request-inbound channel; sending to it
// back-pressures the dispatcher per §5.
const inboundCap = 8

// Job is one (Request, EventSink) pair handed to the worker. The worker may
// use the sink to push events concurrently with computing its reply.
type Job struct {
	Request *jsonrpc.Request
	Events  registry.EventSink
}

// Forwarder is constructed with a finite list of method-prefix strings and
// split into a session-facing Inbound half and a worker-facing Outbound
// half, which share a pair of bounded channels. Neither half owns the
// other; both are produced once by Split.
type Forwarder struct {
	prefixes []string
	jobs     chan Job
	replies  chan *jsonrpc.Response

	// forwardMu makes Forward calls sequential, so the single-consumer
	// replies channel is read by one caller at a time (§5 "forwarder's
	// outbound receiver is exclusive").
	forwardMu sync.Mutex
}

// New declares a forwarder for the given case-insensitive method prefixes
// (e.g. "Runtime.").
func New(prefixes ...string) *Forwarder {
	return &Forwarder{
		prefixes: prefixes,
		jobs:     make(chan Job, inboundCap),
		replies:  make(chan *jsonrpc.Response),
	}
}

// Split returns the two linked halves. Call once per Forwarder.
func (f *Forwarder) Split() (*Inbound, *Outbound) {
	return &Inbound{f: f}, &Outbound{f: f}
}

// Inbound is the session-facing half: it matches methods and forwards
// requests, blocking until the worker answers.
type Inbound struct {
	f *Forwarder
}

// Matches reports whether method starts with one of the forwarder's
// registered prefixes, compared case-insensitively (§3 invariant 5).
func (in *Inbound) Matches(method string) bool {
	lower := strings.ToLower(method)
	for _, p := range in.f.prefixes {
		if strings.HasPrefix(lower, strings.ToLower(p)) {
			return true
		}
	}
	return false
}

// Forward enqueues (req, events) on the inbound channel and blocks for
// exactly one reply on the outbound channel. The worker's contract (§4.4)
// guarantees one Response per Job, in arrival order; violating that
// desynchronizes whichever call is waiting next.
func (in *Inbound) Forward(req *jsonrpc.Request, events registry.EventSink) *jsonrpc.Response {
	in.f.forwardMu.Lock()
	defer in.f.forwardMu.Unlock()
	in.f.jobs <- Job{Request: req, Events: events}
	return <-in.f.replies
}

// Outbound is the worker-facing half: it receives jobs and sends back
// exactly one reply per job.
type Outbound struct {
	f *Forwarder

	// recvMu serializes access to the single-consumer jobs channel when
	// more than one goroutine calls Incoming against the same Outbound.
	// Reply takes no lock.
	recvMu sync.Mutex
}

// Incoming blocks for the next job from the session. ok is false once the
// forwarder is closed.
func (out *Outbound) Incoming() (Job, bool) {
	out.recvMu.Lock()
	defer out.recvMu.Unlock()
	job, ok := <-out.f.jobs
	return job, ok
}

// Reply sends the single reply for a job previously obtained from
// Incoming. Events belonging to that job should go through job.Events
// instead, never through Reply.
func (out *Outbound) Reply(res *jsonrpc.Response) {
	out.f.replies <- res
}

// Close closes the jobs channel; the replies channel stays open. Any
// Forward call blocked
// awaiting a reply stays blocked forever unless its caller abandons it
// (e.g. the session goroutine is dropped on socket close, per §5
// "Cancellation").
func (out *Outbound) Close() {
	close(out.f.jobs)
}
