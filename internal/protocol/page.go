package protocol

import "github.com/sammy99jsp/devtools-bridge/internal/registry"

// EnableParams is Page.enable's parameter object; the real protocol takes
// none.
type EnableParams struct{}

// EnableReturns is Page.enable's (empty) result object.
type EnableReturns struct{}

// Enable is the Page.enable command descriptor. devtoolsd's handler for it
// emits one Page.loadEventFired event for the session and returns an empty
// result.
var Enable = registry.NewCommand[EnableParams, EnableReturns]("Page.enable")

// LoadEventFiredParams is the payload of the unsolicited Page.loadEventFired
// event, emitted through an EventSink rather than returned from a command.
type LoadEventFiredParams struct {
	Timestamp float64 `json:"timestamp"`
}

// LoadEventFired names the event for documentation purposes; events have no
// id, so unlike commands they are identified by method string alone at the
// call site (EventSink.Emit), not by a registry.Command witness.
const LoadEventFired = "Page.loadEventFired"
