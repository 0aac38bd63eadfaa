// Package discovery implements the HTTP discovery surface (component H):
// the /json, /json/list, and /json/version endpoints a DevTools frontend
// polls before opening a WebSocket, plus the browser version document.
package discovery

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// Target describes one inspectable page, mirroring the upstream protocol's
// Target object.
type Target struct {
	Description          string `json:"description"`
	DevtoolsFrontendURL  string `json:"devtoolsFrontendUrl,omitempty"`
	ID                   string `json:"id"`
	Title                string `json:"title"`
	Type                 string `json:"type"`
	URL                  string `json:"url"`
	WebSocketDebuggerURL string `json:"webSocketDebuggerUrl"`
	FaviconURL           string `json:"faviconUrl,omitempty"`
}

// BrowserVersion is the document served at /json/version.
type BrowserVersion struct {
	Browser         string `json:"Browser"`
	ProtocolVersion string `json:"Protocol-Version"`
	UserAgent       string `json:"User-Agent"`
	V8Version       string `json:"V8-Version,omitempty"`
	WebKitVersion   string `json:"WebKit-Version,omitempty"`
	WebSocketURL    string `json:"webSocketDebuggerUrl,omitempty"`
}

// NewTarget builds a Target for a page served at host on the given port,
// generating an id if none is supplied.
func NewTarget(id, title, host string, port int) Target {
	if id == "" {
		id = uuid.NewString()
	}
	wsURL := fmt.Sprintf("ws://%s:%d/devtools/page/%s", host, port, id)
	return Target{
		Description:          title,
		DevtoolsFrontendURL:  fmt.Sprintf("/devtools/inspector.html?ws=%s:%d/devtools/page/%s", host, port, id),
		ID:                   id,
		Title:                title,
		Type:                 "page",
		WebSocketDebuggerURL: wsURL,
	}
}

// Handler serves the discovery surface over a fixed target list and version
// document, both captured at construction and read-only afterwards.
type Handler struct {
	version BrowserVersion
	targets []Target
}

// New builds a discovery Handler for version and targets.
func New(version BrowserVersion, targets []Target) *Handler {
	return &Handler{version: version, targets: targets}
}

// Register mounts the discovery routes onto mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/json", h.handleList)
	mux.HandleFunc("/json/list", h.handleList)
	mux.HandleFunc("/json/version", h.handleVersion)
	mux.HandleFunc("/json/", h.handleOther)
}

func (h *Handler) handleList(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.targets)
}

func (h *Handler) handleVersion(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.version)
}

// handleOther answers any /json/<unknown> path with an empty object and 404,
// matching the upstream server's MetaOperation::try_from fallback. ServeMux
// routes /json/list and /json/version to their dedicated handlers first, so
// only unrecognized operations ever reach this one.
func (h *Handler) handleOther(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusNotFound, struct{}{})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
