// Package protocol declares the Command descriptors and wire types for the
// subset of the Chrome DevTools Protocol this server answers directly
// (component J). dom.go and page.go pair a registry.Command witness with its
// Parameters/Returns structs; main wires these into a registry.Registry with
// registry.Register. runtime.go declares only the wire types of the
// forwarded Runtime.evaluate, with no Command.
package protocol

import "github.com/sammy99jsp/devtools-bridge/internal/registry"

// Node mirrors the DOM.Node object: a tree node with a handful of the
// upstream protocol's many fields, enough to answer DOM.getDocument for a
// static or synthetic document.
type Node struct {
	NodeID         int    `json:"nodeId"`
	ParentID       *int   `json:"parentId,omitempty"`
	BackendNodeID  int    `json:"backendNodeId"`
	NodeType       int    `json:"nodeType"`
	NodeName       string `json:"nodeName"`
	LocalName      string `json:"localName"`
	NodeValue      string `json:"nodeValue"`
	ChildNodeCount *int   `json:"childNodeCount,omitempty"`
	Children       []Node `json:"children,omitempty"`
}

// GetDocumentParams is DOM.getDocument's parameter object.
type GetDocumentParams struct {
	Depth        *int `json:"depth,omitempty"`
	PierceTarget bool `json:"pierce,omitempty"`
}

// GetDocumentReturns is DOM.getDocument's result object.
type GetDocumentReturns struct {
	Root Node `json:"root"`
}

// GetDocument is the DOM.getDocument command descriptor.
var GetDocument = registry.NewCommand[GetDocumentParams, GetDocumentReturns]("DOM.getDocument")
