// Package jsonrpc implements the message-decode and encode pipeline for the
// JSON-RPC 2.0 dialect spoken over a DevTools WebSocket connection.
//
// A Request carries a method call (or notification, if ID is absent). A
// Response carries exactly one of a successful result, an error, or an
// event notification's params; see NewReply, NewError, and NewEvent.
package jsonrpc

import (
	"encoding/json"
	"errors"
)

// Version is the JSON-RPC protocol tag carried by every frame.
const Version = "2.0"

// Reserved JSON-RPC 2.0 error codes used by this server.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
)

var errMissingMethod = errors.New("jsonrpc: request missing method")

// Request is a decoded client->server frame. Method is compared
// case-insensitively for dispatch; the stored case is never altered. A nil
// ID marks a notification: no reply is expected for it.
type Request struct {
	Jsonrpc string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// IsNotification reports whether this request expects no reply.
func (r *Request) IsNotification() bool {
	return len(r.ID) == 0 || string(r.ID) == "null"
}

// Error is a JSON-RPC 2.0 error object.
type Error struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Response is a server->client frame. Exactly one of Result, Error, or
// Params is meaningful: Result marks a normal reply, Error a failure
// reply, Params (with no ID) an unsolicited event.
//
// Method and ID are raw JSON rather than plain Go types because the wire
// format distinguishes "key absent" (an event's id) from "key present with
// value null" (a pre-dispatch failure that has no request to echo); a bare
// string/omitempty pair cannot express that difference.
type Response struct {
	Jsonrpc string          `json:"jsonrpc"`
	Method  json.RawMessage `json:"method,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Params  json.RawMessage `json:"params,omitempty"`
	Error   *Error          `json:"error,omitempty"`
	ID      json.RawMessage `json:"id,omitempty"`
}

var nullValue = json.RawMessage("null")

func quoteMethod(method string) json.RawMessage {
	if method == "" {
		return nullValue
	}
	data, _ := json.Marshal(method)
	return data
}

// NewReply builds a successful reply echoing the request's method and id.
func NewReply(method string, id json.RawMessage, result json.RawMessage) *Response {
	return &Response{
		Jsonrpc: Version,
		Method:  quoteMethod(method),
		ID:      id,
		Result:  result,
	}
}

// NewError builds a failure reply echoing method and id (both may be
// empty/nil, in which case they are encoded as explicit nulls - the shape
// used for pre-dispatch failures that have no request to echo).
func NewError(method string, id json.RawMessage, code int, message string, data json.RawMessage) *Response {
	if len(id) == 0 {
		id = nullValue
	}
	return &Response{
		Jsonrpc: Version,
		Method:  quoteMethod(method),
		ID:      id,
		Error:   &Error{Code: code, Message: message, Data: data},
	}
}

// NewEvent builds an unsolicited server-originated notification. It carries
// no id, so a client never mistakes it for a reply.
func NewEvent(method string, params json.RawMessage) *Response {
	return &Response{
		Jsonrpc: Version,
		Method:  quoteMethod(method),
		Params:  params,
	}
}

// ParseError is the canned reply for a non-text or non-UTF-8 frame. It has
// no associated request, so method and id are both explicit null.
func ParseError() *Response {
	return NewError("", nil, CodeParseError, "Parse error", nil)
}

// InvalidRequestNoContext is the canned reply for text that fails to parse
// as a well-formed Request: like ParseError, no request survived decoding
// to echo back.
func InvalidRequestNoContext() *Response {
	return NewError("", nil, CodeInvalidRequest, "Invalid Request", nil)
}

// InvalidRequest is an Invalid Request reply that echoes a successfully
// decoded request's method and id, used when dispatch gets further than
// decoding before failing (e.g. a listener's params don't deserialize).
func InvalidRequest(method string, id json.RawMessage) *Response {
	return NewError(method, id, CodeInvalidRequest, "Invalid Request", nil)
}

// InvalidRequestData is InvalidRequest with a handler-domain error embedded
// in error.data, used when a typed listener returns a domain error.
func InvalidRequestData(method string, id json.RawMessage, data json.RawMessage) *Response {
	return NewError(method, id, CodeInvalidRequest, "Invalid Request", data)
}

// MethodNotFound is the canned reply for a request with no matching route.
func MethodNotFound(method string, id json.RawMessage) *Response {
	return NewError(method, id, CodeMethodNotFound, "Method not found", nil)
}

var emptyParams = json.RawMessage("{}")

// Decode parses a text WebSocket message into a Request. It fills in the
// default protocol tag and an empty-object params when either is absent.
// An error here always means the frame was text but not a valid Request;
// the caller (the ingress pump) is responsible for distinguishing non-text
// frames, which never reach Decode.
func Decode(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, err
	}
	if req.Method == "" {
		return nil, errMissingMethod
	}
	if req.Jsonrpc == "" {
		req.Jsonrpc = Version
	}
	if len(req.Params) == 0 {
		req.Params = emptyParams
	}
	return &req, nil
}

// Encode serializes a Response to its wire form. Encoding is infallible for
// any Response built through the constructors above.
func Encode(res *Response) ([]byte, error) {
	if res.Jsonrpc == "" {
		res.Jsonrpc = Version
	}
	return json.Marshal(res)
}
