package registry

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sammy99jsp/devtools-bridge/internal/jsonrpc"
)

type greetParams struct {
	Name string `json:"name"`
}

type greetReturns struct {
	Message string `json:"message"`
}

func TestRegisterDispatchesTypedParams(t *testing.T) {
	cmd := NewCommand[greetParams, greetReturns]("Test.greet")
	reg := New()
	Register(reg, cmd, func(p greetParams, _ EventSink) (greetReturns, error) {
		return greetReturns{Message: "hello " + p.Name}, nil
	})

	raw, ok := reg.Lookup("Test.greet")
	require.True(t, ok)

	req := &jsonrpc.Request{Method: "Test.greet", ID: json.RawMessage("1"), Params: json.RawMessage(`{"name":"Ada"}`)}
	res := raw(req, EventSink{})
	require.Nil(t, res.Error)

	var result greetReturns
	require.NoError(t, json.Unmarshal(res.Result, &result))
	require.Equal(t, "hello Ada", result.Message)
}

func TestLookupIsCaseInsensitive(t *testing.T) {
	cmd := NewCommand[greetParams, greetReturns]("Test.Greet")
	reg := New()
	Register(reg, cmd, func(p greetParams, _ EventSink) (greetReturns, error) {
		return greetReturns{}, nil
	})

	_, ok := reg.Lookup("test.GREET")
	require.True(t, ok)
}

func TestRegisterRejectsBadParams(t *testing.T) {
	cmd := NewCommand[greetParams, greetReturns]("Test.greet")
	reg := New()
	Register(reg, cmd, func(p greetParams, _ EventSink) (greetReturns, error) {
		return greetReturns{}, nil
	})

	raw, _ := reg.Lookup("Test.greet")
	req := &jsonrpc.Request{Method: "Test.greet", ID: json.RawMessage("1"), Params: json.RawMessage(`"not-an-object"`)}
	res := raw(req, EventSink{})
	require.NotNil(t, res.Error)
	require.Equal(t, jsonrpc.CodeInvalidRequest, res.Error.Code)
}

type domainError struct {
	Reason string `json:"reason"`
}

func (e domainError) Error() string { return e.Reason }

func TestRegisterEmbedsDomainErrorInData(t *testing.T) {
	cmd := NewCommand[greetParams, greetReturns]("Test.greet")
	reg := New()
	Register(reg, cmd, func(p greetParams, _ EventSink) (greetReturns, error) {
		return greetReturns{}, domainError{Reason: "no such greeting"}
	})

	raw, _ := reg.Lookup("Test.greet")
	req := &jsonrpc.Request{Method: "Test.greet", ID: json.RawMessage("1"), Params: json.RawMessage(`{"name":"Ada"}`)}
	res := raw(req, EventSink{})
	require.NotNil(t, res.Error)

	var data domainError
	require.NoError(t, json.Unmarshal(res.Error.Data, &data))
	require.Equal(t, "no such greeting", data.Reason)
}

func TestRegisterFallsBackToMessageForOpaqueError(t *testing.T) {
	cmd := NewCommand[greetParams, greetReturns]("Test.greet")
	reg := New()
	Register(reg, cmd, func(p greetParams, _ EventSink) (greetReturns, error) {
		return greetReturns{}, errors.New("boom")
	})

	raw, _ := reg.Lookup("Test.greet")
	req := &jsonrpc.Request{Method: "Test.greet", ID: json.RawMessage("1"), Params: json.RawMessage(`{}`)}
	res := raw(req, EventSink{})
	require.NotNil(t, res.Error)

	var data map[string]string
	require.NoError(t, json.Unmarshal(res.Error.Data, &data))
	require.Equal(t, "boom", data["message"])
}

func TestEventSinkEmitDoesNotBlock(t *testing.T) {
	out := make(chan *jsonrpc.Response, 1)
	sink := NewEventSink(out)
	sink.Emit("Test.event", map[string]int{"x": 1})

	res := <-out
	require.Empty(t, res.ID)
	require.JSONEq(t, `{"x":1}`, string(res.Params))
}
