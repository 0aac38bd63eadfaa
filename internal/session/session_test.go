package session

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sammy99jsp/devtools-bridge/internal/forwarder"
	"github.com/sammy99jsp/devtools-bridge/internal/jsonrpc"
	"github.com/sammy99jsp/devtools-bridge/internal/registry"
)

func waitForOut(t *testing.T, conn *fakeConn) fakeMessage {
	t.Helper()
	select {
	case msg := <-conn.out:
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for outbound frame")
		return fakeMessage{}
	}
}

// S1 - unknown method.
func TestSessionUnknownMethod(t *testing.T) {
	conn := newFakeConn()
	go Run(Config{Conn: conn, Registry: registry.New()})

	conn.sendText(`{"jsonrpc":"2.0","id":7,"method":"Foo.bar","params":{}}`)
	msg := waitForOut(t, conn)

	var res jsonrpc.Response
	require.NoError(t, json.Unmarshal(msg.data, &res))
	require.NotNil(t, res.Error)
	require.Equal(t, jsonrpc.CodeMethodNotFound, res.Error.Code)
	require.JSONEq(t, "7", string(res.ID))

	conn.endClient()
}

// S2 - parse error on a binary frame; session stays open.
func TestSessionParseError(t *testing.T) {
	conn := newFakeConn()
	go Run(Config{Conn: conn, Registry: registry.New()})

	conn.sendBinary([]byte{0x00, 0x01})
	msg := waitForOut(t, conn)

	var res jsonrpc.Response
	require.NoError(t, json.Unmarshal(msg.data, &res))
	require.NotNil(t, res.Error)
	require.Equal(t, jsonrpc.CodeParseError, res.Error.Code)
	require.JSONEq(t, "null", string(res.ID))
	require.JSONEq(t, "null", string(res.Method))

	// The session should still be alive: a well-formed request afterwards
	// gets a normal reply.
	conn.sendText(`{"id":1,"method":"Foo.bar"}`)
	msg = waitForOut(t, conn)
	require.NoError(t, json.Unmarshal(msg.data, &res))
	require.Equal(t, jsonrpc.CodeMethodNotFound, res.Error.Code)

	conn.endClient()
}

// S3 - schema error from non-JSON text.
func TestSessionSchemaError(t *testing.T) {
	conn := newFakeConn()
	go Run(Config{Conn: conn, Registry: registry.New()})

	conn.sendText(`"not-json"`)
	msg := waitForOut(t, conn)

	var res jsonrpc.Response
	require.NoError(t, json.Unmarshal(msg.data, &res))
	require.NotNil(t, res.Error)
	require.Equal(t, jsonrpc.CodeInvalidRequest, res.Error.Code)
	require.JSONEq(t, "null", string(res.ID))

	conn.endClient()
}

// S4 - typed handler success.
func TestSessionTypedHandlerSuccess(t *testing.T) {
	type node struct {
		NodeID int `json:"nodeId"`
	}
	type getDocumentReturns struct {
		Root node `json:"root"`
	}

	getDocument := registry.NewCommand[struct{}, getDocumentReturns]("DOM.getDocument")

	reg := registry.New()
	registry.Register(reg, getDocument, func(struct{}, registry.EventSink) (getDocumentReturns, error) {
		return getDocumentReturns{Root: node{NodeID: 1}}, nil
	})

	conn := newFakeConn()
	go Run(Config{Conn: conn, Registry: reg})

	conn.sendText(`{"jsonrpc":"2.0","id":3,"method":"DOM.getDocument","params":{}}`)
	msg := waitForOut(t, conn)

	var res jsonrpc.Response
	require.NoError(t, json.Unmarshal(msg.data, &res))
	require.Nil(t, res.Error)
	require.JSONEq(t, "3", string(res.ID))

	var result getDocumentReturns
	require.NoError(t, json.Unmarshal(res.Result, &result))
	require.Equal(t, 1, result.Root.NodeID)

	conn.endClient()
}

// S6 - event interleaving: a handler emits an event before its reply.
func TestSessionEventInterleaving(t *testing.T) {
	type enableReturns struct{}

	pageEnable := registry.NewCommand[struct{}, enableReturns]("Page.enable")

	reg := registry.New()
	registry.Register(reg, pageEnable, func(_ struct{}, events registry.EventSink) (enableReturns, error) {
		events.Emit("Page.loadEventFired", map[string]int{"timestamp": 123})
		return enableReturns{}, nil
	})

	conn := newFakeConn()
	go Run(Config{Conn: conn, Registry: reg})

	conn.sendText(`{"jsonrpc":"2.0","id":9,"method":"Page.enable","params":{}}`)

	var gotEvent, gotReply bool
	for i := 0; i < 2; i++ {
		msg := waitForOut(t, conn)
		var res jsonrpc.Response
		require.NoError(t, json.Unmarshal(msg.data, &res))

		if res.Params != nil {
			gotEvent = true
			require.Empty(t, res.ID)
			var params map[string]int
			require.NoError(t, json.Unmarshal(res.Params, &params))
			require.Equal(t, 123, params["timestamp"])
		} else {
			gotReply = true
			require.JSONEq(t, "9", string(res.ID))
		}
	}
	require.True(t, gotEvent)
	require.True(t, gotReply)

	conn.endClient()
}

// S5 - forwarder precedence over a registry handler for the same prefix.
func TestSessionForwarderPrecedence(t *testing.T) {
	type evalReturns struct {
		Value int `json:"value"`
	}
	evaluate := registry.NewCommand[struct{}, evalReturns]("Runtime.evaluate")

	reg := registry.New()
	registryInvoked := false
	registry.Register(reg, evaluate, func(struct{}, registry.EventSink) (evalReturns, error) {
		registryInvoked = true
		return evalReturns{}, nil
	})

	fw := forwarder.New("Runtime.")
	inbound, outbound := fw.Split()

	go func() {
		job, ok := outbound.Incoming()
		if !ok {
			return
		}
		data, _ := json.Marshal(evalReturns{Value: 2})
		outbound.Reply(jsonrpc.NewReply(job.Request.Method, job.Request.ID, data))
	}()

	conn := newFakeConn()
	go Run(Config{Conn: conn, Registry: reg, Forwarders: []*forwarder.Inbound{inbound}})

	conn.sendText(`{"id":11,"method":"Runtime.evaluate","params":{"expression":"1+1"}}`)
	msg := waitForOut(t, conn)

	var res jsonrpc.Response
	require.NoError(t, json.Unmarshal(msg.data, &res))
	require.Nil(t, res.Error)

	var result evalReturns
	require.NoError(t, json.Unmarshal(res.Result, &result))
	require.Equal(t, 2, result.Value)
	require.False(t, registryInvoked, "registry handler must not run when a forwarder matches")

	conn.endClient()
}
