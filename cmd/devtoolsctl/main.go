// Command devtoolsctl is a small diagnostic client for devtoolsd: it opens
// the WebSocket for a page id, sends one JSON-RPC method call, and prints
// whatever comes back (reply or error) until that request's id is answered,
// printing any events observed along the way.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gorilla/websocket"

	"github.com/sammy99jsp/devtools-bridge/internal/jsonrpc"
)

// Client wraps one WebSocket connection and hands out sequential request
// ids, mirroring the original request/response RPC helper's call shape but
// over the WS transport devtoolsd actually speaks.
type Client struct {
	conn    *websocket.Conn
	timeout time.Duration
	nextID  int
}

// Dial opens a devtools WebSocket at url.
func Dial(url string, timeout time.Duration) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("devtoolsctl: dial: %w", err)
	}
	return &Client{conn: conn, timeout: timeout, nextID: 1}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// Call sends method with params and blocks for its reply, printing any
// event frames observed while waiting.
func (c *Client) Call(method string, params json.RawMessage) (*jsonrpc.Response, error) {
	id := c.nextID
	c.nextID++

	reqID, _ := json.Marshal(id)
	req := struct {
		Jsonrpc string          `json:"jsonrpc"`
		ID      json.RawMessage `json:"id"`
		Method  string          `json:"method"`
		Params  json.RawMessage `json:"params,omitempty"`
	}{Jsonrpc: jsonrpc.Version, ID: reqID, Method: method, Params: params}

	data, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return nil, fmt.Errorf("devtoolsctl: send: %w", err)
	}

	_ = c.conn.SetReadDeadline(time.Now().Add(c.timeout))
	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			return nil, fmt.Errorf("devtoolsctl: read: %w", err)
		}

		var res jsonrpc.Response
		if err := json.Unmarshal(raw, &res); err != nil {
			return nil, fmt.Errorf("devtoolsctl: decode reply: %w", err)
		}

		if len(res.ID) == 0 {
			fmt.Fprintf(os.Stderr, "event %s: %s\n", string(res.Method), string(res.Params))
			continue
		}
		return &res, nil
	}
}

func main() {
	url := flag.String("url", "ws://localhost:9002/devtools/page/TEST-1", "devtools websocket url")
	method := flag.String("method", "DOM.getDocument", "method to call")
	params := flag.String("params", "{}", "JSON params object")
	timeout := flag.Duration("timeout", 5*time.Second, "reply timeout")
	flag.Parse()

	client, err := Dial(*url, *timeout)
	if err != nil {
		log.Fatal(err)
	}
	defer client.Close()

	res, err := client.Call(*method, json.RawMessage(*params))
	if err != nil {
		log.Fatal(err)
	}

	if res.Error != nil {
		fmt.Printf("error %d: %s\n", res.Error.Code, res.Error.Message)
		os.Exit(1)
	}
	fmt.Println(string(res.Result))
}
