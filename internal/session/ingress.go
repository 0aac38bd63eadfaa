package session

import "github.com/sammy99jsp/devtools-bridge/internal/jsonrpc"

// queueCapacity bounds the decoded-request queue (component B). A full
// queue back-pressures the socket read loop, since runIngress blocks on
// the send.
const queueCapacity = 16

// runIngress reads frames from conn until it closes or errors, classifying
// each as a Parse Error, an Invalid Request, or a well-formed Request. It
// exits without draining any request still sitting in out.
func runIngress(conn Conn, errs chan<- *jsonrpc.Response, out chan<- *jsonrpc.Request) {
	defer close(out)

	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		if messageType != TextMessage {
			errs <- jsonrpc.ParseError()
			continue
		}

		req, err := jsonrpc.Decode(data)
		if err != nil {
			errs <- jsonrpc.InvalidRequestNoContext()
			continue
		}

		out <- req
	}
}
