// Command devtoolsd runs the DevTools remote-debugging bridge: an
// HTTP(S) discovery surface plus a per-connection WebSocket JSON-RPC
// dispatcher, with Runtime.* calls forwarded to an external worker.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sammy99jsp/devtools-bridge/internal/discovery"
	"github.com/sammy99jsp/devtools-bridge/internal/forwarder"
	"github.com/sammy99jsp/devtools-bridge/internal/jsonrpc"
	"github.com/sammy99jsp/devtools-bridge/internal/logging"
	"github.com/sammy99jsp/devtools-bridge/internal/protocol"
	"github.com/sammy99jsp/devtools-bridge/internal/registry"
	"github.com/sammy99jsp/devtools-bridge/internal/server"
)

var (
	port        int
	tlsPort     int
	tlsCert     string
	tlsKey      string
	logLevel    string
	pageTitle   string
	browserName string
)

var rootCmd = &cobra.Command{
	Use:   "devtoolsd",
	Short: "Chrome DevTools remote-debugging bridge",
	RunE:  run,
}

func init() {
	rootCmd.Flags().IntVar(&port, "port", 9002, "plain HTTP/WS listen port")
	rootCmd.Flags().IntVar(&tlsPort, "tls-port", 0, "HTTPS/WSS listen port (0 disables TLS)")
	rootCmd.Flags().StringVar(&tlsCert, "tls-cert", "", "PEM certificate path, required with --tls-port")
	rootCmd.Flags().StringVar(&tlsKey, "tls-key", "", "PEM private key path, required with --tls-port")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "panic, fatal, error, warn, info, debug, or trace")
	rootCmd.Flags().StringVar(&pageTitle, "title", "DevTools Bridge", "title advertised for the default page target")
	rootCmd.Flags().StringVar(&browserName, "browser", "devtools-bridge/0.1.0", "Browser field of the /json/version document")
}

func run(cmd *cobra.Command, _ []string) error {
	logger := logging.New(logging.Options{Level: logLevel, Output: os.Stderr, Pretty: true})

	var tlsCfg *server.TLS
	if tlsPort != 0 {
		if tlsCert == "" || tlsKey == "" {
			return fmt.Errorf("devtoolsd: --tls-cert and --tls-key are required with --tls-port")
		}
		tlsCfg = &server.TLS{Port: tlsPort, Certificate: tlsCert, PrivateKey: tlsKey}
	}

	target := discovery.NewTarget("", pageTitle, "localhost", port)
	srv := server.New(server.Config{
		Port:       port,
		TLS:        tlsCfg,
		Version:    discovery.BrowserVersion{Browser: browserName, ProtocolVersion: "1.3", UserAgent: "devtools-bridge"},
		Targets:    []discovery.Target{target},
		NewHandler: newHandler,
		Log:        &logger,
	})

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return srv.Run(ctx)
}

// newHandler is the per-connection HandlerBuilder: every accepted socket
// gets its own Registry and Forwarder set, so there is no shared mutable
// dispatch state across connections to protect.
func newHandler() (*registry.Registry, []*forwarder.Inbound) {
	reg := registry.New()

	registry.Register(reg, protocol.GetDocument, func(protocol.GetDocumentParams, registry.EventSink) (protocol.GetDocumentReturns, error) {
		return protocol.GetDocumentReturns{
			Root: protocol.Node{
				NodeID:        1,
				BackendNodeID: 1,
				NodeType:      9,
				NodeName:      "#document",
				LocalName:     "document",
			},
		}, nil
	})

	registry.Register(reg, protocol.Enable, func(_ protocol.EnableParams, events registry.EventSink) (protocol.EnableReturns, error) {
		events.Emit(protocol.LoadEventFired, protocol.LoadEventFiredParams{Timestamp: float64(time.Now().UnixNano()) / 1e9})
		return protocol.EnableReturns{}, nil
	})

	rt := forwarder.New("Runtime.")
	inbound, outbound := rt.Split()
	go runRuntimeWorker(outbound)

	return reg, []*forwarder.Inbound{inbound}
}

// runRuntimeWorker is a placeholder external worker for Runtime.* calls: it
// answers every job with an undefined RemoteObject rather than actually
// evaluating anything. A real deployment replaces this with a bridge into
// an embedded JS engine or a sidecar process.
func runRuntimeWorker(outbound *forwarder.Outbound) {
	for {
		job, ok := outbound.Incoming()
		if !ok {
			return
		}
		result, _ := json.Marshal(protocol.EvaluateReturns{Result: protocol.RemoteObject{Type: "undefined"}})
		outbound.Reply(jsonrpc.NewReply(job.Request.Method, job.Request.ID, result))
	}
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
