// Package server assembles the DevTools bridge's listeners (component I/M):
// the plain-HTTP and optional-HTTPS discovery+upgrade mux, and the
// per-connection factory that builds a fresh Registry and Forwarder set for
// every accepted WebSocket.
package server

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sammy99jsp/devtools-bridge/internal/discovery"
	"github.com/sammy99jsp/devtools-bridge/internal/forwarder"
	"github.com/sammy99jsp/devtools-bridge/internal/registry"
	"github.com/sammy99jsp/devtools-bridge/internal/session"
)

// TLS names a certificate/key pair to serve HTTPS+WSS alongside the plain
// listener. Both fields are required if TLS is non-nil.
type TLS struct {
	Port        int
	Certificate string
	PrivateKey  string
}

// HandlerBuilder constructs the per-connection dispatch dependencies for one
// freshly accepted WebSocket: a Registry of typed listeners and any
// Forwarders it should route through. It is called once per connection, so
// each session gets its own Registry/Forwarder state - there is no shared
// mutable handler table to guard across connections, unlike the leak-and-
// reclaim singleton the original implementation built out of necessity for
// its borrow-checked handler lifetime.
type HandlerBuilder func() (*registry.Registry, []*forwarder.Inbound)

// Config wires a Server to its addresses, target metadata, and handler
// factory.
type Config struct {
	Port       int
	TLS        *TLS
	Version    discovery.BrowserVersion
	Targets    []discovery.Target
	NewHandler HandlerBuilder
	Log        *zerolog.Logger
}

// Server serves the discovery endpoints and upgrades /devtools/page/{id}
// requests to a Session, per page id.
type Server struct {
	cfg      Config
	upgrader websocket.Upgrader
}

// New builds a Server from cfg.
func New(cfg Config) *Server {
	if cfg.Log == nil {
		stderr := log.Logger
		cfg.Log = &stderr
	}
	return &Server{
		cfg:      cfg,
		upgrader: websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }},
	}
}

// mux builds the combined discovery+socket route table shared by the plain
// and TLS listeners.
func (s *Server) mux() *http.ServeMux {
	mux := http.NewServeMux()
	discovery.New(s.cfg.Version, s.cfg.Targets).Register(mux)
	mux.HandleFunc("/devtools/page/", s.handleSocket)
	return mux
}

func (s *Server) handleSocket(w http.ResponseWriter, r *http.Request) {
	pageID := r.URL.Path[len("/devtools/page/"):]
	pageLog := s.cfg.Log.With().Str("page", pageID).Logger()

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		pageLog.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	reg, forwarders := s.cfg.NewHandler()
	pageLog.Info().Msg("session starting")
	session.Run(session.Config{
		Conn:       conn,
		Registry:   reg,
		Forwarders: forwarders,
		Log:        &pageLog,
	})
	pageLog.Info().Msg("session ended")
}

// Run serves the plain listener, and the TLS listener if configured,
// blocking until ctx is cancelled or a listener fails.
func (s *Server) Run(ctx context.Context) error {
	mux := s.mux()

	plain := &http.Server{Addr: fmt.Sprintf(":%d", s.cfg.Port), Handler: mux}

	errs := make(chan error, 2)
	go func() {
		s.cfg.Log.Info().Int("port", s.cfg.Port).Msg("http listening")
		errs <- plain.ListenAndServe()
	}()

	var secure *http.Server
	if s.cfg.TLS != nil {
		cert, err := tls.LoadX509KeyPair(s.cfg.TLS.Certificate, s.cfg.TLS.PrivateKey)
		if err != nil {
			return fmt.Errorf("server: loading TLS keypair: %w", err)
		}
		secure = &http.Server{
			Addr:      fmt.Sprintf(":%d", s.cfg.TLS.Port),
			Handler:   mux,
			TLSConfig: &tls.Config{Certificates: []tls.Certificate{cert}},
		}
		go func() {
			s.cfg.Log.Info().Int("port", s.cfg.TLS.Port).Msg("https listening")
			errs <- secure.ListenAndServeTLS("", "")
		}()
	}

	select {
	case <-ctx.Done():
		_ = plain.Close()
		if secure != nil {
			_ = secure.Close()
		}
		return ctx.Err()
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
