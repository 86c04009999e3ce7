// Package rpc exposes the marketplace over JSON-RPC 2.0 on HTTP. Every
// operation and the read-only queries are methods on a single POST
// endpoint.
package rpc

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Server is the JSON-RPC HTTP server.
type Server struct {
	handler *Handler
	logger  zerolog.Logger
	httpSrv *http.Server
}

// NewServer creates a server for handler listening on addr.
func NewServer(handler *Handler, logger zerolog.Logger, addr string) *Server {
	s := &Server{
		handler: handler,
		logger:  logger.With().Str("component", "rpc").Logger(),
	}
	s.httpSrv = &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// ListenAndServe blocks serving requests until the listener fails or the
// server is shut down.
func (s *Server) ListenAndServe() error {
	s.logger.Info().Str("addr", s.httpSrv.Addr).Msg("rpc server listening")
	err := s.httpSrv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, nil, CodeParseError, "Parse error")
		return
	}

	start := time.Now()
	result, err := s.handler.Handle(req.Method, req.Params)
	if err != nil {
		s.logger.Warn().
			Str("method", req.Method).
			Dur("elapsed", time.Since(start)).
			Err(err).
			Msg("request failed")
		s.writeError(w, req.ID, CodeInternalError, err.Error())
		return
	}

	s.logger.Debug().
		Str("method", req.Method).
		Dur("elapsed", time.Since(start)).
		Msg("request served")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(Response{JsonRPC: "2.0", Result: result, ID: req.ID})
}

func (s *Server) writeError(w http.ResponseWriter, id interface{}, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"jsonrpc": "2.0",
		"error":   Error{Code: code, Message: message},
		"id":      id,
	})
}
