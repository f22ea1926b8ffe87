// Package mcp serves the Eventbrite client as Model Context Protocol tools.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gearplug/eventbrite-go/client"
	"github.com/gearplug/eventbrite-go/internal/config"
	"github.com/gearplug/eventbrite-go/internal/logger"
	"github.com/gearplug/eventbrite-go/internal/recovery"
	"github.com/gearplug/eventbrite-go/mcp/internal/handlers"
	"github.com/gorilla/mux"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"
)

type toolRegisterer interface {
	RegisterTools(s *server.MCPServer) error
}

// NewServer builds an MCP server exposing c's operations as tools.
func NewServer(cfg *config.Config, c *client.Client) (*server.MCPServer, error) {
	s := server.NewMCPServer(
		cfg.MCPName,
		cfg.MCPVersion,
		server.WithToolCapabilities(true),
		// Advertise empty resources & prompts so the host client stops returning
		// -32601 for resources/list and prompts/list.
		server.WithResourceCapabilities(true, true),
		server.WithPromptCapabilities(true),
	)

	for _, h := range []struct {
		name string
		h    toolRegisterer
	}{
		{"user", handlers.NewUserHandler(c)},
		{"catalog", handlers.NewCatalogHandler(c)},
		{"event", handlers.NewEventHandler(c)},
		{"webhook", handlers.NewWebhookHandler(c)},
	} {
		if err := h.h.RegisterTools(s); err != nil {
			return nil, fmt.Errorf("register %s tools: %w", h.name, err)
		}
	}
	return s, nil
}

// RunMCPServer loads configuration from the environment and serves until
// stdin closes (stdio) or a termination signal arrives (HTTP).
func RunMCPServer() error {
	cfg, err := config.New()
	if err != nil {
		return err
	}

	stdio := shouldUseStdio()
	format := logger.Format(cfg.LogFormat)
	if stdio && format == logger.FormatJSON {
		// stdout carries the protocol
		format = logger.FormatConsole
	}
	logger.Init(cfg.MCPName, cfg.Level(), format)

	c, err := cfg.NewClient()
	if err != nil {
		log.Error().Stack().Err(err).Msg("Failed to create client")
		return err
	}
	log.Info().Str("api_url", c.APIURL()).Bool("token_present", cfg.AccessToken != "").Msg("Client created")

	s, err := NewServer(cfg, c)
	if err != nil {
		return err
	}

	if stdio {
		log.Info().Msg("Starting Eventbrite MCP server (stdio transport)")
		return server.ServeStdio(s)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return serveHTTP(ctx, cfg, s)
}

// serveHTTP serves Streamable HTTP on cfg.MCPAddr until ctx is done, then
// shuts down within cfg.MCPShutdownTimeout.
func serveHTTP(ctx context.Context, cfg *config.Config, s *server.MCPServer) error {
	streamSrv := newStreamableServer(s)
	srv := &http.Server{
		Addr:         cfg.MCPAddr,
		Handler:      newHTTPHandler(streamSrv),
		ReadTimeout:  cfg.MCPReadTimeout,
		WriteTimeout: 0, // SSE streams have no deadline
		IdleTimeout:  cfg.MCPIdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.MCPAddr).Msg("Starting Eventbrite MCP server (Streamable HTTP)")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down MCP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.MCPShutdownTimeout)
	defer cancel()

	var errs []error
	if err := srv.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	}
	if err := streamSrv.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("mcp shutdown: %w", err))
	}
	<-errCh
	log.Info().Msg("MCP server shutdown complete")
	return errors.Join(errs...)
}

func newStreamableServer(s *server.MCPServer) *server.StreamableHTTPServer {
	return server.NewStreamableHTTPServer(
		s,
		server.WithEndpointPath("/mcp"),
		server.WithHeartbeatInterval(30*time.Second),
	)
}

// newHTTPHandler routes /mcp to the streamable server and serves a health
// check on /healthz.
func newHTTPHandler(streamSrv http.Handler) http.Handler {
	r := mux.NewRouter()
	r.Handle("/mcp", streamSrv)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}).Methods(http.MethodGet)
	return recovery.Middleware(r)
}

// shouldUseStdio determines whether to use stdio transport based on environment
func shouldUseStdio() bool {
	if os.Getenv("MCP_STDIO") == "true" {
		return true
	}
	if os.Getenv("MCP_HTTP") == "true" {
		return false
	}

	// Launched by another process: stdin is a pipe, not a terminal.
	if fileInfo, err := os.Stdin.Stat(); err == nil {
		return (fileInfo.Mode() & os.ModeCharDevice) == 0
	}
	return false
}
