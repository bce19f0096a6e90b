package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/marcus/stickies/internal/mcpserver"
	"github.com/spf13/cobra"
)

func newServeCmd(opts *options) *cobra.Command {
	var httpAddr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the notes as MCP tools",
		Long: `Serve the notes as MCP tools over stdio, or over streamable HTTP at /mcp
when --http is given. Tools: list_notes, add_note, update_note, delete_note.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			// stdout carries the protocol; logs go to stderr.
			logger := opts.newLogger(cmd.ErrOrStderr())

			store, storage, err := openStore(cfg, logger)
			if err != nil {
				return err
			}
			defer storage.Close()

			s := mcpserver.NewServer(store, logger, effectiveVersion(Version))
			if httpAddr == "" {
				return server.ServeStdio(s)
			}

			mux := http.NewServeMux()
			mcpHTTP := server.NewStreamableHTTPServer(s)
			mux.Handle("POST /mcp", mcpHTTP)
			mux.Handle("GET /mcp", mcpHTTP)
			mux.Handle("DELETE /mcp", mcpHTTP)

			srv := &http.Server{
				Addr:              httpAddr,
				Handler:           mux,
				ReadHeaderTimeout: 15 * time.Second,
				IdleTimeout:       60 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			go func() {
				<-ctx.Done()
				logger.Info("shutting down server")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := srv.Shutdown(shutdownCtx); err != nil {
					logger.Error("server shutdown", "error", err)
				}
			}()

			logger.Info("mcp server listening", "addr", httpAddr, "path", "/mcp")
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("serve http: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&httpAddr, "http", "", "listen address for streamable HTTP (e.g. :8765); stdio when empty")
	return cmd
}
