package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphedit/pkg/export"
	"github.com/matzehuels/graphedit/pkg/server"
)

const (
	defaultAddr     = ":8080"
	shutdownTimeout = 10 * time.Second
)

// serveCommand creates the serve command hosting an editor over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve [graph.json]",
		Short: "Host an editing session over HTTP",
		Long: `Serve opens one editor session over the diagram and exposes it over HTTP.
Pointer and key input arrive as JSON; the graph, selection and interaction
state can be read back at any time, and GET /graph.svg renders the current
snapshot.`,
		Example: `  graphedit serve examples/graphs/sample.json
  curl -X POST localhost:8080/pointer/down -d '{"x":0,"y":0,"buttons":1}'`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			return c.runServe(cmd.Context(), path, addr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "render SVG without the cache")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, path, addr string, noCache bool) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	ed, err := c.openEditor(cfg, path)
	if err != nil {
		return err
	}
	store, err := newCache(noCache)
	if err != nil {
		return err
	}
	defer store.Close()

	s := server.New(ed,
		server.WithLogger(c.Logger),
		server.WithRenderer(export.Renderer{Cache: store, TTL: renderTTL}),
	)
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("Starting server", "addr", addr, "graph", path)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	c.Logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		c.Logger.Error("Server shutdown error", "err", err)
		return err
	}
	c.Logger.Info("Server stopped", "version", ed.Snapshot().Version)
	return nil
}
