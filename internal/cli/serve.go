package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pinboard/internal/server"
	"github.com/matzehuels/pinboard/pkg/cache"
	"github.com/matzehuels/pinboard/pkg/pipeline"
)

// serveCommand creates the serve command for running the HTTP service.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		noCache   bool
		keyPrefix string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP layout service",
		Long: `Run the HTTP layout service.

Endpoints:
  POST /v1/layout   lay out a document, returns JSON (and SVG on request)
  POST /v1/sticky   entries visible at a scroll offset with headers pinned
  GET  /healthz     liveness and build info
  GET  /metrics     Prometheus metrics

Set --redis-addr (or ` + envRedisAddr + `) to share the layout cache between replicas.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, noCache, keyPrefix)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&keyPrefix, "key-prefix", "", "namespace for cache keys on a shared backend")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, noCache bool, keyPrefix string) error {
	logger := loggerFromContext(ctx)

	store, err := c.newCache(noCache)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}
	if rc, ok := store.(*cache.RedisCache); ok {
		if err := rc.Ping(ctx); err != nil {
			c.out.warning("Redis at %s is unreachable, requests will recompute: %v", c.redisAddr, err)
		}
	}

	var keyer cache.Keyer
	if keyPrefix != "" {
		keyer = cache.NewScopedKeyer(cache.NewDefaultKeyer(), keyPrefix)
	}
	runner := pipeline.NewRunner(store, keyer, logger)
	defer runner.Close()

	metrics := server.NewMetrics()
	metrics.Register()

	srv := server.New(runner, server.WithMetrics(metrics), server.WithLogger(logger))
	c.out.info("Serving on %s", StyleLink.Render("http://"+displayAddr(addr)))
	return srv.ListenAndServe(ctx, addr)
}

// displayAddr turns a listen address such as ":8080" into a dialable host.
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
