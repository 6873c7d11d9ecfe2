package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/causeway/internal/server"
	"github.com/matzehuels/causeway/pkg/cache"
	"github.com/matzehuels/causeway/pkg/pipeline"
	"github.com/matzehuels/causeway/pkg/store"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr      string // listen address
	storeKind string // layout store backend: memory, mongo
	mongoURI  string // MongoDB connection string
	cacheKind string // artifact cache backend: file, redis, none
	redisAddr string // Redis address
}

// serveCommand creates the serve command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{
		addr:      ":8080",
		storeKind: "memory",
		cacheKind: "file",
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the causal graph HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.storeKind, "store", opts.storeKind, "layout store: memory, mongo")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo-uri", "mongodb://localhost:27017", "MongoDB connection URI")
	cmd.Flags().StringVar(&opts.cacheKind, "cache", opts.cacheKind, "artifact cache: file, redis, none")
	cmd.Flags().StringVar(&opts.redisAddr, "redis-addr", "localhost:6379", "Redis address")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts *serveOpts) error {
	st, err := c.newStore(ctx, opts)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = st.Close(shutdownCtx)
	}()

	artifactCache, err := c.newServeCache(ctx, opts)
	if err != nil {
		return err
	}
	defer artifactCache.Close()

	srv := server.New(st, pipeline.NewRunner(artifactCache, c.Logger), c.Logger)
	httpServer := &http.Server{
		Addr:              opts.addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("server listening", "addr", opts.addr, "store", opts.storeKind, "cache", opts.cacheKind)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		c.Logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	}
}

func (c *CLI) newStore(ctx context.Context, opts *serveOpts) (store.Store, error) {
	switch opts.storeKind {
	case "memory":
		return store.NewMemoryStore(), nil
	case "mongo":
		return store.NewMongoStore(ctx, store.MongoConfig{URI: opts.mongoURI})
	default:
		return nil, fmt.Errorf("unknown store: %q (must be 'memory' or 'mongo')", opts.storeKind)
	}
}

func (c *CLI) newServeCache(ctx context.Context, opts *serveOpts) (cache.Cache, error) {
	switch opts.cacheKind {
	case "none":
		return cache.NewNullCache(), nil
	case "file":
		return newCache(false)
	case "redis":
		return cache.NewRedisCache(ctx, cache.RedisConfig{Addr: opts.redisAddr})
	default:
		return nil, fmt.Errorf("unknown cache: %q (must be 'file', 'redis', or 'none')", opts.cacheKind)
	}
}
