package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/strandlab/rnaplot/internal/server"
	"github.com/strandlab/rnaplot/pkg/store"
)

// newServeCmd creates the serve command for running the HTTP API.
func newServeCmd() *cobra.Command {
	var (
		addr     string
		mongoURI string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the drawing HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			cfg := settingsFromContext(ctx).config

			if addr == "" {
				addr = cfg.Server.Addr
			}
			if mongoURI == "" {
				mongoURI = cfg.Mongo.URI
			}

			st, err := newStore(ctx, mongoURI, cfg)
			if err != nil {
				return err
			}
			defer func() {
				if err := st.Close(context.Background()); err != nil {
					logger.Error("close store", "err", err)
				}
			}()

			runner, err := newRunner(ctx)
			if err != nil {
				return err
			}
			defer runner.Close()

			srv := server.New(server.Config{
				Addr:   addr,
				Runner: runner,
				Store:  st,
				Logger: logger,
			})
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default :8080)")
	cmd.Flags().StringVar(&mongoURI, "mongo-uri", "", "MongoDB connection string (default in-memory store)")

	return cmd
}

// newStore builds the drawing store. With a Mongo URI drawings persist
// across restarts; otherwise they live in process memory.
func newStore(ctx context.Context, uri string, cfg *Config) (store.Store, error) {
	if uri == "" {
		loggerFromContext(ctx).Warn("no MongoDB URI configured, drawings will not survive restarts")
		return store.NewMemoryStore(), nil
	}

	sp := newSpinnerWithContext(ctx, "Connecting to MongoDB")
	sp.Start()
	st, err := store.NewMongoStore(ctx, store.MongoConfig{
		URI:        uri,
		Database:   cfg.Mongo.Database,
		Collection: cfg.Mongo.Collection,
	})
	if err != nil {
		sp.StopWithError("MongoDB connection failed")
		if sp.Cancelled() {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	sp.StopWithSuccess("Connected to MongoDB")
	return st, nil
}
