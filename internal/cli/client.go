package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/parameter1/omeda-go/pkg/cache"
	"github.com/parameter1/omeda-go/pkg/omeda"
)

// newCache opens the configured cache backend. The returned function
// releases any connection it holds and is never nil.
func (c *CLI) newCache(ctx context.Context) (cache.Cache, func(), error) {
	noop := func() {}
	s := c.config

	switch s.Cache.Backend {
	case backendMemory:
		return cache.NewMemory(), noop, nil

	case backendNone:
		return cache.NewNull(), noop, nil

	case backendRedis:
		r := cache.NewRedis(cache.RedisConfig{
			Addr:      s.Redis.Addr,
			DB:        s.Redis.DB,
			KeyPrefix: s.Redis.KeyPrefix,
			TTL:       s.Cache.TTL,
		})
		if err := r.Ping(ctx); err != nil {
			_ = r.Close()
			return nil, nil, err
		}
		c.Logger.Debug("using redis cache", "addr", s.Redis.Addr, "db", s.Redis.DB)
		return r, func() { _ = r.Close() }, nil

	case backendMongo:
		if s.Mongo.URI == "" {
			return nil, nil, fmt.Errorf("mongo cache needs a URI (set [mongo] uri or OMEDA_MONGO_URI)")
		}
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(s.Mongo.URI))
		if err != nil {
			return nil, nil, fmt.Errorf("connect to mongo: %w", err)
		}
		closeFn := func() { _ = client.Disconnect(context.Background()) }
		m, err := cache.NewMongo(cache.MongoConfig{
			Collection: client.Database(s.Mongo.Database).Collection(s.Mongo.Collection),
			TTL:        s.Cache.TTL,
		})
		if err != nil {
			closeFn()
			return nil, nil, err
		}
		if err := m.EnsureIndexes(ctx); err != nil {
			closeFn()
			return nil, nil, err
		}
		c.Logger.Debug("using mongo cache", "database", s.Mongo.Database, "collection", s.Mongo.Collection)
		return m, closeFn, nil

	default:
		fc, err := cache.NewFileCache(s.Cache.Dir)
		if err != nil {
			return nil, nil, err
		}
		c.Logger.Debug("using file cache", "dir", fc.Dir())
		return fc, noop, nil
	}
}

// newClient builds an Omeda client from the resolved settings.
func (c *CLI) newClient(ctx context.Context) (*omeda.Client, func(), error) {
	ch, closeCache, err := c.newCache(ctx)
	if err != nil {
		return nil, nil, err
	}

	cfg := omeda.Config{
		AppID:        c.config.AppID,
		Brand:        c.config.Brand,
		ClientAbbrev: c.config.ClientAbbrev,
		InputID:      c.config.InputID,
		UseStaging:   c.config.UseStaging,
		BaseURL:      c.config.BaseURL,
		Cache:        ch,
		Logger:       c.Logger,
	}
	if c.verbose {
		cfg.RequestLogger = omeda.LogRequests(c.Logger)
	}

	client, err := omeda.New(cfg)
	if err != nil {
		closeCache()
		return nil, nil, err
	}
	return client, closeCache, nil
}

// printResponse writes the body to Out, indenting JSON, and the stats
// line to Err.
func (c *CLI) printResponse(resp omeda.Response) error {
	switch r := resp.(type) {
	case *omeda.JSONResponse:
		if err := c.printJSON(r.Body()); err != nil {
			return err
		}
	case *omeda.TextResponse:
		fmt.Fprintln(c.Out, r.Text())
	}
	printStats(c.Err, responseStats{
		contentType: string(resp.ContentType()),
		status:      resp.StatusCode(),
		elapsed:     resp.Elapsed(),
		cached:      resp.FromCache(),
	})
	return nil
}

func (c *CLI) printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("format response: %w", err)
	}
	fmt.Fprintln(c.Out, string(out))
	return nil
}
