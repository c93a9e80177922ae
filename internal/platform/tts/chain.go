package tts

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Chain tries providers in order until one produces a clip. Successful
// clips are cached in memory so repeated requests for the same word do
// not hit the upstream APIs again.
//
// Chain itself implements Provider, so chains can nest if needed.
type Chain struct {
	providers []Provider
	logger    *slog.Logger

	mu        sync.Mutex
	cache     map[string]*Clip
	cacheKeys []string // insertion order, for FIFO eviction
	cacheSize int
}

// Ensure Chain implements Provider
var _ Provider = (*Chain)(nil)

// NewChain creates a provider chain. cacheSize is the maximum number of
// cached clips; zero disables caching.
func NewChain(providers []Provider, cacheSize int, logger *slog.Logger) (*Chain, error) {
	if len(providers) == 0 {
		return nil, ErrNoProviders
	}
	if cacheSize < 0 {
		return nil, fmt.Errorf("cache size cannot be negative: %d", cacheSize)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Chain{
		providers: providers,
		logger:    logger.With(slog.String("component", "tts_chain")),
		cache:     make(map[string]*Clip),
		cacheSize: cacheSize,
	}, nil
}

// Name implements Provider.Name
func (c *Chain) Name() string { return "chain" }

// Synthesize implements Provider.Synthesize
//
// Providers are tried in the order they were configured. A provider
// failure is logged and the next provider takes over; the last
// provider's error is returned when all of them fail.
func (c *Chain) Synthesize(ctx context.Context, req SynthesisRequest) (*Clip, error) {
	if req.Text == "" {
		return nil, ErrEmptyText
	}

	key := cacheKey(req)
	if clip := c.cacheGet(key); clip != nil {
		c.logger.Debug("cache hit", slog.String("language", req.Language))
		return clip, nil
	}

	var lastErr error
	for _, provider := range c.providers {
		clip, err := provider.Synthesize(ctx, req)
		if err != nil {
			c.logger.Warn("provider failed, trying next",
				slog.String("provider", provider.Name()),
				slog.String("error", err.Error()))
			lastErr = err
			continue
		}

		c.cachePut(key, clip)
		return clip, nil
	}

	return nil, fmt.Errorf("all providers failed: %w", lastErr)
}

func cacheKey(req SynthesisRequest) string {
	return req.Language + "|" + req.Voice + "|" + req.Text
}

func (c *Chain) cacheGet(key string) *Clip {
	if c.cacheSize == 0 {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache[key]
}

func (c *Chain) cachePut(key string, clip *Clip) {
	if c.cacheSize == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.cache[key]; exists {
		c.cache[key] = clip
		return
	}

	if len(c.cacheKeys) >= c.cacheSize {
		oldest := c.cacheKeys[0]
		c.cacheKeys = c.cacheKeys[1:]
		delete(c.cache, oldest)
	}

	c.cache[key] = clip
	c.cacheKeys = append(c.cacheKeys, key)
}
