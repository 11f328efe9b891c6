// Package snapshot stores small values that expire after a fixed time.
package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/abhisek/kanaflash/internal/kv"
)

// DefaultTTL is how long a saved value stays loadable.
const DefaultTTL = 24 * time.Hour

// Envelope is the persisted form of a cached value. Times are Unix
// milliseconds.
type Envelope[T any] struct {
	Payload   T     `json:"payload"`
	Timestamp int64 `json:"timestamp"`
	ExpiresAt int64 `json:"expiresAt"`
}

// Expired reports whether the envelope is past its expiry at now.
func (e Envelope[T]) Expired(now time.Time) bool {
	return now.UnixMilli() > e.ExpiresAt
}

type config struct {
	ttl           time.Duration
	now           func() time.Time
	log           *slog.Logger
	schemaName    string
	payloadSchema string
}

// Option configures a Cache.
type Option func(*config)

// WithTTL overrides DefaultTTL.
func WithTTL(ttl time.Duration) Option {
	return func(c *config) { c.ttl = ttl }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(c *config) { c.now = now }
}

// WithLogger sets the logger for storage failures.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.log = l }
}

// WithPayloadSchema constrains the payload with a JSON Schema document.
// name identifies the compiled schema and must be unique per document.
func WithPayloadSchema(name, schema string) Option {
	return func(c *config) {
		c.schemaName = name
		c.payloadSchema = schema
	}
}

// Cache is a single expiring value stored under one key. All operations
// are best effort: storage failures are logged, never returned. A stored
// value that is expired, unparsable or fails schema validation is removed
// and reported as absent.
type Cache[T any] struct {
	store kv.Store
	key   string
	cfg   config
}

// New creates a cache for key in store.
func New[T any](store kv.Store, key string, opts ...Option) *Cache[T] {
	cfg := config{
		ttl: DefaultTTL,
		now: time.Now,
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Cache[T]{store: store, key: key, cfg: cfg}
}

// Key returns the storage key.
func (c *Cache[T]) Key() string {
	return c.key
}

// Save stores payload stamped with the current time and expiry.
func (c *Cache[T]) Save(ctx context.Context, payload T) {
	now := c.cfg.now()
	env := Envelope[T]{
		Payload:   payload,
		Timestamp: now.UnixMilli(),
		ExpiresAt: now.Add(c.cfg.ttl).UnixMilli(),
	}
	b, err := json.Marshal(env)
	if err != nil {
		c.cfg.log.Error("encode snapshot", "key", c.key, "err", err)
		return
	}
	if err := c.store.Set(ctx, c.key, string(b)); err != nil {
		c.cfg.log.Error("save snapshot", "key", c.key, "err", err)
	}
}

// Load returns the stored payload if present and unexpired.
func (c *Cache[T]) Load(ctx context.Context) (T, bool) {
	var zero T

	raw, err := c.store.Get(ctx, c.key)
	if errors.Is(err, kv.ErrNotFound) {
		return zero, false
	}
	if err != nil {
		c.cfg.log.Error("load snapshot", "key", c.key, "err", err)
		return zero, false
	}

	if err := validateEnvelope(c.cfg.schemaName, c.cfg.payloadSchema, raw); err != nil {
		c.cfg.log.Warn("discard invalid snapshot", "key", c.key, "err", err)
		c.Clear(ctx)
		return zero, false
	}

	var env Envelope[T]
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		c.cfg.log.Warn("discard undecodable snapshot", "key", c.key, "err", err)
		c.Clear(ctx)
		return zero, false
	}

	if env.Expired(c.cfg.now()) {
		c.cfg.log.Debug("snapshot expired", "key", c.key, "expires_at", env.ExpiresAt)
		c.Clear(ctx)
		return zero, false
	}
	return env.Payload, true
}

// Clear removes the stored value.
func (c *Cache[T]) Clear(ctx context.Context) {
	if err := c.store.Remove(ctx, c.key); err != nil {
		c.cfg.log.Error("clear snapshot", "key", c.key, "err", err)
	}
}
