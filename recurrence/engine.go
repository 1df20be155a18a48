package recurrence

import (
	"io"
	"log/slog"

	"github.com/cyp0633/librecur/datetime"
)

// Engine answers next-occurrence queries for rules, optionally caching
// results. The zero-cost path is calling Rule.NextAfter directly; an
// Engine pays off when the same rules are queried repeatedly, e.g. when
// walking a large set of events for an agenda view.
type Engine struct {
	cache  *Cache
	logger *slog.Logger
}

// EngineConfig holds configuration options for the recurrence engine.
type EngineConfig struct {
	CacheEnabled bool
	CacheConfig  CacheConfig

	// Logger receives debug-level notes about cache behavior. Nil means
	// no logging.
	Logger *slog.Logger
}

// DefaultEngineConfig provides sensible defaults for production use.
var DefaultEngineConfig = EngineConfig{
	CacheEnabled: true,
	CacheConfig:  DefaultCacheConfig,
}

// NewEngine creates an engine with the default configuration.
func NewEngine() *Engine {
	return NewEngineWithConfig(DefaultEngineConfig)
}

// NewEngineWithConfig creates an engine with custom configuration.
func NewEngineWithConfig(config EngineConfig) *Engine {
	var cache *Cache
	if config.CacheEnabled {
		cache = NewCache(config.CacheConfig)
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Engine{cache: cache, logger: logger}
}

// NextAfter returns the earliest occurrence of r on or after pivot, or
// nil when none remains.
func (e *Engine) NextAfter(r *Rule, pivot *datetime.Date) *datetime.Date {
	return e.cached("next", r, pivot, r.NextAfter)
}

// NextActiveAfter is NextAfter restricted to occurrences outside the
// rule's exception and completion sets.
func (e *Engine) NextActiveAfter(r *Rule, pivot *datetime.Date) *datetime.Date {
	return e.cached("next-active", r, pivot, r.NextActiveAfter)
}

// HasActiveOccurrence reports whether r still produces an occurrence
// outside its skip sets.
func (e *Engine) HasActiveOccurrence(r *Rule) bool {
	return r.HasActiveOccurrence()
}

// Close releases the engine's cache resources, if any.
func (e *Engine) Close() {
	if e.cache != nil {
		e.cache.Close()
	}
}

func (e *Engine) cached(op string, r *Rule, pivot *datetime.Date, compute func(*datetime.Date) *datetime.Date) *datetime.Date {
	if pivot == nil {
		return nil
	}
	if e.cache == nil {
		return compute(pivot)
	}
	key := op + "|" + r.Fingerprint() + "|" + pivot.String()
	if occ, ok := e.cache.Get(key); ok {
		e.logger.Debug("recurrence cache hit", "op", op)
		return cloneOrNil(occ)
	}
	occ := compute(pivot)
	e.cache.Set(key, occ)
	return cloneOrNil(occ)
}

// cloneOrNil keeps cached dates isolated from caller mutation.
func cloneOrNil(d *datetime.Date) *datetime.Date {
	if d == nil {
		return nil
	}
	return d.Clone()
}
