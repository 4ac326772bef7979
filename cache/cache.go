// Package cache implements the pattern-structure scan cache: a concurrent
// mapping (grammar-name, pattern-text) -> optional byte-offset-of-structural-error,
// memoizing the result of compiling a single pattern against a target grammar.
//
// The design follows termfx-morfx's providers/base.ASTCache lock-free-read,
// LoadOrStore-on-miss pattern, including its "another goroutine already
// populated it" race-tolerance comment. Unlike ASTCache, entries here are
// never evicted: a cache entry is a pure function of its key, so there is no
// time-to-live and no cleanup goroutine to run.
package cache

import "sync"

// Offset is the optional result of scanning one pattern: Some(k) means a
// structural error was found at byte k relative to the pattern's own source
// text; the zero value (Valid == false) means the pattern is structurally
// valid, or its only error is of a kind the AST-scan pass already reports.
type Offset struct {
	Value int
	Valid bool
}

// None is the cached value for a structurally valid pattern.
func None() Offset { return Offset{} }

// Some is the cached value for a pattern with a structural error at byte k.
func Some(k int) Offset { return Offset{Value: k, Valid: true} }

type key struct {
	grammarName string
	patternText string
}

// PatternScanCache memoizes Pattern Validator results across requests.
//
// PatternScanCache is safe for concurrent use. Reads never block writes, and
// racing computations for the same key may both run; since the computation
// is a pure function of (grammarName, patternText), they are guaranteed to
// agree, so the loser of the race simply discards its own result rather than
// treating the winner's entry as stale.
type PatternScanCache struct {
	entries sync.Map // key -> Offset
	hits    int64
	misses  int64
	mu      sync.Mutex // guards hits/misses; entries themselves are lock-free
}

// New creates an empty PatternScanCache.
func New() *PatternScanCache {
	return &PatternScanCache{}
}

// Get returns the cached offset for (grammarName, patternText), if present.
func (c *PatternScanCache) Get(grammarName, patternText string) (Offset, bool) {
	v, ok := c.entries.Load(key{grammarName: grammarName, patternText: patternText})
	c.mu.Lock()
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	c.mu.Unlock()
	if !ok {
		return Offset{}, false
	}
	return v.(Offset), true
}

// GetOrCompute returns the cached offset for (grammarName, patternText),
// computing and storing it via compute if absent.
//
// If two goroutines race to populate the same key, both may invoke compute;
// the second store is a no-op because LoadOrStore only inserts the first
// value observed. Both callers still receive the correct (identical) result.
func (c *PatternScanCache) GetOrCompute(grammarName, patternText string, compute func() Offset) Offset {
	k := key{grammarName: grammarName, patternText: patternText}

	if v, ok := c.entries.Load(k); ok {
		c.mu.Lock()
		c.hits++
		c.mu.Unlock()
		return v.(Offset)
	}

	c.mu.Lock()
	c.misses++
	c.mu.Unlock()

	computed := compute()
	if actual, loaded := c.entries.LoadOrStore(k, computed); loaded {
		// Another goroutine already populated it first; both values are pure
		// functions of the key so the stored one is used instead of ours.
		return actual.(Offset)
	}
	return computed
}

// Stats returns cumulative hit/miss counters, useful for CLI diagnostics output.
func (c *PatternScanCache) Stats() (hits, misses int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
