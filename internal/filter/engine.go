// Package filter implements the question filter engine: named predicate
// filters composable via AND, a scored full-text search, and a
// recommendation ranker. The engine owns a private result cache keyed by the
// full activation state.
package filter

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/abhisek/medprep/internal/question"
)

// Predicate decides whether a question passes a named filter for the given
// activation value. Predicates must be pure.
type Predicate func(q question.Question, value any) bool

// CacheTTL is how long a cached filter result stays valid.
const CacheTTL = 2 * time.Minute

type cacheEntry struct {
	result  []question.Question
	expires time.Time
}

// Engine is the filter registry plus activation state and result cache.
// Single-owner, single-goroutine use; not safe for concurrent mutation.
type Engine struct {
	registry map[string]Predicate
	active   map[string]any
	cache    map[string]cacheEntry

	// now is replaceable in tests to exercise TTL expiry.
	now func() time.Time
}

// NewEngine creates an empty engine with no registered filters.
func NewEngine() *Engine {
	return &Engine{
		registry: make(map[string]Predicate),
		active:   make(map[string]any),
		cache:    make(map[string]cacheEntry),
		now:      time.Now,
	}
}

// Register adds a named predicate, silently overwriting any existing
// predicate with the same name.
func (e *Engine) Register(name string, p Predicate) {
	e.registry[name] = p
}

// Activate turns a registered filter on with the given value. Unknown names
// are a silent no-op. Any activation change invalidates the cache.
func (e *Engine) Activate(name string, value any) {
	if _, ok := e.registry[name]; !ok {
		return
	}
	e.active[name] = value
	e.invalidate()
}

// Deactivate turns a filter off. Unknown or inactive names are a silent
// no-op, but the cache is still cleared on a real deactivation.
func (e *Engine) Deactivate(name string) {
	if _, ok := e.active[name]; !ok {
		return
	}
	delete(e.active, name)
	e.invalidate()
}

// Active returns a copy of the current activation state.
func (e *Engine) Active() map[string]any {
	out := make(map[string]any, len(e.active))
	for k, v := range e.active {
		out[k] = v
	}
	return out
}

// Filter returns the subsequence of questions (order preserved) passing
// every active filter AND every override. Overrides supply a value directly
// without touching the persisted activation state; overrides naming an
// unregistered filter are ignored. Results are cached per activation state.
func (e *Engine) Filter(questions []question.Question, overrides map[string]any) []question.Question {
	key := e.cacheKey(overrides)
	if entry, ok := e.cache[key]; ok && e.now().Before(entry.expires) {
		return cloneQuestions(entry.result)
	}

	// Merge overrides over active filters; override value wins.
	effective := make(map[string]any, len(e.active)+len(overrides))
	for name, value := range e.active {
		effective[name] = value
	}
	for name, value := range overrides {
		if _, ok := e.registry[name]; ok {
			effective[name] = value
		}
	}

	var result []question.Question
	for _, q := range questions {
		if e.passes(q, effective) {
			result = append(result, q)
		}
	}

	e.cache[key] = cacheEntry{result: result, expires: e.now().Add(CacheTTL)}
	return cloneQuestions(result)
}

// cloneQuestions copies a result slice. Callers may reorder what Filter
// returns, so cache entries never share backing storage with them.
func cloneQuestions(qs []question.Question) []question.Question {
	if qs == nil {
		return nil
	}
	out := make([]question.Question, len(qs))
	copy(out, qs)
	return out
}

func (e *Engine) passes(q question.Question, effective map[string]any) bool {
	for name, value := range effective {
		p := e.registry[name]
		if p == nil {
			continue
		}
		if !p(q, value) {
			return false
		}
	}
	return true
}

// cacheKey builds a deterministic key from every active filter's name+value
// plus any override values, so calls with different overrides never collide.
func (e *Engine) cacheKey(overrides map[string]any) string {
	parts := make([]string, 0, len(e.active)+len(overrides))
	for name, value := range e.active {
		parts = append(parts, fmt.Sprintf("a:%s=%v", name, value))
	}
	for name, value := range overrides {
		parts = append(parts, fmt.Sprintf("o:%s=%v", name, value))
	}
	sort.Strings(parts)
	return strings.Join(parts, "|")
}

func (e *Engine) invalidate() {
	e.cache = make(map[string]cacheEntry)
}
