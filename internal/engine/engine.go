// Package engine ties the per-session pieces together: the pantry and
// grocery lists, the recipe browser and the current route.
package engine

import (
	"context"
	"fmt"
	"regexp"
	"sync"
	"time"

	"github.com/alexmuntean1/freshfridge/internal/domain"
	"github.com/alexmuntean1/freshfridge/internal/grocery"
	"github.com/alexmuntean1/freshfridge/internal/logger"
	"github.com/alexmuntean1/freshfridge/internal/recipe"
	"github.com/alexmuntean1/freshfridge/internal/storage"
)

// Option configures the engine.
type Option func(*Engine)

// WithNamePattern sets the pattern item names must match. Pass nil to
// accept any non-blank name.
func WithNamePattern(re *regexp.Regexp) Option {
	return func(e *Engine) {
		e.namePattern = re
	}
}

// Engine opens sessions over a shared store. It depends only on interfaces
// for the network side and is fully testable with fakes.
type Engine struct {
	store       *storage.MemoryStore
	searcher    domain.RecipeSearcher
	analyzer    domain.NutritionAnalyzer
	reporter    domain.ErrorReporter
	log         *logger.Logger
	namePattern *regexp.Regexp

	mu       sync.Mutex
	sessions map[string]*Session
}

// New creates an engine with the given dependencies and options.
func New(store *storage.MemoryStore, searcher domain.RecipeSearcher, analyzer domain.NutritionAnalyzer, reporter domain.ErrorReporter, log *logger.Logger, opts ...Option) *Engine {
	e := &Engine{
		store:       store,
		searcher:    searcher,
		analyzer:    analyzer,
		reporter:    reporter,
		log:         log,
		namePattern: grocery.LettersOnly,
		sessions:    make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Open returns the session for id, creating it on first use. New sessions
// start on the pantry route. Every call counts as use of the session, so
// a session kept busy is never expired.
func (e *Engine) Open(id string) *Session {
	e.mu.Lock()
	defer e.mu.Unlock()

	bucket := e.store.Bucket(id)
	if s, ok := e.sessions[id]; ok && s.bucket == bucket {
		return s
	}

	listOpts := []grocery.Option{grocery.WithReporter(e.reporter)}
	if e.namePattern != nil {
		listOpts = append(listOpts, grocery.WithNamePattern(e.namePattern))
	}
	pantry := grocery.NewList(bucket, domain.KeyIngredients, e.log, listOpts...)
	groceries := grocery.NewList(bucket, domain.KeyGroceryItems, e.log, listOpts...)

	s := &Session{
		ID:        id,
		Pantry:    pantry,
		Groceries: groceries,
		Recipes:   recipe.NewBrowser(pantry, e.searcher, e.analyzer, e.reporter, e.log),
		bucket:    bucket,
		route:     domain.RoutePantry,
		openedAt:  time.Now(),
		log:       e.log,
	}
	e.sessions[id] = s
	e.log.Info("opened session %s", id)
	return s
}

// Has reports whether id names a live session.
func (e *Engine) Has(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.sessions[id]
	return ok && e.store.Has(id)
}

// Close forgets a session and its stored lists.
func (e *Engine) Close(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	_, ok := e.sessions[id]
	delete(e.sessions, id)
	if err := e.store.Drop(id); err != nil && !ok {
		return fmt.Errorf("engine: close %s: %w", id, err)
	}
	e.log.Info("closed session %s", id)
	return nil
}

// Expire closes sessions whose storage has been idle for longer than idle.
// The store and the session table are pruned under one lock so a
// concurrent Open never hands out a session whose bucket is gone.
func (e *Engine) Expire(idle time.Duration) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	n := e.store.Expire(idle)
	if n == 0 {
		return 0
	}
	for id := range e.sessions {
		if !e.store.Has(id) {
			delete(e.sessions, id)
		}
	}
	return n
}

// RunJanitor expires idle sessions every interval until ctx is done.
func (e *Engine) RunJanitor(ctx context.Context, interval, idle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.Expire(idle)
		}
	}
}
