// Package grocery owns the ordered item lists of a session: the pantry
// shown on the root screen and the grocery list. Each List is the only
// writer of its storage key.
package grocery

import (
	"context"
	"regexp"
	"strings"
	"sync"

	"github.com/alexmuntean1/freshfridge/internal/domain"
	"github.com/alexmuntean1/freshfridge/internal/logger"
	"github.com/alexmuntean1/freshfridge/internal/storage"
)

// Compile-time interface check.
var _ domain.IngredientReader = (*List)(nil)

// LettersOnly matches the names the entry form accepts.
var LettersOnly = regexp.MustCompile(`^[A-Za-z]+$`)

// Option configures a List.
type Option func(*List)

// WithNamePattern restricts accepted names to those matching re.
func WithNamePattern(re *regexp.Regexp) Option {
	return func(l *List) { l.pattern = re }
}

// WithReporter sets where swallowed storage failures go.
func WithReporter(r domain.ErrorReporter) Option {
	return func(l *List) { l.reporter = r }
}

// List is an ordered list of items persisted under one storage key.
// Safe for concurrent use.
type List struct {
	mu       sync.RWMutex
	key      string
	store    domain.SessionStorage
	items    []domain.GroceryItem
	pattern  *regexp.Regexp
	reporter domain.ErrorReporter
	log      *logger.Logger
}

// NewList creates a list bound to key and loads its current contents.
func NewList(store domain.SessionStorage, key string, log *logger.Logger, opts ...Option) *List {
	l := &List{
		key:   key,
		store: store,
		log:   log,
	}
	for _, o := range opts {
		o(l)
	}
	l.Reload()
	return l
}

// Key returns the storage key backing the list.
func (l *List) Key() string { return l.key }

// Reload replaces the in-memory list with what storage holds. Unreadable
// storage yields an empty list.
func (l *List) Reload() {
	items, err := storage.LoadItems(l.store, l.key)
	if err != nil {
		l.report("load "+l.key, err)
	}

	l.mu.Lock()
	l.items = items
	l.mu.Unlock()
	l.log.Debug("%s: loaded %d item(s)", l.key, len(items))
}

// Add appends {name, quantity} when the trimmed name is non-empty (and
// matches the configured pattern) and quantity is positive. Anything else
// is ignored and Add returns false.
func (l *List) Add(name string, quantity int) bool {
	name = strings.TrimSpace(name)
	if name == "" || quantity <= 0 {
		l.log.Debug("%s: rejected add name=%q quantity=%d", l.key, name, quantity)
		return false
	}
	if l.pattern != nil && !l.pattern.MatchString(name) {
		l.log.Debug("%s: rejected add, name %q does not match %s", l.key, name, l.pattern)
		return false
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = append(l.items, domain.NewGroceryItem(name, quantity))
	l.persistLocked()
	l.log.Info("%s: added %s x%d", l.key, name, quantity)
	return true
}

// Delete removes the item at index. Out-of-range indices are ignored and
// Delete returns false.
func (l *List) Delete(index int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if index < 0 || index >= len(l.items) {
		l.log.Debug("%s: delete index %d out of range (len=%d)", l.key, index, len(l.items))
		return false
	}
	removed := l.items[index]
	next := make([]domain.GroceryItem, 0, len(l.items)-1)
	next = append(next, l.items[:index]...)
	next = append(next, l.items[index+1:]...)
	l.items = next
	l.persistLocked()
	l.log.Info("%s: removed %s", l.key, removed.Name)
	return true
}

// Items returns a copy of the list in insertion order.
func (l *List) Items() []domain.GroceryItem {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]domain.GroceryItem, len(l.items))
	copy(out, l.items)
	return out
}

// Len returns the number of items.
func (l *List) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.items)
}

// Names returns the item names in order.
func (l *List) Names() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]string, len(l.items))
	for i, it := range l.items {
		out[i] = it.Name
	}
	return out
}

func (l *List) persistLocked() {
	if err := storage.SaveItems(l.store, l.key, l.items); err != nil {
		l.report("save "+l.key, err)
	}
}

func (l *List) report(op string, err error) {
	if l.reporter != nil {
		l.reporter.Report(context.Background(), op, err)
		return
	}
	l.log.Error("%s: %v", op, err)
}
