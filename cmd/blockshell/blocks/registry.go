package blocks

import (
	"iter"
	"log/slog"
	"maps"
	"slices"
	"sync"
)

// Registry holds the block kinds available to the palette.
// Kinds are registered at startup and looked up by name while editing.
// Registering a name twice replaces the earlier kind; instances already built
// from it keep the old definition until their workspace re-validates them.
//
// Writers take an exclusive lock, so a reload may run while readers query.
type Registry struct {
	mu     sync.RWMutex
	kinds  map[string]*BlockKind
	cats   *Categories
	logger *slog.Logger
}

// NewRegistry returns an empty Registry that builds kinds against cats.
func NewRegistry(cats *Categories) *Registry {
	return &Registry{
		kinds:  make(map[string]*BlockKind),
		cats:   cats,
		logger: slog.Default(),
	}
}

// WithLogger sets the logger used for registration events. A nil logger
// selects slog.Default().
func (r *Registry) WithLogger(l *slog.Logger) *Registry {
	if l == nil {
		l = slog.Default()
	}
	r.logger = l
	return r
}

// Categories returns the category table kinds are built against.
func (r *Registry) Categories() *Categories { return r.cats }

// Register stores kind under name, replacing any previous entry.
func (r *Registry) Register(name string, kind *BlockKind) {
	r.mu.Lock()
	_, replaced := r.kinds[name]
	r.kinds[name] = kind
	r.mu.Unlock()

	if replaced {
		r.logger.Debug("block kind replaced", "name", name)
	} else {
		r.logger.Debug("block kind registered", "name", name)
	}
}

// Define builds a kind from s and registers it. On a *SchemaError the
// registry is left unchanged.
func (r *Registry) Define(name string, s Schema) (*BlockKind, error) {
	kind, err := NewBlockKind(name, s, r.cats)
	if err != nil {
		return nil, err
	}
	r.Register(name, kind)
	return kind, nil
}

// Lookup returns the kind registered under name. A missing name is an
// ordinary outcome (e.g. a stale reference) and is reported by ok == false.
func (r *Registry) Lookup(name string) (*BlockKind, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	kind, ok := r.kinds[name]
	return kind, ok
}

// All yields every registered kind. The sequence reads a snapshot taken when
// iteration starts; order is unspecified.
func (r *Registry) All() iter.Seq2[string, *BlockKind] {
	return func(yield func(string, *BlockKind) bool) {
		r.mu.RLock()
		snapshot := maps.Clone(r.kinds)
		r.mu.RUnlock()
		for name, kind := range snapshot {
			if !yield(name, kind) {
				return
			}
		}
	}
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.kinds))
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.kinds)
}
