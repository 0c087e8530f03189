package registry

import (
	"errors"
	"fmt"
	"sync"

	"github.com/GriffinCanCode/Dashboard/internal/domain/widget"
	"github.com/GriffinCanCode/Dashboard/internal/shared/types"
)

var (
	// ErrUnknownType is returned by Create for tags nobody registered.
	ErrUnknownType = errors.New("unknown widget type")
	// ErrDuplicateType is returned when a tag is registered twice.
	ErrDuplicateType = errors.New("widget type already registered")
)

// Constructor builds a widget from a persisted record's fields.
type Constructor func(id, title string, config map[string]interface{}) widget.Widget

// Registry manages widget constructors
type Registry struct {
	mu    sync.RWMutex
	ctors map[string]Constructor
	order []string
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{ctors: make(map[string]Constructor)}
}

// Default returns a registry with the built-in widget types.
func Default(deps widget.Deps) *Registry {
	r := New()
	r.MustRegister(string(types.WidgetHTML), func(id, title string, config map[string]interface{}) widget.Widget {
		return widget.NewHTML(deps, id, title, config)
	})
	r.MustRegister(string(types.WidgetRSS), func(id, title string, config map[string]interface{}) widget.Widget {
		return widget.NewRSS(deps, id, title, config)
	})
	r.MustRegister(string(types.WidgetGoogleNews), func(id, title string, config map[string]interface{}) widget.Widget {
		return widget.NewGoogleNews(deps, id, title, config)
	})
	r.MustRegister(string(types.WidgetGithubRepo), func(id, title string, config map[string]interface{}) widget.Widget {
		return widget.NewGitHubRepo(deps, id, title, config)
	})
	return r
}

// Register adds a constructor for tag.
func (r *Registry) Register(tag string, ctor Constructor) error {
	if tag == "" {
		return fmt.Errorf("widget type cannot be empty")
	}
	if ctor == nil {
		return fmt.Errorf("constructor for %q cannot be nil", tag)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.ctors[tag]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateType, tag)
	}
	r.ctors[tag] = ctor
	r.order = append(r.order, tag)
	return nil
}

// MustRegister is Register for package setup; it panics on error.
func (r *Registry) MustRegister(tag string, ctor Constructor) {
	if err := r.Register(tag, ctor); err != nil {
		panic(err)
	}
}

// Create instantiates the widget registered under tag.
func (r *Registry) Create(tag, id, title string, config map[string]interface{}) (widget.Widget, error) {
	r.mu.RLock()
	ctor, ok := r.ctors[tag]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, tag)
	}
	return ctor(id, title, config), nil
}

// CreateFromRecord instantiates the widget for a persisted record.
func (r *Registry) CreateFromRecord(rec types.WidgetRecord) (widget.Widget, error) {
	return r.Create(string(rec.Type), rec.ID, rec.Title, rec.Config)
}

// Has reports whether tag is registered.
func (r *Registry) Has(tag string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.ctors[tag]
	return ok
}

// AvailableTypes lists registered tags in registration order.
func (r *Registry) AvailableTypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}
