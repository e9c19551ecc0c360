package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/templata/go-profilegen/pkg/fault"
	"github.com/templata/go-profilegen/pkg/normalize"
	"github.com/templata/go-profilegen/pkg/schema"
)

// Renderer converts a normalized view model into a displayable byte
// representation (HTML, JSON, etc.). Implementations must be pure over the
// view model; the registry guarantees they only ever receive fully
// default-filled models.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, view any) ([]byte, error)
}

// Template binds a template id to everything the onboarding and preview
// flows need: its field schema, its payload mapper and its renderer.
type Template struct {
	ID       string
	Schema   schema.Schema
	Mapper   normalize.Mapper
	Renderer Renderer
}

// Registry stores template bindings. Registration happens once at process
// start; afterwards the registry is read-only and safe for concurrent
// lookups. Construct explicitly and inject it rather than relying on a
// package-level instance, so tests can register fixtures in isolation.
type Registry struct {
	mu        sync.RWMutex
	templates map[string]Template
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{templates: make(map[string]Template)}
}

// Register adds a template binding. Duplicate ids, invalid schemas and nil
// mappers are rejected; these are wiring mistakes, not runtime faults.
func (r *Registry) Register(tpl Template) error {
	if tpl.ID == "" {
		return fmt.Errorf("registry: template id is required")
	}
	if err := tpl.Schema.Validate(); err != nil {
		return fmt.Errorf("registry: template %q: %w", tpl.ID, err)
	}
	if tpl.Mapper == nil {
		return fmt.Errorf("registry: template %q has no mapper", tpl.ID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.templates[tpl.ID]; exists {
		return fmt.Errorf("registry: template %q already registered", tpl.ID)
	}
	r.templates[tpl.ID] = tpl
	return nil
}

// MustRegister panics on registration failure. Duplicate registration is a
// programmer error, so startup-time wiring should use this.
func (r *Registry) MustRegister(tpl Template) {
	if err := r.Register(tpl); err != nil {
		panic(err)
	}
}

// Template retrieves the full binding for a template id.
func (r *Registry) Template(id string) (Template, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tpl, ok := r.templates[id]
	if !ok {
		return Template{}, fault.Newf(fault.UnknownTemplate, "template %q is not registered", id)
	}
	return tpl, nil
}

// Schema retrieves the field schema driving onboarding for a template id.
func (r *Registry) Schema(id string) (schema.Schema, error) {
	tpl, err := r.Template(id)
	if err != nil {
		return schema.Schema{}, err
	}
	return tpl.Schema, nil
}

// Mapper retrieves the payload mapper for a template id. Satisfies
// normalize.Bindings.
func (r *Registry) Mapper(id string) (normalize.Mapper, error) {
	tpl, err := r.Template(id)
	if err != nil {
		return nil, err
	}
	return tpl.Mapper, nil
}

// Renderer retrieves the preview renderer for a template id.
func (r *Registry) Renderer(id string) (Renderer, error) {
	tpl, err := r.Template(id)
	if err != nil {
		return nil, err
	}
	if tpl.Renderer == nil {
		return nil, fault.Newf(fault.UnknownTemplate, "template %q has no renderer", id)
	}
	return tpl.Renderer, nil
}

// Has reports whether a template id is registered.
func (r *Registry) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.templates[id]
	return ok
}

// IDs returns the sorted list of registered template ids.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.templates))
	for id := range r.templates {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
