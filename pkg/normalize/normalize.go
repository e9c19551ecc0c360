package normalize

import (
	"github.com/templata/go-profilegen/pkg/fault"
	"github.com/templata/go-profilegen/pkg/profile"
)

// Mapper converts persisted profile fields into a template's typed view
// model. Mappers must be pure and total over partially populated records:
// absent fields become documented defaults, never errors.
type Mapper func(fields profile.Payload) any

// Bindings yields the mapper bound to a template id. The template registry
// satisfies this; tests can substitute a fixture lookup.
type Bindings interface {
	Mapper(templateID string) (Mapper, error)
}

// Normalizer dispatches a persisted record to the mapping function
// registered for its target template.
type Normalizer struct {
	bindings Bindings
}

// New constructs a Normalizer over the given bindings.
func New(bindings Bindings) *Normalizer {
	return &Normalizer{bindings: bindings}
}

// Normalize looks up the mapper for templateID and applies it to the
// record's fields, producing a fresh view model. An unregistered template id
// yields an UnknownTemplate fault.
func (n *Normalizer) Normalize(templateID string, record profile.Record) (any, error) {
	if n == nil || n.bindings == nil {
		return nil, fault.New(fault.UnknownTemplate, "normalizer has no template bindings")
	}
	mapper, err := n.bindings.Mapper(templateID)
	if err != nil {
		return nil, err
	}
	fields := record.Fields
	if fields == nil {
		fields = profile.Payload{}
	}
	return mapper(fields), nil
}
