package schema

import (
	"fmt"
	"strings"
)

// Kind is the closed enumeration of field input kinds a template schema can
// declare.
type Kind string

const (
	KindText      Kind = "text"
	KindMultiline Kind = "multiline"
	KindEmail     Kind = "email"
	KindPhone     Kind = "phone"
	KindURL       Kind = "url"
	KindFileSet   Kind = "file-set"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	switch k {
	case KindText, KindMultiline, KindEmail, KindPhone, KindURL, KindFileSet:
		return true
	}
	return false
}

// AcceptsText reports whether the kind stores free text. Every kind except
// file-set does.
func (k Kind) AcceptsText() bool {
	return k.Valid() && k != KindFileSet
}

// FileConstraints bounds a file-set field: how many files may be selected
// and which media types are acceptable.
type FileConstraints struct {
	MaxCount      int
	AcceptPattern string
}

// Accepts reports whether a media type satisfies the accept pattern. The
// pattern is either "*", an exact media type, or a "type/*" wildcard. An
// empty pattern accepts everything.
func (fc FileConstraints) Accepts(mediaType string) bool {
	pattern := strings.TrimSpace(fc.AcceptPattern)
	if pattern == "" || pattern == "*" || pattern == "*/*" {
		return true
	}
	mediaType = strings.TrimSpace(strings.ToLower(mediaType))
	pattern = strings.ToLower(pattern)
	if prefix, ok := strings.CutSuffix(pattern, "/*"); ok {
		return strings.HasPrefix(mediaType, prefix+"/")
	}
	return mediaType == pattern
}

// Field describes one onboarding question: what to ask, how to capture it
// and whether an answer is mandatory.
type Field struct {
	Name        string
	Label       string
	Kind        Kind
	Required    bool
	Placeholder string
	Help        string
	Files       *FileConstraints
}

// Schema is the ordered field list owned by a template definition. Treat a
// published schema as immutable; changing it once records exist is a
// versioned migration concern outside this package.
type Schema struct {
	Fields []Field
}

// Field looks up a descriptor by name.
func (s Schema) Field(name string) (Field, bool) {
	for _, field := range s.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// Names returns the field names in declaration order.
func (s Schema) Names() []string {
	names := make([]string, 0, len(s.Fields))
	for _, field := range s.Fields {
		names = append(names, field.Name)
	}
	return names
}

// Validate checks the schema invariants: non-empty unique names, known
// kinds, and file constraints present exactly on file-set fields.
func (s Schema) Validate() error {
	if len(s.Fields) == 0 {
		return fmt.Errorf("schema: at least one field is required")
	}
	seen := make(map[string]struct{}, len(s.Fields))
	for idx, field := range s.Fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			return fmt.Errorf("schema: field %d has an empty name", idx)
		}
		if name != field.Name {
			return fmt.Errorf("schema: field %q has surrounding whitespace", field.Name)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("schema: duplicate field name %q", name)
		}
		seen[name] = struct{}{}
		if !field.Kind.Valid() {
			return fmt.Errorf("schema: field %q has unknown kind %q", name, field.Kind)
		}
		if field.Kind == KindFileSet {
			if field.Files == nil {
				return fmt.Errorf("schema: file-set field %q is missing file constraints", name)
			}
			if field.Files.MaxCount < 1 {
				return fmt.Errorf("schema: file-set field %q needs max count >= 1, got %d", name, field.Files.MaxCount)
			}
		} else if field.Files != nil {
			return fmt.Errorf("schema: field %q carries file constraints but is not a file-set", name)
		}
	}
	return nil
}
