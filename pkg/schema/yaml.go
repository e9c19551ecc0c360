package schema

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Catalog is a set of template schemas keyed by template id, typically
// authored as a YAML document.
type Catalog map[string]Schema

type catalogDoc struct {
	Templates []templateDoc `yaml:"templates"`
}

type templateDoc struct {
	ID     string     `yaml:"id"`
	Fields []fieldDoc `yaml:"fields"`
}

type fieldDoc struct {
	Name        string   `yaml:"name"`
	Label       string   `yaml:"label"`
	Kind        string   `yaml:"kind"`
	Required    bool     `yaml:"required"`
	Placeholder string   `yaml:"placeholder"`
	Help        string   `yaml:"help"`
	Files       *fileDoc `yaml:"files"`
}

type fileDoc struct {
	MaxCount int    `yaml:"maxCount"`
	Accept   string `yaml:"accept"`
}

// ParseCatalog decodes a YAML template catalog and validates every schema in
// it. Duplicate template ids are rejected.
func ParseCatalog(raw []byte) (Catalog, error) {
	var doc catalogDoc
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("schema: parse catalog: %w", err)
	}
	if len(doc.Templates) == 0 {
		return nil, fmt.Errorf("schema: catalog declares no templates")
	}

	catalog := make(Catalog, len(doc.Templates))
	for _, tpl := range doc.Templates {
		if tpl.ID == "" {
			return nil, fmt.Errorf("schema: catalog template is missing an id")
		}
		if _, dup := catalog[tpl.ID]; dup {
			return nil, fmt.Errorf("schema: catalog declares template %q twice", tpl.ID)
		}
		s := Schema{Fields: make([]Field, 0, len(tpl.Fields))}
		for _, fd := range tpl.Fields {
			field := Field{
				Name:        fd.Name,
				Label:       fd.Label,
				Kind:        Kind(fd.Kind),
				Required:    fd.Required,
				Placeholder: fd.Placeholder,
				Help:        fd.Help,
			}
			if fd.Files != nil {
				field.Files = &FileConstraints{
					MaxCount:      fd.Files.MaxCount,
					AcceptPattern: fd.Files.Accept,
				}
			}
			s.Fields = append(s.Fields, field)
		}
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("schema: catalog template %q: %w", tpl.ID, err)
		}
		catalog[tpl.ID] = s
	}
	return catalog, nil
}

// LoadCatalog reads and parses a YAML catalog from disk.
func LoadCatalog(path string) (Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schema: read catalog %q: %w", path, err)
	}
	return ParseCatalog(raw)
}
