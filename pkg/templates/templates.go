// Package templates ships the builtin profile template set: field schemas
// for onboarding, mapping functions for normalization and HTML preview
// renderers, bound per template id.
package templates

import (
	"github.com/templata/go-profilegen/pkg/registry"
	"github.com/templata/go-profilegen/pkg/schema"
)

// Builtin template ids.
const (
	Developer    = "developer"
	Photographer = "photographer"
	Trainer      = "trainer"
	Gardener     = "gardener"
)

// Register wires every builtin template into the registry. Call once at
// process start; a duplicate id is a wiring bug and panics.
func Register(reg *registry.Registry) {
	reg.MustRegister(registry.Template{
		ID:       Developer,
		Schema:   developerSchema(),
		Mapper:   mapDeveloper,
		Renderer: newHTMLRenderer(Developer, developerHTML),
	})
	reg.MustRegister(registry.Template{
		ID:       Photographer,
		Schema:   photographerSchema(),
		Mapper:   mapPhotographer,
		Renderer: newHTMLRenderer(Photographer, photographerHTML),
	})
	reg.MustRegister(registry.Template{
		ID:       Trainer,
		Schema:   trainerSchema(),
		Mapper:   mapTrainer,
		Renderer: newHTMLRenderer(Trainer, trainerHTML),
	})
	reg.MustRegister(registry.Template{
		ID:       Gardener,
		Schema:   gardenerSchema(),
		Mapper:   mapGardener,
		Renderer: newHTMLRenderer(Gardener, gardenerHTML),
	})
}

// Builtin returns a fresh registry holding the builtin template set.
func Builtin() *registry.Registry {
	reg := registry.New()
	Register(reg)
	return reg
}

func developerSchema() schema.Schema {
	return schema.Schema{Fields: []schema.Field{
		{Name: "name", Label: "Full name", Kind: schema.KindText, Required: true},
		{Name: "role", Label: "Role", Kind: schema.KindText, Required: true,
			Placeholder: "Backend engineer"},
		{Name: "bio", Label: "About you", Kind: schema.KindMultiline},
		{Name: "email", Label: "Contact email", Kind: schema.KindEmail, Required: true},
		{Name: "website", Label: "Website", Kind: schema.KindURL},
		{Name: "skills", Label: "Skills", Kind: schema.KindMultiline,
			Help: "One per line, or comma separated"},
		{Name: "projects", Label: "Projects", Kind: schema.KindMultiline,
			Help: "One per line: Title | description | link"},
		{Name: "avatar", Label: "Avatar", Kind: schema.KindFileSet,
			Files: &schema.FileConstraints{MaxCount: 1, AcceptPattern: "image/*"}},
	}}
}

func photographerSchema() schema.Schema {
	return schema.Schema{Fields: []schema.Field{
		{Name: "name", Label: "Name", Kind: schema.KindText, Required: true},
		{Name: "tagline", Label: "Tagline", Kind: schema.KindText},
		{Name: "bio", Label: "About you", Kind: schema.KindMultiline},
		{Name: "email", Label: "Contact email", Kind: schema.KindEmail, Required: true},
		{Name: "phone", Label: "Phone", Kind: schema.KindPhone},
		{Name: "specialties", Label: "Specialties", Kind: schema.KindMultiline,
			Help: "One per line, or comma separated"},
		{Name: "avatar", Label: "Portrait", Kind: schema.KindFileSet,
			Files: &schema.FileConstraints{MaxCount: 1, AcceptPattern: "image/*"}},
		{Name: "gallery", Label: "Portfolio gallery", Kind: schema.KindFileSet, Required: true,
			Files: &schema.FileConstraints{MaxCount: 12, AcceptPattern: "image/*"}},
	}}
}

func trainerSchema() schema.Schema {
	return schema.Schema{Fields: []schema.Field{
		{Name: "name", Label: "Name", Kind: schema.KindText, Required: true},
		{Name: "discipline", Label: "Discipline", Kind: schema.KindText, Required: true,
			Placeholder: "Strength coaching"},
		{Name: "bio", Label: "About you", Kind: schema.KindMultiline},
		{Name: "email", Label: "Contact email", Kind: schema.KindEmail},
		{Name: "phone", Label: "Phone", Kind: schema.KindPhone, Required: true},
		{Name: "services", Label: "Services", Kind: schema.KindMultiline,
			Help: "One per line: Title | description"},
		{Name: "certifications", Label: "Certifications", Kind: schema.KindMultiline,
			Help: "One per line, or comma separated"},
		{Name: "avatar", Label: "Photo", Kind: schema.KindFileSet,
			Files: &schema.FileConstraints{MaxCount: 1, AcceptPattern: "image/*"}},
	}}
}

func gardenerSchema() schema.Schema {
	return schema.Schema{Fields: []schema.Field{
		{Name: "name", Label: "Name", Kind: schema.KindText, Required: true},
		{Name: "region", Label: "Service region", Kind: schema.KindText},
		{Name: "bio", Label: "About you", Kind: schema.KindMultiline},
		{Name: "phone", Label: "Phone", Kind: schema.KindPhone, Required: true},
		{Name: "services", Label: "Services", Kind: schema.KindMultiline,
			Help: "One per line, or comma separated"},
		{Name: "gallery", Label: "Work photos", Kind: schema.KindFileSet,
			Files: &schema.FileConstraints{MaxCount: 8, AcceptPattern: "image/*"}},
	}}
}
