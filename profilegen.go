// Package profilegen turns declarative profile templates into validated
// onboarding forms and typed preview view models. The root package stitches
// the flow together; the pkg/ packages hold the moving parts.
package profilegen

import (
	"context"

	internalopenapi "github.com/templata/go-profilegen/internal/openapi"
	"github.com/templata/go-profilegen/pkg/form"
	"github.com/templata/go-profilegen/pkg/normalize"
	"github.com/templata/go-profilegen/pkg/profile"
	"github.com/templata/go-profilegen/pkg/registry"
	"github.com/templata/go-profilegen/pkg/schema"
	"github.com/templata/go-profilegen/pkg/templates"
)

// Re-exported aliases so callers wiring the whole flow only import the root
// package.
type (
	FieldSchema = schema.Schema
	Field       = schema.Field
	Payload     = profile.Payload
	Record      = profile.Record
	Registry    = registry.Registry
	Template    = registry.Template
	Engine      = form.Engine
)

// NewRegistry creates an empty template registry for callers assembling
// their own template set.
func NewRegistry() *registry.Registry {
	return registry.New()
}

// BuiltinTemplates returns a registry preloaded with the builtin template
// set.
func BuiltinTemplates() *registry.Registry {
	return templates.Builtin()
}

// NewEngine looks up the template's schema and builds a form engine for it.
func NewEngine(reg *registry.Registry, templateID string, options ...form.Option) (*form.Engine, error) {
	s, err := reg.Schema(templateID)
	if err != nil {
		return nil, err
	}
	return form.New(s, options...)
}

// Normalize maps a persisted record into the view model of the given
// template.
func Normalize(reg *registry.Registry, templateID string, record profile.Record) (any, error) {
	return normalize.New(reg).Normalize(templateID, record)
}

// RenderPreview runs the full preview flow: normalize the record, then
// render it with the template's registered renderer. The content type of the
// rendered output is returned alongside the bytes.
func RenderPreview(ctx context.Context, reg *registry.Registry, templateID string, record profile.Record) ([]byte, string, error) {
	view, err := Normalize(reg, templateID, record)
	if err != nil {
		return nil, "", err
	}
	renderer, err := reg.Renderer(templateID)
	if err != nil {
		return nil, "", err
	}
	out, err := renderer.Render(ctx, view)
	if err != nil {
		return nil, "", err
	}
	return out, renderer.ContentType(), nil
}

// SchemaFromOpenAPI derives a field schema from an operation's request body
// in an OpenAPI document.
func SchemaFromOpenAPI(ctx context.Context, raw []byte, operationID string) (schema.Schema, error) {
	return internalopenapi.FieldSchema(ctx, raw, operationID)
}
