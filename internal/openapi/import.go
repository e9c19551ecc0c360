// Package openapi derives onboarding field schemas from OpenAPI documents,
// so templates whose submissions target an existing service contract can
// reuse that contract as their form definition.
package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/templata/go-profilegen/pkg/schema"
)

const defaultFileMax = 10

// FieldSchema extracts the request body of the named operation and maps its
// string-shaped properties onto a field schema. Properties are emitted in
// alphabetical order to keep derivation deterministic across loads.
func FieldSchema(ctx context.Context, raw []byte, operationID string) (schema.Schema, error) {
	if len(raw) == 0 {
		return schema.Schema{}, errors.New("openapi: document payload is empty")
	}
	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return schema.Schema{}, fmt.Errorf("openapi: load document: %w", err)
	}

	operation := findOperation(doc, operationID)
	if operation == nil {
		return schema.Schema{}, fmt.Errorf("openapi: operation %q not found", operationID)
	}

	body := requestSchema(operation)
	if body == nil {
		return schema.Schema{}, fmt.Errorf("openapi: operation %q has no object request body", operationID)
	}

	out := mapObject(body)
	if err := out.Validate(); err != nil {
		return schema.Schema{}, fmt.Errorf("openapi: operation %q: %w", operationID, err)
	}
	return out, nil
}

func findOperation(doc *openapi3.T, operationID string) *openapi3.Operation {
	if doc.Paths == nil {
		return nil
	}
	for _, item := range doc.Paths.Map() {
		if item == nil {
			continue
		}
		for _, operation := range item.Operations() {
			if operation != nil && operation.OperationID == operationID {
				return operation
			}
		}
	}
	return nil
}

func requestSchema(operation *openapi3.Operation) *openapi3.Schema {
	if operation.RequestBody == nil || operation.RequestBody.Value == nil {
		return nil
	}
	for _, contentType := range []string{"application/json", "multipart/form-data"} {
		media := operation.RequestBody.Value.Content.Get(contentType)
		if media == nil || media.Schema == nil || media.Schema.Value == nil {
			continue
		}
		value := media.Schema.Value
		if value.Type != nil && value.Type.Is("object") {
			return value
		}
	}
	return nil
}

func mapObject(body *openapi3.Schema) schema.Schema {
	required := make(map[string]bool, len(body.Required))
	for _, name := range body.Required {
		required[name] = true
	}

	names := make([]string, 0, len(body.Properties))
	for name := range body.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	out := schema.Schema{}
	for _, name := range names {
		ref := body.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		field, ok := mapProperty(name, ref.Value)
		if !ok {
			continue
		}
		field.Required = required[name]
		out.Fields = append(out.Fields, field)
	}
	return out
}

// mapProperty converts one property into a field descriptor. Properties that
// cannot carry a text answer or a file set are skipped rather than failing
// the whole import.
func mapProperty(name string, prop *openapi3.Schema) (schema.Field, bool) {
	field := schema.Field{
		Name:  name,
		Label: prop.Title,
		Help:  prop.Description,
	}
	if field.Label == "" {
		field.Label = name
	}

	switch {
	case prop.Type.Is("string"):
		switch prop.Format {
		case "email":
			field.Kind = schema.KindEmail
		case "uri", "url":
			field.Kind = schema.KindURL
		case "phone", "tel":
			field.Kind = schema.KindPhone
		case "binary":
			field.Kind = schema.KindFileSet
			field.Files = &schema.FileConstraints{MaxCount: 1, AcceptPattern: acceptPattern(prop)}
		case "textarea", "multiline":
			field.Kind = schema.KindMultiline
		default:
			field.Kind = schema.KindText
		}
		return field, true

	case prop.Type.Is("array"):
		items := prop.Items
		if items == nil || items.Value == nil || items.Value.Type == nil {
			return schema.Field{}, false
		}
		if items.Value.Type.Is("string") && items.Value.Format == "binary" {
			maxCount := defaultFileMax
			if prop.MaxItems != nil && *prop.MaxItems >= 1 {
				maxCount = int(*prop.MaxItems)
			}
			field.Kind = schema.KindFileSet
			field.Files = &schema.FileConstraints{MaxCount: maxCount, AcceptPattern: acceptPattern(items.Value)}
			return field, true
		}
		if items.Value.Type.Is("string") {
			// String lists collapse into a multiline answer; splitting
			// happens in the normalizer at read time.
			field.Kind = schema.KindMultiline
			if field.Help == "" {
				field.Help = "One per line"
			}
			return field, true
		}
		return schema.Field{}, false

	default:
		return schema.Field{}, false
	}
}

func acceptPattern(prop *openapi3.Schema) string {
	if prop.Extensions != nil {
		if accept, ok := prop.Extensions["x-accept"].(string); ok && accept != "" {
			return accept
		}
	}
	return "*"
}
