package openapi

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/templata/go-profilegen/pkg/schema"
)

const sampleDoc = `{
  "openapi": "3.0.3",
  "info": {"title": "profiles", "version": "1.0.0"},
  "paths": {
    "/profiles": {
      "post": {
        "operationId": "createProfile",
        "requestBody": {
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["name", "email"],
                "properties": {
                  "name": {"type": "string", "title": "Full name"},
                  "email": {"type": "string", "format": "email"},
                  "website": {"type": "string", "format": "uri"},
                  "bio": {"type": "string", "format": "textarea", "description": "Short intro"},
                  "skills": {"type": "array", "items": {"type": "string"}},
                  "gallery": {
                    "type": "array",
                    "maxItems": 4,
                    "items": {"type": "string", "format": "binary", "x-accept": "image/*"}
                  },
                  "age": {"type": "integer"}
                }
              }
            }
          }
        },
        "responses": {"200": {"description": "ok"}}
      }
    }
  }
}`

func TestFieldSchemaFromOperation(t *testing.T) {
	got, err := FieldSchema(context.Background(), []byte(sampleDoc), "createProfile")
	if err != nil {
		t.Fatalf("derive schema: %v", err)
	}

	want := schema.Schema{Fields: []schema.Field{
		{Name: "bio", Label: "bio", Kind: schema.KindMultiline, Help: "Short intro"},
		{Name: "email", Label: "email", Kind: schema.KindEmail, Required: true},
		{Name: "gallery", Label: "gallery", Kind: schema.KindFileSet,
			Files: &schema.FileConstraints{MaxCount: 4, AcceptPattern: "image/*"}},
		{Name: "name", Label: "Full name", Kind: schema.KindText, Required: true},
		{Name: "skills", Label: "skills", Kind: schema.KindMultiline, Help: "One per line"},
		{Name: "website", Label: "website", Kind: schema.KindURL},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("schema mismatch (-want +got):\n%s", diff)
	}
}

func TestFieldSchemaUnknownOperation(t *testing.T) {
	if _, err := FieldSchema(context.Background(), []byte(sampleDoc), "nope"); err == nil {
		t.Fatalf("expected error for unknown operation id")
	}
}

func TestFieldSchemaEmptyDocument(t *testing.T) {
	if _, err := FieldSchema(context.Background(), nil, "createProfile"); err == nil {
		t.Fatalf("expected error for empty document")
	}
}
