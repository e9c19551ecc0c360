package schema

import (
	"strings"
	"testing"
)

func validSchema() Schema {
	return Schema{Fields: []Field{
		{Name: "name", Label: "Name", Kind: KindText, Required: true},
		{Name: "bio", Label: "Bio", Kind: KindMultiline},
		{Name: "gallery", Label: "Gallery", Kind: KindFileSet,
			Files: &FileConstraints{MaxCount: 3, AcceptPattern: "image/*"}},
	}}
}

func TestValidateOK(t *testing.T) {
	if err := validSchema().Validate(); err != nil {
		t.Fatalf("expected valid schema, got %v", err)
	}
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Schema)
		wantSub string
	}{
		{"empty schema", func(s *Schema) { s.Fields = nil }, "at least one field"},
		{"duplicate name", func(s *Schema) {
			s.Fields = append(s.Fields, Field{Name: "name", Kind: KindText})
		}, "duplicate field name"},
		{"unknown kind", func(s *Schema) { s.Fields[0].Kind = "checkbox" }, "unknown kind"},
		{"file-set without constraints", func(s *Schema) { s.Fields[2].Files = nil }, "missing file constraints"},
		{"constraints on text field", func(s *Schema) {
			s.Fields[0].Files = &FileConstraints{MaxCount: 1}
		}, "not a file-set"},
		{"zero max count", func(s *Schema) { s.Fields[2].Files.MaxCount = 0 }, "max count"},
		{"blank name", func(s *Schema) { s.Fields[1].Name = "  " }, "empty name"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := validSchema()
			tc.mutate(&s)
			err := s.Validate()
			if err == nil {
				t.Fatalf("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.wantSub) {
				t.Fatalf("expected error containing %q, got %v", tc.wantSub, err)
			}
		})
	}
}

func TestFieldLookupPreservesOrder(t *testing.T) {
	s := validSchema()
	if got := s.Names(); len(got) != 3 || got[0] != "name" || got[2] != "gallery" {
		t.Fatalf("unexpected field order: %v", got)
	}
	field, ok := s.Field("bio")
	if !ok || field.Kind != KindMultiline {
		t.Fatalf("unexpected lookup result: %+v ok=%v", field, ok)
	}
	if _, ok := s.Field("missing"); ok {
		t.Fatalf("did not expect to find missing field")
	}
}

func TestFileConstraintsAccepts(t *testing.T) {
	cases := []struct {
		pattern string
		media   string
		want    bool
	}{
		{"image/*", "image/png", true},
		{"image/*", "IMAGE/JPEG", true},
		{"image/*", "application/pdf", false},
		{"image/png", "image/png", true},
		{"image/png", "image/jpeg", false},
		{"*", "video/mp4", true},
		{"", "anything/else", true},
	}
	for _, tc := range cases {
		fc := FileConstraints{MaxCount: 1, AcceptPattern: tc.pattern}
		if got := fc.Accepts(tc.media); got != tc.want {
			t.Fatalf("Accepts(%q) with pattern %q = %v, want %v", tc.media, tc.pattern, got, tc.want)
		}
	}
}

func TestKindAcceptsText(t *testing.T) {
	for _, kind := range []Kind{KindText, KindMultiline, KindEmail, KindPhone, KindURL} {
		if !kind.AcceptsText() {
			t.Fatalf("expected %q to accept text", kind)
		}
	}
	if KindFileSet.AcceptsText() {
		t.Fatalf("file-set must not accept text")
	}
	if Kind("bogus").AcceptsText() {
		t.Fatalf("unknown kind must not accept text")
	}
}
