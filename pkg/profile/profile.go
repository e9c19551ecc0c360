package profile

import (
	"encoding/json"
	"fmt"
	"time"
)

// ValueKind tags the variant stored for a single field: free text or a list
// of uploaded file URLs. The closed tag keeps mapper pattern-matches
// exhaustive instead of sniffing an untyped bag.
type ValueKind string

const (
	ValueText  ValueKind = "text"
	ValueFiles ValueKind = "files"
)

// Value is one persisted field value. Text fields keep the user's raw input
// verbatim, including any list formatting; splitting happens at read time in
// the normalizer, never at capture time.
type Value struct {
	Kind ValueKind
	Text string
	URLs []string
}

// TextValue wraps a raw answer string.
func TextValue(text string) Value {
	return Value{Kind: ValueText, Text: text}
}

// FilesValue wraps uploaded file URLs in selection order.
func FilesValue(urls ...string) Value {
	return Value{Kind: ValueFiles, URLs: append([]string(nil), urls...)}
}

// MarshalJSON encodes text values as a JSON string and file values as a JSON
// array, matching the wire shape of persisted records.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case ValueFiles:
		urls := v.URLs
		if urls == nil {
			urls = []string{}
		}
		return json.Marshal(urls)
	default:
		return json.Marshal(v.Text)
	}
}

// UnmarshalJSON decodes either wire shape back into the tagged variant.
func (v *Value) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*v = Value{Kind: ValueText, Text: text}
		return nil
	}
	var urls []string
	if err := json.Unmarshal(data, &urls); err == nil {
		*v = Value{Kind: ValueFiles, URLs: urls}
		return nil
	}
	return fmt.Errorf("profile: field value must be a string or a string array, got %s", data)
}

// Payload maps field names to final values. It is the immutable output of a
// form submission and the fields half of a persisted record.
type Payload map[string]Value

// Text returns the raw text stored under name, or "" when the field is
// absent or holds files.
func (p Payload) Text(name string) string {
	v, ok := p[name]
	if !ok || v.Kind != ValueText {
		return ""
	}
	return v.Text
}

// URLs returns the file URLs stored under name, or nil when the field is
// absent or holds text.
func (p Payload) URLs(name string) []string {
	v, ok := p[name]
	if !ok || v.Kind != ValueFiles {
		return nil
	}
	return v.URLs
}

// Record is the persisted set of answers for one profile under one template.
// Ownership sits with the persistence collaborator; this package only models
// its wire shape.
type Record struct {
	TemplateID string    `json:"templateId"`
	ProfileID  string    `json:"profileId"`
	Fields     Payload   `json:"fields"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
