package registry

import (
	"context"
	"strings"
	"testing"

	"github.com/templata/go-profilegen/pkg/fault"
	"github.com/templata/go-profilegen/pkg/profile"
	"github.com/templata/go-profilegen/pkg/schema"
)

func fixtureTemplate(id string) Template {
	return Template{
		ID: id,
		Schema: schema.Schema{Fields: []schema.Field{
			{Name: "name", Kind: schema.KindText, Required: true},
		}},
		Mapper:   func(fields profile.Payload) any { return fields.Text("name") },
		Renderer: nopRenderer{},
	}
}

type nopRenderer struct{}

func (nopRenderer) Name() string        { return "nop" }
func (nopRenderer) ContentType() string { return "text/plain" }
func (nopRenderer) Render(_ context.Context, view any) ([]byte, error) {
	return []byte("ok"), nil
}

func TestRegisterAndLookup(t *testing.T) {
	reg := New()
	if err := reg.Register(fixtureTemplate("barber")); err != nil {
		t.Fatalf("register: %v", err)
	}

	if !reg.Has("barber") {
		t.Fatalf("expected barber to be registered")
	}
	s, err := reg.Schema("barber")
	if err != nil || len(s.Fields) != 1 {
		t.Fatalf("unexpected schema %v err %v", s, err)
	}
	mapper, err := reg.Mapper("barber")
	if err != nil || mapper == nil {
		t.Fatalf("unexpected mapper err %v", err)
	}
	renderer, err := reg.Renderer("barber")
	if err != nil || renderer.Name() != "nop" {
		t.Fatalf("unexpected renderer %v err %v", renderer, err)
	}
}

func TestUnknownTemplateFault(t *testing.T) {
	reg := New()
	if _, err := reg.Schema("ghost"); !fault.IsCode(err, fault.UnknownTemplate) {
		t.Fatalf("expected UnknownTemplate, got %v", err)
	}
	if _, err := reg.Mapper("ghost"); !fault.IsCode(err, fault.UnknownTemplate) {
		t.Fatalf("expected UnknownTemplate, got %v", err)
	}
}

func TestDuplicateRegistrationPanicsViaMustRegister(t *testing.T) {
	reg := New()
	reg.MustRegister(fixtureTemplate("barber"))

	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected duplicate registration to panic")
		}
		err, ok := r.(error)
		if !ok || !strings.Contains(err.Error(), "already registered") {
			t.Fatalf("unexpected panic payload: %v", r)
		}
	}()
	reg.MustRegister(fixtureTemplate("barber"))
}

func TestRegisterRejectsBrokenBindings(t *testing.T) {
	reg := New()

	broken := fixtureTemplate("")
	if err := reg.Register(broken); err == nil {
		t.Fatalf("expected missing id rejection")
	}

	noMapper := fixtureTemplate("x")
	noMapper.Mapper = nil
	if err := reg.Register(noMapper); err == nil {
		t.Fatalf("expected missing mapper rejection")
	}

	badSchema := fixtureTemplate("y")
	badSchema.Schema = schema.Schema{}
	if err := reg.Register(badSchema); err == nil {
		t.Fatalf("expected invalid schema rejection")
	}
}

func TestIDsSorted(t *testing.T) {
	reg := New()
	for _, id := range []string{"zeta", "alpha", "mike"} {
		reg.MustRegister(fixtureTemplate(id))
	}
	ids := reg.IDs()
	if len(ids) != 3 || ids[0] != "alpha" || ids[1] != "mike" || ids[2] != "zeta" {
		t.Fatalf("unexpected ids: %v", ids)
	}
}
