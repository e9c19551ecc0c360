package templates

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/templata/go-profilegen/pkg/normalize"
	"github.com/templata/go-profilegen/pkg/profile"
)

func TestBuiltinRegistersEveryTemplate(t *testing.T) {
	reg := Builtin()
	want := []string{Developer, Gardener, Photographer, Trainer}
	if diff := cmp.Diff(want, reg.IDs()); diff != "" {
		t.Fatalf("template ids mismatch (-want +got):\n%s", diff)
	}
}

// Every builtin mapper must be total: an empty record maps to a view model
// with all defaults populated, never an error.
func TestMappersAreTotalOverEmptyRecords(t *testing.T) {
	reg := Builtin()
	n := normalize.New(reg)

	for _, id := range reg.IDs() {
		view, err := n.Normalize(id, profile.Record{TemplateID: id})
		if err != nil {
			t.Fatalf("template %q: normalize empty record: %v", id, err)
		}
		if view == nil {
			t.Fatalf("template %q: nil view model", id)
		}
	}

	view, err := n.Normalize(Developer, profile.Record{})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	dev, ok := view.(DeveloperView)
	if !ok {
		t.Fatalf("expected DeveloperView, got %T", view)
	}
	want := DeveloperView{Skills: []string{}, Projects: []PortfolioItem{}}
	if diff := cmp.Diff(want, dev); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestDeveloperMapper(t *testing.T) {
	fields := profile.Payload{
		"name":    profile.TextValue("Jordan Blake"),
		"role":    profile.TextValue("Backend engineer"),
		"skills":  profile.TextValue("Go, Postgres, Kafka"),
		"website": profile.TextValue("https://jordan.dev"),
		"projects": profile.TextValue(
			"Shop site | storefront rebuild | https://a.dev\nCLI toolkit | internal dx"),
		"avatar": profile.FilesValue("https://cdn.test/avatar.png"),
	}

	view := mapDeveloper(fields).(DeveloperView)
	want := DeveloperView{
		Name:      "Jordan Blake",
		Role:      "Backend engineer",
		Website:   "https://jordan.dev",
		AvatarURL: "https://cdn.test/avatar.png",
		Skills:    []string{"Go", "Postgres", "Kafka"},
		Projects: []PortfolioItem{
			{Title: "Shop site", Description: "storefront rebuild", Link: "https://a.dev"},
			{Title: "CLI toolkit", Description: "internal dx", Link: ""},
		},
	}
	if diff := cmp.Diff(want, view); diff != "" {
		t.Fatalf("view mismatch (-want +got):\n%s", diff)
	}
}

func TestTrainerMapperParsesServices(t *testing.T) {
	fields := profile.Payload{
		"name":     profile.TextValue("Sam Reyes"),
		"services": profile.TextValue("Strength basics | 8-week program\nMobility | weekly session"),
	}
	view := mapTrainer(fields).(TrainerView)
	want := []ServiceItem{
		{Title: "Strength basics", Description: "8-week program"},
		{Title: "Mobility", Description: "weekly session"},
	}
	if diff := cmp.Diff(want, view.Services); diff != "" {
		t.Fatalf("services mismatch (-want +got):\n%s", diff)
	}
}

func TestMapperSanitizesMarkup(t *testing.T) {
	fields := profile.Payload{
		"name": profile.TextValue("<b>Jordan</b> Blake"),
		"bio":  profile.TextValue("<script>alert(1)</script>Clean bio"),
	}
	view := mapPhotographer(fields).(PhotographerView)
	if view.Name != "Jordan Blake" {
		t.Fatalf("expected markup stripped from name, got %q", view.Name)
	}
	if view.Bio != "Clean bio" {
		t.Fatalf("expected script stripped from bio, got %q", view.Bio)
	}
}

func TestGalleryOrderPreserved(t *testing.T) {
	fields := profile.Payload{
		"gallery": profile.FilesValue("https://cdn.test/1.jpg", "https://cdn.test/2.jpg", "https://cdn.test/3.jpg"),
	}
	view := mapPhotographer(fields).(PhotographerView)
	want := []string{"https://cdn.test/1.jpg", "https://cdn.test/2.jpg", "https://cdn.test/3.jpg"}
	if diff := cmp.Diff(want, view.Gallery); diff != "" {
		t.Fatalf("gallery order mismatch (-want +got):\n%s", diff)
	}
}

func TestHTMLRendererOutputs(t *testing.T) {
	reg := Builtin()
	n := normalize.New(reg)

	record := profile.Record{Fields: profile.Payload{
		"name":   profile.TextValue("Jordan Blake"),
		"role":   profile.TextValue("Backend engineer"),
		"skills": profile.TextValue("Go\nPostgres"),
	}}
	view, err := n.Normalize(Developer, record)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}

	renderer, err := reg.Renderer(Developer)
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	if got := renderer.ContentType(); !strings.HasPrefix(got, "text/html") {
		t.Fatalf("unexpected content type %q", got)
	}

	out, err := renderer.Render(context.Background(), view)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)
	for _, want := range []string{"Jordan Blake", "Backend engineer", "<li>Go</li>", "<li>Postgres</li>"} {
		if !strings.Contains(html, want) {
			t.Fatalf("rendered html missing %q:\n%s", want, html)
		}
	}
}

func TestRenderersHandleEmptyViewModels(t *testing.T) {
	reg := Builtin()
	n := normalize.New(reg)

	for _, id := range reg.IDs() {
		view, err := n.Normalize(id, profile.Record{})
		if err != nil {
			t.Fatalf("template %q: normalize: %v", id, err)
		}
		renderer, err := reg.Renderer(id)
		if err != nil {
			t.Fatalf("template %q: renderer: %v", id, err)
		}
		if _, err := renderer.Render(context.Background(), view); err != nil {
			t.Fatalf("template %q: render empty view: %v", id, err)
		}
	}
}
