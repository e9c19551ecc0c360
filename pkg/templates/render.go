package templates

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/templata/go-profilegen/pkg/registry"
)

// htmlRenderer renders a view model through a pongo2 template compiled once
// at registration time. View models arrive fully default-filled, so
// templates can dereference every field without guards.
type htmlRenderer struct {
	name string

	once sync.Once
	src  string
	tpl  *pongo2.Template
	err  error
}

var _ registry.Renderer = (*htmlRenderer)(nil)

func newHTMLRenderer(name, src string) *htmlRenderer {
	return &htmlRenderer{name: name, src: src}
}

func (r *htmlRenderer) Name() string { return r.name }

func (r *htmlRenderer) ContentType() string { return "text/html; charset=utf-8" }

func (r *htmlRenderer) Render(ctx context.Context, view any) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.once.Do(func() {
		r.tpl, r.err = pongo2.FromString(r.src)
	})
	if r.err != nil {
		return nil, fmt.Errorf("templates: parse %q template: %w", r.name, r.err)
	}

	data, err := viewContext(view)
	if err != nil {
		return nil, fmt.Errorf("templates: convert %q view: %w", r.name, err)
	}
	out, err := r.tpl.ExecuteBytes(data)
	if err != nil {
		return nil, fmt.Errorf("templates: render %q: %w", r.name, err)
	}
	return out, nil
}

// viewContext flattens a typed view model into a pongo2 context via its JSON
// shape, so templates address fields by their wire names.
func viewContext(view any) (pongo2.Context, error) {
	raw, err := json.Marshal(view)
	if err != nil {
		return nil, err
	}
	out := map[string]any{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return pongo2.Context(out), nil
}

const developerHTML = `<article class="profile profile-developer">
  <header>
    {% if avatarUrl %}<img class="avatar" src="{{ avatarUrl }}" alt="{{ name }}">{% endif %}
    <h1>{{ name }}</h1>
    <p class="role">{{ role }}</p>
  </header>
  {% if bio %}<p class="bio">{{ bio }}</p>{% endif %}
  {% if skills %}<ul class="skills">{% for skill in skills %}<li>{{ skill }}</li>{% endfor %}</ul>{% endif %}
  {% if projects %}<section class="projects">{% for project in projects %}
    <div class="project">
      <h2>{{ project.title }}</h2>
      <p>{{ project.description }}</p>
      {% if project.link %}<a href="{{ project.link }}">{{ project.link }}</a>{% endif %}
    </div>{% endfor %}
  </section>{% endif %}
  <footer>
    {% if email %}<a href="mailto:{{ email }}">{{ email }}</a>{% endif %}
    {% if website %}<a href="{{ website }}">{{ website }}</a>{% endif %}
  </footer>
</article>`

const photographerHTML = `<article class="profile profile-photographer">
  <header>
    {% if avatarUrl %}<img class="avatar" src="{{ avatarUrl }}" alt="{{ name }}">{% endif %}
    <h1>{{ name }}</h1>
    <p class="tagline">{{ tagline }}</p>
  </header>
  {% if bio %}<p class="bio">{{ bio }}</p>{% endif %}
  {% if specialties %}<ul class="specialties">{% for item in specialties %}<li>{{ item }}</li>{% endfor %}</ul>{% endif %}
  {% if gallery %}<section class="gallery">{% for url in gallery %}<img src="{{ url }}" alt="">{% endfor %}</section>{% endif %}
  <footer>
    {% if email %}<a href="mailto:{{ email }}">{{ email }}</a>{% endif %}
    {% if phone %}<span class="phone">{{ phone }}</span>{% endif %}
  </footer>
</article>`

const trainerHTML = `<article class="profile profile-trainer">
  <header>
    {% if avatarUrl %}<img class="avatar" src="{{ avatarUrl }}" alt="{{ name }}">{% endif %}
    <h1>{{ name }}</h1>
    <p class="discipline">{{ discipline }}</p>
  </header>
  {% if bio %}<p class="bio">{{ bio }}</p>{% endif %}
  {% if services %}<section class="services">{% for service in services %}
    <div class="service"><h2>{{ service.title }}</h2><p>{{ service.description }}</p></div>{% endfor %}
  </section>{% endif %}
  {% if certifications %}<ul class="certifications">{% for cert in certifications %}<li>{{ cert }}</li>{% endfor %}</ul>{% endif %}
  <footer>
    {% if email %}<a href="mailto:{{ email }}">{{ email }}</a>{% endif %}
    {% if phone %}<span class="phone">{{ phone }}</span>{% endif %}
  </footer>
</article>`

const gardenerHTML = `<article class="profile profile-gardener">
  <header>
    <h1>{{ name }}</h1>
    <p class="region">{{ region }}</p>
  </header>
  {% if bio %}<p class="bio">{{ bio }}</p>{% endif %}
  {% if services %}<ul class="services">{% for item in services %}<li>{{ item }}</li>{% endfor %}</ul>{% endif %}
  {% if gallery %}<section class="gallery">{% for url in gallery %}<img src="{{ url }}" alt="">{% endfor %}</section>{% endif %}
  {% if phone %}<footer><span class="phone">{{ phone }}</span></footer>{% endif %}
</article>`
