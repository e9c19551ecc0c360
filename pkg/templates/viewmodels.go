package templates

// View models are the typed shapes preview renderers consume. They are
// produced fresh on every normalization call and never persisted. Every
// field has a documented default: the zero string or an empty slice, so a
// renderer never sees an undefined required field.

// PortfolioItem is one "Title | description | link" row from a structured
// list field.
type PortfolioItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
}

// DeveloperView backs the developer template.
type DeveloperView struct {
	Name      string          `json:"name"`
	Role      string          `json:"role"`
	Bio       string          `json:"bio"`
	Email     string          `json:"email"`
	Website   string          `json:"website"`
	AvatarURL string          `json:"avatarUrl"`
	Skills    []string        `json:"skills"`
	Projects  []PortfolioItem `json:"projects"`
}

// PhotographerView backs the photographer template.
type PhotographerView struct {
	Name        string   `json:"name"`
	Tagline     string   `json:"tagline"`
	Bio         string   `json:"bio"`
	Email       string   `json:"email"`
	Phone       string   `json:"phone"`
	AvatarURL   string   `json:"avatarUrl"`
	Specialties []string `json:"specialties"`
	Gallery     []string `json:"gallery"`
}

// ServiceItem is one "Title | description" row.
type ServiceItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// TrainerView backs the trainer template.
type TrainerView struct {
	Name           string        `json:"name"`
	Discipline     string        `json:"discipline"`
	Bio            string        `json:"bio"`
	Email          string        `json:"email"`
	Phone          string        `json:"phone"`
	AvatarURL      string        `json:"avatarUrl"`
	Services       []ServiceItem `json:"services"`
	Certifications []string      `json:"certifications"`
}

// GardenerView backs the gardener template.
type GardenerView struct {
	Name     string   `json:"name"`
	Region   string   `json:"region"`
	Bio      string   `json:"bio"`
	Phone    string   `json:"phone"`
	Services []string `json:"services"`
	Gallery  []string `json:"gallery"`
}
