package templates

import (
	"github.com/templata/go-profilegen/pkg/normalize"
	"github.com/templata/go-profilegen/pkg/profile"
)

// Mapping functions are pure and total: any subset of fields, including an
// empty payload, maps to a fully default-filled view model. Free text is
// sanitized at this boundary; stored values stay raw.

func mapDeveloper(fields profile.Payload) any {
	return DeveloperView{
		Name:      normalize.Text(fields.Text("name")),
		Role:      normalize.Text(fields.Text("role")),
		Bio:       normalize.Text(fields.Text("bio")),
		Email:     normalize.Text(fields.Text("email")),
		Website:   normalize.Text(fields.Text("website")),
		AvatarURL: firstURL(fields, "avatar"),
		Skills:    normalize.TextList(normalize.SplitList(fields.Text("skills"))),
		Projects:  portfolioItems(fields.Text("projects")),
	}
}

func mapPhotographer(fields profile.Payload) any {
	return PhotographerView{
		Name:        normalize.Text(fields.Text("name")),
		Tagline:     normalize.Text(fields.Text("tagline")),
		Bio:         normalize.Text(fields.Text("bio")),
		Email:       normalize.Text(fields.Text("email")),
		Phone:       normalize.Text(fields.Text("phone")),
		AvatarURL:   firstURL(fields, "avatar"),
		Specialties: normalize.TextList(normalize.SplitList(fields.Text("specialties"))),
		Gallery:     allURLs(fields, "gallery"),
	}
}

func mapTrainer(fields profile.Payload) any {
	return TrainerView{
		Name:           normalize.Text(fields.Text("name")),
		Discipline:     normalize.Text(fields.Text("discipline")),
		Bio:            normalize.Text(fields.Text("bio")),
		Email:          normalize.Text(fields.Text("email")),
		Phone:          normalize.Text(fields.Text("phone")),
		AvatarURL:      firstURL(fields, "avatar"),
		Services:       serviceItems(fields.Text("services")),
		Certifications: normalize.TextList(normalize.SplitList(fields.Text("certifications"))),
	}
}

func mapGardener(fields profile.Payload) any {
	return GardenerView{
		Name:     normalize.Text(fields.Text("name")),
		Region:   normalize.Text(fields.Text("region")),
		Bio:      normalize.Text(fields.Text("bio")),
		Phone:    normalize.Text(fields.Text("phone")),
		Services: normalize.TextList(normalize.SplitList(fields.Text("services"))),
		Gallery:  allURLs(fields, "gallery"),
	}
}

func portfolioItems(raw string) []PortfolioItem {
	rows := normalize.ParseRows(raw, "title", "description", "link")
	items := make([]PortfolioItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, PortfolioItem{
			Title:       normalize.Text(row["title"]),
			Description: normalize.Text(row["description"]),
			Link:        row["link"],
		})
	}
	return items
}

func serviceItems(raw string) []ServiceItem {
	rows := normalize.ParseRows(raw, "title", "description")
	items := make([]ServiceItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, ServiceItem{
			Title:       normalize.Text(row["title"]),
			Description: normalize.Text(row["description"]),
		})
	}
	return items
}

func firstURL(fields profile.Payload, name string) string {
	urls := fields.URLs(name)
	if len(urls) == 0 {
		return ""
	}
	return urls[0]
}

func allURLs(fields profile.Payload, name string) []string {
	urls := fields.URLs(name)
	if urls == nil {
		return []string{}
	}
	return urls
}
