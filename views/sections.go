package views

import "github.com/rpupo63/studio-site-backend/models"

type HeroView struct {
	Title               string `json:"title"`
	Subtitle            string `json:"subtitle"`
	Content             string `json:"content,omitempty"`
	ImageURL            string `json:"image_url,omitempty"`
	ButtonText          string `json:"button_text"`
	ButtonLink          string `json:"button_link"`
	SecondaryButtonText string `json:"secondary_button_text"`
	SecondaryButtonLink string `json:"secondary_button_link"`
	Stats               []Stat `json:"stats"`
}

func Hero(active []models.ContentSection) HeroView {
	row, _ := find(active, models.SectionHero)
	var cfg HeroConfig
	decodeMetadata(row.Metadata, &cfg)

	return HeroView{
		Title:               deref(row.Title, DefaultHeroTitle),
		Subtitle:            deref(row.Subtitle, DefaultHeroSub),
		Content:             deref(row.Content, ""),
		ImageURL:            deref(row.ImageURL, ""),
		ButtonText:          orDefault(cfg.ButtonText, DefaultHeroCTA),
		ButtonLink:          orDefault(cfg.ButtonLink, DefaultHeroCTALink),
		SecondaryButtonText: orDefault(cfg.SecondaryButtonText, DefaultPortfolio),
		SecondaryButtonLink: orDefault(cfg.SecondaryButtonLink, "#portfolio"),
		Stats:               nonNilStats(cfg.Stats),
	}
}

type AboutView struct {
	Title           string   `json:"title"`
	Subtitle        string   `json:"subtitle,omitempty"`
	Content         string   `json:"content"`
	ImageURL        string   `json:"image_url,omitempty"`
	Highlights      []string `json:"highlights"`
	YearsExperience int      `json:"years_experience"`
	Stats           []Stat   `json:"stats"`
}

func About(active []models.ContentSection) AboutView {
	row, _ := find(active, models.SectionAbout)
	var cfg AboutConfig
	decodeMetadata(row.Metadata, &cfg)

	highlights := cfg.Highlights
	if highlights == nil {
		highlights = []string{}
	}
	years := cfg.YearsExperience
	if years < 0 {
		years = 0
	}

	return AboutView{
		Title:           deref(row.Title, DefaultAboutTitle),
		Subtitle:        deref(row.Subtitle, ""),
		Content:         deref(row.Content, DefaultAboutBody),
		ImageURL:        deref(row.ImageURL, ""),
		Highlights:      highlights,
		YearsExperience: years,
		Stats:           nonNilStats(cfg.Stats),
	}
}

type ServicesView struct {
	Title    string        `json:"title"`
	Subtitle string        `json:"subtitle,omitempty"`
	Items    []ServiceItem `json:"items"`
}

// DefaultServices is shown when the services section lists no items.
var DefaultServices = []ServiceItem{
	{Title: "Web design", Description: "Interfaces that are clear, fast and on brand.", Icon: "palette"},
	{Title: "Web development", Description: "Sites and web apps built to last.", Icon: "code"},
	{Title: "Branding", Description: "Logos and identity systems.", Icon: "sparkles"},
}

func Services(active []models.ContentSection) ServicesView {
	row, _ := find(active, models.SectionServices)
	var cfg ServicesConfig
	decodeMetadata(row.Metadata, &cfg)

	items := make([]ServiceItem, 0, len(cfg.Items))
	for _, item := range cfg.Items {
		if item.Title != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		items = append(items, DefaultServices...)
	}

	return ServicesView{
		Title:    deref(row.Title, DefaultServicesTtl),
		Subtitle: deref(row.Subtitle, ""),
		Items:    items,
	}
}

type ContactView struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
	Hours    string `json:"hours,omitempty"`
}

// Contact falls back to the settings contact links before the literal defaults.
func Contact(active []models.ContentSection) ContactView {
	row, _ := find(active, models.SectionContact)
	var cfg ContactConfig
	decodeMetadata(row.Metadata, &cfg)
	links := ResolveSettings(active).SocialLinks

	return ContactView{
		Title:    deref(row.Title, DefaultContactTtl),
		Subtitle: deref(row.Subtitle, ""),
		Email:    orDefault(cfg.Email, links.Email),
		Phone:    orDefault(cfg.Phone, links.Phone),
		Address:  orDefault(cfg.Address, links.Address),
		Hours:    cfg.Hours,
	}
}

type ReviewsHeaderView struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
}

func ReviewsHeader(active []models.ContentSection) ReviewsHeaderView {
	row, _ := find(active, models.SectionReviews)
	return ReviewsHeaderView{
		Title:    deref(row.Title, DefaultReviewsTtl),
		Subtitle: deref(row.Subtitle, ""),
	}
}

func nonNilStats(stats []Stat) []Stat {
	if stats == nil {
		return []Stat{}
	}
	return stats
}
