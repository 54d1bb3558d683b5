package views

import (
	"fmt"

	"github.com/rpupo63/studio-site-backend/models"
)

type NavLink struct {
	Label  string `json:"label"`
	Anchor string `json:"anchor"`
}

// NavLinks are the in-page anchors of the public page, in display order.
var NavLinks = []NavLink{
	{Label: "About", Anchor: "#about"},
	{Label: "Services", Anchor: "#services"},
	{Label: "Portfolio", Anchor: "#portfolio"},
	{Label: "Reviews", Anchor: "#reviews"},
	{Label: "Contact", Anchor: "#contact"},
	{Label: "Order", Anchor: "#order"},
}

type NavBarView struct {
	BrandName    string    `json:"brand_name"`
	LogoURL      string    `json:"logo_url,omitempty"`
	LogoFallback string    `json:"logo_fallback"`
	Links        []NavLink `json:"links"`
}

// NavBar resolves the navigation bar from the active sections.
func NavBar(active []models.ContentSection) NavBarView {
	settings := ResolveSettings(active)
	return NavBarView{
		BrandName:    settings.BrandName,
		LogoURL:      settings.LogoURL,
		LogoFallback: LogoFallbackGlyph,
		Links:        append([]NavLink(nil), NavLinks...),
	}
}

type SocialLink struct {
	Network string `json:"network"`
	URL     string `json:"url"`
}

type FooterView struct {
	BrandName    string       `json:"brand_name"`
	LogoURL      string       `json:"logo_url,omitempty"`
	LogoFallback string       `json:"logo_fallback"`
	Tagline      string       `json:"tagline"`
	Links        []NavLink    `json:"links"`
	Social       []SocialLink `json:"social"`
	Email        string       `json:"email"`
	Phone        string       `json:"phone,omitempty"`
	Address      string       `json:"address,omitempty"`
	Copyright    string       `json:"copyright"`
}

// Footer resolves the footer from the active sections. year stamps the copyright line.
func Footer(active []models.ContentSection, year int) FooterView {
	settings := ResolveSettings(active)
	links := settings.SocialLinks

	var social []SocialLink
	for _, l := range []SocialLink{
		{Network: "github", URL: links.GitHub},
		{Network: "linkedin", URL: links.LinkedIn},
		{Network: "twitter", URL: links.Twitter},
		{Network: "instagram", URL: links.Instagram},
		{Network: "telegram", URL: links.Telegram},
	} {
		if l.URL != "" {
			social = append(social, l)
		}
	}
	if social == nil {
		social = []SocialLink{}
	}

	return FooterView{
		BrandName:    settings.BrandName,
		LogoURL:      settings.LogoURL,
		LogoFallback: LogoFallbackGlyph,
		Tagline:      settings.Tagline,
		Links:        append([]NavLink(nil), NavLinks...),
		Social:       social,
		Email:        links.Email,
		Phone:        links.Phone,
		Address:      links.Address,
		Copyright:    copyright(year, settings.BrandName),
	}
}

func copyright(year int, brand string) string {
	return fmt.Sprintf("© %d %s. All rights reserved.", year, brand)
}
