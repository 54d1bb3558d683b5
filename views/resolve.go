package views

import "github.com/rpupo63/studio-site-backend/models"

// find returns the first section of the given type in rows.
func find(rows []models.ContentSection, sectionType string) (models.ContentSection, bool) {
	for _, row := range rows {
		if row.SectionType == sectionType {
			return row, true
		}
	}
	return models.ContentSection{}, false
}

// ResolveSettings returns the site settings from the first settings section
// in active, with every absent field replaced by its default.
func ResolveSettings(active []models.ContentSection) SiteSettings {
	var settings SiteSettings
	if row, ok := find(active, models.SectionSettings); ok {
		decodeMetadata(row.Metadata, &settings)
	}

	settings.BrandName = orDefault(settings.BrandName, DefaultBrandName)
	settings.Tagline = orDefault(settings.Tagline, DefaultTagline)
	settings.SocialLinks.Email = orDefault(settings.SocialLinks.Email, DefaultEmail)
	settings.SocialLinks.Phone = orDefault(settings.SocialLinks.Phone, DefaultPhone)
	settings.SocialLinks.Address = orDefault(settings.SocialLinks.Address, DefaultAddress)
	return settings
}
