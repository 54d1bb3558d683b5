package views

import (
	"github.com/mitchellh/mapstructure"
	"github.com/rs/zerolog/log"
)

// Literal defaults used whenever a section or metadata key is absent.
const (
	DefaultBrandName   = "Pixel Forge Studio"
	DefaultTagline     = "Web design and development for brands that want to stand out."
	DefaultEmail       = "hello@pixelforge.studio"
	DefaultPhone       = ""
	DefaultAddress     = ""
	LogoFallbackGlyph  = "◆"
	DefaultHeroTitle   = "We design and build digital experiences"
	DefaultHeroSub     = "Websites, web apps and brands crafted with care."
	DefaultHeroCTA     = "Start a project"
	DefaultHeroCTALink = "#order"
	DefaultAboutTitle  = "About us"
	DefaultAboutBody   = "We are a small studio focused on thoughtful design and solid engineering."
	DefaultServicesTtl = "Services"
	DefaultContactTtl  = "Get in touch"
	DefaultReviewsTtl  = "What clients say"
	DefaultPortfolio   = "Portfolio"
)

// SocialLinks is the nested social/contact map of the settings section.
type SocialLinks struct {
	GitHub    string `json:"github"`
	LinkedIn  string `json:"linkedin"`
	Twitter   string `json:"twitter"`
	Instagram string `json:"instagram"`
	Telegram  string `json:"telegram"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}

// SiteSettings is the typed view of the settings section metadata.
type SiteSettings struct {
	BrandName   string      `json:"brandName"`
	LogoURL     string      `json:"logoUrl"`
	Tagline     string      `json:"tagline"`
	SocialLinks SocialLinks `json:"socialLinks"`
}

// HeroConfig is the typed view of the hero section metadata.
type HeroConfig struct {
	ButtonText          string `json:"buttonText"`
	ButtonLink          string `json:"buttonLink"`
	SecondaryButtonText string `json:"secondaryButtonText"`
	SecondaryButtonLink string `json:"secondaryButtonLink"`
	Stats               []Stat `json:"stats"`
}

type Stat struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// AboutConfig is the typed view of the about section metadata.
type AboutConfig struct {
	Highlights      []string `json:"highlights"`
	YearsExperience int      `json:"yearsExperience"`
	Stats           []Stat   `json:"stats"`
}

type ServiceItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Price       string `json:"price"`
}

// ServicesConfig is the typed view of the services section metadata.
type ServicesConfig struct {
	Items []ServiceItem `json:"items"`
}

// ContactConfig is the typed view of the contact section metadata.
type ContactConfig struct {
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Hours   string `json:"hours"`
}

// decodeMetadata fills out from a metadata map. Values that cannot be coerced
// are left zero so the caller's defaults apply; the rest still decode.
func decodeMetadata(meta map[string]interface{}, out interface{}) {
	if len(meta) == 0 {
		return
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		TagName:          "json",
		Result:           out,
	})
	if err != nil {
		log.Warn().Err(err).Msg("Failed to build metadata decoder")
		return
	}
	if err := decoder.Decode(meta); err != nil {
		log.Debug().Err(err).Msg("Ignoring invalid metadata values")
	}
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func deref(value *string, fallback string) string {
	if value == nil {
		return fallback
	}
	return orDefault(*value, fallback)
}
