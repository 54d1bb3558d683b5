package api

import (
	"encoding/json"
	"errors"
	"html"
	"io"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rpupo63/studio-site-backend/errs"
)

const maxPayloadSize = 1 << 20

var (
	validate   = newValidator()
	plainText  = bluemonday.StrictPolicy()
	richText   = bluemonday.UGCPolicy()
	dateLayout = "2006-01-02"
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeAndValidate reads a JSON body into dst and runs its validate tags.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}, payloadName string) error {
	body := http.MaxBytesReader(w, r.Body, maxPayloadSize)
	decoder := json.NewDecoder(body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return errs.NewMaxBodySizeExceededError(maxPayloadSize)
		}
		if errors.Is(err, io.EOF) {
			return errs.NewMalformedPayloadError(payloadName, errors.New("empty body"))
		}
		return errs.NewMalformedPayloadError(payloadName, err)
	}

	if err := validate.Struct(dst); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
			fe := validationErrs[0]
			if fe.Tag() == "required" {
				return errs.NewMissingRequiredFieldError(fe.Field())
			}
			return errs.NewInvalidFieldError(fe.Field(), describeRule(fe))
		}
		return errs.NewMalformedPayloadError(payloadName, err)
	}
	return nil
}

func describeRule(fe validator.FieldError) string {
	switch fe.Tag() {
	case "email":
		return "must be a valid email address"
	case "url", "http_url":
		return "must be a valid URL"
	case "min", "max", "gte", "lte":
		return "must be " + fe.Tag() + " " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	case "datetime":
		return "must be a date formatted " + fe.Param()
	default:
		return "failed " + fe.Tag() + " validation"
	}
}

// maxCleanPasses bounds how many layers of entity encoding cleanText unwraps.
const maxCleanPasses = 4

// cleanText strips all markup from user supplied plain text. Entities are
// decoded until sanitizing no longer changes the text, so encoded markup
// cannot resurface as live tags. Text that never settles stays escaped.
func cleanText(s string) string {
	for i := 0; i < maxCleanPasses; i++ {
		next := html.UnescapeString(plainText.Sanitize(s))
		if next == s {
			return strings.TrimSpace(s)
		}
		s = next
	}
	return strings.TrimSpace(plainText.Sanitize(s))
}

func cleanOptional(s *string) *string {
	if s == nil {
		return nil
	}
	cleaned := cleanText(*s)
	if cleaned == "" {
		return nil
	}
	return &cleaned
}

// cleanRich keeps safe formatting markup in admin-authored content.
func cleanRich(s *string) *string {
	if s == nil {
		return nil
	}
	cleaned := strings.TrimSpace(richText.Sanitize(*s))
	return &cleaned
}

func parseDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func uuidParam(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		return uuid.Nil, errs.NewMissingRequiredFieldError(name)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errs.NewInvalidFieldError(name, "must be a UUID")
	}
	return id, nil
}

type OrderPayload struct {
	ClientName  string  `json:"client_name" validate:"required,max=200"`
	ClientEmail string  `json:"client_email" validate:"required,email,max=320"`
	Phone       *string `json:"phone" validate:"omitempty,max=40"`
	ServiceType string  `json:"service_type" validate:"required,max=100"`
	Budget      *string `json:"budget" validate:"omitempty,max=100"`
	Deadline    *string `json:"deadline" validate:"omitempty,datetime=2006-01-02"`
	Description string  `json:"description" validate:"required,max=5000"`
}

type MessagePayload struct {
	Name    string  `json:"name" validate:"required,max=200"`
	Email   string  `json:"email" validate:"required,email,max=320"`
	Subject *string `json:"subject" validate:"omitempty,max=200"`
	Message string  `json:"message" validate:"required,max=5000"`
}

type ReviewPayload struct {
	ReviewerName  string     `json:"reviewer_name" validate:"required,max=200"`
	ReviewerEmail string     `json:"reviewer_email" validate:"omitempty,email,max=320"`
	Rating        int        `json:"rating" validate:"required,min=1,max=5"`
	ReviewText    string     `json:"review_text" validate:"required,max=2000"`
	ProjectID     *uuid.UUID `json:"project_id"`
	OrderID       *uuid.UUID `json:"order_id"`
}

type SectionPayload struct {
	SectionType string                 `json:"section_type" validate:"required,max=50"`
	Title       *string                `json:"title" validate:"omitempty,max=300"`
	Subtitle    *string                `json:"subtitle" validate:"omitempty,max=500"`
	Content     *string                `json:"content" validate:"omitempty,max=20000"`
	ImageURL    *string                `json:"image_url" validate:"omitempty,url"`
	IsActive    *bool                  `json:"is_active"`
	SortOrder   int                    `json:"sort_order"`
	Metadata    map[string]interface{} `json:"metadata"`
}

type ProjectPayload struct {
	Title        string   `json:"title" validate:"required,max=200"`
	Description  string   `json:"description" validate:"max=5000"`
	ImageURL     *string  `json:"image_url" validate:"omitempty,url"`
	Technologies []string `json:"technologies" validate:"max=30,dive,required,max=50"`
	GithubURL    *string  `json:"github_url" validate:"omitempty,url"`
	DemoURL      *string  `json:"demo_url" validate:"omitempty,url"`
	Category     string   `json:"category" validate:"max=100"`
	IsFeatured   bool     `json:"is_featured"`
	SortOrder    int      `json:"sort_order"`
}

type ReviewModerationPayload struct {
	IsApproved *bool `json:"is_approved"`
	IsFeatured *bool `json:"is_featured"`
}

type OrderStatusPayload struct {
	Status string `json:"status" validate:"required,oneof=new in_progress completed cancelled"`
}

type MessageReadPayload struct {
	IsRead bool `json:"is_read"`
}
