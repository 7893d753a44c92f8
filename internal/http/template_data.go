package httpx

import (
	"net/http"

	domainauth "github.com/dreamteam/stockme-dashboard/internal/domain/auth"
	"github.com/dreamteam/stockme-dashboard/internal/http/templates/core"
	"github.com/dreamteam/stockme-dashboard/internal/http/ui/viewmodel"
	"github.com/dreamteam/stockme-dashboard/internal/service"
)

// PageMeta contains metadata for page rendering.
type PageMeta struct {
	Title       string
	PageTitle   string
	CurrentPage string
}

// buildLayout constructs shared layout metadata from the request/session context.
func buildLayout(r *http.Request, meta PageMeta) viewmodel.Layout {
	layout := viewmodel.Layout{
		Title:       meta.Title,
		PageTitle:   meta.PageTitle,
		CurrentPage: meta.CurrentPage,
		CSRFToken:   GetCSRFToken(r),
	}

	decision := DecisionFromContext(r.Context())
	if sess := GetSessionFromContext(r.Context()); sess != nil && decision.IsAuthenticated {
		name := sess.DisplayName
		if name == "" {
			name = sess.Email
		}
		layout.User = &viewmodel.User{
			Name:      name,
			Email:     sess.Email,
			Role:      string(decision.Role),
			RoleLabel: decision.Role.Label(),
			Initials:  core.Initials(name),
		}
		layout.IsAuthenticated = true
		layout.IsAdmin = decision.IsAdmin()
	}
	layout.Nav = viewmodel.Navigation(meta.CurrentPage, layout.IsAdmin)
	return layout
}

// basePageData constructs the common page data map with user context.
func basePageData(r *http.Request, meta PageMeta) map[string]any {
	layout := buildLayout(r, meta)
	decision := DecisionFromContext(r.Context())
	data := map[string]any{
		"Title":           layout.Title,
		"PageTitle":       layout.PageTitle,
		"CurrentPage":     layout.CurrentPage,
		"IsAuthenticated": layout.IsAuthenticated,
		"IsAdmin":         layout.IsAdmin,
		"Nav":             layout.Nav,
		"Decision":        decision,
		"Can":             service.CapabilitiesFor(decision),
		"Errors":          map[string]string{},
	}
	if layout.CSRFToken != "" {
		data["CSRFToken"] = layout.CSRFToken
	}
	if layout.User != nil {
		data["User"] = layout.User
	}
	return data
}

// TemplateDataBuilder provides a fluent API for building template data maps.
type TemplateDataBuilder struct {
	data map[string]any
}

// NewTemplateData creates a new TemplateDataBuilder initialized with basePageData.
func NewTemplateData(r *http.Request, meta PageMeta) *TemplateDataBuilder {
	return &TemplateDataBuilder{data: basePageData(r, meta)}
}

// WithError sets a general error message. Retry, when set, is the URL the
// inline Retry control re-fetches.
func (b *TemplateDataBuilder) WithError(msg, retry string) *TemplateDataBuilder {
	if msg == "" {
		return b
	}
	b.data["Error"] = true
	b.data["ErrorMessage"] = msg
	if retry != "" {
		b.data["RetryURL"] = retry
	}
	return b
}

// WithFieldErrors adds field-level validation errors.
func (b *TemplateDataBuilder) WithFieldErrors(errs map[string]string) *TemplateDataBuilder {
	if len(errs) > 0 {
		b.data["Errors"] = errs
	}
	return b
}

// WithNotice shows a restriction notice panel.
func (b *TemplateDataBuilder) WithNotice(n service.Notice) *TemplateDataBuilder {
	b.data["Notice"] = n
	return b
}

// With adds a custom field to the template data.
func (b *TemplateDataBuilder) With(key string, value any) *TemplateDataBuilder {
	b.data[key] = value
	return b
}

// Build returns the final template data map.
func (b *TemplateDataBuilder) Build() map[string]any {
	return b.data
}

// sessionUserLabel is the name shown for the signed-in user in logs and flashes.
func sessionUserLabel(sess *domainauth.Session) string {
	if sess == nil {
		return ""
	}
	if sess.DisplayName != "" {
		return sess.DisplayName
	}
	return sess.Email
}
