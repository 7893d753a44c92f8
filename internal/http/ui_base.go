package httpx

import (
	"bytes"
	"context"
	"html"
	"log/slog"
	"net/http"

	domainauth "github.com/dreamteam/stockme-dashboard/internal/domain/auth"
	"github.com/dreamteam/stockme-dashboard/internal/domain/directory"
	"github.com/dreamteam/stockme-dashboard/internal/domain/inventory"
	"github.com/dreamteam/stockme-dashboard/internal/domain/workspace"
	apperrors "github.com/dreamteam/stockme-dashboard/internal/errors"
	"github.com/dreamteam/stockme-dashboard/internal/http/ui/viewmodel"
	"github.com/dreamteam/stockme-dashboard/internal/service"
)

// AuthService is the credential exchange the auth handlers need.
type AuthService interface {
	SessionResolver
	Login(ctx context.Context, creds domainauth.Credentials) (*domainauth.Session, error)
	Register(ctx context.Context, reg domainauth.Registration) (*service.RegisterResult, error)
	Logout(ctx context.Context, sess *domainauth.Session) error
	IssueToken(sess *domainauth.Session) (string, error)
}

// InventoryService is a minimal interface for the inventory pages.
type InventoryService interface {
	List(ctx context.Context) ([]inventory.Product, error)
	Create(ctx context.Context, sess *domainauth.Session, form inventory.ProductForm) (inventory.Product, error)
	Update(ctx context.Context, sess *domainauth.Session, id string, form inventory.ProductForm) (inventory.Product, error)
	Delete(ctx context.Context, sess *domainauth.Session, id string) error
}

// RequestsService is a minimal interface for the stock request pages.
type RequestsService interface {
	List(ctx context.Context, sess *domainauth.Session) ([]inventory.Request, error)
	Products(ctx context.Context) ([]inventory.Product, error)
	BlankForm() inventory.RequestForm
	EditForm(req inventory.Request) inventory.RequestForm
	Create(ctx context.Context, sess *domainauth.Session, form inventory.RequestForm) (inventory.Request, error)
	Update(ctx context.Context, sess *domainauth.Session, id string, form inventory.RequestForm) (inventory.Request, error)
	Delete(ctx context.Context, sess *domainauth.Session, id string) error
}

// DirectoryService is a minimal interface for the users page.
type DirectoryService interface {
	List(ctx context.Context, sess *domainauth.Session, roleFilter string) (directory.Directory, error)
}

// DashboardService loads the home page.
type DashboardService interface {
	Load(ctx context.Context, sess *domainauth.Session) service.Dashboard
}

// SettingsService is a minimal interface for the settings page.
type SettingsService interface {
	Get(ctx context.Context) (workspace.Settings, error)
	Save(ctx context.Context, sess *domainauth.Session, in workspace.Settings) (workspace.Settings, error)
	Reset(ctx context.Context, sess *domainauth.Session) (workspace.Settings, error)
}

// Compile-time interface assertions to ensure concrete services satisfy their UI interfaces.
var (
	_ AuthService      = (*service.AuthService)(nil)
	_ InventoryService = (*service.InventoryService)(nil)
	_ RequestsService  = (*service.RequestService)(nil)
	_ DirectoryService = (*service.DirectoryService)(nil)
	_ DashboardService = (*service.DashboardService)(nil)
	_ SettingsService  = (*service.SettingsService)(nil)
)

// UIHandlers serves browser-facing routes.
type UIHandlers struct {
	T            *TemplateRenderer
	InventorySvc InventoryService
	RequestsSvc  RequestsService
	DirectorySvc DirectoryService
	DashboardSvc DashboardService
	SettingsSvc  SettingsService
	IsDev        bool // Development mode flag for enhanced error reporting
	Logger       *slog.Logger
}

// logger returns the configured logger or falls back to slog.Default().
func (h *UIHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// pageData starts the template data for a page, including the workspace name
// shown in the sidebar.
func (h *UIHandlers) pageData(r *http.Request, meta PageMeta) *TemplateDataBuilder {
	b := NewTemplateData(r, meta)
	name := workspace.Defaults().General.WorkspaceName
	if h.SettingsSvc != nil {
		if s, err := h.SettingsSvc.Get(r.Context()); err == nil && s.General.WorkspaceName != "" {
			name = s.General.WorkspaceName
		}
	}
	return b.With("WorkspaceName", name)
}

// renderPage renders a page with proper HTMX partial support.
func (h *UIHandlers) renderPage(w http.ResponseWriter, r *http.Request, data map[string]any) {
	if !WantsPartial(r) {
		if err := h.T.RenderFull(w, r, data); err != nil {
			h.logAndRenderTemplateError(w, r, err, "full page render")
		}
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	SetHXTrigger(w, "nav:activate", map[string]string{"path": r.URL.Path})

	layout := layoutFromMap(data)
	// <title> lets htmx update document.title on partial swaps.
	if _, err := w.Write([]byte(`<title>` + html.EscapeString(layout.Title) + `</title>`)); err != nil {
		h.logger().Error("failed to write partial document title", "error", err)
		return
	}
	oob := `<h1 id="header-title" class="header-title" hx-swap-oob="outerHTML">` + html.EscapeString(layout.PageTitle) + `</h1>`
	if _, err := w.Write([]byte(oob)); err != nil {
		h.logger().Error("failed to write partial header title", "error", err)
		return
	}
	if err := h.T.Execute(w, ContentTemplateFor(layout.CurrentPage), data); err != nil {
		h.logAndRenderTemplateError(w, r, err, "partial content render")
	}
}

// renderFragment renders a single named template, used for htmx row swaps and
// inline form re-renders.
func (h *UIHandlers) renderFragment(w http.ResponseWriter, r *http.Request, name string, data any) {
	if err := h.T.Render(w, name, data); err != nil {
		h.logAndRenderTemplateError(w, r, err, "fragment "+name)
	}
}

// fragmentRenderer adapts renderFragment to ErrorOpts.Renderer.
func (h *UIHandlers) fragmentRenderer(name string) ErrorRenderer {
	return func(w http.ResponseWriter, r *http.Request, data map[string]any) {
		h.renderFragment(w, r, name, data)
	}
}

// renderNotice renders the access-restricted panel in place of a form.
func (h *UIHandlers) renderNotice(w http.ResponseWriter, r *http.Request, n service.Notice) {
	data := NewTemplateData(r, PageMeta{}).WithNotice(n).Build()
	h.renderFragment(w, r, "restricted-notice", data)
}

// renderMutationFailure reports a failed row action (delete) without a form to
// re-render: the notice panel for 401/403, a toast otherwise. Plain form posts
// get the error page.
func (h *UIHandlers) renderMutationFailure(w http.ResponseWriter, r *http.Request, err error, fallback, back string) {
	msg := apperrors.UserMessage(err, fallback)
	if !IsHTMX(r) {
		h.renderErrorPage(w, r, StatusForError(err), msg, back)
		return
	}
	HTMX(w).Toast(msg, ToastError)
	if notice, ok := noticeForError(err); ok {
		HTMX(w).Retarget("#page-notice", "innerHTML")
		h.renderNotice(w, r, notice)
		return
	}
	HTMX(w).Retarget("#page-notice", "none")
	w.WriteHeader(http.StatusOK)
}

// renderErrorPage renders the standalone error page with a link back.
func (h *UIHandlers) renderErrorPage(w http.ResponseWriter, r *http.Request, status int, msg, back string) {
	data := NewTemplateData(r, PageMeta{Title: "Something went wrong · StockMe", PageTitle: "Something went wrong"}).
		WithError(msg, back).
		With("StatusCode", status).
		Build()
	var buf bytes.Buffer
	if err := h.T.Execute(&buf, "error-layout", data); err != nil {
		h.logAndRenderTemplateError(w, r, err, "error page")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger().Error("failed to write error page", "error", err)
	}
}

func layoutFromMap(data map[string]any) viewmodel.Layout {
	layout := viewmodel.Layout{}
	if v, ok := data["Title"].(string); ok {
		layout.Title = v
	}
	if v, ok := data["PageTitle"].(string); ok {
		layout.PageTitle = v
	}
	if v, ok := data["CurrentPage"].(string); ok {
		layout.CurrentPage = v
	}
	return layout
}

// logAndRenderTemplateError logs template errors and renders them in dev mode.
func (h *UIHandlers) logAndRenderTemplateError(w http.ResponseWriter, r *http.Request, err error, context string) {
	h.logger().Error("template rendering failed",
		"error", err,
		"context", context,
		"path", r.URL.Path,
		"method", r.Method,
	)

	if h.IsDev {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		body := `<div class="dev-error"><h2>Template Rendering Error</h2>` +
			`<p><strong>Context:</strong> ` + html.EscapeString(context) + `</p>` +
			`<p><strong>Path:</strong> ` + html.EscapeString(r.URL.Path) + `</p>` +
			`<pre>` + html.EscapeString(err.Error()) + `</pre></div>`
		if _, writeErr := w.Write([]byte(body)); writeErr != nil {
			h.logger().Error("failed to write template error response", "error", writeErr)
		}
		return
	}

	http.Error(w, "internal server error", http.StatusInternalServerError)
}
