package httpx

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	domainauth "github.com/dreamteam/stockme-dashboard/internal/domain/auth"
	apperrors "github.com/dreamteam/stockme-dashboard/internal/errors"
)

// AuthHandlers serves sign-in, registration, sign-out and the session probe.
type AuthHandlers struct {
	Svc     AuthService
	Cookies SessionCookies
	T       *TemplateRenderer
	Logger  *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

//nolint:gochecknoglobals // static page metadata
var (
	loginMeta    = PageMeta{Title: "Sign in · StockMe", PageTitle: "Sign in", CurrentPage: PageLogin}
	registerMeta = PageMeta{Title: "Create account · StockMe", PageTitle: "Create account", CurrentPage: PageRegister}
)

// LoginPage renders the sign-in form.
// GET /login?callbackUrl=<path>.
func (h *AuthHandlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	dest := domainauth.ParseDestination(r.URL.Query().Get("callbackUrl"))
	if _, ok := GetUserSessionFromContext(r.Context()); ok {
		http.Redirect(w, r, dest.String(), http.StatusSeeOther)
		return
	}
	data := NewTemplateData(r, loginMeta).
		With("CallbackURL", callbackValue(dest)).
		With("Email", "").
		Build()
	h.render(w, r, "auth-layout", data)
}

// Login exchanges credentials for a session cookie.
// POST /login.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_form", Err: err})
		return
	}
	creds := domainauth.Credentials{
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Password: r.PostFormValue("password"),
	}
	dest := domainauth.ParseDestination(r.PostFormValue("callbackUrl"))

	sess, err := h.Svc.Login(r.Context(), creds)
	if err != nil {
		h.logger().InfoContext(r.Context(), "sign in failed", "code", apperrors.GetCode(err))
		RenderError(ErrorOpts{
			W:        w,
			R:        r,
			Err:      err,
			Fallback: "Unable to sign in with those credentials.",
			Renderer: h.formRenderer("login-form"),
			PageMeta: loginMeta,
			Data:     map[string]any{"Email": creds.Email, "CallbackURL": callbackValue(dest)},
		})
		return
	}

	if !h.startSession(w, r, sess) {
		return
	}
	h.redirect(w, r, dest.String())
}

// RegisterPage renders the registration form.
// GET /register.
func (h *AuthHandlers) RegisterPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := GetUserSessionFromContext(r.Context()); ok {
		http.Redirect(w, r, domainauth.RootDestination, http.StatusSeeOther)
		return
	}
	data := NewTemplateData(r, registerMeta).
		With("Form", domainauth.Registration{}).
		With("Roles", domainauth.Roles).
		Build()
	h.render(w, r, "auth-layout", data)
}

// Register creates an account and signs the user in. When the account is
// created but sign-in fails, both outcomes are shown.
// POST /register.
func (h *AuthHandlers) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_form", Err: err})
		return
	}
	reg := domainauth.Registration{
		Name:     r.PostFormValue("name"),
		Tel:      r.PostFormValue("tel"),
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
		Role:     domainauth.Role(strings.TrimSpace(r.PostFormValue("role"))),
	}
	form := reg
	form.Password = ""

	result, err := h.Svc.Register(r.Context(), reg)
	if err != nil {
		RenderError(ErrorOpts{
			W:        w,
			R:        r,
			Err:      err,
			Fallback: "Unable to register. Please verify your details and try again.",
			Renderer: h.formRenderer("register-form"),
			PageMeta: registerMeta,
			Data:     map[string]any{"Form": form, "Roles": domainauth.Roles},
		})
		return
	}

	if result.Session != nil {
		if !h.startSession(w, r, result.Session) {
			return
		}
		h.redirect(w, r, domainauth.RootDestination)
		return
	}

	b := NewTemplateData(r, registerMeta).
		With("Form", form).
		With("Roles", domainauth.Roles).
		With("Success", result.Message)
	if result.SignInErr != nil {
		b.With("SignInError", apperrors.UserMessage(result.SignInErr, "Unable to sign in with those credentials."))
	}
	h.formRenderer("register-form")(w, r, b.Build())
}

// Logout drops the session server-side and clears the cookie.
// POST /logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	sess := GetSessionFromContext(r.Context())
	if err := h.Svc.Logout(r.Context(), sess); err != nil {
		h.logger().WarnContext(r.Context(), "logout failed", "error", err)
	}
	h.Cookies.Clear(w, r)
	h.redirect(w, r, LoginPath)
}

// sessionView is the JSON projection of a session. It never carries the bearer token.
type sessionView struct {
	Authenticated bool       `json:"authenticated"`
	User          *userView  `json:"user,omitempty"`
	ExpiresAt     *time.Time `json:"expiresAt,omitempty"`
}

type userView struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role"`
}

// Session reports who is signed in.
// GET /api/session.
func (h *AuthHandlers) Session(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")
	sess := GetSessionFromContext(r.Context())
	if sess == nil {
		WriteJSON(w, http.StatusOK, sessionView{})
		return
	}
	expires := sess.ExpiresAt.UTC()
	WriteJSON(w, http.StatusOK, sessionView{
		Authenticated: true,
		User: &userView{
			ID:    sess.UserID,
			Name:  sess.DisplayName,
			Email: sess.Email,
			Role:  string(domainauth.NormalizeRole(string(sess.Role))),
		},
		ExpiresAt: &expires,
	})
}

// startSession issues the cookie for sess. It writes an error response and
// returns false when the token cannot be signed.
func (h *AuthHandlers) startSession(w http.ResponseWriter, r *http.Request, sess *domainauth.Session) bool {
	token, err := h.Svc.IssueToken(sess)
	if err != nil {
		h.logger().ErrorContext(r.Context(), "failed to issue session token", "error", err)
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "session_failed", Err: err})
		return false
	}
	h.Cookies.Set(w, r, sess, token)
	return true
}

func (h *AuthHandlers) redirect(w http.ResponseWriter, r *http.Request, target string) {
	if IsHTMX(r) {
		HTMX(w).Redirect(target)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// formRenderer renders only the form for htmx posts and the whole auth page otherwise.
func (h *AuthHandlers) formRenderer(fragment string) ErrorRenderer {
	return func(w http.ResponseWriter, r *http.Request, data map[string]any) {
		name := "auth-layout"
		if IsHTMX(r) {
			name = fragment
		}
		h.render(w, r, name, data)
	}
}

func (h *AuthHandlers) render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) {
	if err := h.T.Render(w, name, data); err != nil {
		h.logger().ErrorContext(r.Context(), "template rendering failed", "error", err, "template", name)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// callbackValue is the hidden form value; empty for the root destination.
func callbackValue(d domainauth.Destination) string {
	if d.IsRoot() {
		return ""
	}
	return d.String()
}
