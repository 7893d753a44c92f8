package httpx

import (
	"net/http"

	"github.com/dreamteam/stockme-dashboard/internal/domain/workspace"
	apperrors "github.com/dreamteam/stockme-dashboard/internal/errors"
	"github.com/dreamteam/stockme-dashboard/internal/service"
)

//nolint:gochecknoglobals // static page metadata
var settingsMeta = PageMeta{Title: "Settings · StockMe", PageTitle: "Workspace Settings", CurrentPage: PageSettings}

// settingsOptions are the select lists shown on the settings form.
type settingsOptions struct {
	Timezones       []string
	Locales         []string
	Currencies      []string
	ReleaseChannels []string
}

func currentSettingsOptions() settingsOptions {
	return settingsOptions{
		Timezones:       workspace.TimezoneOptions,
		Locales:         workspace.LocaleOptions,
		Currencies:      workspace.CurrencyOptions,
		ReleaseChannels: workspace.ReleaseChannelOptions,
	}
}

func (h *UIHandlers) settingsData(r *http.Request, s workspace.Settings) *TemplateDataBuilder {
	b := h.pageData(r, settingsMeta).
		With("Settings", s).
		With("ToggleGroups", workspace.ToggleGroups).
		With("Options", currentSettingsOptions())
	if !service.CanEditSettings(DecisionFromContext(r.Context())) {
		b.WithNotice(service.SettingsRestricted)
	}
	return b
}

// SettingsPage renders the workspace settings. Anyone signed in can read them.
// GET /settings.
func (h *UIHandlers) SettingsPage(w http.ResponseWriter, r *http.Request) {
	if requireSession(w, r) == nil {
		return
	}
	s, err := h.SettingsSvc.Get(r.Context())
	if err != nil {
		h.logger().WarnContext(r.Context(), "settings load failed", "error", err)
		b := h.settingsData(r, workspace.Defaults()).
			WithError(apperrors.UserMessage(err, "Unable to load workspace settings."), "/settings")
		h.renderPage(w, r, b.Build())
		return
	}
	h.renderPage(w, r, h.settingsData(r, s).Build())
}

// SettingsSave stores the submitted settings. Admin only.
// POST /settings.
func (h *UIHandlers) SettingsSave(w http.ResponseWriter, r *http.Request) {
	sess := requireSession(w, r)
	if sess == nil {
		return
	}
	if err := r.ParseForm(); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_form", Err: err})
		return
	}
	in := settingsFromForm(r)
	saved, err := h.SettingsSvc.Save(r.Context(), sess, in)
	if err != nil {
		RenderError(ErrorOpts{
			W:         w,
			R:         r,
			Err:       err,
			Fallback:  "Unable to save workspace settings. Please try again.",
			Renderer:  h.settingsRenderer(),
			Builder:   h.settingsData(r, in.Normalize()),
			ShowToast: true,
		})
		return
	}
	h.finishSettings(w, r, saved, "Settings saved.")
}

// SettingsReset restores the defaults. Admin only.
// POST /settings/reset.
func (h *UIHandlers) SettingsReset(w http.ResponseWriter, r *http.Request) {
	sess := requireSession(w, r)
	if sess == nil {
		return
	}
	s, err := h.SettingsSvc.Reset(r.Context(), sess)
	if err != nil {
		current, getErr := h.SettingsSvc.Get(r.Context())
		if getErr != nil {
			current = workspace.Defaults()
		}
		RenderError(ErrorOpts{
			W:         w,
			R:         r,
			Err:       err,
			Fallback:  "Unable to reset workspace settings. Please try again.",
			Renderer:  h.settingsRenderer(),
			Builder:   h.settingsData(r, current),
			ShowToast: true,
		})
		return
	}
	h.finishSettings(w, r, s, "Settings restored to defaults.")
}

func (h *UIHandlers) finishSettings(w http.ResponseWriter, r *http.Request, s workspace.Settings, msg string) {
	if !IsHTMX(r) {
		http.Redirect(w, r, "/settings", http.StatusSeeOther)
		return
	}
	HTMX(w).Toast(msg, ToastSuccess)
	h.renderFragment(w, r, "settings-form", h.settingsData(r, s).With("Saved", true).Build())
}

func (h *UIHandlers) settingsRenderer() ErrorRenderer {
	return func(w http.ResponseWriter, r *http.Request, data map[string]any) {
		if IsHTMX(r) {
			h.renderFragment(w, r, "settings-form", data)
			return
		}
		h.renderPage(w, r, data)
	}
}

// settingsFromForm reads the general fields and one checkbox per toggle. An
// unchecked box is absent from the form and reads as off.
func settingsFromForm(r *http.Request) workspace.Settings {
	s := workspace.Settings{
		General: workspace.General{
			WorkspaceName:    r.PostFormValue("workspaceName"),
			WorkspaceTagline: r.PostFormValue("workspaceTagline"),
			SupportEmail:     r.PostFormValue("supportEmail"),
			SupportPhone:     r.PostFormValue("supportPhone"),
			Timezone:         r.PostFormValue("timezone"),
			Locale:           r.PostFormValue("locale"),
			Currency:         r.PostFormValue("currency"),
			ReleaseChannel:   r.PostFormValue("releaseChannel"),
			InventoryPrefix:  r.PostFormValue("inventoryPrefix"),
		},
		Toggles: workspace.Toggles{},
	}
	for _, key := range workspace.AllToggleKeys() {
		s.Toggles[key] = r.PostFormValue("toggle."+string(key)) != ""
	}
	return s
}
