// Package workspace holds the workspace-wide preferences edited on the settings page.
package workspace

import (
	"errors"
	"net/mail"
	"slices"
	"strings"
	"time"
)

// DefaultKey identifies the single workspace this dashboard serves.
const DefaultKey = "default"

// General holds the free-form and select settings.
type General struct {
	WorkspaceName    string `json:"workspaceName"    yaml:"workspaceName"`
	WorkspaceTagline string `json:"workspaceTagline" yaml:"workspaceTagline"`
	SupportEmail     string `json:"supportEmail"     yaml:"supportEmail"`
	SupportPhone     string `json:"supportPhone"     yaml:"supportPhone"`
	Timezone         string `json:"timezone"         yaml:"timezone"`
	Locale           string `json:"locale"           yaml:"locale"`
	Currency         string `json:"currency"         yaml:"currency"`
	ReleaseChannel   string `json:"releaseChannel"   yaml:"releaseChannel"`
	InventoryPrefix  string `json:"inventoryPrefix"  yaml:"inventoryPrefix"`
}

// ToggleKey names one boolean preference.
type ToggleKey string

const (
	ToggleAdaptiveTheme     ToggleKey = "adaptiveTheme"
	ToggleCompactSidebar    ToggleKey = "compactSidebar"
	ToggleContextualHelp    ToggleKey = "contextualHelp"
	ToggleKeyboardShortcuts ToggleKey = "keyboardShortcuts"
	ToggleEnforceMFA        ToggleKey = "enforceMfa"
	ToggleSessionTimeout    ToggleKey = "sessionTimeout"
	ToggleDeviceAlerts      ToggleKey = "deviceAlerts"
	ToggleIPAllowlist       ToggleKey = "ipAllowlist"
	ToggleAutoBackups       ToggleKey = "autoBackups"
	ToggleExportSnapshots   ToggleKey = "exportSnapshots"
	ToggleSandboxSafety     ToggleKey = "sandboxSafety"
)

// Toggles maps each ToggleKey to its state.
type Toggles map[ToggleKey]bool

// Settings is the full persisted preference set.
type Settings struct {
	General   General   `json:"general"             yaml:"general"`
	Toggles   Toggles   `json:"toggles"             yaml:"toggles"`
	UpdatedAt time.Time `json:"updatedAt,omitzero"  yaml:"updatedAt,omitempty"`
	UpdatedBy string    `json:"updatedBy,omitempty" yaml:"updatedBy,omitempty"`
}

var (
	TimezoneOptions       = []string{"Asia/Bangkok (GMT+7)", "Asia/Singapore (GMT+8)", "UTC", "America/New_York (GMT-5)"}
	LocaleOptions         = []string{"English (Thailand)", "English (International)", "ไทย (Thai)", "日本語 (Japanese)"}
	CurrencyOptions       = []string{"THB — Thai Baht", "USD — US Dollar", "EUR — Euro", "JPY — Japanese Yen"}
	ReleaseChannelOptions = []string{"Stable", "Preview", "Insider"}
)

// Defaults returns the out-of-the-box workspace settings.
func Defaults() Settings {
	return Settings{
		General: General{
			WorkspaceName:    "Dream Team Inventory",
			WorkspaceTagline: "Operational source of truth for every item",
			SupportEmail:     "operations@dreamteam.com",
			SupportPhone:     "+66 2 123 4567",
			Timezone:         "Asia/Bangkok (GMT+7)",
			Locale:           "English (Thailand)",
			Currency:         "THB — Thai Baht",
			ReleaseChannel:   "Stable",
			InventoryPrefix:  "INV-",
		},
		Toggles: Toggles{
			ToggleAdaptiveTheme:     true,
			ToggleCompactSidebar:    false,
			ToggleContextualHelp:    true,
			ToggleKeyboardShortcuts: true,
			ToggleEnforceMFA:        true,
			ToggleSessionTimeout:    true,
			ToggleDeviceAlerts:      true,
			ToggleIPAllowlist:       false,
			ToggleAutoBackups:       true,
			ToggleExportSnapshots:   false,
			ToggleSandboxSafety:     true,
		},
	}
}

// ToggleOption describes one toggle for display.
type ToggleOption struct {
	Key         ToggleKey
	Title       string
	Description string
}

// ToggleGroup is a titled set of toggles.
type ToggleGroup struct {
	Title   string
	Options []ToggleOption
}

// ToggleGroups lists every toggle in display order.
var ToggleGroups = []ToggleGroup{
	{
		Title: "Interface",
		Options: []ToggleOption{
			{ToggleAdaptiveTheme, "Adaptive theming", "Match interface colours with the user's device preference."},
			{ToggleCompactSidebar, "Compact navigation", "Collapse sidebar labels on smaller breakpoints automatically."},
			{ToggleContextualHelp, "Contextual guides", "Surface quick tips for new workflows and fresh releases."},
			{ToggleKeyboardShortcuts, "Keyboard shortcuts", "Keep power user shortcuts active across the workspace."},
		},
	},
	{
		Title: "Security",
		Options: []ToggleOption{
			{ToggleEnforceMFA, "Enforce multi-factor", "Require an authenticator prompt for every administrator login."},
			{ToggleSessionTimeout, "Session timeout alerts", "Warn admins after 20 minutes of inactivity before signing out."},
			{ToggleDeviceAlerts, "New device alerts", "Notify the security email when accounts sign in from new devices."},
			{ToggleIPAllowlist, "Restrict admin tools", "Limit configuration pages to the organisation IP allowlist."},
		},
	},
	{
		Title: "Automation",
		Options: []ToggleOption{
			{ToggleAutoBackups, "Nightly backups", "Archive critical inventory data to the configured object storage."},
			{ToggleExportSnapshots, "Monthly exports", "Send a CSV snapshot to finance on the first business day."},
			{ToggleSandboxSafety, "Sandbox safeguards", "Block destructive actions from non-production environments."},
		},
	},
}

// AllToggleKeys lists every known toggle key.
func AllToggleKeys() []ToggleKey {
	var keys []ToggleKey
	for _, g := range ToggleGroups {
		for _, o := range g.Options {
			keys = append(keys, o.Key)
		}
	}
	return keys
}

var (
	ErrWorkspaceNameRequired = errors.New("Workspace name is required.")              //nolint:staticcheck // shown to users verbatim
	ErrSupportEmailRequired  = errors.New("Support email is required.")               //nolint:staticcheck // shown to users verbatim
	ErrSupportEmailInvalid   = errors.New("Support email must be a valid address.")   //nolint:staticcheck // shown to users verbatim
	ErrUnknownOption         = errors.New("Please choose one of the listed options.") //nolint:staticcheck // shown to users verbatim
)

// FieldError ties a validation failure to a form field.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string { return e.Err.Error() }
func (e *FieldError) Unwrap() error { return e.Err }

// Normalize trims text fields and fills missing toggles from the defaults.
func (s Settings) Normalize() Settings {
	g := &s.General
	for _, p := range []*string{
		&g.WorkspaceName, &g.WorkspaceTagline, &g.SupportEmail, &g.SupportPhone,
		&g.Timezone, &g.Locale, &g.Currency, &g.ReleaseChannel, &g.InventoryPrefix,
	} {
		*p = strings.TrimSpace(*p)
	}
	defaults := Defaults().Toggles
	merged := make(Toggles, len(defaults))
	for k, v := range defaults {
		merged[k] = v
	}
	for k, v := range s.Toggles {
		if _, known := defaults[k]; known {
			merged[k] = v
		}
	}
	s.Toggles = merged
	return s
}

// Validate checks required fields, the support email and the select options.
func (s Settings) Validate() error {
	g := s.General
	if strings.TrimSpace(g.WorkspaceName) == "" {
		return &FieldError{Field: "workspaceName", Err: ErrWorkspaceNameRequired}
	}
	if strings.TrimSpace(g.SupportEmail) == "" {
		return &FieldError{Field: "supportEmail", Err: ErrSupportEmailRequired}
	}
	if addr, err := mail.ParseAddress(g.SupportEmail); err != nil || addr.Address != strings.TrimSpace(g.SupportEmail) {
		return &FieldError{Field: "supportEmail", Err: ErrSupportEmailInvalid}
	}
	selects := []struct {
		field   string
		value   string
		options []string
	}{
		{"timezone", g.Timezone, TimezoneOptions},
		{"locale", g.Locale, LocaleOptions},
		{"currency", g.Currency, CurrencyOptions},
		{"releaseChannel", g.ReleaseChannel, ReleaseChannelOptions},
	}
	for _, sel := range selects {
		if !slices.Contains(sel.options, sel.value) {
			return &FieldError{Field: sel.field, Err: ErrUnknownOption}
		}
	}
	return nil
}
