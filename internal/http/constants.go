package httpx

// CurrentPage constants identify pages in templates and navigation.
const (
	PageLogin     = "login"
	PageRegister  = "register"
	PageDashboard = "dashboard"
	PageInventory = "inventory"
	PageRequests  = "requests"
	PageUsers     = "users"
	PageSettings  = "settings"
	PageAbout     = "about"
	PageNotFound  = "not-found"
)

// Template paths used for loading templates in tests and production.
const (
	TemplatePathFromRoot = "frontend/templates"       // From project root
	TemplatePathFromTest = "../../frontend/templates" // From internal/http test files
)

// FormMode represents the mode of a form (create or edit).
type FormMode string

const (
	// FormModeEdit indicates the form is in edit mode.
	FormModeEdit FormMode = "edit"
	// FormModeCreate indicates the form is in create mode.
	FormModeCreate FormMode = "create"
)

// Toast kinds understood by the page script.
const (
	ToastSuccess = "success"
	ToastError   = "error"
)

//nolint:gochecknoglobals // static read-only lookup for templates
var contentTemplates = map[string]string{
	PageDashboard: "dashboard-content",
	PageInventory: "inventory-content",
	PageRequests:  "requests-content",
	PageUsers:     "users-content",
	PageSettings:  "settings-content",
	PageAbout:     "about-content",
	PageNotFound:  "not-found-content",
}

// ContentTemplateFor returns the content template for the given CurrentPage.
// Falls back to dashboard-content for unknown pages.
func ContentTemplateFor(currentPage string) string {
	if name, ok := contentTemplates[currentPage]; ok {
		return name
	}
	return "dashboard-content"
}
