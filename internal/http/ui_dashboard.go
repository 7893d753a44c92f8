package httpx

import (
	"net/http"

	"github.com/dreamteam/stockme-dashboard/internal/domain/inventory"
	apperrors "github.com/dreamteam/stockme-dashboard/internal/errors"
)

//nolint:gochecknoglobals // static page metadata
var dashboardMeta = PageMeta{Title: "Dashboard · StockMe", PageTitle: "Dashboard", CurrentPage: PageDashboard}

const dashboardRecentLimit = 5

// Dashboard renders the home page. Each section shows its own error.
// GET /.
func (h *UIHandlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	sess := requireSession(w, r)
	if sess == nil {
		return
	}
	d := h.DashboardSvc.Load(r.Context(), sess)

	b := h.pageData(r, dashboardMeta).
		With("Greeting", sessionUserLabel(sess)).
		With("Stats", d.Stats).
		With("Donut", d.Donut).
		With("Users", d.Users)

	if d.Products.Failed() {
		b.With("ProductsError", apperrors.UserMessage(d.Products.Err, "Failed to load inventory records."))
	}
	if d.Requests.Failed() {
		b.With("RequestsError", apperrors.UserMessage(d.Requests.Err, "Unable to load requests from the API."))
	}
	if d.Directory.Failed() {
		b.With("DirectoryError", apperrors.UserMessage(d.Directory.Err, "Unable to load the user directory."))
	}
	if d.Products.Failed() || d.Requests.Failed() || d.Directory.Failed() {
		b.With("RetryURL", "/")
	}

	idx := inventory.IndexProducts(d.Products.Data)
	b.With("RecentProducts", firstN(d.Products.Data, dashboardRecentLimit)).
		With("RecentRequests", requestRows(firstN(d.Requests.Data, dashboardRecentLimit), idx))

	h.renderPage(w, r, b.Build())
}

func firstN[T any](items []T, n int) []T {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
