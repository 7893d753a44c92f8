package httpx

import (
	"net/http"
)

//nolint:gochecknoglobals // static page metadata
var (
	aboutMeta    = PageMeta{Title: "About · StockMe", PageTitle: "About StockMe", CurrentPage: PageAbout}
	notFoundMeta = PageMeta{Title: "Page not found · StockMe", PageTitle: "Page not found", CurrentPage: PageNotFound}
)

// About renders the static product page.
// GET /about.
func (h *UIHandlers) About(w http.ResponseWriter, r *http.Request) {
	if requireSession(w, r) == nil {
		return
	}
	h.renderPage(w, r, h.pageData(r, aboutMeta).Build())
}

// NotFound renders the 404 page inside the layout.
func (h *UIHandlers) NotFound(w http.ResponseWriter, r *http.Request) {
	data := h.pageData(r, notFoundMeta).With("Path", r.URL.Path).Build()
	if IsHTMX(r) {
		// htmx ignores non-2xx bodies by default.
		h.renderPage(w, r, data)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	if err := h.T.RenderFull(w, r, data); err != nil {
		h.logger().Error("failed to render not found page", "error", err)
	}
}
