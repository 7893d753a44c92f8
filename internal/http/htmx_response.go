package httpx

import (
	"net/http"
	"strings"
)

// HTMXResponse provides a fluent API for building HTMX responses.
type HTMXResponse struct {
	w http.ResponseWriter
}

// HTMX creates a new HTMXResponse for fluent response building.
func HTMX(w http.ResponseWriter) *HTMXResponse {
	return &HTMXResponse{w: w}
}

// Redirect sets HX-Redirect and writes 204. Return right after calling it.
func (h *HTMXResponse) Redirect(url string) {
	SetHXRedirect(h.w, url)
	h.w.WriteHeader(http.StatusNoContent)
}

// Trigger queues a client-side event. Chainable.
func (h *HTMXResponse) Trigger(event string, payload any) *HTMXResponse {
	SetHXTrigger(h.w, event, payload)
	return h
}

// Toast queues the page's toast event. Empty messages are ignored.
func (h *HTMXResponse) Toast(message, kind string) *HTMXResponse {
	if strings.TrimSpace(message) == "" {
		return h
	}
	return h.Trigger("showToast", map[string]any{"message": message, "type": kind})
}

// PushURL pushes the given URL into the browser history. Chainable.
func (h *HTMXResponse) PushURL(url string) *HTMXResponse {
	SetHXPushURL(h.w, url)
	return h
}

// Retarget redirects the swap to selector with the given strategy. Chainable.
func (h *HTMXResponse) Retarget(selector, swap string) *HTMXResponse {
	SetHXRetarget(h.w, selector)
	if swap != "" {
		SetHXReswap(h.w, swap)
	}
	return h
}
