package httpx

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
)

// IsHTMX reports whether the request was initiated by htmx (Hx-Request: true).
func IsHTMX(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("Hx-Request"), "true")
}

// IsBoosted reports whether the request was initiated by hx-boost (Hx-Boosted: true).
func IsBoosted(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("Hx-Boosted"), "true")
}

// WantsPartial returns true when the handler should return only the main fragment.
// Boosted navigations and history restores still swap the main area, so they
// count; requests targeting a specific fragment are handled by their handler.
func WantsPartial(r *http.Request) bool {
	return IsHTMX(r)
}

// HXTarget returns the id of the target element being updated.
func HXTarget(r *http.Request) string { return r.Header.Get("Hx-Target") }

// SetHXRedirect instructs htmx to redirect the browser to the given URL.
func SetHXRedirect(w http.ResponseWriter, url string) { w.Header().Set("Hx-Redirect", url) }

// SetHXPushURL pushes the given URL into the browser history for the new content.
func SetHXPushURL(w http.ResponseWriter, url string) { w.Header().Set("Hx-Push-Url", url) }

// SetHXRetarget swaps the response into selector instead of the requested target.
func SetHXRetarget(w http.ResponseWriter, selector string) { w.Header().Set("Hx-Retarget", selector) }

// SetHXReswap overrides the swap strategy for this response.
func SetHXReswap(w http.ResponseWriter, swap string) { w.Header().Set("Hx-Reswap", swap) }

// SetHXTrigger triggers a client-side event after swap with optional payload.
// Events already set on the response are kept.
func SetHXTrigger(w http.ResponseWriter, event string, payload any) {
	var value any = true
	if payload != nil {
		value = payload
	}
	m := map[string]any{}
	if existing := w.Header().Get("Hx-Trigger"); existing != "" {
		_ = json.Unmarshal([]byte(existing), &m)
	}
	m[event] = value
	b, err := json.Marshal(m)
	if err != nil {
		w.Header().Set("Hx-Trigger", "{\""+event+"\":true}")
		return
	}
	w.Header().Set("Hx-Trigger", string(b))
}

// pathFromURL reduces an absolute or relative URL to its path and query.
func pathFromURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	if u.Host != "" && !u.IsAbs() {
		return ""
	}
	return u.RequestURI()
}
