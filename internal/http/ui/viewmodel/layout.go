// Package viewmodel holds the shapes templates read for shared page chrome.
package viewmodel

// User represents the authenticated user context exposed to templates.
type User struct {
	Name      string
	Email     string
	Role      string
	RoleLabel string
	Initials  string
}

// NavItem is one sidebar link.
type NavItem struct {
	Label  string
	Href   string
	Page   string
	Icon   string
	Active bool
}

// Layout captures shared chrome metadata (titles, navigation state, auth flags).
type Layout struct {
	Title           string
	PageTitle       string
	CurrentPage     string
	CSRFToken       string
	IsAuthenticated bool
	IsAdmin         bool
	WorkspaceName   string
	User            *User
	Nav             []NavItem
}

// LayoutProvider exposes layout metadata for renderer utilities.
type LayoutProvider interface {
	LayoutData() *Layout
}

// Navigation builds the sidebar for the current page. The directory entry is
// admin only.
func Navigation(currentPage string, isAdmin bool) []NavItem {
	items := []NavItem{
		{Label: "Dashboard", Href: "/", Page: "dashboard", Icon: "grid"},
		{Label: "View Stock", Href: "/inventory", Page: "inventory", Icon: "box"},
		{Label: "Requests", Href: "/requests", Page: "requests", Icon: "clipboard"},
	}
	if isAdmin {
		items = append(items, NavItem{Label: "Users Directory", Href: "/users", Page: "users", Icon: "users"})
	}
	items = append(items, NavItem{Label: "About", Href: "/about", Page: "about", Icon: "info"})
	for i := range items {
		items[i].Active = items[i].Page == currentPage
	}
	return items
}
