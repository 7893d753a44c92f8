package service

import (
	domainauth "github.com/dreamteam/stockme-dashboard/internal/domain/auth"
	apperrors "github.com/dreamteam/stockme-dashboard/internal/errors"
)

// Notice is an access-restricted panel shown in place of a forbidden action.
type Notice struct {
	Title string
	Body  string
}

var (
	InventoryRestricted = Notice{
		Title: "Access Restricted",
		Body:  "Only administrators can add or edit inventory items. Ask an admin to update the stock levels for you.",
	}
	RequestsRestricted = Notice{
		Title: "Admin Access Only",
		Body:  "Only staff members can create stock requests. Please switch to a staff account to submit a new request.",
	}
	DirectoryRestricted = Notice{
		Title: "Admin access required",
		Body:  "Only administrators can view the full user directory and activity summary.",
	}
	SettingsRestricted = Notice{
		Title: "Access Restricted",
		Body:  "Only administrators can change workspace settings.",
	}
)

// CanManageInventory reports whether products may be created, edited or deleted.
func CanManageInventory(d domainauth.Decision) bool { return d.IsAdmin() }

// CanCreateRequest is staff only; admins review requests rather than raise them.
func CanCreateRequest(d domainauth.Decision) bool {
	return d.IsAuthenticated && d.Role == domainauth.RoleStaff
}

// CanEditRequest reports whether an existing request may be edited.
func CanEditRequest(d domainauth.Decision) bool { return d.IsAuthenticated }

// CanDeleteRequest reports whether an existing request may be deleted.
func CanDeleteRequest(d domainauth.Decision) bool { return d.IsAuthenticated }

// CanViewDirectory reports whether the user directory may be loaded.
func CanViewDirectory(d domainauth.Decision) bool { return d.IsAdmin() }

// CanEditSettings reports whether workspace settings may be saved.
func CanEditSettings(d domainauth.Decision) bool { return d.IsAdmin() }

// Capabilities is the per-request affordance set handed to templates.
type Capabilities struct {
	ManageInventory bool
	CreateRequest   bool
	EditRequest     bool
	DeleteRequest   bool
	ViewDirectory   bool
	EditSettings    bool
}

// CapabilitiesFor derives every affordance from one decision.
func CapabilitiesFor(d domainauth.Decision) Capabilities {
	return Capabilities{
		ManageInventory: CanManageInventory(d),
		CreateRequest:   CanCreateRequest(d),
		EditRequest:     CanEditRequest(d),
		DeleteRequest:   CanDeleteRequest(d),
		ViewDirectory:   CanViewDirectory(d),
		EditSettings:    CanEditSettings(d),
	}
}

func forbidden(n Notice) error {
	return apperrors.Forbidden(n.Body)
}

// bearer returns the session's token or an unauthenticated error with msg.
func bearer(sess *domainauth.Session, msg string) (string, error) {
	if sess == nil || sess.AccessToken == "" {
		return "", apperrors.Unauthenticated(msg)
	}
	return sess.AccessToken, nil
}
