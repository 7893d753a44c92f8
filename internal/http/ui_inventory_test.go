package httpx

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/dreamteam/stockme-dashboard/internal/domain/auth"
	"github.com/dreamteam/stockme-dashboard/internal/domain/inventory"
	apperrors "github.com/dreamteam/stockme-dashboard/internal/errors"
	"github.com/dreamteam/stockme-dashboard/internal/service"
)

func newUI(t *testing.T) *UIHandlers {
	t.Helper()
	return &UIHandlers{
		T:            RequireTemplateRenderer(t),
		InventorySvc: &fakeInventory{},
		RequestsSvc:  &fakeRequests{},
		DirectorySvc: &fakeDirectory{},
		DashboardSvc: &fakeDashboard{},
		SettingsSvc:  &fakeSettings{},
	}
}

func sampleProducts() []inventory.Product {
	return []inventory.Product{
		{ID: "p1", Name: "Cordless Drill", SKU: "TL-001", Category: "Tools", StockQuantity: 12, Unit: "pcs", Price: 2490},
		{ID: "p2", Name: "Safety Gloves", SKU: "PP-010", Category: "Safety", StockQuantity: 300, Unit: "pairs", Price: 45},
	}
}

func adminRequest(method, target string) *http.Request {
	return WithTestSession(httptest.NewRequest(method, target, nil), TestSession(domainauth.RoleAdmin))
}

func staffRequest(method, target string) *http.Request {
	return WithTestSession(httptest.NewRequest(method, target, nil), TestSession(domainauth.RoleStaff))
}

func TestInventory_FullPage(t *testing.T) {
	ui := newUI(t)
	ui.InventorySvc = &fakeInventory{products: sampleProducts()}

	w := httptest.NewRecorder()
	ui.Inventory(w, adminRequest(http.MethodGet, "/inventory"))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, ContainsAll(body, []string{"<html", "Cordless Drill", "Safety Gloves", `id="product-p1"`, "Edit Item", "Add item"}))
	assert.NotContains(t, body, "Only administrators can add or edit inventory items.")
}

func TestInventory_StaffSeesNoticeAndNoActions(t *testing.T) {
	ui := newUI(t)
	ui.InventorySvc = &fakeInventory{products: sampleProducts()}

	w := httptest.NewRecorder()
	ui.Inventory(w, staffRequest(http.MethodGet, "/inventory"))

	body := w.Body.String()
	assert.Contains(t, body, service.InventoryRestricted.Title)
	assert.Contains(t, body, "Cordless Drill")
	assert.NotContains(t, body, "Edit Item")
}

func TestInventory_FilteredTableFragment(t *testing.T) {
	ui := newUI(t)
	ui.InventorySvc = &fakeInventory{products: sampleProducts()}

	req := AsHTMX(adminRequest(http.MethodGet, "/inventory?category=Tools&search=drill"), "inventory-table")
	w := httptest.NewRecorder()
	ui.Inventory(w, req)

	body := w.Body.String()
	assert.NotContains(t, body, "<html")
	assert.NotContains(t, body, "header-title")
	assert.Contains(t, body, "Cordless Drill")
	assert.NotContains(t, body, "Safety Gloves")
}

func TestInventory_EmptyStates(t *testing.T) {
	ui := newUI(t)

	w := httptest.NewRecorder()
	ui.Inventory(w, AsHTMX(adminRequest(http.MethodGet, "/inventory"), "inventory-table"))
	assert.Contains(t, w.Body.String(), "No inventory items available. Try adding a new record.")

	ui.InventorySvc = &fakeInventory{products: sampleProducts()}
	w = httptest.NewRecorder()
	ui.Inventory(w, AsHTMX(adminRequest(http.MethodGet, "/inventory?search=zzz"), "inventory-table"))
	assert.Contains(t, w.Body.String(), "No items match your current filters.")
}

func TestInventory_LoadFailureShowsRetry(t *testing.T) {
	ui := newUI(t)
	ui.InventorySvc = &fakeInventory{listErr: apperrors.Backend("Inventory service unavailable.")}

	w := httptest.NewRecorder()
	ui.Inventory(w, AsHTMX(adminRequest(http.MethodGet, "/inventory"), ""))

	body := w.Body.String()
	assert.Contains(t, body, "Inventory service unavailable.")
	assert.Contains(t, body, `hx-get="/inventory"`)
	assert.NotContains(t, body, "No inventory items available.")
	assert.Contains(t, w.Header().Get("Hx-Trigger"), "nav:activate")
}

func TestInventoryNew(t *testing.T) {
	ui := newUI(t)

	w := httptest.NewRecorder()
	ui.InventoryNew(w, AsHTMX(adminRequest(http.MethodGet, "/inventory/new"), "modal-body"))
	assert.True(t, ContainsAll(w.Body.String(), []string{`id="inventory-form"`, `action="/inventory"`, "Product Name"}))

	w = httptest.NewRecorder()
	ui.InventoryNew(w, AsHTMX(staffRequest(http.MethodGet, "/inventory/new"), "modal-body"))
	assert.NotContains(t, w.Body.String(), `id="inventory-form"`)
	assert.Contains(t, w.Body.String(), service.InventoryRestricted.Title)
}

func TestInventoryEdit(t *testing.T) {
	ui := newUI(t)
	ui.InventorySvc = &fakeInventory{products: sampleProducts()}

	req := AsHTMX(adminRequest(http.MethodGet, "/inventory/p2/edit"), "modal-body")
	req.SetPathValue("id", "p2")
	w := httptest.NewRecorder()
	ui.InventoryEdit(w, req)

	body := w.Body.String()
	assert.True(t, ContainsAll(body, []string{`value="Safety Gloves"`, `action="/inventory/p2"`, "/inventory/p2/delete", "Save changes"}))
}

func TestInventoryEdit_Missing(t *testing.T) {
	ui := newUI(t)
	ui.InventorySvc = &fakeInventory{products: sampleProducts()}

	req := AsHTMX(adminRequest(http.MethodGet, "/inventory/nope/edit"), "modal-body")
	req.SetPathValue("id", "nope")
	w := httptest.NewRecorder()
	ui.InventoryEdit(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Product not found.")
	assert.Contains(t, w.Header().Get("Hx-Trigger"), "showToast")
}

func TestInventoryCreate_PrependsRow(t *testing.T) {
	svc := &fakeInventory{saved: inventory.Product{ID: "p9", Name: "Ladder", SKU: "TL-009", Unit: "pcs"}}
	ui := newUI(t)
	ui.InventorySvc = svc

	req := AsHTMX(postForm("/inventory", url.Values{"name": {"Ladder"}, "sku": {"TL-009"}, "price": {"1200"}}), "inventory-form")
	req = WithTestSession(req, TestSession(domainauth.RoleAdmin))
	w := httptest.NewRecorder()
	ui.InventoryCreate(w, req)

	assert.Equal(t, "Ladder", svc.lastForm.Name)
	assert.Equal(t, "1200", svc.lastForm.Price)
	assert.Equal(t, "#inventory-rows", w.Header().Get("Hx-Retarget"))
	assert.Equal(t, "afterbegin", w.Header().Get("Hx-Reswap"))
	trigger := w.Header().Get("Hx-Trigger")
	assert.Contains(t, trigger, "Product created successfully.")
	assert.Contains(t, trigger, "modal:close")
	assert.Contains(t, w.Body.String(), `id="product-p9"`)
}

func TestInventoryCreate_ValidationKeepsInput(t *testing.T) {
	svc := &fakeInventory{saveErr: apperrors.ValidationField("price", "Price must be a non-negative number.")}
	ui := newUI(t)
	ui.InventorySvc = svc

	req := AsHTMX(postForm("/inventory", url.Values{"name": {"Ladder"}, "price": {"-1"}}), "inventory-form")
	req = WithTestSession(req, TestSession(domainauth.RoleAdmin))
	w := httptest.NewRecorder()
	ui.InventoryCreate(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, ContainsAll(body, []string{`value="Ladder"`, `value="-1"`, "Price must be a non-negative number.", `class="field-error"`}))
	assert.Empty(t, w.Header().Get("Hx-Retarget"))
}

func TestInventoryCreate_ForbiddenShowsNoticeAndToast(t *testing.T) {
	ui := newUI(t)
	ui.InventorySvc = &fakeInventory{saveErr: apperrors.Forbidden(service.InventoryRestricted.Body)}

	req := AsHTMX(postForm("/inventory", url.Values{"name": {"x"}}), "inventory-form")
	req = WithTestSession(req, TestSession(domainauth.RoleStaff))
	w := httptest.NewRecorder()
	ui.InventoryCreate(w, req)

	assert.Contains(t, w.Header().Get("Hx-Trigger"), "showToast")
	assert.Contains(t, w.Body.String(), "Only administrators can add or edit inventory items.")
}

func TestInventoryUpdate_SwapsRow(t *testing.T) {
	svc := &fakeInventory{saved: inventory.Product{Name: "Cordless Drill XL", SKU: "TL-001"}}
	ui := newUI(t)
	ui.InventorySvc = svc

	req := AsHTMX(postForm("/inventory/p1", url.Values{"name": {"Cordless Drill XL"}}), "inventory-form")
	req = WithTestSession(req, TestSession(domainauth.RoleAdmin))
	req.SetPathValue("id", "p1")
	w := httptest.NewRecorder()
	ui.InventoryUpdate(w, req)

	assert.Equal(t, "p1", svc.lastID)
	assert.Equal(t, "#product-p1", w.Header().Get("Hx-Retarget"))
	assert.Equal(t, "outerHTML", w.Header().Get("Hx-Reswap"))
	assert.Contains(t, w.Body.String(), "Cordless Drill XL")
}

func TestInventoryDelete(t *testing.T) {
	svc := &fakeInventory{}
	ui := newUI(t)
	ui.InventorySvc = svc

	req := AsHTMX(adminRequest(http.MethodPost, "/inventory/p1/delete"), "")
	req.SetPathValue("id", "p1")
	w := httptest.NewRecorder()
	ui.InventoryDelete(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "p1", svc.lastID)
	assert.Equal(t, "#product-p1", w.Header().Get("Hx-Retarget"))
	assert.Equal(t, "delete", w.Header().Get("Hx-Reswap"))
	assert.Contains(t, w.Header().Get("Hx-Trigger"), "Product deleted.")
}

func TestInventoryDelete_Failure(t *testing.T) {
	ui := newUI(t)
	ui.InventorySvc = &fakeInventory{deleteErr: apperrors.Backend("Inventory service unavailable.")}

	req := AsHTMX(adminRequest(http.MethodPost, "/inventory/p1/delete"), "")
	req.SetPathValue("id", "p1")
	w := httptest.NewRecorder()
	ui.InventoryDelete(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "none", w.Header().Get("Hx-Reswap"))
	assert.Contains(t, w.Header().Get("Hx-Trigger"), "Inventory service unavailable.")

	w = httptest.NewRecorder()
	plain := adminRequest(http.MethodPost, "/inventory/p1/delete")
	plain.SetPathValue("id", "p1")
	ui.InventoryDelete(w, plain)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "Inventory service unavailable.")
}

func TestInventory_NoSessionRedirects(t *testing.T) {
	ui := newUI(t)
	w := httptest.NewRecorder()
	ui.Inventory(w, httptest.NewRequest(http.MethodGet, "/inventory", nil))
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login?callbackUrl=%2Finventory", w.Header().Get("Location"))
}
