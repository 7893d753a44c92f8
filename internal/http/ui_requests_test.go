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

func sampleRequests() []inventory.Request {
	return []inventory.Request{
		{
			ID:              "r1",
			TransactionType: inventory.StockIn,
			ItemAmount:      5,
			TransactionDate: "2025-03-01T00:00:00.000Z",
			Product:         inventory.ProductRef{Kind: inventory.RefID, ID: "p1"},
			User:            inventory.UserRef{Kind: inventory.RefExpanded, ID: "u1", Expanded: &inventory.UserSummary{ID: "u1", Name: "Niran"}},
		},
		{
			ID:              "r2",
			TransactionType: inventory.StockOut,
			ItemAmount:      20,
			TransactionDate: "2025-03-02T00:00:00.000Z",
			Product:         inventory.ProductRef{Kind: inventory.RefID, ID: "gone"},
			User:            inventory.UserRef{Kind: inventory.RefID, ID: "u2"},
		},
	}
}

func TestRequests_FullPage(t *testing.T) {
	ui := newUI(t)
	ui.RequestsSvc = &fakeRequests{requests: sampleRequests(), products: sampleProducts()}

	w := httptest.NewRecorder()
	ui.Requests(w, staffRequest(http.MethodGet, "/requests"))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, ContainsAll(body, []string{
		"Cordless Drill", inventory.UnknownProduct, "Niran", "u2",
		`id="request-r1"`, `id="request-r2"`, "New request",
	}))
	assert.NotContains(t, body, service.RequestsRestricted.Title)
}

func TestRequests_AdminSeesNotice(t *testing.T) {
	ui := newUI(t)
	ui.RequestsSvc = &fakeRequests{requests: sampleRequests(), products: sampleProducts()}

	w := httptest.NewRecorder()
	ui.Requests(w, adminRequest(http.MethodGet, "/requests"))

	body := w.Body.String()
	assert.Contains(t, body, service.RequestsRestricted.Title)
	assert.NotContains(t, body, "New request")
}

func TestRequests_TypeFilterFragment(t *testing.T) {
	ui := newUI(t)
	ui.RequestsSvc = &fakeRequests{requests: sampleRequests(), products: sampleProducts()}

	w := httptest.NewRecorder()
	ui.Requests(w, AsHTMX(staffRequest(http.MethodGet, "/requests?type=stockOut"), "requests-table"))

	body := w.Body.String()
	assert.NotContains(t, body, "<html")
	assert.Contains(t, body, `id="request-r2"`)
	assert.NotContains(t, body, `id="request-r1"`)
}

func TestRequests_ProductsFailureDegrades(t *testing.T) {
	ui := newUI(t)
	ui.RequestsSvc = &fakeRequests{requests: sampleRequests(), productsErr: apperrors.Backend("Catalogue offline.")}

	w := httptest.NewRecorder()
	ui.Requests(w, staffRequest(http.MethodGet, "/requests"))

	body := w.Body.String()
	assert.Contains(t, body, "Catalogue offline.")
	assert.Contains(t, body, `id="request-r1"`)
	assert.Contains(t, body, inventory.UnknownProduct)
}

func TestRequests_ListFailure(t *testing.T) {
	ui := newUI(t)
	ui.RequestsSvc = &fakeRequests{listErr: apperrors.Backend("Unable to load requests from the API."), products: sampleProducts()}

	w := httptest.NewRecorder()
	ui.Requests(w, AsHTMX(staffRequest(http.MethodGet, "/requests"), ""))

	body := w.Body.String()
	assert.Contains(t, body, "Unable to load requests from the API.")
	assert.NotContains(t, body, "No stock requests yet.")
}

func TestRequestNew(t *testing.T) {
	ui := newUI(t)
	ui.RequestsSvc = &fakeRequests{products: sampleProducts()}

	w := httptest.NewRecorder()
	ui.RequestNew(w, AsHTMX(staffRequest(http.MethodGet, "/requests/new"), "modal-body"))
	body := w.Body.String()
	assert.True(t, ContainsAll(body, []string{`id="request-form"`, "Cordless Drill", `value="2025-01-02"`, "Submit request"}))

	w = httptest.NewRecorder()
	ui.RequestNew(w, AsHTMX(adminRequest(http.MethodGet, "/requests/new"), "modal-body"))
	assert.NotContains(t, w.Body.String(), `id="request-form"`)
	assert.Contains(t, w.Body.String(), service.RequestsRestricted.Title)
}

func TestRequestEdit(t *testing.T) {
	ui := newUI(t)
	ui.RequestsSvc = &fakeRequests{requests: sampleRequests(), products: sampleProducts()}

	req := AsHTMX(staffRequest(http.MethodGet, "/requests/r1/edit"), "modal-body")
	req.SetPathValue("id", "r1")
	w := httptest.NewRecorder()
	ui.RequestEdit(w, req)

	body := w.Body.String()
	assert.True(t, ContainsAll(body, []string{`action="/requests/r1"`, `value="2025-03-01"`, "Save changes"}))
}

func TestRequestCreate(t *testing.T) {
	svc := &fakeRequests{
		products: sampleProducts(),
		saved: inventory.Request{
			ID: "r9", TransactionType: inventory.StockOut, ItemAmount: 3,
			Product: inventory.ProductRef{Kind: inventory.RefID, ID: "p2"},
		},
	}
	ui := newUI(t)
	ui.RequestsSvc = svc

	form := url.Values{"productId": {"p2"}, "transactionType": {"stockOut"}, "itemAmount": {"3"}, "transactionDate": {"2025-03-05"}}
	req := WithTestSession(AsHTMX(postForm("/requests", form), "request-form"), TestSession(domainauth.RoleStaff))
	w := httptest.NewRecorder()
	ui.RequestCreate(w, req)

	assert.Equal(t, inventory.RequestForm{ProductID: "p2", TransactionType: inventory.StockOut, ItemAmount: "3", TransactionDate: "2025-03-05"}, svc.lastForm)
	assert.Equal(t, "#request-rows", w.Header().Get("Hx-Retarget"))
	assert.Equal(t, "afterbegin", w.Header().Get("Hx-Reswap"))
	assert.Contains(t, w.Header().Get("Hx-Trigger"), "Request created successfully.")
	assert.True(t, ContainsAll(w.Body.String(), []string{`id="request-r9"`, "Safety Gloves"}))
}

func TestRequestCreate_InsufficientStock(t *testing.T) {
	svc := &fakeRequests{
		products: sampleProducts(),
		saveErr:  apperrors.ValidationField("itemAmount", "Not enough stock available."),
	}
	ui := newUI(t)
	ui.RequestsSvc = svc

	form := url.Values{"productId": {"p1"}, "transactionType": {"stockOut"}, "itemAmount": {"99"}, "transactionDate": {"2025-03-05"}}
	req := WithTestSession(AsHTMX(postForm("/requests", form), "request-form"), TestSession(domainauth.RoleStaff))
	w := httptest.NewRecorder()
	ui.RequestCreate(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, ContainsAll(body, []string{`id="request-form"`, `value="99"`, "Not enough stock available."}))
	assert.Empty(t, w.Header().Get("Hx-Retarget"))
}

func TestRequestCreate_PlainFormRedirects(t *testing.T) {
	ui := newUI(t)
	ui.RequestsSvc = &fakeRequests{saved: inventory.Request{ID: "r9"}}

	req := WithTestSession(postForm("/requests", url.Values{"productId": {"p1"}}), TestSession(domainauth.RoleStaff))
	w := httptest.NewRecorder()
	ui.RequestCreate(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/requests", w.Header().Get("Location"))
}

func TestRequestUpdate(t *testing.T) {
	svc := &fakeRequests{products: sampleProducts(), saved: inventory.Request{TransactionType: inventory.StockIn, ItemAmount: 8}}
	ui := newUI(t)
	ui.RequestsSvc = svc

	req := WithTestSession(AsHTMX(postForm("/requests/r1", url.Values{"itemAmount": {"8"}}), "request-form"), TestSession(domainauth.RoleAdmin))
	req.SetPathValue("id", "r1")
	w := httptest.NewRecorder()
	ui.RequestUpdate(w, req)

	assert.Equal(t, "r1", svc.lastID)
	assert.Equal(t, "#request-r1", w.Header().Get("Hx-Retarget"))
	assert.Equal(t, "outerHTML", w.Header().Get("Hx-Reswap"))
}

func TestRequestDelete_SessionExpired(t *testing.T) {
	ui := newUI(t)
	ui.RequestsSvc = &fakeRequests{deleteErr: apperrors.Unauthenticated("Token expired")}

	req := AsHTMX(staffRequest(http.MethodPost, "/requests/r1/delete"), "")
	req.SetPathValue("id", "r1")
	w := httptest.NewRecorder()
	ui.RequestDelete(w, req)

	assert.Equal(t, "#page-notice", w.Header().Get("Hx-Retarget"))
	assert.Equal(t, "innerHTML", w.Header().Get("Hx-Reswap"))
	assert.Contains(t, w.Body.String(), sessionExpiredNotice.Title)
}

func TestRequestRows(t *testing.T) {
	rows := requestRows(sampleRequests(), inventory.IndexProducts(sampleProducts()))
	require.Len(t, rows, 2)
	assert.Equal(t, "Cordless Drill", rows[0].ProductName)
	assert.Equal(t, "Niran", rows[0].UserName)
	assert.Equal(t, inventory.UnknownProduct, rows[1].ProductName)
	assert.Equal(t, "u2", rows[1].UserName)
}
