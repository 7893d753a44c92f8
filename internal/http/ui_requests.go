package httpx

import (
	"net/http"
	"net/url"

	"golang.org/x/sync/errgroup"

	domainauth "github.com/dreamteam/stockme-dashboard/internal/domain/auth"
	"github.com/dreamteam/stockme-dashboard/internal/domain/inventory"
	apperrors "github.com/dreamteam/stockme-dashboard/internal/errors"
	"github.com/dreamteam/stockme-dashboard/internal/service"
)

//nolint:gochecknoglobals // static page metadata
var requestsMeta = PageMeta{Title: "Requests · StockMe", PageTitle: "Stock Requests", CurrentPage: PageRequests}

const (
	requestsTableTarget = "requests-table"
	requestsRowsTarget  = "#request-rows"
)

// RequestRow is one request with its relations resolved for display.
type RequestRow struct {
	Request     inventory.Request
	ProductName string
	UserName    string
}

// TransactionOption is an entry in the transaction type filter.
type TransactionOption struct {
	Value string
	Label string
}

//nolint:gochecknoglobals // static read-only options
var transactionOptions = []TransactionOption{
	{Value: inventory.TransactionAll, Label: "All types"},
	{Value: string(inventory.StockIn), Label: inventory.StockIn.Label()},
	{Value: string(inventory.StockOut), Label: inventory.StockOut.Label()},
}

func requestRows(reqs []inventory.Request, idx inventory.ProductIndex) []RequestRow {
	rows := make([]RequestRow, len(reqs))
	for i, r := range reqs {
		rows[i] = RequestRow{Request: r, ProductName: inventory.ProductName(r, idx), UserName: r.User.DisplayName()}
	}
	return rows
}

// Requests renders the stock request list. Requests and the product catalogue
// load concurrently and fail independently.
// GET /requests?type=<all|stockIn|stockOut>&search=<q>.
func (h *UIHandlers) Requests(w http.ResponseWriter, r *http.Request) {
	sess := requireSession(w, r)
	if sess == nil {
		return
	}
	q := r.URL.Query()
	txType := q.Get("type")
	if _, ok := inventory.ParseTransactionType(txType); !ok {
		txType = inventory.TransactionAll
	}
	search := q.Get("search")

	var (
		reqs         []inventory.Request
		products     []inventory.Product
		reqErr, pErr error
	)
	var g errgroup.Group
	g.Go(func() error {
		reqs, reqErr = h.RequestsSvc.List(r.Context(), sess)
		return nil
	})
	g.Go(func() error {
		products, pErr = h.RequestsSvc.Products(r.Context())
		return nil
	})
	_ = g.Wait()

	b := h.pageData(r, requestsMeta).
		With("Type", txType).
		With("Search", search).
		With("TransactionOptions", transactionOptions)
	if reqErr != nil {
		h.logger().WarnContext(r.Context(), "requests load failed", "error", reqErr)
		b.WithError(apperrors.UserMessage(reqErr, "Unable to load requests from the API."), "/requests")
	}
	if pErr != nil {
		h.logger().WarnContext(r.Context(), "request products load failed", "error", pErr)
		b.With("ProductsError", apperrors.UserMessage(pErr, "Unable to load products for request creation."))
	}

	idx := inventory.IndexProducts(products)
	filtered := inventory.FilterRequests(reqs, idx, txType, search)
	b.With("Rows", requestRows(filtered, idx)).
		With("TotalRequests", len(reqs)).
		With("StockInCount", inventory.CountStockIn(reqs)).
		With("StockOutCount", len(reqs)-inventory.CountStockIn(reqs))
	if !service.CanCreateRequest(DecisionFromContext(r.Context())) {
		b.WithNotice(service.RequestsRestricted)
	}

	data := b.Build()
	if IsHTMX(r) && HXTarget(r) == requestsTableTarget {
		h.renderFragment(w, r, "requests-table", data)
		return
	}
	h.renderPage(w, r, data)
}

// RequestNew renders a blank request form. Admins get the restriction notice.
// GET /requests/new.
func (h *UIHandlers) RequestNew(w http.ResponseWriter, r *http.Request) {
	if requireSession(w, r) == nil {
		return
	}
	if !service.CanCreateRequest(DecisionFromContext(r.Context())) {
		h.renderNotice(w, r, service.RequestsRestricted)
		return
	}
	h.renderRequestForm(w, r, requestFormState{
		Form:   h.RequestsSvc.BlankForm(),
		Mode:   FormModeCreate,
		Action: "/requests",
	}, nil)
}

// RequestEdit renders the form pre-filled from an existing request.
// GET /requests/{id}/edit.
func (h *UIHandlers) RequestEdit(w http.ResponseWriter, r *http.Request) {
	sess := requireSession(w, r)
	if sess == nil {
		return
	}
	if !service.CanEditRequest(DecisionFromContext(r.Context())) {
		h.renderNotice(w, r, service.RequestsRestricted)
		return
	}
	id := r.PathValue("id")
	st := requestFormState{Mode: FormModeEdit, ID: id, Action: "/requests/" + url.PathEscape(id)}
	req, err := h.findRequest(r, sess, id)
	if err != nil {
		st.Form = h.RequestsSvc.BlankForm()
		h.renderRequestForm(w, r, st, err)
		return
	}
	st.Form = h.RequestsSvc.EditForm(req)
	h.renderRequestForm(w, r, st, nil)
}

// RequestCreate submits a new request and prepends its row.
// POST /requests.
func (h *UIHandlers) RequestCreate(w http.ResponseWriter, r *http.Request) {
	sess := requireSession(w, r)
	if sess == nil {
		return
	}
	form, ok := h.requestForm(w, r)
	if !ok {
		return
	}
	req, err := h.RequestsSvc.Create(r.Context(), sess, form)
	if err != nil {
		h.renderRequestForm(w, r, requestFormState{Form: form, Mode: FormModeCreate, Action: "/requests"}, err)
		return
	}
	if !IsHTMX(r) {
		http.Redirect(w, r, "/requests", http.StatusSeeOther)
		return
	}
	HTMX(w).
		Retarget(requestsRowsTarget, "afterbegin").
		Toast("Request created successfully.", ToastSuccess).
		Trigger("modal:close", nil)
	h.renderFragment(w, r, "request-row", h.requestRowData(r, req))
}

// RequestUpdate saves a request and swaps its row in place.
// POST /requests/{id}.
func (h *UIHandlers) RequestUpdate(w http.ResponseWriter, r *http.Request) {
	sess := requireSession(w, r)
	if sess == nil {
		return
	}
	id := r.PathValue("id")
	form, ok := h.requestForm(w, r)
	if !ok {
		return
	}
	req, err := h.RequestsSvc.Update(r.Context(), sess, id, form)
	if err != nil {
		st := requestFormState{Form: form, Mode: FormModeEdit, ID: id, Action: "/requests/" + url.PathEscape(id)}
		h.renderRequestForm(w, r, st, err)
		return
	}
	if !IsHTMX(r) {
		http.Redirect(w, r, "/requests", http.StatusSeeOther)
		return
	}
	if req.ID == "" {
		req.ID = id
	}
	HTMX(w).
		Retarget("#"+requestRowID(req.ID), "outerHTML").
		Toast("Request updated successfully.", ToastSuccess).
		Trigger("modal:close", nil)
	h.renderFragment(w, r, "request-row", h.requestRowData(r, req))
}

// RequestDelete removes a request and its row.
// POST /requests/{id}/delete.
func (h *UIHandlers) RequestDelete(w http.ResponseWriter, r *http.Request) {
	sess := requireSession(w, r)
	if sess == nil {
		return
	}
	id := r.PathValue("id")
	if err := h.RequestsSvc.Delete(r.Context(), sess, id); err != nil {
		h.logger().WarnContext(r.Context(), "request delete failed", "request_id", id, "error", err)
		h.renderMutationFailure(w, r, err, "Unable to delete request. Please try again.", "/requests")
		return
	}
	if !IsHTMX(r) {
		http.Redirect(w, r, "/requests", http.StatusSeeOther)
		return
	}
	HTMX(w).
		Retarget("#"+requestRowID(id), "delete").
		Toast("Request deleted.", ToastSuccess).
		Trigger("modal:close", nil)
	w.WriteHeader(http.StatusOK)
}

type requestFormState struct {
	Form   inventory.RequestForm
	Mode   FormMode
	ID     string
	Action string
}

// renderRequestForm renders the request form with the product picker. err, when
// set, is shown inline above the form.
func (h *UIHandlers) renderRequestForm(w http.ResponseWriter, r *http.Request, st requestFormState, err error) {
	b := NewTemplateData(r, requestsMeta).
		With("Form", st.Form).
		With("Mode", st.Mode).
		With("ID", st.ID).
		With("Action", st.Action).
		With("TransactionTypes", []inventory.TransactionType{inventory.StockIn, inventory.StockOut})

	products, pErr := h.RequestsSvc.Products(r.Context())
	if pErr != nil {
		b.With("ProductsError", apperrors.UserMessage(pErr, "Unable to load products for request creation."))
	}
	b.With("Products", products)

	if err == nil {
		h.renderFragment(w, r, "request-form", b.Build())
		return
	}
	RenderError(ErrorOpts{
		W:         w,
		R:         r,
		Err:       err,
		Fallback:  "Unable to save request. Please try again.",
		Renderer:  h.fragmentRenderer("request-form"),
		Builder:   b,
		ShowToast: apperrors.IsForbidden(err) || apperrors.IsUnauthenticated(err),
	})
}

func (h *UIHandlers) requestForm(w http.ResponseWriter, r *http.Request) (inventory.RequestForm, bool) {
	if err := r.ParseForm(); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_form", Err: err})
		return inventory.RequestForm{}, false
	}
	return inventory.RequestForm{
		ProductID:       r.PostFormValue("productId"),
		TransactionType: inventory.TransactionType(r.PostFormValue("transactionType")),
		ItemAmount:      r.PostFormValue("itemAmount"),
		TransactionDate: r.PostFormValue("transactionDate"),
	}, true
}

// findRequest looks a request up in the session user's list.
func (h *UIHandlers) findRequest(r *http.Request, sess *domainauth.Session, id string) (inventory.Request, error) {
	reqs, err := h.RequestsSvc.List(r.Context(), sess)
	if err != nil {
		return inventory.Request{}, err
	}
	for _, req := range reqs {
		if req.ID == id {
			return req, nil
		}
	}
	return inventory.Request{}, apperrors.NotFound("Request not found.")
}

// requestRowData resolves the product name against the current catalogue. A
// failed catalogue load degrades to the expanded relation or "Unknown product".
func (h *UIHandlers) requestRowData(r *http.Request, req inventory.Request) map[string]any {
	products, err := h.RequestsSvc.Products(r.Context())
	if err != nil {
		h.logger().DebugContext(r.Context(), "row product lookup failed", "error", err)
	}
	rows := requestRows([]inventory.Request{req}, inventory.IndexProducts(products))
	return NewTemplateData(r, requestsMeta).With("Row", rows[0]).Build()
}

func requestRowID(id string) string { return "request-" + id }
