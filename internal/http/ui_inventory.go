package httpx

import (
	"net/http"
	"net/url"

	"github.com/dreamteam/stockme-dashboard/internal/domain/inventory"
	apperrors "github.com/dreamteam/stockme-dashboard/internal/errors"
	"github.com/dreamteam/stockme-dashboard/internal/service"
)

//nolint:gochecknoglobals // static page metadata
var inventoryMeta = PageMeta{Title: "Inventory · StockMe", PageTitle: "View Stock", CurrentPage: PageInventory}

const (
	inventoryTableTarget = "inventory-table"
	inventoryRowsTarget  = "#inventory-rows"
)

// Inventory renders the product list. Filter changes target only the table.
// GET /inventory?category=<c>&search=<q>.
func (h *UIHandlers) Inventory(w http.ResponseWriter, r *http.Request) {
	if requireSession(w, r) == nil {
		return
	}
	q := r.URL.Query()
	category := q.Get("category")
	if category == "" {
		category = inventory.CategoryAll
	}
	search := q.Get("search")

	b := h.pageData(r, inventoryMeta).
		With("Category", category).
		With("Search", search)

	products, err := h.InventorySvc.List(r.Context())
	if err != nil {
		h.logger().WarnContext(r.Context(), "inventory load failed", "error", err)
		b.WithError(apperrors.UserMessage(err, "Failed to load inventory records."), "/inventory")
	}
	filtered := inventory.FilterProducts(products, category, search)
	b.With("Products", filtered).
		With("TotalProducts", len(products)).
		With("Categories", inventory.Categories(products))
	if !service.CapabilitiesFor(DecisionFromContext(r.Context())).ManageInventory {
		b.WithNotice(service.InventoryRestricted)
	}

	data := b.Build()
	if IsHTMX(r) && HXTarget(r) == inventoryTableTarget {
		h.renderFragment(w, r, "inventory-table", data)
		return
	}
	h.renderPage(w, r, data)
}

// InventoryNew renders an empty product form, or the restriction notice for staff.
// GET /inventory/new.
func (h *UIHandlers) InventoryNew(w http.ResponseWriter, r *http.Request) {
	if requireSession(w, r) == nil {
		return
	}
	if !service.CanManageInventory(DecisionFromContext(r.Context())) {
		h.renderNotice(w, r, service.InventoryRestricted)
		return
	}
	data := NewTemplateData(r, inventoryMeta).
		With("Form", inventory.ProductForm{}).
		With("Mode", FormModeCreate).
		With("Action", "/inventory").
		Build()
	h.renderFragment(w, r, "inventory-form", data)
}

// InventoryEdit renders the form pre-filled from the current record.
// GET /inventory/{id}/edit.
func (h *UIHandlers) InventoryEdit(w http.ResponseWriter, r *http.Request) {
	if requireSession(w, r) == nil {
		return
	}
	if !service.CanManageInventory(DecisionFromContext(r.Context())) {
		h.renderNotice(w, r, service.InventoryRestricted)
		return
	}
	id := r.PathValue("id")
	product, err := h.findProduct(r, id)
	if err != nil {
		RenderError(ErrorOpts{
			W:         w,
			R:         r,
			Err:       err,
			Fallback:  "Failed to load inventory records.",
			Renderer:  h.fragmentRenderer("inventory-form"),
			PageMeta:  inventoryMeta,
			Data:      map[string]any{"Form": inventory.ProductForm{}, "Mode": FormModeEdit},
			ShowToast: true,
		})
		return
	}
	data := NewTemplateData(r, inventoryMeta).
		With("Form", inventory.FormFromProduct(product)).
		With("Mode", FormModeEdit).
		With("ID", product.ID).
		With("Action", "/inventory/"+url.PathEscape(product.ID)).
		Build()
	h.renderFragment(w, r, "inventory-form", data)
}

// InventoryCreate adds a product and prepends its row to the table.
// POST /inventory.
func (h *UIHandlers) InventoryCreate(w http.ResponseWriter, r *http.Request) {
	sess := requireSession(w, r)
	if sess == nil {
		return
	}
	form, ok := h.productForm(w, r)
	if !ok {
		return
	}
	product, err := h.InventorySvc.Create(r.Context(), sess, form)
	if err != nil {
		h.renderProductFormError(w, r, productFormState{Form: form, Mode: FormModeCreate, Action: "/inventory"}, err)
		return
	}
	if !IsHTMX(r) {
		http.Redirect(w, r, "/inventory", http.StatusSeeOther)
		return
	}
	HTMX(w).
		Retarget(inventoryRowsTarget, "afterbegin").
		Toast("Product created successfully.", ToastSuccess).
		Trigger("modal:close", nil)
	h.renderFragment(w, r, "inventory-row", h.productRowData(r, product))
}

// InventoryUpdate saves a product and swaps its row in place.
// POST /inventory/{id}.
func (h *UIHandlers) InventoryUpdate(w http.ResponseWriter, r *http.Request) {
	sess := requireSession(w, r)
	if sess == nil {
		return
	}
	id := r.PathValue("id")
	form, ok := h.productForm(w, r)
	if !ok {
		return
	}
	product, err := h.InventorySvc.Update(r.Context(), sess, id, form)
	if err != nil {
		state := productFormState{Form: form, Mode: FormModeEdit, ID: id, Action: "/inventory/" + url.PathEscape(id)}
		h.renderProductFormError(w, r, state, err)
		return
	}
	if !IsHTMX(r) {
		http.Redirect(w, r, "/inventory", http.StatusSeeOther)
		return
	}
	if product.ID == "" {
		product.ID = id
	}
	HTMX(w).
		Retarget("#"+productRowID(product.ID), "outerHTML").
		Toast("Product updated successfully.", ToastSuccess).
		Trigger("modal:close", nil)
	h.renderFragment(w, r, "inventory-row", h.productRowData(r, product))
}

// InventoryDelete removes a product and its row.
// POST /inventory/{id}/delete.
func (h *UIHandlers) InventoryDelete(w http.ResponseWriter, r *http.Request) {
	sess := requireSession(w, r)
	if sess == nil {
		return
	}
	id := r.PathValue("id")
	if err := h.InventorySvc.Delete(r.Context(), sess, id); err != nil {
		h.logger().WarnContext(r.Context(), "product delete failed", "product_id", id, "error", err)
		h.renderMutationFailure(w, r, err, "Unable to delete product. Please try again.", "/inventory")
		return
	}
	if !IsHTMX(r) {
		http.Redirect(w, r, "/inventory", http.StatusSeeOther)
		return
	}
	HTMX(w).
		Retarget("#"+productRowID(id), "delete").
		Toast("Product deleted.", ToastSuccess).
		Trigger("modal:close", nil)
	w.WriteHeader(http.StatusOK)
}

type productFormState struct {
	Form   inventory.ProductForm
	Mode   FormMode
	ID     string
	Action string
}

func (h *UIHandlers) renderProductFormError(w http.ResponseWriter, r *http.Request, st productFormState, err error) {
	RenderError(ErrorOpts{
		W:        w,
		R:        r,
		Err:      err,
		Fallback: "Unable to save product changes. Please try again.",
		Renderer: h.fragmentRenderer("inventory-form"),
		PageMeta: inventoryMeta,
		Data: map[string]any{
			"Form":   st.Form,
			"Mode":   st.Mode,
			"ID":     st.ID,
			"Action": st.Action,
		},
		ShowToast: apperrors.IsForbidden(err) || apperrors.IsUnauthenticated(err),
	})
}

func (h *UIHandlers) productForm(w http.ResponseWriter, r *http.Request) (inventory.ProductForm, bool) {
	if err := r.ParseForm(); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_form", Err: err})
		return inventory.ProductForm{}, false
	}
	return inventory.ProductForm{
		Name:          r.PostFormValue("name"),
		SKU:           r.PostFormValue("sku"),
		Category:      r.PostFormValue("category"),
		Unit:          r.PostFormValue("unit"),
		Description:   r.PostFormValue("description"),
		Picture:       r.PostFormValue("picture"),
		Price:         r.PostFormValue("price"),
		StockQuantity: r.PostFormValue("stockQuantity"),
	}, true
}

// findProduct looks a product up in the list; the backend has no single-product read.
func (h *UIHandlers) findProduct(r *http.Request, id string) (inventory.Product, error) {
	products, err := h.InventorySvc.List(r.Context())
	if err != nil {
		return inventory.Product{}, err
	}
	if p, ok := inventory.IndexProducts(products).Lookup(id); ok {
		return p, nil
	}
	return inventory.Product{}, apperrors.NotFound("Product not found.")
}

func (h *UIHandlers) productRowData(r *http.Request, p inventory.Product) map[string]any {
	return NewTemplateData(r, inventoryMeta).With("Product", p).Build()
}

func productRowID(id string) string { return "product-" + id }
