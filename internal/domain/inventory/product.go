// Package inventory holds the product and stock-request records served by the
// backend, the form rules applied before anything is sent, and the list filters
// used by the inventory and requests views.
package inventory

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// Product mirrors the backend product record.
type Product struct {
	ID            string  `json:"_id"`
	Name          string  `json:"name"`
	SKU           string  `json:"sku"`
	Description   string  `json:"description"`
	Category      string  `json:"category"`
	Price         float64 `json:"price"`
	StockQuantity float64 `json:"stockQuantity"`
	Unit          string  `json:"unit"`
	Picture       string  `json:"picture"`
	IsActive      bool    `json:"isActive"`
	CreatedAt     string  `json:"createdAt,omitempty"`
	UpdatedAt     string  `json:"updatedAt,omitempty"`
}

// ProductInput is the create/update payload sent to the backend.
type ProductInput struct {
	Name          string  `json:"name"`
	SKU           string  `json:"sku"`
	Category      string  `json:"category"`
	StockQuantity float64 `json:"stockQuantity"`
	Unit          string  `json:"unit"`
	Price         float64 `json:"price"`
	Description   string  `json:"description"`
	Picture       string  `json:"picture"`
	IsActive      bool    `json:"isActive"`
}

// ProductForm is the raw form state as typed by the user.
type ProductForm struct {
	Name          string
	SKU           string
	Category      string
	Unit          string
	Description   string
	Picture       string
	Price         string
	StockQuantity string
}

// FormFromProduct pre-fills the edit form from an existing record.
func FormFromProduct(p Product) ProductForm {
	return ProductForm{
		Name:          p.Name,
		SKU:           p.SKU,
		Category:      p.Category,
		Unit:          p.Unit,
		Description:   p.Description,
		Picture:       p.Picture,
		Price:         FormatNumber(p.Price),
		StockQuantity: FormatNumber(p.StockQuantity),
	}
}

// Validate checks the form in display order and returns the backend payload.
func (f ProductForm) Validate() (ProductInput, error) {
	required := []struct {
		field string
		value string
		msg   string
	}{
		{"name", f.Name, "Product name is required."},
		{"sku", f.SKU, "SKU is required."},
		{"category", f.Category, "Category is required."},
		{"unit", f.Unit, "Unit is required."},
		{"description", f.Description, "Description is required."},
		{"picture", f.Picture, "Product image URL is required."},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return ProductInput{}, &ValidationError{Field: r.field, Message: r.msg}
		}
	}

	price, ok := parseNumber(f.Price)
	if !ok || price < 0 {
		return ProductInput{}, &ValidationError{Field: "price", Message: "Price must be a valid non-negative number."}
	}
	qty, ok := parseNumber(f.StockQuantity)
	if !ok || qty < 0 {
		return ProductInput{}, &ValidationError{
			Field:   "stockQuantity",
			Message: "Stock quantity must be a valid non-negative number.",
		}
	}

	return ProductInput{
		Name:          strings.TrimSpace(f.Name),
		SKU:           strings.TrimSpace(f.SKU),
		Category:      strings.TrimSpace(f.Category),
		StockQuantity: qty,
		Unit:          strings.TrimSpace(f.Unit),
		Price:         price,
		Description:   strings.TrimSpace(f.Description),
		Picture:       strings.TrimSpace(f.Picture),
		IsActive:      true,
	}, nil
}

// CategoryAll disables category filtering.
const CategoryAll = "all"

// FilterProducts keeps products in the given category (or all) whose name or
// SKU contains the search term, case-insensitively.
func FilterProducts(products []Product, category, search string) []Product {
	term := strings.ToLower(strings.TrimSpace(search))
	if category == "" {
		category = CategoryAll
	}
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if category != CategoryAll && p.Category != category {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(p.Name), term) &&
			!strings.Contains(strings.ToLower(p.SKU), term) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Categories returns the sorted set of non-empty categories.
func Categories(products []Product) []string {
	seen := make(map[string]struct{}, len(products))
	for _, p := range products {
		if p.Category != "" {
			seen[p.Category] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// ProductIndex maps product ids to records.
type ProductIndex map[string]Product

// IndexProducts builds a lookup keyed by product id.
func IndexProducts(products []Product) ProductIndex {
	idx := make(ProductIndex, len(products))
	for _, p := range products {
		idx[p.ID] = p
	}
	return idx
}

// Lookup returns the product with the given id.
func (idx ProductIndex) Lookup(id string) (Product, bool) {
	p, ok := idx[id]
	return p, ok
}

// FormatNumber renders a quantity without a trailing ".0".
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// parseNumber follows the browser's Number() coercion for form input: blank
// input is zero, anything unparseable or non-finite is rejected.
func parseNumber(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
