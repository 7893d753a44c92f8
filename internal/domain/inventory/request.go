package inventory

import (
	"fmt"
	"strings"
	"time"
)

// TransactionType is the direction of a stock movement.
type TransactionType string

const (
	StockIn  TransactionType = "stockIn"
	StockOut TransactionType = "stockOut"
)

// Label is the human-readable transaction name.
func (t TransactionType) Label() string {
	if t == StockOut {
		return "Stock Out"
	}
	return "Stock In"
}

// ParseTransactionType accepts only the two known types.
func ParseTransactionType(raw string) (TransactionType, bool) {
	switch TransactionType(strings.TrimSpace(raw)) {
	case StockIn:
		return StockIn, true
	case StockOut:
		return StockOut, true
	default:
		return "", false
	}
}

// Request mirrors the backend stock request record.
type Request struct {
	ID              string          `json:"_id"`
	TransactionDate string          `json:"transactionDate"`
	TransactionType TransactionType `json:"transactionType"`
	ItemAmount      float64         `json:"itemAmount"`
	User            UserRef         `json:"user"`
	Product         ProductRef      `json:"product_id"`
	CreatedAt       string          `json:"createdAt,omitempty"`
	UpdatedAt       string          `json:"updatedAt,omitempty"`
}

// DateOnly returns the YYYY-MM-DD prefix of the transaction date.
func (r Request) DateOnly() string {
	if len(r.TransactionDate) >= 10 {
		return r.TransactionDate[:10]
	}
	return r.TransactionDate
}

// RequestInput is the create/update payload sent to the backend.
type RequestInput struct {
	ProductID       string          `json:"product_id"`
	TransactionType TransactionType `json:"transactionType"`
	ItemAmount      float64         `json:"itemAmount"`
	TransactionDate time.Time       `json:"transactionDate"`
}

// RequestForm is the raw form state as typed by the user.
type RequestForm struct {
	ProductID       string
	TransactionType TransactionType
	ItemAmount      string
	TransactionDate string
}

// FormFromRequest pre-fills the edit form from an existing record.
func FormFromRequest(r Request, today time.Time) RequestForm {
	date := r.DateOnly()
	if date == "" {
		date = today.UTC().Format(time.DateOnly)
	}
	return RequestForm{
		ProductID:       r.Product.ID,
		TransactionType: r.TransactionType,
		ItemAmount:      FormatNumber(r.ItemAmount),
		TransactionDate: date,
	}
}

// Validate checks everything that needs no lookup, in display order:
// product, transaction type, amount, date. Stock availability is CheckStock's job.
func (f RequestForm) Validate() (RequestInput, error) {
	if strings.TrimSpace(f.ProductID) == "" {
		return RequestInput{}, &ValidationError{Field: "productId", Message: "Please select a product for this request."}
	}

	txType, ok := ParseTransactionType(string(f.TransactionType))
	if !ok {
		return RequestInput{}, &ValidationError{Field: "transactionType", Message: "Please choose Stock In or Stock Out."}
	}

	amount, ok := parseNumber(f.ItemAmount)
	if !ok || amount <= 0 {
		return RequestInput{}, &ValidationError{Field: "itemAmount", Message: "Amount must be a positive number."}
	}

	rawDate := strings.TrimSpace(f.TransactionDate)
	if rawDate == "" {
		return RequestInput{}, &ValidationError{Field: "transactionDate", Message: "Transaction date is required."}
	}
	date, err := time.Parse(time.DateOnly, rawDate)
	if err != nil {
		return RequestInput{}, &ValidationError{Field: "transactionDate", Message: "Transaction date must be a valid date."}
	}

	return RequestInput{
		ProductID:       strings.TrimSpace(f.ProductID),
		TransactionType: txType,
		ItemAmount:      amount,
		TransactionDate: date.UTC(),
	}, nil
}

// NeedsStock reports whether CheckStock has anything to check.
func (in RequestInput) NeedsStock() bool { return in.TransactionType == StockOut }

// CheckStock rejects a stock-out the selected product cannot cover. Stock-in
// requests always pass.
func (in RequestInput) CheckStock(idx ProductIndex) error {
	if !in.NeedsStock() {
		return nil
	}
	product, found := idx.Lookup(in.ProductID)
	if !found {
		return &ValidationError{
			Field:   "productId",
			Message: "Unable to determine available stock for the selected product.",
		}
	}
	available := product.StockQuantity
	if available <= 0 {
		return &ValidationError{Field: "productId", Message: "This product has no stock available for stock-out."}
	}
	if in.ItemAmount > available {
		return &ValidationError{
			Field:   "itemAmount",
			Message: fmt.Sprintf("Stock-out requests cannot exceed available stock (%s units).", FormatNumber(available)),
		}
	}
	return nil
}

// TransactionAll disables transaction type filtering.
const TransactionAll = "all"

// UnknownProduct is shown when a request's product cannot be resolved.
const UnknownProduct = "Unknown product"

// ProductName resolves a request's product name for display.
func ProductName(r Request, idx ProductIndex) string {
	if name, ok := r.Product.Name(idx); ok {
		return name
	}
	return UnknownProduct
}

// FilterRequests keeps requests of the given type (or all) whose product name
// or id contains the search term, case-insensitively.
func FilterRequests(requests []Request, idx ProductIndex, txType, search string) []Request {
	term := strings.ToLower(strings.TrimSpace(search))
	if txType == "" {
		txType = TransactionAll
	}
	out := make([]Request, 0, len(requests))
	for _, r := range requests {
		if txType != TransactionAll && string(r.TransactionType) != txType {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(ProductName(r, idx)), term) &&
			!strings.Contains(strings.ToLower(r.ID), term) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// CountStockIn returns the number of stock-in requests.
func CountStockIn(requests []Request) int {
	n := 0
	for _, r := range requests {
		if r.TransactionType == StockIn {
			n++
		}
	}
	return n
}
