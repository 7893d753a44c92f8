package inventory

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// RefKind tags how a relation arrived from the backend.
type RefKind uint8

const (
	// RefNone means the relation was null or missing.
	RefNone RefKind = iota
	// RefID means the backend sent only the related record's id.
	RefID
	// RefExpanded means the backend populated the related record.
	RefExpanded
)

// ProductSummary is the populated form of a request's product.
type ProductSummary struct {
	ID            string   `json:"_id"`
	Name          string   `json:"name"`
	SKU           string   `json:"sku"`
	Category      string   `json:"category,omitempty"`
	StockQuantity *float64 `json:"stockQuantity,omitempty"`
}

// ProductRef is either a product id or an expanded product summary.
type ProductRef struct {
	Kind     RefKind
	ID       string
	Expanded *ProductSummary
}

// UnmarshalJSON accepts a string id, an object, or null.
func (r *ProductRef) UnmarshalJSON(b []byte) error {
	*r = ProductRef{}
	kind, err := decodeRef(b, &r.ID, func() error {
		var s ProductSummary
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		r.ID = s.ID
		r.Expanded = &s
		return nil
	})
	r.Kind = kind
	return err
}

// MarshalJSON writes the relation back in the shape it was received.
func (r ProductRef) MarshalJSON() ([]byte, error) {
	switch r.Kind {
	case RefExpanded:
		return json.Marshal(r.Expanded)
	case RefID:
		return json.Marshal(r.ID)
	default:
		return []byte("null"), nil
	}
}

// Name resolves the product name from the populated record or the lookup.
func (r ProductRef) Name(idx ProductIndex) (string, bool) {
	if r.Kind == RefExpanded && r.Expanded != nil && r.Expanded.Name != "" {
		return r.Expanded.Name, true
	}
	if p, ok := idx.Lookup(r.ID); ok && p.Name != "" {
		return p.Name, true
	}
	return "", false
}

// UserSummary is the populated form of a request's requester.
type UserSummary struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

// UserRef is either a user id or an expanded user summary.
type UserRef struct {
	Kind     RefKind
	ID       string
	Expanded *UserSummary
}

// UnmarshalJSON accepts a string id, an object, or null.
func (r *UserRef) UnmarshalJSON(b []byte) error {
	*r = UserRef{}
	kind, err := decodeRef(b, &r.ID, func() error {
		var s UserSummary
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		r.ID = s.ID
		r.Expanded = &s
		return nil
	})
	r.Kind = kind
	return err
}

// MarshalJSON writes the relation back in the shape it was received.
func (r UserRef) MarshalJSON() ([]byte, error) {
	switch r.Kind {
	case RefExpanded:
		return json.Marshal(r.Expanded)
	case RefID:
		return json.Marshal(r.ID)
	default:
		return []byte("null"), nil
	}
}

// DisplayName is the requester name, falling back to the id.
func (r UserRef) DisplayName() string {
	if r.Expanded != nil && r.Expanded.Name != "" {
		return r.Expanded.Name
	}
	return r.ID
}

func decodeRef(b []byte, id *string, expand func() error) (RefKind, error) {
	trimmed := bytes.TrimSpace(b)
	switch {
	case len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")):
		return RefNone, nil
	case trimmed[0] == '"':
		if err := json.Unmarshal(trimmed, id); err != nil {
			return RefNone, err
		}
		return RefID, nil
	case trimmed[0] == '{':
		if err := expand(); err != nil {
			return RefNone, err
		}
		return RefExpanded, nil
	default:
		return RefNone, fmt.Errorf("relation must be a string id or an object, got %s", trimmed)
	}
}
