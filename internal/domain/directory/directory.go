// Package directory models the admin user directory returned by the backend.
package directory

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/dreamteam/stockme-dashboard/internal/domain/auth"
)

// Number is a lenient numeric field: JSON numbers and numeric strings decode to
// their value, everything else (null, booleans, garbage, non-finite) to zero.
type Number float64

// UnmarshalJSON implements the lenient decoding described on Number.
func (n *Number) UnmarshalJSON(b []byte) error {
	*n = Number(ToNumber(json.RawMessage(b)))
	return nil
}

// Int returns the value truncated to an int.
func (n Number) Int() int { return int(n) }

// ToNumber coerces an arbitrary JSON value to a finite float.
func ToNumber(raw json.RawMessage) float64 {
	b := bytes.TrimSpace(raw)
	if len(b) == 0 {
		return 0
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return 0
		}
		return parseFinite(s)
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return parseFinite(string(b))
	default:
		return 0
	}
}

func parseFinite(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// RequestSummary counts a user's (or everyone's) stock requests.
type RequestSummary struct {
	TotalRequests Number `json:"totalRequests"`
	StockIn       Number `json:"stockIn"`
	StockOut      Number `json:"stockOut"`
}

// Entry is one user in the directory.
type Entry struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	Tel            string          `json:"tel,omitempty"`
	Role           auth.Role       `json:"role"`
	CreatedAt      string          `json:"createdAt,omitempty"`
	RequestSummary *RequestSummary `json:"requestSummary,omitempty"`
}

// Response is the raw GET /api/v1/users envelope.
type Response struct {
	Success        bool              `json:"success"`
	Count          *Number           `json:"count"`
	RoleFilter     string            `json:"roleFilter"`
	RoleSummary    map[string]Number `json:"roleSummary"`
	RequestSummary *RequestSummary   `json:"requestSummary"`
	Data           []Entry           `json:"data"`
}

// Meta is the normalised directory header.
type Meta struct {
	TotalUsers     int
	RoleSummary    map[auth.Role]int
	RequestSummary RequestSummary
}

// Directory is the normalised directory.
type Directory struct {
	Meta    Meta
	Entries []Entry
}

// EmptyMeta is the zero directory header with every role present.
func EmptyMeta() Meta {
	rs := make(map[auth.Role]int, len(auth.Roles))
	for _, r := range auth.Roles {
		rs[r] = 0
	}
	return Meta{RoleSummary: rs}
}

// Normalize coerces counts, fills missing summaries with zero and normalises entry roles.
func Normalize(resp Response) Directory {
	meta := EmptyMeta()
	for _, r := range auth.Roles {
		meta.RoleSummary[r] = resp.RoleSummary[string(r)].Int()
	}
	if resp.Count != nil {
		meta.TotalUsers = resp.Count.Int()
	} else {
		meta.TotalUsers = len(resp.Data)
	}
	if resp.RequestSummary != nil {
		meta.RequestSummary = *resp.RequestSummary
	}

	entries := make([]Entry, len(resp.Data))
	for i, e := range resp.Data {
		e.Role = auth.NormalizeRole(string(e.Role))
		entries[i] = e
	}
	return Directory{Meta: meta, Entries: entries}
}

// RoleFilterAll disables role filtering.
const RoleFilterAll = "all"

// ParseRoleFilter returns the role to send to the backend, or "" for all.
func ParseRoleFilter(raw string) (auth.Role, string) {
	if r, ok := auth.ParseRole(raw); ok {
		return r, string(r)
	}
	return "", RoleFilterAll
}

// Search keeps entries whose name, email, role or telephone contains the term.
func Search(entries []Entry, term string) []Entry {
	q := strings.ToLower(strings.TrimSpace(term))
	if q == "" {
		return entries
	}
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		hay := []string{e.Name, e.Email, string(e.Role), e.Tel}
		for _, h := range hay {
			if strings.Contains(strings.ToLower(h), q) {
				out = append(out, e)
				break
			}
		}
	}
	return out
}
