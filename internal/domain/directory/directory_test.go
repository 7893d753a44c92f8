package directory

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamteam/stockme-dashboard/internal/domain/auth"
)

func TestToNumber(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{`12`, 12},
		{`"7"`, 7},
		{`" 3.5 "`, 3.5},
		{`""`, 0},
		{`"abc"`, 0},
		{`null`, 0},
		{`true`, 0},
		{`{"a":1}`, 0},
		{`-4`, -4},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, ToNumber(json.RawMessage(tt.raw)), 1e-9, "raw %s", tt.raw)
	}
}

func TestNormalize(t *testing.T) {
	raw := `{
		"success": true,
		"count": "3",
		"roleFilter": "all",
		"roleSummary": {"admin": 1, "staff": "2", "guest": 9},
		"requestSummary": {"totalRequests": 10, "stockIn": "6", "stockOut": null},
		"data": [
			{"id":"u1","name":"Spade","email":"spade@example.com","tel":"0812","role":"ADMIN"},
			{"id":"u2","name":"Nadeem","email":"nadeem@example.com","role":"staff",
			 "requestSummary":{"totalRequests":"4","stockIn":3,"stockOut":1}},
			{"id":"u3","name":"Teamangkorn","email":"team@example.com","role":"owner"}
		]
	}`
	var resp Response
	require.NoError(t, json.Unmarshal([]byte(raw), &resp))

	dir := Normalize(resp)
	assert.Equal(t, 3, dir.Meta.TotalUsers)
	assert.Equal(t, map[auth.Role]int{auth.RoleAdmin: 1, auth.RoleStaff: 2}, dir.Meta.RoleSummary)
	assert.Equal(t, 10, dir.Meta.RequestSummary.TotalRequests.Int())
	assert.Equal(t, 6, dir.Meta.RequestSummary.StockIn.Int())
	assert.Equal(t, 0, dir.Meta.RequestSummary.StockOut.Int())

	require.Len(t, dir.Entries, 3)
	assert.Equal(t, auth.RoleAdmin, dir.Entries[0].Role)
	assert.Equal(t, auth.RoleStaff, dir.Entries[2].Role)
	require.NotNil(t, dir.Entries[1].RequestSummary)
	assert.Equal(t, 4, dir.Entries[1].RequestSummary.TotalRequests.Int())
}

func TestNormalize_CountFallsBackToData(t *testing.T) {
	dir := Normalize(Response{Data: []Entry{{ID: "a"}, {ID: "b"}}})
	assert.Equal(t, 2, dir.Meta.TotalUsers)
	assert.Equal(t, 0, dir.Meta.RoleSummary[auth.RoleAdmin])
}

func TestParseRoleFilter(t *testing.T) {
	r, label := ParseRoleFilter("Admin")
	assert.Equal(t, auth.RoleAdmin, r)
	assert.Equal(t, "admin", label)

	r, label = ParseRoleFilter("everyone")
	assert.Empty(t, r)
	assert.Equal(t, RoleFilterAll, label)
}

func TestSearch(t *testing.T) {
	entries := []Entry{
		{ID: "1", Name: "Spade", Email: "spade@example.com", Role: auth.RoleAdmin, Tel: "081-111"},
		{ID: "2", Name: "Nadeem", Email: "n@corp.io", Role: auth.RoleStaff},
	}
	assert.Len(t, Search(entries, ""), 2)
	assert.Equal(t, "1", Search(entries, "SPADE")[0].ID)
	assert.Equal(t, "2", Search(entries, "corp")[0].ID)
	assert.Equal(t, "2", Search(entries, "staff")[0].ID)
	assert.Equal(t, "1", Search(entries, "081")[0].ID)
	assert.Empty(t, Search(entries, "zzz"))
}
