package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{int64(-1234567), "-1,234,567"},
		{1500.5, "1,500.5"},
		{2.125, "2.125"},
		{3.0, "3"},
		{"n/a", "n/a"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatNumber(tt.in), "%v", tt.in)
	}
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "0.00", FormatPrice(0))
	assert.Equal(t, "1,299.50", FormatPrice(1299.5))
	assert.Equal(t, "-12.00", FormatPrice(-12))
}

func TestFriendlyDate(t *testing.T) {
	assert.Equal(t, "5 Mar 2025", FriendlyDate("2025-03-05T00:00:00.000Z"))
	assert.Equal(t, "5 Mar 2025", FriendlyDate("2025-03-05"))
	assert.Equal(t, "soon", FriendlyDate("soon"))
	assert.Empty(t, FriendlyDate(nil))
}

func TestInitials(t *testing.T) {
	assert.Equal(t, "AS", Initials("ada smith jones"))
	assert.Equal(t, "B", Initials("bob"))
	assert.Equal(t, "?", Initials("  "))
}

func TestTruncateText(t *testing.T) {
	assert.Equal(t, "hello", TruncateText("hello", 10))
	assert.Equal(t, "hel…", TruncateText("hello", 4))
	assert.Equal(t, "hello", TruncateText("hello", 0))
}

func TestDict(t *testing.T) {
	m, err := Dict("a", 1, "b", "two")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": 1, "b": "two"}, m)

	_, err = Dict("a")
	require.Error(t, err)
	_, err = Dict(1, 2)
	require.Error(t, err)
}
