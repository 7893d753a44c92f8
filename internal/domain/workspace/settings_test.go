package workspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	d := Defaults()
	assert.Equal(t, "Dream Team Inventory", d.General.WorkspaceName)
	assert.Equal(t, "INV-", d.General.InventoryPrefix)
	assert.Len(t, d.Toggles, len(AllToggleKeys()))
	for _, k := range AllToggleKeys() {
		_, ok := d.Toggles[k]
		assert.True(t, ok, "default for %s", k)
	}
	require.NoError(t, d.Validate())
}

func TestNormalize_FillsTogglesAndDropsUnknown(t *testing.T) {
	s := Settings{
		General: General{WorkspaceName: "  Ops  "},
		Toggles: Toggles{ToggleCompactSidebar: true, ToggleKey("rogue"): true},
	}
	n := s.Normalize()
	assert.Equal(t, "Ops", n.General.WorkspaceName)
	assert.True(t, n.Toggles[ToggleCompactSidebar])
	assert.True(t, n.Toggles[ToggleAutoBackups])
	_, ok := n.Toggles[ToggleKey("rogue")]
	assert.False(t, ok)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		mut   func(*General)
		field string
		err   error
	}{
		{"name", func(g *General) { g.WorkspaceName = " " }, "workspaceName", ErrWorkspaceNameRequired},
		{"email missing", func(g *General) { g.SupportEmail = "" }, "supportEmail", ErrSupportEmailRequired},
		{"email invalid", func(g *General) { g.SupportEmail = "not-an-email" }, "supportEmail", ErrSupportEmailInvalid},
		{"email with display name", func(g *General) { g.SupportEmail = "Ops <ops@example.com>" }, "supportEmail", ErrSupportEmailInvalid},
		{"timezone", func(g *General) { g.Timezone = "Mars/Olympus" }, "timezone", ErrUnknownOption},
		{"release channel", func(g *General) { g.ReleaseChannel = "nightly" }, "releaseChannel", ErrUnknownOption},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Defaults()
			tt.mut(&s.General)
			err := s.Validate()
			var fe *FieldError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.field, fe.Field)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}
