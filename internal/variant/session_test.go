package variant

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStartsClosed(t *testing.T) {
	s := NewSession(time.Second)

	state := s.State()
	assert.False(t, state.Open)
	assert.Nil(t, state.Base)
	assert.Nil(t, state.Resolved)
}

func TestOpenSeedsSelectionFromBase(t *testing.T) {
	catalog := roadKingCatalog()
	s := NewSession(time.Second)

	s.Open(catalog[0], catalog)

	state := s.State()
	require.True(t, state.Open)
	assert.Equal(t, Selection{Width: "205", Profile: "55", Diameter: "R16"}, state.Selection)
	require.NotNil(t, state.Resolved, "a product always resolves its own dimensions")
	assert.Equal(t, uint(1), state.Resolved.ID)
	require.NotNil(t, state.Stock)
	assert.Equal(t, LabelLowStock, state.Stock.Label)
	assert.Equal(t, []string{"205", "215"}, state.Widths)
	assert.Equal(t, []string{"55", "60"}, state.Profiles)
	assert.Equal(t, []string{"R16", "R17"}, state.Diameters)
}

func TestEditDimensionRederivesResolution(t *testing.T) {
	catalog := roadKingCatalog()
	s := NewSession(time.Second)
	s.Open(catalog[0], catalog)

	// switching width alone crosses sub-variants: no variant carries
	// (215, 55, R16), so resolution goes away
	require.NoError(t, s.EditDimension(DimensionWidth, "215"))

	state := s.State()
	assert.Equal(t, Selection{Width: "215", Profile: "55", Diameter: "R16"}, state.Selection)
	assert.Nil(t, state.Resolved)
	assert.Nil(t, state.Stock)

	// completing the triple resolves the second variant
	require.NoError(t, s.EditDimension(DimensionProfile, "60"))
	require.NoError(t, s.EditDimension(DimensionDiameter, "R17"))

	state = s.State()
	require.NotNil(t, state.Resolved)
	assert.Equal(t, uint(2), state.Resolved.ID)
	assert.Equal(t, LabelOutOfStock, state.Stock.Label)
}

func TestEditDimensionErrors(t *testing.T) {
	catalog := roadKingCatalog()
	s := NewSession(time.Second)

	assert.ErrorIs(t, s.EditDimension(DimensionWidth, "205"), ErrClosed)

	s.Open(catalog[0], catalog)
	assert.ErrorIs(t, s.EditDimension(Dimension("radius"), "205"), ErrUnknownDimension)
}

func TestReopenFullyReplacesSelection(t *testing.T) {
	catalog := roadKingCatalog()
	s := NewSession(time.Second)

	s.Open(catalog[0], catalog)
	require.NoError(t, s.EditDimension(DimensionWidth, "215"))

	// reopening on another product must not carry any field over
	s.Open(catalog[2], catalog)

	state := s.State()
	assert.Equal(t, Selection{Width: "235", Profile: "75", Diameter: "R15"}, state.Selection)
	assert.Equal(t, "Trail Max", state.Base.Name)
	assert.False(t, state.Added)
}

func TestCloseClearsEverything(t *testing.T) {
	catalog := roadKingCatalog()
	s := NewSession(time.Second)
	s.Open(catalog[0], catalog)

	s.Close()

	state := s.State()
	assert.False(t, state.Open)
	assert.Equal(t, Selection{}, state.Selection)
	assert.Nil(t, state.Base)
}

func TestEmptyGroupLeavesActionsDisabled(t *testing.T) {
	// defensive: a base outside the supplied catalog yields an empty group
	s := NewSession(time.Second)
	s.Open(tire(9, "Ghost", "None", "205", "55", "R16", 50, 5), nil)

	state := s.State()
	assert.True(t, state.Open)
	assert.Empty(t, state.Widths)
	assert.Empty(t, state.Profiles)
	assert.Empty(t, state.Diameters)
	assert.Nil(t, state.Resolved)
	assert.Nil(t, s.orderable())
}

func TestConfirmFlagSelfClearsAndCloses(t *testing.T) {
	catalog := roadKingCatalog()
	s := NewSession(20 * time.Millisecond)
	s.Open(catalog[0], catalog)

	s.confirmAdded()
	assert.True(t, s.State().Added)

	assert.Eventually(t, func() bool {
		return !s.State().Open
	}, time.Second, 5*time.Millisecond, "session should close after the confirmation TTL")
	assert.False(t, s.State().Added)
}

func TestStaleConfirmTimerIsNoOp(t *testing.T) {
	catalog := roadKingCatalog()
	s := NewSession(20 * time.Millisecond)
	s.Open(catalog[0], catalog)
	s.confirmAdded()

	// reopen before the timer fires: the old timer belongs to a dead
	// session lifetime and must not close the new one
	s.Open(catalog[2], catalog)

	time.Sleep(60 * time.Millisecond)

	state := s.State()
	assert.True(t, state.Open, "stale timer must not close the reopened session")
	assert.Equal(t, "Trail Max", state.Base.Name)
	assert.False(t, state.Added)
}

func TestConfirmAddedOnClosedSessionIsNoOp(t *testing.T) {
	s := NewSession(10 * time.Millisecond)
	s.confirmAdded()
	assert.False(t, s.State().Added)
}
