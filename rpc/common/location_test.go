package common

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

// TestMasterLocation tests the fixed identity of master
func TestMasterLocation(t *testing.T) {
	assert.NoError(t, Master.Validate())
	assert.Equal(t, "live/system/master/master", Master.String())
	assert.Equal(t, CategorySystem, Master.Category)
}

// TestLocationEquality tests that locations compare structurally
func TestLocationEquality(t *testing.T) {
	a, err := NewLocation(ModeLive, CategoryMD, "xtp", "xtp")
	require.NoError(t, err)
	b := Location{Mode: ModeLive, Category: CategoryMD, Group: "xtp", Name: "xtp"}
	assert.Equal(t, a, b)
	assert.True(t, a == b)

	b.Mode = ModeReplay
	assert.False(t, a == b)
}

// TestNamesParseBack tests the textual names of modes and categories
func TestNamesParseBack(t *testing.T) {
	for m, name := range modeNames {
		parsed, err := ParseMode(name)
		require.NoError(t, err)
		assert.Equal(t, m, parsed)
		assert.Equal(t, name, m.String())
	}
	for c, name := range categoryNames {
		parsed, err := ParseCategory(name)
		require.NoError(t, err)
		assert.Equal(t, c, parsed)
		assert.Equal(t, name, c.String())
	}

	_, err := ParseMode("paper")
	assert.ErrorIs(t, err, ErrAddressResolution)
	_, err = ParseCategory("risk")
	assert.ErrorIs(t, err, ErrAddressResolution)
	assert.Equal(t, "Category(9)", Category(9).String())
}

// TestValidate tests rejection of malformed locations
func TestValidate(t *testing.T) {
	_, err := NewLocation(ModeLive, CategoryTD, "", "acc")
	assert.ErrorIs(t, err, ErrAddressResolution)
	_, err = NewLocation(ModeLive, CategoryTD, "ctp", "a/b")
	assert.ErrorIs(t, err, ErrAddressResolution)
	_, err = NewLocation(Mode(7), CategoryTD, "ctp", "acc")
	assert.ErrorIs(t, err, ErrAddressResolution)
}

// TestHeartbeat tests the heartbeat classification boundary
func TestHeartbeat(t *testing.T) {
	assert.Len(t, Heartbeat, HeartbeatLen)
	assert.False(t, IsNotice(Heartbeat))
	assert.False(t, IsNotice(nil))
	assert.False(t, IsNotice([]byte("ab")))
	assert.True(t, IsNotice([]byte("abc")))
}
