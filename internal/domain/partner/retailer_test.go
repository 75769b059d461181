package partner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRetailer(t *testing.T) {
	r, err := NewRetailer("Sri Lakshmi Stores", "12 Bazaar St, Madurai", "9876543210", "33AAACB1234C1Z5")
	require.NoError(t, err)

	assert.Equal(t, "Sri Lakshmi Stores", r.Name)
	assert.Equal(t, "33AAACB1234C1Z5", r.GSTIN)
	assert.True(t, r.Active)
}

func TestNewRetailer_Validation(t *testing.T) {
	_, err := NewRetailer("", "addr", "phone", "")
	assert.Error(t, err)

	_, err = NewRetailer("Shop", "addr", "phone", "short-gstin")
	assert.Error(t, err)
}

func TestRetailer_Snapshot(t *testing.T) {
	r, err := NewRetailer("Shop", "Old Address", "111", "")
	require.NoError(t, err)

	snap := r.Snapshot()
	r.UpdateContact("New Address", "222")

	// A snapshot is a copy, not a live reference.
	assert.Equal(t, "Old Address", snap.Address)
	assert.Equal(t, "111", snap.Phone)
	assert.Equal(t, "New Address", r.Address)
}

func TestRetailer_UpdateGSTIN(t *testing.T) {
	r, err := NewRetailer("Shop", "addr", "phone", "")
	require.NoError(t, err)

	require.NoError(t, r.UpdateGSTIN("33AAACB1234C1Z5"))
	assert.Equal(t, "33AAACB1234C1Z5", r.GSTIN)

	assert.Error(t, r.UpdateGSTIN("bad"))
}
