package mem

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegionZeroFilled(t *testing.T) {
	r, err := New(1000)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, 1000, r.Len())
	for i, b := range r.Bytes() {
		if b != 0 {
			t.Fatalf("byte %d not zero: %#x", i, b)
		}
	}
	assert.NoError(t, r.Close())
}

func TestRegionInvalidSize(t *testing.T) {
	_, err := New(0)
	assert.Error(t, err)
	_, err = New(-1)
	assert.Error(t, err)
}

func TestRegionDoubleClose(t *testing.T) {
	r, err := New(64)
	if err != nil {
		t.Fatal(err)
	}
	assert.NoError(t, r.Close())
	assert.ErrorIs(t, r.Close(), ErrRegionClosed)
}

func TestCanAllocate(t *testing.T) {
	// A small request always fits; an absurd one never does.
	assert.Equal(t, true, canAllocate(1))
	assert.Equal(t, false, canAllocate(math.MaxUint64))
}
