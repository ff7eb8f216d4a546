package ownedbuf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOwner(t *testing.T) *Owner {
	t.Helper()
	owner, err := New(64)
	require.NoError(t, err)
	return owner
}

func TestViewAccessors(t *testing.T) {
	owner := newTestOwner(t)
	v, err := owner.Export(ModeShared)
	require.NoError(t, err)

	assert.Equal(t, 64, len(v.Bytes()))
	assert.Equal(t, ModeShared, v.Mode())
	assert.True(t, v.Contiguous())

	v.Release()
	require.NoError(t, owner.Close())
}

func TestNonContiguousViewRejected(t *testing.T) {
	owner := newTestOwner(t)

	v, err := owner.Export(ModeShared)
	require.NoError(t, err)
	v.stride = 2
	_, err = wrapImmutable(v)
	assert.ErrorIs(t, err, ErrUnsupportedLayout)
	// The rejected export must have been released, not leaked.
	assert.Equal(t, 0, owner.ExportStats().Outstanding())

	v, err = owner.Export(ModeExclusive)
	require.NoError(t, err)
	v.stride = 2
	_, err = wrapMutable(v)
	assert.ErrorIs(t, err, ErrUnsupportedLayout)
	assert.Equal(t, 0, owner.ExportStats().Outstanding())

	require.NoError(t, owner.Close())
}

func TestSnapshotIsACopy(t *testing.T) {
	owner := newTestOwner(t)
	w, err := NewMutableView(owner)
	require.NoError(t, err)

	require.NoError(t, w.SetByte(3, 0xAB))
	snap := w.Snapshot()
	require.NoError(t, w.SetByte(3, 0xCD))

	// The earlier snapshot must not observe the later write.
	assert.Equal(t, byte(0xAB), snap[3])
	assert.Equal(t, byte(0xCD), w.Snapshot()[3])

	w.Close()
	require.NoError(t, owner.Close())
}

func TestUseAfterReleasePanics(t *testing.T) {
	owner := newTestOwner(t)

	w, err := NewMutableView(owner)
	require.NoError(t, err)
	w.Close()
	assert.Panics(t, func() { _ = w.Snapshot() })
	assert.Panics(t, func() { _ = w.SetByte(0, 1) })

	r, err := NewImmutableView(owner)
	require.NoError(t, err)
	r.Close()
	assert.Panics(t, func() { _ = r.Snapshot() })

	require.NoError(t, owner.Close())
}

func TestDoubleViewReleasePanics(t *testing.T) {
	owner := newTestOwner(t)
	v, err := owner.Export(ModeExclusive)
	require.NoError(t, err)
	v.Release()
	assert.Panics(t, func() { v.Release() })
	require.NoError(t, owner.Close())
}

func TestHandleLen(t *testing.T) {
	owner := newTestOwner(t)
	r, err := NewImmutableView(owner)
	require.NoError(t, err)
	assert.Equal(t, 64, r.Len())
	r.Close()

	w, err := NewMutableView(owner)
	require.NoError(t, err)
	assert.Equal(t, 64, w.Len())
	w.Close()

	require.NoError(t, owner.Close())
}
