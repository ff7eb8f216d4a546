package ownedbuf

import (
	"github.com/srediag/ownedbuf/api"
)

// View is a non-owning window into an Owner's backing region, granted by
// Export and consumed by Release. A View must not outlive its Owner; the
// handle types below keep a reference to the owner so the region cannot
// be collected while a view is live.
type View struct {
	owner *Owner
	data  []byte
	mode  ExportMode
	// stride is the distance in bytes between consecutive elements.
	// Owners always grant stride 1; anything else is a non-contiguous
	// layout the handle types refuse to wrap.
	stride int
	// released guards against double release.
	released bool
}

var _ api.ExportedView = (*View)(nil)

// Bytes returns the viewed region. Holders of a shared view must not
// mutate it.
func (v *View) Bytes() []byte { return v.data }

// Mode reports the mode the view was granted with.
func (v *View) Mode() ExportMode { return v.mode }

// Contiguous reports whether the view is one flat run of bytes.
func (v *View) Contiguous() bool { return v.stride == 1 }

// Release returns the export to the owner. Releasing a view twice is a
// contract violation and panics.
func (v *View) Release() { v.owner.release(v) }

// snapshot copies out the viewed bytes. Reading through a released view
// is a contract violation: the export it belonged to may already have
// been regranted.
func (v *View) snapshot() []byte {
	if v.released {
		panic("ownedbuf: snapshot of released view")
	}
	out := make([]byte, len(v.data))
	copy(out, v.data)
	return out
}

// ImmutableView holds one shared export for its lifetime. Any number of
// ImmutableViews may be open over the same owner at once.
type ImmutableView struct {
	view *View
}

var _ api.Snapshotter = (*ImmutableView)(nil)

// NewImmutableView acquires a shared export from owner. Contention and
// layout failures are returned unchanged from the owner; on a layout
// failure the just-acquired export is released before returning, so no
// export is left dangling.
func NewImmutableView(owner *Owner) (*ImmutableView, error) {
	v, err := owner.Export(ModeShared)
	if err != nil {
		return nil, err
	}
	return wrapImmutable(v)
}

func wrapImmutable(v *View) (*ImmutableView, error) {
	if !v.Contiguous() {
		v.Release()
		return nil, ErrUnsupportedLayout
	}
	return &ImmutableView{view: v}, nil
}

// Snapshot returns a copy of the viewed region.
func (h *ImmutableView) Snapshot() []byte { return h.view.snapshot() }

// Len returns the viewed region's size in bytes.
func (h *ImmutableView) Len() int { return len(h.view.data) }

// Close releases the held export. Close must be called exactly once;
// a second call panics.
func (h *ImmutableView) Close() { h.view.Release() }

// MutableView holds the exclusive export for its lifetime. At most one
// MutableView can be open over an owner, and only while no ImmutableView
// is.
type MutableView struct {
	view *View
}

var _ api.Snapshotter = (*MutableView)(nil)

// NewMutableView acquires the exclusive export from owner, with the same
// layout validation and dangling-export avoidance as NewImmutableView.
func NewMutableView(owner *Owner) (*MutableView, error) {
	v, err := owner.Export(ModeExclusive)
	if err != nil {
		return nil, err
	}
	return wrapMutable(v)
}

func wrapMutable(v *View) (*MutableView, error) {
	if !v.Contiguous() {
		v.Release()
		return nil, ErrUnsupportedLayout
	}
	return &MutableView{view: v}, nil
}

// Snapshot returns a copy of the viewed region.
func (h *MutableView) Snapshot() []byte { return h.view.snapshot() }

// Len returns the viewed region's size in bytes.
func (h *MutableView) Len() int { return len(h.view.data) }

// SetByte writes value in place at index. The write lands in the owner's
// backing region and is visible to every later snapshot.
func (h *MutableView) SetByte(index int, value byte) error {
	if h.view.released {
		panic("ownedbuf: write through released view")
	}
	if index < 0 || index >= len(h.view.data) {
		return ErrIndexOutOfRange
	}
	h.view.data[index] = value
	return nil
}

// Close releases the held export. Close must be called exactly once;
// a second call panics.
func (h *MutableView) Close() { h.view.Release() }
