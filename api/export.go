// Package api defines public API contracts for ownedbuf.
package api

// ExportMode selects the access mode requested from a buffer owner.
// Exactly one of ModeShared or ModeExclusive must be set in a request.
type ExportMode uint32

const (
	// ModeShared requests a read-only view that may coexist with other
	// shared views.
	ModeShared ExportMode = 1 << iota
	// ModeExclusive requests the single mutable view. It is incompatible
	// with any other outstanding export.
	ModeExclusive
)

// String returns the conventional name of the mode for logs and metrics.
func (m ExportMode) String() string {
	switch m {
	case ModeShared:
		return "shared"
	case ModeExclusive:
		return "exclusive"
	default:
		return "invalid"
	}
}

// ExportedView is a non-owning window into an exporter's backing region.
type ExportedView interface {
	// Bytes returns the viewed region. Holders of a shared view must not
	// mutate it.
	Bytes() []byte
	// Mode reports the mode the view was granted with.
	Mode() ExportMode
	// Release returns the export to its owner. A view can be released
	// exactly once.
	Release()
}

// Snapshotter is implemented by view handles that can copy out the viewed
// bytes.
type Snapshotter interface {
	Snapshot() []byte
}

// ExportStats is a point-in-time observation of an owner's export
// bookkeeping.
type ExportStats struct {
	// SharedExports is the number of live shared views.
	SharedExports int
	// ExclusiveExport reports whether the mutable view is outstanding.
	ExclusiveExport bool
}

// Outstanding returns the total number of live exports.
func (s ExportStats) Outstanding() int {
	if s.ExclusiveExport {
		return 1
	}
	return s.SharedExports
}

// StatsProvider is implemented by owners that expose their export
// bookkeeping for health checks and monitoring.
type StatsProvider interface {
	ExportStats() ExportStats
}
