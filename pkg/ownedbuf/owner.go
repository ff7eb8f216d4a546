package ownedbuf

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/srediag/ownedbuf/api"
	"github.com/srediag/ownedbuf/internal/mem"
)

// ExportMode is re-exported from api so that callers of this package do
// not need a second import.
type ExportMode = api.ExportMode

const (
	ModeShared    = api.ModeShared
	ModeExclusive = api.ModeExclusive
)

// DefaultSize is the backing region size used by the examples and the
// modeled system.
const DefaultSize = 1000

// Owner holds a fixed-size byte region and the export bookkeeping for it.
// All state transitions happen under one mutex, so concurrent callers see
// each Export and Release as atomic.
type Owner struct {
	mu     sync.Mutex
	region *mem.Region
	state  exportState
	closed bool

	sink   EventSink
	tracer trace.Tracer

	// OTel instruments, nil unless WithMeter was given.
	otelExports metric.Int64Counter
	otelActive  metric.Int64UpDownCounter
}

var _ api.StatsProvider = (*Owner)(nil)

// New allocates an owner over a zero-filled region of the given size. The
// size is fixed for the owner's lifetime.
func New(size int, opts ...Option) (*Owner, error) {
	var cfg options
	for _, opt := range opts {
		opt(&cfg)
	}
	region, err := mem.New(size)
	if err != nil {
		return nil, fmt.Errorf("ownedbuf: %w", err)
	}
	o := &Owner{
		region: region,
		sink:   cfg.sink,
		tracer: cfg.tracer,
	}
	if cfg.meter != nil {
		o.otelExports, err = cfg.meter.Int64Counter("ownedbuf.exports",
			metric.WithDescription("Export requests, by mode and outcome."))
		if err != nil {
			internalLogger.warnf("create exports counter: %v", err)
		}
		o.otelActive, err = cfg.meter.Int64UpDownCounter("ownedbuf.active_exports",
			metric.WithDescription("Currently outstanding exports."))
		if err != nil {
			internalLogger.warnf("create active_exports counter: %v", err)
		}
	}
	return o, nil
}

// Len returns the fixed size of the backing region in bytes.
func (o *Owner) Len() int { return o.region.Len() }

// ExportStats returns a point-in-time copy of the export bookkeeping.
func (o *Owner) ExportStats() api.ExportStats {
	o.mu.Lock()
	defer o.mu.Unlock()
	return api.ExportStats{
		SharedExports:   o.state.sharedExports(),
		ExclusiveExport: o.state.exclusiveExport(),
	}
}

// Export grants a view over the full region in the requested mode, or
// fails immediately. It never waits for a conflicting export to be
// released; on contention the caller decides whether to retry.
func (o *Owner) Export(mode ExportMode) (*View, error) {
	var span trace.Span
	if o.tracer != nil {
		_, span = o.tracer.Start(context.Background(), "ownedbuf.Export",
			trace.WithAttributes(attribute.String("mode", mode.String())))
		defer span.End()
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if err := o.checkExportLocked(mode); err != nil {
		if span != nil {
			span.SetStatus(codes.Error, err.Error())
		}
		return nil, err
	}

	if mode == ModeExclusive {
		o.state.grantExclusive()
	} else {
		o.state.grantShared()
	}

	exportsGrantedTotal.WithLabelValues(mode.String()).Inc()
	activeExports.Inc()
	if o.otelExports != nil {
		o.otelExports.Add(context.Background(), 1,
			metric.WithAttributes(attribute.String("mode", mode.String())))
	}
	if o.otelActive != nil {
		o.otelActive.Add(context.Background(), 1)
	}
	o.recordLocked(EventGranted, mode)
	internalLogger.tracef("granted %s export, shared=%d exclusive=%v",
		mode, o.state.sharedExports(), o.state.exclusiveExport())

	return &View{
		owner:  o,
		data:   o.region.Bytes(),
		mode:   mode,
		stride: 1,
	}, nil
}

// checkExportLocked applies the grant preconditions in their fixed order:
// an outstanding exclusive export blocks everything, shared readers block
// an exclusive request, and the mode must name exactly one access kind.
func (o *Owner) checkExportLocked(mode ExportMode) error {
	if o.closed {
		o.denyLocked(mode, denyReasonOwnerClosed)
		return ErrOwnerClosed
	}
	if o.state.exclusiveExport() {
		o.denyLocked(mode, denyReasonExclusiveActive)
		return ErrAlreadyExclusivelyExported
	}
	if mode&ModeExclusive != 0 && o.state.sharedExports() > 0 {
		o.denyLocked(mode, denyReasonSharedActive)
		return ErrIncompatibleWithSharedExports
	}
	if mode != ModeShared && mode != ModeExclusive {
		o.denyLocked(mode, denyReasonInvalidMode)
		return ErrInvalidExportMode
	}
	return nil
}

func (o *Owner) denyLocked(mode ExportMode, reason string) {
	exportsDeniedTotal.WithLabelValues(reason).Inc()
	o.recordLocked(EventDenied, mode)
}

// release consumes the view. Called from View.Release only.
func (o *Owner) release(v *View) {
	var span trace.Span
	if o.tracer != nil {
		_, span = o.tracer.Start(context.Background(), "ownedbuf.Release",
			trace.WithAttributes(attribute.String("mode", v.mode.String())))
		defer span.End()
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if v.released {
		panic("ownedbuf: view released twice")
	}
	v.released = true

	if v.mode == ModeExclusive {
		o.state.releaseExclusive()
	} else {
		o.state.releaseShared()
	}

	exportsReleasedTotal.WithLabelValues(v.mode.String()).Inc()
	activeExports.Dec()
	if o.otelActive != nil {
		o.otelActive.Add(context.Background(), -1)
	}
	o.recordLocked(EventReleased, v.mode)
	internalLogger.tracef("released %s export, shared=%d exclusive=%v",
		v.mode, o.state.sharedExports(), o.state.exclusiveExport())
}

func (o *Owner) recordLocked(kind EventKind, mode ExportMode) {
	if o.sink == nil {
		return
	}
	o.sink.Record(Event{
		Kind:          kind,
		Mode:          mode,
		SharedExports: o.state.sharedExports(),
		Exclusive:     o.state.exclusiveExport(),
		When:          time.Now(),
	})
}

// Close releases the backing region. Closing twice is a no-op. Closing
// while exports are outstanding means a consumer leaked a view; the
// region would be reclaimed out from under a live borrower, so this
// panics after a diagnostic instead of returning an ordinary error.
func (o *Owner) Close() error {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return nil
	}
	if !o.state.idle() {
		shared, exclusive := o.state.sharedExports(), o.state.exclusiveExport()
		o.mu.Unlock()
		leaksDetectedTotal.Inc()
		internalLogger.errorf("owner closed with exported buffers: shared=%d exclusive=%v",
			shared, exclusive)
		panic("ownedbuf: owner closed with exported buffers")
	}
	o.closed = true
	o.mu.Unlock()
	return o.region.Close()
}
