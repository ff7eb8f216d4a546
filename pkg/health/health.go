// Package health exposes liveness and readiness checks over a registry
// of buffer owners.
package health

import (
	"errors"
	"fmt"

	"github.com/heptiolabs/healthcheck"

	"github.com/srediag/ownedbuf/pkg/registry"
)

// ExportPressureCheck fails when the total number of outstanding exports
// across the registry exceeds maxOutstanding. A persistently failing
// check usually means a consumer is leaking view handles.
func ExportPressureCheck(reg *registry.Registry, maxOutstanding int) healthcheck.Check {
	return func() error {
		if reg == nil {
			return errors.New("health: no registry configured")
		}
		if n := reg.TotalOutstanding(); n > maxOutstanding {
			return fmt.Errorf("health: %d outstanding exports, limit %d", n, maxOutstanding)
		}
		return nil
	}
}

// OwnerIdleCheck fails while the named owner has outstanding exports.
// Useful as a pre-shutdown readiness gate.
func OwnerIdleCheck(reg *registry.Registry, name string) healthcheck.Check {
	return func() error {
		owner, ok := reg.Get(name)
		if !ok {
			return fmt.Errorf("health: owner %q not registered", name)
		}
		if n := owner.ExportStats().Outstanding(); n > 0 {
			return fmt.Errorf("health: owner %q has %d outstanding exports", name, n)
		}
		return nil
	}
}

// RegisterChecks attaches the standard ownedbuf checks to h.
func RegisterChecks(h healthcheck.Handler, reg *registry.Registry, maxOutstanding int) {
	h.AddLivenessCheck("ownedbuf-registry", func() error {
		if reg == nil {
			return errors.New("health: no registry configured")
		}
		return nil
	})
	h.AddReadinessCheck("ownedbuf-export-pressure", ExportPressureCheck(reg, maxOutstanding))
}
