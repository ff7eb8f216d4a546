package ownedbuf

// exportState is the owner's export bookkeeping, modeled as a tagged
// variant so that "exclusive while shared readers exist" has no
// representation. readers is meaningful only in stateShared and is
// always >= 1 there.
type exportState struct {
	kind    stateKind
	readers int
}

type stateKind uint8

const (
	stateIdle stateKind = iota
	stateShared
	stateExclusive
)

func (s *exportState) idle() bool { return s.kind == stateIdle }

func (s *exportState) sharedExports() int {
	if s.kind == stateShared {
		return s.readers
	}
	return 0
}

func (s *exportState) exclusiveExport() bool { return s.kind == stateExclusive }

// The transition methods panic on a transition the owner's checks should
// have made unreachable. Such a panic signals a bug in ownedbuf itself or
// a collaborator bypassing the owner, not a recoverable condition.

func (s *exportState) grantShared() {
	switch s.kind {
	case stateIdle:
		s.kind = stateShared
		s.readers = 1
	case stateShared:
		s.readers++
	default:
		panic("ownedbuf: shared grant while exclusively exported")
	}
}

func (s *exportState) grantExclusive() {
	if s.kind != stateIdle {
		panic("ownedbuf: exclusive grant while exports outstanding")
	}
	s.kind = stateExclusive
}

func (s *exportState) releaseShared() {
	if s.kind != stateShared {
		panic("ownedbuf: shared release without shared exports")
	}
	s.readers--
	if s.readers == 0 {
		s.kind = stateIdle
	}
}

func (s *exportState) releaseExclusive() {
	if s.kind != stateExclusive {
		panic("ownedbuf: exclusive release without exclusive export")
	}
	s.kind = stateIdle
}
