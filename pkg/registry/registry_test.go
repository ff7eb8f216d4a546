package registry

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/srediag/ownedbuf/pkg/ownedbuf"
)

type RegistryTestSuite struct {
	suite.Suite
	reg *Registry
}

func (s *RegistryTestSuite) SetupTest() {
	s.reg = New()
}

func (s *RegistryTestSuite) TestCreateAndGet() {
	owner, err := s.reg.Create("frames", 1000)
	s.Require().NoError(err)
	s.Require().Equal(1, s.reg.Len())

	got, ok := s.reg.Get("frames")
	s.Require().True(ok)
	s.Require().Same(owner, got)

	_, ok = s.reg.Get("missing")
	s.Require().False(ok)

	s.Require().NoError(s.reg.CloseAll())
}

func (s *RegistryTestSuite) TestDuplicateName() {
	_, err := s.reg.Create("dup", 64)
	s.Require().NoError(err)
	_, err = s.reg.Create("dup", 64)
	s.Require().Error(err)
	s.Require().Equal(1, s.reg.Len())
	s.Require().NoError(s.reg.CloseAll())
}

func (s *RegistryTestSuite) TestRemove() {
	_, err := s.reg.Create("gone", 64)
	s.Require().NoError(err)
	s.Require().NoError(s.reg.Remove("gone"))
	s.Require().Equal(0, s.reg.Len())
	s.Require().ErrorIs(s.reg.Remove("gone"), ErrNotFound)
}

func (s *RegistryTestSuite) TestRemoveWithOutstandingExport() {
	owner, err := s.reg.Create("busy", 64)
	s.Require().NoError(err)
	r, err := ownedbuf.NewImmutableView(owner)
	s.Require().NoError(err)

	s.Require().Error(s.reg.Remove("busy"))
	s.Require().Equal(1, s.reg.Len())

	r.Close()
	s.Require().NoError(s.reg.Remove("busy"))
}

func (s *RegistryTestSuite) TestTotalOutstanding() {
	a, err := s.reg.Create("a", 64)
	s.Require().NoError(err)
	b, err := s.reg.Create("b", 64)
	s.Require().NoError(err)

	ra, err := ownedbuf.NewImmutableView(a)
	s.Require().NoError(err)
	wb, err := ownedbuf.NewMutableView(b)
	s.Require().NoError(err)
	s.Require().Equal(2, s.reg.TotalOutstanding())

	ra.Close()
	wb.Close()
	s.Require().Equal(0, s.reg.TotalOutstanding())
	s.Require().NoError(s.reg.CloseAll())
}

func (s *RegistryTestSuite) TestCloseAllSkipsBusyOwners() {
	busy, err := s.reg.Create("busy", 64)
	s.Require().NoError(err)
	_, err = s.reg.Create("idle", 64)
	s.Require().NoError(err)

	r, err := ownedbuf.NewImmutableView(busy)
	s.Require().NoError(err)

	s.Require().Error(s.reg.CloseAll())
	s.Require().Equal(1, s.reg.Len())

	r.Close()
	s.Require().NoError(s.reg.CloseAll())
	s.Require().Equal(0, s.reg.Len())
}

func TestRegistryTestSuite(t *testing.T) {
	suite.Run(t, new(RegistryTestSuite))
}
