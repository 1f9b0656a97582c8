package registration

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/cwlroster/internal/dependencies/mocks"
	"github.com/mcoot/cwlroster/internal/model"
	"github.com/mcoot/cwlroster/internal/storage/memory"
	"github.com/mcoot/cwlroster/internal/storage/textfile"
	"github.com/mcoot/cwlroster/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	mirror  *textfile.Mirror
	clock   *mocks.MockClock
	ids     *mocks.MockIDs
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.mirror = textfile.New(filepath.Join(s.T().TempDir(), textfile.DefaultFilename))
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.ids = mocks.NewMockIDs("p")
	s.service = New(s.storage, s.mirror, s.clock, s.ids, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceSuite) register(name, th string) *model.RegisteredPlayer {
	p, err := s.service.Register(s.ctx, name, th)
	s.Require().NoError(err)
	s.clock.Advance(time.Minute)
	return p
}

func (s *ServiceSuite) mirrorContent() string {
	content, err := s.mirror.Read()
	s.Require().NoError(err)
	return content
}

func (s *ServiceSuite) TestRegisterTrimsNameAndNormalisesTownHall() {
	p := s.register("  Ann  ", "TH12")

	s.Equal(model.PlayerID("p-1"), p.ID)
	s.Equal("Ann", p.Name)
	s.Equal(model.TownHallLevel("th12"), p.TownHall)
	s.True(p.RegisteredAt.Equal(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)))

	stored, err := s.service.Get(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Equal(*p, *stored)
	s.Equal("Ann th12\n", s.mirrorContent())
}

func (s *ServiceSuite) TestRegisterRejectsBlankName() {
	_, err := s.service.Register(s.ctx, "   ", "th12")
	s.ErrorIs(err, model.ErrInvalidPlayerName)
	s.ErrorIs(err, model.ErrInvalidInput)

	list, _ := s.service.List(s.ctx)
	s.Empty(list)
	s.Empty(s.mirrorContent())
}

func (s *ServiceSuite) TestRegisterRejectsInvalidTownHall() {
	for _, th := range []string{"", "th0", "th18", "townhall", "12a"} {
		_, err := s.service.Register(s.ctx, "Ann", th)
		s.ErrorIs(err, model.ErrInvalidTownHall, th)
	}
}

func (s *ServiceSuite) TestDuplicateNamesAllowed() {
	a := s.register("Ann", "th12")
	b := s.register("Ann", "th12")

	s.NotEqual(a.ID, b.ID)
	list, err := s.service.List(s.ctx)
	s.Require().NoError(err)
	s.Len(list, 2)
}

func (s *ServiceSuite) TestListInRegistrationOrder() {
	s.register("Ann", "th12")
	s.register("Bob", "th11")
	s.register("Cid", "th10")

	list, err := s.service.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(list, 3)
	s.Equal([]string{"Ann", "Bob", "Cid"}, []string{list[0].Name, list[1].Name, list[2].Name})
}

func (s *ServiceSuite) TestDeleteRewritesMirror() {
	s.register("Ann", "th12")
	bob := s.register("Bob", "th11")
	s.register("Cid", "th10")

	s.Require().NoError(s.service.Delete(s.ctx, bob.ID))

	s.Equal("Ann th12\nCid th10\n", s.mirrorContent())
	_, err := s.service.Get(s.ctx, bob.ID)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *ServiceSuite) TestDeleteUnknownPlayer() {
	s.register("Ann", "th12")

	err := s.service.Delete(s.ctx, "nope")
	s.ErrorIs(err, model.ErrNotFound)
	s.Equal("Ann th12\n", s.mirrorContent())
}

func (s *ServiceSuite) TestClear() {
	s.register("Ann", "th12")
	s.register("Bob", "th11")

	s.Require().NoError(s.service.Clear(s.ctx))

	list, _ := s.service.List(s.ctx)
	s.Empty(list)
	s.Empty(s.mirrorContent())
}

func (s *ServiceSuite) TestStatus() {
	status, err := s.service.Status(s.ctx)
	s.Require().NoError(err)
	s.Equal(0, status.Count)
	s.True(status.IsEmpty)
	s.Equal("memory", status.Storage)
	s.Empty(status.Content)

	s.register("Ann", "th12")
	status, err = s.service.Status(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, status.Count)
	s.False(status.IsEmpty)
	s.Equal("Ann th12\n", status.Content)
}

func (s *ServiceSuite) TestWithoutMirror() {
	svc := New(s.storage, nil, s.clock, s.ids, testutil.NopLogger())

	p, err := svc.Register(s.ctx, "Ann", "th12")
	s.Require().NoError(err)
	s.Require().NoError(svc.Delete(s.ctx, p.ID))
	s.Require().NoError(svc.Clear(s.ctx))

	status, err := svc.Status(s.ctx)
	s.Require().NoError(err)
	s.Empty(status.Content)
}
