// Package storagetest holds the behaviour every storage backend must share.
// Backend packages embed Suite in their own test suites.
package storagetest

import (
	"context"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/cwlroster/internal/model"
	"github.com/mcoot/cwlroster/internal/storage"
)

// Suite runs the storage contract against the backend returned by Open
type Suite struct {
	suite.Suite

	// Open returns a fresh, empty backend for each test
	Open func() storage.Storage

	Store storage.Storage
	Ctx   context.Context
	base  time.Time
}

func (s *Suite) SetupTest() {
	s.Store = s.Open()
	s.Ctx = context.Background()
	s.base = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
}

func (s *Suite) TearDownTest() {
	if s.Store != nil {
		_ = s.Store.Close()
	}
}

func (s *Suite) player(id, name string, offset time.Duration) *model.RegisteredPlayer {
	return &model.RegisteredPlayer{
		ID:           model.PlayerID(id),
		Name:         name,
		TownHall:     "th12",
		RegisteredAt: s.base.Add(offset),
	}
}

// Registration tests

func (s *Suite) TestSaveAndGetRegistration() {
	p := s.player("p1", "Ann", 0)
	s.Require().NoError(s.Store.SaveRegistration(s.Ctx, p))

	got, err := s.Store.GetRegistration(s.Ctx, "p1")
	s.Require().NoError(err)
	s.Equal(p.Name, got.Name)
	s.Equal(p.TownHall, got.TownHall)
	s.True(p.RegisteredAt.Equal(got.RegisteredAt))
}

func (s *Suite) TestGetRegistrationNotFound() {
	_, err := s.Store.GetRegistration(s.Ctx, "missing")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *Suite) TestListRegistrationsInRegistrationOrder() {
	s.Require().NoError(s.Store.SaveRegistration(s.Ctx, s.player("late", "Cy", 2*time.Minute)))
	s.Require().NoError(s.Store.SaveRegistration(s.Ctx, s.player("early", "Ann", 0)))
	s.Require().NoError(s.Store.SaveRegistration(s.Ctx, s.player("middle", "Bo", time.Minute)))

	list, err := s.Store.ListRegistrations(s.Ctx)
	s.Require().NoError(err)
	s.Require().Len(list, 3)
	s.Equal(model.PlayerID("early"), list[0].ID)
	s.Equal(model.PlayerID("middle"), list[1].ID)
	s.Equal(model.PlayerID("late"), list[2].ID)
}

func (s *Suite) TestListRegistrationsAllowsDuplicateNames() {
	s.Require().NoError(s.Store.SaveRegistration(s.Ctx, s.player("a", "Ann", 0)))
	s.Require().NoError(s.Store.SaveRegistration(s.Ctx, s.player("b", "Ann", time.Second)))

	list, err := s.Store.ListRegistrations(s.Ctx)
	s.Require().NoError(err)
	s.Len(list, 2)
}

func (s *Suite) TestListRegistrationsEmpty() {
	list, err := s.Store.ListRegistrations(s.Ctx)
	s.Require().NoError(err)
	s.Empty(list)
}

func (s *Suite) TestDeleteRegistration() {
	s.Require().NoError(s.Store.SaveRegistration(s.Ctx, s.player("p1", "Ann", 0)))
	s.Require().NoError(s.Store.SaveRegistration(s.Ctx, s.player("p2", "Bo", time.Second)))

	s.Require().NoError(s.Store.DeleteRegistration(s.Ctx, "p1"))

	_, err := s.Store.GetRegistration(s.Ctx, "p1")
	s.ErrorIs(err, model.ErrPlayerNotFound)
	list, _ := s.Store.ListRegistrations(s.Ctx)
	s.Len(list, 1)

	s.ErrorIs(s.Store.DeleteRegistration(s.Ctx, "p1"), model.ErrPlayerNotFound)
}

func (s *Suite) TestClearRegistrations() {
	s.Require().NoError(s.Store.SaveRegistration(s.Ctx, s.player("p1", "Ann", 0)))
	s.Require().NoError(s.Store.SaveRegistration(s.Ctx, s.player("p2", "Bo", time.Second)))

	s.Require().NoError(s.Store.ClearRegistrations(s.Ctx))

	list, err := s.Store.ListRegistrations(s.Ctx)
	s.Require().NoError(err)
	s.Empty(list)
}

// Clan tests

func (s *Suite) TestSaveListDeleteClans() {
	a := &model.Clan{
		ClanDefinition: model.ClanDefinition{ID: "a", Name: "Eclipse", Capacity: 15, League: model.LeagueGold},
		CreatedAt:      s.base,
	}
	b := &model.Clan{
		ClanDefinition: model.ClanDefinition{ID: "b", Name: "Nova", Capacity: 5, League: model.LeagueSilver},
		CreatedAt:      s.base.Add(time.Minute),
	}
	s.Require().NoError(s.Store.SaveClan(s.Ctx, a))
	s.Require().NoError(s.Store.SaveClan(s.Ctx, b))

	clans, err := s.Store.ListClans(s.Ctx)
	s.Require().NoError(err)
	s.Require().Len(clans, 2)
	s.Equal("Eclipse", clans[0].Name)
	s.Equal(15, clans[0].Capacity)
	s.Equal(model.LeagueSilver, clans[1].League)

	s.Require().NoError(s.Store.DeleteClan(s.Ctx, "a"))
	clans, _ = s.Store.ListClans(s.Ctx)
	s.Len(clans, 1)
	s.ErrorIs(s.Store.DeleteClan(s.Ctx, "a"), model.ErrClanNotFound)
}

// Message tests

func (s *Suite) TestMessagesNewestFirst() {
	for i, content := range []string{"first", "second", "third"} {
		msg := &model.CwlMessage{
			ID:        model.MessageID(content),
			Content:   content,
			CreatedAt: s.base.Add(time.Duration(i) * time.Minute),
		}
		s.Require().NoError(s.Store.SaveMessage(s.Ctx, msg))
	}

	all, err := s.Store.ListMessages(s.Ctx, 0)
	s.Require().NoError(err)
	s.Require().Len(all, 3)
	s.Equal("third", all[0].Content)
	s.Equal("first", all[2].Content)

	latest, err := s.Store.ListMessages(s.Ctx, 1)
	s.Require().NoError(err)
	s.Require().Len(latest, 1)
	s.Equal("third", latest[0].Content)
}

// Clan configuration tests

func (s *Suite) TestClanConfiguration() {
	_, err := s.Store.GetClanConfiguration(s.Ctx)
	s.ErrorIs(err, model.ErrConfigurationNotFound)

	cfg := model.DefaultClanConfiguration()
	cfg.WinRate = 90
	s.Require().NoError(s.Store.SaveClanConfiguration(s.Ctx, &cfg))

	got, err := s.Store.GetClanConfiguration(s.Ctx)
	s.Require().NoError(err)
	s.Equal(cfg, *got)

	cfg.ClanName = "Renamed"
	s.Require().NoError(s.Store.SaveClanConfiguration(s.Ctx, &cfg))
	got, _ = s.Store.GetClanConfiguration(s.Ctx)
	s.Equal("Renamed", got.ClanName)
}
