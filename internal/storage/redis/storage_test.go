package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/cwlroster/internal/model"
	"github.com/mcoot/cwlroster/internal/storage"
	"github.com/mcoot/cwlroster/internal/storage/storagetest"
)

type StorageSuite struct {
	storagetest.Suite
	mini *miniredis.Miniredis
}

func TestStorageSuite(t *testing.T) {
	s := &StorageSuite{}
	s.Open = func() storage.Storage {
		s.mini = miniredis.RunT(s.T())
		client := redis.NewClient(&redis.Options{Addr: s.mini.Addr()})
		cfg := DefaultConfig()
		cfg.MaxMessages = 3
		return NewWithClient(client, cfg)
	}
	suite.Run(t, s)
}

func (s *StorageSuite) TestKind() {
	s.Equal("redis", s.Store.Kind())
}

func (s *StorageSuite) TestRegistrationKeysLayout() {
	p := &model.RegisteredPlayer{ID: "p1", Name: "Ann", TownHall: "th12", RegisteredAt: time.Now()}
	s.Require().NoError(s.Store.SaveRegistration(s.Ctx, p))
	// Saving twice must not duplicate the index entry
	s.Require().NoError(s.Store.SaveRegistration(s.Ctx, p))

	s.True(s.mini.Exists("cwl:registration:p1"))
	ids, err := s.mini.List("cwl:idx:registrations")
	s.Require().NoError(err)
	s.Equal([]string{"p1"}, ids)

	s.Require().NoError(s.Store.ClearRegistrations(s.Ctx))
	s.False(s.mini.Exists("cwl:registration:p1"))
	s.False(s.mini.Exists("cwl:idx:registrations"))
}

func (s *StorageSuite) TestMessageHistoryIsCapped() {
	for _, content := range []string{"a", "b", "c", "d", "e"} {
		msg := &model.CwlMessage{ID: model.MessageID(content), Content: content, CreatedAt: time.Now()}
		s.Require().NoError(s.Store.SaveMessage(s.Ctx, msg))
	}

	all, err := s.Store.ListMessages(s.Ctx, 0)
	s.Require().NoError(err)
	s.Require().Len(all, 3)
	s.Equal("e", all[0].Content)
	s.Equal("c", all[2].Content)
}

func (s *StorageSuite) TestListSkipsDanglingIndexEntries() {
	s.mini.RPush("cwl:idx:registrations", "ghost")

	list, err := s.Store.ListRegistrations(s.Ctx)
	s.Require().NoError(err)
	s.Empty(list)
}

func TestKeyPrefix(t *testing.T) {
	mini := miniredis.RunT(t)
	cfg := DefaultConfig()
	cfg.KeyPrefix = "eclipse"
	store := NewWithClient(redis.NewClient(&redis.Options{Addr: mini.Addr()}), cfg)

	clan := &model.Clan{
		ClanDefinition: model.ClanDefinition{ID: "c1", Name: "Eclipse", Capacity: 15, League: model.LeagueCrystal},
		CreatedAt:      time.Now(),
	}
	require.NoError(t, store.SaveClan(context.Background(), clan))

	assert.True(t, mini.Exists("eclipse:clan:c1"))
	assert.False(t, mini.Exists("cwl:clan:c1"))
	ids, err := mini.List("eclipse:idx:clans")
	require.NoError(t, err)
	assert.Equal(t, []string{"c1"}, ids)
}
