package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/mcoot/cwlroster/internal/model"
	"github.com/mcoot/cwlroster/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	registrations map[model.PlayerID]model.RegisteredPlayer
	regOrder      []model.PlayerID
	clans         map[model.ClanID]model.Clan
	clanOrder     []model.ClanID
	messages      []model.CwlMessage
	clanConfig    *model.ClanConfiguration
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		registrations: make(map[model.PlayerID]model.RegisteredPlayer),
		clans:         make(map[model.ClanID]model.Clan),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Registration operations

func (s *Storage) SaveRegistration(ctx context.Context, player *model.RegisteredPlayer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.registrations[player.ID]; !ok {
		s.regOrder = append(s.regOrder, player.ID)
	}
	s.registrations[player.ID] = *player
	return nil
}

func (s *Storage) GetRegistration(ctx context.Context, id model.PlayerID) (*model.RegisteredPlayer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.registrations[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return &player, nil
}

func (s *Storage) ListRegistrations(ctx context.Context) ([]model.RegisteredPlayer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]model.RegisteredPlayer, 0, len(s.regOrder))
	for _, id := range s.regOrder {
		result = append(result, s.registrations[id])
	}
	// Stable so equal timestamps keep insertion order
	slices.SortStableFunc(result, func(a, b model.RegisteredPlayer) int {
		return a.RegisteredAt.Compare(b.RegisteredAt)
	})
	return result, nil
}

func (s *Storage) DeleteRegistration(ctx context.Context, id model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.registrations[id]; !ok {
		return model.ErrPlayerNotFound
	}
	delete(s.registrations, id)
	s.regOrder = slices.DeleteFunc(s.regOrder, func(other model.PlayerID) bool { return other == id })
	return nil
}

func (s *Storage) ClearRegistrations(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registrations = make(map[model.PlayerID]model.RegisteredPlayer)
	s.regOrder = nil
	return nil
}

// Clan operations

func (s *Storage) SaveClan(ctx context.Context, clan *model.Clan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clans[clan.ID]; !ok {
		s.clanOrder = append(s.clanOrder, clan.ID)
	}
	s.clans[clan.ID] = *clan
	return nil
}

func (s *Storage) ListClans(ctx context.Context) ([]model.Clan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]model.Clan, 0, len(s.clanOrder))
	for _, id := range s.clanOrder {
		result = append(result, s.clans[id])
	}
	return result, nil
}

func (s *Storage) DeleteClan(ctx context.Context, id model.ClanID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clans[id]; !ok {
		return model.ErrClanNotFound
	}
	delete(s.clans, id)
	s.clanOrder = slices.DeleteFunc(s.clanOrder, func(other model.ClanID) bool { return other == id })
	return nil
}

// Message operations

func (s *Storage) SaveMessage(ctx context.Context, msg *model.CwlMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, *msg)
	return nil
}

func (s *Storage) ListMessages(ctx context.Context, limit int) ([]model.CwlMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]model.CwlMessage, 0, len(s.messages))
	for i := len(s.messages) - 1; i >= 0; i-- {
		if limit > 0 && len(result) == limit {
			break
		}
		result = append(result, s.messages[i])
	}
	return result, nil
}

// Clan configuration operations

func (s *Storage) GetClanConfiguration(ctx context.Context) (*model.ClanConfiguration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.clanConfig == nil {
		return nil, model.ErrConfigurationNotFound
	}
	cfg := *s.clanConfig
	return &cfg, nil
}

func (s *Storage) SaveClanConfiguration(ctx context.Context, cfg *model.ClanConfiguration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	saved := *cfg
	s.clanConfig = &saved
	return nil
}

// Kind returns "memory"
func (s *Storage) Kind() string {
	return "memory"
}

// Close is a no-op for in-memory storage
func (s *Storage) Close() error {
	return nil
}
