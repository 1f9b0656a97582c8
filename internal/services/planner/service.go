// Package planner keeps the roster-building sessions of logged-in
// administrators and turns them into saved roster messages.
package planner

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/mcoot/cwlroster/internal/dependencies/clock"
	"github.com/mcoot/cwlroster/internal/dependencies/ids"
	"github.com/mcoot/cwlroster/internal/model"
	"github.com/mcoot/cwlroster/internal/services/report"
	"github.com/mcoot/cwlroster/internal/services/roster"
	"github.com/mcoot/cwlroster/internal/storage"
)

// Service owns one roster session per administrator session
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	ids     ids.Generator
	logger  *slog.Logger

	mu       sync.Mutex
	sessions map[model.SessionID]*roster.Session
}

// New creates a new planner Service
func New(storage storage.Storage, clock clock.Clock, ids ids.Generator, logger *slog.Logger) *Service {
	return &Service{
		storage:  storage,
		clock:    clock,
		ids:      ids,
		logger:   logger,
		sessions: make(map[model.SessionID]*roster.Session),
	}
}

// Start defines the clans for a session and assigns the current registrations
// to them. Any previous session under the same id is replaced.
func (s *Service) Start(ctx context.Context, id model.SessionID, defs []model.ClanDefinition) ([]model.ClanRoster, error) {
	players, err := s.storage.ListRegistrations(ctx)
	if err != nil {
		return nil, err
	}

	session := roster.NewSession(s.ids)
	if err := session.DefinePlans(defs); err != nil {
		return nil, err
	}
	if err := session.AutoAssign(players); err != nil {
		return nil, err
	}

	// Snapshot before publishing; afterwards the session is only touched under s.mu
	rosters := session.Rosters()

	s.mu.Lock()
	s.sessions[id] = session
	s.mu.Unlock()

	s.logger.Info("roster session started",
		slog.Int("clan_count", len(defs)),
		slog.Int("player_count", len(players)),
	)
	return rosters, nil
}

// Rosters returns the current rosters of a session in clan order
func (s *Service) Rosters(id model.SessionID) ([]model.ClanRoster, error) {
	var rosters []model.ClanRoster
	err := s.withSession(id, func(session *roster.Session) error {
		rosters = session.Rosters()
		return nil
	})
	return rosters, err
}

// Move transfers a player between two clans of a session
func (s *Service) Move(id model.SessionID, playerID model.PlayerID, from, to model.ClanID) ([]model.ClanRoster, error) {
	return s.mutate(id, func(session *roster.Session) error {
		return session.MovePlayer(playerID, from, to)
	})
}

// Reorder swaps two adjacent players within a clan
func (s *Service) Reorder(id model.SessionID, clanID model.ClanID, fromIndex, toIndex int) ([]model.ClanRoster, error) {
	return s.mutate(id, func(session *roster.Session) error {
		return session.ReorderPlayer(clanID, fromIndex, toIndex)
	})
}

// MoveUp moves a player one position up within its clan
func (s *Service) MoveUp(id model.SessionID, clanID model.ClanID, index int) ([]model.ClanRoster, error) {
	return s.mutate(id, func(session *roster.Session) error {
		return session.MoveUp(clanID, index)
	})
}

// MoveDown moves a player one position down within its clan
func (s *Service) MoveDown(id model.SessionID, clanID model.ClanID, index int) ([]model.ClanRoster, error) {
	return s.mutate(id, func(session *roster.Session) error {
		return session.MoveDown(clanID, index)
	})
}

// Discard drops a session. Unknown ids are ignored.
func (s *Service) Discard(id model.SessionID) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Generate renders a session's rosters and saves the resulting message
func (s *Service) Generate(ctx context.Context, id model.SessionID) (*model.CwlMessage, error) {
	rosters, err := s.Rosters(id)
	if err != nil {
		return nil, err
	}
	return s.SaveMessage(ctx, report.Render(rosters))
}

// Preview builds a message without a session: each valid clan receives the
// first registrations up to its capacity. The message is saved.
func (s *Service) Preview(ctx context.Context, defs []model.ClanDefinition) (*model.CwlMessage, error) {
	if len(defs) == 0 {
		return nil, model.ErrNoClans
	}
	players, err := s.storage.ListRegistrations(ctx)
	if err != nil {
		return nil, err
	}
	return s.SaveMessage(ctx, report.Render(roster.Preview(players, defs)))
}

// SaveMessage stores a roster message, e.g. one the administrator edited by hand
func (s *Service) SaveMessage(ctx context.Context, content string) (*model.CwlMessage, error) {
	if strings.TrimSpace(content) == "" {
		return nil, model.ErrMessageEmpty
	}

	msg := &model.CwlMessage{
		ID:        model.MessageID(s.ids.NewID()),
		Content:   content,
		CreatedAt: s.clock.Now(),
	}
	if err := s.storage.SaveMessage(ctx, msg); err != nil {
		return nil, err
	}

	s.logger.Info("roster message saved",
		slog.String("message_id", string(msg.ID)),
		slog.Int("length", len(msg.Content)),
	)
	return msg, nil
}

// Messages returns saved messages, newest first. limit <= 0 returns all of them.
func (s *Service) Messages(ctx context.Context, limit int) ([]model.CwlMessage, error) {
	return s.storage.ListMessages(ctx, limit)
}

// SessionCount returns the number of live sessions
func (s *Service) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Service) mutate(id model.SessionID, fn func(*roster.Session) error) ([]model.ClanRoster, error) {
	var rosters []model.ClanRoster
	err := s.withSession(id, func(session *roster.Session) error {
		if err := fn(session); err != nil {
			return err
		}
		rosters = session.Rosters()
		return nil
	})
	return rosters, err
}

func (s *Service) withSession(id model.SessionID, fn func(*roster.Session) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return model.ErrSessionNotFound
	}
	return fn(session)
}
