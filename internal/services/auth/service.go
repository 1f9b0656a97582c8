package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/cwlroster/internal/dependencies/clock"
	"github.com/mcoot/cwlroster/internal/model"
)

// DefaultPassword is the shared administrator password when none is configured
const DefaultPassword = "ClanWarMaker"

// SessionCookie is the cookie carrying the admin session token in browsers
const SessionCookie = "cwl_session"

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSession     = errors.New("invalid or expired session")
)

// Session represents an authenticated administrator session
type Session struct {
	Token     string
	ID        model.SessionID
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Service handles administrator login and session management
type Service struct {
	clock  clock.Clock
	logger *slog.Logger
	hash   []byte

	mu       sync.RWMutex
	sessions map[string]*Session

	sessionDuration time.Duration
}

// Config holds configuration for the auth service
type Config struct {
	// Password is hashed at startup; ignored when PasswordHash is set
	Password string
	// PasswordHash is a bcrypt hash of the administrator password
	PasswordHash    string
	SessionDuration time.Duration
	// HashCost is the bcrypt cost used when hashing Password
	HashCost int
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		Password:        DefaultPassword,
		SessionDuration: 24 * time.Hour,
		HashCost:        bcrypt.DefaultCost,
	}
}

// New creates a new auth Service
func New(clock clock.Clock, cfg Config, logger *slog.Logger) (*Service, error) {
	defaults := DefaultConfig()
	if cfg.SessionDuration == 0 {
		cfg.SessionDuration = defaults.SessionDuration
	}
	if cfg.HashCost == 0 {
		cfg.HashCost = defaults.HashCost
	}

	hash := []byte(cfg.PasswordHash)
	if len(hash) == 0 {
		password := cfg.Password
		if password == "" {
			password = DefaultPassword
		}
		var err error
		hash, err = bcrypt.GenerateFromPassword([]byte(password), cfg.HashCost)
		if err != nil {
			return nil, err
		}
	} else if _, err := bcrypt.Cost(hash); err != nil {
		return nil, err
	}

	return &Service{
		clock:           clock,
		logger:          logger,
		hash:            hash,
		sessions:        make(map[string]*Session),
		sessionDuration: cfg.SessionDuration,
	}, nil
}

// Login checks the administrator password and creates a session
func (s *Service) Login(password string) (*Session, error) {
	if err := bcrypt.CompareHashAndPassword(s.hash, []byte(password)); err != nil {
		s.logger.Warn("admin login failed")
		return nil, ErrInvalidCredentials
	}

	session := s.createSession()
	s.logger.Info("admin logged in", slog.String("session_id", string(session.ID)))
	return session, nil
}

// ValidateSession checks if a session token is valid and returns the session
func (s *Service) ValidateSession(token string) (*Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrInvalidSession
	}

	if s.clock.Now().After(session.ExpiresAt) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return nil, ErrInvalidSession
	}

	return session, nil
}

// Logout removes a session and returns it, or nil if the token was unknown
func (s *Service) Logout(token string) *Session {
	s.mu.Lock()
	session := s.sessions[token]
	delete(s.sessions, token)
	s.mu.Unlock()
	return session
}

// createSession creates a new session
func (s *Service) createSession() *Session {
	now := s.clock.Now()

	session := &Session{
		Token:     s.generateID("sess_"),
		ID:        model.SessionID(s.generateID("adm_")),
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionDuration),
	}

	s.mu.Lock()
	s.sessions[session.Token] = session
	s.mu.Unlock()

	return session
}

// generateID generates a random ID with a prefix
func (s *Service) generateID(prefix string) string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return prefix + base64.RawURLEncoding.EncodeToString(b)
}

// CleanExpiredSessions removes expired sessions and returns their IDs (call periodically)
func (s *Service) CleanExpiredSessions() []model.SessionID {
	now := s.clock.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	var expired []model.SessionID
	for token, session := range s.sessions {
		if now.After(session.ExpiresAt) {
			expired = append(expired, session.ID)
			delete(s.sessions, token)
		}
	}
	return expired
}
