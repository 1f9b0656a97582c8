package model

import (
	"errors"
	"fmt"
)

// Error kinds. Every specific error below wraps one of these so callers can
// branch on the kind with errors.Is.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

// Common errors used across the application
var (
	// Not found errors
	ErrPlayerNotFound        = fmt.Errorf("player %w", ErrNotFound)
	ErrClanNotFound          = fmt.Errorf("clan %w", ErrNotFound)
	ErrSessionNotFound       = fmt.Errorf("roster session %w", ErrNotFound)
	ErrMessageNotFound       = fmt.Errorf("message %w", ErrNotFound)
	ErrConfigurationNotFound = fmt.Errorf("clan configuration %w", ErrNotFound)

	// Validation errors
	ErrNoClans              = fmt.Errorf("%w: at least one clan is required", ErrInvalidInput)
	ErrInvalidClan          = fmt.Errorf("%w: clan needs a name and a positive capacity", ErrInvalidInput)
	ErrInvalidLeague        = fmt.Errorf("%w: unknown league", ErrInvalidInput)
	ErrInvalidPlayerName    = fmt.Errorf("%w: player name is required", ErrInvalidInput)
	ErrInvalidTownHall      = fmt.Errorf("%w: town hall level must be th1-th%d", ErrInvalidInput, MaxTownHallLevel)
	ErrInvalidIndex         = fmt.Errorf("%w: position out of range", ErrInvalidInput)
	ErrInvalidConfiguration = fmt.Errorf("%w: clan configuration", ErrInvalidInput)
	ErrMessageEmpty         = fmt.Errorf("%w: message is empty", ErrInvalidInput)
)
