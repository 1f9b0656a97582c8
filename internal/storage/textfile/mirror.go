// Package textfile keeps a plain-text copy of the registrations, one
// "<name> <thLevel>" line per player, for admins who read the list by hand.
package textfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/mcoot/cwlroster/internal/model"
)

// DefaultFilename is the mirror's name inside the data directory
const DefaultFilename = "listaIscrizioni.txt"

// Mirror appends and rewrites the registration list file
type Mirror struct {
	path string
	mu   sync.Mutex
}

// New creates a mirror writing to path. The parent directory is created on first write.
func New(path string) *Mirror {
	return &Mirror{path: path}
}

// Path returns the file the mirror writes to
func (m *Mirror) Path() string {
	return m.path
}

// Line formats a single registration as it appears in the file
func Line(p model.RegisteredPlayer) string {
	return fmt.Sprintf("%s %s\n", p.Name, p.TownHall)
}

// Append adds one registration to the end of the file
func (m *Mirror) Append(p model.RegisteredPlayer) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ensureDir(); err != nil {
		return err
	}
	f, err := os.OpenFile(m.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open mirror: %w", err)
	}
	if _, err := f.WriteString(Line(p)); err != nil {
		_ = f.Close()
		return fmt.Errorf("append mirror: %w", err)
	}
	return f.Close()
}

// Rewrite replaces the file with the given registrations
func (m *Mirror) Rewrite(players []model.RegisteredPlayer) error {
	var b strings.Builder
	for _, p := range players {
		b.WriteString(Line(p))
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ensureDir(); err != nil {
		return err
	}
	tmp := m.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write mirror: %w", err)
	}
	if err := os.Rename(tmp, m.path); err != nil {
		return fmt.Errorf("replace mirror: %w", err)
	}
	return nil
}

// Clear truncates the file, creating it if needed
func (m *Mirror) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ensureDir(); err != nil {
		return err
	}
	if err := os.WriteFile(m.path, nil, 0o644); err != nil {
		return fmt.Errorf("clear mirror: %w", err)
	}
	return nil
}

// Read returns the file content, or "" when it has not been written yet
func (m *Mirror) Read() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := os.ReadFile(m.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read mirror: %w", err)
	}
	return string(data), nil
}

func (m *Mirror) ensureDir() error {
	dir := filepath.Dir(m.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create mirror dir: %w", err)
	}
	return nil
}
