package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/mcoot/cwlroster/internal/model"
	"github.com/mcoot/cwlroster/internal/storage"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Storage is a SQLite-backed implementation of the storage interface
type Storage struct {
	db   *sql.DB
	path string
}

// Open opens (creating if needed) the database at path and applies migrations
func Open(ctx context.Context, path string, logger *slog.Logger) (*Storage, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}

	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// SQLite serialises writers; one connection avoids SQLITE_BUSY under load
	db.SetMaxOpenConns(1)

	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	if logger != nil {
		logger.Info("sqlite database ready", slog.String("path", path))
	}
	return &Storage{db: db, path: path}, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("configure goose: %w", err)
	}

	runCtx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	if err := goose.UpContext(runCtx, db, "migrations"); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Registration operations

func (s *Storage) SaveRegistration(ctx context.Context, player *model.RegisteredPlayer) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO player_registrations (id, player_name, th_level, registered_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET player_name = excluded.player_name, th_level = excluded.th_level, registered_at = excluded.registered_at`,
		string(player.ID), player.Name, string(player.TownHall), player.RegisteredAt.UnixNano(),
	)
	return err
}

func (s *Storage) GetRegistration(ctx context.Context, id model.PlayerID) (*model.RegisteredPlayer, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, player_name, th_level, registered_at FROM player_registrations WHERE id = ?`, string(id))
	player, err := scanRegistration(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrPlayerNotFound
	}
	if err != nil {
		return nil, err
	}
	return player, nil
}

func (s *Storage) ListRegistrations(ctx context.Context) ([]model.RegisteredPlayer, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, player_name, th_level, registered_at FROM player_registrations ORDER BY registered_at, rowid`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	result := []model.RegisteredPlayer{}
	for rows.Next() {
		player, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *player)
	}
	return result, rows.Err()
}

func (s *Storage) DeleteRegistration(ctx context.Context, id model.PlayerID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM player_registrations WHERE id = ?`, string(id))
	if err != nil {
		return err
	}
	return requireAffected(res, model.ErrPlayerNotFound)
}

func (s *Storage) ClearRegistrations(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM player_registrations`)
	return err
}

// Clan operations

func (s *Storage) SaveClan(ctx context.Context, clan *model.Clan) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO clans (id, name, participants, league, created_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET name = excluded.name, participants = excluded.participants, league = excluded.league`,
		string(clan.ID), clan.Name, clan.Capacity, string(clan.League), clan.CreatedAt.UnixNano(),
	)
	return err
}

func (s *Storage) ListClans(ctx context.Context) ([]model.Clan, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, participants, league, created_at FROM clans ORDER BY created_at, rowid`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	result := []model.Clan{}
	for rows.Next() {
		var (
			c       model.Clan
			created int64
		)
		if err := rows.Scan(&c.ID, &c.Name, &c.Capacity, &c.League, &created); err != nil {
			return nil, err
		}
		c.CreatedAt = time.Unix(0, created).UTC()
		result = append(result, c)
	}
	return result, rows.Err()
}

func (s *Storage) DeleteClan(ctx context.Context, id model.ClanID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM clans WHERE id = ?`, string(id))
	if err != nil {
		return err
	}
	return requireAffected(res, model.ErrClanNotFound)
}

// Message operations

func (s *Storage) SaveMessage(ctx context.Context, msg *model.CwlMessage) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO cwl_messages (id, content, created_at) VALUES (?, ?, ?)`,
		string(msg.ID), msg.Content, msg.CreatedAt.UnixNano(),
	)
	return err
}

func (s *Storage) ListMessages(ctx context.Context, limit int) ([]model.CwlMessage, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, content, created_at FROM cwl_messages ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	result := []model.CwlMessage{}
	for rows.Next() {
		var (
			m       model.CwlMessage
			created int64
		)
		if err := rows.Scan(&m.ID, &m.Content, &created); err != nil {
			return nil, err
		}
		m.CreatedAt = time.Unix(0, created).UTC()
		result = append(result, m)
	}
	return result, rows.Err()
}

// Clan configuration operations

func (s *Storage) GetClanConfiguration(ctx context.Context) (*model.ClanConfiguration, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM clan_configuration WHERE id = 1`).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrConfigurationNotFound
	}
	if err != nil {
		return nil, err
	}

	var cfg model.ClanConfiguration
	if err := json.Unmarshal([]byte(data), &cfg); err != nil {
		return nil, fmt.Errorf("decode clan configuration: %w", err)
	}
	return &cfg, nil
}

func (s *Storage) SaveClanConfiguration(ctx context.Context, cfg *model.ClanConfiguration) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO clan_configuration (id, data, updated_at) VALUES (1, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		string(data), time.Now().UnixNano(),
	)
	return err
}

// Kind returns "sqlite"
func (s *Storage) Kind() string {
	return "sqlite"
}

// Path returns the database file location
func (s *Storage) Path() string {
	return s.path
}

// Close closes the database
func (s *Storage) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRegistration(row scanner) (*model.RegisteredPlayer, error) {
	var (
		p          model.RegisteredPlayer
		registered int64
	)
	if err := row.Scan(&p.ID, &p.Name, &p.TownHall, &registered); err != nil {
		return nil, err
	}
	p.RegisteredAt = time.Unix(0, registered).UTC()
	return &p, nil
}

func requireAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}
