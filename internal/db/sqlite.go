package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/mithrel/slipnote/internal/logging"
	"github.com/mithrel/slipnote/pkg/api"
)

const printerSettingsKey = "printer"

type sqliteStore struct {
	db  *sql.DB
	log zerolog.Logger
}

// openSQLite connects with the modernc.org/sqlite driver and ensures the
// schema exists.
func openSQLite(ctx context.Context, dsn string) (*Store, error) {
	path := strings.TrimPrefix(dsn, "sqlite://")
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, errors.Wrap(err, "create data dir")
	}
	dbh, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite")
	}
	for _, pragma := range []string{`PRAGMA journal_mode=WAL;`, `PRAGMA busy_timeout=5000;`} {
		if _, err := dbh.ExecContext(ctx, pragma); err != nil {
			_ = dbh.Close()
			return nil, errors.Wrapf(err, "exec %s", pragma)
		}
	}
	if err := migrate(ctx, dbh); err != nil {
		_ = dbh.Close()
		return nil, errors.Wrap(err, "migrate")
	}
	s := &sqliteStore{db: dbh, log: logging.GetLogger("db")}
	s.log.Debug().Str("path", path).Msg("sqlite store opened")
	return &Store{Notes: s, Settings: s, closer: dbh}, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS notes (
  id TEXT PRIMARY KEY,
  version INTEGER NOT NULL,
  title TEXT NOT NULL,
  body TEXT NOT NULL,
  created_at TIMESTAMP NOT NULL,
  updated_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_notes_updated ON notes(updated_at DESC, id);
CREATE TABLE IF NOT EXISTS settings (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at TIMESTAMP NOT NULL
);
`)
	return err
}

func (s *sqliteStore) CreateNote(ctx context.Context, n api.Note) (api.Note, error) {
	if n.ID == "" {
		return api.Note{}, errors.Wrap(ErrConflict, "note id is empty")
	}
	if n.Version == 0 {
		n.Version = 1
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO notes(id, version, title, body, created_at, updated_at) VALUES(?,?,?,?,?,?)`,
		n.ID, n.Version, n.Title, n.Body, n.CreatedAt.UTC(), n.UpdatedAt.UTC())
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return api.Note{}, errors.Wrapf(ErrConflict, "note %s exists", n.ID)
		}
		return api.Note{}, errors.Wrap(err, "insert note")
	}
	s.log.Debug().Str("id", n.ID).Msg("note created")
	return n, nil
}

func (s *sqliteStore) GetNote(ctx context.Context, id string) (api.Note, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, version, title, body, created_at, updated_at FROM notes WHERE id=?`, id)
	n, err := scanNote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return api.Note{}, ErrNotFound
	}
	return n, err
}

func (s *sqliteStore) UpdateNoteCAS(ctx context.Context, n api.Note, ifVersion int64) (api.Note, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return api.Note{}, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `UPDATE notes SET version=?, title=?, body=?, updated_at=? WHERE id=? AND version=?`,
		n.Version, n.Title, n.Body, n.UpdatedAt.UTC(), n.ID, ifVersion)
	if err != nil {
		return api.Note{}, errors.Wrap(err, "update note")
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		var cur int64
		if err := tx.QueryRowContext(ctx, `SELECT version FROM notes WHERE id=?`, n.ID).Scan(&cur); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return api.Note{}, ErrNotFound
			}
			return api.Note{}, err
		}
		return api.Note{}, errors.Wrapf(ErrConflict, "note %s is at version %d, not %d", n.ID, cur, ifVersion)
	}
	out, err := scanNote(tx.QueryRowContext(ctx, `SELECT id, version, title, body, created_at, updated_at FROM notes WHERE id=?`, n.ID))
	if err != nil {
		return api.Note{}, err
	}
	if err := tx.Commit(); err != nil {
		return api.Note{}, err
	}
	return out, nil
}

func (s *sqliteStore) DeleteNote(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM notes WHERE id=?`, id)
	if err != nil {
		return errors.Wrap(err, "delete note")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *sqliteStore) ListNotes(ctx context.Context, q api.ListQuery) ([]api.Note, error) {
	query := `SELECT id, version, title, body, created_at, updated_at FROM notes`
	var conds []string
	var args []any
	if !q.Since.IsZero() {
		conds = append(conds, "updated_at >= ?")
		args = append(args, q.Since.UTC())
	}
	if !q.Until.IsZero() {
		conds = append(conds, "updated_at <= ?")
		args = append(args, q.Until.UTC())
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "list notes")
	}
	defer rows.Close()
	var out []api.Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return applyQuery(out, q), nil
}

func (s *sqliteStore) GetPrinterSettings(ctx context.Context) (api.PrinterSettings, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key=?`, printerSettingsKey).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return api.DefaultPrinterSettings(), nil
	}
	if err != nil {
		return api.PrinterSettings{}, errors.Wrap(err, "read printer settings")
	}
	var ps api.PrinterSettings
	if err := json.Unmarshal([]byte(raw), &ps); err != nil {
		return api.PrinterSettings{}, errors.Wrap(err, "decode printer settings")
	}
	return normalizeSettings(ps), nil
}

func (s *sqliteStore) SavePrinterSettings(ctx context.Context, ps api.PrinterSettings) (api.PrinterSettings, error) {
	ps = normalizeSettings(ps)
	ps.LastSaved = time.Now().UTC()
	raw, err := json.Marshal(ps)
	if err != nil {
		return api.PrinterSettings{}, err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO settings(key, value, updated_at) VALUES(?,?,?)
ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at`,
		printerSettingsKey, string(raw), ps.LastSaved)
	if err != nil {
		return api.PrinterSettings{}, errors.Wrap(err, "save printer settings")
	}
	s.log.Debug().Str("printer", ps.DefaultPrinter).Int("width", ps.PaperWidth).Msg("printer settings saved")
	return ps, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(r rowScanner) (api.Note, error) {
	var n api.Note
	if err := r.Scan(&n.ID, &n.Version, &n.Title, &n.Body, &n.CreatedAt, &n.UpdatedAt); err != nil {
		return api.Note{}, err
	}
	return n, nil
}
