package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"timepick/internal/model"
	"timepick/internal/numeric"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a named time does not exist.
var ErrNotFound = errors.New("not found")

// Store keeps named times in a SQLite file under Dir (the config dir when
// Dir is empty).
type Store struct {
	Dir string
}

type SavedTime struct {
	Name      string            `json:"name"`
	Time      *model.TimeStruct `json:"time"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

func (s Store) dir() (string, error) {
	if strings.TrimSpace(s.Dir) != "" {
		return filepath.Clean(s.Dir), nil
	}
	return ConfigDir()
}

func (s Store) sqlitePath() (string, error) {
	dir, err := s.dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "timepick.sqlite"), nil
}

func (s Store) openSQLite(ctx context.Context) (*sql.DB, error) {
	path, err := s.sqlitePath()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets the CLI read while a picker session writes; busy_timeout avoids
	// spurious "database is locked" errors between processes.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA busy_timeout=3000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateSaved(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrateSaved(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS saved_times (
		name TEXT PRIMARY KEY,
		hour INTEGER NOT NULL,
		minute INTEGER NOT NULL,
		second INTEGER,
		json TEXT NOT NULL,
		updated_at_unixms INTEGER NOT NULL
	)`)
	return err
}

func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("name is empty")
	}
	return name, nil
}

// SaveTime inserts or replaces a named time. Only times with an hour and a
// minute inside clock range can be saved.
func (s Store) SaveTime(ctx context.Context, name string, t *model.TimeStruct) error {
	name, err := normalizeName(name)
	if err != nil {
		return err
	}
	if t == nil {
		return fmt.Errorf("save %q: no time", name)
	}
	h, hok := t.Hour.Value()
	m, mok := t.Minute.Value()
	if !hok || !mok {
		return fmt.Errorf("save %q: time has no hour or minute", name)
	}
	if h < 0 || h >= 24 || m < 0 || m >= 60 {
		return fmt.Errorf("save %q: %02d:%02d is out of range", name, h, m)
	}
	var second any
	if sec, ok := t.Second.Value(); ok {
		if sec < 0 || sec >= 60 {
			return fmt.Errorf("save %q: second %d is out of range", name, sec)
		}
		second = sec
	}
	raw, err := json.Marshal(t)
	if err != nil {
		return err
	}

	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.ExecContext(ctx,
		`INSERT OR REPLACE INTO saved_times(name, hour, minute, second, json, updated_at_unixms) VALUES(?, ?, ?, ?, ?, ?)`,
		name, h, m, second, string(raw), time.Now().UTC().UnixMilli())
	return err
}

func (s Store) LoadTime(ctx context.Context, name string) (*SavedTime, error) {
	name, err := normalizeName(name)
	if err != nil {
		return nil, err
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	row := db.QueryRowContext(ctx, `SELECT name, hour, minute, second, updated_at_unixms FROM saved_times WHERE name = ?`, name)
	st, err := scanSaved(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("saved time %q: %w", name, ErrNotFound)
	}
	return st, err
}

func (s Store) ListTimes(ctx context.Context) ([]SavedTime, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT name, hour, minute, second, updated_at_unixms FROM saved_times ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []SavedTime{}
	for rows.Next() {
		st, err := scanSaved(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *st)
	}
	return out, rows.Err()
}

func (s Store) DeleteTime(ctx context.Context, name string) error {
	name, err := normalizeName(name)
	if err != nil {
		return err
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	res, err := db.ExecContext(ctx, `DELETE FROM saved_times WHERE name = ?`, name)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("saved time %q: %w", name, ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSaved(r rowScanner) (*SavedTime, error) {
	var (
		name      string
		hour      int
		minute    int
		second    sql.NullInt64
		updatedMs int64
	)
	if err := r.Scan(&name, &hour, &minute, &second, &updatedMs); err != nil {
		return nil, err
	}
	t := &model.TimeStruct{Hour: numeric.Of(hour), Minute: numeric.Of(minute), Second: numeric.NaN}
	if second.Valid {
		t.Second = numeric.Of(int(second.Int64))
	}
	return &SavedTime{Name: name, Time: t, UpdatedAt: time.UnixMilli(updatedMs).UTC()}, nil
}
