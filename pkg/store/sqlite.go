package store

import (
	"database/sql"
	"errors"

	_ "modernc.org/sqlite" // enable the "sqlite" SQL driver
	"src.calc.sh/pkg/store/storedefs"
)

var initTable = map[string]string{
	"kv": `CREATE TABLE IF NOT EXISTS kv (key TEXT PRIMARY KEY, value TEXT NOT NULL)`,
}

type sqliteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(path string) (storedefs.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &Error{SQLite, "open", err}
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(`PRAGMA busy_timeout = 1000`); err != nil {
		db.Close()
		return nil, &Error{SQLite, "open", err}
	}
	for t, q := range initTable {
		if _, err := db.Exec(q); err != nil {
			logger.Printf("failed to initialize table %s: %v", t, err)
			db.Close()
			return nil, &Error{SQLite, "initialize", err}
		}
	}
	return &sqliteStore{db}, nil
}

func (s *sqliteStore) LoadHistory() ([]storedefs.Entry, error) {
	var data string
	err := s.db.QueryRow(
		`SELECT value FROM kv WHERE key = ?`, storedefs.HistoryKey).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, &Error{SQLite, "load", err}
	}
	entries, err := unmarshalEntries([]byte(data))
	if err != nil {
		return nil, &Error{SQLite, "load", err}
	}
	return entries, nil
}

func (s *sqliteStore) SaveHistory(entries []storedefs.Entry) error {
	data, err := marshalEntries(entries)
	if err != nil {
		return &Error{SQLite, "save", err}
	}
	_, err = s.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		storedefs.HistoryKey, string(data))
	if err != nil {
		return &Error{SQLite, "save", err}
	}
	return nil
}

func (s *sqliteStore) ClearHistory() error {
	_, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, storedefs.HistoryKey)
	if err != nil {
		return &Error{SQLite, "clear", err}
	}
	return nil
}

func (s *sqliteStore) Close() error { return s.db.Close() }
