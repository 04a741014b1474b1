package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // required for file: URLs
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

type Storage struct {
	DB *sql.DB
}

// NewStorage opens the libsql database at url and makes sure the schema exists.
func NewStorage(url string) (*Storage, error) {
	if url == "" {
		return nil, fmt.Errorf("database connection string is empty")
	}

	db, err := sql.Open("libsql", url)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	if err := InitializeDB(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &Storage{DB: db}, nil
}

func (s *Storage) Close() error {
	return s.DB.Close()
}

func InitializeDB(db *sql.DB) error {
	_, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS auth_session (
            id TEXT PRIMARY KEY,
            token TEXT NOT NULL,
            created_at TEXT NOT NULL
        );
    `)
	return err
}
