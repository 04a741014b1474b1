package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SaveToken replaces the stored session token. Only one row is ever kept.
func (s *Storage) SaveToken(token string) error {
	tx, err := s.DB.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM auth_session"); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to clear session: %w", err)
	}

	_, err = tx.Exec(
		"INSERT INTO auth_session (id, token, created_at) VALUES (?, ?, ?)",
		uuid.New().String(), token, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to save session: %w", err)
	}

	return tx.Commit()
}

// LoadToken returns the stored token, or "" when there is none.
func (s *Storage) LoadToken() (string, error) {
	var token string
	err := s.DB.QueryRow(
		"SELECT token FROM auth_session ORDER BY created_at DESC LIMIT 1",
	).Scan(&token)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load session: %w", err)
	}
	return token, nil
}

func (s *Storage) ClearToken() error {
	if _, err := s.DB.Exec("DELETE FROM auth_session"); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
