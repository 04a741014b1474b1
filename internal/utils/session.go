package utils

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

type sessionState struct {
	Token   string    `toml:"token"`
	SavedAt time.Time `toml:"saved_at"`
}

// SessionFile keeps the session token in a TOML file. It is used when no
// database is configured.
type SessionFile struct {
	Path string
}

func NewSessionFile(dir string) *SessionFile {
	return &SessionFile{Path: filepath.Join(dir, "session.toml")}
}

func (f *SessionFile) SaveToken(token string) error {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0755); err != nil {
		return err
	}

	file, err := os.OpenFile(f.Path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer file.Close()

	return toml.NewEncoder(file).Encode(sessionState{
		Token:   token,
		SavedAt: time.Now().UTC(),
	})
}

func (f *SessionFile) LoadToken() (string, error) {
	var state sessionState
	_, err := toml.DecodeFile(f.Path, &state)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	return state.Token, nil
}

func (f *SessionFile) ClearToken() error {
	err := os.Remove(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func (f *SessionFile) Exists() bool {
	_, err := os.Stat(f.Path)
	return !os.IsNotExist(err)
}
