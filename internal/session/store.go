package session

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// Store persists the single console session across restarts. Save always
// writes the full session, including the empty logged-out shape, which
// overwrites whatever was stored before.
type Store interface {
	Save(s Session) error
	Load() (Session, error)
}

// FileStore keeps the serialized session in one JSON file. It is the
// default store when neither Redis nor MongoDB is configured.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) Save(s Session) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	// write-then-rename so a crash never leaves a torn session file
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0600); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}

func (f *FileStore) Load() (Session, error) {
	b, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Session{}, nil
		}
		return Session{}, err
	}
	var s Session
	if err := json.Unmarshal(b, &s); err != nil {
		// a corrupt file is treated as logged out rather than blocking startup
		return Session{}, nil
	}
	return s, nil
}

// Path returns the absolute location of the session file.
func (f *FileStore) Path() string {
	abs, err := filepath.Abs(f.path)
	if err != nil {
		return f.path
	}
	return abs
}
