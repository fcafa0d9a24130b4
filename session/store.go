package session

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrNoSession is returned by Load when no session has been saved.
var ErrNoSession = errors.New("no saved session")

// Store persists a single session in a directory.
type Store struct {
	dir string
}

// NewStore creates a session store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) sessionPath() string {
	return filepath.Join(s.dir, "session.json")
}

func (s *Store) lockPath() string {
	return filepath.Join(s.dir, "session.lock")
}

// Load reads the saved session.
func (s *Store) Load() (Session, error) {
	var sess Session
	err := s.withLock(false, func() error {
		data, err := os.ReadFile(s.sessionPath())
		if os.IsNotExist(err) {
			return ErrNoSession
		}
		if err != nil {
			return fmt.Errorf("read session file: %w", err)
		}
		if err := json.Unmarshal(data, &sess); err != nil {
			return fmt.Errorf("unmarshal session: %w", err)
		}
		return nil
	})
	if err != nil {
		return Session{}, err
	}
	if !sess.Valid() {
		return Session{}, ErrNoSession
	}
	return sess, nil
}

// Save replaces the saved session.
func (s *Store) Save(sess Session) error {
	if !sess.Valid() {
		return fmt.Errorf("save session: empty token")
	}
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	return s.withLock(true, func() error {
		if existing, err := os.ReadFile(s.sessionPath()); err == nil {
			if bytes.Equal(existing, data) {
				return nil
			}
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("read session file: %w", err)
		}

		tmpFile, err := os.CreateTemp(s.dir, filepath.Base(s.sessionPath())+".tmp")
		if err != nil {
			return fmt.Errorf("create temp session file: %w", err)
		}
		name := tmpFile.Name()
		_, err = tmpFile.Write(data)
		if err1 := tmpFile.Close(); err1 != nil && err == nil {
			err = err1
		}
		if err == nil {
			err = os.Chmod(name, 0o600)
		}
		if err != nil {
			os.Remove(name)
			return fmt.Errorf("write temp session file: %w", err)
		}

		if err := os.Rename(name, s.sessionPath()); err != nil {
			os.Remove(name)
			return fmt.Errorf("rename session file: %w", err)
		}
		return nil
	})
}

// Clear removes the saved session. Clearing when signed out is not an error.
func (s *Store) Clear() error {
	return s.withLock(true, func() error {
		if err := os.Remove(s.sessionPath()); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove session file: %w", err)
		}
		return nil
	})
}

func (s *Store) withLock(exclusive bool, fn func() error) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	lock := flock.New(s.lockPath())
	var err error
	if exclusive {
		err = lock.Lock()
	} else {
		err = lock.RLock()
	}
	if err != nil {
		return fmt.Errorf("acquire session lock: %w", err)
	}
	defer lock.Unlock()

	return fn()
}
