// Package session persists the client's token and theme between runs.
package session

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"wardrobe101/internal/domain/entity"
)

type state struct {
	Session *entity.Session `yaml:"session,omitempty"`
	Theme   entity.Theme    `yaml:"theme,omitempty"`
}

// FileStore keeps client state in one YAML file, written with owner-only permissions.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) LoadSession() (*entity.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.read()
	if err != nil {
		return nil, err
	}
	return st.Session, nil
}

func (s *FileStore) SaveSession(session *entity.Session) error {
	return s.update(func(st *state) { st.Session = session })
}

func (s *FileStore) ClearSession() error {
	return s.update(func(st *state) { st.Session = nil })
}

func (s *FileStore) LoadTheme() (entity.Theme, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.read()
	if err != nil {
		return "", err
	}
	return st.Theme, nil
}

func (s *FileStore) SaveTheme(theme entity.Theme) error {
	return s.update(func(st *state) { st.Theme = theme })
}

func (s *FileStore) update(mutate func(*state)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.read()
	if err != nil {
		return err
	}
	mutate(st)
	return s.write(st)
}

func (s *FileStore) read() (*state, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return &state{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read state: %w", err)
	}
	st := &state{}
	if err := yaml.Unmarshal(data, st); err != nil {
		return nil, fmt.Errorf("parse state: %w", err)
	}
	return st, nil
}

func (s *FileStore) write(st *state) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	data, err := yaml.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	return os.Rename(tmp, s.path)
}
