// Package store persists the minimal client session state: the access
// token, the refresh token, and the role picked at login. These are the
// only things that survive a restart; everything else is refetched.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store is the durable key store consumed by the session manager.
type Store interface {
	AccessToken() string
	RefreshToken() string
	Role() string
	// Save writes all three keys. An empty refresh token is allowed —
	// not every backend issues one.
	Save(access, refresh, role string) error
	// Clear deletes all three keys. Missing keys are not an error.
	Clear() error
}

const (
	accessFile  = "access_token"
	refreshFile = "refresh_token"
	roleFile    = "role"
)

// DefaultDir returns ~/.vitalink.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".vitalink"), nil
}

// FileStore keeps each key in its own file under dir, one value per file.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-backed store rooted at dir. The directory
// is created lazily on the first Save.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) AccessToken() string  { return s.read(accessFile) }
func (s *FileStore) RefreshToken() string { return s.read(refreshFile) }
func (s *FileStore) Role() string         { return s.read(roleFile) }

func (s *FileStore) read(name string) string {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func (s *FileStore) Save(access, refresh, role string) error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("create %s: %w", s.dir, err)
	}
	for name, value := range map[string]string{
		accessFile:  access,
		refreshFile: refresh,
		roleFile:    role,
	} {
		if value == "" {
			// Don't leave a stale value behind for an absent key.
			if err := s.remove(name); err != nil {
				return err
			}
			continue
		}
		path := filepath.Join(s.dir, name)
		if err := os.WriteFile(path, []byte(value), 0600); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	return nil
}

func (s *FileStore) Clear() error {
	for _, name := range []string{accessFile, refreshFile, roleFile} {
		if err := s.remove(name); err != nil {
			return err
		}
	}
	return nil
}

func (s *FileStore) remove(name string) error {
	path := filepath.Join(s.dir, name)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", path, err)
	}
	return nil
}

// MemStore is an in-memory Store for tests.
type MemStore struct {
	access, refresh, role string
}

func NewMemStore() *MemStore { return &MemStore{} }

func (s *MemStore) AccessToken() string  { return s.access }
func (s *MemStore) RefreshToken() string { return s.refresh }
func (s *MemStore) Role() string         { return s.role }

func (s *MemStore) Save(access, refresh, role string) error {
	s.access, s.refresh, s.role = access, refresh, role
	return nil
}

func (s *MemStore) Clear() error {
	s.access, s.refresh, s.role = "", "", ""
	return nil
}

// Preload seeds the store, standing in for state left by a prior run.
func (s *MemStore) Preload(access, refresh, role string) {
	s.access, s.refresh, s.role = access, refresh, role
}
