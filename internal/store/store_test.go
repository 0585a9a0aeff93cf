package store

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileStoreRoundTrip(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "vault"))

	if tok := s.AccessToken(); tok != "" {
		t.Errorf("AccessToken() on empty store = %q, want empty", tok)
	}

	if err := s.Save("atok", "rtok", "doctor"); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if got := s.AccessToken(); got != "atok" {
		t.Errorf("AccessToken() = %q, want %q", got, "atok")
	}
	if got := s.RefreshToken(); got != "rtok" {
		t.Errorf("RefreshToken() = %q, want %q", got, "rtok")
	}
	if got := s.Role(); got != "doctor" {
		t.Errorf("Role() = %q, want %q", got, "doctor")
	}
}

func TestFileStoreSaveWithoutRefreshToken(t *testing.T) {
	s := NewFileStore(t.TempDir())

	if err := s.Save("a1", "r1", "patient"); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	// A later save without a refresh token must not leave the old one behind.
	if err := s.Save("a2", "", "patient"); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if got := s.RefreshToken(); got != "" {
		t.Errorf("RefreshToken() = %q, want empty after refresh-less save", got)
	}
	if got := s.AccessToken(); got != "a2" {
		t.Errorf("AccessToken() = %q, want %q", got, "a2")
	}
}

func TestFileStoreClear(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(dir)
	if err := s.Save("atok", "rtok", "patient"); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear() error: %v", err)
	}
	if s.AccessToken() != "" || s.RefreshToken() != "" || s.Role() != "" {
		t.Error("expected all keys empty after Clear()")
	}
	// Files must actually be gone, not just empty.
	if _, err := os.Stat(filepath.Join(dir, "access_token")); !os.IsNotExist(err) {
		t.Error("expected access_token file to be deleted")
	}

	// Clearing an already-empty store is fine.
	if err := s.Clear(); err != nil {
		t.Errorf("Clear() on empty store error: %v", err)
	}
}

func TestFileStoreTrimsWhitespace(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "access_token"), []byte("  atok\n"), 0600); err != nil {
		t.Fatal(err)
	}
	s := NewFileStore(dir)
	if got := s.AccessToken(); got != "atok" {
		t.Errorf("AccessToken() = %q, want trimmed %q", got, "atok")
	}
}
