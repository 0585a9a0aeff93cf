package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vitalink-health/vitalink/internal/notify"
	"github.com/vitalink-health/vitalink/internal/session"
	"github.com/vitalink-health/vitalink/internal/store"
	"github.com/vitalink-health/vitalink/pkg/domain"
)

func newTestYouModel() youModel {
	center := notify.NewCenter()
	sess := session.NewManager(nil, store.NewMemStore(), center)
	return newYouModel(nil, sess)
}

func TestYouEditPhonePrefillsCurrent(t *testing.T) {
	m := newTestYouModel()
	m.user = &domain.User{ID: "u1", Phone: "555-0101"}

	m, _ = m.updateKeys(keyMsg("p"))
	if !m.editingPhone {
		t.Fatal("expected editingPhone=true after 'p'")
	}
	if m.phoneInput != "555-0101" {
		t.Errorf("expected current phone prefilled, got %q", m.phoneInput)
	}

	m, _ = m.updateKeys(tea.KeyMsg{Type: tea.KeyEsc})
	if m.editingPhone {
		t.Error("expected esc to cancel phone editing")
	}
}

func TestYouUnchangedPhoneDoesNotSave(t *testing.T) {
	m := newTestYouModel()
	m.user = &domain.User{ID: "u1", Phone: "555-0101"}
	m.editingPhone = true
	m.phoneInput = "555-0101"

	m, cmd := m.savePhone()
	if cmd != nil {
		t.Error("expected no save command for an unchanged phone")
	}
	if m.saving {
		t.Error("expected saving=false for an unchanged phone")
	}
}

func TestYouProfileSaveKeepsRole(t *testing.T) {
	m := newTestYouModel()
	m.user = &domain.User{ID: "u1", FullName: "Ada Osei", Role: domain.RoleDoctor}
	m.saving = true

	// The backend never sees the role, so the saved profile comes back
	// without one and the local choice must survive.
	m, _ = m.Update(profileSavedMsg{user: &domain.User{ID: "u1", FullName: "Ada Osei", Phone: "555-0202"}})
	if m.user.Role != domain.RoleDoctor {
		t.Errorf("expected role preserved across profile save, got %q", m.user.Role)
	}
	if m.user.Phone != "555-0202" {
		t.Errorf("expected updated phone, got %q", m.user.Phone)
	}
}

func TestYouLogoutKeyEmitsRequest(t *testing.T) {
	m := newTestYouModel()
	m.user = &domain.User{ID: "u1"}

	_, cmd := m.updateKeys(keyMsg("L"))
	if cmd == nil {
		t.Fatal("expected a command on 'L'")
	}
	if _, ok := cmd().(logoutRequestMsg); !ok {
		t.Fatalf("expected logoutRequestMsg, got %T", cmd())
	}
}

func TestYouViewAnonymous(t *testing.T) {
	m := newTestYouModel()
	if !strings.Contains(m.View(), "not signed in") {
		t.Error("expected anonymous placeholder in view")
	}
}

func TestYouViewShowsProfile(t *testing.T) {
	m := newTestYouModel()
	m.user = &domain.User{
		ID:       "u1",
		Email:    "ada@x.io",
		FullName: "Ada Osei",
		Role:     domain.RolePatient,
	}

	view := m.View()
	if !strings.Contains(view, "Ada Osei") {
		t.Error("expected full name in profile view")
	}
	if !strings.Contains(view, "ada@x.io") {
		t.Error("expected email in profile view")
	}
	if !strings.Contains(view, "patient") {
		t.Error("expected role chip in profile view")
	}
}
