package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vitalink-health/vitalink/internal/notify"
	"github.com/vitalink-health/vitalink/pkg/domain"
)

func testDocs() []domain.MedicalDocument {
	return []domain.MedicalDocument{
		{ID: "d1", Name: "blood-panel.pdf", Category: "lab", SizeBytes: 2048, UploadedAt: time.Now()},
		{ID: "d2", Name: "xray.png", Category: "imaging", SizeBytes: 5 << 20, UploadedAt: time.Now()},
	}
}

func TestRecordsCursorNavigation(t *testing.T) {
	m := newRecordsModel(nil, notify.NewCenter())
	m.docs = testDocs()

	m, _ = m.updateKeys(keyMsg("j"))
	if m.cursor != 1 {
		t.Errorf("cursor = %d after j, want 1", m.cursor)
	}
	m, _ = m.updateKeys(keyMsg("j"))
	if m.cursor != 1 {
		t.Errorf("cursor must stop at the last document, got %d", m.cursor)
	}
	m, _ = m.updateKeys(keyMsg("k"))
	if m.cursor != 0 {
		t.Errorf("cursor = %d after k, want 0", m.cursor)
	}
}

func TestRecordsUploadPrompt(t *testing.T) {
	m := newRecordsModel(nil, notify.NewCenter())

	m, _ = m.updateKeys(keyMsg("u"))
	if !m.uploading {
		t.Fatal("expected uploading=true after 'u'")
	}
	for _, r := range "/tmp/a.pdf" {
		m, _ = m.updateKeys(keyMsg(string(r)))
	}
	if m.uploadPath != "/tmp/a.pdf" {
		t.Errorf("uploadPath = %q, want %q", m.uploadPath, "/tmp/a.pdf")
	}

	m, _ = m.updateKeys(tea.KeyMsg{Type: tea.KeyEsc})
	if m.uploading || m.uploadPath != "" {
		t.Error("expected esc to cancel the upload prompt")
	}
}

func TestRecordsEmptyUploadPathIsNoop(t *testing.T) {
	m := newRecordsModel(nil, notify.NewCenter())
	m.uploading = true

	m, cmd := m.updateKeys(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("expected no upload command for an empty path")
	}
	if m.uploading {
		t.Error("expected the prompt closed after enter")
	}
}

func TestRecordsUploadedNotifies(t *testing.T) {
	center := notify.NewCenter()
	m := newRecordsModel(nil, center)

	m, _ = m.Update(docUploadedMsg{doc: &domain.MedicalDocument{ID: "d3", Name: "scan.pdf"}})
	if center.UnreadCount() != 1 {
		t.Fatalf("expected one unread notification after upload, got %d", center.UnreadCount())
	}
	if !strings.Contains(m.statusMsg, "scan.pdf") {
		t.Errorf("expected uploaded file name in status, got %q", m.statusMsg)
	}
}

func TestRecordsDeleteCursorClamped(t *testing.T) {
	m := newRecordsModel(nil, notify.NewCenter())
	m.docs = testDocs()
	m.cursor = 1

	// The reloaded list is shorter; the cursor must clamp.
	m, _ = m.Update(docsLoadedMsg{docs: testDocs()[:1]})
	if m.cursor != 0 {
		t.Errorf("cursor = %d after shrink, want 0", m.cursor)
	}
}

func TestRecordsViewShowsDocuments(t *testing.T) {
	m := newRecordsModel(nil, notify.NewCenter())
	m.docs = testDocs()
	m.height = 20

	view := m.View()
	if !strings.Contains(view, "blood-panel.pdf") || !strings.Contains(view, "xray.png") {
		t.Errorf("expected document names in view, got:\n%s", view)
	}
	if !strings.Contains(view, "2.0 KB") || !strings.Contains(view, "5.0 MB") {
		t.Errorf("expected human sizes in view, got:\n%s", view)
	}
}
