package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/vitalink-health/vitalink/pkg/domain"
)

func TestRenderBadge(t *testing.T) {
	tests := []struct {
		name  string
		count int
		want  string
	}{
		{"zero renders nothing", 0, ""},
		{"negative renders nothing", -3, ""},
		{"small count", 5, "5"},
		{"boundary", 99, "99"},
		{"capped display", 150, "99+"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := renderBadge(tc.count)
			if tc.want == "" {
				if got != "" {
					t.Errorf("renderBadge(%d) = %q, want empty", tc.count, got)
				}
				return
			}
			if !strings.Contains(got, tc.want) {
				t.Errorf("renderBadge(%d) = %q, want it to contain %q", tc.count, got, tc.want)
			}
		})
	}
}

func TestBellOverlayEmpty(t *testing.T) {
	out := renderBellOverlay(nil, 0, 20)
	if !strings.Contains(out, "all quiet") {
		t.Errorf("expected empty-mailbox text, got %q", out)
	}
}

func TestBellOverlayNewestFirst(t *testing.T) {
	items := []domain.Notification{
		{ID: uuid.New(), Title: "older", CreatedAt: time.Now().Add(-time.Hour)},
		{ID: uuid.New(), Title: "newer", CreatedAt: time.Now()},
	}

	out := renderBellOverlay(items, 0, 20)
	newerIdx := strings.Index(out, "newer")
	olderIdx := strings.Index(out, "older")
	if newerIdx < 0 || olderIdx < 0 {
		t.Fatalf("expected both titles in overlay, got %q", out)
	}
	if newerIdx > olderIdx {
		t.Error("expected the newest notification listed first")
	}
}

func TestBellOverlayMarksUnread(t *testing.T) {
	items := []domain.Notification{
		{ID: uuid.New(), Title: "seen", Read: true, CreatedAt: time.Now()},
		{ID: uuid.New(), Title: "fresh", Read: false, CreatedAt: time.Now()},
	}

	out := renderBellOverlay(items, 0, 20)
	if !strings.Contains(out, "●") {
		t.Error("expected unread dot for the unread notification")
	}
	if !strings.Contains(out, "·") {
		t.Error("expected muted dot for the read notification")
	}
}

func TestBellOverlayCursorPointer(t *testing.T) {
	items := []domain.Notification{
		{ID: uuid.New(), Title: "alpha", CreatedAt: time.Now()},
		{ID: uuid.New(), Title: "beta", CreatedAt: time.Now()},
	}

	out := renderBellOverlay(items, 1, 20)
	if !strings.Contains(out, ">") {
		t.Errorf("expected cursor pointer in overlay, got %q", out)
	}
}

func TestBellOverlayShowsDescription(t *testing.T) {
	items := []domain.Notification{
		{ID: uuid.New(), Title: "Document uploaded", Description: "scan.pdf", CreatedAt: time.Now()},
	}

	out := renderBellOverlay(items, 0, 20)
	if !strings.Contains(out, "scan.pdf") {
		t.Errorf("expected description in overlay, got %q", out)
	}
}
