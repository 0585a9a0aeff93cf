package tui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vitalink-health/vitalink/pkg/client"
	"github.com/vitalink-health/vitalink/pkg/domain"
)

func testSymptoms() []domain.Symptom {
	return []domain.Symptom{
		{ID: "fever", Name: "Fever"},
		{ID: "cough", Name: "Cough"},
		{ID: "fatigue", Name: "Fatigue"},
	}
}

func TestPredictToggleSelection(t *testing.T) {
	m := newPredictModel(nil)
	m.symptoms = testSymptoms()

	m, _ = m.updateKeys(keyMsg(" "))
	if !m.selected["fever"] {
		t.Error("expected fever selected after space")
	}
	m, _ = m.updateKeys(keyMsg(" "))
	if m.selected["fever"] {
		t.Error("expected fever deselected after second space")
	}
}

func TestPredictClearSelection(t *testing.T) {
	m := newPredictModel(nil)
	m.symptoms = testSymptoms()
	m.selected["fever"] = true
	m.selected["cough"] = true

	m, _ = m.updateKeys(keyMsg("x"))
	if len(m.selected) != 0 {
		t.Errorf("expected empty selection after 'x', got %v", m.selected)
	}
}

func TestPredictCursorBounds(t *testing.T) {
	m := newPredictModel(nil)
	m.symptoms = testSymptoms()

	m, _ = m.updateKeys(keyMsg("k"))
	if m.cursor != 0 {
		t.Errorf("cursor must not go above 0, got %d", m.cursor)
	}
	for i := 0; i < 10; i++ {
		m, _ = m.updateKeys(keyMsg("j"))
	}
	if m.cursor != 2 {
		t.Errorf("cursor must stop at the last symptom, got %d", m.cursor)
	}
}

func TestPredictEnterWithoutSelectionIsNoop(t *testing.T) {
	m := newPredictModel(nil)
	m.symptoms = testSymptoms()

	m, cmd := m.updateKeys(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("expected no command with nothing selected")
	}
	if m.predicting {
		t.Error("expected predicting=false with nothing selected")
	}
}

func TestPredictSendsSymptomsInPickerOrder(t *testing.T) {
	var got []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string][]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode predict payload: %v", err)
		}
		got = body["symptoms"]
		json.NewEncoder(w).Encode(domain.Prediction{Disease: "Common Cold", Confidence: 0.82}) //nolint:errcheck
	}))
	defer srv.Close()

	m := newPredictModel(client.New(srv.URL, "tok"))
	m.symptoms = testSymptoms()
	// Select fatigue first, then fever; the request must follow picker order.
	m.selected["fatigue"] = true
	m.selected["fever"] = true

	m, cmd := m.updateKeys(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a predict command")
	}
	if !m.predicting {
		t.Error("expected predicting=true while the call is in flight")
	}

	msg, ok := cmd().(predictionMsg)
	if !ok {
		t.Fatalf("expected predictionMsg, got %T", cmd())
	}
	if msg.err != nil {
		t.Fatalf("unexpected predict error: %v", msg.err)
	}
	want := []string{"fever", "fatigue"}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("symptom ids = %v, want %v", got, want)
	}
}

func TestPredictEscLeavesResultView(t *testing.T) {
	m := newPredictModel(nil)
	m.result = &domain.Prediction{Disease: "Migraine", Confidence: 0.7}

	m, _ = m.updateKeys(tea.KeyMsg{Type: tea.KeyEsc})
	if m.result != nil {
		t.Error("expected result cleared after esc")
	}
}

func TestRenderBar(t *testing.T) {
	tests := []struct {
		name     string
		weight   float64
		width    int
		wantFill int
	}{
		{"half", 0.5, 10, 5},
		{"full", 1.0, 10, 10},
		{"empty", 0.0, 10, 0},
		{"clamped above one", 1.5, 10, 10},
		{"clamped below zero", -0.2, 10, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			bar := renderBar(tc.weight, tc.width)
			if fill := strings.Count(bar, "█"); fill != tc.wantFill {
				t.Errorf("renderBar(%v, %d) fill = %d, want %d", tc.weight, tc.width, fill, tc.wantFill)
			}
			if total := strings.Count(bar, "█") + strings.Count(bar, "░"); total != tc.width {
				t.Errorf("renderBar(%v, %d) total cells = %d, want %d", tc.weight, tc.width, total, tc.width)
			}
		})
	}
}

func TestPredictResultViewDisclaimer(t *testing.T) {
	m := newPredictModel(nil)
	m.width = 60
	m.result = &domain.Prediction{
		Disease:    "Common Cold",
		Confidence: 0.82,
		Contributions: []domain.SymptomContribution{
			{Symptom: "Fever", Weight: 0.6},
		},
		Precautions: []string{"rest", "fluids"},
	}

	view := m.View()
	if !strings.Contains(view, "Common Cold") {
		t.Error("expected disease name in result view")
	}
	if !strings.Contains(view, "82% confidence") {
		t.Error("expected confidence percentage in result view")
	}
	if !strings.Contains(view, "not a diagnosis") {
		t.Error("expected the disclaimer line in result view")
	}
}
