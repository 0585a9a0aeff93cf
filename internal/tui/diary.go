package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vitalink-health/vitalink/internal/notify"
	"github.com/vitalink-health/vitalink/pkg/client"
	"github.com/vitalink-health/vitalink/pkg/domain"
)

type diaryLoadedMsg struct {
	entries []domain.DiaryEntry
	err     error
}

type diarySavedMsg struct {
	entry *domain.DiaryEntry
	err   error
}

type diaryField int

const (
	diaryFieldMood diaryField = iota
	diaryFieldNote
	diaryFieldWeight
	diaryFieldHeartRate
	numDiaryFields
)

// diaryModel is the health diary tab: entry list plus an add form.
type diaryModel struct {
	client *client.Client
	center *notify.Center

	entries []domain.DiaryEntry
	cursor  int
	loading bool
	err     string

	adding    bool
	fields    [numDiaryFields]string
	focus     diaryField
	saving    bool
	statusMsg string

	width  int
	height int
}

func newDiaryModel(c *client.Client, center *notify.Center) diaryModel {
	return diaryModel{client: c, center: center}
}

func (m diaryModel) Init() tea.Cmd {
	return m.load()
}

func (m diaryModel) load() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		entries, err := c.ListDiaryEntries(context.Background())
		return diaryLoadedMsg{entries: entries, err: err}
	}
}

func (m diaryModel) Update(msg tea.Msg) (diaryModel, tea.Cmd) {
	switch msg := msg.(type) {
	case diaryLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err.Error()
		} else {
			m.entries = msg.entries
			m.err = ""
		}
		return m, nil

	case diarySavedMsg:
		m.saving = false
		if msg.err != nil {
			m.statusMsg = "save failed: " + client.Message(msg.err)
			return m, nil
		}
		m.adding = false
		m.fields = [numDiaryFields]string{}
		m.focus = diaryFieldMood
		m.statusMsg = "entry saved"
		m.center.Add("Diary entry saved", "")
		return m, m.load()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m diaryModel) updateKeys(msg tea.KeyMsg) (diaryModel, tea.Cmd) {
	if m.adding {
		switch msg.String() {
		case "esc":
			m.adding = false
			m.fields = [numDiaryFields]string{}
		case "tab", "down":
			m.focus = (m.focus + 1) % numDiaryFields
		case "shift+tab", "up":
			m.focus = (m.focus - 1 + numDiaryFields) % numDiaryFields
		case "ctrl+s":
			return m.submit()
		case "enter":
			if m.focus == numDiaryFields-1 {
				return m.submit()
			}
			m.focus++
		case "backspace":
			m.fields[m.focus] = editRune(m.fields[m.focus], "backspace")
		default:
			if key := msg.String(); len(key) == 1 {
				m.fields[m.focus] = editRune(m.fields[m.focus], key)
			}
		}
		return m, nil
	}

	m.statusMsg = ""
	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "a":
		m.adding = true
		m.focus = diaryFieldMood
	case "r":
		m.loading = true
		return m, m.load()
	}
	return m, nil
}

func (m diaryModel) submit() (diaryModel, tea.Cmd) {
	if m.saving {
		return m, nil
	}
	mood := strings.TrimSpace(m.fields[diaryFieldMood])
	note := strings.TrimSpace(m.fields[diaryFieldNote])
	if mood == "" && note == "" {
		m.statusMsg = "add a mood or a note first"
		return m, nil
	}

	req := client.CreateDiaryEntryRequest{Mood: mood, Note: note}
	if w, err := strconv.ParseFloat(strings.TrimSpace(m.fields[diaryFieldWeight]), 64); err == nil {
		req.WeightKg = w
	}
	if hr, err := strconv.Atoi(strings.TrimSpace(m.fields[diaryFieldHeartRate])); err == nil {
		req.HeartRate = hr
	}

	m.saving = true
	c := m.client
	return m, func() tea.Msg {
		entry, err := c.CreateDiaryEntry(context.Background(), req)
		return diarySavedMsg{entry: entry, err: err}
	}
}

func (m diaryModel) View() string {
	if m.adding {
		return m.formView()
	}

	if m.loading && len(m.entries) == 0 {
		return " " + dimStyle.Render("loading diary...")
	}
	if m.err != "" {
		return " " + errStyle.Render("error: "+m.err)
	}
	if len(m.entries) == 0 {
		return " " + dimStyle.Render("no entries yet — press a to add today's")
	}

	var sb strings.Builder
	sb.WriteString(" " + metaStyle.Render(fmt.Sprintf("%d entries", len(m.entries))) + "\n\n")

	maxLines := m.height - 5
	if maxLines < 5 {
		maxLines = 10
	}
	for i, e := range m.entries {
		if i >= maxLines {
			sb.WriteString(" " + metaStyle.Render(fmt.Sprintf("… %d more", len(m.entries)-i)) + "\n")
			break
		}
		cursor := "  "
		style := normalStyle
		if i == m.cursor {
			cursor = accentStyle.Render("> ")
			style = selectedStyle
		}
		line := cursor + metaStyle.Render(e.CreatedAt.Format("Jan 02"))
		if e.Mood != "" {
			line += "  " + accentStyle.Render(e.Mood)
		}
		if e.Note != "" {
			line += "  " + style.Render(truncStr(e.Note, 50))
		}
		var vitals []string
		if e.WeightKg > 0 {
			vitals = append(vitals, fmt.Sprintf("%.1f kg", e.WeightKg))
		}
		if e.HeartRate > 0 {
			vitals = append(vitals, fmt.Sprintf("%d bpm", e.HeartRate))
		}
		if len(vitals) > 0 {
			line += "  " + dimStyle.Render(strings.Join(vitals, " · "))
		}
		sb.WriteString(" " + line + "\n")
	}

	if m.statusMsg != "" {
		sb.WriteString("\n " + okStyle.Render(m.statusMsg) + "\n")
	}
	return sb.String()
}

func (m diaryModel) formView() string {
	var b strings.Builder
	b.WriteString(" " + selectedStyle.Render("New diary entry") + "\n\n")

	labels := [numDiaryFields]string{"mood", "note", "weight kg", "heart rate"}
	for i := diaryField(0); i < numDiaryFields; i++ {
		cursor := " "
		style := metaStyle
		if i == m.focus {
			cursor = ">"
			style = selectedStyle
		}
		value := m.fields[i]
		if i == m.focus {
			value += "█"
		}
		fmt.Fprintf(&b, " %s %s %s\n", cursor, style.Render(fmt.Sprintf("%-10s", labels[i])), value)
	}

	b.WriteString("\n")
	if m.saving {
		b.WriteString(" " + dimStyle.Render("saving..."))
	} else if m.statusMsg != "" {
		b.WriteString(" " + warnStyle.Render(m.statusMsg))
	} else {
		b.WriteString(" " + dimStyle.Render("ctrl+s to save, esc to cancel"))
	}
	return b.String()
}
