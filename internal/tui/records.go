package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vitalink-health/vitalink/internal/browser"
	"github.com/vitalink-health/vitalink/internal/notify"
	"github.com/vitalink-health/vitalink/pkg/client"
	"github.com/vitalink-health/vitalink/pkg/domain"
)

type docsLoadedMsg struct {
	docs []domain.MedicalDocument
	err  error
}

type docDeletedMsg struct {
	id  string
	err error
}

type docUploadedMsg struct {
	doc *domain.MedicalDocument
	err error
}

// recordsModel is the medical documents tab: list, open, copy link,
// delete, and upload by path.
type recordsModel struct {
	client *client.Client
	center *notify.Center

	docs      []domain.MedicalDocument
	cursor    int
	loading   bool
	err       string
	statusMsg string

	uploading  bool // typing a file path
	uploadPath string

	width  int
	height int
}

func newRecordsModel(c *client.Client, center *notify.Center) recordsModel {
	return recordsModel{client: c, center: center}
}

func (m recordsModel) Init() tea.Cmd {
	return m.load()
}

func (m recordsModel) load() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		docs, err := c.ListDocuments(context.Background())
		return docsLoadedMsg{docs: docs, err: err}
	}
}

func (m recordsModel) Update(msg tea.Msg) (recordsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case docsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err.Error()
		} else {
			m.docs = msg.docs
			m.err = ""
			if m.cursor >= len(m.docs) {
				m.cursor = len(m.docs) - 1
			}
			if m.cursor < 0 {
				m.cursor = 0
			}
		}
		return m, nil

	case docDeletedMsg:
		if msg.err != nil {
			m.statusMsg = "delete failed: " + client.Message(msg.err)
			return m, nil
		}
		m.statusMsg = "document deleted"
		return m, m.load()

	case docUploadedMsg:
		if msg.err != nil {
			m.statusMsg = "upload failed: " + client.Message(msg.err)
			return m, nil
		}
		m.statusMsg = "uploaded " + msg.doc.Name
		m.center.Add("Document uploaded", msg.doc.Name)
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

func (m recordsModel) updateKeys(msg tea.KeyMsg) (recordsModel, tea.Cmd) {
	if m.uploading {
		switch msg.String() {
		case "esc":
			m.uploading = false
			m.uploadPath = ""
		case "enter":
			return m.startUpload()
		default:
			m.uploadPath = editRune(m.uploadPath, msg.String())
		}
		return m, nil
	}

	m.statusMsg = ""
	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.docs)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "r":
		m.loading = true
		return m, m.load()
	case "u":
		m.uploading = true
		m.uploadPath = ""
	case "o":
		if doc, ok := m.selected(); ok && doc.URL != "" {
			browser.Open(doc.URL) //nolint:errcheck // best-effort browser open
			m.statusMsg = "opening in browser"
		}
	case "c":
		if doc, ok := m.selected(); ok && doc.URL != "" {
			if err := clipboard.WriteAll(doc.URL); err == nil {
				m.statusMsg = "link copied"
			} else {
				m.statusMsg = "clipboard unavailable"
			}
		}
	case "d":
		if doc, ok := m.selected(); ok {
			c := m.client
			id := doc.ID
			return m, func() tea.Msg {
				err := c.DeleteDocument(context.Background(), id)
				return docDeletedMsg{id: id, err: err}
			}
		}
	}
	return m, nil
}

func (m recordsModel) selected() (domain.MedicalDocument, bool) {
	if m.cursor < 0 || m.cursor >= len(m.docs) {
		return domain.MedicalDocument{}, false
	}
	return m.docs[m.cursor], true
}

func (m recordsModel) startUpload() (recordsModel, tea.Cmd) {
	path := strings.TrimSpace(m.uploadPath)
	m.uploading = false
	m.uploadPath = ""
	if path == "" {
		return m, nil
	}

	c := m.client
	return m, func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return docUploadedMsg{err: fmt.Errorf("open %s: %w", path, err)}
		}
		defer f.Close() //nolint:errcheck
		doc, err := c.UploadDocument(context.Background(), filepath.Base(path), f)
		return docUploadedMsg{doc: doc, err: err}
	}
}

func (m recordsModel) View() string {
	if m.uploading {
		return " " + selectedStyle.Render("Upload document") + "\n\n" +
			" " + inputPromptStyle.Render("path> ") + m.uploadPath + "█\n\n" +
			" " + dimStyle.Render("enter to upload, esc to cancel")
	}

	if m.loading && len(m.docs) == 0 {
		return " " + dimStyle.Render("loading documents...")
	}
	if m.err != "" {
		return " " + errStyle.Render("error: "+m.err)
	}
	if len(m.docs) == 0 {
		return " " + dimStyle.Render("no documents yet — press u to upload one")
	}

	var sb strings.Builder
	sb.WriteString(" " + metaStyle.Render(fmt.Sprintf("%d documents", len(m.docs))) + "\n\n")

	maxLines := m.height - 5
	if maxLines < 5 {
		maxLines = 10
	}
	for i, doc := range m.docs {
		if i >= maxLines {
			sb.WriteString(" " + metaStyle.Render(fmt.Sprintf("… %d more", len(m.docs)-i)) + "\n")
			break
		}
		cursor := "  "
		nameStyle := normalStyle
		if i == m.cursor {
			cursor = accentStyle.Render("> ")
			nameStyle = selectedStyle
		}
		line := cursor + nameStyle.Render(truncStr(doc.Name, 40))
		if doc.Category != "" {
			line += "  " + accentStyle.Render(doc.Category)
		}
		line += "  " + dimStyle.Render(formatBytes(doc.SizeBytes)) +
			"  " + metaStyle.Render(formatTime(doc.UploadedAt))
		sb.WriteString(" " + line + "\n")
	}

	if m.statusMsg != "" {
		sb.WriteString("\n " + okStyle.Render(m.statusMsg) + "\n")
	}
	return sb.String()
}
