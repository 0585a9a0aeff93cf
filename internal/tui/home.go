package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vitalink-health/vitalink/internal/notify"
	"github.com/vitalink-health/vitalink/internal/session"
	"github.com/vitalink-health/vitalink/pkg/client"
)

type dashboardLoadedMsg struct {
	docCount   int
	diaryCount int
	err        error
}

// homeModel is the role-aware dashboard: greeting, quick stats, and the
// most recent notifications.
type homeModel struct {
	client  *client.Client
	session *session.Manager
	center  *notify.Center

	docCount   int
	diaryCount int
	loaded     bool
	loading    bool
	err        string
	width      int
	height     int
}

func newHomeModel(c *client.Client, sess *session.Manager, center *notify.Center) homeModel {
	return homeModel{client: c, session: sess, center: center}
}

func (m homeModel) Init() tea.Cmd {
	if !m.session.IsAuthenticated() {
		return nil
	}
	return m.load()
}

func (m homeModel) load() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		docs, err := c.ListDocuments(context.Background())
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}
		entries, err := c.ListDiaryEntries(context.Background())
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}
		return dashboardLoadedMsg{docCount: len(docs), diaryCount: len(entries)}
	}
}

func (m homeModel) Update(msg tea.Msg) (homeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err.Error()
		} else {
			m.loaded = true
			m.docCount = msg.docCount
			m.diaryCount = msg.diaryCount
			m.err = ""
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func greetingFor(hour int) string {
	switch {
	case hour < 5:
		return "Good night"
	case hour < 12:
		return "Good morning"
	case hour < 18:
		return "Good afternoon"
	default:
		return "Good evening"
	}
}

func (m homeModel) View() string {
	u := m.session.User()
	if u == nil {
		return " " + dimStyle.Render("not signed in")
	}

	var sb strings.Builder

	greeting := fmt.Sprintf("%s, %s.", greetingFor(time.Now().Hour()), u.FirstName())
	sb.WriteString(" " + selectedStyle.Render(greeting) + "\n")

	if u.Role == "doctor" {
		sb.WriteString(" " + dimStyle.Render("Here is your practice overview.") + "\n\n")
	} else {
		sb.WriteString(" " + dimStyle.Render("Here is your care overview.") + "\n\n")
	}

	// Quick stats
	switch {
	case m.err != "":
		sb.WriteString(" " + errStyle.Render("error: "+m.err) + "\n")
	case !m.loaded:
		sb.WriteString(" " + dimStyle.Render("loading overview...") + "\n")
	default:
		stats := []string{
			accentStyle.Render(fmt.Sprintf("%d", m.docCount)) + " " + dimStyle.Render("documents"),
			accentStyle.Render(fmt.Sprintf("%d", m.diaryCount)) + " " + dimStyle.Render("diary entries"),
			unreadDotStyle.Render(fmt.Sprintf("%d", m.center.UnreadCount())) + " " + dimStyle.Render("unread"),
		}
		sb.WriteString(" " + strings.Join(stats, "   ") + "\n")
	}

	// Recent notifications, newest last in the center so walk backwards.
	items := m.center.Items()
	sb.WriteString("\n " + metaStyle.Render("Recent activity") + "\n")
	if len(items) == 0 {
		sb.WriteString(" " + dimStyle.Render("nothing yet") + "\n")
		return sb.String()
	}
	shown := 0
	for i := len(items) - 1; i >= 0 && shown < 5; i-- {
		n := items[i]
		dot := metaStyle.Render("·")
		if !n.Read {
			dot = unreadDotStyle.Render("●")
		}
		line := fmt.Sprintf(" %s %s", dot, normalStyle.Render(truncStr(n.Title, 50)))
		if n.Description != "" {
			line += " " + dimStyle.Render("— "+truncStr(n.Description, 40))
		}
		line += " " + metaStyle.Render(formatTime(n.CreatedAt))
		sb.WriteString(line + "\n")
		shown++
	}

	return sb.String()
}
