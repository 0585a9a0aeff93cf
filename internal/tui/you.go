package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vitalink-health/vitalink/internal/session"
	"github.com/vitalink-health/vitalink/pkg/client"
	"github.com/vitalink-health/vitalink/pkg/domain"
)

// logoutRequestMsg asks the root app to end the session.
type logoutRequestMsg struct{}

type profileSavedMsg struct {
	user *domain.User
	err  error
}

// youModel is the profile/settings tab.
type youModel struct {
	client  *client.Client
	session *session.Manager

	user *domain.User

	editingPhone bool
	phoneInput   string
	saving       bool
	statusMsg    string

	width  int
	height int
}

func newYouModel(c *client.Client, sess *session.Manager) youModel {
	return youModel{client: c, session: sess, user: sess.User()}
}

func (m youModel) Init() tea.Cmd {
	m.user = m.session.User()
	return nil
}

func (m youModel) Update(msg tea.Msg) (youModel, tea.Cmd) {
	switch msg := msg.(type) {
	case authSuccessMsg:
		m.user = msg.user
		return m, nil

	case profileSavedMsg:
		m.saving = false
		if msg.err != nil {
			m.statusMsg = "update failed: " + client.Message(msg.err)
			return m, nil
		}
		role := domain.RolePatient
		if m.user != nil {
			role = m.user.Role
		}
		msg.user.Role = role
		m.user = msg.user
		m.statusMsg = "profile updated"
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m youModel) updateKeys(msg tea.KeyMsg) (youModel, tea.Cmd) {
	if m.editingPhone {
		switch msg.String() {
		case "esc":
			m.editingPhone = false
			m.phoneInput = ""
		case "enter":
			return m.savePhone()
		default:
			m.phoneInput = editRune(m.phoneInput, msg.String())
		}
		return m, nil
	}

	switch msg.String() {
	case "p":
		m.editingPhone = true
		if m.user != nil {
			m.phoneInput = m.user.Phone
		}
		m.statusMsg = ""
	case "L":
		return m, func() tea.Msg { return logoutRequestMsg{} }
	}
	return m, nil
}

func (m youModel) savePhone() (youModel, tea.Cmd) {
	phone := strings.TrimSpace(m.phoneInput)
	m.editingPhone = false
	m.phoneInput = ""
	if m.saving || m.user == nil || phone == m.user.Phone {
		return m, nil
	}
	m.saving = true
	c := m.client
	return m, func() tea.Msg {
		u, err := c.UpdateProfile(context.Background(), client.UpdateProfileRequest{Phone: phone})
		return profileSavedMsg{user: u, err: err}
	}
}

func (m youModel) View() string {
	u := m.user
	if u == nil {
		u = m.session.User()
	}
	if u == nil {
		return " " + dimStyle.Render("not signed in")
	}

	var sb strings.Builder
	name := u.FullName
	if name == "" {
		name = u.Email
	}
	sb.WriteString(" " + selectedStyle.Render(name) + "  " + RoleStyle(u.Role).Render(string(u.Role)) + "\n\n")

	row := func(label, value string) {
		if value == "" {
			value = dimStyle.Render("—")
		} else {
			value = normalStyle.Render(value)
		}
		sb.WriteString(fmt.Sprintf(" %s %s\n", metaStyle.Render(fmt.Sprintf("%-14s", label)), value))
	}

	row("email", u.Email)
	if m.editingPhone {
		sb.WriteString(fmt.Sprintf(" %s %s█\n", metaStyle.Render(fmt.Sprintf("%-14s", "phone")), m.phoneInput))
	} else {
		row("phone", u.Phone)
	}
	row("date of birth", u.DateOfBirth)
	row("gender", u.Gender)
	if !u.CreatedAt.IsZero() {
		row("member since", u.CreatedAt.Format("Jan 2006"))
	}

	if exp, ok := m.session.Expiry(); ok {
		left := time.Until(exp)
		if left > 0 {
			sb.WriteString("\n " + dimStyle.Render(fmt.Sprintf("session expires in %s", left.Round(time.Minute))) + "\n")
		} else {
			sb.WriteString("\n " + warnStyle.Render("session expired — sign in again soon") + "\n")
		}
	}

	sb.WriteString("\n")
	switch {
	case m.saving:
		sb.WriteString(" " + dimStyle.Render("saving..."))
	case m.editingPhone:
		sb.WriteString(" " + dimStyle.Render("enter to save, esc to cancel"))
	case m.statusMsg != "":
		sb.WriteString(" " + okStyle.Render(m.statusMsg))
	}

	return sb.String()
}

func (m youModel) helpKeys() string {
	if m.editingPhone {
		return helpEntry("enter", "save") + "  " + helpEntry("esc", "cancel")
	}
	return helpEntry("p", "edit phone") + "  " + helpEntry("L", "sign out")
}
