package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vitalink-health/vitalink/internal/session"
	"github.com/vitalink-health/vitalink/pkg/domain"
)

type authMode int

const (
	modeLogin authMode = iota
	modeSignup
)

type authField int

const (
	fieldEmail authField = iota
	fieldPassword
	fieldExtra // role selector on login, full name on signup
	numAuthFields
)

// authSuccessMsg tells the root app a login completed and the dashboards
// are reachable.
type authSuccessMsg struct {
	user *domain.User
}

// authResultMsg carries a finished login/signup attempt back to the form.
type authResultMsg struct {
	signupOK bool
	err      error
}

// authModel is the login/signup form. It is the only writer that drives
// the session manager's Login and Signup operations; the manager's
// loading flag gates the submit key so operations never overlap.
type authModel struct {
	session *session.Manager

	mode     authMode
	email    string
	password string
	fullName string
	role     domain.Role
	focus    authField
	notice   string // local validation / info line, distinct from session error
	width    int
	height   int
}

func newAuthModel(sess *session.Manager) authModel {
	return authModel{
		session: sess,
		role:    domain.RolePatient,
	}
}

func (m authModel) Init() tea.Cmd {
	return nil
}

func (m authModel) Update(msg tea.Msg) (authModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case authResultMsg:
		if msg.err != nil {
			// The message itself is read from session.Err() at render time.
			return m, nil
		}
		if msg.signupOK {
			// Per the portal's auth flow, signup routes back to the login
			// form rather than straight into the dashboards.
			m.mode = modeLogin
			m.password = ""
			m.fullName = ""
			m.focus = fieldEmail
			m.notice = "Account created — sign in to continue"
		}
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m authModel) updateKeys(msg tea.KeyMsg) (authModel, tea.Cmd) {
	if m.session.IsLoading() {
		// An auth call is in flight; swallow everything but quit, which
		// the root app already handled.
		return m, nil
	}

	switch msg.String() {
	case "tab", "down":
		m.focus = (m.focus + 1) % numAuthFields
		return m, nil
	case "shift+tab", "up":
		m.focus = (m.focus - 1 + numAuthFields) % numAuthFields
		return m, nil
	case "ctrl+t":
		return m.toggleMode(), nil
	case "ctrl+s":
		return m.submit()
	case "enter":
		if m.focus == numAuthFields-1 {
			return m.submit()
		}
		m.focus++
		return m, nil
	case "backspace":
		m.notice = ""
		switch m.focus {
		case fieldEmail:
			m.email = editRune(m.email, "backspace")
		case fieldPassword:
			m.password = editRune(m.password, "backspace")
		case fieldExtra:
			if m.mode == modeSignup {
				m.fullName = editRune(m.fullName, "backspace")
			}
		}
		return m, nil
	}

	key := msg.String()

	// The role row is a selector, not a text field.
	if m.focus == fieldExtra && m.mode == modeLogin {
		switch key {
		case "h", "l", "left", "right":
			if m.role == domain.RolePatient {
				m.role = domain.RoleDoctor
			} else {
				m.role = domain.RolePatient
			}
		}
		return m, nil
	}

	if len(key) == 1 {
		m.notice = ""
		switch m.focus {
		case fieldEmail:
			m.email = editRune(m.email, key)
		case fieldPassword:
			m.password = editRune(m.password, key)
		case fieldExtra:
			m.fullName = editRune(m.fullName, key)
		}
	}
	return m, nil
}

func (m authModel) toggleMode() authModel {
	if m.mode == modeLogin {
		m.mode = modeSignup
	} else {
		m.mode = modeLogin
	}
	m.focus = fieldEmail
	m.notice = ""
	// Don't show a stale error from the other form.
	m.session.ClearError()
	return m
}

func (m authModel) submit() (authModel, tea.Cmd) {
	email := strings.TrimSpace(m.email)
	password := m.password

	if email == "" || !strings.Contains(email, "@") {
		m.notice = "enter a valid email address"
		return m, nil
	}
	if password == "" {
		m.notice = "password is required"
		return m, nil
	}

	sess := m.session
	if m.mode == modeSignup {
		// Password policy lives in the form, not the session manager.
		if len(password) < 8 {
			m.notice = "password must be at least 8 characters"
			return m, nil
		}
		fullName := strings.TrimSpace(m.fullName)
		if fullName == "" {
			m.notice = "full name is required"
			return m, nil
		}
		m.notice = ""
		return m, func() tea.Msg {
			if err := sess.Signup(context.Background(), email, password, fullName); err != nil {
				return authResultMsg{err: err}
			}
			return authResultMsg{signupOK: true}
		}
	}

	role := m.role
	m.notice = ""
	return m, func() tea.Msg {
		if err := sess.Login(context.Background(), email, password, role); err != nil {
			return authResultMsg{err: err}
		}
		return authSuccessMsg{user: sess.User()}
	}
}

func (m authModel) View() string {
	var b strings.Builder

	title := "Sign in to Vitalink"
	if m.mode == modeSignup {
		title = "Create your Vitalink account"
	}
	b.WriteString(" " + selectedStyle.Render(title) + "\n\n")

	render := func(f authField, label, value string, mask bool) {
		cursor := " "
		style := metaStyle
		if f == m.focus {
			cursor = ">"
			style = selectedStyle
		}
		display := value
		if mask {
			display = strings.Repeat("•", len([]rune(value)))
		}
		if f == m.focus {
			display += "█"
		}
		fmt.Fprintf(&b, " %s %s %s\n", cursor, style.Render(fmt.Sprintf("%-10s", label)), display)
	}

	render(fieldEmail, "email", m.email, false)
	render(fieldPassword, "password", m.password, true)

	if m.mode == modeLogin {
		cursor := " "
		style := metaStyle
		if m.focus == fieldExtra {
			cursor = ">"
			style = selectedStyle
		}
		roleChip := RoleStyle(m.role).Render(string(m.role))
		fmt.Fprintf(&b, " %s %s %s  %s\n", cursor, style.Render(fmt.Sprintf("%-10s", "role")), roleChip, metaStyle.Render("(h/l to switch)"))
	} else {
		render(fieldExtra, "full name", m.fullName, false)
	}

	b.WriteString("\n")

	switch {
	case m.session.IsLoading():
		if m.mode == modeSignup {
			b.WriteString(" " + dimStyle.Render("creating account..."))
		} else {
			b.WriteString(" " + dimStyle.Render("signing in..."))
		}
	case m.session.Err() != "":
		b.WriteString(" " + errStyle.Render(m.session.Err()))
	case m.notice != "":
		b.WriteString(" " + warnStyle.Render(m.notice))
	}

	return b.String()
}

func (m authModel) helpKeys() string {
	other := "signup"
	if m.mode == modeSignup {
		other = "login"
	}
	return helpEntry("tab", "next") + "  " + helpEntry("enter", "submit") + "  " +
		helpEntry("ctrl+t", other) + "  " + helpEntry("ctrl+c", "quit")
}
