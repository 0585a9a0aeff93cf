package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vitalink-health/vitalink/internal/notify"
	"github.com/vitalink-health/vitalink/internal/session"
	"github.com/vitalink-health/vitalink/pkg/client"
)

type view int

const (
	viewHome view = iota
	viewRecords
	viewPredict
	viewAssistant
	viewDiary
	viewYou
	viewAuth
)

// loggedOutMsg signals the session ended and the auth view should take over.
type loggedOutMsg struct{}

// App is the root Bubbletea model.
type App struct {
	client  *client.Client
	session *session.Manager
	center  *notify.Center

	view      view
	auth      authModel
	home      homeModel
	records   recordsModel
	predict   predictModel
	assistant assistantModel
	diary     diaryModel
	you       youModel

	bellOpen   bool
	bellCursor int

	width  int
	height int
	frame  int // logo shimmer animation frame
}

// NewApp creates the root TUI application. The starting view follows the
// session manager: dashboards when a session was restored, the auth form
// otherwise.
func NewApp(c *client.Client, sess *session.Manager, center *notify.Center) App {
	a := App{
		client:    c,
		session:   sess,
		center:    center,
		auth:      newAuthModel(sess),
		home:      newHomeModel(c, sess, center),
		records:   newRecordsModel(c, center),
		predict:   newPredictModel(c),
		assistant: newAssistantModel(c),
		diary:     newDiaryModel(c, center),
		you:       newYouModel(c, sess),
	}
	if !sess.IsAuthenticated() {
		a.view = viewAuth
	}
	return a
}

func (a App) Init() tea.Cmd {
	if a.view == viewAuth {
		return tea.Batch(a.auth.Init(), shimmerTickCmd())
	}
	return tea.Batch(a.home.Init(), shimmerTickCmd())
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Chrome: header(2) + tabs(1) + help(1) = 4 lines
		bodyMsg := tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - 4}
		a.auth, _ = a.auth.Update(bodyMsg)
		a.home, _ = a.home.Update(bodyMsg)
		a.records, _ = a.records.Update(bodyMsg)
		a.predict, _ = a.predict.Update(bodyMsg)
		a.assistant, _ = a.assistant.Update(bodyMsg)
		a.diary, _ = a.diary.Update(bodyMsg)
		a.you, _ = a.you.Update(bodyMsg)
		return a, nil

	case shimmerTickMsg:
		a.frame++
		a.assistant, _ = a.assistant.Update(msg)
		return a, shimmerTickCmd()

	case authSuccessMsg:
		a.view = viewHome
		a.you, _ = a.you.Update(msg)
		return a, a.home.Init()

	case logoutRequestMsg:
		sess := a.session
		return a, func() tea.Msg {
			sess.Logout(context.Background())
			return loggedOutMsg{}
		}

	case loggedOutMsg:
		a.view = viewAuth
		a.auth = newAuthModel(a.session)
		a.assistant = newAssistantModel(a.client)
		a.you = newYouModel(a.client, a.session)
		a.bellOpen = false
		return a, nil

	case tea.KeyMsg:
		// ctrl+c always quits, even mid-edit.
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		if a.view == viewAuth {
			var cmd tea.Cmd
			a.auth, cmd = a.auth.Update(msg)
			return a, cmd
		}

		// Bell overlay captures all keys when open.
		if a.bellOpen {
			return a.updateBell(msg), nil
		}

		if !a.isEditing() {
			switch msg.String() {
			case "q":
				return a, tea.Quit
			case "b":
				a.bellOpen = true
				a.bellCursor = 0
				return a, nil
			case "1":
				if a.view != viewHome {
					a.view = viewHome
					return a, a.home.Init()
				}
				return a, nil
			case "2":
				if a.view != viewRecords {
					a.view = viewRecords
					return a, a.records.Init()
				}
				return a, nil
			case "3":
				if a.view != viewPredict {
					a.view = viewPredict
					return a, a.predict.Init()
				}
				return a, nil
			case "4":
				if a.view != viewAssistant {
					a.view = viewAssistant
					return a, a.assistant.Init()
				}
				return a, nil
			case "5":
				if a.view != viewDiary {
					a.view = viewDiary
					return a, a.diary.Init()
				}
				return a, nil
			case "6":
				if a.view != viewYou {
					a.view = viewYou
					return a, a.you.Init()
				}
				return a, nil
			}
		}
	}

	if a.view == viewAuth {
		var cmd tea.Cmd
		a.auth, cmd = a.auth.Update(msg)
		return a, cmd
	}

	var cmd tea.Cmd
	switch a.view {
	case viewHome:
		a.home, cmd = a.home.Update(msg)
	case viewRecords:
		a.records, cmd = a.records.Update(msg)
	case viewPredict:
		a.predict, cmd = a.predict.Update(msg)
	case viewAssistant:
		a.assistant, cmd = a.assistant.Update(msg)
	case viewDiary:
		a.diary, cmd = a.diary.Update(msg)
	case viewYou:
		a.you, cmd = a.you.Update(msg)
	}

	return a, cmd
}

func (a App) updateBell(msg tea.KeyMsg) App {
	items := a.center.Items()
	switch msg.String() {
	case "b", "esc", "q":
		a.bellOpen = false
	case "j", "down":
		if a.bellCursor < len(items)-1 {
			a.bellCursor++
		}
	case "k", "up":
		if a.bellCursor > 0 {
			a.bellCursor--
		}
	case "enter":
		// The overlay lists newest first; map back to insertion order.
		if i := len(items) - 1 - a.bellCursor; i >= 0 && i < len(items) {
			a.center.MarkAsRead(items[i].ID)
		}
	case "a":
		a.center.MarkAllAsRead()
	case "x":
		if i := len(items) - 1 - a.bellCursor; i >= 0 && i < len(items) {
			a.center.Remove(items[i].ID)
			if a.bellCursor >= a.center.Len() && a.bellCursor > 0 {
				a.bellCursor--
			}
		}
	case "X":
		a.center.ClearAll()
		a.bellCursor = 0
	}
	return a
}

func (a App) isEditing() bool {
	switch a.view {
	case viewAuth:
		return true
	case viewRecords:
		return a.records.uploading
	case viewAssistant:
		return a.assistant.inputFocused
	case viewDiary:
		return a.diary.adding
	case viewYou:
		return a.you.editingPhone
	}
	return false
}

func (a App) View() string {
	// Header: centered shimmer logo
	logo := renderShimmerLogo(a.frame)
	logoWidth := lipgloss.Width(logo)
	logoPad := (a.width - logoWidth) / 2
	if logoPad < 0 {
		logoPad = 0
	}
	header := strings.Repeat(" ", logoPad) + logo

	// Status line below logo
	statusLine := ""
	if u := a.session.User(); u != nil {
		parts := []string{
			normalStyle.Render(u.FirstName()),
			RoleStyle(u.Role).Render(string(u.Role)),
		}
		bell := metaStyle.Render("bell")
		if badge := renderBadge(a.center.UnreadCount()); badge != "" {
			bell += " " + badge
		}
		parts = append(parts, bell)
		statusLine = strings.Join(parts, metaStyle.Render(" · "))
	} else {
		statusLine = metaStyle.Render("patient & doctor portal")
	}
	statusWidth := lipgloss.Width(statusLine)
	statusPad := (a.width - statusWidth) / 2
	if statusPad < 0 {
		statusPad = 0
	}
	header += "\n" + strings.Repeat(" ", statusPad) + statusLine

	// Tab bar
	var centeredTabs string
	if a.view == viewAuth {
		centeredTabs = ""
	} else {
		type tabEntry struct {
			key  string
			name string
			v    view
		}
		tabs := []tabEntry{
			{"1", "Home", viewHome},
			{"2", "Records", viewRecords},
			{"3", "Predict", viewPredict},
			{"4", "Assistant", viewAssistant},
			{"5", "Diary", viewDiary},
			{"6", "You", viewYou},
		}
		colWidth := a.width / len(tabs)
		var tabBar strings.Builder
		for _, t := range tabs {
			var label string
			if t.v == a.view {
				label = accentStyle.Render(t.key) + " " + selectedStyle.Underline(true).Render(t.name)
			} else {
				label = metaStyle.Render(t.key) + " " + dimStyle.Render(t.name)
			}
			labelWidth := lipgloss.Width(label)
			leftPad := (colWidth - labelWidth) / 2
			if leftPad < 0 {
				leftPad = 0
			}
			rightPad := colWidth - labelWidth - leftPad
			if rightPad < 0 {
				rightPad = 0
			}
			tabBar.WriteString(strings.Repeat(" ", leftPad) + label + strings.Repeat(" ", rightPad))
		}
		centeredTabs = tabBar.String()
	}

	// Body + help
	var body string
	var help string
	switch a.view {
	case viewAuth:
		body = a.auth.View()
		help = " " + a.auth.helpKeys()
	case viewHome:
		body = a.home.View()
		help = " " + helpEntry("1-6", "tabs") + "  " + helpEntry("b", "bell") + "  " + helpEntry("q", "quit")
	case viewRecords:
		body = a.records.View()
		if a.records.uploading {
			help = " " + helpEntry("enter", "upload") + "  " + helpEntry("esc", "cancel")
		} else {
			help = " " + helpEntry("1-6", "tabs") + "  " + helpEntry("j/k", "nav") + "  " + helpEntry("o", "open") + "  " + helpEntry("c", "copy") + "  " + helpEntry("u", "upload") + "  " + helpEntry("d", "delete") + "  " + helpEntry("b", "bell") + "  " + helpEntry("q", "quit")
		}
	case viewPredict:
		if a.predict.result != nil {
			help = " " + helpEntry("1-6", "tabs") + "  " + helpEntry("esc", "back")
		} else {
			help = " " + helpEntry("1-6", "tabs") + "  " + helpEntry("j/k", "nav") + "  " + helpEntry("space", "toggle") + "  " + helpEntry("enter", "predict") + "  " + helpEntry("x", "clear") + "  " + helpEntry("q", "quit")
		}
		body = a.predict.View()
	case viewAssistant:
		body = a.assistant.View()
		help = " " + helpEntry("1-6", "tabs") + "  " + a.assistant.helpKeys()
	case viewDiary:
		body = a.diary.View()
		if a.diary.adding {
			help = " " + helpEntry("tab", "next") + "  " + helpEntry("ctrl+s", "save") + "  " + helpEntry("esc", "cancel")
		} else {
			help = " " + helpEntry("1-6", "tabs") + "  " + helpEntry("j/k", "nav") + "  " + helpEntry("a", "add") + "  " + helpEntry("b", "bell") + "  " + helpEntry("q", "quit")
		}
	case viewYou:
		body = a.you.View()
		help = " " + helpEntry("1-6", "tabs") + "  " + a.you.helpKeys()
	}

	// Bell overlay
	if a.bellOpen {
		body = renderBellOverlay(a.center.Items(), a.bellCursor, a.height-4)
		help = " " + helpEntry("j/k", "nav") + "  " + helpEntry("enter", "mark read") + "  " + helpEntry("a", "mark all") + "  " + helpEntry("x", "remove") + "  " + helpEntry("X", "clear") + "  " + helpEntry("esc", "close")
	}

	// Chrome budget: header(2) + tabs(1) + help(1) = 4 lines + body
	chrome := 4
	body = strings.TrimRight(truncateToHeight(body, a.height-chrome), "\n")

	return fmt.Sprintf("%s\n%s\n%s\n%s", header, centeredTabs, body, help)
}
