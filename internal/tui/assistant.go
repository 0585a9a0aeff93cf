package tui

import (
	"context"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vitalink-health/vitalink/pkg/client"
	"github.com/vitalink-health/vitalink/pkg/domain"
)

type chatReplyMsg struct {
	reply *domain.ChatMessage
	err   error
}

// assistantModel is the chat assistant tab. The conversation lives only
// in this model; the assistant service is stateless and gets the history
// with every turn.
type assistantModel struct {
	client *client.Client

	messages     []domain.ChatMessage
	input        string
	inputFocused bool
	sending      bool
	err          string
	statusMsg    string
	animFrame    int
	width        int
	height       int
}

func newAssistantModel(c *client.Client) assistantModel {
	return assistantModel{client: c, inputFocused: true}
}

func (m assistantModel) Init() tea.Cmd {
	return nil
}

func (m assistantModel) Update(msg tea.Msg) (assistantModel, tea.Cmd) {
	switch msg := msg.(type) {
	case chatReplyMsg:
		m.sending = false
		if msg.err != nil {
			m.err = client.Message(msg.err)
		} else {
			m.err = ""
			m.messages = append(m.messages, *msg.reply)
		}
		return m, nil

	case shimmerTickMsg:
		m.animFrame++
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

func (m assistantModel) updateKeys(msg tea.KeyMsg) (assistantModel, tea.Cmd) {
	if !m.inputFocused {
		switch msg.String() {
		case "enter", "i":
			m.inputFocused = true
		case "c":
			// Copy the assistant's latest reply.
			for i := len(m.messages) - 1; i >= 0; i-- {
				if m.messages[i].Role == domain.ChatRoleAssistant {
					if err := clipboard.WriteAll(m.messages[i].Body); err == nil {
						m.statusMsg = "reply copied"
					} else {
						m.statusMsg = "clipboard unavailable"
					}
					break
				}
			}
		}
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.inputFocused = false
		return m, nil
	case "enter":
		return m.send()
	default:
		m.statusMsg = ""
		m.input = editRune(m.input, msg.String())
		return m, nil
	}
}

func (m assistantModel) send() (assistantModel, tea.Cmd) {
	body := strings.TrimSpace(m.input)
	if body == "" || m.sending {
		return m, nil
	}

	history := make([]domain.ChatMessage, len(m.messages))
	copy(history, m.messages)

	m.messages = append(m.messages, domain.ChatMessage{
		Role:      domain.ChatRoleUser,
		Body:      body,
		CreatedAt: time.Now(),
	})
	m.input = ""
	m.sending = true

	c := m.client
	return m, func() tea.Msg {
		reply, err := c.SendChat(context.Background(), body, history)
		return chatReplyMsg{reply: reply, err: err}
	}
}

func (m assistantModel) View() string {
	var sb strings.Builder

	bodyWidth := m.width - 14
	if bodyWidth < 20 {
		bodyWidth = 20
	}

	if len(m.messages) == 0 {
		sb.WriteString(" " + dimStyle.Render("Ask the assistant about symptoms, medication, or your records.") + "\n")
	}

	maxLines := m.height - 4
	if maxLines < 5 {
		maxLines = 10
	}
	var lines []string
	for _, msg := range m.messages {
		who := chatUserStyle.Render("you")
		style := chatUserStyle
		if msg.Role == domain.ChatRoleAssistant {
			who = chatBotStyle.Render("assistant")
			style = chatBotStyle
		}
		prefix := " " + metaStyle.Render(msg.CreatedAt.Format("15:04")) + "  " + who + "  "
		wrapped := lipgloss.NewStyle().Width(bodyWidth).Render(style.Render(msg.Body))
		for j, bl := range strings.Split(wrapped, "\n") {
			if j == 0 {
				lines = append(lines, prefix+bl)
			} else {
				lines = append(lines, strings.Repeat(" ", 14)+bl)
			}
		}
		lines = append(lines, "")
	}
	// Keep the tail of the conversation in view.
	if len(lines) > maxLines {
		lines = lines[len(lines)-maxLines:]
	}
	for _, l := range lines {
		sb.WriteString(l + "\n")
	}

	if m.sending {
		sb.WriteString(" " + dimStyle.Render("assistant is thinking...") + "\n")
	} else if m.err != "" {
		sb.WriteString(" " + errStyle.Render(m.err) + "\n")
	} else if m.statusMsg != "" {
		sb.WriteString(" " + okStyle.Render(m.statusMsg) + "\n")
	}

	// Input line
	cursor := " "
	if m.inputFocused && (m.animFrame/4)%2 == 0 {
		cursor = accentStyle.Render("█")
	}
	switch {
	case !m.inputFocused && m.input == "":
		sb.WriteString(" " + inputPromptStyle.Render("> ") + inputPlaceholderStyle.Render("press enter to type"))
	case m.input == "":
		sb.WriteString(" " + inputPromptStyle.Render("> ") + cursor)
	default:
		sb.WriteString(" " + inputPromptStyle.Render("> ") + chatUserStyle.Render(m.input) + cursor)
	}

	return sb.String()
}

func (m assistantModel) helpKeys() string {
	if m.inputFocused {
		return helpEntry("enter", "send") + "  " + helpEntry("esc", "nav")
	}
	return helpEntry("enter", "type") + "  " + helpEntry("c", "copy reply")
}
