package tui

import (
	"fmt"
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vitalink-health/vitalink/pkg/domain"
)

// Shimmer animation for the VITALINK logo.
type shimmerTickMsg time.Time

func shimmerTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return shimmerTickMsg(t)
	})
}

// renderShimmerLogo renders "V I T A L I N K" as a flowing wave of teal
// light, deep sea (#0e3a3a) -> bright teal (#2dd4bf). No hue drift.
func renderShimmerLogo(frame int) string {
	const text = "VITALINK"
	n := len(text)

	var out string

	t := float64(frame)

	for i := 0; i < n; i++ {
		x := float64(i) / float64(n-1)

		// One smooth wave advancing through the text
		phase := t*0.1 - x*3.0
		phase += math.Sin(t*0.023) * 2.0

		b := math.Sin(phase)*0.5 + 0.5
		b = math.Pow(b, 1.3)

		// Slow breathing tide
		tide := math.Sin(t*0.035) * 0.12
		b = b*0.75 + tide + 0.18

		if b > 1.0 {
			b = 1.0
		} else if b < 0.05 {
			b = 0.05
		}

		// Continuous RGB interpolation: deep sea -> bright teal
		// Deep:   (14, 58, 58)   #0e3a3a
		// Bright: (45, 212, 191) #2dd4bf
		r := clampByte(14 + b*(45-14))
		g := clampByte(58 + b*(212-58))
		bl := clampByte(58 + b*(191-58))

		color := fmt.Sprintf("#%02X%02X%02X", r, g, bl)

		s := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(color))
		out += s.Render(string(text[i]))

		if i < n-1 {
			out += "  "
		}
	}

	return out
}

func clampByte(v float64) int {
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return int(v)
}

var (
	// Base styles — vitalink neutral palette
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e4e4ec")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c0c4d0"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	// Help bar
	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	helpLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	// Accent / action styles
	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#2dd4bf"))

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#34d474"))

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f87171"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f59e0b"))

	// Roles
	patientStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#38bdf8"))

	doctorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c084fc"))

	// Notifications
	unreadDotStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f59e0b"))

	badgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#0a0a10")).
			Background(lipgloss.Color("#f59e0b")).
			Bold(true)

	// Assistant chat
	chatUserStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e4e4ec"))

	chatBotStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7dd3c8")).
			Italic(true)

	// Inline input
	inputPromptStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#2dd4bf")).
				Bold(true)

	inputPlaceholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#505868")).
				Italic(true)

	// Prediction bars
	barFillStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#2dd4bf"))

	barEmptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1f2430"))
)

// RoleStyle returns the chip style for an account role.
func RoleStyle(r domain.Role) lipgloss.Style {
	if r == domain.RoleDoctor {
		return doctorStyle
	}
	return patientStyle
}

// helpEntry renders one "key label" pair for the bottom help bar.
func helpEntry(key, label string) string {
	return helpKeyStyle.Render(key) + " " + helpLabelStyle.Render(label)
}
