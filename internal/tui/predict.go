package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vitalink-health/vitalink/pkg/client"
	"github.com/vitalink-health/vitalink/pkg/domain"
)

type symptomsLoadedMsg struct {
	symptoms []domain.Symptom
	err      error
}

type predictionMsg struct {
	result *domain.Prediction
	err    error
}

// predictModel is the symptom checker tab: pick symptoms, run the
// predictor service, render the result with contribution bars. The model
// behind the endpoint is a black box to the client.
type predictModel struct {
	client *client.Client

	symptoms   []domain.Symptom
	selected   map[string]bool
	cursor     int
	loading    bool
	predicting bool
	result     *domain.Prediction
	err        string
	width      int
	height     int
}

func newPredictModel(c *client.Client) predictModel {
	return predictModel{client: c, selected: map[string]bool{}}
}

func (m predictModel) Init() tea.Cmd {
	if len(m.symptoms) > 0 {
		return nil
	}
	return m.load()
}

func (m predictModel) load() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		symptoms, err := c.ListSymptoms(context.Background())
		return symptomsLoadedMsg{symptoms: symptoms, err: err}
	}
}

func (m predictModel) Update(msg tea.Msg) (predictModel, tea.Cmd) {
	switch msg := msg.(type) {
	case symptomsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err.Error()
		} else {
			m.symptoms = msg.symptoms
			m.err = ""
		}
		return m, nil

	case predictionMsg:
		m.predicting = false
		if msg.err != nil {
			m.err = client.Message(msg.err)
		} else {
			m.result = msg.result
			m.err = ""
		}
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

func (m predictModel) updateKeys(msg tea.KeyMsg) (predictModel, tea.Cmd) {
	// Result view: esc returns to the symptom picker.
	if m.result != nil {
		if msg.String() == "esc" {
			m.result = nil
		}
		return m, nil
	}

	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.symptoms)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case " ":
		if m.cursor < len(m.symptoms) {
			id := m.symptoms[m.cursor].ID
			if m.selected[id] {
				delete(m.selected, id)
			} else {
				m.selected[id] = true
			}
		}
	case "x":
		m.selected = map[string]bool{}
	case "enter":
		if len(m.selected) == 0 || m.predicting {
			return m, nil
		}
		ids := make([]string, 0, len(m.selected))
		for _, s := range m.symptoms { // keep picker order, not map order
			if m.selected[s.ID] {
				ids = append(ids, s.ID)
			}
		}
		m.predicting = true
		c := m.client
		return m, func() tea.Msg {
			result, err := c.Predict(context.Background(), ids)
			return predictionMsg{result: result, err: err}
		}
	}
	return m, nil
}

// renderBar draws a fixed-width contribution bar for a 0..1 weight.
func renderBar(weight float64, width int) string {
	if width < 1 {
		width = 1
	}
	fill := int(weight*float64(width) + 0.5)
	if fill > width {
		fill = width
	}
	if fill < 0 {
		fill = 0
	}
	return barFillStyle.Render(strings.Repeat("█", fill)) +
		barEmptyStyle.Render(strings.Repeat("░", width-fill))
}

func (m predictModel) View() string {
	if m.result != nil {
		return m.resultView()
	}

	if m.loading && len(m.symptoms) == 0 {
		return " " + dimStyle.Render("loading symptoms...")
	}
	if m.err != "" && len(m.symptoms) == 0 {
		return " " + errStyle.Render("error: "+m.err)
	}
	if len(m.symptoms) == 0 {
		return " " + dimStyle.Render("the predictor service has no symptoms to offer")
	}

	var sb strings.Builder
	sb.WriteString(" " + selectedStyle.Render("How are you feeling?") + " " +
		dimStyle.Render(fmt.Sprintf("%d selected", len(m.selected))) + "\n\n")

	maxLines := m.height - 6
	if maxLines < 5 {
		maxLines = 10
	}
	start := 0
	if m.cursor >= maxLines {
		start = m.cursor - maxLines + 1
	}
	for i := start; i < len(m.symptoms) && i < start+maxLines; i++ {
		s := m.symptoms[i]
		cursor := "  "
		style := normalStyle
		if i == m.cursor {
			cursor = accentStyle.Render("> ")
			style = selectedStyle
		}
		box := metaStyle.Render("[ ]")
		if m.selected[s.ID] {
			box = accentStyle.Render("[x]")
		}
		sb.WriteString(" " + cursor + box + " " + style.Render(s.Name) + "\n")
	}

	if m.predicting {
		sb.WriteString("\n " + dimStyle.Render("consulting the model...") + "\n")
	} else if m.err != "" {
		sb.WriteString("\n " + errStyle.Render(m.err) + "\n")
	}
	return sb.String()
}

func (m predictModel) resultView() string {
	r := m.result
	var sb strings.Builder

	sb.WriteString(" " + selectedStyle.Render(r.Disease) + "  " +
		accentStyle.Render(fmt.Sprintf("%.0f%% confidence", r.Confidence*100)) + "\n\n")

	barWidth := m.width / 3
	if barWidth < 10 {
		barWidth = 10
	}
	if len(r.Contributions) > 0 {
		sb.WriteString(" " + metaStyle.Render("Symptom contribution") + "\n")
		for _, c := range r.Contributions {
			sb.WriteString(fmt.Sprintf(" %-20s %s %s\n",
				normalStyle.Render(truncStr(c.Symptom, 20)),
				renderBar(c.Weight, barWidth),
				dimStyle.Render(fmt.Sprintf("%.0f%%", c.Weight*100))))
		}
	}

	if len(r.Precautions) > 0 {
		sb.WriteString("\n " + metaStyle.Render("Suggested precautions") + "\n")
		for _, p := range r.Precautions {
			sb.WriteString(" " + accentStyle.Render("·") + " " + normalStyle.Render(p) + "\n")
		}
	}

	sb.WriteString("\n " + dimStyle.Render("This is not a diagnosis. Talk to your doctor about any concerns.") + "\n")
	return sb.String()
}
