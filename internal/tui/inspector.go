package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/robometrics/internal/render"
	"github.com/san-kum/robometrics/internal/trace"
)

const (
	stateList = iota
	stateDetail
)

type Model struct {
	file          string
	robots        []RobotStats
	state, cursor int
	width, height int
	st            styles
}

func NewModel(file string, robots []RobotStats, pal render.Palette) Model {
	return Model{
		file:   file,
		robots: robots,
		width:  80,
		height: 24,
		st:     newStyles(pal),
	}
}

// Selected returns the robot under the cursor, if any.
func (m Model) Selected() (RobotStats, bool) {
	if len(m.robots) == 0 {
		return RobotStats{}, false
	}
	return m.robots[m.cursor], true
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.state {
	case stateList:
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.robots)-1 {
				m.cursor++
			}
		case "enter", " ":
			if len(m.robots) > 0 {
				m.state = stateDetail
			}
		}
	case stateDetail:
		switch msg.String() {
		case "q", "esc", "backspace":
			m.state = stateList
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.robots)-1 {
				m.cursor++
			}
		}
	}
	return m, nil
}

func (m Model) View() string {
	if m.state == stateDetail {
		return m.viewDetail()
	}
	return m.viewList()
}

func (m Model) header(title, sub string) string {
	return "\n    " + m.st.title.Render(title) + "\n    " + m.st.subtitle.Render(sub) + "\n    " + m.st.subtitle.Render("─────────────────────────") + "\n\n"
}

func (m Model) metric(v float64, err error) string {
	if err != nil {
		return m.st.errText.Render(fmt.Sprintf("%10s", "n/a"))
	}
	return m.st.value.Render(fmt.Sprintf("%10.4f", v))
}

func (m Model) viewList() string {
	var b strings.Builder
	b.WriteString(m.header(filepath.Base(m.file), fmt.Sprintf("%d robots", len(m.robots))))
	b.WriteString(m.st.label.Render(fmt.Sprintf("      %-16s %10s %10s %10s", "robot", "ldj", "distance", "rmse")) + "\n")

	for i, r := range m.robots {
		name := fmt.Sprintf("%-16s", r.ID)
		row := fmt.Sprintf(" %s %s %s", m.metric(r.LDJ, r.LDJErr), m.metric(r.Distance, nil), m.metric(r.RMSE, r.RMSEErr))
		if i == m.cursor {
			b.WriteString("    " + m.st.cursor.Render("▸") + " " + m.st.selected.Render(name) + row + "\n")
		} else {
			b.WriteString("      " + m.st.normal.Render(name) + row + "\n")
		}
	}

	b.WriteString("\n    " + m.keys("j/k", "navigate", "enter", "details", "q", "quit") + "\n")
	return b.String()
}

func (m Model) viewDetail() string {
	r, ok := m.Selected()
	if !ok {
		return m.viewList()
	}

	var b strings.Builder
	b.WriteString(m.header(r.ID, filepath.Base(m.file)))

	lines := []string{
		m.st.label.Render("ldj      ") + m.metric(r.LDJ, r.LDJErr),
		m.st.label.Render("distance ") + m.metric(r.Distance, nil),
		m.st.label.Render("rmse     ") + m.metric(r.RMSE, r.RMSEErr),
	}
	if r.LDJErr != nil {
		lines = append(lines, m.st.errText.Render("ldj: "+r.LDJErr.Error()))
	}
	if r.RMSEErr != nil {
		lines = append(lines, m.st.errText.Render("rmse: "+r.RMSEErr.Error()))
	}
	b.WriteString(m.st.panel.Render(strings.Join(lines, "\n")) + "\n\n")

	width := max(m.width-12, 10)
	b.WriteString("    " + m.st.label.Render("speed ") + render.Sparkline(r.Speeds, width) + "\n\n")

	canvas := render.ASCIIPaths([][]trace.Vec2{r.Route, r.Path}, max(width/2, 8), max(m.height/3, 4))
	for _, line := range strings.Split(strings.TrimRight(canvas, "\n"), "\n") {
		b.WriteString("    " + line + "\n")
	}

	b.WriteString("\n    " + m.keys("j/k", "robot", "esc", "back") + "\n")
	return b.String()
}

func (m Model) keys(pairs ...string) string {
	var parts []string
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, m.st.key.Render(pairs[i])+m.st.hint.Render(" "+pairs[i+1]))
	}
	return strings.Join(parts, "  ")
}

// Run starts the inspector on the alternate screen.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
