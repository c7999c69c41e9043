// Package picker is a builtin selector for terminals without an external
// menu program. It speaks the same contract as the external bridge: a list
// of lines in, one line (or nothing) out, with free-typed text passed
// through verbatim.
package picker

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("99")).
			Bold(true)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))
)

const currentMarker = " <-- current"

// Picker runs a bubbletea selection session per Choose call.
type Picker struct {
	rows int
}

// New creates a Picker showing at most rows items at a time.
func New(rows int) *Picker {
	if rows < 1 {
		rows = 1
	}
	return &Picker{rows: rows}
}

// Choose implements the menu contract: the selected item, free-typed text
// when nothing matched, or "" on cancel.
func (p *Picker) Choose(items []string, current, prompt string) (string, error) {
	m := newModel(items, current, prompt, p.rows)
	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return "", err
	}
	return final.(model).choice(), nil
}

type model struct {
	items     []string
	current   string
	prompt    string
	rows      int
	input     textinput.Model
	cursor    int
	selected  bool
	cancelled bool
}

func newModel(items []string, current, prompt string, rows int) model {
	input := textinput.New()
	input.Prompt = "> "
	input.Focus()
	return model{
		items:   items,
		current: current,
		prompt:  prompt,
		rows:    rows,
		input:   input,
	}
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEsc, tea.KeyCtrlC:
			m.cancelled = true
			return m, tea.Quit

		case tea.KeyEnter:
			m.selected = true
			return m, tea.Quit

		case tea.KeyDown, tea.KeyCtrlN:
			if m.cursor < len(m.matches())-1 {
				m.cursor++
			}
			return m, nil

		case tea.KeyUp, tea.KeyCtrlP:
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.cursor >= len(m.matches()) {
		m.cursor = 0
	}
	return m, cmd
}

// View implements tea.Model.
func (m model) View() string {
	var b strings.Builder

	b.WriteString(promptStyle.Render(m.prompt))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	matches := m.matches()
	offset := 0
	if m.cursor >= m.rows {
		offset = m.cursor - m.rows + 1
	}
	for row := offset; row < len(matches) && row < offset+m.rows; row++ {
		cursor := "  "
		style := normalStyle
		if row == m.cursor {
			cursor = "> "
			style = selectedStyle
		}
		line := m.items[matches[row]]
		if line == m.current {
			line += currentMarker
		}
		b.WriteString(cursor)
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(hintStyle.Render("type to filter or enter new text  Enter: accept  Esc: cancel"))
	return b.String()
}

// matches returns the indexes of items containing the typed filter,
// case-insensitive, in item order.
func (m model) matches() []int {
	filter := strings.ToLower(strings.TrimSpace(m.input.Value()))
	var idx []int
	for i, item := range m.items {
		if filter == "" || strings.Contains(strings.ToLower(item), filter) {
			idx = append(idx, i)
		}
	}
	return idx
}

// choice returns the session outcome: the highlighted item, the typed text
// when it matched nothing, or "" on cancel.
func (m model) choice() string {
	if m.cancelled || !m.selected {
		return ""
	}
	if matches := m.matches(); len(matches) > 0 && m.cursor < len(matches) {
		return m.items[matches[m.cursor]]
	}
	return strings.TrimSpace(m.input.Value())
}
