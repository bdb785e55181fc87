package prompt

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/superopencode/super-opencode/internal/ui"
)

// selectModel is a vertical list of choices. In multi mode each row has a
// checkbox and enter accepts the checked set; otherwise enter accepts the
// row under the cursor.
type selectModel struct {
	message string
	choices []Choice
	checked []bool
	cursor  int
	multi   bool
	width   int
	done    bool
	quit    bool

	theme ui.Theme
	help  help.Model
}

func newSelectModel(q SelectQuestion, theme ui.Theme) selectModel {
	m := selectModel{
		message: q.Message,
		choices: q.Choices,
		checked: make([]bool, len(q.Choices)),
		theme:   theme,
		help:    help.New(),
	}
	for i, c := range q.Choices {
		if c.Value == q.Default {
			m.cursor = i
		}
	}
	return m
}

func newMultiSelectModel(q MultiSelectQuestion, theme ui.Theme) selectModel {
	m := selectModel{
		message: q.Message,
		choices: q.Choices,
		checked: make([]bool, len(q.Choices)),
		multi:   true,
		theme:   theme,
		help:    help.New(),
	}
	for i, c := range q.Choices {
		m.checked[i] = c.Checked
	}
	return m
}

func (m selectModel) aborted() bool { return m.quit }

// selected returns the value under the cursor.
func (m selectModel) selected() string {
	if len(m.choices) == 0 {
		return ""
	}
	return m.choices[m.cursor].Value
}

// selectedValues returns the checked values in choice order.
func (m selectModel) selectedValues() []string {
	var out []string
	for i, c := range m.choices {
		if m.checked[i] {
			out = append(out, c.Value)
		}
	}
	return out
}

func (m selectModel) Init() tea.Cmd { return nil }

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.done {
			return m, nil
		}
		switch {
		case key.Matches(msg, keys.Quit):
			m.quit = true
			return m, tea.Quit
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.choices)-1 {
				m.cursor++
			}
		case m.multi && key.Matches(msg, keys.Toggle):
			if len(m.checked) > 0 {
				m.checked[m.cursor] = !m.checked[m.cursor]
			}
		case m.multi && key.Matches(msg, keys.ToggleAll):
			m.toggleAll()
		case key.Matches(msg, keys.Enter):
			if len(m.choices) == 0 && !m.multi {
				return m, nil
			}
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

// toggleAll checks every choice, or clears them all if all are checked.
func (m *selectModel) toggleAll() {
	all := true
	for _, c := range m.checked {
		if !c {
			all = false
			break
		}
	}
	for i := range m.checked {
		m.checked[i] = !all
	}
}

func (m selectModel) View() string {
	if m.done {
		if !m.multi {
			return answeredLine(m.theme, m.message, m.choices[m.cursor].Label)
		}
		var labels []string
		for i, c := range m.choices {
			if m.checked[i] {
				labels = append(labels, c.Label)
			}
		}
		answer := strings.Join(labels, ", ")
		if answer == "" {
			answer = "none"
		}
		return answeredLine(m.theme, m.message, answer)
	}
	if m.quit {
		return ""
	}

	var b strings.Builder
	b.WriteString(questionLine(m.theme, m.message))
	b.WriteString("\n\n")

	for i, c := range m.choices {
		pointer := "  "
		if i == m.cursor {
			pointer = m.theme.Cursor.Render("❯") + " "
		}

		box := ""
		if m.multi {
			box = "◯ "
			if m.checked[i] {
				box = m.theme.Selected.Render("◉") + " "
			}
		}

		label := c.Label
		if m.width > 12 {
			label = ansi.Truncate(label, m.width-8, "…")
		}
		if i == m.cursor {
			label = m.theme.Selected.Render(label)
		} else {
			label = m.theme.Normal.Render(label)
		}

		b.WriteString(pointer + box + label + "\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(selectHelpKeyMap{multi: m.multi}))
	b.WriteString("\n")
	return b.String()
}
