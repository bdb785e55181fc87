package prompt

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/superopencode/super-opencode/internal/ui"
)

// inputModel is a single-line text question.
type inputModel struct {
	message string
	def     string
	secret  bool
	input   textinput.Model
	done    bool
	quit    bool

	theme ui.Theme
	help  help.Model
}

func newInputModel(q InputQuestion, theme ui.Theme) inputModel {
	ti := textinput.New()
	ti.CharLimit = 1024
	ti.Width = 60
	ti.Placeholder = q.Default
	if q.Secret {
		ti.Placeholder = ""
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	ti.Focus()

	return inputModel{
		message: q.Message,
		def:     q.Default,
		secret:  q.Secret,
		input:   ti,
		theme:   theme,
		help:    help.New(),
	}
}

// value returns the trimmed reply, or the default when the reply is empty.
func (m inputModel) value() string {
	v := strings.TrimSpace(m.input.Value())
	if v == "" {
		return m.def
	}
	return v
}

func (m inputModel) aborted() bool { return m.quit }

func (m inputModel) Init() tea.Cmd { return textinput.Blink }

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && !m.done {
		switch {
		case key.Matches(keyMsg, keys.Quit):
			m.quit = true
			return m, tea.Quit
		case key.Matches(keyMsg, keys.Enter):
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m inputModel) View() string {
	if m.done {
		answer := m.value()
		if m.secret && answer != "" {
			answer = strings.Repeat("•", 8)
		}
		return answeredLine(m.theme, m.message, answer)
	}
	if m.quit {
		return ""
	}

	return questionLine(m.theme, m.message) + "\n\n" +
		"  " + m.input.View() + "\n\n" +
		m.help.View(inputHelpKeyMap{}) + "\n"
}
