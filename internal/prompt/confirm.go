package prompt

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/superopencode/super-opencode/internal/ui"
)

// confirmModel is an inline yes/no question.
//
// Navigation: left/right/tab move focus between Yes and No. Enter accepts the
// focused button. y/n answer immediately; esc and ctrl+c abort.
type confirmModel struct {
	message  string
	focusYes bool
	done     bool
	quit     bool

	theme ui.Theme
	help  help.Model
}

func newConfirmModel(q ConfirmQuestion, theme ui.Theme) confirmModel {
	return confirmModel{
		message:  q.Message,
		focusYes: q.Default,
		theme:    theme,
		help:     help.New(),
	}
}

func (m confirmModel) value() bool    { return m.focusYes }
func (m confirmModel) aborted() bool { return m.quit }

func (m confirmModel) Init() tea.Cmd { return nil }

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.done {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.Quit):
		m.quit = true
		return m, tea.Quit
	case key.Matches(keyMsg, keys.Yes):
		m.focusYes = true
		m.done = true
		return m, tea.Quit
	case key.Matches(keyMsg, keys.No):
		m.focusYes = false
		m.done = true
		return m, tea.Quit
	case key.Matches(keyMsg, keys.Enter):
		m.done = true
		return m, tea.Quit
	case key.Matches(keyMsg, keys.Switch):
		m.focusYes = !m.focusYes
	}
	return m, nil
}

func (m confirmModel) View() string {
	if m.done {
		answer := "No"
		if m.focusYes {
			answer = "Yes"
		}
		return answeredLine(m.theme, m.message, answer)
	}
	if m.quit {
		return ""
	}

	yes, no := m.theme.Button.Render("Yes"), m.theme.ActiveButton.Render("No")
	if m.focusYes {
		yes, no = m.theme.ActiveButton.Render("Yes"), m.theme.Button.Render("No")
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Top, yes, "  ", no)

	return questionLine(m.theme, m.message) + "\n\n" +
		"  " + buttons + "\n\n" +
		m.help.View(confirmHelpKeyMap{}) + "\n"
}

// questionLine renders "? message".
func questionLine(theme ui.Theme, message string) string {
	return theme.Accent.Render("?") + " " + theme.Question.Render(message)
}

// answeredLine renders the line left on screen once a question is answered.
func answeredLine(theme ui.Theme, message, answer string) string {
	return theme.Success.Render("✔") + " " + theme.Question.Render(message) + " " +
		theme.Answer.Render(answer) + "\n"
}
