package prompt

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/superopencode/super-opencode/internal/ui"
)

// Terminal asks questions interactively, one Bubble Tea program per
// question. Each answered question leaves a one-line summary on screen.
type Terminal struct {
	in    io.Reader
	out   io.Writer
	theme ui.Theme
}

// NewTerminal creates a Terminal reading keys from in and drawing to out.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{
		in:    in,
		out:   out,
		theme: ui.NewTheme(lipgloss.NewRenderer(out)),
	}
}

// model is implemented by every prompt model.
type model interface {
	tea.Model
	aborted() bool
}

// run drives m until it quits and returns the final model.
func run[M model](t *Terminal, m M) (M, error) {
	var zero M

	p := tea.NewProgram(m, tea.WithInput(t.in), tea.WithOutput(t.out))
	final, err := p.Run()
	if err != nil {
		return zero, fmt.Errorf("running prompt: %w", err)
	}

	fm, ok := final.(M)
	if !ok {
		return zero, fmt.Errorf("unexpected prompt model %T", final)
	}
	if fm.aborted() {
		return zero, ErrAborted
	}
	return fm, nil
}

func (t *Terminal) Confirm(q ConfirmQuestion) (bool, error) {
	m, err := run(t, newConfirmModel(q, t.theme))
	if err != nil {
		return false, err
	}
	return m.value(), nil
}

func (t *Terminal) Select(q SelectQuestion) (string, error) {
	if len(q.Choices) == 0 {
		return "", fmt.Errorf("select %q has no choices", q.Key)
	}
	m, err := run(t, newSelectModel(q, t.theme))
	if err != nil {
		return "", err
	}
	return m.selected(), nil
}

func (t *Terminal) MultiSelect(q MultiSelectQuestion) ([]string, error) {
	m, err := run(t, newMultiSelectModel(q, t.theme))
	if err != nil {
		return nil, err
	}
	return m.selectedValues(), nil
}

// Input returns the reply, or the default when the reply is empty. Required
// is not enforced here; callers re-ask when they need a value.
func (t *Terminal) Input(q InputQuestion) (string, error) {
	m, err := run(t, newInputModel(q, t.theme))
	if err != nil {
		return "", err
	}
	return m.value(), nil
}
