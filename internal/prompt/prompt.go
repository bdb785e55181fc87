// Package prompt asks the operator questions.
//
// A Prompter answers four kinds of question. Terminal asks them
// interactively; Answers reads them from a file and the environment so the
// installer can run unattended.
package prompt

import "errors"

var (
	// ErrAborted is returned when the operator interrupts a prompt.
	ErrAborted = errors.New("prompt aborted")

	// ErrNoAnswer is returned by non-interactive providers when a required
	// question has no answer.
	ErrNoAnswer = errors.New("no answer provided")
)

// Choice is one option of a select or multi-select question.
type Choice struct {
	Label   string
	Value   string
	Checked bool // pre-selected in a multi-select
}

// ConfirmQuestion asks a yes/no question.
type ConfirmQuestion struct {
	Key     string
	Message string
	Default bool
}

// SelectQuestion asks for exactly one of Choices. Default is a choice value.
type SelectQuestion struct {
	Key     string
	Message string
	Choices []Choice
	Default string
}

// MultiSelectQuestion asks for any subset of Choices. Checked choices are
// the default answer.
type MultiSelectQuestion struct {
	Key     string
	Message string
	Choices []Choice
}

// InputQuestion asks for free text. An empty reply yields Default.
type InputQuestion struct {
	Key      string
	Message  string
	Default  string
	Required bool
	Secret   bool
}

// Prompter answers questions.
type Prompter interface {
	Confirm(q ConfirmQuestion) (bool, error)
	Select(q SelectQuestion) (string, error)
	MultiSelect(q MultiSelectQuestion) ([]string, error)
	Input(q InputQuestion) (string, error)
}

// defaultValues returns the values of the checked choices, in order.
func defaultValues(choices []Choice) []string {
	var out []string
	for _, c := range choices {
		if c.Checked {
			out = append(out, c.Value)
		}
	}
	return out
}

func hasChoice(choices []Choice, value string) bool {
	for _, c := range choices {
		if c.Value == value {
			return true
		}
	}
	return false
}
