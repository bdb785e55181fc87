package prompt

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"github.com/superopencode/super-opencode/internal/ui"
)

// EnvPrefix prefixes environment variables read by Answers, so the key
// "scope" is read from SUPER_OPENCODE_SCOPE and "env.GITHUB_TOKEN" from
// SUPER_OPENCODE_ENV_GITHUB_TOKEN.
const EnvPrefix = "SUPER_OPENCODE"

// Answers answers questions from an answers file and the environment.
// Questions without an answer take their default. A required input with no
// answer fails with ErrNoAnswer.
type Answers struct {
	v     *viper.Viper
	echo  io.Writer
	theme ui.Theme
}

// LoadAnswers reads answers from path (YAML, JSON or TOML by extension) and
// the environment. An empty path reads the environment only. Each answer is
// echoed to echo when it is non-nil.
func LoadAnswers(path string, echo io.Writer) (*Answers, error) {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading answers from %s: %w", path, err)
		}
	}

	a := &Answers{v: v, echo: echo}
	if echo != nil {
		a.theme = ui.NewTheme(lipgloss.NewRenderer(echo))
	}
	return a, nil
}

func (a *Answers) Confirm(q ConfirmQuestion) (bool, error) {
	value := q.Default
	if a.v.IsSet(q.Key) {
		b, err := cast.ToBoolE(a.v.Get(q.Key))
		if err != nil {
			return false, fmt.Errorf("invalid answer for %s: %w", q.Key, err)
		}
		value = b
	}

	answer := "No"
	if value {
		answer = "Yes"
	}
	a.print(q.Message, answer)
	return value, nil
}

func (a *Answers) Select(q SelectQuestion) (string, error) {
	value := q.Default
	if a.v.IsSet(q.Key) {
		value = strings.TrimSpace(a.v.GetString(q.Key))
	}
	if value == "" {
		return "", fmt.Errorf("%s: %w", q.Key, ErrNoAnswer)
	}
	if !hasChoice(q.Choices, value) {
		return "", fmt.Errorf("invalid answer for %s: %q is not one of %s", q.Key, value, choiceValues(q.Choices))
	}

	a.print(q.Message, labelFor(q.Choices, value))
	return value, nil
}

func (a *Answers) MultiSelect(q MultiSelectQuestion) ([]string, error) {
	if !a.v.IsSet(q.Key) {
		values := defaultValues(q.Choices)
		a.print(q.Message, labelsFor(q.Choices, values))
		return values, nil
	}

	values, err := toList(a.v.Get(q.Key))
	if err != nil {
		return nil, fmt.Errorf("invalid answer for %s: %w", q.Key, err)
	}
	for _, v := range values {
		if !hasChoice(q.Choices, v) {
			return nil, fmt.Errorf("invalid answer for %s: %q is not one of %s", q.Key, v, choiceValues(q.Choices))
		}
	}

	a.print(q.Message, labelsFor(q.Choices, values))
	return values, nil
}

func (a *Answers) Input(q InputQuestion) (string, error) {
	value := ""
	if a.v.IsSet(q.Key) {
		value = strings.TrimSpace(a.v.GetString(q.Key))
	}
	if value == "" {
		value = q.Default
	}
	if value == "" && q.Required {
		return "", fmt.Errorf("%s: %w", q.Key, ErrNoAnswer)
	}

	shown := value
	if q.Secret && shown != "" {
		shown = strings.Repeat("•", 8)
	}
	a.print(q.Message, shown)
	return value, nil
}

func (a *Answers) print(message, answer string) {
	if a.echo == nil {
		return
	}
	_, _ = io.WriteString(a.echo, answeredLine(a.theme, message, answer))
}

// toList accepts a list value or a comma-separated string, as environment
// variables can only carry the latter.
func toList(raw any) ([]string, error) {
	if s, ok := raw.(string); ok {
		var out []string
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out, nil
	}
	list, err := cast.ToStringSliceE(raw)
	if err != nil {
		return nil, err
	}
	out := list[:0]
	for _, v := range list {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out, nil
}

func choiceValues(choices []Choice) string {
	values := make([]string, len(choices))
	for i, c := range choices {
		values[i] = c.Value
	}
	return strings.Join(values, ", ")
}

func labelFor(choices []Choice, value string) string {
	for _, c := range choices {
		if c.Value == value {
			return c.Label
		}
	}
	return value
}

func labelsFor(choices []Choice, values []string) string {
	if len(values) == 0 {
		return "none"
	}
	labels := make([]string, len(values))
	for i, v := range values {
		labels[i] = labelFor(choices, v)
	}
	return strings.Join(labels, ", ")
}
