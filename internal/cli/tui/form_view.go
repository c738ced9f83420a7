package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tradedesk/backoffice/internal/admin"
	"github.com/tradedesk/backoffice/internal/cli/tui/theme"
)

// formView edits an admin.Form. Text and number fields get a textinput;
// checkboxes are toggled with space.
type formView[D any] struct {
	title    string
	form     *admin.Form[D]
	inputs   []textinput.Model
	focus    int
	fieldErr map[string]string
	err      string
}

func newFormView[D any](title string, form *admin.Form[D]) *formView[D] {
	fields := form.Fields()
	v := &formView[D]{
		title:    title,
		form:     form,
		inputs:   make([]textinput.Model, len(fields)),
		fieldErr: map[string]string{},
	}
	for i, f := range fields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = f.MaxLength
		ti.Width = 40
		if f.Kind != admin.FieldCheckbox {
			value, _ := form.Value(f.Name)
			ti.SetValue(value)
		}
		v.inputs[i] = ti
	}
	v.setFocus(0)
	return v
}

func (v *formView[D]) field() admin.Field[D] {
	return v.form.Fields()[v.focus]
}

func (v *formView[D]) setFocus(i int) {
	n := len(v.inputs)
	if n == 0 {
		return
	}
	v.inputs[v.focus].Blur()
	v.focus = (i%n + n) % n
	if v.field().Kind != admin.FieldCheckbox {
		// The blink command is not needed; the cursor is drawn either way.
		_ = v.inputs[v.focus].Focus()
	}
}

// update handles a key that is not a submit or cancel key.
func (v *formView[D]) update(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "tab", "down":
		v.setFocus(v.focus + 1)
		return nil
	case "shift+tab", "up":
		v.setFocus(v.focus - 1)
		return nil
	}

	f := v.field()
	if f.Kind == admin.FieldCheckbox {
		if msg.String() == " " || msg.String() == "x" {
			if err := v.form.Toggle(f.Name); err != nil {
				v.fieldErr[f.Name] = err.Error()
			}
		}
		return nil
	}

	var cmd tea.Cmd
	v.inputs[v.focus], cmd = v.inputs[v.focus].Update(msg)
	if err := v.form.Set(f.Name, v.inputs[v.focus].Value()); err != nil {
		v.fieldErr[f.Name] = err.Error()
	} else {
		delete(v.fieldErr, f.Name)
	}
	return cmd
}

// submit returns the draft when every input parses and every required
// field is present.
func (v *formView[D]) submit() (D, bool) {
	draft, err := v.form.Submit()
	if err != nil {
		var (
			missing *admin.RequiredFieldsError
			invalid *admin.InvalidFieldsError
		)
		switch {
		case errors.As(err, &invalid):
			v.err = "Campos no válidos: " + strings.Join(v.labels(invalid.Fields), ", ")
		case errors.As(err, &missing):
			v.err = "Campos obligatorios: " + strings.Join(v.labels(missing.Fields), ", ")
		default:
			v.err = err.Error()
		}
		return draft, false
	}
	v.err = ""
	return draft, true
}

func (v *formView[D]) labels(names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		label := name
		for _, f := range v.form.Fields() {
			if f.Name == name {
				label = f.Label
				break
			}
		}
		out = append(out, label)
	}
	return out
}

func (v *formView[D]) View() string {
	rows := []string{theme.HeadingStyle().Render(v.title)}
	for i, f := range v.form.Fields() {
		label := f.Label + ": "
		marker := "  "
		if i == v.focus {
			marker = "> "
			label = theme.FocusedLabelStyle().Render(label)
		}

		var input string
		if f.Kind == admin.FieldCheckbox {
			input = "[ ]"
			if v.form.Checked(f.Name) {
				input = "[x]"
			}
		} else {
			input = v.inputs[i].View()
		}

		row := marker + label + input
		if msg, ok := v.fieldErr[f.Name]; ok {
			row += "  " + theme.ErrorStyle().Render(msg)
		}
		rows = append(rows, row)
	}
	if v.err != "" {
		rows = append(rows, "", theme.ErrorStyle().Render(v.err))
	}
	return theme.FormStyle().Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
