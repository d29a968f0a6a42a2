package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type fieldKind int

const (
	textField fieldKind = iota
	secretField
	choiceField
)

type formField struct {
	label   string
	hint    string
	kind    fieldKind
	value   string
	choices []string
	choice  int
}

func textInput(label, hint string) formField {
	return formField{label: label, hint: hint, kind: textField}
}

func secretInput(label string) formField {
	return formField{label: label, kind: secretField}
}

func choiceInput(label string, choices []string, selected string) formField {
	f := formField{label: label, kind: choiceField, choices: choices}
	for i, c := range choices {
		if c == selected {
			f.choice = i
		}
	}
	return f
}

// form is the hand-rolled input set every screen uses: tab moves focus,
// left/right cycles choices, enter submits.
type form struct {
	fields  []formField
	initial []formField
	focused int
}

func newForm(fields ...formField) *form {
	initial := make([]formField, len(fields))
	copy(initial, fields)
	return &form{fields: fields, initial: initial}
}

func (f *form) value(i int) string {
	field := f.fields[i]
	if field.kind == choiceField {
		return field.choices[field.choice]
	}
	return field.value
}

func (f *form) set(i int, v string) {
	f.fields[i].value = v
}

func (f *form) reset() {
	copy(f.fields, f.initial)
	f.focused = 0
}

// handleKey reports whether the key submitted the form.
func (f *form) handleKey(msg tea.KeyMsg) bool {
	n := len(f.fields)
	field := &f.fields[f.focused]

	switch msg.Type {
	case tea.KeyEnter:
		return true
	case tea.KeyTab, tea.KeyDown:
		f.focused = (f.focused + 1) % n
	case tea.KeyShiftTab, tea.KeyUp:
		f.focused = (f.focused - 1 + n) % n
	case tea.KeyLeft:
		if field.kind == choiceField {
			field.choice = (field.choice - 1 + len(field.choices)) % len(field.choices)
		}
	case tea.KeyRight:
		if field.kind == choiceField {
			field.choice = (field.choice + 1) % len(field.choices)
		}
	case tea.KeyBackspace:
		if field.kind != choiceField && field.value != "" {
			r := []rune(field.value)
			field.value = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		if field.kind != choiceField {
			field.value += " "
		}
	case tea.KeyRunes:
		if field.kind != choiceField {
			field.value += string(msg.Runes)
		}
	}
	return false
}

func (f *form) View() string {
	var rows []string
	for i, field := range f.fields {
		style := InputStyle
		if i == f.focused {
			style = FocusedInputStyle
		}

		var shown string
		switch {
		case field.kind == choiceField:
			shown = "‹ " + field.choices[field.choice] + " ›"
		case field.kind == secretField:
			shown = strings.Repeat("•", len([]rune(field.value)))
		case field.value == "" && field.hint != "":
			shown = InfoStyle.Render(field.hint)
		default:
			shown = field.value
		}

		label := LabelStyle.Render(field.label + ":")
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Center, label, style.Width(46).Render(shown)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
