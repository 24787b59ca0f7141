package tui

import (
	"strings"
	"unicode/utf8"
)

// maxInputLen is the maximum number of runes allowed in form inputs.
const maxInputLen = 200

// editRune processes a keystroke for inline text editing.
// Handles backspace (rune-aware) and single printable characters.
// Returns the text unchanged for non-printable keys (enter, esc, etc.).
// Input is clamped to maxInputLen runes.
func editRune(text string, key string) string {
	switch key {
	case "backspace":
		if len(text) > 0 {
			runes := []rune(text)
			return string(runes[:len(runes)-1])
		}
		return text
	case "space":
		key = " "
	}
	if utf8.RuneCountInString(key) == 1 {
		if utf8.RuneCountInString(text) >= maxInputLen {
			return text
		}
		return text + key
	}
	return text
}

// formField is one labeled input line in a form view.
type formField struct {
	label       string
	value       string
	placeholder string
	masked      bool // render value as dots (passwords)
	fieldErr    string
}

// form is the shared multi-field input model used by the login,
// register, reset, and profile views.
type form struct {
	fields []formField
	focus  int
}

func newForm(fields ...formField) form {
	return form{fields: fields}
}

func (f *form) next() {
	if len(f.fields) > 0 {
		f.focus = (f.focus + 1) % len(f.fields)
	}
}

func (f *form) prev() {
	if len(f.fields) > 0 {
		f.focus = (f.focus - 1 + len(f.fields)) % len(f.fields)
	}
}

// edit applies a keystroke to the focused field.
func (f *form) edit(key string) {
	if f.focus < len(f.fields) {
		f.fields[f.focus].value = editRune(f.fields[f.focus].value, key)
	}
}

// value returns the trimmed value of field i.
func (f form) value(i int) string {
	if i < len(f.fields) {
		return strings.TrimSpace(f.fields[i].value)
	}
	return ""
}

// setErrors annotates fields with server-side validation messages keyed
// by the field's wire name (lower-cased label with underscores).
func (f *form) setErrors(lookup func(field string) string) {
	for i := range f.fields {
		f.fields[i].fieldErr = lookup(wireName(f.fields[i].label))
	}
}

// clearErrors drops all field annotations.
func (f *form) clearErrors() {
	for i := range f.fields {
		f.fields[i].fieldErr = ""
	}
}

// wireName converts a display label to the backend field name,
// e.g. "Confirm password" -> "password_confirmation" is special-cased
// by callers; the default is lower-case with underscores.
func wireName(label string) string {
	return strings.ReplaceAll(strings.ToLower(label), " ", "_")
}

// render draws the form: a cursor arrow on the focused field, dimmed
// values elsewhere, masked dots for passwords.
func (f form) render() string {
	var sb strings.Builder
	for i, fld := range f.fields {
		display := fld.value
		if fld.masked {
			display = strings.Repeat("•", utf8.RuneCountInString(fld.value))
		}

		label := inputPromptStyle.Render(fld.label + ":")
		if i == f.focus {
			cursor := accentStyle.Render("_")
			sb.WriteString("   " + accentStyle.Render(">") + " " + label + " " + display + cursor + "\n")
		} else {
			if display == "" && fld.placeholder != "" {
				display = inputPlaceholderStyle.Render(fld.placeholder)
			} else {
				display = dimStyle.Render(display)
			}
			sb.WriteString("     " + label + " " + display + "\n")
		}
		if fld.fieldErr != "" {
			sb.WriteString("       " + errStyle.Render(fld.fieldErr) + "\n")
		}
	}
	return sb.String()
}
