package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"

	"leadterm/internal/crm"
)

type fieldKind int

const (
	fieldText fieldKind = iota
	fieldNumber
	fieldSelect
	fieldBool
)

// formField is one step of a sequential field walk. Select fields accept an
// option name, a unique prefix, or a 1-based index into the option list.
// Frozen fields are skipped while walking forward; backing onto one unfreezes
// it so the value can be retyped.
type formField struct {
	key      string
	label    string
	kind     fieldKind
	options  []string
	required bool
	value    string
	frozen   bool
}

type form struct {
	title  string
	index  int
	fields []formField
	input  textinput.Model
	err    string
}

func newForm(title string, fields []formField) form {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 256
	ti.Focus()
	f := form{title: title, fields: fields, input: ti}
	f.syncInput()
	return f
}

func (f *form) current() *formField {
	if f.index < 0 || f.index >= len(f.fields) {
		return nil
	}
	return &f.fields[f.index]
}

func (f *form) syncInput() {
	field := f.current()
	if field == nil {
		return
	}
	placeholder := field.label
	switch field.kind {
	case fieldSelect:
		placeholder = fmt.Sprintf("%s (%s)", field.label, strings.Join(field.options, ", "))
	case fieldBool:
		placeholder = field.label + " (y/n)"
	}
	f.input.Placeholder = placeholder
	f.input.SetValue(field.value)
	f.input.CursorEnd()
}

// advance records the typed value into the current field and moves to the
// next non-frozen one. It reports whether the walk is complete.
func (f *form) advance(value string) bool {
	field := f.current()
	if field == nil {
		return true
	}
	value = strings.TrimSpace(value)
	if value == "" {
		value = field.value
	}
	if field.required && value == "" {
		f.err = "This field is required"
		return false
	}
	switch field.kind {
	case fieldSelect:
		if value != "" {
			resolved, ok := resolveOption(field.options, value)
			if !ok {
				f.err = fmt.Sprintf("Choose one of: %s", strings.Join(field.options, ", "))
				return false
			}
			value = resolved
		}
	case fieldBool:
		if value != "" && !isYes(value) && !isNo(value) {
			f.err = "Answer y or n"
			return false
		}
	case fieldNumber:
		if value != "" {
			value = crm.FormatAmount(crm.ParseAmount(value))
		}
	}
	field.value = value
	f.err = ""
	next := f.index + 1
	for next < len(f.fields) && f.fields[next].frozen {
		next++
	}
	if next >= len(f.fields) {
		return true
	}
	f.index = next
	f.syncInput()
	return false
}

// back steps to the previous field, unfreezing it if needed. It reports
// false when already at the first field.
func (f *form) back() bool {
	if f.index == 0 {
		return false
	}
	f.index--
	f.fields[f.index].frozen = false
	f.err = ""
	f.syncInput()
	return true
}

func (f *form) value(key string) string {
	for i := range f.fields {
		if f.fields[i].key == key {
			return f.fields[i].value
		}
	}
	return ""
}

func (f *form) set(key, value string) {
	for i := range f.fields {
		if f.fields[i].key == key {
			f.fields[i].value = value
			return
		}
	}
}

func (f *form) freeze(key string) {
	for i := range f.fields {
		if f.fields[i].key == key {
			f.fields[i].frozen = true
			return
		}
	}
}

func (f *form) unfreeze(key string) {
	for i := range f.fields {
		if f.fields[i].key == key {
			f.fields[i].frozen = false
			return
		}
	}
}

func (f *form) boolValue(key string) bool {
	return isYes(f.value(key))
}

func (f *form) numberValue(key string) float64 {
	return crm.ParseAmount(f.value(key))
}

func isYes(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "y", "yes", "true", "1":
		return true
	}
	return false
}

func isNo(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "n", "no", "false", "0":
		return true
	}
	return false
}

func resolveOption(options []string, input string) (string, bool) {
	trimmed := strings.TrimSpace(input)
	if idx, err := strconv.Atoi(trimmed); err == nil {
		if idx > 0 && idx <= len(options) {
			return options[idx-1], true
		}
		return "", false
	}
	for _, opt := range options {
		if strings.EqualFold(opt, trimmed) {
			return opt, true
		}
	}
	lower := strings.ToLower(trimmed)
	var match string
	count := 0
	for _, opt := range options {
		if strings.HasPrefix(strings.ToLower(opt), lower) {
			match = opt
			count++
		}
	}
	if count == 1 {
		return match, true
	}
	return "", false
}
