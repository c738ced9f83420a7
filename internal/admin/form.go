package admin

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ErrUnknownField is returned when a form is asked about a field it does not have.
var ErrUnknownField = errors.New("unknown field")

// RequiredFieldsError lists required fields left empty on submit.
type RequiredFieldsError struct {
	Fields []string
}

func (e *RequiredFieldsError) Error() string {
	return "required fields missing: " + strings.Join(e.Fields, ", ")
}

// InvalidFieldsError lists fields whose input does not parse or is out of range.
type InvalidFieldsError struct {
	Fields []string
}

func (e *InvalidFieldsError) Error() string {
	return "invalid fields: " + strings.Join(e.Fields, ", ")
}

// Form is the local draft state behind a create or edit dialog. It is
// seeded once and only ever changes one field at a time.
//
// Text and number fields keep the input as typed, so presence is judged on
// what the user sees and a number input that does not parse blocks Submit
// instead of silently keeping the previous value.
type Form[D any] struct {
	draft   D
	fields  []Field[D]
	editing bool
	text    map[string]string
	invalid map[string]error
}

// NewForm seeds a form with initial. editing marks forms opened on an
// existing record. Create forms start with empty number inputs unless
// initial sets them.
func NewForm[D any](fields []Field[D], initial D, editing bool) *Form[D] {
	f := &Form[D]{
		draft:   initial,
		fields:  fields,
		editing: editing,
		text:    make(map[string]string, len(fields)),
		invalid: map[string]error{},
	}
	for _, fd := range fields {
		if fd.Kind == FieldCheckbox {
			continue
		}
		v := fd.Get(&f.draft)
		if !editing && fd.Kind == FieldNumber && isZeroNumber(v) {
			v = ""
		}
		f.text[fd.Name] = v
	}
	return f
}

func isZeroNumber(v string) bool {
	n, err := strconv.ParseFloat(v, 64)
	return err == nil && n == 0
}

func (f *Form[D]) Fields() []Field[D] { return f.fields }

// Editing reports whether the form was seeded from a persisted record.
func (f *Form[D]) Editing() bool { return f.editing }

// Draft returns a copy of the current draft.
func (f *Form[D]) Draft() D { return f.draft }

// Value renders the named field: the typed text for inputs, "true" or
// "false" for checkboxes.
func (f *Form[D]) Value(name string) (string, error) {
	fd, err := f.field(name)
	if err != nil {
		return "", err
	}
	if fd.Kind == FieldCheckbox {
		return fd.Get(&f.draft), nil
	}
	return f.text[name], nil
}

// Set updates the named field from its text representation, leaving every
// other field untouched. A value that does not parse leaves the draft as is
// and marks the field invalid until a parsable value is set.
func (f *Form[D]) Set(name, value string) error {
	fd, err := f.field(name)
	if err != nil {
		return err
	}
	next := f.draft
	if err := fd.Set(&next, value); err != nil {
		err = fmt.Errorf("%s: %w", fd.Label, err)
		if fd.Kind != FieldCheckbox {
			f.text[name] = value
			f.invalid[name] = err
		}
		return err
	}
	f.draft = next
	if fd.Kind != FieldCheckbox {
		f.text[name] = value
	}
	delete(f.invalid, name)
	return nil
}

// Toggle flips a checkbox field.
func (f *Form[D]) Toggle(name string) error {
	fd, err := f.field(name)
	if err != nil {
		return err
	}
	if fd.Kind != FieldCheckbox {
		return fmt.Errorf("%s is not a checkbox", fd.Label)
	}
	checked, err := strconv.ParseBool(fd.Get(&f.draft))
	if err != nil {
		checked = false
	}
	return f.Set(name, strconv.FormatBool(!checked))
}

// Checked reports the state of a checkbox field.
func (f *Form[D]) Checked(name string) bool {
	v, err := f.Value(name)
	if err != nil {
		return false
	}
	checked, _ := strconv.ParseBool(v)
	return checked
}

// Submit returns the draft unmodified once every input parses and every
// Required field has non-blank text. Value ranges are left to the backend.
func (f *Form[D]) Submit() (D, error) {
	var zero D

	var invalid []string
	for _, fd := range f.fields {
		if _, ok := f.invalid[fd.Name]; ok {
			invalid = append(invalid, fd.Name)
		}
	}
	if len(invalid) > 0 {
		return zero, &InvalidFieldsError{Fields: invalid}
	}

	data := map[string]any{}
	rules := map[string]any{}
	for _, fd := range f.fields {
		if fd.Required && fd.Kind != FieldCheckbox {
			data[fd.Name] = strings.TrimSpace(f.text[fd.Name])
			rules[fd.Name] = "required"
		}
	}
	if errs := validate.ValidateMap(data, rules); len(errs) > 0 {
		var missing []string
		for _, fd := range f.fields {
			if _, ok := errs[fd.Name]; ok {
				missing = append(missing, fd.Name)
			}
		}
		return zero, &RequiredFieldsError{Fields: missing}
	}
	return f.draft, nil
}

func (f *Form[D]) field(name string) (Field[D], error) {
	for _, fd := range f.fields {
		if fd.Name == name {
			return fd, nil
		}
	}
	return Field[D]{}, fmt.Errorf("%w %q", ErrUnknownField, name)
}
