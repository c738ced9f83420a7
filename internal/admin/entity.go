package admin

// FieldKind selects how a form field is edited.
type FieldKind int

const (
	FieldText FieldKind = iota
	FieldNumber
	FieldCheckbox
)

// Field describes one editable property of a draft D. Get renders the
// current value as text and Set parses text back into the draft. Checkbox
// fields use "true" and "false".
type Field[D any] struct {
	Name  string
	Label string
	Kind  FieldKind
	// Required fields must not be left blank; checked by Form.Submit.
	Required bool
	// MaxLength caps the input length; 0 means unlimited.
	MaxLength int
	Get       func(d *D) string
	Set       func(d *D, value string) error
}

// Entity binds the generic pattern to one record type. R is the persisted
// record and D the draft.
type Entity[R any, D any] struct {
	// Name is the collection slug, e.g. "accounts".
	Name string
	// Singular and Plural are the lower-case nouns used in messages,
	// e.g. "cuenta" and "cuentas".
	Singular string
	Plural   string
	// Title heads the list screen.
	Title string
	// Route is the navigation path of the list screen.
	Route string

	Columns []string
	Row     func(r R) []string
	ID      func(r R) int64
	Draft   func(r R) D
	// Defaults seeds the create form.
	Defaults func() D
	Fields   []Field[D]

	DeletePrompt string
	// AppendOnly entities can be listed and created but not edited or deleted.
	AppendOnly bool
}

// Field looks up a field descriptor by name.
func (e Entity[R, D]) Field(name string) (Field[D], bool) {
	for _, f := range e.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field[D]{}, false
}
