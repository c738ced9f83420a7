package admin

// Table is the rendered form of a collection: one row per record, in the
// order the backend returned them.
type Table[R any] struct {
	Columns []string
	Rows    [][]string

	records []R
	id      func(R) int64
}

// NewTable projects records through entity's column definition.
func NewTable[R any, D any](entity Entity[R, D], records []R) Table[R] {
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = entity.Row(r)
	}
	return Table[R]{
		Columns: entity.Columns,
		Rows:    rows,
		records: records,
		id:      entity.ID,
	}
}

func (t Table[R]) Len() int { return len(t.records) }

// Edit returns the full record behind row i for the edit action.
func (t Table[R]) Edit(i int) (R, bool) {
	if i < 0 || i >= len(t.records) {
		var zero R
		return zero, false
	}
	return t.records[i], true
}

// DeleteID returns the id behind row i for the delete action.
func (t Table[R]) DeleteID(i int) (int64, bool) {
	if i < 0 || i >= len(t.records) {
		return 0, false
	}
	return t.id(t.records[i]), true
}
