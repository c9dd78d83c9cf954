package ui

type Row struct {
	Label string
	Value string
}

// DetailView is a read-only label/value listing. EditURL and BackURL are
// optional actions; empty means the action is not offered.
type DetailView struct {
	Title   string
	Rows    []Row
	EditURL string
	BackURL string
}

// Detail produces one row per field, in field order.
func Detail[T any](title string, rec T, fields []Field[T]) DetailView {
	rows := make([]Row, 0, len(fields))
	for _, f := range fields {
		rows = append(rows, Row{Label: f.Label, Value: f.Display(rec)})
	}
	return DetailView{Title: title, Rows: rows}
}
