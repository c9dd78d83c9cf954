package ui

import "net/url"

// Action is a navigation control in a table row.
type Action struct {
	Label   string
	URL     string
	Variant string
}

type TableRow struct {
	Cells   []string
	Actions []Action
}

type TableView struct {
	Title   string
	Headers []string
	Rows    []TableRow
	Empty   string
}

// Table renders one row per entity, in the order given, with an extra
// actions cell when actions is non-nil.
func Table[T any](title string, entities []T, fields []Field[T], actions func(T) []Action) TableView {
	headers := make([]string, 0, len(fields)+1)
	for _, f := range fields {
		headers = append(headers, f.Label)
	}
	if actions != nil {
		headers = append(headers, "Actions")
	}

	rows := make([]TableRow, 0, len(entities))
	for _, e := range entities {
		cells := make([]string, 0, len(fields))
		for _, f := range fields {
			cells = append(cells, f.Display(e))
		}
		row := TableRow{Cells: cells}
		if actions != nil {
			row.Actions = actions(e)
		}
		rows = append(rows, row)
	}

	return TableView{Title: title, Headers: headers, Rows: rows}
}

// EntityActions returns the view and edit links of an entity under base,
// plus a link to the delete confirmation when deletable is set.
func EntityActions(base, id string, deletable bool) []Action {
	p := base + "/" + url.PathEscape(id)
	actions := []Action{
		{Label: "View", URL: p, Variant: "primary"},
		{Label: "Edit", URL: p + "?mode=edit", Variant: "secondary"},
	}
	if deletable {
		actions = append(actions, Action{Label: "Delete", URL: p + "/delete", Variant: "danger"})
	}
	return actions
}
