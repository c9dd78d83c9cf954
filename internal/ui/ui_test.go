package ui

import (
	"net/url"
	"slices"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type owner struct {
	ID   int
	Name string
}

type record struct {
	ID     int
	Name   string
	Notes  string
	Status string
	Owner  *owner
	Tags   []string
	Meta   map[string]string
}

func sample() record {
	return record{
		ID:     1,
		Name:   "Alpha",
		Notes:  "first",
		Status: "active",
		Owner:  &owner{ID: 7, Name: "Ada"},
		Tags:   []string{"ops", "dev"},
		Meta:   map[string]string{"k": "v"},
	}
}

var tagOptions = []Option{
	{Value: "dev", Label: "Developer"},
	{Value: "ops", Label: "Operations"},
	{Value: "qa", Label: "Quality"},
}

func recordFields() []Field[record] {
	return []Field[record]{
		{Key: "id", Label: "ID", Value: func(r record) any { return r.ID }},
		{
			Key: "name", Label: "Name", Editable: true,
			Value: func(r record) any { return r.Name },
			Set:   func(r *record, v any) { r.Name = v.(string) },
		},
		{
			Key: "notes", Label: "Notes", Editable: true,
			Value: func(r record) any { return r.Notes },
			Set:   func(r *record, v any) { r.Notes = v.(string) },
		},
		{
			Key: "status", Label: "Status", Editable: true, Input: InputSelect,
			Options: []Option{{Value: "active", Label: "Active"}, {Value: "closed", Label: "Closed"}},
			Value:   func(r record) any { return r.Status },
			Set:     func(r *record, v any) { r.Status = v.(string) },
		},
		{
			Key: "owner", Label: "Owner",
			Value: func(r record) any { return r.Owner },
			Render: func(v any) string {
				if o, ok := v.(*owner); ok && o != nil {
					return o.Name
				}
				return "N/A"
			},
		},
		{
			Key: "tags", Label: "Tags", Editable: true, Input: InputMultiSelect,
			Options: tagOptions,
			Value:   func(r record) any { return r.Tags },
			Set:     func(r *record, v any) { r.Tags = v.([]string) },
			IsChecked: func(option string, current any) bool {
				tags, _ := current.([]string)
				return slices.Contains(tags, option)
			},
			Check: func(current any, _ []Option, option Option) any {
				tags, _ := current.([]string)
				return append(slices.Clone(tags), option.Value)
			},
			Uncheck: func(current any, option Option) any {
				tags, _ := current.([]string)
				return slices.DeleteFunc(slices.Clone(tags), func(t string) bool { return t == option.Value })
			},
		},
	}
}

func TestDetail_OneRowPerFieldInOrder(t *testing.T) {
	fields := recordFields()
	for n := 0; n <= len(fields); n++ {
		view := Detail("Record", sample(), fields[:n])
		require.Len(t, view.Rows, n)
		for i, row := range view.Rows {
			assert.Equal(t, fields[i].Label, row.Label)
		}
	}

	view := Detail("Record", sample(), fields)
	assert.Equal(t, []Row{
		{Label: "ID", Value: "1"},
		{Label: "Name", Value: "Alpha"},
		{Label: "Notes", Value: "first"},
		{Label: "Status", Value: "active"},
		{Label: "Owner", Value: "Ada"},
		{Label: "Tags", Value: "[ops dev]"},
	}, view.Rows)
}

func TestDetail_RenderHandlesMissingValues(t *testing.T) {
	r := sample()
	r.Owner = nil
	view := Detail("Record", r, recordFields())
	assert.Equal(t, "N/A", view.Rows[4].Value)
}

func TestFormatValue(t *testing.T) {
	var nilOwner *owner
	assert.Equal(t, "", FormatValue(nil))
	assert.Equal(t, "", FormatValue(nilOwner))
	assert.Equal(t, "x", FormatValue("x"))
	assert.Equal(t, "42", FormatValue(42))
	assert.Equal(t, "true", FormatValue(true))
}

func TestForm_BuildsInputs(t *testing.T) {
	view := Form("Edit", sample(), recordFields())
	require.Len(t, view.Fields, 6)

	id := view.Fields[0]
	assert.False(t, id.Editable)
	assert.Equal(t, "1", id.Value)

	status := view.Fields[3]
	assert.True(t, status.IsSelect())
	assert.Equal(t, []FormOption{
		{Value: "active", Label: "Active", Selected: true},
		{Value: "closed", Label: "Closed"},
	}, status.Options)

	tags := view.Fields[5]
	assert.True(t, tags.IsMultiSelect())
	assert.Equal(t, []FormOption{
		{Value: "dev", Label: "Developer", Selected: true},
		{Value: "ops", Label: "Operations", Selected: true},
		{Value: "qa", Label: "Quality"},
	}, tags.Options)

	assert.Equal(t, "Ada", view.Fields[4].Value)
}

func TestApply_OnlyEditedKeysChange(t *testing.T) {
	tests := []struct {
		name   string
		form   url.Values
		mutate func(r *record)
	}{
		{
			name: "empty form",
			form: url.Values{},
		},
		{
			name: "resubmitting current values",
			form: url.Values{
				"name": {"Alpha"}, "notes": {"first"}, "status": {"active"}, "tags": {"", "ops", "dev"},
			},
		},
		{
			name:   "edit name",
			form:   url.Values{"name": {"Alpha 2"}, "notes": {"first"}},
			mutate: func(r *record) { r.Name = "Alpha 2" },
		},
		{
			name:   "clear notes",
			form:   url.Values{"notes": {""}},
			mutate: func(r *record) { r.Notes = "" },
		},
		{
			name:   "change status",
			form:   url.Values{"status": {"closed"}},
			mutate: func(r *record) { r.Status = "closed" },
		},
		{
			name:   "placeholder status keeps current",
			form:   url.Values{"status": {""}},
			mutate: nil,
		},
		{
			name:   "non-editable keys are ignored",
			form:   url.Values{"id": {"99"}, "owner": {"Eve"}},
			mutate: nil,
		},
		{
			name:   "add a tag",
			form:   url.Values{"tags": {"", "dev", "ops", "qa"}},
			mutate: func(r *record) { r.Tags = []string{"ops", "dev", "qa"} },
		},
		{
			name:   "uncheck everything",
			form:   url.Values{"tags": {""}},
			mutate: func(r *record) { r.Tags = []string{} },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := sample()
			want := sample()
			if tt.mutate != nil {
				tt.mutate(&want)
			}

			got, err := Apply(in, recordFields(), tt.form)
			require.NoError(t, err)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("Apply() mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(sample(), in); diff != "" {
				t.Errorf("input record was modified (-want +got):\n%s", diff)
			}
		})
	}
}

func TestApply_RejectsUnknownOptions(t *testing.T) {
	in := sample()

	_, err := Apply(in, recordFields(), url.Values{"status": {"archived"}})
	assert.ErrorIs(t, err, ErrInvalidOption)

	got, err := Apply(in, recordFields(), url.Values{"name": {"x"}, "tags": {"admin"}})
	assert.ErrorIs(t, err, ErrInvalidOption)
	assert.Equal(t, "Alpha", got.Name, "the original record is returned on error")
}

func TestToggle_CheckThenUncheckRestoresSelection(t *testing.T) {
	f := recordFields()[5]
	for _, start := range [][]string{nil, {}, {"ops"}, {"ops", "dev"}, {"dev", "ops", "qa"}} {
		for _, o := range tagOptions {
			if slices.Contains(start, o.Value) {
				continue
			}
			checked := Toggle(f, start, o, true)
			assert.True(t, f.IsChecked(o.Value, checked))

			back := Toggle(f, checked, o, false).([]string)
			assert.ElementsMatch(t, start, back, "start=%v option=%s", start, o.Value)
		}
	}
}

func TestTable_ListScreen(t *testing.T) {
	type project struct {
		ID     string
		Name   string
		Status string
	}
	fields := []Field[project]{
		{Key: "id", Label: "ID", Value: func(p project) any { return p.ID }},
		{Key: "name", Label: "Name", Value: func(p project) any { return p.Name }},
		{Key: "status", Label: "Status", Value: func(p project) any { return p.Status }},
	}

	view := Table("Projects", []project{{ID: "1", Name: "Alpha", Status: "active"}}, fields,
		func(p project) []Action { return EntityActions("/projects", p.ID, true) })

	assert.Equal(t, []string{"ID", "Name", "Status", "Actions"}, view.Headers)
	require.Len(t, view.Rows, 1)
	assert.Equal(t, []string{"1", "Alpha", "active"}, view.Rows[0].Cells)

	var labels, urls []string
	for _, a := range view.Rows[0].Actions {
		labels = append(labels, a.Label)
		urls = append(urls, a.URL)
	}
	assert.Equal(t, []string{"View", "Edit", "Delete"}, labels)
	assert.Equal(t, []string{"/projects/1", "/projects/1?mode=edit", "/projects/1/delete"}, urls)
}

func TestTable_KeepsBackendOrder(t *testing.T) {
	fields := []Field[int]{{Key: "n", Label: "N", Value: func(n int) any { return n }}}
	view := Table("Numbers", []int{3, 1, 2}, fields, nil)

	var got []string
	for _, r := range view.Rows {
		got = append(got, r.Cells[0])
		assert.Nil(t, r.Actions)
	}
	assert.Equal(t, []string{"3", "1", "2"}, got)
	assert.Equal(t, []string{"N"}, view.Headers)

	assert.Len(t, EntityActions("/parties", strconv.Itoa(4), false), 2)
}

func TestToggleModeURL_RoundTrip(t *testing.T) {
	for _, raw := range []string{
		"/projects/1",
		"/parties/7",
		"/projects/1?tab=assignments",
		"/projects/1?b=2&a=1",
		"/projects/1#top",
	} {
		t.Run(raw, func(t *testing.T) {
			u, err := url.Parse(raw)
			require.NoError(t, err)
			require.Equal(t, Viewing, ModeFrom(u.Query()))

			edit := ToggleModeURL(u)
			eu, err := url.Parse(edit)
			require.NoError(t, err)
			assert.Equal(t, Editing, ModeFrom(eu.Query()))

			assert.Equal(t, raw, ToggleModeURL(eu))
		})
	}
}

func TestToggleModeURL_FromEditing(t *testing.T) {
	u, _ := url.Parse("/projects/1?mode=edit")
	assert.Equal(t, "/projects/1", ToggleModeURL(u))

	u, _ = url.Parse("/projects/1?x=1&mode=edit")
	assert.Equal(t, "/projects/1?x=1", ToggleModeURL(u))
	assert.Equal(t, "edit", Editing.String())
	assert.Equal(t, "view", Viewing.String())
}

func TestToggleModeURL_EncodedFlag(t *testing.T) {
	for _, raw := range []string{
		"/projects/1?mode=%65dit",
		"/projects/1?%6Dode=edit",
		"/projects/1?x=1&mode=edit&mode=%65dit",
	} {
		t.Run(raw, func(t *testing.T) {
			u, err := url.Parse(raw)
			require.NoError(t, err)
			require.Equal(t, Editing, ModeFrom(u.Query()))

			next, err := url.Parse(ToggleModeURL(u))
			require.NoError(t, err)
			assert.Equal(t, Viewing, ModeFrom(next.Query()), next.String())
		})
	}

	u, _ := url.Parse("/projects/1?mode=%65ditor")
	assert.Equal(t, "/projects/1?mode=%65ditor&mode=edit", ToggleModeURL(u))
}

func TestViewURL(t *testing.T) {
	tests := map[string]string{
		"/projects/1":                    "/projects/1",
		"/projects/1?mode=edit":          "/projects/1",
		"/projects/1?mode=edit&tab=x":    "/projects/1?tab=x",
		"/parties/4?q=a%26b&mode=%65dit": "/parties/4?q=a%26b",
		"/parties/4?tab=roles":           "/parties/4?tab=roles",
	}
	for raw, want := range tests {
		u, err := url.Parse(raw)
		require.NoError(t, err)
		assert.Equal(t, want, ViewURL(u), raw)
	}
}
