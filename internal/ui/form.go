package ui

import (
	"errors"
	"fmt"
	"net/url"
)

var ErrInvalidOption = errors.New("value is not one of the field options")

type FormOption struct {
	Value    string
	Label    string
	Selected bool
}

type FormField struct {
	Key      string
	Label    string
	Editable bool
	Input    InputKind
	Value    string
	Options  []FormOption
}

// IsText, IsSelect and IsMultiSelect are used by templates.
func (f FormField) IsText() bool        { return f.Input == InputText }
func (f FormField) IsSelect() bool      { return f.Input == InputSelect }
func (f FormField) IsMultiSelect() bool { return f.Input == InputMultiSelect }

type FormView struct {
	Title     string
	Action    string
	CancelURL string
	Fields    []FormField
	Error     string
}

// Form builds the edit form for rec. Read-only fields are shown with their
// display value.
func Form[T any](title string, rec T, fields []Field[T]) FormView {
	out := make([]FormField, 0, len(fields))
	for _, f := range fields {
		ff := FormField{
			Key:      f.Key,
			Label:    f.Label,
			Editable: f.Editable,
			Input:    f.Input,
		}
		if !f.Editable {
			ff.Value = f.Display(rec)
			out = append(out, ff)
			continue
		}

		current := f.value(rec)
		switch f.Input {
		case InputMultiSelect:
			for _, o := range f.Options {
				ff.Options = append(ff.Options, FormOption{
					Value:    o.Value,
					Label:    o.Label,
					Selected: f.checked(o.Value, current),
				})
			}
		case InputSelect:
			ff.Value = FormatValue(current)
			for _, o := range f.Options {
				ff.Options = append(ff.Options, FormOption{
					Value:    o.Value,
					Label:    o.Label,
					Selected: o.Value == ff.Value,
				})
			}
		default:
			ff.Value = FormatValue(current)
		}
		out = append(out, ff)
	}
	return FormView{Title: title, Fields: out}
}

// Apply merges submitted form values into a copy of rec. Keys missing from
// the form and non-editable fields keep their current value, and a field is
// only written when its submitted value differs from the current one.
func Apply[T any](rec T, fields []Field[T], form url.Values) (T, error) {
	out := rec
	for _, f := range fields {
		if !f.Editable || f.Set == nil {
			continue
		}
		submitted, ok := form[f.Key]
		if !ok {
			continue
		}

		switch f.Input {
		case InputMultiSelect:
			if err := applyMultiSelect(&out, f, submitted); err != nil {
				return rec, err
			}
		case InputSelect:
			v := first(submitted)
			if v == "" {
				continue
			}
			if !f.hasOption(v) {
				return rec, fmt.Errorf("%w: %s=%q", ErrInvalidOption, f.Key, v)
			}
			if v != FormatValue(f.value(out)) {
				f.Set(&out, v)
			}
		default:
			v := first(submitted)
			if v != FormatValue(f.value(out)) {
				f.Set(&out, v)
			}
		}
	}
	return out, nil
}

// Toggle applies one checkbox transition to the selection of a multi-select
// field.
func Toggle[T any](f Field[T], current any, option Option, checked bool) any {
	if checked {
		if f.Check == nil {
			return current
		}
		return f.Check(current, f.Options, option)
	}
	if f.Uncheck == nil {
		return current
	}
	return f.Uncheck(current, option)
}

// applyMultiSelect walks the options in order and toggles every option whose
// submitted state differs from the current selection. Empty values are the
// hidden marker that makes an all-unchecked group visible in the form.
func applyMultiSelect[T any](out *T, f Field[T], submitted []string) error {
	want := make(map[string]bool, len(submitted))
	for _, v := range submitted {
		if v == "" {
			continue
		}
		if !f.hasOption(v) {
			return fmt.Errorf("%w: %s=%q", ErrInvalidOption, f.Key, v)
		}
		want[v] = true
	}

	current := f.value(*out)
	changed := false
	for _, o := range f.Options {
		was := f.checked(o.Value, current)
		if was == want[o.Value] {
			continue
		}
		current = Toggle(f, current, o, want[o.Value])
		changed = true
	}
	if changed {
		f.Set(out, current)
	}
	return nil
}

func first(vals []string) string {
	if len(vals) == 0 {
		return ""
	}
	return vals[0]
}
