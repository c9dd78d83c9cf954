// Package ui builds view models for list, detail and edit screens from
// declarative field descriptors. It performs no I/O.
package ui

import (
	"fmt"
	"reflect"
)

type InputKind int

const (
	InputText InputKind = iota
	InputSelect
	InputMultiSelect
)

func (k InputKind) String() string {
	switch k {
	case InputSelect:
		return "select"
	case InputMultiSelect:
		return "multiselect"
	default:
		return "text"
	}
}

// Option is one choice of a select or multi-select field.
type Option struct {
	Value string
	Label string
}

// Field describes how one property of T is displayed and edited.
//
// Value reads the property. Render, when set, formats the value for display.
// Set writes an edited value back; it receives a string for text and select
// inputs and whatever Check/Uncheck return for multi-select inputs.
//
// IsChecked, Check and Uncheck are the selection policies of a multi-select
// field. Check and Uncheck must return a new value rather than modify
// current in place.
type Field[T any] struct {
	Key      string
	Label    string
	Editable bool
	Input    InputKind
	Options  []Option

	Value  func(T) any
	Render func(any) string
	Set    func(*T, any)

	IsChecked func(option string, current any) bool
	Check     func(current any, options []Option, option Option) any
	Uncheck   func(current any, option Option) any
}

func (f Field[T]) value(rec T) any {
	if f.Value == nil {
		return nil
	}
	return f.Value(rec)
}

// Display formats the field of rec for read-only output.
func (f Field[T]) Display(rec T) string {
	v := f.value(rec)
	if f.Render != nil {
		return f.Render(v)
	}
	return FormatValue(v)
}

func (f Field[T]) hasOption(value string) bool {
	for _, o := range f.Options {
		if o.Value == value {
			return true
		}
	}
	return false
}

func (f Field[T]) checked(option string, current any) bool {
	if f.IsChecked == nil {
		return false
	}
	return f.IsChecked(option, current)
}

// FormatValue is the default string conversion. Nil values and nil pointers
// render as the empty string.
func FormatValue(v any) string {
	if v == nil {
		return ""
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
