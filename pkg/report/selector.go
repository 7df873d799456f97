package report

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/spf13/cast"
)

// FieldSelector extracts the display text of one field from a record.
type FieldSelector interface {
	DisplayString(record any) string
}

// SelectorFunc adapts a plain function to FieldSelector.
type SelectorFunc func(record any) string

func (f SelectorFunc) DisplayString(record any) string {
	if record == nil {
		return ""
	}
	return f(record)
}

// Fielder is implemented by records that expose their fields by name.
type Fielder interface {
	Field(name string) (any, bool)
}

type accessKind int

const (
	accessNone accessKind = iota
	accessFielder
	accessStringMap
	accessAnyMap
	accessStruct
)

type accessor struct {
	kind  accessKind
	index []int
}

// NamedField selects a field by name. The way a record type is accessed is
// resolved the first time that type is seen and reused afterwards.
type NamedField struct {
	name string

	mu       sync.Mutex
	resolved map[reflect.Type]accessor
}

// Field returns a selector reading the field called name.
func Field(name string) *NamedField {
	return &NamedField{
		name:     name,
		resolved: make(map[reflect.Type]accessor),
	}
}

func (f *NamedField) Name() string {
	return f.name
}

func (f *NamedField) DisplayString(record any) string {
	if record == nil {
		return ""
	}
	value, ok := f.lookup(record)
	if !ok {
		return ""
	}
	return DisplayValue(value)
}

func (f *NamedField) lookup(record any) (any, bool) {
	if rv := reflect.ValueOf(record); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil, false
	}
	acc := f.access(record)
	switch acc.kind {
	case accessFielder:
		return record.(Fielder).Field(f.name)
	case accessStringMap:
		v, ok := record.(map[string]string)[f.name]
		return v, ok
	case accessAnyMap:
		v, ok := record.(map[string]any)[f.name]
		return v, ok
	case accessStruct:
		v := reflect.Indirect(reflect.ValueOf(record))
		if !v.IsValid() {
			return nil, false
		}
		field, err := v.FieldByIndexErr(acc.index)
		if err != nil {
			return nil, false
		}
		return field.Interface(), true
	default:
		return nil, false
	}
}

func (f *NamedField) access(record any) accessor {
	t := reflect.TypeOf(record)

	f.mu.Lock()
	defer f.mu.Unlock()

	if acc, ok := f.resolved[t]; ok {
		return acc
	}

	var acc accessor
	switch record.(type) {
	case Fielder:
		acc.kind = accessFielder
	case map[string]string:
		acc.kind = accessStringMap
	case map[string]any:
		acc.kind = accessAnyMap
	default:
		base := t
		if base.Kind() == reflect.Pointer {
			base = base.Elem()
		}
		if base.Kind() == reflect.Struct {
			if sf, ok := base.FieldByName(f.name); ok && sf.IsExported() {
				acc = accessor{kind: accessStruct, index: sf.Index}
			}
		}
	}
	f.resolved[t] = acc
	return acc
}

// DisplayValue converts a field value to the text shown in a report cell.
func DisplayValue(v any) string {
	if v == nil {
		return ""
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return s
}
