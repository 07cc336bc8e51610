package tableview

import (
	"reflect"
	"strings"
)

// Record is one displayable entity. RecordID must be unique within a
// rendered collection.
type Record interface {
	RecordID() string
}

// FieldGetter lets a record answer Field accessors without reflection.
type FieldGetter interface {
	Field(name string) (any, bool)
}

// Row is a map backed Record keyed by field name. Its identifier is the
// "id" entry.
type Row map[string]any

func (r Row) RecordID() string {
	return formatValue(r["id"])
}

func (r Row) Field(name string) (any, bool) {
	v, ok := r[name]
	return v, ok
}

// lookupField resolves name on rec. Structs match exported fields by json
// tag first and then by case-insensitive field name.
func lookupField(rec any, name string) (any, bool) {
	if fg, ok := rec.(FieldGetter); ok {
		return fg.Field(name)
	}

	value := deref(reflect.ValueOf(rec))
	switch value.Kind() {
	case reflect.Map:
		if value.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		v := value.MapIndex(reflect.ValueOf(name).Convert(value.Type().Key()))
		if !v.IsValid() {
			return nil, false
		}
		return v.Interface(), true
	case reflect.Struct:
		if idx, ok := fieldIndex(value.Type(), name); ok {
			return value.FieldByIndex(idx).Interface(), true
		}
	}
	return nil, false
}

func fieldIndex(t reflect.Type, name string) ([]int, bool) {
	var byName []int
	for _, f := range reflect.VisibleFields(t) {
		if !f.IsExported() || f.Anonymous {
			continue
		}
		if tag, ok := f.Tag.Lookup("json"); ok {
			tagName, _, _ := strings.Cut(tag, ",")
			if tagName == name {
				return f.Index, true
			}
		}
		if byName == nil && strings.EqualFold(f.Name, name) {
			byName = f.Index
		}
	}
	return byName, byName != nil
}

func deref(value reflect.Value) reflect.Value {
	for value.IsValid() && (value.Kind() == reflect.Pointer || value.Kind() == reflect.Interface) {
		if value.IsNil() {
			return reflect.Value{}
		}
		value = value.Elem()
	}
	return value
}
