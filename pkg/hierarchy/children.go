package hierarchy

import (
	"reflect"
	"strings"
)

// DefaultChildren reads the children of data from, in order: a
// `Children() []D` method, a "children" key of a map[string]any, or a struct
// field named Children. Anything else is a leaf.
func DefaultChildren[D any](data D) []D {
	if isNil(data) {
		return nil
	}
	if c, ok := any(data).(interface{ Children() []D }); ok {
		return c.Children()
	}
	return KeyedChildren[D]("children")(data)
}

// KeyedChildren returns an accessor reading children from the map key or the
// struct field called key. Struct fields match case-insensitively.
func KeyedChildren[D any](key string) ChildrenFunc[D] {
	return func(data D) []D {
		if isNil(data) {
			return nil
		}
		if m, ok := any(data).(map[string]any); ok {
			return convert[D](m[key])
		}
		v := reflect.ValueOf(any(data))
		for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
			if v.IsNil() {
				return nil
			}
			v = v.Elem()
		}
		if v.Kind() != reflect.Struct {
			return nil
		}
		f := v.FieldByNameFunc(func(name string) bool { return strings.EqualFold(name, key) })
		if !f.IsValid() || !f.CanInterface() {
			return nil
		}
		return convert[D](f.Interface())
	}
}

func isNil[D any](data D) bool {
	v := reflect.ValueOf(any(data))
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return v.IsNil()
	}
	return false
}

// convert turns a decoded children value into []D, dropping elements that
// are not a D.
func convert[D any](raw any) []D {
	switch c := raw.(type) {
	case nil:
		return nil
	case []D:
		return c
	}
	v := reflect.ValueOf(raw)
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return nil
	}
	out := make([]D, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		if d, ok := v.Index(i).Interface().(D); ok {
			out = append(out, d)
		}
	}
	return out
}
