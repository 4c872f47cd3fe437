// ABOUTME: Dynamic attribute-or-key access for path resolution
// ABOUTME: The only place reflection-based lookup happens in the resolver
package resolve

import (
	"reflect"
	"strings"
)

// get looks up key on an arbitrary object: string-keyed maps first, then
// exported struct fields (matched by json tag, exact name, or snake_case
// name). Missing keys and unsupported shapes return nil, never an error.
func get(obj any, key string) any {
	if obj == nil {
		return nil
	}

	switch v := obj.(type) {
	case map[string]any:
		return v[key]
	case map[string]string:
		if s, ok := v[key]; ok {
			return s
		}
		return nil
	}

	rv := reflect.ValueOf(obj)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil
		}
		mv := rv.MapIndex(reflect.ValueOf(key))
		if !mv.IsValid() {
			return nil
		}
		return mv.Interface()
	case reflect.Struct:
		return getStructField(rv, key)
	}
	return nil
}

func getStructField(rv reflect.Value, key string) any {
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if !f.IsExported() {
			continue
		}
		if jsonTagName(f.Tag.Get("json")) == key || f.Name == key || snakeCase(f.Name) == key {
			return rv.Field(i).Interface()
		}
	}
	return nil
}

func jsonTagName(tag string) string {
	if tag == "" || tag == "-" {
		return ""
	}
	if idx := strings.Index(tag, ","); idx >= 0 {
		tag = tag[:idx]
	}
	return tag
}

// snakeCase converts CamelCase field names so paths can use the same
// key spelling as the declarative config files.
func snakeCase(name string) string {
	var b strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// index retrieves element i of an ordered collection. Out-of-range or
// non-indexable values return nil.
func index(obj any, i int) any {
	if obj == nil || i < 0 {
		return nil
	}

	if s, ok := obj.([]any); ok {
		if i >= len(s) {
			return nil
		}
		return s[i]
	}

	rv := reflect.ValueOf(obj)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil
	}
	if i >= rv.Len() {
		return nil
	}
	return rv.Index(i).Interface()
}
