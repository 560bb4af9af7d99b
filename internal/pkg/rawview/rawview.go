// Package rawview provides tolerant field access over the loosely-typed
// object graph delivered by the host. Containers come in two shapes: JSON
// mappings (map[string]interface{}) and attribute-bearing struct values from
// decoded SDK resources. Absence is a normal outcome here, never an error,
// so every accessor reports presence with a boolean instead of failing.
package rawview

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Get probes the container for each candidate name in order and returns the
// first present, non-nil value. Candidate lists let callers cover legacy
// snake_case, camelCase, and FHIR field spellings in one call.
func Get(container interface{}, names ...string) (interface{}, bool) {
	if container == nil {
		return nil, false
	}
	for _, name := range names {
		if v, ok := lookup(container, name); ok {
			return v, true
		}
	}
	return nil, false
}

// Path resolves a dotted path with optional [idx] segments, e.g.
// "appointment_type.coding[0].code". Resolution stops with (nil, false) the
// moment any intermediate link is absent.
func Path(container interface{}, path string) (interface{}, bool) {
	current := container
	for _, segment := range strings.Split(path, ".") {
		name, indexes, err := splitSegment(segment)
		if err != nil {
			return nil, false
		}
		if name != "" {
			v, ok := lookup(current, name)
			if !ok {
				return nil, false
			}
			current = v
		}
		for _, idx := range indexes {
			v, ok := index(current, idx)
			if !ok {
				return nil, false
			}
			current = v
		}
	}
	if current == nil {
		return nil, false
	}
	return current, true
}

// String renders v as text, or "" when v is nil. It never produces the
// literal "nil"/"null"/"<nil>" text that naive formatting would emit.
func String(v interface{}) string {
	if v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	case fmt.Stringer:
		return s.String()
	case float64:
		// JSON numbers decode as float64; render integral values without
		// a trailing ".0" so identifiers survive round trips.
		if s == float64(int64(s)) {
			return strconv.FormatInt(int64(s), 10)
		}
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	default:
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Ptr && rv.IsNil() {
			return ""
		}
		return fmt.Sprintf("%v", v)
	}
}

// GetString is Get followed by String; absent fields yield "".
func GetString(container interface{}, names ...string) string {
	v, ok := Get(container, names...)
	if !ok {
		return ""
	}
	return String(v)
}

// Int coerces v to an integer, reporting whether the coercion succeeded.
func Int(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	case float32:
		return int(n), true
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

// GetInt is Get followed by Int.
func GetInt(container interface{}, names ...string) (int, bool) {
	v, ok := Get(container, names...)
	if !ok {
		return 0, false
	}
	return Int(v)
}

// List normalizes v into a []interface{} when it is any slice or array shape.
func List(v interface{}) ([]interface{}, bool) {
	if v == nil {
		return nil, false
	}
	if items, ok := v.([]interface{}); ok {
		return items, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	items := make([]interface{}, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		items[i] = rv.Index(i).Interface()
	}
	return items, true
}

// GetList is Get followed by List.
func GetList(container interface{}, names ...string) ([]interface{}, bool) {
	v, ok := Get(container, names...)
	if !ok {
		return nil, false
	}
	return List(v)
}

// lookup resolves one field name against one container. Supported shapes are
// mappings keyed by string and struct values (directly or behind pointers or
// interfaces); struct fields match by exact name, json tag, or
// case-insensitive name, in that order.
func lookup(container interface{}, name string) (interface{}, bool) {
	switch c := container.(type) {
	case nil:
		return nil, false
	case map[string]interface{}:
		v, ok := c[name]
		if !ok || v == nil {
			return nil, false
		}
		return v, true
	case map[string]string:
		v, ok := c[name]
		if !ok {
			return nil, false
		}
		return v, true
	}

	rv := reflect.ValueOf(container)
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, false
	}

	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		if field.Name == name || jsonTagName(field) == name || strings.EqualFold(field.Name, name) {
			return deref(rv.Field(i))
		}
	}
	return nil, false
}

func jsonTagName(field reflect.StructField) string {
	tag := field.Tag.Get("json")
	if tag == "" || tag == "-" {
		return ""
	}
	if comma := strings.Index(tag, ","); comma >= 0 {
		tag = tag[:comma]
	}
	return tag
}

func deref(rv reflect.Value) (interface{}, bool) {
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() || !rv.CanInterface() {
		return nil, false
	}
	return rv.Interface(), true
}

func index(container interface{}, idx int) (interface{}, bool) {
	items, ok := List(container)
	if !ok || idx < 0 || idx >= len(items) {
		return nil, false
	}
	if items[idx] == nil {
		return nil, false
	}
	return items[idx], true
}

// splitSegment parses "coding[0]" into ("coding", [0]) and "[1]" into
// ("", [1]).
func splitSegment(segment string) (string, []int, error) {
	name := segment
	var indexes []int
	for {
		open := strings.Index(name, "[")
		if open < 0 {
			break
		}
		closing := strings.Index(name[open:], "]")
		if closing < 0 {
			return "", nil, fmt.Errorf("unterminated index in segment %q", segment)
		}
		idx, err := strconv.Atoi(name[open+1 : open+closing])
		if err != nil {
			return "", nil, err
		}
		indexes = append(indexes, idx)
		name = name[:open] + name[open+closing+1:]
	}
	return name, indexes, nil
}
