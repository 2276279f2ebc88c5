package builtwith

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
)

// Param is a single query parameter. A nil Value (or a nil pointer) means the
// parameter is absent and is left out of the request entirely. Value must be
// a string, bool, integer or float, or a pointer to one; other types panic
// on encoding.
type Param struct {
	Key   string
	Value any
}

// Params is an ordered list of query parameters. Order is preserved on
// encoding, so the request URL is deterministic.
type Params []Param

// Encode serializes the defined parameters as "k=v&k=v" in insertion order.
// Absent values are dropped; false, 0 and "" are kept verbatim. Values are
// query-escaped. Returns "" if no parameter is defined.
func (p Params) Encode() string {
	var b strings.Builder
	for _, param := range p {
		v, ok := formatValue(param.Value)
		if !ok {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(param.Key)
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(v))
	}
	return b.String()
}

// formatValue renders a scalar the way it should appear on the wire.
// ok is false for absent values. It panics on non-scalar values.
func formatValue(v any) (s string, ok bool) {
	switch x := v.(type) {
	case nil:
		return "", false
	case string:
		return x, true
	case bool:
		return strconv.FormatBool(x), true
	case int:
		return strconv.Itoa(x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case *string:
		if x == nil {
			return "", false
		}
		return *x, true
	case *bool:
		if x == nil {
			return "", false
		}
		return strconv.FormatBool(*x), true
	case *int:
		if x == nil {
			return "", false
		}
		return strconv.Itoa(*x), true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return "", false
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), true
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 32), true
	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64), true
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), true
	case reflect.String:
		return rv.String(), true
	}
	panic(fmt.Sprintf("builtwith: unsupported parameter value of type %T", v))
}

// Bool returns a pointer to v, for optional boolean request options.
func Bool(v bool) *bool { return &v }

// String returns a pointer to v, for optional string request options.
func String(v string) *string { return &v }

// Int returns a pointer to v, for optional integer request options.
func Int(v int) *int { return &v }
