package modifier

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Format returns the text form of a resolved value.
//
// Lists are joined with commas, nil formats as the empty string, and
// integral floating-point values omit their fractional part.
func Format(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case fmt.Stringer:
		return v.String()
	}

	if list, ok := List(value); ok {
		part := make([]string, len(list))
		for i, e := range list {
			part[i] = Format(e)
		}

		return strings.Join(part, ",")
	}

	if n, ok := number(value); ok {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}

	return fmt.Sprint(value)
}

// Truthy reports whether a predicate result selects the then-branch of a
// conditional. nil, false, the empty string, and numeric zero are false.
// Everything else, including empty lists and maps, is true.
func Truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	}

	if n, ok := number(value); ok {
		return n != 0 && !math.IsNaN(n)
	}

	return true
}

// List returns the elements of value if it is a slice or array.
// Strings and byte slices are not lists.
func List(value any) ([]any, bool) {
	switch v := value.(type) {
	case nil, string, []byte:
		return nil, false
	case []any:
		return v, true
	case []string:
		list := make([]any, len(v))
		for i, s := range v {
			list[i] = s
		}

		return list, true
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}

	list := make([]any, rv.Len())
	for i := range list {
		list[i] = rv.Index(i).Interface()
	}

	return list, true
}

// number returns the numeric value of v if v has a numeric Go type.
func number(v any) (float64, bool) {
	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32,
		reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	default:
		return 0, false
	}
}

// parseNumber converts a modifier argument to a number.
// Surrounding whitespace is ignored and the empty string is zero.
func parseNumber(v any) (float64, bool) {
	if n, ok := number(v); ok {
		return n, true
	}

	switch a := v.(type) {
	case string:
		s := strings.TrimSpace(a)
		if s == "" {
			return 0, true
		}

		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return math.NaN(), false
		}

		return n, true
	case bool:
		if a {
			return 1, true
		}

		return 0, true
	}

	return math.NaN(), false
}

// arg returns the i'th argument, or nil if there are fewer arguments.
func arg(args []any, i int) any {
	if i < len(args) {
		return args[i]
	}

	return nil
}

// upperFirst returns s with its first character converted to upper case.
func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}

	return string(unicode.ToUpper(r)) + s[size:]
}
