package phrase

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/ardnew/phrasegen/modifier"
)

// lookup resolves a dotted path such as "user.name" against bindings.
// Path elements select map keys or, for lists, element indexes.
// ok is false if any element of the path is undefined.
func lookup(bindings any, path string) (value any, ok bool) {
	head, rest, nested := strings.Cut(path, ".")

	value, ok = field(bindings, head)
	if !ok || !nested {
		return value, ok
	}

	return lookup(value, rest)
}

func field(container any, key string) (any, bool) {
	switch m := container.(type) {
	case nil:
		return nil, false
	case map[string]any:
		v, ok := m[key]

		return v, ok
	case map[string]string:
		v, ok := m[key]

		return v, ok
	}

	if list, ok := modifier.List(container); ok {
		i, err := strconv.Atoi(key)
		if err != nil || i < 0 || i >= len(list) {
			return nil, false
		}

		return list[i], true
	}

	rv := reflect.ValueOf(container)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}

	v := rv.MapIndex(reflect.ValueOf(key).Convert(rv.Type().Key()))
	if !v.IsValid() {
		return nil, false
	}

	return v.Interface(), true
}

// isScalar reports whether v can be substituted into phrase text.
func isScalar(v any) bool {
	if v == nil {
		return false
	}

	if _, ok := modifier.List(v); ok {
		return false
	}

	return reflect.ValueOf(v).Kind() != reflect.Map
}

// substitute replaces each $path in s that names a bound scalar with its
// text. A path is a run of identifier characters, optionally continued by
// '.' and further identifier characters. Unbound paths are left verbatim.
func substitute(s string, bindings map[string]any) string {
	if !strings.Contains(s, "$") {
		return s
	}

	var out strings.Builder

	for i := 0; i < len(s); {
		if s[i] != '$' || i+1 >= len(s) || !isIdent(s[i+1]) {
			out.WriteByte(s[i])
			i++

			continue
		}

		end := pathEnd(s, i+1)
		if v, ok := lookup(bindings, s[i+1:end]); ok && isScalar(v) {
			out.WriteString(modifier.Format(v))
		} else {
			out.WriteString(s[i:end])
		}

		i = end
	}

	return out.String()
}

// pathEnd returns the index just past the dotted path beginning at s[i].
func pathEnd(s string, i int) int {
	for i < len(s) {
		if !isIdent(s[i]) && (s[i] != '.' || i+1 >= len(s) || !isIdent(s[i+1])) {
			break
		}

		i++
	}

	return i
}
