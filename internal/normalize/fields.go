package normalize

import (
	"strconv"
	"strings"
)

// getString returns the first populated key of data as a trimmed string.
// Dotted keys walk nested objects ("categories.location").
func getString(data map[string]any, keys ...string) string {
	for _, key := range keys {
		val, ok := lookup(data, key)
		if !ok {
			continue
		}
		switch v := val.(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		case int:
			return strconv.Itoa(v)
		case int64:
			return strconv.FormatInt(v, 10)
		}
	}
	return ""
}

func lookup(data map[string]any, key string) (any, bool) {
	cur := any(data)
	for _, part := range strings.Split(key, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[part]
		if !ok || cur == nil {
			return nil, false
		}
	}
	return cur, true
}

// locationKeys is the order in which a location object is searched.
var locationKeys = []string{"name", "location", "locationName", "text", "label"}

// locationText flattens the three location shapes boards use (plain string,
// nested object, list of objects) into one string. The first populated
// candidate wins.
func locationText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case map[string]any:
		for _, k := range locationKeys {
			if s := locationText(t[k]); s != "" {
				return s
			}
		}
		if s := joinNonEmpty(t, "city", "region", "country"); s != "" {
			return s
		}
		return joinNonEmpty(t, "addressLocality", "addressRegion", "addressCountry")
	case []any:
		for _, item := range t {
			if s := locationText(item); s != "" {
				return s
			}
		}
	case []string:
		for _, item := range t {
			if s := strings.TrimSpace(item); s != "" {
				return s
			}
		}
	}
	return ""
}

// firstLocation walks candidate keys of data in order and returns the first
// one that flattens to a non-empty location.
func firstLocation(data map[string]any, keys ...string) string {
	for _, key := range keys {
		val, ok := lookup(data, key)
		if !ok {
			continue
		}
		if s := locationText(val); s != "" {
			return s
		}
	}
	return ""
}

func joinNonEmpty(m map[string]any, keys ...string) string {
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		if s, ok := m[k].(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				parts = append(parts, s)
			}
		}
	}
	return strings.Join(parts, ", ")
}

// stringList collects tag-like values: a string, a list of strings, or a list
// of objects carrying a "name"/"label"/"value".
func stringList(data map[string]any, keys ...string) []string {
	var out []string
	for _, key := range keys {
		val, ok := lookup(data, key)
		if !ok {
			continue
		}
		out = append(out, flattenStrings(val)...)
	}
	return out
}

func flattenStrings(v any) []string {
	switch t := v.(type) {
	case string:
		if s := strings.TrimSpace(t); s != "" {
			return []string{s}
		}
	case []string:
		return t
	case []any:
		var out []string
		for _, item := range t {
			out = append(out, flattenStrings(item)...)
		}
		return out
	case map[string]any:
		for _, k := range []string{"name", "label", "value"} {
			if s, ok := t[k].(string); ok && strings.TrimSpace(s) != "" {
				return []string{strings.TrimSpace(s)}
			}
		}
	}
	return nil
}
