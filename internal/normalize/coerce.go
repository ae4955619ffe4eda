// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize projects heterogeneous registry records into flat,
// presentation-ready rows. Every function here is total: a missing, null,
// or wrong-typed field degrades to an empty value, never a panic. The
// registry serves the same logical field as a plain string, a wrapped
// object, or a list of either depending on the study's vintage, so the
// accepted shapes are enumerated in one place instead of type-sniffed
// throughout the codebase.
package normalize

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// textKeys are the wrapper keys a free-text object may use, checked in
// order.
var textKeys = [...]string{"textblock", "textBlock", "value"}

// AsText flattens a free-text field into a single string. Accepted shapes:
//   - nil                    -> ""
//   - string                 -> itself
//   - object with a textblock/textBlock/value key -> that value
//   - any other object       -> its values joined with spaces
//   - list of any of the above -> elements joined with "; "
//   - anything else          -> its default formatting
func AsText(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case map[string]interface{}:
		for _, k := range textKeys {
			if inner, ok := t[k]; ok {
				if inner == nil {
					return ""
				}
				return fmt.Sprint(inner)
			}
		}
		// Unknown wrapper: join the values. Keys are sorted so the output
		// does not depend on map iteration order.
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var parts []string
		for _, k := range keys {
			if t[k] != nil {
				parts = append(parts, fmt.Sprint(t[k]))
			}
		}
		return strings.Join(parts, " ")
	case []interface{}:
		parts := make([]string, 0, len(t))
		for _, e := range t {
			parts = append(parts, AsText(e))
		}
		return strings.Join(parts, "; ")
	default:
		return fmt.Sprint(t)
	}
}

var firstInt = regexp.MustCompile(`(\d+)`)

// ParseAge extracts an integer age from whatever shape the registry used:
// a number, a string with embedded digits ("18 Years"), or a wrapping
// object with a value key. Nil means no extractable bound.
func ParseAge(v interface{}) *int {
	switch t := v.(type) {
	case nil:
		return nil
	case map[string]interface{}:
		return ParseAge(t["value"])
	case float64:
		n := int(t)
		return &n
	case int:
		n := t
		return &n
	default:
		m := firstInt.FindString(fmt.Sprint(t))
		if m == "" {
			return nil
		}
		n, err := strconv.Atoi(m)
		if err != nil {
			return nil
		}
		return &n
	}
}

// EnsureList coerces a value into a list: nil becomes empty, a list stays
// itself, and a lone scalar becomes a one-element list.
func EnsureList(v interface{}) []interface{} {
	switch t := v.(type) {
	case nil:
		return nil
	case []interface{}:
		return t
	default:
		return []interface{}{v}
	}
}

// EnsureStrings coerces a value into a list of display strings.
func EnsureStrings(v interface{}) []string {
	items := EnsureList(v)
	out := make([]string, 0, len(items))
	for _, e := range items {
		out = append(out, AsText(e))
	}
	return out
}

// GetString returns m[key] as a trimmed string, tolerating a nil map or
// non-string value.
func GetString(m map[string]interface{}, key string) string {
	s, _ := m[key].(string)
	return strings.TrimSpace(s)
}
