// Package lookup resolves values out of loosely-typed, schema-drifting JSON
// payloads. Providers return the same logical value under different shapes,
// so callers pass an ordered list of candidate paths and take the first one
// that is present.
package lookup

import (
	"strconv"
	"strings"
)

// First walks each candidate path in order over root (a decoded JSON value)
// and returns the first present, non-empty value. Missing intermediate keys
// are treated as "not found", never as an error. Empty strings, numeric
// zero, false, nil, and empty slices/maps all count as absent. When no path
// yields a value, fallback is returned.
//
// Paths are dot-separated key and index steps, e.g.
// "AirItineraryPricingInfo.0.ItinTotalFare.TotalFare.Amount". Two shape
// drifts are tolerated: an index step applied to a non-slice resolves to the
// value itself (single object where an array was expected), and a key step
// applied to a slice descends into its first element.
func First(root any, paths []string, fallback any) any {
	for _, path := range paths {
		if v, ok := resolve(root, path); ok && present(v) {
			return v
		}
	}
	return fallback
}

// Raw walks a single path without the truthiness rules of First: the
// boolean reports whether every step was traversable, so callers can tell
// an explicit false or zero apart from an absent field.
func Raw(root any, path string) (any, bool) {
	v, ok := resolve(root, path)
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// FirstString resolves the first present value and coerces it to a string.
// Numeric values are formatted; other types fall through to fallback.
func FirstString(root any, paths []string, fallback string) string {
	v := First(root, paths, nil)
	if v == nil {
		return fallback
	}
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case bool:
		return strconv.FormatBool(s)
	default:
		return fallback
	}
}

// FirstFloat resolves the first present value and coerces it to a float64.
// Numeric strings parse; anything else falls through to fallback.
func FirstFloat(root any, paths []string, fallback float64) float64 {
	v := First(root, paths, nil)
	if v == nil {
		return fallback
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return f
		}
		return fallback
	default:
		return fallback
	}
}

// FirstInt resolves the first present value and coerces it to an int.
func FirstInt(root any, paths []string, fallback int) int {
	v := First(root, paths, nil)
	if v == nil {
		return fallback
	}
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return i
		}
		return fallback
	default:
		return fallback
	}
}

// AsSlice normalizes a value that providers emit as either an array or a
// bare object: slices are returned as-is, nil stays nil, and any other
// value is wrapped in a single-element slice.
func AsSlice(v any) []any {
	switch s := v.(type) {
	case nil:
		return nil
	case []any:
		return s
	default:
		return []any{v}
	}
}

// resolve walks one dot-separated path. The boolean reports whether every
// step was traversable; the caller decides whether the value is present.
func resolve(root any, path string) (any, bool) {
	current := root
	for _, step := range strings.Split(path, ".") {
		if current == nil {
			return nil, false
		}

		if idx, err := strconv.Atoi(step); err == nil {
			current = index(current, idx)
			continue
		}

		switch node := current.(type) {
		case map[string]any:
			current = node[step]
		case []any:
			// Key step against an array: descend into the first element.
			if len(node) == 0 {
				return nil, false
			}
			inner, ok := node[0].(map[string]any)
			if !ok {
				return nil, false
			}
			current = inner[step]
		default:
			return nil, false
		}
	}
	return current, true
}

// index applies an array index step, tolerating a bare object at index 0.
func index(v any, idx int) any {
	if s, ok := v.([]any); ok {
		if idx < 0 || idx >= len(s) {
			return nil
		}
		return s[idx]
	}
	if idx == 0 {
		return v
	}
	return nil
}

// present reports whether a resolved value counts as found. Mirrors the
// falsiness rules the extractors rely on: nil, empty string, numeric zero,
// false, and empty collections are all absent.
func present(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case float64:
		return t != 0
	case int:
		return t != 0
	case bool:
		return t
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	default:
		return true
	}
}
