package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrTypeMismatch is returned when a decoded JSON value is present but has the wrong type.
var ErrTypeMismatch = errors.New("unexpected value type")

// Dig walks nested JSON objects along keys. It returns def as soon as a key is
// absent or null, and ErrTypeMismatch when an intermediate value is not an object.
func Dig(v any, def any, keys ...string) (any, error) {
	cur := v

	for i, key := range keys {
		if cur == nil {
			return def, nil
		}

		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: %s is %T, want object", ErrTypeMismatch, pathOf(keys[:i]), cur)
		}

		next, ok := obj[key]
		if !ok || next == nil {
			return def, nil
		}

		cur = next
	}

	if cur == nil {
		return def, nil
	}

	return cur, nil
}

// DigString returns the string at keys, or def when it is absent.
func DigString(v any, def string, keys ...string) (string, error) {
	got, err := Dig(v, def, keys...)
	if err != nil {
		return "", err
	}

	s, ok := got.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s is %T, want string", ErrTypeMismatch, pathOf(keys), got)
	}

	return s, nil
}

// DigObject returns the object at keys, or an empty object when it is absent.
func DigObject(v any, keys ...string) (map[string]any, error) {
	got, err := Dig(v, map[string]any{}, keys...)
	if err != nil {
		return nil, err
	}

	obj, ok := got.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s is %T, want object", ErrTypeMismatch, pathOf(keys), got)
	}

	return obj, nil
}

// DigList returns the array at keys, or an empty array when it is absent.
func DigList(v any, keys ...string) ([]any, error) {
	got, err := Dig(v, []any{}, keys...)
	if err != nil {
		return nil, err
	}

	list, ok := got.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s is %T, want array", ErrTypeMismatch, pathOf(keys), got)
	}

	return list, nil
}

// DigFloat returns the number at keys. Numeric strings are parsed. The bool is
// false when the value is absent, empty, or not a parsable number string.
func DigFloat(v any, keys ...string) (float64, bool, error) {
	got, err := Dig(v, nil, keys...)
	if err != nil || got == nil {
		return 0, false, err
	}

	switch n := got.(type) {
	case float64:
		return n, true, nil
	case string:
		f, parseErr := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if parseErr != nil {
			return 0, false, nil
		}

		return f, true, nil
	default:
		return 0, false, fmt.Errorf("%w: %s is %T, want number", ErrTypeMismatch, pathOf(keys), got)
	}
}

func pathOf(keys []string) string {
	if len(keys) == 0 {
		return "value"
	}

	return strings.Join(keys, ".")
}
