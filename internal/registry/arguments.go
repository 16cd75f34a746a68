package registry

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/Travis-Prall/court-listener-mcp/internal/api"
)

// Arguments are the parameters of one invocation as decoded from JSON.
type Arguments map[string]any

// Has reports whether key is present and not null.
func (a Arguments) Has(key string) bool {
	v, ok := a[key]
	return ok && v != nil
}

// String returns the value of key as a trimmed string. Numbers and booleans
// are formatted; an absent or empty value returns ok == false.
func (a Arguments) String(key string) (string, bool) {
	v, ok := a[key]
	if !ok || v == nil {
		return "", false
	}
	var s string
	switch t := v.(type) {
	case string:
		s = t
	case float64:
		s = strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		s = strconv.Itoa(t)
	case int64:
		s = strconv.FormatInt(t, 10)
	case json.Number:
		s = t.String()
	case bool:
		s = strconv.FormatBool(t)
	default:
		return "", false
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}

// RequireString returns the value of key or an invalid_argument error.
func (a Arguments) RequireString(key string) (string, error) {
	s, ok := a.String(key)
	if !ok {
		return "", api.NewInvalidArgumentError("parameter %q is required", key)
	}
	return s, nil
}

// Int returns the value of key as an integer, or def when it is absent.
// Whole floats and numeric strings are accepted.
func (a Arguments) Int(key string, def int) (int, error) {
	v, ok := a[key]
	if !ok || v == nil {
		return def, nil
	}
	switch t := v.(type) {
	case int:
		return t, nil
	case int64:
		return int(t), nil
	case float64:
		if t != math.Trunc(t) {
			return 0, api.NewInvalidArgumentError("parameter %q must be a whole number", key)
		}
		return int(t), nil
	case json.Number:
		n, err := t.Int64()
		if err != nil {
			return 0, api.NewInvalidArgumentError("parameter %q must be a whole number", key)
		}
		return int(n), nil
	case string:
		if strings.TrimSpace(t) == "" {
			return def, nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0, api.NewInvalidArgumentError("parameter %q must be a whole number", key)
		}
		return n, nil
	default:
		return 0, api.NewInvalidArgumentError("parameter %q must be a whole number, got %T", key, v)
	}
}

// Bool returns the value of key as a boolean, or def when it is absent.
func (a Arguments) Bool(key string, def bool) (bool, error) {
	v, ok := a[key]
	if !ok || v == nil {
		return def, nil
	}
	switch t := v.(type) {
	case bool:
		return t, nil
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(t))
		if err != nil {
			return false, api.NewInvalidArgumentError("parameter %q must be a boolean", key)
		}
		return b, nil
	default:
		return false, api.NewInvalidArgumentError("parameter %q must be a boolean, got %T", key, v)
	}
}

// missing returns the first key in required that is absent or empty.
func (a Arguments) missing(required []string) (string, bool) {
	for _, key := range required {
		v, ok := a[key]
		if !ok || v == nil {
			return key, true
		}
		if s, isString := v.(string); isString && strings.TrimSpace(s) == "" {
			return key, true
		}
	}
	return "", false
}
