// SPDX-License-Identifier: GPL-2.0-or-later

package level

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// extras is the decoded "extras" object of a node.
type extras map[string]any

func extrasOf(v any) (extras, error) {
	switch e := v.(type) {
	case nil:
		return extras{}, nil
	case map[string]any:
		return extras(e), nil
	}
	return nil, errors.Errorf("extras are %T, want an object", v)
}

func toFloat(v any) (float32, bool) {
	switch n := v.(type) {
	case float64:
		return float32(n), true
	case float32:
		return n, true
	case int:
		return float32(n), true
	case json.Number:
		f, err := n.Float64()
		return float32(f), err == nil
	}
	return 0, false
}

// flag is true for a true boolean or a non-zero number.
func (e extras) flag(key string) bool {
	switch v := e[key].(type) {
	case bool:
		return v
	default:
		f, ok := toFloat(v)
		return ok && f != 0
	}
}

func (e extras) number(key string) (float32, bool, error) {
	v, ok := e[key]
	if !ok {
		return 0, false, nil
	}
	f, ok := toFloat(v)
	if !ok {
		return 0, false, errors.Errorf("extra %q is %T, want a number", key, v)
	}
	return f, true, nil
}

func (e extras) numbers(key string, n int) ([]float32, bool, error) {
	v, ok := e[key]
	if !ok {
		return nil, false, nil
	}
	var res []float32
	switch a := v.(type) {
	case []any:
		for _, x := range a {
			f, ok := toFloat(x)
			if !ok {
				return nil, false, errors.Errorf("extra %q holds %T, want numbers", key, x)
			}
			res = append(res, f)
		}
	case []float64:
		for _, x := range a {
			res = append(res, float32(x))
		}
	default:
		return nil, false, errors.Errorf("extra %q is %T, want an array", key, v)
	}
	if len(res) != n {
		return nil, false, errors.Errorf("extra %q has %d numbers, want %d", key, len(res), n)
	}
	return res, true, nil
}

func (e extras) text(key string) (string, bool, error) {
	v, ok := e[key]
	if !ok {
		return "", false, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", false, errors.Errorf("extra %q is %T, want a string", key, v)
	}
	return s, true, nil
}
