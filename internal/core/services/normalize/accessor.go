// Package normalize turns raw controller records into canonical security
// profiles and link rates, and encodes edited profiles back into vendor
// payloads. Every function here is pure and safe for concurrent use.
package normalize

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/lcalzada-xor/wdash/internal/core/domain"
)

// Lookup returns the first present, non-null value among paths. Each path is
// tried as a literal key first and then as a dotted path into nested records.
func Lookup(rec domain.RawRecord, paths ...string) (any, bool) {
	if rec == nil {
		return nil, false
	}
	for _, p := range paths {
		if v, ok := lookupPath(rec, p); ok {
			return v, true
		}
	}
	return nil, false
}

func lookupPath(m map[string]any, path string) (any, bool) {
	if v, ok := m[path]; ok && v != nil {
		return v, true
	}
	head, rest, found := strings.Cut(path, ".")
	if !found {
		return nil, false
	}
	sub, ok := asRecord(m[head])
	if !ok {
		return nil, false
	}
	return lookupPath(sub, rest)
}

// LookupRecord returns the first nested record among paths.
func LookupRecord(rec domain.RawRecord, paths ...string) (domain.RawRecord, bool) {
	for _, p := range paths {
		v, ok := Lookup(rec, p)
		if !ok {
			continue
		}
		if sub, ok := asRecord(v); ok {
			return sub, true
		}
	}
	return nil, false
}

// LookupString returns the first non-blank string among paths.
func LookupString(rec domain.RawRecord, paths ...string) (string, bool) {
	for _, p := range paths {
		v, ok := Lookup(rec, p)
		if !ok {
			continue
		}
		if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
			return s, true
		}
	}
	return "", false
}

// LookupNumber returns the first finite number among paths. Numeric strings
// are accepted; anything else is treated as absent.
func LookupNumber(rec domain.RawRecord, paths ...string) (float64, bool) {
	for _, p := range paths {
		v, ok := Lookup(rec, p)
		if !ok {
			continue
		}
		if f, ok := asNumber(v); ok {
			return f, true
		}
	}
	return 0, false
}

// LookupBool returns the first boolean among paths. "true"/"false" strings
// are accepted.
func LookupBool(rec domain.RawRecord, paths ...string) (bool, bool) {
	for _, p := range paths {
		v, ok := Lookup(rec, p)
		if !ok {
			continue
		}
		switch b := v.(type) {
		case bool:
			return b, true
		case string:
			if parsed, err := strconv.ParseBool(strings.TrimSpace(b)); err == nil {
				return parsed, true
			}
		}
	}
	return false, false
}

// Has reports whether any path holds a non-null value.
func Has(rec domain.RawRecord, paths ...string) bool {
	_, ok := Lookup(rec, paths...)
	return ok
}

func asRecord(v any) (domain.RawRecord, bool) {
	switch m := v.(type) {
	case domain.RawRecord:
		return m, m != nil
	case map[string]any:
		return m, m != nil
	}
	return nil, false
}

func asNumber(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
