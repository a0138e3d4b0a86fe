package kvstore

import (
	"github.com/go-json-experiment/json"
)

// StringValuer is implemented by types persisted through a raw string,
// typically string-backed enumerations.
type StringValuer interface {
	RawString() string
}

// StringScanner is implemented by pointers to types that can be rebuilt from
// their raw string. ScanRawString reports false for unknown raw values.
type StringScanner interface {
	ScanRawString(raw string) bool
}

// IntValuer is implemented by types persisted through a raw integer.
type IntValuer interface {
	RawInt() int
}

// IntScanner is implemented by pointers to types that can be rebuilt from
// their raw integer. ScanRawInt reports false for unknown raw values.
type IntScanner interface {
	ScanRawInt(raw int) bool
}

// Decode rebuilds a T from a raw stored value. It tries, in order, a raw
// string through StringScanner, a raw integer through IntScanner and JSON
// bytes. It reports false when no attempt succeeds; the error is not kept.
func Decode[T any](raw any) (T, bool) {
	var out T

	if s, ok := raw.(string); ok {
		if scanner, ok := any(&out).(StringScanner); ok {
			if scanner.ScanRawString(s) {
				return out, true
			}

			out = *new(T)
		}
	}

	if i, ok := raw.(int); ok {
		if scanner, ok := any(&out).(IntScanner); ok {
			if scanner.ScanRawInt(i) {
				return out, true
			}

			out = *new(T)
		}
	}

	if data, ok := raw.([]byte); ok {
		if err := json.Unmarshal(data, &out); err == nil {
			return out, true
		}
	}

	return *new(T), false
}

// Encode converts v to the raw value Decode accepts: its raw string, its raw
// integer, or its JSON encoding, in that order of preference. It reports false
// when v cannot be encoded.
func Encode[T any](v T) (any, bool) {
	switch x := any(v).(type) {
	case StringValuer:
		return x.RawString(), true
	case IntValuer:
		return x.RawInt(), true
	}

	data, err := json.Marshal(v)
	if err != nil {
		return nil, false
	}

	return data, true
}
