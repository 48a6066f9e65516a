package docsystem

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// rawObject is a decoded JSON object whose keys may use camelCase or
// snake_case. Lookups take every accepted alias and return the first hit.
type rawObject map[string]json.RawMessage

func decodeObject(raw json.RawMessage) (rawObject, bool) {
	var obj rawObject
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		return nil, false
	}
	return obj, true
}

func (o rawObject) lookup(keys ...string) (json.RawMessage, bool) {
	for _, k := range keys {
		if v, ok := o[k]; ok && len(v) > 0 && string(v) != "null" {
			return v, true
		}
	}
	return nil, false
}

func (o rawObject) has(keys ...string) bool {
	_, ok := o.lookup(keys...)
	return ok
}

// object returns a nested object, or an empty one.
func (o rawObject) object(keys ...string) rawObject {
	if v, ok := o.lookup(keys...); ok {
		if obj, ok := decodeObject(v); ok {
			return obj
		}
	}
	return rawObject{}
}

// array returns the elements of a nested array.
func (o rawObject) array(keys ...string) []json.RawMessage {
	v, ok := o.lookup(keys...)
	if !ok {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(v, &items); err != nil {
		return nil
	}
	return items
}

// str reads a string; numbers and booleans are rendered as text.
func (o rawObject) str(keys ...string) string {
	v, ok := o.lookup(keys...)
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var n json.Number
	if err := json.Unmarshal(v, &n); err == nil {
		return n.String()
	}
	var b bool
	if err := json.Unmarshal(v, &b); err == nil {
		return strconv.FormatBool(b)
	}
	return ""
}

func (o rawObject) boolean(keys ...string) bool {
	v, ok := o.lookup(keys...)
	if !ok {
		return false
	}
	var b bool
	if err := json.Unmarshal(v, &b); err == nil {
		return b
	}
	parsed, _ := strconv.ParseBool(o.str(keys...))
	return parsed
}

func (o rawObject) integer(keys ...string) int64 {
	s := o.str(keys...)
	if s == "" {
		return 0
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int64(f)
	}
	return 0
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"1/2/2006, 3:04:05 PM",
	"1/2/2006",
}

// timestamp reads an RFC 3339 string, a few legacy layouts, or Unix
// milliseconds. Results are UTC; unparsable values report false.
func (o rawObject) timestamp(keys ...string) (time.Time, bool) {
	s := o.str(keys...)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil && ms > 0 {
		return time.UnixMilli(ms).UTC(), true
	}
	return time.Time{}, false
}

func (o rawObject) timePtr(keys ...string) *time.Time {
	if t, ok := o.timestamp(keys...); ok {
		return &t
	}
	return nil
}

// firstNonEmpty returns the first non-empty argument.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
