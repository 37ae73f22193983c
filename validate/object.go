// Package validate decodes JSON request bodies and checks them against
// declarative field schemas.
package validate

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"regexp"
	"time"
)

var ErrNotObject = errors.New("body must be a JSON object")

// Object is a decoded JSON object that remembers the order its keys were
// sent in. Numbers are kept as json.Number.
type Object struct {
	keys   []string
	values map[string]any
}

// Decode reads a single JSON object from r. An empty body decodes to an
// empty object.
func Decode(r io.Reader) (*Object, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	obj := &Object{values: map[string]any{}}

	tok, err := dec.Token()
	if errors.Is(err, io.EOF) {
		return obj, nil
	}
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, ErrNotObject
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}
		var v any
		if err := dec.Decode(&v); err != nil {
			return nil, err
		}
		obj.Set(key, v)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after JSON object")
	}
	return obj, nil
}

// NewObject builds an Object from pairs of key, value. Used by tests and
// callers that assemble bodies in code.
func NewObject(pairs ...any) *Object {
	obj := &Object{values: map[string]any{}}
	for i := 0; i+1 < len(pairs); i += 2 {
		obj.Set(pairs[i].(string), pairs[i+1])
	}
	return obj
}

// Set stores v under key. A repeated key keeps its first position.
func (o *Object) Set(key string, v any) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = v
}

// Keys returns the keys in the order they were sent.
func (o *Object) Keys() []string {
	return append([]string(nil), o.keys...)
}

func (o *Object) Value(key string) any {
	return o.values[key]
}

// Has reports whether key is present with a non-null value.
func (o *Object) Has(key string) bool {
	v, ok := o.values[key]
	return ok && v != nil
}

// String returns the string under key, or "" if absent or not a string.
func (o *Object) String(key string) string {
	s, _ := o.values[key].(string)
	return s
}

// Int returns the integer under key, or 0.
func (o *Object) Int(key string) int64 {
	n, _ := asInt(o.values[key])
	return n
}

// Float returns the number under key, or 0.
func (o *Object) Float(key string) float64 {
	f, _ := asFloat(o.values[key])
	return f
}

// Time returns the date under key, or the zero time.
func (o *Object) Time(key string) time.Time {
	t, _ := ParseDate(o.String(key))
	return t
}

// Ints returns the integer list under key, or nil.
func (o *Object) Ints(key string) []int64 {
	ids, _ := asInts(o.values[key])
	return ids
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseDate accepts an ISO-8601 date or timestamp. Values without a zone are
// read as UTC.
func ParseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

var dayPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ParseDay accepts exactly YYYY-MM-DD naming a real calendar day.
func ParseDay(s string) (time.Time, bool) {
	if !dayPattern.MatchString(s) {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func asInt(v any) (int64, bool) {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		f, err := n.Float64()
		if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt64 {
			return 0, false
		}
		return int64(f), true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int64(n), true
	case int:
		return int64(n), true
	case int64:
		return n, true
	}
	return 0, false
}

func asInts(v any) ([]int64, bool) {
	list, ok := v.([]any)
	if !ok {
		return nil, false
	}
	ids := make([]int64, 0, len(list))
	for _, item := range list {
		id, ok := asInt(item)
		if !ok {
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}

// falsy mirrors what clients treat as "not provided": null, "", 0 and false.
func falsy(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case bool:
		return !x
	}
	if f, ok := asFloat(v); ok {
		return f == 0
	}
	return false
}
