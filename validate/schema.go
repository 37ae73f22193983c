package validate

import (
	"context"
	"fmt"
	"slices"
	"strings"
)

type Type int

const (
	String      Type = iota
	Number           // any JSON number
	Integer          // JSON number with an integral value
	Date             // ISO-8601 date or timestamp string
	Day              // string in exactly YYYY-MM-DD form
	IntegerList      // JSON array of integral numbers
)

// ExistsFunc reports whether the record with id exists.
type ExistsFunc func(ctx context.Context, id int64) (bool, error)

// Field describes one body key.
type Field struct {
	Name     string
	Type     Type
	Required bool

	// Message is reported when the value is present but has the wrong type
	// or is not in OneOf.
	Message string

	// RequiredMessage, when set, reports a missing value as an error with
	// this text instead of listing the field as missing.
	RequiredMessage string

	// OneOf restricts String values.
	OneOf []string

	// Exists is consulted for well-typed Integer and IntegerList values.
	Exists ExistsFunc

	// ExistsMessage is reported when Exists returns false. For IntegerList
	// fields it is a format with one %d verb for the offending id.
	ExistsMessage string
}

type Schema struct {
	Fields []Field

	// Strict rejects keys that are not declared in Fields.
	Strict bool

	partial bool
}

// Partial returns a copy of s for updates: absent fields are allowed, but a
// required field that is sent must still be provided.
func (s Schema) Partial() Schema {
	s.partial = true
	return s
}

type Result struct {
	MissingFields []string `json:"missingFields"`
	Errors        []string `json:"errors"`
}

func (r Result) OK() bool {
	return len(r.MissingFields) == 0 && len(r.Errors) == 0
}

// Check validates body against s. Fields are checked in declaration order
// and unexpected keys are reported in the order they were sent. The error
// return is reserved for failed Exists lookups.
func (s Schema) Check(ctx context.Context, body *Object) (Result, error) {
	res := Result{MissingFields: []string{}, Errors: []string{}}
	for _, f := range s.Fields {
		v := body.Value(f.Name)
		// null counts as absent; any other value that was sent is
		// type-checked unless it leaves a required field empty.
		if !body.Has(f.Name) {
			if f.Required && !s.partial {
				res.missing(f)
			}
			continue
		}
		if f.Required && falsy(v) {
			res.missing(f)
			continue
		}
		msg, err := f.check(ctx, v)
		if err != nil {
			return res, err
		}
		if msg != "" {
			res.Errors = append(res.Errors, msg)
		}
	}
	if s.Strict {
		var unexpected []string
		for _, key := range body.Keys() {
			if !slices.ContainsFunc(s.Fields, func(f Field) bool { return f.Name == key }) {
				unexpected = append(unexpected, key)
			}
		}
		if len(unexpected) > 0 {
			res.Errors = append(res.Errors, "Unexpected fields provided: "+strings.Join(unexpected, ", "))
		}
	}
	return res, nil
}

func (r *Result) missing(f Field) {
	if f.RequiredMessage != "" {
		r.Errors = append(r.Errors, f.RequiredMessage)
		return
	}
	r.MissingFields = append(r.MissingFields, f.Name)
}

func (f Field) check(ctx context.Context, v any) (string, error) {
	switch f.Type {
	case String:
		s, ok := v.(string)
		if !ok || (len(f.OneOf) > 0 && !slices.Contains(f.OneOf, s)) {
			return f.Message, nil
		}
	case Number:
		if _, ok := asFloat(v); !ok {
			return f.Message, nil
		}
	case Integer:
		id, ok := asInt(v)
		if !ok {
			return f.Message, nil
		}
		if f.Exists != nil {
			found, err := f.Exists(ctx, id)
			if err != nil {
				return "", err
			}
			if !found {
				return f.ExistsMessage, nil
			}
		}
	case Date:
		s, ok := v.(string)
		if !ok {
			return f.Message, nil
		}
		if _, ok := ParseDate(s); !ok {
			return f.Message, nil
		}
	case Day:
		s, ok := v.(string)
		if !ok {
			return f.Message, nil
		}
		if _, ok := ParseDay(s); !ok {
			return f.Message, nil
		}
	case IntegerList:
		ids, ok := asInts(v)
		if !ok {
			return f.Message, nil
		}
		if f.Exists != nil {
			for _, id := range ids {
				found, err := f.Exists(ctx, id)
				if err != nil {
					return "", err
				}
				if !found {
					return fmt.Sprintf(f.ExistsMessage, id), nil
				}
			}
		}
	}
	return "", nil
}
