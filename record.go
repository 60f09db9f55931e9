package netsuite

import (
	"iter"
	"slices"
	"strconv"
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Field is a single named value of a Record.
type Field struct {
	Name  string
	Value any
}

// Record is an ordered mapping of field names to values.
//
// Records decoded from NetSuite hold strings, nested *Record values, []any
// for repeated elements and a CustomFieldList under customFieldList; use the
// typed accessors to parse scalars.
// Records built for writes may also hold bool, numeric, time.Time,
// RecordRef, []CustomField and CustomFieldList values. A nil value marks a
// field that is present but not sent.
type Record struct {
	fields *orderedmap.OrderedMap[string, any]
}

// NewRecord returns a record holding fields in order.
func NewRecord(fields ...Field) *Record {
	r := &Record{fields: orderedmap.New[string, any]()}
	for _, f := range fields {
		r.Set(f.Name, f.Value)
	}
	return r
}

// Len returns the number of fields.
func (r *Record) Len() int {
	if r == nil || r.fields == nil {
		return 0
	}
	return r.fields.Len()
}

// Keys returns field names in order.
func (r *Record) Keys() []string {
	if r == nil {
		return nil
	}
	keys := make([]string, 0, r.Len())
	for k := range r.All() {
		keys = append(keys, k)
	}
	return keys
}

// Has reports whether the field is set, even to nil.
func (r *Record) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// Get returns a field value.
func (r *Record) Get(name string) (any, bool) {
	if r == nil || r.fields == nil {
		return nil, false
	}
	return r.fields.Get(name)
}

// Set assigns a field, appending it when new and keeping its position otherwise.
func (r *Record) Set(name string, value any) {
	if r.fields == nil {
		r.fields = orderedmap.New[string, any]()
	}
	r.fields.Set(name, value)
}

// Delete removes a field.
func (r *Record) Delete(name string) {
	if r == nil || r.fields == nil {
		return
	}
	r.fields.Delete(name)
}

// All iterates fields in order.
func (r *Record) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		if r == nil || r.fields == nil {
			return
		}
		for pair := r.fields.Oldest(); pair != nil; pair = pair.Next() {
			if !yield(pair.Key, pair.Value) {
				return
			}
		}
	}
}

// Clone returns a deep copy that can be mutated without affecting r.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	c := NewRecord()
	for k, v := range r.All() {
		c.Set(k, cloneValue(v))
	}
	return c
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case *Record:
		return t.Clone()
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = cloneValue(item)
		}
		return out
	case []*Record:
		out := make([]*Record, len(t))
		for i, item := range t {
			out[i] = item.Clone()
		}
		return out
	case []CustomField:
		return slices.Clone(t)
	case CustomFieldList:
		return slices.Clone(t)
	default:
		return v
	}
}

// String returns a string field, or "" when absent or not a string.
func (r *Record) String(name string) string {
	v, _ := r.Get(name)
	s, _ := v.(string)
	return s
}

// Record returns a nested record field.
func (r *Record) Record(name string) *Record {
	v, _ := r.Get(name)
	rec, _ := v.(*Record)
	return rec
}

// List returns a repeated field. A single nested value is returned as a
// one-element list.
func (r *Record) List(name string) []any {
	v, ok := r.Get(name)
	if !ok || v == nil {
		return nil
	}
	switch t := v.(type) {
	case []any:
		return t
	default:
		return []any{t}
	}
}

// Bool parses a boolean field.
func (r *Record) Bool(name string) (bool, bool) {
	v, ok := r.Get(name)
	if !ok {
		return false, false
	}
	switch t := v.(type) {
	case bool:
		return t, true
	case string:
		b, err := strconv.ParseBool(t)
		return b, err == nil
	}
	return false, false
}

// Int parses an integer field.
func (r *Record) Int(name string) (int64, bool) {
	v, ok := r.Get(name)
	if !ok {
		return 0, false
	}
	switch t := v.(type) {
	case int:
		return int64(t), true
	case int64:
		return t, true
	case string:
		n, err := strconv.ParseInt(t, 10, 64)
		return n, err == nil
	}
	return 0, false
}

// Float parses a numeric field.
func (r *Record) Float(name string) (float64, bool) {
	v, ok := r.Get(name)
	if !ok {
		return 0, false
	}
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(t, 64)
		return f, err == nil
	}
	return 0, false
}

// Time parses a dateTime field.
func (r *Record) Time(name string) (time.Time, bool) {
	v, ok := r.Get(name)
	if !ok {
		return time.Time{}, false
	}
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		ts, err := time.Parse(time.RFC3339Nano, t)
		return ts, err == nil
	}
	return time.Time{}, false
}

// InternalID returns the internalId field.
func (r *Record) InternalID() string {
	return r.String("internalId")
}

// ExternalID returns the externalId field.
func (r *Record) ExternalID() string {
	return r.String("externalId")
}

// MarshalJSON encodes the record as an object with fields in order.
func (r *Record) MarshalJSON() ([]byte, error) {
	if r == nil {
		return []byte("null"), nil
	}
	if r.fields == nil {
		return []byte("{}"), nil
	}
	return r.fields.MarshalJSON()
}
