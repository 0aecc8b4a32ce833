package runtime

import (
	"strconv"
	"strings"
)

// Record is a shared, interior-mutable mapping of field names to values.
// Field order is preserved for display. Records are reference values: every
// Value holding a *Record observes the same cells, which is what makes
// self-mutating methods work.
//
// Fields declared mut are stored as *MutableRef cells; plain fields are
// stored directly and replaced wholesale on assignment.
type Record struct {
	fields map[string]Value
	order  []string
}

// NewRecord creates an empty record.
func NewRecord() *Record {
	return &Record{fields: make(map[string]Value)}
}

// Type returns "RECORD".
func (r *Record) Type() string { return RecordType }

func (r *Record) String() string {
	parts := make([]string, len(r.order))
	for i, name := range r.order {
		v := Deref(r.fields[name])
		if s, ok := v.(*String); ok {
			parts[i] = name + ": " + strconv.Quote(s.Value)
		} else {
			parts[i] = name + ": " + v.String()
		}
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Get returns the raw stored value for a field. Callers that implement
// reads dereference mutable cells with Deref.
func (r *Record) Get(name string) (Value, bool) {
	v, ok := r.fields[name]
	return v, ok
}

// Define installs a field, preserving first-seen order. Redefining an
// existing field replaces its stored value without duplicating the order
// entry.
func (r *Record) Define(name string, v Value) {
	if _, exists := r.fields[name]; !exists {
		r.order = append(r.order, name)
	}
	r.fields[name] = v
}

// Set assigns to an existing field. Mutable cells are written in place;
// plain fields are replaced. Assigning to an absent field defines it.
func (r *Record) Set(name string, v Value) {
	if existing, ok := r.fields[name]; ok {
		if ref, isRef := existing.(*MutableRef); isRef {
			ref.Set(v)
			return
		}
		r.fields[name] = v
		return
	}
	r.Define(name, v)
}

// FieldNames returns the field names in definition order. The slice is a
// copy; mutating it does not affect the record.
func (r *Record) FieldNames() []string {
	return append([]string(nil), r.order...)
}

// Len returns the number of fields.
func (r *Record) Len() int { return len(r.order) }
