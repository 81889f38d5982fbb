package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Field is a single named value, used to build rows in order.
type Field struct {
	Name  string
	Value Cell
}

// F is shorthand for Field{Name: name, Value: v}.
func F(name string, v Cell) Field { return Field{Name: name, Value: v} }

// Row maps column names to cells and remembers the order keys were added.
type Row struct {
	keys []string
	vals map[string]Cell
}

// NewRow builds a row from fields in order. A repeated name overwrites the
// earlier value but keeps its original position.
func NewRow(fields ...Field) Row {
	r := Row{vals: make(map[string]Cell, len(fields))}
	for _, f := range fields {
		r.Set(f.Name, f.Value)
	}
	return r
}

// Set assigns a value, appending the key if it is new.
func (r *Row) Set(name string, v Cell) {
	if r.vals == nil {
		r.vals = make(map[string]Cell)
	}
	if _, ok := r.vals[name]; !ok {
		r.keys = append(r.keys, name)
	}
	r.vals[name] = v
}

// Get returns the cell for name, or a null cell when the key is absent.
func (r Row) Get(name string) Cell {
	return r.vals[name]
}

// Lookup returns the cell for name and whether the key is present.
func (r Row) Lookup(name string) (Cell, bool) {
	v, ok := r.vals[name]
	return v, ok
}

// Keys returns the row's keys in insertion order.
func (r Row) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

func (r Row) Len() int { return len(r.keys) }

// MarshalJSON writes the row as a JSON object with keys in insertion order.
func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := r.vals[k].MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", k, err)
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object, preserving key order.
func (r *Row) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("row: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("row: expected object, got %v", tok)
	}
	out := Row{vals: map[string]Cell{}}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("row: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("row: expected key, got %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("row: value for %q: %w", key, err)
		}
		var c Cell
		if err := c.UnmarshalJSON(raw); err != nil {
			return fmt.Errorf("row: value for %q: %w", key, err)
		}
		out.Set(key, c)
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("row: %w", err)
	}
	*r = out
	return nil
}
