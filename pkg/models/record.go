package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Record is a JSON-like tree whose interior nodes preserve key insertion
// order. Values are scalars (string, bool, json.Number, int, int64,
// float64, nil), []interface{} sequences, or nested *Record mappings.
type Record struct {
	keys []string
	vals map[string]interface{}
}

// NewRecord creates an empty record
func NewRecord() *Record {
	return &Record{
		vals: make(map[string]interface{}),
	}
}

// Set stores a value under key, appending the key on first insertion
func (r *Record) Set(key string, value interface{}) {
	if r.vals == nil {
		r.vals = make(map[string]interface{})
	}
	if _, ok := r.vals[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.vals[key] = value
}

// Get retrieves a value by key
func (r *Record) Get(key string) (interface{}, bool) {
	if r == nil || r.vals == nil {
		return nil, false
	}
	v, ok := r.vals[key]
	return v, ok
}

// Delete removes a key and its value
func (r *Record) Delete(key string) {
	if r == nil || r.vals == nil {
		return
	}
	if _, ok := r.vals[key]; !ok {
		return
	}
	delete(r.vals, key)
	for i, k := range r.keys {
		if k == key {
			r.keys = append(r.keys[:i], r.keys[i+1:]...)
			break
		}
	}
}

// Len returns the number of keys
func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	return len(r.keys)
}

// Keys returns the keys in insertion order
func (r *Record) Keys() []string {
	if r == nil {
		return nil
	}
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Range calls fn for each key/value pair in insertion order until fn
// returns false
func (r *Record) Range(fn func(key string, value interface{}) bool) {
	if r == nil {
		return
	}
	for _, k := range r.keys {
		if !fn(k, r.vals[k]) {
			return
		}
	}
}

// Clone returns a deep copy of the record
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	out := NewRecord()
	for _, k := range r.keys {
		out.Set(k, cloneValue(r.vals[k]))
	}
	return out
}

func cloneValue(v interface{}) interface{} {
	switch val := v.(type) {
	case *Record:
		return val.Clone()
	case []interface{}:
		cloned := make([]interface{}, len(val))
		for i, item := range val {
			cloned[i] = cloneValue(item)
		}
		return cloned
	default:
		return v
	}
}

// MarshalJSON serializes the record preserving key order
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyJSON, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(keyJSON)
		buf.WriteByte(':')
		valJSON, err := json.Marshal(r.vals[k])
		if err != nil {
			return nil, err
		}
		buf.Write(valJSON)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON parses a JSON object preserving key order. Numbers are
// kept as json.Number so integer counts survive the round trip.
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	delim, ok := tok.(json.Delim)
	if !ok || delim != '{' {
		return fmt.Errorf("record: expected JSON object, got %v", tok)
	}

	parsed, err := decodeObject(dec)
	if err != nil {
		return err
	}
	r.keys = parsed.keys
	r.vals = parsed.vals
	return nil
}

func decodeObject(dec *json.Decoder) (*Record, error) {
	rec := NewRecord()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("record: expected object key, got %v", keyTok)
		}
		val, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		rec.Set(key, val)
	}
	// Consume closing brace
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return rec, nil
}

func decodeValue(dec *json.Decoder) (interface{}, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			var arr []interface{}
			for dec.More() {
				item, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				arr = append(arr, item)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			if arr == nil {
				arr = []interface{}{}
			}
			return arr, nil
		default:
			return nil, fmt.Errorf("record: unexpected delimiter %v", t)
		}
	default:
		// string, json.Number, bool or nil
		return t, nil
	}
}

// RecordFromPairs builds a record from alternating key/value pairs,
// keeping the pair order as insertion order. Convenience for tests and
// programmatic construction.
func RecordFromPairs(pairs ...interface{}) *Record {
	rec := NewRecord()
	for i := 0; i+1 < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			continue
		}
		rec.Set(key, pairs[i+1])
	}
	return rec
}
