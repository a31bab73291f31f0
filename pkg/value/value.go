// Package value implements the leaf typing used by the filing decoders:
// a closed four-way union chosen once, when the text is read.
package value

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	String Kind = iota
	Bool
	Int
	Float
)

func (k Kind) String() string {
	switch k {
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Float:
		return "float"
	default:
		return "string"
	}
}

// Value is one of bool, int64, float64 or string. The zero Value is the
// empty string.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
}

func NewBool(b bool) Value { return Value{kind: Bool, b: b} }

func NewInt(i int64) Value { return Value{kind: Int, i: i} }

func NewFloat(f float64) Value { return Value{kind: Float, f: f} }

func NewString(s string) Value { return Value{kind: String, s: s} }

func (v Value) Kind() Kind { return v.kind }

// Bool returns the boolean held by v, if v is a Bool.
func (v Value) Bool() (bool, bool) {
	return v.b, v.kind == Bool
}

// Int returns the integer held by v, if v is an Int.
func (v Value) Int() (int64, bool) {
	return v.i, v.kind == Int
}

// Float returns the float held by v, if v is a Float.
func (v Value) Float() (float64, bool) {
	return v.f, v.kind == Float
}

// Str returns the string held by v, if v is a String.
func (v Value) Str() (string, bool) {
	return v.s, v.kind == String
}

// Number reports v as a float64 when it is an Int or a Float.
func (v Value) Number() (float64, bool) {
	switch v.kind {
	case Int:
		return float64(v.i), true
	case Float:
		return v.f, true
	}
	return 0, false
}

// String renders the value the way it would be written back into a document.
func (v Value) String() string {
	switch v.kind {
	case Bool:
		return strconv.FormatBool(v.b)
	case Int:
		return strconv.FormatInt(v.i, 10)
	case Float:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	default:
		return v.s
	}
}

// MarshalJSON emits the plain JSON scalar for the variant. Non-finite floats
// have no JSON form and are written as strings.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case Bool:
		return json.Marshal(v.b)
	case Int:
		return json.Marshal(v.i)
	case Float:
		b, err := json.Marshal(v.f)
		if err != nil {
			return json.Marshal(v.String())
		}
		return b, nil
	default:
		return json.Marshal(v.s)
	}
}

// UnmarshalJSON restores a Value from its JSON scalar.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	switch t := raw.(type) {
	case bool:
		*v = NewBool(t)
	case json.Number:
		if i, err := t.Int64(); err == nil {
			*v = NewInt(i)
			return nil
		}
		f, err := t.Float64()
		if err != nil {
			return fmt.Errorf("failed to decode number %q: %w", t, err)
		}
		*v = NewFloat(f)
	case string:
		*v = NewString(t)
	default:
		return fmt.Errorf("cannot decode %s into a value", data)
	}
	return nil
}
