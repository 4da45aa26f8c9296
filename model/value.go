package model

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"
)

// Kind identifies the semantic type of a Value.
type Kind int

const (
	// KindNull marks a cell with no data. It is the zero Kind.
	KindNull Kind = iota
	// KindNumber indicates a numeric value.
	KindNumber
	// KindString indicates a categorical (text) value.
	KindString
	// KindTime indicates a temporal value.
	KindTime
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindTime:
		return "time"
	default:
		return "unknown"
	}
}

// Value is a single scalar cell. The zero Value is the null marker.
type Value struct {
	kind Kind
	num  float64
	str  string
	t    time.Time
}

// Null returns the null marker.
func Null() Value { return Value{} }

// Number returns a numeric value.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// String returns a categorical value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Time returns a temporal value.
func Time(t time.Time) Value { return Value{kind: KindTime, t: t} }

// Kind returns the kind of the value.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the null marker.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Float returns the numeric payload and whether v is a number.
func (v Value) Float() (float64, bool) {
	return v.num, v.kind == KindNumber
}

// Text returns the string payload and whether v is a string.
func (v Value) Text() (string, bool) {
	return v.str, v.kind == KindString
}

// Time returns the temporal payload and whether v is a time.
func (v Value) Time() (time.Time, bool) {
	return v.t, v.kind == KindTime
}

// Equal reports whether v and o have the same kind and payload.
// Times are compared with time.Time.Equal; NaN equals NaN.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNumber:
		if math.IsNaN(v.num) && math.IsNaN(o.num) {
			return true
		}
		return v.num == o.num
	case KindString:
		return v.str == o.str
	case KindTime:
		return v.t.Equal(o.t)
	default:
		return true
	}
}

// String formats the value for display. Null renders as "null".
func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindString:
		return v.str
	case KindTime:
		return v.t.Format(time.RFC3339Nano)
	default:
		return "null"
	}
}

// MarshalJSON encodes numbers as JSON numbers, strings as JSON strings and
// times as Unix milliseconds. Null and non-finite numbers encode as null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNumber:
		if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
			return []byte("null"), nil
		}
		return []byte(strconv.FormatFloat(v.num, 'g', -1, 64)), nil
	case KindString:
		return json.Marshal(v.str)
	case KindTime:
		return []byte(strconv.FormatInt(v.t.UnixMilli(), 10)), nil
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes null, numbers and strings. Times cannot be
// recovered from their millisecond form and decode as numbers.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch x := raw.(type) {
	case nil:
		*v = Null()
	case float64:
		*v = Number(x)
	case string:
		*v = String(x)
	case bool:
		*v = String(strconv.FormatBool(x))
	default:
		return fmt.Errorf("cannot decode %s into a cell value", data)
	}
	return nil
}
