package spectrum

import (
	"strconv"
	"time"
)

// ValueKind identifies which variant a header Value holds.
type ValueKind uint8

const (
	KindStr ValueKind = iota
	KindInt
	KindFloat
	KindTime
)

// String returns the kind name.
func (k ValueKind) String() string {
	switch k {
	case KindStr:
		return "str"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindTime:
		return "time"
	default:
		return "unknown"
	}
}

// Value is a header value: one of integer, float, string or timestamp.
// The zero Value is the empty string.
type Value struct {
	kind     ValueKind
	intVal   int64
	floatVal float64
	strVal   string
	timeVal  time.Time
}

// Int wraps an integer header value.
func Int(v int64) Value { return Value{kind: KindInt, intVal: v} }

// Float wraps a floating-point header value.
func Float(v float64) Value { return Value{kind: KindFloat, floatVal: v} }

// Str wraps a string header value.
func Str(v string) Value { return Value{kind: KindStr, strVal: v} }

// Time wraps a parsed timestamp header value.
func Time(v time.Time) Value { return Value{kind: KindTime, timeVal: v} }

// Kind returns the variant held by the value.
func (v Value) Kind() ValueKind { return v.kind }

// Int returns the integer variant.
func (v Value) Int() (int64, bool) {
	return v.intVal, v.kind == KindInt
}

// Float returns the floating-point variant.
func (v Value) Float() (float64, bool) {
	return v.floatVal, v.kind == KindFloat
}

// Num returns the value as a float64 for either numeric variant.
func (v Value) Num() (float64, bool) {
	switch v.kind {
	case KindInt:
		return float64(v.intVal), true
	case KindFloat:
		return v.floatVal, true
	default:
		return 0, false
	}
}

// Str returns the string variant.
func (v Value) Str() (string, bool) {
	return v.strVal, v.kind == KindStr
}

// Time returns the timestamp variant.
func (v Value) Time() (time.Time, bool) {
	return v.timeVal, v.kind == KindTime
}

// String renders the value the way the writer emits it.
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.intVal, 10)
	case KindFloat:
		return strconv.FormatFloat(v.floatVal, 'g', -1, 64)
	case KindTime:
		if v.timeVal.Nanosecond() != 0 {
			return v.timeVal.Format("2006-01-02 15:04:05.000000")
		}
		return v.timeVal.Format("2006-01-02 15:04:05")
	default:
		return v.strVal
	}
}
