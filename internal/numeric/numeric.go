// Package numeric holds the small integer helpers shared by the time model and
// its hosts. Malformed input never produces an error here: it produces NaN.
package numeric

import (
	"encoding/json"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Int is an integer that may be "not a number".
//
// The zero value is NaN, so a field that was never assigned reads as absent
// rather than as 0.
type Int struct {
	n     int
	valid bool
}

// NaN is the not-a-number sentinel.
var NaN = Int{}

// Of returns a valid Int holding n.
func Of(n int) Int {
	return Int{n: n, valid: true}
}

func (i Int) IsNaN() bool { return !i.valid }

// Value returns the integer and whether it is a number.
func (i Int) Value() (int, bool) {
	return i.n, i.valid
}

// Or returns the integer, or def when i is NaN.
func (i Int) Or(def int) int {
	if !i.valid {
		return def
	}
	return i.n
}

func (i Int) String() string {
	if !i.valid {
		return "NaN"
	}
	return strconv.Itoa(i.n)
}

func (i Int) MarshalJSON() ([]byte, error) {
	if !i.valid {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(i.n)), nil
}

// UnmarshalJSON accepts integers. null, fractional numbers and non-numbers
// decode to NaN instead of failing.
func (i *Int) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		*i = NaN
		return nil
	}
	f, ok := v.(float64)
	if !ok || !IsInteger(f) || math.Abs(f) > 1<<53 {
		*i = NaN
		return nil
	}
	*i = Of(int(f))
	return nil
}

// ToInteger parses the leading base-10 integer of s: leading whitespace is
// skipped, an optional sign is accepted and parsing stops at the first
// non-digit ("12abc" is 12). Input with no leading digits, or one that does
// not fit an int, yields NaN.
func ToInteger(s string) Int {
	s = strings.TrimLeft(s, " \t\r\n\v\f")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return NaN
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return NaN
	}
	return Of(n)
}

// IsInteger reports whether v is a finite number without a fractional part.
func IsInteger(v any) bool {
	f, ok := asFloat(v)
	return ok && f == math.Trunc(f)
}

// IsNumber reports whether v is a finite number.
func IsNumber(v any) bool {
	_, ok := asFloat(v)
	return ok
}

func asFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case nil:
		return 0, false
	case Int:
		return float64(t.n), t.valid
	case *Int:
		if t == nil {
			return 0, false
		}
		return float64(t.n), t.valid
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0, false
		}
		return f, !math.IsNaN(f) && !math.IsInf(f, 0)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// PadNumber renders v as the last two characters of "0"+v, so 5 is "05" and
// 23 is "23". NaN renders as "NaN".
func PadNumber(v Int) string {
	if !v.valid {
		return "NaN"
	}
	s := "0" + strconv.Itoa(v.n)
	return s[len(s)-2:]
}

// FilterDigits drops every character that is not an ASCII digit.
func FilterDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// Mod returns n modulo m in the range [0, m).
func Mod(n, m int) int {
	return ((n % m) + m) % m
}
