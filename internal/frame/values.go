package frame

//
// Operations on cell values.
//

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strings"
)

// IsNull returns whether the given value is missing. A value is missing
// when it is nil, a NaN float, or a nil pointer/map/slice stored as any.
func IsNull(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case float64:
		return math.IsNaN(v)
	case float32:
		return math.IsNaN(float64(v))
	default:
		switch rv := reflect.ValueOf(value); rv.Kind() {
		case reflect.Map, reflect.Pointer, reflect.Slice:
			return rv.IsNil()
		}
		return false
	}
}

// ToFloat converts a numeric value to float64. Booleans and strings
// are not numeric and we return false for them.
func ToFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, !math.IsNaN(v)
	case float32:
		return float64(v), !math.IsNaN(float64(v))
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// IsNumeric returns whether the value is a non-missing number.
func IsNumeric(value any) bool {
	_, good := ToFloat(value)
	return good
}

// CheckNumeric returns whether all the values are numbers. An empty
// list is numeric. Missing values, booleans, and strings are not.
func CheckNumeric(values []any) bool {
	for _, value := range values {
		if !IsNumeric(value) {
			return false
		}
	}
	return true
}

// Floats returns the numeric values among values, skipping the others.
func Floats(values []any) []float64 {
	out := make([]float64, 0, len(values))
	for _, value := range values {
		if f, good := ToFloat(value); good {
			out = append(out, f)
		}
	}
	return out
}

// ToString converts a value to string. Strings are returned verbatim,
// missing values become the empty string, integral floats lose their
// decimals, and composite values are serialized as JSON.
func ToString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if v {
			return "true"
		}
		return "false"
	case float64:
		if math.IsNaN(v) {
			return ""
		}
		return formatFloat(v)
	case fmt.Stringer:
		return v.String()
	}
	if f, good := ToFloat(value); good {
		return formatFloat(f)
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprint(value)
	}
	return string(data)
}

func formatFloat(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%v", v)
}

// kindOrder sorts numbers before bools before strings before anything else
// and missing values last.
func kindOrder(value any) int {
	switch {
	case IsNull(value):
		return 4
	case IsNumeric(value):
		return 0
	}
	switch value.(type) {
	case bool:
		return 1
	case string:
		return 2
	default:
		return 3
	}
}

// Compare compares two values and returns -1, 0, or +1. Numbers compare
// numerically, strings lexicographically, false sorts before true, and
// missing values sort after everything else.
func Compare(a, b any) int {
	ka, kb := kindOrder(a), kindOrder(b)
	if ka != kb {
		if ka < kb {
			return -1
		}
		return 1
	}
	switch ka {
	case 0:
		fa, _ := ToFloat(a)
		fb, _ := ToFloat(b)
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		}
		return 0
	case 1:
		ba, bb := a.(bool), b.(bool)
		switch {
		case ba == bb:
			return 0
		case !ba:
			return -1
		}
		return 1
	case 2:
		return strings.Compare(a.(string), b.(string))
	case 4:
		return 0
	default:
		return strings.Compare(ToString(a), ToString(b))
	}
}

// Equal returns whether two values are equal according to [Compare].
func Equal(a, b any) bool {
	return Compare(a, b) == 0
}
