package tableview

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

const timeLayout = "2006-01-02 15:04"

// formatValue converts a field value to its cell text. Nil values render
// empty.
func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case time.Time:
		return formatTime(val)
	case *time.Time:
		if val == nil {
			return ""
		}
		return formatTime(*val)
	case bool:
		return strconv.FormatBool(val)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case []string:
		return strings.Join(val, ", ")
	case fmt.Stringer:
		return val.String()
	}

	value := deref(reflect.ValueOf(v))
	if !value.IsValid() {
		return ""
	}
	switch value.Kind() {
	case reflect.String:
		return value.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(value.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(value.Uint(), 10)
	case reflect.Slice, reflect.Array:
		parts := make([]string, value.Len())
		for i := range parts {
			parts[i] = formatValue(value.Index(i).Interface())
		}
		return strings.Join(parts, ", ")
	case reflect.Map, reflect.Struct:
		if b, err := json.Marshal(value.Interface()); err == nil {
			return string(b)
		}
	}
	return fmt.Sprint(value.Interface())
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(timeLayout)
}
