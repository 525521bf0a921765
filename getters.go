package gotable

import (
	"cmp"
	"fmt"
	"strconv"
	"time"
)

// Getters maps field names to accessors of the item. Filter keys, search
// fields and sort columns are all resolved through it.
// Example:
//
//	gotable.Getters[models.Transaction]{
//		"category": func(t models.Transaction) any { return t.Category },
//		"amount":   func(t models.Transaction) any { return t.Amount },
//	}
type Getters[T any] map[string]func(T) any

// Lookup returns the value of the field for the item. ok is false when no
// getter is registered for the field.
func (g Getters[T]) Lookup(item T, field string) (any, bool) {
	getter, ok := g[field]
	if !ok || getter == nil {
		return nil, false
	}

	return getter(item), true
}

// Stringify converts a field value to the string form used for value-set
// membership. nil becomes an empty string.
func Stringify(v any) string {
	switch vt := v.(type) {
	case nil:
		return ""
	case string:
		return vt
	case []byte:
		return string(vt)
	case bool:
		return strconv.FormatBool(vt)
	case int:
		return strconv.Itoa(vt)
	case int64:
		return strconv.FormatInt(vt, 10)
	case uint:
		return strconv.FormatUint(uint64(vt), 10)
	case uint64:
		return strconv.FormatUint(vt, 10)
	case float64:
		return strconv.FormatFloat(vt, 'f', -1, 64)
	case time.Time:
		return vt.Format(time.RFC3339)
	case fmt.Stringer:
		return vt.String()
	default:
		return fmt.Sprint(v)
	}
}

// compareValues orders two field values. Values of different or unknown
// types fall back to comparing their Stringify forms.
func compareValues(a, b any) int {
	switch at := a.(type) {
	case string:
		if bt, ok := b.(string); ok {
			return cmp.Compare(at, bt)
		}
	case int:
		if bt, ok := b.(int); ok {
			return cmp.Compare(at, bt)
		}
	case int64:
		if bt, ok := b.(int64); ok {
			return cmp.Compare(at, bt)
		}
	case uint:
		if bt, ok := b.(uint); ok {
			return cmp.Compare(at, bt)
		}
	case uint64:
		if bt, ok := b.(uint64); ok {
			return cmp.Compare(at, bt)
		}
	case float64:
		if bt, ok := b.(float64); ok {
			return cmp.Compare(at, bt)
		}
	case bool:
		if bt, ok := b.(bool); ok {
			switch {
			case at == bt:
				return 0
			case !at:
				return -1
			default:
				return 1
			}
		}
	case time.Time:
		if bt, ok := b.(time.Time); ok {
			return at.Compare(bt)
		}
	}

	return cmp.Compare(Stringify(a), Stringify(b))
}
