package contract

import (
	"encoding"
	"fmt"
	"math"
	"reflect"
)

var textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()

// implements reports whether t or *t implements iface.
func implements(t, iface reflect.Type) bool {
	return t.Implements(iface) || (t.Kind() != reflect.Pointer && reflect.PointerTo(t).Implements(iface))
}

// methodValue returns a value of t whose method set includes the methods of
// iface, or false when neither t nor *t implements it.
func methodValue(t, iface reflect.Type) (any, bool) {
	if t.Implements(iface) {
		return reflect.Zero(t).Interface(), true
	}
	if reflect.PointerTo(t).Implements(iface) {
		return reflect.New(t).Interface(), true
	}
	return nil, false
}

// enumUnderlying returns the data type enum values of t serialize as.
func enumUnderlying(t reflect.Type) (DataType, error) {
	switch t.Kind() {
	case reflect.String:
		return DataTypeString, nil
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int,
		reflect.Uint8, reflect.Uint16, reflect.Uint32:
		return DataTypeInt32, nil
	case reflect.Int64, reflect.Uint, reflect.Uint64:
		return DataTypeInt64, nil
	default:
		return DataTypeUnknown, fmt.Errorf("enum underlying kind %s is not an integer or string", t.Kind())
	}
}

// normalizeEnumValue converts a member value to int64 or string.
func normalizeEnumValue(v any) (any, error) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return rv.String(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return nil, fmt.Errorf("enum value %d overflows int64", u)
		}
		return int64(u), nil
	default:
		return nil, fmt.Errorf("enum value %v (%T) is not an integer or string", v, v)
	}
}

func buildEnum(t reflect.Type, members []EnumMember) (*EnumContract, error) {
	underlying, err := enumUnderlying(t)
	if err != nil {
		return nil, err
	}
	ec := &EnumContract{
		Members:       make([]EnumMember, 0, len(members)),
		Underlying:    underlying,
		TextConverter: implements(t, textMarshalerType),
	}
	for _, m := range members {
		value, err := normalizeEnumValue(m.Value)
		if err != nil {
			return nil, fmt.Errorf("member %s: %w", m.Name, err)
		}
		if _, isString := value.(string); isString != (underlying == DataTypeString) {
			return nil, fmt.Errorf("member %s: value %v (%T) does not match enum type %s", m.Name, m.Value, m.Value, t)
		}
		ec.Members = append(ec.Members, EnumMember{Name: m.Name, Value: value})
	}
	return ec, nil
}

// Lookup returns the member with the given name.
func (e *EnumContract) Lookup(name string) (EnumMember, bool) {
	for _, m := range e.Members {
		if m.Name == name {
			return m, true
		}
	}
	return EnumMember{}, false
}
