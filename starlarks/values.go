package starlarks

import (
	"fmt"
	"math/big"
	"reflect"

	"github.com/reusee/starlarkutil"
	"go.starlark.net/starlark"
)

// ToValue converts a Go value into its Starlark representation.
func ToValue(v any) (starlark.Value, error) {
	switch v := v.(type) {

	case nil:
		return starlark.None, nil

	case bool:
		return starlark.Bool(v), nil

	case []byte:
		return starlark.Bytes(v), nil
	case string:
		return starlark.String(v), nil

	case int:
		return starlark.MakeInt(v), nil
	case int8:
		return starlark.MakeInt(int(v)), nil
	case int16:
		return starlark.MakeInt(int(v)), nil
	case int32:
		return starlark.MakeInt(int(v)), nil
	case int64:
		return starlark.MakeInt64(v), nil

	case uint:
		return starlark.MakeUint(v), nil
	case uint8:
		return starlark.MakeUint(uint(v)), nil
	case uint16:
		return starlark.MakeUint(uint(v)), nil
	case uint32:
		return starlark.MakeUint(uint(v)), nil
	case uint64:
		return starlark.MakeUint64(v), nil

	case float32:
		return starlark.Float(v), nil
	case float64:
		return starlark.Float(v), nil

	case starlark.Value:
		return v, nil

	}

	value := reflect.ValueOf(v)
	switch value.Kind() {

	case reflect.Bool:
		return starlark.Bool(value.Bool()), nil

	case reflect.String:
		return starlark.String(value.String()), nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return starlark.MakeInt64(value.Int()), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return starlark.MakeUint64(value.Uint()), nil

	case reflect.Float32, reflect.Float64:
		return starlark.Float(value.Float()), nil

	case reflect.Slice, reflect.Array:
		l := value.Len()
		elems := make([]starlark.Value, l)
		for i := range l {
			elem, err := ToValue(value.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			elems[i] = elem
		}
		return starlark.NewList(elems), nil

	case reflect.Map:
		d := starlark.NewDict(value.Len())
		iter := value.MapRange()
		for iter.Next() {
			key, err := ToValue(iter.Key().Interface())
			if err != nil {
				return nil, err
			}
			val, err := ToValue(iter.Value().Interface())
			if err != nil {
				return nil, err
			}
			if err := d.SetKey(key, val); err != nil {
				return nil, err
			}
		}
		return d, nil

	case reflect.Struct:
		typ := value.Type()
		n := value.NumField()
		d := starlark.NewDict(n)
		for i := range n {
			field := typ.Field(i)
			if !field.IsExported() {
				continue
			}
			val, err := ToValue(value.Field(i).Interface())
			if err != nil {
				return nil, err
			}
			if err := d.SetKey(starlark.String(field.Name), val); err != nil {
				return nil, err
			}
		}
		return d, nil

	case reflect.Pointer, reflect.Interface:
		elem := value.Elem()
		if !elem.IsValid() {
			return starlark.None, nil
		}
		return ToValue(elem.Interface())

	case reflect.Func:
		return starlarkutil.MakeFunc("", value.Interface()), nil

	}

	return nil, fmt.Errorf("unsupported type for starlark: %T", v)
}

// FromValue converts a Starlark value back into a plain Go value:
// None -> nil, Int -> int64 (or *big.Int when out of range), List and
// Tuple -> []any, Dict -> map[string]any keyed by the key's string form.
func FromValue(v starlark.Value) (any, error) {
	switch v := v.(type) {

	case starlark.NoneType:
		return nil, nil

	case starlark.Bool:
		return bool(v), nil

	case starlark.Int:
		if i, ok := v.Int64(); ok {
			return i, nil
		}
		return new(big.Int).Set(v.BigInt()), nil

	case starlark.Float:
		return float64(v), nil

	case starlark.String:
		return string(v), nil

	case starlark.Bytes:
		return []byte(v), nil

	case *starlark.List:
		ret := make([]any, 0, v.Len())
		for elem := range v.Elements() {
			converted, err := FromValue(elem)
			if err != nil {
				return nil, err
			}
			ret = append(ret, converted)
		}
		return ret, nil

	case starlark.Tuple:
		ret := make([]any, 0, v.Len())
		for _, elem := range v {
			converted, err := FromValue(elem)
			if err != nil {
				return nil, err
			}
			ret = append(ret, converted)
		}
		return ret, nil

	case *starlark.Dict:
		ret := make(map[string]any, v.Len())
		for _, item := range v.Items() {
			var key string
			if s, ok := starlark.AsString(item[0]); ok {
				key = s
			} else {
				key = item[0].String()
			}
			converted, err := FromValue(item[1])
			if err != nil {
				return nil, err
			}
			ret[key] = converted
		}
		return ret, nil

	case *starlark.Set:
		ret := make([]any, 0, v.Len())
		for elem := range v.Elements() {
			converted, err := FromValue(elem)
			if err != nil {
				return nil, err
			}
			ret = append(ret, converted)
		}
		return ret, nil

	}

	return nil, fmt.Errorf("unsupported starlark type: %s", v.Type())
}
