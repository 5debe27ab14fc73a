package store

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"
)

// TimeLayout is the canonical wire encoding for dates: fixed-width UTC
// RFC 3339 with nanosecond precision. Fixed width keeps encoded dates
// lexicographically ordered, so range and order-by clauses on date fields
// reduce to plain string comparison in every backend.
const TimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func encodeTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// decodeTime reports whether s is a canonically encoded date, and its value.
func decodeTime(s string) (time.Time, bool) {
	if len(s) != 30 || s[10] != 'T' || s[29] != 'Z' {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// encodeValue converts a value tree into its wire form, recursively walking
// nested maps, slices and structs and converting every time.Time to the
// canonical encoding.
func encodeValue(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	if t, ok := v.(time.Time); ok {
		return encodeTime(t), nil
	}
	if t, ok := v.(*time.Time); ok {
		if t == nil {
			return nil, nil
		}
		return encodeTime(*t), nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil, nil
		}
		return encodeValue(rv.Elem().Interface())
	case reflect.Map:
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			key := fmt.Sprintf("%v", iter.Key().Interface())
			ev, err := encodeValue(iter.Value().Interface())
			if err != nil {
				return nil, err
			}
			out[key] = ev
		}
		return out, nil
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			ev, err := encodeValue(rv.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			out[i] = ev
		}
		return out, nil
	case reflect.Struct:
		return encodeStruct(rv)
	default:
		return v, nil
	}
}

func encodeStruct(rv reflect.Value) (map[string]any, error) {
	rt := rv.Type()
	out := make(map[string]any, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		name, opts, skip := jsonFieldName(field)
		if skip {
			continue
		}
		fv := rv.Field(i)
		if strings.Contains(opts, "omitempty") && isEmptyValue(fv) {
			continue
		}
		ev, err := encodeValue(fv.Interface())
		if err != nil {
			return nil, err
		}
		out[name] = ev
	}
	return out, nil
}

func jsonFieldName(field reflect.StructField) (name, opts string, skip bool) {
	tag := field.Tag.Get("json")
	if tag == "-" {
		return "", "", true
	}
	name = field.Name
	if tag != "" {
		parts := strings.SplitN(tag, ",", 2)
		if parts[0] != "" {
			name = parts[0]
		}
		if len(parts) == 2 {
			opts = parts[1]
		}
	}
	return name, opts, false
}

func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Slice, reflect.Map, reflect.String:
		return v.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return v.IsNil()
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	}
	return false
}

// decodeValue is the inverse walk: every canonically encoded date string
// becomes a time.Time again, through nested objects and arrays.
func decodeValue(v any) any {
	switch val := v.(type) {
	case string:
		if t, ok := decodeTime(val); ok {
			return t
		}
		return val
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = decodeValue(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = decodeValue(item)
		}
		return out
	default:
		return v
	}
}

// EncodeDocument converts a domain struct (or map) into a document suitable
// for Store.Add/Update. Date fields stay time.Time; the store encodes them
// at the transmission boundary.
func EncodeDocument(v any) (map[string]any, error) {
	ev, err := encodeValue(v)
	if err != nil {
		return nil, err
	}
	doc, ok := ev.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("store: cannot encode %T as document", v)
	}
	return decodeValue(doc).(map[string]any), nil
}

// DecodeDocument unmarshals a document returned by the store into dst.
func DecodeDocument(doc map[string]any, dst any) error {
	ev, err := encodeValue(doc)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dst)
}
