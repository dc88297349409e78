package option

import (
	"reflect"
	"strings"
)

var tagKeys = []string{"json", "yaml", "toml"}

// IsRecord reports whether opt is a structured record: a struct, a map keyed
// by strings, or a non-nil pointer to either. Everything else is a scalar.
func IsRecord(opt any) bool {
	v := indirect(reflect.ValueOf(opt))
	if !v.IsValid() {
		return false
	}
	switch v.Kind() {
	case reflect.Map:
		return v.Type().Key().Kind() == reflect.String
	case reflect.Struct:
		return true
	}
	return false
}

// Property reads the named property from a record. Map keys match exactly.
// Struct fields match by name, then by json/yaml/toml tag, then by
// case-insensitive name. Missing properties and scalars report false.
func Property(opt any, name string) (any, bool) {
	v := indirect(reflect.ValueOf(opt))
	if !v.IsValid() || name == "" {
		return nil, false
	}
	switch v.Kind() {
	case reflect.Map:
		keyType := v.Type().Key()
		if keyType.Kind() != reflect.String {
			return nil, false
		}
		val := v.MapIndex(reflect.ValueOf(name).Convert(keyType))
		if !val.IsValid() {
			return nil, false
		}
		return val.Interface(), true
	case reflect.Struct:
		return structField(v, name)
	}
	return nil, false
}

// Disabled reports whether the option carries a truthy disable flag.
func Disabled(opt any) bool {
	for _, name := range []string{"disable", "disabled"} {
		if raw, ok := Property(opt, name); ok {
			if flag, ok := raw.(bool); ok && flag {
				return true
			}
		}
	}
	return false
}

func structField(v reflect.Value, name string) (any, bool) {
	fields := reflect.VisibleFields(v.Type())
	match := func(pred func(reflect.StructField) bool) (any, bool) {
		for _, f := range fields {
			if !f.IsExported() || f.Anonymous || !pred(f) {
				continue
			}
			fv, err := v.FieldByIndexErr(f.Index)
			if err != nil {
				continue
			}
			return fv.Interface(), true
		}
		return nil, false
	}
	if val, ok := match(func(f reflect.StructField) bool { return f.Name == name }); ok {
		return val, true
	}
	if val, ok := match(func(f reflect.StructField) bool { return tagName(f) == name }); ok {
		return val, true
	}
	return match(func(f reflect.StructField) bool { return strings.EqualFold(f.Name, name) })
}

func tagName(f reflect.StructField) string {
	for _, key := range tagKeys {
		tag, ok := f.Tag.Lookup(key)
		if !ok {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")
		if name != "" && name != "-" {
			return name
		}
	}
	return ""
}

func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}
