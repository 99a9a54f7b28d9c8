package defaults

import (
	"fmt"
	"reflect"
	"strings"
)

var fieldsType = reflect.TypeOf(Fields{})

// Propagate returns copies of items with every absent field taken from def.
// Fields are matched by yaml key. For each key of def:
//   - absent on the item: the item receives a copy of the default value,
//     which replaces a whole nested sub-object when the key names one
//   - present with a non-nil nested sub-object: the same rules apply field
//     by field inside that sub-object, provided the default sub-object is set
//   - present otherwise, null included: left untouched
//
// Neither def nor items is modified, and no two results share memory with
// def or with each other. Items must embed Fields; def and items may be
// structs or pointers to structs.
func Propagate[D, T any](def D, items []T) ([]T, error) {
	out := make([]T, len(items))
	for i := range items {
		out[i] = Clone(items[i])
	}

	src := reflect.ValueOf(&def).Elem()
	for src.Kind() == reflect.Ptr {
		if src.IsNil() {
			return out, nil
		}
		src = src.Elem()
	}
	if src.Kind() != reflect.Struct {
		return nil, fmt.Errorf("defaults must be a struct, got %s", src.Kind())
	}

	for i := range out {
		dst := reflect.ValueOf(&out[i]).Elem()
		for dst.Kind() == reflect.Ptr {
			if dst.IsNil() {
				break
			}
			dst = dst.Elem()
		}
		if dst.Kind() != reflect.Struct {
			continue
		}
		if err := merge(dst, src); err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
	}

	return out, nil
}

// merge fills absent fields of dst from src. dst must be addressable.
func merge(dst, src reflect.Value) error {
	present, ok := dst.Addr().Interface().(presence)
	if !ok || dst.Type() == fieldsType {
		return fmt.Errorf("type %s does not record field presence", dst.Type())
	}

	srcType := src.Type()
	for i := 0; i < srcType.NumField(); i++ {
		sf := srcType.Field(i)
		key := yamlKey(sf)
		if key == "" || !sf.IsExported() {
			continue
		}

		target, found := fieldByKey(dst, key)
		if !found {
			return fmt.Errorf("defaults key %q has no matching field in %s", key, dst.Type())
		}
		value := src.Field(i)
		if target.Type() != value.Type() {
			return fmt.Errorf("field %q: defaults type %s does not match item type %s", key, value.Type(), target.Type())
		}

		if !present.Has(key) {
			target.Set(deepCopy(value))
			continue
		}

		// Present sub-objects inherit field by field
		switch {
		case target.Kind() == reflect.Ptr && target.Type().Elem().Kind() == reflect.Struct:
			if target.IsNil() || value.IsNil() {
				continue
			}
			if err := merge(target.Elem(), value.Elem()); err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
		case target.Kind() == reflect.Struct:
			if err := merge(target, value); err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
		}
	}
	return nil
}

// fieldByKey finds the exported field of v whose yaml key is key
func fieldByKey(v reflect.Value, key string) (reflect.Value, bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.IsExported() && yamlKey(f) == key {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}

// yamlKey returns the mapping key yaml.v3 uses for f, or "" for fields that
// are skipped or inlined
func yamlKey(f reflect.StructField) string {
	if f.Type == fieldsType {
		return ""
	}
	tag := f.Tag.Get("yaml")
	name, opts, _ := strings.Cut(tag, ",")
	if name == "-" || strings.Contains(opts, "inline") {
		return ""
	}
	if name == "" {
		return strings.ToLower(f.Name)
	}
	return name
}
