package binder

import (
	"fmt"
	"net/http"
	"reflect"
)

// Query binds URL query parameters through `query:"name"` tags. It accepts
// the same field types as Form and works for any method.
func Query() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Ptr || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
			return fmt.Errorf("%w: target must be a non-nil pointer to struct", ErrFailedToParseQuery)
		}

		values := r.URL.Query()
		rv = rv.Elem()
		rt := rv.Type()

		for i := range rv.NumField() {
			field := rv.Field(i)
			if !field.CanSet() {
				continue
			}
			name := tagName(rt.Field(i), "query")
			if name == "" {
				continue
			}
			if vals := values[name]; len(vals) > 0 {
				if err := setValue(field, vals[0]); err != nil {
					return fmt.Errorf("%w: parameter %s: %w", ErrFailedToParseQuery, name, err)
				}
			}
		}
		return nil
	}
}
