package binder

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
)

// DefaultMaxMemory is the default maximum memory used for parsing multipart forms (10MB).
const DefaultMaxMemory = 10 << 20

var fileHeaderType = reflect.TypeOf((*multipart.FileHeader)(nil))

// Form creates a binder for application/x-www-form-urlencoded and
// multipart/form-data bodies.
//
// Supported struct tags:
//   - `form:"name"` binds a string, bool or integer field (or a pointer to one)
//   - `file:"name"` binds a *multipart.FileHeader or []*multipart.FileHeader
//
// maxMemory bounds the part of the multipart body kept in memory; the rest
// spills to temporary files as net/http does.
func Form(maxMemory int64) func(r *http.Request, v any) error {
	if maxMemory <= 0 {
		maxMemory = DefaultMaxMemory
	}

	return func(r *http.Request, v any) error {
		mediaType, err := mediaTypeOf(r)
		if err != nil {
			return err
		}

		var (
			values map[string][]string
			files  map[string][]*multipart.FileHeader
		)

		switch mediaType {
		case "application/x-www-form-urlencoded":
			if err := r.ParseForm(); err != nil {
				return fmt.Errorf("%w: %w", ErrFailedToParseForm, err)
			}
			values = r.PostForm

		case "multipart/form-data":
			if err := r.ParseMultipartForm(maxMemory); err != nil {
				var maxErr *http.MaxBytesError
				if errors.As(err, &maxErr) {
					return fmt.Errorf("%w: %w", ErrRequestTooLarge, err)
				}
				return fmt.Errorf("%w: %w", ErrFailedToParseForm, err)
			}
			values = r.MultipartForm.Value
			files = r.MultipartForm.File

		default:
			return fmt.Errorf("%w: got %s, expected a form body", ErrUnsupportedMediaType, mediaType)
		}

		return bindForm(v, values, files)
	}
}

func bindForm(v any, values map[string][]string, files map[string][]*multipart.FileHeader) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w: target must be a non-nil pointer to struct", ErrFailedToParseForm)
	}

	rv = rv.Elem()
	rt := rv.Type()

	for i := range rv.NumField() {
		field := rv.Field(i)
		sf := rt.Field(i)
		if !field.CanSet() {
			continue
		}

		if name := tagName(sf, "form"); name != "" {
			if vals := values[name]; len(vals) > 0 {
				if err := setValue(field, vals[0]); err != nil {
					return fmt.Errorf("%w: field %s: %w", ErrFailedToParseForm, name, err)
				}
			}
		}

		if name := tagName(sf, "file"); name != "" {
			if headers := files[name]; len(headers) > 0 {
				if err := setFiles(field, headers); err != nil {
					return fmt.Errorf("%w: field %s: %w", ErrFailedToParseForm, name, err)
				}
			}
		}
	}
	return nil
}

func tagName(sf reflect.StructField, key string) string {
	name, _, _ := strings.Cut(sf.Tag.Get(key), ",")
	if name == "-" {
		return ""
	}
	return name
}

func setValue(field reflect.Value, value string) error {
	if field.Kind() == reflect.Ptr {
		if field.IsNil() {
			field.Set(reflect.New(field.Type().Elem()))
		}
		return setValue(field.Elem(), value)
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid bool value %q", value)
		}
		field.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid int value %q", value)
		}
		field.SetInt(n)
	default:
		return fmt.Errorf("unsupported type %s", field.Kind())
	}
	return nil
}

func setFiles(field reflect.Value, headers []*multipart.FileHeader) error {
	for _, fh := range headers {
		fh.Filename = sanitizeFilename(fh.Filename)
	}

	switch {
	case field.Type() == fileHeaderType:
		field.Set(reflect.ValueOf(headers[0]))
	case field.Kind() == reflect.Slice && field.Type().Elem() == fileHeaderType:
		field.Set(reflect.ValueOf(headers))
	default:
		return fmt.Errorf("unsupported type %s for file field", field.Type())
	}
	return nil
}

// sanitizeFilename drops directory components and NUL bytes from a client-supplied name.
func sanitizeFilename(filename string) string {
	filename = strings.ReplaceAll(filename, "\\", "/")
	filename = filepath.Base(filename)
	filename = strings.ReplaceAll(filename, "\x00", "")

	if filename == "." || filename == ".." || filename == "" || filename == "/" {
		filename = "unnamed"
	}
	return filename
}
