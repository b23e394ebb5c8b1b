package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report JSON field names in errors.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("book", func(fl validator.FieldLevel) bool {
		return IsBookAbbreviation(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// ValidationError reports a value that did not match its declared shape.
type ValidationError struct {
	Type string
	Err  error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Type, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Fields lists the namespaced fields that failed validation, if known.
func (e *ValidationError) Fields() []string {
	var verrs validator.ValidationErrors
	if !errors.As(e.Err, &verrs) {
		return nil
	}
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, fe.Namespace())
	}
	return out
}

// Validate checks a struct, a pointer to one, or a slice of them.
func Validate(v any) error {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return &ValidationError{Type: "value", Err: errors.New("nil value")}
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if err := Validate(rv.Index(i).Interface()); err != nil {
				var verr *ValidationError
				if errors.As(err, &verr) {
					return &ValidationError{Type: fmt.Sprintf("%s[%d]", verr.Type, i), Err: verr.Err}
				}
				return err
			}
		}
		return nil
	case reflect.Struct:
		if err := validate.Struct(rv.Interface()); err != nil {
			return &ValidationError{Type: typeName(rv.Type()), Err: err}
		}
		return nil
	default:
		return nil
	}
}

// Decode reads one JSON document from r into a T and validates it.
func Decode[T any](r io.Reader) (T, error) {
	var out T
	if err := json.NewDecoder(r).Decode(&out); err != nil {
		return out, fmt.Errorf("decode %s: %w", typeName(reflect.TypeOf(out)), err)
	}
	if err := Validate(out); err != nil {
		return out, err
	}
	return out, nil
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "value"
	}
	for t.Kind() == reflect.Pointer || t.Kind() == reflect.Slice {
		t = t.Elem()
	}
	return strings.ToLower(t.Name())
}
