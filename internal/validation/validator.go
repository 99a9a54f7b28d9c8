package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is safe for concurrent use and caches struct metadata. It is set
// in init because the host tag reads it through ClassifyHost.
var validate *validator.Validate

func init() {
	validate = newValidator()
}

func newValidator() *validator.Validate {
	v := validator.New()

	// Report yaml keys instead of Go field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("host", func(fl validator.FieldLevel) bool {
		_, err := ClassifyHost(fl.Field().String())
		return err == nil
	}); err != nil {
		panic(fmt.Sprintf("register host validation: %v", err))
	}

	return v
}

// Struct validates the tags on v and reports every violation as a schema
// error whose path starts at root
func Struct(root string, v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return Errors{Schemaf(root, "%v", err)}
	}

	errs := make(Errors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, &Error{
			Kind: KindSchema,
			Path: JoinPath(root, trimRoot(fe.Namespace())),
			Msg:  describe(fe),
		})
	}
	return errs
}

// Var validates a single value against tag
func Var(path string, value interface{}, tag string) error {
	err := validate.Var(value, tag)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return Schemaf(path, "%v", err)
	}
	return &Error{Kind: KindSchema, Path: path, Msg: describe(fieldErrs[0])}
}

// trimRoot drops the Go type name validator puts at the head of a namespace
func trimRoot(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return ""
}

func describe(fe validator.FieldError) string {
	isText := fe.Kind() == reflect.String
	isList := fe.Kind() == reflect.Slice || fe.Kind() == reflect.Map

	switch fe.Tag() {
	case "required":
		return "is required"
	case "host":
		return hostMessage
	case "oneof":
		return fmt.Sprintf("must be one of [%s], got %v", strings.ReplaceAll(fe.Param(), " ", ", "), fe.Value())
	case "eq":
		return fmt.Sprintf("must be %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s, got %v", fe.Param(), fe.Value())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s, got %v", fe.Param(), fe.Value())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s, got %v", fe.Param(), fe.Value())
	case "min":
		switch {
		case isText:
			return fmt.Sprintf("must be at least %s characters long", fe.Param())
		case isList:
			return fmt.Sprintf("must contain at least %s items", fe.Param())
		}
		return fmt.Sprintf("must be greater than or equal to %s, got %v", fe.Param(), fe.Value())
	case "max":
		switch {
		case isText:
			return fmt.Sprintf("must be at most %s characters long", fe.Param())
		case isList:
			return fmt.Sprintf("must contain at most %s items", fe.Param())
		}
		return fmt.Sprintf("must be less than or equal to %s, got %v", fe.Param(), fe.Value())
	case "len":
		if isList {
			return fmt.Sprintf("must contain exactly %s items", fe.Param())
		}
		return fmt.Sprintf("must be exactly %s characters long", fe.Param())
	}
	return fmt.Sprintf("failed on the '%s' constraint", fe.Tag())
}
