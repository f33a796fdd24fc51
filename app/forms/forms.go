// Package forms turns submitted form values into validated, typed input.
//
// Each form has a Parse function returning the typed input and the field
// errors keyed by form field name. A Form keeps the submitted values next
// to those errors so a template can redisplay what the visitor typed.
package forms

import (
	"encoding/json"
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// FieldErrors maps a form field name to its error message.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for field, msg := range fe {
		fields = append(fields, field+" "+msg)
	}
	sort.Strings(fields)
	return "invalid form: " + strings.Join(fields, "; ")
}

// Form is a bound form: the raw submitted values and any errors.
type Form struct {
	Values url.Values
	Errors FieldErrors
}

// NewForm returns an unbound form with no values or errors.
func NewForm() *Form {
	return &Form{Values: url.Values{}, Errors: FieldErrors{}}
}

// Bind returns a form holding values and errs.
func Bind(values url.Values, errs FieldErrors) *Form {
	if values == nil {
		values = url.Values{}
	}
	if errs == nil {
		errs = FieldErrors{}
	}
	return &Form{Values: values, Errors: errs}
}

func (f *Form) Get(field string) string {
	return f.Values.Get(field)
}

func (f *Form) Error(field string) string {
	return f.Errors[field]
}

func (f *Form) Valid() bool {
	return len(f.Errors) == 0
}

func (f *Form) MarshalJSON() ([]byte, error) {
	values := make(map[string]string, len(f.Values))
	for field := range f.Values {
		values[field] = f.Values.Get(field)
	}
	return json.Marshal(struct {
		Values map[string]string `json:"values"`
		Errors FieldErrors       `json:"errors"`
	}{values, f.Errors})
}

// check validates input and converts validator failures to FieldErrors.
func check(input interface{}) FieldErrors {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return FieldErrors{"__all__": err.Error()}
	}

	errs := FieldErrors{}
	for _, fe := range validationErrors {
		if _, seen := errs[fe.Field()]; seen {
			continue
		}
		errs[fe.Field()] = message(fe)
	}
	return errs
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "max":
		return fmt.Sprintf("Ensure this value has at most %s characters.", fe.Param())
	case "min":
		return fmt.Sprintf("Ensure this value has at least %s characters.", fe.Param())
	default:
		if fe.Param() != "" {
			return fmt.Sprintf("Failed %s:%s validation.", fe.Tag(), fe.Param())
		}
		return fmt.Sprintf("Failed %s validation.", fe.Tag())
	}
}

func value(values url.Values, field string) string {
	return strings.TrimSpace(values.Get(field))
}
