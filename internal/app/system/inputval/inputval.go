// Package inputval validates form and JSON input structs with
// go-playground/validator struct tags and turns failures into
// human-readable messages.
//
// A field's label comes from its `label` tag, its wire name from its `json`
// tag:
//
//	type CampInput struct {
//	    Name  string  `json:"name" validate:"required,max=200" label:"Name"`
//	    Price float64 `json:"price" validate:"gte=0" label:"Price"`
//	}
//
// Custom rules: httpurl.
package inputval

import (
	"net/url"
	"reflect"
	"strings"
	"sync"

	"github.com/dalemusser/campanion/internal/app/system/apperr"
	"github.com/go-playground/validator/v10"
)

var (
	once sync.Once
	v    *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
		_ = v.RegisterValidation("httpurl", func(fl validator.FieldLevel) bool {
			return IsValidHTTPURL(fl.Field().String())
		})
	})
	return v
}

// FieldError is one failed rule.
type FieldError struct {
	Field   string // wire name
	Label   string
	Message string
}

// Result collects every failure from Validate.
type Result struct {
	Errors []FieldError
}

func (r *Result) HasErrors() bool { return r != nil && len(r.Errors) > 0 }

// First returns the first message, or "".
func (r *Result) First() string {
	if !r.HasErrors() {
		return ""
	}
	return r.Errors[0].Message
}

// All joins every message with "; ".
func (r *Result) All() string {
	if !r.HasErrors() {
		return ""
	}
	msgs := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "; ")
}

// Err converts the result to an apperr.ValidationError, or nil.
func (r *Result) Err() error {
	if !r.HasErrors() {
		return nil
	}
	ve := &apperr.ValidationError{}
	for _, e := range r.Errors {
		ve.Add(e.Field, e.Message)
	}
	return ve
}

// Validate runs the struct's validate tags. s must be a struct or pointer to
// struct.
func Validate(s any) *Result {
	res := &Result{}
	err := instance().Struct(s)
	if err == nil {
		return res
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		res.Errors = append(res.Errors, FieldError{Message: err.Error()})
		return res
	}
	labels := labelsOf(s)
	for _, fe := range verrs {
		label := labels[fe.StructField()]
		if label == "" {
			label = fe.Field()
		}
		res.Errors = append(res.Errors, FieldError{
			Field:   fe.Field(),
			Label:   label,
			Message: message(label, fe),
		})
	}
	return res
}

func labelsOf(s any) map[string]string {
	t := reflect.TypeOf(s)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	out := map[string]string{}
	if t.Kind() != reflect.Struct {
		return out
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if l := f.Tag.Get("label"); l != "" {
			out[f.Name] = l
		}
	}
	return out
}

func message(label string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return label + " is required."
	case "max":
		return label + " must be at most " + fe.Param() + " characters."
	case "min":
		return label + " must be at least " + fe.Param() + " characters."
	case "gte":
		if fe.Param() == "0" {
			return label + " must not be negative."
		}
		return label + " must be at least " + fe.Param() + "."
	case "lte":
		return label + " must be at most " + fe.Param() + "."
	case "email":
		return "A valid email address is required."
	case "httpurl":
		return label + " must be an http or https URL."
	case "oneof":
		return label + " must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ") + "."
	case "dive":
		return label + " has an invalid entry."
	}
	return label + " is invalid."
}

// IsValidHTTPURL reports whether s is an absolute http(s) URL with a host.
// Surrounding whitespace is ignored.
func IsValidHTTPURL(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != ""
}
