package service

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterStructValidation(reminderRecurrence, ReminderInput{})
	return v
}

// reminderRecurrence rejects a recurring reminder without a positive
// interval.
func reminderRecurrence(sl validator.StructLevel) {
	in := sl.Current().Interface().(ReminderInput)
	if in.Recurring && in.RecurringInterval <= 0 {
		sl.ReportError(in.RecurringInterval, "recurringInterval", "RecurringInterval", "required_if_recurring", "")
	}
}

// ValidationError lists invalid input fields by their JSON name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = name + " " + e.Fields[name]
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

var messages = map[string]string{
	"required":              "is required",
	"min":                   "is too small",
	"max":                   "is too large",
	"oneof":                 "is not an allowed value",
	"gte":                   "is too small",
	"lte":                   "is too large",
	"required_if_recurring": "must be a positive number of days when recurring",
	"dive":                  "is invalid",
}

func check(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate: %w", err)
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		msg, ok := messages[fe.Tag()]
		if !ok {
			msg = "is invalid"
		}
		fields[fieldPath(fe)] = msg
	}
	return &ValidationError{Fields: fields}
}

// fieldPath drops the top-level struct name from the namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return fe.Field()
}

// ValidationMessages returns the per-field messages carried by err, or nil
// when err is not a validation failure.
func ValidationMessages(err error) map[string]string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Fields
	}
	return nil
}

func invalid(field, msg string) error {
	return &ValidationError{Fields: map[string]string{field: msg}}
}
