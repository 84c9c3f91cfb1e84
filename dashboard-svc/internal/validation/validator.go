// Package validation holds the dashboard form rules.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d(:[0-5]\d)?$`)

// FieldError is one failing field, named by its JSON key.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type Errors []FieldError

func (e Errors) Error() string {
	return strings.Join(e.Messages(), "; ")
}

func (e Errors) Messages() []string {
	out := make([]string, len(e))
	for i, fe := range e {
		out[i] = fe.Message
	}
	return out
}

var customRules = map[string]validator.Func{
	"clock": validateClock,
	"phone": validatePhone,
}

type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	for tag, fn := range customRules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("validation: register %q: %v", tag, err))
		}
	}
	v.RegisterStructValidation(validateWorkingHours, WorkingHoursForm{})
	v.RegisterStructValidation(validateReorder, ReorderForm{})
	return &Validator{validate: v}
}

// Struct returns Errors when the form is invalid.
func (v *Validator) Struct(form any) error {
	err := v.validate.Struct(form)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	out := make(Errors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, FieldError{Field: fieldPath(fe), Message: message(fe)})
	}
	return out
}

func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	field := fieldPath(fe)
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must have at least %s items", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must have at most %s items", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must not be negative", field)
	case "eqfield":
		return fmt.Sprintf("%s does not match", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "datetime":
		return fmt.Sprintf("%s must be a date in YYYY-MM-DD format", field)
	case "clock":
		return fmt.Sprintf("%s must be a time in HH:MM format", field)
	case "phone":
		return fmt.Sprintf("%s must be a valid phone number", field)
	case "unique_day":
		return fmt.Sprintf("%s lists the same day twice", field)
	case "unique":
		return fmt.Sprintf("%s contains duplicates", field)
	case "after_open":
		return fmt.Sprintf("%s must be after the opening time", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func validateClock(fl validator.FieldLevel) bool {
	return clockPattern.MatchString(fl.Field().String())
}

var phonePattern = regexp.MustCompile(`^\+?[0-9 ()\-]{7,20}$`)

func validatePhone(fl validator.FieldLevel) bool {
	return phonePattern.MatchString(fl.Field().String())
}

func validateWorkingHours(sl validator.StructLevel) {
	form := sl.Current().Interface().(WorkingHoursForm)
	seen := map[int]bool{}
	for i, wh := range form.Hours {
		if seen[wh.DayOfWeek] {
			sl.ReportError(wh.DayOfWeek, fmt.Sprintf("working_hours[%d].day_of_week", i), "DayOfWeek", "unique_day", "")
		}
		seen[wh.DayOfWeek] = true

		if wh.IsClosed || !clockPattern.MatchString(wh.OpenTime) || !clockPattern.MatchString(wh.CloseTime) {
			continue
		}
		// "00:00" closes at midnight
		if wh.CloseTime[:5] != "00:00" && wh.CloseTime[:5] <= wh.OpenTime[:5] {
			sl.ReportError(wh.CloseTime, fmt.Sprintf("working_hours[%d].close_time", i), "CloseTime", "after_open", "")
		}
	}
}

func validateReorder(sl validator.StructLevel) {
	form := sl.Current().Interface().(ReorderForm)
	seen := map[int]bool{}
	for _, id := range form.IDs {
		if seen[id] {
			sl.ReportError(form.IDs, "ids", "IDs", "unique", "")
			return
		}
		seen[id] = true
	}
}
