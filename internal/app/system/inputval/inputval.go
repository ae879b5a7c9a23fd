// internal/app/system/inputval/inputval.go

// Package inputval validates form input before any write is issued.
//
// Struct-based validation uses `validate` tags plus a `label` tag for the
// name shown in messages:
//
//	type createInput struct {
//	    FirstName string `validate:"required,max=100" label:"Voornaam"`
//	    Password  string `validate:"required,min=8" label:"Wachtwoord"`
//	    Status    string `validate:"oneof=active disabled" label:"Status"`
//	}
//
//	if result := inputval.Validate(input); result.HasErrors() {
//	    // result.First() for a single banner, result.Fields for per-field
//	    // messages keyed by struct field name.
//	}
//
// A failed validation must never be followed by a store call; handlers
// re-render the form with the messages instead.
package inputval

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Result collects validation failures keyed by struct field name, in
// declaration order.
type Result struct {
	Fields map[string]string
	order  []string
}

// HasErrors reports whether any rule failed.
func (r Result) HasErrors() bool {
	return len(r.Fields) > 0
}

// First returns the first failure message in field declaration order, or ""
// when validation passed.
func (r Result) First() string {
	if len(r.order) == 0 {
		return ""
	}
	return r.Fields[r.order[0]]
}

// Message returns the failure message for a field, or "".
func (r Result) Message(field string) string {
	return r.Fields[field]
}

func (r *Result) add(field, msg string) {
	if r.Fields == nil {
		r.Fields = map[string]string{}
	}
	if _, exists := r.Fields[field]; exists {
		return // keep the first failure per field
	}
	r.Fields[field] = msg
	r.order = append(r.order, field)
}

// Validate applies the `validate` tag rules of every exported field of the
// given struct (or pointer to struct). Unknown rules are ignored.
func Validate(input any) Result {
	var res Result

	v := reflect.ValueOf(input)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return res
	}

	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		rules := field.Tag.Get("validate")
		if rules == "" {
			continue
		}
		label := field.Tag.Get("label")
		if label == "" {
			label = field.Name
		}
		value := v.Field(i)

		for _, rule := range strings.Split(rules, ",") {
			if msg := applyRule(rule, label, value); msg != "" {
				res.add(field.Name, msg)
			}
		}
	}
	return res
}

func applyRule(rule, label string, v reflect.Value) string {
	name, arg, _ := strings.Cut(rule, "=")

	switch name {
	case "required":
		if isZeroInput(v) {
			return label + " is verplicht."
		}
	case "min":
		n, err := strconv.Atoi(arg)
		if err != nil {
			return ""
		}
		switch v.Kind() {
		case reflect.String:
			s := strings.TrimSpace(v.String())
			if s != "" && len(s) < n {
				return fmt.Sprintf("%s moet minimaal %d tekens lang zijn.", label, n)
			}
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			if v.Int() < int64(n) {
				return fmt.Sprintf("%s moet minimaal %d zijn.", label, n)
			}
		}
	case "max":
		n, err := strconv.Atoi(arg)
		if err != nil {
			return ""
		}
		switch v.Kind() {
		case reflect.String:
			if len(strings.TrimSpace(v.String())) > n {
				return fmt.Sprintf("%s mag maximaal %d tekens lang zijn.", label, n)
			}
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			if v.Int() > int64(n) {
				return fmt.Sprintf("%s mag maximaal %d zijn.", label, n)
			}
		}
	case "oneof":
		if v.Kind() != reflect.String {
			return ""
		}
		s := strings.TrimSpace(v.String())
		if s == "" {
			return "" // combine with required if the field is mandatory
		}
		for _, allowed := range strings.Fields(arg) {
			if s == allowed {
				return ""
			}
		}
		return label + " is ongeldig."
	case "email":
		s := strings.TrimSpace(v.String())
		if s != "" && !IsValidEmail(s) {
			return label + " moet een geldig e-mailadres zijn."
		}
	}
	return ""
}

func isZeroInput(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return strings.TrimSpace(v.String()) == ""
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	default:
		return v.IsZero()
	}
}
