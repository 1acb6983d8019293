// Package validation provides request field validation utilities.
package validation

import (
	"fmt"
	"regexp"
)

// MinPasswordLength is the minimum accepted password length at registration.
const MinPasswordLength = 6

// Simple pragmatic pattern; the email is only used as a login identifier.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// FieldError describes a single failed check on a request field.
// The wire shape matches what the existing clients already parse.
type FieldError struct {
	Msg   string `json:"msg"`
	Param string `json:"param"`
}

// ErrorsResponse is the body returned for field validation failures.
type ErrorsResponse struct {
	Errors []FieldError `json:"errors"`
}

// Required checks that a field is non-empty.
func Required(param, value, msg string) *FieldError {
	if value == "" {
		return &FieldError{Msg: msg, Param: param}
	}
	return nil
}

// Email checks that a field looks like an email address.
func Email(param, value string) *FieldError {
	if !emailRegex.MatchString(value) {
		return &FieldError{Msg: "Please include a valid email", Param: param}
	}
	return nil
}

// MinLength checks that a field has at least min bytes.
func MinLength(param, value string, min int, noun string) *FieldError {
	if len(value) < min {
		return &FieldError{
			Msg:   fmt.Sprintf("Please enter a %s with %d or more characters", noun, min),
			Param: param,
		}
	}
	return nil
}

// Collect gathers the non-nil results of a series of checks.
func Collect(checks ...*FieldError) []FieldError {
	var errs []FieldError
	for _, c := range checks {
		if c != nil {
			errs = append(errs, *c)
		}
	}
	return errs
}
