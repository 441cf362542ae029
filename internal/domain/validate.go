package domain

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var emailPattern = regexp.MustCompile(`(?i)^[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}$`)

// FieldRule is one field's pre-submit constraints. All checks run
// locally before any network call.
type FieldRule struct {
	Required        bool
	RequiredMessage string
	Pattern         *regexp.Regexp
	PatternMessage  string
	Check           func(value string) error
}

// Rules maps field name to its rule. Evaluation is synchronous and
// independent of any input binding.
type Rules map[string]FieldRule

// FieldErrors collects per-field validation messages.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	if len(e) == 0 {
		return ""
	}

	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, e[field]))
	}

	return strings.Join(parts, "; ")
}

// Evaluate applies every rule against the given values and returns nil
// when all fields pass.
func (r Rules) Evaluate(values map[string]string) FieldErrors {
	errs := FieldErrors{}

	for field, rule := range r {
		value := strings.TrimSpace(values[field])

		if rule.Required && value == "" {
			message := rule.RequiredMessage
			if message == "" {
				message = fmt.Sprintf("%s is required", field)
			}
			errs[field] = message
			continue
		}

		if value == "" {
			continue
		}

		if rule.Pattern != nil && !rule.Pattern.MatchString(value) {
			message := rule.PatternMessage
			if message == "" {
				message = fmt.Sprintf("%s is invalid", field)
			}
			errs[field] = message
			continue
		}

		if rule.Check != nil {
			if err := rule.Check(value); err != nil {
				errs[field] = err.Error()
			}
		}
	}

	if len(errs) == 0 {
		return nil
	}

	return errs
}

// LoginRules matches the login form: both fields required, email shape
// checked locally.
func LoginRules() Rules {
	return Rules{
		"email": {
			Required:        true,
			RequiredMessage: "Email is required",
			Pattern:         emailPattern,
			PatternMessage:  "Invalid email address",
		},
		"password": {
			Required:        true,
			RequiredMessage: "Password is required",
		},
	}
}

// RegisterRules adds the name field and a minimum password length.
// Password confirmation is a caller-supplied check since it compares
// two fields.
func RegisterRules(confirm string) Rules {
	return Rules{
		"name": {
			Required:        true,
			RequiredMessage: "Name is required",
		},
		"email": {
			Required:        true,
			RequiredMessage: "Email is required",
			Pattern:         emailPattern,
			PatternMessage:  "Invalid email address",
		},
		"password": {
			Required:        true,
			RequiredMessage: "Password is required",
			Check: func(value string) error {
				if len(value) < 6 {
					return errors.New("Password must be at least 6 characters")
				}
				if value != confirm {
					return errors.New("Passwords do not match")
				}
				return nil
			},
		},
	}
}

// ClientFormRules matches the client form's per-field declarations.
func ClientFormRules() Rules {
	return Rules{
		"name": {
			Required:        true,
			RequiredMessage: "Client name is required",
		},
		"email": {
			Required:        true,
			RequiredMessage: "Email is required",
			Pattern:         emailPattern,
			PatternMessage:  "Invalid email address",
		},
		"phone": {
			Required:        true,
			RequiredMessage: "Phone number is required",
		},
		"services": {
			Required:        true,
			RequiredMessage: "Select at least one service",
		},
		"subscriptionStart": {
			Required:        true,
			RequiredMessage: "Start date is required",
		},
		"subscriptionEnd": {
			Required:        true,
			RequiredMessage: "End date is required",
		},
	}
}
