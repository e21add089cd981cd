package domain

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is the single resource managed by this service.
type User struct {
	ID        string   `json:"id" dynamodbav:"id"`
	FirstName string   `json:"firstName" dynamodbav:"firstName"`
	LastName  string   `json:"lastName" dynamodbav:"lastName"`
	Emails    []string `json:"emails" dynamodbav:"emails"`
	DOB       string   `json:"dob" dynamodbav:"dob"`
}

// FieldError describes a single schema violation. Path locates the offending
// value (field names and array indices); Keys lists unrecognized object keys.
type FieldError struct {
	Message string   `json:"message"`
	Path    []any    `json:"path,omitempty"`
	Keys    []string `json:"keys,omitempty"`
}

// MaxEmails caps the number of addresses a user may hold.
const MaxEmails = 3

var knownKeys = map[string]struct{}{
	"id":        {},
	"firstName": {},
	"lastName":  {},
	"emails":    {},
	"dob":       {},
}

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+'-]+@[a-zA-Z0-9-]+(\.[a-zA-Z0-9-]+)+$`)
	dobPattern   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

type validateOptions struct {
	optional map[string]bool
}

// ValidateOption tweaks schema validation for a particular flow.
type ValidateOption func(*validateOptions)

// WithOptionalFields marks the named fields as optional: a missing value is
// accepted, a present value is still validated in full.
func WithOptionalFields(fields ...string) ValidateOption {
	return func(o *validateOptions) {
		for _, field := range fields {
			o.optional[field] = true
		}
	}
}

// ValidateUser checks a raw request payload against the user schema and
// returns either the normalized user or the collected field errors. It never
// mutates the payload and reports as many violations as it can find:
// unrecognized keys first, then fields in declaration order.
func ValidateUser(payload map[string]any, opts ...ValidateOption) (*User, []FieldError) {
	options := validateOptions{optional: map[string]bool{}}
	for _, opt := range opts {
		opt(&options)
	}

	var errs []FieldError
	if unknown := unknownKeys(payload); len(unknown) > 0 {
		errs = append(errs, FieldError{
			Message: fmt.Sprintf("Unrecognized key(s) in object: '%s'", strings.Join(unknown, "', '")),
			Keys:    unknown,
		})
	}

	user := &User{}
	errs = validateID(payload, options, user, errs)
	user.FirstName, errs = validateString(payload, "firstName",
		"First name is required", "First name cannot be an empty string", options, errs)
	user.LastName, errs = validateString(payload, "lastName",
		"Last name is required", "Last name cannot be an empty string", options, errs)
	errs = validateEmails(payload, options, user, errs)
	errs = validateDOB(payload, options, user, errs)

	if len(errs) > 0 {
		return nil, errs
	}
	return user, nil
}

func unknownKeys(payload map[string]any) []string {
	var unknown []string
	for key := range payload {
		if _, ok := knownKeys[key]; !ok {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	return unknown
}

func validateID(payload map[string]any, options validateOptions, user *User, errs []FieldError) []FieldError {
	raw, present := payload["id"]
	if !present {
		if options.optional["id"] {
			return errs
		}
		return append(errs, FieldError{Message: "The id needs to be a valid UUID", Path: []any{"id"}})
	}
	id, ok := raw.(string)
	if !ok || uuid.Validate(id) != nil {
		return append(errs, FieldError{Message: "The id needs to be a valid UUID", Path: []any{"id"}})
	}
	user.ID = id
	return errs
}

func validateString(payload map[string]any, key, missingMsg, emptyMsg string, options validateOptions, errs []FieldError) (string, []FieldError) {
	raw, present := payload[key]
	if !present {
		if options.optional[key] {
			return "", errs
		}
		return "", append(errs, FieldError{Message: missingMsg, Path: []any{key}})
	}
	value, ok := raw.(string)
	if !ok {
		return "", append(errs, FieldError{Message: missingMsg, Path: []any{key}})
	}
	if value == "" {
		return "", append(errs, FieldError{Message: emptyMsg, Path: []any{key}})
	}
	return value, errs
}

func validateEmails(payload map[string]any, options validateOptions, user *User, errs []FieldError) []FieldError {
	raw, present := payload["emails"]
	if !present {
		if options.optional["emails"] {
			return errs
		}
		return append(errs, FieldError{Message: "The emails field is required", Path: []any{"emails"}})
	}
	list, ok := raw.([]any)
	if !ok {
		return append(errs, FieldError{Message: "The emails field is required", Path: []any{"emails"}})
	}
	switch {
	case len(list) == 0:
		errs = append(errs, FieldError{Message: "A user must have at least 1 email address", Path: []any{"emails"}})
	case len(list) > MaxEmails:
		errs = append(errs, FieldError{Message: "A user can have at most 3 email addresses", Path: []any{"emails"}})
	}
	seen := make(map[string]struct{}, len(list))
	duplicated := false
	for i, item := range list {
		email, ok := item.(string)
		if !ok || !emailPattern.MatchString(email) {
			errs = append(errs, FieldError{Message: "Invalid email format", Path: []any{"emails", i}})
			continue
		}
		if _, dup := seen[email]; dup {
			duplicated = true
		}
		seen[email] = struct{}{}
		user.Emails = append(user.Emails, email)
	}
	if duplicated {
		errs = append(errs, FieldError{Message: "All the emails must be unique", Path: []any{"emails"}})
	}
	return errs
}

func validateDOB(payload map[string]any, options validateOptions, user *User, errs []FieldError) []FieldError {
	raw, present := payload["dob"]
	if !present {
		if options.optional["dob"] {
			return errs
		}
		return append(errs, FieldError{Message: "Date of birth is required", Path: []any{"dob"}})
	}
	dob, ok := raw.(string)
	if !ok {
		return append(errs, FieldError{Message: "Date of birth is required", Path: []any{"dob"}})
	}
	if !dobPattern.MatchString(dob) {
		return append(errs, FieldError{Message: "dob must be in the format YYYY-MM-DD", Path: []any{"dob"}})
	}
	if _, err := time.Parse("2006-01-02", dob); err != nil {
		return append(errs, FieldError{Message: "dob must be in the format YYYY-MM-DD", Path: []any{"dob"}})
	}
	user.DOB = dob
	return errs
}
