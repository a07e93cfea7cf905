// Package validation provides custom validation rules for the application.
package validation

import (
	"regexp"
	"strings"
	"time"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/aether/internal/errors"
	passwordDomain "github.com/allisson/aether/internal/password/domain"
)

var (
	// base32Regex matches RFC 4648 base32 with optional trailing padding, either case.
	base32Regex = regexp.MustCompile(`^[A-Za-z2-7]+=*$`)

	// pinRegex matches a 6 to 8 digit one-time PIN.
	pinRegex = regexp.MustCompile(`^[0-9]{6,8}$`)
)

// WrapValidationError wraps validation errors as domain ErrInvalidArgument
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidArgument, err.Error())
}

// passwordPolicyRule adapts a PasswordRule to validation.Rule.
type passwordPolicyRule struct {
	rule  passwordDomain.PasswordRule
	clock func() time.Time
}

// PasswordPolicy validates a password against rule, reporting every violation in one error.
func PasswordPolicy(rule passwordDomain.PasswordRule) validation.Rule {
	return passwordPolicyRule{rule: rule, clock: time.Now}
}

// Validate checks the password against the configured rule
func (p passwordPolicyRule) Validate(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_password_policy_type", "password must be a string")
	}
	if s == "" {
		return nil // Let Required handle empty strings
	}

	violations := p.rule.Validate(s, p.clock())
	if len(violations) == 0 {
		return nil
	}

	messages := make([]string, 0, len(violations))
	for _, v := range violations {
		messages = append(messages, v.Message)
	}
	return validation.NewError("validation_password_"+violations[0].Code, strings.Join(messages, "; "))
}

// Base32Secret validates that a string is a base32-encoded TOTP secret.
var Base32Secret = validation.NewStringRuleWithError(
	func(s string) bool {
		return base32Regex.MatchString(s)
	},
	validation.NewError("validation_base32", "must be valid base32-encoded data"),
)

// Pin validates a numeric one-time PIN.
var Pin = validation.NewStringRuleWithError(
	func(s string) bool {
		return pinRegex.MatchString(s)
	},
	validation.NewError("validation_pin", "must be 6 to 8 digits"),
)

// NoWhitespace validates that string doesn't contain leading/trailing whitespace
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)
