package domain

import (
	"encoding/json"
	"fmt"
	"time"
	"unicode"
	"unicode/utf8"

	validation "github.com/jellydator/validation"
)

// CharClass names a character class constrained by a password rule.
type CharClass string

const (
	Lowercase CharClass = "lowercase"
	Uppercase CharClass = "uppercase"
	Numbers   CharClass = "numbers"
	Specials  CharClass = "specials"
)

// Violation codes reported by PasswordRule.Validate.
const (
	ViolationTooShort    = "too_short"
	ViolationRuleExpired = "rule_expired"
)

// NotAllowedCode returns the violation code for a disallowed class, e.g. "specials_not_allowed".
func NotAllowedCode(class CharClass) string {
	return string(class) + "_not_allowed"
}

// NotEnoughCode returns the violation code for a missing minimum, e.g. "not_enough_numbers".
func NotEnoughCode(class CharClass) string {
	return "not_enough_" + string(class)
}

// Violation is one reason a password fails a rule.
type Violation struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CharClassRule constrains one character class.
type CharClassRule struct {
	Allowed  bool `json:"allowed"`
	MinCount int  `json:"min_count"`
}

// Validate implements validation.Validatable.
func (c CharClassRule) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.MinCount,
			validation.Min(0),
			validation.When(!c.Allowed, validation.Empty.Error("must be zero when the class is not allowed")),
		),
	)
}

// PasswordRuleData is the serializable form of a password rule.
type PasswordRuleData struct {
	Lowercase      CharClassRule `json:"lowercase"`
	Uppercase      CharClassRule `json:"uppercase"`
	Numbers        CharClassRule `json:"numbers"`
	Specials       CharClassRule `json:"specials"`
	MinimumLength  int           `json:"minimum_length"`
	ExpirationDate *time.Time    `json:"expiration_date,omitempty"`
}

// Validate implements validation.Validatable.
func (d PasswordRuleData) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.Lowercase),
		validation.Field(&d.Uppercase),
		validation.Field(&d.Numbers),
		validation.Field(&d.Specials),
		validation.Field(&d.MinimumLength, validation.Min(0)),
	)
}

// PasswordRule is an immutable, validated password policy. Build one with RuleBuilder or ParseRule.
type PasswordRule struct {
	data PasswordRuleData
}

// NewPasswordRule validates data and wraps it in a PasswordRule.
func NewPasswordRule(data PasswordRuleData) (PasswordRule, error) {
	if err := data.Validate(); err != nil {
		return PasswordRule{}, fmt.Errorf("%w: %v", ErrInvalidRule, err)
	}
	if data.ExpirationDate != nil {
		t := data.ExpirationDate.UTC()
		data.ExpirationDate = &t
	}
	return PasswordRule{data: data}, nil
}

// DefaultPasswordRule allows only letters and requires nothing else.
func DefaultPasswordRule() PasswordRule {
	rule, _ := NewRuleBuilder().Build()
	return rule
}

// ParseRule decodes rule JSON. Malformed JSON yields ErrMalformedRule, invalid values ErrInvalidRule.
func ParseRule(data []byte) (PasswordRule, error) {
	var ruleData PasswordRuleData
	if err := json.Unmarshal(data, &ruleData); err != nil {
		return PasswordRule{}, fmt.Errorf("%w: %v", ErrMalformedRule, err)
	}
	return NewPasswordRule(ruleData)
}

// Data returns a copy of the rule definition.
func (r PasswordRule) Data() PasswordRuleData {
	data := r.data
	if data.ExpirationDate != nil {
		t := *data.ExpirationDate
		data.ExpirationDate = &t
	}
	return data
}

// MarshalJSON implements json.Marshaler.
func (r PasswordRule) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.data)
}

// UnmarshalJSON implements json.Unmarshaler with the same checks as ParseRule.
func (r *PasswordRule) UnmarshalJSON(data []byte) error {
	rule, err := ParseRule(data)
	if err != nil {
		return err
	}
	*r = rule
	return nil
}

// Validate evaluates password against the rule at time now and returns every violation.
// An empty result means the password is acceptable.
func (r PasswordRule) Validate(password string, now time.Time) []Violation {
	var violations []Violation

	if r.data.ExpirationDate != nil && now.After(*r.data.ExpirationDate) {
		violations = append(violations, Violation{
			Code:    ViolationRuleExpired,
			Message: "password rule expired at " + r.data.ExpirationDate.Format(time.RFC3339),
		})
	}

	if length := utf8.RuneCountInString(password); length < r.data.MinimumLength {
		violations = append(violations, Violation{
			Code:    ViolationTooShort,
			Message: fmt.Sprintf("must be at least %d characters, got %d", r.data.MinimumLength, length),
		})
	}

	counts := countClasses(password)
	for _, c := range []struct {
		class CharClass
		rule  CharClassRule
	}{
		{Lowercase, r.data.Lowercase},
		{Uppercase, r.data.Uppercase},
		{Numbers, r.data.Numbers},
		{Specials, r.data.Specials},
	} {
		count := counts[c.class]
		if !c.rule.Allowed && count > 0 {
			violations = append(violations, Violation{
				Code:    NotAllowedCode(c.class),
				Message: fmt.Sprintf("%s characters are not allowed", c.class),
			})
			continue
		}
		if count < c.rule.MinCount {
			violations = append(violations, Violation{
				Code:    NotEnoughCode(c.class),
				Message: fmt.Sprintf("must contain at least %d %s characters, got %d", c.rule.MinCount, c.class, count),
			})
		}
	}

	return violations
}

// countClasses buckets runes by class. Runes in no class (spaces, caseless letters) are ignored.
func countClasses(s string) map[CharClass]int {
	counts := make(map[CharClass]int, 4)
	for _, r := range s {
		switch {
		case unicode.IsLower(r):
			counts[Lowercase]++
		case unicode.IsUpper(r):
			counts[Uppercase]++
		case unicode.IsNumber(r):
			counts[Numbers]++
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			counts[Specials]++
		}
	}
	return counts
}
