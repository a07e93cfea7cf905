package domain

import (
	"fmt"
	"time"
)

// RuleBuilder assembles a PasswordRule fluently:
//
//	rule, err := NewRuleBuilder().
//		AllowSpecials(true).
//		AllowNumbers(true).
//		MinimumLength(12).
//		Build()
//
// Lowercase and uppercase letters are allowed by default; numbers and specials are not.
// Invalid values are reported by Build.
type RuleBuilder struct {
	data PasswordRuleData
	errs []error
}

// NewRuleBuilder starts a rule with the default class permissions.
func NewRuleBuilder() *RuleBuilder {
	return &RuleBuilder{
		data: PasswordRuleData{
			Lowercase: CharClassRule{Allowed: true},
			Uppercase: CharClassRule{Allowed: true},
		},
	}
}

func (b *RuleBuilder) AllowSpecials(allowed bool) *RuleBuilder {
	b.data.Specials.Allowed = allowed
	return b
}

func (b *RuleBuilder) AllowNumbers(allowed bool) *RuleBuilder {
	b.data.Numbers.Allowed = allowed
	return b
}

func (b *RuleBuilder) AllowLowercase(allowed bool) *RuleBuilder {
	b.data.Lowercase.Allowed = allowed
	return b
}

func (b *RuleBuilder) AllowUppercase(allowed bool) *RuleBuilder {
	b.data.Uppercase.Allowed = allowed
	return b
}

func (b *RuleBuilder) MinSpecials(n int) *RuleBuilder {
	b.data.Specials.MinCount = b.count("specials", n)
	return b
}

func (b *RuleBuilder) MinNumbers(n int) *RuleBuilder {
	b.data.Numbers.MinCount = b.count("numbers", n)
	return b
}

func (b *RuleBuilder) MinUppercase(n int) *RuleBuilder {
	b.data.Uppercase.MinCount = b.count("uppercase", n)
	return b
}

func (b *RuleBuilder) MinLowercase(n int) *RuleBuilder {
	b.data.Lowercase.MinCount = b.count("lowercase", n)
	return b
}

func (b *RuleBuilder) MinimumLength(n int) *RuleBuilder {
	b.data.MinimumLength = b.count("minimum length", n)
	return b
}

// ExpiresAt sets the instant after which every password fails the rule.
func (b *RuleBuilder) ExpiresAt(t time.Time) *RuleBuilder {
	t = t.UTC()
	b.data.ExpirationDate = &t
	return b
}

// Build validates the accumulated settings.
func (b *RuleBuilder) Build() (PasswordRule, error) {
	if len(b.errs) > 0 {
		return PasswordRule{}, b.errs[0]
	}
	return NewPasswordRule(b.data)
}

func (b *RuleBuilder) count(name string, n int) int {
	if n < 0 {
		b.errs = append(b.errs, fmt.Errorf("%w: %s cannot be negative, got %d", ErrInvalidRule, name, n))
		return 0
	}
	return n
}
