// Package validation checks form input against per-field rules and produces
// one message per invalid field.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Kind identifies a rule variant.
type Kind int

const (
	KindRequired Kind = iota
	KindEmail
	KindMinLength
	KindMatch
)

func (k Kind) String() string {
	switch k {
	case KindRequired:
		return "required"
	case KindEmail:
		return "email"
	case KindMinLength:
		return "minLength"
	case KindMatch:
		return "match"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// precedence is the evaluation order. The first failing rule of a field
// decides its message; later rules are not evaluated.
var precedence = []Kind{KindRequired, KindEmail, KindMinLength, KindMatch}

// Rule is one constraint on a field. Min is used by MinLength, Field by
// Matches.
type Rule struct {
	Kind  Kind
	Min   int
	Field string
}

func Required() Rule            { return Rule{Kind: KindRequired} }
func Email() Rule               { return Rule{Kind: KindEmail} }
func MinLength(n int) Rule      { return Rule{Kind: KindMinLength, Min: n} }
func Matches(field string) Rule { return Rule{Kind: KindMatch, Field: field} }

// Rules maps a field name to its constraints. Order within the slice does not
// matter.
type Rules map[string][]Rule

// Messages maps a field name to per-rule error messages.
type Messages map[string]map[Kind]string

// Errors maps a field name to its error message.
type Errors map[string]string

// Result is the outcome of one validation pass.
type Result struct {
	Valid  bool
	Errors Errors
}

var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

// IsValidEmail applies the permissive local@domain.tld check.
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// check reports whether value satisfies rule.
func check(rule Rule, value string, values map[string]string) bool {
	switch rule.Kind {
	case KindRequired:
		return strings.TrimSpace(value) != ""
	case KindEmail:
		return value == "" || IsValidEmail(value)
	case KindMinLength:
		return value == "" || rule.Min <= 0 || utf8.RuneCountInString(value) >= rule.Min
	case KindMatch:
		other, ok := values[rule.Field]
		return ok && other == value
	default:
		panic(fmt.Sprintf("validation: unhandled rule kind %v", rule.Kind))
	}
}

func defaultMessage(rule Rule) string {
	switch rule.Kind {
	case KindRequired:
		return "This field is required"
	case KindEmail:
		return "Invalid email format"
	case KindMinLength:
		return fmt.Sprintf("Minimum length is %d", rule.Min)
	case KindMatch:
		return "Fields do not match"
	default:
		return "Invalid value"
	}
}

func message(messages Messages, field string, rule Rule) string {
	if m, ok := messages[field][rule.Kind]; ok && m != "" {
		return m
	}
	return defaultMessage(rule)
}

// firstViolation walks the field's rules in precedence order.
func firstViolation(rules []Rule, value string, values map[string]string) (Rule, bool) {
	for _, kind := range precedence {
		for _, r := range rules {
			if r.Kind == kind && !check(r, value, values) {
				return r, true
			}
		}
	}
	return Rule{}, false
}

// Validate checks every field in values that has rules. Fields without rules
// are never reported.
func Validate(values map[string]string, rules Rules, messages Messages) Result {
	errs := make(Errors)
	for field, value := range values {
		fieldRules, ok := rules[field]
		if !ok {
			continue
		}
		if r, failed := firstViolation(fieldRules, value, values); failed {
			errs[field] = message(messages, field, r)
		}
	}
	return Result{Valid: len(errs) == 0, Errors: errs}
}
