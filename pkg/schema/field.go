package schema

import (
	"regexp"
	"slices"
	"unicode/utf8"
)

// DefaultRequiredMessage is reported when a required field is absent.
const DefaultRequiredMessage = "Required"

// emailPattern follows the address shape used across our form handlers:
// local part, a single @, and a dotted domain with an alphabetic TLD.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Constraint is a single-field rule applied after coercion.
type Constraint struct {
	Name    string
	Message string
	Check   func(value any) bool
}

// Field couples a Type with an ordered list of constraints.
// Constraints run in declaration order and the first failure wins.
type Field struct {
	typ         Type
	optional    bool
	required    string
	constraints []Constraint
}

// NewField creates a required field of the given type.
func NewField(t Type) *Field {
	return &Field{typ: t, required: DefaultRequiredMessage}
}

// Type returns the field's type.
func (f *Field) Type() Type { return f.typ }

// IsOptional reports whether the field may be absent.
func (f *Field) IsOptional() bool { return f.optional }

// Constraints returns a copy of the field's constraints.
func (f *Field) Constraints() []Constraint { return slices.Clone(f.constraints) }

// Optional marks the field as optional: absence is not an error.
func (f *Field) Optional() *Field {
	f.optional = true
	return f
}

// RequiredMessage overrides the message reported when the field is absent.
func (f *Field) RequiredMessage(msg string) *Field {
	f.required = msg
	return f
}

// Check appends a custom constraint.
func (f *Field) Check(name, msg string, fn func(any) bool) *Field {
	f.constraints = append(f.constraints, Constraint{Name: name, Message: msg, Check: fn})
	return f
}

// Min requires a string of at least n characters.
func (f *Field) Min(n int, msg string) *Field {
	return f.Check("min", msg, func(v any) bool {
		s, ok := v.(string)
		return ok && utf8.RuneCountInString(s) >= n
	})
}

// Matches requires a string matching re.
func (f *Field) Matches(re *regexp.Regexp, msg string) *Field {
	return f.Check("pattern", msg, func(v any) bool {
		s, ok := v.(string)
		return ok && re.MatchString(s)
	})
}

// Email requires a syntactically valid email address.
func (f *Field) Email(msg string) *Field {
	return f.Check("email", msg, func(v any) bool {
		s, ok := v.(string)
		return ok && IsEmail(s)
	})
}

// OneOf requires the value to be one of the given strings.
func (f *Field) OneOf(msg string, values ...string) *Field {
	allowed := slices.Clone(values)
	return f.Check("enum", msg, func(v any) bool {
		s, ok := v.(string)
		return ok && slices.Contains(allowed, s)
	})
}

// Equals requires the value to equal want.
func (f *Field) Equals(want any, msg string) *Field {
	return f.Check("literal", msg, func(v any) bool {
		return v == want
	})
}

// IsEmail reports whether s looks like an email address.
func IsEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// evaluate coerces raw and runs the constraints.
// The parsed value is returned even when a constraint fails so that
// cross-field rules can still inspect it.
func (f *Field) evaluate(key string, raw any) (value any, present bool, verr *ValidationError) {
	if raw == nil {
		if f.optional {
			return nil, false, nil
		}
		return nil, false, &ValidationError{Key: key, Reason: f.required, Kind: KindParse}
	}

	parsed, err := f.typ.Parse(raw)
	if err != nil {
		return nil, false, &ValidationError{Key: key, Reason: err.Error(), Kind: KindParse, Value: raw}
	}

	for _, c := range f.constraints {
		if !c.Check(parsed) {
			return parsed, true, &ValidationError{Key: key, Reason: c.Message, Kind: KindConstraint, Value: raw}
		}
	}
	return parsed, true, nil
}
