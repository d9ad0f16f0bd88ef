package registration

import (
	"regexp"
	"time"

	"github.com/aretw0/onboard/pkg/schema"
)

// Messages shown to the user.
const (
	MsgNameTooShort     = "Name must be at least 3 characters"
	MsgInvalidEmail     = "Invalid email"
	MsgInvalidDate      = "Invalid date"
	MsgUnderage         = "You must be at least 18 years old"
	MsgAccountType      = "Select an account type"
	MsgRiskTolerance    = "Select a risk tolerance"
	MsgPANNumber        = "PAN number must be exactly 10 alphanumeric characters"
	MsgPasswordLength   = "Password must have at least 8 characters"
	MsgPasswordClasses  = "Password must include upper, lower, number, and special character"
	MsgPasswordMismatch = "Passwords must match"
	MsgTerms            = "You must accept the terms"
)

// Rule names.
const (
	RulePANRequired   = "pan_required_for_live"
	RulePasswordMatch = "password_match"
)

var panPattern = regexp.MustCompile(`^[A-Za-z0-9]{10}$`)

// Option configures the schema.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock sets the time source used for the age check.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// NewSchema builds the registration schema.
func NewSchema(opts ...Option) *schema.Schema {
	o := &options{now: time.Now}
	for _, opt := range opts {
		opt(o)
	}

	return schema.New().
		Field(FieldName, schema.NewField(schema.String()).
			Min(3, MsgNameTooShort)).
		Field(FieldEmail, schema.NewField(schema.String()).
			Email(MsgInvalidEmail)).
		Field(FieldDateOfBirth, schema.NewField(schema.Date(MsgInvalidDate)).
			Check("minimum_age", MsgUnderage, func(v any) bool {
				dob, ok := v.(time.Time)
				return ok && MeetsMinimumAge(dob, o.now())
			})).
		Field(FieldAccountType, schema.NewField(schema.String()).
			OneOf(MsgAccountType, AccountDemo, AccountLive)).
		Field(FieldRiskTolerance, schema.NewField(schema.String()).
			OneOf(MsgRiskTolerance, RiskLow, RiskMedium, RiskHigh)).
		Field(FieldPANNumber, schema.NewField(schema.String()).
			Optional()).
		Field(FieldPassword, schema.NewField(schema.String()).
			Min(MinPasswordLength, MsgPasswordLength).
			Check("complexity", MsgPasswordClasses, func(v any) bool {
				s, ok := v.(string)
				return ok && ClassifyPassword(s).Complete()
			})).
		Field(FieldConfirmPassword, schema.NewField(schema.String())).
		Field(FieldTermsAccepted, schema.NewField(schema.Bool()).
			RequiredMessage(MsgTerms).
			Equals(true, MsgTerms)).
		Refine(PANRule()).
		Refine(PasswordMatchRule())
}

// PANRule requires a 10-character alphanumeric panNumber for Live accounts.
func PANRule() schema.Rule {
	return schema.Rule{
		Name:      RulePANRequired,
		Path:      FieldPANNumber,
		DependsOn: []string{FieldAccountType, FieldPANNumber},
		Message:   MsgPANNumber,
		Check: func(v map[string]any) bool {
			if v[FieldAccountType] != AccountLive {
				return true
			}
			pan, _ := v[FieldPANNumber].(string)
			return panPattern.MatchString(pan)
		},
	}
}

// PasswordMatchRule requires confirmPassword to equal password.
func PasswordMatchRule() schema.Rule {
	return schema.Rule{
		Name:      RulePasswordMatch,
		Path:      FieldConfirmPassword,
		DependsOn: []string{FieldPassword, FieldConfirmPassword},
		Message:   MsgPasswordMismatch,
		Check: func(v map[string]any) bool {
			p, ok := v[FieldPassword].(string)
			if !ok {
				return false
			}
			c, ok := v[FieldConfirmPassword].(string)
			return ok && p == c
		},
	}
}
