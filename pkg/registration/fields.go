package registration

import "github.com/aretw0/onboard/pkg/domain"

// Field names as supplied by the presentation layer.
const (
	FieldName            = "name"
	FieldEmail           = "email"
	FieldDateOfBirth     = "dateOfBirth"
	FieldAccountType     = "accountType"
	FieldRiskTolerance   = "riskTolerance"
	FieldPANNumber       = "panNumber"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
	FieldTermsAccepted   = "termsAccepted"
)

// Account types.
const (
	AccountDemo = "Demo"
	AccountLive = "Live"
)

// Risk tolerance levels.
const (
	RiskLow    = "Low"
	RiskMedium = "Medium"
	RiskHigh   = "High"
)

// Stage indexes.
const (
	StageIdentity    = 1
	StageAccount     = 2
	StageCredentials = 3
)

// Stages returns the ordered stage definitions of the form.
func Stages() []domain.Stage {
	return []domain.Stage{
		{
			Index:  StageIdentity,
			Name:   "identity",
			Title:  "About you",
			Fields: []string{FieldName, FieldEmail, FieldDateOfBirth},
		},
		{
			Index:  StageAccount,
			Name:   "account",
			Title:  "Account",
			Fields: []string{FieldAccountType, FieldRiskTolerance, FieldPANNumber},
		},
		{
			Index:  StageCredentials,
			Name:   "credentials",
			Title:  "Credentials",
			Fields: []string{FieldPassword, FieldConfirmPassword, FieldTermsAccepted},
		},
	}
}

// Choices returns the accepted values of an enumerated field, or nil.
func Choices(field string) []string {
	switch field {
	case FieldAccountType:
		return []string{AccountDemo, AccountLive}
	case FieldRiskTolerance:
		return []string{RiskLow, RiskMedium, RiskHigh}
	}
	return nil
}

// Sensitive reports whether a field holds a secret that must not be echoed.
func Sensitive(field string) bool {
	return field == FieldPassword || field == FieldConfirmPassword
}
