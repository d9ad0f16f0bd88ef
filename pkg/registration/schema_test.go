package registration_test

import (
	"testing"
	"time"

	"github.com/aretw0/onboard/pkg/registration"
	"github.com/aretw0/onboard/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newSchema() *schema.Schema {
	return registration.NewSchema(registration.WithClock(func() time.Time { return fixedNow }))
}

func validRecord() map[string]any {
	return map[string]any{
		"name":            "Jane Doe",
		"email":           "jane@example.com",
		"dateOfBirth":     "1990-03-10",
		"accountType":     "Demo",
		"riskTolerance":   "Medium",
		"panNumber":       "",
		"password":        "Abcdef1!",
		"confirmPassword": "Abcdef1!",
		"termsAccepted":   true,
	}
}

func TestValidateRecord_Valid(t *testing.T) {
	v := newSchema().Validate(validRecord())
	require.True(t, v.Valid, "errors: %v", v.Errors)
	assert.Empty(t, v.Errors)
	assert.Equal(t, time.Date(1990, 3, 10, 0, 0, 0, 0, time.UTC), v.Record["dateOfBirth"])
	assert.Equal(t, true, v.Record["termsAccepted"])
}

func TestValidateRecord_SingleViolation(t *testing.T) {
	tests := []struct {
		name      string
		field     string
		value     any
		wantField string
		wantMsg   string
	}{
		{"short name", "name", "Jo", "name", registration.MsgNameTooShort},
		{"bad email", "email", "jane@", "email", registration.MsgInvalidEmail},
		{"unparseable date", "dateOfBirth", "yesterday", "dateOfBirth", registration.MsgInvalidDate},
		{"underage", "dateOfBirth", "2010-01-01", "dateOfBirth", registration.MsgUnderage},
		{"unknown account type", "accountType", "Gold", "accountType", registration.MsgAccountType},
		{"unknown risk", "riskTolerance", "Extreme", "riskTolerance", registration.MsgRiskTolerance},
		{"short password", "password", "Ab1!", "password", registration.MsgPasswordLength},
		{"no symbol", "password", "Abcdefg1", "password", registration.MsgPasswordClasses},
		{"no digit", "password", "Abcdefg!", "password", registration.MsgPasswordClasses},
		{"no upper", "password", "abcdef1!", "password", registration.MsgPasswordClasses},
		{"no lower", "password", "ABCDEF1!", "password", registration.MsgPasswordClasses},
		{"mismatch", "confirmPassword", "Abcdef1", "confirmPassword", registration.MsgPasswordMismatch},
		{"terms rejected", "termsAccepted", false, "termsAccepted", registration.MsgTerms},
		{"live without pan", "accountType", "Live", "panNumber", registration.MsgPANNumber},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := validRecord()
			rec[tt.field] = tt.value
			// Changing password alone would also break the confirmation.
			if tt.field == "password" {
				rec["confirmPassword"] = tt.value
			}

			v := newSchema().Validate(rec)
			require.False(t, v.Valid)
			assert.Equal(t, map[string]string{tt.wantField: tt.wantMsg}, v.Errors)
		})
	}
}

func TestValidateRecord_ErrorKinds(t *testing.T) {
	rec := validRecord()
	rec["dateOfBirth"] = "not-a-date"
	rec["name"] = "Al"
	rec["confirmPassword"] = "different"

	v := newSchema().Validate(rec)
	kinds := map[string]schema.ErrorKind{}
	for _, issue := range v.Issues {
		kinds[issue.Key] = issue.Kind
	}
	assert.Equal(t, schema.KindParse, kinds["dateOfBirth"])
	assert.Equal(t, schema.KindConstraint, kinds["name"])
	assert.Equal(t, schema.KindCrossField, kinds["confirmPassword"])
}

func TestValidateRecord_DateErrorsAreDistinct(t *testing.T) {
	s := newSchema()

	parseErr := s.ValidateField("dateOfBirth", "31/12/2000", nil)
	ageErr := s.ValidateField("dateOfBirth", "2010-01-01", nil)

	require.Error(t, parseErr)
	require.Error(t, ageErr)
	assert.Contains(t, parseErr.Error(), registration.MsgInvalidDate)
	assert.Contains(t, ageErr.Error(), registration.MsgUnderage)
}

func TestValidateRecord_Idempotent(t *testing.T) {
	s := newSchema()
	rec := validRecord()
	rec["name"] = ""
	rec["accountType"] = "Live"

	first := s.Validate(rec)
	second := s.Validate(rec)
	assert.Equal(t, first.Valid, second.Valid)
	assert.Equal(t, first.Errors, second.Errors)
}

func TestValidateRecord_EmptyInput(t *testing.T) {
	v := newSchema().Validate(map[string]any{})
	require.False(t, v.Valid)

	for _, f := range []string{"name", "email", "dateOfBirth", "accountType", "riskTolerance", "password", "confirmPassword"} {
		assert.Equal(t, schema.DefaultRequiredMessage, v.Errors[f], f)
	}
	assert.Equal(t, registration.MsgTerms, v.Errors["termsAccepted"])
	_, hasPAN := v.Errors["panNumber"]
	assert.False(t, hasPAN, "pan rule should be skipped when accountType is missing")
}

// The PAN number is only checked for Live accounts.
func TestPANRule(t *testing.T) {
	tests := []struct {
		name        string
		accountType string
		pan         any
		wantErr     bool
	}{
		{"demo with empty pan", "Demo", "", false},
		{"demo without pan", "Demo", nil, false},
		{"demo with junk pan", "Demo", "??", false},
		{"live with valid pan", "Live", "AB12CD34EF", false},
		{"live with lowercase pan", "Live", "ab12cd34ef", false},
		{"live with short pan", "Live", "AB12", true},
		{"live with long pan", "Live", "AB12CD34EF5", true},
		{"live with symbol", "Live", "AB12CD34E!", true},
		{"live with empty pan", "Live", "", true},
		{"live without pan", "Live", nil, true},
	}

	s := newSchema()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := validRecord()
			rec["accountType"] = tt.accountType
			if tt.pan == nil {
				delete(rec, "panNumber")
			} else {
				rec["panNumber"] = tt.pan
			}

			v := s.ValidateFields(rec, "accountType", "riskTolerance", "panNumber")
			if tt.wantErr {
				assert.Equal(t, map[string]string{"panNumber": registration.MsgPANNumber}, v.Errors)
			} else {
				assert.True(t, v.Valid, "errors: %v", v.Errors)
			}
		})
	}
}

// The confirmation must match the password exactly.
func TestPasswordRules(t *testing.T) {
	s := newSchema()

	rec := validRecord()
	v := s.ValidateFields(rec, "password", "confirmPassword", "termsAccepted")
	assert.True(t, v.Valid, "errors: %v", v.Errors)

	rec["confirmPassword"] = "Abcdef1"
	v = s.ValidateFields(rec, "password", "confirmPassword", "termsAccepted")
	assert.Equal(t, map[string]string{"confirmPassword": registration.MsgPasswordMismatch}, v.Errors)
}

func TestValidateSubset_Stage1IgnoresOtherFields(t *testing.T) {
	rec := validRecord()
	rec["password"] = "x"
	rec["accountType"] = "Live"
	rec["termsAccepted"] = false

	stage1 := registration.Stages()[0].Fields
	v := newSchema().ValidateFields(rec, stage1...)
	assert.True(t, v.Valid, "errors: %v", v.Errors)

	rec["name"] = "Al"
	v = newSchema().ValidateFields(rec, stage1...)
	for _, f := range v.FailedFields() {
		assert.Contains(t, stage1, f)
	}
}

func TestValidateField_ConfirmWithContext(t *testing.T) {
	s := newSchema()
	rec := validRecord()

	assert.NoError(t, s.ValidateField("confirmPassword", "Abcdef1!", rec))
	assert.Error(t, s.ValidateField("confirmPassword", "Abcdef1", rec))

	rec["accountType"] = "Live"
	assert.Error(t, s.ValidateField("panNumber", "AB12", rec))
	assert.NoError(t, s.ValidateField("panNumber", "AB12CD34EF", rec))
}

func TestTermsCoercion(t *testing.T) {
	s := newSchema()
	assert.NoError(t, s.ValidateField("termsAccepted", "on", nil))
	assert.NoError(t, s.ValidateField("termsAccepted", true, nil))
	assert.Error(t, s.ValidateField("termsAccepted", "off", nil))
	assert.Error(t, s.ValidateField("termsAccepted", nil, nil))
}
