package registration_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/aretw0/onboard/pkg/registration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	v := newSchema().Validate(validRecord())
	require.True(t, v.Valid, "errors: %v", v.Errors)

	rec, err := registration.Decode(v.Record)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", rec.Name)
	assert.Equal(t, "jane@example.com", rec.Email)
	assert.Equal(t, time.Date(1990, 3, 10, 0, 0, 0, 0, time.UTC), rec.DateOfBirth)
	assert.Equal(t, "Demo", rec.AccountType)
	assert.Equal(t, "Medium", rec.RiskTolerance)
	assert.Equal(t, "Abcdef1!", rec.Password)
	assert.True(t, rec.TermsAccepted)
	assert.Equal(t, 34, rec.Age(fixedNow))
}

func TestDecode_DateString(t *testing.T) {
	rec, err := registration.Decode(map[string]any{"dateOfBirth": "2001-02-03"})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2001, 2, 3, 0, 0, 0, 0, time.UTC), rec.DateOfBirth)
}

func TestRecord_JSONOmitsPassword(t *testing.T) {
	rec := registration.Record{Name: "Jane", Password: "Abcdef1!"}
	data, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "Abcdef1!")
}

func TestStages(t *testing.T) {
	stages := registration.Stages()
	require.Len(t, stages, 3)

	s := newSchema()
	seen := map[string]bool{}
	for i, st := range stages {
		assert.Equal(t, i+1, st.Index)
		for _, f := range st.Fields {
			_, ok := s.Lookup(f)
			assert.True(t, ok, "stage field %q missing from schema", f)
			assert.False(t, seen[f], "field %q in more than one stage", f)
			seen[f] = true
		}
	}
	assert.Len(t, seen, len(s.Fields()))
}
