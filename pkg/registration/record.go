package registration

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
)

// Record is the normalized registration handed to the submission handler.
type Record struct {
	Name          string    `json:"name" mapstructure:"name"`
	Email         string    `json:"email" mapstructure:"email"`
	DateOfBirth   time.Time `json:"dateOfBirth" mapstructure:"dateOfBirth"`
	AccountType   string    `json:"accountType" mapstructure:"accountType"`
	RiskTolerance string    `json:"riskTolerance" mapstructure:"riskTolerance"`
	PANNumber     string    `json:"panNumber,omitempty" mapstructure:"panNumber"`
	Password      string    `json:"-" mapstructure:"password"`
	TermsAccepted bool      `json:"termsAccepted" mapstructure:"termsAccepted"`
}

// Decode converts a verdict's normalized values into a Record.
// Keys that are not part of the Record (confirmPassword) are dropped.
func Decode(values map[string]any) (*Record, error) {
	var rec Record
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:     &rec,
		DecodeHook: mapstructure.StringToTimeHookFunc(time.DateOnly),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build record decoder: %w", err)
	}
	if err := dec.Decode(values); err != nil {
		return nil, fmt.Errorf("failed to decode record: %w", err)
	}
	return &rec, nil
}

// Age returns the holder's age at now.
func (r *Record) Age(now time.Time) int {
	return Age(r.DateOfBirth, now)
}
