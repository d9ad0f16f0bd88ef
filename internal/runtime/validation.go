package runtime

import (
	"context"
	"errors"

	"github.com/aretw0/onboard/pkg/domain"
	"github.com/aretw0/onboard/pkg/schema"
)

// ValidateField checks a single edit, with the rest of the record as context
// for cross-field rules. It is the per-keystroke check of a live form.
func (c *Controller) ValidateField(ctx context.Context, name string, raw any, record map[string]any) error {
	err := c.validator.ValidateField(name, raw, record)

	verdict := schema.Verdict{Valid: err == nil}
	if err != nil {
		verdict.Errors = map[string]string{name: reason(err)}
	}
	c.emitValidation(ctx, nil, domain.ScopeField, 0, verdict)
	return err
}

// ValidateSubset checks the named fields without touching any session.
func (c *Controller) ValidateSubset(ctx context.Context, record map[string]any, fields ...string) schema.Verdict {
	verdict := c.validator.ValidateFields(record, fields...)
	c.emitValidation(ctx, nil, domain.ScopeStage, 0, verdict)
	return verdict
}

// ValidateRecord checks the whole record without touching any session.
func (c *Controller) ValidateRecord(ctx context.Context, record map[string]any) schema.Verdict {
	verdict := c.validator.Validate(record)
	c.emitValidation(ctx, nil, domain.ScopeRecord, 0, verdict)
	return verdict
}

func reason(err error) string {
	var verr *schema.ValidationError
	if errors.As(err, &verr) {
		return verr.Reason
	}
	return err.Error()
}
