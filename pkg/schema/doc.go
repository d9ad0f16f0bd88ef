// Package schema provides a declarative validation system for form records.
//
// A Schema maps field names to Fields. A Field pairs a Type, which coerces a
// raw value (for example a "YYYY-MM-DD" string into a time.Time), with an
// ordered list of constraints. Cross-field rules are registered with Refine
// and are attributed to a single field for display.
//
// Basic usage:
//
//	s := schema.New().
//	    Field("name", schema.NewField(schema.String()).Min(3, "Too short")).
//	    Field("password", schema.NewField(schema.String()).Min(8, "Too short")).
//	    Field("confirm", schema.NewField(schema.String())).
//	    Refine(schema.Rule{
//	        Name:      "password_match",
//	        Path:      "confirm",
//	        DependsOn: []string{"password", "confirm"},
//	        Message:   "Passwords must match",
//	        Check: func(v map[string]any) bool {
//	            return v["password"] == v["confirm"]
//	        },
//	    })
//
//	verdict := s.Validate(map[string]any{"name": "Al"})
//	if !verdict.Valid {
//	    // verdict.Errors["name"] == "Too short"
//	}
//
// Validation never stops at the first failure: every field is checked and
// every applicable rule runs, so a caller can display all problems at once.
// ValidateFields restricts the run to a subset of fields; rules whose
// dependencies fall outside the subset are skipped.
//
// The package has no dependencies beyond the Go standard library.
package schema
