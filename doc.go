/*
Package onboard validates staged registration forms.

A registration is collected over three stages (identity, account, credentials).
The Engine refuses to advance past a stage whose fields are invalid, lets the
user go back freely, and on submission re-validates the whole record before
handing it to a SubmissionHandler.

The Engine holds no session state. Callers keep the domain.State and pass it
to every call; each call returns a new State. Hosts that serve many sessions
wrap a ports.StateStore with session.Manager.

# Usage

	eng, err := onboard.New()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	state, _ := eng.Start(ctx, "session-123", nil)

	state, _ = eng.Update(ctx, state, map[string]any{
		"name":        "Jane Doe",
		"email":       "jane@example.com",
		"dateOfBirth": "1990-03-10",
	})

	state, verdict, err := eng.Advance(ctx, state)
	if err != nil {
		log.Fatal(err)
	}
	if !verdict.Valid {
		// show verdict.Errors next to the inputs
	}

Validation results are values, not errors: a Verdict is either valid with a
normalized record, or invalid with one message per field. Go errors are
reserved for misuse and infrastructure failures (see the sentinels in
package domain).
*/
package onboard
