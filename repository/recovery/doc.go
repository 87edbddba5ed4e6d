// Package recovery provides decorators that turn one declared kind of
// failure into the wrapped operation's neutral outcome, under the control of
// a caller-supplied predicate.
//
// Every decorator is scoped to exactly one error kind, declared at
// construction as an error value and matched against the failure's wrapped
// chain with errors.Is. When a matching failure occurs the predicate is
// consulted exactly once, with the complete error value:
//
//   - predicate returns true: the operation reports its neutral outcome
//     instead of failing. Counts report zero, listings report no entities,
//     lookups report absence, Try operations report false, and operations
//     without a result complete normally.
//   - predicate returns false: the identical error value is handed to the
//     caller, untouched.
//
// Failures of any other kind pass through untouched and the predicate is
// not consulted. The decorators never retry; they only decide whether a
// failure is surfaced.
//
//	flaky, _ := recovery.NewQuery[string, Customer](
//		store,
//		repository.ErrQueryFailed,
//		func(err error) bool { return !criticalTable(err) },
//	)
package recovery
