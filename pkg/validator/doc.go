// Package validator provides declarative input checks that produce tagged,
// machine-readable results.
//
// Each Rule pairs a check with the ValidationError it yields on failure. The
// error names the offending field and the rule that was violated (RuleRequired,
// RuleTooShort, RuleInvalidFormat, ...), so callers never inspect message text
// to decide what went wrong; the transport layer picks the human wording.
//
//	err := validator.Apply(
//		validator.ValidEmail("email", req.Email),
//		validator.MinLen("password", req.Password, 6),
//	)
//	if errs := validator.ExtractValidationErrors(err); errs.Has("password") {
//		// errs.GetErrors("password")[0].Rule == validator.RuleTooShort
//	}
package validator
