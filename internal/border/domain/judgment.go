package domain

// Judgment represents the outcome of evaluating one rule (or the whole
// pipeline) against an entrant's papers. Pure value type, no external
// dependencies.
//
// The zero value is the allow outcome. Detain and Deny are never both set by
// any rule in this package's consumers; evaluation order decides precedence
// when a rule could signal either.
type Judgment struct {
	Detain bool   // true when the entrant must be detained
	Deny   bool   // true when entry must be refused
	Reason string // human-readable reason for a non-allow outcome
}

// Allow returns the allow judgment.
func Allow() Judgment { return Judgment{} }

// Detainment returns a detain judgment with the given reason.
func Detainment(reason string) Judgment { return Judgment{Detain: true, Reason: reason} }

// Denial returns a deny judgment with the given reason.
func Denial(reason string) Judgment { return Judgment{Deny: true, Reason: reason} }

// IsAllow reports whether the judgment permits entry.
func (j Judgment) IsAllow() bool { return !j.Detain && !j.Deny }
