package domain

import "strings"

// Verdict is the normalized judgment for one obligation.
type Verdict string

// Possible verdicts.
const (
	// VerdictYes means the contract satisfies the obligation.
	VerdictYes Verdict = "Yes"

	// VerdictNo means the contract does not satisfy the obligation.
	VerdictNo Verdict = "No"

	// VerdictUnparseable means the model response could not be mapped
	// to Yes or No. Downgraded to No at the reporting boundary.
	VerdictUnparseable Verdict = "Unparseable"
)

// IsValid returns true if the verdict is recognised.
func (v Verdict) IsValid() bool {
	switch v {
	case VerdictYes, VerdictNo, VerdictUnparseable:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (v Verdict) String() string {
	return string(v)
}

// Reported returns the verdict as it appears in results.
// Unparseable collapses to No; ambiguity never reports compliance.
func (v Verdict) Reported() string {
	if v == VerdictYes {
		return VerdictYes.String()
	}
	return VerdictNo.String()
}

// ParseVerdict normalizes a raw is_present value from a model response.
// After trimming whitespace, the value must equal "yes" or "no"
// case-insensitively; anything else, including "Yes." or "yes,
// partially", is Unparseable. Hedged output must never pass as a
// verdict.
func ParseVerdict(raw string) Verdict {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "yes":
		return VerdictYes
	case "no":
		return VerdictNo
	default:
		return VerdictUnparseable
	}
}
