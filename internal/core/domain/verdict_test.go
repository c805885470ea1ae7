package domain

import "testing"

func TestParseVerdict(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Verdict
	}{
		{"plain yes", "Yes", VerdictYes},
		{"plain no", "No", VerdictNo},
		{"lowercase", "yes", VerdictYes},
		{"uppercase", "NO", VerdictNo},
		{"leading whitespace", "  no", VerdictNo},
		{"surrounding whitespace", " Yes \n", VerdictYes},
		{"trailing punctuation", "Yes.", VerdictUnparseable},
		{"hedged yes", "yes, partially", VerdictUnparseable},
		{"prose after token", "Yes indeed", VerdictUnparseable},
		{"prose after no", "No - the clause is absent", VerdictUnparseable},
		{"empty", "", VerdictUnparseable},
		{"unrelated text", "maybe", VerdictUnparseable},
		{"embedded token", "I think yes", VerdictUnparseable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseVerdict(tt.raw); got != tt.want {
				t.Errorf("ParseVerdict(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestVerdictReported(t *testing.T) {
	if got := VerdictYes.Reported(); got != "Yes" {
		t.Errorf("VerdictYes.Reported() = %q, want Yes", got)
	}
	if got := VerdictNo.Reported(); got != "No" {
		t.Errorf("VerdictNo.Reported() = %q, want No", got)
	}
	// Unparseable must never surface as compliance.
	if got := VerdictUnparseable.Reported(); got != "No" {
		t.Errorf("VerdictUnparseable.Reported() = %q, want No", got)
	}
}

func TestHedgedVerdictsReportNo(t *testing.T) {
	// Anything short of an exact yes/no token must land on the
	// conservative side of the report.
	for _, raw := range []string{"Yes.", "yes, partially", "Yes indeed", "No."} {
		if got := ParseVerdict(raw).Reported(); got != "No" {
			t.Errorf("ParseVerdict(%q).Reported() = %q, want No", raw, got)
		}
	}
}

func TestVerdictIsValid(t *testing.T) {
	for _, v := range []Verdict{VerdictYes, VerdictNo, VerdictUnparseable} {
		if !v.IsValid() {
			t.Errorf("%v should be valid", v)
		}
	}
	if Verdict("Maybe").IsValid() {
		t.Error("unknown verdict should be invalid")
	}
}
