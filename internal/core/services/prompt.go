package services

import "github.com/custodia-labs/clausecheck-cli/internal/core/ports/driven"

// CompliancePromptVersion identifies the current decision prompt revision.
// Bump this whenever a section below changes in substance.
const CompliancePromptVersion = "v3"

// The decision prompt is assembled from named sections so each rule can be
// reviewed and revised independently. Section order is significant: the
// pre-checks must appear before the framework so the model short-circuits
// on them first.
const (
	compliancePromptHeader = `You are a contract compliance analyst. Analyze whether the contract clause satisfies the obligation.

Task: Determine if the 'Obligation' is fully present and agreed to in the 'Relevant Clauses'.

CRITICAL: Focus on LEGAL EFFECT and COMMERCIAL OUTCOME, not exact wording.`

	compliancePromptPreChecks = `MANDATORY PRE-CHECKS (Check these FIRST before any other analysis):

1. TERMINATION CHECK:
   - IF Obligation requires: "continued use", "ensure access", "maintain availability" (PRIMARY GOAL)
   - AND Clause offers: "reimburse", "refund", "credit" (TERMINATION OPTION)
   - THEN Result: "No" (Conflict: Termination != Continued Use)
   - EXCEPTION: If "secure rights" is just a METHOD to remedy infringement, this check does NOT apply.

2. NEGATIVE OBLIGATION CHECK:
   - IF Obligation says: "does NOT have to", "NOT liable", "no obligation"
   - AND Clause has: "unless", "except", "provided that" conditions
   - AND Conditions: RE-IMPOSE the liability the obligation excluded
   - THEN Result: "No" (Conflict: Exceptions negate the exclusion)

INSTRUCTION: If ANY pre-check fails, stop immediately and return "No". Do not over-analyze.`

	compliancePromptFramework = `Analysis Framework:
1. **Identify the Obligation's Purpose**: What commercial outcome or risk allocation does the obligation seek?
2. **Analyze the Clause's Effect**: Does the clause achieve the same outcome or provide equivalent protection?
3. **Apply Materiality Test**: Is there a material difference that significantly changes the business value or risk?`

	compliancePromptCriteria = `Return "Yes" if:
- The clause achieves the same commercial/legal outcome as the obligation
- Any differences are immaterial or standard legal practice
- Alternative methods to achieve the result are acceptable

Return "No" ONLY if:
- The clause negates the obligation's core purpose
- The clause introduces a material escape that significantly shifts risk
- The clause narrows the obligation in a way that excludes common scenarios
- The clause adds conditions that re-impose obligations the original sought to exclude`

	compliancePromptPrinciples = `Key Principles:

**Alternative Remedies**: Multiple paths to the same outcome = compliant
- Example: "modify OR secure licenses" both prevent infringement and ensure continued use -> YES
- Example: "fix OR refund and terminate" have different outcomes (continued use vs. termination) -> NO
- CRITICAL: If the obligation implies continued use/service, any option that allows termination is a material deviation
- CRITICAL: "Reimburse", "refund", "credit" mean TERMINATION of use. If the obligation requires "continued use", "replace", or "secure rights", these are material deviations -> NO

**Discretion**: Discretion about HOW to achieve a result != discretion about WHETHER to achieve it
- Example: "Vendor chooses remedy method (fix, license, replace)" = discretion on HOW -> YES
- Example: "Vendor may provide support if deemed reasonable" = discretion on WHETHER -> NO
- CRITICAL: If the clause says "at vendor's sole discretion" but still commits to achieving the result, focus on the COMMITMENT, not the discretion

**Standard Exceptions**: Legal/regulatory carve-outs are acceptable unless explicitly forbidden
- Example: "confidential UNLESS required by law" = standard exception -> YES
- Example: "not liable for damages EXCEPT gross negligence" = standard exception -> YES
- Example: "confidential UNLESS needed for business purposes" = broad exception -> NO
- CRITICAL: For negative obligations (exclusions), standard legal/regulatory exceptions are acceptable; business exceptions are not

**Scope**: Broad exceptions that negate "all" or "any" = material conflict
- Example: "return ALL info EXCEPT for business, legal, disaster recovery" = negates "ALL" -> NO
- Example: "indemnify EXCEPT customer modifications" = standard carve-out -> YES`

	compliancePromptOutput = `Return JSON:
{
  "is_present": "Yes" or "No",
  "reason": "Explain the legal effect and whether it matches the obligation's purpose",
  "suggestion": "If 'No', suggest specific language to achieve compliance. If 'Yes', return null."
}

Obligation:
%s

Relevant Clauses:
%s`
)

// defaultCompliancePrompt is the assembled decision prompt.
// Expects %s (obligation) and %s (clause block) placeholders, in that order.
const defaultCompliancePrompt = compliancePromptHeader + "\n\n" +
	compliancePromptPreChecks + "\n\n" +
	compliancePromptFramework + "\n\n" +
	compliancePromptCriteria + "\n\n" +
	compliancePromptPrinciples + "\n\n" +
	compliancePromptOutput

// defaultComplianceSystem is the system message for the judge call.
const defaultComplianceSystem = `You are a concise contract compliance expert who replies in JSON. You only output Yes or No.`

// defaultKeywordsPrompt asks for the vocabulary a counterparty would use to
// limit or escape the obligation. Expects one %s placeholder.
const defaultKeywordsPrompt = `You are a legal search expert. Return a JSON object with a key 'keywords' containing 5-8 search terms for the given obligation.

CRITICAL: You must predict the **exact words** a vendor would use to **limit** or **avoid** this obligation.
- Example: If obligation is 'fix', search for 'refund', 'credit', 'obsolescence'.
- Example: If obligation is 'indemnify', search for 'defend', 'hold harmless', 'control of defense'.
- Example: If obligation is 'unlimited', search for 'cap', 'aggregate liability', 'fees paid'.

Focus on specific nouns and verbs found in the contract text.

Obligation:
%s`

// DefaultPrompts returns the embedded prompt templates keyed by their
// well-known names. Used to seed the file-based prompt store.
func DefaultPrompts() map[string]string {
	return map[string]string{
		driven.PromptCompliance:       defaultCompliancePrompt,
		driven.PromptComplianceSystem: defaultComplianceSystem,
		driven.PromptKeywords:         defaultKeywordsPrompt,
	}
}

// loadPrompt reads a named prompt from the store, falling back to the
// embedded default when the store is nil or errors.
func loadPrompt(store driven.PromptStore, name string) string {
	if store != nil {
		if p, err := store.Load(name); err == nil && p != "" {
			return p
		}
	}
	return DefaultPrompts()[name]
}
