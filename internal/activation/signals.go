// Package activation decides whether freshly generated cards enter the
// active review pool, based on the intake quiz outcome and a small set of
// contextual difficulty signals.
package activation

import (
	"fmt"
	"regexp"
)

// QuizResult is the outcome of the intake quiz for one fact. The zero value
// means the quiz was not attempted for this fact.
type QuizResult string

const (
	ResultUnanswered QuizResult = ""
	ResultCorrect    QuizResult = "correct"
	ResultWrong      QuizResult = "wrong"
	ResultSkipped    QuizResult = "skipped"
)

// Context carries one fact's quiz outcome and difficulty signals, built per
// fact at intake time.
type Context struct {
	QuizResult          QuizResult
	FactContent         string
	SourceWasIncorrect  bool
	CrossSourceCount    *int
	HasConfusionPattern bool
	ConfusedWithConcept string
	PeerCorrectRate     *float64
}

// Numeric fragments that make a fact hard to memorize: percentages, doses,
// ranges, bare multi-digit integers, grouped thousands, fractions, ratios.
var (
	rePercentage = regexp.MustCompile(`\d+(?:\.\d+)?%`)
	reDoseUnit   = regexp.MustCompile(`(?i)\d+(?:\.\d+)?\s?(?:mg|mL|mcg|g|kg|mm|cm|L|mEq|mmol)\b`)
	reRange      = regexp.MustCompile(`\d+\s?[-–]\s?\d+`)
	reInteger    = regexp.MustCompile(`\d{2,}`)
	reThousands  = regexp.MustCompile(`\d{1,3}(?:,\d{3})+`)
	reFraction   = regexp.MustCompile(`\d+/\d+`)
	reRatio      = regexp.MustCompile(`\d+:\d+`)
)

// HasNumericContent reports whether the fact text contains numeric details
// worth drilling.
func HasNumericContent(text string) bool {
	return rePercentage.MatchString(text) ||
		reDoseUnit.MatchString(text) ||
		reRange.MatchString(text) ||
		reInteger.MatchString(text) ||
		reThousands.MatchString(text) ||
		reFraction.MatchString(text) ||
		reRatio.MatchString(text)
}

// DetectSignals evaluates every detector against the context, in a fixed
// order, and returns one human-readable reason per matching signal.
func DetectSignals(ctx Context) []string {
	var reasons []string
	if HasNumericContent(ctx.FactContent) {
		reasons = append(reasons, "Contains numbers, doses, or ranges that are hard to memorize")
	}
	if ctx.SourceWasIncorrect {
		reasons = append(reasons, "You answered this incorrectly in the source material")
	}
	if ctx.CrossSourceCount != nil && *ctx.CrossSourceCount >= 2 {
		reasons = append(reasons, fmt.Sprintf("Appears across %d sources", *ctx.CrossSourceCount))
	}
	if ctx.HasConfusionPattern && ctx.ConfusedWithConcept != "" {
		reasons = append(reasons, fmt.Sprintf("Often confused with %s", ctx.ConfusedWithConcept))
	}
	if ctx.PeerCorrectRate != nil && *ctx.PeerCorrectRate < 0.5 {
		reasons = append(reasons, "Most learners miss this one")
	}
	return reasons
}
