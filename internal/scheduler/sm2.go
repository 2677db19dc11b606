package scheduler

import (
	"math"

	"github.com/doughub/doughub/internal/card"
)

const (
	// DefaultEasiness is the SM-2 starting easiness factor for new cards.
	DefaultEasiness = 2.5
	// MinEasiness is the SM-2 floor below which easiness never drops.
	MinEasiness = 1.3
)

// sm2Quality maps the four review grades onto the 0-5 SM-2 quality scale.
func sm2Quality(rating card.Rating) int {
	switch rating {
	case card.RatingAgain:
		return 1
	case card.RatingHard:
		return 3
	case card.RatingGood:
		return 4
	default:
		return 5
	}
}

// nextEasiness applies the SM-2 easiness delta for a grade. The penalty for
// a failed recall is scaled down on cards with a long correct streak, so one
// slip on a well-learned card does not crater its easiness.
func nextEasiness(easiness float64, rating card.Rating, correctStreak int) float64 {
	if easiness == 0 {
		easiness = DefaultEasiness
	}

	q := float64(sm2Quality(rating))
	delta := 0.1 - (5-q)*(0.08+(5-q)*0.02)

	if rating == card.RatingAgain && correctStreak > 2 {
		switch {
		case correctStreak >= 10:
			delta *= 0.37
		case correctStreak >= 6:
			delta *= 0.56
		default:
			delta *= 0.74
		}
	}

	return math.Max(easiness+delta, MinEasiness)
}

// nextInterval returns the next review interval in days. Correct answers
// follow the 1, 6, interval*EF progression; failures shrink the interval in
// proportion to how well the card was known instead of resetting outright.
func nextInterval(lastInterval int, easiness float64, rating card.Rating, correctStreak int) int {
	if easiness == 0 {
		easiness = DefaultEasiness
	}

	if rating == card.RatingAgain {
		return lapseInterval(lastInterval, correctStreak)
	}

	switch correctStreak {
	case 1:
		return 1
	case 2:
		return 6
	default:
		if lastInterval == 0 {
			lastInterval = 6
		}
		return int(math.Ceil(float64(lastInterval) * easiness))
	}
}

func lapseInterval(lastInterval int, correctStreak int) int {
	if correctStreak <= 2 {
		return 1
	}

	multiplier := 0.5
	switch {
	case correctStreak >= 10:
		multiplier = 0.7
	case correctStreak >= 6:
		multiplier = 0.6
	}

	interval := int(math.Ceil(float64(lastInterval) * multiplier))
	if interval < 1 {
		return 1
	}
	return interval
}

// correctStreak counts consecutive non-Again reviews from the most recent
// log backwards, stopping at the first failure.
func correctStreak(logs []card.ReviewLog) int {
	count := 0
	for _, log := range logs {
		if card.Rating(log.Rating) == card.RatingAgain {
			break
		}
		count++
	}
	return count
}

// lastInterval returns the interval recorded on the most recent log, or 0
// when the card has never been reviewed.
func lastInterval(logs []card.ReviewLog) int {
	if len(logs) == 0 {
		return 0
	}
	return logs[0].IntervalDays
}
