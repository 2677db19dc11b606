package activation

// PriorityScore ranks a fact's review urgency from 0 to 100 for display
// ordering. It has no effect on the activation status itself.
func PriorityScore(result QuizResult, signalCount int) int {
	score := 50 + 10*signalCount
	switch result {
	case ResultWrong:
		score += 25
	case ResultSkipped:
		score += 15
	case ResultCorrect:
		score -= 30
	}
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
