package analytics

import (
	"strings"

	"sarvasva/internal/models"
)

// IsCorrect compares an answer against the question's correct answer, ignoring case and
// surrounding whitespace. Questions without a correct answer are never correct.
func IsCorrect(q models.Question, answer string) bool {
	if q.CorrectAnswer == "" {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(q.CorrectAnswer), strings.TrimSpace(answer))
}

// QuestionPoints returns what question i is worth: its own Points, or an even share of the
// assessment's TotalPoints when it has none.
func QuestionPoints(a *models.Assessment, i int) int {
	if p := a.Questions[i].Points; p > 0 {
		return p
	}
	if len(a.Questions) == 0 {
		return 0
	}
	return a.TotalPoints / len(a.Questions)
}

// Score grades answers against a. The caller has checked every answer index is in range. A
// question answered more than once only counts its first answer.
func Score(a *models.Assessment, answers []models.Answer) int {
	seen := make(map[int]bool)
	score := 0
	for _, answer := range answers {
		if seen[answer.Index] {
			continue
		}
		seen[answer.Index] = true

		if IsCorrect(a.Questions[answer.Index], answer.Answer) {
			score += QuestionPoints(a, answer.Index)
		}
	}
	return score
}
