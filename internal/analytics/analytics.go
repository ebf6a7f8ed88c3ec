package analytics

import (
	"sort"

	"sarvasva/internal/models"
)

// GenerateAssessmentAnalytics summarizes the submissions of an assessment. Does not touch the
// store.
func GenerateAssessmentAnalytics(a *models.Assessment) *models.AssessmentAnalytics {
	analytics := &models.AssessmentAnalytics{
		AssessmentID:     a.ID,
		NumSubmissions:   len(a.Submissions),
		TotalPoints:      a.TotalPoints,
		QuestionAccuracy: make([]float64, len(a.Questions)),
	}

	scores := make([]int, 0, len(a.Submissions))
	correct := make([]int, len(a.Questions))
	total := 0
	for _, s := range a.Submissions {
		scores = append(scores, s.Score)
		total += s.Score

		// Like Score, only the first answer to a question counts.
		seen := make(map[int]bool)
		for _, answer := range s.Answers {
			if answer.Index < 0 || answer.Index >= len(a.Questions) || seen[answer.Index] {
				continue
			}
			seen[answer.Index] = true
			if IsCorrect(a.Questions[answer.Index], answer.Answer) {
				correct[answer.Index]++
			}
		}
	}

	for i, q := range a.Questions {
		switch {
		case q.CorrectAnswer == "":
			analytics.QuestionAccuracy[i] = -1
		case len(a.Submissions) > 0:
			analytics.QuestionAccuracy[i] = float64(correct[i]) / float64(len(a.Submissions))
		}
	}

	if len(scores) > 0 {
		analytics.AverageScore = float64(total) / float64(len(scores))
	}
	analytics.Score = CalculatePercentiles(scores)

	return analytics
}

// GenerateCourseAnalytics counts enrolled and completed guests of a course.
func GenerateCourseAnalytics(course *models.Course, users []*models.User) *models.CourseAnalytics {
	analytics := &models.CourseAnalytics{
		CourseID:  course.ID,
		NumVideos: len(course.Videos),
	}

	for _, v := range course.Videos {
		analytics.TotalVideoSeconds += v.Duration
	}

	enrolled := make(map[string]bool)
	for _, id := range course.EnrolledStudents {
		enrolled[id] = true
	}

	for _, u := range users {
		if contains(u.EnrolledCourses, course.ID) {
			enrolled[u.ID] = true
		}
		if contains(u.CompletedCourses, course.ID) {
			analytics.NumCompleted++
		}
	}

	analytics.NumEnrolled = len(enrolled)
	if analytics.NumEnrolled > 0 {
		analytics.CompletionRate = float64(analytics.NumCompleted) / float64(analytics.NumEnrolled)
	}

	return analytics
}

func CalculatePercentiles(data []int) models.Percentiles {
	if len(data) == 0 {
		return models.Percentiles{}
	}

	sorted := append([]int(nil), data...)
	sort.Ints(sorted)

	calculatePercentile := func(percentile float64) float64 {
		rank := percentile / 100 * float64(len(sorted)-1)
		rankInt := int(rank)

		// If the rank is an integer, return the value at that index
		if rank == float64(rankInt) {
			return float64(sorted[rankInt])
		}

		// Otherwise, linearly interpolate
		baseline := sorted[rankInt]
		interpolation := (rank - float64(rankInt)) * float64(sorted[rankInt+1]-sorted[rankInt])

		return float64(baseline) + interpolation
	}

	return models.Percentiles{
		P50: calculatePercentile(50),
		P90: calculatePercentile(90),
		P99: calculatePercentile(99),
	}
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
