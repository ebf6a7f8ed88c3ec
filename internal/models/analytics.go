package models

// Percentiles is a generic struct for storing percentiles for any distribution of data.
type Percentiles struct {
	P50 float64 `json:"p50"`
	P90 float64 `json:"p90"`
	P99 float64 `json:"p99"`
}

// AssessmentAnalytics summarizes the submissions of one assessment. It is computed on request
// and never stored.
type AssessmentAnalytics struct {
	AssessmentID   string `json:"assessmentId"`
	NumSubmissions int    `json:"numSubmissions"`
	TotalPoints    int    `json:"totalPoints"`
	// Score is the distribution of submission scores.
	Score        Percentiles `json:"score"`
	AverageScore float64     `json:"averageScore"`
	// QuestionAccuracy[i] is the fraction of submissions that answered question i correctly. It
	// is -1 for questions without a correct answer.
	QuestionAccuracy []float64 `json:"questionAccuracy"`
}

// CourseAnalytics summarizes how guests progress through one course.
type CourseAnalytics struct {
	CourseID          string  `json:"courseId"`
	NumEnrolled       int     `json:"numEnrolled"`
	NumCompleted      int     `json:"numCompleted"`
	CompletionRate    float64 `json:"completionRate"`
	NumVideos         int     `json:"numVideos"`
	TotalVideoSeconds int     `json:"totalVideoSeconds"`
}
