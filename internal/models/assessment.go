package models

import "time"

type Assessment struct {
	ID          string       `json:"id" mapstructure:"id"`
	Title       string       `json:"title" mapstructure:"title"`
	Description string       `json:"description" mapstructure:"description"`
	Type        string       `json:"type" mapstructure:"type"`
	TotalPoints int          `json:"totalPoints" mapstructure:"totalPoints"`
	DueDate     string       `json:"dueDate,omitempty" mapstructure:"dueDate"`
	Questions   []Question   `json:"questions" mapstructure:"questions"`
	Submissions []Submission `json:"submissions" mapstructure:"submissions"`
}

type Question struct {
	Question string   `json:"question" mapstructure:"question" validate:"required"`
	Type     string   `json:"type" mapstructure:"type"`
	Options  []string `json:"options,omitempty" mapstructure:"options"`
	// CorrectAnswer is optional; questions without one are not scored.
	CorrectAnswer string `json:"correctAnswer,omitempty" mapstructure:"correctAnswer"`
	Points        int    `json:"points,omitempty" mapstructure:"points"`
}

type Submission struct {
	GuestID     string    `json:"guestId" mapstructure:"guestId"`
	GuestName   string    `json:"guestName,omitempty" mapstructure:"guestName"`
	Answers     []Answer  `json:"answers" mapstructure:"answers"`
	Score       int       `json:"score" mapstructure:"score"`
	SubmittedAt time.Time `json:"submittedAt" mapstructure:"submittedAt"`
}

type Answer struct {
	// Index of the question being answered.
	Index  int    `json:"index" mapstructure:"index"`
	Answer string `json:"answer" mapstructure:"answer"`
}

type CreateAssessmentRequest struct {
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description"`
	Type        string     `json:"type"`
	TotalPoints int        `json:"totalPoints" validate:"gte=0"`
	DueDate     string     `json:"dueDate"`
	Questions   []Question `json:"questions" validate:"required,min=1,dive"`
}

type SubmitAssessmentRequest struct {
	AssessmentID string   `json:"-"`
	GuestID      string   `json:"guestId"`
	GuestName    string   `json:"guestName"`
	Answers      []Answer `json:"answers"`
}
