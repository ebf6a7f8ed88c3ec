package models

import "time"

type TransactionType string

const (
	TransactionEarned TransactionType = "earned"
)

// CreditTransaction is one entry of the credits ledger. Every change to a guest's balance has
// exactly one entry.
type CreditTransaction struct {
	ID          string          `json:"id" mapstructure:"id"`
	GuestID     string          `json:"guestId" mapstructure:"guestId"`
	Type        TransactionType `json:"type" mapstructure:"type"`
	Amount      int             `json:"amount" mapstructure:"amount"`
	Description string          `json:"description" mapstructure:"description"`
	CourseID    string          `json:"courseId,omitempty" mapstructure:"courseId"`
	// Balance is the guest's balance right after this transaction.
	Balance   int       `json:"balance" mapstructure:"balance"`
	CreatedAt time.Time `json:"createdAt" mapstructure:"createdAt"`
}

type CompleteCourseRequest struct {
	GuestID   string `json:"-"`
	GuestName string `json:"-"`
	// CourseID is optional. When set, the course must exist.
	CourseID string `json:"courseId"`
}

type CompleteCourseResponse struct {
	CreditsEarned int `json:"creditsEarned"`
	Credits       int `json:"credits"`
}

type CreditsSummary struct {
	Credits int                  `json:"credits"`
	History []*CreditTransaction `json:"history"`
}

// CompletedCourse is one course a guest has completed and what completing it earned.
type CompletedCourse struct {
	CourseID      string     `json:"courseId"`
	CourseTitle   string     `json:"courseTitle"`
	CreditsEarned int        `json:"creditsEarned"`
	CompletedAt   *time.Time `json:"completedAt"`
}
