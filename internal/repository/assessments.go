package repository

import (
	"strings"

	"github.com/google/uuid"

	"sarvasva/internal/analytics"
	"sarvasva/internal/models"
	"sarvasva/internal/qerrors"
)

func (jr *JSONRepository) ListAssessments() ([]*models.Assessment, error) {
	return jr.assessments.all()
}

func (jr *JSONRepository) GetAssessment(id string) (*models.Assessment, error) {
	return jr.assessments.findByID(id, qerrors.AssessmentNotFoundError)
}

func (jr *JSONRepository) CreateAssessment(req *models.CreateAssessmentRequest) (*models.Assessment, error) {
	if len(req.Questions) == 0 {
		return nil, qerrors.NewValidationError("an assessment needs at least one question")
	}

	a := &models.Assessment{
		ID:          uuid.New().String(),
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Type:        req.Type,
		TotalPoints: req.TotalPoints,
		DueDate:     req.DueDate,
		Questions:   req.Questions,
		Submissions: []models.Submission{},
	}
	if a.Type == "" {
		a.Type = "quiz"
	}
	if a.TotalPoints == 0 {
		for _, q := range a.Questions {
			a.TotalPoints += q.Points
		}
	}

	if err := jr.assessments.insert(a); err != nil {
		return nil, err
	}
	return a, nil
}

// SubmitAssessment grades and records one submission. A guest can submit an assessment only
// once.
func (jr *JSONRepository) SubmitAssessment(req *models.SubmitAssessmentRequest) (*models.Submission, error) {
	submission := models.Submission{
		GuestID:     jr.guestID(req.GuestID),
		GuestName:   req.GuestName,
		Answers:     req.Answers,
		SubmittedAt: jr.now().UTC(),
	}
	if submission.Answers == nil {
		submission.Answers = []models.Answer{}
	}

	_, err := jr.assessments.update(jr.assessments.byID(req.AssessmentID), qerrors.AssessmentNotFoundError, func(a *models.Assessment) error {
		for _, s := range a.Submissions {
			if s.GuestID == submission.GuestID {
				return qerrors.AlreadySubmittedError
			}
		}
		for _, answer := range submission.Answers {
			if answer.Index < 0 || answer.Index >= len(a.Questions) {
				return qerrors.AnswerOutOfRangeError
			}
		}

		submission.Score = analytics.Score(a, submission.Answers)
		a.Submissions = append(a.Submissions, submission)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &submission, nil
}

// GetAssessmentAnalytics computes score statistics over the submissions of an assessment.
func (jr *JSONRepository) GetAssessmentAnalytics(id string) (*models.AssessmentAnalytics, error) {
	a, err := jr.GetAssessment(id)
	if err != nil {
		return nil, err
	}
	return analytics.GenerateAssessmentAnalytics(a), nil
}
