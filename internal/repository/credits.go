package repository

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"sarvasva/internal/models"
	"sarvasva/internal/qerrors"
)

// CompleteCourse awards the course completion credits to a guest and records the award in the
// ledger. It can be called any number of times; every call awards again. When req.CourseID is
// set the course must exist, and it is added once to the guest's completed courses.
func (jr *JSONRepository) CompleteCourse(req *models.CompleteCourseRequest) (*models.CompleteCourseResponse, error) {
	guestID := jr.guestID(req.GuestID)
	if err := ValidateID(guestID); err != nil {
		return nil, err
	}

	description := "Completed a course"
	if req.CourseID != "" {
		course, err := jr.GetCourse(req.CourseID)
		if err != nil {
			return nil, err
		}
		description = fmt.Sprintf("Completed %s", course.Title)
	}

	user, err := jr.users.upsert(jr.users.byID(guestID), jr.newGuest(guestID, req.GuestName), func(u *models.User) error {
		u.Credits += jr.award
		if req.CourseID != "" {
			addUnique(&u.CompletedCourses, req.CourseID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = jr.credits.insert(&models.CreditTransaction{
		ID:          uuid.New().String(),
		GuestID:     guestID,
		Type:        models.TransactionEarned,
		Amount:      jr.award,
		Description: description,
		CourseID:    req.CourseID,
		Balance:     user.Credits,
		CreatedAt:   jr.now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	return &models.CompleteCourseResponse{
		CreditsEarned: jr.award,
		Credits:       user.Credits,
	}, nil
}

// GetCredits returns a guest's balance and ledger, newest entry first.
func (jr *JSONRepository) GetCredits(guestID string) (*models.CreditsSummary, error) {
	guestID = jr.guestID(guestID)

	summary := &models.CreditsSummary{History: []*models.CreditTransaction{}}

	user, err := jr.GetUserByID(guestID)
	switch {
	case err == qerrors.UserNotFoundError:
	case err != nil:
		return nil, err
	default:
		summary.Credits = user.Credits
	}

	history, err := jr.credits.filter(func(t *models.CreditTransaction) bool {
		return t.GuestID == guestID
	})
	if err != nil {
		return nil, err
	}

	// Entries are appended in order, so reversing first keeps equal timestamps newest first.
	for i := len(history) - 1; i >= 0; i-- {
		summary.History = append(summary.History, history[i])
	}
	sort.SliceStable(summary.History, func(i, j int) bool {
		return summary.History[i].CreatedAt.After(summary.History[j].CreatedAt)
	})

	return summary, nil
}

// GetCompletedCourses returns one entry per course the guest has completed, in the order they
// were first completed. Credits and completion time come from the ledger. Courses completed
// before the ledger existed have no completion time.
func (jr *JSONRepository) GetCompletedCourses(guestID string) ([]*models.CompletedCourse, error) {
	guestID = jr.guestID(guestID)

	var (
		user    *models.User
		courses []*models.Course
		ledger  []*models.CreditTransaction
	)

	g := new(errgroup.Group)
	g.Go(func() error {
		var err error
		user, err = jr.findUser(guestID)
		return err
	})
	g.Go(func() error {
		var err error
		courses, err = jr.courses.all()
		return err
	})
	g.Go(func() error {
		var err error
		ledger, err = jr.credits.filter(func(t *models.CreditTransaction) bool {
			return t.GuestID == guestID && t.CourseID != ""
		})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	titles := make(map[string]string, len(courses))
	for _, c := range courses {
		titles[c.ID] = c.Title
	}

	out := []*models.CompletedCourse{}
	byCourse := make(map[string]*models.CompletedCourse)
	entry := func(courseID string) *models.CompletedCourse {
		if e, ok := byCourse[courseID]; ok {
			return e
		}
		e := &models.CompletedCourse{CourseID: courseID, CourseTitle: titles[courseID]}
		byCourse[courseID] = e
		out = append(out, e)
		return e
	}

	for _, t := range ledger {
		e := entry(t.CourseID)
		e.CreditsEarned += t.Amount
		if e.CompletedAt == nil || t.CreatedAt.Before(*e.CompletedAt) {
			completedAt := t.CreatedAt
			e.CompletedAt = &completedAt
		}
	}
	if user != nil {
		for _, id := range user.CompletedCourses {
			entry(id)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return completedBefore(out[i].CompletedAt, out[j].CompletedAt)
	})
	return out, nil
}

// completedBefore orders known completion times first, oldest first.
func completedBefore(a, b *time.Time) bool {
	switch {
	case a == nil:
		return false
	case b == nil:
		return true
	default:
		return a.Before(*b)
	}
}
