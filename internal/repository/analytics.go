package repository

import (
	"golang.org/x/sync/errgroup"

	"sarvasva/internal/analytics"
	"sarvasva/internal/models"
)

// GetCourseAnalytics reports enrollment and completion counts for a course.
func (jr *JSONRepository) GetCourseAnalytics(courseID string) (*models.CourseAnalytics, error) {
	var (
		course *models.Course
		users  []*models.User
	)

	g := new(errgroup.Group)
	g.Go(func() error {
		var err error
		course, err = jr.GetCourse(courseID)
		return err
	})
	g.Go(func() error {
		var err error
		users, err = jr.users.all()
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return analytics.GenerateCourseAnalytics(course, users), nil
}
