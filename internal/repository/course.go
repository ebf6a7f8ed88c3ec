package repository

import (
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"sarvasva/internal/models"
	"sarvasva/internal/qerrors"
	"sarvasva/internal/store"
)

// ListCourses returns the courses matching the optional category and search filters, in stored
// order. Search is a case-insensitive substring match over title, description and tags.
func (jr *JSONRepository) ListCourses(req *models.ListCoursesRequest) ([]*models.Course, error) {
	category := strings.TrimSpace(req.Category)
	search := strings.ToLower(strings.TrimSpace(req.Search))

	return jr.courses.filter(func(c *models.Course) bool {
		if category != "" && !strings.EqualFold(category, "all") && !strings.EqualFold(c.Category, category) {
			return false
		}
		if search == "" {
			return true
		}
		if strings.Contains(strings.ToLower(c.Title), search) || strings.Contains(strings.ToLower(c.Description), search) {
			return true
		}
		for _, tag := range c.Tags {
			if strings.Contains(strings.ToLower(tag), search) {
				return true
			}
		}
		return false
	})
}

// GetCourse gets the Course corresponding to the provided course ID.
func (jr *JSONRepository) GetCourse(id string) (*models.Course, error) {
	return jr.courses.findByID(id, qerrors.CourseNotFoundError)
}

// CreateCourse stores a new course with its initial videos and records it on the instructor's
// profile.
func (jr *JSONRepository) CreateCourse(c *models.CreateCourseRequest) (*models.Course, error) {
	instructorID, instructorName := c.CreatedBy, c.CreatedByName
	if id := strings.TrimSpace(c.InstructorGuestID); id != "" {
		instructorID, instructorName = id, strings.TrimSpace(c.InstructorGuestName)
	}
	instructorID = jr.guestID(instructorID)
	if err := ValidateID(instructorID); err != nil {
		return nil, err
	}

	course := &models.Course{
		ID:                 uuid.New().String(),
		Title:              strings.TrimSpace(c.Title),
		Description:        c.Description,
		Category:           c.Category,
		Price:              c.Price,
		Thumbnail:          c.Thumbnail,
		Tags:               orEmpty(c.Tags),
		LearningObjectives: orEmpty(c.LearningObjectives),
		Prerequisites:      orEmpty(c.Prerequisites),
		Videos:             []models.Video{},
		EnrolledStudents:   []string{},
		InstructorID:       instructorID,
		InstructorName:     instructorName,
		CreatedAt:          jr.now().UTC(),
	}
	for i := range c.Videos {
		course.Videos = append(course.Videos, newVideo(&c.Videos[i], len(course.Videos)))
	}
	sortVideos(course.Videos)

	if err := jr.courses.insert(course); err != nil {
		return nil, err
	}

	// Record the course on the creator's profile.
	_, err := jr.users.upsert(jr.users.byID(course.InstructorID), jr.newGuest(course.InstructorID, instructorName), func(u *models.User) error {
		addUnique(&u.CreatedCourses, course.ID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return course, nil
}

// Enroll adds the guest to the course and the course to the guest's profile. Enrolling twice
// changes nothing.
func (jr *JSONRepository) Enroll(req *models.EnrollRequest) (*models.Course, error) {
	guestID := jr.guestID(req.GuestID)
	if err := ValidateID(guestID); err != nil {
		return nil, err
	}

	course, err := jr.courses.update(jr.courses.byID(req.CourseID), qerrors.CourseNotFoundError, func(c *models.Course) error {
		if !addUnique(&c.EnrolledStudents, guestID) {
			return store.SkipWrite
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	_, err = jr.users.upsert(jr.users.byID(guestID), jr.newGuest(guestID, req.GuestName), func(u *models.User) error {
		if !addUnique(&u.EnrolledCourses, course.ID) {
			return store.SkipWrite
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return course, nil
}

// GetEnrolledCourses returns the IDs of the courses on the guest's enrolled list. Courses that no
// longer exist are skipped. A guest that was never seen has no courses.
func (jr *JSONRepository) GetEnrolledCourses(guestID string) ([]string, error) {
	var (
		user    *models.User
		courses []*models.Course
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
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := []string{}
	if user == nil {
		return out, nil
	}

	exists := make(map[string]bool, len(courses))
	for _, c := range courses {
		exists[c.ID] = true
	}
	for _, id := range user.EnrolledCourses {
		if exists[id] {
			out = append(out, id)
		}
	}
	return out, nil
}

// findUser is GetUserByID for lookups where an unknown guest is not an error. It returns nil
// when the guest was never seen.
func (jr *JSONRepository) findUser(guestID string) (*models.User, error) {
	u, err := jr.GetUserByID(jr.guestID(guestID))
	if err == qerrors.UserNotFoundError {
		return nil, nil
	}
	return u, err
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
