package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"sarvasva/internal/auth"
	"sarvasva/internal/middleware"
	"sarvasva/internal/models"
	repo "sarvasva/internal/repository"
)

func CourseRoutes() *chi.Mux {
	router := chi.NewRouter()

	router.Get("/", listCoursesHandler)
	router.Post("/", createCourseHandler)

	router.Route("/{courseID}", func(router chi.Router) {
		// Sets "courseID" from URL param in the context
		router.Use(middleware.CourseCtx())

		// Get metadata about a course
		router.Get("/", getCourseHandler)
		router.Post("/enroll", enrollHandler)

		router.Get("/analytics", getCourseAnalyticsHandler)
	})

	return router
}

// GET: /?category=&search=
func listCoursesHandler(w http.ResponseWriter, r *http.Request) {
	courses, err := repo.Repository.ListCourses(&models.ListCoursesRequest{
		Category: r.URL.Query().Get("category"),
		Search:   r.URL.Query().Get("search"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, courses)
}

// GET: /{courseID}
func getCourseHandler(w http.ResponseWriter, r *http.Request) {
	course, err := repo.Repository.GetCourse(middleware.CourseID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, course)
}

// POST: /
func createCourseHandler(w http.ResponseWriter, r *http.Request) {
	guest, err := auth.GetGuestFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.CreateCourseRequest
	if err := decodeRequest(r, &req, false); err != nil {
		writeError(w, r, err)
		return
	}
	req.CreatedBy = guest.ID
	req.CreatedByName = guest.Name

	c, err := repo.Repository.CreateCourse(&req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, c)
}

// POST: /{courseID}/enroll
func enrollHandler(w http.ResponseWriter, r *http.Request) {
	guest, err := auth.GetGuestFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	course, err := repo.Repository.Enroll(&models.EnrollRequest{
		CourseID:  middleware.CourseID(r),
		GuestID:   guest.ID,
		GuestName: guest.Name,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, MessageResponse{Message: "Enrolled in " + course.Title})
}
