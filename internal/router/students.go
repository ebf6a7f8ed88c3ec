package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"sarvasva/internal/middleware"
	"sarvasva/internal/models"
	repo "sarvasva/internal/repository"
)

func StudentRoutes() *chi.Mux {
	router := chi.NewRouter()

	router.Route("/{studentID}", func(router chi.Router) {
		// Sets "studentID" from URL param in the context
		router.Use(middleware.StudentCtx())

		router.Get("/credits", getCreditsHandler)
		router.Post("/complete-course", completeCourseForStudentHandler)

		router.Get("/enrolled", getEnrolledCoursesHandler)
		router.Get("/completed", getCompletedCoursesHandler)

		router.Mount("/documents", documentRoutes())
	})

	return router
}

// GET: /{studentID}/credits
func getCreditsHandler(w http.ResponseWriter, r *http.Request) {
	summary, err := repo.Repository.GetCredits(middleware.StudentID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, summary)
}

// POST: /{studentID}/complete-course
func completeCourseForStudentHandler(w http.ResponseWriter, r *http.Request) {
	completeCourse(w, r, middleware.StudentID(r), models.DefaultGuestName)
}

// GET: /{studentID}/enrolled
//
// Responds with course IDs; clients load each course on their own.
func getEnrolledCoursesHandler(w http.ResponseWriter, r *http.Request) {
	courseIDs, err := repo.Repository.GetEnrolledCourses(middleware.StudentID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, courseIDs)
}

// GET: /{studentID}/completed
func getCompletedCoursesHandler(w http.ResponseWriter, r *http.Request) {
	completed, err := repo.Repository.GetCompletedCourses(middleware.StudentID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, completed)
}
