package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"sarvasva/internal/middleware"
	repo "sarvasva/internal/repository"
)

// GET: /courses/{courseID}/analytics
//
// Enrollment and completion counts are computed from the users collection on every request and
// never stored.
func getCourseAnalyticsHandler(w http.ResponseWriter, r *http.Request) {
	analytics, err := repo.Repository.GetCourseAnalytics(middleware.CourseID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, analytics)
}

// GET: /assessments/{assessmentID}/analytics
func getAssessmentAnalyticsHandler(w http.ResponseWriter, r *http.Request) {
	analytics, err := repo.Repository.GetAssessmentAnalytics(chi.URLParam(r, "assessmentID"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, analytics)
}
