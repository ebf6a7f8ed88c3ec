package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"sarvasva/internal/auth"
	"sarvasva/internal/models"
	repo "sarvasva/internal/repository"
)

func AssessmentRoutes() *chi.Mux {
	router := chi.NewRouter()

	router.Get("/", listAssessmentsHandler)
	router.Post("/", createAssessmentHandler)

	router.Route("/{assessmentID}", func(router chi.Router) {
		router.Get("/", getAssessmentHandler)
		router.Post("/submit", submitAssessmentHandler)
		router.Get("/analytics", getAssessmentAnalyticsHandler)
	})

	return router
}

// GET: /
func listAssessmentsHandler(w http.ResponseWriter, r *http.Request) {
	assessments, err := repo.Repository.ListAssessments()
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, assessments)
}

// GET: /{assessmentID}
func getAssessmentHandler(w http.ResponseWriter, r *http.Request) {
	a, err := repo.Repository.GetAssessment(chi.URLParam(r, "assessmentID"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, a)
}

// POST: /
func createAssessmentHandler(w http.ResponseWriter, r *http.Request) {
	var req models.CreateAssessmentRequest
	if err := decodeRequest(r, &req, false); err != nil {
		writeError(w, r, err)
		return
	}

	a, err := repo.Repository.CreateAssessment(&req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, a)
}

// POST: /{assessmentID}/submit
//
// The submitting guest comes from the body when given, and from the request headers otherwise.
func submitAssessmentHandler(w http.ResponseWriter, r *http.Request) {
	guest, err := auth.GetGuestFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.SubmitAssessmentRequest
	if err := decodeRequest(r, &req, false); err != nil {
		writeError(w, r, err)
		return
	}
	req.AssessmentID = chi.URLParam(r, "assessmentID")
	if req.GuestID == "" {
		req.GuestID = guest.ID
	}
	if req.GuestName == "" {
		req.GuestName = guest.Name
	}

	submission, err := repo.Repository.SubmitAssessment(&req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, submission)
}
