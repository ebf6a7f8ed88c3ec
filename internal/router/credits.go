package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"sarvasva/internal/auth"
	"sarvasva/internal/models"
	repo "sarvasva/internal/repository"
)

func CreditsRoutes() *chi.Mux {
	router := chi.NewRouter()

	// Awards the course completion credits to the calling guest
	router.Post("/complete-course", completeCourseHandler)

	return router
}

// POST: /complete-course
func completeCourseHandler(w http.ResponseWriter, r *http.Request) {
	guest, err := auth.GetGuestFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	completeCourse(w, r, guest.ID, guest.Name)
}

func completeCourse(w http.ResponseWriter, r *http.Request, guestID string, guestName string) {
	var req models.CompleteCourseRequest
	if err := decodeRequest(r, &req, true); err != nil {
		writeError(w, r, err)
		return
	}
	req.GuestID = guestID
	req.GuestName = guestName

	resp, err := repo.Repository.CompleteCourse(&req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, resp)
}
