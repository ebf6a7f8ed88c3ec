package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"sarvasva/internal/auth"
	"sarvasva/internal/models"
	repo "sarvasva/internal/repository"
)

func AuthRoutes() *chi.Mux {
	router := chi.NewRouter()

	// Profile of the calling guest, created on first access
	router.Get("/profile", getProfileHandler)
	router.Put("/profile", updateProfileHandler)

	return router
}

// GET: /profile
func getProfileHandler(w http.ResponseWriter, r *http.Request) {
	guest, err := auth.GetGuestFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	user, err := repo.Repository.GetOrCreateGuest(guest.ID, guest.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, user)
}

// PUT: /profile
func updateProfileHandler(w http.ResponseWriter, r *http.Request) {
	guest, err := auth.GetGuestFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var fields map[string]interface{}
	if err := decodeRequest(r, &fields, true); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := repo.Repository.UpdateProfile(&models.UpdateProfileRequest{
		GuestID:   guest.ID,
		GuestName: guest.Name,
		Fields:    fields,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, user)
}
