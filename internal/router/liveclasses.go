package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"sarvasva/internal/auth"
	"sarvasva/internal/models"
	repo "sarvasva/internal/repository"
)

func LiveClassRoutes() *chi.Mux {
	router := chi.NewRouter()

	router.Get("/", listLiveClassesHandler)
	router.Post("/", createLiveClassHandler)

	router.Route("/{liveClassID}", func(router chi.Router) {
		router.Get("/", getLiveClassHandler)
		router.Put("/status", updateLiveClassStatusHandler)
	})

	return router
}

// GET: /
func listLiveClassesHandler(w http.ResponseWriter, r *http.Request) {
	classes, err := repo.Repository.ListLiveClasses()
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, classes)
}

// GET: /{liveClassID}
func getLiveClassHandler(w http.ResponseWriter, r *http.Request) {
	lc, err := repo.Repository.GetLiveClass(chi.URLParam(r, "liveClassID"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, lc)
}

// POST: /
func createLiveClassHandler(w http.ResponseWriter, r *http.Request) {
	guest, err := auth.GetGuestFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.CreateLiveClassRequest
	if err := decodeRequest(r, &req, false); err != nil {
		writeError(w, r, err)
		return
	}
	if req.HostGuestID == "" {
		req.HostGuestID = guest.ID
		req.HostGuestName = guest.Name
	}

	lc, err := repo.Repository.CreateLiveClass(&req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, lc)
}

// PUT: /{liveClassID}/status
func updateLiveClassStatusHandler(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateLiveClassStatusRequest
	if err := decodeRequest(r, &req, false); err != nil {
		writeError(w, r, err)
		return
	}
	req.LiveClassID = chi.URLParam(r, "liveClassID")

	lc, err := repo.Repository.UpdateLiveClassStatus(&req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, lc)
}
