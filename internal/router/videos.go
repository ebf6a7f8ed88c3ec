package router

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"sarvasva/internal/auth"
	"sarvasva/internal/middleware"
	"sarvasva/internal/models"
	"sarvasva/internal/qerrors"
	repo "sarvasva/internal/repository"
)

func VideoRoutes() *chi.Mux {
	router := chi.NewRouter()

	router.Route("/{courseID}", func(router chi.Router) {
		// Sets "courseID" from URL param in the context
		router.Use(middleware.CourseCtx())

		router.Get("/", getVideosHandler)

		// Modifying videos requires the admin key when one is configured
		router.Group(func(router chi.Router) {
			router.Use(auth.RequireAdminKey())

			router.Post("/", addVideoHandler)
			router.Put("/{videoIndex}/subtitles", updateSubtitlesHandler)
			router.Put("/{videoIndex}/board-text", addBoardTextHandler)
		})
	})

	return router
}

func videoIndex(r *http.Request) (int, error) {
	idx, err := strconv.Atoi(chi.URLParam(r, "videoIndex"))
	if err != nil || idx < 0 {
		return 0, qerrors.VideoNotFoundError
	}
	return idx, nil
}

// GET: /{courseID}
func getVideosHandler(w http.ResponseWriter, r *http.Request) {
	videos, err := repo.Repository.GetVideos(middleware.CourseID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, videos)
}

// POST: /{courseID}
func addVideoHandler(w http.ResponseWriter, r *http.Request) {
	var req models.AddVideoRequest
	if err := decodeRequest(r, &req, false); err != nil {
		writeError(w, r, err)
		return
	}
	req.CourseID = middleware.CourseID(r)

	video, err := repo.Repository.AddVideo(&req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, video)
}

// PUT: /{courseID}/{videoIndex}/subtitles
func updateSubtitlesHandler(w http.ResponseWriter, r *http.Request) {
	idx, err := videoIndex(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.UpdateSubtitlesRequest
	if err := decodeRequest(r, &req, false); err != nil {
		writeError(w, r, err)
		return
	}
	req.CourseID = middleware.CourseID(r)
	req.VideoIndex = idx

	video, err := repo.Repository.UpdateSubtitles(&req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, video)
}

// PUT: /{courseID}/{videoIndex}/board-text
func addBoardTextHandler(w http.ResponseWriter, r *http.Request) {
	idx, err := videoIndex(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.AddBoardTextRequest
	if err := decodeRequest(r, &req, false); err != nil {
		writeError(w, r, err)
		return
	}
	req.CourseID = middleware.CourseID(r)
	req.VideoIndex = idx

	video, err := repo.Repository.AddBoardText(&req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, video)
}
