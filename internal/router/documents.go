package router

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"sarvasva/internal/config"
	"sarvasva/internal/middleware"
	"sarvasva/internal/models"
	"sarvasva/internal/qerrors"
	repo "sarvasva/internal/repository"
)

// multipartOverhead is the room left for form fields and part headers on top of the file itself.
const multipartOverhead = 1 << 20

func DocumentRoutes() *chi.Mux {
	router := chi.NewRouter()

	router.Route("/students/{studentID}", func(router chi.Router) {
		// Sets "studentID" from URL param in the context
		router.Use(middleware.StudentCtx())

		router.Mount("/documents", documentRoutes())
	})

	return router
}

// documentRoutes serves the documents of the student in the request context.
func documentRoutes() *chi.Mux {
	router := chi.NewRouter()

	router.Get("/", listDocumentsHandler)
	router.Post("/upload", uploadDocumentHandler)
	router.Post("/{documentID}/summarize", summarizeDocumentHandler)
	router.Delete("/{documentID}", deleteDocumentHandler)

	return router
}

// GET: /
func listDocumentsHandler(w http.ResponseWriter, r *http.Request) {
	docs, err := repo.Repository.ListDocuments(middleware.StudentID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, docs)
}

// POST: /upload (multipart: file, title, type)
func uploadDocumentHandler(w http.ResponseWriter, r *http.Request) {
	if limit := config.Config.MaxUploadBytes; limit > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, limit+multipartOverhead)
	}
	if err := r.ParseMultipartForm(multipartOverhead); err != nil {
		writeError(w, r, qerrors.NewValidationError(fmt.Sprintf("invalid upload: %v", err)))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		writeError(w, r, qerrors.MissingFileError)
		return
	}
	if err != nil {
		writeError(w, r, qerrors.NewValidationError(fmt.Sprintf("invalid upload: %v", err)))
		return
	}
	defer file.Close()

	doc, err := repo.Repository.UploadDocument(&models.UploadDocumentRequest{
		UserID:       middleware.StudentID(r),
		Title:        r.FormValue("title"),
		Type:         r.FormValue("type"),
		OriginalName: header.Filename,
		File:         file,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, doc)
}

// POST: /{documentID}/summarize
func summarizeDocumentHandler(w http.ResponseWriter, r *http.Request) {
	doc, err := repo.Repository.SummarizeDocument(r.Context(), &models.DocumentRequest{
		UserID:     middleware.StudentID(r),
		DocumentID: chi.URLParam(r, "documentID"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, doc)
}

// DELETE: /{documentID}
func deleteDocumentHandler(w http.ResponseWriter, r *http.Request) {
	documentID := chi.URLParam(r, "documentID")

	err := repo.Repository.DeleteDocument(&models.DocumentRequest{
		UserID:     middleware.StudentID(r),
		DocumentID: documentID,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, MessageResponse{Message: "Successfully deleted document " + documentID})
}
