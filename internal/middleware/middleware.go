package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type contextKey string

const (
	courseIDKey  contextKey = "courseID"
	studentIDKey contextKey = "studentID"
)

func paramCtx(param string, key contextKey) func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			value := chi.URLParam(r, param)

			ctx := context.WithValue(r.Context(), key, value)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CourseCtx copies the {courseID} URL parameter into the request context.
func CourseCtx() func(handler http.Handler) http.Handler {
	return paramCtx("courseID", courseIDKey)
}

// StudentCtx copies the {studentID} URL parameter into the request context.
func StudentCtx() func(handler http.Handler) http.Handler {
	return paramCtx("studentID", studentIDKey)
}

func CourseID(r *http.Request) string {
	id, _ := r.Context().Value(courseIDKey).(string)
	return id
}

func StudentID(r *http.Request) string {
	id, _ := r.Context().Value(studentIDKey).(string)
	return id
}
