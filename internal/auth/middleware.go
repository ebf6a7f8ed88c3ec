package auth

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/go-chi/render"
	"github.com/golang/glog"

	"sarvasva/internal/config"
	"sarvasva/internal/models"
	"sarvasva/internal/qerrors"
	repo "sarvasva/internal/repository"
)

const (
	GuestIDHeader   = "x-guest-id"
	GuestNameHeader = "x-guest-name"
	AdminKeyHeader  = "x-admin-key"
)

type contextKey string

const currentGuestKey contextKey = "currentGuest"

// Guest is the caller of a request. There are no accounts, so the identity is whatever the client
// says it is.
type Guest struct {
	ID   string
	Name string
}

// GuestCtx is a middleware that resolves the guest identity from the request headers. Callers
// without an x-guest-id header share the default guest. The Guest is added to the request
// context, and can be accessed via GetGuestFromRequest.
func GuestCtx() func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			guest := &Guest{
				ID:   strings.TrimSpace(r.Header.Get(GuestIDHeader)),
				Name: strings.TrimSpace(r.Header.Get(GuestNameHeader)),
			}
			if guest.ID == "" {
				guest.ID = config.Config.DefaultGuestID
			}
			if guest.Name == "" {
				guest.Name = models.DefaultGuestName
			}

			if err := repo.ValidateID(guest.ID); err != nil {
				rejectRequest(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), currentGuestKey, guest)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetGuestFromRequest returns the Guest within the request context. Only works with routes that
// implement the GuestCtx middleware.
func GetGuestFromRequest(r *http.Request) (*Guest, error) {
	guest, ok := r.Context().Value(currentGuestKey).(*Guest)
	if ok && guest != nil {
		return guest, nil
	}

	return nil, GuestNotFoundError
}

// RequireAdminKey is a middleware that rejects requests without the configured admin key. When
// no admin key is configured, every request is let through.
func RequireAdminKey() func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			want := config.Config.AdminKey
			if want == "" {
				next.ServeHTTP(w, r)
				return
			}

			got := r.Header.Get(AdminKeyHeader)
			if subtle.ConstantTimeCompare([]byte(got), []byte(want)) != 1 {
				glog.Warningf("rejected %s %s: bad admin key", r.Method, r.URL.Path)
				rejectRequest(w, r, qerrors.AdminKeyRequiredError)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// Helpers

func rejectRequest(w http.ResponseWriter, r *http.Request, err error) {
	render.Status(r, qerrors.HTTPStatus(err))
	render.JSON(w, r, map[string]string{"message": err.Error()})
}
