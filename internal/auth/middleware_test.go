package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sarvasva/internal/config"
	"sarvasva/internal/models"
)

func guestEcho(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		guest, err := GetGuestFromRequest(r)
		require.NoError(t, err)
		w.Write([]byte(guest.ID + "|" + guest.Name))
	})
}

func TestGuestCtx(t *testing.T) {
	handler := GuestCtx()(guestEcho(t))

	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{name: "defaults", want: "guest|" + models.DefaultGuestName},
		{name: "headers", headers: map[string]string{GuestIDHeader: "g1", GuestNameHeader: "Asha"}, want: "g1|Asha"},
		{name: "trimmed", headers: map[string]string{GuestIDHeader: "  g2 "}, want: "g2|" + models.DefaultGuestName},
		{name: "blank", headers: map[string]string{GuestIDHeader: "   "}, want: "guest|" + models.DefaultGuestName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.want, rec.Body.String())
		})
	}
}

func TestGuestCtxRejectsOversizedID(t *testing.T) {
	handler := GuestCtx()(guestEcho(t))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(GuestIDHeader, strings.Repeat("x", 200))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "message")
}

func TestGetGuestFromRequestWithoutMiddleware(t *testing.T) {
	_, err := GetGuestFromRequest(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, GuestNotFoundError, err)
}

func TestRequireAdminKey(t *testing.T) {
	old := config.Config
	t.Cleanup(func() { config.Config = old })

	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	handler := RequireAdminKey()(ok)

	serve := func(key string) int {
		req := httptest.NewRequest(http.MethodPost, "/videos/c1", nil)
		if key != "" {
			req.Header.Set(AdminKeyHeader, key)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	config.Config = config.DefaultConfig()
	assert.Equal(t, http.StatusNoContent, serve(""))

	config.Config.AdminKey = "secret"
	assert.Equal(t, http.StatusForbidden, serve(""))
	assert.Equal(t, http.StatusForbidden, serve("wrong"))
	assert.Equal(t, http.StatusNoContent, serve("secret"))
}
