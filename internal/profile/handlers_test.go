package profile

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imadgeboyega/nomad-dating/internal/auth"
	"github.com/imadgeboyega/nomad-dating/internal/common/utils"
)

const secret = "profile-secret"

func newRouter(repo Repository) http.Handler {
	r := chi.NewRouter()
	RegisterRoutes(r, NewHandler(repo), auth.NewMiddleware(secret))
	return r
}

func call(t *testing.T, h http.Handler, method, path, uid, body string) *httptest.ResponseRecorder {
	t.Helper()
	signed, err := utils.GenerateJWT(&utils.JWTClaims{
		UserID:    uid,
		Type:      utils.TokenTypeAccess,
		ExpiresAt: time.Now().Add(time.Hour).Unix(),
	}, secret)
	require.NoError(t, err)

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func profileFrom(t *testing.T, rec *httptest.ResponseRecorder) *Profile {
	t.Helper()
	var body struct {
		Success bool     `json:"success"`
		Data    *Profile `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.True(t, body.Success)
	return body.Data
}

func TestSetupAndGetProfile(t *testing.T) {
	repo := NewMemoryRepository()
	h := newRouter(repo)

	rec := call(t, h, http.MethodPost, "/api/v1/profile/setup", "u1", `{"name":"Ana"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = call(t, h, http.MethodPost, "/api/v1/profile/setup", "u1", `{"name":"Ana"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = call(t, h, http.MethodGet, "/api/v1/profile", "u1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Ana", profileFrom(t, rec).DisplayName())

	rec = call(t, h, http.MethodGet, "/api/v1/users/u1/profile", "u2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1", profileFrom(t, rec).UID)

	rec = call(t, h, http.MethodGet, "/api/v1/users/nobody/profile", "u2", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSetupValidation(t *testing.T) {
	h := newRouter(NewMemoryRepository())

	assert.Equal(t, http.StatusBadRequest, call(t, h, http.MethodPost, "/api/v1/profile/setup", "u1", `{}`).Code)
	assert.Equal(t, http.StatusBadRequest, call(t, h, http.MethodPost, "/api/v1/profile/setup", "u1", `{"name":"A","photoURL":"nope"}`).Code)
	assert.Equal(t, http.StatusBadRequest, call(t, h, http.MethodPost, "/api/v1/profile/setup", "u1", `{`).Code)
}

func TestUpdateProfile(t *testing.T) {
	repo := NewMemoryRepository(&Profile{UID: "u1"})
	h := newRouter(repo)

	rec := call(t, h, http.MethodPut, "/api/v1/profile", "u1", `{"age":31,"interests":["a","b"],"favoriteFood":"ramen"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	p := profileFrom(t, rec)
	assert.Equal(t, 31, *p.Age)
	assert.Equal(t, []string{"a", "b"}, p.Interests)
	assert.Equal(t, "ramen", p.Attributes["favoriteFood"])

	rec = call(t, h, http.MethodPut, "/api/v1/profile", "u1", `{"age":null}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, profileFrom(t, rec).Age)

	stored, err := repo.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Nil(t, stored.Age)
}

func TestUpdateProfileRejects(t *testing.T) {
	h := newRouter(NewMemoryRepository(&Profile{UID: "u1"}))

	assert.Equal(t, http.StatusBadRequest, call(t, h, http.MethodPut, "/api/v1/profile", "u1", `{}`).Code)
	assert.Equal(t, http.StatusBadRequest, call(t, h, http.MethodPut, "/api/v1/profile", "u1", `{"uid":"x"}`).Code)
	assert.Equal(t, http.StatusBadRequest, call(t, h, http.MethodPut, "/api/v1/profile", "u1", `{"age":"old"}`).Code)
	assert.Equal(t, http.StatusNotFound, call(t, h, http.MethodPut, "/api/v1/profile", "ghost", `{"city":"Rome"}`).Code)
}
