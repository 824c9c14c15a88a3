package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuardRedirectsAnonymous(t *testing.T) {
	env := newTestEnv(t)

	for _, target := range []string{"/add", "/my-items", "/orders", "/delete/1"} {
		rec := env.do(t, http.MethodGet, target, nil, nil)
		assert.Equal(t, http.StatusSeeOther, rec.Code, target)
		assert.Equal(t, "/login", rec.Result().Header.Get("Location"), target)
	}
}

func TestGuardRedirectsNonAdmin(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "alice", "secret1", false)
	cookies := env.login(t, "alice", "secret1")

	for _, target := range []string{"/add", "/my-items", "/orders", "/delete/1"} {
		rec := env.do(t, http.MethodGet, target, nil, cookies)
		assert.Equal(t, http.StatusSeeOther, rec.Code, target)
		assert.Equal(t, "/", rec.Result().Header.Get("Location"), target)
	}
}

func TestGuardBlocksMutationsByNonAdmins(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "alice", "secret1", false)
	cookies := env.login(t, "alice", "secret1")

	body, contentType := multipartForm(t, map[string]string{
		"content": "Sneaky product", "store": "Nope", "price": "1",
	}, "x.png", []byte("png"))

	// Anonymous and non-admin POSTs alike must not create anything.
	env.doMultipart(t, "/add", body, contentType, nil)
	body, contentType = multipartForm(t, map[string]string{
		"content": "Sneaky product", "store": "Nope", "price": "1",
	}, "x.png", []byte("png"))
	env.doMultipart(t, "/add", body, contentType, cookies)

	count, err := env.db.CountItems()
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestGuardAdmitsAdmin(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "root", "secret1", true)
	cookies := env.login(t, "root", "secret1")

	for _, target := range []string{"/add", "/my-items", "/orders"} {
		rec := env.do(t, http.MethodGet, target, nil, cookies)
		assert.Equal(t, http.StatusOK, rec.Code, target)
	}
}

func TestUnknownPathRenders404Page(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/no-such-page", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "404")
}
