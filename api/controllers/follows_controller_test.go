package controllers

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"Litreview/api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowUser(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	env.createUser(t, "bob")
	c := env.as(t, alice)

	tests := []struct {
		username string
		message  string
	}{
		{"alice", "Vous ne pouvez pas vous suivre vous-même."},
		{"ghost", "ghost n&#39;existe pas."},
		{" Bob ", "Vous suivez maintenant bob."},
		{"bob", "Vous suivez déjà bob."},
	}
	for _, tt := range tests {
		w := c.post("/subscriptions/", url.Values{"username": {tt.username}})
		require.Equal(t, http.StatusFound, w.Code, tt.username)
		assert.Equal(t, "/subscriptions/", w.Header().Get("Location"))

		assert.Contains(t, c.get("/subscriptions/").Body.String(), tt.message, tt.username)
	}
	assert.Equal(t, int64(1), countRows(t, env.db, &models.Follow{}))
}

func TestFollowUserRequiresUsername(t *testing.T) {
	env := newTestEnv(t)
	c := env.as(t, env.createUser(t, "alice"))

	w := c.post("/subscriptions/", url.Values{"username": {"   "}})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Ce champ est obligatoire.")
}

func TestFollowUserRejectsOverlongUsername(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	c := env.as(t, alice)

	w := c.post("/subscriptions/", url.Values{"username": {strings.Repeat("a", models.MaxUsernameLength+1)}})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "au plus 150 caractères.")
	assert.Empty(t, w.Header().Get("Location"))
	assert.Zero(t, countRows(t, env.db, &models.Follow{}))
}

func TestSubscriptionsPage(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	carol := env.createUser(t, "carol")
	env.follow(t, alice, bob)
	env.follow(t, carol, alice)

	w := env.as(t, alice).get("/subscriptions/")

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, fmt.Sprintf(`href="/unfollow/%d/"`, bob.ID))
	assert.Contains(t, body, "carol")
	assert.NotContains(t, body, fmt.Sprintf(`href="/unfollow/%d/"`, carol.ID))
}

func TestUnfollow(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	carol := env.createUser(t, "carol")
	env.follow(t, alice, bob)
	c := env.as(t, alice)

	assert.Equal(t, http.StatusNotFound, c.get(fmt.Sprintf("/unfollow/%d/", carol.ID)).Code)
	assert.Equal(t, http.StatusNotFound, c.post("/unfollow/9999/", nil).Code)

	path := fmt.Sprintf("/unfollow/%d/", bob.ID)
	w := c.get(path)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "bob")

	w = c.post(path, nil)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/subscriptions/", w.Header().Get("Location"))
	assert.Zero(t, countRows(t, env.db, &models.Follow{}))
	assert.Contains(t, c.get("/subscriptions/").Body.String(), "Vous ne suivez plus bob.")

	assert.Equal(t, http.StatusNotFound, c.post(path, nil).Code)
}
