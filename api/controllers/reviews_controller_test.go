package controllers

import (
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"Litreview/api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateReviewForTicket(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	ticket := env.createTicket(t, alice, "Dune")
	path := fmt.Sprintf("/review/create/%d/", ticket.ID)
	c := env.as(t, bob)

	w := c.get(path)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice a demandé une critique")

	w = c.post(path, url.Values{"headline": {"Superbe"}, "rating": {"4"}, "body": {"Un classique."}})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/feed/", w.Header().Get("Location"))

	var review models.Review
	require.NoError(t, env.db.First(&review).Error)
	assert.Equal(t, ticket.ID, review.TicketID)
	assert.Equal(t, bob.ID, review.UserID)
	assert.Equal(t, 4, review.Rating)
	assert.Contains(t, c.get("/feed/").Body.String(), "Critique publiée avec succès !")
}

func TestCreateReviewTwiceIsRefused(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	ticket := env.createTicket(t, alice, "Dune")
	env.createReview(t, bob, ticket, "Superbe")
	path := fmt.Sprintf("/review/create/%d/", ticket.ID)
	c := env.as(t, bob)

	for _, w := range []int{c.get(path).Code, c.post(path, url.Values{"headline": {"Encore"}, "rating": {"2"}}).Code} {
		assert.Equal(t, http.StatusFound, w)
	}
	assert.Equal(t, int64(1), countRows(t, env.db, &models.Review{}))
	assert.Contains(t, c.get("/feed/").Body.String(), "Vous avez déjà posté une critique pour ce billet.")
}

func TestCreateReviewValidation(t *testing.T) {
	env := newTestEnv(t)
	ticket := env.createTicket(t, env.createUser(t, "alice"), "Dune")
	c := env.as(t, env.createUser(t, "bob"))
	path := fmt.Sprintf("/review/create/%d/", ticket.ID)

	tests := []struct {
		name     string
		form     url.Values
		contains string
	}{
		{"missing rating", url.Values{"headline": {"Bien"}}, "Ce champ est obligatoire."},
		{"rating out of range", url.Values{"headline": {"Bien"}, "rating": {"6"}}, "6 n&#39;en fait pas partie"},
		{"rating not a number", url.Values{"headline": {"Bien"}, "rating": {"five"}}, "five n&#39;en fait pas partie"},
		{"missing headline", url.Values{"rating": {"3"}}, "Ce champ est obligatoire."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := c.post(path, tt.form)
			assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
			assert.Contains(t, w.Body.String(), tt.contains)
		})
	}
	assert.Zero(t, countRows(t, env.db, &models.Review{}))
}

func TestCreateReviewUnknownTicket(t *testing.T) {
	env := newTestEnv(t)
	c := env.as(t, env.createUser(t, "bob"))

	assert.Equal(t, http.StatusNotFound, c.get("/review/create/42/").Code)
	assert.Equal(t, http.StatusNotFound, c.get("/review/create/abc/").Code)
}

func TestCreateStandaloneReview(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	c := env.as(t, alice)

	assert.Equal(t, http.StatusOK, c.get("/review/create/").Code)

	w := c.post("/review/create/", url.Values{"title": {"Dune"}, "headline": {"Culte"}, "rating": {"5"}})
	require.Equal(t, http.StatusFound, w.Code)

	var review models.Review
	require.NoError(t, env.db.Preload("Ticket").First(&review).Error)
	assert.Equal(t, "Dune", review.Ticket.Title)
	assert.Equal(t, alice.ID, review.Ticket.UserID)
	assert.Equal(t, alice.ID, review.UserID)
}

func TestCreateStandaloneReviewStoresNothingOnError(t *testing.T) {
	env := newTestEnv(t)
	c := env.as(t, env.createUser(t, "alice"))

	w := c.post("/review/create/", url.Values{"title": {"Dune"}, "headline": {""}, "rating": {"5"}})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), `value="Dune"`)
	assert.Zero(t, countRows(t, env.db, &models.Ticket{}))
	assert.Zero(t, countRows(t, env.db, &models.Review{}))
}

func TestEditReview(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	review := env.createReview(t, bob, env.createTicket(t, alice, "Dune"), "Bien")
	path := fmt.Sprintf("/review/%d/edit/", review.ID)

	assert.Equal(t, http.StatusNotFound, env.as(t, alice).get(path).Code)

	c := env.as(t, bob)
	w := c.get(path)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `value="Bien"`)

	w = c.post(path, url.Values{"headline": {"Très bien"}, "rating": {"5"}})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/posts/", w.Header().Get("Location"))

	var reloaded models.Review
	require.NoError(t, env.db.First(&reloaded, review.ID).Error)
	assert.Equal(t, "Très bien", reloaded.Headline)
	assert.Equal(t, 5, reloaded.Rating)
}

func TestDeleteReview(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	review := env.createReview(t, bob, env.createTicket(t, alice, "Dune"), "Bien")
	path := fmt.Sprintf("/review/%d/delete/", review.ID)

	assert.Equal(t, http.StatusNotFound, env.as(t, alice).post(path, nil).Code)

	c := env.as(t, bob)
	assert.Equal(t, http.StatusOK, c.get(path).Code)
	w := c.post(path, nil)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Zero(t, countRows(t, env.db, &models.Review{}))
	assert.Equal(t, int64(1), countRows(t, env.db, &models.Ticket{}))
}
