package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"Litreview/api/models"
	"Litreview/api/utils/flash"
	"Litreview/api/utils/httpctx"

	"github.com/gin-gonic/gin"
)

const duplicateReviewMessage = "Vous avez déjà posté une critique pour ce billet."

// reviewFromForm copies the submitted fields into review and returns the
// validation messages, including the rating choice.
func reviewFromForm(c *gin.Context, review *models.Review) map[string]string {
	review.Headline = c.PostForm("headline")
	review.Body = c.PostForm("body")
	review.Prepare()

	errorMessages := review.Validate()
	raw := c.PostForm("rating")
	rating, err := strconv.Atoi(raw)
	switch {
	case raw == "":
		errorMessages["rating"] = "Ce champ est obligatoire."
	case err != nil || rating < models.MinRating || rating > models.MaxRating:
		errorMessages["rating"] = fmt.Sprintf("Sélectionnez un choix valide. %s n'en fait pas partie.", raw)
	default:
		review.Rating = rating
	}
	return errorMessages
}

func (server *Server) renderReviewForm(c *gin.Context, status int, ticket *models.Ticket, review *models.Review, errorMessages map[string]string) {
	data := gin.H{
		"Title":  "Créer une critique",
		"Ticket": ticket,
		"Review": review,
		"Errors": errorMessages,
		"Action": fmt.Sprintf("/review/create/%d/", ticket.ID),
		"Submit": "Envoyer",
		"Cancel": defaultRedirect,
	}
	if review.ID != 0 {
		data["Title"] = "Modifier la critique"
		data["Action"] = fmt.Sprintf("/review/%d/edit/", review.ID)
		data["Submit"] = "Enregistrer"
		data["Cancel"] = "/posts/"
	}
	server.render(c, status, "review_form", data)
}

// reviewableTicket loads the :ticket_id ticket for a new review. A viewer
// who already reviewed it is sent back to the feed with an error message.
func (server *Server) reviewableTicket(c *gin.Context) (*models.Ticket, bool) {
	id, ok := idParam(c, "ticket_id")
	if !ok {
		server.NotFound(c)
		return nil, false
	}
	db := server.DB.WithContext(c.Request.Context())

	ticket, err := (&models.Ticket{}).FindTicketByID(db, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			server.NotFound(c)
		} else {
			server.internalError(c, err)
		}
		return nil, false
	}

	uid, _ := httpctx.CurrentUserID(c)
	reviewed, err := models.HasUserReviewed(db, ticket.ID, uid)
	if err != nil {
		server.internalError(c, err)
		return nil, false
	}
	if reviewed {
		flash.Add(c, flash.Error, duplicateReviewMessage)
		redirect(c, defaultRedirect)
		return nil, false
	}
	return ticket, true
}

func (server *Server) CreateReviewPage(c *gin.Context) {
	ticket, ok := server.reviewableTicket(c)
	if !ok {
		return
	}
	server.renderReviewForm(c, http.StatusOK, ticket, &models.Review{}, nil)
}

func (server *Server) CreateReview(c *gin.Context) {
	ticket, ok := server.reviewableTicket(c)
	if !ok {
		return
	}
	uid, _ := httpctx.CurrentUserID(c)

	review := &models.Review{TicketID: ticket.ID, UserID: uid}
	if errorMessages := reviewFromForm(c, review); len(errorMessages) > 0 {
		server.renderReviewForm(c, http.StatusUnprocessableEntity, ticket, review, errorMessages)
		return
	}

	if _, err := review.SaveReview(server.DB.WithContext(c.Request.Context())); err != nil {
		if errors.Is(err, models.ErrDuplicateReview) {
			flash.Add(c, flash.Error, duplicateReviewMessage)
			redirect(c, defaultRedirect)
			return
		}
		server.internalError(c, err)
		return
	}

	flash.Add(c, flash.Success, "Critique publiée avec succès !")
	redirect(c, defaultRedirect)
}

func (server *Server) renderStandaloneForm(c *gin.Context, status int, ticket *models.Ticket, review *models.Review, ticketErrors, reviewErrors map[string]string) {
	server.render(c, status, "review_standalone", gin.H{
		"Title":        "Créer une critique",
		"Ticket":       ticket,
		"Review":       review,
		"TicketErrors": ticketErrors,
		"ReviewErrors": reviewErrors,
	})
}

func (server *Server) CreateStandaloneReviewPage(c *gin.Context) {
	server.renderStandaloneForm(c, http.StatusOK, &models.Ticket{}, &models.Review{}, nil, nil)
}

// CreateStandaloneReview posts a ticket and the author's review of it in one
// go. Either both are stored or neither is.
func (server *Server) CreateStandaloneReview(c *gin.Context) {
	ctx := c.Request.Context()
	uid, _ := httpctx.CurrentUserID(c)

	ticket := &models.Ticket{UserID: uid}
	ticketFromForm(c, ticket)
	ticketErrors := ticket.Validate()

	review := &models.Review{UserID: uid}
	reviewErrors := reviewFromForm(c, review)

	img, imageErr, err := server.readUpload(c)
	if err != nil {
		server.internalError(c, err)
		return
	}
	if imageErr != "" {
		ticketErrors[imageField] = imageErr
	}
	if len(ticketErrors) > 0 || len(reviewErrors) > 0 {
		server.renderStandaloneForm(c, http.StatusUnprocessableEntity, ticket, review, ticketErrors, reviewErrors)
		return
	}

	if img != nil {
		key, err := server.Media.Save(ctx, img)
		if err != nil {
			server.internalError(c, err)
			return
		}
		ticket.Image = key
	}

	if err := models.CreateTicketWithReview(server.DB.WithContext(ctx), ticket, review); err != nil {
		server.discardImage(ctx, ticket.Image)
		server.internalError(c, err)
		return
	}

	flash.Add(c, flash.Success, "Critique publiée avec succès !")
	redirect(c, defaultRedirect)
}

func (server *Server) ownedReview(c *gin.Context) (*models.Review, bool) {
	id, ok := idParam(c, "id")
	if !ok {
		server.NotFound(c)
		return nil, false
	}
	uid, _ := httpctx.CurrentUserID(c)

	review, err := (&models.Review{}).FindOwnedReview(server.DB.WithContext(c.Request.Context()), id, uid)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			server.NotFound(c)
		} else {
			server.internalError(c, err)
		}
		return nil, false
	}
	return review, true
}

func (server *Server) EditReviewPage(c *gin.Context) {
	review, ok := server.ownedReview(c)
	if !ok {
		return
	}
	server.renderReviewForm(c, http.StatusOK, &review.Ticket, review, nil)
}

func (server *Server) UpdateReview(c *gin.Context) {
	review, ok := server.ownedReview(c)
	if !ok {
		return
	}

	if errorMessages := reviewFromForm(c, review); len(errorMessages) > 0 {
		server.renderReviewForm(c, http.StatusUnprocessableEntity, &review.Ticket, review, errorMessages)
		return
	}

	if _, err := review.UpdateAReview(server.DB.WithContext(c.Request.Context())); err != nil {
		server.internalError(c, err)
		return
	}

	flash.Add(c, flash.Success, "Critique modifiée avec succès !")
	redirect(c, "/posts/")
}

func (server *Server) DeleteReviewPage(c *gin.Context) {
	review, ok := server.ownedReview(c)
	if !ok {
		return
	}
	server.render(c, http.StatusOK, "review_delete", gin.H{
		"Title":  "Supprimer la critique",
		"Review": review,
	})
}

func (server *Server) DeleteReview(c *gin.Context) {
	review, ok := server.ownedReview(c)
	if !ok {
		return
	}

	if _, err := review.DeleteAReview(server.DB.WithContext(c.Request.Context())); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			server.NotFound(c)
			return
		}
		server.internalError(c, err)
		return
	}

	flash.Add(c, flash.Success, "Critique supprimée avec succès !")
	redirect(c, "/posts/")
}
