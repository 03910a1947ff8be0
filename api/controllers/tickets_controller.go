package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"Litreview/api/models"
	"Litreview/api/utils/flash"
	"Litreview/api/utils/httpctx"

	"github.com/gin-gonic/gin"
)

func ticketFromForm(c *gin.Context, ticket *models.Ticket) {
	ticket.Title = c.PostForm("title")
	ticket.Description = c.PostForm("description")
	ticket.Prepare()
}

func (server *Server) renderTicketForm(c *gin.Context, status int, ticket *models.Ticket, errorMessages map[string]string) {
	data := gin.H{
		"Title":  "Créer un billet",
		"Ticket": ticket,
		"Errors": errorMessages,
		"Action": "/ticket/create/",
		"Submit": "Envoyer",
		"Cancel": defaultRedirect,
	}
	if ticket.ID != 0 {
		data["Title"] = "Modifier le billet"
		data["Action"] = fmt.Sprintf("/ticket/%d/edit/", ticket.ID)
		data["Submit"] = "Enregistrer"
		data["Cancel"] = "/posts/"
	}
	server.render(c, status, "ticket_form", data)
}

// ownedTicket loads the :id ticket of the current user. It writes the 404
// or 500 response itself and reports whether the handler should go on.
func (server *Server) ownedTicket(c *gin.Context) (*models.Ticket, bool) {
	id, ok := idParam(c, "id")
	if !ok {
		server.NotFound(c)
		return nil, false
	}
	uid, _ := httpctx.CurrentUserID(c)

	ticket, err := (&models.Ticket{}).FindOwnedTicket(server.DB.WithContext(c.Request.Context()), id, uid)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			server.NotFound(c)
		} else {
			server.internalError(c, err)
		}
		return nil, false
	}
	return ticket, true
}

func (server *Server) CreateTicketPage(c *gin.Context) {
	server.renderTicketForm(c, http.StatusOK, &models.Ticket{}, nil)
}

func (server *Server) CreateTicket(c *gin.Context) {
	ctx := c.Request.Context()
	uid, _ := httpctx.CurrentUserID(c)

	ticket := &models.Ticket{UserID: uid}
	ticketFromForm(c, ticket)
	errorMessages := ticket.Validate()

	img, imageErr, err := server.readUpload(c)
	if err != nil {
		server.internalError(c, err)
		return
	}
	if imageErr != "" {
		errorMessages[imageField] = imageErr
	}
	if len(errorMessages) > 0 {
		server.renderTicketForm(c, http.StatusUnprocessableEntity, ticket, errorMessages)
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

	if _, err := ticket.SaveTicket(server.DB.WithContext(ctx)); err != nil {
		server.discardImage(ctx, ticket.Image)
		server.internalError(c, err)
		return
	}

	flash.Add(c, flash.Success, "Billet créé avec succès !")
	redirect(c, defaultRedirect)
}

func (server *Server) EditTicketPage(c *gin.Context) {
	ticket, ok := server.ownedTicket(c)
	if !ok {
		return
	}
	server.renderTicketForm(c, http.StatusOK, ticket, nil)
}

// UpdateTicket saves the edited fields. A new upload replaces the stored
// image, which is then removed from the media store.
func (server *Server) UpdateTicket(c *gin.Context) {
	ctx := c.Request.Context()
	ticket, ok := server.ownedTicket(c)
	if !ok {
		return
	}

	ticketFromForm(c, ticket)
	errorMessages := ticket.Validate()

	img, imageErr, err := server.readUpload(c)
	if err != nil {
		server.internalError(c, err)
		return
	}
	if imageErr != "" {
		errorMessages[imageField] = imageErr
	}
	if len(errorMessages) > 0 {
		server.renderTicketForm(c, http.StatusUnprocessableEntity, ticket, errorMessages)
		return
	}

	previous := ticket.Image
	if img != nil {
		key, err := server.Media.Save(ctx, img)
		if err != nil {
			server.internalError(c, err)
			return
		}
		ticket.Image = key
	}

	if _, err := ticket.UpdateATicket(server.DB.WithContext(ctx)); err != nil {
		if ticket.Image != previous {
			server.discardImage(ctx, ticket.Image)
		}
		server.internalError(c, err)
		return
	}
	if ticket.Image != previous {
		server.discardImage(ctx, previous)
	}

	flash.Add(c, flash.Success, "Billet modifié avec succès !")
	redirect(c, "/posts/")
}

func (server *Server) DeleteTicketPage(c *gin.Context) {
	ticket, ok := server.ownedTicket(c)
	if !ok {
		return
	}
	server.render(c, http.StatusOK, "ticket_delete", gin.H{
		"Title":  "Supprimer le billet",
		"Ticket": ticket,
	})
}

// DeleteTicket removes the ticket, the reviews answering it and its image.
func (server *Server) DeleteTicket(c *gin.Context) {
	ctx := c.Request.Context()
	ticket, ok := server.ownedTicket(c)
	if !ok {
		return
	}

	if _, err := ticket.DeleteATicket(server.DB.WithContext(ctx)); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			server.NotFound(c)
			return
		}
		server.internalError(c, err)
		return
	}
	server.discardImage(ctx, ticket.Image)

	flash.Add(c, flash.Success, "Billet supprimé avec succès !")
	redirect(c, "/posts/")
}
