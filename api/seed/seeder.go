// Package seed loads demonstration accounts and content. Running it twice
// leaves the database unchanged.
package seed

import (
	"errors"
	"fmt"

	"Litreview/api/logger"
	"Litreview/api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type seedUser struct {
	Username string
	Password string
	IsAdmin  bool
	IsStaff  bool
}

type seedTicket struct {
	Title       string
	Description string
	Author      string
}

type seedReview struct {
	Ticket   int
	Author   string
	Headline string
	Body     string
	Rating   int
}

type seedFollow struct {
	Follower string
	Followed string
}

var users = []seedUser{
	{Username: "jean_5679", Password: "testpass123"},
	{Username: "sarahj", Password: "testpass123"},
	{Username: "severine123", Password: "testpass123"},
	{Username: "admin", Password: "admin123", IsAdmin: true, IsStaff: true},
}

var tickets = []seedTicket{
	{
		Title:       "The Origin of Species - Charles Darwin",
		Description: "Je suis à la recherche d'un avis sur ce sujet, svp, merci !",
		Author:      "jean_5679",
	},
	{
		Title:  "Une brève histoire du temps - Stephen Hawking",
		Author: "sarahj",
	},
	{
		Title:       "Discours de la méthode - René Descartes",
		Description: "Un classique de la philosophie !",
		Author:      "sarahj",
	},
	{
		Title:       "La relativité - Albert Einstein",
		Description: "Qui peut m'expliquer cette théorie ?",
		Author:      "severine123",
	},
}

var reviews = []seedReview{
	{
		Ticket:   0,
		Author:   "sarahj",
		Headline: "Véritablement révolutionnaire",
		Body:     "Une excellente lecture et je vous recommande vivement !",
		Rating:   5,
	},
	{
		Ticket:   2,
		Author:   "severine123",
		Headline: "Excellent",
		Body:     "Un must-read pour tout amateur de philosophie.",
		Rating:   4,
	},
	{
		Ticket:   3,
		Author:   "severine123",
		Headline: "Exceptionnel",
		Body:     "Einstein explique de manière accessible une théorie complexe.",
		Rating:   5,
	},
}

var follows = []seedFollow{
	{Follower: "jean_5679", Followed: "sarahj"},
	{Follower: "jean_5679", Followed: "severine123"},
	{Follower: "sarahj", Followed: "jean_5679"},
	{Follower: "severine123", Followed: "jean_5679"},
}

// Load creates whatever part of the demo data set is missing.
func Load(db *gorm.DB) error {
	log := logger.WithComponent("seed")

	accounts := make(map[string]*models.User, len(users))
	for _, u := range users {
		user, created, err := ensureUser(db, u)
		if err != nil {
			return fmt.Errorf("cannot seed user %s: %w", u.Username, err)
		}
		if created {
			log.Info("user created", "username", user.Username)
		}
		accounts[u.Username] = user
	}

	stored := make([]models.Ticket, len(tickets))
	for i, t := range tickets {
		ticket := models.Ticket{Title: t.Title, UserID: accounts[t.Author].ID}
		result := db.Omit(clause.Associations).
			Where(models.Ticket{Title: t.Title, UserID: ticket.UserID}).
			Attrs(models.Ticket{Description: t.Description}).
			FirstOrCreate(&ticket)
		if result.Error != nil {
			return fmt.Errorf("cannot seed ticket %q: %w", t.Title, result.Error)
		}
		if result.RowsAffected > 0 {
			log.Info("ticket created", "title", ticket.Title)
		}
		stored[i] = ticket
	}

	for _, r := range reviews {
		review := models.Review{TicketID: stored[r.Ticket].ID, UserID: accounts[r.Author].ID}
		result := db.Omit(clause.Associations).
			Where(models.Review{TicketID: review.TicketID, UserID: review.UserID}).
			Attrs(models.Review{Headline: r.Headline, Body: r.Body, Rating: r.Rating}).
			FirstOrCreate(&review)
		if result.Error != nil {
			return fmt.Errorf("cannot seed review %q: %w", r.Headline, result.Error)
		}
		if result.RowsAffected > 0 {
			log.Info("review created", "headline", review.Headline)
		}
	}

	for _, f := range follows {
		_, err := models.FollowUser(db, accounts[f.Follower], f.Followed)
		switch {
		case err == nil:
			log.Info("follow created", "follower", f.Follower, "followed", f.Followed)
		case errors.Is(err, models.ErrAlreadyFollowing):
		default:
			return fmt.Errorf("cannot seed follow %s -> %s: %w", f.Follower, f.Followed, err)
		}
	}

	return nil
}

func ensureUser(db *gorm.DB, u seedUser) (*models.User, bool, error) {
	existing, err := (&models.User{}).FindUserByUsername(db, u.Username)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return nil, false, err
	}

	user := &models.User{
		Username: u.Username,
		Password: u.Password,
		IsAdmin:  u.IsAdmin,
		IsStaff:  u.IsStaff,
	}
	user.Prepare()
	if _, err := user.SaveUser(db); err != nil {
		return nil, false, err
	}
	return user, true, nil
}
