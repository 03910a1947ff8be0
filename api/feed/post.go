// Package feed merges tickets and reviews into one reverse-chronological
// stream and cuts it into pages.
package feed

import (
	"slices"
	"time"

	"Litreview/api/models"
)

// Kind tags which record a Post carries.
type Kind string

const (
	KindTicket Kind = "TICKET"
	KindReview Kind = "REVIEW"
)

// Post is either a ticket or a review. Exactly one of Ticket and Review is
// set, matching Kind.
type Post struct {
	Kind   Kind
	Ticket *models.Ticket
	Review *models.Review
}

func TicketPost(t *models.Ticket) Post {
	return Post{Kind: KindTicket, Ticket: t}
}

func ReviewPost(r *models.Review) Post {
	return Post{Kind: KindReview, Review: r}
}

func (p Post) IsTicket() bool { return p.Kind == KindTicket }

func (p Post) IsReview() bool { return p.Kind == KindReview }

func (p Post) CreatedAt() time.Time {
	if p.Kind == KindReview {
		return p.Review.TimeCreated
	}
	return p.Ticket.TimeCreated
}

func (p Post) ID() uint {
	if p.Kind == KindReview {
		return p.Review.ID
	}
	return p.Ticket.ID
}

// Merge tags both record sets and orders them newest first. Reviews are
// placed ahead of tickets before a stable sort, so records sharing a
// timestamp keep that order and each set keeps its own fetch order.
func Merge(tickets []models.Ticket, reviews []models.Review) []Post {
	posts := make([]Post, 0, len(tickets)+len(reviews))
	for i := range reviews {
		posts = append(posts, ReviewPost(&reviews[i]))
	}
	for i := range tickets {
		posts = append(posts, TicketPost(&tickets[i]))
	}
	slices.SortStableFunc(posts, func(a, b Post) int {
		return b.CreatedAt().Compare(a.CreatedAt())
	})
	return posts
}
