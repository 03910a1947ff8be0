package feed

import (
	"context"

	"Litreview/api/models"

	"gorm.io/gorm"
)

// Mode selects which records a viewer sees.
type Mode string

const (
	// ModeFeed covers the viewer, the accounts they follow and replies to
	// the viewer's tickets.
	ModeFeed Mode = "feed"
	// ModePosts covers only what the viewer authored.
	ModePosts Mode = "posts"
)

// Source is the read side of the content store the aggregator needs.
type Source interface {
	Tickets(ctx context.Context, viewer uint, mode Mode) ([]models.Ticket, error)
	Reviews(ctx context.Context, viewer uint, mode Mode) ([]models.Review, error)
	ReviewedTicketIDs(ctx context.Context, viewer uint) ([]uint, error)
}

type GormSource struct {
	DB *gorm.DB
}

func NewGormSource(db *gorm.DB) *GormSource {
	return &GormSource{DB: db}
}

func (s *GormSource) followedIDs(ctx context.Context, viewer uint) *gorm.DB {
	return s.DB.WithContext(ctx).Model(&models.Follow{}).Select("followed_id").Where("follower_id = ?", viewer)
}

func (s *GormSource) ownTicketIDs(ctx context.Context, viewer uint) *gorm.DB {
	return s.DB.WithContext(ctx).Model(&models.Ticket{}).Select("id").Where("user_id = ?", viewer)
}

func (s *GormSource) Tickets(ctx context.Context, viewer uint, mode Mode) ([]models.Ticket, error) {
	q := s.DB.WithContext(ctx).Preload("User").Order("time_created DESC, id DESC")
	if mode == ModePosts {
		q = q.Where("user_id = ?", viewer)
	} else {
		q = q.Where("user_id = ? OR user_id IN (?)", viewer, s.followedIDs(ctx, viewer))
	}

	var tickets []models.Ticket
	if err := q.Find(&tickets).Error; err != nil {
		return nil, err
	}
	return tickets, nil
}

func (s *GormSource) Reviews(ctx context.Context, viewer uint, mode Mode) ([]models.Review, error) {
	q := s.DB.WithContext(ctx).
		Preload("User").Preload("Ticket").Preload("Ticket.User").
		Order("time_created DESC, id DESC")
	if mode == ModePosts {
		q = q.Where("user_id = ?", viewer)
	} else {
		q = q.Where("user_id = ? OR user_id IN (?) OR ticket_id IN (?)",
			viewer, s.followedIDs(ctx, viewer), s.ownTicketIDs(ctx, viewer))
	}

	var reviews []models.Review
	if err := q.Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

func (s *GormSource) ReviewedTicketIDs(ctx context.Context, viewer uint) ([]uint, error) {
	var ids []uint
	err := s.DB.WithContext(ctx).Model(&models.Review{}).Where("user_id = ?", viewer).Pluck("ticket_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
