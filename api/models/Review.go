package models

import (
	"strings"
	"time"

	"Litreview/api/markup"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	MinRating = 0
	MaxRating = 5
)

type Review struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	TicketID    uint      `gorm:"not null;uniqueIndex:idx_reviews_ticket_user,priority:1" json:"ticket_id"`
	Ticket      Ticket    `gorm:"foreignKey:TicketID" json:"ticket" validate:"-"`
	Rating      int       `gorm:"not null;check:reviews_rating_range,rating >= 0 AND rating <= 5" json:"rating" validate:"min=0,max=5"`
	Headline    string    `gorm:"size:128;not null" json:"headline" validate:"required,max=128"`
	Body        string    `gorm:"size:8192" json:"body" validate:"max=8192"`
	UserID      uint      `gorm:"not null;index;uniqueIndex:idx_reviews_ticket_user,priority:2" json:"user_id"`
	User        User      `gorm:"foreignKey:UserID" json:"user" validate:"-"`
	TimeCreated time.Time `gorm:"autoCreateTime;index" json:"time_created"`
}

func (r *Review) Prepare() {
	r.Headline = markup.StripTags(strings.TrimSpace(r.Headline))
	r.Body = markup.StripTags(strings.TrimSpace(r.Body))
}

func (r *Review) Validate() map[string]string {
	return validateStruct(r)
}

// Stars returns one flag per possible rating point, true when filled.
func (r *Review) Stars() []bool {
	stars := make([]bool, MaxRating)
	for i := range stars {
		stars[i] = i < r.Rating
	}
	return stars
}

func HasUserReviewed(db *gorm.DB, ticketID, uid uint) (bool, error) {
	var count int64
	err := db.Model(&Review{}).Where("ticket_id = ? AND user_id = ?", ticketID, uid).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// SaveReview inserts the review unless its author already reviewed the
// ticket. The unique index closes the window between check and insert.
func (r *Review) SaveReview(db *gorm.DB) (*Review, error) {
	exists, err := HasUserReviewed(db, r.TicketID, r.UserID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateReview
	}
	if err := db.Omit(clause.Associations).Create(r).Error; err != nil {
		if IsUniqueViolation(err) {
			return nil, ErrDuplicateReview
		}
		return nil, err
	}
	return r, nil
}

func (r *Review) FindOwnedReview(db *gorm.DB, id, uid uint) (*Review, error) {
	var review Review
	err := db.Preload("User").Preload("Ticket").Preload("Ticket.User").
		Where("id = ? AND user_id = ?", id, uid).Take(&review).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &review, nil
}

func (r *Review) UpdateAReview(db *gorm.DB) (*Review, error) {
	err := db.Model(&Review{}).Where("id = ? AND user_id = ?", r.ID, r.UserID).Updates(map[string]interface{}{
		"headline": r.Headline,
		"body":     r.Body,
		"rating":   r.Rating,
	}).Error
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Review) DeleteAReview(db *gorm.DB) (int64, error) {
	result := db.Where("id = ? AND user_id = ?", r.ID, r.UserID).Delete(&Review{})
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, ErrNotFound
	}
	return result.RowsAffected, nil
}

// CreateTicketWithReview stores a new ticket and the author's review of it
// atomically.
func CreateTicketWithReview(db *gorm.DB, t *Ticket, r *Review) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if _, err := t.SaveTicket(tx); err != nil {
			return err
		}
		r.TicketID = t.ID
		r.UserID = t.UserID
		_, err := r.SaveReview(tx)
		return err
	})
}
