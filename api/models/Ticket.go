package models

import (
	"strings"
	"time"

	"Litreview/api/markup"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Ticket struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string    `gorm:"size:128;not null" json:"title" validate:"required,max=128"`
	Description string    `gorm:"size:2048" json:"description" validate:"max=2048"`
	Image       string    `gorm:"size:255" json:"image"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	User        User      `gorm:"foreignKey:UserID" json:"user" validate:"-"`
	TimeCreated time.Time `gorm:"autoCreateTime;index" json:"time_created"`
}

func (t *Ticket) Prepare() {
	t.Title = markup.StripTags(strings.TrimSpace(t.Title))
	t.Description = markup.StripTags(strings.TrimSpace(t.Description))
}

func (t *Ticket) Validate() map[string]string {
	return validateStruct(t)
}

func (t *Ticket) HasImage() bool {
	return t.Image != ""
}

func (t *Ticket) SaveTicket(db *gorm.DB) (*Ticket, error) {
	if err := db.Omit(clause.Associations).Create(t).Error; err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Ticket) FindTicketByID(db *gorm.DB, id uint) (*Ticket, error) {
	var ticket Ticket
	if err := db.Preload("User").Where("id = ?", id).Take(&ticket).Error; err != nil {
		return nil, notFound(err)
	}
	return &ticket, nil
}

// FindOwnedTicket returns the ticket only when uid authored it. A ticket owned
// by someone else is indistinguishable from a missing one.
func (t *Ticket) FindOwnedTicket(db *gorm.DB, id, uid uint) (*Ticket, error) {
	var ticket Ticket
	if err := db.Preload("User").Where("id = ? AND user_id = ?", id, uid).Take(&ticket).Error; err != nil {
		return nil, notFound(err)
	}
	return &ticket, nil
}

func (t *Ticket) UpdateATicket(db *gorm.DB) (*Ticket, error) {
	err := db.Model(&Ticket{}).Where("id = ? AND user_id = ?", t.ID, t.UserID).Updates(map[string]interface{}{
		"title":       t.Title,
		"description": t.Description,
		"image":       t.Image,
	}).Error
	if err != nil {
		return nil, err
	}
	return t, nil
}

// DeleteATicket removes the ticket together with every review answering it.
func (t *Ticket) DeleteATicket(db *gorm.DB) (int64, error) {
	var affected int64
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("ticket_id = ?", t.ID).Delete(&Review{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ? AND user_id = ?", t.ID, t.UserID).Delete(&Ticket{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		affected = result.RowsAffected
		return nil
	})
	return affected, err
}
