package models

import "gorm.io/gorm"

// AutoMigrate creates or updates every table the application uses.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Ticket{},
		&Review{},
		&Follow{},
	)
}
