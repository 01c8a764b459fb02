package db

import (
	"fmt"

	"encuentros/models"

	"gorm.io/gorm"
)

// Migrate creates the friendship tables. The users table belongs to the accounts
// service; it is migrated here only so dev and test databases are self-contained.
func Migrate(conn *gorm.DB) error {
	err := conn.AutoMigrate(
		&models.User{},
		&models.Relation{},
		&models.Request{},
		&models.Friendship{},
		&models.PairLock{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}
