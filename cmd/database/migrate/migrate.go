package migration

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"concurso-backend/entities"
)

func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	if err := db.AutoMigrate(&entities.User{}); err != nil {
		log.Fatalf("Error migrating user database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Company{}); err != nil {
		log.Fatalf("Error migrating company database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Sample{}); err != nil {
		log.Fatalf("Error migrating sample database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Transaction{}); err != nil {
		log.Fatalf("Error migrating transaction database: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}
