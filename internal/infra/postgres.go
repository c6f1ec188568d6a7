package infra

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"pulse/internal/models/db_models"
)

func InitPostgresql(cfg *Config) *gorm.DB {

	connectionPool, err := gorm.Open(postgres.Open(cfg.PostgresURL), &gorm.Config{})

	if err != nil {
		log.Printf("Error connecting to database: %v", err)
		log.Fatal("Error connecting to database")
	}

	if err := connectionPool.AutoMigrate(
		&db_models.Company{},
		&db_models.Department{},
		&db_models.User{},
		&db_models.Event{},
		&db_models.Feedback{},
		&db_models.RequestType{},
		&db_models.Request{},
		&db_models.RequestMessage{},
	); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	return connectionPool
}

func ClosePostgresql(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error getting database instance: %v", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	} else {
		log.Println("PostgreSQL database connection closed successfully")
	}
}
