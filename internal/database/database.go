package database

import (
	"log"
	"os"
	"time"

	"stayloop/backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Connect initializes the database connection and runs migrations. An empty
// dsn falls back to a local sqlite file so the server runs without Postgres.
func Connect(dsn string) {
	var err error

	// Configure GORM logger
	customLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags), // io writer
		logger.Config{
			SlowThreshold:             200 * time.Millisecond, // Slow SQL threshold
			LogLevel:                  logger.Warn,            // Log level
			IgnoreRecordNotFoundError: true,                   // Ignore ErrRecordNotFound error for logger
			Colorful:                  true,                   // Enable color
		},
	)

	dialector := postgres.Open(dsn)
	if dsn == "" {
		log.Println("DATABASE_URL not set, using local sqlite database")
		dialector = sqlite.Open("stayloop.db")
	}

	DB, err = gorm.Open(dialector, &gorm.Config{
		Logger: customLogger,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Database connection established.")

	// Run migrations
	err = DB.AutoMigrate(
		&models.Profile{},
		&models.Relationship{},
		&models.Listing{},
		&models.Amenity{},
		&models.Group{},
		&models.GroupMembership{},
		&models.Activity{},
		&models.ActivityParticipation{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	log.Println("Database migrated successfully.")
}
