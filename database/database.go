package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"socialstream/config"
	"socialstream/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB opens the configured database, runs migrations and seeds the
// bootstrap admin. The handle is returned for injection into the
// repositories; there is no package-level connection.
func InitDB() *gorm.DB {
	cfg := config.AppConfig.Database

	// GORM logger configuration
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags), // io writer
		logger.Config{
			SlowThreshold:             time.Second, // Slow SQL threshold
			LogLevel:                  logger.Warn, // Log level (Silent, Error, Warn, Info)
			IgnoreRecordNotFoundError: true,        // Ignore ErrRecordNotFound error for logger
			Colorful:                  true,        // Enable color
		},
	)

	db, err := gorm.Open(openDialector(cfg), &gorm.Config{
		Logger: newLogger,
	})
	if err != nil {
		panic(fmt.Errorf("failed to connect database: %w", err))
	}

	if err := db.AutoMigrate(&models.User{}, &models.Post{}, &models.Relationship{}); err != nil {
		panic(fmt.Errorf("failed to migrate database: %w", err))
	}

	SeedBootstrapAdmin(db)

	return db
}

func openDialector(cfg config.DatabaseConfig) gorm.Dialector {
	switch cfg.Driver {
	case "mysql":
		return mysql.Open(cfg.DSN)
	default:
		// The default deployment is a single embedded database file.
		return sqlite.Open(cfg.DSN)
	}
}

// SeedBootstrapAdmin creates the configured admin account if it does not
// exist yet. A duplicate from a previous start is not an error.
func SeedBootstrapAdmin(db *gorm.DB) {
	bootstrap := config.AppConfig.Bootstrap
	if bootstrap.Username == "" {
		return
	}

	var existing models.User
	err := db.Where("LOWER(username) = LOWER(?)", bootstrap.Username).First(&existing).Error
	if err == nil {
		return
	}
	if err != gorm.ErrRecordNotFound {
		log.Printf("Failed to check for bootstrap admin %s: %v\n", bootstrap.Username, err)
		return
	}

	cost := config.AppConfig.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(bootstrap.Password), cost)
	if err != nil {
		log.Printf("Failed to hash bootstrap admin password: %v\n", err)
		return
	}

	admin := models.User{
		Username: bootstrap.Username,
		Email:    bootstrap.Email,
		Password: string(hashedPassword),
		IsAdmin:  true,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Printf("Failed to create bootstrap admin %s: %v\n", bootstrap.Username, err)
	} else {
		log.Printf("Seeded bootstrap admin: %s\n", bootstrap.Username)
	}
}
