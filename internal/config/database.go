package config

import (
	"os"

	"github.com/codequest532/vyrona-social/internal/models"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var DB *gorm.DB // global instance

func InitDB() error {

	if err := godotenv.Load(); err != nil {
		logrus.Warn("No .env file found, reading configuration from environment")
	}

	dsn := os.Getenv("SERVICE_URI")
	if dsn == "" {
		logrus.Fatal("CANNOT READ SERVICE_URI IN ENVIRONMENT")
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return err
	}

	if err := Migrate(db); err != nil {
		return err
	}

	DB = db

	logrus.Info("DB SYNC")
	return nil
}

// Migrate runs the schema migration on the given connection. Split out from
// InitDB so tests can migrate an in-memory database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Room{},
		&models.Membership{},
		&models.Product{},
		&models.CartItem{},
	)
}
