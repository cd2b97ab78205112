package client

import (
	"log"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"rooneyform-backend/internal/model"
)

func InitSqliteClient(databaseURL string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(databaseURL), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal(err)
	}

	// Connection pool (important for webhooks)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(
		&model.Category{},
		&model.Product{},
		&model.ProductImage{},
		&model.User{},
		&model.CartItem{},
		&model.Favorite{},
		&model.Order{},
		&model.OrderItem{},
		&model.SizeSubscription{},
		&model.AdminAccount{},
	); err != nil {
		log.Fatal(err)
	}

	return db
}
