package database

import (
	"fmt"

	"github.com/tatertot/apartmentsapi/api/apartment"
	"github.com/tatertot/apartmentsapi/api/session"
	"github.com/tatertot/apartmentsapi/config"
	"github.com/tatertot/apartmentsapi/shared/zaplogger"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// EnsureSeedData populates empty users and apartments tables. Both steps are
// idempotent: tables with existing rows are left alone.
func EnsureSeedData(db *gorm.DB, cfg *config.Config) error {
	zaplogger.Info(config.SingleLine)
	zaplogger.Info("Checking seed data")

	if err := seedUsers(db, cfg); err != nil {
		return err
	}
	return seedApartments(db)
}

func seedUsers(db *gorm.DB, cfg *config.Config) error {
	var count int64
	if err := db.Model(&session.UserModel{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count users: %v", err)
	}
	if count > 0 {
		zaplogger.Info("  * users table already populated, skipping seed")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.SeedPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %v", err)
	}

	user := session.UserModel{
		Username:       cfg.SeedUsername,
		HashedPassword: string(hash),
		IsDev:          true,
	}
	if err := db.Create(&user).Error; err != nil {
		return fmt.Errorf("failed to seed user: %v", err)
	}

	zaplogger.Info("  * seeded dev user: " + cfg.SeedUsername)
	return nil
}

func seedApartments(db *gorm.DB) error {
	var count int64
	if err := db.Model(&apartment.ApartmentModel{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count apartments: %v", err)
	}
	if count > 0 {
		zaplogger.Info(fmt.Sprintf("  * apartments table has %d rows, skipping seed", count))
		return nil
	}

	apts := sampleApartments()
	if err := db.Create(&apts).Error; err != nil {
		return fmt.Errorf("failed to seed apartments: %v", err)
	}

	zaplogger.Info("  * seeded sample apartments")
	return nil
}

func fptr(v float64) *float64 { return &v }
func sptr(s string) *string   { return &s }

// sampleApartments mirrors the kind of data the browse page is built for:
// some rows with unknown price, distance or link.
func sampleApartments() []apartment.ApartmentModel {
	return []apartment.ApartmentModel{
		{Name: "The Meadows at Castle Rock", Price: fptr(1589), SquareFootage: 663, Bedrooms: 1, Bathrooms: 1, Distance1: fptr(2.1), Distance2: fptr(38.5), URL: sptr("https://example.com/meadows")},
		{Name: "Encore Castle Rock", Price: fptr(1700), SquareFootage: 824, Bedrooms: 1, Bathrooms: 1, Distance1: fptr(1.4), Distance2: fptr(40.2), URL: sptr("https://example.com/encore")},
		{Name: "Riverwalk Flats", Price: fptr(1950), SquareFootage: 980, Bedrooms: 2, Bathrooms: 2, Distance1: fptr(3.5), Distance2: fptr(36.8), URL: nil},
		{Name: "Bell Flatirons", Price: nil, SquareFootage: 0, Bedrooms: 2, Bathrooms: 1, Distance1: fptr(41.0), Distance2: fptr(6.3), URL: sptr("https://example.com/bell-flatirons")},
		{Name: "Alexan Broomfield", Price: fptr(2100), SquareFootage: 1105, Bedrooms: 3, Bathrooms: 2, Distance1: fptr(39.7), Distance2: fptr(2.9), URL: sptr("https://example.com/alexan")},
		{Name: "Terracina Apartments", Price: fptr(1475), SquareFootage: 710, Bedrooms: 1, Bathrooms: 1, Distance1: nil, Distance2: nil, URL: nil},
	}
}
