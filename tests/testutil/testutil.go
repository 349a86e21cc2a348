package testutil

import (
	"os"
	"testing"

	"github.com/mehta-jewels/mehta-jewels-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// RequireTestEnvironment ensures that tests are running in the test
// environment. It fails the test immediately if GO_ENV is not "test", which
// prevents suites from accidentally running against a real catalog database.
func RequireTestEnvironment(t *testing.T) {
	t.Helper()

	env := os.Getenv("GO_ENV")
	if env != "test" {
		t.Fatalf("SAFETY CHECK FAILED: tests must run with GO_ENV=test. Current GO_ENV=%q.", env)
	}
}

// MustSetTestEnvironment sets GO_ENV to test and fails if it cannot be set.
// Use this in TestMain or suite setup functions.
func MustSetTestEnvironment(t *testing.T) {
	t.Helper()

	if err := os.Setenv("GO_ENV", "test"); err != nil {
		t.Fatalf("Failed to set GO_ENV=test: %v", err)
	}
}

// OpenTestDB opens a fresh in-memory store with the full schema migrated
func OpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := db.AutoMigrate(&models.Design{}, &models.Customer{}, &models.Invoice{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

// SeedDesign inserts a design with the given code and price
func SeedDesign(t *testing.T, db *gorm.DB, code string, price int64) models.Design {
	t.Helper()

	design := models.Design{
		DesignCode: code,
		DesignName: "Design " + code,
		Category:   "Rings",
		Price:      decimal.NewFromInt(price),
		UniqueCode: "uq-" + code,
	}
	if err := db.Create(&design).Error; err != nil {
		t.Fatalf("Failed to seed design: %v", err)
	}
	return design
}

// SeedCustomer inserts a customer with the given name and phone
func SeedCustomer(t *testing.T, db *gorm.DB, name, phone string) models.Customer {
	t.Helper()

	customer := models.Customer{Name: name, Phone: phone}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("Failed to seed customer: %v", err)
	}
	return customer
}
