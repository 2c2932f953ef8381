package database

import (
	"strings"
	"time"

	"github.com/socialgrdn2024/socialgrdn-v1-Beta/internal/domain"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open opens a pooled GORM DB from a DSN. The dialect is picked from the DSN
// scheme: postgres:// URLs use the Postgres driver, anything else is treated
// as a go-sql-driver MySQL DSN. TranslateError is on so unique-constraint
// violations surface as gorm.ErrDuplicatedKey on every dialect, which the
// listing writer maps to its duplicate-id error.
func Open(dsn string) (*gorm.DB, error) {
	dialector := dialectorFor(dsn)
	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}

func dialectorFor(dsn string) gorm.Dialector {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return postgres.New(postgres.Config{
			DSN: dsn,
			// Avoid 42P05 under connection poolers (PgBouncer and friends).
			PreferSimpleProtocol: true,
		})
	}
	return mysql.Open(dsn)
}

// AutoMigrate runs migrations for every table the API touches.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.UserProfile{},
		&domain.PropertyLocation{},
		&domain.PropertyListing{},
		&domain.PropertyCrop{},
		&domain.PropertyPrimaryImage{},
		&domain.PropertyOtherImage{},
		&domain.PropertyImage{},
		&domain.PropertyEvent{},
		&domain.Rental{},
		&domain.Payment{},
	)
}
