package rental

import (
	"context"
	"testing"
	"time"

	"github.com/socialgrdn2024/socialgrdn-v1-Beta/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupRentalTest(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.UserProfile{},
		&domain.PropertyLocation{},
		&domain.PropertyListing{},
		&domain.PropertyCrop{},
		&domain.PropertyPrimaryImage{},
		&domain.Rental{},
	))
	return &Service{DB: db}, db
}

func seedListing(t *testing.T, db *gorm.DB) {
	require.NoError(t, db.Create(&domain.UserProfile{
		UserID:    42,
		Email:     "owner@example.com",
		FirstName: "Ada",
		LastName:  "Green",
		Username:  "ada",
	}).Error)
	require.NoError(t, db.Create(&domain.PropertyLocation{
		LocationID:   1,
		AddressLine1: "12 Garden Ave",
		City:         "Toronto",
		Province:     "ON",
		PostalCode:   "M5V 1A1",
	}).Error)
	require.NoError(t, db.Create(&domain.PropertyListing{
		PropertyID:   1001,
		UserID:       42,
		PropertyName: "Sunny Backyard Plot",
		LocationID:   1,
		GrowthZone:   "6a",
		Status:       "1",
	}).Error)
	require.NoError(t, db.Create(&domain.PropertyPrimaryImage{
		PropertyID: 1001,
		ImageURL:   "https://img.example.com/primary.jpg",
	}).Error)
	require.NoError(t, db.Create(&domain.PropertyCrop{
		PropertyID: 1001,
		CropName:   "Tomato",
	}).Error)
	require.NoError(t, db.Create(&domain.PropertyCrop{
		PropertyID: 1001,
		CropName:   "Basil",
	}).Error)
}

func registerInput() RegisterInput {
	return RegisterInput{
		PropertyID:     1001,
		RenterID:       7,
		StartDate:      time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC),
		Status:         "1",
		RentBasePrice:  45.50,
		TaxAmount:      5.92,
		TransactionFee: 1.37,
	}
}

func TestRegisterReturnsRentID(t *testing.T) {
	svc, db := setupRentalTest(t)
	seedListing(t, db)

	rentID, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)
	assert.Greater(t, rentID, int64(0))

	var r domain.Rental
	require.NoError(t, db.First(&r, "rental_id = ?", rentID).Error)
	assert.Equal(t, int64(1001), r.PropertyID)
	assert.Equal(t, int64(7), r.RenterID)
}

func TestEdit(t *testing.T) {
	svc, db := setupRentalTest(t)
	seedListing(t, db)

	rentID, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	in := EditInput{
		RentalID:       rentID,
		PropertyID:     1001,
		RenterID:       7,
		StartDate:      time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC),
		Status:         "0",
		RentBasePrice:  50,
		TaxAmount:      6.50,
		TransactionFee: 1.50,
	}
	require.NoError(t, svc.Edit(context.Background(), in))

	var r domain.Rental
	require.NoError(t, db.First(&r, "rental_id = ?", rentID).Error)
	assert.Equal(t, "0", r.Status)
	assert.Equal(t, float64(50), r.RentBasePrice)

	in.RentalID = 9999
	err = svc.Edit(context.Background(), in)
	assert.ErrorIs(t, err, ErrRentalNotFound)
}

func TestDetails(t *testing.T) {
	svc, db := setupRentalTest(t)
	seedListing(t, db)

	rentID, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	d, err := svc.Details(context.Background(), rentID)
	require.NoError(t, err)
	assert.Equal(t, "Sunny Backyard Plot", d.PropertyName)
	assert.Equal(t, "Ada Green", d.PropertyOwner)
	assert.Equal(t, "Toronto", d.City)
	require.NotNil(t, d.CropName)
	assert.Equal(t, "Basil", *d.CropName)
	require.NotNil(t, d.ImageURL)
	assert.Equal(t, "https://img.example.com/primary.jpg", *d.ImageURL)

	_, err = svc.Details(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrRentalNotFound)
}

func TestListByRenter(t *testing.T) {
	svc, db := setupRentalTest(t)
	seedListing(t, db)

	_, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	// cancelled rentals are excluded
	cancelled := registerInput()
	cancelled.Status = "0"
	_, err = svc.Register(context.Background(), cancelled)
	require.NoError(t, err)

	rows, err := svc.ListByRenter(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Sunny Backyard Plot", rows[0].PropertyName)
	assert.Equal(t, "Ada Green", rows[0].PropertyOwner)

	empty, err := svc.ListByRenter(context.Background(), 8)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
