package property

import (
	"context"
	"testing"

	"github.com/socialgrdn2024/socialgrdn-v1-Beta/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupPropertyTest(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.UserProfile{},
		&domain.PropertyLocation{},
		&domain.PropertyListing{},
		&domain.PropertyCrop{},
		&domain.PropertyPrimaryImage{},
		&domain.PropertyOtherImage{},
		&domain.PropertyEvent{},
	))
	return &Service{DB: db}, db
}

func listingInput() CreateListingInput {
	return CreateListingInput{
		UserID:       42,
		PropertyID:   1001,
		PropertyName: "Sunny Backyard Plot",
		Location: LocationInput{
			AddressLine1: "12 Garden Ave",
			City:         "Toronto",
			Province:     "ON",
			PostalCode:   "M5V 1A1",
			Country:      "Canada",
			Latitude:     43.65,
			Longitude:    -79.38,
		},
		GrowthZone:      "6a",
		Description:     "South-facing plot with good drainage",
		Length:          10,
		Width:           20,
		Height:          30,
		SoilType:        "Loam",
		Amenities:       "Water, Shed",
		Restrictions:    "",
		Price:           45.50,
		Crops:           []string{"Tomato", "Basil"},
		PrimaryImageURL: "https://img.example.com/primary.jpg",
		OtherImageURLs:  []string{"https://img.example.com/a.jpg", "https://img.example.com/b.jpg"},
	}
}

func count(t *testing.T, db *gorm.DB, model interface{}) int64 {
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func TestCreateListing_InsertsAllRows(t *testing.T) {
	svc, db := setupPropertyTest(t)

	id, err := svc.CreateListing(context.Background(), listingInput())
	require.NoError(t, err)
	assert.Equal(t, int64(1001), id)

	assert.Equal(t, int64(1), count(t, db, &domain.PropertyLocation{}))
	assert.Equal(t, int64(1), count(t, db, &domain.PropertyListing{}))
	assert.Equal(t, int64(2), count(t, db, &domain.PropertyCrop{}))
	assert.Equal(t, int64(1), count(t, db, &domain.PropertyPrimaryImage{}))
	assert.Equal(t, int64(2), count(t, db, &domain.PropertyOtherImage{}))

	var listing domain.PropertyListing
	require.NoError(t, db.First(&listing, "property_id = ?", 1001).Error)
	var loc domain.PropertyLocation
	require.NoError(t, db.First(&loc).Error)
	assert.Equal(t, loc.LocationID, listing.LocationID)
	assert.Equal(t, "1", listing.Status)

	var event domain.PropertyEvent
	require.NoError(t, db.First(&event, "property_id = ?", 1001).Error)
	assert.Equal(t, "CREATED", event.EventType)
}

func TestCreateListing_AppliesNoneListedDefaults(t *testing.T) {
	svc, db := setupPropertyTest(t)

	in := listingInput()
	in.Restrictions = ""
	_, err := svc.CreateListing(context.Background(), in)
	require.NoError(t, err)

	var listing domain.PropertyListing
	require.NoError(t, db.First(&listing, "property_id = ?", 1001).Error)
	assert.Equal(t, "Water, Shed", listing.Amenities)
	assert.Equal(t, "None Listed", listing.Restrictions)
}

func TestCreateListing_SkipsOptionalRows(t *testing.T) {
	svc, db := setupPropertyTest(t)

	in := listingInput()
	in.Crops = nil
	in.OtherImageURLs = nil
	_, err := svc.CreateListing(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, int64(0), count(t, db, &domain.PropertyCrop{}))
	assert.Equal(t, int64(0), count(t, db, &domain.PropertyOtherImage{}))
	// still one primary image row even without a URL payload
	assert.Equal(t, int64(1), count(t, db, &domain.PropertyPrimaryImage{}))
}

func TestCreateListing_DuplicateIDRollsBackEverything(t *testing.T) {
	svc, db := setupPropertyTest(t)

	_, err := svc.CreateListing(context.Background(), listingInput())
	require.NoError(t, err)

	second := listingInput()
	second.Location.AddressLine1 = "99 Other St"
	second.Crops = []string{"Kale"}
	_, err = svc.CreateListing(context.Background(), second)
	require.ErrorIs(t, err, ErrDuplicateProperty)

	// first listing's rows only; the second attempt left no orphans behind
	assert.Equal(t, int64(1), count(t, db, &domain.PropertyLocation{}))
	assert.Equal(t, int64(1), count(t, db, &domain.PropertyListing{}))
	assert.Equal(t, int64(2), count(t, db, &domain.PropertyCrop{}))
	assert.Equal(t, int64(1), count(t, db, &domain.PropertyPrimaryImage{}))
	assert.Equal(t, int64(2), count(t, db, &domain.PropertyOtherImage{}))
	assert.Equal(t, int64(1), count(t, db, &domain.PropertyEvent{}))
}

func updateInput() UpdateListingInput {
	return UpdateListingInput{
		PropertyName: "Sunny Backyard Plot",
		Location: LocationInput{
			AddressLine1: "12 Garden Ave",
			City:         "Toronto",
			Province:     "ON",
			PostalCode:   "M5V 1A1",
			Country:      "Canada",
			Latitude:     43.65,
			Longitude:    -79.38,
		},
		GrowthZone:   "6a",
		Description:  "South-facing plot with good drainage",
		Length:       10,
		Width:        20,
		Height:       30,
		SoilType:     "Loam",
		Amenities:    "Water, Shed",
		Restrictions: "No pets",
		Price:        60,
	}
}

func TestUpdateListing_NilSlicesLeaveRowsUntouched(t *testing.T) {
	svc, db := setupPropertyTest(t)
	_, err := svc.CreateListing(context.Background(), listingInput())
	require.NoError(t, err)

	err = svc.UpdateListing(context.Background(), 1001, 42, updateInput())
	require.NoError(t, err)

	assert.Equal(t, int64(2), count(t, db, &domain.PropertyCrop{}))
	assert.Equal(t, int64(2), count(t, db, &domain.PropertyOtherImage{}))

	var listing domain.PropertyListing
	require.NoError(t, db.First(&listing, "property_id = ?", 1001).Error)
	assert.Equal(t, float64(60), listing.RentBasePrice)
	assert.Equal(t, "No pets", listing.Restrictions)
}

func TestUpdateListing_EmptySlicesClear(t *testing.T) {
	svc, db := setupPropertyTest(t)
	_, err := svc.CreateListing(context.Background(), listingInput())
	require.NoError(t, err)

	in := updateInput()
	empty := []string{}
	in.Crops = &empty
	in.OtherImageURLs = &empty
	require.NoError(t, svc.UpdateListing(context.Background(), 1001, 42, in))

	assert.Equal(t, int64(0), count(t, db, &domain.PropertyCrop{}))
	assert.Equal(t, int64(0), count(t, db, &domain.PropertyOtherImage{}))
}

func TestUpdateListing_ReplaceIsIdempotent(t *testing.T) {
	svc, db := setupPropertyTest(t)
	_, err := svc.CreateListing(context.Background(), listingInput())
	require.NoError(t, err)

	in := updateInput()
	crops := []string{"Carrot", "Pepper", "Squash"}
	in.Crops = &crops

	require.NoError(t, svc.UpdateListing(context.Background(), 1001, 42, in))
	require.NoError(t, svc.UpdateListing(context.Background(), 1001, 42, in))

	var rows []domain.PropertyCrop
	require.NoError(t, db.Where("property_id = ?", 1001).Order("crop_name").Find(&rows).Error)
	require.Len(t, rows, 3)
	assert.Equal(t, "Carrot", rows[0].CropName)
	assert.Equal(t, "Pepper", rows[1].CropName)
	assert.Equal(t, "Squash", rows[2].CropName)
}

func TestUpdateListing_EmptyPrimaryImageLeftUntouched(t *testing.T) {
	svc, db := setupPropertyTest(t)
	_, err := svc.CreateListing(context.Background(), listingInput())
	require.NoError(t, err)

	in := updateInput()
	in.PrimaryImageURL = ""
	require.NoError(t, svc.UpdateListing(context.Background(), 1001, 42, in))

	var img domain.PropertyPrimaryImage
	require.NoError(t, db.First(&img, "property_id = ?", 1001).Error)
	assert.Equal(t, "https://img.example.com/primary.jpg", img.ImageURL)

	in.PrimaryImageURL = "https://img.example.com/new.jpg"
	require.NoError(t, svc.UpdateListing(context.Background(), 1001, 42, in))
	require.NoError(t, db.First(&img, "property_id = ?", 1001).Error)
	assert.Equal(t, "https://img.example.com/new.jpg", img.ImageURL)
}

func TestUpdateListing_KeepsLocationRow(t *testing.T) {
	svc, db := setupPropertyTest(t)
	_, err := svc.CreateListing(context.Background(), listingInput())
	require.NoError(t, err)

	in := updateInput()
	in.Location.City = "Mississauga"
	require.NoError(t, svc.UpdateListing(context.Background(), 1001, 42, in))

	assert.Equal(t, int64(1), count(t, db, &domain.PropertyLocation{}))
	var loc domain.PropertyLocation
	require.NoError(t, db.First(&loc).Error)
	assert.Equal(t, "Mississauga", loc.City)
}

func TestUpdateListing_OwnershipErrors(t *testing.T) {
	svc, _ := setupPropertyTest(t)
	_, err := svc.CreateListing(context.Background(), listingInput())
	require.NoError(t, err)

	err = svc.UpdateListing(context.Background(), 1001, 7, updateInput())
	assert.ErrorIs(t, err, ErrNotOwner)

	err = svc.UpdateListing(context.Background(), 9999, 42, updateInput())
	assert.ErrorIs(t, err, ErrPropertyNotFound)

	// both surface the same text so callers cannot probe for existence
	assert.Equal(t, ErrPropertyNotFound.Error(), ErrNotOwner.Error())
}

func TestUpdateListing_RecordsEvent(t *testing.T) {
	svc, db := setupPropertyTest(t)
	_, err := svc.CreateListing(context.Background(), listingInput())
	require.NoError(t, err)
	require.NoError(t, svc.UpdateListing(context.Background(), 1001, 42, updateInput()))

	var events []domain.PropertyEvent
	require.NoError(t, db.Where("property_id = ?", 1001).Order("event_id").Find(&events).Error)
	require.Len(t, events, 2)
	assert.Equal(t, "CREATED", events[0].EventType)
	assert.Equal(t, "UPDATED", events[1].EventType)
}
