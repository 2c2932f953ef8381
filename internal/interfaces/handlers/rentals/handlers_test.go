package rentals

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	rentsvc "github.com/socialgrdn2024/socialgrdn-v1-Beta/internal/application/rental"
	"github.com/socialgrdn2024/socialgrdn-v1-Beta/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupRentalsTest(t *testing.T) (*fiber.App, *gorm.DB) {
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
	h := &Handlers{Service: &rentsvc.Service{DB: db}}

	app := fiber.New()
	app.Post("/api/registerRentalDetails", h.Register)
	app.Get("/api/GetRentalDetails", h.Details)
	app.Get("/api/getRentalList", h.List)
	app.Patch("/api/editRentalDetails", h.Edit)
	return app, db
}

func seedRentalListing(t *testing.T, db *gorm.DB) {
	require.NoError(t, db.Create(&domain.UserProfile{
		UserID: 42, Email: "owner@example.com", FirstName: "Ada", LastName: "Green", Username: "ada",
	}).Error)
	require.NoError(t, db.Create(&domain.PropertyLocation{
		LocationID: 1, AddressLine1: "12 Garden Ave", City: "Toronto", Province: "ON",
	}).Error)
	require.NoError(t, db.Create(&domain.PropertyListing{
		PropertyID: 1001, UserID: 42, PropertyName: "Sunny Backyard Plot", LocationID: 1, Status: "1",
	}).Error)
}

func do(t *testing.T, app *fiber.App, method, path string, payload interface{}) (int, []byte) {
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		require.NoError(t, err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func rentalBodyJSON() map[string]interface{} {
	return map[string]interface{}{
		"property_id":     1001,
		"renter_ID":       7,
		"start_date":      "2025-05-01",
		"end_date":        "2025-08-31",
		"status":          "1",
		"rent_base_price": 45.50,
		"tax_amount":      5.92,
		"transaction_fee": 1.37,
	}
}

func TestRegister(t *testing.T) {
	app, db := setupRentalsTest(t)
	seedRentalListing(t, db)

	status, body := do(t, app, "POST", "/api/registerRentalDetails", rentalBodyJSON())
	assert.Equal(t, 200, status)
	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &result))
	assert.Equal(t, float64(1), result["rent_id"])

	var r domain.Rental
	require.NoError(t, db.First(&r).Error)
	assert.Equal(t, 2025, r.StartDate.Year())

	incomplete := rentalBodyJSON()
	delete(incomplete, "renter_ID")
	status, body = do(t, app, "POST", "/api/registerRentalDetails", incomplete)
	assert.Equal(t, 400, status)
	assert.Equal(t, "Property id and Renter id are required", string(body))
}

func TestDetails(t *testing.T) {
	app, db := setupRentalsTest(t)
	seedRentalListing(t, db)
	do(t, app, "POST", "/api/registerRentalDetails", rentalBodyJSON())

	status, body := do(t, app, "GET", "/api/GetRentalDetails?rentalID=1", nil)
	assert.Equal(t, 200, status)
	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &result))
	assert.Equal(t, "Sunny Backyard Plot", result["property_name"])
	assert.Equal(t, "Ada Green", result["property_owner"])

	status, body = do(t, app, "GET", "/api/GetRentalDetails?rentalID=9999", nil)
	assert.Equal(t, 404, status)
	assert.Equal(t, "Reservation not found", string(body))

	status, body = do(t, app, "GET", "/api/GetRentalDetails", nil)
	assert.Equal(t, 400, status)
	assert.Equal(t, "rentalID is required", string(body))
}

func TestList(t *testing.T) {
	app, db := setupRentalsTest(t)
	seedRentalListing(t, db)
	do(t, app, "POST", "/api/registerRentalDetails", rentalBodyJSON())

	status, body := do(t, app, "GET", "/api/getRentalList?userID=7", nil)
	assert.Equal(t, 200, status)
	var rows []map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "Ada Green", rows[0]["property_owner"])

	status, body = do(t, app, "GET", "/api/getRentalList?userID=8", nil)
	assert.Equal(t, 200, status)
	require.NoError(t, json.Unmarshal(body, &rows))
	assert.Empty(t, rows)

	status, body = do(t, app, "GET", "/api/getRentalList", nil)
	assert.Equal(t, 400, status)
	assert.Equal(t, "userID is required", string(body))
}

func TestEdit(t *testing.T) {
	app, db := setupRentalsTest(t)
	seedRentalListing(t, db)
	do(t, app, "POST", "/api/registerRentalDetails", rentalBodyJSON())

	update := rentalBodyJSON()
	update["rental_id"] = 1
	update["status"] = "0"

	status, body := do(t, app, "PATCH", "/api/editRentalDetails", update)
	assert.Equal(t, 200, status)
	assert.Equal(t, "Rental information is updated.", string(body))

	var r domain.Rental
	require.NoError(t, db.First(&r).Error)
	assert.Equal(t, "0", r.Status)

	update["rental_id"] = 9999
	status, body = do(t, app, "PATCH", "/api/editRentalDetails", update)
	assert.Equal(t, 404, status)
	assert.Equal(t, "Rental_id not found.", string(body))

	delete(update, "rental_id")
	status, body = do(t, app, "PATCH", "/api/editRentalDetails", update)
	assert.Equal(t, 400, status)
	assert.Equal(t, "Rental id is required", string(body))
}
