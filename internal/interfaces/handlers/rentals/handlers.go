package rentals

import (
	"errors"
	"strconv"
	"time"

	rentsvc "github.com/socialgrdn2024/socialgrdn-v1-Beta/internal/application/rental"

	"github.com/gofiber/fiber/v2"
)

// Handlers serves the rental (reservation) routes.
type Handlers struct {
	Service *rentsvc.Service
}

// rentalBody is the wire shape shared by register and edit: the frontend
// sends dates as date strings, ids as numbers.
type rentalBody struct {
	RentalID       int64   `json:"rental_id"`
	PropertyID     int64   `json:"property_id"`
	RenterID       int64   `json:"renter_ID"`
	StartDate      string  `json:"start_date"`
	EndDate        string  `json:"end_date"`
	Status         string  `json:"status"`
	RentBasePrice  float64 `json:"rent_base_price"`
	TaxAmount      float64 `json:"tax_amount"`
	TransactionFee float64 `json:"transaction_fee"`
}

// Register handles POST /api/registerRentalDetails and returns the generated
// rent id as JSON (the one write route that does not answer in plain text).
func (h *Handlers) Register(c *fiber.Ctx) error {
	var body rentalBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).SendString("Property id and Renter id are required")
	}
	if body.PropertyID == 0 || body.RenterID == 0 {
		return c.Status(400).SendString("Property id and Renter id are required")
	}
	rentID, err := h.Service.Register(c.Context(), rentsvc.RegisterInput{
		PropertyID:     body.PropertyID,
		RenterID:       body.RenterID,
		StartDate:      parseDate(body.StartDate),
		EndDate:        parseDate(body.EndDate),
		Status:         body.Status,
		RentBasePrice:  body.RentBasePrice,
		TaxAmount:      body.TaxAmount,
		TransactionFee: body.TransactionFee,
	})
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}
	return c.Status(200).JSON(fiber.Map{"rent_id": rentID})
}

// Details handles GET /api/GetRentalDetails?rentalID=.
func (h *Handlers) Details(c *fiber.Ctx) error {
	rentalID, err := strconv.ParseInt(c.Query("rentalID"), 10, 64)
	if c.Query("rentalID") == "" || err != nil {
		return c.Status(400).SendString("rentalID is required")
	}
	details, err := h.Service.Details(c.Context(), rentalID)
	if errors.Is(err, rentsvc.ErrRentalNotFound) {
		return c.Status(404).SendString("Reservation not found")
	}
	if err != nil {
		return c.Status(500).SendString("An error occurred while fetching reservation")
	}
	return c.Status(200).JSON(details)
}

// List handles GET /api/getRentalList?userID=. Empty is [].
func (h *Handlers) List(c *fiber.Ctx) error {
	userID, err := strconv.ParseInt(c.Query("userID"), 10, 64)
	if c.Query("userID") == "" || err != nil {
		return c.Status(400).SendString("userID is required")
	}
	rows, err := h.Service.ListByRenter(c.Context(), userID)
	if err != nil {
		return c.Status(500).SendString("An error occurred while fetching reservations")
	}
	return c.Status(200).JSON(rows)
}

// Edit handles PATCH /api/editRentalDetails.
func (h *Handlers) Edit(c *fiber.Ctx) error {
	var body rentalBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).SendString("Rental id is required")
	}
	if body.RentalID == 0 {
		return c.Status(400).SendString("Rental id is required")
	}
	err := h.Service.Edit(c.Context(), rentsvc.EditInput{
		RentalID:       body.RentalID,
		PropertyID:     body.PropertyID,
		RenterID:       body.RenterID,
		StartDate:      parseDate(body.StartDate),
		EndDate:        parseDate(body.EndDate),
		Status:         body.Status,
		RentBasePrice:  body.RentBasePrice,
		TaxAmount:      body.TaxAmount,
		TransactionFee: body.TransactionFee,
	})
	if errors.Is(err, rentsvc.ErrRentalNotFound) {
		return c.Status(404).SendString("Rental_id not found.")
	}
	if err != nil {
		return c.Status(500).SendString("Error updating Rental information.")
	}
	return c.Status(200).SendString("Rental information is updated.")
}

// parseDate accepts the date-only format the frontend sends, falling back to
// RFC 3339. Unparseable input becomes the zero time, which the database
// stores as-is, same as the original's permissive inserts.
func parseDate(s string) time.Time {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return time.Time{}
}
