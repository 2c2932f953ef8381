package payments

import (
	"fmt"
	"strconv"

	"github.com/socialgrdn2024/socialgrdn-v1-Beta/internal/application/checkout"
	paysvc "github.com/socialgrdn2024/socialgrdn-v1-Beta/internal/application/payments"

	"github.com/gofiber/fiber/v2"
)

// Handlers serves the payout, earnings and checkout routes.
type Handlers struct {
	Service        *paysvc.Service
	Checkout       checkout.Creator
	FrontendOrigin string
}

// Payouts handles GET /api/getPayouts. Empty is [].
func (h *Handlers) Payouts(c *fiber.Ctx) error {
	ownerID, ok := queryID(c, "userID")
	if !ok {
		return c.Status(400).SendString("userID is required")
	}
	rows, err := h.Service.Payouts(c.Context(), ownerID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "An error occurred while fetching payouts"})
	}
	return c.Status(200).JSON(rows)
}

// DetailedPayouts handles GET /api/getDetailedPayouts. Empty is [].
func (h *Handlers) DetailedPayouts(c *fiber.Ctx) error {
	ownerID, ok := queryID(c, "userID")
	if !ok {
		return c.Status(400).SendString("userID is required")
	}
	rows, err := h.Service.DetailedPayouts(c.Context(), ownerID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "An error occurred while fetching payouts"})
	}
	return c.Status(200).JSON(rows)
}

// Earnings handles GET /api/getEarnings. No rows is still a 200, with a
// message object instead of an empty list.
func (h *Handlers) Earnings(c *fiber.Ctx) error {
	ownerID, ok := queryID(c, "userID")
	if !ok {
		return c.Status(400).SendString("userID is required")
	}
	rows, err := h.Service.Earnings(c.Context(), ownerID)
	if err != nil {
		return c.Status(500).SendString("Database error")
	}
	if len(rows) == 0 {
		return c.Status(200).JSON(fiber.Map{"message": "You have no earnings"})
	}
	return c.Status(200).JSON(rows)
}

// EarningsDetails handles GET /api/getEarnings/details.
func (h *Handlers) EarningsDetails(c *fiber.Ctx) error {
	ownerID, year, month, ok := monthQuery(c)
	if !ok {
		return c.Status(400).SendString("userID, year, and month are required")
	}
	rows, err := h.Service.EarningsDetails(c.Context(), ownerID, year, month)
	if err != nil {
		return c.Status(500).SendString("Database error")
	}
	if len(rows) == 0 {
		return c.Status(404).SendString("No detailed earnings found for the specified month")
	}
	return c.Status(200).JSON(rows)
}

// AllEarnings handles GET /api/getAllEarningsReport, the platform-wide
// moderator report.
func (h *Handlers) AllEarnings(c *fiber.Ctx) error {
	rows, err := h.Service.AllEarnings(c.Context())
	if err != nil {
		return c.Status(500).SendString("Database error")
	}
	if len(rows) == 0 {
		return c.Status(404).SendString("No earnings found")
	}
	return c.Status(200).JSON(rows)
}

// MonthlyReport handles GET /api/getAllMonthlyReport.
func (h *Handlers) MonthlyReport(c *fiber.Ctx) error {
	year, errY := strconv.Atoi(c.Query("year"))
	month, errM := strconv.Atoi(c.Query("month"))
	if c.Query("year") == "" || c.Query("month") == "" || errY != nil || errM != nil {
		return c.Status(400).SendString("Year and month are required")
	}
	report, err := h.Service.Report(c.Context(), year, month)
	if err != nil {
		return c.Status(500).SendString("Database error")
	}
	return c.Status(200).JSON(report)
}

// ModeratorSummary handles GET /api/moderatorReport/summary. The moderator
// views use lowercase keys where the owner-facing earnings use uppercase.
func (h *Handlers) ModeratorSummary(c *fiber.Ctx) error {
	ownerID, ok := queryID(c, "userID")
	if !ok {
		return c.Status(400).SendString("userID is required")
	}
	rows, err := h.Service.ModeratorSummary(c.Context(), ownerID)
	if err != nil {
		return c.Status(500).SendString("Database error")
	}
	out := make([]fiber.Map, 0, len(rows))
	for _, r := range rows {
		out = append(out, fiber.Map{"year": r.Year, "month": r.Month, "total_rent": r.TotalRent})
	}
	return c.Status(200).JSON(out)
}

// ModeratorDetails handles GET /api/moderatorReport/details.
func (h *Handlers) ModeratorDetails(c *fiber.Ctx) error {
	ownerID, year, month, ok := monthQuery(c)
	if !ok {
		return c.Status(400).SendString("userID, year, and month are required")
	}
	rows, err := h.Service.ModeratorDetails(c.Context(), ownerID, year, month)
	if err != nil {
		return c.Status(500).SendString("Database error")
	}
	return c.Status(200).JSON(rows)
}

// checkoutBody is the POST /api/create-checkout-session body. The rental id
// arrives as either a string or a number depending on the caller.
type checkoutBody struct {
	Amount   float64     `json:"amount"`
	RentalID interface{} `json:"rental_id"`
}

// CreateCheckoutSession creates a hosted payment session and returns its
// redirect URL.
func (h *Handlers) CreateCheckoutSession(c *fiber.Ctx) error {
	var body checkoutBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	rentalID := ""
	switch v := body.RentalID.(type) {
	case string:
		rentalID = v
	case float64:
		rentalID = strconv.FormatInt(int64(v), 10)
	}
	url, err := h.Checkout.CreateSession(c.Context(), checkout.SessionInput{
		AmountCents: int64(body.Amount * 100),
		RentalID:    rentalID,
		SuccessURL:  fmt.Sprintf("%s/RentConfirmation?rental_id=%s", h.FrontendOrigin, rentalID),
		CancelURL:   fmt.Sprintf("%s/RentFailed?rental_id=%s", h.FrontendOrigin, rentalID),
	})
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(200).JSON(fiber.Map{"url": url})
}

func queryID(c *fiber.Ctx, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Query(name), 10, 64)
	if c.Query(name) == "" || err != nil {
		return 0, false
	}
	return id, true
}

func monthQuery(c *fiber.Ctx) (ownerID int64, year, month int, ok bool) {
	ownerID, ok = queryID(c, "userID")
	if !ok {
		return 0, 0, 0, false
	}
	year, errY := strconv.Atoi(c.Query("year"))
	month, errM := strconv.Atoi(c.Query("month"))
	if c.Query("year") == "" || c.Query("month") == "" || errY != nil || errM != nil {
		return 0, 0, 0, false
	}
	return ownerID, year, month, true
}
