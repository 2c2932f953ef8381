package properties

import (
	"encoding/json"
	"errors"
	"strconv"

	propsvc "github.com/socialgrdn2024/socialgrdn-v1-Beta/internal/application/property"

	"github.com/gofiber/fiber/v2"
)

// Handlers serves every property-listing route, including the two
// transactional writes.
type Handlers struct {
	Service *propsvc.Service
}

// AddListing handles POST /api/addPropertyListing. The property id comes
// from the caller; a duplicate is a 409, any failed transaction step is a
// 500 naming the step.
func (h *Handlers) AddListing(c *fiber.Ctx) error {
	var body map[string]interface{}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Missing required data"})
	}

	userID := asID(body["userId"])
	propertyID := asID(body["propertyId"])
	if userID == 0 || propertyID == 0 {
		return c.Status(400).JSON(fiber.Map{"message": "Missing required data"})
	}

	in := propsvc.CreateListingInput{
		UserID:          userID,
		PropertyID:      propertyID,
		PropertyName:    asString(body["propertyName"]),
		Location:        locationFromBody(body),
		GrowthZone:      asString(body["growthzone"]),
		Description:     asString(body["description"]),
		Length:          asFloat(body["length"]),
		Width:           asFloat(body["width"]),
		Height:          asFloat(body["height"]),
		SoilType:        asString(body["soilType"]),
		Amenities:       asString(body["amenities"]),
		Restrictions:    asString(body["restrictions"]),
		Price:           asFloat(body["price"]),
		Crops:           asStringSlice(body["possibleCrops"]),
		PrimaryImageURL: asString(body["primaryImageUrl"]),
		OtherImageURLs:  asStringSlice(body["otherImageUrls"]),
	}

	id, err := h.Service.CreateListing(c.Context(), in)
	if errors.Is(err, propsvc.ErrDuplicateProperty) {
		return c.Status(409).JSON(fiber.Map{"message": "Property ID already exists", "error": err.Error()})
	}
	var stepErr *propsvc.StepError
	if errors.As(err, &stepErr) {
		return c.Status(500).JSON(fiber.Map{"message": stepErr.Error(), "error": stepErr.Unwrap().Error()})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Transaction failed", "error": err.Error()})
	}
	return c.Status(201).JSON(fiber.Map{"message": "Property added successfully", "propertyId": id})
}

// UpdateListing handles PATCH /api/updatePropertyListing/:propertyId. A
// missing listing and a wrong owner get the identical 404 so callers cannot
// probe listing existence.
func (h *Handlers) UpdateListing(c *fiber.Ctx) error {
	propertyID, err := strconv.ParseInt(c.Params("propertyId"), 10, 64)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Missing required data"})
	}

	var body map[string]interface{}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Missing required data"})
	}
	userID := asID(body["userId"])
	if userID == 0 {
		return c.Status(400).JSON(fiber.Map{"message": "Missing required data"})
	}

	in := propsvc.UpdateListingInput{
		PropertyName:    asString(body["propertyName"]),
		Location:        locationFromBody(body),
		GrowthZone:      asString(body["growthzone"]),
		Description:     asString(body["description"]),
		Length:          asFloat(body["length"]),
		Width:           asFloat(body["width"]),
		Height:          asFloat(body["height"]),
		SoilType:        asString(body["soilType"]),
		Amenities:       asString(body["amenities"]),
		Restrictions:    asString(body["restrictions"]),
		Price:           asFloat(body["price"]),
		Crops:           asOptionalStringSlice(body, "possibleCrops"),
		PrimaryImageURL: asString(body["primaryImageUrl"]),
		OtherImageURLs:  asOptionalStringSlice(body, "otherImageUrls"),
	}

	err = h.Service.UpdateListing(c.Context(), propertyID, userID, in)
	if errors.Is(err, propsvc.ErrPropertyNotFound) || errors.Is(err, propsvc.ErrNotOwner) {
		return c.Status(404).JSON(fiber.Map{"message": "Property not found or unauthorized"})
	}
	var stepErr *propsvc.StepError
	if errors.As(err, &stepErr) {
		return c.Status(500).JSON(fiber.Map{"message": stepErr.Error(), "error": stepErr.Unwrap().Error()})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Transaction failed", "error": err.Error()})
	}
	return c.Status(200).JSON(fiber.Map{"message": "Property updated successfully", "propertyId": propertyID})
}

// UserProperties handles GET /api/getUserProperties?userID=. Empty is [].
func (h *Handlers) UserProperties(c *fiber.Ctx) error {
	userID, err := strconv.ParseInt(c.Query("userID"), 10, 64)
	if c.Query("userID") == "" || err != nil {
		return c.Status(400).SendString("userID is required")
	}
	props, err := h.Service.ListByOwner(c.Context(), userID)
	if err != nil {
		return c.Status(500).SendString("An error occurred while fetching properties")
	}
	return c.Status(200).JSON(props)
}

// SearchResults handles GET /api/getSearchResults. Empty is [].
func (h *Handlers) SearchResults(c *fiber.Ctx) error {
	results, err := h.Service.SearchResults(c.Context())
	if err != nil {
		return c.Status(500).SendString("An error occurred while fetching search results")
	}
	return c.Status(200).JSON(results)
}

// Details handles GET /api/getPropertyDetails?property_id=.
func (h *Handlers) Details(c *fiber.Ctx) error {
	propertyID, err := strconv.ParseInt(c.Query("property_id"), 10, 64)
	if c.Query("property_id") == "" || err != nil {
		return c.Status(400).SendString("property_id is required")
	}
	details, err := h.Service.Details(c.Context(), propertyID)
	if errors.Is(err, propsvc.ErrPropertyNotFound) {
		return c.Status(404).SendString("Property not found")
	}
	if err != nil {
		return c.Status(500).SendString("An error occurred while fetching property details")
	}
	return c.Status(200).JSON(details)
}

// Status handles GET /api/getPropStatus?property_id=.
func (h *Handlers) Status(c *fiber.Ctx) error {
	propertyID, err := strconv.ParseInt(c.Query("property_id"), 10, 64)
	if c.Query("property_id") == "" || err != nil {
		return c.Status(400).SendString("property_id is required")
	}
	st, err := h.Service.Status(c.Context(), propertyID)
	if errors.Is(err, propsvc.ErrPropertyNotFound) {
		return c.Status(404).SendString("No property found with the given ID")
	}
	if err != nil {
		return c.Status(500).SendString("An error occurred while fetching property status")
	}
	return c.Status(200).JSON(st)
}

// UpdateStatus handles POST /api/updatePropStatus (activate/deactivate, the
// soft delete of listings).
func (h *Handlers) UpdateStatus(c *fiber.Ctx) error {
	var body map[string]interface{}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "Property ID and status are required"})
	}
	propertyID := asID(body["property_id"])
	status := asString(body["status"])
	if propertyID == 0 || status == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "Property ID and status are required"})
	}
	if err := h.Service.UpdateStatus(c.Context(), propertyID, status); err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "message": "Failed to update property status"})
	}
	return c.Status(200).JSON(fiber.Map{"success": true, "message": "Property status updated successfully"})
}

// SaveImage handles POST /api/savePropertyImage.
func (h *Handlers) SaveImage(c *fiber.Ctx) error {
	var body map[string]interface{}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "Property ID and Image URL are required"})
	}
	propertyID := asID(body["propertyId"])
	imageURL := asString(body["imageUrl"])
	if propertyID == 0 || imageURL == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "Property ID and Image URL are required"})
	}
	if err := h.Service.SaveImage(c.Context(), propertyID, imageURL); err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "message": "Failed to save image URL"})
	}
	return c.Status(200).JSON(fiber.Map{"success": true, "message": "Image URL saved successfully"})
}

func locationFromBody(body map[string]interface{}) propsvc.LocationInput {
	return propsvc.LocationInput{
		AddressLine1: asString(body["addressLine1"]),
		City:         asString(body["city"]),
		Province:     asString(body["province"]),
		PostalCode:   asString(body["postalCode"]),
		Country:      asString(body["country"]),
		Latitude:     asFloat(body["latitude"]),
		Longitude:    asFloat(body["longitude"]),
	}
}
