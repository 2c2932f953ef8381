package property

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/socialgrdn2024/socialgrdn-v1-Beta/internal/domain"
	"github.com/socialgrdn2024/socialgrdn-v1-Beta/internal/pkg/defaults"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Service owns every property-listing read and the two multi-table writes.
// The DB handle is injected; nothing here is a process-wide singleton.
type Service struct {
	DB *gorm.DB
}

// LocationInput carries the address fields for the 1:1 location row.
type LocationInput struct {
	AddressLine1 string
	City         string
	Province     string
	PostalCode   string
	Country      string
	Latitude     float64
	Longitude    float64
}

// CreateListingInput matches the POST /api/addPropertyListing body. The
// property id is chosen by the caller, not generated here.
type CreateListingInput struct {
	UserID          int64
	PropertyID      int64
	PropertyName    string
	Location        LocationInput
	GrowthZone      string
	Description     string
	Length          float64
	Width           float64
	Height          float64
	SoilType        string
	Amenities       string
	Restrictions    string
	Price           float64
	Crops           []string
	PrimaryImageURL string
	OtherImageURLs  []string
}

// UpdateListingInput matches the PATCH body. Nil Crops/OtherImageURLs mean
// "leave the stored set untouched"; an empty non-nil slice clears it. An
// empty PrimaryImageURL leaves the stored primary image untouched.
type UpdateListingInput struct {
	PropertyName    string
	Location        LocationInput
	GrowthZone      string
	Description     string
	Length          float64
	Width           float64
	Height          float64
	SoilType        string
	Amenities       string
	Restrictions    string
	Price           float64
	Crops           *[]string
	PrimaryImageURL string
	OtherImageURLs  *[]string
}

// CreateListing inserts the location, listing, crops and image rows as one
// atomic unit. The location row goes first so its generated id can be used
// as the listing's foreign key. Any step failure rolls back everything and
// surfaces as a StepError; a duplicate caller-supplied property id surfaces
// as ErrDuplicateProperty.
func (s *Service) CreateListing(ctx context.Context, in CreateListingInput) (int64, error) {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		loc := &domain.PropertyLocation{
			AddressLine1: in.Location.AddressLine1,
			City:         in.Location.City,
			Province:     in.Location.Province,
			PostalCode:   in.Location.PostalCode,
			Country:      in.Location.Country,
			Latitude:     in.Location.Latitude,
			Longitude:    in.Location.Longitude,
		}
		if err := tx.Create(loc).Error; err != nil {
			return &StepError{Step: StepLocation, Op: "insert", Err: err}
		}

		listing := &domain.PropertyListing{
			PropertyID:       in.PropertyID,
			UserID:           in.UserID,
			PropertyName:     in.PropertyName,
			LocationID:       loc.LocationID,
			GrowthZone:       in.GrowthZone,
			Description:      in.Description,
			DimensionsLength: in.Length,
			DimensionsWidth:  in.Width,
			DimensionsHeight: in.Height,
			SoilType:         in.SoilType,
			Amenities:        defaults.Apply("amenities", in.Amenities),
			Restrictions:     defaults.Apply("restrictions", in.Restrictions),
			RentBasePrice:    in.Price,
			Status:           "1",
		}
		if err := tx.Create(listing).Error; err != nil {
			if isDuplicateErr(err) {
				return ErrDuplicateProperty
			}
			return &StepError{Step: StepListing, Op: "insert", Err: err}
		}

		if len(in.Crops) > 0 {
			crops := make([]domain.PropertyCrop, 0, len(in.Crops))
			for _, name := range in.Crops {
				crops = append(crops, domain.PropertyCrop{PropertyID: in.PropertyID, CropName: name})
			}
			if err := tx.Create(&crops).Error; err != nil {
				return &StepError{Step: StepCrops, Op: "insert", Err: err}
			}
		}

		primary := &domain.PropertyPrimaryImage{PropertyID: in.PropertyID, ImageURL: in.PrimaryImageURL}
		if err := tx.Create(primary).Error; err != nil {
			return &StepError{Step: StepPrimaryImage, Op: "insert", Err: err}
		}

		if len(in.OtherImageURLs) > 0 {
			others := make([]domain.PropertyOtherImage, 0, len(in.OtherImageURLs))
			for _, url := range in.OtherImageURLs {
				others = append(others, domain.PropertyOtherImage{PropertyID: in.PropertyID, ImageURL: url})
			}
			if err := tx.Create(&others).Error; err != nil {
				return &StepError{Step: StepOtherImages, Op: "insert", Err: err}
			}
		}

		return recordEvent(tx, in.PropertyID, "CREATED", map[string]interface{}{
			"property_name":   in.PropertyName,
			"rent_base_price": in.Price,
		})
	})
	if err != nil {
		return 0, err
	}
	return in.PropertyID, nil
}

// UpdateListing rewrites a listing and its dependent rows in one transaction.
// The listing must exist and belong to userID; a wrong owner and a missing
// listing are distinct errors internally but must be presented identically.
// The location row is mutated in place, never re-created.
func (s *Service) UpdateListing(ctx context.Context, propertyID, userID int64, in UpdateListingInput) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var listing domain.PropertyListing
		err := tx.Where("property_id = ? AND userID = ?", propertyID, userID).First(&listing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			var n int64
			if err := tx.Model(&domain.PropertyListing{}).Where("property_id = ?", propertyID).Count(&n).Error; err != nil {
				return &StepError{Step: StepListing, Op: "fetch", Err: err}
			}
			if n > 0 {
				return ErrNotOwner
			}
			return ErrPropertyNotFound
		}
		if err != nil {
			return &StepError{Step: StepListing, Op: "fetch", Err: err}
		}

		listing.PropertyName = in.PropertyName
		listing.GrowthZone = in.GrowthZone
		listing.Description = in.Description
		listing.DimensionsLength = in.Length
		listing.DimensionsWidth = in.Width
		listing.DimensionsHeight = in.Height
		listing.SoilType = in.SoilType
		listing.Amenities = defaults.Apply("amenities", in.Amenities)
		listing.Restrictions = defaults.Apply("restrictions", in.Restrictions)
		listing.RentBasePrice = in.Price
		// LocationID keeps its stored value; the location row below is
		// updated through it.
		if err := tx.Save(&listing).Error; err != nil {
			return &StepError{Step: StepListing, Op: "update", Err: err}
		}

		locUpdates := map[string]interface{}{
			"address_line1": in.Location.AddressLine1,
			"city":          in.Location.City,
			"province":      in.Location.Province,
			"postal_code":   in.Location.PostalCode,
			"country":       in.Location.Country,
			"latitude":      in.Location.Latitude,
			"longitude":     in.Location.Longitude,
		}
		if err := tx.Model(&domain.PropertyLocation{}).
			Where("location_id = ?", listing.LocationID).
			Updates(locUpdates).Error; err != nil {
			return &StepError{Step: StepLocation, Op: "update", Err: err}
		}

		if in.Crops != nil {
			if err := replaceCrops(tx, propertyID, *in.Crops); err != nil {
				return &StepError{Step: StepCrops, Op: "replace", Err: err}
			}
		}

		if in.PrimaryImageURL != "" {
			updates := map[string]interface{}{
				"image_url":  in.PrimaryImageURL,
				"updated_at": time.Now().UTC(),
			}
			if err := tx.Model(&domain.PropertyPrimaryImage{}).
				Where("property_id = ?", propertyID).
				Updates(updates).Error; err != nil {
				return &StepError{Step: StepPrimaryImage, Op: "update", Err: err}
			}
		}

		if in.OtherImageURLs != nil {
			if err := replaceOtherImages(tx, propertyID, *in.OtherImageURLs); err != nil {
				return &StepError{Step: StepOtherImages, Op: "replace", Err: err}
			}
		}

		return recordEvent(tx, propertyID, "UPDATED", map[string]interface{}{
			"property_name":   in.PropertyName,
			"rent_base_price": in.Price,
		})
	})
}

// replaceCrops is delete-all-then-insert-all: no diffing, no partial
// staleness. An empty new set leaves the delete in place, so an explicit
// empty list clears every crop.
func replaceCrops(tx *gorm.DB, propertyID int64, crops []string) error {
	if err := tx.Where("property_id = ?", propertyID).Delete(&domain.PropertyCrop{}).Error; err != nil {
		return err
	}
	if len(crops) == 0 {
		return nil
	}
	rows := make([]domain.PropertyCrop, 0, len(crops))
	for _, name := range crops {
		rows = append(rows, domain.PropertyCrop{PropertyID: propertyID, CropName: name})
	}
	return tx.Create(&rows).Error
}

func replaceOtherImages(tx *gorm.DB, propertyID int64, urls []string) error {
	if err := tx.Where("property_id = ?", propertyID).Delete(&domain.PropertyOtherImage{}).Error; err != nil {
		return err
	}
	if len(urls) == 0 {
		return nil
	}
	rows := make([]domain.PropertyOtherImage, 0, len(urls))
	for _, url := range urls {
		rows = append(rows, domain.PropertyOtherImage{PropertyID: propertyID, ImageURL: url})
	}
	return tx.Create(&rows).Error
}

// recordEvent writes the audit row in the same transaction as the write it
// describes, so a listing and its CREATED event commit or roll back together.
func recordEvent(tx *gorm.DB, propertyID int64, eventType string, data map[string]interface{}) error {
	payload, _ := json.Marshal(data)
	event := &domain.PropertyEvent{
		PropertyID: propertyID,
		EventType:  eventType,
		EventData:  datatypes.JSON(payload),
	}
	if err := tx.Create(event).Error; err != nil {
		return &StepError{Step: StepEvent, Op: "insert", Err: err}
	}
	return nil
}
