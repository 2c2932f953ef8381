package property

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/socialgrdn2024/socialgrdn-v1-Beta/internal/domain"

	"gorm.io/gorm"
)

// OwnerProperty is one row of GET /api/getUserProperties.
type OwnerProperty struct {
	PropertyID   int64   `gorm:"column:property_id" json:"property_id"`
	PropertyName string  `gorm:"column:property_name" json:"property_name"`
	AddressLine1 string  `gorm:"column:address_line1" json:"address_line1"`
	City         string  `gorm:"column:city" json:"city"`
	Province     string  `gorm:"column:province" json:"province"`
	PostalCode   string  `gorm:"column:postal_code" json:"postal_code"`
	ImageURL     *string `gorm:"column:image_url" json:"image_url"`
}

// ListByOwner returns the owner's active listings with address and primary
// image, matching GetUserPropAPI.js.
func (s *Service) ListByOwner(ctx context.Context, userID int64) ([]OwnerProperty, error) {
	out := []OwnerProperty{}
	err := s.DB.WithContext(ctx).
		Table("PropertyListing p").
		Select("p.property_id, p.property_name, l.address_line1, l.city, l.province, l.postal_code, ppi.image_url").
		Joins("JOIN PropertyLocation l ON p.location_id = l.location_id").
		Joins("LEFT JOIN PropertyPrimaryImages ppi ON p.property_id = ppi.property_id").
		Where("p.userID = ? AND p.status = '1'", userID).
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SearchResult is one row of GET /api/getSearchResults, the flattened shape
// the search page and map consume.
type SearchResult struct {
	PropertyID       int64   `gorm:"column:property_id" json:"property_id"`
	UserID           int64   `gorm:"column:user_id" json:"userID"`
	PropertyName     string  `gorm:"column:property_name" json:"property_name"`
	AddressLine1     string  `gorm:"column:address_line1" json:"address_line1"`
	City             string  `gorm:"column:city" json:"city"`
	Province         string  `gorm:"column:province" json:"province"`
	PostalCode       string  `gorm:"column:postal_code" json:"postal_code"`
	Longitude        float64 `gorm:"column:longitude" json:"longitude"`
	Latitude         float64 `gorm:"column:latitude" json:"latitude"`
	FirstName        string  `gorm:"column:first_name" json:"first_name"`
	LastName         string  `gorm:"column:last_name" json:"last_name"`
	Username         string  `gorm:"column:username" json:"username"`
	GrowthZone       string  `gorm:"column:growth_zone" json:"growth_zone"`
	Crop             string  `gorm:"-" json:"crop"`
	DimensionsLength float64 `gorm:"column:dimensions_length" json:"dimensions_length"`
	DimensionsWidth  float64 `gorm:"column:dimensions_width" json:"dimensions_width"`
	DimensionsHeight float64 `gorm:"column:dimensions_height" json:"dimensions_height"`
	Area             float64 `gorm:"-" json:"area"`
	SoilType         string  `gorm:"column:soil_type" json:"soil_type"`
	RentBasePrice    float64 `gorm:"column:rent_base_price" json:"rent_base_price"`
	PropertyImage    string  `gorm:"-" json:"propertyImage"`
}

// SearchResults returns all active listings joined with owner and address.
// A listing with no crop rows is excluded, same as the Express inner join.
// The representative crop and image are the lexicographic minimum per
// listing, matching the MIN() aggregates of the original query.
func (s *Service) SearchResults(ctx context.Context) ([]SearchResult, error) {
	rows := []SearchResult{}
	err := s.DB.WithContext(ctx).
		Table("PropertyListing pl").
		Select("pl.property_id, pl.userID AS user_id, pl.property_name, plo.address_line1, plo.city, plo.province, plo.postal_code, plo.longitude, plo.latitude, up.first_name, up.last_name, up.username, pl.growth_zone, pl.dimensions_length, pl.dimensions_width, pl.dimensions_height, pl.soil_type, pl.rent_base_price").
		Joins("JOIN UserProfile up ON pl.userID = up.userID").
		Joins("JOIN PropertyLocation plo ON pl.location_id = plo.location_id").
		Where("pl.status = '1'").
		Order("pl.property_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return rows, nil
	}

	ids := make([]int64, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.PropertyID)
	}

	crops, err := s.minCropByProperty(ctx, ids)
	if err != nil {
		return nil, err
	}
	images, err := s.minPrimaryImageByProperty(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]SearchResult, 0, len(rows))
	for _, r := range rows {
		crop, ok := crops[r.PropertyID]
		if !ok {
			continue
		}
		r.Crop = crop
		r.PropertyImage = images[r.PropertyID]
		r.Area = r.DimensionsLength * r.DimensionsWidth
		out = append(out, r)
	}
	return out, nil
}

func (s *Service) minCropByProperty(ctx context.Context, ids []int64) (map[int64]string, error) {
	var rows []domain.PropertyCrop
	if err := s.DB.WithContext(ctx).
		Where("property_id IN ?", ids).
		Order("crop_name").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	min := make(map[int64]string, len(rows))
	for _, c := range rows {
		if _, ok := min[c.PropertyID]; !ok {
			min[c.PropertyID] = c.CropName
		}
	}
	return min, nil
}

func (s *Service) minPrimaryImageByProperty(ctx context.Context, ids []int64) (map[int64]string, error) {
	var rows []domain.PropertyPrimaryImage
	if err := s.DB.WithContext(ctx).
		Where("property_id IN ?", ids).
		Order("image_url").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	min := make(map[int64]string, len(rows))
	for _, img := range rows {
		if _, ok := min[img.PropertyID]; !ok {
			min[img.PropertyID] = img.ImageURL
		}
	}
	return min, nil
}

// DetailsOwner is the nested owner object of the details payload.
type DetailsOwner struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}

// Details is the GET /api/getPropertyDetails payload: the raw listing row
// reshaped the way GetPropDetailsAPI.js post-processed it (arrays for
// amenities/restrictions/crops, owner sub-object, composed dimension string).
type Details struct {
	PropertyID    int64        `json:"property_id"`
	PropertyName  string       `json:"property_name"`
	Description   string       `json:"description"`
	GrowthZone    string       `json:"growth_zone"`
	UserID        int64        `json:"userID"`
	Dimension     string       `json:"dimension"`
	SoilType      string       `json:"soil_type"`
	Amenities     []string     `json:"amenities"`
	Restrictions  []string     `json:"restrictions"`
	RentBasePrice float64      `json:"rent_base_price"`
	AddressLine1  string       `json:"address_line1"`
	City          string       `json:"city"`
	Province      string       `json:"province"`
	PostalCode    string       `json:"postal_code"`
	Country       string       `json:"country"`
	Latitude      float64      `json:"latitude"`
	Longitude     float64      `json:"longitude"`
	Crops         []string     `json:"crops"`
	PrimaryImage  *string      `json:"primaryImage"`
	OtherImages   []string     `json:"otherImages"`
	Owner         DetailsOwner `json:"owner"`
}

// Details assembles the full listing view. Returns ErrPropertyNotFound when
// the id matches nothing.
func (s *Service) Details(ctx context.Context, propertyID int64) (*Details, error) {
	db := s.DB.WithContext(ctx)

	var listing domain.PropertyListing
	if err := db.Where("property_id = ?", propertyID).First(&listing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}

	var loc domain.PropertyLocation
	if err := db.Where("location_id = ?", listing.LocationID).First(&loc).Error; err != nil {
		return nil, err
	}

	var crops []domain.PropertyCrop
	if err := db.Where("property_id = ?", propertyID).Order("crop_name").Find(&crops).Error; err != nil {
		return nil, err
	}
	cropNames := make([]string, 0, len(crops))
	for _, c := range crops {
		cropNames = append(cropNames, c.CropName)
	}

	var primaryImage *string
	var primary domain.PropertyPrimaryImage
	err := db.Where("property_id = ?", propertyID).First(&primary).Error
	switch {
	case err == nil:
		primaryImage = &primary.ImageURL
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	var others []domain.PropertyOtherImage
	if err := db.Where("property_id = ?", propertyID).Find(&others).Error; err != nil {
		return nil, err
	}
	otherURLs := make([]string, 0, len(others))
	for _, img := range others {
		otherURLs = append(otherURLs, img.ImageURL)
	}

	owner := DetailsOwner{}
	var user domain.UserProfile
	err = db.Where("userID = ?", listing.UserID).First(&user).Error
	switch {
	case err == nil:
		owner.FirstName = &user.FirstName
		owner.LastName = &user.LastName
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	return &Details{
		PropertyID:    listing.PropertyID,
		PropertyName:  listing.PropertyName,
		Description:   listing.Description,
		GrowthZone:    listing.GrowthZone,
		UserID:        listing.UserID,
		Dimension:     dimensionString(listing),
		SoilType:      listing.SoilType,
		Amenities:     splitList(listing.Amenities),
		Restrictions:  splitList(listing.Restrictions),
		RentBasePrice: listing.RentBasePrice,
		AddressLine1:  loc.AddressLine1,
		City:          loc.City,
		Province:      loc.Province,
		PostalCode:    loc.PostalCode,
		Country:       loc.Country,
		Latitude:      loc.Latitude,
		Longitude:     loc.Longitude,
		Crops:         cropNames,
		PrimaryImage:  primaryImage,
		OtherImages:   otherURLs,
		Owner:         owner,
	}, nil
}

// StatusResult is the GET /api/getPropStatus payload.
type StatusResult struct {
	Status       string `json:"status"`
	PropertyName string `json:"property_name"`
}

// Status returns the listing's status flag and name.
func (s *Service) Status(ctx context.Context, propertyID int64) (*StatusResult, error) {
	var listing domain.PropertyListing
	err := s.DB.WithContext(ctx).
		Select("status", "property_name").
		Where("property_id = ?", propertyID).
		First(&listing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPropertyNotFound
	}
	if err != nil {
		return nil, err
	}
	return &StatusResult{Status: listing.Status, PropertyName: listing.PropertyName}, nil
}

// UpdateStatus flips the soft-delete flag. Like UpdatePropStatusAPI.js it
// does not distinguish a missing listing from a no-op update.
func (s *Service) UpdateStatus(ctx context.Context, propertyID int64, status string) error {
	return s.DB.WithContext(ctx).
		Model(&domain.PropertyListing{}).
		Where("property_id = ?", propertyID).
		Update("status", status).Error
}

// SaveImage appends a row to the standalone PropertyImages table.
func (s *Service) SaveImage(ctx context.Context, propertyID int64, imagePath string) error {
	return s.DB.WithContext(ctx).
		Create(&domain.PropertyImage{PropertyID: propertyID, ImagePath: imagePath}).Error
}

func dimensionString(l domain.PropertyListing) string {
	return formatDim(l.DimensionsLength) + " L x " +
		formatDim(l.DimensionsWidth) + " W x " +
		formatDim(l.DimensionsHeight) + " H"
}

func formatDim(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// splitList turns the stored comma-separated text into a trimmed slice.
// The "None Listed" sentinel round-trips as a single-element list, which is
// what the frontend rendered.
func splitList(v string) []string {
	if strings.TrimSpace(v) == "" {
		return []string{}
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}
