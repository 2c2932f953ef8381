package rental

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/socialgrdn2024/socialgrdn-v1-Beta/internal/domain"

	"gorm.io/gorm"
)

// ErrRentalNotFound is returned when no rental matches the id.
var ErrRentalNotFound = errors.New("Reservation not found")

// Service owns rental reads and writes. All payment capture happens at the
// external gateway; rows here only record the reservation.
type Service struct {
	DB *gorm.DB
}

// RegisterInput matches the POST /api/registerRentalDetails body.
type RegisterInput struct {
	PropertyID     int64     `json:"property_id"`
	RenterID       int64     `json:"renter_ID"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
	Status         string    `json:"status"`
	RentBasePrice  float64   `json:"rent_base_price"`
	TaxAmount      float64   `json:"tax_amount"`
	TransactionFee float64   `json:"transaction_fee"`
}

// Register inserts a rental and returns the generated rent id.
func (s *Service) Register(ctx context.Context, in RegisterInput) (int64, error) {
	r := &domain.Rental{
		PropertyID:     in.PropertyID,
		RenterID:       in.RenterID,
		StartDate:      in.StartDate,
		EndDate:        in.EndDate,
		Status:         in.Status,
		RentBasePrice:  in.RentBasePrice,
		TaxAmount:      in.TaxAmount,
		TransactionFee: in.TransactionFee,
	}
	if err := s.DB.WithContext(ctx).Create(r).Error; err != nil {
		return 0, err
	}
	return r.RentalID, nil
}

// EditInput matches the PATCH /api/editRentalDetails body.
type EditInput struct {
	RentalID       int64     `json:"rental_id"`
	PropertyID     int64     `json:"property_id"`
	RenterID       int64     `json:"renter_ID"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
	Status         string    `json:"status"`
	RentBasePrice  float64   `json:"rent_base_price"`
	TaxAmount      float64   `json:"tax_amount"`
	TransactionFee float64   `json:"transaction_fee"`
}

// Edit rewrites every mutable rental column. Zero affected rows means the
// rental does not exist.
func (s *Service) Edit(ctx context.Context, in EditInput) error {
	res := s.DB.WithContext(ctx).
		Model(&domain.Rental{}).
		Where("rental_id = ?", in.RentalID).
		Updates(map[string]interface{}{
			"property_id":     in.PropertyID,
			"renter_ID":       in.RenterID,
			"start_date":      in.StartDate,
			"end_date":        in.EndDate,
			"status":          in.Status,
			"rent_base_price": in.RentBasePrice,
			"tax_amount":      in.TaxAmount,
			"transaction_fee": in.TransactionFee,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRentalNotFound
	}
	return nil
}

// DetailsResult is the flat GET /api/GetRentalDetails row: rental, listing,
// address, owner name, primary image and one representative crop.
type DetailsResult struct {
	RentalID         int64     `gorm:"column:rental_id" json:"rental_id"`
	StartDate        time.Time `gorm:"column:start_date" json:"start_date"`
	EndDate          time.Time `gorm:"column:end_date" json:"end_date"`
	Status           string    `gorm:"column:status" json:"status"`
	RentBasePrice    float64   `gorm:"column:rent_base_price" json:"rent_base_price"`
	TaxAmount        float64   `gorm:"column:tax_amount" json:"tax_amount"`
	TransactionFee   float64   `gorm:"column:transaction_fee" json:"transaction_fee"`
	RenterID         int64     `gorm:"column:renter_id" json:"renter_ID"`
	PropertyID       int64     `gorm:"column:property_id" json:"property_id"`
	PropertyName     string    `gorm:"column:property_name" json:"property_name"`
	GrowthZone       string    `gorm:"column:growth_zone" json:"growth_zone"`
	DimensionsLength float64   `gorm:"column:dimensions_length" json:"dimensions_length"`
	DimensionsWidth  float64   `gorm:"column:dimensions_width" json:"dimensions_width"`
	DimensionsHeight float64   `gorm:"column:dimensions_height" json:"dimensions_height"`
	Description      string    `gorm:"column:description" json:"description"`
	SoilType         string    `gorm:"column:soil_type" json:"soil_type"`
	Amenities        string    `gorm:"column:amenities" json:"amenities"`
	Restrictions     string    `gorm:"column:restrictions" json:"restrictions"`
	PropertyOwner    string    `gorm:"-" json:"property_owner"`
	AddressLine1     string    `gorm:"column:address_line1" json:"address_line1"`
	City             string    `gorm:"column:city" json:"city"`
	Province         string    `gorm:"column:province" json:"province"`
	ImageURL         *string   `gorm:"column:image_url" json:"image_url"`
	CropName         *string   `gorm:"column:crop_name" json:"crop_name"`
	FirstName        string    `gorm:"column:first_name" json:"-"`
	LastName         string    `gorm:"column:last_name" json:"-"`
}

// Details returns the joined rental view for one rental id.
func (s *Service) Details(ctx context.Context, rentalID int64) (*DetailsResult, error) {
	var row DetailsResult
	res := s.DB.WithContext(ctx).
		Table("Rental r").
		Select("r.rental_id, r.start_date, r.end_date, r.status, r.rent_base_price, r.tax_amount, r.transaction_fee, r.renter_ID AS renter_id, pl.property_id, pl.property_name, pl.growth_zone, pl.dimensions_length, pl.dimensions_width, pl.dimensions_height, pl.description, pl.soil_type, pl.amenities, pl.restrictions, up.first_name, up.last_name, loc.address_line1, loc.city, loc.province, p.image_url, pc.crop_name").
		Joins("JOIN PropertyListing pl ON r.property_id = pl.property_id").
		Joins("JOIN UserProfile up ON pl.userID = up.userID").
		Joins("JOIN PropertyLocation loc ON pl.location_id = loc.location_id").
		Joins("LEFT JOIN PropertyPrimaryImages p ON pl.property_id = p.property_id").
		Joins("LEFT JOIN PropertyCrops pc ON pl.property_id = pc.property_id").
		Where("r.rental_id = ?", rentalID).
		Order("pc.crop_name").
		Limit(1).
		Scan(&row)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrRentalNotFound
	}
	row.PropertyOwner = fmt.Sprintf("%s %s", row.FirstName, row.LastName)
	return &row, nil
}

// ListRow is one row of GET /api/getRentalList.
type ListRow struct {
	RentalID     int64     `gorm:"column:rental_id" json:"rental_id"`
	PropertyID   int64     `gorm:"column:property_id" json:"property_id"`
	PropertyName string    `gorm:"column:property_name" json:"property_name"`
	GrowthZone   string    `gorm:"column:growth_zone" json:"growth_zone"`
	PropertyOwner string   `gorm:"-" json:"property_owner"`
	StartDate    time.Time `gorm:"column:start_date" json:"start_date"`
	EndDate      time.Time `gorm:"column:end_date" json:"end_date"`
	AddressLine1 string    `gorm:"column:address_line1" json:"address_line1"`
	City         string    `gorm:"column:city" json:"city"`
	Province     string    `gorm:"column:province" json:"province"`
	ImageURL     *string   `gorm:"column:image_url" json:"image_url"`
	FirstName    string    `gorm:"column:first_name" json:"-"`
	LastName     string    `gorm:"column:last_name" json:"-"`
}

// ListByRenter returns the renter's active rentals with listing and address.
func (s *Service) ListByRenter(ctx context.Context, renterID int64) ([]ListRow, error) {
	rows := []ListRow{}
	err := s.DB.WithContext(ctx).
		Table("Rental r").
		Select("r.rental_id, pl.property_id, pl.property_name, pl.growth_zone, up.first_name, up.last_name, r.start_date, r.end_date, loc.address_line1, loc.city, loc.province, p.image_url").
		Joins("JOIN PropertyListing pl ON r.property_id = pl.property_id").
		Joins("JOIN UserProfile up ON pl.userID = up.userID").
		Joins("JOIN PropertyLocation loc ON pl.location_id = loc.location_id").
		Joins("LEFT JOIN PropertyPrimaryImages p ON pl.property_id = p.property_id").
		Where("r.renter_ID = ? AND r.status = '1'", renterID).
		Order("r.rental_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].PropertyOwner = fmt.Sprintf("%s %s", rows[i].FirstName, rows[i].LastName)
	}
	return rows, nil
}
