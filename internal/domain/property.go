package domain

import (
	"time"

	"gorm.io/datatypes"
)

// PropertyLocation is the address row owned by exactly one PropertyListing.
// The id is store-generated; the listing's id is not (see PropertyListing).
type PropertyLocation struct {
	LocationID   int64   `gorm:"column:location_id;primaryKey;autoIncrement" json:"location_id"`
	AddressLine1 string  `gorm:"column:address_line1;not null" json:"address_line1"`
	City         string  `gorm:"column:city;not null" json:"city"`
	Province     string  `gorm:"column:province;not null" json:"province"`
	PostalCode   string  `gorm:"column:postal_code;not null" json:"postal_code"`
	Country      string  `gorm:"column:country;not null" json:"country"`
	Latitude     float64 `gorm:"column:latitude" json:"latitude"`
	Longitude    float64 `gorm:"column:longitude" json:"longitude"`
}

func (PropertyLocation) TableName() string {
	return "PropertyLocation"
}

// PropertyListing matches the Express PropertyListing table. The primary key
// is caller-supplied, never autoincremented: the frontend generates the
// property id and the unique constraint is the only duplicate guard.
// Status is the same soft-delete tri-state string the MySQL schema used
// ('1' active, '0' inactive).
type PropertyListing struct {
	PropertyID       int64     `gorm:"column:property_id;primaryKey;autoIncrement:false" json:"property_id"`
	UserID           int64     `gorm:"column:userID;not null;index" json:"userID"`
	PropertyName     string    `gorm:"column:property_name;not null" json:"property_name"`
	LocationID       int64     `gorm:"column:location_id;not null" json:"location_id"`
	GrowthZone       string    `gorm:"column:growth_zone" json:"growth_zone"`
	Description      string    `gorm:"column:description" json:"description"`
	DimensionsLength float64   `gorm:"column:dimensions_length" json:"dimensions_length"`
	DimensionsWidth  float64   `gorm:"column:dimensions_width" json:"dimensions_width"`
	DimensionsHeight float64   `gorm:"column:dimensions_height" json:"dimensions_height"`
	SoilType         string    `gorm:"column:soil_type" json:"soil_type"`
	Amenities        string    `gorm:"column:amenities" json:"amenities"`
	Restrictions     string    `gorm:"column:restrictions" json:"restrictions"`
	RentBasePrice    float64   `gorm:"column:rent_base_price" json:"rent_base_price"`
	Status           string    `gorm:"column:status;type:varchar(1);default:'1'" json:"status"`
	CreatedAt        time.Time `gorm:"column:created_at" json:"created_at"`
}

func (PropertyListing) TableName() string {
	return "PropertyListing"
}

// PropertyCrop is a pure association row; the set is replaced wholesale on
// update, never diffed.
type PropertyCrop struct {
	ID         int64  `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	PropertyID int64  `gorm:"column:property_id;not null;index" json:"property_id"`
	CropName   string `gorm:"column:crop_name;not null" json:"crop_name"`
}

func (PropertyCrop) TableName() string {
	return "PropertyCrops"
}

// PropertyPrimaryImage holds at most one row per listing.
type PropertyPrimaryImage struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	PropertyID int64     `gorm:"column:property_id;not null;uniqueIndex" json:"property_id"`
	ImageURL   string    `gorm:"column:image_url;not null" json:"image_url"`
	UpdatedAt  time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (PropertyPrimaryImage) TableName() string {
	return "PropertyPrimaryImages"
}

// PropertyOtherImage rows are replaced wholesale when new URLs are supplied.
type PropertyOtherImage struct {
	ID         int64  `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	PropertyID int64  `gorm:"column:property_id;not null;index" json:"property_id"`
	ImageURL   string `gorm:"column:image_url;not null" json:"image_url"`
}

func (PropertyOtherImage) TableName() string {
	return "PropertyOtherImages"
}

// PropertyImage matches the standalone PropertyImages table used by
// SavePropertyImageAPI.js (distinct from the listing image tables).
type PropertyImage struct {
	ID         int64  `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	PropertyID int64  `gorm:"column:property_id;not null;index" json:"property_id"`
	ImagePath  string `gorm:"column:image_path;not null" json:"image_path"`
}

func (PropertyImage) TableName() string {
	return "PropertyImages"
}

// PropertyEvent is an audit row written inside the same transaction as the
// listing create/update it describes.
type PropertyEvent struct {
	EventID    int64          `gorm:"column:event_id;primaryKey;autoIncrement" json:"event_id"`
	PropertyID int64          `gorm:"column:property_id;not null;index" json:"property_id"`
	EventType  string         `gorm:"column:event_type;type:varchar(20);not null" json:"event_type"`
	EventData  datatypes.JSON `gorm:"column:event_data" json:"event_data"`
	CreatedAt  time.Time      `gorm:"column:created_at" json:"created_at"`
}

func (PropertyEvent) TableName() string {
	return "PropertyEvents"
}
