package domain

import "time"

// Rental matches the Express Rental table (RegisterRentalDetailsAPI.js).
// Status '1' means active; the renter references UserProfile and the
// property references PropertyListing.
type Rental struct {
	RentalID       int64     `gorm:"column:rental_id;primaryKey;autoIncrement" json:"rental_id"`
	PropertyID     int64     `gorm:"column:property_id;not null;index" json:"property_id"`
	RenterID       int64     `gorm:"column:renter_ID;not null;index" json:"renter_ID"`
	StartDate      time.Time `gorm:"column:start_date" json:"start_date"`
	EndDate        time.Time `gorm:"column:end_date" json:"end_date"`
	Status         string    `gorm:"column:status;type:varchar(1);default:'1'" json:"status"`
	RentBasePrice  float64   `gorm:"column:rent_base_price" json:"rent_base_price"`
	TaxAmount      float64   `gorm:"column:tax_amount" json:"tax_amount"`
	TransactionFee float64   `gorm:"column:transaction_fee" json:"transaction_fee"`
}

func (Rental) TableName() string {
	return "Rental"
}
