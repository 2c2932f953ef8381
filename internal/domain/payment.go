package domain

import "time"

// Payment matches the Express payment table read by the payout/earnings
// reports. Status 'P' marks a paid-out row; PayoutDate is NULL until the
// payout is scheduled, which is why the reports filter on it.
type Payment struct {
	PaymentID     int64      `gorm:"column:payment_id;primaryKey;autoIncrement" json:"payment_id"`
	RentalID      int64      `gorm:"column:rental_id;not null;index" json:"rental_id"`
	RentBasePrice float64    `gorm:"column:rent_base_price" json:"rent_base_price"`
	Status        string     `gorm:"column:status;type:varchar(1)" json:"status"`
	PayoutDate    *time.Time `gorm:"column:payout_date" json:"payout_date"`
}

func (Payment) TableName() string {
	return "Payment"
}
