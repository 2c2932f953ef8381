package domain

import "time"

// UserProfile matches the Express UserProfile table (RegisterAPI.js / EditProfileAPI.js).
// Role and Status are stored as the same single-character strings the MySQL
// schema used ('1' = member/active, '2' = moderator, '0' = blocked).
type UserProfile struct {
	UserID       int64     `gorm:"column:userID;primaryKey;autoIncrement" json:"userID"`
	Email        string    `gorm:"column:email;uniqueIndex;not null" json:"email"`
	FirstName    string    `gorm:"column:first_name;not null" json:"first_name"`
	LastName     string    `gorm:"column:last_name;not null" json:"last_name"`
	Username     string    `gorm:"column:username;not null" json:"username"`
	Profession   string    `gorm:"column:profession" json:"profession"`
	PhoneNumber  string    `gorm:"column:phone_number" json:"phone_number"`
	AddressLine1 string    `gorm:"column:address_line1" json:"address_line1"`
	City         string    `gorm:"column:city" json:"city"`
	Province     string    `gorm:"column:province" json:"province"`
	PostalCode   string    `gorm:"column:postal_code" json:"postal_code"`
	Role         string    `gorm:"column:role;type:varchar(1);default:'1'" json:"role"`
	Status       string    `gorm:"column:status;type:varchar(1);default:'1'" json:"status"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
}

func (UserProfile) TableName() string {
	return "UserProfile"
}
