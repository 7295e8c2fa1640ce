// File: internal/user/model.go
package user

import (
	"time"

	"bluestock_client/internal/shared"
)

// User is the dev gateway's account record.
type User struct {
	ID               string `gorm:"type:varchar(36);primary_key"`
	Email            string `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash     string `gorm:"type:varchar(255);not null"`
	FullName         string `gorm:"type:varchar(255);not null"`
	MobileNumber     string `gorm:"type:varchar(32);uniqueIndex;not null"`
	Gender           string `gorm:"type:varchar(1);not null"`
	IsMobileVerified bool   `gorm:"not null;default:false"`
	IsEmailVerified  bool   `gorm:"not null;default:false"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
	LastLoginAt      *time.Time
}

// TableName specifies the table name for the User model.
func (User) TableName() string {
	return "users"
}

// ToIdentity converts the record to the wire identity. The password hash
// never leaves this package.
func (u *User) ToIdentity() shared.UserIdentity {
	return shared.UserIdentity{
		ID:               u.ID,
		Email:            u.Email,
		FullName:         u.FullName,
		MobileNumber:     u.MobileNumber,
		Gender:           shared.Gender(u.Gender),
		IsMobileVerified: u.IsMobileVerified,
		IsEmailVerified:  u.IsEmailVerified,
	}
}
