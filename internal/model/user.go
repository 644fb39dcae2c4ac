package model

import "time"

// User roles.
const (
	RoleUser  = 0
	RoleAdmin = 1
)

// User is a dashboard account. Role 1 grants admin capabilities.
type User struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Username  string    `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	Email     string    `gorm:"size:100" json:"email"`
	Phone     string    `gorm:"size:20" json:"phone"`
	Role      int       `gorm:"not null;default:0" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RoleName renders the numeric role the way the API reports it.
func (u User) RoleName() string {
	if u.Role == RoleAdmin {
		return "admin"
	}
	return "user"
}
