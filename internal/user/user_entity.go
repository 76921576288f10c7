package user

import "time"

// User lives in the primary store. Role is the local attribute the Role
// Resolver consults first; the external identity store may carry a stale
// mirror of it.
type User struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Username  string `gorm:"type:varchar(150);not null;uniqueIndex:uq_user_username"`
	Email     string `gorm:"type:varchar(255);not null;uniqueIndex:uq_user_email"`
	Password  string `gorm:"type:varchar(255);not null"`
	FirstName string `gorm:"type:varchar(150)"`
	LastName  string `gorm:"type:varchar(150)"`
	Role      string `gorm:"type:varchar(20);not null;default:'candidato'"`
	IsActive  bool   `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (User) TableName() string {
	return "usuarios"
}

func (u *User) FullName() string {
	name := u.FirstName
	if u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += u.LastName
	}
	if name == "" {
		return u.Username
	}
	return name
}
