package models

import "time"

// Role is a flat permission label; no role implies another.
type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleLibrarian Role = "LIBRARIAN"
	RoleReader    Role = "READER"
	RoleAuthor    Role = "AUTHOR"
)

var ValidRoles = []Role{RoleAdmin, RoleLibrarian, RoleReader, RoleAuthor}

// Valid reports whether r is one of ValidRoles.
func (r Role) Valid() bool {
	for _, v := range ValidRoles {
		if r == v {
			return true
		}
	}
	return false
}

// RoleNames returns ValidRoles as plain strings, in declaration order.
func RoleNames() []string {
	names := make([]string, len(ValidRoles))
	for i, r := range ValidRoles {
		names[i] = string(r)
	}
	return names
}

type User struct {
	ID        int64     `bson:"_id" json:"id" gorm:"primaryKey"`
	Name      string    `bson:"name" json:"name" gorm:"not null"`
	Email     string    `bson:"email" json:"email" gorm:"uniqueIndex;size:191;not null"`
	Password  string    `bson:"password" json:"-" gorm:"not null"` // bcrypt hash
	Role      Role      `bson:"role" json:"role" gorm:"size:16;index;not null"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
