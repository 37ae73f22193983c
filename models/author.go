package models

import "time"

type Author struct {
	ID        int64      `bson:"_id" json:"id" gorm:"primaryKey"`
	Name      string     `bson:"name" json:"name" gorm:"not null"`
	Biography string     `bson:"biography,omitempty" json:"biography"`
	BirthDate *time.Time `bson:"birthDate,omitempty" json:"birthDate"`
	CreatedAt time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time  `bson:"updatedAt" json:"updatedAt"`
}
