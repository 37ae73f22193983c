package models

import "time"

type Category struct {
	ID        int64     `bson:"_id" json:"id" gorm:"primaryKey"`
	Name      string    `bson:"name" json:"name" gorm:"uniqueIndex;size:191;not null"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
