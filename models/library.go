package models

import "time"

// Branch and Library share a shape but are independent entities: a branch
// does not belong to a library.
type Branch struct {
	ID        int64     `bson:"_id" json:"id" gorm:"primaryKey"`
	Name      string    `bson:"name" json:"name" gorm:"uniqueIndex;size:191;not null"`
	Address   string    `bson:"address" json:"address" gorm:"not null"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

type Library struct {
	ID        int64     `bson:"_id" json:"id" gorm:"primaryKey"`
	Name      string    `bson:"name" json:"name" gorm:"uniqueIndex;size:191;not null"`
	Address   string    `bson:"address" json:"address" gorm:"not null"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
