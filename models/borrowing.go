package models

import "time"

type Borrowing struct {
	ID         int64      `bson:"_id" json:"id" gorm:"primaryKey"`
	BookID     int64      `bson:"bookId" json:"bookId" gorm:"index;not null"`
	UserID     int64      `bson:"userId" json:"userId" gorm:"index;not null"`
	BorrowDate time.Time  `bson:"borrowDate" json:"borrowDate"`
	ReturnDate *time.Time `bson:"returnDate,omitempty" json:"returnDate"`
	CreatedAt  time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time  `bson:"updatedAt" json:"updatedAt"`
}

type Review struct {
	ID        int64     `bson:"_id" json:"id" gorm:"primaryKey"`
	Content   string    `bson:"content" json:"content" gorm:"not null"`
	Rating    float64   `bson:"rating" json:"rating"`
	BookID    int64     `bson:"bookId" json:"bookId" gorm:"index;not null"`
	UserID    int64     `bson:"userId" json:"userId" gorm:"index;not null"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
