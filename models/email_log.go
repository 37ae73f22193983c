package models

import "time"

// EmailLog records a borrowing receipt mailed to a reader.
type EmailLog struct {
	ID          int64     `bson:"_id" json:"id" gorm:"primaryKey"`
	BorrowingID int64     `bson:"borrowingId" json:"borrowingId" gorm:"index;not null"`
	BookID      int64     `bson:"bookId" json:"bookId"`
	UserID      int64     `bson:"userId" json:"userId"`
	ToEmail     string    `bson:"toEmail" json:"toEmail"`
	Subject     string    `bson:"subject" json:"subject"`
	SentAt      time.Time `bson:"sentAt" json:"sentAt"`
}
