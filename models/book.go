package models

import "time"

type BookStatus string

const (
	StatusAvailable BookStatus = "AVAILABLE"
	StatusBorrowed  BookStatus = "BORROWED"
	StatusReserved  BookStatus = "RESERVED"
	StatusDamaged   BookStatus = "DAMAGED"
)

var ValidBookStatuses = []BookStatus{StatusAvailable, StatusBorrowed, StatusReserved, StatusDamaged}

// BookStatusNames returns ValidBookStatuses as plain strings.
func BookStatusNames() []string {
	names := make([]string, len(ValidBookStatuses))
	for i, s := range ValidBookStatuses {
		names[i] = string(s)
	}
	return names
}

type Book struct {
	ID              int64      `bson:"_id" json:"id" gorm:"primaryKey"`
	Title           string     `bson:"title" json:"title" gorm:"not null"`
	Description     string     `bson:"description" json:"description"`
	PublicationDate time.Time  `bson:"publicationDate" json:"publicationDate"`
	Status          BookStatus `bson:"status" json:"status" gorm:"size:16;not null"`
	CategoryID      int64      `bson:"categoryId" json:"categoryId" gorm:"index;not null"`
	LibraryID       *int64     `bson:"libraryId,omitempty" json:"libraryId" gorm:"index"`
	BranchID        *int64     `bson:"branchId,omitempty" json:"branchId" gorm:"index"`
	AuthorIDs       []int64    `bson:"authorIds" json:"authorIds" gorm:"serializer:json"`
	CoverKey        string     `bson:"coverKey,omitempty" json:"-"` // object key in S3
	HasCover        bool       `bson:"-" json:"hasCover" gorm:"-"`
	CreatedAt       time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time  `bson:"updatedAt" json:"updatedAt"`
}
