package entity

import "time"

type Review struct {
	ID        int64
	CourseID  int64
	UserID    int64
	Rating    int32
	Comment   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ReviewWithAuthor carries the reviewer's display name for listings.
type ReviewWithAuthor struct {
	Review
	AuthorName string
}
