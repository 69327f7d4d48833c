package entity

import "time"

type Course struct {
	ID           int64
	EducatorID   int64
	Title        string
	Slug         string
	Description  string
	Level        CourseLevel
	PriceMinor   int64
	ThumbnailKey string
	Status       CourseStatus
	Approved     bool
	Featured     bool
	RatingAvg    float64
	RatingCount  int32
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Free reports whether enrollment requires no payment.
func (c Course) Free() bool {
	return c.PriceMinor == 0
}

type Section struct {
	ID       int64
	CourseID int64
	Title    string
	Position int32
}

type Chapter struct {
	ID          int64
	SectionID   int64
	Title       string
	MediaKey    string
	DurationSec int32
	Position    int32
	Preview     bool
}

type SectionWithChapters struct {
	Section
	Chapters []Chapter
}

type CourseDetail struct {
	Course
	Sections []SectionWithChapters
}

type CourseListFilter struct {
	Search   string
	Level    CourseLevel
	Featured bool

	IsFilterBySearch   bool
	IsFilterByLevel    bool
	IsFilterByFeatured bool

	Size   int32
	Offset int32
}
