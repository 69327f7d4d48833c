package entity

import "time"

type EnrollmentStatus int16

const (
	EnrollmentStatusUnknown EnrollmentStatus = iota
	EnrollmentStatusActive
	EnrollmentStatusCompleted
)

func (s EnrollmentStatus) String() string {
	switch s {
	case EnrollmentStatusActive:
		return "active"
	case EnrollmentStatusCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

type Enrollment struct {
	ID          int64
	UserID      int64
	CourseID    int64
	Status      EnrollmentStatus
	EnrolledAt  time.Time
	CompletedAt *time.Time
}

type ChapterProgress struct {
	ID           int64
	EnrollmentID int64
	SectionID    int64
	ChapterID    int64
	Completed    bool
	CompletedAt  *time.Time
}

// ProgressSummary is the per-enrollment rollup used in listings.
type ProgressSummary struct {
	TotalChapters     int32
	CompletedChapters int32
}

// Percent returns the completion percentage rounded to the nearest
// whole number. An enrollment with no chapters counts as 0.
func (p ProgressSummary) Percent() int32 {
	if p.TotalChapters == 0 {
		return 0
	}

	return int32((float64(p.CompletedChapters)*100/float64(p.TotalChapters)) + 0.5)
}

type EnrollmentWithProgress struct {
	Enrollment
	CourseTitle string
	CourseSlug  string
	Progress    ProgressSummary
}
