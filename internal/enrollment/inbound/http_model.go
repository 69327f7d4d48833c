package inbound

import "time"

type EnrollRequest struct {
	CourseID int64 `json:"course_id,string"`
}

type EnrollResponse struct {
	EnrollmentID int64  `json:"enrollment_id,string"`
	Status       string `json:"status"`
}

func (EnrollResponse) Message() string {
	return "Enrollment successful."
}

type EnrollmentItem struct {
	ID              int64      `json:"id,string"`
	CourseID        int64      `json:"course_id,string"`
	CourseTitle     string     `json:"course_title"`
	CourseSlug      string     `json:"course_slug"`
	Status          string     `json:"status"`
	PercentComplete int32      `json:"percent_complete"`
	EnrolledAt      time.Time  `json:"enrolled_at"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
}

type MyEnrollmentsResponse struct {
	Enrollments []EnrollmentItem `json:"enrollments"`
}

type CompleteChapterResponse struct {
	PercentComplete int32 `json:"percent_complete"`
	CourseCompleted bool  `json:"course_completed"`
}
