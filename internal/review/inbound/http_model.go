package inbound

import "time"

type CreateReviewRequest struct {
	CourseID int64  `json:"course_id,string"`
	Rating   int32  `json:"rating"`
	Comment  string `json:"comment"`
}

type CreateReviewResponse struct {
	ReviewID int64 `json:"review_id,string"`
}

func (CreateReviewResponse) Message() string {
	return "Review submitted. Thank you for your feedback."
}

type ReviewItem struct {
	ID         int64     `json:"id,string"`
	UserID     int64     `json:"user_id,string"`
	AuthorName string    `json:"author_name"`
	Rating     int32     `json:"rating"`
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type ReviewListResponse struct {
	Reviews []ReviewItem `json:"reviews"`

	page  int32
	size  int32
	total int64
}

func (r ReviewListResponse) Meta() map[string]any {
	return map[string]any{"page": r.page, "size": r.size, "total": r.total}
}
