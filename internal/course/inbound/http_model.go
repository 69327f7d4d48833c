package inbound

import "time"

type CreateCourseRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Level       string `json:"level"`
	PriceMinor  int64  `json:"price_minor"`
}

type CreateCourseResponse struct {
	ID   int64  `json:"id,string"`
	Slug string `json:"slug"`
}

func (CreateCourseResponse) Message() string {
	return "Course created as draft."
}

type UpdateCourseRequest struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Level       string `json:"level,omitempty"`
	PriceMinor  *int64 `json:"price_minor,omitempty"`
}

type CreateSectionRequest struct {
	Title    string `json:"title"`
	Position int32  `json:"position"`
}

type CreateSectionResponse struct {
	ID int64 `json:"id,string"`
}

type CreateChapterRequest struct {
	Title       string `json:"title"`
	MediaKey    string `json:"media_key,omitempty"`
	DurationSec int32  `json:"duration_sec"`
	Position    int32  `json:"position"`
	Preview     bool   `json:"preview"`
}

type CreateChapterResponse struct {
	ID int64 `json:"id,string"`
}

type CourseItem struct {
	ID           int64     `json:"id,string"`
	EducatorID   int64     `json:"educator_id,string"`
	Title        string    `json:"title"`
	Slug         string    `json:"slug"`
	Description  string    `json:"description"`
	Level        string    `json:"level"`
	PriceMinor   int64     `json:"price_minor"`
	Status       string    `json:"status"`
	Approved     bool      `json:"approved"`
	Featured     bool      `json:"featured"`
	RatingAvg    float64   `json:"rating_avg"`
	RatingCount  int32     `json:"rating_count"`
	CreatedAt    time.Time `json:"created_at"`
}

type CourseListResponse struct {
	Courses []CourseItem `json:"courses"`

	page  int32
	size  int32
	total int64
}

func (r CourseListResponse) Meta() map[string]any {
	return map[string]any{"page": r.page, "size": r.size, "total": r.total}
}

type ChapterItem struct {
	ID          int64  `json:"id,string"`
	Title       string `json:"title"`
	DurationSec int32  `json:"duration_sec"`
	Position    int32  `json:"position"`
	Preview     bool   `json:"preview"`
}

type SectionItem struct {
	ID       int64         `json:"id,string"`
	Title    string        `json:"title"`
	Position int32         `json:"position"`
	Chapters []ChapterItem `json:"chapters"`
}

type CourseDetailResponse struct {
	CourseItem
	Enrolled bool          `json:"enrolled"`
	Sections []SectionItem `json:"sections"`
}

type MediaUploadURLRequest struct {
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`
}

type MediaUploadURLResponse struct {
	UploadURL string `json:"upload_url"`
	MediaKey  string `json:"media_key"`
	ExpiresIn int64  `json:"expires_in"`
}

type MediaPlaybackURLResponse struct {
	PlaybackURL string `json:"playback_url"`
	ExpiresIn   int64  `json:"expires_in"`
}

type ModerateCourseRequest struct {
	Enabled bool `json:"enabled"`
}
