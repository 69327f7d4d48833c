package inbound

import (
	"strconv"

	"github.com/samber/lo"
	"github.com/shandysiswandi/learnbite/internal/course/entity"
	"github.com/shandysiswandi/learnbite/internal/course/usecase"
	"github.com/shandysiswandi/learnbite/internal/pkg/router"
)

// HTTPEndpoint exposes HTTP handlers for the course catalog, authoring,
// media, and moderation workflows.
type HTTPEndpoint struct {
	uc uc
}

func toCourseItem(c entity.Course) CourseItem {
	return CourseItem{
		ID:          c.ID,
		EducatorID:  c.EducatorID,
		Title:       c.Title,
		Slug:        c.Slug,
		Description: c.Description,
		Level:       c.Level.String(),
		PriceMinor:  c.PriceMinor,
		Status:      c.Status.String(),
		Approved:    c.Approved,
		Featured:    c.Featured,
		RatingAvg:   c.RatingAvg,
		RatingCount: c.RatingCount,
		CreatedAt:   c.CreatedAt,
	}
}

// CourseCreate registers a new draft course for the calling educator.
// @Summary Create course
// @Description Creates a draft course owned by the authenticated educator.
// @Tags Course, Authoring
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body CreateCourseRequest true "Course payload"
// @Success 200 {object} router.successResponse{data=CreateCourseResponse} "Created course"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 409 {object} router.errorResponse "Slug conflict"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/courses [post]
func (h *HTTPEndpoint) CourseCreate(r *router.Request) (any, error) {
	var req CreateCourseRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.CourseCreate(r.Context(), usecase.CourseCreateInput{
		Title:       req.Title,
		Description: req.Description,
		Level:       req.Level,
		PriceMinor:  req.PriceMinor,
	})
	if err != nil {
		return nil, err
	}

	return CreateCourseResponse{ID: resp.ID, Slug: resp.Slug}, nil
}

// CourseUpdate edits a course owned by the caller.
// @Summary Update course
// @Description Updates descriptive fields of an owned course.
// @Tags Course, Authoring
// @Security BearerAuth
// @Accept json
// @Param id path string true "Course ID"
// @Param request body UpdateCourseRequest true "Update payload"
// @Success 204 "No Content"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 404 {object} router.errorResponse "Course not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/courses/{id} [patch]
func (h *HTTPEndpoint) CourseUpdate(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	var req UpdateCourseRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	return nil, h.uc.CourseUpdate(r.Context(), usecase.CourseUpdateInput{
		CourseID:    id,
		Title:       req.Title,
		Description: req.Description,
		Level:       req.Level,
		PriceMinor:  req.PriceMinor,
	})
}

// CoursePublish moves a draft course to published.
// @Summary Publish course
// @Description Publishes an owned course once it has at least one section with a chapter.
// @Tags Course, Authoring
// @Security BearerAuth
// @Param id path string true "Course ID"
// @Success 204 "No Content"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 404 {object} router.errorResponse "Course not found"
// @Failure 422 {object} router.errorResponse "Course has no content"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/courses/{id}/publish [post]
func (h *HTTPEndpoint) CoursePublish(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	return nil, h.uc.CoursePublish(r.Context(), usecase.CoursePublishInput{CourseID: id})
}

// CourseList returns the public course catalog.
// @Summary List courses
// @Description Lists published, approved courses with pagination and filters.
// @Tags Course, Catalog
// @Produce json
// @Param search query string false "Search in title and description"
// @Param level query string false "Filter by level" Enums(beginner, intermediate, advanced)
// @Param featured query bool false "Only featured courses"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} router.successResponse{data=CourseListResponse} "Catalog page"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/courses [get]
func (h *HTTPEndpoint) CourseList(r *router.Request) (any, error) {
	page, _ := r.GetQueryInt32("page")
	size, _ := r.GetQueryInt32("size")
	featured, _ := strconv.ParseBool(r.GetQuery("featured"))

	resp, err := h.uc.CourseList(r.Context(), usecase.CourseListInput{
		Search:   r.GetQuery("search"),
		Level:    r.GetQuery("level"),
		Featured: featured,
		Page:     page,
		Size:     size,
	})
	if err != nil {
		return nil, err
	}

	return CourseListResponse{
		Courses: lo.Map(resp.Courses, func(c entity.Course, _ int) CourseItem { return toCourseItem(c) }),
		page:    resp.Page,
		size:    resp.Size,
		total:   resp.Total,
	}, nil
}

// CourseDetail returns a course with its curriculum.
// @Summary Course detail
// @Description Returns a course by slug. Non-enrolled callers only see preview chapters.
// @Tags Course, Catalog
// @Produce json
// @Param slug path string true "Course slug"
// @Success 200 {object} router.successResponse{data=CourseDetailResponse} "Course detail"
// @Failure 404 {object} router.errorResponse "Course not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/courses/{slug} [get]
func (h *HTTPEndpoint) CourseDetail(r *router.Request) (any, error) {
	resp, err := h.uc.CourseDetail(r.Context(), usecase.CourseDetailInput{Slug: r.GetParam("slug")})
	if err != nil {
		return nil, err
	}

	sections := lo.Map(resp.Sections, func(sec entity.SectionWithChapters, _ int) SectionItem {
		return SectionItem{
			ID:       sec.ID,
			Title:    sec.Title,
			Position: sec.Position,
			Chapters: lo.Map(sec.Chapters, func(ch entity.Chapter, _ int) ChapterItem {
				return ChapterItem{
					ID:          ch.ID,
					Title:       ch.Title,
					DurationSec: ch.DurationSec,
					Position:    ch.Position,
					Preview:     ch.Preview,
				}
			}),
		}
	})

	return CourseDetailResponse{
		CourseItem: toCourseItem(resp.Course),
		Enrolled:   resp.Enrolled,
		Sections:   sections,
	}, nil
}

// CourseMine lists the calling educator's courses.
// @Summary My courses
// @Description Lists every course owned by the authenticated educator.
// @Tags Course, Authoring
// @Security BearerAuth
// @Produce json
// @Success 200 {object} router.successResponse{data=CourseListResponse} "Owned courses"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/courses-mine [get]
func (h *HTTPEndpoint) CourseMine(r *router.Request) (any, error) {
	resp, err := h.uc.CourseMine(r.Context())
	if err != nil {
		return nil, err
	}

	return CourseListResponse{
		Courses: lo.Map(resp.Courses, func(c entity.Course, _ int) CourseItem { return toCourseItem(c) }),
		size:    int32(len(resp.Courses)),
		page:    1,
		total:   int64(len(resp.Courses)),
	}, nil
}

// SectionCreate adds a section to an owned course.
// @Summary Create section
// @Description Adds an ordered section to an owned course.
// @Tags Course, Authoring
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param request body CreateSectionRequest true "Section payload"
// @Success 200 {object} router.successResponse{data=CreateSectionResponse} "Created section"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 404 {object} router.errorResponse "Course not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/courses/{id}/sections [post]
func (h *HTTPEndpoint) SectionCreate(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	var req CreateSectionRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.SectionCreate(r.Context(), usecase.SectionCreateInput{
		CourseID: id,
		Title:    req.Title,
		Position: req.Position,
	})
	if err != nil {
		return nil, err
	}

	return CreateSectionResponse{ID: resp.ID}, nil
}

// ChapterCreate adds a chapter to a section of an owned course.
// @Summary Create chapter
// @Description Adds an ordered chapter to a section.
// @Tags Course, Authoring
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Section ID"
// @Param request body CreateChapterRequest true "Chapter payload"
// @Success 200 {object} router.successResponse{data=CreateChapterResponse} "Created chapter"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 404 {object} router.errorResponse "Section not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/sections/{id}/chapters [post]
func (h *HTTPEndpoint) ChapterCreate(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	var req CreateChapterRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.ChapterCreate(r.Context(), usecase.ChapterCreateInput{
		SectionID:   id,
		Title:       req.Title,
		MediaKey:    req.MediaKey,
		DurationSec: req.DurationSec,
		Position:    req.Position,
		Preview:     req.Preview,
	})
	if err != nil {
		return nil, err
	}

	return CreateChapterResponse{ID: resp.ID}, nil
}

// MediaUploadURL presigns a media upload for an owned course.
// @Summary Presign media upload
// @Description Returns a presigned PUT URL bound to the declared content type and size.
// @Tags Course, Media
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param request body MediaUploadURLRequest true "Upload payload"
// @Success 200 {object} router.successResponse{data=MediaUploadURLResponse} "Presigned upload"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 404 {object} router.errorResponse "Course not found"
// @Failure 422 {object} router.errorResponse "Unsupported content type"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/courses/{id}/media/upload-url [post]
func (h *HTTPEndpoint) MediaUploadURL(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	var req MediaUploadURLRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.MediaUploadURL(r.Context(), usecase.MediaUploadURLInput{
		CourseID:    id,
		ContentType: req.ContentType,
		SizeBytes:   req.SizeBytes,
	})
	if err != nil {
		return nil, err
	}

	return MediaUploadURLResponse{
		UploadURL: resp.UploadURL,
		MediaKey:  resp.MediaKey,
		ExpiresIn: resp.ExpiresIn,
	}, nil
}

// MediaPlaybackURL presigns chapter media playback.
// @Summary Presign media playback
// @Description Returns a short-lived GET URL for a chapter's media. Requires enrollment unless the chapter is a preview.
// @Tags Course, Media
// @Security BearerAuth
// @Produce json
// @Param id path string true "Chapter ID"
// @Success 200 {object} router.successResponse{data=MediaPlaybackURLResponse} "Presigned playback"
// @Failure 403 {object} router.errorResponse "Not enrolled"
// @Failure 404 {object} router.errorResponse "Chapter not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/chapters/{id}/playback-url [get]
func (h *HTTPEndpoint) MediaPlaybackURL(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.MediaPlaybackURL(r.Context(), usecase.MediaPlaybackURLInput{ChapterID: id})
	if err != nil {
		return nil, err
	}

	return MediaPlaybackURLResponse{
		PlaybackURL: resp.PlaybackURL,
		ExpiresIn:   resp.ExpiresIn,
	}, nil
}

// CourseApprove toggles admin approval.
// @Summary Approve course
// @Description Sets the admin approval flag on a course.
// @Tags Course, Moderation
// @Security BearerAuth
// @Accept json
// @Param id path string true "Course ID"
// @Param request body ModerateCourseRequest true "Approval payload"
// @Success 204 "No Content"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 404 {object} router.errorResponse "Course not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/courses/{id}/approve [post]
func (h *HTTPEndpoint) CourseApprove(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	var req ModerateCourseRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	return nil, h.uc.CourseApprove(r.Context(), usecase.CourseApproveInput{CourseID: id, Approved: req.Enabled})
}

// CourseFeature toggles the featured flag.
// @Summary Feature course
// @Description Sets the featured flag on a course.
// @Tags Course, Moderation
// @Security BearerAuth
// @Accept json
// @Param id path string true "Course ID"
// @Param request body ModerateCourseRequest true "Feature payload"
// @Success 204 "No Content"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 404 {object} router.errorResponse "Course not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/courses/{id}/feature [post]
func (h *HTTPEndpoint) CourseFeature(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	var req ModerateCourseRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	return nil, h.uc.CourseFeature(r.Context(), usecase.CourseFeatureInput{CourseID: id, Featured: req.Enabled})
}
