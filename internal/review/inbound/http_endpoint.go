package inbound

import (
	"strconv"

	"github.com/samber/lo"
	"github.com/shandysiswandi/learnbite/internal/pkg/goerror"
	"github.com/shandysiswandi/learnbite/internal/pkg/router"
	"github.com/shandysiswandi/learnbite/internal/review/entity"
	"github.com/shandysiswandi/learnbite/internal/review/usecase"
)

// HTTPEndpoint exposes HTTP handlers for course reviews.
type HTTPEndpoint struct {
	uc uc
}

// Create submits a review for an enrolled course.
// @Summary Create review
// @Description Records the caller's rating and comment for a course they are enrolled in. One review per course.
// @Tags Review
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body CreateReviewRequest true "Review payload"
// @Success 200 {object} router.successResponse{data=CreateReviewResponse} "Review"
// @Failure 400 {object} router.errorResponse "Invalid rating"
// @Failure 403 {object} router.errorResponse "Not enrolled"
// @Failure 409 {object} router.errorResponse "Already reviewed"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/reviews [post]
func (h *HTTPEndpoint) Create(r *router.Request) (any, error) {
	var req CreateReviewRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.ReviewCreate(r.Context(), usecase.ReviewCreateInput{
		CourseID: req.CourseID,
		Rating:   req.Rating,
		Comment:  req.Comment,
	})
	if err != nil {
		return nil, err
	}

	return CreateReviewResponse{ReviewID: resp.ReviewID}, nil
}

// List returns a course's reviews.
// @Summary List reviews
// @Description Lists reviews for a course, newest first, paginated.
// @Tags Review
// @Produce json
// @Param course_id query string true "Course ID"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} router.successResponse{data=ReviewListResponse} "Reviews"
// @Failure 400 {object} router.errorResponse "Missing course_id"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/reviews [get]
func (h *HTTPEndpoint) List(r *router.Request) (any, error) {
	courseID, err := strconv.ParseInt(r.GetQuery("course_id"), 10, 64)
	if err != nil {
		return nil, goerror.NewInvalidFormat("course_id must be a number")
	}

	page, err := r.GetQueryInt32("page")
	if err != nil {
		return nil, err
	}
	size, err := r.GetQueryInt32("size")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.ReviewList(r.Context(), usecase.ReviewListInput{
		CourseID: courseID,
		Page:     page,
		Size:     size,
	})
	if err != nil {
		return nil, err
	}

	items := lo.Map(resp.Reviews, func(rv entity.ReviewWithAuthor, _ int) ReviewItem {
		return ReviewItem{
			ID:         rv.ID,
			UserID:     rv.UserID,
			AuthorName: rv.AuthorName,
			Rating:     rv.Rating,
			Comment:    rv.Comment,
			CreatedAt:  rv.CreatedAt,
		}
	})

	return ReviewListResponse{Reviews: items, page: resp.Page, size: resp.Size, total: resp.Total}, nil
}
