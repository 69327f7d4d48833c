package inbound

import (
	"github.com/samber/lo"
	"github.com/shandysiswandi/learnbite/internal/enrollment/entity"
	"github.com/shandysiswandi/learnbite/internal/enrollment/usecase"
	"github.com/shandysiswandi/learnbite/internal/pkg/router"
)

// HTTPEndpoint exposes HTTP handlers for enrollment and progress.
type HTTPEndpoint struct {
	uc uc
}

// Enroll enrolls the caller in a free course.
// @Summary Enroll in course
// @Description Enrolls the authenticated user in a free course. Paid courses go through payments. Idempotent.
// @Tags Enrollment
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body EnrollRequest true "Enrollment payload"
// @Success 200 {object} router.successResponse{data=EnrollResponse} "Enrollment"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 403 {object} router.errorResponse "Course requires payment"
// @Failure 404 {object} router.errorResponse "Course not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/enrollments [post]
func (h *HTTPEndpoint) Enroll(r *router.Request) (any, error) {
	var req EnrollRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Enroll(r.Context(), usecase.EnrollInput{CourseID: req.CourseID})
	if err != nil {
		return nil, err
	}

	return EnrollResponse{EnrollmentID: resp.EnrollmentID, Status: resp.Status}, nil
}

// MyEnrollments lists the caller's enrollments with progress.
// @Summary My enrollments
// @Description Lists the authenticated user's enrollments with progress summaries.
// @Tags Enrollment
// @Security BearerAuth
// @Produce json
// @Success 200 {object} router.successResponse{data=MyEnrollmentsResponse} "Enrollments"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/enrollments [get]
func (h *HTTPEndpoint) MyEnrollments(r *router.Request) (any, error) {
	resp, err := h.uc.MyEnrollments(r.Context())
	if err != nil {
		return nil, err
	}

	items := lo.Map(resp.Enrollments, func(e entity.EnrollmentWithProgress, _ int) EnrollmentItem {
		return EnrollmentItem{
			ID:              e.ID,
			CourseID:        e.CourseID,
			CourseTitle:     e.CourseTitle,
			CourseSlug:      e.CourseSlug,
			Status:          e.Status.String(),
			PercentComplete: e.Progress.Percent(),
			EnrolledAt:      e.EnrolledAt,
			CompletedAt:     e.CompletedAt,
		}
	})

	return MyEnrollmentsResponse{Enrollments: items}, nil
}

// CompleteChapter marks a chapter as completed.
// @Summary Complete chapter
// @Description Marks a chapter done for the caller's enrollment and returns the new completion percentage. Idempotent.
// @Tags Enrollment
// @Security BearerAuth
// @Produce json
// @Param id path string true "Chapter ID"
// @Success 200 {object} router.successResponse{data=CompleteChapterResponse} "Progress"
// @Failure 403 {object} router.errorResponse "Not enrolled"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/chapters/{id}/complete [post]
func (h *HTTPEndpoint) CompleteChapter(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.CompleteChapter(r.Context(), usecase.CompleteChapterInput{ChapterID: id})
	if err != nil {
		return nil, err
	}

	return CompleteChapterResponse{
		PercentComplete: resp.PercentComplete,
		CourseCompleted: resp.CourseCompleted,
	}, nil
}
