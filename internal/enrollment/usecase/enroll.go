package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/samber/lo"
	"github.com/shandysiswandi/learnbite/internal/enrollment/entity"
	"github.com/shandysiswandi/learnbite/internal/pkg/goerror"
)

type EnrollInput struct {
	CourseID int64 `validate:"required"`
}

type EnrollOutput struct {
	EnrollmentID int64
	Status       string
}

// Enroll enrolls the caller in a free course. Paid courses go through
// the payment flow; an existing enrollment is returned unchanged.
func (s *Usecase) Enroll(ctx context.Context, in EnrollInput) (*EnrollOutput, error) {
	ctx, span := s.startSpan(ctx, "Enroll")
	defer span.End()

	clm, err := s.authenticated(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	existing, err := s.repoDB.GetEnrollment(ctx, clm.UserID, in.CourseID)
	if err != nil && !errors.Is(err, goerror.ErrNotFound) {
		slog.ErrorContext(ctx, "failed to get enrollment", "course_id", in.CourseID, "error", err)
		return nil, goerror.NewServer(err)
	}
	if existing != nil {
		return &EnrollOutput{EnrollmentID: existing.ID, Status: existing.Status.String()}, nil
	}

	course, err := s.repoDB.GetCourseInfo(ctx, in.CourseID)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("Course not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to get course info", "course_id", in.CourseID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !course.Published {
		return nil, goerror.NewBusiness("Course not found", goerror.CodeNotFound)
	}
	if course.PriceMinor > 0 {
		return nil, goerror.NewBusiness("This course requires payment", goerror.CodeForbidden)
	}

	enrollment, err := s.createEnrollment(ctx, clm.UserID, clm.UserEmail, course)
	if err != nil {
		return nil, err
	}

	return &EnrollOutput{EnrollmentID: enrollment.ID, Status: enrollment.Status.String()}, nil
}

// createEnrollment inserts the enrollment plus one progress row per
// chapter in a single transaction. A concurrent duplicate surfaces as
// a conflict and is re-read so the operation stays idempotent.
func (s *Usecase) createEnrollment(ctx context.Context, userID int64, email string, course *CourseInfo) (*entity.Enrollment, error) {
	chapters, err := s.repoDB.ListCourseChapterRefs(ctx, course.ID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list course chapters", "course_id", course.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	enrollment := entity.Enrollment{
		ID:         s.uid.Generate(),
		UserID:     userID,
		CourseID:   course.ID,
		Status:     entity.EnrollmentStatusActive,
		EnrolledAt: s.clock.Now(),
	}

	progress := lo.Map(chapters, func(ref ChapterRef, _ int) entity.ChapterProgress {
		return entity.ChapterProgress{
			ID:           s.uid.Generate(),
			EnrollmentID: enrollment.ID,
			SectionID:    ref.SectionID,
			ChapterID:    ref.ChapterID,
		}
	})

	if err := s.repoDB.CreateEnrollmentWithProgress(ctx, enrollment, progress); err != nil {
		if errors.Is(err, goerror.ErrConflict) {
			existing, gerr := s.repoDB.GetEnrollment(ctx, userID, course.ID)
			if gerr != nil {
				return nil, goerror.NewServer(gerr)
			}
			return existing, nil
		}

		slog.ErrorContext(ctx, "failed to create enrollment", "course_id", course.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.repoMessaging.PublishCourseEnrolled(ctx, CourseEnrolledEvent{
		UserID:      userID,
		Email:       email,
		CourseID:    course.ID,
		CourseTitle: course.Title,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish course enrolled event", "course_id", course.ID, "error", err)
	}

	return &enrollment, nil
}
