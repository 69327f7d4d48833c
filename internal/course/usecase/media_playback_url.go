package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shandysiswandi/learnbite/internal/pkg/goerror"
	"github.com/shandysiswandi/learnbite/internal/shared/constant"
)

const playbackURLExpiry = 10 * time.Minute

type MediaPlaybackURLInput struct {
	ChapterID int64 `validate:"required"`
}

type MediaPlaybackURLOutput struct {
	PlaybackURL string
	ExpiresIn   int64
}

// MediaPlaybackURL resolves a chapter's media into a short-lived GET
// URL. Enrollment is required unless the chapter is a preview or the
// caller owns the course.
func (s *Usecase) MediaPlaybackURL(ctx context.Context, in MediaPlaybackURLInput) (*MediaPlaybackURLOutput, error) {
	ctx, span := s.startSpan(ctx, "MediaPlaybackURL")
	defer span.End()

	clm, err := s.authenticated(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	chapter, err := s.repoDB.GetChapterByID(ctx, in.ChapterID)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("Chapter not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to get chapter", "chapter_id", in.ChapterID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if chapter.MediaKey == "" {
		return nil, goerror.NewBusiness("Chapter has no media", goerror.CodeNotFound)
	}

	section, err := s.repoDB.GetSectionByID(ctx, chapter.SectionID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to get section", "section_id", chapter.SectionID, "error", err)
		return nil, goerror.NewServer(err)
	}

	course, err := s.repoDB.GetCourseByID(ctx, section.CourseID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to get course", "course_id", section.CourseID, "error", err)
		return nil, goerror.NewServer(err)
	}

	isOwner := clm.UserID == course.EducatorID || clm.UserRole == constant.RoleAdmin
	if !isOwner && !chapter.Preview {
		enrolled, err := s.repoDB.IsEnrolled(ctx, clm.UserID, course.ID)
		if err != nil {
			slog.ErrorContext(ctx, "failed to check enrollment", "course_id", course.ID, "error", err)
			return nil, goerror.NewServer(err)
		}
		if !enrolled {
			return nil, goerror.NewBusiness("Enroll in the course to access this chapter", goerror.CodeForbidden)
		}
	}

	bucket := s.cfg.GetString("modules.course.media_bucket")
	url, err := s.storage.PresignGet(ctx, bucket, chapter.MediaKey, playbackURLExpiry)
	if err != nil {
		slog.ErrorContext(ctx, "failed to presign media playback", "chapter_id", chapter.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &MediaPlaybackURLOutput{
		PlaybackURL: url,
		ExpiresIn:   int64(playbackURLExpiry.Seconds()),
	}, nil
}
