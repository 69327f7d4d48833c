package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/learnbite/internal/course/entity"
	"github.com/shandysiswandi/learnbite/internal/pkg/goerror"
	"github.com/shandysiswandi/learnbite/internal/shared/constant"
)

type ChapterCreateInput struct {
	SectionID   int64  `validate:"required"`
	Title       string `validate:"required,min=3,max=150"`
	MediaKey    string `validate:"omitempty,max=512"`
	DurationSec int32  `validate:"gte=0"`
	Position    int32  `validate:"gte=0"`
	Preview     bool
}

type ChapterCreateOutput struct {
	ID int64
}

func (s *Usecase) ChapterCreate(ctx context.Context, in ChapterCreateInput) (*ChapterCreateOutput, error) {
	ctx, span := s.startSpan(ctx, "ChapterCreate")
	defer span.End()

	clm, err := s.authenticatedAndAuthorized(ctx, constant.PermCourses, constant.PermActUpdate)
	if err != nil {
		return nil, err
	}

	in.Title = strings.TrimSpace(in.Title)
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	section, err := s.repoDB.GetSectionByID(ctx, in.SectionID)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("Section not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to get section", "section_id", in.SectionID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if _, err := s.ownedCourse(ctx, clm, section.CourseID); err != nil {
		return nil, err
	}

	chapter := entity.Chapter{
		ID:          s.uid.Generate(),
		SectionID:   in.SectionID,
		Title:       in.Title,
		MediaKey:    in.MediaKey,
		DurationSec: in.DurationSec,
		Position:    in.Position,
		Preview:     in.Preview,
	}

	if err := s.repoDB.CreateChapter(ctx, chapter); err != nil {
		slog.ErrorContext(ctx, "failed to create chapter", "section_id", in.SectionID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &ChapterCreateOutput{ID: chapter.ID}, nil
}
