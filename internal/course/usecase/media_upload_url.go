package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shandysiswandi/learnbite/internal/pkg/goerror"
	"github.com/shandysiswandi/learnbite/internal/pkg/storage"
	"github.com/shandysiswandi/learnbite/internal/shared/constant"
)

// uploadContentTypeExt whitelists upload MIME types and pins the
// object extension server-side.
var uploadContentTypeExt = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"video/mp4":  ".mp4",
	"video/webm": ".webm",
}

const uploadURLExpiry = 15 * time.Minute

type MediaUploadURLInput struct {
	CourseID    int64  `validate:"required"`
	ContentType string `validate:"required"`
	SizeBytes   int64  `validate:"required,gt=0"`
}

type MediaUploadURLOutput struct {
	UploadURL string
	MediaKey  string
	ExpiresIn int64
}

// MediaUploadURL hands the owning educator a presigned PUT URL bound
// to the declared content type and size.
func (s *Usecase) MediaUploadURL(ctx context.Context, in MediaUploadURLInput) (*MediaUploadURLOutput, error) {
	ctx, span := s.startSpan(ctx, "MediaUploadURL")
	defer span.End()

	clm, err := s.authenticatedAndAuthorized(ctx, constant.PermCourses, constant.PermActUpdate)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	ext, ok := uploadContentTypeExt[in.ContentType]
	if !ok {
		return nil, goerror.NewBusiness("Unsupported media content type", goerror.CodeInvalidInput)
	}

	maxSize := s.cfg.GetInt("modules.course.media_max_bytes")
	if maxSize > 0 && in.SizeBytes > int64(maxSize) {
		return nil, goerror.NewBusiness("Media file is too large", goerror.CodeInvalidInput)
	}

	course, err := s.ownedCourse(ctx, clm, in.CourseID)
	if err != nil {
		return nil, err
	}

	bucket := s.cfg.GetString("modules.course.media_bucket")
	key := fmt.Sprintf("courses/%d/%s%s", course.ID, s.uuid.Generate(), ext)

	url, err := s.storage.PresignPut(ctx, bucket, key, storage.PutOptions{
		Size:        in.SizeBytes,
		ContentType: in.ContentType,
	}, uploadURLExpiry)
	if err != nil {
		slog.ErrorContext(ctx, "failed to presign media upload", "course_id", course.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &MediaUploadURLOutput{
		UploadURL: url,
		MediaKey:  key,
		ExpiresIn: int64(uploadURLExpiry.Seconds()),
	}, nil
}
