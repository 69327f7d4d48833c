package inbound

import (
	"context"

	"github.com/shandysiswandi/learnbite/internal/course/usecase"
	"github.com/shandysiswandi/learnbite/internal/pkg/router"
)

type uc interface {
	CourseCreate(ctx context.Context, in usecase.CourseCreateInput) (*usecase.CourseCreateOutput, error)
	CourseUpdate(ctx context.Context, in usecase.CourseUpdateInput) error
	CoursePublish(ctx context.Context, in usecase.CoursePublishInput) error
	CourseList(ctx context.Context, in usecase.CourseListInput) (*usecase.CourseListOutput, error)
	CourseDetail(ctx context.Context, in usecase.CourseDetailInput) (*usecase.CourseDetailOutput, error)
	CourseMine(ctx context.Context) (*usecase.CourseMineOutput, error)

	SectionCreate(ctx context.Context, in usecase.SectionCreateInput) (*usecase.SectionCreateOutput, error)
	ChapterCreate(ctx context.Context, in usecase.ChapterCreateInput) (*usecase.ChapterCreateOutput, error)

	MediaUploadURL(ctx context.Context, in usecase.MediaUploadURLInput) (*usecase.MediaUploadURLOutput, error)
	MediaPlaybackURL(ctx context.Context, in usecase.MediaPlaybackURLInput) (*usecase.MediaPlaybackURLOutput, error)

	CourseApprove(ctx context.Context, in usecase.CourseApproveInput) error
	CourseFeature(ctx context.Context, in usecase.CourseFeatureInput) error
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// Catalog (public)
	r.GET("/api/v1/courses", end.CourseList)
	r.GET("/api/v1/courses/:slug", end.CourseDetail)

	// Authoring (need authenticated educator)
	r.POST("/api/v1/courses", end.CourseCreate)
	r.GET("/api/v1/courses-mine", end.CourseMine)
	r.PATCH("/api/v1/courses/:id", end.CourseUpdate)
	r.POST("/api/v1/courses/:id/publish", end.CoursePublish)
	r.POST("/api/v1/courses/:id/sections", end.SectionCreate)
	r.POST("/api/v1/sections/:id/chapters", end.ChapterCreate)

	// Media
	r.POST("/api/v1/courses/:id/media/upload-url", end.MediaUploadURL)
	r.GET("/api/v1/chapters/:id/playback-url", end.MediaPlaybackURL)

	// Moderation (need admin)
	r.POST("/api/v1/courses/:id/approve", end.CourseApprove)
	r.POST("/api/v1/courses/:id/feature", end.CourseFeature)
}
