package usecase

import (
	"context"
	"testing"

	"github.com/shandysiswandi/learnbite/internal/course/entity"
	"github.com/shandysiswandi/learnbite/internal/pkg/goerror"
	"github.com/shandysiswandi/learnbite/internal/shared/constant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createInput() CourseCreateInput {
	return CourseCreateInput{
		Title:       "Sourdough Baking From Scratch",
		Description: "Learn to bake sourdough bread at home from scratch.",
		Level:       "beginner",
		PriceMinor:  0,
	}
}

func TestCourseCreate(t *testing.T) {
	f := newFixture(t)

	out, err := f.uc.CourseCreate(authCtx(7, constant.RoleEducator), createInput())
	require.NoError(t, err)

	assert.Equal(t, "sourdough-baking-from-scratch", out.Slug)

	course := f.db.courses[out.ID]
	require.NotNil(t, course)
	assert.Equal(t, entity.CourseStatusDraft, course.Status)
	assert.EqualValues(t, 7, course.EducatorID)
}

func TestCourseCreateLearnerForbidden(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.CourseCreate(authCtx(42, constant.RoleLearner), createInput())

	assertBusiness(t, err, "Account not allowed", goerror.CodeForbidden)
}

func TestCourseCreateSlugConflict(t *testing.T) {
	f := newFixture(t)
	ctx := authCtx(7, constant.RoleEducator)

	_, err := f.uc.CourseCreate(ctx, createInput())
	require.NoError(t, err)

	_, err = f.uc.CourseCreate(ctx, createInput())
	assertBusiness(t, err, "A course with a similar title already exists", goerror.CodeConflict)
}

// seedCourse stores a course and optional curriculum directly.
func seedCourse(f *fixture, course entity.Course, sections ...entity.SectionWithChapters) {
	c := course
	f.db.courses[c.ID] = &c
	f.db.sections[c.ID] = sections
}

func sectionWith(sectionID int64, chapters ...entity.Chapter) entity.SectionWithChapters {
	return entity.SectionWithChapters{
		Section:  entity.Section{ID: sectionID, Title: "Getting started", Position: 1},
		Chapters: chapters,
	}
}

func TestCoursePublishRequiresChapter(t *testing.T) {
	f := newFixture(t)
	seedCourse(f, entity.Course{ID: 1, EducatorID: 7, Slug: "draft-course", Status: entity.CourseStatusDraft})

	err := f.uc.CoursePublish(authCtx(7, constant.RoleEducator), CoursePublishInput{CourseID: 1})
	assertBusiness(t, err,
		"Course must have at least one section with a chapter before publishing",
		goerror.CodeInvalidInput)

	// An empty section is not enough either.
	f.db.sections[1] = []entity.SectionWithChapters{sectionWith(10)}
	err = f.uc.CoursePublish(authCtx(7, constant.RoleEducator), CoursePublishInput{CourseID: 1})
	assertBusiness(t, err,
		"Course must have at least one section with a chapter before publishing",
		goerror.CodeInvalidInput)
}

func TestCoursePublish(t *testing.T) {
	f := newFixture(t)
	seedCourse(f,
		entity.Course{ID: 1, EducatorID: 7, Slug: "ready-course", Status: entity.CourseStatusDraft},
		sectionWith(10, entity.Chapter{ID: 100, SectionID: 10, Title: "Welcome", Position: 1}),
	)

	err := f.uc.CoursePublish(authCtx(7, constant.RoleEducator), CoursePublishInput{CourseID: 1})
	require.NoError(t, err)
	assert.Equal(t, entity.CourseStatusPublished, f.db.courses[1].Status)

	// Publishing again is a no-op.
	err = f.uc.CoursePublish(authCtx(7, constant.RoleEducator), CoursePublishInput{CourseID: 1})
	require.NoError(t, err)
}

func TestCoursePublishNotOwner(t *testing.T) {
	f := newFixture(t)
	seedCourse(f,
		entity.Course{ID: 1, EducatorID: 7, Slug: "ready-course", Status: entity.CourseStatusDraft},
		sectionWith(10, entity.Chapter{ID: 100, SectionID: 10}),
	)

	err := f.uc.CoursePublish(authCtx(8, constant.RoleEducator), CoursePublishInput{CourseID: 1})
	assertBusiness(t, err, "Account not allowed", goerror.CodeForbidden)

	// Admins bypass ownership.
	err = f.uc.CoursePublish(authCtx(1, constant.RoleAdmin), CoursePublishInput{CourseID: 1})
	require.NoError(t, err)
}

func publishedCourseWithCurriculum(f *fixture) {
	seedCourse(f,
		entity.Course{ID: 1, EducatorID: 7, Slug: "pro-baking", Status: entity.CourseStatusPublished},
		sectionWith(10,
			entity.Chapter{ID: 100, SectionID: 10, Title: "Welcome", MediaKey: "media/100.mp4", Position: 1, Preview: true},
			entity.Chapter{ID: 101, SectionID: 10, Title: "Dough basics", MediaKey: "media/101.mp4", Position: 2},
			entity.Chapter{ID: 102, SectionID: 10, Title: "Shaping", MediaKey: "media/102.mp4", Position: 3},
		),
	)
}

func TestCourseDetailAnonymousSeesOnlyPreviews(t *testing.T) {
	f := newFixture(t)
	publishedCourseWithCurriculum(f)

	out, err := f.uc.CourseDetail(context.Background(), CourseDetailInput{Slug: "pro-baking"})
	require.NoError(t, err)

	assert.False(t, out.Enrolled)
	require.Len(t, out.Sections, 1)
	require.Len(t, out.Sections[0].Chapters, 1)
	assert.Equal(t, "Welcome", out.Sections[0].Chapters[0].Title)
	assert.Empty(t, out.Sections[0].Chapters[0].MediaKey)
}

func TestCourseDetailEnrolledSeesAllChapters(t *testing.T) {
	f := newFixture(t)
	publishedCourseWithCurriculum(f)
	f.db.enrolled[[2]int64{42, 1}] = true

	out, err := f.uc.CourseDetail(authCtx(42, constant.RoleLearner), CourseDetailInput{Slug: "pro-baking"})
	require.NoError(t, err)

	assert.True(t, out.Enrolled)
	require.Len(t, out.Sections, 1)
	assert.Len(t, out.Sections[0].Chapters, 3)
	for _, ch := range out.Sections[0].Chapters {
		assert.Empty(t, ch.MediaKey)
	}
}

func TestCourseDetailOwnerSeesDraft(t *testing.T) {
	f := newFixture(t)
	seedCourse(f, entity.Course{ID: 1, EducatorID: 7, Slug: "draft-course", Status: entity.CourseStatusDraft})

	// The public cannot tell a draft from a missing course.
	_, err := f.uc.CourseDetail(context.Background(), CourseDetailInput{Slug: "draft-course"})
	assertBusiness(t, err, "Course not found", goerror.CodeNotFound)

	out, err := f.uc.CourseDetail(authCtx(7, constant.RoleEducator), CourseDetailInput{Slug: "draft-course"})
	require.NoError(t, err)
	assert.True(t, out.Enrolled)
}

func TestCourseDetailUnknownSlug(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.CourseDetail(context.Background(), CourseDetailInput{Slug: "missing"})

	assertBusiness(t, err, "Course not found", goerror.CodeNotFound)
}
