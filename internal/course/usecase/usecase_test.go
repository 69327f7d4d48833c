package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/casbin/casbin/v3"
	"github.com/casbin/casbin/v3/model"
	"github.com/shandysiswandi/learnbite/internal/course/entity"
	"github.com/shandysiswandi/learnbite/internal/pkg/goerror"
	"github.com/shandysiswandi/learnbite/internal/pkg/instrument"
	"github.com/shandysiswandi/learnbite/internal/pkg/jwt"
	"github.com/shandysiswandi/learnbite/internal/pkg/validator"
	"github.com/shandysiswandi/learnbite/internal/shared/constant"
	"github.com/stretchr/testify/require"
)

type memDB struct {
	courses  map[int64]*entity.Course
	sections map[int64][]entity.SectionWithChapters // courseID -> sections
	enrolled map[[2]int64]bool
}

func newMemDB() *memDB {
	return &memDB{
		courses:  map[int64]*entity.Course{},
		sections: map[int64][]entity.SectionWithChapters{},
		enrolled: map[[2]int64]bool{},
	}
}

func (d *memDB) CreateCourse(_ context.Context, course entity.Course) error {
	for _, c := range d.courses {
		if c.Slug == course.Slug {
			return goerror.ErrConflict
		}
	}
	d.courses[course.ID] = &course
	return nil
}

func (d *memDB) GetCourseByID(_ context.Context, id int64) (*entity.Course, error) {
	c, ok := d.courses[id]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (d *memDB) GetCourseBySlug(_ context.Context, slug string) (*entity.Course, error) {
	for _, c := range d.courses {
		if c.Slug == slug {
			cp := *c
			return &cp, nil
		}
	}
	return nil, goerror.ErrNotFound
}

func (d *memDB) UpdateCourse(_ context.Context, course entity.Course) error {
	if _, ok := d.courses[course.ID]; !ok {
		return goerror.ErrNotFound
	}
	d.courses[course.ID] = &course
	return nil
}

func (d *memDB) SetCourseStatus(_ context.Context, id int64, status entity.CourseStatus) error {
	c, ok := d.courses[id]
	if !ok {
		return goerror.ErrNotFound
	}
	c.Status = status
	return nil
}

func (d *memDB) SetCourseApproved(_ context.Context, id int64, approved bool) error {
	c, ok := d.courses[id]
	if !ok {
		return goerror.ErrNotFound
	}
	c.Approved = approved
	return nil
}

func (d *memDB) SetCourseFeatured(_ context.Context, id int64, featured bool) error {
	c, ok := d.courses[id]
	if !ok {
		return goerror.ErrNotFound
	}
	c.Featured = featured
	return nil
}

func (d *memDB) CreateSection(_ context.Context, section entity.Section) error {
	d.sections[section.CourseID] = append(d.sections[section.CourseID], entity.SectionWithChapters{Section: section})
	return nil
}

func (d *memDB) GetSectionByID(_ context.Context, id int64) (*entity.Section, error) {
	for _, secs := range d.sections {
		for _, sec := range secs {
			if sec.ID == id {
				s := sec.Section
				return &s, nil
			}
		}
	}
	return nil, goerror.ErrNotFound
}

func (d *memDB) CreateChapter(_ context.Context, chapter entity.Chapter) error {
	for courseID, secs := range d.sections {
		for i, sec := range secs {
			if sec.ID == chapter.SectionID {
				d.sections[courseID][i].Chapters = append(d.sections[courseID][i].Chapters, chapter)
				return nil
			}
		}
	}
	return goerror.ErrNotFound
}

func (d *memDB) GetChapterByID(_ context.Context, id int64) (*entity.Chapter, error) {
	for _, secs := range d.sections {
		for _, sec := range secs {
			for _, ch := range sec.Chapters {
				if ch.ID == id {
					c := ch
					return &c, nil
				}
			}
		}
	}
	return nil, goerror.ErrNotFound
}

func (d *memDB) GetSectionsWithChapters(_ context.Context, courseID int64) ([]entity.SectionWithChapters, error) {
	return d.sections[courseID], nil
}

func (d *memDB) ListPublishedCourses(_ context.Context, _ entity.CourseListFilter) ([]entity.Course, int64, error) {
	var out []entity.Course
	for _, c := range d.courses {
		if c.Status == entity.CourseStatusPublished {
			out = append(out, *c)
		}
	}
	return out, int64(len(out)), nil
}

func (d *memDB) ListCoursesByEducator(_ context.Context, educatorID int64) ([]entity.Course, error) {
	var out []entity.Course
	for _, c := range d.courses {
		if c.EducatorID == educatorID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (d *memDB) IsEnrolled(_ context.Context, userID, courseID int64) (bool, error) {
	return d.enrolled[[2]int64{userID, courseID}], nil
}

type seqNumberID struct{ next int64 }

func (s *seqNumberID) Generate() int64 {
	s.next++
	return s.next
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func newTestEnforcer(t *testing.T) *casbin.Enforcer {
	t.Helper()

	const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && (p.obj == "*" || r.obj == p.obj) && (p.act == "*" || r.act == p.act)
`
	m, err := model.NewModelFromString(rbacModel)
	require.NoError(t, err)

	e, err := casbin.NewEnforcer(m)
	require.NoError(t, err)

	_, err = e.AddPolicies([][]string{
		{constant.RoleAdmin, "*", "*"},
		{constant.RoleEducator, constant.PermCourses, constant.PermActCreate},
		{constant.RoleEducator, constant.PermCourses, constant.PermActUpdate},
	})
	require.NoError(t, err)

	return e
}

type fixture struct {
	uc *Usecase
	db *memDB
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	v, err := validator.NewV10Validator()
	require.NoError(t, err)

	f := &fixture{db: newMemDB()}
	f.uc = New(Dependency{
		RepoDB:     f.db,
		Validator:  v,
		Enforcer:   newTestEnforcer(t),
		UID:        &seqNumberID{next: 100},
		Clock:      fixedClock{now: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)},
		Instrument: instrument.NewNoop(),
	})

	return f
}

func authCtx(userID int64, role string) context.Context {
	return jwt.SetAuth(context.Background(), jwt.Claims{
		UserID:    userID,
		UserEmail: "user@example.com",
		UserRole:  role,
	})
}

func assertBusiness(t *testing.T, err error, msg string, code goerror.Code) {
	t.Helper()

	var ge *goerror.Error
	require.ErrorAs(t, err, &ge)
	require.Equal(t, msg, ge.Msg())
	require.Equal(t, code, ge.Code())
}
