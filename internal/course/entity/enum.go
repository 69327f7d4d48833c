package entity

type CourseLevel int16

const (
	CourseLevelUnknown CourseLevel = iota
	CourseLevelBeginner
	CourseLevelIntermediate
	CourseLevelAdvanced
)

func (l CourseLevel) String() string {
	switch l {
	case CourseLevelBeginner:
		return "beginner"
	case CourseLevelIntermediate:
		return "intermediate"
	case CourseLevelAdvanced:
		return "advanced"
	default:
		return "unknown"
	}
}

func ParseCourseLevel(raw string) CourseLevel {
	switch raw {
	case "beginner":
		return CourseLevelBeginner
	case "intermediate":
		return CourseLevelIntermediate
	case "advanced":
		return CourseLevelAdvanced
	default:
		return CourseLevelUnknown
	}
}

type CourseStatus int16

const (
	CourseStatusUnknown CourseStatus = iota
	CourseStatusDraft
	CourseStatusPublished
	CourseStatusArchived
)

func (s CourseStatus) String() string {
	switch s {
	case CourseStatusDraft:
		return "draft"
	case CourseStatusPublished:
		return "published"
	case CourseStatusArchived:
		return "archived"
	default:
		return "unknown"
	}
}
