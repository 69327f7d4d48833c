package constant

// Authorization objects. Casbin subjects are role names; these are the
// resources a policy can grant access to.
const (
	PermCourses     = "courses"
	PermCourseAdmin = "courses:admin"
	PermQuizzes     = "quizzes"
	PermPayments    = "payments"
	PermReviews     = "reviews"
	PermEnrollments = "enrollments"
)

// Authorization actions.
const (
	PermActCreate = "create"
	PermActRead   = "read"
	PermActUpdate = "update"
	PermActDelete = "delete"
)
