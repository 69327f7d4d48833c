package event

const CourseEnrolledDestination string = "course_enrolled"
const CourseEnrolledDestinationConsumerNotification string = "course_enrolled_notification"

type CourseEnrolledMessage struct {
	UserID      int64  `json:"user_id"`
	Email       string `json:"email"`
	CourseID    int64  `json:"course_id"`
	CourseTitle string `json:"course_title"`
}
