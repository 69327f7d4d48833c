package event

const PaymentSucceededDestination string = "payment_succeeded"
const PaymentSucceededDestinationConsumerNotification string = "payment_succeeded_notification"

type PaymentSucceededMessage struct {
	PaymentID   int64  `json:"payment_id"`
	Reference   string `json:"reference"`
	UserID      int64  `json:"user_id"`
	Email       string `json:"email"`
	CourseID    int64  `json:"course_id"`
	CourseTitle string `json:"course_title"`
	AmountMinor int64  `json:"amount_minor"`
	Currency    string `json:"currency"`
}
