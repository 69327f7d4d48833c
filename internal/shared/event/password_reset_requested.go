package event

const PasswordResetRequestedDestination string = "password_reset_requested"
const PasswordResetRequestedDestinationConsumerNotification string = "password_reset_requested_notification"

type PasswordResetRequestedMessage struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
}
