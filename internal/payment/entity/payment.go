package entity

import "time"

type PaymentStatus int16

const (
	PaymentStatusUnknown PaymentStatus = iota
	PaymentStatusPending
	PaymentStatusSuccess
	PaymentStatusFailed
)

func (s PaymentStatus) String() string {
	switch s {
	case PaymentStatusPending:
		return "pending"
	case PaymentStatusSuccess:
		return "success"
	case PaymentStatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

type Payment struct {
	ID                 int64
	Reference          string
	UserID             int64
	CourseID           int64
	AmountMinor        int64
	Currency           string
	Status             PaymentStatus
	PlatformFeeMinor   int64
	EducatorShareMinor int64
	Channel            string
	PaidAt             *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
