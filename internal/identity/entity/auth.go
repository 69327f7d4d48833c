package entity

import "time"

type User struct {
	ID        int64
	Email     string
	FullName  string
	Role      UserRole
	AvatarURL string
	Status    UserStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

type NewUser struct {
	ID        int64
	Email     string
	FullName  string
	Role      UserRole
	AvatarURL string
	Status    UserStatus
	CreatedBy int64
	UpdatedBy int64
}

type UserLoginInfo struct {
	ID       int64
	Email    string
	Role     UserRole
	Status   UserStatus
	Password string // hashed
}

// RegistrationOtpPayload is the pending account stashed in the cache
// until the email code is confirmed. The user row does not exist yet;
// Password is already hashed so the plaintext never persists.
type RegistrationOtpPayload struct {
	Email          string `json:"email"`
	FullName       string `json:"name"`
	Role           string `json:"role"`
	HashedPassword string `json:"hashed_password"`
	Code           string `json:"otp"`
}
