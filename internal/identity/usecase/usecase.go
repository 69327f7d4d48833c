package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/shandysiswandi/learnbite/internal/identity/entity"
	"github.com/shandysiswandi/learnbite/internal/pkg/clock"
	"github.com/shandysiswandi/learnbite/internal/pkg/config"
	"github.com/shandysiswandi/learnbite/internal/pkg/goerror"
	"github.com/shandysiswandi/learnbite/internal/pkg/hash"
	"github.com/shandysiswandi/learnbite/internal/pkg/instrument"
	"github.com/shandysiswandi/learnbite/internal/pkg/jwt"
	"github.com/shandysiswandi/learnbite/internal/pkg/otp"
	"github.com/shandysiswandi/learnbite/internal/pkg/storage"
	"github.com/shandysiswandi/learnbite/internal/pkg/uid"
	"github.com/shandysiswandi/learnbite/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type UserRegisteredEvent struct {
	UserID   int64
	Email    string
	FullName string
}

type PasswordResetRequestedEvent struct {
	UserID int64
	Email  string
}

type repoMessaging interface {
	PublishUserRegistered(ctx context.Context, msg UserRegisteredEvent) error
	PublishPasswordResetRequested(ctx context.Context, msg PasswordResetRequestedEvent) error
}

type repoDB interface {
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	GetUserByID(ctx context.Context, id int64) (*entity.User, error)
	GetUserLoginInfo(ctx context.Context, email string) (*entity.UserLoginInfo, error)

	CreateUser(ctx context.Context, user entity.NewUser, passwordHash string) error

	UpdateUserProfile(ctx context.Context, id int64, fullName string) error
	UpdateUserAvatar(ctx context.Context, id int64, avatarURL string) error
	UpdateUserCredential(ctx context.Context, userID int64, passwordHash string) error
}

// repoCache holds every expiring key of the abuse-control flow. All
// keys are scoped by email; counters rely on the store's atomic INCR.
type repoCache interface {
	IsOtpLocked(ctx context.Context, email string) (bool, error)
	IsSpamLocked(ctx context.Context, email string) (bool, error)
	IsCooldownActive(ctx context.Context, email string) (bool, error)

	IncrementSendCount(ctx context.Context, email string, window time.Duration) (int64, error)
	SetSpamLock(ctx context.Context, email string, ttl time.Duration) error
	SetOtpLock(ctx context.Context, email string, ttl time.Duration) error
	SetCooldown(ctx context.Context, email string, ttl time.Duration) error

	StoreRegistrationOtp(ctx context.Context, payload entity.RegistrationOtpPayload, ttl time.Duration) error
	GetRegistrationOtp(ctx context.Context, email string) (*entity.RegistrationOtpPayload, error)
	DeleteRegistrationOtp(ctx context.Context, email string) error

	StoreResetOtp(ctx context.Context, email, code string, ttl time.Duration) error
	GetResetOtp(ctx context.Context, email string) (string, error)
	DeleteResetOtp(ctx context.Context, email string) error

	IncrementOtpAttempts(ctx context.Context, email string, window time.Duration) (int64, error)
	DeleteOtpAttempts(ctx context.Context, email string) error

	IncrementLoginAttempts(ctx context.Context, email string, window time.Duration) (int64, error)
	DeleteLoginAttempts(ctx context.Context, email string) error
	SetLoginLock(ctx context.Context, email string, ttl time.Duration) error
	IsLoginLocked(ctx context.Context, email string) (bool, error)

	StoreResetToken(ctx context.Context, email, tokenHash string, ttl time.Duration) error
	GetResetToken(ctx context.Context, email string) (string, error)
	DeleteResetToken(ctx context.Context, email string) error
}

// repoEmail delivers OTP mails synchronously: issuance only succeeds
// once the message is handed to the provider.
type repoEmail interface {
	SendRegistrationCode(ctx context.Context, to, name, code string) error
	SendPasswordResetCode(ctx context.Context, to, name, code string) error
}

type Usecase struct {
	repoDB        repoDB
	repoCache     repoCache
	repoEmail     repoEmail
	repoMessaging repoMessaging
	validator     validator.Validator
	cfg           config.Config
	storage       storage.Storage
	hmac          hash.Hash
	password      hash.Hash
	uid           uid.NumberID
	uuid          uid.StringID
	oid           uid.StringID
	codegen       otp.Generator
	clock         clock.Clocker
	jwt           jwt.JWT
	ins           instrument.Instrumentation
}

type Dependency struct {
	RepoDB        repoDB
	RepoCache     repoCache
	RepoEmail     repoEmail
	RepoMessaging repoMessaging
	Validator     validator.Validator
	Config        config.Config
	Storage       storage.Storage
	HMAC          hash.Hash
	Password      hash.Hash
	UID           uid.NumberID
	UUID          uid.StringID
	OID           uid.StringID
	OtpCode       otp.Generator
	Clock         clock.Clocker
	JWT           jwt.JWT
	Instrument    instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoCache:     dep.RepoCache,
		repoEmail:     dep.RepoEmail,
		repoMessaging: dep.RepoMessaging,
		validator:     dep.Validator,
		cfg:           dep.Config,
		storage:       dep.Storage,
		hmac:          dep.HMAC,
		password:      dep.Password,
		uid:           dep.UID,
		uuid:          dep.UUID,
		oid:           dep.OID,
		codegen:       dep.OtpCode,
		clock:         dep.Clock,
		jwt:           dep.JWT,
		ins:           dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("identity.usecase").Start(ctx, name)
}

func (s *Usecase) ensureUserStatusAllowed(ctx context.Context, userID int64, status entity.UserStatus) error {
	switch status.Ensure() {
	case entity.UserStatusBanned:
		slog.WarnContext(ctx, "user account is banned", "user_id", userID)
		return goerror.NewBusiness("account is banned", goerror.CodeForbidden)

	case entity.UserStatusInactive:
		slog.WarnContext(ctx, "user account is deleted", "user_id", userID)
		return goerror.NewBusiness("account is deleted", goerror.CodeForbidden)

	case entity.UserStatusUnknown:
		slog.WarnContext(ctx, "user account status is unrecognized", "user_id", userID)
		return goerror.NewBusiness("account status is unrecognized", goerror.CodeForbidden)

	default:
		return nil
	}
}

func (s *Usecase) authenticated(ctx context.Context) (*jwt.Claims, error) {
	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	return clm, nil
}
