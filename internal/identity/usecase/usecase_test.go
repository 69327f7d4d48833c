package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/shandysiswandi/learnbite/internal/identity/entity"
	"github.com/shandysiswandi/learnbite/internal/pkg/goerror"
	"github.com/shandysiswandi/learnbite/internal/pkg/hash"
	"github.com/shandysiswandi/learnbite/internal/pkg/instrument"
	"github.com/shandysiswandi/learnbite/internal/pkg/jwt"
	"github.com/shandysiswandi/learnbite/internal/pkg/validator"
	"github.com/stretchr/testify/require"
)

// memCache is an in-memory stand-in for the redis store. Counters and
// flags behave like their redis counterparts minus expiry, which the
// flows under test never rely on.
type memCache struct {
	otpLocked     map[string]bool
	spamLocked    map[string]bool
	cooldown      map[string]bool
	loginLocked   map[string]bool
	sendCount     map[string]int64
	otpAttempts   map[string]int64
	loginAttempts map[string]int64
	regOtp        map[string]entity.RegistrationOtpPayload
	resetOtp      map[string]string
	resetToken    map[string]string
}

func newMemCache() *memCache {
	return &memCache{
		otpLocked:     map[string]bool{},
		spamLocked:    map[string]bool{},
		cooldown:      map[string]bool{},
		loginLocked:   map[string]bool{},
		sendCount:     map[string]int64{},
		otpAttempts:   map[string]int64{},
		loginAttempts: map[string]int64{},
		regOtp:        map[string]entity.RegistrationOtpPayload{},
		resetOtp:      map[string]string{},
		resetToken:    map[string]string{},
	}
}

func (c *memCache) IsOtpLocked(_ context.Context, email string) (bool, error) {
	return c.otpLocked[email], nil
}

func (c *memCache) IsSpamLocked(_ context.Context, email string) (bool, error) {
	return c.spamLocked[email], nil
}

func (c *memCache) IsCooldownActive(_ context.Context, email string) (bool, error) {
	return c.cooldown[email], nil
}

func (c *memCache) IncrementSendCount(_ context.Context, email string, _ time.Duration) (int64, error) {
	c.sendCount[email]++
	return c.sendCount[email], nil
}

func (c *memCache) SetSpamLock(_ context.Context, email string, _ time.Duration) error {
	c.spamLocked[email] = true
	return nil
}

func (c *memCache) SetOtpLock(_ context.Context, email string, _ time.Duration) error {
	c.otpLocked[email] = true
	return nil
}

func (c *memCache) SetCooldown(_ context.Context, email string, _ time.Duration) error {
	c.cooldown[email] = true
	return nil
}

func (c *memCache) StoreRegistrationOtp(_ context.Context, payload entity.RegistrationOtpPayload, _ time.Duration) error {
	c.regOtp[payload.Email] = payload
	return nil
}

func (c *memCache) GetRegistrationOtp(_ context.Context, email string) (*entity.RegistrationOtpPayload, error) {
	p, ok := c.regOtp[email]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return &p, nil
}

func (c *memCache) DeleteRegistrationOtp(_ context.Context, email string) error {
	delete(c.regOtp, email)
	return nil
}

func (c *memCache) StoreResetOtp(_ context.Context, email, code string, _ time.Duration) error {
	c.resetOtp[email] = code
	return nil
}

func (c *memCache) GetResetOtp(_ context.Context, email string) (string, error) {
	code, ok := c.resetOtp[email]
	if !ok {
		return "", goerror.ErrNotFound
	}
	return code, nil
}

func (c *memCache) DeleteResetOtp(_ context.Context, email string) error {
	delete(c.resetOtp, email)
	return nil
}

func (c *memCache) IncrementOtpAttempts(_ context.Context, email string, _ time.Duration) (int64, error) {
	c.otpAttempts[email]++
	return c.otpAttempts[email], nil
}

func (c *memCache) DeleteOtpAttempts(_ context.Context, email string) error {
	delete(c.otpAttempts, email)
	return nil
}

func (c *memCache) IncrementLoginAttempts(_ context.Context, email string, _ time.Duration) (int64, error) {
	c.loginAttempts[email]++
	return c.loginAttempts[email], nil
}

func (c *memCache) DeleteLoginAttempts(_ context.Context, email string) error {
	delete(c.loginAttempts, email)
	return nil
}

func (c *memCache) SetLoginLock(_ context.Context, email string, _ time.Duration) error {
	c.loginLocked[email] = true
	return nil
}

func (c *memCache) IsLoginLocked(_ context.Context, email string) (bool, error) {
	return c.loginLocked[email], nil
}

func (c *memCache) StoreResetToken(_ context.Context, email, tokenHash string, _ time.Duration) error {
	c.resetToken[email] = tokenHash
	return nil
}

func (c *memCache) GetResetToken(_ context.Context, email string) (string, error) {
	h, ok := c.resetToken[email]
	if !ok {
		return "", goerror.ErrNotFound
	}
	return h, nil
}

func (c *memCache) DeleteResetToken(_ context.Context, email string) error {
	delete(c.resetToken, email)
	return nil
}

type memDB struct {
	users       map[string]*entity.User
	loginInfo   map[string]*entity.UserLoginInfo
	created     []entity.NewUser
	createdHash []string
	credentials map[int64]string
	createErr   error
}

func newMemDB() *memDB {
	return &memDB{
		users:       map[string]*entity.User{},
		loginInfo:   map[string]*entity.UserLoginInfo{},
		credentials: map[int64]string{},
	}
}

func (d *memDB) GetUserByEmail(_ context.Context, email string) (*entity.User, error) {
	u, ok := d.users[email]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return u, nil
}

func (d *memDB) GetUserByID(_ context.Context, id int64) (*entity.User, error) {
	for _, u := range d.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, goerror.ErrNotFound
}

func (d *memDB) GetUserLoginInfo(_ context.Context, email string) (*entity.UserLoginInfo, error) {
	u, ok := d.loginInfo[email]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return u, nil
}

func (d *memDB) CreateUser(_ context.Context, user entity.NewUser, passwordHash string) error {
	if d.createErr != nil {
		return d.createErr
	}
	d.created = append(d.created, user)
	d.createdHash = append(d.createdHash, passwordHash)
	d.users[user.Email] = &entity.User{
		ID:       user.ID,
		Email:    user.Email,
		FullName: user.FullName,
		Role:     user.Role,
		Status:   user.Status,
	}
	return nil
}

func (d *memDB) UpdateUserProfile(_ context.Context, id int64, fullName string) error {
	for _, u := range d.users {
		if u.ID == id {
			u.FullName = fullName
			return nil
		}
	}
	return goerror.ErrNotFound
}

func (d *memDB) UpdateUserAvatar(_ context.Context, id int64, avatarURL string) error {
	for _, u := range d.users {
		if u.ID == id {
			u.AvatarURL = avatarURL
			return nil
		}
	}
	return goerror.ErrNotFound
}

func (d *memDB) UpdateUserCredential(_ context.Context, userID int64, passwordHash string) error {
	d.credentials[userID] = passwordHash
	return nil
}

type sentMail struct {
	To   string
	Name string
	Code string
}

type memEmail struct {
	registration []sentMail
	reset        []sentMail
	err          error
}

func (e *memEmail) SendRegistrationCode(_ context.Context, to, name, code string) error {
	if e.err != nil {
		return e.err
	}
	e.registration = append(e.registration, sentMail{To: to, Name: name, Code: code})
	return nil
}

func (e *memEmail) SendPasswordResetCode(_ context.Context, to, name, code string) error {
	if e.err != nil {
		return e.err
	}
	e.reset = append(e.reset, sentMail{To: to, Name: name, Code: code})
	return nil
}

type memMessaging struct {
	registered []UserRegisteredEvent
	resets     []PasswordResetRequestedEvent
}

func (m *memMessaging) PublishUserRegistered(_ context.Context, msg UserRegisteredEvent) error {
	m.registered = append(m.registered, msg)
	return nil
}

func (m *memMessaging) PublishPasswordResetRequested(_ context.Context, msg PasswordResetRequestedEvent) error {
	m.resets = append(m.resets, msg)
	return nil
}

type staticCode struct{ code string }

func (s *staticCode) Generate() (string, error) { return s.code, nil }

type seqNumberID struct{ next int64 }

func (s *seqNumberID) Generate() int64 {
	s.next++
	return s.next
}

type staticStringID struct{ value string }

func (s *staticStringID) Generate() string { return s.value }

type staticJWT struct{}

func (staticJWT) Generate(int64, string, string) (string, error) { return "signed-token", nil }

func (staticJWT) Verify(string) (jwt.Claims, error) { return jwt.Claims{}, nil }

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fixture struct {
	uc        *Usecase
	db        *memDB
	cache     *memCache
	email     *memEmail
	messaging *memMessaging
	code      *staticCode
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	v, err := validator.NewV10Validator()
	require.NoError(t, err)

	f := &fixture{
		db:        newMemDB(),
		cache:     newMemCache(),
		email:     &memEmail{},
		messaging: &memMessaging{},
		code:      &staticCode{code: "123456"},
	}

	f.uc = New(Dependency{
		RepoDB:        f.db,
		RepoCache:     f.cache,
		RepoEmail:     f.email,
		RepoMessaging: f.messaging,
		Validator:     v,
		HMAC:          hash.NewHMACSHA256("test-hmac-secret"),
		Password:      hash.NewBcrypt(4, "test-pepper"),
		UID:           &seqNumberID{},
		UUID:          &staticStringID{value: "uuid-1"},
		OID:           &staticStringID{value: "reset-token-1"},
		OtpCode:       f.code,
		Clock:         fixedClock{now: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)},
		JWT:           staticJWT{},
		Instrument:    instrument.NewNoop(),
	})

	return f
}

// assertBusiness unwraps a goerror and checks its message and code.
func assertBusiness(t *testing.T, err error, msg string, code goerror.Code) {
	t.Helper()

	var ge *goerror.Error
	require.ErrorAs(t, err, &ge)
	require.Equal(t, msg, ge.Msg())
	require.Equal(t, code, ge.Code())
}
