package services

import (
	"errors"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockroom/internal/models"
	"stockroom/internal/validators"
)

type resetFixture struct {
	svc    *passwordResetService
	users  *memUsers
	resets *memResets
	mailer *fakeMailer
	user   *models.User
	clock  time.Time
}

func newResetFixture(t *testing.T) *resetFixture {
	t.Helper()

	users := newMemUsers()
	f := &resetFixture{
		users:  users,
		resets: &memResets{users: users},
		mailer: &fakeMailer{},
		clock:  time.Date(2024, 10, 1, 12, 0, 0, 0, time.UTC),
	}
	f.user = &models.User{Email: "user@email.com", PasswordHash: "hashed:password"}
	require.NoError(t, f.users.Create(f.user))

	svc := NewPasswordResetService(f.users, f.resets, f.mailer, cheapAuth{}, 30*time.Minute).(*passwordResetService)
	svc.now = func() time.Time { return f.clock }
	f.svc = svc
	return f
}

func (f *resetFixture) latestCode(t *testing.T) string {
	t.Helper()
	pr, err := f.resets.GetLatestByUser(f.user.ID)
	require.NoError(t, err)
	return pr.Code
}

func TestRequestReset_CreatesEntryAndSendsCode(t *testing.T) {
	f := newResetFixture(t)

	require.NoError(t, f.svc.RequestReset("user@email.com"))

	entries := f.resets.all()
	require.Len(t, entries, 1)
	pr := entries[0]
	assert.Equal(t, f.user.ID, pr.UserID)
	assert.Len(t, pr.Code, CodeLength)
	assert.Equal(t, f.clock, pr.CreatedAt)
	assert.Equal(t, f.clock.Add(30*time.Minute), pr.ExpiresAt)
	assert.False(t, pr.Used)

	require.Len(t, f.mailer.sent, 1)
	assert.Equal(t, "user@email.com", f.mailer.sent[0].to)
	assert.Equal(t, pr.Code, f.mailer.sent[0].code)
	assert.Equal(t, 30*time.Minute, f.mailer.sent[0].ttl)
}

func TestRequestReset_NormalizesEmail(t *testing.T) {
	f := newResetFixture(t)

	require.NoError(t, f.svc.RequestReset("  USER@Email.com "))
	assert.Len(t, f.resets.all(), 1)
}

func TestRequestReset_UnknownEmail(t *testing.T) {
	f := newResetFixture(t)

	err := f.svc.RequestReset(gofakeit.Email())
	assert.ErrorIs(t, err, ErrInvalidEmail)
	assert.Empty(t, f.resets.all())
	assert.Empty(t, f.mailer.sent)
}

func TestRequestReset_MailFailureDoesNotFail(t *testing.T) {
	f := newResetFixture(t)
	f.mailer.err = errors.New("smtp down")

	require.NoError(t, f.svc.RequestReset("user@email.com"))
	assert.Len(t, f.resets.all(), 1)
}

func TestRequestReset_CreatedAtIsPerEntry(t *testing.T) {
	f := newResetFixture(t)

	require.NoError(t, f.svc.RequestReset("user@email.com"))
	f.clock = f.clock.Add(5 * time.Minute)
	require.NoError(t, f.svc.RequestReset("user@email.com"))

	entries := f.resets.all()
	require.Len(t, entries, 2)
	assert.Equal(t, 5*time.Minute, entries[1].CreatedAt.Sub(entries[0].CreatedAt))
}

func TestValidateCode(t *testing.T) {
	f := newResetFixture(t)
	require.NoError(t, f.svc.RequestReset("user@email.com"))
	code := f.latestCode(t)

	assert.NoError(t, f.svc.ValidateCode("user@email.com", code))
	// validation does not consume the code
	assert.NoError(t, f.svc.ValidateCode("user@email.com", code))

	wrong := "000000"
	if code == wrong {
		wrong = "999999"
	}
	assert.ErrorIs(t, f.svc.ValidateCode("user@email.com", wrong), ErrInvalidCode)
	assert.ErrorIs(t, f.svc.ValidateCode("other@email.com", code), ErrInvalidCode)
}

func TestValidateCode_NoEntry(t *testing.T) {
	f := newResetFixture(t)

	assert.ErrorIs(t, f.svc.ValidateCode("user@email.com", "000000"), ErrInvalidCode)
}

func TestValidateCode_Expired(t *testing.T) {
	f := newResetFixture(t)
	require.NoError(t, f.resets.Create(&models.PasswordReset{
		UserID:    f.user.ID,
		Code:      "000000",
		CreatedAt: f.clock.Add(-2 * time.Hour),
		ExpiresAt: f.clock.Add(-time.Hour),
	}))

	assert.ErrorIs(t, f.svc.ValidateCode("user@email.com", "000000"), ErrInvalidCode)
}

func TestValidateCode_ExpiresWithClock(t *testing.T) {
	f := newResetFixture(t)
	require.NoError(t, f.svc.RequestReset("user@email.com"))
	code := f.latestCode(t)

	f.clock = f.clock.Add(30*time.Minute - time.Second)
	assert.NoError(t, f.svc.ValidateCode("user@email.com", code))

	f.clock = f.clock.Add(time.Second)
	assert.ErrorIs(t, f.svc.ValidateCode("user@email.com", code), ErrInvalidCode)
}

func TestValidateCode_OnlyLatestCounts(t *testing.T) {
	f := newResetFixture(t)
	require.NoError(t, f.resets.Create(&models.PasswordReset{
		UserID: f.user.ID, Code: "111111", CreatedAt: f.clock.Add(-time.Minute), ExpiresAt: f.clock.Add(time.Hour),
	}))
	require.NoError(t, f.resets.Create(&models.PasswordReset{
		UserID: f.user.ID, Code: "222222", CreatedAt: f.clock, ExpiresAt: f.clock.Add(time.Hour),
	}))

	assert.ErrorIs(t, f.svc.ValidateCode("user@email.com", "111111"), ErrInvalidCode)
	assert.NoError(t, f.svc.ValidateCode("user@email.com", "222222"))
}

func TestResetPassword_HappyPath(t *testing.T) {
	f := newResetFixture(t)
	require.NoError(t, f.svc.RequestReset("user@email.com"))
	code := f.latestCode(t)

	require.NoError(t, f.svc.ValidateCode("user@email.com", code))
	require.NoError(t, f.svc.ResetPassword("user@email.com", code, "newpassword"))

	u, err := f.users.GetByID(f.user.ID)
	require.NoError(t, err)
	assert.True(t, cheapAuth{}.CheckPassword(u.PasswordHash, "newpassword"))

	pr, err := f.resets.GetLatestByUser(f.user.ID)
	require.NoError(t, err)
	assert.True(t, pr.Used)

	// a used code never validates again
	assert.ErrorIs(t, f.svc.ValidateCode("user@email.com", code), ErrInvalidCode)
	assert.ErrorIs(t, f.svc.ResetPassword("user@email.com", code, "anotherpassword"), ErrInvalidCode)
}

func TestResetPassword_InvalidCodeLeavesPassword(t *testing.T) {
	f := newResetFixture(t)
	require.NoError(t, f.svc.RequestReset("user@email.com"))
	code := f.latestCode(t)

	wrong := "000000"
	if code == wrong {
		wrong = "999999"
	}
	assert.ErrorIs(t, f.svc.ResetPassword("user@email.com", wrong, "newpassword"), ErrInvalidCode)

	u, err := f.users.GetByID(f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, "hashed:password", u.PasswordHash)
}

func TestResetPassword_WeakPasswordKeepsCode(t *testing.T) {
	f := newResetFixture(t)
	require.NoError(t, f.svc.RequestReset("user@email.com"))
	code := f.latestCode(t)

	err := f.svc.ResetPassword("user@email.com", code, "short")
	assert.ErrorIs(t, err, validators.ErrPasswordTooShort)

	assert.NoError(t, f.svc.ValidateCode("user@email.com", code))
}

func TestResetPassword_FailedWriteKeepsCode(t *testing.T) {
	f := newResetFixture(t)
	require.NoError(t, f.svc.RequestReset("user@email.com"))
	code := f.latestCode(t)

	f.resets.writeErr = errors.New("db write failed")
	assert.Error(t, f.svc.ResetPassword("user@email.com", code, "newpassword"))

	u, err := f.users.GetByID(f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, "hashed:password", u.PasswordHash)

	// nothing was committed, so the same code still works
	require.NoError(t, f.svc.ValidateCode("user@email.com", code))
	require.NoError(t, f.svc.ResetPassword("user@email.com", code, "newpassword"))

	u, err = f.users.GetByID(f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, "hashed:newpassword", u.PasswordHash)
}
