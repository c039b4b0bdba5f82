package users_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/iamlekside2/QuickGift/internal/modules/users"
	"github.com/iamlekside2/QuickGift/internal/sms"
)

var codeRe = regexp.MustCompile(`\b(\d{6})\b`)

func newTestService(t *testing.T) (*users.Service, *sms.Mock, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&users.User{}, &users.OTPCode{}))

	sender := sms.NewMock(nil)
	tokens := users.NewTokenIssuer("test-secret", time.Hour)
	svc := users.NewService(db, sender, tokens, 10*time.Minute, 6, nil)
	return svc, sender, db
}

func lastCode(t *testing.T, sender *sms.Mock) string {
	t.Helper()
	sent := sender.Sent()
	require.NotEmpty(t, sent)
	m := codeRe.FindStringSubmatch(sent[len(sent)-1].Body)
	require.Len(t, m, 2)
	return m[1]
}

func TestOTPFlowCreatesAccount(t *testing.T) {
	svc, sender, db := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.SendOTP(ctx, "08031234567"))
	code := lastCode(t, sender)

	res, err := svc.VerifyOTP(ctx, "0803 123 4567", code)
	require.NoError(t, err)
	assert.True(t, res.IsNew)
	assert.Equal(t, "+2348031234567", res.User.Phone)
	assert.Equal(t, users.RoleCustomer, res.User.Role)
	assert.NotEmpty(t, res.Token)

	var count int64
	require.NoError(t, db.Model(&users.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestOTPCannotBeReused(t *testing.T) {
	svc, sender, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.SendOTP(ctx, "08031234567"))
	code := lastCode(t, sender)

	_, err := svc.VerifyOTP(ctx, "08031234567", code)
	require.NoError(t, err)

	_, err = svc.VerifyOTP(ctx, "08031234567", code)
	assert.ErrorIs(t, err, users.ErrInvalidOTP)
}

func TestOTPWrongCode(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.SendOTP(ctx, "08031234567"))

	_, err := svc.VerifyOTP(ctx, "08031234567", "000000")
	assert.ErrorIs(t, err, users.ErrInvalidOTP)
}

func TestOTPResendThrottled(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.SendOTP(ctx, "08031234567"))
	err := svc.SendOTP(ctx, "08031234567")
	assert.ErrorIs(t, err, users.ErrOTPThrottled)
}

func TestOTPRejectsBadPhone(t *testing.T) {
	svc, _, _ := newTestService(t)
	err := svc.SendOTP(context.Background(), "12345")
	assert.ErrorIs(t, err, users.ErrInvalidPhone)
}

func TestVerifyOTPExistingUserSignsIn(t *testing.T) {
	svc, sender, db := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.SendOTP(ctx, "08031234567"))
	first, err := svc.VerifyOTP(ctx, "08031234567", lastCode(t, sender))
	require.NoError(t, err)
	assert.True(t, first.IsNew)

	// Age the previous request past the resend window.
	require.NoError(t, db.Model(&users.OTPCode{}).
		Where("phone = ?", "+2348031234567").
		Update("created_at", time.Now().Add(-2*time.Minute)).Error)

	require.NoError(t, svc.SendOTP(ctx, "08031234567"))
	second, err := svc.VerifyOTP(ctx, "08031234567", lastCode(t, sender))
	require.NoError(t, err)
	assert.False(t, second.IsNew)
	assert.Equal(t, first.User.ID, second.User.ID)
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, users.RegisterInput{
		FullName: "Ada Obi",
		Phone:    "08031234567",
		Email:    "Ada@Example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.Equal(t, "+2348031234567", reg.User.Phone)
	require.NotNil(t, reg.User.Email)
	assert.Equal(t, "ada@example.com", *reg.User.Email)

	byPhone, err := svc.Login(ctx, "0803 123 4567", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, byPhone.User.ID)

	byEmail, err := svc.Login(ctx, "ada@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, byEmail.User.ID)

	_, err = svc.Login(ctx, "ada@example.com", "wrong-pass")
	assert.ErrorIs(t, err, users.ErrInvalidCredentials)
}

func TestRegisterDuplicatePhone(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, users.RegisterInput{
		FullName: "Ada Obi", Phone: "08031234567", Password: "pass-one",
	})
	require.NoError(t, err)

	_, err = svc.Register(ctx, users.RegisterInput{
		FullName: "Ngozi Eze", Phone: "08031234567", Password: "pass-two",
	})
	assert.ErrorIs(t, err, users.ErrPhoneTaken)
}

func TestLoginOTPOnlyAccountHasNoPassword(t *testing.T) {
	svc, sender, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.SendOTP(ctx, "08031234567"))
	_, err := svc.VerifyOTP(ctx, "08031234567", lastCode(t, sender))
	require.NoError(t, err)

	_, err = svc.Login(ctx, "08031234567", "anything")
	assert.ErrorIs(t, err, users.ErrInvalidCredentials)
}

func TestTokenRoundTrip(t *testing.T) {
	issuer := users.NewTokenIssuer("test-secret", time.Hour)
	tok, err := issuer.Issue("user-1", users.RoleAdmin)
	require.NoError(t, err)

	claims, err := issuer.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, users.RoleAdmin, claims.Role)

	other := users.NewTokenIssuer("different-secret", time.Hour)
	_, err = other.Parse(tok)
	assert.Error(t, err)
}
