package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"skystore/storefront-api/model"
	"skystore/storefront-api/security"
	"skystore/storefront-api/validators"

	"github.com/stretchr/testify/require"
)

func newAccounts(t *testing.T) (*Accounts, *fakeNotifier) {
	t.Helper()

	notifier := &fakeNotifier{}
	accounts := NewAccounts(newTestDB(t), security.NewArgon(), notifier, 5*time.Minute)

	return accounts, notifier
}

func TestRegister(t *testing.T) {
	accounts, notifier := newAccounts(t)
	ctx := context.Background()

	user, err := accounts.Register(ctx, RegisterInput{
		Email:    "anna@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	require.False(t, user.IsActive)
	require.NotNil(t, user.VerificationToken)
	require.Len(t, *user.VerificationToken, 32)
	require.NotEmpty(t, user.ID)
	require.NotEqual(t, "correct horse", user.PasswordHash)

	require.Len(t, notifier.confirmations, 1)
	require.Equal(t, "anna@example.com", notifier.confirmations[0].Email)
	require.Equal(t, *user.VerificationToken, notifier.confirmations[0].Body)
}

func TestRegisterValidation(t *testing.T) {
	accounts, notifier := newAccounts(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
		field    string
	}{
		{"empty email", "", "correct horse", "email"},
		{"bad email", "not-an-address", "correct horse", "email"},
		{"empty password", "anna@example.com", "", "password"},
		{"short password", "anna@example.com", "short", "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := accounts.Register(ctx, RegisterInput{Email: tt.email, Password: tt.password})

			var fieldErr *validators.FieldError
			require.ErrorAs(t, err, &fieldErr)
			require.Equal(t, tt.field, fieldErr.Field)
		})
	}

	require.Empty(t, notifier.confirmations)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	accounts, notifier := newAccounts(t)
	ctx := context.Background()

	first, err := accounts.Register(ctx, RegisterInput{
		Email:    "anna@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	_, err = accounts.Register(ctx, RegisterInput{
		Email:    "anna@example.com",
		Password: "another password",
	})
	require.ErrorIs(t, err, ErrEmailTaken)

	// The stored record is untouched and exactly one user row exists
	var users []model.User
	require.NoError(t, accounts.DB.Find(&users).Error)
	require.Len(t, users, 1)
	require.Equal(t, first.PasswordHash, users[0].PasswordHash)

	require.Len(t, notifier.confirmations, 1)
}

func TestRegisterSurvivesMailFailure(t *testing.T) {
	accounts, notifier := newAccounts(t)
	ctx := context.Background()

	notifier.failNext = errors.New("smtp down")

	user, err := accounts.Register(ctx, RegisterInput{
		Email:    "anna@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	// The row was committed even though the mail never went out
	var stored model.User
	require.NoError(t, accounts.DB.Where("id = ?", user.ID).First(&stored).Error)
	require.Empty(t, notifier.confirmations)
}

func TestConfirmEmail(t *testing.T) {
	accounts, _ := newAccounts(t)
	ctx := context.Background()

	user, err := accounts.Register(ctx, RegisterInput{
		Email:    "anna@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	token := *user.VerificationToken

	confirmed, err := accounts.ConfirmEmail(ctx, token)
	require.NoError(t, err)
	require.Equal(t, user.ID, confirmed.ID)
	require.True(t, confirmed.IsActive)

	var stored model.User
	require.NoError(t, accounts.DB.Where("id = ?", user.ID).First(&stored).Error)
	require.True(t, stored.IsActive)
	require.Nil(t, stored.VerificationToken)

	// The token was consumed, replaying the link does nothing
	_, err = accounts.ConfirmEmail(ctx, token)
	require.ErrorIs(t, err, ErrTokenNotFound)
}

func TestConfirmEmailUnknownToken(t *testing.T) {
	accounts, _ := newAccounts(t)
	ctx := context.Background()

	_, err := accounts.ConfirmEmail(ctx, "deadbeefdeadbeefdeadbeefdeadbeef")
	require.ErrorIs(t, err, ErrTokenNotFound)

	_, err = accounts.ConfirmEmail(ctx, "")
	require.ErrorIs(t, err, ErrTokenNotFound)
}

func TestResetPassword(t *testing.T) {
	accounts, notifier := newAccounts(t)
	ctx := context.Background()

	user, err := accounts.Register(ctx, RegisterInput{
		Email:    "anna@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	require.NoError(t, accounts.ResetPassword(ctx, "anna@example.com"))

	var stored model.User
	require.NoError(t, accounts.DB.Where("id = ?", user.ID).First(&stored).Error)
	require.NotEqual(t, user.PasswordHash, stored.PasswordHash)

	require.Len(t, notifier.passwords, 1)
	require.Equal(t, "anna@example.com", notifier.passwords[0].Email)
	require.Len(t, notifier.passwords[0].Body, security.TempPasswordLength)

	// The mailed plaintext matches the stored hash
	ok, err := accounts.Argon.Verify(notifier.passwords[0].Body, stored.PasswordHash)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestResetPasswordUnknownEmail(t *testing.T) {
	accounts, notifier := newAccounts(t)

	err := accounts.ResetPassword(context.Background(), "nobody@example.com")
	require.ErrorIs(t, err, ErrUserNotFound)
	require.Empty(t, notifier.passwords)
}

func TestAuthenticate(t *testing.T) {
	accounts, _ := newAccounts(t)
	ctx := context.Background()

	user, err := accounts.Register(ctx, RegisterInput{
		Email:    "anna@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	// Unconfirmed accounts can't log in yet
	_, err = accounts.Authenticate(ctx, "anna@example.com", "correct horse")
	require.ErrorIs(t, err, ErrNotConfirmed)

	_, err = accounts.ConfirmEmail(ctx, *user.VerificationToken)
	require.NoError(t, err)

	got, err := accounts.Authenticate(ctx, "anna@example.com", "correct horse")
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)

	_, err = accounts.Authenticate(ctx, "anna@example.com", "wrong password")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = accounts.Authenticate(ctx, "nobody@example.com", "correct horse")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateProfile(t *testing.T) {
	accounts, _ := newAccounts(t)
	ctx := context.Background()

	user, err := accounts.Register(ctx, RegisterInput{
		Email:    "anna@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	phone := "+371 20000000"
	country := "Latvia"

	updated, err := accounts.UpdateProfile(ctx, user.ID, ProfileInput{
		Phone:   &phone,
		Country: &country,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.Phone)
	require.Equal(t, phone, *updated.Phone)
	require.NotNil(t, updated.Country)
	require.Equal(t, country, *updated.Country)

	// Partial update leaves the other fields alone
	avatar := "avatars/abc123.png"
	updated, err = accounts.UpdateProfile(ctx, user.ID, ProfileInput{AvatarRef: &avatar})
	require.NoError(t, err)
	require.NotNil(t, updated.Phone)
	require.Equal(t, phone, *updated.Phone)
	require.NotNil(t, updated.AvatarRef)
	require.Equal(t, avatar, *updated.AvatarRef)

	// Lifecycle state is untouched by profile edits
	require.False(t, updated.IsActive)
}

func TestResendConfirmation(t *testing.T) {
	accounts, notifier := newAccounts(t)
	ctx := context.Background()

	user, err := accounts.Register(ctx, RegisterInput{
		Email:    "anna@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	firstToken := *user.VerificationToken

	require.NoError(t, accounts.ResendConfirmation(ctx, "anna@example.com"))
	require.Len(t, notifier.confirmations, 2)

	// A fresh token replaced the original on the user row
	var stored model.User
	require.NoError(t, accounts.DB.Where("id = ?", user.ID).First(&stored).Error)
	require.NotNil(t, stored.VerificationToken)
	require.NotEqual(t, firstToken, *stored.VerificationToken)
	require.Equal(t, *stored.VerificationToken, notifier.confirmations[1].Body)

	// Back-to-back resends hit the cooldown
	err = accounts.ResendConfirmation(ctx, "anna@example.com")
	require.ErrorIs(t, err, ErrResendCooldown)

	// Confirmed accounts have nothing to resend
	_, err = accounts.ConfirmEmail(ctx, *stored.VerificationToken)
	require.NoError(t, err)

	err = accounts.ResendConfirmation(ctx, "anna@example.com")
	require.ErrorIs(t, err, ErrAlreadyConfirmed)

	err = accounts.ResendConfirmation(ctx, "nobody@example.com")
	require.ErrorIs(t, err, ErrUserNotFound)
}
