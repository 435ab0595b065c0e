package service

import (
	"context"
	"errors"
	"time"

	"skystore/storefront-api/model"
	"skystore/storefront-api/security"
	"skystore/storefront-api/validators"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const userIDCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

var (
	ErrEmailTaken         = errors.New("email is already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrTokenNotFound      = errors.New("verification token not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotConfirmed       = errors.New("account email not confirmed")
	ErrAlreadyConfirmed   = errors.New("account email already confirmed")
	ErrResendCooldown     = errors.New("confirmation mail was resent recently")
)

// Accounts drives the account lifecycle: registration with email
// confirmation, login, password reset and profile updates
type Accounts struct {
	DB             *gorm.DB
	Argon          *security.ArgonHash
	Notifier       Notifier
	ResendCooldown time.Duration
}

func NewAccounts(db *gorm.DB, argon *security.ArgonHash, n Notifier, resendCooldown time.Duration) *Accounts {
	return &Accounts{
		DB:             db,
		Argon:          argon,
		Notifier:       n,
		ResendCooldown: resendCooldown,
	}
}

type RegisterInput struct {
	Email    string
	Password string
	Phone    *string
	Country  *string
}

// Register creates a new inactive user and mails them a confirmation
// link. The row is committed before the mail goes out; a failed send is
// logged and the registration still succeeds, since the user can ask
// for the mail to be resent
func (a *Accounts) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	if err := validators.Email(in.Email); err != nil {
		return nil, err
	}

	if err := validators.Password(in.Password); err != nil {
		return nil, err
	}

	hash, err := a.Argon.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	userID, err := gonanoid.Generate(userIDCharset, 16)
	if err != nil {
		return nil, err
	}

	token, err := security.MakeVerificationToken()
	if err != nil {
		return nil, err
	}

	user := model.User{
		ID:                userID,
		Email:             in.Email,
		PasswordHash:      hash,
		IsActive:          false,
		VerificationToken: &token,
		Phone:             in.Phone,
		Country:           in.Country,
	}

	// The unique index on email is the authority here. Two concurrent
	// registrations for the same address can both pass an application
	// level pre-check, so there isn't one
	if err := a.DB.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}

		return nil, err
	}

	if err := a.Notifier.SendConfirmation(ctx, user.Email, token); err != nil {
		zap.L().Error("Failed to send confirmation mail", zap.Error(err), zap.String("userID", user.ID))
	}

	return &user, nil
}

// ConfirmEmail activates the account holding the given token and clears
// the token so the link can't be replayed
func (a *Accounts) ConfirmEmail(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, ErrTokenNotFound
	}

	var user model.User

	err := a.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("verification_token = ?", token).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTokenNotFound
			}
			return err
		}

		return tx.Model(&user).Updates(map[string]any{
			"is_active":          true,
			"verification_token": nil,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	user.IsActive = true
	user.VerificationToken = nil
	return &user, nil
}

// ResetPassword overwrites the user's password with a freshly generated
// temporary one and mails it in plaintext. The new hash is committed
// before the mail goes out; if the send then fails the error is
// returned so the caller can tell the user to retry
func (a *Accounts) ResetPassword(ctx context.Context, email string) error {
	var user model.User

	if err := a.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	password := security.MakeTempPassword(security.TempPasswordLength)

	hash, err := a.Argon.Hash(password)
	if err != nil {
		return err
	}

	err = a.DB.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", user.ID).
		Update("password_hash", hash).
		Error
	if err != nil {
		return err
	}

	return a.Notifier.SendTempPassword(ctx, user.Email, password)
}

// Authenticate checks the credentials and returns the matching user.
// Accounts that never confirmed their email can't log in
func (a *Accounts) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	var user model.User

	if err := a.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	ok, err := a.Argon.Verify(password, user.PasswordHash)
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrNotConfirmed
	}

	return &user, nil
}

type ProfileInput struct {
	Phone     *string
	Country   *string
	AvatarRef *string
}

// UpdateProfile writes the optional profile fields of the caller's own
// record. Lifecycle flags and credentials are not touchable here
func (a *Accounts) UpdateProfile(ctx context.Context, userID string, in ProfileInput) (*model.User, error) {
	updates := map[string]any{}
	if in.Phone != nil {
		updates["phone"] = *in.Phone
	}
	if in.Country != nil {
		updates["country"] = *in.Country
	}
	if in.AvatarRef != nil {
		updates["avatar_ref"] = *in.AvatarRef
	}

	if len(updates) > 0 {
		err := a.DB.WithContext(ctx).
			Model(&model.User{}).
			Where("id = ?", userID).
			Updates(updates).
			Error
		if err != nil {
			return nil, err
		}
	}

	var user model.User
	if err := a.DB.WithContext(ctx).Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &user, nil
}

// ResendConfirmation issues a fresh token for a still-inactive account
// and mails a new confirmation link. Resends are rate limited per user
// so the endpoint can't be used to spam someone's inbox
func (a *Accounts) ResendConfirmation(ctx context.Context, email string) error {
	var user model.User

	if err := a.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if user.IsActive {
		return ErrAlreadyConfirmed
	}

	var resend model.ResendRequest
	err := a.DB.WithContext(ctx).Where("user_id = ?", user.ID).First(&resend).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if err == nil && time.Since(resend.LastResend) < a.ResendCooldown {
		return ErrResendCooldown
	}

	token, err := security.MakeVerificationToken()
	if err != nil {
		return err
	}

	err = a.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.User{}).
			Where("id = ?", user.ID).
			Update("verification_token", token).
			Error; err != nil {
			return err
		}

		resend.UserID = user.ID
		resend.LastResend = time.Now()
		return tx.Save(&resend).Error
	})
	if err != nil {
		return err
	}

	return a.Notifier.SendConfirmation(ctx, user.Email, token)
}
