package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"skystore/storefront-api/model"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq atomic.Int64

// newTestDB opens a fresh in-memory sqlite database. The pool is capped
// at one connection so the in-memory database isn't silently duplicated
// per connection and concurrent writers queue instead of hitting
// sqlite lock errors
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", testDBSeq.Add(1))

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		model.User{},
		model.ResendRequest{},
		model.Category{},
		model.Product{},
		model.Version{},
		model.Article{},
	))

	return db
}

type sentMail struct {
	Email string
	Body  string
}

// fakeNotifier records outgoing mail instead of talking to SMTP
type fakeNotifier struct {
	mu            sync.Mutex
	confirmations []sentMail
	passwords     []sentMail
	failNext      error
}

func (f *fakeNotifier) SendConfirmation(ctx context.Context, email, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failNext != nil {
		err := f.failNext
		f.failNext = nil
		return err
	}

	f.confirmations = append(f.confirmations, sentMail{Email: email, Body: token})
	return nil
}

func (f *fakeNotifier) SendTempPassword(ctx context.Context, email, password string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failNext != nil {
		err := f.failNext
		f.failNext = nil
		return err
	}

	f.passwords = append(f.passwords, sentMail{Email: email, Body: password})
	return nil
}
