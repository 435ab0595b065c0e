package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"skystore/storefront-api/middleware"
	"skystore/storefront-api/model"
	"skystore/storefront-api/security"
	"skystore/storefront-api/service"
	"skystore/storefront-api/validators"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq atomic.Int64

type recordingNotifier struct {
	mu            sync.Mutex
	confirmations []string
	passwords     []string
}

func (r *recordingNotifier) SendConfirmation(ctx context.Context, email, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.confirmations = append(r.confirmations, token)
	return nil
}

func (r *recordingNotifier) SendTempPassword(ctx context.Context, email, password string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.passwords = append(r.passwords, password)
	return nil
}

// newTestAPI wires the handlers against an in-memory database, a
// recording notifier and temp-dir storage, skipping config.Setup
func newTestAPI(t *testing.T) (*API, *recordingNotifier) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:apitest%d?mode=memory&cache=shared", testDBSeq.Add(1))

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

	notifier := &recordingNotifier{}
	argon := security.NewArgon()

	storage, err := service.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	a := &API{
		DB:       db,
		Router:   gin.New(),
		Argon:    argon,
		Accounts: service.NewAccounts(db, argon, notifier, 5*time.Minute),
		Content:  validators.NewContent(nil),
		Storage:  storage,
	}

	a.Router.Use(middleware.NewRequestIDMiddleware())

	users := a.Router.Group("/api/users")
	{
		users.POST("", a.UserRegister)
		users.GET("/confirm/:token", a.UserConfirm)
		users.POST("/reset-password", a.UserResetPassword)
	}

	a.Router.POST("/api/products", a.ProductCreate)
	a.Router.GET("/api/products/:id", a.ProductDetail)
	a.Router.GET("/api/articles", a.ArticleList)
	a.Router.GET("/api/articles/:id", a.ArticleDetail)

	return a, notifier
}

func doJSON(t *testing.T, router *gin.Engine, method, url string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, url, r)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRegisterAndConfirmFlow(t *testing.T) {
	a, notifier := newTestAPI(t)

	w := doJSON(t, a.Router, http.MethodPost, "/api/users", gin.H{
		"email":    "anna@example.com",
		"password": "correct horse",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, notifier.confirmations, 1)

	// Following the mailed link activates the account
	token := notifier.confirmations[0]

	w = doJSON(t, a.Router, http.MethodGet, "/api/users/confirm/"+token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var user model.User
	require.NoError(t, a.DB.Where("email = ?", "anna@example.com").First(&user).Error)
	require.True(t, user.IsActive)

	// The link is single use
	w = doJSON(t, a.Router, http.MethodGet, "/api/users/confirm/"+token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestRegisterErrorMapping(t *testing.T) {
	a, _ := newTestAPI(t)

	// Field-scoped validation failure
	w := doJSON(t, a.Router, http.MethodPost, "/api/users", gin.H{
		"email":    "not-an-address",
		"password": "correct horse",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "email", body["field"])

	// Duplicate email
	w = doJSON(t, a.Router, http.MethodPost, "/api/users", gin.H{
		"email":    "anna@example.com",
		"password": "correct horse",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, a.Router, http.MethodPost, "/api/users", gin.H{
		"email":    "anna@example.com",
		"password": "correct horse",
	})
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestResetPasswordEndpoint(t *testing.T) {
	a, notifier := newTestAPI(t)

	w := doJSON(t, a.Router, http.MethodPost, "/api/users/reset-password", gin.H{
		"email": "nobody@example.com",
	})
	require.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, a.Router, http.MethodPost, "/api/users", gin.H{
		"email":    "anna@example.com",
		"password": "correct horse",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, a.Router, http.MethodPost, "/api/users/reset-password", gin.H{
		"email": "anna@example.com",
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, notifier.passwords, 1)
}

func postForm(t *testing.T, router *gin.Engine, url string, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, url, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestProductCreateAndDetail(t *testing.T) {
	a, _ := newTestAPI(t)

	// Denylisted content is rejected with the failing field named
	w := postForm(t, a.Router, "/api/products", map[string]string{
		"name":        "Cheap casino tickets",
		"description": "...",
		"price":       "100",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "title", body["field"])

	w = postForm(t, a.Router, "/api/products", map[string]string{
		"name":        "Wooden chair",
		"description": "Solid oak chair",
		"price":       "4500",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var product model.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &product))
	require.Equal(t, "wooden-chair", product.Slug)

	// Each detail hit bumps the counter
	for i := int64(1); i <= 3; i++ {
		w = doJSON(t, a.Router, http.MethodGet, fmt.Sprintf("/api/products/%d", product.ID), nil)
		require.Equal(t, http.StatusOK, w.Code)

		var got model.Product
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		require.Equal(t, i, got.ViewsCount)
	}

	w = doJSON(t, a.Router, http.MethodGet, "/api/products/9999", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestArticleListHidesDrafts(t *testing.T) {
	a, _ := newTestAPI(t)

	require.NoError(t, a.DB.Create(&model.Article{Title: "Live", Slug: "live", IsPublished: true}).Error)

	draft := model.Article{Title: "Draft", Slug: "draft"}
	require.NoError(t, a.DB.Create(&draft).Error)

	w := doJSON(t, a.Router, http.MethodGet, "/api/articles", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var articles []model.Article
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &articles))
	require.Len(t, articles, 1)
	require.Equal(t, "Live", articles[0].Title)

	// Drafts stay reachable directly
	w = doJSON(t, a.Router, http.MethodGet, fmt.Sprintf("/api/articles/%d", draft.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
}
