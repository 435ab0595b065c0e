// Package api contains all endpoints available
package api

import (
	"fmt"
	"time"

	"skystore/storefront-api/db"
	"skystore/storefront-api/middleware"
	"skystore/storefront-api/security"
	"skystore/storefront-api/service"
	"skystore/storefront-api/validators"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

var store = persist.NewMemoryStore(time.Minute)

type API struct {
	DB       *gorm.DB
	Router   *gin.Engine
	Argon    *security.ArgonHash
	Accounts *service.Accounts
	Content  *validators.Content
	Storage  service.Storage
}

func NewRouter() (*API, error) {
	a := &API{}

	database, err := db.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}
	a.DB = database

	makeLogger()

	a.Argon = security.NewArgon()
	a.Accounts = service.NewAccounts(
		database,
		a.Argon,
		service.NewMailer(),
		time.Duration(viper.GetInt("resend.cooldown_minutes"))*time.Minute,
	)
	a.Content = validators.NewContent(viper.GetStringSlice("content.forbidden_words"))

	storage, err := service.NewStorage()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage, %w", err)
	}
	a.Storage = storage

	router := gin.New()
	a.Router = router

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     []string{"http://localhost:5173"},
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				if v := c.GetString("userID"); v != "" {
					fields = append(fields, zap.String("userID", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true
	a.Router.MaxMultipartMemory = 5 << 20

	jwt := middleware.NewJWTMiddleware(database)
	maxUploadSize := viper.GetInt64("upload.max_size")

	main := router.Group("/api")
	{
		// HEAD /api/heartbeat 		-> Used to check if the server is alive
		main.HEAD("/heartbeat", a.Heartbeat)

		// HEAD /api/validate		-> Validates a JWT token
		main.HEAD("/validate", jwt, a.Validate)

		// POST /api/contacts		-> Accepts a contact-form message
		main.POST("/contacts", middleware.BodySizeLimiter(1<<20), a.ContactSubmit)
	}

	users := main.Group("/users", middleware.BodySizeLimiter(1<<20))
	{
		// POST /api/users 				-> Registers a new user
		users.POST("", a.UserRegister)

		// GET /api/users/confirm/:token	 	-> Confirms an email address
		users.GET("/confirm/:token", a.UserConfirm)

		// POST /api/users/login 			-> Logs in a user and returns a JWT cookie
		users.POST("/login", a.UserLogin)

		// POST /api/users/reset-password		-> Mails a new temporary password
		users.POST("/reset-password", a.UserResetPassword)

		// POST /api/users/resend-confirmation		-> Resends the confirmation mail
		users.POST("/resend-confirmation", a.UserResendConfirmation)

		// GET /api/users/profile			-> Returns the caller's profile
		users.GET("/profile", jwt, a.UserProfileFetch)
	}

	// Profile updates carry an avatar image, so they get the bigger limit
	main.PUT("/users/profile", jwt, middleware.BodySizeLimiter(maxUploadSize), a.UserProfileUpdate)

	categories := main.Group("/categories")
	{
		// GET /api/categories		-> Lists all categories
		categories.GET("", cacheFor(60), a.CategoryList)
	}

	products := main.Group("/products")
	{
		// GET /api/products		-> Lists products, newest first
		products.GET("", cacheFor(30), a.ProductList)

		// GET /api/products/:id	-> Product detail, bumps the view counter
		products.GET("/:id", a.ProductDetail)

		// POST /api/products		-> Creates a product from a multipart form
		products.POST("", jwt, middleware.BodySizeLimiter(maxUploadSize), a.ProductCreate)

		// PUT /api/products/:id	-> Updates a product
		products.PUT("/:id", jwt, middleware.BodySizeLimiter(maxUploadSize), a.ProductUpdate)

		// DELETE /api/products/:id	-> Deletes a product
		products.DELETE("/:id", jwt, a.ProductDelete)

		// POST /api/products/:id/versions -> Adds a version to a product
		products.POST("/:id/versions", jwt, middleware.BodySizeLimiter(1<<20), a.VersionCreate)
	}

	articles := main.Group("/articles")
	{
		// GET /api/articles		-> Lists published articles, newest first
		articles.GET("", a.ArticleList)

		// GET /api/articles/:id	-> Article detail, bumps the view counter
		articles.GET("/:id", a.ArticleDetail)

		// POST /api/articles		-> Creates an article from a multipart form
		articles.POST("", jwt, middleware.BodySizeLimiter(maxUploadSize), a.ArticleCreate)

		// PUT /api/articles/:id	-> Updates an article
		articles.PUT("/:id", jwt, middleware.BodySizeLimiter(maxUploadSize), a.ArticleUpdate)

		// DELETE /api/articles/:id	-> Deletes an article
		articles.DELETE("/:id", jwt, a.ArticleDelete)
	}

	return a, nil
}

func makeLogger() {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	cfg.DisableStacktrace = true

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}

func cacheFor(sec int) gin.HandlerFunc {
	return cache.CacheByRequestURI(store, time.Second*time.Duration(sec))
}
