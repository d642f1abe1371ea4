// Package api contains all REST endpoints available
package api

import (
	"fmt"
	"time"

	"feedhub/social-api/db"
	"feedhub/social-api/graph"
	"feedhub/social-api/middleware"
	"feedhub/social-api/security"
	"feedhub/social-api/service"
	"feedhub/social-api/storage"
	"feedhub/social-api/store"

	ginzap "github.com/gin-contrib/zap"

	"github.com/gin-contrib/cors"
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

type API struct {
	DB     *gorm.DB
	Router *gin.Engine

	Tokens      *security.Tokens
	Credentials *store.Credentials
	Posts       *store.Posts
	Images      *service.Images
}

// NewRouter wires the whole application from the loaded configuration
func NewRouter() (*API, error) {
	d, err := db.New(viper.GetString("db.path"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite database, %w", err)
	}

	makeLogger()

	files, err := storage.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize image storage, %w", err)
	}

	tokens := security.NewTokens(viper.GetString("jwt.secret"), security.DefaultTokenTTL)

	return newAPI(d, files, tokens, viper.GetInt("feed.page_size")), nil
}

func newAPI(d *gorm.DB, files storage.Store, tokens *security.Tokens, pageSize int) *API {
	images := service.NewImages(files)

	a := &API{
		DB:          d,
		Tokens:      tokens,
		Credentials: store.NewCredentials(d),
		Posts:       store.NewPosts(d, images, pageSize),
		Images:      images,
	}

	router := gin.New()
	a.Router = router

	router.Use(
		cors.New(cors.Config{
			AllowAllOrigins: true,
			AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:    []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:   []string{"Content-Length"},
			MaxAge:          12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("requestID", v))
				}

				if v := c.GetString("userID"); v != "" {
					fields = append(fields, zap.String("userID", v))
				}

				return fields
			},
		}),
		middleware.NewAuthMiddleware(tokens),
	)

	router.HandleMethodNotAllowed = true

	requireAuth := middleware.RequireAuth()
	maxUploadSize := viper.GetInt64("upload.max_size")
	if maxUploadSize <= 0 {
		maxUploadSize = 10 << 20
	}
	router.MaxMultipartMemory = 5 << 20

	auth := router.Group("/auth", middleware.BodySizeLimiter(1<<20))
	{
		// POST /auth/signup		-> Registers a new user
		auth.POST("/signup", a.AuthSignup)

		// POST /auth/login		-> Logs in a user and returns a bearer token
		auth.POST("/login", a.AuthLogin)

		// GET /auth/status		-> Returns the caller's status line
		auth.GET("/status", requireAuth, a.StatusFetch)

		// PATCH /auth/status		-> Updates the caller's status line
		auth.PATCH("/status", requireAuth, a.StatusUpdate)
	}

	feed := router.Group("/feed", requireAuth)
	{
		// GET /feed/posts		-> Returns one page of posts, newest first
		feed.GET("/posts", a.PostList)

		// POST /feed/post		-> Creates a new post from a multipart form
		feed.POST("/post", middleware.BodySizeLimiter(maxUploadSize), a.PostCreate)

		// GET /feed/post/:postID	-> Returns a single post
		feed.GET("/post/:postID", a.PostFetch)

		// PUT /feed/post/:postID	-> Updates a post owned by the caller
		feed.PUT("/post/:postID", middleware.BodySizeLimiter(maxUploadSize), a.PostUpdate)

		// DELETE /feed/post/:postID	-> Deletes a post owned by the caller
		feed.DELETE("/post/:postID", a.PostDelete)
	}

	// PUT /post-image			-> Stores a replacement image ahead of a post update
	router.PUT("/post-image", requireAuth, middleware.BodySizeLimiter(maxUploadSize), a.ImageUpload)

	// GET /images/:name			-> Serves a stored image
	router.GET("/images/:name", a.ImageServe)

	// POST /graphql			-> The query-style surface over the same stores
	router.POST("/graphql", graph.NewHandler(a.Credentials, a.Posts, a.Tokens))

	return a
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
