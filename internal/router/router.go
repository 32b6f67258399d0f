package router

import (
	"net/http"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/unrolled/secure"
	"go.uber.org/zap"

	"github.com/LksLvnt/studymate/internal/config"
	"github.com/LksLvnt/studymate/internal/handlers"
	"github.com/LksLvnt/studymate/internal/quizsession"
	"github.com/LksLvnt/studymate/internal/services"
)

func keyFunc(c *gin.Context) string {
	return c.ClientIP()
}

func rateLimitExceeded(c *gin.Context, info ratelimit.Info) {
	c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests, try again later"})
}

func Setup(log *zap.Logger, ingest *services.IngestService, review *services.ReviewService) *gin.Engine {
	// Set up a new Gin router, add recovery middleware and request logging.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(log))

	store := cookie.NewStore([]byte(config.Conf.Server.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   false, // Set to true in production
		SameSite: http.SameSiteLaxMode,
		MaxAge:   86400 * 7,
	})
	router.Use(sessions.Sessions("studymate_session", store))
	router.Use(UserLoaderMiddleware())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.Conf.Server.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	secureMiddleware := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
	})
	router.Use(func(c *gin.Context) {
		if err := secureMiddleware.Process(c.Writer, c.Request); err != nil {
			c.Abort()
			return
		}
	})

	// Handlers and routes
	authHandler := handlers.NewAuthHandler(log)
	documentHandler := handlers.NewDocumentHandler(log, ingest)
	flashcardHandler := handlers.NewFlashcardHandler(log, review)
	quizHandler := handlers.NewQuizHandler(log, quizsession.NewRegistry())
	analyticsHandler := handlers.NewAnalyticsHandler(log)

	rateLimitStore := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  time.Minute,
		Limit: 5,
	})
	limiter := ratelimit.RateLimiter(rateLimitStore, &ratelimit.Options{
		ErrorHandler: rateLimitExceeded,
		KeyFunc:      keyFunc,
	})

	api := router.Group("/api")
	api.GET("/health", handlers.Health)
	api.POST("/auth/register", limiter, authHandler.Register)
	api.POST("/auth/login", limiter, authHandler.Login)
	api.POST("/auth/logout", authHandler.Logout)

	authorized := api.Group("/")
	authorized.Use(AuthRequired())
	{
		authorized.GET("/auth/me", authHandler.Me)

		documents := authorized.Group("/documents")
		{
			documents.POST("", documentHandler.Upload)
			documents.GET("", documentHandler.List)
			documents.GET("/:id", documentHandler.Get)
			documents.POST("/:id/flashcards", documentHandler.GenerateFlashcards)
			documents.POST("/:id/quiz", documentHandler.GenerateQuiz)
			documents.POST("/:id/study-guide", documentHandler.GenerateStudyGuide)
		}

		authorized.GET("/study-guides", documentHandler.ListStudyGuides)
		authorized.GET("/study-guides/:id", documentHandler.GetStudyGuide)

		flashcards := authorized.Group("/flashcards")
		{
			flashcards.GET("", flashcardHandler.List)
			flashcards.GET("/due", flashcardHandler.Due)
			flashcards.POST("/:id/review", flashcardHandler.Review)
			flashcards.GET("/:id/history", flashcardHandler.History)
		}

		quizzes := authorized.Group("/quizzes")
		{
			quizzes.GET("", quizHandler.List)
			quizzes.GET("/:id", quizHandler.Get)
			quizzes.GET("/:id/attempts", quizHandler.Attempts)
			quizzes.POST("/:id/session/start", quizHandler.Start)
			quizzes.POST("/:id/session/select", quizHandler.Select)
			quizzes.POST("/:id/session/confirm", quizHandler.Confirm)
			quizzes.POST("/:id/session/next", quizHandler.Next)
			quizzes.POST("/:id/session/retry", quizHandler.Retry)
			quizzes.POST("/:id/session/exit", quizHandler.Exit)
		}

		analytics := authorized.Group("/analytics")
		{
			analytics.GET("/accuracy", analyticsHandler.Accuracy)
			analytics.GET("/accuracy/chart", analyticsHandler.AccuracyChart)
			analytics.GET("/topics", analyticsHandler.Topics)
			analytics.GET("/topics/chart", analyticsHandler.TopicsChart)
			analytics.GET("/confidence/:id", analyticsHandler.Confidence)
		}
	}

	return router
}
