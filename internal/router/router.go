package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/brightclass/brightclass-backend/internal/config"
	"github.com/brightclass/brightclass-backend/internal/handler"
	"github.com/brightclass/brightclass-backend/internal/middleware"
	"github.com/brightclass/brightclass-backend/internal/response"
	"github.com/brightclass/brightclass-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth         *handler.AuthHandler
	Course       *handler.CourseHandler
	Quiz         *handler.QuizHandler
	Question     *handler.QuestionHandler
	QuestionType *handler.QuestionTypeHandler
	Attempt      *handler.AttemptHandler
	WS           *handler.WSHandler
	System       *handler.SystemHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestID())

	// Health check.
	router.GET("/health", handlers.System.Health)

	// ─── 0. Public Group (No Auth) ─────────────────────────────────────
	public := router.Group("/api/v1")
	{
		public.GET("/question-types", handlers.QuestionType.List)
		public.GET("/question-types/:type", handlers.QuestionType.Get)
	}

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/teacher/login", handlers.Auth.TeacherLogin)
		auth.POST("/learner/login", handlers.Auth.LearnerLogin)

		// Authenticated profile routes
		auth.GET("/teacher/me", middleware.RequireTeacherJWT(authService), handlers.Auth.GetTeacherProfile)
		auth.GET("/learner/me", middleware.RequireLearnerJWT(authService), handlers.Auth.GetLearnerProfile)
	}

	// ─── 2. Teacher Group (JWT) ────────────────────────────────────────
	teacherAPI := router.Group("/api/v1/teacher")
	teacherAPI.Use(middleware.RequireTeacherJWT(authService))
	{
		// Courses
		teacherAPI.GET("/courses", handlers.Course.List)
		teacherAPI.POST("/courses", handlers.Course.Create)
		teacherAPI.GET("/courses/:course_id", handlers.Course.Get)

		// Quizzes
		teacherAPI.GET("/courses/:course_id/quizzes", handlers.Quiz.ListByCourse)
		teacherAPI.POST("/courses/:course_id/quizzes", handlers.Quiz.Create)
		teacherAPI.GET("/quizzes/:quiz_id", handlers.Quiz.Get)
		teacherAPI.PATCH("/quizzes/:quiz_id", handlers.Quiz.Update)
		teacherAPI.POST("/quizzes/:quiz_id/publish", handlers.Quiz.Publish)
		teacherAPI.POST("/quizzes/:quiz_id/unpublish", handlers.Quiz.Unpublish)
		teacherAPI.GET("/quizzes/:quiz_id/attempts", handlers.Quiz.ListAttempts)

		// Questions
		teacherAPI.GET("/quizzes/:quiz_id/questions", handlers.Question.List)
		teacherAPI.POST("/quizzes/:quiz_id/questions", handlers.Question.Create)
		teacherAPI.GET("/quizzes/:quiz_id/questions/:question_id", handlers.Question.Get)
		teacherAPI.PATCH("/quizzes/:quiz_id/questions/:question_id", handlers.Question.Update)
		teacherAPI.DELETE("/quizzes/:quiz_id/questions/:question_id", handlers.Question.Delete)
		teacherAPI.POST("/questions/validate", handlers.Question.Validate)

		// Dashboard metrics stream
		teacherAPI.GET("/system/metrics", handlers.System.MetricsSSE)
	}

	// ─── 3. Learner Group (JWT) ────────────────────────────────────────
	learnerAPI := router.Group("/api/v1/learner")
	learnerAPI.Use(middleware.RequireLearnerJWT(authService))
	{
		learnerAPI.GET("/quizzes/:quiz_id/paper", handlers.Attempt.GetPaper)
		learnerAPI.POST("/attempts", handlers.Attempt.Start)
		learnerAPI.GET("/attempts/:attempt_id", handlers.Attempt.Get)
		learnerAPI.POST("/attempts/:attempt_id/answers", handlers.Attempt.SubmitAnswer)
		learnerAPI.POST("/attempts/:attempt_id/transition", handlers.Attempt.Transition)
		learnerAPI.GET("/attempts/:attempt_id/answers", handlers.Attempt.ListAnswers)
	}

	// ─── 4. WebSocket Group (Teacher WS Auth) ──────────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireTeacherWSAuth(authService))
	{
		ws.GET("/teacher/quizzes/:quiz_id/monitor", handlers.WS.QuizMonitorStream)
	}

	return router
}
