package httpx

import (
	"log/slog"

	"github.com/Ishikapathar/Online-Exam-Management/internal/http/handlers"
	"github.com/Ishikapathar/Online-Exam-Management/internal/http/middleware"
	"github.com/gin-gonic/gin"
)

// Handlers groups every handler the router mounts
type Handlers struct {
	Auth      *handlers.AuthHandlers
	Students  *handlers.StudentHandlers
	Subjects  *handlers.SubjectHandlers
	Exams     *handlers.ExamHandlers
	Results   *handlers.ResultHandlers
	Analytics *handlers.AnalyticsHandlers
}

func BuildRouter(h Handlers, logger *slog.Logger, corsOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestContext(), middleware.RequestLogger(logger), middleware.CORS(corsOrigins))

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })
	r.GET("/", func(c *gin.Context) { c.JSON(200, gin.H{"message": "Online Exam System API"}) })

	api := r.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/verify-otp", h.Auth.VerifyOTP)
	auth.POST("/resend-otp", h.Auth.ResendOTP)

	students := api.Group("/students")
	students.GET("", h.Students.List)
	students.POST("", h.Students.Create)
	students.GET("/:id", h.Students.Get)
	students.PUT("/:id", h.Students.Update)
	students.DELETE("/:id", h.Students.Delete)
	students.GET("/:id/performance", h.Students.Performance)

	subjects := api.Group("/subjects")
	subjects.GET("", h.Subjects.List)
	subjects.POST("", h.Subjects.Create)
	subjects.GET("/:id", h.Subjects.Get)
	subjects.PUT("/:id", h.Subjects.Update)
	subjects.DELETE("/:id", h.Subjects.Delete)

	exams := api.Group("/exams")
	exams.GET("", h.Exams.List)
	exams.POST("", h.Exams.Create)
	exams.GET("/:id", h.Exams.Get)
	exams.PUT("/:id", h.Exams.Update)
	exams.DELETE("/:id", h.Exams.Delete)

	results := api.Group("/results")
	results.GET("", h.Results.List)
	results.POST("", h.Results.Create)
	results.GET("/rankings", h.Results.Rankings)
	results.GET("/student/:studentId", h.Results.ByStudent)
	results.GET("/exam/:examId", h.Results.ByExam)
	results.PUT("/:id", h.Results.Update)
	results.DELETE("/:id", h.Results.Delete)

	analytics := api.Group("/analytics")
	analytics.GET("/dashboard", h.Analytics.Dashboard)
	analytics.GET("/subject-performance", h.Analytics.SubjectPerformance)
	analytics.GET("/trending-students", h.Analytics.TrendingStudents)

	return r
}
