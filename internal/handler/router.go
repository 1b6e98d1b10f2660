package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/elearning-api/internal/middleware"
)

// Routes - обработчики и middleware, из которых собираются маршруты API
type Routes struct {
	Quizzes      *QuizHandler
	Certificates *CertificateHandler
	Courses      *CourseHandler
	Auth         *middleware.AuthMiddleware

	// SubmitLimit ограничивает частоту POST /quiz/submit; nil отключает лимит
	SubmitLimit gin.HandlerFunc
}

// Register настраивает маршруты API на роутере
func (r Routes) Register(router gin.IRouter) {
	requireAuth := r.Auth.RequireAuth()
	optionalAuth := r.Auth.OptionalAuth()
	submitLimit := r.SubmitLimit
	if submitLimit == nil {
		submitLimit = func(c *gin.Context) { c.Next() }
	}

	// Каталог курсов
	courses := router.Group("/courses")
	{
		courses.GET("", r.Courses.ListCourses)

		course := courses.Group("/:id", middleware.ExtractIDParam("id", "courseID"))
		{
			course.GET("", optionalAuth, r.Courses.GetCourse)
			course.GET("/modules", optionalAuth, r.Courses.GetModules)
			course.POST("/purchase", requireAuth, r.Courses.PurchaseCourse)
		}
	}

	// Викторины
	quiz := router.Group("/quiz")
	{
		quiz.POST("/submit", requireAuth, submitLimit, r.Quizzes.SubmitQuiz)
		quiz.GET("/:courseId", requireAuth, middleware.ExtractIDParam("courseId", "courseID"), r.Quizzes.GetQuiz)

		// Маршруты веб-клиента, совпадающие с /certificates
		r.registerCertificateLookups(quiz.Group("/certificates"), requireAuth)
	}

	// Сертификаты
	certificates := router.Group("/certificates")
	{
		certificates.GET("/:id/preview", middleware.ExtractIDParam("id", "certificateID"), r.Certificates.PreviewCertificate)
		r.registerCertificateLookups(certificates, requireAuth)
	}

	// Администрирование
	admin := router.Group("/admin", requireAuth, r.Auth.AdminOnly())
	{
		admin.POST("/courses", r.Courses.CreateCourse)

		adminCourse := admin.Group("/courses/:id", middleware.ExtractIDParam("id", "courseID"))
		{
			adminCourse.POST("/quiz", r.Quizzes.CreateQuiz)
			adminCourse.GET("/certificates", r.Certificates.ExportCertificates)
		}
	}
}

func (r Routes) registerCertificateLookups(group *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	group.GET("/:id", requireAuth, middleware.ExtractIDParam("id", "certificateID"), r.Certificates.GetCertificate)
	group.GET("/user/:userId/course/:courseId", requireAuth,
		middleware.ExtractIDParam("userId", "userID"),
		middleware.ExtractIDParam("courseId", "courseID"),
		r.Certificates.GetLatestCertificate)
}

// Health отвечает на проверку живости сервиса
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
