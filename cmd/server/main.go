package main

import (
	"log"

	"github.com/omkar-107/opine-bot-sub000/internal/botclient"
	"github.com/omkar-107/opine-bot-sub000/internal/config"
	"github.com/omkar-107/opine-bot-sub000/internal/database"
	"github.com/omkar-107/opine-bot-sub000/internal/handlers"
	"github.com/omkar-107/opine-bot-sub000/internal/middleware"
	"github.com/omkar-107/opine-bot-sub000/internal/models"
	"github.com/omkar-107/opine-bot-sub000/internal/services"

	_ "github.com/omkar-107/opine-bot-sub000/docs"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// @title           OpineBot API
// @version         1.0
// @description     Course feedback and quiz backend for universities
// @host            localhost:8080
// @BasePath        /

func main() {
	cfg := config.Load()

	db := database.Connect(cfg)
	database.AutoMigrate(db)

	bot := botclient.NewClient(cfg.BotBaseURL, cfg.BotAPIKey)

	authService := services.NewAuthService(db, cfg.JWTSecret)
	ticketService := services.NewTicketService(cfg.JWTSecret)
	rosterService := services.NewRosterService(db, authService)
	courseService := services.NewCourseService(db)
	quizService := services.NewQuizService(db)
	attemptService := services.NewAttemptService(db)
	taskService := services.NewTaskService(db, bot)

	seedAdmin(db, authService, cfg)

	authHandler := handlers.NewAuthHandler(authService)
	rosterHandler := handlers.NewRosterHandler(rosterService)
	courseHandler := handlers.NewCourseHandler(courseService)
	quizHandler := handlers.NewQuizHandler(quizService)
	attemptHandler := handlers.NewAttemptHandler(attemptService, ticketService)
	taskHandler := handlers.NewTaskHandler(taskService)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.AllowOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		AllowCredentials: true,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.CookieAuth(authService), authHandler.Me)
		}

		api.GET("/students/me", middleware.CookieAuth(authService), middleware.RequireRole(models.RoleStudent), rosterHandler.MyStudentProfile)
		api.GET("/faculty/me", middleware.CookieAuth(authService), middleware.RequireRole(models.RoleFaculty), rosterHandler.MyFacultyProfile)

		students := api.Group("/students")
		students.Use(middleware.CookieAuth(authService), middleware.RequireRole(models.RoleAdmin))
		{
			students.GET("", rosterHandler.ListStudents)
			students.POST("", rosterHandler.CreateStudent)
			students.GET("/:id", rosterHandler.GetStudent)
			students.PUT("/:id", rosterHandler.UpdateStudent)
			students.DELETE("/:id", rosterHandler.DeleteStudent)
			students.POST("/:id/enroll", rosterHandler.Enroll)
			students.POST("/:id/unenroll", rosterHandler.Unenroll)
		}

		faculty := api.Group("/faculty")
		faculty.Use(middleware.CookieAuth(authService), middleware.RequireRole(models.RoleAdmin))
		{
			faculty.GET("", rosterHandler.ListFaculty)
			faculty.POST("", rosterHandler.CreateFaculty)
			faculty.GET("/:id", rosterHandler.GetFaculty)
			faculty.PUT("/:id", rosterHandler.UpdateFaculty)
			faculty.DELETE("/:id", rosterHandler.DeleteFaculty)
		}

		courses := api.Group("/courses")
		courses.Use(middleware.CookieAuth(authService))
		{
			courses.GET("", courseHandler.ListCourses)
			courses.GET("/:id", courseHandler.GetCourse)

			admin := courses.Group("")
			admin.Use(middleware.RequireRole(models.RoleAdmin))
			{
				admin.POST("", courseHandler.CreateCourse)
				admin.PUT("/:id", courseHandler.UpdateCourse)
				admin.DELETE("/:id", courseHandler.DeleteCourse)
			}
		}

		quizzes := api.Group("/quizzes")
		quizzes.Use(middleware.CookieAuth(authService), middleware.RequireRole(models.RoleFaculty))
		{
			quizzes.GET("", quizHandler.ListQuizzes)
			quizzes.POST("", quizHandler.CreateQuiz)
			quizzes.GET("/:id", quizHandler.GetQuiz)
			quizzes.PUT("/:id", quizHandler.UpdateQuiz)
			quizzes.PUT("/:id/active", quizHandler.ToggleActive)
			quizzes.DELETE("/:id", quizHandler.DeleteQuiz)
			quizzes.GET("/:id/responses", quizHandler.ListResponses)
		}

		attempt := api.Group("/quiz")
		{
			attempt.GET("/:id/check-code", attemptHandler.InspectTicket)

			student := attempt.Group("")
			student.Use(middleware.CookieAuth(authService), middleware.RequireRole(models.RoleStudent))
			{
				student.POST("/:id/check-code", attemptHandler.CheckCode)
				student.POST("/:id/feedback", attemptHandler.Feedback)
			}

			// gated by the quiz ticket cookie alone; the identity cookie
			// is not re-checked between code check and submission
			attempt.GET("/:id/questions", attemptHandler.Questions)
			attempt.POST("/:id/submit", attemptHandler.Submit)
		}

		tasks := api.Group("/tasks")
		tasks.Use(middleware.CookieAuth(authService))
		{
			tasks.GET("/open", middleware.RequireRole(models.RoleStudent), taskHandler.OpenTasks)
			tasks.POST("/:id/feedback", middleware.RequireRole(models.RoleStudent), taskHandler.SubmitTaskFeedback)

			facultyTasks := tasks.Group("")
			facultyTasks.Use(middleware.RequireRole(models.RoleFaculty))
			{
				facultyTasks.GET("", taskHandler.ListTasks)
				facultyTasks.POST("", taskHandler.CreateTask)
				facultyTasks.PUT("/:id/active", taskHandler.SetTaskActive)
				facultyTasks.GET("/:id/feedback", taskHandler.ListTaskFeedback)
			}
		}
	}

	log.Printf("server starting on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}

func seedAdmin(db *gorm.DB, authService *services.AuthService, cfg *config.Config) {
	if cfg.AdminPass == "" {
		return
	}

	var count int64
	db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count)
	if count > 0 {
		return
	}

	if _, err := authService.CreateUser(db, cfg.AdminEmail, cfg.AdminName, cfg.AdminPass, models.RoleAdmin); err != nil {
		log.Printf("admin seed skipped: %v", err)
		return
	}
	log.Printf("seeded admin user %s", cfg.AdminEmail)
}
