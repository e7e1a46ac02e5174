package routes

import (
	"time"

	"github.com/askwellapp/askwell-backend/internal/config"
	"github.com/askwellapp/askwell-backend/internal/handlers"
	"github.com/askwellapp/askwell-backend/internal/middleware"
	"github.com/askwellapp/askwell-backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	questionHandler *handlers.QuestionHandler,
	answerHandler *handlers.AnswerHandler,
	voteHandler *handlers.VoteHandler,
	reportHandler *handlers.ReportHandler,
	moderatorHandler *handlers.ModeratorHandler,
	adminHandler *handlers.AdminHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth — public, with a stricter rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	// Protected routes (JWT required) - apply middleware per route so the
	// public routes above stay public
	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)
	api.Delete("/auth/account", middleware.JWTProtected(cfg), authHandler.DeleteAccount)

	// Questions. /questions/user must register before /questions/:id.
	api.Get("/questions", questionHandler.List)
	api.Get("/questions/user", middleware.JWTProtected(cfg), questionHandler.ListMine)
	api.Get("/questions/:id", questionHandler.Get)
	api.Post("/questions", middleware.JWTProtected(cfg), questionHandler.Create)
	api.Put("/questions/:id/status", middleware.JWTProtected(cfg), questionHandler.UpdateStatus)

	// Answers
	api.Get("/answers", answerHandler.List)
	api.Get("/answers/user", middleware.JWTProtected(cfg), answerHandler.ListMine)
	api.Get("/answers/question/:questionId", answerHandler.ListByQuestion)
	api.Post("/answers", middleware.JWTProtected(cfg), answerHandler.Create)

	// Voting
	api.Put("/content/:type/:id/vote", middleware.JWTProtected(cfg), voteHandler.Cast)

	// Reports — user submissions
	api.Post("/reports", middleware.JWTProtected(cfg), reportHandler.Create)

	// Moderator panel
	mod := api.Group("/mod", middleware.JWTProtected(cfg), middleware.RoleRequired(db, cfg, models.RoleModerator, models.RoleAdmin))
	mod.Get("/review-queue", moderatorHandler.ReviewQueue)
	mod.Get("/reported-content", moderatorHandler.ReportedContent)
	mod.Put("/questions/:id/status", moderatorHandler.ModerateQuestion)
	mod.Put("/answers/:id/status", moderatorHandler.ModerateAnswer)
	mod.Post("/questions/:id/report", moderatorHandler.ReportQuestion)
	mod.Put("/reports/:id", moderatorHandler.ResolveReport)

	// Admin panel
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.RoleRequired(db, cfg, models.RoleAdmin))
	admin.Get("/stats", adminHandler.Stats)
	admin.Get("/reports", adminHandler.ListReports)
	admin.Put("/questions/:id/handle-report", adminHandler.HandleReportedQuestion)
	admin.Get("/questions/:id/history", adminHandler.QuestionHistory)
	admin.Delete("/questions/:id", adminHandler.DeleteResolvedQuestion)
	admin.Delete("/answers/:id", adminHandler.DeleteAnswer)
	admin.Get("/categories", adminHandler.ListCategories)
	admin.Post("/categories", adminHandler.CreateCategory)
	admin.Put("/categories/:id", adminHandler.UpdateCategory)
	admin.Delete("/categories/:id", adminHandler.DeleteCategory)
	admin.Put("/users/:id/role", adminHandler.UpdateUserRole)
	admin.Delete("/users/:id", adminHandler.DeleteUser)
}
