package routes

import (
	"learngenie/backend/config"
	"learngenie/backend/controllers"
	"learngenie/backend/coursera"
	"learngenie/backend/middleware"
	"learngenie/backend/models"
	"learngenie/backend/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

// Deps are the optional collaborators of the API. A nil Redis client
// disables Redis-backed rate limiting and health checks.
type Deps struct {
	Redis    *redis.Client
	Coursera *coursera.Client
}

func SetupRoutes(app *fiber.App, store *repository.Store, cfg *config.Config, deps Deps) {
	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)
	optionalAuth := middleware.OptionalAuth(cfg)
	adminOnly := middleware.RequireRole(models.RoleAdmin)
	managerOnly := middleware.RequireRole(models.RoleManager)
	staffOnly := middleware.RequireRole(models.RoleManager, models.RoleAdmin)
	loginLimit := middleware.NewRateLimiter(deps.Redis).Limit("login", cfg.LoginRateLimit, cfg.LoginRateWindow)

	// Operational routes
	healthController := controllers.NewHealthController(store, deps.Redis)
	app.Get("/health", healthController.Health)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")

	// Auth routes
	authController := controllers.NewAuthController(store, cfg)
	api.Post("/login", loginLimit, authController.Login)
	api.Post("/insert", optionalAuth, authController.Register)
	api.Get("/check-user/:email", authController.CheckUser)

	// User routes
	userController := controllers.NewUserController(store, cfg)
	api.Get("/users", authMiddleware, adminOnly, userController.ListUsers)
	api.Get("/users/managers", authMiddleware, adminOnly, userController.ListManagers)
	api.Get("/users/:id", authMiddleware, userController.GetUser)
	api.Put("/users/:id", authMiddleware, userController.UpdateUser)
	api.Delete("/users/:id", authMiddleware, adminOnly, userController.DeleteUser)
	api.Get("/retrieve_name/:id", userController.RetrieveName)
	api.Post("/retrieve_name/:id", userController.RetrieveName)

	// Courses routes
	coursesController := controllers.NewCoursesController(store, cfg)
	api.Get("/courses", coursesController.ListCourses)
	api.Get("/course_count", coursesController.CourseCount)
	api.Post("/get_courses", coursesController.FilterCourses)
	api.Post("/course_add", authMiddleware, managerOnly, coursesController.AddCourse)
	api.Get("/manager_courses/:managerId", authMiddleware, coursesController.ManagerCourses)
	api.Delete("/courses/by-manager/:managerId", authMiddleware, staffOnly, coursesController.DeleteByManager)
	api.Get("/courses/:id", coursesController.GetCourse)
	api.Put("/courses/:id", authMiddleware, managerOnly, coursesController.UpdateCourse)
	api.Delete("/courses/:id", authMiddleware, managerOnly, coursesController.DeleteCourse)

	// Rating routes
	ratingController := controllers.NewRatingController(store, cfg)
	api.Post("/courses/:id/rate", authMiddleware, ratingController.Rate)
	api.Get("/courses/:id/ratings", ratingController.Ratings)
	api.Get("/courses/:id/all-ratings", authMiddleware, staffOnly, ratingController.AllRatings)

	// Purchase and progress routes
	purchaseController := controllers.NewPurchaseController(store, cfg)
	api.Post("/purchase_course", authMiddleware, purchaseController.PurchaseCourse)
	api.Get("/purchased_courses/:userId", authMiddleware, purchaseController.PurchasedCourses)
	api.Get("/purchased_course_count", purchaseController.PurchasedCount)
	api.Post("/update_course_progress", authMiddleware, purchaseController.UpdateProgress)
	api.Post("/mark_course_completed", authMiddleware, purchaseController.MarkCompleted)

	// Manager dashboard routes
	managerController := controllers.NewManagerController(store, cfg)
	manager := api.Group("/manager", authMiddleware, staffOnly)
	manager.Get("/learner_progress/:managerId", managerController.LearnerProgress)
	manager.Get("/revenue/:managerId", managerController.Revenue)

	// Notification routes
	notificationController := controllers.NewNotificationController(store, cfg)
	api.Post("/notifications/mark_read", authMiddleware, notificationController.MarkRead)
	api.Get("/notifications/:userId", authMiddleware, notificationController.List)

	// Profile routes
	profileController := controllers.NewProfileController(store, cfg)
	api.Post("/user_profile/save", authMiddleware, profileController.SaveProfile)
	api.Get("/user_profile/:userId", authMiddleware, profileController.GetProfile)

	// Feedback routes
	messageController := controllers.NewMessageController(store, cfg)
	api.Post("/messages", messageController.Create)
	api.Get("/messages", authMiddleware, adminOnly, messageController.List)

	// Recommendation routes
	recommendationController := controllers.NewRecommendationController(store, cfg, deps.Coursera)
	api.Get("/recommendations/:userId", authMiddleware, recommendationController.Recommend)

	// Coursera routes
	if deps.Coursera != nil {
		courseraController := controllers.NewCourseraController(deps.Coursera)
		cr := api.Group("/coursera")
		cr.Get("/courses", courseraController.Courses)
		cr.Get("/courses/:id", courseraController.Course)
		cr.Get("/search", courseraController.Search)
		cr.Get("/categories/:category", courseraController.ByCategory)
		cr.Get("/popular", courseraController.Popular)
		cr.Get("/stats", courseraController.Stats)
		api.Get("/coursera-courses", courseraController.Legacy)
	}

	app.Use(middleware.NotFoundHandler)
}
