// Package routes handles the setup and configuration of API routes
package routes

import (
	"database/sql"

	_ "houndtrack/docs" // Import swagger docs
	"houndtrack/internal/api/handlers"
	"houndtrack/internal/api/middleware"
	"houndtrack/internal/auth"
	"houndtrack/internal/config"
	"houndtrack/internal/importer"
	"houndtrack/internal/repository/postgres"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRoutes configures all API routes and their handlers
func SetupRoutes(cfg *config.Config, db *sql.DB) *gin.Engine {
	r := gin.Default()

	r.Use(middleware.Compression())

	healthHandler := handlers.NewHealthHandler(db)

	// Routes without rate limiting
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/health", healthHandler.Health)

	// Apply rate limiting to all other routes
	r.Use(middleware.NewRateLimiter(cfg).Middleware())

	// Initialize repositories
	roleRepo := postgres.NewRoleRepository(db)
	personRepo := postgres.NewPersonRepository(db)
	changeLogRepo := postgres.NewChangeLogRepository(db)
	newsRepo := postgres.NewNewsRepository(db)
	officerRepo := postgres.NewOfficerRoleRepository(db)
	contactRepo := postgres.NewContactRepository(db)
	importRepo := postgres.NewImportRepository(db)

	// Initialize services
	authService := auth.NewService(cfg)
	importService := importer.NewService(importRepo)

	// Initialize middleware
	session := middleware.NewSessionMiddleware(authService, roleRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(personRepo, roleRepo, authService, cfg)
	userRoleHandler := handlers.NewUserRoleHandler(roleRepo, changeLogRepo)
	newsHandler := handlers.NewNewsHandler(newsRepo, changeLogRepo)
	officerHandler := handlers.NewOfficerRoleHandler(officerRepo, changeLogRepo)
	changeLogHandler := handlers.NewChangeLogHandler(changeLogRepo)
	contactHandler := handlers.NewContactHandler(contactRepo)
	importHandler := handlers.NewImportHandler(importService)

	api := r.Group("/api")
	{
		// Session routes
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/logout", authHandler.Logout)
			authGroup.GET("/me", session.SignInRequired(), authHandler.Me)
		}

		// Role storage API consumed by the admin role editor
		userRoles := api.Group("/user_role")
		userRoles.Use(session.SignInRequired())
		{
			userRoles.GET("/list", middleware.ViewRequired("UserRole"), userRoleHandler.List)
			userRoles.GET("/get/:id", middleware.ViewRequired("UserRole"), userRoleHandler.Get)
			userRoles.POST("/register", middleware.EditAllRequired("UserRole"), userRoleHandler.Register)
			userRoles.POST("/edit", middleware.EditAllRequired("UserRole"), userRoleHandler.Edit)
			userRoles.POST("/delete", middleware.EditAllRequired("UserRole"), userRoleHandler.Delete)
		}

		// News: public reads, scoped writes
		api.GET("/news", newsHandler.List)
		api.GET("/news/:id", newsHandler.Get)
		newsEdit := api.Group("/news")
		newsEdit.Use(session.SignInRequired(), middleware.EditRequired("News"))
		{
			newsEdit.POST("", newsHandler.Create)
			newsEdit.POST("/edit", newsHandler.Edit)
			newsEdit.POST("/delete", newsHandler.Delete)
		}

		// Officer appointments
		officers := api.Group("/officer_role")
		officers.Use(session.SignInRequired())
		{
			officers.GET("/list", middleware.ViewRequired("OfficerRole"), officerHandler.List)
			officers.POST("/add", middleware.EditRequired("OfficerRole"), officerHandler.Add)
			officers.POST("/edit", middleware.EditRequired("OfficerRole"), officerHandler.Edit)
			officers.POST("/delete", middleware.EditRequired("OfficerRole"), officerHandler.Delete)
		}

		// Audit trail; Self/All filtering lives in the handler
		changeLogs := api.Group("/change_log")
		changeLogs.Use(session.SignInRequired())
		{
			changeLogs.GET("/get", changeLogHandler.List)
			changeLogs.GET("/get/:id", changeLogHandler.Get)
		}

		// Contact form: public submit, scoped listing
		api.POST("/contact", contactHandler.Submit)
		api.GET("/contact/list", session.SignInRequired(), middleware.ViewRequired("Person"), contactHandler.List)

		// CSV importer; entity scope depends on the type parameter
		imports := api.Group("/import")
		imports.Use(session.SignInRequired())
		{
			imports.POST("", importHandler.Run)
			imports.GET("/types", importHandler.Types)
		}
	}

	return r
}
