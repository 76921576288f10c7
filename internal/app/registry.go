package app

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/juandiego305/Gestion-candidatos/internal/application"
	"github.com/juandiego305/Gestion-candidatos/internal/assignment"
	"github.com/juandiego305/Gestion-candidatos/internal/auth"
	"github.com/juandiego305/Gestion-candidatos/internal/company"
	"github.com/juandiego305/Gestion-candidatos/internal/favorite"
	"github.com/juandiego305/Gestion-candidatos/internal/identity"
	"github.com/juandiego305/Gestion-candidatos/internal/messaging/kafka"
	"github.com/juandiego305/Gestion-candidatos/internal/middleware"
	"github.com/juandiego305/Gestion-candidatos/internal/notification"
	"github.com/juandiego305/Gestion-candidatos/internal/scope"
	"github.com/juandiego305/Gestion-candidatos/internal/storage"
	"github.com/juandiego305/Gestion-candidatos/internal/user"
	"github.com/juandiego305/Gestion-candidatos/internal/vacancy"
)

func registerModules(
	router *gin.Engine,
	gormDB *gorm.DB,
	rdb *redis.Client,
	identityStore identity.Store,
	objectStore storage.ObjectStore,
	dispatcher *notification.Dispatcher,
) error {
	// --- Repositories ---
	userRepo := user.NewRepository(gormDB)
	companyRepo := company.NewRepository(gormDB)
	vacancyRepo := vacancy.NewRepository(gormDB)
	assignmentRepo := assignment.NewRepository(gormDB)
	applicationRepo := application.NewRepository(gormDB)
	favoriteRepo := favorite.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(gormDB)

	// --- Authorization core ---
	resolver := identity.NewResolver(identityStore, rdb)
	checker := scope.NewChecker(resolver, companyRepo, vacancyRepo, assignmentRepo)
	actorLoader := user.NewActorLoader(userRepo)
	gateway := storage.NewGateway(objectStore)

	// --- Services ---
	authService := auth.NewService(userRepo, resolver)
	userService := user.NewService(userRepo, resolver, identityStore)
	companyService := company.NewService(companyRepo, userRepo, resolver, checker, gateway)
	vacancyService := vacancy.NewService(vacancyRepo, resolver, checker)
	assignmentService := assignment.NewService(assignmentRepo, actorLoader, vacancyRepo, resolver, checker)
	applicationService := application.NewService(
		gormDB,
		applicationRepo,
		vacancyRepo,
		actorLoader,
		outboxRepo,
		resolver,
		checker,
		gateway,
		dispatcher,
	)
	favoriteService := favorite.NewService(favoriteRepo, actorLoader, resolver)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	userHandler := user.NewHandler(userService)
	companyHandler := company.NewHandler(companyService)
	vacancyHandler := vacancy.NewHandler(vacancyService)
	assignmentHandler := assignment.NewHandler(assignmentService)
	applicationHandler := application.NewHandler(applicationService)
	favoriteHandler := favorite.NewHandler(favoriteService)

	// --- Middleware ---
	authed := middleware.AuthMiddleware()
	actor := middleware.ActorContext(actorLoader)
	lockout := middleware.NewLoginLockout(rdb, dispatcher, actorLoader).Handler()

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler, authed, lockout)
		user.RegisterRoutes(api, userHandler, authed, actor)
		company.RegisterRoutes(api, companyHandler, authed, actor)
		vacancy.RegisterRoutes(api, vacancyHandler, authed, actor)
		assignment.RegisterRoutes(api, assignmentHandler, authed, actor)
		application.RegisterRoutes(api, applicationHandler, authed, actor)
		favorite.RegisterRoutes(api, favoriteHandler, authed, actor)
	}

	return nil
}
