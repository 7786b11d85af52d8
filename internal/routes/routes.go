package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/cliniccare/clinic-scheduler/internal/audit"
	"github.com/cliniccare/clinic-scheduler/internal/cache"
	"github.com/cliniccare/clinic-scheduler/internal/config"
	"github.com/cliniccare/clinic-scheduler/internal/domain/user"
	"github.com/cliniccare/clinic-scheduler/internal/handlers"
	infraRepo "github.com/cliniccare/clinic-scheduler/internal/infra/repository"
	"github.com/cliniccare/clinic-scheduler/internal/middleware"
	"github.com/cliniccare/clinic-scheduler/internal/storage"
	ucCheckup "github.com/cliniccare/clinic-scheduler/internal/usecase/checkup"
	ucDailyDate "github.com/cliniccare/clinic-scheduler/internal/usecase/dailydate"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, cfg *config.Config) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	clinicRepo := infraRepo.NewClinicGormRepository(db)

	cacheLayer := cache.New(cache.NewRedisStore(rdb), cfg.CacheTTL)

	imageStorage := storage.NewS3Storage(cfg)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// USE CASES
	// ======================================================
	createCheckupUC := ucCheckup.NewCreateCheckup(clinicRepo, cacheLayer, auditDispatcher)
	updateCheckupUC := ucCheckup.NewUpdateCheckup(clinicRepo, cacheLayer, auditDispatcher)
	deleteCheckupUC := ucCheckup.NewDeleteCheckup(clinicRepo, cacheLayer, auditDispatcher)
	getCheckupUC := ucCheckup.NewGetCheckup(clinicRepo, cacheLayer)
	listCheckupsUC := ucCheckup.NewListCheckups(clinicRepo, cacheLayer)

	listAvailableUC := ucDailyDate.NewListAvailable(clinicRepo, cacheLayer)
	releaseAllUC := ucDailyDate.NewReleaseAll(clinicRepo, cacheLayer, auditDispatcher)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)

	checkupHandler := handlers.NewCheckupHandler(
		createCheckupUC,
		updateCheckupUC,
		deleteCheckupUC,
		getCheckupUC,
		listCheckupsUC,
	)

	dailyDatesHandler := handlers.NewDailyDatesHandler(listAvailableUC, releaseAllUC)

	patientsHandler := handlers.NewUserHandler(db, cacheLayer, imageStorage, auditDispatcher, user.RolePatient)
	moderatorsHandler := handlers.NewUserHandler(db, cacheLayer, imageStorage, auditDispatcher, user.RoleModerator)
	adminsHandler := handlers.NewUserHandler(db, cacheLayer, imageStorage, auditDispatcher, user.RoleAdmin)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/signup", authHandler.SignUp)
		api.POST("/auth/signin", authHandler.SignIn)

		// ------------------------------
		// PRIVATE API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			// ------------------------------
			// CHECKUPS
			// ------------------------------
			secured.GET("/checkups", checkupHandler.List)
			secured.GET("/checkups/:checkupId", checkupHandler.Get)
			secured.POST("/checkups",
				middleware.RequireRoles(user.RolePatient),
				checkupHandler.Create,
			)
			secured.PATCH("/checkups/:checkupId",
				middleware.RequireRoles(user.RolePatient),
				checkupHandler.Update,
			)
			secured.DELETE("/checkups/:checkupId", checkupHandler.Delete)

			// ------------------------------
			// DAILY DATES
			// ------------------------------
			secured.GET("/daily-dates", dailyDatesHandler.List)
			secured.POST("/daily-dates/release",
				middleware.RequireRoles(user.RoleAdmin, user.RoleModerator),
				dailyDatesHandler.ReleaseAll,
			)

			// ------------------------------
			// PATIENTS
			// ------------------------------
			patients := secured.Group("/patients")
			{
				patients.GET("",
					middleware.RequireRoles(user.RoleAdmin, user.RoleModerator),
					patientsHandler.List,
				)
				patients.POST("",
					middleware.RequireRoles(user.RoleAdmin, user.RoleModerator),
					patientsHandler.Create,
				)
				patients.GET("/:userId", patientsHandler.Get)
				patients.PATCH("/:userId", patientsHandler.Update)
				patients.DELETE("/:userId", patientsHandler.Delete)
			}

			// ------------------------------
			// MODERATORS
			// ------------------------------
			moderators := secured.Group("/moderators")
			{
				moderators.GET("",
					middleware.RequireRoles(user.RoleAdmin),
					moderatorsHandler.List,
				)
				moderators.POST("",
					middleware.RequireRoles(user.RoleAdmin),
					moderatorsHandler.Create,
				)
				moderators.GET("/:userId", moderatorsHandler.Get)
				moderators.PATCH("/:userId", moderatorsHandler.Update)
				moderators.DELETE("/:userId",
					middleware.RequireRoles(user.RoleAdmin),
					moderatorsHandler.Delete,
				)
			}

			// ------------------------------
			// ADMINS
			// ------------------------------
			admins := secured.Group("/admins")
			admins.Use(middleware.RequireRoles(user.RoleAdmin))
			{
				admins.GET("", adminsHandler.List)
				admins.GET("/:userId", adminsHandler.Get)
				admins.PATCH("/:userId", adminsHandler.Update)
				admins.DELETE("/:userId", adminsHandler.Delete)
			}
		}
	}
}
