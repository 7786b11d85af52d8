package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cliniccare/clinic-scheduler/internal/config"
	dbpkg "github.com/cliniccare/clinic-scheduler/internal/db"
	"github.com/cliniccare/clinic-scheduler/internal/middleware"
	redispkg "github.com/cliniccare/clinic-scheduler/internal/redis"
	"github.com/cliniccare/clinic-scheduler/internal/routes"
)

func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)
	rdb := redispkg.NewClient(cfg)

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.NewRateLimiter(20, 40).Middleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, rdb, cfg)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
