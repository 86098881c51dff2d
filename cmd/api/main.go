package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/salonlink/salon-scheduler/internal/cache"
	"github.com/salonlink/salon-scheduler/internal/config"
	dbpkg "github.com/salonlink/salon-scheduler/internal/db"
	infraRepo "github.com/salonlink/salon-scheduler/internal/infra/repository"
	"github.com/salonlink/salon-scheduler/internal/middleware"
	"github.com/salonlink/salon-scheduler/internal/routes"
	"github.com/salonlink/salon-scheduler/internal/storage"
	"github.com/salonlink/salon-scheduler/internal/sweeper"
	ucReservation "github.com/salonlink/salon-scheduler/internal/usecase/reservation"
	ucShop "github.com/salonlink/salon-scheduler/internal/usecase/shop"
)

func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	rdb := cache.NewClient(cfg)
	popular := cache.NewPopularShops(rdb)
	images := storage.NewImageStore(cfg)

	// Background jobs: reservation sweep + popularity ranking.
	reservationRepo := infraRepo.NewReservationGormRepository(db)
	sweepUC := ucReservation.NewSweepExpiredReservations(reservationRepo)
	rankingUC := ucShop.NewRecomputePopularShops(db, popular)

	sw := sweeper.New(
		time.Duration(cfg.SweepIntervalMinutes)*time.Minute,
		sweepUC,
		rankingUC,
	)
	go sw.Start(context.Background())

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, routes.Deps{
		DB:      db,
		Config:  cfg,
		Popular: popular,
		Images:  images,
	})

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
