package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"coderr/internal/config"
	"coderr/internal/database"
	"coderr/internal/middleware"
	"coderr/internal/modules/auth"
	"coderr/internal/modules/offer"
	"coderr/internal/modules/order"
	"coderr/internal/modules/profile"
	"coderr/internal/modules/review"
	"coderr/internal/modules/stats"
	jwtsvc "coderr/internal/pkg/jwt"
	"coderr/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	offerRepo := repository.NewOfferRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	authService := auth.NewService(userRepo, profileRepo, j)
	authHandler := auth.NewHandler(authService)

	profileService := profile.NewService(profileRepo, userRepo)
	profileHandler := profile.NewHandler(profileService)

	offerService := offer.NewService(offerRepo, profileRepo)
	offerHandler := offer.NewHandler(offerService)

	orderService := order.NewService(orderRepo, offerRepo, profileRepo)
	orderHandler := order.NewHandler(orderService)

	reviewService := review.NewService(reviewRepo, orderRepo, profileRepo)
	reviewHandler := review.NewHandler(reviewService)

	statsService := stats.NewService(reviewRepo, profileRepo, offerRepo)
	statsHandler := stats.NewHandler(statsService)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	api := r.Group("/api")
	{
		// public
		authHandler.RegisterRoutes(api)
		statsHandler.RegisterRoutes(api)

		protected := api.Group("/")
		protected.Use(middleware.Auth(j))
		{
			profileHandler.RegisterRoutes(protected)
			orderHandler.RegisterRoutes(protected)
			reviewHandler.RegisterRoutes(protected)
		}

		// offers list/retrieve stay public, mutations go through auth
		offerHandler.RegisterRoutes(api, protected)
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
