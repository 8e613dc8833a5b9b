package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"equipreserve/internal/database"
	"equipreserve/internal/middleware"
	"equipreserve/internal/modules/auth"
	"equipreserve/internal/modules/catalog"
	"equipreserve/internal/modules/directory"
	"equipreserve/internal/modules/ledger"
	jwtsvc "equipreserve/internal/pkg/jwt"
	"equipreserve/internal/repository"
	"equipreserve/internal/store"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is empty")
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is empty")
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal(err)
	}

	st := store.New(db)
	if err := st.Migrate(); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(st)
	equipmentRepo := repository.NewEquipmentRepository(st)
	reservationRepo := repository.NewReservationRepository(st)

	j := jwtsvc.New(secret, 24*time.Hour)

	directoryService := directory.NewService(userRepo)
	directoryHandler := directory.NewHandler(directoryService)

	authService := auth.NewService(directoryService, j)
	authHandler := auth.NewHandler(authService)

	catalogService := catalog.NewService(equipmentRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	ledgerService := ledger.NewService(reservationRepo, equipmentRepo, userRepo, st)
	ledgerHandler := ledger.NewHandler(ledgerService)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterPublicRoutes(v1)

		// any authenticated user
		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			catalogHandler.RegisterRoutes(protected)
			ledgerHandler.RegisterRoutes(protected)
		}

		// admin management
		admin := protected.Group("/")
		admin.Use(middleware.AdminOnly())
		{
			catalogHandler.RegisterAdminRoutes(admin)
			directoryHandler.RegisterAdminRoutes(admin)
			ledgerHandler.RegisterAdminRoutes(admin)
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
