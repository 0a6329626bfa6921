package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"quest-raid-system/handlers"
	"quest-raid-system/middleware"
	"quest-raid-system/models"
	"quest-raid-system/services"
	"quest-raid-system/utils"
	"quest-raid-system/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 25 * 1024 * 1024, // proof screenshots only, keep it tight
	})

	// 🔐 GLOBAL: only Gateway requests allowed — the Gateway does wallet
	// signature verification and role resolution before forwarding.
	app.Use(middleware.GatewayAuthMiddleware())

	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		log.Println("⚠️  ALLOWED_ORIGINS environment variable not set, using default: http://localhost:3000")
		allowedOriginsEnv = "http://localhost:3000"
	}
	allowedOriginsList := strings.Split(allowedOriginsEnv, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}
	allowedOriginsString := strings.Join(allowedOriginsList, ",")

	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOriginsString,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID, X-Wallet-Address, X-User-Roles",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization, X-Request-ID",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	if err := utils.InitR2(); err != nil {
		log.Fatal("failed to initialize R2 client:", err)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true, // surface duplicate-key violations as gorm.ErrDuplicatedKey
	})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.Player{},
		&models.Quest{},
		&models.QuestCompletion{},
		&models.QuestTemplate{},
		&models.RotationDeployment{},
		&models.Submission{},
		&models.RaidBoss{},
		&models.RaidParticipant{},
		&models.Guild{},
		&models.GuildMember{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	playerService := services.NewPlayerService(db)
	questService := services.NewQuestService(db)
	submissionService := services.NewSubmissionService(db)
	raidService := services.NewRaidService(db)
	moderationService := services.NewModerationService(db, raidService)
	guildService := services.NewGuildService(db)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	questService.StartRotationScheduler()

	sweepInterval := 60 * time.Second
	if v := os.Getenv("SWEEP_INTERVAL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			sweepInterval = time.Duration(n) * time.Second
		}
	}
	go workers.NewSweeper(db).Run(ctx, sweepInterval)

	handlers.SetupPlayerRoutes(app, playerService, guildService)
	handlers.SetupQuestRoutes(app, questService, submissionService, moderationService, playerService)
	handlers.SetupRaidRoutes(app, raidService, playerService)
	handlers.SetupGuildRoutes(app, guildService, playerService)

	port := os.Getenv("PORT")
	if port == "" {
		port = "5300"
	}
	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on http://localhost:%s", port)
	log.Println("✅ Expiry sweeper running")
	log.Println("✅ GatewayAuthMiddleware enforced globally — all requests must come from Gateway")
	log.Printf("✅ CORS configured for origins: %s", allowedOriginsString)

	<-ctx.Done()
	log.Println("Shutting down server...")
}
