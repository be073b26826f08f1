package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"billboardgo/backend/internal/api/handler"
	"billboardgo/backend/internal/localization"
	"billboardgo/backend/internal/models"
	"billboardgo/backend/internal/moderation"
	"billboardgo/backend/internal/push"
	"billboardgo/backend/internal/realtime"
	"billboardgo/backend/internal/storage"
	"billboardgo/backend/internal/telegram"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupDependencies() (*gorm.DB, *redis.Client) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     os.Getenv("REDIS_ADDR"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx := context.Background()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Billboard{},
		&models.Conversation{},
		&models.Message{},
		&models.Notification{},
		&models.Report{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Database and Redis connections established, migrations complete.")
	return db, rdb
}

func main() {
	log.Println("Starting Billboard Marketplace Backend...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET is not set!")
	}

	db, rdb := setupDependencies()
	s := storage.NewStorageService(db, rdb)

	registry := realtime.NewRegistry()
	relay := realtime.NewRelay(s, registry)
	notifier := realtime.NewNotifier(s)
	mod := moderation.NewService(s)
	pushProvider := push.NewProvider(os.Getenv("VAPID_PUBLIC_KEY"))

	go relay.Run()
	go notifier.Run()

	h := handler.NewHandler(s, registry, notifier, mod, pushProvider, []byte(jwtSecret))

	// Moderation bot is optional: without a token the HTTP admin surface
	// is the only console.
	if botToken := os.Getenv("TELEGRAM_BOT_TOKEN"); botToken != "" {
		adminChatID, err := strconv.ParseInt(os.Getenv("TELEGRAM_ADMIN_CHAT_ID"), 10, 64)
		if err != nil {
			log.Fatalf("Invalid TELEGRAM_ADMIN_CHAT_ID: %v", err)
		}

		localizer := localization.NewLocalizer()
		if path := os.Getenv("LOCALIZATION_OVERRIDES"); path != "" {
			if err := localizer.LoadOverrides(path); err != nil {
				log.Fatalf("Failed to load localization overrides: %v", err)
			}
		}

		bot, err := telegram.NewBotService(botToken, adminChatID, s, notifier, localizer)
		if err != nil {
			log.Fatalf("Failed to start Telegram bot: %v", err)
		}
		h.Alerter = bot
		go bot.Run()
	}

	r := gin.Default()

	r.POST("/api/auth/register", h.Register)
	r.POST("/api/auth/login", h.Login)
	r.GET("/api/billboards", h.ListBillboards)
	r.GET("/api/billboards/:id", h.GetBillboard)
	r.GET("/api/push/public-key", h.PushPublicKey)

	auth := r.Group("/", h.AuthRequired())
	{
		auth.GET("/ws", h.ServeWebSocket)
		auth.POST("/api/billboards", h.CreateBillboard)
		auth.GET("/api/notifications/unread-count", h.UnreadCount)
		auth.POST("/api/notifications/read", h.MarkNotificationsRead)
		auth.POST("/api/conversations", h.CreateConversation)
		auth.GET("/api/conversations/:id/messages", h.GetMessages)
		auth.POST("/api/conversations/:id/messages", h.SendMessage)
		auth.POST("/api/reports", h.CreateReport)
	}

	admin := r.Group("/api/admin", h.AuthRequired(), h.AdminRequired())
	{
		admin.GET("/billboards/pending", h.ListPendingBillboards)
		admin.POST("/billboards/:id/approve", h.ApproveBillboard)
		admin.POST("/billboards/:id/reject", h.RejectBillboard)
		admin.POST("/users/:id/suspend", h.SuspendUser)
	}

	server := &http.Server{
		Addr:           ":8080",
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Fatal(server.ListenAndServe())
}
