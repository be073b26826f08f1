package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"billboardgo/backend/internal/models"
	"billboardgo/backend/internal/storage"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     os.Getenv("REDIS_ADDR"),
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Fatalf("failed to connect redis: %v", err)
	}

	storageSvc := storage.NewStorageService(db, rdb)

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "promote":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin promote <email>")
			os.Exit(1)
		}
		email := os.Args[2]
		if err := promoteUser(storageSvc, email); err != nil {
			log.Fatalf("Error promoting user: %v", err)
		}
		fmt.Printf("User %s is now an administrator.\n", email)
	case "suspend":
		if len(os.Args) < 3 {
			fmt.Println("Usage: admin suspend <user_id> [duration_in_hours]")
			os.Exit(1)
		}
		userID := os.Args[2]
		var duration int
		if len(os.Args) > 3 {
			var err error
			duration, err = strconv.Atoi(os.Args[3])
			if err != nil {
				fmt.Println("Invalid duration. Please provide an integer.")
				os.Exit(1)
			}
		}
		if err := suspendUser(storageSvc, userID, duration); err != nil {
			log.Fatalf("Error suspending user: %v", err)
		}
		fmt.Printf("User %s has been suspended.\n", userID)
	case "unsuspend":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin unsuspend <user_id>")
			os.Exit(1)
		}
		userID := os.Args[2]
		if err := unsuspendUser(storageSvc, userID); err != nil {
			log.Fatalf("Error unsuspending user: %v", err)
		}
		fmt.Printf("User %s has been unsuspended.\n", userID)
	case "approve":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin approve <billboard_id>")
			os.Exit(1)
		}
		billboardID := os.Args[2]
		if err := approveBillboard(storageSvc, billboardID); err != nil {
			log.Fatalf("Error approving billboard: %v", err)
		}
		fmt.Printf("Billboard %s has been approved.\n", billboardID)
	default:
		fmt.Println("Unknown command")
		os.Exit(1)
	}
}

func promoteUser(s storage.Storage, email string) error {
	user, err := s.GetUserByEmail(email)
	if err != nil {
		return err
	}
	user.Role = models.RoleAdmin
	return s.UpdateUser(user)
}

func suspendUser(s storage.Storage, userID string, durationHours int) error {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return err
	}
	user.Suspended = true
	user.LastSuspendDate = time.Now().Unix()

	var until time.Time
	if durationHours > 0 {
		until = time.Now().Add(time.Duration(durationHours) * time.Hour)
		user.SuspendEndTime = until.Unix()
	} else {
		user.SuspendEndTime = 0
	}
	if err := s.UpdateUser(user); err != nil {
		return err
	}
	return s.CacheSuspension(userID, until)
}

func unsuspendUser(s storage.Storage, userID string) error {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return err
	}
	user.Suspended = false
	user.SuspendEndTime = 0
	if err := s.UpdateUser(user); err != nil {
		return err
	}
	return s.ClearSuspension(userID)
}

func approveBillboard(s storage.Storage, billboardID string) error {
	board, err := s.GetBillboardByID(billboardID)
	if err != nil {
		return err
	}
	now := time.Now()
	board.Status = models.BillboardStatusActive
	board.ApprovedAt = &now
	board.ApprovedBy = "admin-cli"
	return s.UpdateBillboard(board)
}
