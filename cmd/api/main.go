package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/vitern/vitern-api/internal/config"
	"github.com/vitern/vitern-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/vitern/vitern-api/internal/infrastructure/jwt"
	s3infra "github.com/vitern/vitern-api/internal/infrastructure/s3"
	"github.com/vitern/vitern-api/internal/infrastructure/smtp"
	"github.com/vitern/vitern-api/internal/infrastructure/sns"
	transporthttp "github.com/vitern/vitern-api/internal/transport/http"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)

	// JWT provider (optional — graceful fallback if keys are missing).
	var jwtProvider *jwtinfra.Provider
	if p, err := jwtinfra.NewProvider(cfg); err == nil {
		jwtProvider = p
	} else {
		log.Printf("WARN: JWT provider not available: %v", err)
	}

	// S3 store for generated resumes.
	s3Client := s3infra.NewClient(cfg)
	s3Store := s3infra.NewStore(s3Client, cfg.S3BucketName)

	// SMTP mailer.
	mailer := smtp.NewMailer(cfg)

	// SNS event publisher (optional — graceful fallback).
	var events sns.EventPublisher
	if pub, err := sns.NewPublisher(cfg); err == nil {
		events = pub
	} else {
		log.Printf("WARN: SNS publisher not available: %v", err)
	}

	deps := &transporthttp.Deps{
		OTPRepo:         dynamo.NewOTPRepo(dynamoClient, cfg.DynamoTables.OTPVerifications),
		AccountRepo:     dynamo.NewAccountRepo(dynamoClient, cfg.DynamoTables.Accounts),
		SignInTokenRepo: dynamo.NewSignInTokenRepo(dynamoClient, cfg.DynamoTables.SignInTokens),
		SessionRepo:     dynamo.NewSessionRepo(dynamoClient, cfg.DynamoTables.Sessions),
		StudentRepo:     dynamo.NewStudentRepo(dynamoClient, cfg.DynamoTables.Students),
		RecruiterRepo:   dynamo.NewRecruiterRepo(dynamoClient, cfg.DynamoTables.Recruiters),
		InternshipRepo:  dynamo.NewInternshipRepo(dynamoClient, cfg.DynamoTables.Internships),
		ApplicationRepo: dynamo.NewApplicationRepo(dynamoClient, cfg.DynamoTables.InternshipApplications),
		ChatRoomRepo:    dynamo.NewChatRoomRepo(dynamoClient, cfg.DynamoTables.ChatRooms),
		ChatMessageRepo: dynamo.NewChatMessageRepo(dynamoClient, cfg.DynamoTables.ChatMessages),
		MentorshipRepo:  dynamo.NewMentorshipRepo(dynamoClient, cfg.DynamoTables.Mentorships),
		BadgeRepo:       dynamo.NewBadgeRepo(dynamoClient, cfg.DynamoTables.Badges),
		ResumeRepo:      dynamo.NewResumeRepo(dynamoClient, cfg.DynamoTables.Resumes),
		NotifRepo:       dynamo.NewNotificationRepo(dynamoClient, cfg.DynamoTables.Notifications),
		S3Store:         s3Store,
		Mailer:          mailer,
		Events:          events,
		JWTProvider:     jwtProvider,
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
