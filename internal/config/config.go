package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string

	DynamoTables DynamoTables
	S3BucketName string
	SNSTopicARN  string // portal event topic; empty disables publishing

	JWTPrivateKeyPath string
	JWTPublicKeyPath  string
	JWTExpiry         time.Duration
	RefreshTokenDur   time.Duration

	SMTPHost     string
	SMTPPort     string
	SMTPFrom     string
	SMTPUsername string
	SMTPPassword string

	// Registration flow.
	StudentEmailDomain string        // required suffix for student signups
	OTPExpiry          time.Duration // lifetime of an issued code
	SignInLinkBaseURL  string        // front-end route the magic link points at
	SignInTokenExpiry  time.Duration

	AllowedOrigins []string // CORS allowed origins
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	OTPVerifications       string
	Accounts               string
	SignInTokens           string
	Sessions               string
	Students               string
	Recruiters             string
	Internships            string
	InternshipApplications string
	ChatRooms              string
	ChatMessages           string
	Mentorships            string
	Badges                 string
	Resumes                string
	Notifications          string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort: getEnv("APP_PORT", "3000"),
		AppEnv:  getEnv("APP_ENV", "development"),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),

		DynamoTables: DynamoTables{
			OTPVerifications:       getEnv("DYNAMO_TABLE_OTP_VERIFICATIONS", "otp_verifications"),
			Accounts:               getEnv("DYNAMO_TABLE_ACCOUNTS", "accounts"),
			SignInTokens:           getEnv("DYNAMO_TABLE_SIGNIN_TOKENS", "signin_tokens"),
			Sessions:               getEnv("DYNAMO_TABLE_SESSIONS", "sessions"),
			Students:               getEnv("DYNAMO_TABLE_STUDENTS", "students"),
			Recruiters:             getEnv("DYNAMO_TABLE_RECRUITERS", "recruiters"),
			Internships:            getEnv("DYNAMO_TABLE_INTERNSHIPS", "internships"),
			InternshipApplications: getEnv("DYNAMO_TABLE_INTERNSHIP_APPLICATIONS", "internship_applications"),
			ChatRooms:              getEnv("DYNAMO_TABLE_CHAT_ROOMS", "chat_rooms"),
			ChatMessages:           getEnv("DYNAMO_TABLE_CHAT_MESSAGES", "chat_messages"),
			Mentorships:            getEnv("DYNAMO_TABLE_MENTORSHIPS", "mentorships"),
			Badges:                 getEnv("DYNAMO_TABLE_BADGES", "badges"),
			Resumes:                getEnv("DYNAMO_TABLE_RESUMES", "resumes"),
			Notifications:          getEnv("DYNAMO_TABLE_NOTIFICATIONS", "notifications"),
		},
		S3BucketName: getEnv("S3_BUCKET_NAME", "vitern-resumes"),
		SNSTopicARN:  getEnv("SNS_TOPIC_ARN", ""),

		JWTPrivateKeyPath: getEnv("JWT_PRIVATE_KEY_PATH", "./private_key.pem"),
		JWTPublicKeyPath:  getEnv("JWT_PUBLIC_KEY_PATH", "./public_key.pem"),
		JWTExpiry:         time.Duration(getEnvInt("JWT_EXPIRY_DAYS", 7)) * 24 * time.Hour,
		RefreshTokenDur:   time.Duration(getEnvInt("REFRESH_TOKEN_EXPIRY_DAYS", 30)) * 24 * time.Hour,

		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnv("SMTP_PORT", "1025"),
		SMTPFrom:     getEnv("SMTP_FROM", "VITERN <noreply@vitern.dev>"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),

		StudentEmailDomain: getEnv("STUDENT_EMAIL_DOMAIN", "@vitstudent.ac.in"),
		OTPExpiry:          time.Duration(getEnvInt("OTP_EXPIRY_MINUTES", 10)) * time.Minute,
		SignInLinkBaseURL:  getEnv("SIGNIN_LINK_BASE_URL", "http://localhost:5173/auth/callback"),
		SignInTokenExpiry:  time.Duration(getEnvInt("SIGNIN_TOKEN_EXPIRY_MINUTES", 15)) * time.Minute,

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
