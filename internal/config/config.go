package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables
	S3BucketName   string // product image bucket
	SNSTopicARN    string // ops topic for contact-form notifications

	// AuthSecret signs session tokens. It has no default on purpose:
	// the process must not start with an embedded or missing key.
	AuthSecret        string
	SessionExpiryDays int

	SMTPHost     string
	SMTPPort     int
	SMTPFrom     string
	SMTPFromName string
	SMTPUsername string
	SMTPPassword string

	// ShopEmail receives contact-form notifications and test order emails.
	ShopEmail string

	AllowedOrigins []string // CORS allowed origins
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	OtpCodes string
	Orders   string
	Contacts string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort: getEnv("APP_PORT", "3001"),
		AppEnv:  getEnv("APP_ENV", "development"),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			OtpCodes: getEnv("DYNAMO_TABLE_OTP_CODES", "otp_codes"),
			Orders:   getEnv("DYNAMO_TABLE_ORDERS", "orders"),
			Contacts: getEnv("DYNAMO_TABLE_CONTACTS", "contacts"),
		},
		S3BucketName: getEnv("S3_BUCKET_NAME", "lamia-product-images"),
		SNSTopicARN:  getEnv("SNS_TOPIC_ARN", ""),

		AuthSecret:        os.Getenv("AUTH_SECRET"),
		SessionExpiryDays: getEnvInt("SESSION_EXPIRY_DAYS", 7),

		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnvInt("SMTP_PORT", 1025),
		SMTPFrom:     getEnv("SMTP_FROM", "noreply@lamiarosa.com"),
		SMTPFromName: getEnv("SMTP_FROM_NAME", "La Mia Rosa"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),

		ShopEmail: getEnv("SHOP_EMAIL", "shop@lamiarosa.com"),

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
