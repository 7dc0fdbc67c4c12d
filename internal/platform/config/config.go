package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIPort string

	JWTKey      []byte
	JWTIssuer   string
	JWTAudience string
	JWTExp      time.Duration

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	DBConnStr  string

	S3Region          string
	S3Bucket          string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3Endpoint        string
	S3PublicBaseURL   string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
	SMTPFromName string
	SMTPUseTLS   bool

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	ResetCodeTTL        time.Duration
	ResetRequestLimit   int
	ResetRequestWindow  time.Duration
	ExternalCallTimeout time.Duration
}

// Load reads .env (if present) and the process environment into a Config.
// The result is passed explicitly into constructors; nothing reads the
// environment after startup.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg := &Config{
		APIPort:     getEnv("API_PORT", "8080"),
		JWTKey:      []byte(getEnv("JWT_SECRET", "defaultsecret")),
		JWTIssuer:   getEnv("JWT_ISSUER", "portfolio_pro"),
		JWTAudience: getEnv("JWT_AUDIENCE", "portfolio_pro_clients"),
		JWTExp:      time.Duration(getEnvAsInt("JWT_EXPIRATION_HOURS", 168)) * time.Hour,

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "user"),
		DBPassword: getEnv("DB_PASSWORD", "password"),
		DBName:     getEnv("DB_NAME", "portfolio_pro_db"),
		DBSslMode:  getEnv("DB_SSLMODE", "disable"),

		S3Region:          getEnv("S3_REGION", "us-east-1"),
		S3Bucket:          getEnv("S3_BUCKET", "portfolio-assets"),
		S3AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
		S3SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
		S3Endpoint:        getEnv("S3_ENDPOINT", ""),
		S3PublicBaseURL:   getEnv("S3_PUBLIC_BASE_URL", ""),

		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnvAsInt("SMTP_PORT", 587),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:     getEnv("SMTP_FROM", "noreply@portfoliopro.com"),
		SMTPFromName: getEnv("SMTP_FROM_NAME", "Portfolio Pro"),
		SMTPUseTLS:   getEnvAsBool("SMTP_USE_TLS", false),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		ResetCodeTTL:        time.Duration(getEnvAsInt("RESET_CODE_TTL_MINUTES", 15)) * time.Minute,
		ResetRequestLimit:   getEnvAsInt("RESET_REQUEST_LIMIT", 5),
		ResetRequestWindow:  time.Duration(getEnvAsInt("RESET_REQUEST_WINDOW_MINUTES", 15)) * time.Minute,
		ExternalCallTimeout: time.Duration(getEnvAsInt("EXTERNAL_CALL_TIMEOUT_SECONDS", 30)) * time.Second,
	}

	cfg.DBConnStr = "host=" + cfg.DBHost +
		" port=" + cfg.DBPort +
		" user=" + cfg.DBUser +
		" password=" + cfg.DBPassword +
		" dbname=" + cfg.DBName +
		" sslmode=" + cfg.DBSslMode

	return cfg
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return fallback
}
