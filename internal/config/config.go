package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/checkin-bot/internal/pkg/utils"
	"github.com/joho/godotenv"
)

type Config struct {
	Database     DatabaseConfig
	JWT          JWTConfig
	App          AppConfig
	Storage      StorageConfig
	Admin        AdminConfig
	Geofence     GeofenceConfig
	Attendance   AttendanceConfig
	Conversation ConversationConfig
	Telegram     TelegramConfig
	AMQP         AMQPConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
	Timezone *time.Location
	// Locales lists the reply languages, in order, e.g. "zh-TW,vi".
	Locales        []string
	AllowedOrigins []string
}

// StorageConfig selects the record store: "postgres" or "memory".
type StorageConfig struct {
	Type string
}

type AdminConfig struct {
	Username     string
	PasswordHash string
}

// GeofenceConfig controls distance gating of clock events.
type GeofenceConfig struct {
	Enabled       bool
	Sites         []utils.Coordinate
	RadiusMeters  float64
	AuditRejected bool
	// MaxSampleAge rejects location samples older than this; zero accepts any age.
	MaxSampleAge time.Duration
}

type AttendanceConfig struct {
	CheckoutThreshold   time.Duration
	EmployeeIDMinDigits int
	EmployeeIDMaxDigits int
}

type ConversationConfig struct {
	StateTTL    time.Duration
	CleanupSpec string
}

type TelegramConfig struct {
	Token       string
	PollTimeout time.Duration
}

type AMQPConfig struct {
	URL      string
	Exchange string
}

func Load() (*Config, error) {
	// A missing .env is fine; real deployments pass the environment directly.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "checkin"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	loc, err := time.LoadLocation(getEnv("APP_TIMEZONE", "Asia/Taipei"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Timezone: loc,
		Locales:  getEnvSlice("REPLY_LOCALES", "zh-TW,vi"),

		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
	}

	config.Storage = StorageConfig{
		Type: getEnv("STORAGE_TYPE", "postgres"),
	}

	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "8h"),
	}

	config.Admin = AdminConfig{
		Username:     getEnv("ADMIN_USERNAME", "admin"),
		PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
	}

	// Geofence configuration
	geofenceEnabled, err := strconv.ParseBool(getEnv("GEOFENCE_ENABLED", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid GEOFENCE_ENABLED: %w", err)
	}
	sites, err := ParseSites(getEnv("GEOFENCE_SITES", ""))
	if err != nil {
		return nil, fmt.Errorf("invalid GEOFENCE_SITES: %w", err)
	}
	radius, err := strconv.ParseFloat(getEnv("GEOFENCE_RADIUS_METERS", "500"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid GEOFENCE_RADIUS_METERS: %w", err)
	}
	auditRejected, err := strconv.ParseBool(getEnv("GEOFENCE_AUDIT_REJECTED", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid GEOFENCE_AUDIT_REJECTED: %w", err)
	}
	maxSampleAge, err := time.ParseDuration(getEnv("GEOFENCE_MAX_SAMPLE_AGE", "0s"))
	if err != nil {
		return nil, fmt.Errorf("invalid GEOFENCE_MAX_SAMPLE_AGE: %w", err)
	}

	config.Geofence = GeofenceConfig{
		Enabled:       geofenceEnabled,
		Sites:         sites,
		RadiusMeters:  radius,
		AuditRejected: auditRejected,
		MaxSampleAge:  maxSampleAge,
	}

	// Attendance configuration
	threshold, err := time.ParseDuration(getEnv("CHECKOUT_THRESHOLD", "14h"))
	if err != nil {
		return nil, fmt.Errorf("invalid CHECKOUT_THRESHOLD: %w", err)
	}
	minDigits, err := strconv.Atoi(getEnv("EMPLOYEE_ID_MIN_DIGITS", "2"))
	if err != nil {
		return nil, fmt.Errorf("invalid EMPLOYEE_ID_MIN_DIGITS: %w", err)
	}
	maxDigits, err := strconv.Atoi(getEnv("EMPLOYEE_ID_MAX_DIGITS", "3"))
	if err != nil {
		return nil, fmt.Errorf("invalid EMPLOYEE_ID_MAX_DIGITS: %w", err)
	}

	config.Attendance = AttendanceConfig{
		CheckoutThreshold:   threshold,
		EmployeeIDMinDigits: minDigits,
		EmployeeIDMaxDigits: maxDigits,
	}

	stateTTL, err := time.ParseDuration(getEnv("CONVERSATION_STATE_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid CONVERSATION_STATE_TTL: %w", err)
	}
	config.Conversation = ConversationConfig{
		StateTTL:    stateTTL,
		CleanupSpec: getEnv("CONVERSATION_CLEANUP_CRON", "@hourly"),
	}

	pollTimeout, err := time.ParseDuration(getEnv("TELEGRAM_POLL_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid TELEGRAM_POLL_TIMEOUT: %w", err)
	}
	config.Telegram = TelegramConfig{
		Token:       getEnv("TELEGRAM_TOKEN", ""),
		PollTimeout: pollTimeout,
	}

	config.AMQP = AMQPConfig{
		URL:      getEnv("AMQP_URL", ""),
		Exchange: getEnv("AMQP_EXCHANGE", "attendance.recorded"),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Storage.Type {
	case "postgres":
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required")
		}
	case "memory":
	default:
		return fmt.Errorf("STORAGE_TYPE must be postgres or memory, got %q", c.Storage.Type)
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Admin.PasswordHash == "" {
		return fmt.Errorf("ADMIN_PASSWORD_HASH is required")
	}
	if c.Geofence.Enabled {
		if len(c.Geofence.Sites) == 0 {
			return fmt.Errorf("GEOFENCE_SITES is required when GEOFENCE_ENABLED is true")
		}
		if c.Geofence.RadiusMeters <= 0 {
			return fmt.Errorf("GEOFENCE_RADIUS_METERS must be positive")
		}
	}
	if c.Attendance.CheckoutThreshold <= 0 {
		return fmt.Errorf("CHECKOUT_THRESHOLD must be positive")
	}
	if c.Attendance.EmployeeIDMinDigits < 1 || c.Attendance.EmployeeIDMaxDigits < c.Attendance.EmployeeIDMinDigits {
		return fmt.Errorf("EMPLOYEE_ID_MIN_DIGITS/EMPLOYEE_ID_MAX_DIGITS form an invalid range")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// ParseSites parses "lat:lon,lat:lon" into coordinates.
func ParseSites(value string) ([]utils.Coordinate, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	var sites []utils.Coordinate
	for _, raw := range strings.Split(value, ",") {
		parts := strings.Split(strings.TrimSpace(raw), ":")
		if len(parts) != 2 {
			return nil, fmt.Errorf("site %q must be lat:lon", raw)
		}
		lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil {
			return nil, fmt.Errorf("site %q: invalid latitude: %w", raw, err)
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("site %q: invalid longitude: %w", raw, err)
		}
		if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
			return nil, fmt.Errorf("site %q is out of range", raw)
		}
		sites = append(sites, utils.Coordinate{Latitude: lat, Longitude: lon})
	}
	return sites, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string, fallback string) []string {
	value := getEnv(env, fallback)
	if value == "" {
		return []string{}
	}
	var result []string
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			result = append(result, v)
		}
	}
	return result
}
