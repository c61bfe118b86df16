package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/thanhpk/randstr"
)

// Config holds the application's configuration values.
type Config struct {
	HostIP            string // Host IP for the server
	RESTPort          int    // Port for the REST API
	GinMode           string // Mode for the Gin framework (e.g., release, debug, test)
	JWTSecret         string // Secret key for session token signing
	JWTIssuer         string // Issuer claim for session tokens
	MaxMazeDimension  int    // Upper bound for maze height and width
	SessionTTLSeconds int    // Lifetime of a maze session, counted from its creation
	MaxSessions       int    // Number of sessions kept in memory
	ThumbnailSize     int    // Longest side of image thumbnails in pixels, 0 disables them
	ImageRetention    int    // Number of images kept before the oldest are pruned
	RedisAddr         string // Address of the Redis retention index, empty disables it
	RedisPassword     string // Password for Redis
	DBHost            string // Hostname or IP address for the render catalog, empty disables it
	DBPort            int    // Port number for the database
	DBUser            string // Username for the database
	DBPassword        string // Password for the database
	DBName            string // Name of the database
}

// Envs holds the application's configuration loaded from environment variables.
var Envs = initConfig()

// initConfig initializes and returns the application configuration.
// It loads environment variables from a .env file.
func initConfig() Config {
	// Load .env file if available
	if err := godotenv.Load(); err != nil {
		log.Printf("[APP] [INFO] .env file not found or could not be loaded: %v", err)
	}

	return Config{
		HostIP:            getEnvWithDefault("HOST_IP", "0.0.0.0"),
		RESTPort:          getEnvAsIntWithDefault("REST_PORT", 8080),
		GinMode:           getEnvWithDefault("GIN_MODE", "release"),
		JWTSecret:         jwtSecret(),
		JWTIssuer:         getEnvWithDefault("JWT_ISSUER", "labyrinth-api"),
		MaxMazeDimension:  getEnvAsIntWithDefault("MAX_MAZE_DIMENSION", 50),
		SessionTTLSeconds: getEnvAsIntWithDefault("SESSION_TTL_SECONDS", 3600),
		MaxSessions:       getEnvAsIntWithDefault("MAX_SESSIONS", 1024),
		ThumbnailSize:     getEnvAsIntWithDefault("THUMBNAIL_SIZE", 160),
		ImageRetention:    getEnvAsIntWithDefault("IMAGE_RETENTION", 100),
		RedisAddr:         getEnvWithDefault("REDIS_ADDR", ""),
		RedisPassword:     getEnvWithDefault("REDIS_PASSWORD", ""),
		DBHost:            getEnvWithDefault("DB_HOST", ""),
		DBPort:            getEnvAsIntWithDefault("DB_PORT", 27017),
		DBUser:            getEnvWithDefault("DB_USER", ""),
		DBPassword:        getEnvWithDefault("DB_PASS", ""),
		DBName:            getEnvWithDefault("DB_NAME", "labyrinth"),
	}
}

// jwtSecret returns JWT_SECRET, or a per-process random secret when it is not set.
// Sessions live in memory, so tokens signed with a random secret die with the process anyway.
func jwtSecret() string {
	if value, exists := os.LookupEnv("JWT_SECRET"); exists && value != "" {
		return value
	}
	log.Printf("[APP] [WARNING] JWT_SECRET is not set, using a random secret")
	return randstr.Hex(32)
}

// getEnvAsIntWithDefault retrieves the value of an environment variable as an integer, or the default if not set.
// It logs a fatal error if the value cannot be parsed.
func getEnvAsIntWithDefault(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists || valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be an integer: %v", key, err)
	}
	return value
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
