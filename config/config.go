package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port        string
	CorsOrigins string

	DBDriver    string // postgres, mysql, sqlite
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	SeedCatalog bool

	JWTKey             string
	SessionIdleMinutes int
	PBKDF2Iterations   int

	PassThreshold      float64
	QuickCheckPrefixes []string
	QuickCheckSize     int
	FullTestSize       int
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:        getEnv("PORT", "3000"),
		CorsOrigins: getEnv("CORS_ORIGINS", "*"),

		DBDriver:    strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", ""),
		DBUser:      getEnv("DB_USER", ""),
		DBPassword:  getEnv("DB_PASSWORD", ""),
		DBName:      getEnv("DB_NAME", "pythonista"),
		SeedCatalog: getEnvBool("SEED_CATALOG", true),

		JWTKey:             getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SessionIdleMinutes: getEnvInt("SESSION_IDLE_MINUTES", 10),
		PBKDF2Iterations:   getEnvInt("PBKDF2_ITERATIONS", 10000),

		PassThreshold:      getEnvFloat("PASS_THRESHOLD", 60),
		QuickCheckPrefixes: getEnvList("QUICK_CHECK_PREFIXES", []string{"C", "Q"}),
		QuickCheckSize:     getEnvPositiveInt("QUICK_CHECK_SIZE", 3),
		FullTestSize:       getEnvPositiveInt("FULL_TEST_SIZE", 6),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.DBDriver == "sqlite" {
		log.Println("Warning: Using the sqlite driver. Set DB_DRIVER=postgres or DB_DRIVER=mysql in production.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}

// getEnvPositiveInt is getEnvInt for values that must be greater than zero
func getEnvPositiveInt(key string, defaultValue int) int {
	value := getEnvInt(key, defaultValue)
	if value <= 0 {
		log.Printf("Environment variable %s must be positive, using %d", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Printf("Error converting environment variable %s to float: %v", key, err)
		return defaultValue
	}
	return f
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to bool: %v", key, err)
		return defaultValue
	}
	return b
}

// getEnvList splits a comma separated variable, dropping empty items.
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
