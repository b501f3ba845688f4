package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverMemory   = "memory"
)

type Config struct {
	Port string

	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBName     string
	DBPassword string
	DBSSLMode  string
	DBDebug    bool

	// JWTSecret verifies identity tokens. Empty means every caller is
	// anonymous and sales are recorded under the default salesperson.
	JWTSecret   string
	CORSOrigins []string

	RedisAddr         string
	RedisPassword     string
	DashboardCacheTTL time.Duration
	LowStockThreshold int
}

// LoadConfig reads the environment. Call godotenv.Load first to pick up a
// .env file.
func LoadConfig() Config {
	driver := strings.ToLower(getenv("DB_DRIVER", DriverPostgres))
	defaultPort := "5432"
	if driver == DriverMySQL {
		defaultPort = "3306"
	}

	return Config{
		Port:              getenv("PORT", "8080"),
		DBDriver:          driver,
		DBHost:            getenv("DB_HOST", "localhost"),
		DBPort:            getenv("DB_PORT", defaultPort),
		DBUser:            getenv("DB_USER", ""),
		DBName:            getenv("DB_NAME", "inventory"),
		DBPassword:        os.Getenv("DB_PASSWORD"),
		DBSSLMode:         getenv("DB_SSLMODE", "disable"),
		DBDebug:           getbool("DB_DEBUG", false),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		CORSOrigins:       splitList(getenv("CORS_ORIGINS", "http://localhost:3000")),
		RedisAddr:         getenv("REDIS_ADDR", ""),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		DashboardCacheTTL: getduration("DASHBOARD_CACHE_TTL", 30*time.Second),
		LowStockThreshold: getint("LOW_STOCK_THRESHOLD", 5),
	}
}

// DSN returns the gorm dialect name and connection string for the driver.
func (c Config) DSN() (string, string, error) {
	switch c.DBDriver {
	case DriverPostgres:
		return DriverPostgres, fmt.Sprintf("host=%s port=%s user=%s dbname=%s password=%s sslmode=%s",
			c.DBHost, c.DBPort, c.DBUser, c.DBName, c.DBPassword, c.DBSSLMode), nil
	case DriverMySQL:
		return DriverMySQL, fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
			c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName), nil
	default:
		return "", "", fmt.Errorf("no DSN for driver %q", c.DBDriver)
	}
}

func getenv(k, def string) string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	return v
}

func getbool(k string, def bool) bool {
	v := strings.ToLower(getenv(k, ""))
	if v == "" {
		return def
	}
	return v == "1" || v == "true" || v == "yes"
}

func getint(k string, def int) int {
	n, err := strconv.Atoi(getenv(k, ""))
	if err != nil {
		return def
	}
	return n
}

func getduration(k string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(getenv(k, ""))
	if err != nil {
		return def
	}
	return d
}

func splitList(csv string) []string {
	var out []string
	for _, s := range strings.Split(csv, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
