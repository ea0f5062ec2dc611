package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"delivery-insights/models"
	"delivery-insights/utils"
)

// Pages selectable with PAGE.
const (
	PageCompany     = "company"
	PageCouriers    = "couriers"
	PageRestaurants = "restaurants"
	PageAll         = "all"
)

// Sources selectable with SOURCE.
const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
)

// DefaultCutoff is the sidebar's initial date limit.
var DefaultCutoff = time.Date(2022, time.March, 13, 0, 0, 0, 0, time.UTC)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Source       string
	DatasetPath  string
	CSVDelimiter rune
	StrictMode   bool

	Page    string
	Cutoff  time.Time
	Traffic []models.TrafficDensity
	Weather []models.Weather
	TopK    int

	CSVExportDir   string
	XLSXExportPath string
	Watch          bool
	LogLevel       string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string
	SeedPostgres     bool
	MaxRetries       int
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	traffic := make([]models.TrafficDensity, 0, len(models.TrafficDensities))
	for _, t := range getEnvList("TRAFFIC_FILTER", trafficNames()) {
		traffic = append(traffic, models.TrafficDensity(t))
	}
	weather := make([]models.Weather, 0, len(models.Weathers))
	for _, w := range getEnvList("WEATHER_FILTER", weatherNames()) {
		weather = append(weather, models.Weather(w))
	}

	return &Config{
		Source:       strings.ToLower(getEnv("SOURCE", SourceCSV)),
		DatasetPath:  getEnv("DATASET_PATH", "./dataset/train.csv"),
		CSVDelimiter: getEnvRune("CSV_DELIMITER", ','),
		StrictMode:   getEnvBool("STRICT_MODE", true),

		Page:    strings.ToLower(getEnv("PAGE", PageAll)),
		Cutoff:  getEnvDate("CUTOFF_DATE", DefaultCutoff),
		Traffic: traffic,
		Weather: weather,
		TopK:    getEnvInt("TOP_K", 10),

		CSVExportDir:   getEnv("CSV_EXPORT_DIR", ""),
		XLSXExportPath: getEnv("XLSX_EXPORT_PATH", ""),
		Watch:          getEnvBool("WATCH", false),
		LogLevel:       getEnv("LOG_LEVEL", "info"),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "cury"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "cury123"),
		PostgresDB:       getEnv("POSTGRES_DB", "deliveries"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		SeedPostgres:     getEnvBool("SEED_POSTGRES", false),
		MaxRetries:       getEnvInt("MAX_RETRIES", 5),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

// Filter returns the sidebar state described by the configuration.
func (c *Config) Filter() models.Filter {
	return models.Filter{Cutoff: c.Cutoff, Traffic: c.Traffic, Weather: c.Weather}
}

// Pages expands Page into the list of pages to render.
func (c *Config) Pages() []string {
	if c.Page == PageAll {
		return []string{PageCompany, PageCouriers, PageRestaurants}
	}
	return []string{c.Page}
}

func trafficNames() []string {
	out := make([]string, len(models.TrafficDensities))
	for i, t := range models.TrafficDensities {
		out[i] = string(t)
	}
	return out
}

func weatherNames() []string {
	out := make([]string, len(models.Weathers))
	for i, w := range models.Weathers {
		out[i] = string(w)
	}
	return out
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}

func getEnvRune(key string, fallback rune) rune {
	if val := os.Getenv(key); val != "" {
		if val == `\t` {
			return '\t'
		}
		return []rune(val)[0]
	}
	return fallback
}

// getEnvDate parses a DD-MM-YYYY value.
func getEnvDate(key string, fallback time.Time) time.Time {
	if val := os.Getenv(key); val != "" {
		t, err := time.ParseInLocation(models.DateLayout, val, time.UTC)
		if err == nil {
			return t
		}
		log.Printf("[config] Ignoring %s=%q: %v", key, val, err)
	}
	return fallback
}

// getEnvList splits a comma separated value, dropping blanks and repeats. An
// explicitly empty list is written as "-".
func getEnvList(key string, fallback []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	if val == "-" {
		return []string{}
	}
	values := utils.NewSet()
	for _, part := range strings.Split(val, ",") {
		if p := strings.TrimSpace(part); p != "" {
			values.Add(p)
		}
	}
	return values.Values()
}
