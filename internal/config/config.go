package config

import (
	"fmt"
	"log"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	ServerPort string

	JWTSecret string
	JWTIssuer string
	JWTTTL    time.Duration

	IdentityAPIURL string
	IdentityAPIKey string

	LogLevel    string
	AutoMigrate bool
}

var defaults = map[string]any{
	"DB_HOST":          "localhost",
	"DB_PORT":          "5432",
	"DB_USER":          "syncboard",
	"DB_PASSWORD":      "syncboard",
	"DB_NAME":          "syncboard",
	"DB_SSLMODE":       "disable",
	"SERVER_PORT":      "8080",
	"JWT_SECRET":       "supersecretkey",
	"JWT_ISSUER":       "syncboard",
	"JWT_TTL":          "24h",
	"IDENTITY_API_URL": "https://api.clerk.com/v1",
	"IDENTITY_API_KEY": "",
	"LOG_LEVEL":        "info",
	"AUTO_MIGRATE":     false,
}

// Load reads .env when present, then environment variables, then an optional
// config file named by SYNCBOARD_CONFIG. Environment wins over the file.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, using system environment variables")
	}

	v := newViper()
	if path := v.GetString("SYNCBOARD_CONFIG"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			log.Printf("⚠️  Could not read config file %s: %v", path, err)
		}
	}

	return fromViper(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func fromViper(v *viper.Viper) *Config {
	ttl := v.GetDuration("JWT_TTL")
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return &Config{
		DBHost:         v.GetString("DB_HOST"),
		DBPort:         v.GetString("DB_PORT"),
		DBUser:         v.GetString("DB_USER"),
		DBPassword:     v.GetString("DB_PASSWORD"),
		DBName:         v.GetString("DB_NAME"),
		DBSSLMode:      v.GetString("DB_SSLMODE"),
		ServerPort:     v.GetString("SERVER_PORT"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		JWTIssuer:      v.GetString("JWT_ISSUER"),
		JWTTTL:         ttl,
		IdentityAPIURL: strings.TrimRight(v.GetString("IDENTITY_API_URL"), "/"),
		IdentityAPIKey: v.GetString("IDENTITY_API_KEY"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		AutoMigrate:    v.GetBool("AUTO_MIGRATE"),
	}
}

// DSN is the gorm/pgx connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// MigrateURL is the database URL understood by the migrate pgx/v5 driver.
// Credentials are escaped so any password is accepted.
func (c *Config) MigrateURL() string {
	u := url.URL{
		Scheme:   "pgx5",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     net.JoinHostPort(c.DBHost, c.DBPort),
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": {c.DBSSLMode}}.Encode(),
	}
	return u.String()
}
