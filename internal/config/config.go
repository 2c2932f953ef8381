package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env             string
	Port            string
	DatabaseDSN     string // full DSN; falls back to DB_HOST/DB_USER/DB_PASSWORD/DB_NAME
	RedisURL        string // optional; role lookups are uncached when empty
	FrontendOrigin  string // CORS origin, same single-origin policy as the Express app
	StripeSecretKey string
	GeocodingAPIKey string // passed through to the frontend build, never used server-side
}

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	port := viper.GetString("PORT")
	if port == "" {
		port = "3000"
	}
	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	dsn := viper.GetString("DATABASE_DSN")
	if dsn == "" {
		dsn = mysqlDSN(
			viper.GetString("DB_USER"),
			viper.GetString("DB_PASSWORD"),
			viper.GetString("DB_HOST"),
			viper.GetString("DB_NAME"),
		)
	}

	origin := viper.GetString("FRONTEND_ORIGIN")
	if origin == "" {
		origin = "http://localhost:3001"
	}

	return &Config{
		Env:             env,
		Port:            port,
		DatabaseDSN:     dsn,
		RedisURL:        viper.GetString("REDIS_URL"),
		FrontendOrigin:  origin,
		StripeSecretKey: viper.GetString("STRIPE_SECRET_KEY"),
		GeocodingAPIKey: viper.GetString("GEOCODING_API_KEY"),
	}, nil
}

// mysqlDSN assembles a go-sql-driver DSN from the discrete credential vars
// the Express _credentials.js carried. Returns "" when the host is unset so
// callers can treat the database as unconfigured (e.g. in tests).
func mysqlDSN(user, password, host, name string) string {
	if host == "" {
		return ""
	}
	auth := user
	if password != "" {
		auth = fmt.Sprintf("%s:%s", user, password)
	}
	return fmt.Sprintf("%s@tcp(%s:3306)/%s?charset=utf8mb4&parseTime=true&loc=UTC", auth, host, name)
}
