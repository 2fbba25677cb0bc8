package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env                 string
	Port                string
	DatabaseURL         string // Postgres DSN; empty means volatile in-process sqlite
	RedisURL            string // optional; health traffic counters disabled without it
	RegistrarURL        string // base URL of the IP-asset registrar; empty means offline placeholders
	RegistrarAPIKey     string
	FrontendURLEndsWith string // optional CORS origin suffix restriction
	SeedDemoData        bool
}

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	port := viper.GetString("PORT")
	if port == "" {
		port = "5000"
	}
	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	dbURL := viper.GetString("DATABASE_URL")
	if env == "test" {
		dbURL = viper.GetString("DATABASE_URL_TEST")
	}

	return &Config{
		Env:                 env,
		Port:                port,
		DatabaseURL:         dbURL,
		RedisURL:            viper.GetString("REDIS_URL"),
		RegistrarURL:        viper.GetString("REGISTRAR_URL"),
		RegistrarAPIKey:     viper.GetString("REGISTRAR_API_KEY"),
		FrontendURLEndsWith: viper.GetString("FRONTEND_URL_ENDS_WITH"),
		SeedDemoData:        strings.EqualFold(viper.GetString("SEED_DEMO_DATA"), "true"),
	}, nil
}
