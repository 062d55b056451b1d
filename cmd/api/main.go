package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"gallery-backend/pkg/logger"
)

func main() {
	// .env is optional; production uses the process environment
	envErr := godotenv.Load()

	env := getEnv("APP_ENV", "development")
	logger.Init(env, getEnv("LOG_LEVEL", "info"))
	if envErr != nil {
		log.Info().Msg("No .env file found, using system environment variables")
	}

	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	log.Info().Str("env", env).Msg("Starting gallery API")

	if err := Serve(); err != nil {
		log.Fatal().Err(err).Msg("Server stopped with error")
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
