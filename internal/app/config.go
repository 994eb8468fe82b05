package app

import (
	"time"

	"github.com/fairwaylabs/coursedesk-backend/internal/logger"
	"github.com/fairwaylabs/coursedesk-backend/internal/server"
	"github.com/fairwaylabs/coursedesk-backend/internal/utils"
)

type Config struct {
	Port               string
	JWTSecretKey       string
	AdminUsername      string
	AdminPassword      string
	AdminPasswordHash  string
	SessionTTL         time.Duration
	CORSAllowOrigins   []string
	OtelEnabled        bool
	AppEnv             string
	Version            string
}

func LoadConfig(log *logger.Logger) Config {
	sessionTTLSeconds := utils.GetEnvAsInt("SESSION_TTL", 28800, log)
	return Config{
		Port:              utils.GetEnv("PORT", "8080", log),
		JWTSecretKey:      utils.GetEnv("JWT_SECRET_KEY", "", log),
		AdminUsername:     utils.GetEnv("ADMIN_USERNAME", "", log),
		AdminPassword:     utils.GetEnv("ADMIN_PASSWORD", "", log),
		AdminPasswordHash: utils.GetEnv("ADMIN_PASSWORD_BCRYPT", "", log),
		SessionTTL:        time.Duration(sessionTTLSeconds) * time.Second,
		CORSAllowOrigins:  server.SplitOrigins(utils.GetEnv("CORS_ALLOW_ORIGINS", "", log)),
		OtelEnabled:       utils.GetEnvAsBool("OTEL_ENABLED", false, log),
		AppEnv:            utils.GetEnv("APP_ENV", "development", log),
		Version:           utils.GetEnv("APP_VERSION", "dev", log),
	}
}
