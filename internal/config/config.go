// Package config reads the server configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// HTTP server
	Port               int
	CORSAllowedOrigins []string

	// Contacts store
	DBPath         string
	ContactsImport string

	// Payee of every UPI link
	UPIScheme       string
	UPIPayeeAddress string
	UPIPayeeName    string

	// Dispatch transports
	ChatAppID           string
	SMSGatewayURL       string
	SMSGatewayToken     string
	SMSIncludeUPILink   bool
	DiscordWebhookID    string
	DiscordWebhookToken string

	// Sessions idle for longer than this are discarded.
	SessionTTL time.Duration
}

// Load reads .env if present (non-fatal if missing), then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DBPath:              getEnvDefault("DB_PATH", "./data/contacts.db"),
		ContactsImport:      os.Getenv("CONTACTS_IMPORT"),
		UPIScheme:           getEnvDefault("UPI_SCHEME", "upi"),
		UPIPayeeAddress:     strings.TrimSpace(os.Getenv("UPI_PAYEE_ADDRESS")),
		UPIPayeeName:        os.Getenv("UPI_PAYEE_NAME"),
		ChatAppID:           getEnvDefault("CHAT_APP_ID", "com.whatsapp"),
		SMSGatewayURL:       os.Getenv("SMS_GATEWAY_URL"),
		SMSGatewayToken:     os.Getenv("SMS_GATEWAY_TOKEN"),
		DiscordWebhookID:    os.Getenv("DISCORD_WEBHOOK_ID"),
		DiscordWebhookToken: os.Getenv("DISCORD_WEBHOOK_TOKEN"),
		CORSAllowedOrigins:  splitList(getEnvDefault("CORS_ALLOWED_ORIGINS", "*")),
	}

	port, err := strconv.Atoi(getEnvDefault("PORT", "8080"))
	if err != nil || port <= 0 || port > 65535 {
		return nil, fmt.Errorf("PORT must be a valid port number, got %q", os.Getenv("PORT"))
	}
	cfg.Port = port

	ttl, err := time.ParseDuration(getEnvDefault("SESSION_TTL", "2h"))
	if err != nil {
		return nil, fmt.Errorf("SESSION_TTL: %w", err)
	}
	cfg.SessionTTL = ttl

	if v := os.Getenv("SMS_INCLUDE_UPI_LINK"); v != "" {
		include, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("SMS_INCLUDE_UPI_LINK: %w", err)
		}
		cfg.SMSIncludeUPILink = include
	}

	if cfg.UPIPayeeAddress == "" {
		return nil, fmt.Errorf("UPI_PAYEE_ADDRESS is required")
	}
	if (cfg.DiscordWebhookID == "") != (cfg.DiscordWebhookToken == "") {
		return nil, fmt.Errorf("DISCORD_WEBHOOK_ID and DISCORD_WEBHOOK_TOKEN must be set together")
	}

	return cfg, nil
}

func getEnvDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
