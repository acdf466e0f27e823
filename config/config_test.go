package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg := FromViper(viper.New())

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, "storefront.db", cfg.Storage.DatabaseURL)
	assert.False(t, cfg.Kafka.Enabled)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "https://api.starsender.online/api", cfg.WhatsApp.BaseURL)
	assert.Equal(t, 0, cfg.WhatsApp.WelcomeCredits)
	assert.Equal(t, float64(10), cfg.RateLimit.RPS)
}

func TestFromViper_Environment(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "Postgres")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("WHATSAPP_API_KEY", "secret")
	t.Setenv("WELCOME_CREDITS", "25")
	t.Setenv("RATE_LIMIT_RPS", "2.5")

	cfg := FromViper(viper.New())

	assert.Equal(t, "postgres", cfg.Storage.Driver)
	assert.True(t, cfg.Kafka.Enabled)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "secret", cfg.WhatsApp.APIKey)
	assert.Equal(t, 25, cfg.WhatsApp.WelcomeCredits)
	assert.Equal(t, 2.5, cfg.RateLimit.RPS)
}
