package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type Config struct {
	Server    ServerConfig
	Storage   StorageConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	Observ    ObservabilityConfig
	WhatsApp  WhatsAppConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port     string
	Env      string
	LogLevel string
}

type StorageConfig struct {
	Driver      string
	DatabaseURL string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type KafkaConfig struct {
	Enabled       bool
	Brokers       []string
	TopicOrder    string
	ConsumerGroup string
}

type ObservabilityConfig struct {
	TracingEnabled bool
	JaegerEndpoint string
}

// WhatsAppConfig seeds the gateway settings when none are stored yet
type WhatsAppConfig struct {
	BaseURL        string
	APIKey         string
	SenderPhone    string
	WelcomeCredits int
}

type RateLimitConfig struct {
	RPS   float64
	Burst int
}

// Load reads .env (if present) and the process environment
func Load() *Config {
	_ = godotenv.Load()
	return FromViper(viper.New())
}

// FromViper builds the config from v after applying defaults
func FromViper(v *viper.Viper) *Config {
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STORAGE_DRIVER", "sqlite")
	v.SetDefault("DATABASE_URL", "storefront.db")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("KAFKA_ENABLED", false)
	v.SetDefault("KAFKA_BROKERS", "localhost:9092")
	v.SetDefault("KAFKA_TOPIC_ORDER_EVENTS", "storefront-order-events")
	v.SetDefault("KAFKA_CONSUMER_GROUP", "storefrontctl")
	v.SetDefault("TRACING_ENABLED", false)
	v.SetDefault("JAEGER_ENDPOINT", "http://localhost:14268/api/traces")
	v.SetDefault("WHATSAPP_BASE_URL", "https://api.starsender.online/api")
	v.SetDefault("WHATSAPP_API_KEY", "")
	v.SetDefault("WHATSAPP_SENDER_PHONE", "")
	v.SetDefault("WELCOME_CREDITS", 0)
	v.SetDefault("RATE_LIMIT_RPS", 10)
	v.SetDefault("RATE_LIMIT_BURST", 20)

	cfg := &Config{
		Server: ServerConfig{
			Port:     v.GetString("PORT"),
			Env:      v.GetString("ENV"),
			LogLevel: v.GetString("LOG_LEVEL"),
		},
		Storage: StorageConfig{
			Driver:      strings.ToLower(v.GetString("STORAGE_DRIVER")),
			DatabaseURL: v.GetString("DATABASE_URL"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Kafka: KafkaConfig{
			Enabled:       v.GetBool("KAFKA_ENABLED"),
			Brokers:       splitList(v.GetString("KAFKA_BROKERS")),
			TopicOrder:    v.GetString("KAFKA_TOPIC_ORDER_EVENTS"),
			ConsumerGroup: v.GetString("KAFKA_CONSUMER_GROUP"),
		},
		Observ: ObservabilityConfig{
			TracingEnabled: v.GetBool("TRACING_ENABLED"),
			JaegerEndpoint: v.GetString("JAEGER_ENDPOINT"),
		},
		WhatsApp: WhatsAppConfig{
			BaseURL:        v.GetString("WHATSAPP_BASE_URL"),
			APIKey:         v.GetString("WHATSAPP_API_KEY"),
			SenderPhone:    v.GetString("WHATSAPP_SENDER_PHONE"),
			WelcomeCredits: v.GetInt("WELCOME_CREDITS"),
		},
		RateLimit: RateLimitConfig{
			RPS:   v.GetFloat64("RATE_LIMIT_RPS"),
			Burst: v.GetInt("RATE_LIMIT_BURST"),
		},
	}

	zap.L().Info("Config loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("port", cfg.Server.Port),
		zap.String("storage", cfg.Storage.Driver))
	return cfg
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
