package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func Load() App {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("could not read .env", "err", err)
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("JWT_SECRET", "local_dev_secret")
	v.SetDefault("JWT_TTL_HOURS", 24)
	v.SetDefault("APP_ENV", "dev")
	v.SetDefault("PAYMENT_API_URL", "https://api.xendit.co")
	v.SetDefault("PAYMENT_INVOICE_TTL_HOURS", 24)
	v.SetDefault("FINANCE_CACHE_TTL_SECONDS", 60)
	v.SetDefault("AMQP_EXCHANGE", "swiftride.events")

	port := v.GetString("PORT")
	if port == "" {
		port = v.GetString("APP_PORT")
	}

	cfg := App{
		Port:        port,
		DatabaseURL: must(v, "DATABASE_URL"),
		JWTSecret:   v.GetString("JWT_SECRET"),
		JWTTTLHours: v.GetInt("JWT_TTL_HOURS"),
		Env:         v.GetString("APP_ENV"),

		PaymentAPIURL:        v.GetString("PAYMENT_API_URL"),
		PaymentAPIKey:        v.GetString("PAYMENT_API_KEY"),
		PaymentCallbackToken: v.GetString("PAYMENT_CALLBACK_TOKEN"),
		PaymentInvoiceTTL:    time.Duration(v.GetInt("PAYMENT_INVOICE_TTL_HOURS")) * time.Hour,

		RedisURL:        v.GetString("REDIS_URL"),
		FinanceCacheTTL: time.Duration(v.GetInt("FINANCE_CACHE_TTL_SECONDS")) * time.Second,

		AMQPURL:      v.GetString("AMQP_URL"),
		AMQPExchange: v.GetString("AMQP_EXCHANGE"),
	}
	return cfg
}

func must(v *viper.Viper, k string) string {
	s := v.GetString(k)
	if s == "" {
		slog.Error("required env missing", "key", k)
		panic("missing env " + k)
	}
	return s
}
