package config

import "time"

type App struct {
	Port        string `env:"APP_PORT" default:"8080"`
	DatabaseURL string `env:"DATABASE_URL,required"`
	JWTSecret   string `env:"JWT_SECRET,required"`
	JWTTTLHours int    `env:"JWT_TTL_HOURS" default:"24"`
	Env         string `env:"APP_ENV" default:"dev"`

	PaymentAPIURL        string        `env:"PAYMENT_API_URL" default:"https://api.xendit.co"`
	PaymentAPIKey        string        `env:"PAYMENT_API_KEY"`
	PaymentCallbackToken string        `env:"PAYMENT_CALLBACK_TOKEN"`
	PaymentInvoiceTTL    time.Duration `env:"PAYMENT_INVOICE_TTL_HOURS" default:"24"`

	RedisURL        string        `env:"REDIS_URL"`
	FinanceCacheTTL time.Duration `env:"FINANCE_CACHE_TTL_SECONDS" default:"60"`

	AMQPURL      string `env:"AMQP_URL"`
	AMQPExchange string `env:"AMQP_EXCHANGE" default:"swiftride.events"`
}
