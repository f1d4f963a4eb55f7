package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const productionEnv = "production"

type Config struct {
	// Server
	ServerPort  string   `env:"PORT" env-default:"5000"`
	Environment string   `env:"NODE_ENV" env-default:"development"`
	CORSOrigins []string `env:"CORS_ORIGINS" env-separator:"," env-default:"http://localhost:5173,http://localhost:5174"`

	// Store selection: postgres, mongo or memory
	StoreDriver string `env:"STORE_DRIVER" env-default:"postgres"`

	// Database
	DBHost     string `env:"DB_HOST" env-default:"localhost"`
	DBPort     string `env:"DB_PORT" env-default:"5432"`
	DBUser     string `env:"DB_USER" env-default:"postgres"`
	DBPassword string `env:"DB_PASSWORD" env-default:"postgres"`
	DBName     string `env:"DB_NAME" env-default:"nomadnest"`
	DBSSLMode  string `env:"DB_SSLMODE" env-default:"disable"`

	// MongoDB
	MongoURI      string `env:"MONGO_URI" env-default:"mongodb://localhost:27017"`
	MongoDatabase string `env:"MONGO_DATABASE" env-default:"nomadnest"`

	// Redis
	RedisHost     string `env:"REDIS_HOST" env-default:"localhost"`
	RedisPort     string `env:"REDIS_PORT" env-default:"6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" env-default:"0"`

	// Token
	JWTSecret   string        `env:"ACCESS_TOKEN_SECRET"`
	TokenTTL    time.Duration `env:"TOKEN_TTL" env-default:"4320h"`
	TokenCookie string        `env:"TOKEN_COOKIE" env-default:"token"`

	// Limits
	RateLimit     int           `env:"RATE_LIMIT" env-default:"100"`
	RateWindow    time.Duration `env:"RATE_WINDOW" env-default:"1m"`
	FreePostLimit int64         `env:"FREE_POST_LIMIT" env-default:"5"`

	// Payments
	StripeSecretKey string `env:"STRIPE_SECRET_KEY"`
	PaymentCurrency string `env:"PAYMENT_CURRENCY" env-default:"usd"`

	// AWS S3
	AWSRegion          string `env:"AWS_REGION" env-default:"us-east-1"`
	AWSAccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`
	AWSSecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY"`
	AWSEndpoint        string `env:"AWS_ENDPOINT"`
	S3BucketName       string `env:"S3_BUCKET_NAME" env-default:"nomadnest-media"`
	S3UseSSL           string `env:"S3_USE_SSL" env-default:"true"`

	// RabbitMQ
	RabbitMQHost     string `env:"RABBITMQ_HOST" env-default:"localhost"`
	RabbitMQPort     string `env:"RABBITMQ_PORT" env-default:"5672"`
	RabbitMQUser     string `env:"RABBITMQ_USER" env-default:"guest"`
	RabbitMQPassword string `env:"RABBITMQ_PASSWORD" env-default:"guest"`

	// Tracing
	TraceEnabled  bool   `env:"TRACE_ENABLED" env-default:"false"`
	TraceEndpoint string `env:"TRACE_ENDPOINT" env-default:"localhost:4318"`
}

func Load() (*Config, error) {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	return &cfg, nil
}

// IsProduction switches the credential cookie to cross-site mode.
func (c *Config) IsProduction() bool {
	return c.Environment == productionEnv
}

func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DBHost,
		c.DBUser,
		c.DBPassword,
		c.DBName,
		c.DBPort,
		c.DBSSLMode,
	)
}

func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}

func (c *Config) RabbitMQURL() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%s/",
		c.RabbitMQUser,
		c.RabbitMQPassword,
		c.RabbitMQHost,
		c.RabbitMQPort,
	)
}
