package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, secrets)
// - default: Values common across all environments (timezone, timeout, topics)
// -----------------------------------------------------------------------------

type Config struct {
	Server    ServerConfig
	DB        DBConfig
	CORS      CORSConfig
	Log       LogConfig
	JWT       JWTConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	Telemetry TelemetryConfig
	Reminder  ReminderConfig
	RateLimit RateLimitConfig
	OAuth     OAuthConfig
}

type ServerConfig struct {
	Port            string        `envconfig:"PORT" required:"true"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"10s"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,Idempotency-Key,X-Agent-Token"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,Location,Idempotent-Replayed"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

// Tokens are issued by the identity provider; this service only validates them.
type JWTConfig struct {
	Secret string `envconfig:"JWT_SECRET" required:"true"`
	Issuer string `envconfig:"JWT_ISSUER" default:""`
}

type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

type KafkaConfig struct {
	Brokers           string        `envconfig:"KAFKA_BROKERS" default:""`
	CalendarSyncTopic string        `envconfig:"KAFKA_CALENDAR_SYNC_TOPIC" default:"calendar-sync"`
	NotificationTopic string        `envconfig:"KAFKA_NOTIFICATION_TOPIC" default:"notifications"`
	PollInterval      time.Duration `envconfig:"OUTBOX_POLL_INTERVAL" default:"2s"`
	BatchSize         int           `envconfig:"OUTBOX_BATCH_SIZE" default:"50"`
}

type TelemetryConfig struct {
	Enabled      bool    `envconfig:"OTEL_ENABLED" default:"false"`
	ServiceName  string  `envconfig:"OTEL_SERVICE_NAME" default:"appointment-engine"`
	OTLPEndpoint string  `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT" default:"localhost:4317"`
	SampleRatio  float64 `envconfig:"OTEL_SAMPLING_RATIO" default:"1"`
}

type ReminderConfig struct {
	Enabled     bool          `envconfig:"REMINDER_ENABLED" default:"true"`
	Lead        time.Duration `envconfig:"REMINDER_LEAD" default:"24h"`
	Concurrency int           `envconfig:"REMINDER_CONCURRENCY" default:"5"`
	Queue       string        `envconfig:"REMINDER_QUEUE" default:"reminders"`
}

type RateLimitConfig struct {
	Limit    int           `envconfig:"AGENT_RATE_LIMIT" default:"60"`
	Window   time.Duration `envconfig:"AGENT_RATE_WINDOW" default:"1m"`
	FailOpen bool          `envconfig:"AGENT_RATE_FAIL_OPEN" default:"true"`
}

type OAuthConfig struct {
	GoogleClientID    string        `envconfig:"GOOGLE_CLIENT_ID" default:""`
	MicrosoftClientID string        `envconfig:"MICROSOFT_CLIENT_ID" default:""`
	RedirectBaseURL   string        `envconfig:"OAUTH_REDIRECT_BASE_URL" default:"http://localhost:3000"`
	StateTTL          time.Duration `envconfig:"OAUTH_STATE_TTL" default:"10m"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port:            "8889", // Test port
			ShutdownTimeout: 2 * time.Second,
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
			MaxConns: 10,
		},
		Log: LogConfig{
			Level:      "error", // Error level only for tests
			TimeZone:   "UTC",
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		JWT: JWTConfig{
			Secret: "test-secret",
		},
		Kafka: KafkaConfig{
			CalendarSyncTopic: "calendar-sync",
			NotificationTopic: "notifications",
			PollInterval:      time.Second,
			BatchSize:         10,
		},
		Telemetry: TelemetryConfig{
			ServiceName: "appointment-engine-test",
			SampleRatio: 1,
		},
		Reminder: ReminderConfig{
			Lead:        24 * time.Hour,
			Concurrency: 1,
			Queue:       "reminders",
		},
		RateLimit: RateLimitConfig{
			Limit:    1000,
			Window:   time.Minute,
			FailOpen: true,
		},
		OAuth: OAuthConfig{
			GoogleClientID:    "test-google-client",
			MicrosoftClientID: "test-microsoft-client",
			RedirectBaseURL:   "http://localhost:3000",
			StateTTL:          10 * time.Minute,
		},
	}
}
