package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server     ServerConfig
	DB         DBConfig
	CORS       CORSConfig
	Log        LogConfig
	JWT        JWTConfig
	Cookie     CookieConfig
	Admin      AdminConfig
	Slots      SlotConfig
	Redemption RedemptionConfig
	Calendar   CalendarConfig
	Redis      RedisConfig
	RateLimit  RateLimitConfig
	Mail       MailConfig
	Storage    StorageConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
	Mode string `envconfig:"GIN_MODE" default:"release"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"10"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,X-Access-Token"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,Retry-After"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level      string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone   string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
}

type JWTConfig struct {
	Secret               string        `envconfig:"JWT_SECRET" required:"true"`
	AccessTokenDuration  time.Duration `envconfig:"JWT_ACCESS_TOKEN_DURATION" default:"15m"`
	RefreshTokenDuration time.Duration `envconfig:"JWT_REFRESH_TOKEN_DURATION" default:"168h"`
}

type CookieConfig struct {
	Domain   string `envconfig:"COOKIE_DOMAIN" default:""`
	Secure   bool   `envconfig:"COOKIE_SECURE" default:"true"`
	SameSite string `envconfig:"COOKIE_SAME_SITE" default:"Lax"`
}

type AdminConfig struct {
	// Comma separated. Compared case-insensitively.
	AllowedEmails []string `envconfig:"ADMIN_ALLOWED_EMAILS"`
}

// IsAllowed reports whether email is on the admin allow-list.
func (c AdminConfig) IsAllowed(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}
	for _, allowed := range c.AllowedEmails {
		if strings.EqualFold(strings.TrimSpace(allowed), email) {
			return true
		}
	}
	return false
}

type SlotConfig struct {
	TimeZone string        `envconfig:"SLOT_TIMEZONE" default:"UTC"`
	DayStart string        `envconfig:"SLOT_DAY_START" default:"10:00"`
	DayEnd   string        `envconfig:"SLOT_DAY_END" default:"18:00"`
	Step     time.Duration `envconfig:"SLOT_STEP" default:"30m"`
}

type RedemptionConfig struct {
	DownloadTokenTTL      time.Duration `envconfig:"REDEMPTION_DOWNLOAD_TTL" default:"720h"`
	CallTokenTTL          time.Duration `envconfig:"REDEMPTION_CALL_TTL" default:"24h"`
	DownloadCredentialTTL time.Duration `envconfig:"ACCESS_DOWNLOAD_TTL" default:"72h"`
	CallCredentialTTL     time.Duration `envconfig:"ACCESS_CALL_TTL" default:"2h"`
}

type CalendarConfig struct {
	CalendarID      string        `envconfig:"CALENDAR_ID"`
	CredentialsFile string        `envconfig:"CALENDAR_CREDENTIALS_FILE"`
	RequestTimeout  time.Duration `envconfig:"CALENDAR_REQUEST_TIMEOUT" default:"10s"`
	EventSummary    string        `envconfig:"CALENDAR_EVENT_SUMMARY" default:"Free call"`
	InviteAttendees bool          `envconfig:"CALENDAR_INVITE_ATTENDEES" default:"false"`
}

type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

type RateLimitConfig struct {
	Enabled      bool          `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
	RedeemLimit  int           `envconfig:"RATE_LIMIT_REDEEM" default:"10"`
	RequestLimit int           `envconfig:"RATE_LIMIT_REQUEST" default:"5"`
	LoginLimit   int           `envconfig:"RATE_LIMIT_LOGIN" default:"10"`
	Window       time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"1m"`
}

type MailConfig struct {
	APIKey    string        `envconfig:"MAILERSEND_API_KEY"`
	FromName  string        `envconfig:"MAIL_FROM_NAME" default:"Coaching"`
	FromEmail string        `envconfig:"MAIL_FROM_EMAIL" default:"no-reply@example.com"`
	SiteURL   string        `envconfig:"SITE_URL" default:"http://localhost:3000"`
	Timeout   time.Duration `envconfig:"MAIL_TIMEOUT" default:"10s"`
}

type StorageConfig struct {
	Endpoint   string        `envconfig:"STORAGE_ENDPOINT" default:"localhost:9000"`
	AccessKey  string        `envconfig:"STORAGE_ACCESS_KEY"`
	SecretKey  string        `envconfig:"STORAGE_SECRET_KEY"`
	Bucket     string        `envconfig:"STORAGE_BUCKET" default:"products"`
	UseSSL     bool          `envconfig:"STORAGE_USE_SSL" default:"false"`
	PresignTTL time.Duration `envconfig:"STORAGE_PRESIGN_TTL" default:"15m"`
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
			Port: "8889", // Test port
			Mode: "test",
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
			Secret:               "test-secret",
			AccessTokenDuration:  15 * time.Minute,
			RefreshTokenDuration: 7 * 24 * time.Hour,
		},
		Cookie: CookieConfig{
			SameSite: "Lax",
		},
		Admin: AdminConfig{
			AllowedEmails: []string{"admin@example.com"},
		},
		Slots: SlotConfig{
			TimeZone: "UTC",
			DayStart: "10:00",
			DayEnd:   "18:00",
			Step:     30 * time.Minute,
		},
		Redemption: RedemptionConfig{
			DownloadTokenTTL:      30 * 24 * time.Hour,
			CallTokenTTL:          24 * time.Hour,
			DownloadCredentialTTL: 72 * time.Hour,
			CallCredentialTTL:     2 * time.Hour,
		},
		Calendar: CalendarConfig{
			CalendarID:     "primary",
			RequestTimeout: 5 * time.Second,
			EventSummary:   "Free call",
		},
		RateLimit: RateLimitConfig{
			Enabled:      false,
			RedeemLimit:  10,
			RequestLimit: 5,
			LoginLimit:   10,
			Window:       time.Minute,
		},
		Mail: MailConfig{
			FromName:  "Coaching",
			FromEmail: "no-reply@example.com",
			SiteURL:   "http://localhost:3000",
			Timeout:   5 * time.Second,
		},
		Storage: StorageConfig{
			Bucket:     "products",
			PresignTTL: 15 * time.Minute,
		},
	}
}
