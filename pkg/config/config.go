package config

import (
	"errors"
	"fmt"
	"net/netip"
	"os"
	"strings"
	"time"

	env "github.com/caarlos0/env/v7"
	"github.com/joho/godotenv"
)

const (
	MinCodeLength = 4
	MaxCodeLength = 10

	MinCodeHashKeyLength = 16
	MaxCodeHashKeyLength = 64
)

var (
	ErrInvalidAttemptLimit = errors.New("attempt limit must be positive")
	ErrBackoffTooShort     = errors.New("backoff table must have at least attempt limit - 1 entries")
	ErrInvalidCodeLength   = errors.New("invalid code length")
	ErrRetentionTooShort   = errors.New("prune retention must not be shorter than max code age")
	ErrUnknownChannel      = errors.New("unknown notification channel")
	ErrInvalidCodeHashKey  = errors.New("code hash key must be 16 to 64 bytes")
	ErrInvalidTrustedProxy = errors.New("invalid trusted proxy")
	ErrPortConflict        = errors.New("internal port must differ from the public port")
)

type Config struct {
	HTTPPort         int    `env:"HTTP_PORT"          envDefault:"8080"`
	PostgresDSN      string `env:"POSTGRES_DSN"`
	PostgresMaxConns int32  `env:"POSTGRES_MAX_CONNS" envDefault:"10"`
	LogLevel         string `env:"LOG_LEVEL"          envDefault:"info"`
	ServiceName      string `env:"SERVICE_NAME"       envDefault:"challenge"`
	InternalHTTPHost string `env:"INTERNAL_HTTP_HOST" envDefault:"127.0.0.1"`
	InternalHTTPPort int    `env:"INTERNAL_HTTP_PORT" envDefault:"8081"`
	MetricsPort      int    `env:"METRICS_PORT"       envDefault:"9090"`

	Challenge ChallengeConfig
	Kafka     KafkaConfig
	Users     UsersConfig
	Mailer    MailerConfig
	SMS       SMSConfig
	Throttle  ThrottleConfig

	// TLS
	ServerCert string `env:"TLS_SERVER_CERT"`
	ServerKey  string `env:"TLS_SERVER_KEY"`
}

type ChallengeConfig struct {
	AttemptLimit   int             `env:"CHALLENGE_ATTEMPT_LIMIT"   envDefault:"5"`
	MaxCodeAge     time.Duration   `env:"CHALLENGE_MAX_CODE_AGE"    envDefault:"15m"`
	Backoff        []time.Duration `env:"CHALLENGE_BACKOFF"         envDefault:"1s,10s,30s,60s" envSeparator:","`
	CodeLength     int             `env:"CHALLENGE_CODE_LENGTH"     envDefault:"6"`
	CodeHashKey    string          `env:"CHALLENGE_CODE_HASH_KEY"`
	Channel        string          `env:"CHALLENGE_CHANNEL"         envDefault:"sms"`
	PruneInterval  time.Duration   `env:"CHALLENGE_PRUNE_INTERVAL"  envDefault:"1h"`
	PruneRetention time.Duration   `env:"CHALLENGE_PRUNE_RETENTION" envDefault:"24h"`
}

type KafkaConfig struct {
	Brokers           []string `env:"KAFKA_BROKERS"            envDefault:"kafka:9092" envSeparator:","`
	NotificationTopic string   `env:"KAFKA_NOTIFICATION_TOPIC" envDefault:"send-notifications"`
	ConsumerID        string   `env:"KAFKA_CONSUMER_ID"        envDefault:"challenge-notifier"`
}

type UsersConfig struct {
	URL           string        `env:"USER_SERVICE_URL"`
	Timeout       time.Duration `env:"USER_SERVICE_TIMEOUT"        envDefault:"5s"`
	RetryAttempts int           `env:"USER_SERVICE_RETRY_ATTEMPTS" envDefault:"3"`
}

type MailerConfig struct {
	From     string `env:"MAILER_FROM"`
	FromName string `env:"MAILER_FROM_NAME"`
	Host     string `env:"MAILER_HOST"`
	Port     int    `env:"MAILER_PORT" envDefault:"587"`
	Login    string `env:"MAILER_LOGIN"`
	Password string `env:"MAILER_PASSWORD"`
}

type SMSConfig struct {
	BaseURL       string        `env:"SMS_BASE_URL"`
	APIKey        string        `env:"SMS_API_KEY"`
	Sender        string        `env:"SMS_SENDER"`
	Timeout       time.Duration `env:"SMS_TIMEOUT"        envDefault:"15s"`
	RetryAttempts int           `env:"SMS_RETRY_ATTEMPTS" envDefault:"3"`
}

type ThrottleConfig struct {
	RequestLimit  int           `env:"THROTTLE_REQUEST_LIMIT"  envDefault:"30"`
	RequestWindow time.Duration `env:"THROTTLE_REQUEST_WINDOW" envDefault:"1m"`
	// CIDRs of reverse proxies whose X-Forwarded-For / X-Real-IP are trusted.
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`
}

// ProxyPrefixes parses TrustedProxies. A bare address is treated as a single
// host prefix.
func (c ThrottleConfig) ProxyPrefixes() ([]netip.Prefix, error) {
	prefixes := make([]netip.Prefix, 0, len(c.TrustedProxies))

	for _, raw := range c.TrustedProxies {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}

		if !strings.Contains(raw, "/") {
			addr, err := netip.ParseAddr(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: %s", ErrInvalidTrustedProxy, raw)
			}

			prefixes = append(prefixes, netip.PrefixFrom(addr.Unmap(), addr.Unmap().BitLen()))

			continue
		}

		prefix, err := netip.ParsePrefix(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidTrustedProxy, raw)
		}

		prefixes = append(prefixes, prefix.Masked())
	}

	return prefixes, nil
}

func New(envPath string) (Config, error) {
	var c Config

	err := godotenv.Load(envPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, err
	}

	err = env.Parse(&c)
	if err != nil {
		return Config{}, err
	}

	err = c.Challenge.Validate()
	if err != nil {
		return Config{}, fmt.Errorf("challenge config: %w", err)
	}

	_, err = c.Throttle.ProxyPrefixes()
	if err != nil {
		return Config{}, fmt.Errorf("throttle config: %w", err)
	}

	if c.InternalHTTPPort == c.HTTPPort {
		return Config{}, ErrPortConflict
	}

	requiredFiles := []struct {
		name string
		val  string
	}{
		{"TLS_SERVER_CERT", c.ServerCert},
		{"TLS_SERVER_KEY", c.ServerKey},
	}

	for _, path := range requiredFiles {
		if path.val == "" {
			continue
		}

		if _, err := os.Stat(path.val); os.IsNotExist(err) {
			return Config{}, fmt.Errorf("missing TLS file for %s: %s", path.name, path.val)
		}
	}

	return c, nil
}

// TLSEnabled reports whether both server certificate and key are configured.
func (c Config) TLSEnabled() bool {
	return c.ServerCert != "" && c.ServerKey != ""
}

// Validate checks that the policy can drive the backoff algorithm: every
// reachable backoff tier must have an entry in the table.
func (c ChallengeConfig) Validate() error {
	if c.AttemptLimit < 1 {
		return ErrInvalidAttemptLimit
	}

	if len(c.Backoff) < c.AttemptLimit-1 {
		return fmt.Errorf("%w: have %d, need %d", ErrBackoffTooShort, len(c.Backoff), c.AttemptLimit-1)
	}

	if c.CodeLength < MinCodeLength || c.CodeLength > MaxCodeLength {
		return fmt.Errorf("%w: %d", ErrInvalidCodeLength, c.CodeLength)
	}

	if c.PruneRetention < c.MaxCodeAge {
		return ErrRetentionTooShort
	}

	switch c.Channel {
	case "sms", "email":
	default:
		return fmt.Errorf("%w: %s", ErrUnknownChannel, c.Channel)
	}

	if len(c.CodeHashKey) < MinCodeHashKeyLength || len(c.CodeHashKey) > MaxCodeHashKeyLength {
		return fmt.Errorf("%w: got %d", ErrInvalidCodeHashKey, len(c.CodeHashKey))
	}

	return nil
}
