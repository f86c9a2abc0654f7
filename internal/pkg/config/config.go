// internal/pkg/config/config.go
package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrMissingRequiredConfig is returned when a required value is unset
var ErrMissingRequiredConfig = errors.New("missing required configuration")

// Config is the process configuration shared by the api, the worker and
// the seeder.
type Config struct {
	App            AppConfig            `mapstructure:"app"`
	Database       DatabaseConfig       `mapstructure:"database"`
	Redis          RedisConfig          `mapstructure:"redis"`
	Asynq          AsynqConfig          `mapstructure:"asynq"`
	AWS            AWSConfig            `mapstructure:"aws"`
	Kafka          KafkaConfig          `mapstructure:"kafka"`
	Auth           AuthConfig           `mapstructure:"auth"`
	FileProcessing FileProcessingConfig `mapstructure:"files"`
	Security       SecurityConfig       `mapstructure:"security"`
	Server         ServerConfig         `mapstructure:"server"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"-"`
	Version     string `mapstructure:"version"`
	LogLevel    string `mapstructure:"log_level"`
	LogFormat   string `mapstructure:"log_format"` // json or text
}

// DatabaseConfig points at the warehouse Postgres. The MS_WAREHOUSE_*
// names win over the generic DB_* ones.
type DatabaseConfig struct {
	Host               string        `mapstructure:"host"`
	Port               string        `mapstructure:"port"`
	User               string        `mapstructure:"user"`
	Password           string        `mapstructure:"password"`
	Name               string        `mapstructure:"name"`
	SSLMode            string        `mapstructure:"ssl_mode"`
	MaxConnections     int32         `mapstructure:"max_connections"`
	MinConnections     int32         `mapstructure:"min_connections"`
	MaxConnLifetime    time.Duration `mapstructure:"conn_lifetime"`
	MaxConnIdleTime    time.Duration `mapstructure:"idle_time"`
	HealthCheckPeriod  time.Duration `mapstructure:"health_check_period"`
	ConnectTimeout     time.Duration `mapstructure:"connect_timeout"`
	EnableQueryLogging bool          `mapstructure:"query_logging"`
	MigrationPath      string        `mapstructure:"migration_path"`
}

// RedisConfig is the entity cache connection. TTL bounds every cached
// entity.
type RedisConfig struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	Password        string        `mapstructure:"password"`
	DB              int           `mapstructure:"db"`
	MaxRetries      int           `mapstructure:"max_retries"`
	MinRetryBackoff time.Duration `mapstructure:"min_retry_backoff"`
	MaxRetryBackoff time.Duration `mapstructure:"max_retry_backoff"`
	DialTimeout     time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	PoolSize        int           `mapstructure:"pool_size"`
	MinIdleConns    int           `mapstructure:"min_idle_conns"`
	PoolTimeout     time.Duration `mapstructure:"pool_timeout"`
	TTL             time.Duration `mapstructure:"ttl"`
}

// Addr returns the host:port of the Redis server
func (r RedisConfig) Addr() string {
	return net.JoinHostPort(r.Host, r.Port)
}

// AsynqConfig drives the ingest queue. It shares the Redis server with the
// cache but not its logical database.
type AsynqConfig struct {
	RedisAddr       string         `mapstructure:"-"`
	RedisPassword   string         `mapstructure:"-"`
	RedisDB         int            `mapstructure:"redis_db"`
	Concurrency     int            `mapstructure:"concurrency"`
	Queues          map[string]int `mapstructure:"-"`
	StrictPriority  bool           `mapstructure:"strict_priority"`
	RetryMax        int            `mapstructure:"retry_max"`
	ShutdownTimeout time.Duration  `mapstructure:"shutdown_timeout"`
	CleanupSchedule string         `mapstructure:"cleanup_schedule"`
}

// AWSConfig locates the upload archive bucket and the production secret.
// An empty bucket keeps uploads on local disk.
type AWSConfig struct {
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	S3Bucket        string `mapstructure:"s3_bucket"`
	S3Endpoint      string `mapstructure:"s3_endpoint"`
	UsePathStyle    bool   `mapstructure:"s3_path_style"`
	SecretName      string `mapstructure:"secret_name"`
}

// KafkaConfig holds the event publisher configuration. No brokers means
// events are dropped.
type KafkaConfig struct {
	Brokers      []string      `mapstructure:"brokers"`
	Topic        string        `mapstructure:"topic"`
	ClientID     string        `mapstructure:"client_id"`
	BatchTimeout time.Duration `mapstructure:"batch_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// Enabled reports whether any broker is configured
func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

// AuthConfig holds the credentials of the basic auth routes and the
// location of the auth service used by the bearer routes.
type AuthConfig struct {
	UserName      string        `mapstructure:"user_name"`
	UserPassword  string        `mapstructure:"user_password"`
	AuthDomain    string        `mapstructure:"domain"`
	RouteRootPath string        `mapstructure:"route_root_path"`
	Timeout       time.Duration `mapstructure:"timeout"`
}

type FileProcessingConfig struct {
	ExcelMaxSizeMB    int           `mapstructure:"excel_max_size_mb"`
	ProcessingTimeout time.Duration `mapstructure:"processing_timeout"`
	TempDir           string        `mapstructure:"temp_dir"`
	UploadRetention   time.Duration `mapstructure:"upload_retention"`
}

// MaxUploadBytes returns the workbook upload limit in bytes
func (f FileProcessingConfig) MaxUploadBytes() int64 {
	return int64(f.ExcelMaxSizeMB) << 20
}

type SecurityConfig struct {
	RateLimitRequests int           `mapstructure:"rate_limit_requests"`
	RateLimitDuration time.Duration `mapstructure:"rate_limit_duration"`
	AllowedOrigins    []string      `mapstructure:"allowed_origins"`
	SecureHeaders     bool          `mapstructure:"secure_headers"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	MaxHeaderBytes  int           `mapstructure:"max_header_bytes"`
	GracefulTimeout time.Duration `mapstructure:"graceful_timeout"`
	TLSEnabled      bool          `mapstructure:"tls_enabled"`
	TLSCertFile     string        `mapstructure:"tls_cert_file"`
	TLSKeyFile      string        `mapstructure:"tls_key_file"`
}

// setting binds one config key to its environment names, first match
// wins, and gives it a default.
type setting struct {
	key string
	env []string
	def any
}

func settings(env string) []setting {
	dev := env == "development"
	return []setting{
		{"app.name", []string{"APP_NAME"}, "warehouse-ms"},
		{"app.version", []string{"APP_VERSION"}, "dev"},
		{"app.log_level", []string{"LOG_LEVEL"}, "info"},
		{"app.log_format", []string{"LOG_FORMAT"}, "json"},

		{"database.host", []string{"MS_WAREHOUSE_HOST", "DB_HOST"}, "localhost"},
		{"database.port", []string{"MS_WAREHOUSE_PORT", "DB_PORT"}, "5432"},
		{"database.user", []string{"MS_WAREHOUSE_USER", "DB_USER"}, "warehouse"},
		{"database.password", []string{"MS_WAREHOUSE_PASSWORD", "DB_PASSWORD"}, "warehouse_dev"},
		{"database.name", []string{"MS_WAREHOUSE_DB", "DB_NAME"}, "warehouse"},
		{"database.ssl_mode", []string{"DB_SSL_MODE"}, "disable"},
		{"database.max_connections", []string{"DB_MAX_CONNECTIONS"}, 25},
		{"database.min_connections", []string{"DB_MIN_CONNECTIONS"}, 2},
		{"database.conn_lifetime", []string{"DB_CONNECTION_LIFETIME"}, time.Hour},
		{"database.idle_time", []string{"DB_IDLE_TIME"}, 30 * time.Minute},
		{"database.health_check_period", []string{"DB_HEALTH_CHECK_PERIOD"}, time.Minute},
		{"database.connect_timeout", []string{"DB_CONNECT_TIMEOUT"}, 10 * time.Second},
		{"database.query_logging", []string{"DB_QUERY_LOGGING"}, dev},
		{"database.migration_path", []string{"DB_MIGRATION_PATH"}, ""},

		{"redis.host", []string{"REDIS_HOST"}, "localhost"},
		{"redis.port", []string{"REDIS_PORT"}, "6379"},
		{"redis.password", []string{"REDIS_PASSWORD"}, ""},
		{"redis.db", []string{"REDIS_DB"}, 0},
		{"redis.max_retries", []string{"REDIS_MAX_RETRIES"}, 3},
		{"redis.min_retry_backoff", []string{"REDIS_MIN_RETRY_BACKOFF"}, 8 * time.Millisecond},
		{"redis.max_retry_backoff", []string{"REDIS_MAX_RETRY_BACKOFF"}, 512 * time.Millisecond},
		{"redis.dial_timeout", []string{"REDIS_DIAL_TIMEOUT"}, 5 * time.Second},
		{"redis.read_timeout", []string{"REDIS_READ_TIMEOUT"}, 3 * time.Second},
		{"redis.write_timeout", []string{"REDIS_WRITE_TIMEOUT"}, 3 * time.Second},
		{"redis.pool_size", []string{"REDIS_POOL_SIZE"}, 10},
		{"redis.min_idle_conns", []string{"REDIS_MIN_IDLE_CONNS"}, 2},
		{"redis.pool_timeout", []string{"REDIS_POOL_TIMEOUT"}, 4 * time.Second},
		{"redis.ttl", []string{"REDIS_TTL"}, 10 * time.Minute},

		{"asynq.redis_db", []string{"ASYNQ_REDIS_DB"}, 1},
		{"asynq.concurrency", []string{"ASYNQ_CONCURRENCY"}, 4},
		{"asynq.queues", []string{"ASYNQ_QUEUES"}, "critical:6,default:3,low:1"},
		{"asynq.strict_priority", []string{"ASYNQ_STRICT_PRIORITY"}, false},
		{"asynq.retry_max", []string{"ASYNQ_RETRY_MAX"}, 3},
		{"asynq.shutdown_timeout", []string{"ASYNQ_SHUTDOWN_TIMEOUT"}, 30 * time.Second},
		{"asynq.cleanup_schedule", []string{"ASYNQ_CLEANUP_SCHEDULE"}, "@daily"},

		{"aws.region", []string{"AWS_REGION"}, "us-east-1"},
		{"aws.access_key_id", []string{"AWS_ACCESS_KEY_ID"}, "minioadmin"},
		{"aws.secret_access_key", []string{"AWS_SECRET_ACCESS_KEY"}, "minioadmin123"},
		{"aws.s3_bucket", []string{"AWS_S3_BUCKET"}, "warehouse-uploads"},
		{"aws.s3_endpoint", []string{"AWS_S3_ENDPOINT"}, ""},
		{"aws.s3_path_style", []string{"AWS_S3_PATH_STYLE"}, dev},
		{"aws.secret_name", []string{"AWS_SECRET_NAME"}, "warehouse-ms"},

		{"kafka.brokers", []string{"KAFKA_BROKERS"}, []string{}},
		{"kafka.topic", []string{"KAFKA_TOPIC"}, "warehouse.events"},
		{"kafka.client_id", []string{"KAFKA_CLIENT_ID"}, "warehouse-ms"},
		{"kafka.batch_timeout", []string{"KAFKA_BATCH_TIMEOUT"}, 50 * time.Millisecond},
		{"kafka.write_timeout", []string{"KAFKA_WRITE_TIMEOUT"}, 10 * time.Second},

		{"auth.user_name", []string{"MS_WAREHOUSE_USER_NAME"}, ""},
		{"auth.user_password", []string{"MS_WAREHOUSE_USER_PASSWORD"}, ""},
		{"auth.domain", []string{"MS_AUTH_DOMAIN"}, ""},
		{"auth.route_root_path", []string{"MS_ROUTE_MAP_ROOT_PATH"}, ""},
		{"auth.timeout", []string{"MS_AUTH_TIMEOUT"}, 3 * time.Second},

		{"files.excel_max_size_mb", []string{"EXCEL_MAX_SIZE_MB"}, 20},
		{"files.processing_timeout", []string{"PROCESSING_TIMEOUT"}, 5 * time.Minute},
		{"files.temp_dir", []string{"TEMP_DIR"}, os.TempDir()},
		{"files.upload_retention", []string{"UPLOAD_RETENTION"}, 30 * 24 * time.Hour},

		{"security.rate_limit_requests", []string{"RATE_LIMIT_REQUESTS"}, 100},
		{"security.rate_limit_duration", []string{"RATE_LIMIT_DURATION"}, time.Minute},
		{"security.allowed_origins", []string{"ALLOWED_ORIGINS"}, []string{"*"}},
		{"security.secure_headers", []string{"SECURE_HEADERS"}, env == "production"},

		{"server.host", []string{"SERVER_HOST"}, "0.0.0.0"},
		{"server.port", []string{"SERVER_PORT"}, "8080"},
		{"server.read_timeout", []string{"SERVER_READ_TIMEOUT"}, 30 * time.Second},
		{"server.write_timeout", []string{"SERVER_WRITE_TIMEOUT"}, 60 * time.Second},
		{"server.idle_timeout", []string{"SERVER_IDLE_TIMEOUT"}, 60 * time.Second},
		{"server.max_header_bytes", []string{"SERVER_MAX_HEADER_BYTES"}, 1 << 20},
		{"server.graceful_timeout", []string{"SERVER_GRACEFUL_TIMEOUT"}, 30 * time.Second},
		{"server.tls_enabled", []string{"TLS_ENABLED"}, false},
		{"server.tls_cert_file", []string{"TLS_CERT_FILE"}, ""},
		{"server.tls_key_file", []string{"TLS_KEY_FILE"}, ""},
	}
}

// Load reads the configuration from the environment, plus a .env file in
// development. Production also pulls its secrets from AWS Secrets Manager
// before validation.
func Load(logger *slog.Logger) (*Config, error) {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	if env == "development" || env == "local" {
		if err := godotenv.Load(); err != nil {
			logger.Warn("no .env file found, using environment variables",
				slog.String("error", err.Error()))
		} else {
			logger.Info(".env file loaded")
		}
	}

	v := viper.New()
	for _, s := range settings(env) {
		v.SetDefault(s.key, s.def)
		if err := v.BindEnv(append([]string{s.key}, s.env...)...); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", s.key, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	cfg.App.Environment = env
	cfg.Auth.AuthDomain = strings.TrimRight(cfg.Auth.AuthDomain, "/")
	cfg.Kafka.Brokers = trimAll(cfg.Kafka.Brokers)
	cfg.Security.AllowedOrigins = trimAll(cfg.Security.AllowedOrigins)
	cfg.Asynq.RedisAddr = cfg.Redis.Addr()
	cfg.Asynq.RedisPassword = cfg.Redis.Password
	cfg.Asynq.Queues = parseQueues(v.GetString("asynq.queues"))

	if cfg.IsProduction() {
		if err := cfg.loadSecrets(context.Background(), logger); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate runs the basic checks and, in production, the stricter ones
func (c *Config) Validate() error {
	validators := []Validator{&BasicValidator{}}
	if c.IsProduction() {
		validators = append(validators, &ProductionValidator{})
	}
	for _, v := range validators {
		if err := v.Validate(c); err != nil {
			return err
		}
	}
	return nil
}

// GetDatabaseURL returns the connection string handed to the migrator
func (c *Config) GetDatabaseURL() string {
	u := url.URL{
		Scheme:   "postgresql",
		User:     url.UserPassword(c.Database.User, c.Database.Password),
		Host:     net.JoinHostPort(c.Database.Host, c.Database.Port),
		Path:     "/" + c.Database.Name,
		RawQuery: "sslmode=" + url.QueryEscape(c.Database.SSLMode),
	}
	return u.String()
}

// GetServerAddress returns the listen address
func (c *Config) GetServerAddress() string {
	return net.JoinHostPort(c.Server.Host, c.Server.Port)
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, s := range values {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// parseQueues reads "name:priority" pairs. An empty or unparsable list
// falls back to a single default queue.
func parseQueues(spec string) map[string]int {
	queues := make(map[string]int)
	for _, pair := range strings.Split(spec, ",") {
		name, prio, ok := strings.Cut(pair, ":")
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(prio))
		if err != nil || n <= 0 {
			continue
		}
		queues[strings.TrimSpace(name)] = n
	}
	if len(queues) == 0 {
		queues["default"] = 1
	}
	return queues
}
