package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	GCS           GCSConfig
	Media         MediaConfig
	Retention     RetentionConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SOLECARE_APP_ENV" required:"true"`
	Port         string `envconfig:"SOLECARE_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"SOLECARE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SOLECARE_LOG_WARN_STACK" default:"false"`

	CORSOrigins []string `envconfig:"SOLECARE_CORS_ORIGINS" default:"http://localhost:3000"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"SOLECARE_DB_DSN"`
	Driver string `envconfig:"SOLECARE_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"SOLECARE_DB_HOST"`
	Port     int    `envconfig:"SOLECARE_DB_PORT" default:"5432"`
	User     string `envconfig:"SOLECARE_DB_USER"`
	Password string `envconfig:"SOLECARE_DB_PASSWORD"`
	Name     string `envconfig:"SOLECARE_DB_NAME"`
	SSLMode  string `envconfig:"SOLECARE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SOLECARE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SOLECARE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SOLECARE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SOLECARE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SOLECARE_REDIS_URL"`
	Address      string        `envconfig:"SOLECARE_REDIS_ADDR"`
	Password     string        `envconfig:"SOLECARE_REDIS_PASSWORD"`
	DB           int           `envconfig:"SOLECARE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SOLECARE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SOLECARE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SOLECARE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SOLECARE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SOLECARE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"SOLECARE_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"SOLECARE_JWT_ISSUER" default:"solecare"`
	ExpirationMinutes      int    `envconfig:"SOLECARE_JWT_EXPIRATION_MINUTES" default:"30"`
	RefreshTokenTTLMinutes int    `envconfig:"SOLECARE_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"SOLECARE_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"SOLECARE_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"SOLECARE_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"SOLECARE_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"SOLECARE_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"SOLECARE_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit int           `envconfig:"SOLECARE_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit    int           `envconfig:"SOLECARE_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"SOLECARE_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"SOLECARE_AUTO_MIGRATE" default:"false"`
}

type GCSConfig struct {
	BucketName      string `envconfig:"SOLECARE_GCS_BUCKET_NAME"`
	CredentialsJSON string `envconfig:"SOLECARE_GCP_CREDENTIALS_JSON"`
	CredentialsFile string `envconfig:"SOLECARE_GOOGLE_APPLICATION_CREDENTIALS"`
}

type MediaConfig struct {
	MaxUploadMB int `envconfig:"SOLECARE_MAX_UPLOAD_MB" default:"25"`
}

type RetentionConfig struct {
	TrashRetentionDays int           `envconfig:"SOLECARE_TRASH_RETENTION_DAYS" default:"30"`
	WorkerInterval     time.Duration `envconfig:"SOLECARE_RETENTION_WORKER_INTERVAL" default:"24h"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	required := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, envName := range requiredDBEnvVars {
		if required[envName] == "" {
			missing = append(missing, envName)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
