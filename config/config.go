package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ErrMissingJWTSecret 未配置签名密钥
var ErrMissingJWTSecret = errors.New("jwt.secret is required")

// Config 应用配置
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Notifier  NotifierConfig  `mapstructure:"notifier"`
	Log       LogConfig       `mapstructure:"log"`
	Sentry    SentryConfig    `mapstructure:"sentry"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Seed      SeedConfig      `mapstructure:"seed"`
}

type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	Mode           string        `mapstructure:"mode"` // debug, release, test
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"` // postgres, sqlite
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	SlowThreshold   time.Duration `mapstructure:"slow_threshold"`
}

type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	Issuer string        `mapstructure:"issuer"`
	Expire time.Duration `mapstructure:"expire"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Channel  string `mapstructure:"channel"`
}

// NotifierConfig 新帖通知分发
type NotifierConfig struct {
	Broker         string        `mapstructure:"broker"` // memory, redis
	QueueSize      int           `mapstructure:"queue_size"`
	Workers        int           `mapstructure:"workers"`
	PublishTimeout time.Duration `mapstructure:"publish_timeout"`
}

type LogConfig struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"` // json, console
}

type SentryConfig struct {
	DSN         string `mapstructure:"dsn"`
	Environment string `mapstructure:"environment"`
}

type TracingConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	Endpoint    string  `mapstructure:"endpoint"`
	ServiceName string  `mapstructure:"service_name"`
	SampleRatio float64 `mapstructure:"sample_ratio"`
}

// RateLimitConfig 登录/注册接口限流（按客户端 IP）
type RateLimitConfig struct {
	AuthRPS   float64 `mapstructure:"auth_rps"`
	AuthBurst int     `mapstructure:"auth_burst"`
}

type SeedConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Load 读取 config.yaml 与 BLOG_ 前缀的环境变量
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("BLOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if cfg.JWT.Secret == "" {
		return nil, ErrMissingJWTSecret
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 0) // SSE 长连接不设写超时
	v.SetDefault("server.request_timeout", 15*time.Second)

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "blog.db")
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("database.slow_threshold", 200*time.Millisecond)

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.issuer", "gin-blog")
	v.SetDefault("jwt.expire", 2*time.Hour)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.channel", "posts:created")

	v.SetDefault("notifier.broker", "memory")
	v.SetDefault("notifier.queue_size", 1024)
	v.SetDefault("notifier.workers", 2)
	v.SetDefault("notifier.publish_timeout", 3*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "json")

	v.SetDefault("sentry.dsn", "")
	v.SetDefault("sentry.environment", "development")

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.endpoint", "localhost:4318")
	v.SetDefault("tracing.service_name", "gin-blog")
	v.SetDefault("tracing.sample_ratio", 1.0)

	v.SetDefault("ratelimit.auth_rps", 5)
	v.SetDefault("ratelimit.auth_burst", 10)

	v.SetDefault("seed.enabled", true)
}
