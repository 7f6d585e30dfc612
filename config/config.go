package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config 应用全局配置
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Sentry   SentryConfig   `mapstructure:"sentry"`
	Trace    TraceConfig    `mapstructure:"trace"`
	Notifier NotifierConfig `mapstructure:"notifier"`
	AI       AIConfig       `mapstructure:"ai"`
}

type ServerConfig struct {
	Port         int    `mapstructure:"port"`
	Mode         string `mapstructure:"mode"` // debug, release, test
	RateLimitRPS int    `mapstructure:"rate_limit_rps"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"` // sqlite, postgres
	DSN    string `mapstructure:"dsn"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	// FeedTTL 全站信息流缓存秒数，0 表示关闭缓存
	FeedTTLSeconds int `mapstructure:"feed_ttl_seconds"`
}

type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
}

type SentryConfig struct {
	DSN string `mapstructure:"dsn"`
}

type TraceConfig struct {
	Endpoint string `mapstructure:"endpoint"` // OTLP HTTP endpoint，空则不上报
}

type NotifierConfig struct {
	Workers   int `mapstructure:"workers"`
	QueueSize int `mapstructure:"queue_size"`
}

type AIConfig struct {
	PredictEndpoint    string `mapstructure:"predict_endpoint"`    // 托管分类模型
	FertilizerEndpoint string `mapstructure:"fertilizer_endpoint"` // 肥料推荐模型
	TextEndpoint       string `mapstructure:"text_endpoint"`       // 文本生成 API
	TextAPIKey         string `mapstructure:"text_api_key"`
	TextModel          string `mapstructure:"text_model"`
}

// Load 读取 config.yaml 并允许环境变量覆盖（AGRIFEED_SERVER_PORT 等）
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.SetEnvPrefix("AGRIFEED")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.rate_limit_rps", 50)
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "agrifeed.db")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.feed_ttl_seconds", 30)
	v.SetDefault("jwt.issuer", "agrifeed-auth")
	v.SetDefault("notifier.workers", 4)
	v.SetDefault("notifier.queue_size", 10000)
	v.SetDefault("ai.text_model", "gemini-2.5-flash")

	if err := v.ReadInConfig(); err != nil {
		// 没有配置文件时走默认值 + 环境变量
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
