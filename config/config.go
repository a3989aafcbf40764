package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DevSecret 仅在 development 环境下允许使用的兜底签名密钥
const DevSecret = "profguide-dev-secret-change-me"

// Config 应用全局配置结构体
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"db"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Auth      AuthConfig      `mapstructure:"auth"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Tags      TagsConfig      `mapstructure:"tags"`
	Log       LogConfig       `mapstructure:"log"`
	Seed      SeedConfig      `mapstructure:"seed"`
}

// AppConfig 运行环境配置
type AppConfig struct {
	Env string `mapstructure:"env"` // development | production
}

// IsDevelopment 是否为开发环境
func (a AppConfig) IsDevelopment() bool {
	return a.Env == "" || a.Env == "development"
}

// ServerConfig HTTP 服务器配置
type ServerConfig struct {
	Port      int        `mapstructure:"port"`
	BodyLimit int64      `mapstructure:"body_limit"`
	CORS      CORSConfig `mapstructure:"cors"`
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// DatabaseConfig 数据库配置
// driver 为 sqlite 时只使用 Path；为 postgres 时使用 Host/Port 等字段
type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"`
	Path            string `mapstructure:"path"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Name            string `mapstructure:"name"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	SSLMode         string `mapstructure:"sslmode"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"` // 分钟
	SlowThreshold   int    `mapstructure:"slow_threshold_ms"`
}

// DSN 生成数据库连接字符串
func (c *DatabaseConfig) DSN() string {
	if c.Driver == "postgres" {
		return fmt.Sprintf(
			"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
		)
	}
	// 已是完整 URI（如测试用的内存库）时原样使用
	if strings.HasPrefix(c.Path, "file:") {
		return c.Path
	}
	return fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", c.Path)
}

// RedisConfig Redis 配置（仅用于限流，可关闭）
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AuthConfig JWT 与账号配置
type AuthConfig struct {
	JWTSecret   string        `mapstructure:"jwt_secret"`
	TokenTTL    time.Duration `mapstructure:"token_ttl"` // 0 表示不设置 exp
	EmailDomain string        `mapstructure:"email_domain"`
	BcryptCost  int           `mapstructure:"bcrypt_cost"`
}

// RateLimitConfig 限流配置
type RateLimitConfig struct {
	Window      time.Duration `mapstructure:"window"`
	AuthLimit   int           `mapstructure:"auth_limit"`
	RatingLimit int           `mapstructure:"rating_limit"`
}

// TagsConfig 教授标签汇总配置
type TagsConfig struct {
	RebuildCron string `mapstructure:"rebuild_cron"` // 为空则不启用定时重建
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SeedConfig 种子数据配置
type SeedConfig struct {
	AdminEmail    string `mapstructure:"admin_email"`
	AdminPassword string `mapstructure:"admin_password"`
}

// Load 从 .env、配置文件与环境变量加载配置
// 优先级：环境变量 > 配置文件 > 默认值
func Load(path string) (*Config, error) {
	// .env 不存在时忽略
	_ = godotenv.Load()

	v := viper.New()

	// ── 默认值 ──
	v.SetDefault("app.env", "development")

	v.SetDefault("server.port", 3002)
	v.SetDefault("server.body_limit", 1<<20)
	v.SetDefault("server.cors.allow_origins", []string{"http://localhost:3000"})

	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.path", "database.sqlite")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.name", "profguide")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open_conns", 0)
	v.SetDefault("db.max_idle_conns", 0)
	v.SetDefault("db.conn_max_lifetime", 60)
	v.SetDefault("db.slow_threshold_ms", 200)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_ttl", "24h")
	v.SetDefault("auth.email_domain", "usf.edu")
	v.SetDefault("auth.bcrypt_cost", 10)

	v.SetDefault("rate_limit.window", "1m")
	v.SetDefault("rate_limit.auth_limit", 20)
	v.SetDefault("rate_limit.rating_limit", 10)

	v.SetDefault("tags.rebuild_cron", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("seed.admin_email", "profguide_admin@usf.edu")
	v.SetDefault("seed.admin_password", "profguide")

	// ── 配置文件 ──
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// ── 环境变量 ──
	v.SetEnvPrefix("PROFGUIDE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// 兼容旧部署直接使用的变量名
	_ = v.BindEnv("auth.jwt_secret", "PROFGUIDE_AUTH_JWT_SECRET", "JWT_SECRET")
	_ = v.BindEnv("server.port", "PROFGUIDE_SERVER_PORT", "PORT")
	_ = v.BindEnv("db.path", "PROFGUIDE_DB_PATH", "DATABASE_PATH")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate 校验关键配置项
// 开发环境下未配置密钥时回退为 DevSecret，其它环境直接拒绝启动
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		if !c.App.IsDevelopment() {
			return fmt.Errorf("配置校验失败: %s 环境必须配置 auth.jwt_secret", c.App.Env)
		}
		c.Auth.JWTSecret = DevSecret
	}
	if len(c.Auth.JWTSecret) < 16 {
		return fmt.Errorf("配置校验失败: auth.jwt_secret 长度不能少于 16 字符")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("配置校验失败: server.port 必须在 1-65535 之间")
	}
	switch c.Database.Driver {
	case "sqlite":
		if c.Database.Path == "" {
			return fmt.Errorf("配置校验失败: db.path 不能为空")
		}
	case "postgres":
	default:
		return fmt.Errorf("配置校验失败: 不支持的 db.driver %q", c.Database.Driver)
	}
	if c.Auth.EmailDomain == "" {
		return fmt.Errorf("配置校验失败: auth.email_domain 不能为空")
	}
	c.Auth.EmailDomain = strings.ToLower(strings.TrimPrefix(c.Auth.EmailDomain, "@"))
	return nil
}

// UsingDevSecret 是否正在使用兜底密钥
func (c *Config) UsingDevSecret() bool {
	return c.Auth.JWTSecret == DevSecret
}
