package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// DefaultGeminiModel 未配置模型时使用的 Gemini 模型
	DefaultGeminiModel = "gemini-1.5-flash"
	// DefaultGeminiBaseURL Gemini 服务地址
	DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com"
	// GeminiAPIKeyEnv API Key 的环境变量兜底
	GeminiAPIKeyEnv = "GEMINI_API_KEY"
)

// Config 应用配置
type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Storage  StorageConfig
	Gemini   GeminiConfig
	JWT      JWTConfig
	Log      LogConfig
}

// AppConfig 应用配置
type AppConfig struct {
	Name        string
	Environment string
	Version     string
	Debug       bool
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Host         string
	Port         int
	Mode         string
	ReadTimeout  int
	WriteTimeout int
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	DBName       string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  int
}

// RedisConfig Redis配置，Enabled 为 false 时目录列表不走缓存
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
	TTL      int // 缓存秒数
}

// StorageConfig 文件存储配置
type StorageConfig struct {
	Type      string // local, minio
	BasePath  string
	URLPrefix string
	MinIO     MinIOConfig
}

// MinIOConfig MinIO 配置
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	URLPrefix string
}

// GeminiConfig 关键词提取使用的 Gemini 配置
type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// JWTConfig 登录令牌配置
type JWTConfig struct {
	Secret    string
	AccessTTL int // 秒
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string
	Format string // text, json
}

// Load 加载配置
// path 为空时只使用默认值和环境变量
func Load(path string) (*Config, error) {
	// .env 不存在时忽略
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	// 环境变量
	v.SetEnvPrefix("THESIS_HUB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Gemini = cfg.Gemini.Resolve()
	return &cfg, nil
}

// Resolve 补全 Gemini 配置：API Key 缺省时读取 GEMINI_API_KEY，模型缺省为 gemini-1.5-flash
func (c GeminiConfig) Resolve() GeminiConfig {
	c.APIKey = strings.TrimSpace(c.APIKey)
	if c.APIKey == "" {
		c.APIKey = strings.TrimSpace(os.Getenv(GeminiAPIKeyEnv))
	}
	if strings.TrimSpace(c.Model) == "" {
		c.Model = DefaultGeminiModel
	}
	if strings.TrimSpace(c.BaseURL) == "" {
		c.BaseURL = DefaultGeminiBaseURL
	}
	c.BaseURL = strings.TrimSuffix(c.BaseURL, "/")
	return c
}

// Enabled 是否配置了 API Key
func (c GeminiConfig) Enabled() bool {
	return c.APIKey != ""
}

// GetDSN 获取数据库连接字符串
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// GetAddr 获取服务器地址
func (c *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// GetAddr 获取 Redis 地址
func (c *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// CacheTTL 目录缓存时长
func (c *RedisConfig) CacheTTL() time.Duration {
	if c.TTL <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(c.TTL) * time.Second
}

// AccessTokenTTL 访问令牌有效期
func (c *JWTConfig) AccessTokenTTL() time.Duration {
	if c.AccessTTL <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(c.AccessTTL) * time.Second
}

func setDefaults(v *viper.Viper) {
	// App
	v.SetDefault("app.name", "thesis-hub")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.debug", false)

	// Server
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.readTimeout", 30)
	v.SetDefault("server.writeTimeout", 60)

	// Database
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", "thesis_hub")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.maxOpenConns", 25)
	v.SetDefault("database.maxIdleConns", 5)
	v.SetDefault("database.maxLifetime", 300)

	// Redis
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", 300)

	// Storage
	v.SetDefault("storage.type", "local")
	v.SetDefault("storage.basePath", "./data/files")
	v.SetDefault("storage.urlPrefix", "/files")
	v.SetDefault("storage.minio.endpoint", "")
	v.SetDefault("storage.minio.accessKey", "")
	v.SetDefault("storage.minio.secretKey", "")
	v.SetDefault("storage.minio.bucket", "thesis-hub")
	v.SetDefault("storage.minio.useSsl", false)
	v.SetDefault("storage.minio.urlPrefix", "")

	// Gemini
	// apiKey 需要默认值，否则 THESIS_HUB_GEMINI_APIKEY 不会被 Unmarshal 读取
	v.SetDefault("gemini.apiKey", "")
	v.SetDefault("gemini.model", DefaultGeminiModel)
	v.SetDefault("gemini.baseUrl", DefaultGeminiBaseURL)

	// JWT
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.accessTtl", 86400)

	// Log
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}
