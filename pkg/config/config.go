package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ==================== 全局配置 ====================

// Config 进程级配置，全部来自环境变量（支持 .env 文件）
type Config struct {
	// 服务
	Port    string
	GinMode string

	// 数据库
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// JWT 签名密钥通过配置下发，严禁写死在代码里
	JWTSecret   string
	JWTTTL      time.Duration
	JWTIssuer   string

	// 媒体存储
	StorageProvider string // "local" | "s3"
	UploadDir       string // local 模式的根目录
	StaticPrefix    string // 对外静态路径前缀
	S3Bucket        string
	S3Region        string
	S3AccessKey     string
	S3SecretKey     string
	S3CDNDomain     string

	// 孤儿文件清理任务
	CleanupSpec   string // cron 表达式（秒级）
	CleanupMinAge time.Duration

	// CORS
	AllowOrigins []string
}

// Load 读取配置，.env 不存在时静默忽略
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "casemall")
	v.SetDefault("DB_NAME", "casemall")
	v.SetDefault("JWT_TTL_MINUTES", 60*24)
	v.SetDefault("JWT_ISSUER", "casemall")
	v.SetDefault("STORAGE_PROVIDER", "local")
	v.SetDefault("UPLOAD_DIR", "static")
	v.SetDefault("STATIC_PREFIX", "/static")
	v.SetDefault("CLEANUP_CRON", "0 0 4 * * *")
	v.SetDefault("CLEANUP_MIN_AGE_HOURS", 24)
	v.SetDefault("ALLOW_ORIGINS", []string{"http://localhost:5173", "http://127.0.0.1:5173"})

	cfg := &Config{
		Port:            v.GetString("PORT"),
		GinMode:         v.GetString("GIN_MODE"),
		DBHost:          v.GetString("DB_HOST"),
		DBPort:          v.GetString("DB_PORT"),
		DBUser:          v.GetString("DB_USER"),
		DBPassword:      v.GetString("DB_PASSWORD"),
		DBName:          v.GetString("DB_NAME"),
		JWTSecret:       v.GetString("JWT_SECRET"),
		JWTTTL:          time.Duration(v.GetInt("JWT_TTL_MINUTES")) * time.Minute,
		JWTIssuer:       v.GetString("JWT_ISSUER"),
		StorageProvider: v.GetString("STORAGE_PROVIDER"),
		UploadDir:       v.GetString("UPLOAD_DIR"),
		StaticPrefix:    v.GetString("STATIC_PREFIX"),
		S3Bucket:        v.GetString("AWS_BUCKET"),
		S3Region:        v.GetString("AWS_REGION"),
		S3AccessKey:     v.GetString("AWS_ACCESS_KEY_ID"),
		S3SecretKey:     v.GetString("AWS_SECRET_ACCESS_KEY"),
		S3CDNDomain:     v.GetString("AWS_CDN_DOMAIN"),
		CleanupSpec:     v.GetString("CLEANUP_CRON"),
		CleanupMinAge:   time.Duration(v.GetInt("CLEANUP_MIN_AGE_HOURS")) * time.Hour,
		AllowOrigins:    v.GetStringSlice("ALLOW_ORIGINS"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET 未配置")
	}
	return cfg, nil
}

// DSN 拼接 postgres 连接串
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}
