package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultDMSOutputDir 是未配置时 DMS 文件的落盘目录（相对工作目录）。
const DefaultDMSOutputDir = "data/dms"

// ServerConfig 定义 HTTP 管理接口的监听配置
type ServerConfig struct {
	Host string // 监听地址，默认 "0.0.0.0"
	Port int    // 监听端口，默认 8080
}

// LogConfig 定义日志系统配置
type LogConfig struct {
	Level       string // 日志级别: debug, info, warn, error
	Development bool   // 开发模式: 彩色控制台输出
	File        string // 日志文件路径，留空只输出到控制台
}

// DatabaseConfig 定义数据库连接配置（支持 MySQL 和 PostgreSQL）
type DatabaseConfig struct {
	Type            string        // 数据库类型: "mysql" 或 "postgres"，留空使用内存存储
	DSN             string        // 数据库连接字符串
	MaxOpenConns    int           // 最大打开连接数，默认 25
	MaxIdleConns    int           // 最大空闲连接数，默认 5
	ConnMaxLifetime time.Duration // 连接最大生命周期，默认 5 分钟
}

// CORSConfig 定义跨域配置
type CORSConfig struct {
	AllowedOrigins []string // 允许的来源列表，默认 ["*"]
}

// DMSConfig 定义 Docker Mailserver 配置文件导出参数
type DMSConfig struct {
	OutputDir      string        // 三个 .cf 文件的输出目录
	VerifyInterval time.Duration // 后台漂移校验周期，0 表示关闭
}

// Config 是系统核心配置的根结构体。
// 取代原先数据库中的全局设置单例：配置在启动时一次性加载并显式传递。
type Config struct {
	Server   ServerConfig
	Log      LogConfig
	Database DatabaseConfig
	CORS     CORSConfig
	DMS      DMSConfig
}

// Load 从环境变量和 .env 文件加载系统配置
//
// 配置加载优先级（从高到低）：
//  1. 系统环境变量
//  2. .env 文件（如果存在）
//  3. 默认值
//
// 环境变量前缀: DOCKSPACE_
// 例如: DOCKSPACE_DMS_OUTPUT_DIR, DOCKSPACE_DATABASE_DSN
func Load() (*Config, error) {
	loadEnvFile()

	viper.SetEnvPrefix("dockspace")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.development", false)
	viper.SetDefault("log.file", "")
	viper.SetDefault("database.type", "") // 默认为空，使用内存存储
	viper.SetDefault("database.dsn", "")
	viper.SetDefault("database.max_open_conns", 25)
	viper.SetDefault("database.max_idle_conns", 5)
	viper.SetDefault("database.conn_max_lifetime", "5m")
	viper.SetDefault("cors.allowed_origins", "*")
	viper.SetDefault("dms.output_dir", DefaultDMSOutputDir)
	viper.SetDefault("dms.verify_interval", "15m")

	connMaxLifetime, err := time.ParseDuration(viper.GetString("database.conn_max_lifetime"))
	if err != nil {
		connMaxLifetime = 5 * time.Minute
	}

	verifyInterval, err := time.ParseDuration(viper.GetString("dms.verify_interval"))
	if err != nil {
		return nil, fmt.Errorf("invalid dms.verify_interval: %w", err)
	}

	outputDir := strings.TrimSpace(viper.GetString("dms.output_dir"))
	if outputDir == "" {
		outputDir = DefaultDMSOutputDir
	}

	dbType := viper.GetString("database.type")
	if dbType != "" && dbType != "mysql" && dbType != "postgres" {
		return nil, fmt.Errorf("unsupported database.type: %s (supported: mysql, postgres)", dbType)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("server.host"),
			Port: viper.GetInt("server.port"),
		},
		Log: LogConfig{
			Level:       viper.GetString("log.level"),
			Development: viper.GetBool("log.development"),
			File:        viper.GetString("log.file"),
		},
		Database: DatabaseConfig{
			Type:            dbType,
			DSN:             viper.GetString("database.dsn"),
			MaxOpenConns:    viper.GetInt("database.max_open_conns"),
			MaxIdleConns:    viper.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: connMaxLifetime,
		},
		CORS: CORSConfig{
			AllowedOrigins: splitAndTrim(viper.GetString("cors.allowed_origins")),
		},
		DMS: DMSConfig{
			OutputDir:      outputDir,
			VerifyInterval: verifyInterval,
		},
	}

	return cfg, nil
}

// splitAndTrim 将逗号分隔的列表拆分为去空白的切片
func splitAndTrim(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// loadEnvFile 尝试加载 .env 文件
//
// 依次尝试当前目录与父目录；文件不存在时静默跳过，
// 已存在的环境变量不会被覆盖。
func loadEnvFile() {
	if err := godotenv.Load(".env"); err == nil {
		return
	}

	parentEnv := filepath.Join("..", ".env")
	if _, err := os.Stat(parentEnv); err == nil {
		_ = godotenv.Load(parentEnv)
	}
}
