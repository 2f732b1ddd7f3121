package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// DatabaseConfig gig 数据库（PostgreSQL）配置
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int
	MaxIdle  int
}

// GetDSN 获取数据库连接字符串
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}

// RedisConfig 快照缓存（Redis）配置
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Config gigmatrix 服务配置
type Config struct {
	HTTP struct {
		Addr string
	}
	Database DatabaseConfig
	Redis    RedisConfig
	Matrix   struct {
		WorkbookPath string // 可用性矩阵 .xlsx 路径
		SheetPrefix  string // 表名前缀，表名 = 前缀 + 年份
	}
	Calendar struct {
		FeedURL string // 日历事件 JSON feed
		Timeout time.Duration
	}
	Cache struct {
		TTL time.Duration // 快照缓存上限；键按抓取小时轮换
	}
	Fetch struct {
		Timeout time.Duration // 单一来源抓取超时
	}
	MQTT struct {
		Enabled      bool
		Broker       string
		ClientID     string
		Username     string
		Password     string
		TriggerTopic string // 收到消息即触发一次对账
		ReportTopic  string // 对账摘要发布主题
	}
	Log struct {
		Level  string
		Format string
	}
}

func Load() *Config {
	cfg := &Config{}
	cfg.HTTP.Addr = getEnv("HTTP_ADDR", ":8080")

	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = parseInt(getEnv("DB_PORT", "5432"), 5432)
	cfg.Database.User = getEnv("DB_USER", "postgres")
	cfg.Database.Password = getEnv("DB_PASSWORD", "postgres")
	cfg.Database.Database = getEnv("DB_NAME", "gigdb")
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", "disable")
	cfg.Database.MaxConns = parseInt(getEnv("DB_MAX_CONNS", "10"), 10)
	cfg.Database.MaxIdle = parseInt(getEnv("DB_MAX_IDLE", "5"), 5)

	cfg.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = parseInt(getEnv("REDIS_DB", "0"), 0)

	cfg.Matrix.WorkbookPath = getEnv("MATRIX_WORKBOOK", "availability.xlsx")
	cfg.Matrix.SheetPrefix = getEnv("MATRIX_SHEET_PREFIX", "")

	cfg.Calendar.FeedURL = getEnv("CALENDAR_FEED_URL", "http://localhost:8090/events")
	cfg.Calendar.Timeout = parseDuration(getEnv("CALENDAR_TIMEOUT", "10s"), 10*time.Second)

	cfg.Cache.TTL = parseDuration(getEnv("CACHE_TTL", "1h"), time.Hour)
	cfg.Fetch.Timeout = parseDuration(getEnv("FETCH_TIMEOUT", "30s"), 30*time.Second)

	// MQTT 触发对账，默认禁用
	cfg.MQTT.Enabled = getEnv("MQTT_ENABLED", "false") == "true"
	cfg.MQTT.Broker = getEnv("MQTT_BROKER", "tcp://localhost:1883")
	cfg.MQTT.ClientID = getEnv("MQTT_CLIENT_ID", "gigmatrix")
	cfg.MQTT.Username = getEnv("MQTT_USERNAME", "")
	cfg.MQTT.Password = getEnv("MQTT_PASSWORD", "")
	cfg.MQTT.TriggerTopic = getEnv("MQTT_TRIGGER_TOPIC", "gigmatrix/check")
	cfg.MQTT.ReportTopic = getEnv("MQTT_REPORT_TOPIC", "gigmatrix/report")

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

func parseDuration(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return def
	}
	return d
}
