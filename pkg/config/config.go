// Package config 提供 TOML 配置加载、默认值与环境变量覆盖
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config 服务配置根结构
type Config struct {
	// 服务名称
	ServiceName string `mapstructure:"service_name"`
	// 服务版本
	Version string `mapstructure:"version"`
	// 环境：dev, staging, prod
	Environment string `mapstructure:"environment"`
	// HTTP 服务配置
	HTTP HTTPConfig `mapstructure:"http"`
	// 数据库配置
	Database DatabaseConfig `mapstructure:"database"`
	// Redis 配置
	Redis RedisConfig `mapstructure:"redis"`
	// Kafka 配置
	Kafka KafkaConfig `mapstructure:"kafka"`
	// 对象存储配置
	Storage StorageConfig `mapstructure:"storage"`
	// 推理服务配置
	Inference InferenceConfig `mapstructure:"inference"`
	// 处理管线配置
	Pipeline PipelineConfig `mapstructure:"pipeline"`
	// 日志配置
	Logger LoggerConfig `mapstructure:"logger"`
	// 指标配置
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// HTTPConfig HTTP 服务配置
type HTTPConfig struct {
	// 监听地址
	Host string `mapstructure:"host"`
	// 监听端口
	Port int `mapstructure:"port"`
	// 读超时（秒）
	ReadTimeout int `mapstructure:"read_timeout"`
	// 写超时（秒）
	WriteTimeout int `mapstructure:"write_timeout"`
	// 上传大小上限（MB）
	MaxUploadSizeMB int `mapstructure:"max_upload_size_mb"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	// 驱动：mysql
	Driver string `mapstructure:"driver"`
	// 数据源名称
	DSN string `mapstructure:"dsn"`
	// 最大连接数
	MaxOpenConns int `mapstructure:"max_open_conns"`
	// 最大空闲连接数
	MaxIdleConns int `mapstructure:"max_idle_conns"`
	// 连接最大生命周期（秒）
	ConnMaxLifetime int `mapstructure:"conn_max_lifetime"`
	// 是否启用 SQL 日志
	LogEnabled bool `mapstructure:"log_enabled"`
	// 慢查询阈值（毫秒）
	SlowQueryThreshold int `mapstructure:"slow_query_threshold"`
}

// RedisConfig Redis 配置
type RedisConfig struct {
	// 主机地址
	Host string `mapstructure:"host"`
	// 端口
	Port int `mapstructure:"port"`
	// 密码
	Password string `mapstructure:"password"`
	// 数据库编号
	DB int `mapstructure:"db"`
	// 最大连接数
	MaxPoolSize int `mapstructure:"max_pool_size"`
	// 连接超时（秒）
	ConnTimeout int `mapstructure:"conn_timeout"`
	// 读超时（秒）
	ReadTimeout int `mapstructure:"read_timeout"`
	// 写超时（秒）
	WriteTimeout int `mapstructure:"write_timeout"`
	// 扫描缓存 TTL（秒）
	ScanCacheTTL int `mapstructure:"scan_cache_ttl"`
}

// KafkaConfig Kafka 配置
type KafkaConfig struct {
	// Broker 地址列表
	Brokers []string `mapstructure:"brokers"`
	// Consumer Group ID
	GroupID string `mapstructure:"group_id"`
	// 扫描任务主题
	ScanTopic string `mapstructure:"scan_topic"`
	// 消费者会话超时（秒）
	SessionTimeout int `mapstructure:"session_timeout"`
	// 生产者最大重试次数
	MaxRetries int `mapstructure:"max_retries"`
	// 生产者重试间隔（毫秒）
	RetryBackoff int `mapstructure:"retry_backoff"`
}

// StorageConfig 对象存储配置
type StorageConfig struct {
	// 驱动：s3, filesystem, memory
	Driver string `mapstructure:"driver"`
	// S3 桶名
	Bucket string `mapstructure:"bucket"`
	// S3 区域
	Region string `mapstructure:"region"`
	// 自定义端点（MinIO 等兼容服务）
	Endpoint string `mapstructure:"endpoint"`
	// 是否使用 path-style 访问（MinIO 需要）
	ForcePathStyle bool `mapstructure:"force_path_style"`
	// 访问密钥（留空时走默认凭证链）
	AccessKeyID string `mapstructure:"access_key_id"`
	// 访问密钥 Secret
	SecretAccessKey string `mapstructure:"secret_access_key"`
	// filesystem 驱动的根目录
	RootDir string `mapstructure:"root_dir"`
}

// InferenceConfig 推理服务配置
type InferenceConfig struct {
	// 服务基地址
	BaseURL string `mapstructure:"base_url"`
	// Bearer 认证令牌
	APIKey string `mapstructure:"api_key"`
	// 单次调用超时（秒）
	Timeout int `mapstructure:"timeout"`
	// VQA 提问内容
	VQAQuestion string `mapstructure:"vqa_question"`
}

// PipelineConfig 处理管线配置
type PipelineConfig struct {
	// 价格变动告警阈值（百分比）
	PriceAlertThreshold float64 `mapstructure:"price_alert_threshold"`
}

// LoggerConfig 日志配置
type LoggerConfig struct {
	// 日志级别
	Level string `mapstructure:"level"`
	// 输出格式
	Format string `mapstructure:"format"`
	// 输出目标
	Output string `mapstructure:"output"`
	// 文件路径
	FilePath string `mapstructure:"file_path"`
	// 最大文件大小（MB）
	MaxSize int `mapstructure:"max_size"`
	// 最大备份文件数
	MaxBackups int `mapstructure:"max_backups"`
	// 最大保留天数
	MaxAge int `mapstructure:"max_age"`
	// 是否压缩
	Compress bool `mapstructure:"compress"`
	// 是否输出调用者信息
	WithCaller bool `mapstructure:"with_caller"`
}

// MetricsConfig 指标配置
type MetricsConfig struct {
	// 是否启用
	Enabled bool `mapstructure:"enabled"`
	// Prometheus 监听端口
	Port int `mapstructure:"port"`
	// 指标路径
	Path string `mapstructure:"path"`
}

// Load 从 TOML 文件加载配置，应用默认值并支持环境变量覆盖
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigFile(configPath)
	v.SetConfigType("toml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// 环境变量覆盖，形如 APP_DATABASE_DSN
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate 验证配置的有效性
func (c *Config) Validate() error {
	if c.ServiceName == "" {
		return fmt.Errorf("service_name is required")
	}
	if c.Environment == "" {
		c.Environment = "dev"
	}
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTP.Port)
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("database DSN is required")
	}
	if len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka brokers are required")
	}
	if c.Inference.BaseURL == "" {
		return fmt.Errorf("inference base_url is required")
	}
	switch c.Storage.Driver {
	case "s3":
		if c.Storage.Bucket == "" {
			return fmt.Errorf("storage bucket is required for s3 driver")
		}
	case "filesystem":
		if c.Storage.RootDir == "" {
			return fmt.Errorf("storage root_dir is required for filesystem driver")
		}
	case "memory":
	default:
		return fmt.Errorf("unsupported storage driver: %s", c.Storage.Driver)
	}
	return nil
}

// setDefaults 设置默认值
func setDefaults(v *viper.Viper) {
	v.SetDefault("http.host", "0.0.0.0")
	v.SetDefault("http.port", 8080)
	v.SetDefault("http.read_timeout", 30)
	v.SetDefault("http.write_timeout", 30)
	v.SetDefault("http.max_upload_size_mb", 10)

	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 300)
	v.SetDefault("database.log_enabled", false)
	v.SetDefault("database.slow_query_threshold", 1000)

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.max_pool_size", 10)
	v.SetDefault("redis.conn_timeout", 5)
	v.SetDefault("redis.read_timeout", 3)
	v.SetDefault("redis.write_timeout", 3)
	v.SetDefault("redis.scan_cache_ttl", 300)

	v.SetDefault("kafka.group_id", "atlasvision-workers")
	v.SetDefault("kafka.scan_topic", "atlasvision.scan.created")
	v.SetDefault("kafka.session_timeout", 10)
	v.SetDefault("kafka.max_retries", 3)
	v.SetDefault("kafka.retry_backoff", 100)

	v.SetDefault("storage.driver", "filesystem")
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.root_dir", "data/scans")

	v.SetDefault("inference.timeout", 30)
	v.SetDefault("inference.vqa_question", "How many units of the main product are visible on the shelf?")

	v.SetDefault("pipeline.price_alert_threshold", 10.0)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
	v.SetDefault("logger.output", "stdout")
	v.SetDefault("logger.file_path", "logs/atlasvision.log")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 10)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)
	v.SetDefault("logger.with_caller", false)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.port", 9090)
	v.SetDefault("metrics.path", "/metrics")
}

// GetEnv 获取环境变量，支持默认值
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
