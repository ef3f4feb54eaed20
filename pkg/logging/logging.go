// Package logging 提供统一的日志封装，基于 slog，支持结构化日志、trace_id/request_id 注入、日志切割
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/wyfcoding/atlasvision/pkg/contextx"
	"gopkg.in/natefinch/lumberjack.v2"
)

var globalLogger *slog.Logger

// Config 日志配置
type Config struct {
	// 日志级别：debug, info, warn, error
	Level string `toml:"level"`
	// 输出格式：json 或 text
	Format string `toml:"format"`
	// 输出目标：stdout, file, both
	Output string `toml:"output"`
	// 日志文件路径（当 output 为 file 或 both 时）
	FilePath string `toml:"file_path"`
	// 最大文件大小（MB）
	MaxSize int `toml:"max_size"`
	// 最大备份文件数
	MaxBackups int `toml:"max_backups"`
	// 最大保留天数
	MaxAge int `toml:"max_age"`
	// 是否压缩
	Compress bool `toml:"compress"`
	// 是否输出调用者信息
	WithCaller bool `toml:"with_caller"`
}

// Init 初始化全局日志实例
func Init(cfg Config) error {
	var handler slog.Handler
	var output io.Writer

	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	// 日志切割
	fileWriter := &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	}

	switch cfg.Output {
	case "file":
		if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0755); err != nil {
			return err
		}
		output = fileWriter
	case "both":
		if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0755); err != nil {
			return err
		}
		output = io.MultiWriter(os.Stdout, fileWriter)
	default:
		output = os.Stdout
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: cfg.WithCaller,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				a.Value = slog.StringValue(a.Value.Time().Format(time.RFC3339))
			}
			return a
		},
	}

	if cfg.Format == "text" {
		handler = slog.NewTextHandler(output, opts)
	} else {
		handler = slog.NewJSONHandler(output, opts)
	}

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)

	return nil
}

// Get 获取全局日志实例
func Get() *slog.Logger {
	if globalLogger == nil {
		return slog.Default()
	}
	return globalLogger
}

// WithContext 从 context 中提取 trace_id 和 request_id，返回带有这些字段的 logger
func WithContext(ctx context.Context) *slog.Logger {
	logger := Get()

	attrs := []any{}
	if traceID := contextx.TraceID(ctx); traceID != "" {
		attrs = append(attrs, slog.String("trace_id", traceID))
	}
	if requestID := contextx.RequestID(ctx); requestID != "" {
		attrs = append(attrs, slog.String("request_id", requestID))
	}

	if len(attrs) > 0 {
		return logger.With(attrs...)
	}

	return logger
}

// Debug 输出 debug 级别日志
func Debug(ctx context.Context, msg string, args ...any) {
	WithContext(ctx).Debug(msg, args...)
}

// Info 输出 info 级别日志
func Info(ctx context.Context, msg string, args ...any) {
	WithContext(ctx).Info(msg, args...)
}

// Warn 输出 warn 级别日志
func Warn(ctx context.Context, msg string, args ...any) {
	WithContext(ctx).Warn(msg, args...)
}

// Error 输出 error 级别日志
func Error(ctx context.Context, msg string, args ...any) {
	WithContext(ctx).Error(msg, args...)
}

// Fatal 输出 error 级别日志并退出进程
func Fatal(ctx context.Context, msg string, args ...any) {
	WithContext(ctx).Error(msg, args...)
	os.Exit(1)
}

// LogDuration 记录操作耗时，返回一个函数用于在 defer 中调用
func LogDuration(ctx context.Context, msg string, args ...any) func() {
	start := time.Now()
	return func() {
		duration := time.Since(start)
		args = append(args, slog.Duration("duration", duration))
		Info(ctx, msg, args...)
	}
}
