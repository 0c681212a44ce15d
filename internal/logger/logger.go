// Package logger 创建 pylex 使用的 zap 日志记录器
//
// 语言服务器通过标准输入输出通信，日志只能写到文件或标准错误。
// 设置环境变量 PYLEX_DEBUG=1 时强制使用 debug 级别。
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DebugEnv 打开调试日志的环境变量
const DebugEnv = "PYLEX_DEBUG"

// Options 日志参数
type Options struct {
	// Level 日志级别：debug、info、warn、error，为空时为 info
	Level string

	// File 日志文件路径，为空时写到 Writer
	File string

	// Writer 未指定文件时的输出目标，为 nil 时使用标准错误
	Writer io.Writer
}

// New 根据参数创建日志记录器
//
// 返回的 close 函数刷新缓冲并关闭日志文件，调用方负责在退出前调用。
func New(opts Options) (*zap.Logger, func(), error) {
	level, err := parseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}
	if debugEnabled() {
		level = zapcore.DebugLevel
	}

	var (
		sink    zapcore.WriteSyncer
		closeFn = func() {}
	)

	switch {
	case opts.File != "":
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file %s: %w", opts.File, err)
		}
		sink = zapcore.AddSync(f)
		closeFn = func() { f.Close() }
	case opts.Writer != nil:
		sink = zapcore.AddSync(opts.Writer)
	default:
		sink = zapcore.Lock(os.Stderr)
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), sink, zap.NewAtomicLevelAt(level))
	log := zap.New(core)

	return log, func() {
		_ = log.Sync()
		closeFn()
	}, nil
}

// Nop 返回不输出任何内容的日志记录器
func Nop() *zap.Logger {
	return zap.NewNop()
}

// parseLevel 解析日志级别名称
func parseLevel(name string) (zapcore.Level, error) {
	if name == "" {
		return zapcore.InfoLevel, nil
	}
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(name))); err != nil {
		return level, fmt.Errorf("invalid log level %q: %w", name, err)
	}
	return level, nil
}

// debugEnabled 检查 PYLEX_DEBUG 环境变量
func debugEnabled() bool {
	switch strings.ToLower(os.Getenv(DebugEnv)) {
	case "1", "true", "on":
		return true
	}
	return false
}
