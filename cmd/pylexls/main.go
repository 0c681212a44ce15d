package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/tangzhangming/pylex/internal/config"
	"github.com/tangzhangming/pylex/internal/i18n"
	"github.com/tangzhangming/pylex/internal/logger"
	"github.com/tangzhangming/pylex/internal/lsp"
)

const Version = "0.1.0"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run 解析参数并在 stdin/stdout 上运行语言服务器，返回退出码
func run(args []string, stdin io.ReadCloser, stdout io.WriteCloser, stderr io.Writer) int {
	i18n.SetLanguage(i18n.DetectLanguage())

	fs := flag.NewFlagSet("pylexls", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { printUsage(stderr, fs) }

	showVersion := fs.Bool("version", false, "显示版本信息")
	configPath := fs.String("config", "", "配置文件路径（默认在当前目录向上查找 pylex.toml）")
	logFile := fs.String("log", "", i18n.T(i18n.MsgOptLog))
	logLevel := fs.String("log-level", "", "日志级别: debug, info, warn, error")
	tabSize := fs.Int("tab", 0, "制表符宽度（覆盖配置文件）")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if *showVersion {
		fmt.Fprintf(stderr, "pylex language server v%s\n", Version)
		return 0
	}

	cfg, err := config.LoadOrDefault(*configPath, ".")
	if err != nil {
		fmt.Fprintf(stderr, "cannot load config: %v\n", err)
		return 2
	}
	if *tabSize != 0 {
		cfg.Lexer.TabSize = *tabSize
	}
	if *logFile != "" {
		cfg.Log.File = *logFile
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "invalid config: %v\n", err)
		return 2
	}

	// stdout 是协议通道，日志只能写到文件或标准错误
	log, closeLog, err := logger.New(logger.Options{
		Level:  cfg.Log.Level,
		File:   cfg.Log.File,
		Writer: stderr,
	})
	if err != nil {
		fmt.Fprintf(stderr, "cannot create logger: %v\n", err)
		return 2
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := lsp.NewServer(lsp.Options{
		TabSize: cfg.Lexer.TabSize,
		Version: Version,
		Logger:  log,
	})

	err = server.Serve(ctx, stdio{in: stdin, out: stdout})
	stats := server.Documents().Stats()
	log.Info("server stopped", zap.Int64("analyzed", stats.Analyzed), zap.Int64("reused", stats.Reused))

	switch {
	case err == nil, errors.Is(err, context.Canceled):
		return 0
	case errors.Is(err, lsp.ErrExitWithoutShutdown):
		log.Warn("exit without shutdown")
		return 1
	default:
		log.Error("server error", zap.Error(err))
		return 1
	}
}

// stdio 把标准输入输出组合为 jsonrpc2 使用的连接
type stdio struct {
	in  io.ReadCloser
	out io.WriteCloser
}

func (s stdio) Read(p []byte) (int, error)  { return s.in.Read(p) }
func (s stdio) Write(p []byte) (int, error) { return s.out.Write(p) }

func (s stdio) Close() error {
	inErr := s.in.Close()
	if err := s.out.Close(); err != nil {
		return err
	}
	return inErr
}

func printUsage(out io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(out, "pylex language server - Python 词法 LSP 服务器")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "用法:")
	fmt.Fprintln(out, "  pylexls [options]")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "选项:")
	fs.PrintDefaults()
	fmt.Fprintln(out)
	fmt.Fprintln(out, "服务器通过标准输入输出 (stdio) 与编辑器通信，提供词法诊断和语义高亮。")
}
