package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/tangzhangming/pylex/internal/batch"
	"github.com/tangzhangming/pylex/internal/config"
	"github.com/tangzhangming/pylex/internal/dump"
	diag "github.com/tangzhangming/pylex/internal/errors"
	"github.com/tangzhangming/pylex/internal/i18n"
	"github.com/tangzhangming/pylex/internal/lexer"
	"github.com/tangzhangming/pylex/internal/repl"
	"github.com/tangzhangming/pylex/internal/token"
)

const (
	Version = "0.1.0"
)

// commands 子命令列表（用于相似命令提示）
var commands = []string{"tokens", "check", "repl", "init", "keywords", "version", "help"}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// cli 一次命令行调用的上下文
type cli struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	lang   string // 全局 --lang 参数
}

// run 执行命令并返回退出码
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	c := &cli{stdin: stdin, stdout: stdout, stderr: stderr}

	// 预扫描全局参数 --lang 或 -lang
	args = c.preprocessArgs(args)

	// 初始化语言：命令行参数优先，其次是环境变量
	if c.lang != "" {
		i18n.SetLanguageFromString(c.lang)
	} else {
		i18n.SetLanguage(i18n.DetectLanguage())
	}

	if len(args) < 1 {
		c.printUsage()
		return 0
	}

	command := args[0]

	switch command {
	case "tokens":
		return c.cmdTokens(args[1:])
	case "check":
		return c.cmdCheck(args[1:])
	case "repl":
		return c.cmdRepl(args[1:])
	case "init":
		return c.cmdInit(args[1:])
	case "keywords":
		return c.cmdKeywords()
	case "version", "-v", "--version":
		return c.cmdVersion()
	case "help", "-h", "--help":
		c.printUsage()
		return 0
	default:
		fmt.Fprintln(c.stderr, i18n.T(i18n.MsgUnknownCmd, command))
		if similar := diag.FindSimilar(command, commands, 2); similar != "" {
			fmt.Fprintln(c.stderr, diag.Yellow(i18n.T(i18n.MsgDidYouMean, similar)))
		}
		fmt.Fprintln(c.stderr)
		c.printUsage()
		return 2
	}
}

// preprocessArgs 预处理参数，提取全局 --lang 参数
func (c *cli) preprocessArgs(args []string) []string {
	var result []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--lang" || arg == "-lang" {
			if i+1 < len(args) {
				c.lang = args[i+1]
				i++ // 跳过下一个参数
				continue
			}
		} else if strings.HasPrefix(arg, "--lang=") {
			c.lang = strings.TrimPrefix(arg, "--lang=")
			continue
		} else if strings.HasPrefix(arg, "-lang=") {
			c.lang = strings.TrimPrefix(arg, "-lang=")
			continue
		}
		result = append(result, arg)
	}
	return result
}

func (c *cli) printUsage() {
	out := c.stdout
	fmt.Fprintf(out, "pylex %s\n\n", Version)
	fmt.Fprintln(out, i18n.T(i18n.MsgUsage))
	fmt.Fprintln(out)
	fmt.Fprintln(out, i18n.T(i18n.MsgCommands))
	fmt.Fprintf(out, "  tokens <file>...  %s\n", i18n.T(i18n.MsgCmdTokens))
	fmt.Fprintf(out, "  check <file>...   %s\n", i18n.T(i18n.MsgCmdCheck))
	fmt.Fprintf(out, "  repl              %s\n", i18n.T(i18n.MsgCmdRepl))
	fmt.Fprintf(out, "  init              %s\n", i18n.T(i18n.MsgCmdInit))
	fmt.Fprintf(out, "  keywords          %s\n", i18n.T(i18n.MsgCmdKeywords))
	fmt.Fprintf(out, "  version           %s\n", i18n.T(i18n.MsgCmdVersion))
	fmt.Fprintf(out, "  help              %s\n", i18n.T(i18n.MsgCmdHelp))
	fmt.Fprintln(out)
	fmt.Fprintln(out, "  pylex tokens -format json main.py")
	fmt.Fprintln(out, "  pylex check -twice src/*.py")
	fmt.Fprintln(out, "  pylex --lang zh check main.py")
}

// ============================================================================
// 公共参数
// ============================================================================

// commonFlags tokens 和 check 共用的参数
type commonFlags struct {
	tabSize    int
	configPath string
	color      string
}

func (f *commonFlags) register(fs *flag.FlagSet) {
	fs.IntVar(&f.tabSize, "tab", 0, i18n.T(i18n.MsgOptTab))
	fs.StringVar(&f.configPath, "config", "", i18n.T(i18n.MsgOptConfig))
	fs.StringVar(&f.color, "color", "", i18n.T(i18n.MsgOptColor))
}

// newFlagSet 创建子命令的参数集
func (c *cli) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	fs.Usage = func() {
		fmt.Fprintf(c.stderr, "usage: pylex %s [options] <file>...\n\n", name)
		fs.PrintDefaults()
	}
	return fs
}

// loadConfig 加载配置并应用命令行覆盖
//
// 配置文件从第一个输入文件所在目录向上查找。
func (c *cli) loadConfig(flags *commonFlags, files []string) (*config.Config, error) {
	start := "."
	if len(files) > 0 && files[0] != "-" {
		start = files[0]
	}

	cfg, err := config.LoadOrDefault(flags.configPath, start)
	if err != nil {
		return nil, err
	}

	if flags.tabSize != 0 {
		cfg.Lexer.TabSize = flags.tabSize
	}
	if flags.color != "" {
		cfg.Output.Color = flags.color
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// 命令行的 --lang 优先于配置文件
	if c.lang == "" {
		i18n.SetLanguageFromString(cfg.Output.Language)
	}
	diag.SetColorMode(cfg.Output.Color)

	return cfg, nil
}

// readSource 读取源文件，"-" 表示标准输入
//
// 去掉 UTF-8 BOM；其余内容按 UTF-8 解码后原样交给词法分析器。
func (c *cli) readSource(filename string) (string, error) {
	var (
		data []byte
		err  error
	)
	if filename == "-" {
		data, err = io.ReadAll(c.stdin)
	} else {
		data, err = os.ReadFile(filename)
	}
	if err != nil {
		return "", err
	}
	return strings.TrimPrefix(string(data), "\ufeff"), nil
}

// displayName 诊断中使用的文件名
func displayName(filename string) string {
	if filename == "-" {
		return "<stdin>"
	}
	return filename
}

// reportError 输出词法错误或普通错误
func reportError(reporter *diag.Reporter, out io.Writer, err error) {
	var lexErr *lexer.Error
	if errors.As(err, &lexErr) {
		reporter.ReportError(lexErr.Diagnostic())
		return
	}
	fmt.Fprintf(out, "error: %v\n", err)
}

// ============================================================================
// tokens 命令
// ============================================================================

// cmdTokens 输出 token 序列
func (c *cli) cmdTokens(args []string) int {
	fs := c.newFlagSet("tokens")
	var common commonFlags
	common.register(fs)
	format := fs.String("format", "", i18n.T(i18n.MsgOptFormat))
	showSpan := fs.Bool("span", false, i18n.T(i18n.MsgOptSpan))

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() < 1 {
		fs.Usage()
		fmt.Fprintln(c.stderr, i18n.T(i18n.MsgNoInput))
		return 2
	}

	cfg, err := c.loadConfig(&common, fs.Args())
	if err != nil {
		fmt.Fprintln(c.stderr, i18n.T(i18n.MsgConfigFailed, err))
		return 2
	}
	if *format == "" {
		*format = cfg.Output.Format
	}
	if *format != "text" && *format != "json" {
		fmt.Fprintln(c.stderr, i18n.T(i18n.MsgConfigFailed, fmt.Errorf("unknown format %q", *format)))
		return 2
	}

	reporter := diag.NewReporter(c.stderr)
	exitCode := 0

	for i, filename := range fs.Args() {
		source, err := c.readSource(filename)
		if err != nil {
			fmt.Fprintln(c.stderr, i18n.T(i18n.MsgReadFailed, filename, err))
			exitCode = 1
			continue
		}

		name := displayName(filename)
		tokens, err := lexer.New(source, cfg.Lexer.TabSize, lexer.WithFilename(name)).Tokenize()
		if err != nil {
			reporter.SetSource(name, source)
			reportError(reporter, c.stderr, err)
			exitCode = 1
			continue
		}

		if *format == "json" {
			err = dump.JSON(c.stdout, tokens)
		} else {
			if fs.NArg() > 1 {
				if i > 0 {
					fmt.Fprintln(c.stdout)
				}
				fmt.Fprintln(c.stdout, diag.Cyan("==> "+name+" <=="))
			}
			err = dump.Text(c.stdout, tokens, dump.TextOptions{ShowSpan: *showSpan, ShowValue: true})
		}
		if err != nil {
			fmt.Fprintf(c.stderr, "error: %v\n", err)
			return 1
		}
	}

	if reporter.HasErrors() {
		fmt.Fprintln(c.stderr, i18n.T(i18n.MsgErrorCount, reporter.ErrorCount()))
	}
	return exitCode
}

// ============================================================================
// check 命令
// ============================================================================

// cmdCheck 并行检查文件中的词法错误
func (c *cli) cmdCheck(args []string) int {
	fs := c.newFlagSet("check")
	var common commonFlags
	common.register(fs)
	twice := fs.Bool("twice", false, i18n.T(i18n.MsgOptTwice))
	workers := fs.Int("workers", -1, i18n.T(i18n.MsgOptWorkers))

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() < 1 {
		fs.Usage()
		fmt.Fprintln(c.stderr, i18n.T(i18n.MsgNoInput))
		return 2
	}

	cfg, err := c.loadConfig(&common, fs.Args())
	if err != nil {
		fmt.Fprintln(c.stderr, i18n.T(i18n.MsgConfigFailed, err))
		return 2
	}
	if *workers < 0 {
		*workers = cfg.Check.Workers
	}

	failed := 0
	sources := make(map[string][]string)

	var jobs []batch.Job
	for _, filename := range fs.Args() {
		source, err := c.readSource(filename)
		if err != nil {
			fmt.Fprintln(c.stderr, i18n.T(i18n.MsgReadFailed, filename, err))
			failed++
			continue
		}
		name := displayName(filename)
		sources[name] = diag.SplitLines(source)
		jobs = append(jobs, batch.Job{Name: name, Source: source})
	}

	tokenize := batch.Tokenizer(cfg.Lexer.TabSize)
	fn := tokenize
	if *twice {
		// 第二次分析的结果必须与第一次完全一致
		fn = func(ctx context.Context, job batch.Job) ([]token.Token, error) {
			first, err := tokenize(ctx, job)
			if err != nil {
				return nil, err
			}
			second, err := tokenize(ctx, job)
			if err != nil {
				return nil, err
			}
			if dump.Fingerprint(first) != dump.Fingerprint(second) {
				return nil, errors.New(i18n.T(i18n.MsgNotIdempotent, job.Name))
			}
			return first, nil
		}
	}

	// 词法错误按输入顺序收集，最后统一输出
	var diagnostics []*diag.CompileError
	for _, res := range batch.Run(context.Background(), jobs, *workers, fn) {
		if res.Err != nil {
			var lexErr *lexer.Error
			if errors.As(res.Err, &lexErr) {
				diagnostics = append(diagnostics, lexErr.Diagnostic())
			} else {
				fmt.Fprintf(c.stderr, "error: %v\n", res.Err)
			}
			failed++
			continue
		}
		fmt.Fprintln(c.stdout, diag.Green(i18n.T(i18n.MsgCheckOK, res.Job.Name, len(res.Tokens))))
	}

	if len(diagnostics) > 0 {
		fmt.Fprint(c.stderr, diag.NewFormatter().FormatCompileErrors(diagnostics, sources))
	}
	if failed > 0 {
		fmt.Fprintln(c.stderr, diag.Red(i18n.T(i18n.MsgCheckFailed, failed, fs.NArg())))
		return 1
	}
	return 0
}

// ============================================================================
// repl 命令
// ============================================================================

// cmdRepl 启动交互式词法分析
func (c *cli) cmdRepl(args []string) int {
	fs := c.newFlagSet("repl")
	var common commonFlags
	common.register(fs)
	showSpan := fs.Bool("span", false, i18n.T(i18n.MsgOptSpan))

	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := c.loadConfig(&common, nil)
	if err != nil {
		fmt.Fprintln(c.stderr, i18n.T(i18n.MsgConfigFailed, err))
		return 2
	}

	config := repl.DefaultConfig()
	config.TabSize = cfg.Lexer.TabSize
	config.ShowSpan = *showSpan

	if err := repl.New(config, c.stdin, c.stdout).Run(); err != nil {
		fmt.Fprintf(c.stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

// ============================================================================
// 其他命令
// ============================================================================

// cmdKeywords 列出关键字
func (c *cli) cmdKeywords() int {
	for _, kw := range token.Keywords() {
		fmt.Fprintln(c.stdout, kw)
	}
	return 0
}

// cmdVersion 显示版本
func (c *cli) cmdVersion() int {
	fmt.Fprintf(c.stdout, "pylex %s (%s %s/%s)\n", Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
	return 0
}
