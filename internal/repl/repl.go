// repl.go - pylex 交互式词法分析
//
// 逐段读取输入并打印 token 序列，支持：
// - 多行输入（未闭合的括号、三引号字符串、行尾反斜杠、以冒号结尾的复合语句）
// - 历史记录
// - 特殊命令（:help, :quit, :reset, :load, :span, :tab, :errors）
// - 词法错误以诊断格式显示

package repl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/tangzhangming/pylex/internal/dump"
	diag "github.com/tangzhangming/pylex/internal/errors"
	"github.com/tangzhangming/pylex/internal/lexer"
	"github.com/tangzhangming/pylex/internal/token"
)

// inputName 交互输入在诊断中使用的文件名
const inputName = "<repl>"

// maxHistory 历史记录上限
const maxHistory = 1000

// REPL 交互式词法分析器
type REPL struct {
	reader   *bufio.Reader
	writer   io.Writer
	history  []string
	reporter *diag.Reporter // 本次会话的全部词法错误

	buffer    strings.Builder
	multiline bool
	block     bool // 正在输入复合语句，空行结束
	quit      bool

	tabSize  int
	showSpan bool

	promptPrimary  string
	promptContinue string
}

// Config REPL 配置
type Config struct {
	TabSize        int
	ShowSpan       bool
	PromptPrimary  string
	PromptContinue string
}

// DefaultConfig 默认配置
func DefaultConfig() Config {
	return Config{
		TabSize:        lexer.DefaultTabSize,
		PromptPrimary:  ">>> ",
		PromptContinue: "... ",
	}
}

// New 创建 REPL
func New(config Config, in io.Reader, out io.Writer) *REPL {
	if config.TabSize <= 0 {
		config.TabSize = lexer.DefaultTabSize
	}
	return &REPL{
		reader:         bufio.NewReader(in),
		writer:         out,
		reporter:       diag.NewReporter(out),
		tabSize:        config.TabSize,
		showSpan:       config.ShowSpan,
		promptPrimary:  config.PromptPrimary,
		promptContinue: config.PromptContinue,
	}
}

// Run 运行 REPL，直到输入结束或收到 :quit
func (r *REPL) Run() error {
	r.printWelcome()

	for !r.quit {
		prompt := r.promptPrimary
		if r.multiline {
			prompt = r.promptContinue
		}
		fmt.Fprint(r.writer, prompt)

		line, err := r.reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			if errors.Is(err, io.EOF) {
				// 结束前分析尚未完成的输入
				if r.multiline {
					r.flush()
				}
				fmt.Fprintln(r.writer, "\nBye!")
				return nil
			}
			return fmt.Errorf("read input: %w", err)
		}

		line = strings.TrimRight(line, "\r\n")

		// 处理特殊命令
		if !r.multiline && strings.HasPrefix(line, ":") {
			r.handleCommand(line)
			continue
		}

		// 添加到缓冲区
		if r.multiline {
			r.buffer.WriteString("\n")
		}
		r.buffer.WriteString(line)

		// 检查是否需要继续输入
		if r.needsMoreInput(r.buffer.String(), line) {
			r.multiline = true
			continue
		}

		r.flush()
	}
	return nil
}

// flush 分析缓冲区中的输入并清空
func (r *REPL) flush() {
	input := r.buffer.String()
	r.buffer.Reset()
	r.multiline = false
	r.block = false

	if strings.TrimSpace(input) == "" {
		return
	}

	r.addHistory(input)
	r.execute(input)
}

// printWelcome 打印欢迎信息
func (r *REPL) printWelcome() {
	fmt.Fprintln(r.writer, "pylex interactive tokenizer")
	fmt.Fprintln(r.writer, "Type :help for help, :quit to exit")
	fmt.Fprintln(r.writer)
}

// handleCommand 处理特殊命令
func (r *REPL) handleCommand(line string) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case ":help", ":h", ":?":
		r.printHelp()

	case ":quit", ":q", ":exit":
		fmt.Fprintln(r.writer, "Bye!")
		r.quit = true

	case ":reset", ":clear":
		r.buffer.Reset()
		r.multiline = false
		r.block = false
		r.history = nil
		r.reporter.Clear()
		fmt.Fprintln(r.writer, "State reset.")

	case ":load", ":l":
		if len(args) < 1 {
			fmt.Fprintln(r.writer, "Usage: :load <filename>")
			return
		}
		r.loadFile(args[0])

	case ":history", ":hist":
		r.printHistory()

	case ":errors":
		r.printErrors()

	case ":span":
		r.showSpan = !r.showSpan
		fmt.Fprintf(r.writer, "Spans %s.\n", onOff(r.showSpan))

	case ":tab":
		if len(args) < 1 {
			fmt.Fprintf(r.writer, "Tab size is %d.\n", r.tabSize)
			return
		}
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			fmt.Fprintln(r.writer, "Usage: :tab <positive number>")
			return
		}
		r.tabSize = n
		fmt.Fprintf(r.writer, "Tab size set to %d.\n", n)

	default:
		fmt.Fprintf(r.writer, "Unknown command: %s\n", cmd)
		if similar := diag.FindSimilar(cmd, commandNames, 2); similar != "" {
			fmt.Fprintf(r.writer, "Did you mean %s?\n", similar)
		}
		fmt.Fprintln(r.writer, "Type :help for available commands.")
	}
}

// commandNames 用于相似命令提示
var commandNames = []string{":help", ":quit", ":exit", ":reset", ":clear", ":load", ":history", ":errors", ":span", ":tab"}

// printHelp 打印帮助信息
func (r *REPL) printHelp() {
	fmt.Fprintln(r.writer, "Available commands:")
	fmt.Fprintln(r.writer, "  :help, :h, :?     Show this help message")
	fmt.Fprintln(r.writer, "  :quit, :q, :exit  Exit the REPL")
	fmt.Fprintln(r.writer, "  :reset, :clear    Discard pending input, history and errors")
	fmt.Fprintln(r.writer, "  :load <file>      Tokenize a file")
	fmt.Fprintln(r.writer, "  :history, :hist   Show input history")
	fmt.Fprintln(r.writer, "  :errors           List the errors reported so far")
	fmt.Fprintln(r.writer, "  :span             Toggle span display")
	fmt.Fprintln(r.writer, "  :tab [n]          Show or set the tab size")
	fmt.Fprintln(r.writer)
	fmt.Fprintln(r.writer, "Multi-line input:")
	fmt.Fprintln(r.writer, "  Open brackets, triple-quoted strings and trailing")
	fmt.Fprintln(r.writer, "  backslashes continue on the next line. A statement")
	fmt.Fprintln(r.writer, "  ending with ':' continues until an empty line.")
	fmt.Fprintln(r.writer)
	fmt.Fprintln(r.writer, "Examples:")
	fmt.Fprintln(r.writer, "  >>> x = 0x1F + 1_000")
	fmt.Fprintln(r.writer, "  >>> def add(a, b):")
	fmt.Fprintln(r.writer, "  ...     return a + b")
	fmt.Fprintln(r.writer, "  ...")
}

// loadFile 分析文件并打印结果
func (r *REPL) loadFile(filename string) {
	source, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(r.writer, "Error loading file: %v\n", err)
		return
	}
	r.tokenize(filename, strings.TrimPrefix(string(source), "\ufeff"))
}

// printHistory 打印历史记录
func (r *REPL) printHistory() {
	for i, input := range r.history {
		fmt.Fprintf(r.writer, "%4d  %s\n", i+1, strings.ReplaceAll(input, "\n", "\n      "))
	}
}

// printErrors 列出本次会话报告过的词法错误
func (r *REPL) printErrors() {
	errs := r.reporter.Errors()
	if len(errs) == 0 {
		fmt.Fprintln(r.writer, "No errors.")
		return
	}
	for i, err := range errs {
		fmt.Fprintf(r.writer, "%4d  %s:%d:%d [%s] %s\n", i+1, err.File, err.Line, err.Column, err.Code, err.Message)
	}
}

// addHistory 添加到历史记录
func (r *REPL) addHistory(input string) {
	// 不添加重复的历史记录
	if len(r.history) > 0 && r.history[len(r.history)-1] == input {
		return
	}
	r.history = append(r.history, input)
	if len(r.history) > maxHistory {
		r.history = r.history[len(r.history)-maxHistory:]
	}
}

// needsMoreInput 检查是否需要更多输入
//
// line 是刚读入的一行，input 是包含它在内的全部待分析内容。
func (r *REPL) needsMoreInput(input, line string) bool {
	if r.block {
		// 复合语句以空行结束
		if strings.TrimSpace(line) != "" {
			return true
		}
	}

	// 不追加换行：末尾的续行反斜杠由词法分析器标记为 Incomplete，
	// 注释里的反斜杠则不影响
	tokens, err := lexer.Tokenize(input, r.tabSize)
	if err != nil {
		var lexErr *lexer.Error
		return errors.As(err, &lexErr) && lexErr.Incomplete
	}

	if !r.block && endsWithColon(tokens) {
		r.block = true
		return true
	}
	return false
}

// endsWithColon 最后一个非合成 token 是否为冒号
func endsWithColon(tokens []token.Token) bool {
	for i := len(tokens) - 1; i >= 0; i-- {
		if token.IsSynthesized(tokens[i].Type) {
			continue
		}
		return tokens[i].Type == token.COLON
	}
	return false
}

// execute 分析输入并打印 token
func (r *REPL) execute(input string) {
	r.tokenize(inputName, input+"\n")
}

// tokenize 分析 source，成功时打印 token 序列，失败时打印诊断
func (r *REPL) tokenize(name, source string) {
	tokens, err := lexer.New(source, r.tabSize, lexer.WithFilename(name)).Tokenize()
	if err != nil {
		var lexErr *lexer.Error
		if errors.As(err, &lexErr) {
			r.reporter.SetSource(name, source)
			r.reporter.ReportError(lexErr.Diagnostic())
			return
		}
		fmt.Fprintf(r.writer, "Error: %v\n", err)
		return
	}

	if err := dump.Text(r.writer, tokens, dump.TextOptions{ShowSpan: r.showSpan, ShowValue: true}); err != nil {
		fmt.Fprintf(r.writer, "Error: %v\n", err)
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
