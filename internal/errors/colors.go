package errors

import (
	"os"
	"runtime"
	"strings"
	"unicode"

	"github.com/tangzhangming/pylex/internal/token"
)

// Color 终端颜色
type Color int

const (
	ColorReset Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBoldRed
	ColorBoldGreen
	ColorBoldYellow
	ColorBoldBlue
	ColorBoldMagenta
	ColorBoldCyan
	ColorBoldWhite
)

// ANSI 颜色代码
var ansiCodes = map[Color]string{
	ColorReset:       "\033[0m",
	ColorRed:         "\033[31m",
	ColorGreen:       "\033[32m",
	ColorYellow:      "\033[33m",
	ColorBlue:        "\033[34m",
	ColorMagenta:     "\033[35m",
	ColorCyan:        "\033[36m",
	ColorWhite:       "\033[37m",
	ColorBoldRed:     "\033[1;31m",
	ColorBoldGreen:   "\033[1;32m",
	ColorBoldYellow:  "\033[1;33m",
	ColorBoldBlue:    "\033[1;34m",
	ColorBoldMagenta: "\033[1;35m",
	ColorBoldCyan:    "\033[1;36m",
	ColorBoldWhite:   "\033[1;37m",
}

// colorsEnabled 是否启用颜色
var colorsEnabled = detectColorSupport()

// detectColorSupport 检测终端是否支持颜色
func detectColorSupport() bool {
	// NO_COLOR 优先于一切
	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	term := os.Getenv("TERM")

	if runtime.GOOS == "windows" {
		// Windows Terminal、ConEmu、ANSICON 以及设置了 TERM 的环境
		return (term != "" && term != "dumb") ||
			os.Getenv("WT_SESSION") != "" ||
			os.Getenv("ConEmuANSI") == "ON" ||
			os.Getenv("ANSICON") != ""
	}

	if term == "dumb" {
		return false
	}

	// 检查是否为 TTY
	if fileInfo, err := os.Stdout.Stat(); err == nil {
		if (fileInfo.Mode() & os.ModeCharDevice) != 0 {
			return true
		}
	}

	return os.Getenv("COLORTERM") != ""
}

// ColorsEnabled 检查颜色是否启用
func ColorsEnabled() bool {
	return colorsEnabled
}

// SetColorMode 按配置设置颜色："always"、"never" 或 "auto"（自动检测）
func SetColorMode(mode string) {
	switch mode {
	case "always":
		colorsEnabled = true
	case "never":
		colorsEnabled = false
	default:
		colorsEnabled = detectColorSupport()
	}
}

// Colorize 着色字符串（受全局开关控制）
func Colorize(s string, color Color) string {
	if !colorsEnabled {
		return s
	}
	return paint(s, color)
}

// paint 无条件地加上颜色代码
func paint(s string, color Color) string {
	code, ok := ansiCodes[color]
	if !ok {
		return s
	}
	return code + s + ansiCodes[ColorReset]
}

// Red 红色
func Red(s string) string {
	return Colorize(s, ColorRed)
}

// Green 绿色
func Green(s string) string {
	return Colorize(s, ColorGreen)
}

// Yellow 黄色
func Yellow(s string) string {
	return Colorize(s, ColorYellow)
}

// Cyan 青色
func Cyan(s string) string {
	return Colorize(s, ColorCyan)
}

// ============================================================================
// 代码语法高亮
// ============================================================================
//
// 只用于诊断中的单行源代码显示，按字符粗略切分：
// 字符串、注释、数字、关键字、运算符。不处理跨行的三引号字符串。
//
// ============================================================================

// SyntaxHighlighter 代码语法高亮器
type SyntaxHighlighter struct{}

// NewSyntaxHighlighter 创建语法高亮器
func NewSyntaxHighlighter() *SyntaxHighlighter {
	return &SyntaxHighlighter{}
}

// HighlightLine 高亮代码行
func (h *SyntaxHighlighter) HighlightLine(line string) string {
	src := []rune(line)
	var result strings.Builder
	i := 0
	n := len(src)

	for i < n {
		ch := src[i]

		switch {
		case ch == ' ' || ch == '\t':
			result.WriteRune(ch)
			i++

		case ch == '#':
			// 注释到行尾
			result.WriteString(paint(string(src[i:]), ColorWhite))
			i = n

		case ch == '"' || ch == '\'':
			start := i
			i++
			for i < n && src[i] != ch {
				if src[i] == '\\' && i+1 < n {
					i++
				}
				i++
			}
			if i < n {
				i++ // 包含结束引号
			}
			result.WriteString(paint(string(src[start:i]), ColorGreen))

		case ch >= '0' && ch <= '9':
			start := i
			for i < n && (isAlphaNumeric(src[i]) || src[i] == '.') {
				i++
			}
			result.WriteString(paint(string(src[start:i]), ColorMagenta))

		case isAlpha(ch):
			start := i
			for i < n && isAlphaNumeric(src[i]) {
				i++
			}
			word := string(src[start:i])
			if token.IsKeyword(token.LookupIdent(word)) {
				result.WriteString(paint(word, ColorYellow))
			} else {
				result.WriteString(word)
			}

		case isOperator(ch):
			result.WriteString(paint(string(ch), ColorRed))
			i++

		default:
			result.WriteRune(ch)
			i++
		}
	}

	return result.String()
}

func isAlpha(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isAlphaNumeric(ch rune) bool {
	return isAlpha(ch) || unicode.IsDigit(ch)
}

func isOperator(ch rune) bool {
	return strings.ContainsRune("+-*/%=<>!&|^~@:", ch)
}
