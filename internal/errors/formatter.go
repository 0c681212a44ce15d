package errors

import (
	"fmt"
	"strings"

	"github.com/tangzhangming/pylex/internal/i18n"
)

// ============================================================================
// 错误标签
// ============================================================================

// Label 代码标签（用于标注错误位置）
type Label struct {
	Line    int    // 行号（1-based）
	Column  int    // 列号（1-based，按字符计）
	Length  int    // 标注长度
	Message string // 标签消息
	Primary bool   // 是否为主要标签
}

// ============================================================================
// 编译错误
// ============================================================================

// CompileError 可渲染的诊断信息
type CompileError struct {
	Code      string   // 错误码 (E0001)
	Level     Level    // 错误级别
	Message   string   // 主消息
	File      string   // 文件路径
	Line      int      // 行号
	Column    int      // 列号（按字符计）
	EndColumn int      // 结束列
	Labels    []Label  // 代码标签
	Hints     []string // 修复建议
	Notes     []string // 附加说明
}

// Error 实现 error 接口
func (e *CompileError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.File, e.Line, e.Column, e.Message)
}

// ============================================================================
// 格式化器
// ============================================================================

// Formatter 错误格式化器
type Formatter struct {
	Colors     bool // 是否使用颜色
	Highlight  bool // 是否高亮源代码行（需要 Colors）
	ShowSource bool // 是否显示源代码
	ShowHints  bool // 是否显示修复建议
	TabWidth   int  // Tab 宽度
}

// NewFormatter 创建默认格式化器
func NewFormatter() *Formatter {
	return &Formatter{
		Colors:     ColorsEnabled(),
		Highlight:  true,
		ShowSource: true,
		ShowHints:  true,
		TabWidth:   4,
	}
}

// FormatCompileError 格式化一条诊断
func (f *Formatter) FormatCompileError(err *CompileError, sourceLines []string) string {
	var sb strings.Builder

	// 错误头: error[E0001]: unterminated string literal
	levelStr := f.colorize(err.Level.String(), f.levelColor(err.Level))
	codeStr := f.colorize(fmt.Sprintf("[%s]", err.Code), f.levelColor(err.Level))
	sb.WriteString(fmt.Sprintf("%s%s: %s\n", levelStr, codeStr, err.Message))

	// 位置: --> file.py:5:12
	arrow := f.colorize("-->", ColorCyan)
	location := f.colorize(fmt.Sprintf("%s:%d:%d", err.File, err.Line, err.Column), ColorCyan)
	sb.WriteString(fmt.Sprintf(" %s %s\n", arrow, location))

	// 显示源代码
	if f.ShowSource && err.Line > 0 && err.Line <= len(sourceLines) {
		sb.WriteString(f.formatSourceContext(sourceLines, err.Line, err.Column, err.EndColumn, err.Labels))
	}

	// 修复建议
	if f.ShowHints {
		for _, hint := range err.Hints {
			hintLabel := f.colorize(" = help:", ColorCyan)
			sb.WriteString(fmt.Sprintf("%s %s\n", hintLabel, hint))
		}
	}

	// 附加说明
	for _, note := range err.Notes {
		noteLabel := f.colorize(" = note:", ColorCyan)
		sb.WriteString(fmt.Sprintf("%s %s\n", noteLabel, note))
	}

	return sb.String()
}

// formatSourceContext 格式化源代码上下文
func (f *Formatter) formatSourceContext(lines []string, errorLine, startCol, endCol int, labels []Label) string {
	var sb strings.Builder

	// 计算行号宽度
	maxLine := errorLine
	for _, label := range labels {
		if label.Line > maxLine && label.Line <= len(lines) {
			maxLine = label.Line
		}
	}
	lineNumWidth := len(fmt.Sprintf("%d", maxLine))

	// 空行分隔符
	separator := f.colorize(strings.Repeat(" ", lineNumWidth)+" |", ColorBlue)
	sb.WriteString(separator + "\n")

	// 显示错误行
	line := lines[errorLine-1]
	sb.WriteString(f.sourceLine(line, errorLine, lineNumWidth))

	// 错误标注
	if endCol == 0 {
		endCol = startCol + 1
	}
	length := endCol - startCol
	if length < 1 {
		length = 1
	}

	// 计算实际的列位置（考虑 Tab）
	actualCol := f.calculateActualColumn(line, startCol)

	underline := strings.Repeat(" ", lineNumWidth+3+actualCol) +
		f.colorize(strings.Repeat("^", length), ColorRed)
	sb.WriteString(underline + "\n")

	// 处理额外的标签
	for _, label := range labels {
		if label.Line == errorLine || label.Line <= 0 || label.Line > len(lines) {
			continue
		}
		line := lines[label.Line-1]
		sb.WriteString(f.sourceLine(line, label.Line, lineNumWidth))

		if label.Message != "" {
			length := label.Length
			if length < 1 {
				length = 1
			}
			actualCol := f.calculateActualColumn(line, label.Column)
			msgLine := strings.Repeat(" ", lineNumWidth+3+actualCol) +
				f.colorize(strings.Repeat("^", length)+" "+label.Message, f.labelColor(label.Primary))
			sb.WriteString(msgLine + "\n")
		}
	}

	return sb.String()
}

// sourceLine 输出带行号的一行源代码
func (f *Formatter) sourceLine(line string, lineNum, width int) string {
	text := f.expandTabs(strings.TrimRight(line, "\r"))
	if f.Colors && f.Highlight {
		text = NewSyntaxHighlighter().HighlightLine(text)
	}
	num := f.colorize(fmt.Sprintf("%*d", width, lineNum), ColorBlue)
	pipe := f.colorize(" |", ColorBlue)
	return fmt.Sprintf("%s%s %s\n", num, pipe, text)
}

// expandTabs 展开 Tab 为空格
func (f *Formatter) expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", f.TabWidth))
}

// calculateActualColumn 计算列号之前的显示宽度（按字符计，考虑 Tab）
func (f *Formatter) calculateActualColumn(line string, col int) int {
	if col <= 0 {
		return 0
	}
	actual := 0
	i := 0
	for _, ch := range line {
		if i >= col-1 {
			break
		}
		if ch == '\t' {
			actual += f.TabWidth
		} else {
			actual++
		}
		i++
	}
	return actual
}

// levelColor 获取错误级别对应的颜色
func (f *Formatter) levelColor(level Level) Color {
	switch level {
	case LevelError:
		return ColorBoldRed
	case LevelWarning:
		return ColorBoldYellow
	case LevelNote:
		return ColorCyan
	case LevelHelp:
		return ColorGreen
	default:
		return ColorWhite
	}
}

// labelColor 获取标签颜色
func (f *Formatter) labelColor(primary bool) Color {
	if primary {
		return ColorRed
	}
	return ColorYellow
}

// colorize 着色字符串
func (f *Formatter) colorize(s string, color Color) string {
	if !f.Colors {
		return s
	}
	return paint(s, color)
}

// ============================================================================
// 简便方法
// ============================================================================

// FormatCompileErrors 格式化多条诊断并附上错误计数
func (f *Formatter) FormatCompileErrors(errors []*CompileError, sourceCache map[string][]string) string {
	var sb strings.Builder

	for i, err := range errors {
		if i > 0 {
			sb.WriteString("\n")
		}

		var lines []string
		if sourceCache != nil {
			lines = sourceCache[err.File]
		}
		sb.WriteString(f.FormatCompileError(err, lines))
	}

	if len(errors) > 0 {
		sb.WriteString("\n")
		sb.WriteString(f.colorize(i18n.T(i18n.MsgErrorCount, len(errors)), ColorRed) + "\n")
	}

	return sb.String()
}
