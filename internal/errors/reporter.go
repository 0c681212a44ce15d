package errors

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// ============================================================================
// 错误报告器
// ============================================================================
//
// Reporter 收集诊断并立即输出到 out。源代码由调用方通过 SetSource
// 提供（已解码的文本），报告器本身不读取文件。
// 批量检查时多个 goroutine 会同时报告，所有方法都加锁。
//
// ============================================================================

// Reporter 错误报告器
type Reporter struct {
	mu          sync.Mutex
	out         io.Writer
	formatter   *Formatter
	sourceCache map[string][]string // 源代码缓存（按行切分）
	errors      []*CompileError
}

// NewReporter 创建输出到 out 的错误报告器，out 为 nil 时使用标准错误
func NewReporter(out io.Writer) *Reporter {
	if out == nil {
		out = os.Stderr
	}
	return &Reporter{
		out:         out,
		formatter:   NewFormatter(),
		sourceCache: make(map[string][]string),
	}
}

// SetSource 设置源代码
func (r *Reporter) SetSource(filename string, content string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sourceCache[filename] = SplitLines(content)
}

// SplitLines 按 \n、\r\n、\r 切分源代码，与词法分析器的行号保持一致
func SplitLines(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	return strings.Split(content, "\n")
}

// ============================================================================
// 报告诊断
// ============================================================================

// ReportError 报告错误
func (r *Reporter) ReportError(err *CompileError) {
	// 生成修复建议
	if len(err.Hints) == 0 {
		err.Hints = GetSuggestions(err.Code, nil)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.errors = append(r.errors, err)
	fmt.Fprint(r.out, r.formatter.FormatCompileError(err, r.sourceCache[err.File]))
}

// ============================================================================
// 状态查询
// ============================================================================

// HasErrors 是否有错误
func (r *Reporter) HasErrors() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.errors) > 0
}

// ErrorCount 错误数量
func (r *Reporter) ErrorCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.errors)
}

// Errors 获取所有错误
func (r *Reporter) Errors() []*CompileError {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*CompileError(nil), r.errors...)
}

// Clear 清空错误和警告
func (r *Reporter) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = nil
}
