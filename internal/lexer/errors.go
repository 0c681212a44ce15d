package lexer

import (
	"fmt"

	diag "github.com/tangzhangming/pylex/internal/errors"
	"github.com/tangzhangming/pylex/internal/i18n"
	"github.com/tangzhangming/pylex/internal/token"
)

// ============================================================================
// 词法错误
// ============================================================================
//
// 所有词法错误都是致命的：第一个错误出现后 Tokenize 立即返回，
// 不做局部恢复，也不返回部分 token 列表。
//
// ============================================================================

// ErrorKind 词法错误类别
type ErrorKind int

const (
	UnterminatedString      ErrorKind = iota + 1 // 字符串在换行或文件结束前未闭合
	MalformedNumericLiteral                      // 数字字面量格式错误
	InconsistentDedent                           // 取消缩进后的宽度不在缩进栈中
	UnmatchedBracket                             // 多余、错配或未闭合的括号
	UnrecognizedCharacter                        // 无法识别的字符
	MalformedStringLiteral                       // 字符串转义或 bytes 内容非法
)

var errorKindNames = map[ErrorKind]string{
	UnterminatedString:      "UnterminatedString",
	MalformedNumericLiteral: "MalformedNumericLiteral",
	InconsistentDedent:      "InconsistentDedent",
	UnmatchedBracket:        "UnmatchedBracket",
	UnrecognizedCharacter:   "UnrecognizedCharacter",
	MalformedStringLiteral:  "MalformedStringLiteral",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Code 返回诊断错误码
func (k ErrorKind) Code() string {
	switch k {
	case UnterminatedString:
		return diag.E0001
	case MalformedNumericLiteral:
		return diag.E0002
	case InconsistentDedent:
		return diag.E0003
	case UnmatchedBracket:
		return diag.E0004
	case UnrecognizedCharacter:
		return diag.E0005
	case MalformedStringLiteral:
		return diag.E0006
	}
	return ""
}

// Error 表示词法分析错误
type Error struct {
	Kind    ErrorKind      // 错误类别
	Offset  int            // 出错的字符偏移
	Pos     token.Position // 出错位置（行列号）
	Char    rune           // 相关字符（如非法字符、多余的括号），没有则为 0
	Message string         // 错误信息

	// Incomplete 输入在结构闭合前结束（未闭合的括号、三引号字符串或
	// 末尾的续行反斜杠），追加更多输入后可能合法
	Incomplete bool
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

// Diagnostic 把词法错误转换为可渲染的编译错误
func (e *Error) Diagnostic() *diag.CompileError {
	return &diag.CompileError{
		Code:      e.Kind.Code(),
		Level:     diag.LevelError,
		Message:   e.Message,
		File:      e.Pos.Filename,
		Line:      e.Pos.Line,
		Column:    e.Pos.Column,
		EndColumn: e.Pos.Column + 1,
		Hints:     diag.GetSuggestions(e.Kind.Code(), map[string]interface{}{"char": e.Char}),
	}
}

// errorAt 在指定偏移处构造词法错误
func (l *Lexer) errorAt(kind ErrorKind, offset int, char rune, msgID string, args ...interface{}) *Error {
	return &Error{
		Kind:    kind,
		Offset:  offset,
		Pos:     l.cur.positionAt(offset),
		Char:    char,
		Message: i18n.T(msgID, args...),
	}
}
