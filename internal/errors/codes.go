// Package errors 提供 pylex 的诊断信息：错误码、格式化输出和修复建议
package errors

import "github.com/tangzhangming/pylex/internal/i18n"

// ============================================================================
// 错误级别
// ============================================================================

// Level 错误级别
type Level int

const (
	LevelError   Level = iota // 错误
	LevelWarning              // 警告
	LevelNote                 // 提示
	LevelHelp                 // 帮助
)

func (l Level) String() string {
	switch l {
	case LevelError:
		return "error"
	case LevelWarning:
		return "warning"
	case LevelNote:
		return "note"
	case LevelHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ============================================================================
// 词法错误码 (E 开头)
// ============================================================================

const (
	E0001 = "E0001" // 未闭合的字符串
	E0002 = "E0002" // 数字字面量格式错误
	E0003 = "E0003" // 缩进不一致
	E0004 = "E0004" // 括号不匹配
	E0005 = "E0005" // 无法识别的字符
	E0006 = "E0006" // 字符串字面量格式错误
)

// ============================================================================
// 错误码信息
// ============================================================================

// ErrorInfo 错误码信息
type ErrorInfo struct {
	Code     string // 错误码
	Level    Level  // 错误级别
	Name     string // 错误类别名
	HintID   string // 修复建议的 i18n 消息 ID
	Category string // 错误分类
}

// lexicalErrors 词法错误码信息表
var lexicalErrors = map[string]ErrorInfo{
	E0001: {E0001, LevelError, "UnterminatedString", i18n.HintUnterminatedString, "string"},
	E0002: {E0002, LevelError, "MalformedNumericLiteral", i18n.HintMalformedNumber, "number"},
	E0003: {E0003, LevelError, "InconsistentDedent", i18n.HintInconsistentDedent, "indent"},
	E0004: {E0004, LevelError, "UnmatchedBracket", i18n.HintUnmatchedBracket, "bracket"},
	E0005: {E0005, LevelError, "UnrecognizedCharacter", i18n.HintUnexpectedChar, "syntax"},
	E0006: {E0006, LevelError, "MalformedStringLiteral", i18n.HintMalformedString, "string"},
}

// GetErrorInfo 获取错误码信息
func GetErrorInfo(code string) (ErrorInfo, bool) {
	info, ok := lexicalErrors[code]
	return info, ok
}
