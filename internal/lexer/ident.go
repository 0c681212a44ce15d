package lexer

import (
	"strings"
	"unicode"

	"github.com/tangzhangming/pylex/internal/token"
)

// ============================================================================
// 标识符与关键字
// ============================================================================

// scanIdentifier 处理标识符、关键字和带前缀的字符串
//
// 先取最长的标识符字符串；如果它恰好是合法的字符串前缀（r b u f
// 及其大小写、两字母组合）且紧跟引号，就交给字符串分析器处理。
// 否则查关键字表，得到关键字或 IDENT。
func (l *Lexer) scanIdentifier() error {
	start := l.cur.offset()

	n := 1
	for isIdentContinue(l.cur.peek(n)) {
		n++
	}

	if q := l.cur.peek(n); q == '\'' || q == '"' {
		if flags, ok := stringPrefix(l.cur.text(start, start+n)); ok {
			return l.scanString(start, n, flags)
		}
	}

	l.cur.advance(n)
	l.emit(token.LookupIdent(l.cur.text(start, start+n)), start, nil)
	return nil
}

// stringPrefix 解析字符串前缀，返回对应的标志
//
// 合法前缀（不区分大小写）：r u b f br rb fr rf
func stringPrefix(prefix string) (token.StringFlags, bool) {
	if len(prefix) > 2 {
		return 0, false
	}

	switch strings.ToLower(prefix) {
	case "r":
		return token.FlagRaw, true
	case "u":
		return token.FlagUnicode, true
	case "b":
		return token.FlagBytes, true
	case "f":
		return token.FlagFormatted, true
	case "br", "rb":
		return token.FlagBytes | token.FlagRaw, true
	case "fr", "rf":
		return token.FlagFormatted | token.FlagRaw, true
	}
	return 0, false
}

// ============================================================================
// 字符分类函数
// ============================================================================

// isIdentStart 判断是否可以作为标识符开头（下划线或 Unicode 字母）
func isIdentStart(ch rune) bool {
	if ch < 0x80 {
		return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
	}
	return unicode.IsLetter(ch) ||
		unicode.Is(unicode.Nl, ch) ||
		unicode.Is(unicode.Other_ID_Start, ch)
}

// isIdentContinue 判断是否可以出现在标识符中间
func isIdentContinue(ch rune) bool {
	if ch < 0x80 {
		return isIdentStart(ch) || isDigit(ch)
	}
	return isIdentStart(ch) ||
		unicode.In(ch, unicode.Mn, unicode.Mc, unicode.Nd, unicode.Pc, unicode.Other_ID_Continue)
}

// isDigit 判断是否为数字 0-9
func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}
