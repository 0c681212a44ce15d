package lexer

import (
	"errors"
	"math/big"
	"strconv"
	"strings"

	"github.com/tangzhangming/pylex/internal/i18n"
	"github.com/tangzhangming/pylex/internal/token"
)

// ============================================================================
// 数字处理
// ============================================================================
//
// 支持以下格式（与 Python 3 词法一致）：
//   - 十进制整数：123、1_000、0、00
//   - 二/八/十六进制整数：0b1010、0o17、0xFF、0x_ff
//   - 浮点数：3.14、1.、.5、1e10、2.5E-3
//   - 虚数：1j、3.5J、1e3j
//
// 数字串中的 '_' 只能出现在两个数字之间。
// 所有错误都报告在字面量的起始位置。
//
// ============================================================================

// 这些关键字可以紧跟在数字后面（如 1if x else 2），与 CPython 保持一致
var numberSuffixKeywords = map[string]bool{
	"and": true, "else": true, "for": true, "if": true,
	"in": true, "is": true, "not": true, "or": true,
}

// scanNumber 处理数字字面量
func (l *Lexer) scanNumber() error {
	start := l.cur.offset()

	if l.cur.peek(0) == '0' {
		switch l.cur.peek(1) {
		case 'x', 'X':
			return l.scanRadixInteger(start, 16, "hexadecimal", isHexDigit)
		case 'o', 'O':
			return l.scanRadixInteger(start, 8, "octal", isOctDigit)
		case 'b', 'B':
			return l.scanRadixInteger(start, 2, "binary", isBinDigit)
		}
	}

	return l.scanDecimal(start)
}

// scanRadixInteger 处理带进制前缀的整数
func (l *Lexer) scanRadixInteger(start, base int, name string, valid func(rune) bool) error {
	i := 2
	digits := 0

	for {
		ch := l.cur.peek(i)
		if ch == '_' {
			if !valid(l.cur.peek(i + 1)) {
				return l.numberError(start, i+1, name)
			}
			i++
			continue
		}
		if !valid(ch) {
			break
		}
		digits++
		i++
	}

	// 0b102、0o8 这类：十进制数字对当前进制无效
	if ch := l.cur.peek(i); isDigit(ch) {
		return l.errorAt(MalformedNumericLiteral, start, ch, i18n.ErrInvalidDigit, ch, name)
	}
	if digits == 0 {
		return l.errorAt(MalformedNumericLiteral, start, 0, i18n.ErrMissingDigits, name)
	}
	if err := l.verifyEndOfNumber(start, i); err != nil {
		return err
	}

	l.cur.advance(i)
	literal := l.cur.text(start, start+i)

	value, ok := new(big.Int).SetString(stripUnderscores(literal[2:]), base)
	if !ok {
		return l.errorAt(MalformedNumericLiteral, start, 0, i18n.ErrMalformedNumber, literal)
	}

	l.emit(token.INT, start, value)
	return nil
}

// scanDecimal 处理十进制整数、浮点数和虚数
func (l *Lexer) scanDecimal(start int) error {
	var err error
	i := 0
	isFloat := false

	if l.cur.peek(0) == '.' {
		// .5 形式
		isFloat = true
		if i, err = l.digitPart(start, 1); err != nil {
			return err
		}
	} else {
		if i, err = l.digitPart(start, 0); err != nil {
			return err
		}
		if l.cur.peek(i) == '.' {
			isFloat = true
			i++
			if isDigit(l.cur.peek(i)) {
				if i, err = l.digitPart(start, i); err != nil {
					return err
				}
			}
		}
	}

	// ==========================================================
	// 指数部分 e/E
	// ==========================================================
	if ch := l.cur.peek(i); ch == 'e' || ch == 'E' {
		j := i + 1
		if sign := l.cur.peek(j); sign == '+' || sign == '-' {
			j++
		}
		switch {
		case isDigit(l.cur.peek(j)):
			isFloat = true
			if i, err = l.digitPart(start, j); err != nil {
				return err
			}
		case l.keywordAt(i):
			// 1else：e 属于后面的关键字，不是指数
		default:
			return l.errorAt(MalformedNumericLiteral, start, 0, i18n.ErrInvalidExponent, l.cur.text(start, start+j))
		}
	}

	// ==========================================================
	// 虚数后缀 j/J
	// ==========================================================
	typ := token.INT
	if isFloat {
		typ = token.FLOAT
	}
	if ch := l.cur.peek(i); ch == 'j' || ch == 'J' {
		typ = token.IMAGINARY
		i++
	}

	if err := l.verifyEndOfNumber(start, i); err != nil {
		return err
	}

	literal := l.cur.text(start, start+i)
	clean := stripUnderscores(literal)

	switch typ {
	case token.INT:
		// 前导零只在纯十进制整数中非法（0、00、0_0 合法）
		if clean[0] == '0' && strings.Trim(clean, "0") != "" {
			return l.errorAt(MalformedNumericLiteral, start, 0, i18n.ErrLeadingZeros, literal)
		}
		value, ok := new(big.Int).SetString(clean, 10)
		if !ok {
			return l.errorAt(MalformedNumericLiteral, start, 0, i18n.ErrMalformedNumber, literal)
		}
		l.cur.advance(i)
		l.emit(token.INT, start, value)

	case token.FLOAT:
		value, err := parseFloat(clean)
		if err != nil {
			return l.errorAt(MalformedNumericLiteral, start, 0, i18n.ErrMalformedNumber, literal)
		}
		l.cur.advance(i)
		l.emit(token.FLOAT, start, value)

	case token.IMAGINARY:
		value, err := parseFloat(clean[:len(clean)-1])
		if err != nil {
			return l.errorAt(MalformedNumericLiteral, start, 0, i18n.ErrMalformedNumber, literal)
		}
		l.cur.advance(i)
		l.emit(token.IMAGINARY, start, value)
	}

	return nil
}

// digitPart 扫描 digit (["_"] digit)*，i 指向第一个数字，返回结束下标
func (l *Lexer) digitPart(start, i int) (int, error) {
	if !isDigit(l.cur.peek(i)) {
		return i, l.errorAt(MalformedNumericLiteral, start, 0, i18n.ErrMalformedNumber, l.cur.text(start, start+i))
	}

	for {
		ch := l.cur.peek(i)
		if isDigit(ch) {
			i++
			continue
		}
		if ch == '_' {
			if !isDigit(l.cur.peek(i + 1)) {
				return i, l.numberError(start, i+1, "decimal")
			}
			i++
			continue
		}
		return i, nil
	}
}

// verifyEndOfNumber 检查数字后面没有紧跟标识符字符
func (l *Lexer) verifyEndOfNumber(start, i int) error {
	ch := l.cur.peek(i)
	if !isIdentContinue(ch) {
		return nil
	}
	if l.keywordAt(i) {
		return nil
	}
	return l.errorAt(MalformedNumericLiteral, start, ch, i18n.ErrInvalidNumberSuffix, ch)
}

// keywordAt 检查下标 i 处是否以允许跟在数字后的关键字开头
func (l *Lexer) keywordAt(i int) bool {
	n := 0
	for isIdentContinue(l.cur.peek(i + n)) {
		n++
		if n > 4 {
			return false
		}
	}
	start := l.cur.offset() + i
	return n > 0 && numberSuffixKeywords[l.cur.text(start, start+n)]
}

// numberError 报告 '_' 分隔符位置错误，end 是出错位置之后的下标
func (l *Lexer) numberError(start, end int, name string) error {
	if end > len(l.cur.src)-l.cur.offset() {
		end = len(l.cur.src) - l.cur.offset()
	}
	return l.errorAt(MalformedNumericLiteral, start, '_', i18n.ErrTrailingUnderscore, l.cur.text(start, start+end))
}

// parseFloat 解析浮点数，溢出时与 Python 一样得到 ±Inf 或 0
func parseFloat(s string) (float64, error) {
	value, err := strconv.ParseFloat(s, 64)
	if err != nil && errors.Is(err, strconv.ErrRange) {
		return value, nil
	}
	return value, err
}

// stripUnderscores 去掉数字分隔符
func stripUnderscores(s string) string {
	if strings.IndexByte(s, '_') < 0 {
		return s
	}
	return strings.ReplaceAll(s, "_", "")
}

// isHexDigit 判断是否为十六进制数字 0-9, a-f, A-F
func isHexDigit(ch rune) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

// isOctDigit 判断是否为八进制数字 0-7
func isOctDigit(ch rune) bool {
	return ch >= '0' && ch <= '7'
}

// isBinDigit 判断是否为二进制数字
func isBinDigit(ch rune) bool {
	return ch == '0' || ch == '1'
}
